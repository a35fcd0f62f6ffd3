package dto

import "time"

type RescoreStatusResponse struct {
	Running        bool                `json:"running"`
	Interval       string              `json:"interval"`
	LastStartedAt  *time.Time          `json:"last_started_at"`
	LastFinishedAt *time.Time          `json:"last_finished_at"`
	LastSummary    *RescoreSummaryData `json:"last_summary"`
	LastError      string              `json:"last_error,omitempty"`
}

type RescoreSummaryData struct {
	Resumes    int `json:"resumes"`
	Jobs       int `json:"jobs"`
	Pairs      int `json:"pairs"`
	Qualifying int `json:"qualifying"`
	Created    int `json:"created"`
	Failed     int `json:"failed"`
}
