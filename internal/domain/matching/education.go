package matching

import "strings"

type EducationLevel int

const (
	EducationUnknown    EducationLevel = 0
	EducationHighSchool EducationLevel = 1
	EducationBachelor   EducationLevel = 2
	EducationMaster     EducationLevel = 3
	EducationPhD        EducationLevel = 4
)

var educationRanks = map[string]EducationLevel{
	"high school": EducationHighSchool,
	"bachelor":    EducationBachelor,
	"master":      EducationMaster,
	"phd":         EducationPhD,
}

// ParseEducationLevel maps a free-form level to its rank. Case, surrounding
// space and the separators "_" and "-" are ignored; anything else ranks 0.
func ParseEducationLevel(s string) EducationLevel {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return educationRanks[s]
}

func (l EducationLevel) String() string {
	switch l {
	case EducationHighSchool:
		return "high_school"
	case EducationBachelor:
		return "bachelor"
	case EducationMaster:
		return "master"
	case EducationPhD:
		return "phd"
	default:
		return "unknown"
	}
}
