package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/resume"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const MaxResumeBytes = 10 * 1024 * 1024

var (
	ErrUnsupportedFile = errors.New("only PDF files are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrExtraction      = errors.New("could not extract text from file")
)

var pdfMagic = []byte("%PDF-")

type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type UploadResumeInput struct {
	UserID          uuid.UUID
	Email           string
	Filename        string
	ContentType     string
	Data            []byte
	ExperienceYears *int
	EducationLevel  *string
}

type ResumeUsecase interface {
	Upload(ctx context.Context, in UploadResumeInput) (resume.Resume, error)
}

type Resumes struct {
	repo      repository.ResumeRepository
	extractor TextExtractor
	objects   ObjectStore
	log       zerolog.Logger
}

// NewResumeUsecase builds the upload flow. objects may be nil, in which case
// the original file is not kept.
func NewResumeUsecase(repo repository.ResumeRepository, extractor TextExtractor, objects ObjectStore, logger zerolog.Logger) *Resumes {
	return &Resumes{repo: repo, extractor: extractor, objects: objects, log: logger}
}

func (u *Resumes) Upload(ctx context.Context, in UploadResumeInput) (resume.Resume, error) {
	if in.UserID == uuid.Nil {
		return resume.Resume{}, ErrUnauthorized
	}
	if len(in.Data) > MaxResumeBytes {
		return resume.Resume{}, ErrFileTooLarge
	}
	if !isPDF(in.ContentType, in.Data) {
		return resume.Resume{}, ErrUnsupportedFile
	}
	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return resume.Resume{}, ErrInvalidInput
	}

	raw, err := u.extractor.Extract(ctx, in.Data)
	if err != nil {
		u.log.Warn().Err(err).Str("user_id", in.UserID.String()).Msg("resume extraction failed")
		return resume.Resume{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	text := matching.Normalize(raw)
	if text == "" {
		return resume.Resume{}, fmt.Errorf("%w: no text found", ErrExtraction)
	}

	filename := sanitizeFilename(in.Filename)
	id := uuid.New()
	r := resume.Resume{
		ID:              id,
		UserID:          in.UserID,
		Filename:        filename,
		TextContent:     text,
		ExperienceYears: in.ExperienceYears,
		EducationLevel:  trimmedOrNil(in.EducationLevel),
		ContactEmail:    trimmedOrNil(&in.Email),
	}

	if u.objects != nil {
		key := fmt.Sprintf("resumes/%s/%s-%s", in.UserID, id, filename)
		if err := u.objects.Put(ctx, key, in.Data, "application/pdf"); err != nil {
			u.log.Error().Err(err).Str("key", key).Msg("store resume object failed")
			return resume.Resume{}, ErrInternal
		}
		r.ObjectKey = &key
	}

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		u.log.Error().Err(err).Msg("insert resume failed")
		return resume.Resume{}, ErrInternal
	}
	return created, nil
}

func isPDF(contentType string, data []byte) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ct != "application/pdf" {
		return false
	}
	return bytes.HasPrefix(data, pdfMagic)
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "resume.pdf"
	}
	return name
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
