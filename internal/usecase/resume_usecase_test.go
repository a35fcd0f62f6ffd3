package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resume-match/internal/infrastructure/extractor"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n...")

func TestUpload_StoresNormalizedText(t *testing.T) {
	repo := &fakeResumeRepo{}
	objects := &fakeObjectStore{}
	uc := NewResumeUsecase(repo, fakeExtractor{text: "Senior Go/Python Developer, Café!"}, objects, zerolog.Nop())
	user := uuid.New()

	r, err := uc.Upload(context.Background(), UploadResumeInput{
		UserID:          user,
		Email:           " dev@example.com ",
		Filename:        "../../cv.pdf",
		ContentType:     "application/pdf",
		Data:            samplePDF,
		ExperienceYears: intp(3),
		EducationLevel:  strp(" Master "),
	})
	require.NoError(t, err)

	assert.Equal(t, "senior go python developer cafe", r.TextContent)
	assert.Equal(t, "cv.pdf", r.Filename)
	assert.Equal(t, user, r.UserID)
	assert.Equal(t, "dev@example.com", *r.ContactEmail)
	assert.Equal(t, "Master", *r.EducationLevel)
	assert.Equal(t, 3, *r.ExperienceYears)
	require.NotNil(t, r.ObjectKey)
	assert.True(t, strings.HasPrefix(*r.ObjectKey, "resumes/"+user.String()+"/"))
	assert.Equal(t, []string{*r.ObjectKey}, objects.keys)
	assert.Len(t, repo.created, 1)
}

func TestUpload_WithoutObjectStore(t *testing.T) {
	repo := &fakeResumeRepo{}
	uc := NewResumeUsecase(repo, fakeExtractor{text: "go developer"}, nil, zerolog.Nop())

	r, err := uc.Upload(context.Background(), UploadResumeInput{
		UserID:      uuid.New(),
		Filename:    "cv.pdf",
		ContentType: "application/pdf; charset=binary",
		Data:        samplePDF,
	})
	require.NoError(t, err)
	assert.Nil(t, r.ObjectKey)
	assert.Nil(t, r.ContactEmail)
	assert.Nil(t, r.EducationLevel)
}

func TestUpload_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		in        UploadResumeInput
		extractor fakeExtractor
		wantErr   error
	}{
		{
			name:    "anonymous",
			in:      UploadResumeInput{ContentType: "application/pdf", Data: samplePDF},
			wantErr: ErrUnauthorized,
		},
		{
			name:    "not a pdf content type",
			in:      UploadResumeInput{UserID: uuid.New(), ContentType: "text/plain", Data: samplePDF},
			wantErr: ErrUnsupportedFile,
		},
		{
			name:    "pdf content type without pdf bytes",
			in:      UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: []byte("hello")},
			wantErr: ErrUnsupportedFile,
		},
		{
			name:    "too large",
			in:      UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: append(samplePDF, bytes.Repeat([]byte{'x'}, MaxResumeBytes)...)},
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "negative experience",
			in:      UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: samplePDF, ExperienceYears: intp(-1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "extractor failure",
			in:        UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: samplePDF},
			extractor: fakeExtractor{err: errors.New("corrupt xref")},
			wantErr:   ErrExtraction,
		},
		{
			name:      "no text",
			in:        UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: samplePDF},
			extractor: fakeExtractor{text: " ... "},
			wantErr:   ErrExtraction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeResumeRepo{}
			uc := NewResumeUsecase(repo, tt.extractor, nil, zerolog.Nop())
			_, err := uc.Upload(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
		})
	}
}

func TestUpload_ExtractionKeepsCause(t *testing.T) {
	cause := fmt.Errorf("%w: bad xref table", extractor.ErrExtraction)
	uc := NewResumeUsecase(&fakeResumeRepo{}, fakeExtractor{err: cause}, nil, zerolog.Nop())

	_, err := uc.Upload(context.Background(), UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: samplePDF})
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, extractor.ErrExtraction)
	assert.ErrorContains(t, err, "bad xref table")
}

func TestUpload_ObjectStoreFailure(t *testing.T) {
	repo := &fakeResumeRepo{}
	uc := NewResumeUsecase(repo, fakeExtractor{text: "go"}, &fakeObjectStore{err: errors.New("bucket gone")}, zerolog.Nop())

	_, err := uc.Upload(context.Background(), UploadResumeInput{UserID: uuid.New(), ContentType: "application/pdf", Data: samplePDF})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.created)
}
