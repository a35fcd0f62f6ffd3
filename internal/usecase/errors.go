package usecase

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrResumeNotFound = errors.New("resume not found")
	ErrInternal       = errors.New("internal error")
)
