package services

import "errors"

var (
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyMatched   = errors.New("already matched")
	ErrDuplicateRequest = errors.New("request already pending")
	ErrRequestClosed    = errors.New("request already handled")
)
