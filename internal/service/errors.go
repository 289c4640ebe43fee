package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrInvalidAnnouncementInput = errors.New("title is required and must not be over 255. at least one recipient is required")
)
