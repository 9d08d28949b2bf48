package service

import "errors"

var (
	// ErrInvalidInput marks user-correctable request problems (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage marks failures reading or writing the todo document (500).
	ErrStorage = errors.New("storage failure")
)
