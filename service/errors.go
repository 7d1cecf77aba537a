package service

import "errors"

// Request errors are classified with sentinels joined onto the cause; the
// handler maps them to HTTP statuses at the boundary.
var (
	ErrClientInput = errors.New("client input rejected")
	ErrProcessing  = errors.New("video processing failed")
	ErrPersistence = errors.New("metadata persistence failed")
)
