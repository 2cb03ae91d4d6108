package services

import (
	"errors"
	"fmt"

	"designsight-backend/internal/database"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrProjectNotFound  = errors.New("project not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrCommentNotFound  = errors.New("comment not found")
	// ErrUpstream wraps failures of the blob store, vision provider or PDF renderer.
	ErrUpstream = errors.New("upstream dependency failed")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}

// notFoundAs replaces a store-level not-found with the domain sentinel.
func notFoundAs(err, sentinel error) error {
	if errors.Is(err, database.ErrNotFound) {
		return sentinel
	}
	return err
}

func errInvalidRole(role interface{}) error {
	return fmt.Errorf("invalid role %q", role)
}

var errRendererUnavailable = errors.New("pdf renderer not configured")
