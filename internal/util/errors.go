package util

import "errors"

var (
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")

	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizNotPublished = errors.New("quiz not published or not accessible")

	// Progress engine errors. ErrCurriculumItemCompleted marks an idempotent
	// no-op so callers can tell "nothing changed" from a hard failure.
	ErrCurriculumNotFound      = errors.New("curriculum not found")
	ErrCurriculumItemNotFound  = errors.New("curriculum item not found")
	ErrCurriculumItemCompleted = errors.New("curriculum item already completed")
	ErrCurriculumItemLocked    = errors.New("curriculum item is locked")
)
