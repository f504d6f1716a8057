package services

import "errors"

// Validation failures. They are detected before any store call.
var (
	ErrNameRequired         = errors.New("name is required")
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrInvalidStatus        = errors.New("invalid project status")
	ErrInvalidTheme         = errors.New("invalid theme")
	ErrInvalidParent        = errors.New("parent must be another component of the same page")
	ErrNoPageSelected       = errors.New("no page selected")
	ErrEmptyPatch           = errors.New("patch has no fields")
)

// ErrStaleLoad is returned by SelectPage when a newer selection superseded
// the fetch; its result has been discarded.
var ErrStaleLoad = errors.New("page load superseded by a newer selection")
