package domain

import "errors"

var (
	ErrNotFound      = errors.New("building design not found")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)
