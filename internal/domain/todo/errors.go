package todo

import "errors"

var (
	ErrNotFound        = errors.New("todo not found")
	ErrEmptyUpdate     = errors.New("no update data provided")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrUploadFailed    = errors.New("image upload failed")
)
