package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid upload request")
	ErrUpload         = errors.New("image upload failed")
)
