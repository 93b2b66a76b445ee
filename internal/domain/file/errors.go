package file

import "errors"

// File domain errors
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrNotFileOwner    = errors.New("file does not belong to this user")
	ErrInvalidCategory = errors.New("invalid file category")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrAlreadyLinked   = errors.New("file is already linked to a record")
)
