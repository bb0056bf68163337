package upload

import "errors"

var (
	ErrMissingFile            = errors.New("required file is missing")
	ErrUnsupportedFileType    = errors.New("file type is not allowed")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedImageFormat = errors.New("image format is not supported")
	ErrCorruptImageData       = errors.New("image data could not be decoded")
)
