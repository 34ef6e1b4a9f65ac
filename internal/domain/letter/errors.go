package letter

import "errors"

var (
	ErrNotFound        = errors.New("pending file not found")
	ErrNotPDF          = errors.New("file is not a PDF")
	ErrEmptyFile       = errors.New("file is empty")
	ErrNoUploadFolder  = errors.New("upload folder is not configured")
	ErrInvalidFilename = errors.New("invalid filename")
)
