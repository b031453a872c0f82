package model

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrCorruptDocument   = errors.New("document is corrupt or has no extractable text")
	ErrFileTooLarge      = errors.New("uploaded file exceeds the size limit")
)
