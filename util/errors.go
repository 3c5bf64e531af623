package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Charset errors
	ErrEncodingDetection = errors.New("could not detect charset")
	ErrUnknownCharset    = errors.New("unknown charset")
)
