package archive

import "errors"

var (
	// ErrMalformedStore is returned by Load when the backing file exists but
	// does not hold a well-formed archive document.
	ErrMalformedStore = errors.New("malformed archive file")

	// ErrEmptyFieldName is returned when a custom field name is blank.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrInvalidContentMode is returned for a content mode other than text or file.
	ErrInvalidContentMode = errors.New("invalid content mode; choose 'text' or 'file'")
)
