package catalog

import "errors"

var (
	ErrUnavailable       = errors.New("catalog unavailable")
	ErrForbidden         = errors.New("forbidden by catalog")
	ErrRejected          = errors.New("rejected by catalog")
	ErrMalformedResponse = errors.New("malformed catalog response")
)
