package checker

import "errors"

var (
	// ErrNoValidIMEIs is returned when a request contains no entry that
	// survives validation. Handlers map it to a 400 response.
	ErrNoValidIMEIs = errors.New("no valid IMEI numbers provided")

	// ErrMissingIMEI is returned when a single-check request has an empty
	// IMEI field.
	ErrMissingIMEI = errors.New("IMEI is required")
)
