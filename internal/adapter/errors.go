package adapter

import "errors"

// Sentinel errors for non-2xx responses. The wrapped message is the server's
// top-level message when the body carries one.
var (
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("client unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrInternalServerError  = errors.New("internal server error")
	ErrBadGateway           = errors.New("bad gateway")

	ErrEmptyAddress = errors.New("empty address")
	ErrNoToken      = errors.New("no token set, log in first")
)
