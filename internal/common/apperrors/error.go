// Package apperrors defines the application error type used across the
// service. Errors form a hierarchy: a package declares a base error and
// derives more specific errors from it with New. Each error carries the HTTP
// status code the transport layer answers with.
package apperrors

type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	MsgErr(msg string, err ...error) Error
	Msg(msg string) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
