package error

// GenericError is implemented by errors that carry an HTTP status and a
// machine-readable code; the recovery middleware translates them into the
// standard response envelope.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
