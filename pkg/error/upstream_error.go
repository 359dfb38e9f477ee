package error

import "net/http"

// UpstreamError signals that an external collaborator (inference API,
// storage backend) failed or was unreachable.
type UpstreamError string

func (err UpstreamError) Error() string {
	return string(err)
}

func (err UpstreamError) ErrCode() string {
	return "UPSTREAM_ERROR"
}

func (err UpstreamError) StatusCode() int {
	return http.StatusBadGateway
}
