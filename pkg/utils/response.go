package utils

// ResponseData is the standard JSON envelope returned by every REST handler.
type ResponseData struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded panics with the given error so the recovery middleware can
// translate it into the proper HTTP response.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
