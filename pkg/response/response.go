package response

// Response is the envelope every JSON endpoint replies with. Handlers
// embed it and add their own payload fields next to it.
type Response struct {
	Error *ResponseError `json:"error,omitempty"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrCode = string

const (
	FAILED_REQUEST      ErrCode = "REQUEST_FAILED"
	BAD_REQUEST         ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND           ErrCode = "NOT_FOUND"
	INVALID_CREDENTIALS ErrCode = "INVALID_CREDENTIALS"
	PORTAL_UNAVAILABLE  ErrCode = "PORTAL_UNAVAILABLE"
)

func Error(code ErrCode, msg string) Response {
	return Response{
		Error: &ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func Ok() Response {
	return Response{}
}
