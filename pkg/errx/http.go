package errx

import "errors"

// HTTPErrorResponse is the JSON body the relay returns for failed requests
type HTTPErrorResponse struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Type       string                 `json:"type"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"status_code"`
	RequestID  string                 `json:"request_id,omitempty"`
}

// ToHTTPResponse converts an Error to an HTTPErrorResponse
func (e *Error) ToHTTPResponse() HTTPErrorResponse {
	return HTTPErrorResponse{
		Code:       e.Code,
		Message:    e.Message,
		Type:       string(e.Type),
		Details:    e.Details,
		StatusCode: e.HTTPStatus,
	}
}

// AsHTTPResponse converts any error into a response body, falling back to an internal error.
func AsHTTPResponse(err error) HTTPErrorResponse {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.ToHTTPResponse()
	}
	return New(err.Error(), TypeInternal).ToHTTPResponse()
}
