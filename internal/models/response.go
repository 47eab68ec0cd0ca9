// internal/models/response.go
package models

// ApiResponse is the envelope every endpoint answers with.
type ApiResponse struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message"`
	ResponseObject interface{} `json:"responseObject"`
	StatusCode     int         `json:"statusCode"`
}

// NewSuccessResponse wraps payload in a successful envelope.
func NewSuccessResponse(message string, payload interface{}) *ApiResponse {
	return &ApiResponse{
		Success:        true,
		Message:        message,
		ResponseObject: payload,
		StatusCode:     200,
	}
}

// NewErrorResponse builds a failed envelope with a null payload.
func NewErrorResponse(message string, statusCode int) *ApiResponse {
	return &ApiResponse{
		Success:    false,
		Message:    message,
		StatusCode: statusCode,
	}
}

// ServiceInfo is the payload of the root endpoint.
type ServiceInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// RouteDoc describes one HTTP route for the docs endpoint.
type RouteDoc struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary"`
}
