// Package response holds the error body shared by handlers and middleware.
package response

// InternalErrorMessage is the only text a 500 ever carries.
const InternalErrorMessage = "Something went wrong. Please try again."

const UnauthorizedMessage = "unauthorized"

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func Internal() ErrorResponse {
	return ErrorResponse{Error: InternalErrorMessage}
}

func Unauthorized() ErrorResponse {
	return ErrorResponse{Error: UnauthorizedMessage}
}
