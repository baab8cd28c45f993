package github

import (
	"fmt"
	"net/http"
)

type UnauthorizedError struct{}

func (e *UnauthorizedError) Error() string {
	return "Unauthorized access. Invalid GITHUB_TOKEN."
}

func (e *UnauthorizedError) StatusCode() int {
	return http.StatusUnauthorized
}

type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "Insufficient permissions. Check the scope of your GITHUB_TOKEN."
}

func (e *ForbiddenError) StatusCode() int {
	return http.StatusForbidden
}

type UnexpectedStatusError struct {
	Code int
	Body string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("Failed with status code %d.", e.Code)
}

func (e *UnexpectedStatusError) StatusCode() int {
	return e.Code
}

func (e *UnexpectedStatusError) ResponseBody() string {
	return e.Body
}

// TransportError is returned when no response was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) StatusCode() int {
	return 0
}

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) StatusCode() int {
	return http.StatusOK
}
