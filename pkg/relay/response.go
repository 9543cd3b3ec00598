package relay

import "net/http"

// Response lets a handler choose the status code of a successful result.
// Any other handler result is written as JSON with status 200.
//
// Example:
//
//	func (c *PostController) Create(ctx context.Context, args relay.Arguments) (any, error) {
//	    return relay.Created(post), nil
//	}
type Response struct {
	// StatusCode is the HTTP status code to return
	StatusCode int `json:"-"`

	// Body is JSON-encoded; a nil body writes no content
	Body any `json:"body,omitempty"`
}

// NewResponse creates a Response with the given status code and body
func NewResponse(statusCode int, body any) *Response {
	return &Response{StatusCode: statusCode, Body: body}
}

// OK creates a 200 OK response
func OK(body any) *Response {
	return NewResponse(http.StatusOK, body)
}

// Created creates a 201 Created response
func Created(body any) *Response {
	return NewResponse(http.StatusCreated, body)
}

// NoContent creates a 204 No Content response
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, nil)
}
