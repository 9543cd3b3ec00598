package relay

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainRoutingError tags every resolution failure surfaced to the transport
const DomainRoutingError = "routing-error"

// Sentinel kinds for errors.Is checks against resolution failures
var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrEntityNotFound   = errors.New("entity not found")
	ErrServiceNotFound  = errors.New("service not found")
	ErrModelBinding     = errors.New("model binding failed")
)

// MissingParameterError reports a required parameter absent from the request
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Name)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// EntityNotFoundError reports an entity id the repository could not resolve
type EntityNotFoundError struct {
	EntityType string
	ID         int
	Cause      error
}

func (e *EntityNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("entity not found: %s #%d: %v", e.EntityType, e.ID, e.Cause)
	}
	return fmt.Sprintf("entity not found: %s #%d", e.EntityType, e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

func (e *EntityNotFoundError) Unwrap() error {
	return e.Cause
}

// ServiceNotFoundError reports a declared type the container could not provide
type ServiceNotFoundError struct {
	TypeID string
	Cause  error
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service not found: %s", e.TypeID)
}

func (e *ServiceNotFoundError) Is(target error) bool {
	return target == ErrServiceNotFound
}

func (e *ServiceNotFoundError) Unwrap() error {
	return e.Cause
}

// ModelBindingError collapses every model hydration failure into one kind.
// The triggering failure is kept as Cause for diagnostics.
type ModelBindingError struct {
	ModelType string
	Cause     error
}

func (e *ModelBindingError) Error() string {
	return fmt.Sprintf("model binding failed: %s", e.ModelType)
}

func (e *ModelBindingError) Is(target error) bool {
	return target == ErrModelBinding
}

func (e *ModelBindingError) Unwrap() error {
	return e.Cause
}

// RoutingError is the uniform envelope for resolution failures. Status is
// always 500, whatever the underlying kind.
type RoutingError struct {
	Domain  string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// NewRoutingError wraps a resolution failure
func NewRoutingError(err error) *RoutingError {
	return &RoutingError{
		Domain:  DomainRoutingError,
		Message: err.Error(),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Error implements the error interface
func (e *RoutingError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Domain, e.Status, e.Message)
}

// Unwrap returns the resolution failure
func (e *RoutingError) Unwrap() error {
	return e.Err
}

// Body returns the JSON body written to clients
func (e *RoutingError) Body() map[string]any {
	return map[string]any{
		"code":    e.Domain,
		"message": e.Message,
		"data":    map[string]any{"status": e.Status},
	}
}

// HTTPError lets a handler choose the status its failure is reported with.
// Adapters write it as {"error": message}; other handler errors become 500.
type HTTPError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// NewHTTPError creates an HTTPError; an empty message uses the status text
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

// WithInternal attaches the underlying cause
func (e *HTTPError) WithInternal(err error) *HTTPError {
	e.Internal = err
	return e
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTP %d: %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// Unwrap returns the internal cause
func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// ErrorStatus maps a handler error to the status and message adapters write
func ErrorStatus(err error) (int, string) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}
	return http.StatusInternalServerError, err.Error()
}
