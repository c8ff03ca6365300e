// Package errors provides classified errors for routing failures to the
// right surface: 404s for missing entities, gateway errors for upstream
// failures, and server errors for everything else.
package errors

import "fmt"

// Category is the broad classification of an error.
type Category string

const (
	// CategoryNotFound marks a handle that resolves to no live entity.
	CategoryNotFound Category = "not_found"
	// CategoryUpstream marks a failed data-source call.
	CategoryUpstream Category = "upstream"
	// CategoryRender marks malformed entity data surfaced by the renderer.
	CategoryRender Category = "render"
	// CategoryConfig marks invalid or missing configuration.
	CategoryConfig Category = "config"
	// CategoryFilesystem marks export write failures.
	CategoryFilesystem Category = "filesystem"
	// CategoryInternal is the fallback for unclassified failures.
	CategoryInternal Category = "internal"
)

// ClassifiedError carries a category alongside the message and cause so
// callers can branch on the class without string matching.
type ClassifiedError struct {
	category Category
	message  string
	cause    error
}

func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.category, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.category, e.message)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *ClassifiedError) Unwrap() error { return e.cause }

// Category returns the error classification.
func (e *ClassifiedError) Category() Category { return e.category }

// Message returns the message without category prefix or cause.
func (e *ClassifiedError) Message() string { return e.message }

// New creates a classified error.
func New(category Category, message string) *ClassifiedError {
	return &ClassifiedError{category: category, message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(category Category, format string, args ...any) *ClassifiedError {
	return &ClassifiedError{category: category, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a category and message to an existing error.
func Wrap(err error, category Category, message string) *ClassifiedError {
	return &ClassifiedError{category: category, message: message, cause: err}
}

// NotFound reports a handle with no matching live entity of its kind.
func NotFound(kind, handle string) *ClassifiedError {
	return Newf(CategoryNotFound, "%s %q not found", kind, handle)
}

// Upstream wraps a failed data-source call.
func Upstream(err error, message string) *ClassifiedError {
	return Wrap(err, CategoryUpstream, message)
}

// Render wraps a document-render failure.
func Render(err error, message string) *ClassifiedError {
	return Wrap(err, CategoryRender, message)
}

// AsClassified attempts to extract a ClassifiedError from err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	for err != nil {
		if c, ok := err.(*ClassifiedError); ok {
			return c, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

// GetCategory extracts the category from an error chain, defaulting to
// CategoryInternal for plain errors.
func GetCategory(err error) Category {
	if c, ok := AsClassified(err); ok {
		return c.Category()
	}
	return CategoryInternal
}

// IsNotFound reports whether the error chain is classified not_found.
func IsNotFound(err error) bool { return GetCategory(err) == CategoryNotFound }

// IsUpstream reports whether the error chain is classified upstream.
func IsUpstream(err error) bool { return GetCategory(err) == CategoryUpstream }
