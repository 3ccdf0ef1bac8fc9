package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewTrackNotFoundError is returned when an owner has no track at the given index.
func NewTrackNotFoundError(owner string, index int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "subtitle track",
		ID:       fmt.Sprintf("%s#%d", owner, index),
	}
}

// ErrSubtitleResourceNotFound is returned when a subtitle source does not exist:
// the remote URL answered 404 or the local file is missing.
type ErrSubtitleResourceNotFound struct {
	Source string
}

// Error implements the error interface.
func (e *ErrSubtitleResourceNotFound) Error() string {
	return fmt.Sprintf("subtitle resource not found: %s", e.Source)
}

// Is allows for error checking with errors.Is().
func (e *ErrSubtitleResourceNotFound) Is(target error) bool {
	_, ok := target.(*ErrSubtitleResourceNotFound)
	return ok
}

// ErrInvalidSource is returned for a subtitle source that is neither an
// http(s) URL nor a path rooted at the public directory.
type ErrInvalidSource struct {
	Source string
}

// Error implements the error interface.
func (e *ErrInvalidSource) Error() string {
	return fmt.Sprintf("invalid subtitle source: %q", e.Source)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidSource) Is(target error) bool {
	_, ok := target.(*ErrInvalidSource)
	return ok
}

// ErrUnexpectedStatus is returned when a remote subtitle source answers with
// a status other than 200 or 404.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// ErrCueIndexOutOfRange is returned by editor operations addressing a cue that does not exist.
type ErrCueIndexOutOfRange struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *ErrCueIndexOutOfRange) Error() string {
	return fmt.Sprintf("cue index %d out of range (have %d cues)", e.Index, e.Len)
}

// Is allows for error checking with errors.Is().
func (e *ErrCueIndexOutOfRange) Is(target error) bool {
	_, ok := target.(*ErrCueIndexOutOfRange)
	return ok
}

// ErrInvalidTrack is returned when a subtitle track fails validation.
type ErrInvalidTrack struct {
	Reason string
}

// Error implements the error interface.
func (e *ErrInvalidTrack) Error() string {
	return fmt.Sprintf("invalid subtitle track: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidTrack) Is(target error) bool {
	_, ok := target.(*ErrInvalidTrack)
	return ok
}

// ErrSourceTooLarge is returned when a subtitle source exceeds the configured size limit.
type ErrSourceTooLarge struct {
	Source string
	Limit  int64
}

// Error implements the error interface.
func (e *ErrSourceTooLarge) Error() string {
	return fmt.Sprintf("subtitle source %s exceeds %d bytes", e.Source, e.Limit)
}

// Is allows for error checking with errors.Is().
func (e *ErrSourceTooLarge) Is(target error) bool {
	_, ok := target.(*ErrSourceTooLarge)
	return ok
}

// ErrEmptySubtitle is returned when asked to save blank text or an empty cue list.
type ErrEmptySubtitle struct{}

// Error implements the error interface.
func (e *ErrEmptySubtitle) Error() string {
	return "subtitle content is empty"
}

// Is allows for error checking with errors.Is().
func (e *ErrEmptySubtitle) Is(target error) bool {
	_, ok := target.(*ErrEmptySubtitle)
	return ok
}
