package htmlutil

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTagNotFound   = errors.New("tag not found")
	ErrEmptyResponse = errors.New("expected section is missing")
)

// TagNotFoundError means the page layout no longer contains a tag the
// scraper depends on. It is never recovered from.
type TagNotFoundError struct {
	Tag   string
	Attrs []string
}

func (e *TagNotFoundError) Error() string {
	tag := e.Tag
	if tag == "" {
		tag = "*"
	}
	if len(e.Attrs) == 0 {
		return fmt.Sprintf("tag not found: <%s>", tag)
	}

	return fmt.Sprintf("tag not found: <%s %s>", tag, strings.Join(e.Attrs, " "))
}

func (e *TagNotFoundError) Is(target error) bool {
	return target == ErrTagNotFound
}

// EmptyResponseError is returned when a page was fetched but a whole
// informational section identified by Marker is absent.
type EmptyResponseError struct {
	Marker string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("nothing found: no section containing %q", e.Marker)
}

func (e *EmptyResponseError) Is(target error) bool {
	return target == ErrEmptyResponse
}
