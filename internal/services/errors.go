package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedSource = errors.New("unsupported link")
	ErrTransport         = errors.New("transport error")
	ErrParse             = errors.New("parse error")
	ErrPersistence       = errors.New("persistence error")
	ErrConcurrency       = errors.New("concurrency error")
	ErrValidation        = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrPersistence
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a stable, snake_case classification for err. Errors without a
// known marker report "internal"; a nil error reports "".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnsupportedSource):
		return "unsupported_source"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	case errors.Is(err, ErrConcurrency):
		return "concurrency"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}

// MarkerForKind is the inverse of Kind. It lets the IPC client restore a
// marker from an error string that crossed the socket.
func MarkerForKind(kind string) error {
	switch strings.TrimSpace(kind) {
	case "not_found":
		return ErrNotFound
	case "unsupported_source":
		return ErrUnsupportedSource
	case "transport":
		return ErrTransport
	case "parse":
		return ErrParse
	case "persistence":
		return ErrPersistence
	case "concurrency":
		return ErrConcurrency
	case "validation":
		return ErrValidation
	default:
		return nil
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
