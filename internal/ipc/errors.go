package ipc

import (
	"errors"
	"net/rpc"
	"strings"

	"shelf/internal/services"
)

// RemoteError is an error returned by the daemon. It unwraps to the services
// marker matching its kind.
type RemoteError struct {
	Kind    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap returns the services marker for the error kind, if any.
func (e *RemoteError) Unwrap() error {
	return services.MarkerForKind(e.Kind)
}

const kindSeparator = "|"

// encodeError tags err with its kind for transport.
func encodeError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(services.Kind(err) + kindSeparator + err.Error())
}

// decodeError restores a RemoteError from an rpc.ServerError. Transport
// failures are returned unchanged.
func decodeError(err error) error {
	if err == nil {
		return nil
	}
	var serverErr rpc.ServerError
	if !errors.As(err, &serverErr) {
		return err
	}
	kind, message, ok := strings.Cut(string(serverErr), kindSeparator)
	if !ok {
		return &RemoteError{Kind: "internal", Message: string(serverErr)}
	}
	return &RemoteError{Kind: kind, Message: message}
}
