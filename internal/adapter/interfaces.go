// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating with
// the remote task server.
//
// The primary abstraction is [RemoteClient], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteClient]) that uses a WebSocket stream for snapshot pushes.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/tasksync-dev/tasksync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteClient defines transport-agnostic communication with the remote task
// server. Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type RemoteClient interface {
	// FetchTasks retrieves the full remote snapshot: every live task the
	// server knows about. A task absent from the snapshot does not exist
	// remotely. Returns an error if the request fails or the response cannot
	// be decoded.
	FetchTasks(ctx context.Context) ([]models.Task, error)

	// WriteTask pushes the complete record to the server, creating or
	// replacing it. Returns an error if the request fails or the server
	// responds with a non-2xx status.
	WriteTask(ctx context.Context, task models.Task) error

	// DeleteTask removes the record with the given id from the server.
	// Returns [ErrNotFound] (wrapped) if the server no longer has the record;
	// callers replaying a queued delete may treat that as confirmation.
	DeleteTask(ctx context.Context, id string) error

	// Subscribe opens the server's snapshot stream and invokes onSnapshot for
	// every full snapshot pushed by the server. The connection is redialed
	// after failures until ctx is cancelled; Subscribe blocks for the
	// lifetime of the subscription and returns ctx.Err() on cancellation.
	Subscribe(ctx context.Context, onSnapshot func(tasks []models.Task)) error
}
