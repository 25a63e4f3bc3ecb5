// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// TaskSync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTaskNotFound is returned when a read or delete operation targets a
	// task id that is not present in the directory.
	MsgTaskNotFound = "task not found"

	// MsgNoTaskIDProvided is returned when a task operation arrives without
	// an id in the request path.
	MsgNoTaskIDProvided = "no task ID provided"

	// MsgTaskIDMismatch is returned when the id in an upsert body differs
	// from the id in the request path.
	MsgTaskIDMismatch = "task ID in body does not match URL"

	// MsgEmptyTaskTitle is returned when an upsert request carries a task
	// whose title is blank.
	MsgEmptyTaskTitle = "empty task title provided"
)
