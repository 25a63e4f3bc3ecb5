// Package http implements the HTTP transport layer of the task server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API and the WebSocket snapshot stream. Cross-cutting concerns such as
// request tracing, access logging, and panic recovery are handled in this
// package before requests reach the task directory.
package http
