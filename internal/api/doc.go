// Package api contains the HTTP handlers for the gratitude journal:
// request decoding and validation, ownership checks, and the mapping of
// service errors to safe status codes and messages. Handlers hold service
// interfaces and never touch the database directly.
package api
