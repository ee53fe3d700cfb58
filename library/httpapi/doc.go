// Package httpapi is the request boundary of the library management system.
//
// It exposes the command and query handlers as a JSON API on echo. A bearer token is resolved
// to a core.Actor once per request, request bodies are validated with go-playground/validator,
// and the domain errors are mapped onto status codes and short user-facing messages.
// Unexpected errors are logged with the request id and answered with a generic message.
package httpapi
