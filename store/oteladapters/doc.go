// Package oteladapters provides OpenTelemetry implementations of the store observability interfaces.
// The postgres engine, the command and query handlers and the notification dispatcher accept them
// through their functional options.
package oteladapters
