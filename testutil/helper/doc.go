// Package helper provides test fixtures and test doubles shared by the package tests:
// Given... fixtures writing through shell.Repositories, a slog handler spy, metrics and
// tracing collector spies, and a queue that records enqueued events.
package helper
