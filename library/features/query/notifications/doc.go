// Package notifications implements the Notifications Inbox query use case.
package notifications
