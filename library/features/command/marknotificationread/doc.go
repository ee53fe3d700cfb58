// Package marknotificationread implements the Mark Notification Read use case.
//
// A user marks one notification of their own inbox as read. Marking it again keeps the first
// read timestamp.
package marknotificationread
