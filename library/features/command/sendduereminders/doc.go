// Package sendduereminders implements the due-date reminder sweep.
//
// Every active loan that falls due within the reminder window and has not been reminded yet gets
// one BookDueSoon notification for its member. The reminder timestamp is written in the same
// transaction that re-checks the loan under lock, so a second run reminds nobody twice.
package sendduereminders
