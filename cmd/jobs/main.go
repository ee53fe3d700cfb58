// Command jobs runs the scheduled maintenance sweeps of the library management system.
// It is meant to be started by cron or a Kubernetes CronJob:
//
//	jobs check-expired-reservations
//	jobs check-due-books
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(openPostgres).Execute(); err != nil {
		os.Exit(1)
	}
}
