// Package markallnotificationsread implements the Mark All Notifications Read use case.
package markallnotificationsread
