package notify

import (
	"fmt"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
)

const dateLayout = "Jan 2, 2006"

// Audience tells who receives the notifications of an event.
type Audience int

const (
	AudienceNone Audience = iota
	AudienceLibrarians
	AudienceMember
)

// message is the rendered content of one notification.
type message struct {
	title     string
	body      string
	kind      core.NotificationType
	actionURL string
}

// AudienceOf returns who is notified about event.
func AudienceOf(event core.DomainEvent) Audience {
	switch event.(type) {
	case core.ReservationCreated, core.ReservationWasCancelled:
		return AudienceLibrarians
	case core.ReservationWasExpired,
		core.ReservationWasApproved,
		core.ReservationWasRejected,
		core.ReservationWasFulfilled,
		core.BookIssued,
		core.BookReturned,
		core.BookDueSoon:
		return AudienceMember
	default:
		return AudienceNone
	}
}

// render builds the notification for event. memberName is only used for librarian messages.
func render(event core.DomainEvent, memberName string) (message, bool) {
	switch e := event.(type) {
	case core.ReservationCreated:
		return message{
			title:     "New Reservation",
			body:      fmt.Sprintf("%s reserved %q (reservation %s).", memberName, e.BookTitle, e.ReservationRef),
			kind:      core.NotificationInfo,
			actionURL: "/librarian/reservations",
		}, true

	case core.ReservationWasCancelled:
		return message{
			title:     "Reservation Cancelled",
			body:      fmt.Sprintf("%s cancelled the reservation of %q (reservation %s).", memberName, e.BookTitle, e.ReservationRef),
			kind:      core.NotificationWarning,
			actionURL: "/librarian/reservations",
		}, true

	case core.ReservationWasExpired:
		return message{
			title:     "Reservation Expired",
			body:      fmt.Sprintf("Your reservation of %q expired on %s.", e.BookTitle, e.ExpiryDate.Format(dateLayout)),
			kind:      core.NotificationWarning,
			actionURL: "/member/reservations",
		}, true

	case core.ReservationWasApproved:
		return message{
			title:     "Reservation Approved",
			body:      fmt.Sprintf("Your reservation of %q is approved. The copy is waiting for pickup.", e.BookTitle),
			kind:      core.NotificationSuccess,
			actionURL: "/member/reservations",
		}, true

	case core.ReservationWasRejected:
		body := fmt.Sprintf("Your reservation of %q was rejected.", e.BookTitle)
		if e.Reason != "" {
			body += " Reason: " + e.Reason
		}

		return message{
			title:     "Reservation Rejected",
			body:      body,
			kind:      core.NotificationDanger,
			actionURL: "/member/reservations",
		}, true

	case core.ReservationWasFulfilled:
		return message{
			title:     "Reservation Fulfilled",
			body:      fmt.Sprintf("Your reservation of %q is fulfilled.", e.BookTitle),
			kind:      core.NotificationSuccess,
			actionURL: "/member/reservations",
		}, true

	case core.BookIssued:
		return message{
			title:     "Book Issued",
			body:      fmt.Sprintf("You borrowed %q. Please return it by %s.", e.BookTitle, e.DueDate.Format(dateLayout)),
			kind:      core.NotificationInfo,
			actionURL: "/member/borrowings",
		}, true

	case core.BookReturned:
		body := fmt.Sprintf("Thank you for returning %q.", e.BookTitle)
		kind := core.NotificationSuccess
		if e.Overdue {
			body = fmt.Sprintf("%q was returned after its due date.", e.BookTitle)
			kind = core.NotificationWarning
		}

		return message{
			title:     "Book Returned",
			body:      body,
			kind:      kind,
			actionURL: "/member/borrowings",
		}, true

	case core.BookDueSoon:
		return message{
			title:     "Book Due Soon",
			body:      fmt.Sprintf("%q is due on %s.", e.BookTitle, e.DueDate.Format(dateLayout)),
			kind:      core.NotificationWarning,
			actionURL: "/member/borrowings",
		}, true

	default:
		return message{}, false
	}
}
