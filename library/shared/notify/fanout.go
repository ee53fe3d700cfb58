package notify

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

// ErrNoRecipients is returned when the audience of an event is empty.
var ErrNoRecipients = errors.New("no recipients for event")

// Fanout writes the notifications of one event.
type Fanout struct {
	users         shell.UserRepository
	notifications shell.NotificationRepository
}

// NewFanout creates a Fanout writing through repos outside of any command transaction.
func NewFanout(repos shell.Repositories) Fanout {
	return Fanout{
		users:         repos.Users,
		notifications: repos.Notifications,
	}
}

// Deliver computes the audience of event and inserts one notification per recipient.
// A failing recipient does not stop delivery to the others, all failures are returned joined.
func (f Fanout) Deliver(ctx context.Context, event core.DomainEvent) (int, error) {
	facts, ok := factsOf(event)
	if !ok {
		return 0, fmt.Errorf("event %s carries no reservation facts", event.IsEventType())
	}

	recipients, memberName, err := f.recipients(ctx, AudienceOf(event), facts)
	if err != nil {
		return 0, err
	}

	if len(recipients) == 0 {
		return 0, ErrNoRecipients
	}

	msg, ok := render(event, memberName)
	if !ok {
		return 0, fmt.Errorf("event %s has no notification template", event.IsEventType())
	}

	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("encoding %s payload: %w", event.IsEventType(), err)
	}

	delivered := 0
	var errs []error

	for _, recipient := range recipients {
		_, insertErr := f.notifications.Insert(ctx, core.Notification{
			UserID:    recipient.ID,
			Title:     msg.title,
			Message:   msg.body,
			Type:      msg.kind,
			ActionURL: msg.actionURL,
			EventType: event.IsEventType(),
			Payload:   payload,
			CreatedAt: event.HasOccurredAt(),
		})
		if insertErr != nil {
			errs = append(errs, fmt.Errorf("notifying user %s: %w", recipient.UserID, insertErr))
			continue
		}
		delivered++
	}

	return delivered, errors.Join(errs...)
}

func (f Fanout) recipients(
	ctx context.Context,
	audience Audience,
	facts core.ReservationFacts,
) ([]core.User, string, error) {

	switch audience {
	case AudienceLibrarians:
		librarians, err := f.users.ListActiveLibrarians(ctx, facts.LibraryID)
		if err != nil {
			return nil, "", err
		}

		memberName := "A member"
		if member, findErr := f.users.FindByID(ctx, facts.MemberID); findErr == nil {
			memberName = member.Name
		}

		return librarians, memberName, nil

	case AudienceMember:
		member, err := f.users.FindByID(ctx, facts.MemberID)
		if err != nil {
			return nil, "", err
		}

		if member.Status != core.UserActive {
			return nil, member.Name, nil
		}

		return []core.User{member}, member.Name, nil

	default:
		return nil, "", nil
	}
}

func factsOf(event core.DomainEvent) (core.ReservationFacts, bool) {
	switch e := event.(type) {
	case core.ReservationCreated:
		return e.ReservationFacts, true
	case core.ReservationWasCancelled:
		return e.ReservationFacts, true
	case core.ReservationWasExpired:
		return e.ReservationFacts, true
	case core.ReservationWasApproved:
		return e.ReservationFacts, true
	case core.ReservationWasRejected:
		return e.ReservationFacts, true
	case core.ReservationWasFulfilled:
		return e.ReservationFacts, true
	case core.BookIssued:
		return e.ReservationFacts, true
	case core.BookReturned:
		return e.ReservationFacts, true
	case core.BookDueSoon:
		return e.ReservationFacts, true
	default:
		return core.ReservationFacts{}, false
	}
}
