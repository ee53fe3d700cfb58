package persistence

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

type notificationRow struct {
	notification core.Notification
	kind         string
	payload      string
}

func (r *notificationRow) dest() []any {
	n := &r.notification

	return []any{
		&n.ID, &n.UserID, &n.Title, &n.Message, &r.kind, &n.ActionURL,
		&n.EventType, &r.payload, &n.ReadAt, &n.CreatedAt,
	}
}

func (r *notificationRow) toNotification() core.Notification {
	notification := r.notification
	notification.Type = core.NotificationType(r.kind)
	notification.Payload = []byte(r.payload)
	notification.ReadAt = utcPtr(notification.ReadAt)
	notification.CreatedAt = utc(notification.CreatedAt)

	return notification
}

// notificationSelect reads payload as text so every adapter scans it into a string.
func notificationSelect() *goqu.SelectDataset {
	return dialect.From("notifications").
		Select(
			goqu.C("id"), goqu.C("user_id"), goqu.C("title"), goqu.C("message"), goqu.C("type"),
			goqu.C("action_url"), goqu.C("event_type"), goqu.Cast(goqu.C("payload"), "TEXT"),
			goqu.C("read_at"), goqu.C("created_at"),
		).
		Prepared(true)
}

func scanNotification(rows postgresengine.Rows) (core.Notification, error) {
	var row notificationRow
	if err := rows.Scan(row.dest()...); err != nil {
		return core.Notification{}, err
	}

	return row.toNotification(), nil
}

type notificationRepository struct {
	q postgresengine.Querier
}

func (r notificationRepository) Insert(ctx context.Context, notification core.Notification) (core.Notification, error) {
	payload := string(notification.Payload)
	if payload == "" {
		payload = "{}"
	}

	stmt := dialect.Insert("notifications").
		Rows(goqu.Record{
			"user_id":    notification.UserID,
			"title":      notification.Title,
			"message":    notification.Message,
			"type":       string(notification.Type),
			"action_url": notification.ActionURL,
			"event_type": notification.EventType,
			"payload":    goqu.Cast(goqu.V(payload), "JSONB"),
			"read_at":    notification.ReadAt,
			"created_at": notification.CreatedAt,
		}).
		Returning("id").
		Prepared(true)

	if err := postgresengine.QueryRow(ctx, r.q, stmt, &notification.ID); err != nil {
		return core.Notification{}, domainError(err, "notification for user %d", notification.UserID)
	}

	return notification, nil
}

func (r notificationRepository) FindByID(ctx context.Context, id int64) (core.Notification, error) {
	stmt := notificationSelect().Where(goqu.C("id").Eq(id))

	var row notificationRow
	if err := postgresengine.QueryRow(ctx, r.q, stmt, row.dest()...); err != nil {
		return core.Notification{}, domainError(err, "notification %d", id)
	}

	return row.toNotification(), nil
}

func (r notificationRepository) ListByUser(
	ctx context.Context,
	userID int64,
	unreadOnly bool,
	limit int,
) ([]core.Notification, error) {

	stmt := notificationSelect().
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("id").Desc())

	if unreadOnly {
		stmt = stmt.Where(goqu.C("read_at").IsNull())
	}

	if limit > 0 {
		stmt = stmt.Limit(uint(limit))
	}

	return collect(ctx, r.q, stmt, scanNotification)
}

func (r notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	stmt := dialect.From("notifications").
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("read_at").IsNull(),
		).
		Prepared(true)

	var count int
	if err := postgresengine.QueryRow(ctx, r.q, stmt, &count); err != nil {
		return 0, err
	}

	return count, nil
}

// MarkRead keeps the first read_at of an already read notification.
func (r notificationRepository) MarkRead(ctx context.Context, id int64, at time.Time) error {
	stmt := dialect.Update("notifications").
		Set(goqu.Record{"read_at": goqu.COALESCE(goqu.C("read_at"), at)}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true)

	affected, err := r.q.Exec(ctx, stmt)

	return expectOneRow(affected, err, "notification %d", id)
}

func (r notificationRepository) MarkAllRead(ctx context.Context, userID int64, at time.Time) (int, error) {
	stmt := dialect.Update("notifications").
		Set(goqu.Record{"read_at": at}).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("read_at").IsNull(),
		).
		Prepared(true)

	affected, err := r.q.Exec(ctx, stmt)
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}
