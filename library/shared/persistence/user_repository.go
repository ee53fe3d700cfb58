package persistence

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

var userColumns = []string{"id", "user_id", "name", "email", "role", "library_id", "status"}

type userRow struct {
	user   core.User
	role   string
	status string
}

func (r *userRow) dest() []any {
	return []any{&r.user.ID, &r.user.UserID, &r.user.Name, &r.user.Email, &r.role, &r.user.LibraryID, &r.status}
}

func (r *userRow) toUser() core.User {
	user := r.user
	user.Role = core.Role(r.role)
	user.Status = core.UserStatus(r.status)

	return user
}

func scanUser(rows postgresengine.Rows) (core.User, error) {
	var row userRow
	if err := rows.Scan(row.dest()...); err != nil {
		return core.User{}, err
	}

	return row.toUser(), nil
}

type userRepository struct {
	q postgresengine.Querier
}

func (r userRepository) FindByID(ctx context.Context, id int64) (core.User, error) {
	return r.findOne(ctx, goqu.C("id").Eq(id), "user %d", id)
}

func (r userRepository) FindByExternalID(ctx context.Context, userID string) (core.User, error) {
	return r.findOne(ctx, goqu.C("user_id").Eq(userID), "user %q", userID)
}

func (r userRepository) findOne(ctx context.Context, where exp.Expression, format string, args ...any) (core.User, error) {
	stmt := dialect.From("users").
		Select(qualified("users", userColumns)...).
		Where(where).
		Prepared(true)

	var row userRow
	if err := postgresengine.QueryRow(ctx, r.q, stmt, row.dest()...); err != nil {
		return core.User{}, domainError(err, format, args...)
	}

	return row.toUser(), nil
}

func (r userRepository) ListActiveLibrarians(ctx context.Context, libraryID int64) ([]core.User, error) {
	stmt := dialect.From("users").
		Select(qualified("users", userColumns)...).
		Where(goqu.Ex{
			"library_id": libraryID,
			"role":       string(core.RoleLibrarian),
			"status":     string(core.UserActive),
		}).
		Order(goqu.C("id").Asc()).
		Prepared(true)

	return collect(ctx, r.q, stmt, scanUser)
}

func (r userRepository) Insert(ctx context.Context, user core.User) (core.User, error) {
	stmt := dialect.Insert("users").
		Rows(goqu.Record{
			"user_id":    user.UserID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       string(user.Role),
			"library_id": user.LibraryID,
			"status":     string(user.Status),
		}).
		Returning("id").
		Prepared(true)

	if err := postgresengine.QueryRow(ctx, r.q, stmt, &user.ID); err != nil {
		return core.User{}, domainError(err, "user %q", user.UserID)
	}

	return user, nil
}
