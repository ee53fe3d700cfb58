package persistence

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/snowRepo/LMS-sub006/store/postgresengine"
)

type libraryRepository struct {
	q postgresengine.Querier
}

func (r libraryRepository) Insert(ctx context.Context, name string) (int64, error) {
	stmt := dialect.Insert("libraries").
		Rows(goqu.Record{"name": name}).
		Returning("id").
		Prepared(true)

	var id int64
	if err := postgresengine.QueryRow(ctx, r.q, stmt, &id); err != nil {
		return 0, domainError(err, "library %q", name)
	}

	return id, nil
}
