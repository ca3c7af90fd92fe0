package repo

import (
	"context"
	"database/sql"
)

// ProjectRepo only serves the admin analytics summary; project CRUD lives
// in the portfolio routes outside this service.
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "projects", 0)
}

func (r *ProjectRepo) CountSince(ctx context.Context, since int64) (int64, error) {
	return countRows(ctx, r.db, "projects", since)
}
