package repo

import (
	"context"
	"database/sql"
)

type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

func (r *FeedbackRepo) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, "feedback", 0)
}
