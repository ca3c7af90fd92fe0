package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/pgvector/pgvector-go"

	"github.com/digipratibha/stuportal/internal/model"
	"github.com/digipratibha/stuportal/internal/pkg/dbutil"
	appErr "github.com/digipratibha/stuportal/internal/pkg/errors"
)

type ResourceRepo struct {
	db *sql.DB
}

func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// Create stores the resource. A nil embedding is stored as NULL; the
// resource still exists, it just stays out of ranked search.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	const query = `
		INSERT INTO resources (id, title, type, link, uploaded_by, embedding, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	var embedding interface{}
	if len(res.Embedding) > 0 {
		embedding = pgvector.NewVector(res.Embedding)
	}
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Title,
		res.Type,
		res.Link,
		res.UploadedBy,
		embedding,
		res.Ctime,
		res.Mtime,
	)
	if err != nil && dbutil.IsConflict(err) {
		return appErr.ErrConflict
	}
	return err
}

func (r *ResourceRepo) List(ctx context.Context) ([]model.Resource, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("resources", where, []string{"id", "title", "type", "link", "uploaded_by", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Resource
	for rows.Next() {
		var item model.Resource
		if err := rows.Scan(&item.ID, &item.Title, &item.Type, &item.Link, &item.UploadedBy, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// ListEmbedded returns every resource that carries an embedding, vector
// included, for in-process similarity ranking.
func (r *ResourceRepo) ListEmbedded(ctx context.Context) ([]model.Resource, error) {
	const query = `
		SELECT id, title, type, link, uploaded_by, embedding, ctime, mtime
		FROM resources
		WHERE embedding IS NOT NULL
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Resource
	for rows.Next() {
		var item model.Resource
		var embedding pgvector.Vector
		if err := rows.Scan(&item.ID, &item.Title, &item.Type, &item.Link, &item.UploadedBy, &embedding, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		item.Embedding = embedding.Slice()
		results = append(results, item)
	}
	return results, rows.Err()
}

// ListMissingEmbedding returns up to limit resources without an embedding,
// oldest first, for the backfill job.
func (r *ResourceRepo) ListMissingEmbedding(ctx context.Context, limit int) ([]model.Resource, error) {
	const query = `
		SELECT id, title, type, link, uploaded_by, ctime, mtime
		FROM resources
		WHERE embedding IS NULL
		ORDER BY ctime ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Resource
	for rows.Next() {
		var item model.Resource
		if err := rows.Scan(&item.ID, &item.Title, &item.Type, &item.Link, &item.UploadedBy, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *ResourceRepo) UpdateEmbedding(ctx context.Context, resourceID string, embedding []float32, mtime int64) error {
	const query = `UPDATE resources SET embedding = $1, mtime = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, pgvector.NewVector(embedding), mtime, resourceID)
	return err
}
