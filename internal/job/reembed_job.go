package job

import (
	"context"

	"github.com/digipratibha/stuportal/internal/service"
)

// ReembedJob backfills embeddings for resources whose create-time
// embedding failed, so provider outages only delay ranking instead of
// losing resources from search.
type ReembedJob struct {
	resources *service.ResourceService
	batch     int
}

func NewReembedJob(resources *service.ResourceService, batch int) *ReembedJob {
	return &ReembedJob{resources: resources, batch: batch}
}

func (j *ReembedJob) Name() string {
	return "resource_reembed"
}

func (j *ReembedJob) Run(ctx context.Context) error {
	if j.resources == nil {
		return nil
	}
	return j.resources.BackfillEmbeddings(ctx, j.batch)
}
