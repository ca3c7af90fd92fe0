package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/digipratibha/stuportal/internal/ai"
	"github.com/digipratibha/stuportal/internal/model"
	appErr "github.com/digipratibha/stuportal/internal/pkg/errors"
	"github.com/digipratibha/stuportal/internal/repo"
)

type ResourceService struct {
	resources *repo.ResourceRepo
	embedder  ai.IEmbedder
	timeout   time.Duration
}

func NewResourceService(resources *repo.ResourceRepo, embedder ai.IEmbedder, timeout time.Duration) *ResourceService {
	return &ResourceService{resources: resources, embedder: embedder, timeout: timeout}
}

// Create stores a new resource, embedding its title and link so it can be
// ranked in semantic search. An embedding failure is not fatal: the
// resource is stored without one and picked up later by the backfill job.
func (s *ResourceService) Create(ctx context.Context, userID, title, resourceType, link string) (*model.Resource, error) {
	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)
	if title == "" || link == "" {
		return nil, appErr.ErrInvalid
	}
	if resourceType == "" {
		resourceType = model.ResourceTypeOther
	}
	if !model.ValidResourceType(resourceType) {
		return nil, appErr.ErrInvalid
	}

	embedding, err := s.embed(ctx, title, link)
	if err != nil {
		logutil.GetLogger(ctx).Warn("resource embedding failed, storing unranked",
			zap.String("user_id", userID), zap.Error(err))
		embedding = nil
	}

	now := time.Now().UnixMilli()
	item := &model.Resource{
		ID:         newID(),
		Title:      title,
		Type:       resourceType,
		Link:       link,
		UploadedBy: userID,
		Embedding:  embedding,
		Ctime:      now,
		Mtime:      now,
	}
	if err := s.resources.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ResourceService) List(ctx context.Context) ([]model.Resource, error) {
	items, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Resource{}
	}
	return items, nil
}

// BackfillEmbeddings re-embeds resources whose create-time embedding
// failed. Runs from the scheduler; a provider error stops the batch and
// the remainder is retried on the next tick.
func (s *ResourceService) BackfillEmbeddings(ctx context.Context, batch int) error {
	if batch <= 0 {
		batch = 50
	}
	pending, err := s.resources.ListMissingEmbedding(ctx, batch)
	if err != nil {
		return err
	}
	logger := logutil.GetLogger(ctx)
	for _, item := range pending {
		embedding, err := s.embed(ctx, item.Title, item.Link)
		if err != nil {
			logger.Warn("re-embed failed", zap.String("resource_id", item.ID), zap.Error(err))
			return err
		}
		if err := s.resources.UpdateEmbedding(ctx, item.ID, embedding, time.Now().UnixMilli()); err != nil {
			return err
		}
		logger.Info("resource re-embedded", zap.String("resource_id", item.ID))
	}
	return nil
}

func (s *ResourceService) embed(ctx context.Context, title, link string) ([]float32, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.embedder.Embed(ctx, fmt.Sprintf("%s %s", title, link))
}
