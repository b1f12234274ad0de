package service

import (
	"context"

	"github.com/DaUnderlord/monday-sippin-sub000/filter"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

const articlePageSize = 50

// ArticleStore is the persistence the article service needs.
type ArticleStore interface {
	FindPublished(ctx context.Context, filterIDs []string, limit int64) ([]model.Article, error)
}

type ArticleService interface {
	ListByFilters(ctx context.Context, selected []string) ([]model.Article, error)
}

type ArticleServiceImpl struct {
	repo    ArticleStore
	filters FilterService
}

func NewArticleService(repo ArticleStore, filters FilterService) ArticleService {
	return &ArticleServiceImpl{
		repo:    repo,
		filters: filters,
	}
}

// ListByFilters narrows to the deepest selected filter and everything under
// it. Unknown ids are ignored; no known selection lists everything.
func (s *ArticleServiceImpl) ListByFilters(ctx context.Context, selected []string) ([]model.Article, error) {
	deepest, ok, err := s.filters.ActiveFilter(ctx, selected)
	if err != nil {
		return nil, err
	}

	var ids []string
	if ok {
		ids = append(ids, deepest.ID)
		for id := range filter.DescendantIDs(deepest) {
			ids = append(ids, id)
		}
	}

	return s.repo.FindPublished(ctx, ids, articlePageSize)
}
