package service

import (
	"context"

	"github.com/DaUnderlord/monday-sippin-sub000/cache"
	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"
	"github.com/DaUnderlord/monday-sippin-sub000/filter"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	goCache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

// FilterStore is the persistence the filter service needs.
type FilterStore interface {
	FindAll(ctx context.Context) ([]model.FilterRecord, error)
	UpdateParent(ctx context.Context, id, parentID string, level int) (*model.FilterRecord, error)
	UpdateLevels(ctx context.Context, levels map[string]int) error
}

type FilterService interface {
	Tree(ctx context.Context, query string) ([]*model.FilterNode, error)
	ApplySelection(ctx context.Context, req model.SelectionRequest) (*model.SelectionResult, error)
	ActiveFilter(ctx context.Context, selected []string) (*model.FilterNode, bool, error)
	CandidateParents(ctx context.Context, id string) ([]*model.FilterNode, error)
	Reparent(ctx context.Context, id, parentID string) (*model.FilterNode, error)
	Invalidate()
}

type FilterServiceImpl struct {
	repo  FilterStore
	trees *goCache.Cache
}

func NewFilterService(repo FilterStore, trees *goCache.Cache) FilterService {
	return &FilterServiceImpl{
		repo:  repo,
		trees: trees,
	}
}

// roots returns the cached forest. Callers must treat it as read-only.
func (s *FilterServiceImpl) roots(ctx context.Context) ([]*model.FilterNode, error) {
	if val, found := s.trees.Get(cache.FilterTreeKey); found {
		if roots, ok := val.([]*model.FilterNode); ok {
			return roots, nil
		}
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	roots := filter.BuildTree(records)
	s.trees.Set(cache.FilterTreeKey, roots, goCache.DefaultExpiration)

	log.Debug().Int("filters", len(records)).Msg("Filter tree loaded")
	return roots, nil
}

func (s *FilterServiceImpl) Invalidate() {
	s.trees.Delete(cache.FilterTreeKey)
}

func (s *FilterServiceImpl) Tree(ctx context.Context, query string) ([]*model.FilterNode, error) {
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Prune(roots, query), nil
}

func (s *FilterServiceImpl) ApplySelection(ctx context.Context, req model.SelectionRequest) (*model.SelectionResult, error) {
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, err
	}

	selector := filter.NewSelector(roots, filter.DecodeQuery(req.Query))
	selector.Dispatch(filter.Action{Kind: req.Action, ID: req.ID})

	return &model.SelectionResult{
		Filters: selector.Selected(),
		Query:   selector.Query(),
		Path:    detach(selector.SelectedPath()),
	}, nil
}

// ActiveFilter returns the deepest selected node. Unknown ids are ignored.
func (s *FilterServiceImpl) ActiveFilter(ctx context.Context, selected []string) (*model.FilterNode, bool, error) {
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, false, err
	}
	node, ok := filter.NewSelector(roots, selected).Deepest()
	return node, ok, nil
}

func (s *FilterServiceImpl) CandidateParents(ctx context.Context, id string) ([]*model.FilterNode, error) {
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := filter.Index(roots)[id]; !ok {
		return nil, customerrors.ErrFilterNotFound
	}
	return detach(filter.CandidateParents(roots, id)), nil
}

func (s *FilterServiceImpl) Reparent(ctx context.Context, id, parentID string) (*model.FilterNode, error) {
	// edits must see the stored tree, not a cached one
	s.Invalidate()
	roots, err := s.roots(ctx)
	if err != nil {
		return nil, err
	}
	// a failed write may leave the store half updated
	defer s.Invalidate()
	index := filter.Index(roots)

	node, ok := index[id]
	if !ok {
		return nil, customerrors.ErrFilterNotFound
	}

	level := 0
	if parentID != "" {
		parent, ok := index[parentID]
		if !ok {
			return nil, customerrors.ErrFilterNotFound
		}
		if _, below := filter.DescendantIDs(node)[parentID]; below || parentID == id {
			return nil, customerrors.ErrFilterCycle
		}
		level = parent.Level + 1
	}
	if level+filter.Height(node)-1 > model.MaxFilterLevel {
		return nil, customerrors.ErrFilterTooDeep
	}

	if _, err := s.repo.UpdateParent(ctx, id, parentID, level); err != nil {
		return nil, err
	}

	levels := make(map[string]int)
	var walk func(children []*model.FilterNode, depth int)
	walk = func(children []*model.FilterNode, depth int) {
		for _, child := range children {
			levels[child.ID] = depth
			walk(child.Children, depth+1)
		}
	}
	walk(node.Children, level+1)
	if err := s.repo.UpdateLevels(ctx, levels); err != nil {
		return nil, err
	}

	s.Invalidate()
	log.Info().Str("filter", id).Str("parent", parentID).Int("level", level).Msg("Filter reparented")

	roots, err = s.roots(ctx)
	if err != nil {
		return nil, err
	}
	moved, ok := filter.Index(roots)[id]
	if !ok {
		return nil, customerrors.ErrFilterNotFound
	}
	return moved, nil
}

// detach copies nodes without their children, for flat listings.
func detach(nodes []*model.FilterNode) []*model.FilterNode {
	out := make([]*model.FilterNode, 0, len(nodes))
	for _, n := range nodes {
		c := *n
		c.Children = []*model.FilterNode{}
		out = append(out, &c)
	}
	return out
}
