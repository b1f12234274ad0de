package filter

import (
	"slices"
	"sort"

	"github.com/DaUnderlord/monday-sippin-sub000/model"
)

// Action is one user interaction with the filter panel.
type Action struct {
	Kind model.SelectionAction
	ID   string
}

// LevelFunc resolves the tree level of a filter id.
type LevelFunc func(id string) (int, bool)

// LevelsOf builds a LevelFunc over an index.
func LevelsOf(index map[string]*model.FilterNode) LevelFunc {
	return func(id string) (int, bool) {
		n, ok := index[id]
		if !ok {
			return 0, false
		}
		return n.Level, true
	}
}

// Apply returns the selection that results from action. The input slice is
// never modified. At most one id per level stays selected, and changing a
// level clears every deeper level so the selection is a single path.
func Apply(state []string, action Action, levelOf LevelFunc) []string {
	switch action.Kind {
	case model.ActionSelect:
		return selectID(state, action.ID, levelOf)
	case model.ActionDeselect:
		return deselectID(state, action.ID, levelOf)
	case model.ActionClear:
		return []string{}
	default:
		return clone(state)
	}
}

func selectID(state []string, id string, levelOf LevelFunc) []string {
	if slices.Contains(state, id) {
		return clone(state)
	}

	level, ok := levelOf(id)
	if !ok {
		return append(clone(state), id)
	}

	next := make([]string, 0, len(state)+1)
	for _, other := range state {
		otherLevel, known := levelOf(other)
		if known && otherLevel >= level {
			continue
		}
		next = append(next, other)
	}
	return append(next, id)
}

func deselectID(state []string, id string, levelOf LevelFunc) []string {
	level, ok := levelOf(id)

	next := make([]string, 0, len(state))
	for _, other := range state {
		if other == id {
			continue
		}
		if ok {
			if otherLevel, known := levelOf(other); known && otherLevel > level {
				continue
			}
		}
		next = append(next, other)
	}
	return next
}

// Selector tracks the selection for one filter tree.
type Selector struct {
	index    map[string]*model.FilterNode
	levelOf  LevelFunc
	selected []string
}

func NewSelector(roots []*model.FilterNode, initial []string) *Selector {
	index := Index(roots)
	return &Selector{
		index:    index,
		levelOf:  LevelsOf(index),
		selected: clone(initial),
	}
}

func (s *Selector) Select(id string) {
	s.selected = Apply(s.selected, Action{Kind: model.ActionSelect, ID: id}, s.levelOf)
}

func (s *Selector) Deselect(id string) {
	s.selected = Apply(s.selected, Action{Kind: model.ActionDeselect, ID: id}, s.levelOf)
}

func (s *Selector) Clear() {
	s.selected = Apply(s.selected, Action{Kind: model.ActionClear}, s.levelOf)
}

func (s *Selector) Dispatch(action Action) {
	s.selected = Apply(s.selected, action, s.levelOf)
}

// Selected returns the ids in selection order.
func (s *Selector) Selected() []string {
	return clone(s.selected)
}

// SelectedPath returns the selected nodes ordered root first. Unknown ids
// are skipped.
func (s *Selector) SelectedPath() []*model.FilterNode {
	path := make([]*model.FilterNode, 0, len(s.selected))
	for _, id := range s.selected {
		if n, ok := s.index[id]; ok {
			path = append(path, n)
		}
	}
	sort.SliceStable(path, func(i, j int) bool {
		return path[i].Level < path[j].Level
	})
	return path
}

// Deepest returns the last node on the selected path.
func (s *Selector) Deepest() (*model.FilterNode, bool) {
	path := s.SelectedPath()
	if len(path) == 0 {
		return nil, false
	}
	return path[len(path)-1], true
}

func (s *Selector) Query() string {
	return EncodeQuery(s.selected)
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
