package store

import (
	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/normalize"
)

// Reducer applies actions to template state.
type Reducer struct {
	honorExplicitShouldInstall bool
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithExplicitShouldInstall makes staging honor an explicit boolean
// shouldInstall on a dashboard instead of always resolving to true.
func WithExplicitShouldInstall() Option {
	return func(r *Reducer) {
		r.honorExplicitShouldInstall = true
	}
}

// NewReducer creates a Reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultReducer = NewReducer()

// Reduce applies action to state with the default reducer.
func Reduce(state *State, action Action) State {
	return defaultReducer.Reduce(state, action)
}

// Reduce returns the state that results from applying action to state. A nil
// state starts from DefaultState. The input state is never modified.
func (r *Reducer) Reduce(state *State, action Action) State {
	var prev State
	if state == nil {
		prev = DefaultState()
	} else {
		prev = *state
	}

	switch a := action.(type) {
	case PopulateTemplateSummaries:
		return populateSummaries(prev, a.Normalized)
	case AddTemplateSummary:
		return addSummaries(prev, a.Normalized)
	case RemoveTemplateSummary:
		return removeSummary(prev, a.ID)
	case SetTemplateSummary:
		return setSummary(prev, a)
	case SetCommunityTemplateToInstall:
		prev.CommunityTemplateToInstall = resolveCommunityTemplate(a.Template, r.honorExplicitShouldInstall)
		return prev
	case SetTemplatesStatus:
		if a.Status.Valid() {
			prev.Status = a.Status
		}
		return prev
	case SetExportTemplate:
		return setExportTemplate(prev, a)
	case SetStagedCommunityTemplate:
		prev.StagedCommunityTemplate = model.CommunityTemplate(copyObject(a.Template))
		return prev
	case SetStagedTemplateURL:
		prev.StagedTemplateURL = a.URL
		return prev
	case ToggleTemplateResourceInstall:
		return toggleDashboardInstall(prev, a)
	case SetStacks:
		stacks := make([]model.Stack, len(a.Stacks))
		copy(stacks, a.Stacks)
		prev.Stacks = stacks
		return prev
	case RemoveStack:
		return removeStack(prev, a.ID)
	default:
		return prev
	}
}

// populateSummaries drops result ids without an entity and repeated ids so
// AllIDs and ByID stay consistent.
func populateSummaries(s State, n normalize.Result) State {
	byID := make(map[string]model.TemplateSummary, len(n.IDs))
	allIDs := make([]string, 0, len(n.IDs))
	for _, id := range n.IDs {
		t, ok := n.Entities.Templates[id]
		if !ok {
			continue
		}
		if _, dup := byID[id]; dup {
			continue
		}
		byID[id] = t
		allIDs = append(allIDs, id)
	}
	s.ByID = byID
	s.AllIDs = allIDs
	return s
}

func addSummaries(s State, n normalize.Result) State {
	var (
		byID   map[string]model.TemplateSummary
		allIDs []string
	)
	for _, id := range n.IDs {
		t, ok := n.Entities.Templates[id]
		if !ok {
			continue
		}
		if byID == nil {
			byID = copyByID(s.ByID, len(n.IDs))
			allIDs = make([]string, len(s.AllIDs), len(s.AllIDs)+len(n.IDs))
			copy(allIDs, s.AllIDs)
		}
		if _, exists := byID[id]; !exists {
			allIDs = append(allIDs, id)
		}
		byID[id] = t
	}
	if byID == nil {
		return s
	}
	s.ByID = byID
	s.AllIDs = allIDs
	return s
}

func removeSummary(s State, id string) State {
	if _, ok := s.ByID[id]; !ok {
		return s
	}

	byID := make(map[string]model.TemplateSummary, len(s.ByID))
	for k, t := range s.ByID {
		if k != id {
			byID[k] = t
		}
	}
	allIDs := make([]string, 0, len(s.AllIDs))
	for _, k := range s.AllIDs {
		if k != id {
			allIDs = append(allIDs, k)
		}
	}

	s.ByID = byID
	s.AllIDs = allIDs
	return s
}

// setSummary replaces the whole entity; fields are never merged.
func setSummary(s State, a SetTemplateSummary) State {
	if a.Status.Valid() {
		s.Status = a.Status
	}

	t, ok := a.Normalized.Entities.Templates[a.ID]
	if !ok {
		return s
	}

	_, exists := s.ByID[a.ID]
	byID := copyByID(s.ByID, 1)
	byID[a.ID] = t
	s.ByID = byID
	if !exists {
		s.AllIDs = appendID(s.AllIDs, a.ID)
	}
	return s
}

func setExportTemplate(s State, a SetExportTemplate) State {
	export := model.ExportTemplate{Status: a.Status}
	if !export.Status.Valid() {
		export.Status = s.ExportTemplate.Status
	}
	if a.Item != nil {
		item := *a.Item
		export.Item = &item
	}
	s.ExportTemplate = export
	return s
}

func toggleDashboardInstall(s State, a ToggleTemplateResourceInstall) State {
	if a.TemplateMetaName == "" {
		return s
	}

	current := s.CommunityTemplateToInstall.Summary.Dashboards
	var next []model.DashboardInstall
	for i, d := range current {
		if d.MetaName() != a.TemplateMetaName || d.ShouldInstall == a.ShouldInstall {
			continue
		}
		if next == nil {
			next = make([]model.DashboardInstall, len(current))
			copy(next, current)
		}
		next[i].ShouldInstall = a.ShouldInstall
	}
	if next == nil {
		return s
	}
	s.CommunityTemplateToInstall.Summary.Dashboards = next
	return s
}

func removeStack(s State, id string) State {
	idx := -1
	for i, st := range s.Stacks {
		if st.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	stacks := make([]model.Stack, 0, len(s.Stacks)-1)
	for _, st := range s.Stacks {
		if st.ID != id {
			stacks = append(stacks, st)
		}
	}
	s.Stacks = stacks
	return s
}
