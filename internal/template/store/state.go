// Package store holds the normalized template state and the pure reducer
// that moves it from one snapshot to the next.
//
// Reduce never mutates the state it is given and never fails: unknown
// actions pass through and malformed payloads degrade to empty collections.
package store

import (
	"fmt"

	"github.com/tacogips/tmplstore/internal/template/model"
)

// State is the template store snapshot.
type State struct {
	// ByID maps template ids to summaries.
	ByID map[string]model.TemplateSummary `json:"byID"`
	// AllIDs lists the keys of ByID in arrival order.
	AllIDs []string `json:"allIDs"`
	// Status is the load state of the whole collection.
	Status model.RemoteDataState `json:"status"`
	// ExportTemplate holds the current single-template export.
	ExportTemplate model.ExportTemplate `json:"exportTemplate"`
	// StagedCommunityTemplate is the community template pending edits.
	StagedCommunityTemplate model.CommunityTemplate `json:"stagedCommunityTemplate"`
	// StagedTemplateURL is where the staged template was loaded from.
	StagedTemplateURL string `json:"stagedTemplateUrl"`
	// Stacks lists installed stacks.
	Stacks []model.Stack `json:"stacks"`
	// CommunityTemplateToInstall is the staged template with resolved
	// install flags.
	CommunityTemplateToInstall model.CommunityTemplateToInstall `json:"communityTemplateToInstall"`
}

// DefaultState returns the initial store state.
func DefaultState() State {
	return State{
		ByID:   map[string]model.TemplateSummary{},
		AllIDs: []string{},
		Status: model.NotStarted,
		ExportTemplate: model.ExportTemplate{
			Status: model.NotStarted,
		},
		StagedCommunityTemplate:    model.CommunityTemplate{},
		StagedTemplateURL:          "",
		Stacks:                     []model.Stack{},
		CommunityTemplateToInstall: model.EmptyCommunityTemplateToInstall(),
	}
}

// Len returns the number of known templates.
func (s State) Len() int {
	return len(s.AllIDs)
}

// Templates returns the summaries in AllIDs order.
func (s State) Templates() []model.TemplateSummary {
	out := make([]model.TemplateSummary, 0, len(s.AllIDs))
	for _, id := range s.AllIDs {
		if t, ok := s.ByID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks that AllIDs and ByID describe the same set of ids.
func (s State) Validate() error {
	seen := make(map[string]struct{}, len(s.AllIDs))
	for _, id := range s.AllIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("allIDs contains %q more than once", id)
		}
		seen[id] = struct{}{}
		if _, ok := s.ByID[id]; !ok {
			return fmt.Errorf("allIDs contains %q which is missing from byID", id)
		}
	}
	if len(seen) != len(s.ByID) {
		for id := range s.ByID {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("byID contains %q which is missing from allIDs", id)
			}
		}
	}
	if !s.Status.Valid() {
		return fmt.Errorf("invalid status %q", s.Status)
	}
	return nil
}

// WithDefaults fills nil collections so a decoded or zero state can be
// reduced like an initialized one.
func (s State) WithDefaults() State {
	if s.ByID == nil {
		s.ByID = map[string]model.TemplateSummary{}
	}
	if s.AllIDs == nil {
		s.AllIDs = []string{}
	}
	if s.Status == "" {
		s.Status = model.NotStarted
	}
	if s.ExportTemplate.Status == "" {
		s.ExportTemplate.Status = model.NotStarted
	}
	if s.StagedCommunityTemplate == nil {
		s.StagedCommunityTemplate = model.CommunityTemplate{}
	}
	if s.Stacks == nil {
		s.Stacks = []model.Stack{}
	}
	if s.CommunityTemplateToInstall.Template == nil {
		s.CommunityTemplateToInstall.Template = map[string]any{}
	}
	if s.CommunityTemplateToInstall.Summary.Dashboards == nil {
		s.CommunityTemplateToInstall.Summary.Dashboards = []model.DashboardInstall{}
	}
	return s
}

func copyByID(src map[string]model.TemplateSummary, extra int) map[string]model.TemplateSummary {
	dst := make(map[string]model.TemplateSummary, len(src)+extra)
	for id, t := range src {
		dst[id] = t
	}
	return dst
}

func appendID(ids []string, id string) []string {
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}
