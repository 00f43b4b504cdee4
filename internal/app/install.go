package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tacogips/tmplstore/internal/debug"
	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/store"
)

// StageCommunityTemplate loads the community template at location and
// stages it for installation. The location, the raw template and the
// resolved install payload are all recorded.
func (w *Workspace) StageCommunityTemplate(ctx context.Context, location string) (model.CommunityTemplateToInstall, error) {
	debug.DebugSection("[app] StageCommunityTemplate")
	data, err := w.fetch(ctx, location)
	if err != nil {
		return model.CommunityTemplateToInstall{}, err
	}

	var raw model.RawCommunityTemplate
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.CommunityTemplateToInstall{}, NewDecodeError(
			fmt.Sprintf("invalid community template from %s", location), err)
	}

	w.store.Dispatch(store.SetStagedTemplateURL{URL: location})
	w.store.Dispatch(store.SetStagedCommunityTemplate{Template: model.CommunityTemplate(raw.Template)})
	st := w.store.Dispatch(store.SetCommunityTemplateToInstall{Template: raw})

	debug.DebugValue("[app] Staged dashboards", len(st.CommunityTemplateToInstall.Summary.Dashboards))
	return st.CommunityTemplateToInstall, nil
}

// ToggleDashboardInstall sets whether the staged dashboard named name is
// installed.
func (w *Workspace) ToggleDashboardInstall(name string, install bool) error {
	if name == "" {
		return NewValidationError("dashboard name cannot be empty", nil)
	}

	found := false
	for _, d := range w.store.State().CommunityTemplateToInstall.Summary.Dashboards {
		if d.MetaName() == name {
			found = true
			break
		}
	}
	if !found {
		return NewNotFoundError(fmt.Sprintf("staged dashboard not found: %s", name))
	}

	w.store.Dispatch(store.ToggleTemplateResourceInstall{TemplateMetaName: name, ShouldInstall: install})
	return nil
}
