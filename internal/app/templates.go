package app

import (
	"context"
	"fmt"

	"github.com/tacogips/tmplstore/internal/debug"
	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/normalize"
	"github.com/tacogips/tmplstore/internal/template/store"
)

func (w *Workspace) decodeSummaries(ctx context.Context, location string) (normalize.Result, error) {
	data, err := w.fetch(ctx, location)
	if err != nil {
		return normalize.Result{}, err
	}
	result, err := normalize.DecodeSummaries(w.normalizer, data)
	if err != nil {
		return normalize.Result{}, NewDecodeError(fmt.Sprintf("invalid template payload from %s", location), err)
	}
	debug.DebugValue("[app] Decoded template ids", result.IDs)
	return result, nil
}

// PopulateTemplates replaces the template collection with the payload at
// location. The collection status tracks the load: Loading while fetching,
// then Done or Error.
func (w *Workspace) PopulateTemplates(ctx context.Context, location string) (store.State, error) {
	debug.DebugSection("[app] PopulateTemplates")
	w.store.Dispatch(store.SetTemplatesStatus{Status: model.Loading})

	result, err := w.decodeSummaries(ctx, location)
	if err != nil {
		w.store.Dispatch(store.SetTemplatesStatus{Status: model.Error})
		return w.store.State(), err
	}

	w.store.Dispatch(store.PopulateTemplateSummaries{Normalized: result})
	return w.store.Dispatch(store.SetTemplatesStatus{Status: model.Done}), nil
}

// AddTemplate adds or replaces the summaries at location and returns their
// ids in payload order.
func (w *Workspace) AddTemplate(ctx context.Context, location string) ([]string, error) {
	debug.DebugSection("[app] AddTemplate")
	result, err := w.decodeSummaries(ctx, location)
	if err != nil {
		return nil, err
	}
	w.store.Dispatch(store.AddTemplateSummary{Normalized: result})
	return result.IDs, nil
}

// RemoveTemplate removes the template with id.
func (w *Workspace) RemoveTemplate(id string) error {
	if _, ok := w.store.State().ByID[id]; !ok {
		return NewNotFoundError(fmt.Sprintf("template not found: %s", id))
	}
	w.store.Dispatch(store.RemoveTemplateSummary{ID: id})
	return nil
}

// SetTemplate replaces the template with id by the single summary at
// location and sets the collection status.
func (w *Workspace) SetTemplate(ctx context.Context, id, location string, status model.RemoteDataState) error {
	debug.DebugSection("[app] SetTemplate")
	if !status.Valid() {
		return NewValidationError(fmt.Sprintf("invalid status %q", status), nil)
	}

	result, err := w.decodeSummaries(ctx, location)
	if err != nil {
		return err
	}
	if _, ok := result.Template(id); !ok {
		return NewValidationError(
			fmt.Sprintf("payload from %s does not contain template %s", location, id), nil)
	}

	w.store.Dispatch(store.SetTemplateSummary{ID: id, Status: status, Normalized: result})
	return nil
}

// SetStatus sets the collection load status.
func (w *Workspace) SetStatus(status model.RemoteDataState) error {
	if !status.Valid() {
		return NewValidationError(fmt.Sprintf("invalid status %q", status), nil)
	}
	w.store.Dispatch(store.SetTemplatesStatus{Status: status})
	return nil
}

// ExportTemplate records the template with id as the current export. An
// unknown id records a failed export and returns a NotFound error.
func (w *Workspace) ExportTemplate(id string) (model.ExportTemplate, error) {
	t, ok := w.store.State().ByID[id]
	if !ok {
		st := w.store.Dispatch(store.SetExportTemplate{Status: model.Error})
		return st.ExportTemplate, NewNotFoundError(fmt.Sprintf("template not found: %s", id))
	}
	st := w.store.Dispatch(store.SetExportTemplate{Status: model.Done, Item: &t})
	return st.ExportTemplate, nil
}
