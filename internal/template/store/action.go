package store

import (
	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tacogips/tmplstore/internal/template/normalize"
)

// ActionType identifies an action kind.
type ActionType string

const (
	ActionPopulateTemplateSummaries     ActionType = "POPULATE_TEMPLATE_SUMMARIES"
	ActionAddTemplateSummary            ActionType = "ADD_TEMPLATE_SUMMARY"
	ActionRemoveTemplateSummary         ActionType = "REMOVE_TEMPLATE_SUMMARY"
	ActionSetTemplateSummary            ActionType = "SET_TEMPLATE_SUMMARY"
	ActionSetCommunityTemplateToInstall ActionType = "SET_COMMUNITY_TEMPLATE_TO_INSTALL"
	ActionSetTemplatesStatus            ActionType = "SET_TEMPLATES_STATUS"
	ActionSetExportTemplate             ActionType = "SET_EXPORT_TEMPLATE"
	ActionSetStagedCommunityTemplate    ActionType = "SET_STAGED_TEMPLATE"
	ActionSetStagedTemplateURL          ActionType = "SET_STAGED_TEMPLATE_URL"
	ActionToggleTemplateResourceInstall ActionType = "TOGGLE_TEMPLATE_RESOURCE_INSTALL"
	ActionSetStacks                     ActionType = "SET_STACKS"
	ActionRemoveStack                   ActionType = "REMOVE_STACK"
)

// Action is anything that can be dispatched to the reducer. Types the
// reducer does not know are ignored.
type Action interface {
	Type() ActionType
}

// PopulateTemplateSummaries replaces the whole template collection.
type PopulateTemplateSummaries struct {
	Normalized normalize.Result
}

// AddTemplateSummary inserts or overwrites the normalized templates.
type AddTemplateSummary struct {
	Normalized normalize.Result
}

// RemoveTemplateSummary deletes one template.
type RemoveTemplateSummary struct {
	ID string
}

// SetTemplateSummary replaces one template and sets the collection status.
type SetTemplateSummary struct {
	ID         string
	Status     model.RemoteDataState
	Normalized normalize.Result
}

// SetCommunityTemplateToInstall stages a community template for install.
type SetCommunityTemplateToInstall struct {
	Template model.RawCommunityTemplate
}

// SetTemplatesStatus sets the collection status.
type SetTemplatesStatus struct {
	Status model.RemoteDataState
}

// SetExportTemplate replaces the current export.
type SetExportTemplate struct {
	Status model.RemoteDataState
	Item   *model.TemplateSummary
}

// SetStagedCommunityTemplate replaces the community template pending edits.
type SetStagedCommunityTemplate struct {
	Template model.CommunityTemplate
}

// SetStagedTemplateURL records where the staged template came from.
type SetStagedTemplateURL struct {
	URL string
}

// ToggleTemplateResourceInstall sets the install flag of the staged
// dashboards whose template meta name matches.
type ToggleTemplateResourceInstall struct {
	TemplateMetaName string
	ShouldInstall    bool
}

// SetStacks replaces the stack list.
type SetStacks struct {
	Stacks []model.Stack
}

// RemoveStack drops one stack by id.
type RemoveStack struct {
	ID string
}

func (PopulateTemplateSummaries) Type() ActionType     { return ActionPopulateTemplateSummaries }
func (AddTemplateSummary) Type() ActionType            { return ActionAddTemplateSummary }
func (RemoveTemplateSummary) Type() ActionType         { return ActionRemoveTemplateSummary }
func (SetTemplateSummary) Type() ActionType            { return ActionSetTemplateSummary }
func (SetCommunityTemplateToInstall) Type() ActionType { return ActionSetCommunityTemplateToInstall }
func (SetTemplatesStatus) Type() ActionType            { return ActionSetTemplatesStatus }
func (SetExportTemplate) Type() ActionType             { return ActionSetExportTemplate }
func (SetStagedCommunityTemplate) Type() ActionType    { return ActionSetStagedCommunityTemplate }
func (SetStagedTemplateURL) Type() ActionType          { return ActionSetStagedTemplateURL }
func (ToggleTemplateResourceInstall) Type() ActionType { return ActionToggleTemplateResourceInstall }
func (SetStacks) Type() ActionType                     { return ActionSetStacks }
func (RemoveStack) Type() ActionType                   { return ActionRemoveStack }
