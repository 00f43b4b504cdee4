package model

// ShouldInstallKey is the property name carrying a dashboard's install flag.
const ShouldInstallKey = "shouldInstall"

// TemplateMetaNameKey is the property name identifying a dashboard inside a
// community template.
const TemplateMetaNameKey = "templateMetaName"

// CommunityTemplate is an opaque community template object pending edits.
type CommunityTemplate map[string]any

// RawCommunityTemplate is a community template payload as received, before
// install flags are resolved.
type RawCommunityTemplate struct {
	Template map[string]any     `json:"template"`
	Summary  *RawInstallSummary `json:"summary"`
}

// RawInstallSummary lists the installable items of a raw payload.
type RawInstallSummary struct {
	Dashboards []RawDashboard `json:"dashboards"`
}

// RawDashboard wraps one nested dashboard descriptor.
type RawDashboard struct {
	Dashboards map[string]any `json:"dashboards"`
}

// CommunityTemplateToInstall is a community template staged for
// installation with every dashboard carrying a resolved install flag.
type CommunityTemplateToInstall struct {
	Template map[string]any `json:"template"`
	Summary  InstallSummary `json:"summary"`
}

// InstallSummary lists the resolved installable items.
type InstallSummary struct {
	Dashboards []DashboardInstall `json:"dashboards"`
}

// DashboardInstall is a dashboard descriptor with its resolved install flag.
type DashboardInstall struct {
	Dashboards    map[string]any `json:"dashboards"`
	ShouldInstall bool           `json:"shouldInstall"`
}

// MetaName returns the dashboard's template meta name, or "" when absent.
func (d DashboardInstall) MetaName() string {
	name, _ := d.Dashboards[TemplateMetaNameKey].(string)
	return name
}

// EmptyCommunityTemplateToInstall returns a value with no nil collections.
func EmptyCommunityTemplateToInstall() CommunityTemplateToInstall {
	return CommunityTemplateToInstall{
		Template: map[string]any{},
		Summary: InstallSummary{
			Dashboards: []DashboardInstall{},
		},
	}
}
