package store

import (
	"github.com/mohae/deepcopy"
	"github.com/tacogips/tmplstore/internal/template/model"
)

// ResolveCommunityTemplate prepares a raw community template for install.
// Every dashboard in the result carries an explicit ShouldInstall, and the
// result shares no maps with raw.
func ResolveCommunityTemplate(raw model.RawCommunityTemplate) model.CommunityTemplateToInstall {
	return resolveCommunityTemplate(raw, false)
}

func resolveCommunityTemplate(raw model.RawCommunityTemplate, honorExplicit bool) model.CommunityTemplateToInstall {
	out := model.EmptyCommunityTemplateToInstall()
	if raw.Template != nil {
		out.Template = copyObject(raw.Template)
	}
	if raw.Summary == nil {
		return out
	}

	out.Summary.Dashboards = make([]model.DashboardInstall, 0, len(raw.Summary.Dashboards))
	for _, d := range raw.Summary.Dashboards {
		nested := copyObject(d.Dashboards)
		out.Summary.Dashboards = append(out.Summary.Dashboards, model.DashboardInstall{
			Dashboards:    nested,
			ShouldInstall: resolveShouldInstall(nested, honorExplicit),
		})
	}
	return out
}

// resolveShouldInstall treats an unset flag as install. A present flag also
// resolves to true regardless of its value unless honorExplicit is set.
func resolveShouldInstall(dashboards map[string]any, honorExplicit bool) bool {
	v, ok := dashboards[model.ShouldInstallKey]
	if !ok {
		return true
	}
	if honorExplicit {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	// TODO: drop the override once product confirms an explicit false opts out.
	return true
}

func copyObject(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	copied, ok := deepcopy.Copy(m).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return copied
}
