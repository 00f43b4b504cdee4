package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/tacogips/tmplstore/internal/template/model"
)

// Interactive prompts. Replaced in tests.
var (
	promptConfirm    = surveyConfirm
	promptDashboards = surveyDashboards
)

// surveyConfirm asks a yes/no question, defaulting to no.
func surveyConfirm(message string) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return result, nil
}

// surveyDashboards lets the user pick which staged dashboards to install.
// Currently selected dashboards are preselected. Unnamed dashboards cannot
// be toggled and are not offered.
func surveyDashboards(staged model.CommunityTemplateToInstall) ([]string, error) {
	var (
		options  []string
		defaults []string
	)
	for _, d := range staged.Summary.Dashboards {
		name := d.MetaName()
		if name == "" {
			continue
		}
		options = append(options, name)
		if d.ShouldInstall {
			defaults = append(defaults, name)
		}
	}
	if len(options) == 0 {
		return nil, nil
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Dashboards to install:",
		Options: options,
		Default: defaults,
		Help:    "Space toggles a dashboard, enter confirms",
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return nil, fmt.Errorf("dashboard selection failed: %w", err)
	}
	return selected, nil
}

// installChoices maps every named dashboard to whether it is in selected.
func installChoices(staged model.CommunityTemplateToInstall, selected []string) map[string]bool {
	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}
	choices := make(map[string]bool)
	for _, d := range staged.Summary.Dashboards {
		if name := d.MetaName(); name != "" {
			choices[name] = chosen[name]
		}
	}
	return choices
}
