package model

import (
	"fmt"
	"strings"
)

// RemoteDataState represents the load state of remotely sourced data.
type RemoteDataState string

const (
	// NotStarted indicates no load has been attempted.
	NotStarted RemoteDataState = "NotStarted"
	// Loading indicates a load is in progress.
	Loading RemoteDataState = "Loading"
	// Done indicates the data is loaded.
	Done RemoteDataState = "Done"
	// Error indicates the last load failed.
	Error RemoteDataState = "Error"
)

// RemoteDataStates returns every known state in lifecycle order.
func RemoteDataStates() []RemoteDataState {
	return []RemoteDataState{NotStarted, Loading, Done, Error}
}

// Valid reports whether s is one of the known states.
func (s RemoteDataState) Valid() bool {
	switch s {
	case NotStarted, Loading, Done, Error:
		return true
	}
	return false
}

// String returns the state name.
func (s RemoteDataState) String() string {
	return string(s)
}

// ParseRemoteDataState parses a state name case-insensitively.
// Kebab and snake forms such as "not-started" are accepted.
func ParseRemoteDataState(s string) (RemoteDataState, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for _, state := range RemoteDataStates() {
		if strings.ToLower(string(state)) == key {
			return state, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (expected one of NotStarted, Loading, Done, Error)", s)
}

// TemplateSummary is the metadata record of one installable template.
type TemplateSummary struct {
	// ID is the unique, stable template identifier.
	ID string `json:"id"`
	// Links holds resource locators for the template.
	Links TemplateLinks `json:"links"`
	// Meta is the free-form descriptive metadata.
	Meta TemplateMeta `json:"meta"`
	// Labels are ordered label references.
	Labels []string `json:"labels"`
	// Status is the load state of this template.
	Status RemoteDataState `json:"status"`
}

// TemplateLinks holds resource locators of a template.
type TemplateLinks struct {
	Self string `json:"self"`
}

// TemplateMeta is the descriptive metadata of a template.
type TemplateMeta struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// ExportTemplate holds an in-progress or completed single-template export.
type ExportTemplate struct {
	// Status is the export state.
	Status RemoteDataState `json:"status"`
	// Item is the exported template, nil until populated.
	Item *TemplateSummary `json:"item"`
}

// Stack references a set of installed template resources.
type Stack struct {
	ID          string   `json:"id"`
	OrgID       string   `json:"orgID,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	URLs        []string `json:"urls,omitempty"`
}
