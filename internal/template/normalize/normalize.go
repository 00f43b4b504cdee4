// Package normalize flattens template summaries into an id-keyed entity map
// plus an ordered list of result ids.
//
// The store consumes only the Result shape; any Normalizer implementation can
// feed it.
package normalize

import (
	"errors"
	"fmt"

	"github.com/tacogips/tmplstore/internal/template/model"
)

// TemplatesKey is the entity collection key for template summaries.
const TemplatesKey = "templates"

// Schema describes how an input is flattened.
type Schema struct {
	// Key is the entity collection the input belongs to.
	Key string
	// Array reports whether the input is a list of entities.
	Array bool
}

var (
	// TemplateSchema normalizes a single template summary.
	TemplateSchema = Schema{Key: TemplatesKey}
	// ArrayOfTemplates normalizes a list of template summaries.
	ArrayOfTemplates = Schema{Key: TemplatesKey, Array: true}
)

// ErrMissingID is returned when an entity has no id.
var ErrMissingID = errors.New("template summary has no id")

// Entities holds the flattened entity collections.
type Entities struct {
	Templates map[string]model.TemplateSummary `json:"templates,omitempty"`
}

// Result is the output of a normalization.
type Result struct {
	// Entities maps ids to entities.
	Entities Entities
	// IDs are the result ids in input order.
	IDs []string
	// Single is set for single-entity normalization, whose result is one id
	// rather than a list.
	Single bool
}

// ID returns the first result id, or "" if there is none.
func (r Result) ID() string {
	if len(r.IDs) == 0 {
		return ""
	}
	return r.IDs[0]
}

// Template returns the entity stored under id.
func (r Result) Template(id string) (model.TemplateSummary, bool) {
	t, ok := r.Entities.Templates[id]
	return t, ok
}

// Normalizer flattens template input according to a schema.
type Normalizer interface {
	Normalize(input any, schema Schema) (Result, error)
}

// Default normalizes model.TemplateSummary values.
type Default struct{}

// New returns the default normalizer.
func New() Normalizer {
	return Default{}
}

// Normalize accepts a TemplateSummary, a *TemplateSummary or a
// []TemplateSummary. The schema must match the shape of the input.
func (Default) Normalize(input any, schema Schema) (Result, error) {
	if schema.Key != TemplatesKey {
		return Result{}, fmt.Errorf("unsupported schema key %q", schema.Key)
	}

	switch v := input.(type) {
	case model.TemplateSummary:
		if schema.Array {
			return Result{}, fmt.Errorf("array schema given a single template summary")
		}
		return normalizeOne(v)
	case *model.TemplateSummary:
		if v == nil {
			return Result{}, fmt.Errorf("nil template summary")
		}
		if schema.Array {
			return Result{}, fmt.Errorf("array schema given a single template summary")
		}
		return normalizeOne(*v)
	case []model.TemplateSummary:
		if !schema.Array {
			return Result{}, fmt.Errorf("single schema given %d template summaries", len(v))
		}
		return normalizeMany(v)
	default:
		return Result{}, fmt.Errorf("cannot normalize %T", input)
	}
}

func normalizeOne(s model.TemplateSummary) (Result, error) {
	if s.ID == "" {
		return Result{}, ErrMissingID
	}
	return Result{
		Entities: Entities{Templates: map[string]model.TemplateSummary{s.ID: s}},
		IDs:      []string{s.ID},
		Single:   true,
	}, nil
}

// normalizeMany keeps the first position of a repeated id and the last value.
func normalizeMany(list []model.TemplateSummary) (Result, error) {
	out := Result{
		Entities: Entities{Templates: make(map[string]model.TemplateSummary, len(list))},
		IDs:      make([]string, 0, len(list)),
	}
	for i, s := range list {
		if s.ID == "" {
			return Result{}, fmt.Errorf("template summary at index %d: %w", i, ErrMissingID)
		}
		if _, seen := out.Entities.Templates[s.ID]; !seen {
			out.IDs = append(out.IDs, s.ID)
		}
		out.Entities.Templates[s.ID] = s
	}
	return out, nil
}
