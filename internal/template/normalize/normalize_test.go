package normalize

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/tacogips/tmplstore/internal/template/model"
)

func summary(id string) model.TemplateSummary {
	return model.TemplateSummary{
		ID:    id,
		Links: model.TemplateLinks{Self: "/api/v2/documents/templates/" + id},
		Meta: model.TemplateMeta{
			Name:    "foo",
			Type:    "dashboard",
			Version: "1",
		},
		Labels: []string{},
		Status: model.Done,
	}
}

func TestDefault_NormalizeSingle(t *testing.T) {
	s := summary("1")

	for _, input := range []any{s, &s} {
		got, err := New().Normalize(input, TemplateSchema)
		if err != nil {
			t.Fatalf("Normalize(%T) failed: %v", input, err)
		}
		if !got.Single {
			t.Error("single normalization should set Single")
		}
		if got.ID() != "1" {
			t.Errorf("ID() = %q, want 1", got.ID())
		}
		if e, ok := got.Template("1"); !ok || !reflect.DeepEqual(e, s) {
			t.Errorf("entity mismatch: %+v", e)
		}
	}
}

func TestDefault_NormalizeArray(t *testing.T) {
	a := summary("1")
	b := summary("2")
	bUpdated := summary("2")
	bUpdated.Meta.Name = "updated"

	got, err := New().Normalize([]model.TemplateSummary{a, b, bUpdated}, ArrayOfTemplates)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got.Single {
		t.Error("array normalization should not set Single")
	}
	if !reflect.DeepEqual(got.IDs, []string{"1", "2"}) {
		t.Errorf("IDs = %v, want [1 2]", got.IDs)
	}
	if got.Entities.Templates["2"].Meta.Name != "updated" {
		t.Errorf("last value of a repeated id should win, got %q", got.Entities.Templates["2"].Meta.Name)
	}
}

func TestDefault_NormalizeEmptyArray(t *testing.T) {
	got, err := New().Normalize([]model.TemplateSummary{}, ArrayOfTemplates)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(got.IDs) != 0 || len(got.Entities.Templates) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
	if got.ID() != "" {
		t.Errorf("ID() of empty result = %q", got.ID())
	}
}

func TestDefault_NormalizeErrors(t *testing.T) {
	var nilSummary *model.TemplateSummary

	tests := []struct {
		name   string
		input  any
		schema Schema
	}{
		{"missing id", model.TemplateSummary{}, TemplateSchema},
		{"missing id in list", []model.TemplateSummary{summary("1"), {}}, ArrayOfTemplates},
		{"single into array schema", summary("1"), ArrayOfTemplates},
		{"list into single schema", []model.TemplateSummary{summary("1")}, TemplateSchema},
		{"nil pointer", nilSummary, TemplateSchema},
		{"unknown schema", summary("1"), Schema{Key: "dashboards"}},
		{"unsupported input", "1", TemplateSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().Normalize(tt.input, tt.schema); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := New().Normalize(model.TemplateSummary{}, TemplateSchema)
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestResult_JSONContract(t *testing.T) {
	single, err := New().Normalize(summary("3"), TemplateSchema)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(single)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Single || decoded.ID() != "3" {
		t.Errorf("single result should keep a scalar id, got %+v", decoded)
	}
	if _, ok := decoded.Template("3"); !ok {
		t.Error("entity 3 missing after decode")
	}

	empty, err := json.Marshal(Result{})
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != `{"entities":{},"result":[]}` {
		t.Errorf("empty result JSON = %s", empty)
	}
}

func TestResult_UnmarshalTolerance(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantIDs    []string
		wantSingle bool
		wantNilMap bool
		wantErr    bool
	}{
		{"no entities", `{"entities":{},"result":[]}`, []string{}, false, true, false},
		{"null templates", `{"entities":{"templates":null},"result":"1"}`, []string{"1"}, true, true, false},
		{"numeric id", `{"entities":{},"result":7}`, []string{"7"}, true, true, false},
		{"missing result", `{"entities":{}}`, nil, false, true, false},
		{"templates not object", `{"entities":{"templates":[]},"result":[]}`, nil, false, true, true},
		{"result object", `{"entities":{},"result":{}}`, nil, false, true, true},
		{"not object", `[]`, nil, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Result
			err := json.Unmarshal([]byte(tt.input), &r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(r.IDs, tt.wantIDs) {
				t.Errorf("IDs = %#v, want %#v", r.IDs, tt.wantIDs)
			}
			if r.Single != tt.wantSingle {
				t.Errorf("Single = %v, want %v", r.Single, tt.wantSingle)
			}
			if (r.Entities.Templates == nil) != tt.wantNilMap {
				t.Errorf("Templates nil = %v, want %v", r.Entities.Templates == nil, tt.wantNilMap)
			}
		})
	}
}

func TestDecodeSummaries(t *testing.T) {
	one := `{"id":"1","meta":{"name":"foo"},"labels":[],"status":"Done"}`

	tests := []struct {
		name       string
		payload    string
		wantIDs    []string
		wantSingle bool
		wantErr    bool
	}{
		{"single object", one, []string{"1"}, true, false},
		{"array", `[` + one + `,{"id":"2"}]`, []string{"1", "2"}, false, false},
		{"empty array", `[]`, []string{}, false, false},
		{"wrapped list", `{"templates":[` + one + `]}`, []string{"1"}, false, false},
		{"normalized", `{"entities":{"templates":{"9":{"id":"9"}}},"result":["9"]}`, []string{"9"}, false, false},
		{"object without id", `{"meta":{}}`, nil, false, true},
		{"invalid json", `{"id":`, nil, false, true},
		{"scalar", `"1"`, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSummaries(New(), []byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got.IDs, tt.wantIDs) {
				t.Errorf("IDs = %#v, want %#v", got.IDs, tt.wantIDs)
			}
			if got.Single != tt.wantSingle {
				t.Errorf("Single = %v, want %v", got.Single, tt.wantSingle)
			}
			for _, id := range got.IDs {
				if _, ok := got.Template(id); !ok {
					t.Errorf("entity %s missing", id)
				}
			}
		})
	}
}
