package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/tacogips/tmplstore/internal/template/model"
	"github.com/tidwall/gjson"
)

type resultJSON struct {
	Entities Entities `json:"entities"`
	Result   any      `json:"result"`
}

// MarshalJSON encodes the result as {"entities": ..., "result": id | [ids]}.
func (r Result) MarshalJSON() ([]byte, error) {
	var ids any
	if r.Single {
		ids = r.ID()
	} else if r.IDs == nil {
		ids = []string{}
	} else {
		ids = r.IDs
	}
	return json.Marshal(resultJSON{Entities: r.Entities, Result: ids})
}

// UnmarshalJSON decodes the external normalizer contract. A missing
// "entities.templates" leaves the entity map nil.
func (r *Result) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid normalized result JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("normalized result must be an object")
	}

	var out Result

	if templates := root.Get("entities." + TemplatesKey); templates.Exists() && templates.Type != gjson.Null {
		if !templates.IsObject() {
			return fmt.Errorf("entities.%s must be an object", TemplatesKey)
		}
		if err := json.Unmarshal([]byte(templates.Raw), &out.Entities.Templates); err != nil {
			return fmt.Errorf("decode entities.%s: %w", TemplatesKey, err)
		}
	}

	res := root.Get("result")
	switch {
	case !res.Exists() || res.Type == gjson.Null:
	case res.IsArray():
		out.IDs = make([]string, 0)
		for _, id := range res.Array() {
			out.IDs = append(out.IDs, id.String())
		}
	case res.Type == gjson.String || res.Type == gjson.Number:
		out.IDs = []string{res.String()}
		out.Single = true
	default:
		return fmt.Errorf("result must be an id or a list of ids")
	}

	*r = out
	return nil
}

// DecodeSummaries normalizes a raw JSON payload. Accepted shapes are a single
// template summary object, an array of summaries, an object wrapping the
// array under "templates", or an already normalized result.
func DecodeSummaries(n Normalizer, data []byte) (Result, error) {
	if !gjson.ValidBytes(data) {
		return Result{}, fmt.Errorf("payload is not valid JSON")
	}
	parsed := gjson.ParseBytes(data)

	switch {
	case parsed.IsArray():
		return decodeList(n, []byte(parsed.Raw))
	case parsed.IsObject():
		if parsed.Get("entities").Exists() && parsed.Get("result").Exists() {
			var r Result
			if err := json.Unmarshal(data, &r); err != nil {
				return Result{}, err
			}
			return r, nil
		}
		if list := parsed.Get(TemplatesKey); list.IsArray() {
			return decodeList(n, []byte(list.Raw))
		}
		var s model.TemplateSummary
		if err := json.Unmarshal(data, &s); err != nil {
			return Result{}, fmt.Errorf("decode template summary: %w", err)
		}
		return n.Normalize(s, TemplateSchema)
	default:
		return Result{}, fmt.Errorf("payload must be a JSON object or array")
	}
}

func decodeList(n Normalizer, raw []byte) (Result, error) {
	var list []model.TemplateSummary
	if err := json.Unmarshal(raw, &list); err != nil {
		return Result{}, fmt.Errorf("decode template summaries: %w", err)
	}
	if list == nil {
		list = []model.TemplateSummary{}
	}
	return n.Normalize(list, ArrayOfTemplates)
}
