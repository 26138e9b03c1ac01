package interpret

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/kailas-cloud/peoplefinder/internal/domain"
	"github.com/kailas-cloud/peoplefinder/internal/domain/search/filter"
)

// Reasons a model response yields no filter. Both degrade to an empty filter.
var (
	ErrNoJSONBlock   = errors.New("no JSON block in model response")
	ErrMalformedJSON = errors.New("malformed JSON in model response")
)

// Schema keys accepted from the model. Anything else is dropped.
const (
	keyRole       = "role"
	keyLocation   = "location"
	keyExperience = "experience"
	keySkills     = "skills"
)

// HasJSONBlock reports whether text carries a parseable JSON block.
func HasJSONBlock(text string) bool {
	_, err := ParseJSONBlock(text)
	return err == nil
}

// ParseJSONBlock extracts the first delimited JSON object from model text and
// validates it against the filter schema. Unknown keys and wrongly typed values
// are dropped field by field. On a missing block or invalid JSON it returns an
// empty filter with ErrNoJSONBlock or ErrMalformedJSON for the caller to log.
func ParseJSONBlock(text string) (filter.Model, error) {
	body, ok := extractBlock(text)
	if !ok {
		return filter.Model{}, ErrNoJSONBlock
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return filter.Model{}, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	var m filter.Model
	m.Role = stringField(raw[keyRole])
	m.Location = stringField(raw[keyLocation])
	m.Experience = experienceField(raw[keyExperience])
	m.Skills = skillsField(raw[keySkills])
	return m, nil
}

func extractBlock(text string) (string, bool) {
	start := strings.Index(text, domain.ModelBlockStart)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(domain.ModelBlockStart):]
	end := strings.Index(rest, domain.ModelBlockEnd)
	if end < 0 {
		return "", false
	}
	return stripCodeFence(strings.TrimSpace(rest[:end])), true
}

// stripCodeFence removes a Markdown ``` fence some models wrap around JSON.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the info string ("json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func stringField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// experienceRange mirrors the comparator object {"$gte": 5}.
type experienceRange struct {
	GT  *int `mapstructure:"$gt"`
	GTE *int `mapstructure:"$gte"`
	LT  *int `mapstructure:"$lt"`
	LTE *int `mapstructure:"$lte"`
	EQ  *int `mapstructure:"$eq"`
}

func experienceField(v any) *filter.Experience {
	if v == nil {
		return nil
	}

	if obj, ok := v.(map[string]any); ok {
		var r experienceRange
		if err := weakDecode(scalarEntries(obj), &r); err != nil {
			return nil
		}
		if r.EQ != nil {
			e := filter.ExactExperience(*r.EQ)
			return &e
		}
		e, err := filter.NewExperienceRange(r.GT, r.GTE, r.LT, r.LTE)
		if err != nil {
			return nil
		}
		return &e
	}

	if !isScalar(v) {
		return nil
	}
	var years int
	if err := weakDecode(v, &years); err != nil {
		return nil
	}
	e := filter.ExactExperience(years)
	return &e
}

type skillLists struct {
	Any []string `mapstructure:"any"`
	All []string `mapstructure:"all"`
}

func skillsField(v any) *filter.Skills {
	var lists skillLists
	switch t := v.(type) {
	case map[string]any:
		for k, list := range t {
			if items, ok := list.([]any); ok {
				t[k] = scalarItems(items)
			}
		}
		if err := weakDecode(t, &lists); err != nil {
			return nil
		}
	case []any:
		// a bare array reads as "any of"
		if err := weakDecode(scalarItems(t), &lists.Any); err != nil {
			return nil
		}
	default:
		return nil
	}

	s := filter.Skills{Any: lists.Any, All: lists.All}
	if s.IsEmpty() {
		return nil
	}
	return &s
}

// isScalar reports whether a JSON-decoded value is a number or a string.
// Booleans, nulls, arrays and objects are not.
func isScalar(v any) bool {
	switch v.(type) {
	case float64, string:
		return true
	}
	return false
}

// scalarEntries drops object members whose value is not a number or a string.
func scalarEntries(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		if isScalar(v) {
			out[k] = v
		}
	}
	return out
}

// scalarItems drops array elements that are not numbers or strings.
func scalarItems(items []any) []any {
	out := make([]any, 0, len(items))
	for _, v := range items {
		if isScalar(v) {
			out = append(out, v)
		}
	}
	return out
}

// rejectBools stops weak typing from turning true into 1 or "1".
func rejectBools(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.Bool && to.Kind() != reflect.Bool {
		return nil, fmt.Errorf("boolean is not a valid %s", to)
	}
	return data, nil
}

// weakDecode converts JSON-decoded values with string/number coercion ("5" -> 5).
func weakDecode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rejectBools,
		Result:           output,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
