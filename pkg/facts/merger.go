// Package facts merges structured extraction results produced per chunk into a
// single document-level record.
package facts

import (
	"fmt"
	"slices"
	"strings"
)

// Well-known fields requested from the extraction prompt.
const (
	FieldTitle        = "title"
	FieldTopics       = "topics"
	FieldTakeaways    = "takeaways"
	FieldActionItems  = "action_items"
	FieldDecisions    = "decisions"
	FieldParticipants = "participants"
	FieldQuestions    = "questions"
)

// ListFields are the array fields the extraction prompt asks for, in display order.
var ListFields = []string{
	FieldTopics,
	FieldTakeaways,
	FieldActionItems,
	FieldDecisions,
	FieldParticipants,
	FieldQuestions,
}

// ExtractedFacts holds named string-array fields and named scalar fields.
type ExtractedFacts struct {
	Scalars map[string]string   `json:"scalars,omitempty"`
	Lists   map[string][]string `json:"lists,omitempty"`
}

// List returns the values of a list field, or nil.
func (f ExtractedFacts) List(field string) []string {
	return f.Lists[field]
}

// Scalar returns the value of a scalar field, or "".
func (f ExtractedFacts) Scalar(field string) string {
	return f.Scalars[field]
}

func (f ExtractedFacts) IsEmpty() bool {
	for _, v := range f.Scalars {
		if v != "" {
			return false
		}
	}
	for _, v := range f.Lists {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Merge combines per-chunk results given in chunk order. List fields are
// concatenated and later exact duplicates dropped; scalar fields keep the first
// non-empty value.
func Merge(chunks []ExtractedFacts) ExtractedFacts {
	merged := ExtractedFacts{
		Scalars: make(map[string]string),
		Lists:   make(map[string][]string),
	}
	seen := make(map[string]map[string]struct{})

	for _, c := range chunks {
		for _, field := range sortedKeys(c.Scalars) {
			value := c.Scalars[field]
			if value == "" {
				continue
			}
			if _, ok := merged.Scalars[field]; !ok {
				merged.Scalars[field] = value
			}
		}

		for _, field := range sortedKeys(c.Lists) {
			fieldSeen, ok := seen[field]
			if !ok {
				fieldSeen = make(map[string]struct{})
				seen[field] = fieldSeen
			}
			for _, value := range c.Lists[field] {
				if value == "" {
					continue
				}
				if _, dup := fieldSeen[value]; dup {
					continue
				}
				fieldSeen[value] = struct{}{}
				merged.Lists[field] = append(merged.Lists[field], value)
			}
		}
	}

	return merged
}

// FromMap converts a decoded JSON object into ExtractedFacts. Strings become
// scalars, arrays become lists of their string elements; other values are
// formatted when scalar and ignored when nested.
func FromMap(raw map[string]any) ExtractedFacts {
	f := ExtractedFacts{
		Scalars: make(map[string]string),
		Lists:   make(map[string][]string),
	}

	for key, value := range raw {
		field := normalizeField(key)
		switch v := value.(type) {
		case nil:
		case string:
			f.Scalars[field] = strings.TrimSpace(v)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						items = append(items, s)
					}
				}
			}
			f.Lists[field] = items
		case []string:
			f.Lists[field] = slices.Clone(v)
		case map[string]any:
		default:
			f.Scalars[field] = fmt.Sprint(v)
		}
	}

	return f
}

func normalizeField(key string) string {
	key = strings.TrimSpace(strings.ToLower(key))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
