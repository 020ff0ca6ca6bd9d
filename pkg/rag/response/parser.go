package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"transcript-assistant-be/pkg/facts"
	"transcript-assistant-be/pkg/styleguide"
)

// ErrMalformedResponse means the model did not return the JSON it was asked for.
var ErrMalformedResponse = errors.New("malformed model response")

// ExtractJSON isolates the outermost JSON object in raw model output, tolerating
// code fences and chatter around it.
func ExtractJSON(raw string) ([]byte, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	return candidate, nil
}

// ParseFacts decodes a fact extraction answer.
func ParseFacts(raw string) (facts.ExtractedFacts, error) {
	data, err := ExtractJSON(raw)
	if err != nil {
		return facts.ExtractedFacts{}, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return facts.ExtractedFacts{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return facts.FromMap(obj), nil
}

type analyzedStyle struct {
	Instructions string `json:"instructions"`
	Tone         struct {
		Formality  float64 `json:"formality"`
		Warmth     float64 `json:"warmth"`
		Enthusiasm float64 `json:"enthusiasm"`
	} `json:"tone"`
	Keywords []string           `json:"keywords"`
	Phrases  styleguide.Phrases `json:"phrases"`
}

// ParseStyleGuide decodes a style analysis answer into a normalized guide.
// Missing fields decode to zero values.
func ParseStyleGuide(raw string) (styleguide.StyleGuide, error) {
	data, err := ExtractJSON(raw)
	if err != nil {
		return styleguide.StyleGuide{}, err
	}

	var a analyzedStyle
	if err := json.Unmarshal(data, &a); err != nil {
		return styleguide.StyleGuide{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return styleguide.StyleGuide{
		Instructions: a.Instructions,
		Tone: styleguide.Tone{
			Formality:  int(math.Round(a.Tone.Formality)),
			Warmth:     int(math.Round(a.Tone.Warmth)),
			Enthusiasm: int(math.Round(a.Tone.Enthusiasm)),
		},
		Keywords: a.Keywords,
		Phrases:  a.Phrases,
	}.Normalize(), nil
}
