// Package styleguide describes the tone, vocabulary and phrasing used when
// generating summaries, and blends newly analyzed guides into the current one.
package styleguide

import (
	"fmt"
	"math"
	"strings"
)

const (
	MaxKeywords = 15
	MaxPhrases  = 8

	ToneMin = 0
	ToneMax = 100

	// Tone blend weights, in tenths: 70% existing, 30% analyzed.
	existingWeight = 7
	analyzedWeight = 3
)

// Tone settings range over [0, 100].
type Tone struct {
	Formality  int `json:"formality"`
	Warmth     int `json:"warmth"`
	Enthusiasm int `json:"enthusiasm"`
}

// Phrases groups example phrases by where they appear in a summary.
type Phrases struct {
	Openings    []string `json:"openings"`
	Transitions []string `json:"transitions"`
	Emphasis    []string `json:"emphasis"`
	Closings    []string `json:"closings"`
}

type StyleGuide struct {
	Instructions string   `json:"instructions"`
	Tone         Tone     `json:"tone"`
	Keywords     []string `json:"keywords"`
	Phrases      Phrases  `json:"phrases"`
}

func Default() StyleGuide {
	return StyleGuide{
		Instructions: "Write clear, concise summaries in plain language. Lead with decisions and action items.",
		Tone:         Tone{Formality: 50, Warmth: 50, Enthusiasm: 50},
		Keywords:     []string{},
		Phrases: Phrases{
			Openings:    []string{},
			Transitions: []string{},
			Emphasis:    []string{},
			Closings:    []string{},
		},
	}
}

// HasContent reports whether the guide carries anything worth blending.
func (g StyleGuide) HasContent() bool {
	return strings.TrimSpace(g.Instructions) != "" ||
		g.Tone != (Tone{}) ||
		len(g.Keywords) > 0 ||
		len(g.Phrases.Openings) > 0 ||
		len(g.Phrases.Transitions) > 0 ||
		len(g.Phrases.Emphasis) > 0 ||
		len(g.Phrases.Closings) > 0
}

// Validate rejects tone values outside [0, 100].
func (g StyleGuide) Validate() error {
	for name, v := range map[string]int{
		"formality":  g.Tone.Formality,
		"warmth":     g.Tone.Warmth,
		"enthusiasm": g.Tone.Enthusiasm,
	} {
		if v < ToneMin || v > ToneMax {
			return fmt.Errorf("tone %s must be between %d and %d, got %d", name, ToneMin, ToneMax, v)
		}
	}
	return nil
}

// Normalize returns a copy with tone clamped, lists trimmed, deduplicated
// case-insensitively and capped. Nil lists become empty.
func (g StyleGuide) Normalize() StyleGuide {
	return StyleGuide{
		Instructions: strings.TrimSpace(g.Instructions),
		Tone: Tone{
			Formality:  clamp(g.Tone.Formality),
			Warmth:     clamp(g.Tone.Warmth),
			Enthusiasm: clamp(g.Tone.Enthusiasm),
		},
		Keywords: dedupe(MaxKeywords, g.Keywords),
		Phrases: Phrases{
			Openings:    dedupe(MaxPhrases, g.Phrases.Openings),
			Transitions: dedupe(MaxPhrases, g.Phrases.Transitions),
			Emphasis:    dedupe(MaxPhrases, g.Phrases.Emphasis),
			Closings:    dedupe(MaxPhrases, g.Phrases.Closings),
		},
	}
}

// Merge blends analyzed into current and returns a new guide; neither input is
// modified. Instructions are replaced, not appended, so repeated merges do not grow
// the text. When current has no content the analyzed guide is taken as-is.
func Merge(current, analyzed StyleGuide) StyleGuide {
	if !current.HasContent() {
		return analyzed.Normalize()
	}

	return StyleGuide{
		Instructions: strings.TrimSpace(analyzed.Instructions),
		Tone: Tone{
			Formality:  blend(current.Tone.Formality, analyzed.Tone.Formality),
			Warmth:     blend(current.Tone.Warmth, analyzed.Tone.Warmth),
			Enthusiasm: blend(current.Tone.Enthusiasm, analyzed.Tone.Enthusiasm),
		},
		Keywords: dedupe(MaxKeywords, current.Keywords, analyzed.Keywords),
		Phrases: Phrases{
			Openings:    dedupe(MaxPhrases, current.Phrases.Openings, analyzed.Phrases.Openings),
			Transitions: dedupe(MaxPhrases, current.Phrases.Transitions, analyzed.Phrases.Transitions),
			Emphasis:    dedupe(MaxPhrases, current.Phrases.Emphasis, analyzed.Phrases.Emphasis),
			Closings:    dedupe(MaxPhrases, current.Phrases.Closings, analyzed.Phrases.Closings),
		},
	}
}

func blend(current, analyzed int) int {
	return clamp(int(math.Round(float64(current*existingWeight+analyzed*analyzedWeight) / 10)))
}

func clamp(v int) int {
	return min(max(v, ToneMin), ToneMax)
}

// dedupe concatenates lists and keeps the first spelling of each case-insensitive
// value, up to limit entries.
func dedupe(limit int, lists ...[]string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if _, ok := seen[key]; ok {
				continue
			}
			if len(out) == limit {
				return out
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
