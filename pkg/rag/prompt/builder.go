package prompt

import (
	"fmt"
	"strings"

	"transcript-assistant-be/pkg/facts"
	"transcript-assistant-be/pkg/llm"
	"transcript-assistant-be/pkg/styleguide"
)

// Passage is a retrieved chunk labelled with the document it came from.
type Passage struct {
	DocumentTitle string
	ChunkIndex    int
	Text          string
}

// ChatBuilder assembles the messages for a retrieval-augmented answer.
type ChatBuilder struct {
	question string
	passages []Passage
	history  []llm.Message
}

func NewChatBuilder(question string, passages []Passage, history []llm.Message) *ChatBuilder {
	return &ChatBuilder{
		question: question,
		passages: passages,
		history:  history,
	}
}

// Build returns the system message carrying the reference material, then the
// prior turns, then the question as the final user message.
func (b *ChatBuilder) Build() []llm.Message {
	var system strings.Builder

	system.WriteString("<task>\n")
	system.WriteString("You are an assistant answering questions about the user's transcripts.\n")
	system.WriteString("Base your answer strictly on the reference material. If it does not contain the answer, say so honestly.\n")
	system.WriteString("When you use a passage, cite it as [n] using its number.\n")
	system.WriteString("</task>\n\n")

	system.WriteString("<reference_material>\n")
	if len(b.passages) == 0 {
		system.WriteString("(no relevant passages were found)\n")
	}
	for i, p := range b.passages {
		fmt.Fprintf(&system, "[%d] %s (part %d)\n%s\n\n", i+1, p.DocumentTitle, p.ChunkIndex+1, p.Text)
	}
	system.WriteString("</reference_material>")

	messages := make([]llm.Message, 0, len(b.history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system.String()})
	for _, m := range b.history {
		// Only the client's own turns are replayed.
		if m.Role == llm.RoleSystem || strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, m)
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: b.question})
	return messages
}

// FactExtraction asks for one JSON object describing a single chunk.
func FactExtraction(chunkText string, index, total int) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	fmt.Fprintf(&prompt, "Extract structured facts from part %d of %d of a transcript.\n", index+1, total)
	prompt.WriteString("Only include facts stated in this part. Use short, self-contained phrases.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object and nothing else:\n")
	fmt.Fprintf(&prompt, "{\"%s\": string", facts.FieldTitle)
	for _, field := range facts.ListFields {
		fmt.Fprintf(&prompt, ", \"%s\": [string]", field)
	}
	prompt.WriteString("}\n")
	prompt.WriteString("Use an empty string or an empty array when nothing applies.\n")
	prompt.WriteString("</output_format>\n\n")

	prompt.WriteString("<transcript_part>\n")
	prompt.WriteString(chunkText)
	prompt.WriteString("\n</transcript_part>")

	return prompt.String()
}

// Summary asks for the document summary from merged facts, shaped by the guide.
func Summary(documentTitle string, merged facts.ExtractedFacts, guide styleguide.StyleGuide) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	fmt.Fprintf(&prompt, "Write a summary of the transcript %q from the extracted facts below.\n", documentTitle)
	prompt.WriteString("Do not invent facts that are not listed.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<facts>\n")
	if title := merged.Scalar(facts.FieldTitle); title != "" {
		fmt.Fprintf(&prompt, "Title: %s\n", title)
	}
	for _, field := range facts.ListFields {
		values := merged.List(field)
		if len(values) == 0 {
			continue
		}
		fmt.Fprintf(&prompt, "%s:\n", strings.ReplaceAll(field, "_", " "))
		for _, v := range values {
			fmt.Fprintf(&prompt, "- %s\n", v)
		}
	}
	prompt.WriteString("</facts>\n\n")

	writeStyleGuide(&prompt, guide)

	prompt.WriteString("Now write the summary:")
	return prompt.String()
}

// StyleAnalysis asks the model to describe the style of a sample as JSON.
func StyleAnalysis(sample string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("Analyze the writing style of the sample below so that future summaries can imitate it.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object and nothing else:\n")
	prompt.WriteString(`{"instructions": string, "tone": {"formality": 0-100, "warmth": 0-100, "enthusiasm": 0-100}, `)
	fmt.Fprintf(&prompt, `"keywords": [string] (at most %d), `, styleguide.MaxKeywords)
	fmt.Fprintf(&prompt, `"phrases": {"openings": [string], "transitions": [string], "emphasis": [string], "closings": [string]} (at most %d each)}`, styleguide.MaxPhrases)
	prompt.WriteString("\n</output_format>\n\n")

	prompt.WriteString("<sample>\n")
	prompt.WriteString(sample)
	prompt.WriteString("\n</sample>")

	return prompt.String()
}

func writeStyleGuide(prompt *strings.Builder, guide styleguide.StyleGuide) {
	prompt.WriteString("<style_guide>\n")
	if guide.Instructions != "" {
		prompt.WriteString(guide.Instructions)
		prompt.WriteString("\n")
	}
	fmt.Fprintf(prompt, "Formality: %d/100. Warmth: %d/100. Enthusiasm: %d/100.\n",
		guide.Tone.Formality, guide.Tone.Warmth, guide.Tone.Enthusiasm)
	if len(guide.Keywords) > 0 {
		fmt.Fprintf(prompt, "Prefer this vocabulary: %s.\n", strings.Join(guide.Keywords, ", "))
	}
	writePhrases(prompt, "Opening phrases", guide.Phrases.Openings)
	writePhrases(prompt, "Transition phrases", guide.Phrases.Transitions)
	writePhrases(prompt, "Emphasis phrases", guide.Phrases.Emphasis)
	writePhrases(prompt, "Closing phrases", guide.Phrases.Closings)
	prompt.WriteString("</style_guide>\n\n")
}

func writePhrases(prompt *strings.Builder, label string, phrases []string) {
	if len(phrases) == 0 {
		return
	}
	fmt.Fprintf(prompt, "%s: %s\n", label, strings.Join(phrases, " | "))
}
