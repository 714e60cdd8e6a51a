package extractor

import (
	"encoding/json"
	"testing"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func sampleTree() models.ContentTree {
	return models.ContentTree{
		models.NewParagraph(
			models.NewText("Visit "),
			models.NewLink("/pages/home", "Home"),
			models.NewText(" or "),
			&models.Link{URL: "https://x.com", Children: []models.InlineNode{models.NewText("X")}},
		),
		{Kind: "heading", Children: []models.InlineNode{
			&models.Container{Type: "bold", Children: []models.InlineNode{models.NewText("Title")}},
		}},
	}
}

func TestTextExtractor_ExtractText(t *testing.T) {
	te := NewTextExtractor(zerolog.Nop())

	text := te.ExtractText(sampleTree())

	assert.Equal(t, "Visit [Home] or [X→]Title", text)
}

func TestTextExtractor_LinkMarkers(t *testing.T) {
	text := ExtractText(sampleTree())

	assert.Contains(t, text, "[Home]")
	assert.Contains(t, text, "[X→]")
}

func TestTextExtractor_Deterministic(t *testing.T) {
	tree := sampleTree()
	assert.Equal(t, ExtractText(tree), ExtractText(tree))
	assert.Equal(t, ExtractTextContent(tree), ExtractTextContent(tree))
}

func TestLinkLabel_FallsBackToURL(t *testing.T) {
	tests := []struct {
		name     string
		link     *models.Link
		expected string
	}{
		{name: "no children", link: &models.Link{URL: "/pages/empty"}, expected: "[/pages/empty]"},
		{name: "blank label", link: models.NewLink("/pages/blank", "  "), expected: "[/pages/blank]"},
		{name: "external class", link: &models.Link{URL: "/out", Class: "external-link"}, expected: "[/out→]"},
		{name: "nested label", link: &models.Link{URL: "/n", Children: []models.InlineNode{
			&models.Container{Type: "em", Children: []models.InlineNode{models.NewText("deep")}},
		}}, expected: "[deep]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LinkMarker(tt.link))
		})
	}
}

func TestTextExtractor_ExtractTextContent_Inputs(t *testing.T) {
	tree := sampleTree()
	data, err := json.Marshal(tree)
	assert.NoError(t, err)

	var generic []any
	assert.NoError(t, json.Unmarshal(data, &generic))

	doubleEncoded, err := json.Marshal(string(data))
	assert.NoError(t, err)

	expected := "Visit [Home] or [X→]Title"
	block := tree[0]

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "tree", input: tree, expected: expected},
		{name: "block slice", input: []models.BlockNode(tree), expected: expected},
		{name: "block pointer", input: &block, expected: "Visit [Home] or [X→]"},
		{name: "nil block pointer", input: (*models.BlockNode)(nil), expected: ""},
		{name: "inline node", input: models.InlineNode(models.NewLink("/a", "A")), expected: "[A]"},
		{name: "json string", input: string(data), expected: expected},
		{name: "json bytes", input: data, expected: expected},
		{name: "raw message", input: json.RawMessage(data), expected: expected},
		{name: "double encoded", input: string(doubleEncoded), expected: expected},
		{name: "generic decoded json", input: generic, expected: expected},
		{name: "plain text", input: "just words", expected: "just words"},
		{name: "plain text with control chars", input: "a\x00b\x07c\nd", expected: "abc\nd"},
		{name: "empty string", input: "   ", expected: ""},
		{name: "html string", input: `<p>Hello <a href="/pages/A">A</a></p>`, expected: "Hello [A]"},
		{name: "html bytes", input: []byte(`<p>Hello <a href="https://go.dev">Go</a></p>`), expected: "Hello [Go→]"},
		{name: "invalid utf8 in text run", input: models.ContentTree{models.NewParagraph(models.NewText("a\xffb"))}, expected: "ab"},
		{name: "invalid utf8 in plain text", input: "a\xffb", expected: "ab"},
	}

	te := NewTextExtractor(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, te.ExtractTextContent(tt.input))
		})
	}
}

func TestTextExtractor_MalformedJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw newline inside string",
			input:    "[{\"type\":\"paragraph\",\"children\":[{\"text\":\"line one\nline two\"}]}]",
			expected: "line one\nline two",
		},
		{
			name:     "invalid escape",
			input:    `[{"type":"paragraph","children":[{"text":"C:\path"}]}]`,
			expected: `C:\path`,
		},
		{
			name:     "truncated document salvages text fields",
			input:    `[{"type":"paragraph","children":[{"text":"kept"},{"text":"also kept"}`,
			expected: "keptalso kept",
		},
		{
			name:     "garbage with no text",
			input:    `{"invalid json`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, ExtractTextContent(tt.input))
			})
		})
	}
}

func TestTextExtractor_NilInlineDoesNotPanic(t *testing.T) {
	tree := models.ContentTree{models.NewParagraph((*models.TextRun)(nil))}

	assert.NotPanics(t, func() {
		assert.Equal(t, "", ExtractTextContent(tree))
	})
}
