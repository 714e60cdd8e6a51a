package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

const externalLinkMarker = "→"

// textFieldPattern finds "text" string values in JSON that is too damaged to decode.
var textFieldPattern = regexp.MustCompile(`"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// TextExtractor flattens content trees into plain text. Links are written as
// [label] for wiki links and [label→] for external ones so that adding or
// removing a link shows up in a character diff.
type TextExtractor struct {
	logger zerolog.Logger
	parser *ContentParser
}

// NewTextExtractor creates a new text extractor
func NewTextExtractor(logger zerolog.Logger) *TextExtractor {
	return &TextExtractor{
		logger: logger.With().Str("component", "TextExtractor").Logger(),
		parser: NewContentParser(logger),
	}
}

// ExtractText returns the plain text of a tree, blocks concatenated in order.
func (te *TextExtractor) ExtractText(tree models.ContentTree) string {
	var b strings.Builder
	for _, block := range tree {
		writeInlines(&b, block.Children)
	}
	return b.String()
}

// ExtractBlockText returns the plain text of a single block.
func (te *TextExtractor) ExtractBlockText(block models.BlockNode) string {
	var b strings.Builder
	writeInlines(&b, block.Children)
	return b.String()
}

// ExtractInlineText returns the plain text of inline nodes.
func (te *TextExtractor) ExtractInlineText(nodes []models.InlineNode) string {
	var b strings.Builder
	writeInlines(&b, nodes)
	return b.String()
}

// ExtractTextContent accepts a tree, a block, inline nodes, a JSON or HTML
// string or bytes, plain text, or any value that marshals to tree-shaped JSON.
// It never panics; undecodable input degrades to whatever text can be recovered.
func (te *TextExtractor) ExtractTextContent(input any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			te.logger.Warn().Interface("panic", r).Msg("Recovered while extracting text content")
			text = ""
		}
	}()

	switch v := input.(type) {
	case nil:
		return ""
	case models.ContentTree:
		return te.ExtractText(v)
	case []models.BlockNode:
		return te.ExtractText(v)
	case models.BlockNode:
		return te.ExtractBlockText(v)
	case *models.BlockNode:
		if v == nil {
			return ""
		}
		return te.ExtractBlockText(*v)
	case models.InlineNode:
		return te.ExtractInlineText([]models.InlineNode{v})
	case []models.InlineNode:
		return te.ExtractInlineText(v)
	case string:
		return te.extractFromString(v, true)
	case []byte:
		return te.extractFromString(string(v), true)
	case json.RawMessage:
		return te.extractFromString(string(v), true)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			te.logger.Debug().Err(err).Msg("Unsupported content value, treating as empty")
			return ""
		}
		return te.extractFromString(string(data), false)
	}
}

func (te *TextExtractor) extractFromString(s string, allowUnquote bool) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	// Some stores double-encode the tree as a JSON string.
	if allowUnquote && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
			return te.extractFromString(inner, false)
		}
	}

	switch DetectFormat([]byte(trimmed)) {
	case FormatHTML:
		tree, err := te.parser.ParseHTML(strings.NewReader(trimmed))
		if err != nil {
			te.logger.Debug().Err(err).Msg("HTML content unreadable, treating as literal text")
			return StripControl(s)
		}
		return te.ExtractText(tree)
	case FormatText:
		return StripControl(s)
	}

	tree, err := te.parser.ParseContent(trimmed)
	if err == nil {
		return te.ExtractText(tree)
	}

	salvaged := salvageText(trimmed)
	te.logger.Debug().Err(err).Int("recovered_chars", len(salvaged)).Msg("Falling back to best-effort text recovery")
	return salvaged
}

// salvageText concatenates every "text" string value that can still be read.
func salvageText(raw string) string {
	var b strings.Builder
	for _, m := range textFieldPattern.FindAllStringSubmatch(raw, -1) {
		var value string
		if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &value); err != nil {
			value = m[1]
		}
		b.WriteString(StripControl(value))
	}
	return b.String()
}

func writeInlines(b *strings.Builder, nodes []models.InlineNode) {
	for _, n := range nodes {
		writeInline(b, n)
	}
}

func writeInline(b *strings.Builder, node models.InlineNode) {
	switch n := node.(type) {
	case *models.TextRun:
		if n != nil {
			b.WriteString(StripControl(n.Text))
		}
	case *models.Link:
		if n != nil {
			b.WriteString(LinkMarker(n))
		}
	case *models.Container:
		if n != nil {
			writeInlines(b, n.Children)
		}
	}
}

// LinkLabel returns the visible label of a link, falling back to its URL.
func LinkLabel(link *models.Link) string {
	var b strings.Builder
	writeInlines(&b, link.Children)
	label := b.String()
	if strings.TrimSpace(label) == "" {
		return link.URL
	}
	return label
}

// LinkMarker renders a link the way it appears in extracted text.
func LinkMarker(link *models.Link) string {
	label := LinkLabel(link)
	if link.External() {
		return "[" + label + externalLinkMarker + "]"
	}
	return "[" + label + "]"
}

var defaultExtractor = NewTextExtractor(zerolog.Nop())

// ExtractText flattens a tree using a non-logging extractor.
func ExtractText(tree models.ContentTree) string {
	return defaultExtractor.ExtractText(tree)
}

// ExtractTextContent flattens any supported input using a non-logging extractor.
func ExtractTextContent(input any) string {
	return defaultExtractor.ExtractTextContent(input)
}
