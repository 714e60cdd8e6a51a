package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

// Format identifies how a stored snapshot is encoded.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	case "text", "txt", "plain":
		return FormatText, nil
	default:
		return "", common.NewValidationError("format", name, "unsupported snapshot format")
	}
}

// ParseError reports a snapshot that could not be decoded even after sanitization.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s content: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ContentParser turns stored snapshots into content trees.
type ContentParser struct {
	logger    zerolog.Logger
	sanitizer *JSONSanitizer
	html      *HTMLParser
}

// NewContentParser creates a new content parser
func NewContentParser(logger zerolog.Logger) *ContentParser {
	return &ContentParser{
		logger:    logger.With().Str("component", "ContentParser").Logger(),
		sanitizer: NewJSONSanitizer(),
		html:      NewHTMLParser(logger),
	}
}

// ParseContent decodes a JSON-encoded content tree. The raw input is tried
// as-is first, then again after sanitization.
func (cp *ContentParser) ParseContent(raw string) (models.ContentTree, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var tree models.ContentTree
	firstErr := json.Unmarshal([]byte(raw), &tree)
	if firstErr == nil {
		return tree, nil
	}

	sanitized := cp.sanitizer.Sanitize(raw)
	tree = nil
	if err := json.Unmarshal([]byte(sanitized), &tree); err != nil {
		cp.logger.Debug().Err(err).Int("length", len(raw)).Msg("Content JSON is malformed even after sanitization")
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}

	cp.logger.Debug().AnErr("original_error", firstErr).Msg("Content JSON parsed after sanitization")
	return tree, nil
}

// ParseHTML converts an HTML export of a page into a content tree.
func (cp *ContentParser) ParseHTML(r io.Reader) (models.ContentTree, error) {
	return cp.html.Parse(r)
}

// ParseText wraps plain text in paragraphs, one per non-empty line.
func (cp *ContentParser) ParseText(text string) models.ContentTree {
	text = StripControl(text)
	var tree models.ContentTree
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tree = append(tree, models.NewParagraph(models.NewText(line)))
	}
	return tree
}

// ParseAuto decodes data using format, sniffing the encoding when format is FormatAuto.
func (cp *ContentParser) ParseAuto(data []byte, format Format) (models.ContentTree, error) {
	if format == FormatAuto {
		format = DetectFormat(data)
	}

	switch format {
	case FormatJSON:
		return cp.ParseContent(string(data))
	case FormatHTML:
		return cp.ParseHTML(bytes.NewReader(data))
	case FormatText:
		return cp.ParseText(string(data)), nil
	default:
		return nil, common.WrapErrorf(common.ErrUnsupportedFormat, "cannot parse %q", format)
	}
}

// DetectFormat guesses the snapshot encoding from its first significant character.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatText
	}
	switch trimmed[0] {
	case '[', '{':
		return FormatJSON
	case '<':
		return FormatHTML
	default:
		return FormatText
	}
}
