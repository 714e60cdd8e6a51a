package differ

import (
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/aleister1102/wikidiff/internal/extractor"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

// Engine composes text extraction, the LCS differ, the preview generator and
// the tree differ. It holds no mutable state and is safe for concurrent use.
// No diff method returns an error or panics; failures degrade to empty results.
type Engine struct {
	logger         zerolog.Logger
	extractor      *extractor.TextExtractor
	parser         *extractor.ContentParser
	lcs            *LCSDiffer
	preview        *PreviewGenerator
	tree           *TreeDiffer
	minTextLength  int
	maxConcurrency int
}

// GenerateTextDiff counts the characters added and removed between two
// revisions and builds a preview of the change. Either side may be a
// ContentTree, a JSON string or bytes, or plain text.
func (e *Engine) GenerateTextDiff(current, previous any) (result models.DiffResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("Recovered while generating text diff")
			result = models.DiffResult{}
		}
	}()

	if isMissing(current) {
		return models.DiffResult{}
	}

	currentText := e.extractor.ExtractTextContent(current)
	previousText := ""
	if !isMissing(previous) {
		previousText = e.extractor.ExtractTextContent(previous)
	}

	if previousText == "" {
		if currentText == "" {
			return models.DiffResult{}
		}
		return models.DiffResult{
			Added:   utf8.RuneCountInString(currentText),
			Preview: e.preview.NewDocumentPreview(currentText),
		}
	}

	if utf8.RuneCountInString(currentText) < e.minTextLength && utf8.RuneCountInString(previousText) < e.minTextLength {
		e.logger.Debug().Msg("Both revisions too short to diff")
		return models.DiffResult{}
	}

	counts := e.lcs.CalculateCharacterDiff(previousText, currentText)
	if counts.IsZero() {
		return models.DiffResult{}
	}
	return models.NewDiffResult(counts, e.preview.GeneratePreview(previousText, currentText))
}

// CalculateCharacterDiff counts the characters added and removed going from oldText to newText
func (e *Engine) CalculateCharacterDiff(oldText, newText string) models.CharacterDiff {
	return e.lcs.CalculateCharacterDiff(oldText, newText)
}

// GeneratePreview builds a preview of the change between two plain texts
func (e *Engine) GeneratePreview(oldText, newText string) *models.Preview {
	return e.preview.GeneratePreview(oldText, newText)
}

// GenerateDiffContent returns the current revision's tree annotated with the
// nodes added since previous and the nodes it no longer has. When previous
// cannot be read the current tree is returned unannotated.
func (e *Engine) GenerateDiffContent(current, previous any) (tree models.ContentTree) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("Recovered while generating diff content")
			tree = nil
		}
	}()

	currentTree, err := e.toTree(current)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Current revision is not a readable content tree")
		return nil
	}
	previousTree, err := e.toTree(previous)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Previous revision is not a readable content tree, skipping annotation")
		return currentTree.Clone()
	}
	return e.tree.Annotate(currentTree, previousTree)
}

// ExtractTextContent flattens any supported input to plain text
func (e *Engine) ExtractTextContent(input any) string {
	return e.extractor.ExtractTextContent(input)
}

// toTree reads a revision into a content tree. Strings and bytes are sniffed
// as JSON, HTML or plain text.
func (e *Engine) toTree(input any) (models.ContentTree, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case models.ContentTree:
		return v, nil
	case []models.BlockNode:
		return v, nil
	case *models.BlockNode:
		if v == nil {
			return nil, nil
		}
		return models.ContentTree{*v}, nil
	case models.BlockNode:
		return models.ContentTree{v}, nil
	case string:
		return e.parser.ParseAuto([]byte(v), extractor.FormatAuto)
	case []byte:
		return e.parser.ParseAuto(v, extractor.FormatAuto)
	case json.RawMessage:
		return e.parser.ParseContent(string(v))
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return e.parser.ParseContent(string(data))
	}
}

// isMissing reports whether a revision is absent: nil, or an empty string or byte slice.
func isMissing(input any) bool {
	switch v := input.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []byte:
		return len(strings.TrimSpace(string(v))) == 0
	case json.RawMessage:
		return len(strings.TrimSpace(string(v))) == 0
	case *models.BlockNode:
		return v == nil
	}
	return false
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns a shared engine with default configuration and no logging
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		engine, err := NewEngineBuilder(zerolog.Nop()).Build()
		if err != nil {
			panic(err)
		}
		defaultEngine = engine
	})
	return defaultEngine
}

// GenerateTextDiff diffs two revisions with the default engine
func GenerateTextDiff(current, previous any) models.DiffResult {
	return DefaultEngine().GenerateTextDiff(current, previous)
}

// CalculateCharacterDiff counts added and removed characters with the default engine
func CalculateCharacterDiff(oldText, newText string) models.CharacterDiff {
	return DefaultEngine().CalculateCharacterDiff(oldText, newText)
}

// GeneratePreview builds a change preview with the default engine
func GeneratePreview(oldText, newText string) *models.Preview {
	return DefaultEngine().GeneratePreview(oldText, newText)
}

// GenerateDiffContent annotates current against previous with the default engine
func GenerateDiffContent(current, previous any) models.ContentTree {
	return DefaultEngine().GenerateDiffContent(current, previous)
}

// ExtractTextContent flattens a revision to plain text with the default engine
func ExtractTextContent(input any) string {
	return DefaultEngine().ExtractTextContent(input)
}
