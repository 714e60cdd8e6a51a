package reporter

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/aleister1102/wikidiff/internal/extractor"
	"github.com/aleister1102/wikidiff/internal/models"
)

const (
	insOpenTag  = `<ins style="background:#e6ffe6; text-decoration: none;">`
	delOpenTag  = `<del style="background:#f8d7da;">`
	insCloseTag = "</ins>"
	delCloseTag = "</del>"

	// Word-diff style markers used in text reports
	textAddOpen     = "{+"
	textAddClose    = "+}"
	textRemoveOpen  = "[-"
	textRemoveClose = "-]"
)

var inlineTags = map[string]string{
	"bold":      "strong",
	"strong":    "strong",
	"italic":    "em",
	"em":        "em",
	"code":      "code",
	"underline": "u",
	"strike":    "s",
}

// CreateDiffSummary creates a one-line summary of character counts
func CreateDiffSummary(counts models.CharacterDiff) string {
	if counts.IsZero() {
		return "No textual changes detected."
	}
	return fmt.Sprintf("%d characters added (+), %d characters removed (-).", counts.Added, counts.Removed)
}

// CreateTreeSummary creates a one-line summary of annotated node counts
func CreateTreeSummary(stats models.TreeDiffStats) string {
	if stats.AddedNodes == 0 && stats.RemovedNodes == 0 {
		return "No structural changes detected."
	}
	return fmt.Sprintf("%d nodes added (+), %d nodes removed (-).", stats.AddedNodes, stats.RemovedNodes)
}

// FormatPreviewText renders a preview on one line using {+added+} and [-removed-] markers
func FormatPreviewText(preview *models.Preview) string {
	if preview == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(preview.BeforeContext)
	if preview.HasRemovals {
		b.WriteString(textRemoveOpen + preview.RemovedText + textRemoveClose)
	}
	if preview.HasAdditions {
		b.WriteString(textAddOpen + preview.AddedText + textAddClose)
	}
	b.WriteString(preview.AfterContext)
	return b.String()
}

// FormatTreeText renders an annotated tree one block per line with change markers
func FormatTreeText(tree models.ContentTree) string {
	lines := make([]string, 0, len(tree))
	for _, block := range tree {
		var b strings.Builder
		writeInlinesText(&b, block.Children)
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func writeInlinesText(b *strings.Builder, nodes []models.InlineNode) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *models.TextRun:
			if n == nil {
				continue
			}
			writeMarkedText(b, n.Text, n.Change)
		case *models.Link:
			if n == nil {
				continue
			}
			writeMarkedText(b, extractor.LinkMarker(n), n.Change)
		case *models.Container:
			if n == nil {
				continue
			}
			var inner strings.Builder
			writeInlinesText(&inner, n.Children)
			writeMarkedText(b, inner.String(), n.Change)
		}
	}
}

func writeMarkedText(b *strings.Builder, text string, status models.ChangeStatus) {
	switch status {
	case models.StatusAdded:
		b.WriteString(textAddOpen + text + textAddClose)
	case models.StatusRemoved:
		b.WriteString(textRemoveOpen + text + textRemoveClose)
	default:
		b.WriteString(text)
	}
}

// GenerateTreeHTML renders an annotated tree as escaped HTML, wrapping added
// nodes in <ins> and removed nodes in <del>.
func GenerateTreeHTML(tree models.ContentTree) template.HTML {
	var b strings.Builder
	for _, block := range tree {
		tag := blockTag(block)
		b.WriteString("<" + tag + ">")
		writeInlinesHTML(&b, block.Children)
		b.WriteString("</" + tag + ">\n")
	}
	return template.HTML(b.String())
}

func blockTag(block models.BlockNode) string {
	switch block.Kind {
	case models.ParagraphKind:
		return "p"
	case "heading":
		level := 2
		switch v := block.Attrs["level"].(type) {
		case int:
			level = v
		case float64:
			level = int(v)
		}
		if level < 1 || level > 6 {
			level = 2
		}
		return fmt.Sprintf("h%d", level)
	case "list-item":
		return "li"
	case "blockquote":
		return "blockquote"
	default:
		return "div"
	}
}

func writeInlinesHTML(b *strings.Builder, nodes []models.InlineNode) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *models.TextRun:
			if n == nil {
				continue
			}
			openChange(b, n.Change)
			b.WriteString(strings.ReplaceAll(template.HTMLEscapeString(n.Text), "\n", "<br>"))
			closeChange(b, n.Change)
		case *models.Link:
			if n == nil {
				continue
			}
			openChange(b, n.Change)
			b.WriteString(`<a href="` + safeHref(n.URL) + `"`)
			if n.External() {
				b.WriteString(` class="external-link" rel="noopener"`)
			}
			b.WriteString(">")
			if len(n.Children) == 0 {
				b.WriteString(template.HTMLEscapeString(n.URL))
			}
			writeInlinesHTML(b, n.Children)
			b.WriteString("</a>")
			closeChange(b, n.Change)
		case *models.Container:
			if n == nil {
				continue
			}
			tag, ok := inlineTags[n.Type]
			if !ok {
				tag = "span"
			}
			openChange(b, n.Change)
			b.WriteString("<" + tag + ">")
			writeInlinesHTML(b, n.Children)
			b.WriteString("</" + tag + ">")
			closeChange(b, n.Change)
		}
	}
}

func openChange(b *strings.Builder, status models.ChangeStatus) {
	switch status {
	case models.StatusAdded:
		b.WriteString(insOpenTag)
	case models.StatusRemoved:
		b.WriteString(delOpenTag)
	}
}

func closeChange(b *strings.Builder, status models.ChangeStatus) {
	switch status {
	case models.StatusAdded:
		b.WriteString(insCloseTag)
	case models.StatusRemoved:
		b.WriteString(delCloseTag)
	}
}

// safeHref escapes a link target and neutralises script URLs.
func safeHref(url string) string {
	trimmed := strings.ToLower(strings.TrimSpace(url))
	if strings.HasPrefix(trimmed, "javascript:") || strings.HasPrefix(trimmed, "vbscript:") || strings.HasPrefix(trimmed, "data:") {
		return "#"
	}
	return template.HTMLEscapeString(url)
}
