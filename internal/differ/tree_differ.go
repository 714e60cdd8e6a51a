package differ

import (
	"strings"

	"github.com/aleister1102/wikidiff/internal/extractor"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
)

// TreeDiffer annotates the current revision's tree with added and removed
// nodes so both revisions can be rendered in one pass.
//
// Paragraphs are reconciled by position. Text runs are matched by substring
// membership against the other revision's paragraph text, which suits
// appends, sentence edits and link changes but is not a minimal edit script.
type TreeDiffer struct {
	logger    zerolog.Logger
	extractor *extractor.TextExtractor
}

// NewTreeDiffer creates a new structural tree differ
func NewTreeDiffer(logger zerolog.Logger) *TreeDiffer {
	return &TreeDiffer{
		logger:    logger.With().Str("component", "TreeDiffer").Logger(),
		extractor: extractor.NewTextExtractor(logger),
	}
}

// Annotate returns a copy of current with change flags set. Neither input is
// modified. If annotation fails current is returned unannotated.
func (td *TreeDiffer) Annotate(current, previous models.ContentTree) (annotated models.ContentTree) {
	defer func() {
		if r := recover(); r != nil {
			td.logger.Warn().Interface("panic", r).Msg("Recovered while annotating content tree")
			annotated = current
		}
	}()

	out := current.Clone()
	paired := min(len(out), len(previous))

	for i := 0; i < paired; i++ {
		if out[i].IsParagraph() && previous[i].IsParagraph() {
			out[i].Children = td.annotateParagraph(out[i].Children, previous[i].Children)
		}
	}

	for i := paired; i < len(out); i++ {
		markTextRuns(out[i].Children, models.StatusAdded)
	}

	for i := paired; i < len(previous); i++ {
		removedBlock := previous[i].Clone()
		markTextRuns(removedBlock.Children, models.StatusRemoved)
		out = append(out, removedBlock)
	}

	return out
}

// annotateParagraph flags the children of a current paragraph (already a
// private copy) and appends clones of what only the previous paragraph had.
func (td *TreeDiffer) annotateParagraph(current, previous []models.InlineNode) []models.InlineNode {
	currentLinks := collectLinks(current)
	previousLinks := collectLinks(previous)

	var spliced []models.InlineNode

	for _, link := range currentLinks {
		if !containsLink(previousLinks, link) {
			markSubtree(link, models.StatusAdded)
		}
	}
	for _, link := range previousLinks {
		if !containsLink(currentLinks, link) {
			removed := link.CloneInline()
			markSubtree(removed, models.StatusRemoved)
			spliced = append(spliced, removed)
		}
	}

	oldText := td.extractor.ExtractInlineText(previous)
	newText := td.extractor.ExtractInlineText(current)
	if oldText != newText {
		for _, run := range collectTextRuns(current) {
			if run.Change == models.StatusUnchanged && run.Text != "" && !strings.Contains(oldText, extractor.StripControl(run.Text)) {
				run.Change = models.StatusAdded
			}
		}
		for _, run := range collectTextRuns(previous) {
			if run.Text != "" && !strings.Contains(newText, extractor.StripControl(run.Text)) {
				removed := run.CloneInline().(*models.TextRun)
				removed.Change = models.StatusRemoved
				spliced = append(spliced, removed)
			}
		}
	}

	return append(current, spliced...)
}

// sameLink reports whether b is the same link as a. External links match on
// URL alone; wiki links must also keep their label.
func sameLink(a, b *models.Link) bool {
	if a.URL != b.URL {
		return false
	}
	if a.External() {
		return true
	}
	return extractor.LinkLabel(a) == extractor.LinkLabel(b)
}

func containsLink(links []*models.Link, link *models.Link) bool {
	for _, candidate := range links {
		if sameLink(link, candidate) {
			return true
		}
	}
	return false
}

// collectLinks returns the links of a paragraph, descending into formatting
// containers such as a bold span wrapping a link.
func collectLinks(nodes []models.InlineNode) []*models.Link {
	var links []*models.Link
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.Link:
			if v != nil {
				links = append(links, v)
			}
		case *models.Container:
			if v != nil {
				links = append(links, collectLinks(v.Children)...)
			}
		}
	}
	return links
}

// collectTextRuns returns text runs outside links, descending into containers.
// Link labels are reconciled with their links.
func collectTextRuns(nodes []models.InlineNode) []*models.TextRun {
	var runs []*models.TextRun
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.TextRun:
			if v != nil {
				runs = append(runs, v)
			}
		case *models.Container:
			if v != nil {
				runs = append(runs, collectTextRuns(v.Children)...)
			}
		}
	}
	return runs
}

// markSubtree flags a node and all of its descendants.
func markSubtree(node models.InlineNode, status models.ChangeStatus) {
	switch v := node.(type) {
	case *models.TextRun:
		if v != nil {
			v.Change = status
		}
	case *models.Link:
		if v != nil {
			v.Change = status
			for _, c := range v.Children {
				markSubtree(c, status)
			}
		}
	case *models.Container:
		if v != nil {
			v.Change = status
			for _, c := range v.Children {
				markSubtree(c, status)
			}
		}
	}
}

// markTextRuns flags every text run under nodes, including link labels.
func markTextRuns(nodes []models.InlineNode, status models.ChangeStatus) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.TextRun:
			if v != nil {
				v.Change = status
			}
		case *models.Link:
			if v != nil {
				markTextRuns(v.Children, status)
			}
		case *models.Container:
			if v != nil {
				markTextRuns(v.Children, status)
			}
		}
	}
}

// CountAnnotations counts flagged text runs and links in an annotated tree
func CountAnnotations(tree models.ContentTree) models.TreeDiffStats {
	var stats models.TreeDiffStats
	for _, block := range tree {
		countInlines(block.Children, &stats)
	}
	return stats
}

func countInlines(nodes []models.InlineNode, stats *models.TreeDiffStats) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.TextRun:
			if v != nil {
				countStatus(v.Change, stats)
			}
		case *models.Link:
			if v != nil {
				countStatus(v.Change, stats)
				countInlines(v.Children, stats)
			}
		case *models.Container:
			if v != nil {
				countInlines(v.Children, stats)
			}
		}
	}
}

func countStatus(status models.ChangeStatus, stats *models.TreeDiffStats) {
	switch status {
	case models.StatusAdded:
		stats.AddedNodes++
	case models.StatusRemoved:
		stats.RemovedNodes++
	}
}
