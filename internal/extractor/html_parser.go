package extractor

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

var blockKinds = map[string]string{
	"p":          models.ParagraphKind,
	"h1":         "heading",
	"h2":         "heading",
	"h3":         "heading",
	"h4":         "heading",
	"h5":         "heading",
	"h6":         "heading",
	"li":         "list-item",
	"blockquote": "blockquote",
	"pre":        "code-block",
}

// Elements whose children are walked for further blocks.
var wrapperTags = map[string]bool{
	"html": true, "body": true, "main": true, "article": true, "section": true,
	"div": true, "header": true, "footer": true, "ul": true, "ol": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "td": true, "th": true,
}

var skippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true, "head": true,
}

// HTMLParser converts rendered page HTML into a content tree.
type HTMLParser struct {
	logger zerolog.Logger
}

// NewHTMLParser creates a new HTML parser
func NewHTMLParser(logger zerolog.Logger) *HTMLParser {
	return &HTMLParser{
		logger: logger.With().Str("component", "HTMLParser").Logger(),
	}
}

// Parse reads an HTML document and returns its blocks in document order.
// Inline content found directly inside wrapper elements is gathered into
// anonymous paragraphs.
func (hp *HTMLParser) Parse(r io.Reader) (models.ContentTree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, common.WrapError(&ParseError{Format: FormatHTML, Err: err}, "failed to read HTML snapshot")
	}

	var tree models.ContentTree
	hp.walkBlocks(doc.Find("body"), &tree)

	hp.logger.Debug().Int("blocks", len(tree)).Msg("Parsed HTML snapshot")
	return tree, nil
}

func (hp *HTMLParser) walkBlocks(sel *goquery.Selection, tree *models.ContentTree) {
	var pending []models.InlineNode
	flush := func() {
		if hasVisibleText(pending) {
			*tree = append(*tree, models.NewParagraph(pending...))
		}
		pending = nil
	}

	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Nodes[0]
		if node.Type == html.ElementNode {
			tag := goquery.NodeName(child)
			switch {
			case skippedTags[tag]:
				return
			case blockKinds[tag] != "":
				flush()
				*tree = append(*tree, hp.newBlock(tag, child))
				return
			case wrapperTags[tag]:
				flush()
				hp.walkBlocks(child, tree)
				return
			}
		}
		if inline := hp.inlineNode(child); inline != nil {
			pending = append(pending, inline)
		}
	})
	flush()
}

func (hp *HTMLParser) newBlock(tag string, sel *goquery.Selection) models.BlockNode {
	block := models.BlockNode{
		Kind:     blockKinds[tag],
		Children: hp.inlineNodes(sel),
	}
	if block.Kind == "heading" {
		block.Attrs = map[string]any{"level": int(tag[1] - '0')}
	}
	return block
}

func (hp *HTMLParser) inlineNodes(sel *goquery.Selection) []models.InlineNode {
	var nodes []models.InlineNode
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if n := hp.inlineNode(child); n != nil {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

func (hp *HTMLParser) inlineNode(sel *goquery.Selection) models.InlineNode {
	node := sel.Nodes[0]
	switch node.Type {
	case html.TextNode:
		if node.Data == "" {
			return nil
		}
		return models.NewText(node.Data)
	case html.ElementNode:
	default:
		return nil
	}

	tag := goquery.NodeName(sel)
	switch {
	case skippedTags[tag]:
		return nil
	case tag == "br":
		return models.NewText("\n")
	case tag == "a":
		return hp.newLink(sel)
	case tag == "img":
		return &models.Container{
			Type:  "image",
			Attrs: map[string]any{"src": sel.AttrOr("src", ""), "alt": sel.AttrOr("alt", "")},
		}
	default:
		return &models.Container{Type: tag, Children: hp.inlineNodes(sel)}
	}
}

func (hp *HTMLParser) newLink(sel *goquery.Selection) *models.Link {
	href := sel.AttrOr("href", "")
	link := &models.Link{
		URL:      href,
		Class:    sel.AttrOr("class", ""),
		Children: hp.inlineNodes(sel),
	}
	if v, ok := sel.Attr("data-external"); ok && v != "false" {
		link.IsExternal = true
	}
	return link
}

func hasVisibleText(nodes []models.InlineNode) bool {
	for _, n := range nodes {
		switch v := n.(type) {
		case *models.TextRun:
			if strings.TrimSpace(v.Text) != "" {
				return true
			}
		case *models.Link:
			return true
		case *models.Container:
			if v.Type == "image" || hasVisibleText(v.Children) {
				return true
			}
		}
	}
	return false
}
