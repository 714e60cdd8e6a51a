package models

import "strings"

// ParagraphKind is the only block kind the structural differ descends into.
const ParagraphKind = "paragraph"

// ChangeStatus marks a node of an annotated tree.
type ChangeStatus int

const (
	// StatusUnchanged indicates a node present in both revisions.
	StatusUnchanged ChangeStatus = iota
	// StatusAdded indicates a node that only exists in the current revision.
	StatusAdded
	// StatusRemoved indicates a node spliced in from the previous revision.
	StatusRemoved
)

// String returns the lowercase name used in rendered output.
func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// ContentTree is an ordered sequence of block nodes making up one page revision.
type ContentTree []BlockNode

// BlockNode is a structural unit of a page, e.g. a paragraph or heading.
type BlockNode struct {
	Kind     string
	Children []InlineNode
	Attrs    map[string]any
}

// IsParagraph reports whether the block is a paragraph.
func (b BlockNode) IsParagraph() bool {
	return b.Kind == ParagraphKind
}

// Clone returns a deep copy of the block.
func (b BlockNode) Clone() BlockNode {
	return BlockNode{
		Kind:     b.Kind,
		Children: CloneInlines(b.Children),
		Attrs:    cloneAttrs(b.Attrs),
	}
}

// Clone returns a deep copy of the tree. A nil tree stays nil.
func (t ContentTree) Clone() ContentTree {
	if t == nil {
		return nil
	}
	out := make(ContentTree, len(t))
	for i, b := range t {
		out[i] = b.Clone()
	}
	return out
}

// InlineNode is the closed set of nodes that may appear inside a block:
// *TextRun, *Link and *Container.
type InlineNode interface {
	// Status reports the annotation carried by the node.
	Status() ChangeStatus
	// CloneInline returns a deep copy of the node.
	CloneInline() InlineNode

	inlineNode()
}

// TextRun is a run of plain text, optionally carrying formatting marks.
type TextRun struct {
	Text   string
	Marks  []string
	Change ChangeStatus
}

// Link is a hyperlink whose visible label is given by its children.
type Link struct {
	URL        string
	IsExternal bool
	Class      string
	Children   []InlineNode
	Change     ChangeStatus
}

// Container is any other inline node holding children (formatting spans,
// mentions, unknown editor nodes).
type Container struct {
	Type     string
	Children []InlineNode
	Attrs    map[string]any
	Change   ChangeStatus
}

func (*TextRun) inlineNode()   {}
func (*Link) inlineNode()      {}
func (*Container) inlineNode() {}

func (n *TextRun) Status() ChangeStatus   { return n.Change }
func (n *Link) Status() ChangeStatus      { return n.Change }
func (n *Container) Status() ChangeStatus { return n.Change }

func (n *TextRun) CloneInline() InlineNode {
	c := *n
	if n.Marks != nil {
		c.Marks = append([]string(nil), n.Marks...)
	}
	return &c
}

func (n *Link) CloneInline() InlineNode {
	c := *n
	c.Children = CloneInlines(n.Children)
	return &c
}

func (n *Container) CloneInline() InlineNode {
	c := *n
	c.Children = CloneInlines(n.Children)
	c.Attrs = cloneAttrs(n.Attrs)
	return &c
}

// External reports whether the link points outside the wiki: explicitly
// flagged, classed as an external link, or an absolute http(s) URL.
func (n *Link) External() bool {
	if n.IsExternal {
		return true
	}
	if n.Class != "" {
		for _, class := range strings.Fields(n.Class) {
			if class == "external-link" || class == "external" {
				return true
			}
		}
	}
	url := strings.ToLower(strings.TrimSpace(n.URL))
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

// CloneInlines deep-copies a slice of inline nodes, skipping nil entries,
// including typed nil pointers.
func CloneInlines(nodes []InlineNode) []InlineNode {
	if nodes == nil {
		return nil
	}
	out := make([]InlineNode, 0, len(nodes))
	for _, n := range nodes {
		if isNilInline(n) {
			continue
		}
		out = append(out, n.CloneInline())
	}
	return out
}

func isNilInline(n InlineNode) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *TextRun:
		return v == nil
	case *Link:
		return v == nil
	case *Container:
		return v == nil
	}
	return false
}

// NewParagraph is a convenience constructor used by parsers and tests.
func NewParagraph(children ...InlineNode) BlockNode {
	return BlockNode{Kind: ParagraphKind, Children: children}
}

// NewText returns an unannotated text run.
func NewText(text string) *TextRun {
	return &TextRun{Text: text}
}

// NewLink returns a link whose label is a single text run.
func NewLink(url, label string) *Link {
	link := &Link{URL: url}
	if label != "" {
		link.Children = []InlineNode{NewText(label)}
	}
	return link
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
