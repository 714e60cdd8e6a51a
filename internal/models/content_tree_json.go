package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawNode is the union of every field the supported editors emit for a node.
// Block children come as "children" (Slate style) or "content" (ProseMirror style).
type rawNode struct {
	Type       string            `json:"type"`
	Kind       string            `json:"kind"`
	Text       *string           `json:"text"`
	URL        string            `json:"url"`
	Href       string            `json:"href"`
	IsExternal bool              `json:"isExternal"`
	ClassName  string            `json:"className"`
	Class      string            `json:"class"`
	Attrs      map[string]any    `json:"attrs"`
	Marks      json.RawMessage   `json:"marks"`
	Children   []json.RawMessage `json:"children"`
	Content    []json.RawMessage `json:"content"`
	Added      bool              `json:"added"`
	Removed    bool              `json:"removed"`
}

type rawMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs"`
}

type rawDocument struct {
	Content []json.RawMessage `json:"content"`
	Blocks  []json.RawMessage `json:"blocks"`
}

// UnmarshalJSON accepts a bare array of blocks, or an object wrapping the
// blocks in "content" or "blocks".
func (t *ContentTree) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
	case '{':
		var doc rawDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		items = doc.Content
		if items == nil {
			items = doc.Blocks
		}
		if items == nil {
			// A single block object.
			items = []json.RawMessage{data}
		}
	default:
		return fmt.Errorf("content tree must be a JSON array or object, got %q", data[0])
	}

	tree := make(ContentTree, 0, len(items))
	for _, item := range items {
		block, ok, err := decodeBlock(item)
		if err != nil {
			return err
		}
		if ok {
			tree = append(tree, block)
		}
	}
	*t = tree
	return nil
}

func decodeBlock(data json.RawMessage) (BlockNode, bool, error) {
	if isJSONNull(data) {
		return BlockNode{}, false, nil
	}
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return BlockNode{}, false, err
	}

	kind := raw.Type
	if kind == "" {
		kind = raw.Kind
	}

	// Inline nodes at the top level are wrapped in an anonymous block.
	if raw.Text != nil || isLinkNode(&raw) {
		node, err := decodeInlineRaw(&raw)
		if err != nil {
			return BlockNode{}, false, err
		}
		return BlockNode{Children: []InlineNode{node}}, true, nil
	}

	children, err := decodeInlines(childrenOf(&raw))
	if err != nil {
		return BlockNode{}, false, err
	}
	return BlockNode{Kind: kind, Children: children, Attrs: raw.Attrs}, true, nil
}

func decodeInlines(items []json.RawMessage) ([]InlineNode, error) {
	if len(items) == 0 {
		return nil, nil
	}
	nodes := make([]InlineNode, 0, len(items))
	for _, item := range items {
		if isJSONNull(item) {
			continue
		}
		// Bare strings are treated as text runs.
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			nodes = append(nodes, NewText(s))
			continue
		}

		var raw rawNode
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, err
		}
		node, err := decodeInlineRaw(&raw)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeInlineRaw(raw *rawNode) (InlineNode, error) {
	change := statusFromFlags(raw.Added, raw.Removed)

	if raw.Text != nil {
		run := &TextRun{Text: *raw.Text, Change: change}
		var linkMark *rawMark
		var marks []json.RawMessage
		// Slate stores marks as boolean fields instead, so a non-array value is ignored.
		_ = json.Unmarshal(raw.Marks, &marks)
		for _, m := range marks {
			var mark rawMark
			if err := json.Unmarshal(m, &mark); err != nil {
				continue
			}
			if mark.Type == "link" {
				linkMark = &mark
				continue
			}
			if mark.Type != "" {
				run.Marks = append(run.Marks, mark.Type)
			}
		}
		if linkMark != nil {
			// ProseMirror expresses links as a mark on the text node.
			link := &Link{
				URL:      attrString(linkMark.Attrs, "href", "url"),
				Class:    attrString(linkMark.Attrs, "class", "className"),
				Children: []InlineNode{run},
				Change:   change,
			}
			return link, nil
		}
		return run, nil
	}

	children, err := decodeInlines(childrenOf(raw))
	if err != nil {
		return nil, err
	}

	if isLinkNode(raw) {
		url := raw.URL
		if url == "" {
			url = raw.Href
		}
		if url == "" {
			url = attrString(raw.Attrs, "href", "url")
		}
		class := raw.ClassName
		if class == "" {
			class = raw.Class
		}
		if class == "" {
			class = attrString(raw.Attrs, "class", "className")
		}
		external := raw.IsExternal
		if v, ok := raw.Attrs["isExternal"].(bool); ok && v {
			external = true
		}
		return &Link{
			URL:        url,
			IsExternal: external,
			Class:      class,
			Children:   children,
			Change:     change,
		}, nil
	}

	return &Container{
		Type:     raw.Type,
		Children: children,
		Attrs:    raw.Attrs,
		Change:   change,
	}, nil
}

func isLinkNode(raw *rawNode) bool {
	if raw.Text != nil {
		return false
	}
	return raw.Type == "link" || raw.URL != "" || raw.Href != ""
}

func childrenOf(raw *rawNode) []json.RawMessage {
	if raw.Children != nil {
		return raw.Children
	}
	return raw.Content
}

func statusFromFlags(added, removed bool) ChangeStatus {
	switch {
	case added:
		return StatusAdded
	case removed:
		return StatusRemoved
	default:
		return StatusUnchanged
	}
}

func attrString(attrs map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := attrs[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

type blockJSON struct {
	Type     string         `json:"type"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []InlineNode   `json:"children"`
}

type markJSON struct {
	Type string `json:"type"`
}

type textRunJSON struct {
	Type    string     `json:"type"`
	Text    string     `json:"text"`
	Marks   []markJSON `json:"marks,omitempty"`
	Added   bool       `json:"added,omitempty"`
	Removed bool       `json:"removed,omitempty"`
}

type linkJSON struct {
	Type       string       `json:"type"`
	URL        string       `json:"url"`
	IsExternal bool         `json:"isExternal,omitempty"`
	ClassName  string       `json:"className,omitempty"`
	Children   []InlineNode `json:"children"`
	Added      bool         `json:"added,omitempty"`
	Removed    bool         `json:"removed,omitempty"`
}

type containerJSON struct {
	Type     string         `json:"type,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []InlineNode   `json:"children"`
	Added    bool           `json:"added,omitempty"`
	Removed  bool           `json:"removed,omitempty"`
}

// MarshalJSON writes blocks in the Slate-style children shape.
func (b BlockNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockJSON{Type: b.Kind, Attrs: b.Attrs, Children: nonNil(b.Children)})
}

// UnmarshalJSON decodes a single block.
func (b *BlockNode) UnmarshalJSON(data []byte) error {
	block, _, err := decodeBlock(data)
	if err != nil {
		return err
	}
	*b = block
	return nil
}

func (n *TextRun) MarshalJSON() ([]byte, error) {
	out := textRunJSON{
		Type:    "text",
		Text:    n.Text,
		Added:   n.Change == StatusAdded,
		Removed: n.Change == StatusRemoved,
	}
	for _, m := range n.Marks {
		out.Marks = append(out.Marks, markJSON{Type: m})
	}
	return json.Marshal(out)
}

func (n *Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkJSON{
		Type:       "link",
		URL:        n.URL,
		IsExternal: n.IsExternal,
		ClassName:  n.Class,
		Children:   nonNil(n.Children),
		Added:      n.Change == StatusAdded,
		Removed:    n.Change == StatusRemoved,
	})
}

func (n *Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(containerJSON{
		Type:     n.Type,
		Attrs:    n.Attrs,
		Children: nonNil(n.Children),
		Added:    n.Change == StatusAdded,
		Removed:  n.Change == StatusRemoved,
	})
}

func nonNil(nodes []InlineNode) []InlineNode {
	if nodes == nil {
		return []InlineNode{}
	}
	return nodes
}
