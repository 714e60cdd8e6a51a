package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeStatus_String(t *testing.T) {
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "added", StatusAdded.String())
	assert.Equal(t, "removed", StatusRemoved.String())
}

func TestLink_External(t *testing.T) {
	tests := []struct {
		name     string
		link     Link
		expected bool
	}{
		{name: "relative wiki path", link: Link{URL: "/pages/home"}, expected: false},
		{name: "https url", link: Link{URL: "https://example.com"}, expected: true},
		{name: "uppercase http url", link: Link{URL: "HTTP://EXAMPLE.COM"}, expected: true},
		{name: "explicit flag", link: Link{URL: "/x", IsExternal: true}, expected: true},
		{name: "external class", link: Link{URL: "/x", Class: "wiki-link external-link"}, expected: true},
		{name: "unrelated class", link: Link{URL: "/x", Class: "internal-link"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.link.External())
		})
	}
}

func TestContentTree_CloneIsDeep(t *testing.T) {
	original := ContentTree{
		NewParagraph(NewText("hello "), NewLink("/pages/A", "A")),
	}

	clone := original.Clone()
	clone[0].Children[0].(*TextRun).Text = "changed"
	clone[0].Children[1].(*Link).Children[0].(*TextRun).Change = StatusAdded

	assert.Equal(t, "hello ", original[0].Children[0].(*TextRun).Text)
	assert.Equal(t, StatusUnchanged, original[0].Children[1].(*Link).Children[0].Status())
	assert.Nil(t, ContentTree(nil).Clone())
}

func TestCloneInlines_SkipsNilNodes(t *testing.T) {
	nodes := []InlineNode{
		nil,
		(*TextRun)(nil),
		NewText("kept"),
		(*Link)(nil),
		&Container{Type: "bold", Children: []InlineNode{(*Container)(nil), NewText("inner")}},
	}

	var cloned []InlineNode
	require.NotPanics(t, func() { cloned = CloneInlines(nodes) })

	require.Len(t, cloned, 2)
	assert.Equal(t, "kept", cloned[0].(*TextRun).Text)
	require.Len(t, cloned[1].(*Container).Children, 1)
}

func TestContentTree_UnmarshalSlateShape(t *testing.T) {
	data := `[
		{"type": "paragraph", "children": [
			{"text": "See "},
			{"type": "link", "url": "/pages/home", "children": [{"text": "Home"}]},
			{"text": " and "},
			{"type": "link", "url": "https://x.com", "isExternal": true, "children": [{"text": "X"}]}
		]},
		{"type": "heading", "children": [{"type": "bold", "children": [{"text": "Title"}]}]}
	]`

	var tree ContentTree
	require.NoError(t, json.Unmarshal([]byte(data), &tree))
	require.Len(t, tree, 2)

	assert.True(t, tree[0].IsParagraph())
	require.Len(t, tree[0].Children, 4)
	link, ok := tree[0].Children[1].(*Link)
	require.True(t, ok)
	assert.Equal(t, "/pages/home", link.URL)
	assert.False(t, link.External())
	assert.True(t, tree[0].Children[3].(*Link).External())

	assert.Equal(t, "heading", tree[1].Kind)
	container, ok := tree[1].Children[0].(*Container)
	require.True(t, ok)
	assert.Equal(t, "bold", container.Type)
}

func TestContentTree_UnmarshalProseMirrorShape(t *testing.T) {
	data := `{"type": "doc", "content": [
		{"type": "paragraph", "content": [
			{"type": "text", "text": "Go to "},
			{"type": "text", "text": "docs", "marks": [{"type": "bold"}, {"type": "link", "attrs": {"href": "https://go.dev", "class": "external-link"}}]}
		]}
	]}`

	var tree ContentTree
	require.NoError(t, json.Unmarshal([]byte(data), &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)

	link, ok := tree[0].Children[1].(*Link)
	require.True(t, ok)
	assert.Equal(t, "https://go.dev", link.URL)
	assert.Equal(t, "external-link", link.Class)
	run := link.Children[0].(*TextRun)
	assert.Equal(t, "docs", run.Text)
	assert.Equal(t, []string{"bold"}, run.Marks)
}

func TestContentTree_UnmarshalLenientChildren(t *testing.T) {
	data := `[{"type": "paragraph", "children": ["plain", null, {"text": "run", "bold": true}]}, null]`

	var tree ContentTree
	require.NoError(t, json.Unmarshal([]byte(data), &tree))
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "plain", tree[0].Children[0].(*TextRun).Text)
	assert.Equal(t, "run", tree[0].Children[1].(*TextRun).Text)
}

func TestContentTree_UnmarshalRejectsScalars(t *testing.T) {
	var tree ContentTree
	assert.Error(t, json.Unmarshal([]byte(`42`), &tree))
}

func TestContentTree_MarshalRoundTripKeepsAnnotations(t *testing.T) {
	tree := ContentTree{
		NewParagraph(
			&TextRun{Text: "new", Change: StatusAdded},
			&Link{URL: "/pages/A", Children: []InlineNode{&TextRun{Text: "A", Change: StatusRemoved}}, Change: StatusRemoved},
		),
	}

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"added":true`)
	assert.Contains(t, string(data), `"removed":true`)

	var decoded ContentTree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, StatusAdded, decoded[0].Children[0].Status())
	assert.Equal(t, StatusRemoved, decoded[0].Children[1].Status())
}
