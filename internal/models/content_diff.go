package models

// CharacterDiff holds the number of characters added and removed between two texts.
type CharacterDiff struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

// IsZero reports whether the two texts were identical.
func (d CharacterDiff) IsZero() bool {
	return d.Added == 0 && d.Removed == 0
}

// Preview is a bounded excerpt of a change with surrounding context, suitable
// for an activity feed or version history entry.
type Preview struct {
	BeforeContext string `json:"beforeContext" yaml:"before_context"`
	AddedText     string `json:"addedText" yaml:"added_text"`
	RemovedText   string `json:"removedText" yaml:"removed_text"`
	AfterContext  string `json:"afterContext" yaml:"after_context"`
	HasAdditions  bool   `json:"hasAdditions" yaml:"has_additions"`
	HasRemovals   bool   `json:"hasRemovals" yaml:"has_removals"`
}

// DiffResult is the outcome of diffing two page revisions.
// Preview is nil when there is no meaningful difference to show.
type DiffResult struct {
	Added   int      `json:"added" yaml:"added"`
	Removed int      `json:"removed" yaml:"removed"`
	Preview *Preview `json:"preview" yaml:"preview"`
}

// NewDiffResult builds a result from character counts and an optional preview.
func NewDiffResult(counts CharacterDiff, preview *Preview) DiffResult {
	return DiffResult{Added: counts.Added, Removed: counts.Removed, Preview: preview}
}

// HasChanges reports whether any characters were added or removed.
func (r DiffResult) HasChanges() bool {
	return r.Added > 0 || r.Removed > 0
}

// RevisionPair is one (current, previous) snapshot pair submitted for batch diffing.
// Either side may be a ContentTree, a JSON string, raw bytes or plain text.
type RevisionPair struct {
	ID       string `json:"id,omitempty"`
	Current  any    `json:"current"`
	Previous any    `json:"previous"`
}

// TreeDiffStats counts annotated nodes in a structural diff.
type TreeDiffStats struct {
	AddedNodes   int `json:"addedNodes" yaml:"added_nodes"`
	RemovedNodes int `json:"removedNodes" yaml:"removed_nodes"`
}
