package config

// PreviewConfig defines the window sizes of generated change previews.
// All sizes are in characters (Unicode code points).
type PreviewConfig struct {
	ContextChars        int    `json:"context_chars,omitempty" yaml:"context_chars,omitempty" validate:"min=1"`
	DisplayContextChars int    `json:"display_context_chars,omitempty" yaml:"display_context_chars,omitempty" validate:"min=1,ltefield=ContextChars"`
	MaxChangeChars      int    `json:"max_change_chars,omitempty" yaml:"max_change_chars,omitempty" validate:"min=1"`
	NewDocumentChars    int    `json:"new_document_chars,omitempty" yaml:"new_document_chars,omitempty" validate:"min=1"`
	NewDocumentAfter    int    `json:"new_document_after,omitempty" yaml:"new_document_after,omitempty" validate:"min=0"`
	Ellipsis            string `json:"ellipsis,omitempty" yaml:"ellipsis,omitempty"`
}

// NewDefaultPreviewConfig creates default preview configuration
func NewDefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		ContextChars:        DefaultPreviewContextChars,
		DisplayContextChars: DefaultPreviewDisplayContext,
		MaxChangeChars:      DefaultPreviewMaxChangeChars,
		NewDocumentChars:    DefaultPreviewNewDocumentChars,
		NewDocumentAfter:    DefaultPreviewNewDocumentAfter,
		Ellipsis:            DefaultPreviewEllipsis,
	}
}
