package reporter

const (
	// Output formats
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"

	// Report modes
	ModeStats   = "stats"
	ModePreview = "preview"
	ModeTree    = "tree"

	DefaultReportTitle = "Page changes"
	PageTemplateName   = "diff_page.html.tmpl"
)
