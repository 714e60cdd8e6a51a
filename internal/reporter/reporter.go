package reporter

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/aleister1102/wikidiff/internal/common"
	"github.com/aleister1102/wikidiff/internal/config"
	"github.com/aleister1102/wikidiff/internal/differ"
	"github.com/aleister1102/wikidiff/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Report is everything a single CLI invocation may render
type Report struct {
	Result models.DiffResult
	Tree   models.ContentTree
	Batch  []differ.BatchResult
}

// treeView is the serialized form of a structural diff
type treeView struct {
	Stats models.TreeDiffStats `json:"stats"`
	Tree  models.ContentTree   `json:"tree"`
}

// htmlPageData is passed to the page template
type htmlPageData struct {
	Title    string
	Summary  string
	Preview  *models.Preview
	TreeHTML template.HTML
	Entries  []differ.BatchResult
}

// Reporter renders diff results in the configured format and mode
type Reporter struct {
	logger   zerolog.Logger
	cfg      config.ReporterConfig
	template *template.Template
}

// NewReporter creates a new reporter, parsing the embedded page template
func NewReporter(logger zerolog.Logger, cfg config.ReporterConfig) (*Reporter, error) {
	defaults := config.NewDefaultReporterConfig()
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = defaults.OutputFormat
	}
	if cfg.Mode == "" {
		cfg.Mode = defaults.Mode
	}
	if cfg.HTMLTitle == "" {
		cfg.HTMLTitle = DefaultReportTitle
	}

	tmpl, err := template.New(PageTemplateName).Funcs(GetTemplateFunctions()).ParseFS(templatesFS, "templates/"+PageTemplateName)
	if err != nil {
		return nil, common.WrapError(err, "failed to parse report template")
	}

	return &Reporter{
		logger:   logger.With().Str("component", "Reporter").Logger(),
		cfg:      cfg,
		template: tmpl,
	}, nil
}

// Render writes the report to w
func (r *Reporter) Render(w io.Writer, report Report) error {
	mode := strings.ToLower(r.cfg.Mode)
	if mode != ModeStats && mode != ModePreview && mode != ModeTree {
		return common.NewConfigurationError("reporter", "mode", fmt.Sprintf("unknown mode '%s'", r.cfg.Mode))
	}

	format := strings.ToLower(r.cfg.OutputFormat)
	r.logger.Debug().Str("format", format).Str("mode", mode).Int("batch_size", len(report.Batch)).Msg("Rendering report")

	switch format {
	case FormatText:
		return r.renderText(w, report, mode)
	case FormatJSON:
		return r.renderJSON(w, report, mode)
	case FormatYAML:
		return r.renderYAML(w, report, mode)
	case FormatHTML:
		return r.renderHTML(w, report, mode)
	default:
		return common.WrapErrorf(common.ErrUnsupportedFormat, "output format '%s'", r.cfg.OutputFormat)
	}
}

// payload picks the value serialized for the given mode.
func (r *Reporter) payload(report Report, mode string) any {
	if report.Batch != nil {
		if mode != ModeStats {
			return report.Batch
		}
		stripped := make([]differ.BatchResult, len(report.Batch))
		for i, entry := range report.Batch {
			entry.Result.Preview = nil
			stripped[i] = entry
		}
		return stripped
	}

	switch mode {
	case ModeStats:
		return models.CharacterDiff{Added: report.Result.Added, Removed: report.Result.Removed}
	case ModeTree:
		return treeView{Stats: differ.CountAnnotations(report.Tree), Tree: nonNilTree(report.Tree)}
	default:
		return report.Result
	}
}

func (r *Reporter) renderJSON(w io.Writer, report Report, mode string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(r.payload(report, mode)); err != nil {
		return common.WrapError(err, "failed to encode JSON report")
	}
	return nil
}

func (r *Reporter) renderYAML(w io.Writer, report Report, mode string) error {
	value := r.payload(report, mode)

	// Inline nodes only know how to serialize themselves as JSON.
	if tv, ok := value.(treeView); ok {
		generic, err := toGeneric(tv)
		if err != nil {
			return err
		}
		value = generic
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return common.WrapError(err, "failed to encode YAML report")
	}
	return encoder.Close()
}

func (r *Reporter) renderText(w io.Writer, report Report, mode string) error {
	var b strings.Builder

	if report.Batch != nil {
		for i, entry := range report.Batch {
			id := entry.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			fmt.Fprintf(&b, "[%s] %s\n", id, CreateDiffSummary(countsOf(entry.Result)))
			if mode != ModeStats && entry.Result.Preview != nil {
				b.WriteString("  " + FormatPreviewText(entry.Result.Preview) + "\n")
			}
		}
	} else {
		switch mode {
		case ModeTree:
			b.WriteString(CreateTreeSummary(differ.CountAnnotations(report.Tree)) + "\n")
			if text := FormatTreeText(report.Tree); text != "" {
				b.WriteString(text + "\n")
			}
		default:
			b.WriteString(CreateDiffSummary(countsOf(report.Result)) + "\n")
			if mode == ModePreview && report.Result.Preview != nil {
				b.WriteString(FormatPreviewText(report.Result.Preview) + "\n")
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return common.WrapError(err, "failed to write text report")
	}
	return nil
}

func (r *Reporter) renderHTML(w io.Writer, report Report, mode string) error {
	data := htmlPageData{Title: r.cfg.HTMLTitle}

	if report.Batch != nil {
		data.Entries = r.payload(report, mode).([]differ.BatchResult)
	} else {
		switch mode {
		case ModeTree:
			data.Summary = CreateTreeSummary(differ.CountAnnotations(report.Tree))
			data.TreeHTML = GenerateTreeHTML(report.Tree)
		case ModePreview:
			data.Summary = CreateDiffSummary(countsOf(report.Result))
			data.Preview = report.Result.Preview
		default:
			data.Summary = CreateDiffSummary(countsOf(report.Result))
		}
	}

	if err := r.template.ExecuteTemplate(w, PageTemplateName, data); err != nil {
		return common.WrapError(err, "failed to execute report template")
	}
	return nil
}

func countsOf(result models.DiffResult) models.CharacterDiff {
	return models.CharacterDiff{Added: result.Added, Removed: result.Removed}
}

func nonNilTree(tree models.ContentTree) models.ContentTree {
	if tree == nil {
		return models.ContentTree{}
	}
	return tree
}

func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, common.WrapError(err, "failed to marshal report")
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, common.WrapError(err, "failed to convert report")
	}
	return generic, nil
}
