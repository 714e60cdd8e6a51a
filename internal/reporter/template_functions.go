package reporter

import (
	"html/template"

	"github.com/aleister1102/wikidiff/internal/models"
)

// GetTemplateFunctions returns the functions available to report templates
func GetTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"summary": func(result models.DiffResult) string {
			return CreateDiffSummary(models.CharacterDiff{Added: result.Added, Removed: result.Removed})
		},
	}
}
