package main

import (
	"flag"
	"io"
)

type AppFlags struct {
	PreviousFile     string
	CurrentFile      string
	BatchFile        string
	GlobalConfigFile string
	InputFormat      string
	OutputFormat     string
	Mode             string
	OutputFile       string
}

// ParseFlags parses command line arguments, resolving short aliases
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("wikidiff", flag.ContinueOnError)
	fs.SetOutput(output)

	previousFile := fs.String("previous", "", "Path to the previous revision snapshot (JSON, HTML or text). Omit for a newly created page.")
	previousFileAlias := fs.String("p", "", "Alias for -previous")

	currentFile := fs.String("current", "", "Path to the current revision snapshot (JSON, HTML or text).")
	currentFileAlias := fs.String("c", "", "Alias for -current")

	batchFile := fs.String("batch", "", "Path to a JSON array of {id, current, previous} revision pairs to diff concurrently.")
	batchFileAlias := fs.String("b", "", "Alias for -batch")

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("g", "", "Alias for -config")

	inputFormat := fs.String("input-format", "auto", "Snapshot encoding: auto, json, html or text")
	inputFormatAlias := fs.String("i", "", "Alias for -input-format")

	outputFormat := fs.String("format", "", "Report format: text, json, yaml or html (overrides config file if set)")
	outputFormatAlias := fs.String("f", "", "Alias for -format")

	modeFlag := fs.String("mode", "", "Report mode: stats, preview or tree (overrides config file if set)")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	outputFile := fs.String("output", "", "Write the report to this file instead of stdout")
	outputFileAlias := fs.String("o", "", "Alias for -output")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	return AppFlags{
		PreviousFile:     firstNonEmpty(*previousFile, *previousFileAlias),
		CurrentFile:      firstNonEmpty(*currentFile, *currentFileAlias),
		BatchFile:        firstNonEmpty(*batchFile, *batchFileAlias),
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		InputFormat:      firstNonEmpty(*inputFormatAlias, *inputFormat),
		OutputFormat:     firstNonEmpty(*outputFormat, *outputFormatAlias),
		Mode:             firstNonEmpty(*modeFlag, *modeFlagAlias),
		OutputFile:       firstNonEmpty(*outputFile, *outputFileAlias),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
