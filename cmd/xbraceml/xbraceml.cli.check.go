package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/itsatony/go-xbraceml"
	"github.com/spf13/pflag"
)

// checkConfig holds parsed check command configuration
type checkConfig struct {
	sourcePath string
	format     string
	strict     bool
	settings   *settings
}

// checkOutput represents JSON output for check
type checkOutput struct {
	Clean    bool                 `json:"clean"`
	Warnings []checkWarningOutput `json:"warnings,omitempty"`
}

type checkWarningOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Excerpt string `json:"excerpt,omitempty"`
}

func runCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, code := parseCheckFlags(args, stdout, stderr)
	if cfg == nil {
		return code
	}

	source, err := readInput(cfg.sourcePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	// Check never dispatches, so plugins are not discovered.
	engine, err := xbraceml.New(
		xbraceml.WithSpecialElements(!cfg.settings.disableSpecial),
		xbraceml.WithLogger(newLogger(stderr, cfg.settings)),
	)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}
	result := engine.Check(source)

	if cfg.format == OutputFormatJSON {
		return outputCheckJSON(result, cfg.strict, stdout, stderr)
	}
	return outputCheckText(result, cfg.strict, stdout)
}

func parseCheckFlags(args []string, stdout, stderr io.Writer) (*checkConfig, int) {
	fs := newFlagSet(CmdNameCheck)
	cfg := &checkConfig{}

	fs.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.strict, FlagStrictMode, false, "")
	fs.StringP(FlagConfig, FlagConfigShort, "", "")
	addLogFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, runHelp([]string{CmdNameCheck}, stdout)
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return nil, ExitCodeUsageError
	}

	positional := fs.Args()
	switch {
	case len(positional) == 0:
		fmt.Fprintln(stderr, ErrMsgMissingSource)
		return nil, ExitCodeUsageError
	case len(positional) > 1:
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgTooManyArguments, positional[1])
		return nil, ExitCodeUsageError
	}
	cfg.sourcePath = positional[0]

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgInvalidFormat, cfg.format)
		return nil, ExitCodeUsageError
	}

	s, err := loadSettings(fs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return nil, ExitCodeInputError
	}
	cfg.settings = s

	return cfg, ExitCodeSuccess
}

func outputCheckText(result *xbraceml.CheckResult, strict bool, stdout io.Writer) int {
	if !result.HasWarnings() {
		fmt.Fprintln(stdout, CheckTextClean)
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, CheckTextHeader)
	for _, w := range result.Warnings() {
		fmt.Fprintf(stdout, CheckTextWarningFormat+FmtNewline,
			w.Kind, w.Message, w.Position.Line, w.Position.Column, w.Excerpt)
	}
	fmt.Fprintf(stdout, CheckTextSummary+FmtNewline, result.Count())

	if strict {
		return ExitCodeWarningsFound
	}
	return ExitCodeSuccess
}

func outputCheckJSON(result *xbraceml.CheckResult, strict bool, stdout, stderr io.Writer) int {
	output := checkOutput{
		Clean:    !result.HasWarnings(),
		Warnings: make([]checkWarningOutput, 0, result.Count()),
	}

	for _, w := range result.Warnings() {
		output.Warnings = append(output.Warnings, checkWarningOutput{
			Kind:    string(w.Kind),
			Message: w.Message,
			Line:    w.Position.Line,
			Column:  w.Position.Column,
			Offset:  w.Position.Offset,
			Excerpt: w.Excerpt,
		})
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
		return ExitCodeError
	}
	fmt.Fprintln(stdout, string(jsonBytes))

	if strict && !output.Clean {
		return ExitCodeWarningsFound
	}
	return ExitCodeSuccess
}
