package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-xbraceml"
	"github.com/spf13/pflag"
)

// pluginOutput represents one discovered plugin in JSON output
type pluginOutput struct {
	Target   string   `json:"target"`
	Elements []string `json:"elements"`
}

func runPlugins(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(CmdNamePlugins)
	var format string
	fs.StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "")
	addPluginFlags(fs)
	addLogFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return runHelp([]string{CmdNamePlugins}, stdout)
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgTooManyArguments, fs.Arg(0))
		return ExitCodeUsageError
	}
	if format != OutputFormatText && format != OutputFormatJSON {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgInvalidFormat, format)
		return ExitCodeUsageError
	}

	s, err := loadSettings(fs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return ExitCodeInputError
	}
	if len(s.plugins) == 0 {
		fmt.Fprintln(stderr, ErrMsgNoPluginsRequested)
		return ExitCodeUsageError
	}

	logger := newLogger(stderr, s)
	defer func() { _ = logger.Sync() }()

	found := make([]pluginOutput, 0, len(s.plugins))
	for _, path := range s.plugins {
		plugins, err := xbraceml.DiscoverPlugins(context.Background(), path, logger)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgDiscoveryFailed, err)
			return ExitCodeError
		}
		for _, p := range plugins {
			found = append(found, pluginOutput{Target: p.Target(), Elements: p.Elements()})
		}
	}

	if format == OutputFormatJSON {
		jsonBytes, err := json.MarshalIndent(found, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	if len(found) == 0 {
		fmt.Fprintln(stdout, PluginsTextNone)
		return ExitCodeSuccess
	}
	for _, p := range found {
		fmt.Fprintf(stdout, PluginsTextFormat+FmtNewline, p.Target, strings.Join(p.Elements, " "))
	}
	return ExitCodeSuccess
}
