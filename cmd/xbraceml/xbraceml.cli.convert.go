package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// convertConfig holds parsed convert and watch command configuration
type convertConfig struct {
	sourcePath string
	outputPath string
	settings   *settings
}

func runConvert(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, code := parseConvertFlags(CmdNameConvert, args, stdout, stderr)
	if cfg == nil {
		return code
	}

	logger := newLogger(stderr, cfg.settings)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	engine, err := cfg.settings.newEngine(ctx, logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}

	source, err := readInput(cfg.sourcePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	result, err := engine.Convert(ctx, source)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConvertFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, result, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

// parseConvertFlags parses "[options] <source> [destination]". A nil config
// means the command is finished and the returned code is its exit status.
func parseConvertFlags(name string, args []string, stdout, stderr io.Writer) (*convertConfig, int) {
	fs := newFlagSet(name)
	addEngineFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, runHelp([]string{name}, stdout)
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return nil, ExitCodeUsageError
	}

	positional := fs.Args()
	switch {
	case len(positional) == 0:
		fmt.Fprintln(stderr, ErrMsgMissingSource)
		return nil, ExitCodeUsageError
	case len(positional) > 2:
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgTooManyArguments, positional[2])
		return nil, ExitCodeUsageError
	}

	cfg := &convertConfig{
		sourcePath: positional[0],
		outputPath: FlagDefaultOutput,
	}
	if len(positional) == 2 {
		cfg.outputPath = positional[1]
	}

	s, err := loadSettings(fs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return nil, ExitCodeInputError
	}
	cfg.settings = s

	return cfg, ExitCodeSuccess
}
