package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/itsatony/go-xbraceml"
	"go.uber.org/zap"
)

// watchDebounce groups the burst of events a single save produces.
const watchDebounce = 100 * time.Millisecond

func runWatch(args []string, stdout, stderr io.Writer) int {
	cfg, code := parseConvertFlags(CmdNameWatch, args, stdout, stderr)
	if cfg == nil {
		return code
	}
	if cfg.sourcePath == InputSourceStdin {
		fmt.Fprintln(stderr, ErrMsgWatchNeedsFile)
		return ExitCodeUsageError
	}
	if samePath(cfg.sourcePath, cfg.outputPath) {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgWatchSameFile, cfg.outputPath)
		return ExitCodeUsageError
	}

	logger := newLogger(stderr, cfg.settings)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := cfg.settings.newEngine(ctx, logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}

	if err := convertFile(ctx, engine, cfg.sourcePath, cfg.outputPath, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConvertFailed, err)
		return ExitCodeError
	}

	if err := watchSource(ctx, engine, cfg.sourcePath, cfg.outputPath, stdout, logger); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWatchFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

// convertFile converts source into output once.
func convertFile(ctx context.Context, engine *xbraceml.Engine, source, output string, stdout io.Writer) error {
	data, err := readInput(source, nil)
	if err != nil {
		return err
	}
	result, err := engine.Convert(ctx, data)
	if err != nil {
		return err
	}
	return writeOutput(output, result, stdout)
}

// watchSource converts source again after every change until ctx ends.
// The parent directory is watched so editors that replace the file on save
// are followed. Failed conversions are logged and watching continues.
func watchSource(ctx context.Context, engine *xbraceml.Engine, source, output string, stdout io.Writer, logger *zap.Logger) error {
	abs, err := filepath.Abs(source)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info(LogMsgWatchStarted, zap.String(LogFieldSource, abs))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug(LogMsgWatchEvent,
				zap.String(LogFieldSource, abs),
				zap.Stringer(LogFieldEvent, event.Op))
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			if err := convertFile(ctx, engine, abs, output, stdout); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error(LogMsgWatchFailed, zap.String(LogFieldSource, abs), zap.Error(err))
				continue
			}
			logger.Info(LogMsgWatchConverted,
				zap.String(LogFieldSource, abs),
				zap.String(LogFieldDestination, output))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(LogMsgWatchError, zap.Error(err))
		}
	}
}

// samePath reports whether two file arguments name the same file.
func samePath(a, b string) bool {
	if a == InputSourceStdin || b == FlagDefaultOutput {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
