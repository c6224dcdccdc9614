package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsatony/go-xbraceml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWatchSource_ReconvertsOnChange(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "page.xb")
	dest := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(source, []byte(`\b{one}`), FilePermissions))

	engine := xbraceml.MustNew()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, convertFile(ctx, engine, source, dest, nil))

	core, logs := observer.New(zap.InfoLevel)
	done := make(chan error, 1)
	go func() {
		done <- watchSource(ctx, engine, source, dest, nil, zap.New(core))
	}()

	require.Eventually(t, func() bool {
		return logs.FilterMessage(LogMsgWatchStarted).Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(source, []byte(`\b{two}`), FilePermissions))

	require.Eventually(t, func() bool {
		got, err := os.ReadFile(dest)
		return err == nil && string(got) == "<b>two</b>"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchSource_MissingDirectory(t *testing.T) {
	engine := xbraceml.MustNew()
	source := filepath.Join(t.TempDir(), "absent", "page.xb")

	err := watchSource(context.Background(), engine, source, FlagDefaultOutput, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestRunWatch_UsageErrors(t *testing.T) {
	t.Run("stdin source", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameWatch, "-")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgWatchNeedsFile)
	})

	t.Run("destination is the source", func(t *testing.T) {
		dir := setupTestData(t)
		source := filepath.Join(dir, "page.xb")

		code, _, stderr := runCLI(t, "", CmdNameWatch, source, source)
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgWatchSameFile)
	})

	t.Run("initial conversion failure", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameWatch, filepath.Join(t.TempDir(), "absent.xb"))
		assert.Equal(t, ExitCodeError, code)
		assert.Contains(t, stderr, ErrMsgConvertFailed)
	})
}

func TestSamePath(t *testing.T) {
	assert.True(t, samePath("a/b.xb", "a/../a/b.xb"))
	assert.False(t, samePath("a.xb", "b.xb"))
	assert.False(t, samePath(InputSourceStdin, FlagDefaultOutput))
}
