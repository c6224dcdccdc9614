package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test data constants
const (
	testSourceContent  = `\p{Hello \b{world}} \br{}`
	testExpectedOutput = `<p>Hello <b>world</b></p> <br/>`
	testLongOutput     = `<p>Hello <b>world</b></p> <br></br>`
	testMalformed      = "\\p{open\n}} x"
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "page.xb"), []byte(testSourceContent), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.xb"), []byte(testMalformed), FilePermissions))

	return tmpDir
}

// runCLI runs the CLI with the given arguments and stdin.
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func writePluginScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("plugin scripts need /bin/sh")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameConvert)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stdout, ErrMsgUnknownCommand)
}

// ==================== Help command tests ====================

func TestHelp_Commands(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{CmdNameConvert, HelpConvertUsage},
		{CmdNameCheck, HelpCheckUsage},
		{CmdNamePlugins, HelpPluginsUsage},
		{CmdNameWatch, HelpWatchUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			code, stdout, _ := runCLI(t, "", CmdNameHelp, tt.cmd)
			assert.Equal(t, ExitCodeSuccess, code)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestHelp_FlagOnCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameConvert, "--help")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, HelpConvertUsage)
}

// ==================== Version command tests ====================

func TestVersion_Text(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName+" version")
}

func TestVersion_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion, "-F", OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, code)

	var v versionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &v))
	assert.NotEmpty(t, v.GoVersion)
}

func TestVersion_InvalidFormat(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameVersion, "--format", "xml")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

// ==================== Convert command tests ====================

func TestConvert_FileToFile(t *testing.T) {
	dir := setupTestData(t)
	dest := filepath.Join(dir, "page.html")

	code, stdout, stderr := runCLI(t, "", CmdNameConvert, filepath.Join(dir, "page.xb"), dest)
	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, testExpectedOutput, string(got))
}

func TestConvert_StdinToStdout(t *testing.T) {
	code, stdout, _ := runCLI(t, testSourceContent, CmdNameConvert, "-", "-")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, testExpectedOutput, stdout)
}

func TestConvert_DefaultDestinationIsStdout(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, _ := runCLI(t, "", CmdNameConvert, filepath.Join(dir, "page.xb"))

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, testExpectedOutput, stdout)
}

func TestConvert_Flags(t *testing.T) {
	t.Run("long empty", func(t *testing.T) {
		code, stdout, _ := runCLI(t, testSourceContent, CmdNameConvert, "-l", "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, testLongOutput, stdout)
	})

	t.Run("disable special elements", func(t *testing.T) {
		code, stdout, _ := runCLI(t, `\$o{}`, CmdNameConvert, "--disable-special-elements", "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<$o/>", stdout)
	})

	t.Run("include root", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "part.xb"), []byte(`\i{x}`), FilePermissions))

		code, stdout, _ := runCLI(t, `\$i process{part.xb}`, CmdNameConvert, "--include-root", dir, "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<i>x</i>", stdout)
	})
}

func TestConvert_EnvironmentAndConfig(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		t.Setenv("XBRACEML_LONG_EMPTY", "true")

		code, stdout, _ := runCLI(t, `\br{}`, CmdNameConvert, "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<br></br>", stdout)
	})

	t.Run("config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "xbraceml.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("long_empty: true\n"), FilePermissions))

		code, stdout, _ := runCLI(t, `\br{}`, CmdNameConvert, "-c", cfgPath, "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<br></br>", stdout)
	})

	t.Run("flag beats environment", func(t *testing.T) {
		t.Setenv("XBRACEML_LONG_EMPTY", "true")

		code, stdout, _ := runCLI(t, `\br{}`, CmdNameConvert, "--long-empty=false", "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<br/>", stdout)
	})

	t.Run("environment beats config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "xbraceml.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("long_empty: true\n"), FilePermissions))
		t.Setenv("XBRACEML_LONG_EMPTY", "false")

		code, stdout, _ := runCLI(t, `\br{}`, CmdNameConvert, "-c", cfgPath, "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "<br/>", stdout)
	})

	t.Run("broken config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "xbraceml.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("no_such_option: 1\n"), FilePermissions))

		code, _, stderr := runCLI(t, `\br{}`, CmdNameConvert, "-c", cfgPath, "-")
		assert.Equal(t, ExitCodeInputError, code)
		assert.Contains(t, stderr, ErrMsgConfigFailed)
	})
}

func TestConvert_Plugin(t *testing.T) {
	dir := t.TempDir()
	script := writePluginScript(t, dir, "shout.sh", `#!/bin/sh
if [ "$1" = "elements" ]; then echo shout; exit 0; fi
cat >/dev/null
printf LOUD
`)

	code, stdout, stderr := runCLI(t, `a \shout{b} c`, CmdNameConvert, "-p", script, "-")
	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "a LOUD c", stdout)
}

func TestConvert_Errors(t *testing.T) {
	t.Run("missing source argument", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameConvert)
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgMissingSource)
	})

	t.Run("too many arguments", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameConvert, "a", "b", "c")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgTooManyArguments)
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameConvert, "--bogus", "-")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgInvalidArguments)
	})

	t.Run("unreadable source", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameConvert, filepath.Join(t.TempDir(), "absent.xb"))
		assert.Equal(t, ExitCodeInputError, code)
		assert.Contains(t, stderr, ErrMsgReadFileFailed)
	})

	t.Run("plugin discovery failure", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameConvert, "-p", filepath.Join(t.TempDir(), "absent"), "-")
		assert.Equal(t, ExitCodeError, code)
		assert.Contains(t, stderr, ErrMsgEngineFailed)
	})

	t.Run("include depth exceeded", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "loop.xb"), []byte(`\$i process{loop.xb}`), FilePermissions))

		code, _, stderr := runCLI(t, `\$i process{loop.xb}`, CmdNameConvert,
			"--include-root", dir, "--max-include-depth", "3", "-")
		assert.Equal(t, ExitCodeError, code)
		assert.Contains(t, stderr, ErrMsgConvertFailed)
	})

	t.Run("structural warnings do not fail", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "a}b", CmdNameConvert, "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Equal(t, "a}b", stdout)
		assert.Contains(t, stderr, "body close but no element is left")
	})

	t.Run("quiet hides warnings", func(t *testing.T) {
		code, _, stderr := runCLI(t, "a}b", CmdNameConvert, "-q", "-")
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Empty(t, stderr)
	})
}

// ==================== Check command tests ====================

func TestCheck_Text(t *testing.T) {
	dir := setupTestData(t)

	t.Run("clean", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "", CmdNameCheck, filepath.Join(dir, "page.xb"))
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, CheckTextClean)
	})

	t.Run("warnings", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "", CmdNameCheck, filepath.Join(dir, "broken.xb"))
		assert.Equal(t, ExitCodeSuccess, code)
		assert.Contains(t, stdout, CheckTextHeader)
		assert.Contains(t, stdout, "line 2, column 2")
		assert.Contains(t, stdout, "1 warning(s)")
	})

	t.Run("strict", func(t *testing.T) {
		code, _, _ := runCLI(t, "", CmdNameCheck, "--strict", filepath.Join(dir, "broken.xb"))
		assert.Equal(t, ExitCodeWarningsFound, code)
	})
}

func TestCheck_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, testMalformed, CmdNameCheck, "-F", OutputFormatJSON, "--strict", "-")
	assert.Equal(t, ExitCodeWarningsFound, code)

	var output checkOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	assert.False(t, output.Clean)
	require.Len(t, output.Warnings, 1)
	assert.Equal(t, "unmatched_body_close", output.Warnings[0].Kind)
	assert.Equal(t, 2, output.Warnings[0].Line)
	assert.Equal(t, "} x", output.Warnings[0].Excerpt)
}

func TestCheck_Errors(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		code, _, _ := runCLI(t, "", CmdNameCheck)
		assert.Equal(t, ExitCodeUsageError, code)
	})

	t.Run("invalid format", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNameCheck, "-F", "xml", "-")
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgInvalidFormat)
	})
}

// ==================== Plugins command tests ====================

func TestPlugins(t *testing.T) {
	dir := t.TempDir()
	writePluginScript(t, dir, "a.sh", "#!/bin/sh\necho note aside\n")
	writePluginScript(t, dir, "b.sh", "#!/bin/sh\necho figure\n")

	t.Run("text", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "", CmdNamePlugins, "-p", dir)
		require.Equal(t, ExitCodeSuccess, code, stderr)
		assert.Contains(t, stdout, filepath.Join(dir, "a.sh")+": note aside")
		assert.Contains(t, stdout, filepath.Join(dir, "b.sh")+": figure")
	})

	t.Run("json", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "", CmdNamePlugins, "-p", dir, "-F", OutputFormatJSON)
		require.Equal(t, ExitCodeSuccess, code)

		var found []pluginOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &found))
		require.Len(t, found, 2)
		assert.Equal(t, []string{"note", "aside"}, found[0].Elements)
	})

	t.Run("no targets", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNamePlugins)
		assert.Equal(t, ExitCodeUsageError, code)
		assert.Contains(t, stderr, ErrMsgNoPluginsRequested)
	})

	t.Run("explicit target failure", func(t *testing.T) {
		code, _, stderr := runCLI(t, "", CmdNamePlugins, "-p", filepath.Join(dir, "absent"))
		assert.Equal(t, ExitCodeError, code)
		assert.Contains(t, stderr, ErrMsgDiscoveryFailed)
	})
}
