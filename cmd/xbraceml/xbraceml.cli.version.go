package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// versionInfo holds version information
type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// versionsYAML represents the versions.yaml file structure
type versionsYAML struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time      string `yaml:"time"`
		GoVersion string `yaml:"go_version"`
	} `yaml:"build"`
}

// versionFiles are searched in order; the first readable one wins.
var versionFiles = []string{"versions.yaml", "../versions.yaml", "../../versions.yaml"}

func runVersion(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet(CmdNameVersion)
	var format string
	fs.StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return runHelp([]string{CmdNameVersion}, stdout)
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}
	if format != OutputFormatText && format != OutputFormatJSON {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgInvalidFormat, format)
		return ExitCodeUsageError
	}

	v := getVersionInfo()

	if format == OutputFormatJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		v.Version, v.Commit, v.Branch, v.BuildTime, v.GoVersion)
	return ExitCodeSuccess
}

// getVersionInfo prefers a versions.yaml next to the binary's working
// directory and falls back to the build information stamped by the toolchain.
func getVersionInfo() *versionInfo {
	v := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
	}

	for _, path := range versionFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var vy versionsYAML
		if err := yaml.Unmarshal(data, &vy); err != nil {
			continue
		}

		setIfPresent(&v.Version, vy.Project.Version)
		setIfPresent(&v.Commit, vy.Git.Commit)
		setIfPresent(&v.Branch, vy.Git.Branch)
		setIfPresent(&v.BuildTime, vy.Build.Time)
		setIfPresent(&v.GoVersion, vy.Build.GoVersion)
		return v
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			v.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				setIfPresent(&v.Commit, setting.Value)
			case "vcs.time":
				setIfPresent(&v.BuildTime, setting.Value)
			}
		}
	}
	return v
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
