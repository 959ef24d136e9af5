package main

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"
)

// version is filled from build info at startup and surfaced via --version.
var version = buildVersion()

func buildVersion() string {
	ver := "dev"
	revision := ""
	modified := ""

	if info, ok := rdebug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			ver = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				if setting.Value == "true" {
					modified = " (modified)"
				}
			}
		}
	}

	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}
		ver = fmt.Sprintf("%s-%s%s", ver, revision, modified)
	}
	return fmt.Sprintf("%s %s/%s", ver, runtime.GOOS, runtime.GOARCH)
}
