package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is injected at release time via ldflags. Dev builds leave it
// empty and fall back to the embedded module build info.
var version = ""

// buildVersion resolves the version string: the ldflags value wins,
// then the module version from build info, then "(devel)".
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// buildSetting returns one key from the embedded VCS build info.
func buildSetting(key string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value, true
		}
	}
	return "", false
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the ok22 version, with the VCS revision and commit time when the binary carries them.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok22 %s", buildVersion())
			if rev, ok := buildSetting("vcs.revision"); ok {
				if len(rev) > 12 {
					rev = rev[:12]
				}
				fmt.Fprintf(out, " (%s", rev)
				if ts, ok := buildSetting("vcs.time"); ok {
					fmt.Fprintf(out, " @ %s", ts)
				}
				fmt.Fprint(out, ")")
			}
			fmt.Fprintln(out)
		},
	}
}
