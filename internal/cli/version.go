package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "output", "text", "Output format: text, short or json")
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersion()
		out := cmd.OutOrStdout()

		switch versionFormat {
		case "short":
			fmt.Fprintln(out, info.Version)
		case "json":
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		case "text", "":
			fmt.Fprintf(out, "%s %s (%s, %s) built %s with %s\n",
				branding.CLIName(), info.Version, info.Commit, info.Platform, info.Date, info.GoVersion)
		default:
			return fmt.Errorf("unknown output format %q (want text, short or json)", versionFormat)
		}
		return nil
	},
}
