package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/artpar/reacthub/adapters/exec"
	"github.com/artpar/reacthub/ports"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print system and toolchain information",
	Long: `Print the operating system, the toolchain versions found on PATH and the
CLI version. Missing tools are reported, not treated as errors.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		runner := exec.NewRealRunner(".")

		fmt.Fprintln(out, "[System Information]")
		fmt.Fprintf(out, "  OS:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  Go:       %s\n", runtime.Version())
		for _, tool := range []string{"node", "npm", "git"} {
			fmt.Fprintf(out, "  %-9s %s\n", tool+":", toolVersion(cmd, runner, tool))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "[CLI]")
		fmt.Fprintf(out, "  reacthub: %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// toolVersion returns the first line of "<tool> --version".
func toolVersion(cmd *cobra.Command, runner ports.CommandRunner, tool string) string {
	res, err := runner.Run(cmd.Context(), ports.Command{Name: tool, Args: []string{"--version"}})
	if err != nil || res.ExitCode != 0 {
		return "not found"
	}
	line, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
	return line
}
