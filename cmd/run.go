package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smaramwbc/smb-speedtest/internal/inventory"
	"github.com/smaramwbc/smb-speedtest/internal/speedtest"
	"github.com/smaramwbc/smb-speedtest/internal/transport/share"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure write and read throughput of a network share",
	Long: `Measure the effective throughput of a network file share.

Every file in the local directory is copied to the remote target while
being timed (write phase), then copied back while being timed (read
phase). The result is a single JSON report with per-file timings and
aggregate write/read speed in megabits per second.

Individual copy failures are recorded in the report and do not abort the
run. The copies left on the target are removed afterwards unless --keep
is given.`,
	Example: `  # Measure a mounted share
  smb-speedtest run --local ./samples --remote /mnt/share/speedtest

  # Generate 4 random 1M sample files first
  smb-speedtest run -l ./samples -r /mnt/share/speedtest --generate 4

  # Bigger samples, keep the remote copies
  smb-speedtest run -l ./samples -r /mnt/share/speedtest -g 2 --generate-size 64M --keep

  # Verbose per-file progress
  smb-speedtest run -l ./samples -r /mnt/share/speedtest --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSpeedTest(cmd)
	},
}

func runSpeedTest(cmd *cobra.Command) error {
	local := getLocalPath(cmd)
	remote := getRemotePath(cmd)

	if local == "" || remote == "" {
		return fmt.Errorf("both a local directory and a remote target are required (--local/--remote flags or LOCAL_PATH/REMOTE_PATH)")
	}

	// Past this point failures are operational, not usage mistakes.
	cmd.SilenceUsage = true

	generate, _ := cmd.Flags().GetInt("generate")
	if generate > 0 {
		sizeArg, _ := cmd.Flags().GetString("generate-size")
		size := utils.ParseSize(sizeArg)
		if size <= 0 {
			err := fmt.Errorf("invalid --generate-size value: %s", sizeArg)
			utils.PrintError(err, "run")
			return err
		}

		if isVerbose(cmd) {
			cmd.Printf("Generating %d sample files of %s in %s\n", generate, utils.FormatBytes(size), local)
		}

		if _, err := utils.GeneratePayload(local, generate, size); err != nil {
			utils.PrintError(err, "run")
			return err
		}
	}

	inv, err := inventory.Scan(local)
	if err != nil {
		utils.PrintError(err, "run")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Starting speed test...\n")
		cmd.Printf("  Local: %s (%d files, %s)\n", local, len(inv.Files), utils.FormatBytes(inv.TotalSize))
		cmd.Printf("  Remote: %s\n", remote)
	}

	keep, _ := cmd.Flags().GetBool("keep")

	runner := &speedtest.Runner{
		Transport: share.New(remote),
		Inventory: inv,
		Keep:      keep,
	}
	if isVerbose(cmd) {
		runner.Logf = cmd.Printf
	}

	report, err := runner.Run(context.Background())
	if err != nil {
		utils.PrintError(err, "run")
		return err
	}

	if err := utils.PrintJSON(report); err != nil {
		utils.PrintError(err, "run")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Speed test completed: write %.2f Mbps, read %.2f Mbps\n", report.WriteMbps, report.ReadMbps)
	}

	return nil
}

func init() {
	runCmd.Flags().StringP("local", "l", "", "Local directory with sample files (or LOCAL_PATH)")
	runCmd.Flags().StringP("remote", "r", "", "Remote target directory on the share (or REMOTE_PATH)")
	runCmd.Flags().IntP("generate", "g", 0, "Generate this many random sample files in the local directory first")
	runCmd.Flags().String("generate-size", "1M", "Size of each generated sample file (e.g. 512K, 1M, 64M)")
	runCmd.Flags().Bool("keep", false, "Keep the copies on the remote target after the run")

	runCmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}
