package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smaramwbc/smb-speedtest/internal/transport/share"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [path]",
	Short: "Delete files older than specified days from the target",
	Long: `Delete files in the target directory that are older than the specified
number of days. Useful for clearing sample copies left behind by
earlier runs with --keep.

The command will:
- List all files directly inside the target directory
- Filter files older than the cutoff date
- Delete matching files
- Return detailed information about the deletion operation

WARNING: This operation is irreversible. Deleted files cannot be recovered.`,
	Example: `  # Delete files older than 30 days from the configured remote
  smb-speedtest cleanup --days 30

  # Delete files older than 7 days from a specific directory
  smb-speedtest cleanup /mnt/share/speedtest --days 7

  # Preview without deleting
  smb-speedtest cleanup /mnt/share/speedtest --days 30 --dry-run

  # Skip the confirmation prompt
  smb-speedtest cleanup /mnt/share/speedtest --days 30 --confirm --verbose`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCleanup(cmd, args)
	},
}

func runCleanup(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	confirm, _ := cmd.Flags().GetBool("confirm")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	path := cfg.RemotePath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("a target path is required (argument or REMOTE_PATH)")
	}
	if days <= 0 {
		return fmt.Errorf("days must be greater than 0")
	}

	cmd.SilenceUsage = true

	if !confirm && !dryRun {
		cutoffDate := time.Now().AddDate(0, 0, -days)

		fmt.Printf("WARNING: This will permanently delete files older than %d days (%s) from '%s'\n",
			days, cutoffDate.Format("2006-01-02"), path)
		fmt.Print("Are you sure? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" && response != "YES" {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	if isVerbose(cmd) {
		cmd.Printf("Deleting files older than %d days from: %s\n", days, path)
		if dryRun {
			cmd.Println("DRY RUN MODE: No files will actually be deleted")
		}
	}

	result, err := share.DeleteOld(path, days, dryRun)
	if err != nil {
		utils.PrintError(err, "cleanup")
		return err
	}

	if err := utils.PrintJSON(result); err != nil {
		utils.PrintError(err, "cleanup")
		return err
	}

	if isVerbose(cmd) {
		cmd.Println("Cleanup completed successfully")
	}

	return nil
}

func init() {
	cleanupCmd.Flags().IntP("days", "d", 0, "Delete files older than this many days (required)")
	if err := cleanupCmd.MarkFlagRequired("days"); err != nil {
		utils.PrintError(err, "cleanup")
	}

	cleanupCmd.Flags().Bool("confirm", false, "Skip confirmation prompt")
	cleanupCmd.Flags().Bool("dry-run", false, "Show what would be deleted without actually deleting")
}
