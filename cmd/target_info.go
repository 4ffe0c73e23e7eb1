package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/smaramwbc/smb-speedtest/internal/inventory"
	"github.com/smaramwbc/smb-speedtest/internal/models"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

var targetInfoCmd = &cobra.Command{
	Use:   "target-info [path]",
	Short: "Get information about a speed test target directory",
	Long: `Get information about a target directory: file count, total size,
last modification time and whether the directory is writable.
Defaults to the configured remote path when no path is given.`,
	Example: `  # Inspect the configured remote target
  smb-speedtest target-info

  # Inspect a specific share directory
  smb-speedtest target-info /mnt/share/speedtest

  # Verbose output
  smb-speedtest target-info /mnt/share/speedtest --verbose`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTargetInfo(cmd, args)
	},
}

func runTargetInfo(cmd *cobra.Command, args []string) error {
	path := cfg.RemotePath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("a target path is required (argument or REMOTE_PATH)")
	}

	cmd.SilenceUsage = true

	if isVerbose(cmd) {
		cmd.Printf("Getting target information for: %s\n", path)
	}

	info, err := describeTarget(path)
	if err != nil {
		utils.PrintError(err, "target-info")
		return err
	}

	if err := utils.PrintJSON(info); err != nil {
		utils.PrintError(err, "target-info")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Target info retrieved successfully\n")
	}

	return nil
}

func describeTarget(path string) (*models.TargetInfo, error) {
	info := &models.TargetInfo{Path: path}

	inv, err := inventory.Scan(path)
	if err != nil && !errors.Is(err, inventory.ErrNoFiles) {
		return nil, err
	}

	if inv != nil {
		info.FileCount = len(inv.Files)
		info.TotalSizeBytes = inv.TotalSize
		for _, f := range inv.Files {
			if f.ModTime.After(info.LastModified) {
				info.LastModified = f.ModTime
			}
		}
	}
	info.TotalSizeHuman = utils.FormatBytes(info.TotalSizeBytes)
	info.Writable = isWritable(path)

	return info, nil
}

// isWritable probes the directory with a throwaway file; permission bits
// alone are unreliable on network shares.
func isWritable(path string) bool {
	probe := filepath.Join(path, fmt.Sprintf(".speedtest_probe_%d", time.Now().UnixNano()))
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
