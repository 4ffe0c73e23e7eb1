package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smaramwbc/smb-speedtest/internal/inventory"
	"github.com/smaramwbc/smb-speedtest/internal/speedtest"
	"github.com/smaramwbc/smb-speedtest/internal/transport/s3"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

var s3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "Measure write and read throughput against an S3 bucket",
	Long: `Measure throughput against an S3-compatible object store instead of a
mounted share. Sample files are uploaded under the given key prefix,
then downloaded back, with the same timing and report as the run
command.

Credentials, region, endpoint and default bucket come from the
environment (ACCESS_KEY, SECRET_KEY, REGION, API_URL, BUCKET_NAME);
the bucket can be overridden with --bucket.`,
	Example: `  # Measure against the configured bucket
  smb-speedtest s3 --local ./samples

  # Different bucket and key prefix
  smb-speedtest s3 -l ./samples --bucket my-bucket --prefix bench/2026

  # Keep uploaded objects for inspection
  smb-speedtest s3 -l ./samples --keep --verbose`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runS3SpeedTest(cmd)
	},
}

func runS3SpeedTest(cmd *cobra.Command) error {
	local := getLocalPath(cmd)
	bucket := getBucketName(cmd)

	if local == "" {
		return fmt.Errorf("a local directory is required (--local flag or LOCAL_PATH)")
	}
	if bucket == "" {
		return fmt.Errorf("a bucket is required (--bucket flag or BUCKET_NAME)")
	}

	cmd.SilenceUsage = true

	inv, err := inventory.Scan(local)
	if err != nil {
		utils.PrintError(err, "s3")
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")
	keep, _ := cmd.Flags().GetBool("keep")

	transport, err := s3.New(cfg, bucket, prefix)
	if err != nil {
		utils.PrintError(err, "s3")
		return err
	}

	timeout, _ := cmd.Flags().GetInt("timeout")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if isVerbose(cmd) {
		cmd.Printf("Starting S3 speed test...\n")
		cmd.Printf("  Local: %s (%d files, %s)\n", local, len(inv.Files), utils.FormatBytes(inv.TotalSize))
		cmd.Printf("  Target: %s\n", transport.Describe())
	}

	runner := &speedtest.Runner{
		Transport: transport,
		Inventory: inv,
		Keep:      keep,
	}
	if isVerbose(cmd) {
		runner.Logf = cmd.Printf
	}

	report, err := runner.Run(ctx)
	if err != nil {
		utils.PrintError(err, "s3")
		return err
	}

	if err := utils.PrintJSON(report); err != nil {
		utils.PrintError(err, "s3")
		return err
	}

	if isVerbose(cmd) {
		cmd.Printf("Speed test completed: write %.2f Mbps, read %.2f Mbps\n", report.WriteMbps, report.ReadMbps)
	}

	return nil
}

func init() {
	s3Cmd.Flags().StringP("local", "l", "", "Local directory with sample files (or LOCAL_PATH)")
	s3Cmd.Flags().String("prefix", "smb-speedtest", "Key prefix for uploaded sample files")
	s3Cmd.Flags().Bool("keep", false, "Keep the uploaded objects after the run")
	s3Cmd.Flags().Int("timeout", 3600, "Timeout in seconds for the operation (default: 1 hour)")
}
