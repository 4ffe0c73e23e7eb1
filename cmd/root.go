package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smaramwbc/smb-speedtest/config"
)

var (
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "smb-speedtest",
	Short: "Throughput measurement tool for network file shares",
	Long: `smb-speedtest measures the effective throughput of a network file share
by copying sample files to a remote target and back, timing each phase,
and reporting write and read speed in megabits per second.
Configuration is loaded from .env file or environment variables`,
	SilenceErrors: true,
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(s3Cmd)
	rootCmd.AddCommand(targetInfoCmd)
	rootCmd.AddCommand(cleanupCmd)

	rootCmd.PersistentFlags().StringP("bucket", "b", "", "Override bucket name from config (s3 mode)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func getBucketName(cmd *cobra.Command) string {
	bucket, _ := cmd.Flags().GetString("bucket")
	if bucket != "" {
		return bucket
	}
	return cfg.BucketName
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func getLocalPath(cmd *cobra.Command) string {
	local, _ := cmd.Flags().GetString("local")
	if local != "" {
		return local
	}
	return cfg.LocalPath
}

func getRemotePath(cmd *cobra.Command) string {
	remote, _ := cmd.Flags().GetString("remote")
	if remote != "" {
		return remote
	}
	return cfg.RemotePath
}
