package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smaramwbc/smb-speedtest/config"
	"github.com/smaramwbc/smb-speedtest/internal/models"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestRunCommand(t *testing.T) {
	cfg = &config.Config{}

	localDir := t.TempDir()
	remoteDir := filepath.Join(t.TempDir(), "speedtest")

	for _, name := range []string{"a.bin", "b.bin", "c.bin"} {
		if err := os.WriteFile(filepath.Join(localDir, name), make([]byte, 4096), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	rootCmd.SetArgs([]string{
		"run",
		"--local", localDir,
		"--remote", remoteDir,
	})

	output, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("Run command failed: %v", err)
	}

	var report models.SpeedTestReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Run command produced invalid JSON: %v\n%s", err, output)
	}

	if report.Status != models.StatusAllSucceeded {
		t.Errorf("Status = %s, want %s", report.Status, models.StatusAllSucceeded)
	}
	if report.FileCount != 3 {
		t.Errorf("FileCount = %d, want %d", report.FileCount, 3)
	}
	if report.TotalSizeBytes != 3*4096 {
		t.Errorf("TotalSizeBytes = %d, want %d", report.TotalSizeBytes, 3*4096)
	}
	if len(report.Write.Transfers) != 3 {
		t.Errorf("Write transfers = %d, want %d", len(report.Write.Transfers), 3)
	}
	if report.WriteMbps <= 0 {
		t.Errorf("WriteMbps = %f, want > 0", report.WriteMbps)
	}
	if report.ReadMbps <= 0 {
		t.Errorf("ReadMbps = %f, want > 0", report.ReadMbps)
	}

	// Copies are removed from the target by default.
	entries, err := os.ReadDir(remoteDir)
	if err != nil {
		t.Fatalf("Failed to read remote dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Remote dir still holds %d files after run", len(entries))
	}
}

func TestRunCommandMissingPaths(t *testing.T) {
	cfg = &config.Config{}

	rootCmd.SetArgs([]string{"run", "--local", "", "--remote", ""})

	output, err := captureStdout(t, rootCmd.Execute)
	if err == nil {
		t.Fatal("Run command without paths expected error, got nil")
	}

	if strings.Contains(output, "write_mbps") {
		t.Errorf("No report should be emitted on missing paths: %s", output)
	}
}

func TestRunCommandEmptyLocalDir(t *testing.T) {
	cfg = &config.Config{}

	localDir := t.TempDir()
	remoteDir := filepath.Join(t.TempDir(), "speedtest")

	rootCmd.SetArgs([]string{
		"run",
		"--local", localDir,
		"--remote", remoteDir,
	})

	output, err := captureStdout(t, rootCmd.Execute)
	if err == nil {
		t.Fatal("Run command with empty local dir expected error, got nil")
	}

	if !strings.Contains(output, "no files found") {
		t.Errorf("Output doesn't mention the inventory failure: %s", output)
	}
	if strings.Contains(output, "write_mbps") {
		t.Errorf("No report should be emitted on inventory failure: %s", output)
	}

	// A fatal inventory error must abort before any copying starts.
	if _, err := os.Stat(remoteDir); !os.IsNotExist(err) {
		t.Errorf("Remote dir should not have been created: %v", err)
	}
}

func TestRunCommandGenerate(t *testing.T) {
	cfg = &config.Config{}

	localDir := filepath.Join(t.TempDir(), "samples")
	remoteDir := filepath.Join(t.TempDir(), "speedtest")

	rootCmd.SetArgs([]string{
		"run",
		"--local", localDir,
		"--remote", remoteDir,
		"--generate", "2",
		"--generate-size", "8K",
	})
	defer func() {
		runCmd.Flags().Set("generate", "0")
		runCmd.Flags().Set("generate-size", "1M")
	}()

	output, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("Run command failed: %v", err)
	}

	var report models.SpeedTestReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Run command produced invalid JSON: %v", err)
	}

	if report.FileCount != 2 {
		t.Errorf("FileCount = %d, want %d", report.FileCount, 2)
	}
	if report.TotalSizeBytes != 2*8*1024 {
		t.Errorf("TotalSizeBytes = %d, want %d", report.TotalSizeBytes, 2*8*1024)
	}
}

func TestRunCommandUsesConfigDefaults(t *testing.T) {
	localDir := t.TempDir()
	remoteDir := filepath.Join(t.TempDir(), "speedtest")

	if err := os.WriteFile(filepath.Join(localDir, "a.bin"), make([]byte, 1024), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	cfg = &config.Config{LocalPath: localDir, RemotePath: remoteDir}

	rootCmd.SetArgs([]string{"run", "--local", "", "--remote", ""})

	output, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("Run command failed: %v", err)
	}

	var report models.SpeedTestReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Run command produced invalid JSON: %v", err)
	}

	if report.Target != remoteDir {
		t.Errorf("Target = %s, want %s", report.Target, remoteDir)
	}
}
