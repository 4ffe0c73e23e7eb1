package share

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPrepareCreatesTargetDir(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "share-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	target := filepath.Join(tempDir, "remote", "speedtest")
	transport := New(target)

	if err := transport.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Target dir was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("Target %s is not a directory", target)
	}

	// Prepare on an existing dir must be a no-op.
	if err := transport.Prepare(context.Background()); err != nil {
		t.Errorf("Prepare() on existing dir error = %v", err)
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	localDir := t.TempDir()
	remoteDir := t.TempDir()

	content := []byte("share transport roundtrip content")
	localFile := filepath.Join(localDir, "sample.bin")
	if err := os.WriteFile(localFile, content, 0644); err != nil {
		t.Fatalf("Failed to create local file: %v", err)
	}

	transport := New(remoteDir)
	ctx := context.Background()

	if err := transport.Put(ctx, localFile, "sample.bin"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	remoteContent, err := os.ReadFile(filepath.Join(remoteDir, "sample.bin"))
	if err != nil {
		t.Fatalf("Failed to read remote copy: %v", err)
	}
	if string(remoteContent) != string(content) {
		t.Errorf("Remote copy content = %q, want %q", remoteContent, content)
	}

	readBack := filepath.Join(localDir, "readback.bin")
	if err := transport.Get(ctx, "sample.bin", readBack); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	localContent, err := os.ReadFile(readBack)
	if err != nil {
		t.Fatalf("Failed to read local copy: %v", err)
	}
	if string(localContent) != string(content) {
		t.Errorf("Read-back content = %q, want %q", localContent, content)
	}
}

func TestPutMissingSource(t *testing.T) {
	transport := New(t.TempDir())

	err := transport.Put(context.Background(), filepath.Join(t.TempDir(), "missing.bin"), "missing.bin")
	if err == nil {
		t.Error("Put() with missing source expected error, got nil")
	}
}

func TestGetMissingRemote(t *testing.T) {
	transport := New(t.TempDir())

	err := transport.Get(context.Background(), "missing.bin", filepath.Join(t.TempDir(), "out.bin"))
	if err == nil {
		t.Error("Get() with missing remote file expected error, got nil")
	}
}

func TestRemove(t *testing.T) {
	remoteDir := t.TempDir()
	transport := New(remoteDir)

	path := filepath.Join(remoteDir, "sample.bin")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create remote file: %v", err)
	}

	if err := transport.Remove(context.Background(), "sample.bin"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("File was not removed: %v", err)
	}

	if err := transport.Remove(context.Background(), "sample.bin"); err != nil {
		t.Errorf("Remove() on missing file error = %v", err)
	}
}

func TestDeleteOld(t *testing.T) {
	remoteDir := t.TempDir()

	oldFile := filepath.Join(remoteDir, "old.bin")
	newFile := filepath.Join(remoteDir, "new.bin")
	if err := os.WriteFile(oldFile, make([]byte, 100), 0644); err != nil {
		t.Fatalf("Failed to create old file: %v", err)
	}
	if err := os.WriteFile(newFile, make([]byte, 200), 0644); err != nil {
		t.Fatalf("Failed to create new file: %v", err)
	}

	oldTime := time.Now().AddDate(0, 0, -40)
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("Failed to age old file: %v", err)
	}

	result, err := DeleteOld(remoteDir, 30, false)
	if err != nil {
		t.Fatalf("DeleteOld() error = %v", err)
	}

	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want %d", result.DeletedCount, 1)
	}
	if result.TotalSizeBytes != 100 {
		t.Errorf("TotalSizeBytes = %d, want %d", result.TotalSizeBytes, 100)
	}
	if len(result.DeletedFiles) != 1 || result.DeletedFiles[0] != "old.bin" {
		t.Errorf("DeletedFiles = %v, want [old.bin]", result.DeletedFiles)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Errorf("Old file was not deleted: %v", err)
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Errorf("New file should have survived: %v", err)
	}
}

func TestDeleteOldDryRun(t *testing.T) {
	remoteDir := t.TempDir()

	oldFile := filepath.Join(remoteDir, "old.bin")
	if err := os.WriteFile(oldFile, make([]byte, 100), 0644); err != nil {
		t.Fatalf("Failed to create old file: %v", err)
	}
	oldTime := time.Now().AddDate(0, 0, -40)
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("Failed to age old file: %v", err)
	}

	result, err := DeleteOld(remoteDir, 30, true)
	if err != nil {
		t.Fatalf("DeleteOld() error = %v", err)
	}

	if !result.DryRun {
		t.Error("DryRun = false, want true")
	}
	if result.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want %d", result.DeletedCount, 1)
	}

	if _, err := os.Stat(oldFile); err != nil {
		t.Errorf("Dry run must not delete files: %v", err)
	}
}

func TestDeleteOldEmptyDir(t *testing.T) {
	result, err := DeleteOld(t.TempDir(), 30, false)
	if err != nil {
		t.Fatalf("DeleteOld() on empty dir error = %v", err)
	}
	if result.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", result.DeletedCount)
	}
}
