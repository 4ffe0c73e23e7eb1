package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/smaramwbc/smb-speedtest/internal/inventory"
	"github.com/smaramwbc/smb-speedtest/internal/models"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

// Transport copies files to and from a directory on a mounted network
// share. It works equally against a local directory, which is how the
// tests exercise it.
type Transport struct {
	dir string
}

func New(dir string) *Transport {
	return &Transport{dir: dir}
}

func (t *Transport) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(t.dir, 0755); err != nil {
		return fmt.Errorf("failed to create target directory %s: %w", t.dir, err)
	}
	return nil
}

func (t *Transport) Put(ctx context.Context, localPath, name string) error {
	return copyFile(localPath, filepath.Join(t.dir, name))
}

func (t *Transport) Get(ctx context.Context, name, localPath string) error {
	return copyFile(filepath.Join(t.dir, name), localPath)
}

func (t *Transport) Remove(ctx context.Context, name string) error {
	if err := os.Remove(filepath.Join(t.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s from target: %w", name, err)
	}
	return nil
}

func (t *Transport) Describe() string {
	return t.dir
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}

// DeleteOld removes files under dir whose modification time is before the
// cutoff. With dryRun set it only reports what would be deleted.
func DeleteOld(dir string, daysOld int, dryRun bool) (*models.CleanupResult, error) {
	cutoffDate := time.Now().AddDate(0, 0, -daysOld)

	inv, err := inventory.Scan(dir)
	if err != nil && !isNoFiles(err) {
		return nil, err
	}

	var deletedFiles []string
	var totalSize int64
	deletedCount := 0

	if inv != nil {
		for _, f := range inv.Files {
			if !f.ModTime.Before(cutoffDate) {
				continue
			}
			if !dryRun {
				if err := os.Remove(filepath.Join(dir, f.Name)); err != nil {
					return nil, fmt.Errorf("failed to delete %s: %w", f.Name, err)
				}
			}
			deletedFiles = append(deletedFiles, f.Name)
			totalSize += f.Size
			deletedCount++
		}
	}

	return &models.CleanupResult{
		Target:         dir,
		DaysOld:        daysOld,
		DeletedFiles:   deletedFiles,
		DeletedCount:   deletedCount,
		TotalSizeBytes: totalSize,
		TotalSizeHuman: utils.FormatBytes(totalSize),
		OperationTime:  utils.FormatTime(time.Now()),
		CutoffDate:     utils.FormatTime(cutoffDate),
		DryRun:         dryRun,
	}, nil
}

func isNoFiles(err error) bool {
	return errors.Is(err, inventory.ErrNoFiles)
}
