package inventory

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoFiles is returned when the scanned directory exists but holds no
// regular files, which makes a throughput run meaningless.
var ErrNoFiles = errors.New("no files found")

type File struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Inventory is the enumerated set of sample files used as the basis for all
// throughput math. It is built once per run and not mutated afterwards.
type Inventory struct {
	Dir       string
	Files     []File
	TotalSize int64
}

// Scan lists the regular files directly inside dir, in directory order.
// Subdirectories are skipped, not descended into.
func Scan(dir string) (*Inventory, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	inv := &Inventory{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		inv.Files = append(inv.Files, File{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		inv.TotalSize += info.Size()
	}

	if len(inv.Files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}

	return inv, nil
}
