package utils

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const payloadBlockSize = 1024 * 1024

// GeneratePayload creates count sample files of size bytes each in dir and
// returns their paths. Content is random so share-side compression cannot
// inflate the measured throughput.
func GeneratePayload(dir string, count int, size int64) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("payload count must be greater than 0")
	}
	if size <= 0 {
		return nil, fmt.Errorf("payload size must be greater than 0")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create payload directory %s: %w", dir, err)
	}

	block := make([]byte, payloadBlockSize)
	if _, err := rand.Read(block); err != nil {
		return nil, fmt.Errorf("failed to generate payload data: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	paths := make([]string, 0, count)

	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("sample_%s_%02d.bin", stamp, i+1))
		if err := writePayloadFile(path, block, size); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writePayloadFile(path string, block []byte, size int64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create payload file %s: %w", path, err)
	}

	remaining := size
	for remaining > 0 {
		chunk := block
		if remaining < int64(len(block)) {
			chunk = block[:remaining]
		}
		if _, err := file.Write(chunk); err != nil {
			file.Close()
			return fmt.Errorf("failed to write payload file %s: %w", path, err)
		}
		remaining -= int64(len(chunk))
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close payload file %s: %w", path, err)
	}
	return nil
}

func ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("path does not exist: %s", path)
			}
			return fmt.Errorf("cannot access path %s: %w", path, err)
		}
	}
	return nil
}

func CleanupTempFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to cleanup temporary file %s: %w", path, err)
	}
	return nil
}
