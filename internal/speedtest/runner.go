package speedtest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/smaramwbc/smb-speedtest/internal/inventory"
	"github.com/smaramwbc/smb-speedtest/internal/models"
	"github.com/smaramwbc/smb-speedtest/internal/transport"
	"github.com/smaramwbc/smb-speedtest/pkg/utils"
)

// Runner drives one throughput measurement: every inventory file is copied
// to the target while timed (write phase), then copied back while timed
// (read phase). Strictly sequential; one copy at a time is the point of
// the measurement.
type Runner struct {
	Transport transport.Transport
	Inventory *inventory.Inventory

	// Keep leaves the copies on the target after the run.
	Keep bool

	// Logf receives per-file progress lines when set.
	Logf func(format string, args ...interface{})
}

// Run executes both phases and assembles the report. Only target
// preparation can fail the run; individual copy failures are recorded in
// the report and the run continues.
func (r *Runner) Run(ctx context.Context) (*models.SpeedTestReport, error) {
	start := time.Now()

	if err := r.Transport.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare target %s: %w", r.Transport.Describe(), err)
	}

	write := r.runPhase(ctx, "write", r.put)
	read := r.runPhase(ctx, "read", r.get)

	if !r.Keep {
		r.removeCopies(ctx)
	}

	status := models.StatusAllSucceeded
	if write.FailedCount > 0 || read.FailedCount > 0 {
		status = models.StatusPartialFailure
	}

	return &models.SpeedTestReport{
		TimeStamp:      utils.FormatTime(start),
		Status:         status,
		Target:         r.Transport.Describe(),
		FileCount:      len(r.Inventory.Files),
		TotalSizeBytes: r.Inventory.TotalSize,
		TotalSizeHuman: utils.FormatBytes(r.Inventory.TotalSize),
		Write:          write,
		Read:           read,
		WriteMbps:      write.Mbps,
		ReadMbps:       read.Mbps,
	}, nil
}

func (r *Runner) put(ctx context.Context, file inventory.File) error {
	return r.Transport.Put(ctx, filepath.Join(r.Inventory.Dir, file.Name), file.Name)
}

func (r *Runner) get(ctx context.Context, file inventory.File) error {
	return r.Transport.Get(ctx, file.Name, filepath.Join(r.Inventory.Dir, file.Name))
}

func (r *Runner) runPhase(ctx context.Context, phase string, transfer func(context.Context, inventory.File) error) models.PhaseResult {
	result := models.PhaseResult{
		Transfers: make([]models.TransferRecord, 0, len(r.Inventory.Files)),
	}

	for _, file := range r.Inventory.Files {
		record := models.TransferRecord{File: file.Name, Bytes: file.Size}

		start := time.Now()
		if err := transfer(ctx, file); err != nil {
			record.Error = err.Error()
			result.FailedCount++
			slog.Warn("copy failed", "phase", phase, "file", file.Name, "error", err)
		} else {
			record.Seconds = time.Since(start).Seconds()
			result.TotalSeconds += record.Seconds
			result.TransferredBytes += file.Size
			r.logf("%s %s: %d bytes in %.3fs", phase, file.Name, file.Size, record.Seconds)
		}

		result.Transfers = append(result.Transfers, record)
	}

	result.Mbps = Mbps(result.TransferredBytes, result.TotalSeconds)
	return result
}

func (r *Runner) removeCopies(ctx context.Context) {
	for _, file := range r.Inventory.Files {
		if err := r.Transport.Remove(ctx, file.Name); err != nil {
			slog.Warn("cleanup failed", "file", file.Name, "error", err)
		}
	}
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logf != nil {
		r.Logf(format+"\n", args...)
	}
}

// Mbps converts a byte count moved in the given number of seconds to
// megabits per second, rounded to two decimals. Zero elapsed time reports
// zero rather than dividing by it, which covers the all-copies-failed case.
func Mbps(bytes int64, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Round(float64(bytes)*8/seconds/1048576*100) / 100
}
