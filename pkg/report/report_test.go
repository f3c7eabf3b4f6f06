package report

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/scanner"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log.WithField("prefix", "report")
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name     string
		size     uint64
		expected string
	}{
		{name: "zero", size: 0, expected: "0.00 B"},
		{name: "below_unit_boundary", size: 1023, expected: "1023.00 B"},
		{name: "one_kilobyte", size: 1024, expected: "1.00 KB"},
		{name: "fractional_kilobytes", size: 1536, expected: "1.50 KB"},
		{name: "two_kilobytes", size: 2048, expected: "2.00 KB"},
		{name: "one_megabyte", size: 1024 * 1024, expected: "1.00 MB"},
		{name: "one_gigabyte", size: 1024 * 1024 * 1024, expected: "1.00 GB"},
		{name: "one_terabyte", size: 1024 * 1024 * 1024 * 1024, expected: "1.00 TB"},
		{name: "one_petabyte", size: 1024 * 1024 * 1024 * 1024 * 1024, expected: "1.00 PB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.size))
		})
	}
}

func TestWriterPath(t *testing.T) {
	startedAt := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		outputPath string
		expected   string
	}{
		{
			name:       "with_extension",
			outputPath: "/mnt/user/system/hardlink_report.txt",
			expected:   "/mnt/user/system/hardlink_report_2025-03-10_14-30-00.txt",
		},
		{
			name:       "without_extension",
			outputPath: "/mnt/user/system/hardlink_report",
			expected:   "/mnt/user/system/hardlink_report_2025-03-10_14-30-00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(tt.outputPath, testLogger())
			assert.Equal(t, tt.expected, w.Path(startedAt))
		})
	}
}

func TestWrite(t *testing.T) {
	eq := strings.Repeat("=", 80)
	dash := strings.Repeat("-", 80)

	result := &scanner.Result{
		Files: []config.File{
			{
				Path:       "/mnt/user/media/movies/alone.bin",
				SizeBytes:  2048,
				LinkCount:  1,
				Inode:      1056789,
				ModifiedAt: time.Date(2025, 3, 9, 8, 15, 42, 0, time.UTC),
			},
		},
		Summary: scanner.Summary{
			ScanRoot:               "/mnt/user/media",
			ScanTime:               time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			TotalFiles:             3,
			HardlinkedCount:        2,
			NonHardlinkedCount:     1,
			ErrorCount:             0,
			TotalSizeBytes:         2060,
			NonHardlinkedSizeBytes: 2048,
			PercentNonHardlinked:   33.33,
		},
	}

	base := filepath.Join(t.TempDir(), "reports", "hardlink_report.txt")
	startedAt := time.Date(2025, 3, 10, 14, 29, 55, 0, time.UTC)

	w := NewWriter(base, testLogger())
	path, err := w.Write(result, startedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(base), "hardlink_report_2025-03-10_14-29-55.txt"), path)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := strings.Join([]string{
		eq,
		"HARDLINK CHECK REPORT",
		eq,
		"",
		"SUMMARY STATISTICS",
		dash,
		"Scan Path:                /mnt/user/media",
		"Scan Timestamp:           2025-03-10 14:30:00",
		"Total Files Scanned:      3",
		"Hardlinked Files:         2",
		"Non-Hardlinked Files:     1",
		"Errors Encountered:       0",
		"Total Size:               2.01 KB",
		"Non-Hardlinked Size:      2.00 KB",
		"Percentage Not Hardlinked: 33.33%",
		"",
		eq,
		"NON-HARDLINKED FILES",
		eq,
		"",
		"[1] /mnt/user/media/movies/alone.bin",
		"    Size:         2.00 KB (2048 bytes)",
		"    Link Count:   1",
		"    Inode:        1056789",
		"    Modified:     2025-03-09 08:15:42",
		"",
	}, "\n") + "\n"

	assert.Equal(t, expected, string(contents))
}

func TestWrite_AllHardlinked(t *testing.T) {
	eq := strings.Repeat("=", 80)

	result := &scanner.Result{
		Summary: scanner.Summary{
			ScanRoot:        "/mnt/user/media",
			ScanTime:        time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			TotalFiles:      2,
			HardlinkedCount: 2,
		},
	}

	w := NewWriter(filepath.Join(t.TempDir(), "report.txt"), testLogger())
	path, err := w.Write(result, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(contents)
	assert.Contains(t, text, "All files are properly hardlinked!")
	assert.NotContains(t, text, "NON-HARDLINKED FILES")
	assert.True(t, strings.HasSuffix(text, eq+"\n"))
}

func TestWrite_CountsErrors(t *testing.T) {
	result := &scanner.Result{
		Summary: scanner.Summary{
			ScanRoot:             "/mnt/user/media",
			ScanTime:             time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
			TotalFiles:           3,
			HardlinkedCount:      2,
			ErrorCount:           1,
			TotalSizeBytes:       2048,
			PercentNonHardlinked: 0,
		},
	}

	w := NewWriter(filepath.Join(t.TempDir(), "report.txt"), testLogger())
	path, err := w.Write(result, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	// errored files stay out of both buckets but show in the summary
	text := string(contents)
	assert.Contains(t, text, "Total Files Scanned:      3\n")
	assert.Contains(t, text, "Hardlinked Files:         2\n")
	assert.Contains(t, text, "Errors Encountered:       1\n")
	assert.Contains(t, text, "All files are properly hardlinked!")
}

func TestWrite_MultipleFilesNumberedSequentially(t *testing.T) {
	result := &scanner.Result{
		Files: []config.File{
			{Path: "/mnt/user/media/a.bin", SizeBytes: 1, LinkCount: 1, ModifiedAt: time.Now()},
			{Path: "/mnt/user/media/b.bin", SizeBytes: 2, LinkCount: 1, ModifiedAt: time.Now()},
			{Path: "/mnt/user/media/c.bin", SizeBytes: 3, LinkCount: 1, ModifiedAt: time.Now()},
		},
		Summary: scanner.Summary{TotalFiles: 3, NonHardlinkedCount: 3},
	}

	w := NewWriter(filepath.Join(t.TempDir(), "report.txt"), testLogger())
	path, err := w.Write(result, time.Now())
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(contents)
	assert.Contains(t, text, "[1] /mnt/user/media/a.bin")
	assert.Contains(t, text, "[2] /mnt/user/media/b.bin")
	assert.Contains(t, text, "[3] /mnt/user/media/c.bin")
}

func TestWrite_LeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()

	result := &scanner.Result{
		Summary: scanner.Summary{TotalFiles: 1, HardlinkedCount: 1},
	}

	w := NewWriter(filepath.Join(dir, "report.txt"), testLogger())
	_, err := w.Write(result, time.Now())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasSuffix(entries[0].Name(), ".tmp"))
}

func TestConsoleSummary(t *testing.T) {
	eq := strings.Repeat("=", 80)

	summary := scanner.Summary{
		TotalFiles:         1500,
		NonHardlinkedCount: 42,
	}

	// the block is framed by blank lines on both sides
	expected := strings.Join([]string{
		"",
		eq,
		"SCAN COMPLETE",
		eq,
		"Total files scanned:      1500",
		"Non-hardlinked files:     42",
		"Report saved to:          /mnt/user/system/hardlink_report_2025-03-10_14-30-00.txt",
		eq,
		"",
	}, "\n") + "\n"

	assert.Equal(t, expected, ConsoleSummary(summary, "/mnt/user/system/hardlink_report_2025-03-10_14-30-00.txt"))
}
