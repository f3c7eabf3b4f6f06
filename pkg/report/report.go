package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/olickqc/hardlinkcheck/pkg/scanner"
)

const (
	timestampFormat  = "2006-01-02 15:04:05"
	fileSuffixFormat = "2006-01-02_15-04-05"
)

var (
	headerRule  = strings.Repeat("=", 80)
	sectionRule = strings.Repeat("-", 80)
)

type Writer struct {
	outputPath string
	log        *logrus.Entry
}

func NewWriter(outputPath string, log *logrus.Entry) *Writer {
	return &Writer{
		outputPath: outputPath,
		log:        log,
	}
}

// Path returns the report path for a run started at the given time. The
// timestamp suffix keeps prior reports from being overwritten.
func (w *Writer) Path(startedAt time.Time) string {
	ext := filepath.Ext(w.outputPath)
	stem := strings.TrimSuffix(w.outputPath, ext)

	return fmt.Sprintf("%s_%s%s", stem, startedAt.Format(fileSuffixFormat), ext)
}

// Write renders the report and moves it into place. The report is
// written to a temporary file and renamed so a failed run never leaves
// a partial report behind.
func (w *Writer) Write(result *scanner.Result, startedAt time.Time) (string, error) {
	path := w.Path(startedAt)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create report directory: %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "create temporary report file")
	}

	if _, err := tmp.Write(render(result)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "write report")
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "close report file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrapf(err, "rename report file: %s", path)
	}

	w.log.Infof("Report generated: %s", path)

	return path, nil
}

func render(result *scanner.Result) []byte {
	summary := result.Summary

	var b bytes.Buffer

	b.WriteString(headerRule + "\n")
	b.WriteString("HARDLINK CHECK REPORT\n")
	b.WriteString(headerRule + "\n\n")

	b.WriteString("SUMMARY STATISTICS\n")
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "Scan Path:                %s\n", summary.ScanRoot)
	fmt.Fprintf(&b, "Scan Timestamp:           %s\n", summary.ScanTime.Format(timestampFormat))
	fmt.Fprintf(&b, "Total Files Scanned:      %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "Hardlinked Files:         %d\n", summary.HardlinkedCount)
	fmt.Fprintf(&b, "Non-Hardlinked Files:     %d\n", summary.NonHardlinkedCount)
	fmt.Fprintf(&b, "Errors Encountered:       %d\n", summary.ErrorCount)
	fmt.Fprintf(&b, "Total Size:               %s\n", FormatSize(summary.TotalSizeBytes))
	fmt.Fprintf(&b, "Non-Hardlinked Size:      %s\n", FormatSize(summary.NonHardlinkedSizeBytes))
	fmt.Fprintf(&b, "Percentage Not Hardlinked: %.2f%%\n\n", summary.PercentNonHardlinked)

	if len(result.Files) > 0 {
		b.WriteString(headerRule + "\n")
		b.WriteString("NON-HARDLINKED FILES\n")
		b.WriteString(headerRule + "\n\n")

		for i, file := range result.Files {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, file.Path)
			fmt.Fprintf(&b, "    Size:         %s (%d bytes)\n", FormatSize(file.SizeBytes), file.SizeBytes)
			fmt.Fprintf(&b, "    Link Count:   %d\n", file.LinkCount)
			fmt.Fprintf(&b, "    Inode:        %d\n", file.Inode)
			fmt.Fprintf(&b, "    Modified:     %s\n\n", file.ModifiedAt.Format(timestampFormat))
		}
	} else {
		b.WriteString(headerRule + "\n")
		b.WriteString("All files are properly hardlinked!\n")
		b.WriteString(headerRule + "\n")
	}

	return b.Bytes()
}

// ConsoleSummary renders the abbreviated summary printed to stdout
// after a completed scan.
func ConsoleSummary(summary scanner.Summary, reportPath string) string {
	var b strings.Builder

	b.WriteString("\n" + headerRule + "\n")
	b.WriteString("SCAN COMPLETE\n")
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Total files scanned:      %d\n", summary.TotalFiles)
	fmt.Fprintf(&b, "Non-hardlinked files:     %d\n", summary.NonHardlinkedCount)
	fmt.Fprintf(&b, "Report saved to:          %s\n", reportPath)
	b.WriteString(headerRule + "\n\n")

	return b.String()
}
