package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/expression"
	"github.com/olickqc/hardlinkcheck/pkg/linkinfo"
)

const progressInterval = 1000

func New(cfg *config.Configuration, log *logrus.Entry) (*Scanner, error) {
	ignoreExpressions, err := expression.Compile(cfg.Filters.Ignore)
	if err != nil {
		return nil, fmt.Errorf("compile ignore expressions: %w", err)
	}

	ignorePaths := make([]string, 0, len(cfg.Filters.IgnorePaths))
	for _, p := range cfg.Filters.IgnorePaths {
		ignorePaths = append(ignorePaths, strings.ToLower(filepath.Clean(p)))
	}

	ignoreExtensions := strset.New()
	for _, ext := range cfg.Filters.IgnoreExtensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		ignoreExtensions.Add(strings.ToLower(ext))
	}

	return &Scanner{
		root:              cfg.FolderPath,
		ignorePaths:       ignorePaths,
		ignoreExtensions:  ignoreExtensions,
		ignoreExpressions: ignoreExpressions,
		log:               log,
	}, nil
}

// Run walks the scan root and classifies every regular file by its
// hardlink count. Filtered files are excluded from all totals; files
// whose metadata cannot be read count toward ErrorCount only.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	rootInfo, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrScanPathNotFound, s.root)
		}
		return nil, fmt.Errorf("stat scan path: %w", err)
	}

	if !rootInfo.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrScanPathNotADirectory, s.root)
	}

	s.log.Infof("Starting scan of: %s", s.root)

	result := new(Result)
	summary := &result.Summary

	conf := fastwalk.Config{Follow: false, NumWorkers: 1}

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			// unreadable directories are skipped, their contents never
			// enumerated, so nothing is added to any count
			s.log.Warnf("Failed to read directory entry: %s - %s", path, err)
			return nil
		}

		if d.IsDir() {
			if s.isIgnoredPath(path) {
				s.log.Debugf("Skipping ignored directory: %s", path)
				return fastwalk.SkipDir
			}
			return nil
		}

		// symlinks and other non-regular entries are never classified
		if !d.Type().IsRegular() {
			return nil
		}

		if s.isIgnoredPath(path) || s.isIgnoredExtension(path) {
			return nil
		}

		file, err := s.statFile(path)
		if err != nil {
			summary.TotalFiles++
			summary.ErrorCount++
			s.log.Warnf("Failed to get file info: %s - %s", path, err)
			s.logProgress(summary)
			return nil
		}

		if len(s.ignoreExpressions) > 0 {
			ignored, reason, err := expression.CheckFileSingleMatchWithReason(ctx, file, s.ignoreExpressions)
			if err != nil {
				return fmt.Errorf("check ignore expressions: %w", err)
			}

			if ignored {
				s.log.Tracef("Ignoring file: %s - matched: %s", path, reason)
				return nil
			}
		}

		summary.TotalFiles++
		summary.TotalSizeBytes += file.SizeBytes

		if file.IsHardlinked() {
			summary.HardlinkedCount++
		} else {
			summary.NonHardlinkedCount++
			summary.NonHardlinkedSizeBytes += file.SizeBytes
			result.Files = append(result.Files, *file)
		}

		s.logProgress(summary)
		return nil
	}

	if err := fastwalk.Walk(&conf, s.root, walkFn); err != nil {
		return nil, fmt.Errorf("walk scan path: %w", err)
	}

	summary.ScanRoot = s.root
	summary.ScanTime = time.Now()

	if summary.TotalFiles > 0 {
		pct := float64(summary.NonHardlinkedCount) / float64(summary.TotalFiles) * 100
		summary.PercentNonHardlinked = math.Round(pct*100) / 100
	}

	s.log.Infof("Scan complete. Processed %d files.", summary.TotalFiles)

	return result, nil
}

// statFile builds a file record from a single stat call.
func (s *Scanner) statFile(path string) (*config.File, error) {
	info, err := linkinfo.Stat(path)
	if err != nil {
		return nil, err
	}

	f := &config.File{
		Path:       path,
		Name:       filepath.Base(path),
		Directory:  filepath.Dir(path),
		Extension:  filepath.Ext(path),
		SizeBytes:  info.Size,
		LinkCount:  info.Links,
		Inode:      info.ID.Inode,
		Device:     info.ID.Device,
		ModifiedAt: info.ModTime,
	}

	f.AgeHours = time.Since(f.ModifiedAt).Hours()
	f.AgeDays = f.AgeHours / 24

	return f, nil
}

func (s *Scanner) isIgnoredPath(path string) bool {
	lowered := strings.ToLower(path)
	for _, prefix := range s.ignorePaths {
		if lowered == prefix || strings.HasPrefix(lowered, prefix+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (s *Scanner) isIgnoredExtension(path string) bool {
	return s.ignoreExtensions.Has(strings.ToLower(filepath.Ext(path)))
}

func (s *Scanner) logProgress(summary *Summary) {
	if summary.TotalFiles > 0 && summary.TotalFiles%progressInterval == 0 {
		s.log.Infof("Processed %d files...", summary.TotalFiles)
	}
}
