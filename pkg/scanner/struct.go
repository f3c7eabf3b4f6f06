package scanner

import (
	"errors"
	"time"

	"github.com/scylladb/go-set/strset"
	"github.com/sirupsen/logrus"

	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/expression"
)

var (
	ErrScanPathNotFound      = errors.New("scan path not found")
	ErrScanPathNotADirectory = errors.New("scan path is not a directory")
	ErrNonHardlinkedFound    = errors.New("non-hardlinked files found")
)

// Summary holds the totals accumulated over one scan.
// TotalFiles = HardlinkedCount + NonHardlinkedCount + ErrorCount.
type Summary struct {
	ScanRoot               string
	ScanTime               time.Time
	TotalFiles             uint64
	HardlinkedCount        uint64
	NonHardlinkedCount     uint64
	ErrorCount             uint64
	TotalSizeBytes         uint64
	NonHardlinkedSizeBytes uint64
	PercentNonHardlinked   float64
}

// Result is the outcome of a completed scan: one record per
// non-hardlinked file in traversal order, plus the summary totals.
type Result struct {
	Files   []config.File
	Summary Summary
}

type Scanner struct {
	root              string
	ignorePaths       []string
	ignoreExtensions  *strset.Set
	ignoreExpressions []expression.CompiledExpression
	log               *logrus.Entry
}
