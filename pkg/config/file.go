package config

import (
	"math"
	"strings"
	"time"

	"github.com/olickqc/hardlinkcheck/pkg/regex"
)

// File is one scanned file. It doubles as the environment that filter
// expressions are evaluated against, so the helper methods below are part
// of the expression surface.
type File struct {
	Path       string
	Name       string
	Directory  string
	Extension  string
	SizeBytes  uint64
	LinkCount  uint64
	Inode      uint64
	Device     uint64
	ModifiedAt time.Time

	// derived at record build, for filter expressions
	AgeHours float64
	AgeDays  float64

	regexPattern *regex.Pattern
}

func (f *File) IsHardlinked() bool {
	return f.LinkCount > 1
}

// HasExtension checks the file extension, leading dot optional.
func (f *File) HasExtension(ext string) bool {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return strings.EqualFold(f.Extension, ext)
}

func (f *File) Log(n float64) float64 {
	return math.Log(n)
}

// RegexMatch delegates to the regex checker, matching against the file name.
func (f *File) RegexMatch(pattern string) bool {
	// Compile pattern if needed
	if f.regexPattern == nil || f.regexPattern.Expression.String() != pattern {
		compiled, err := regex.Compile(pattern)
		if err != nil {
			return false
		}
		f.regexPattern = compiled
	}

	// Check pattern
	match, err := regex.Check(f.Name, f.regexPattern)
	if err != nil {
		return false
	}

	return match
}

// RegexMatchAny checks if the file name matches any of the provided patterns
func (f *File) RegexMatchAny(patternsStr string) bool {
	patterns := strings.Split(patternsStr, ",")

	var compiledPatterns []*regex.Pattern
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		compiled, err := regex.Compile(p)
		if err != nil {
			continue
		}
		compiledPatterns = append(compiledPatterns, compiled)
	}

	match, err := regex.CheckAny(f.Name, compiledPatterns)
	if err != nil {
		return false
	}

	return match
}

// RegexMatchAll checks if the file name matches all of the provided patterns
func (f *File) RegexMatchAll(patternsStr string) bool {
	patterns := strings.Split(patternsStr, ",")

	var compiledPatterns []*regex.Pattern
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		compiled, err := regex.Compile(p)
		if err != nil {
			return false
		}
		compiledPatterns = append(compiledPatterns, compiled)
	}

	match, err := regex.CheckAll(f.Name, compiledPatterns)
	if err != nil {
		return false
	}

	return match
}
