package regex

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// Pattern wraps a compiled expression so callers can reuse it across checks.
type Pattern struct {
	Expression *regexp2.Regexp
}

// matchTimeout bounds a single match attempt, protecting against
// catastrophic backtracking in user supplied patterns.
const matchTimeout = 5 * time.Second

var (
	cacheMux sync.RWMutex
	cache    = make(map[string]*Pattern)
)

// Compile compiles a pattern, serving repeat requests from a process-wide
// cache.
func Compile(pattern string) (*Pattern, error) {
	cacheMux.RLock()
	p, ok := cache[pattern]
	cacheMux.RUnlock()
	if ok {
		return p, nil
	}

	expr, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	expr.MatchTimeout = matchTimeout

	p = &Pattern{Expression: expr}

	cacheMux.Lock()
	cache[pattern] = p
	cacheMux.Unlock()

	return p, nil
}

// Check reports whether s matches the pattern.
func Check(s string, pattern *Pattern) (bool, error) {
	return pattern.Expression.MatchString(s)
}

// CheckAny reports whether s matches at least one of the patterns.
func CheckAny(s string, patterns []*Pattern) (bool, error) {
	for _, p := range patterns {
		match, err := p.Expression.MatchString(s)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}

	return false, nil
}

// CheckAll reports whether s matches every pattern.
func CheckAll(s string, patterns []*Pattern) (bool, error) {
	for _, p := range patterns {
		match, err := p.Expression.MatchString(s)
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}

	return true, nil
}
