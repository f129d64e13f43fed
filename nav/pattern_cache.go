package nav

import (
	"regexp"
	"sync"
)

// regexpCache caches compiled regular expressions by pattern string.
// The number of unique patterns is bounded by the number of route templates,
// so the cache grows to a fixed size and stays there.
var regexpCache sync.Map

// patternCache caches compiled templates. Full-path templates are recompiled
// whenever a match list is truncated, so they are served from here.
var patternCache sync.Map

// compileRegexp returns a cached *regexp.Regexp for the given pattern,
// compiling and caching it on first use.
func compileRegexp(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexpCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := regexpCache.LoadOrStore(pattern, re)

	return actual.(*regexp.Regexp), nil
}

// cachedPattern returns the compiled pattern for template, compiling it on
// first use. Failed compilations are not cached.
func cachedPattern(template string) (*Pattern, error) {
	if v, ok := patternCache.Load(template); ok {
		return v.(*Pattern), nil
	}

	p, err := Compile(template)
	if err != nil {
		return nil, err
	}

	actual, _ := patternCache.LoadOrStore(template, p)

	return actual.(*Pattern), nil
}
