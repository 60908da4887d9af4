// Package sampleid derives sample identifiers from file names.
package sampleid

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// Ensure extractors implement the interface.
var (
	_ driven.SampleIDExtractor = (*FilenameExtractor)(nil)
	_ driven.SampleIDExtractor = (*RegexpExtractor)(nil)
)

// New returns a regexp extractor when pattern is set, otherwise a
// file name extractor.
func New(pattern, group string) (driven.SampleIDExtractor, error) {
	if pattern == "" {
		return NewFilename(), nil
	}
	return NewRegexp(pattern, group)
}

// FilenameExtractor uses the base file name without its extension.
type FilenameExtractor struct{}

// NewFilename creates a file name extractor.
func NewFilename() *FilenameExtractor {
	return &FilenameExtractor{}
}

// Extract returns the base name of name without its final extension.
// Leading dots do not start an extension, so ".hidden" stays ".hidden".
func (e *FilenameExtractor) Extract(name string) (string, error) {
	if err := check(name); err != nil {
		return "", err
	}

	base := filepath.Base(name)
	rest := strings.TrimLeft(base, ".")
	ext := filepath.Ext(rest)
	return strings.TrimSuffix(base, ext), nil
}

// RegexpExtractor takes the sample ID from a group of a pattern that
// must match at the start of the file name.
type RegexpExtractor struct {
	re    *regexp.Regexp
	group int
}

// NewRegexp compiles pattern and resolves group, which is either a
// group number or a group name. An empty group selects the whole match.
func NewRegexp(pattern, group string) (*RegexpExtractor, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: sample id pattern: %v", domain.ErrInvalidInput, err)
	}

	index, err := resolveGroup(re, group)
	if err != nil {
		return nil, err
	}

	return &RegexpExtractor{re: re, group: index}, nil
}

// Extract applies the pattern to name.
func (e *RegexpExtractor) Extract(name string) (string, error) {
	if err := check(name); err != nil {
		return "", err
	}

	match := e.re.FindStringSubmatch(name)
	if match == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNoMatch, name)
	}
	return match[e.group], nil
}

func resolveGroup(re *regexp.Regexp, group string) (int, error) {
	if group == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(group); err == nil {
		if n < 0 || n > re.NumSubexp() {
			return 0, fmt.Errorf("%w: pattern has no group %d", domain.ErrInvalidInput, n)
		}
		return n, nil
	}

	if i := re.SubexpIndex(group); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("%w: pattern has no group named %q", domain.ErrInvalidInput, group)
}

func check(name string) error {
	if name == "" {
		return fmt.Errorf("%w: no file provided", domain.ErrInvalidInput)
	}
	return nil
}
