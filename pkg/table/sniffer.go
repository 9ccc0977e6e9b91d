// Package table provides dialect detection and header utilities.
package table

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gobwas/glob"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sniffer detects the dialect of a table sample (delimiter, headers).
type Sniffer struct {
	sample    string
	comment   rune
	delimiter rune
	hasHeader bool
	analyzed  bool
}

// NewSniffer creates a new Sniffer with a sample of table data.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{
		sample:   sample,
		analyzed: false,
	}
}

// SetComment sets the comment character. Comment lines in the sample
// are ignored during detection.
// Returns the Sniffer for method chaining.
func (s *Sniffer) SetComment(c rune) *Sniffer {
	s.comment = c
	s.analyzed = false
	return s
}

// analyze performs dialect detection on the sample.
func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// lines returns the sample's non-blank, non-comment lines.
func (s *Sniffer) lines() []string {
	var kept []string
	for _, line := range strings.Split(s.sample, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if s.comment != 0 && strings.HasPrefix(trimmed, string(s.comment)) {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// DetectDelimiter returns the detected field delimiter.
// Common delimiters checked: comma, tab, semicolon, pipe, space.
func (s *Sniffer) DetectDelimiter() rune {
	s.analyze()
	return s.delimiter
}

// detectDelimiter performs the actual delimiter detection.
func (s *Sniffer) detectDelimiter() rune {
	lines := s.lines()
	if len(lines) == 0 {
		return ','
	}

	delimiters := []rune{',', '\t', ';', '|', ' '}
	scores := make(map[rune]int)

	// Count occurrences of each delimiter per line
	for _, delim := range delimiters {
		counts := make([]int, 0, len(lines))
		for _, line := range lines {
			counts = append(counts, countDelimiter(line, delim))
		}

		// Score based on consistency across lines
		if len(counts) > 0 && counts[0] > 0 {
			consistent := true
			for i := 1; i < len(counts); i++ {
				if counts[i] != counts[0] {
					consistent = false
					break
				}
			}
			if consistent {
				scores[delim] = counts[0] * 10 // Bonus for consistency
			} else {
				scores[delim] = counts[0]
			}
		}
	}

	// Return delimiter with highest score
	best := ','
	bestScore := 0
	for delim, score := range scores {
		if score > bestScore {
			best = delim
			bestScore = score
		}
	}

	return best
}

// countDelimiter counts occurrences of a delimiter, ignoring quoted
// sections.
func countDelimiter(line string, delim rune) int {
	count := 0
	inQuotes := false

	for _, ch := range line {
		if ch == '"' {
			inQuotes = !inQuotes
		} else if ch == delim && !inQuotes {
			count++
		}
	}

	return count
}

// HasHeader returns true if the first row appears to be a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// detectHeader uses heuristics to determine if the first row is a
// header.
func (s *Sniffer) detectHeader() bool {
	lines := s.lines()
	if len(lines) < 2 {
		return false // Need at least 2 lines to compare
	}

	delim := s.delimiter
	firstFields := splitByDelimiter(lines[0], delim)
	secondFields := splitByDelimiter(lines[1], delim)

	if len(firstFields) == 0 || len(secondFields) == 0 {
		return false
	}

	// Header rows are typically non-numeric names; data rows lean
	// numeric. Score the first row's fields both ways.
	headerScore := 0
	dataScore := 0

	for _, field := range firstFields {
		field = strings.TrimSpace(field)
		if isLikelyHeader(field) {
			headerScore++
		}
		if isLikelyData(field) {
			dataScore++
		}
	}

	return headerScore > dataScore
}

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
	regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
	regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
}

// isLikelyHeader checks if a field looks like a header name.
func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isLikelyData checks if a field looks like data rather than a header.
func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// isNumeric checks if a string represents a number.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}

	hasDot := false
	for _, ch := range s {
		if ch == '.' {
			if hasDot {
				return false
			}
			hasDot = true
		} else if !unicode.IsDigit(ch) {
			return false
		}
	}

	return len(s) > 0
}

// splitByDelimiter splits a line by delimiter, respecting quotes.
func splitByDelimiter(line string, delim rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		if ch == '"' {
			inQuotes = !inQuotes
			current.WriteRune(ch)
		} else if ch == delim && !inQuotes {
			fields = append(fields, current.String())
			current.Reset()
		} else {
			current.WriteRune(ch)
		}
	}

	fields = append(fields, current.String())

	return fields
}

// HeaderConverter is a function that transforms header names.
type HeaderConverter func(string) string

// LowercaseHeader converts headers to lowercase.
func LowercaseHeader(s string) string {
	return strings.ToLower(s)
}

// UppercaseHeader converts headers to uppercase.
func UppercaseHeader(s string) string {
	return strings.ToUpper(s)
}

// SnakeCaseHeader converts headers to snake_case.
func SnakeCaseHeader(s string) string {
	var result strings.Builder
	prevWasSpace := false
	for i, ch := range s {
		if ch == ' ' {
			if result.Len() > 0 && !prevWasSpace {
				result.WriteRune('_')
			}
			prevWasSpace = true
			continue
		}
		if unicode.IsUpper(ch) && i > 0 && !prevWasSpace {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(ch))
		prevWasSpace = false
	}
	return result.String()
}

// FoldHeader lowercases a header and strips diacritics after canonical
// decomposition, so "Año" and "ano" compare equal.
func FoldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// ColumnSelector specifies which columns to read. The zero value
// selects every column; otherwise a column is read if any of the three
// criteria matches it.
type ColumnSelector struct {
	// UseCols selects columns by exact name.
	UseCols []string
	// UseColIndexes selects columns by index (0-based).
	UseColIndexes []int
	// UseColPatterns selects columns whose name matches a glob pattern,
	// for example "sensor_*".
	UseColPatterns []string

	globs []glob.Glob
}

// Compile compiles the glob patterns once for repeated matching.
// ShouldInclude compiles transiently when Compile has not been called.
func (c *ColumnSelector) Compile() error {
	if len(c.UseColPatterns) == 0 {
		c.globs = nil
		return nil
	}
	globs := make([]glob.Glob, 0, len(c.UseColPatterns))
	for _, p := range c.UseColPatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %v", p, err)
		}
		globs = append(globs, g)
	}
	c.globs = globs
	return nil
}

// ShouldInclude checks if a column should be included.
func (c *ColumnSelector) ShouldInclude(name string, index int) bool {
	if len(c.UseCols) == 0 && len(c.UseColIndexes) == 0 && len(c.UseColPatterns) == 0 {
		return true
	}

	for _, col := range c.UseCols {
		if col == name {
			return true
		}
	}

	for _, idx := range c.UseColIndexes {
		if idx == index {
			return true
		}
	}

	if c.globs == nil && len(c.UseColPatterns) > 0 {
		for _, p := range c.UseColPatterns {
			if g, err := glob.Compile(p); err == nil && g.Match(name) {
				return true
			}
		}
		return false
	}
	for _, g := range c.globs {
		if g.Match(name) {
			return true
		}
	}

	return false
}
