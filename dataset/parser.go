// Package dataset ingests externally supplied quiz content. The data
// arrives in one of two loosely specified shapes; ingestion is
// deliberately fault tolerant, dropping bad rows individually so
// partial low-quality data never blocks gameplay.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Question is one canonical quiz entry. Immutable once loaded.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

type Format int

const (
	// FormatStructured is a JSON array of question records.
	FormatStructured Format = iota
	// FormatDelimited is one row per line: question, options, answer
	// index, with ',' between fields and ';' between options.
	FormatDelimited
)

// FromHint maps a host-provided hint (typically a file extension) to a
// format. The core never inspects file names itself.
func FromHint(hint string) Format {
	if strings.EqualFold(strings.TrimPrefix(hint, "."), "json") {
		return FormatStructured
	}
	return FormatDelimited
}

var (
	ErrBadShape    = errors.New("top-level value is not a question list")
	ErrNoValidRows = errors.New("no valid rows")
)

// ParseError is the single aggregate failure surfaced to the caller.
// Individual row drops are never reported on their own.
type ParseError struct {
	Accepted int
	Rejected int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: %v (accepted %d, rejected %d)", e.Err, e.Accepted, e.Rejected)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse normalizes raw text into the canonical question list and the
// accepted-row count.
func Parse(raw string, f Format) ([]Question, int, error) {
	if f == FormatStructured {
		return parseStructured(raw)
	}
	return parseDelimited(raw)
}

type rawRecord struct {
	Question *string  `json:"question"`
	Options  []string `json:"options"`
	Answer   *float64 `json:"answer"`
}

func parseStructured(raw string) ([]Question, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return nil, 0, &ParseError{Err: ErrBadShape}
	}
	if len(items) == 0 {
		return nil, 0, &ParseError{Err: ErrNoValidRows}
	}

	out := make([]Question, 0, len(items))
	for _, item := range items {
		var rec rawRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		if rec.Question == nil || rec.Answer == nil || len(rec.Options) < 2 {
			continue
		}
		ans := *rec.Answer
		if math.IsNaN(ans) || math.IsInf(ans, 0) || ans != math.Trunc(ans) {
			continue
		}
		idx := int(ans)
		if idx < 0 || idx >= len(rec.Options) {
			continue
		}
		out = append(out, Question{Text: *rec.Question, Options: rec.Options, Answer: idx})
	}

	if len(out) == 0 {
		return nil, 0, &ParseError{Rejected: len(items), Err: ErrNoValidRows}
	}
	return out, len(out), nil
}

func parseDelimited(raw string) ([]Question, int, error) {
	lines := strings.Split(raw, "\n")

	var out []Question
	rows := 0
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		// Blank lines (including the trailing one from a final line
		// terminator) are skipped, not counted as invalid rows.
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows++
		q, ok := parseRow(line)
		if !ok {
			continue
		}
		out = append(out, q)
	}

	if rows == 0 {
		return nil, 0, &ParseError{Err: ErrNoValidRows}
	}
	if len(out) == 0 {
		return nil, 0, &ParseError{Rejected: rows, Err: ErrNoValidRows}
	}
	return out, len(out), nil
}

// parseRow splits on the last two occurrences of the field delimiter:
// the trailing segment is the answer index, the middle one the option
// list, and everything before them is question text, so commas inside
// the question survive verbatim.
func parseRow(line string) (Question, bool) {
	last := strings.LastIndexByte(line, ',')
	if last < 0 {
		return Question{}, false
	}
	mid := strings.LastIndexByte(line[:last], ',')
	if mid < 0 {
		return Question{}, false
	}

	text := strings.TrimSpace(line[:mid])
	if text == "" {
		return Question{}, false
	}

	var opts []string
	for _, o := range strings.Split(line[mid+1:last], ";") {
		o = strings.TrimSpace(o)
		if o != "" {
			opts = append(opts, o)
		}
	}
	if len(opts) < 1 {
		return Question{}, false
	}

	idx, err := strconv.Atoi(strings.TrimSpace(line[last+1:]))
	if err != nil {
		return Question{}, false
	}

	return Question{Text: text, Options: opts, Answer: idx}, true
}
