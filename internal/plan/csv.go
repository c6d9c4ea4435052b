package plan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"biblecal/internal/model"
)

// groupSize is the number of fields per reading unit:
// from book, chapter, verse, to book, chapter, verse.
const groupSize = 6

// ParseError reports a malformed plan row.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("plan: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("plan: %s:%d: %s", e.File, e.Line, e.Msg)
}

// Parse reads a plan CSV. Each row is one active day: the first column is
// a label, followed by groups of six reference fields. The last two fields
// of the final group may be omitted.
func Parse(r io.Reader, name string) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var entries []Entry
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{File: name, Line: pe.Line, Msg: pe.Err.Error()}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		entry, err := parseRecord(record)
		if err != nil {
			return nil, &ParseError{File: name, Line: line, Msg: err.Error()}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseRecord(record []string) (Entry, error) {
	if len(record) < 1+4 {
		return Entry{}, fmt.Errorf("expected at least 5 fields, got %d", len(record))
	}

	entry := Entry{Label: strings.TrimSpace(record[0])}
	for i := 1; i < len(record); i += groupSize {
		if i+3 >= len(record) {
			return Entry{}, fmt.Errorf("incomplete reading unit at field %d", i+1)
		}
		field := func(j int) string {
			if i+j < len(record) {
				return strings.TrimSpace(record[i+j])
			}
			return ""
		}
		unit := model.ReadingUnit{
			FromBook:    field(0),
			FromChapter: field(1),
			FromVerse:   field(2),
			ToBook:      field(3),
			ToChapter:   field(4),
			ToVerse:     field(5),
		}
		if unit.FromBook == "" {
			return Entry{}, fmt.Errorf("empty book at field %d", i+1)
		}
		entry.Reading.Units = append(entry.Reading.Units, unit)
	}
	return entry, nil
}
