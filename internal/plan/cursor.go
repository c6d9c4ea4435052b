package plan

import (
	"errors"

	"biblecal/internal/model"
)

// ErrEmptyCursor is returned when an entry is requested from an exhausted
// cursor.
var ErrEmptyCursor = errors.New("plan: reading plan cursor is empty")

// Entry is one row of a plan file: the reading for one active day.
type Entry struct {
	// Label is the first CSV column (a day number or date); informational.
	Label   string
	Reading model.DailyReading
}

// Cursor hands out plan entries front to back, each at most once. It is
// owned by a single run and is not safe for concurrent use.
type Cursor struct {
	entries []Entry
	pos     int
}

// NewCursor wraps entries. The slice is not copied; callers must not
// modify it afterwards.
func NewCursor(entries []Entry) *Cursor {
	return &Cursor{entries: entries}
}

// PopFront consumes and returns the next entry.
func (c *Cursor) PopFront() (Entry, error) {
	if c.pos >= len(c.entries) {
		return Entry{}, ErrEmptyCursor
	}
	e := c.entries[c.pos]
	c.pos++
	return e, nil
}

// Peek returns the next entry without consuming it.
func (c *Cursor) Peek() (Entry, bool) {
	if c.pos >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[c.pos], true
}

// Skip discards exactly n entries. If fewer remain, nothing is consumed
// and ErrEmptyCursor is returned.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > len(c.entries) {
		return ErrEmptyCursor
	}
	c.pos += n
	return nil
}

// Empty reports whether all entries have been consumed.
func (c *Cursor) Empty() bool { return c.pos >= len(c.entries) }

// Len is the number of entries left.
func (c *Cursor) Len() int { return len(c.entries) - c.pos }

// Consumed is the number of entries handed out or skipped so far.
func (c *Cursor) Consumed() int { return c.pos }

// Total is the number of entries loaded.
func (c *Cursor) Total() int { return len(c.entries) }

// Fresh returns a new cursor over the same entries, positioned at the
// start. Entries are shared read-only, so one loaded plan can feed several
// independent runs.
func (c *Cursor) Fresh() *Cursor {
	return &Cursor{entries: c.entries}
}
