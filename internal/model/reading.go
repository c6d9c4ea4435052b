package model

import (
	"strings"

	"biblecal/internal/config"
)

// ReadingUnit is one contiguous passage, e.g. Genesis 1:1 - 2:3. Book fields
// hold canonical ids (English names); they are localized only when printed.
type ReadingUnit struct {
	FromBook    string
	FromChapter string
	FromVerse   string

	ToBook    string
	ToChapter string
	ToVerse   string
}

// DailyReading is everything assigned to one active day.
type DailyReading struct {
	Units []ReadingUnit
}

// LookupBook returns the localized names for a canonical book id. Unknown
// ids fall back to the id itself so a typo in a plan file stays visible.
func LookupBook(lang config.Language, id string) Book {
	if table, ok := books[lang]; ok {
		if b, ok := table[id]; ok {
			return b
		}
	}
	return Book{Short: id, Full: id}
}

// IsKnownBook reports whether id is a canonical book id.
func IsKnownBook(id string) bool {
	_, ok := books[config.LanguageEnglish][id]
	return ok
}

// CanonicalBooks returns the book ids in canonical order.
func CanonicalBooks() []string {
	return append([]string(nil), canonicalBooks...)
}

func bookName(lang config.Language, id string, full bool) string {
	b := LookupBook(lang, id)
	if full {
		return b.Full
	}
	return b.Short
}

// Print formats the unit, e.g. "Gen 1:1-2:3", "Gen 50-Ex 2" or "Ps 23".
func (u ReadingUnit) Print(lang config.Language, fullName bool) string {
	var sb strings.Builder
	sb.WriteString(bookName(lang, u.FromBook, fullName))
	sb.WriteString(" ")
	sb.WriteString(u.FromChapter)
	if u.FromVerse != "" {
		sb.WriteString(":")
		sb.WriteString(u.FromVerse)
	}

	if u.ToBook == "" {
		return sb.String()
	}

	sb.WriteString("-")
	sameBook := u.FromBook == u.ToBook
	if !sameBook {
		sb.WriteString(bookName(lang, u.ToBook, fullName))
		sb.WriteString(" ")
	}

	chapterShown := false
	if u.ToChapter != "" && (!sameBook || u.FromChapter != u.ToChapter) {
		sb.WriteString(u.ToChapter)
		chapterShown = true
	}

	if u.ToVerse != "" {
		if chapterShown {
			sb.WriteString(":")
		}
		sb.WriteString(u.ToVerse)
	}
	return sb.String()
}

func (d DailyReading) tokens(lang config.Language, fullName bool) []string {
	out := make([]string, 0, len(d.Units))
	for _, u := range d.Units {
		out = append(out, u.Print(lang, fullName))
	}
	return out
}

// Print uses full book names, one unit per line.
func (d DailyReading) Print(lang config.Language) string {
	return strings.Join(d.tokens(lang, true), "\n")
}

// PrintShort uses short book names, one unit per line. This is what goes
// into a calendar cell.
func (d DailyReading) PrintShort(lang config.Language) string {
	return strings.Join(d.tokens(lang, false), "\n")
}

// PrintSingleLine uses short book names separated by ", ".
func (d DailyReading) PrintSingleLine(lang config.Language) string {
	return strings.Join(d.tokens(lang, false), ", ")
}
