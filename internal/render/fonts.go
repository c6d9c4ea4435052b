package render

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"biblecal/internal/config"
)

// Role is a text role on the page.
type Role int

const (
	RoleMonthLabel Role = iota
	RoleWdayLabel
	RoleDayNumber
	RoleDayPlan
)

func (r Role) String() string {
	switch r {
	case RoleMonthLabel:
		return "month_label"
	case RoleWdayLabel:
		return "wday_label"
	case RoleDayNumber:
		return "day_number"
	default:
		return "day_plan"
	}
}

// lineSpacing is the line height as a multiple of the font size.
const lineSpacing = 1.2

// Font is a resolved text role: the family name handed to vector outputs,
// the raw TTF used by PDF and PNG, and a face for measuring.
type Font struct {
	Role   Role
	Family string
	Size   float64
	// Key is a stable identifier for the TTF data, used as the PDF font name.
	Key  string
	TTF  []byte
	face font.Face
}

// Fonts holds one Font per role. Faces are not safe for concurrent use, so
// every renderer loads its own set.
type Fonts struct {
	byRole [4]*Font
}

// LoadFonts resolves each role: its own family/file if set, else the
// default font. Without any file the Go fonts are used; they carry no
// Hangul, so Korean pages need a configured font file.
func LoadFonts(cfg config.FontsConfig) (*Fonts, error) {
	roles := []struct {
		role Role
		fc   config.FontConfig
	}{
		{RoleMonthLabel, cfg.MonthLabel},
		{RoleWdayLabel, cfg.WdayLabel},
		{RoleDayNumber, cfg.DayNumber},
		{RoleDayPlan, cfg.DayPlan},
	}

	type loaded struct {
		key string
		ttf []byte
	}
	files := map[string]loaded{}
	fs := &Fonts{}
	for _, r := range roles {
		family := r.fc.Family
		if family == "" {
			family = cfg.Default.Family
		}
		file := r.fc.File
		if file == "" {
			file = cfg.Default.File
		}

		var key string
		var ttf []byte
		switch {
		case file != "":
			l, ok := files[file]
			if !ok {
				data, err := os.ReadFile(file)
				if err != nil {
					return nil, fmt.Errorf("render: font %s: %w", r.role, err)
				}
				l = loaded{key: fmt.Sprintf("custom%d", len(files)), ttf: data}
				files[file] = l
			}
			key, ttf = l.key, l.ttf
		case r.role == RoleMonthLabel:
			key, ttf = "gobold", gobold.TTF
		default:
			key, ttf = "goregular", goregular.TTF
		}

		parsed, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("render: font %s: %w", r.role, err)
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    r.fc.Size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("render: font %s: %w", r.role, err)
		}

		fs.byRole[r.role] = &Font{
			Role:   r.role,
			Family: family,
			Size:   r.fc.Size,
			Key:    key,
			TTF:    ttf,
			face:   face,
		}
	}
	return fs, nil
}

// Get returns the font for role.
func (fs *Fonts) Get(role Role) *Font { return fs.byRole[role] }

// Close releases the faces.
func (fs *Fonts) Close() {
	for _, f := range fs.byRole {
		if f != nil && f.face != nil {
			f.face.Close()
		}
	}
}

// Face is the measuring face at the configured size.
func (f *Font) Face() font.Face { return f.face }

// LineHeight is the distance between baselines.
func (f *Font) LineHeight() float64 { return f.Size * lineSpacing }

// Ascent is the distance from the top of a line to its baseline.
func (f *Font) Ascent() float64 {
	return fixedToFloat(f.face.Metrics().Ascent)
}

// Width measures one line of text.
func (f *Font) Width(line string) float64 {
	return fixedToFloat(font.MeasureString(f.face, line))
}

// Measure returns the box of a possibly multi-line text: the widest line
// and the number of lines times the line height.
func (f *Font) Measure(text string) (w, h float64) {
	lines := Lines(text)
	for _, l := range lines {
		if lw := f.Width(l); lw > w {
			w = lw
		}
	}
	return w, float64(len(lines)) * f.LineHeight()
}

// Lines splits text on newlines.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
