package documents

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/aishape/payment-webhook/utils"
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily    = "DejaVuSans"
	fallbackFont  = "Helvetica"
	titleFontSize = 16
	bodyFontSize  = 12
	lineHeight    = 10

	// fpdf sizes unicode font width tables to the BMP
	maxFontRune = 0xFFFF
)

// Document is a rendered plan held in memory.
type Document struct {
	FileName string
	Caption  string
	Content  []byte
}

type Renderer interface {
	Render(name string) (*Document, error)
}

type Generator struct {
	plan     Plan
	fontData []byte
}

// NewGenerator loads the unicode font once. A missing font is not fatal:
// documents fall back to a core font and non Latin-1 text degrades.
func NewGenerator(plan Plan, fontPath string) *Generator {
	g := &Generator{plan: plan}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		utils.Logger.Warn().Err(err).Str("font_path", fontPath).
			Msg("font not found, cyrillic text may not render correctly")
		return g
	}
	g.fontData = data
	return g
}

func (g *Generator) Plan() Plan {
	return g.plan
}

func (g *Generator) Render(name string) (*Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	family := fallbackFont
	translate := func(s string) string { return s }
	if g.fontData != nil {
		pdf.AddUTF8FontFromBytes(fontFamily, "", g.fontData)
		family = fontFamily
		translate = dropUnsupportedRunes
	} else {
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()
	pdf.SetFont(family, "", titleFontSize)
	pdf.CellFormat(0, lineHeight, translate(g.plan.TitleFor(name)), "", 1, "", false, 0, "")

	pdf.SetFont(family, "", bodyFontSize)
	pdf.Ln(lineHeight)
	for i, section := range g.plan.Sections {
		if i > 0 {
			pdf.Ln(5)
		}
		pdf.MultiCell(0, lineHeight, translate(section.Text()), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return &Document{
		FileName: g.plan.FileName,
		Caption:  g.plan.Caption,
		Content:  buf.Bytes(),
	}, nil
}

// dropUnsupportedRunes removes what fpdf cannot place with a unicode font:
// runes outside the basic multilingual plane (emoji) and the variation
// selectors that decorate them.
func dropUnsupportedRunes(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r > maxFontRune || unicode.Is(unicode.Variation_Selector, r) {
			return -1
		}
		return r
	}, s)

	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
