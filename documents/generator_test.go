package documents

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	plan, err := DefaultPlan()
	require.NoError(t, err)
	return NewGenerator(plan, filepath.Join(t.TempDir(), "missing.ttf"))
}

func TestGenerator_Render(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.Render("Olena")
	require.NoError(t, err)

	assert.Equal(t, "AIShape_ProPlan.pdf", doc.FileName)
	assert.Equal(t, g.Plan().Caption, doc.Caption)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
}

func TestGenerator_RenderIsIndependentPerCall(t *testing.T) {
	g := newTestGenerator(t)

	first, err := g.Render("A")
	require.NoError(t, err)
	second, err := g.Render("B")
	require.NoError(t, err)

	assert.NotSame(t, &first.Content[0], &second.Content[0])
	assert.True(t, bytes.HasPrefix(first.Content, []byte("%PDF-")))
}

func TestGenerator_RenderDefaultName(t *testing.T) {
	g := newTestGenerator(t)

	doc, err := g.Render("")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Content)
}

// testdata/FontAwesome.ttf is a real TrueType file (SIL OFL). It has no
// Cyrillic glyphs, so those runes take fpdf's missing glyph path.
const testFontPath = "testdata/FontAwesome.ttf"

func TestGenerator_RenderWithUnicodeFont(t *testing.T) {
	plan, err := DefaultPlan()
	require.NoError(t, err)

	g := NewGenerator(plan, testFontPath)
	require.NotNil(t, g.fontData)

	doc, err := g.Render("Олена 💪")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
	assert.Contains(t, string(doc.Content), "/CIDFontType2")
}

func TestGenerator_FallbackFontIsNotEmbedded(t *testing.T) {
	g := newTestGenerator(t)
	require.Nil(t, g.fontData)

	doc, err := g.Render("Olena")
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Content), "/CIDFontType2")
}

func TestDropUnsupportedRunes(t *testing.T) {
	assert.Equal(t, "Тренування на 7 днів:\nПн: Присідання", dropUnsupportedRunes("🏋️ Тренування на 7 днів:\nПн: Присідання"))
	assert.Equal(t, "Олена", dropUnsupportedRunes("Олена 💪"))
	assert.Equal(t, "plain", dropUnsupportedRunes("plain"))
}
