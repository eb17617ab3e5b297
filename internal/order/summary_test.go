package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	return Payload{
		Width:   Size{Feet: "4", Inches: "0"},
		Height:  Size{Feet: "2", Inches: "0"},
		Options: Options{ThicknessInches: "4"},
		Prices:  Prices{Material: "$250", Shipping: "$65", Options: "$0", Total: "$315"},
		Contact: Contact{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Addr:  "1 Analytical Way",
			City:  "London",
			State: "LDN",
			Zip:   "N1",
		},
	}
}

func TestRenderSummary_Blocks(t *testing.T) {
	html, err := RenderSummary(samplePayload(), "")
	require.NoError(t, err)

	for _, want := range []string{
		"<strong>Name:</strong> Ada Lovelace",
		"<strong>Email:</strong> ada@example.com",
		"<strong>Address:</strong> 1 Analytical Way, London, LDN N1",
		"<strong>Width:</strong> 4 ft 0 in",
		"<strong>Height:</strong> 2 ft 0 in",
		"<strong>Thickness:</strong> 4\"",
		"Material: $250",
		"<strong>Total: $315</strong>",
		"<h3>Notes</h3>\n  <p>(none)</p>",
		"<p>(none)</p>\n</div>",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Price check")
}

func TestRenderSummary_DefaultsAndOptionalFields(t *testing.T) {
	p := samplePayload()
	p.Options.ThicknessInches = ""
	p.Contact.Addr, p.Contact.City, p.Contact.State, p.Contact.Zip = "", "", "", ""

	html, err := RenderSummary(p, "")
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Thickness:</strong> 4\"")
	assert.Contains(t, html, "<strong>Address:</strong> \n")
}

func TestRenderSummary_NotesKeepLineBreaksAndAreEscaped(t *testing.T) {
	p := samplePayload()
	p.Contact.Notes = "line one\r\n<b>line two</b>\nline three"

	html, err := RenderSummary(p, "")
	require.NoError(t, err)

	assert.Contains(t, html, "line one<br/>&lt;b&gt;line two&lt;/b&gt;<br/>line three")
}

func TestRenderSummary_InspirationLinksInOrder(t *testing.T) {
	p := samplePayload()
	p.Inspo = []Text{"https://example.com/a.png", "https://example.com/b.png"}

	html, err := RenderSummary(p, "")
	require.NoError(t, err)

	a := strings.Index(html, `<a href="https://example.com/a.png"`)
	b := strings.Index(html, `<a href="https://example.com/b.png"`)
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, b)
	assert.Less(t, a, b)
	assert.NotContains(t, html, "<p>(none)</p>\n</div>")
}

func TestRenderSummary_PriceCheckNote(t *testing.T) {
	html, err := RenderSummary(samplePayload(), "submitted total $1 differs from recomputed total $315")
	require.NoError(t, err)

	assert.Contains(t, html, "<strong>Price check:</strong> submitted total $1 differs from recomputed total $315")
}
