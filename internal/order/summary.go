package order

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const defaultThickness = "4"

var summaryTemplate = template.Must(template.New("summary").Parse(`<div style="font-family:Arial,sans-serif;line-height:1.4">
  <h2>New Terrarium Background Order</h2>

  <h3>Customer</h3>
  <p>
    <strong>Name:</strong> {{.Name}}<br/>
    <strong>Email:</strong> {{.Email}}<br/>
    <strong>Address:</strong> {{.Address}}
  </p>

  <h3>Size</h3>
  <p>
    <strong>Width:</strong> {{.Width.Feet}} ft {{.Width.Inches}} in<br/>
    <strong>Height:</strong> {{.Height.Feet}} ft {{.Height.Inches}} in
  </p>

  <h3>Options</h3>
  <p><strong>Thickness:</strong> {{.Thickness}}"</p>

  <h3>Pricing</h3>
  <p>
    Material: {{.Prices.Material}}<br/>
    Shipping: {{.Prices.Shipping}}<br/>
    Options: {{.Prices.Options}}<br/>
    <strong>Total: {{.Prices.Total}}</strong>
  </p>
{{- with .PriceCheck}}
  <p style="color:#b45309"><strong>Price check:</strong> {{.}}</p>
{{- end}}

  <h3>Notes</h3>
  <p>{{if .NoteLines}}{{range $i, $line := .NoteLines}}{{if $i}}<br/>{{end}}{{$line}}{{end}}{{else}}(none){{end}}</p>

  <h3>Inspiration</h3>
{{- range .Inspo}}
  <div style="margin:4px 0;"><a href="{{.}}" target="_blank" rel="noreferrer">{{.}}</a></div>
{{- else}}
  <p>(none)</p>
{{- end}}
</div>
`))

type summaryView struct {
	Name       string
	Email      string
	Address    string
	Width      Size
	Height     Size
	Thickness  string
	Prices     Prices
	PriceCheck string
	NoteLines  []string
	Inspo      []string
}

// RenderSummary builds the operator email body. All payload text is escaped;
// notes keep their line breaks. priceCheck is shown only when non-empty.
func RenderSummary(p Payload, priceCheck string) (string, error) {
	view := summaryView{
		Name:       p.Contact.Name.String(),
		Email:      p.Contact.Email.String(),
		Address:    formatAddress(p.Contact),
		Width:      p.Width,
		Height:     p.Height,
		Thickness:  p.Options.ThicknessInches.String(),
		Prices:     p.Prices,
		PriceCheck: priceCheck,
	}
	if view.Thickness == "" {
		view.Thickness = defaultThickness
	}
	if !p.Contact.Notes.Blank() {
		notes := strings.ReplaceAll(p.Contact.Notes.String(), "\r\n", "\n")
		view.NoteLines = strings.Split(notes, "\n")
	}
	for _, ref := range p.Inspo {
		view.Inspo = append(view.Inspo, ref.String())
	}

	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render order summary: %w", err)
	}
	return buf.String(), nil
}

func formatAddress(c Contact) string {
	var parts []string
	for _, v := range []Text{c.Addr, c.City} {
		if !v.Blank() {
			parts = append(parts, strings.TrimSpace(v.String()))
		}
	}
	if tail := strings.TrimSpace(c.State.String() + " " + c.Zip.String()); tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
