package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrMissingContact is returned when the customer's name or email is absent.
var ErrMissingContact = errors.New("missing name or email")

// Text is a payload value kept exactly as the client sent it. Form fields
// arrive as strings or numbers depending on the client; both are accepted.
// null and absent values read as "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = Text(buf.String())
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Blank reports whether t is empty after trimming whitespace.
func (t Text) Blank() bool { return strings.TrimSpace(string(t)) == "" }

// decodeObject unmarshals data into v when it is a JSON object. Any other
// value leaves v untouched, so a mistyped optional block reads as empty.
func decodeObject(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	return json.Unmarshal(data, v)
}

// stringOnly returns raw as Text only when it is a JSON string.
func stringOnly(raw json.RawMessage) Text {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return Text(s)
}

// Size is one panel dimension as entered on the form, not re-normalized.
type Size struct {
	Feet   Text `json:"ft"`
	Inches Text `json:"in"`
}

func (s *Size) UnmarshalJSON(data []byte) error {
	type plain Size
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

type Options struct {
	ThicknessInches Text `json:"thicknessInches"`
}

func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*o = Options(v)
	return nil
}

// Prices is the breakdown the customer saw, relayed verbatim.
type Prices struct {
	Material Text `json:"material"`
	Shipping Text `json:"shipping"`
	Options  Text `json:"options"`
	Total    Text `json:"total"`
}

func (p *Prices) UnmarshalJSON(data []byte) error {
	type plain Prices
	var v plain
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*p = Prices(v)
	return nil
}

type Contact struct {
	Name  Text `json:"name"`
	Email Text `json:"email"`
	Addr  Text `json:"addr"`
	City  Text `json:"city"`
	State Text `json:"state"`
	Zip   Text `json:"zip"`
	Notes Text `json:"notes"`
}

// UnmarshalJSON reads name and email only from JSON strings; false, 0 and
// other scalars count as missing.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	var v struct {
		plain
		Name  json.RawMessage `json:"name"`
		Email json.RawMessage `json:"email"`
	}
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*c = Contact(v.plain)
	c.Name = stringOnly(v.Name)
	c.Email = stringOnly(v.Email)
	return nil
}

// Payload is the order submitted by the form. It has no identity and is
// never stored.
type Payload struct {
	Width   Size    `json:"width"`
	Height  Size    `json:"height"`
	Options Options `json:"options"`
	Prices  Prices  `json:"prices"`
	Contact Contact `json:"contact"`
	Inspo   []Text  `json:"inspo"`
}

// UnmarshalJSON decodes a payload leniently: optional blocks of the wrong
// JSON type read as empty and a non-array inspo reads as no images.
func (p *Payload) UnmarshalJSON(data []byte) error {
	type plain Payload
	var v struct {
		plain
		Inspo json.RawMessage `json:"inspo"`
	}
	if err := decodeObject(data, &v); err != nil {
		return err
	}
	*p = Payload(v.plain)
	p.Inspo = nil
	if raw := bytes.TrimSpace(v.Inspo); len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &p.Inspo); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the required contact fields.
func (p Payload) Validate() error {
	if p.Contact.Name.Blank() || p.Contact.Email.Blank() {
		return ErrMissingContact
	}
	return nil
}
