package order

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_DecodesStringsAndNumbers(t *testing.T) {
	raw := `{
		"width": {"ft": "4", "in": 0},
		"height": {"ft": 2, "in": "6.5"},
		"options": {"thicknessInches": 8},
		"prices": {"material": "$313", "shipping": "$65", "options": "$100", "total": "$478"},
		"contact": {"name": "Ada", "email": "ada@example.com", "zip": null},
		"inspo": ["/imgs/rock-1.png"]
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, Text("4"), p.Width.Feet)
	assert.Equal(t, Text("0"), p.Width.Inches)
	assert.Equal(t, Text("2"), p.Height.Feet)
	assert.Equal(t, Text("6.5"), p.Height.Inches)
	assert.Equal(t, Text("8"), p.Options.ThicknessInches)
	assert.Equal(t, Text("$478"), p.Prices.Total)
	assert.Equal(t, Text(""), p.Contact.Zip)
	assert.Equal(t, []Text{"/imgs/rock-1.png"}, p.Inspo)
}

func TestPayload_ValidateRequiresNameAndEmail(t *testing.T) {
	cases := []Contact{
		{Name: "Ada"},
		{Email: "ada@example.com"},
		{Name: "  ", Email: "ada@example.com"},
		{},
	}
	for _, c := range cases {
		err := Payload{Contact: c}.Validate()
		assert.True(t, errors.Is(err, ErrMissingContact), "contact %+v", c)
	}

	assert.NoError(t, Payload{Contact: Contact{Name: "Ada", Email: "ada@example.com"}}.Validate())
}

func TestPayload_MistypedOptionalBlocksReadAsEmpty(t *testing.T) {
	raw := `{
		"width": "4x2",
		"height": 2,
		"options": [],
		"prices": [],
		"contact": {"name": "Ada", "email": "ada@example.com"},
		"inspo": "/imgs/rock-1.png"
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, Size{}, p.Width)
	assert.Equal(t, Size{}, p.Height)
	assert.Equal(t, Options{}, p.Options)
	assert.Equal(t, Prices{}, p.Prices)
	assert.Empty(t, p.Inspo)
	assert.NoError(t, p.Validate())
}

func TestPayload_NonStringNameOrEmailIsMissing(t *testing.T) {
	for _, raw := range []string{
		`{"contact": {"name": "Ada", "email": false}}`,
		`{"contact": {"name": "Ada", "email": 0}}`,
		`{"contact": {"name": "Ada", "email": null}}`,
		`{"contact": {"name": false, "email": "ada@example.com"}}`,
		`{"contact": "Ada <ada@example.com>"}`,
		`[]`,
	} {
		var p Payload
		require.NoError(t, json.Unmarshal([]byte(raw), &p), raw)
		assert.True(t, errors.Is(p.Validate(), ErrMissingContact), raw)
	}
}
