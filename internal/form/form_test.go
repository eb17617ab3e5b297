package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/octozek/internal/order"
	"github.com/Simplici0/octozek/internal/pricing"
)

type recordingSubmitter struct {
	got []order.Payload
	err error
}

func (r *recordingSubmitter) Submit(_ context.Context, p order.Payload) error {
	r.got = append(r.got, p)
	return r.err
}

func TestNew_PricesDefaultPanel(t *testing.T) {
	f := New(pricing.DefaultRates())

	d := f.Snapshot().Display
	assert.Equal(t, pricing.DisplayBreakdown{Material: "$250", Shipping: "$65", Options: "$0", Total: "$315"}, d)
}

func TestSet_RecomputesAndWritesBackClampedValues(t *testing.T) {
	f := New(pricing.DefaultRates())

	_, err := f.Set(WidthFeet, "150")
	require.NoError(t, err)
	_, err = f.Set(WidthInches, "13")
	require.NoError(t, err)
	snap, err := f.Set(Thickness, "5")
	require.NoError(t, err)

	assert.Equal(t, "100", snap.State.WidthFeet)
	assert.Equal(t, "11.99", snap.State.WidthInches)
	assert.Equal(t, "6", snap.State.Thickness)
	assert.Equal(t, snap.State, f.State())
	assert.Equal(t, "$50", snap.Display.Options)
}

func TestSet_NonNumericReadsAsZero(t *testing.T) {
	f := New(pricing.DefaultRates())

	snap, err := f.Set(HeightFeet, "tall")
	require.NoError(t, err)

	assert.Equal(t, "0", snap.State.HeightFeet)
	assert.Equal(t, "$0", snap.Display.Material)
	assert.Equal(t, "$65", snap.Display.Total)
}

func TestSet_UnknownField(t *testing.T) {
	f := New(pricing.DefaultRates())

	_, err := f.Set(Field("color"), "red")
	assert.Error(t, err)
}

func TestSubscribe_NotifiedOnEveryChange(t *testing.T) {
	f := New(pricing.DefaultRates())

	var totals []string
	unsubscribe := f.Subscribe(func(s Snapshot) { totals = append(totals, s.Display.Total) })

	_, _ = f.Set(WidthFeet, "8")
	_, _ = f.Set(Thickness, "8")
	unsubscribe()
	_, _ = f.Set(WidthFeet, "4")

	assert.Equal(t, []string{"$315", "$565", "$665"}, totals)
}

func TestSubscribe_NotifiesInRegistrationOrder(t *testing.T) {
	f := New(pricing.DefaultRates())

	var calls []string
	record := func(name string) func(Snapshot) {
		return func(Snapshot) { calls = append(calls, name) }
	}
	f.Subscribe(record("a"))
	unsubscribeB := f.Subscribe(record("b"))
	f.Subscribe(record("c"))
	f.Subscribe(record("d"))
	calls = nil

	for i := 0; i < 20; i++ {
		_, _ = f.Set(WidthFeet, "8")
	}
	require.Len(t, calls, 80)
	for i := 0; i < len(calls); i += 4 {
		assert.Equal(t, []string{"a", "b", "c", "d"}, calls[i:i+4])
	}

	unsubscribeB()
	calls = nil
	_, _ = f.Set(HeightFeet, "3")
	assert.Equal(t, []string{"a", "c", "d"}, calls)
}

func TestApplyPreset(t *testing.T) {
	f := New(pricing.DefaultRates())

	snap, err := f.ApplyPreset("36x18")
	require.NoError(t, err)

	assert.Equal(t, "3", snap.State.WidthFeet)
	assert.Equal(t, "0", snap.State.WidthInches)
	assert.Equal(t, "1", snap.State.HeightFeet)
	assert.Equal(t, "6", snap.State.HeightInches)
	// 3 x 1.5 = 4.5 sq ft -> 250 * 4.5 / 8 = 140.625
	assert.Equal(t, "$141", snap.Display.Material)

	_, err = f.ApplyPreset("big")
	assert.Error(t, err)
}

func TestPayload_RequiresTerms(t *testing.T) {
	f := New(pricing.DefaultRates())

	_, err := f.Payload()
	assert.True(t, errors.Is(err, ErrTermsNotAccepted))
}

func TestPayload_EmbedsDisplayedBreakdownAndInspiration(t *testing.T) {
	f := New(pricing.DefaultRates())
	_, _ = f.Set(Thickness, "8")
	f.SetContact(Contact{Name: "Ada", Email: "ada@example.com", Notes: "mossy"})
	f.AcceptTerms(true)
	f.Inspiration().Add("/imgs/rock-2.png")
	f.Inspiration().Add("/imgs/rock-1.png")
	f.Inspiration().Add("/imgs/rock-2.png")

	p, err := f.Payload()
	require.NoError(t, err)

	assert.Equal(t, order.Size{Feet: "4", Inches: "0"}, p.Width)
	assert.Equal(t, order.Text("8"), p.Options.ThicknessInches)
	assert.Equal(t, order.Prices{Material: "$250", Shipping: "$65", Options: "$100", Total: "$415"}, p.Prices)
	assert.Equal(t, []order.Text{"/imgs/rock-2.png", "/imgs/rock-1.png"}, p.Inspo)
	assert.NoError(t, p.Validate())
}

func TestSubmit_ResetsOnSuccess(t *testing.T) {
	f := New(pricing.DefaultRates())
	_, _ = f.Set(WidthFeet, "8")
	f.SetContact(Contact{Name: "Ada", Email: "ada@example.com"})
	f.AcceptTerms(true)
	f.Inspiration().Add("/imgs/rock-1.png")

	sub := &recordingSubmitter{}
	require.NoError(t, f.Submit(context.Background(), sub))

	require.Len(t, sub.got, 1)
	assert.Equal(t, order.Text("$565"), sub.got[0].Prices.Total)
	assert.Equal(t, DefaultState(), f.State())
	assert.Equal(t, 0, f.Inspiration().Len())
	_, err := f.Payload()
	assert.True(t, errors.Is(err, ErrTermsNotAccepted), "terms must be confirmed again")
}

func TestSubmit_KeepsStateOnFailure(t *testing.T) {
	f := New(pricing.DefaultRates())
	f.SetContact(Contact{Name: "Ada", Email: "ada@example.com"})
	f.AcceptTerms(true)
	f.Inspiration().Add("/imgs/rock-1.png")

	sub := &recordingSubmitter{err: errors.New("email did not send")}
	err := f.Submit(context.Background(), sub)

	assert.EqualError(t, err, "email did not send")
	assert.Equal(t, 1, f.Inspiration().Len())
}

func TestSubmit_WithoutTermsDoesNotCallSubmitter(t *testing.T) {
	f := New(pricing.DefaultRates())
	sub := &recordingSubmitter{}

	err := f.Submit(context.Background(), sub)

	assert.True(t, errors.Is(err, ErrTermsNotAccepted))
	assert.Empty(t, sub.got)
}
