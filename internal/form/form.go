// Package form models the order form: raw field values, the live price
// breakdown, the inspiration tray and submission.
package form

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/Simplici0/octozek/internal/inspo"
	"github.com/Simplici0/octozek/internal/order"
	"github.com/Simplici0/octozek/internal/pricing"
)

// ErrTermsNotAccepted is returned by Payload when the customer has not
// confirmed the measurements and terms.
var ErrTermsNotAccepted = errors.New("please confirm you measured the inside of the tank and agree to the terms")

// Field names a form input that drives the price.
type Field string

const (
	WidthFeet    Field = "wFt"
	WidthInches  Field = "wIn"
	HeightFeet   Field = "hFt"
	HeightInches Field = "hIn"
	Thickness    Field = "thickness"
)

// State is the raw contents of the sizing fields.
type State struct {
	WidthFeet    string
	WidthInches  string
	HeightFeet   string
	HeightInches string
	Thickness    string
}

// DefaultState is the reference 4ft x 2ft, 4" panel.
func DefaultState() State {
	return State{WidthFeet: "4", WidthInches: "0", HeightFeet: "2", HeightInches: "0", Thickness: "4"}
}

func (s State) raw() pricing.RawInput {
	return pricing.RawInput{
		WidthFeet:    s.WidthFeet,
		WidthInches:  s.WidthInches,
		HeightFeet:   s.HeightFeet,
		HeightInches: s.HeightInches,
		Thickness:    s.Thickness,
	}
}

// Contact is the customer block of the form.
type Contact struct {
	Name  string
	Email string
	Addr  string
	City  string
	State string
	Zip   string
	Notes string
}

// Snapshot is what subscribers render after a recompute.
type Snapshot struct {
	State   State
	Result  pricing.Result
	Display pricing.DisplayBreakdown
}

// Submitter delivers an assembled payload. A nil error means the order was
// accepted and sent.
type Submitter interface {
	Submit(ctx context.Context, p order.Payload) error
}

// Form owns all mutation of the form state. Prices are recomputed
// synchronously on every change to a sizing field. A Form is not safe for
// concurrent use.
type Form struct {
	rates       pricing.Rates
	state       State
	contact     Contact
	terms       bool
	inspo       inspo.Set
	last        Snapshot
	subscribers []subscriber
	nextID      int
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New returns a form showing the default panel priced with rates.
func New(rates pricing.Rates) *Form {
	f := &Form{rates: rates, state: DefaultState()}
	f.recompute()
	return f
}

// Subscribe registers fn to run after every recompute and immediately
// with the current snapshot. Subscribers run in registration order. The
// returned function unsubscribes.
func (f *Form) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	id := f.nextID
	f.nextID++
	f.subscribers = append(f.subscribers, subscriber{id: id, fn: fn})
	fn(f.last)
	return func() {
		f.subscribers = slices.DeleteFunc(f.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

// Set updates one sizing field and recomputes.
func (f *Form) Set(field Field, value string) (Snapshot, error) {
	switch field {
	case WidthFeet:
		f.state.WidthFeet = value
	case WidthInches:
		f.state.WidthInches = value
	case HeightFeet:
		f.state.HeightFeet = value
	case HeightInches:
		f.state.HeightInches = value
	case Thickness:
		f.state.Thickness = value
	default:
		return f.last, fmt.Errorf("unknown field %q", field)
	}
	return f.recompute(), nil
}

// ApplyPreset sets width and height from a tank preset such as "36x18".
func (f *Form) ApplyPreset(preset string) (Snapshot, error) {
	w, h, err := pricing.ParsePreset(preset)
	if err != nil {
		return f.last, err
	}
	f.state.WidthFeet, f.state.WidthInches = pricing.FormatDimension(w)
	f.state.HeightFeet, f.state.HeightInches = pricing.FormatDimension(h)
	return f.recompute(), nil
}

func (f *Form) State() State { return f.state }

func (f *Form) Snapshot() Snapshot { return f.last }

// Inspiration exposes the tray so gallery picks and file drops can add to it.
func (f *Form) Inspiration() *inspo.Set { return &f.inspo }

func (f *Form) SetContact(c Contact) { f.contact = c }

func (f *Form) AcceptTerms(accepted bool) { f.terms = accepted }

// Payload assembles the order from the fields as displayed, embedding the
// last computed breakdown.
func (f *Form) Payload() (order.Payload, error) {
	if !f.terms {
		return order.Payload{}, ErrTermsNotAccepted
	}

	refs := f.inspo.List()
	images := make([]order.Text, 0, len(refs))
	for _, ref := range refs {
		images = append(images, order.Text(ref))
	}

	d := f.last.Display
	return order.Payload{
		Width:   order.Size{Feet: order.Text(f.state.WidthFeet), Inches: order.Text(f.state.WidthInches)},
		Height:  order.Size{Feet: order.Text(f.state.HeightFeet), Inches: order.Text(f.state.HeightInches)},
		Options: order.Options{ThicknessInches: order.Text(strconv.Itoa(f.last.Result.Input.Thickness))},
		Prices: order.Prices{
			Material: order.Text(d.Material),
			Shipping: order.Text(d.Shipping),
			Options:  order.Text(d.Options),
			Total:    order.Text(d.Total),
		},
		Contact: order.Contact{
			Name:  order.Text(f.contact.Name),
			Email: order.Text(f.contact.Email),
			Addr:  order.Text(f.contact.Addr),
			City:  order.Text(f.contact.City),
			State: order.Text(f.contact.State),
			Zip:   order.Text(f.contact.Zip),
			Notes: order.Text(f.contact.Notes),
		},
		Inspo: images,
	}, nil
}

// Submit sends the order. On success the form is reset and the
// inspiration tray cleared; on failure everything is kept for a retry by
// the customer.
func (f *Form) Submit(ctx context.Context, s Submitter) error {
	p, err := f.Payload()
	if err != nil {
		return err
	}
	if err := s.Submit(ctx, p); err != nil {
		return err
	}
	f.Reset()
	return nil
}

// Reset restores the default panel, clears contact, terms and inspiration,
// and recomputes.
func (f *Form) Reset() {
	f.state = DefaultState()
	f.contact = Contact{}
	f.terms = false
	f.inspo.Clear()
	f.recompute()
}

// recompute prices the current fields, writes the normalized values back
// so the fields never show an out-of-range value, and notifies subscribers.
func (f *Form) recompute() Snapshot {
	result := pricing.Calculate(pricing.ParseInput(f.state.raw()), f.rates)

	in := result.Input
	f.state.WidthFeet, f.state.WidthInches = pricing.FormatDimension(in.Width)
	f.state.HeightFeet, f.state.HeightInches = pricing.FormatDimension(in.Height)
	f.state.Thickness = strconv.Itoa(in.Thickness)

	f.last = Snapshot{State: f.state, Result: result, Display: result.Breakdown.Display()}
	for _, s := range slices.Clone(f.subscribers) {
		s.fn(f.last)
	}
	return f.last
}
