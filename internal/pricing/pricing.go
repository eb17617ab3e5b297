package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	MaxFeet      = 100
	MaxInches    = 11.99
	MinThickness = 4
	MaxThickness = 60

	thicknessStep = 2
)

// Rates holds the reference panel and flat charges used to price a background.
type Rates struct {
	BaseWidthFeet  decimal.Decimal
	BaseHeightFeet decimal.Decimal
	BasePrice      decimal.Decimal
	Shipping       decimal.Decimal
	StepPrice      decimal.Decimal
}

// DefaultRates returns the 4ft x 2ft reference panel at $250 with $65 shipping
// and $50 per 2" of thickness above 4".
func DefaultRates() Rates {
	return Rates{
		BaseWidthFeet:  decimal.NewFromInt(4),
		BaseHeightFeet: decimal.NewFromInt(2),
		BasePrice:      decimal.NewFromInt(250),
		Shipping:       decimal.NewFromInt(65),
		StepPrice:      decimal.NewFromInt(50),
	}
}

// BaseArea is the reference panel area in square feet.
func (r Rates) BaseArea() decimal.Decimal {
	return r.BaseWidthFeet.Mul(r.BaseHeightFeet)
}

// Dimension is one side of the panel as whole feet plus fractional inches.
type Dimension struct {
	Feet   int     `json:"ft"`
	Inches float64 `json:"in"`
}

// Normalize clamps feet to [0, MaxFeet] and inches to [0, MaxInches].
func (d Dimension) Normalize() Dimension {
	return Dimension{
		Feet:   clampInt(d.Feet, 0, MaxFeet),
		Inches: clampFloat(d.Inches, 0, MaxInches),
	}
}

// InFeet converts the dimension to decimal feet.
func (d Dimension) InFeet() float64 {
	return float64(d.Feet) + d.Inches/12
}

// Input is the form state the price depends on.
type Input struct {
	Width     Dimension `json:"width"`
	Height    Dimension `json:"height"`
	Thickness int       `json:"thicknessInches"`
}

// Normalize returns the input as it should be shown back to the user.
func (in Input) Normalize() Input {
	return Input{
		Width:     in.Width.Normalize(),
		Height:    in.Height.Normalize(),
		Thickness: SnapThickness(in.Thickness),
	}
}

// Breakdown contains the four display amounts of a quote.
type Breakdown struct {
	Material decimal.Decimal `json:"material"`
	Shipping decimal.Decimal `json:"shipping"`
	Options  decimal.Decimal `json:"options"`
	Total    decimal.Decimal `json:"total"`
}

// Result groups the normalized input, intermediate values and the breakdown.
type Result struct {
	Input          Input
	Area           float64
	RawMaterial    decimal.Decimal
	ThicknessSteps int
	Breakdown      Breakdown
}

// SnapThickness clamps t to [MinThickness, MaxThickness] and rounds it to the
// nearest even number. Already snapped values are returned unchanged.
func SnapThickness(t int) int {
	t = clampInt(t, MinThickness, MaxThickness)
	snapped := int(math.Round(float64(t)/thicknessStep)) * thicknessStep
	if snapped < MinThickness {
		return MinThickness
	}
	return snapped
}

// Calculate prices a panel. Material scales linearly with area against the
// reference panel; total is ceil(material) + shipping + options.
func Calculate(in Input, rates Rates) Result {
	in = in.Normalize()

	area := math.Max(0, in.Width.InFeet()*in.Height.InFeet())

	material := decimal.Zero
	baseArea := rates.BaseArea()
	if area > 0 && baseArea.IsPositive() {
		material = rates.BasePrice.Mul(decimal.NewFromFloat(area)).Div(baseArea)
	}

	extra := max(0, in.Thickness-MinThickness)
	steps := extra / thicknessStep
	options := rates.StepPrice.Mul(decimal.NewFromInt(int64(steps)))

	displayMaterial := material.Ceil()
	total := displayMaterial.Add(rates.Shipping).Add(options)

	return Result{
		Input:          in,
		Area:           area,
		RawMaterial:    material,
		ThicknessSteps: steps,
		Breakdown: Breakdown{
			Material: displayMaterial,
			Shipping: rates.Shipping,
			Options:  options,
			Total:    total,
		},
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
