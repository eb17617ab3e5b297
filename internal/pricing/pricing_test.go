package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func equalAmount(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s = %s, want %d", name, got, want)
	}
}

func panel(wFt int, wIn float64, hFt int, hIn float64, thickness int) Input {
	return Input{
		Width:     Dimension{Feet: wFt, Inches: wIn},
		Height:    Dimension{Feet: hFt, Inches: hIn},
		Thickness: thickness,
	}
}

func TestCalculate_ReferencePanel(t *testing.T) {
	result := Calculate(panel(4, 0, 2, 0, 4), DefaultRates())

	equalAmount(t, "material", result.Breakdown.Material, 250)
	equalAmount(t, "shipping", result.Breakdown.Shipping, 65)
	equalAmount(t, "options", result.Breakdown.Options, 0)
	equalAmount(t, "total", result.Breakdown.Total, 315)
}

func TestCalculate_DoublingWidthDoublesMaterial(t *testing.T) {
	result := Calculate(panel(8, 0, 2, 0, 4), DefaultRates())

	equalAmount(t, "material", result.Breakdown.Material, 500)
	equalAmount(t, "total", result.Breakdown.Total, 565)
	if result.Area != 16 {
		t.Fatalf("area = %v, want 16", result.Area)
	}
}

func TestCalculate_ZeroAreaChargesShippingAndOptionsOnly(t *testing.T) {
	for _, in := range []Input{panel(0, 0, 2, 0, 8), panel(4, 0, 0, 0, 8)} {
		result := Calculate(in, DefaultRates())

		equalAmount(t, "material", result.Breakdown.Material, 0)
		equalAmount(t, "total", result.Breakdown.Total, 65+100)
	}
}

func TestCalculate_ThicknessSurchargeSteps(t *testing.T) {
	result := Calculate(panel(4, 0, 2, 0, 8), DefaultRates())

	if result.ThicknessSteps != 2 {
		t.Fatalf("steps = %d, want 2", result.ThicknessSteps)
	}
	equalAmount(t, "options", result.Breakdown.Options, 100)
	equalAmount(t, "total", result.Breakdown.Total, 250+65+100)
}

func TestCalculate_MaterialIsCeiledBeforeTotal(t *testing.T) {
	// 1ft x 1ft = 1/8 of the reference panel = 31.25
	result := Calculate(panel(1, 0, 1, 0, 4), DefaultRates())

	if !result.RawMaterial.Equal(decimal.RequireFromString("31.25")) {
		t.Fatalf("raw material = %s, want 31.25", result.RawMaterial)
	}
	equalAmount(t, "material", result.Breakdown.Material, 32)
	equalAmount(t, "total", result.Breakdown.Total, 32+65)
}

func TestCalculate_ClampsOutOfRangeDimensions(t *testing.T) {
	result := Calculate(panel(150, 14, -3, -2, 4), DefaultRates())

	if result.Input.Width.Feet != 100 || result.Input.Width.Inches != 11.99 {
		t.Fatalf("width = %+v, want 100ft 11.99in", result.Input.Width)
	}
	if result.Input.Height.Feet != 0 || result.Input.Height.Inches != 0 {
		t.Fatalf("height = %+v, want 0ft 0in", result.Input.Height)
	}
	equalAmount(t, "material", result.Breakdown.Material, 0)
}

func TestCalculate_TotalInvariant(t *testing.T) {
	rates := DefaultRates()
	for _, in := range []Input{
		panel(3, 7.5, 1, 10.25, 5),
		panel(12, 11.99, 6, 3, 60),
		panel(0, 6, 0, 6, 13),
	} {
		b := Calculate(in, rates).Breakdown
		want := b.Material.Add(b.Shipping).Add(b.Options)
		if !b.Total.Equal(want) {
			t.Fatalf("total = %s, want %s for %+v", b.Total, want, in)
		}
	}
}

func TestSnapThickness(t *testing.T) {
	cases := map[int]int{
		3:  4,
		4:  4,
		5:  6,
		6:  6,
		7:  8,
		8:  8,
		59: 60,
		60: 60,
		61: 60,
		-2: 4,
	}
	for in, want := range cases {
		if got := SnapThickness(in); got != want {
			t.Fatalf("SnapThickness(%d) = %d, want %d", in, got, want)
		}
		if again := SnapThickness(SnapThickness(in)); again != want {
			t.Fatalf("SnapThickness is not idempotent for %d: %d", in, again)
		}
	}
}

func TestCalculate_ZeroBaseAreaDoesNotPanic(t *testing.T) {
	rates := DefaultRates()
	rates.BaseHeightFeet = decimal.Zero

	result := Calculate(panel(4, 0, 2, 0, 4), rates)
	equalAmount(t, "material", result.Breakdown.Material, 0)
}
