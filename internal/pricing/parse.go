package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawInput holds form field values exactly as typed.
type RawInput struct {
	WidthFeet    string
	WidthInches  string
	HeightFeet   string
	HeightInches string
	Thickness    string
}

// ParseInput converts raw field values into an Input. Blank or non-numeric
// values read as 0; nothing here ever fails.
func ParseInput(raw RawInput) Input {
	return Input{
		Width:     Dimension{Feet: parseWhole(raw.WidthFeet), Inches: parseNumber(raw.WidthInches)},
		Height:    Dimension{Feet: parseWhole(raw.HeightFeet), Inches: parseNumber(raw.HeightInches)},
		Thickness: parseWhole(raw.Thickness),
	}
}

// FormatDimension renders normalized feet and inches the way they are written
// back into form fields.
func FormatDimension(d Dimension) (feet, inches string) {
	return strconv.Itoa(d.Feet), strconv.FormatFloat(d.Inches, 'f', -1, 64)
}

// ParsePreset reads a tank preset written as total inches, e.g. "36x18",
// and splits each side into whole feet and leftover inches.
func ParsePreset(preset string) (width, height Dimension, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(preset)), "x")
	if !ok {
		return Dimension{}, Dimension{}, fmt.Errorf("preset %q: expected WIDTHxHEIGHT in inches", preset)
	}

	wIn, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil || wIn < 0 {
		return Dimension{}, Dimension{}, fmt.Errorf("preset %q: invalid width", preset)
	}
	hIn, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil || hIn < 0 {
		return Dimension{}, Dimension{}, fmt.Errorf("preset %q: invalid height", preset)
	}

	return fromInches(wIn), fromInches(hIn), nil
}

func fromInches(total float64) Dimension {
	return Dimension{Feet: int(math.Floor(total / 12)), Inches: math.Mod(total, 12)}
}

func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func parseWhole(s string) int {
	v := parseNumber(s)
	// Bound before converting so huge inputs cannot overflow int.
	v = math.Max(-1, math.Min(v, MaxFeet+MaxThickness))
	return int(math.Trunc(v))
}
