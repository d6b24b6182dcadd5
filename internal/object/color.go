package object

// ColorEntry is one catchable color. Values are immutable once constructed.
type ColorEntry struct {
	Name       string
	Fill       string  // Hex fill, e.g. "#FF385F"
	Wavelength float64 // Nanometres, drives the spin rate of normal orbs
}

// basePalette is the fixed color set, in base order.
var basePalette = [...]ColorEntry{
	{Name: "Fluoro Red", Fill: "#FF385F", Wavelength: 700},
	{Name: "Electric Orange", Fill: "#FF7100", Wavelength: 620},
	{Name: "Neon Yellow", Fill: "#FFE925", Wavelength: 580},
	{Name: "Acid Lime", Fill: "#73FA2E", Wavelength: 530},
	{Name: "Azure", Fill: "#11B5EA", Wavelength: 470},
	{Name: "Hyper Purple", Fill: "#9C1DF8", Wavelength: 425},
}

// BasePalette returns a fresh copy of the base color set.
func BasePalette() []ColorEntry {
	out := make([]ColorEntry, len(basePalette))
	copy(out, basePalette[:])
	return out
}

// Golden, heart and power-up orbs carry fixed fills.
const (
	FillGolden  = "#FFD700"
	FillHeart   = "#FF4D6D"
	FillShield  = "#4DD9FF"
	FillClock   = "#B28DFF"
	FillMagnet  = "#FF9F1C"
	FillNeutral = "#FFFFFF"
)
