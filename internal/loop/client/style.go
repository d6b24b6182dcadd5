package client

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/tomz197/coloroid/internal/object"
)

const (
	colorText   = "#E8E8F0"
	colorDim    = "#6C6C80"
	colorAccent = "#11B5EA"
	colorWarn   = "#FF385F"
	colorMana   = "#9C1DF8"
	colorFlash  = "#FF2040"
)

// styles renders HUD text for one connection's color profile.
type styles struct {
	r      *lipgloss.Renderer
	text   lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	warn   lipgloss.Style
	box    lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)

	return styles{
		r:      r,
		text:   r.NewStyle().Foreground(lipgloss.Color(colorText)),
		dim:    r.NewStyle().Foreground(lipgloss.Color(colorDim)),
		accent: r.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color(colorWarn)).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorDim)).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// fg returns a style with the given hex foreground.
func (s styles) fg(hex string) lipgloss.Style {
	return s.r.NewStyle().Foreground(lipgloss.Color(hex))
}

// faded returns hex blended toward black; alpha 1 keeps it unchanged.
func faded(hex string, alpha float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return colorful.Color{}.BlendRgb(c, object.Clamp(alpha, 0, 1)).Clamped().Hex()
}

// title renders the game name with each letter in a palette color.
func (s styles) title() string {
	const name = "C O L O R O I D"
	palette := object.BasePalette()
	var b strings.Builder
	i := 0
	for _, r := range name {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(s.fg(palette[i%len(palette)].Fill).Bold(true).Render(string(r)))
		i++
	}
	return b.String()
}

// manaBar renders a fixed-width bar for a fraction in [0, 1].
func (s styles) manaBar(fraction float64, width int) string {
	filled := int(object.Clamp(fraction, 0, 1)*float64(width) + 0.5)
	return s.fg(colorMana).Render(strings.Repeat("█", filled)) +
		s.dim.Render(strings.Repeat("░", width-filled))
}

// hearts renders lives as filled and empty hearts.
func (s styles) hearts(lives, max int) string {
	if lives < 0 {
		lives = 0
	}
	if max < lives {
		max = lives
	}
	return s.fg(object.FillHeart).Render(strings.Repeat("♥", lives)) +
		s.dim.Render(strings.Repeat("♡", max-lives))
}

// swatches renders the palette, bracketing the current target.
func (s styles) swatches(palette []object.ColorEntry, current string, pulse float64) string {
	var b strings.Builder
	for _, c := range palette {
		block := s.fg(c.Fill).Render("██")
		if c.Name == current {
			bracket := s.text
			if pulse > 0 {
				bracket = s.fg(faded(c.Fill, 0.5+pulse/2))
			}
			b.WriteString(bracket.Render("[") + block + bracket.Render("]"))
			continue
		}
		b.WriteString(" " + block + " ")
	}
	return b.String()
}
