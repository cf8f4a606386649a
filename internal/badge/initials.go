package badge

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Fallback card palette.
var (
	cardBackground = color.RGBA{R: 0x2C, G: 0x3E, B: 0x50, A: 0xFF}
	cardText       = color.RGBA{R: 0xEC, G: 0xF0, B: 0xF1, A: 0xFF}
	cardShadow     = color.RGBA{A: 0xFF}
)

// Initials derives the fallback card text. Names yield the first letters of
// up to two tokens; with no name tokens, the last two characters of the id
// stand in. Always uppercase.
func Initials(id, name string) string {
	tokens := strings.Fields(name)
	if len(tokens) > 0 {
		var b strings.Builder
		for i, tok := range tokens {
			if i == 2 {
				break
			}
			first := []rune(tok)[0]
			b.WriteString(strings.ToUpper(string(first)))
		}
		return b.String()
	}

	if len(id) > 2 {
		id = id[len(id)-2:]
	}
	return strings.ToUpper(id)
}

// renderInitials draws the initials card: solid background, the text
// centered with a one-pixel drop shadow, scaled to roughly two fifths of
// the card height.
func renderInitials(text string, width, height int) image.Image {
	card := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(card, card.Bounds(), image.NewUniform(cardBackground), image.Point{}, draw.Src)

	if text == "" {
		return card
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	glyphH := metrics.Height.Ceil()
	glyphW := font.MeasureString(face, text).Ceil()

	// Render at glyph size, shadow first, then scale onto the card.
	plate := image.NewRGBA(image.Rect(0, 0, glyphW+1, glyphH+1))
	drawer := font.Drawer{
		Dst:  plate,
		Src:  image.NewUniform(cardShadow),
		Face: face,
		Dot:  fixed.P(1, ascent+1),
	}
	drawer.DrawString(text)
	drawer.Src = image.NewUniform(cardText)
	drawer.Dot = fixed.P(0, ascent)
	drawer.DrawString(text)

	targetH := height * 2 / 5
	if targetH < glyphH {
		targetH = glyphH
	}
	targetW := plate.Bounds().Dx() * targetH / plate.Bounds().Dy()
	if targetW > width {
		targetW = width
		targetH = plate.Bounds().Dy() * targetW / plate.Bounds().Dx()
	}

	x0 := (width - targetW) / 2
	y0 := (height - targetH) / 2
	target := image.Rect(x0, y0, x0+targetW, y0+targetH)
	draw.ApproxBiLinear.Scale(card, target, plate, plate.Bounds(), draw.Over, nil)

	return card
}
