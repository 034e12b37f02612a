package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"caption-studio/internal/types"
)

// HexToAssColor converts an RGB hex triplet ("#FFFF00") to the libass
// primary-colour encoding, which stores channels as alpha-blue-green-red.
func HexToAssColor(hex string) string {
	cleaned := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(cleaned) != 6 {
		cleaned = "FFFFFF"
	}
	r, errR := strconv.ParseUint(cleaned[0:2], 16, 8)
	g, errG := strconv.ParseUint(cleaned[2:4], 16, 8)
	b, errB := strconv.ParseUint(cleaned[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		r, g, b = 0xFF, 0xFF, 0xFF
	}
	return strings.ToUpper(fmt.Sprintf("&H00%02x%02x%02x", b, g, r))
}

func assAlignment(textAlign string) int {
	switch textAlign {
	case "left":
		return 1
	case "right":
		return 3
	default:
		// Bottom center, the reference behavior.
		return 2
	}
}

// ForceStyle maps a CaptionStyle onto a libass force_style string. The
// vertical margin assumes the fixed 1080-pixel-tall design canvas.
func ForceStyle(style types.CaptionStyle) string {
	marginV := int(math.Round((100 - style.VerticalPosition) * 10.8))
	outline := int(math.Round(style.ShadowBlur / 3))
	if outline < 2 {
		outline = 2
	}
	shadow := int(math.Round(math.Hypot(style.ShadowX, style.ShadowY) / 2))
	if shadow < 1 {
		shadow = 1
	}
	bold := 0
	if style.FontWeight == "bold" {
		bold = -1
	}

	entries := []string{
		"FontName=" + style.FontFamily,
		"FontSize=" + strconv.Itoa(style.FontSize),
		"PrimaryColour=" + HexToAssColor(style.Fill),
		"OutlineColour=&H00000000",
		"BackColour=&H80000000",
		"BorderStyle=1",
		"Outline=" + strconv.Itoa(outline),
		"Shadow=" + strconv.Itoa(shadow),
		"Bold=" + strconv.Itoa(bold),
		"Alignment=" + strconv.Itoa(assAlignment(style.TextAlign)),
		"MarginV=" + strconv.Itoa(marginV),
		"Spacing=0",
	}
	return strings.Join(entries, ",")
}
