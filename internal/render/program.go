// Package render translates the editor's layer model, word timestamps and
// caption style into a deterministic ffmpeg filter program. It performs no
// I/O: the executor writes the subtitle artifact and runs the encoder.
package render

import (
	"fmt"
	"strings"

	"caption-studio/internal/types"

	"github.com/samber/lo"
)

// Program is one single-pass filter chain plus the subtitle artifact it
// references. Everything is burned in with one encoder invocation to avoid
// repeated re-encoding quality loss.
type Program struct {
	// SubtitleContent is the SRT track body; empty when no timestamps exist.
	SubtitleContent string
	// SubtitlePath is where the executor must write SubtitleContent before
	// invoking the encoder.
	SubtitlePath string
	// Filters is the ordered chain: subtitle track first, then static
	// overlays in layer order.
	Filters []string
}

// HasSubtitleTrack reports whether the executor must write the SRT artifact.
func (p Program) HasSubtitleTrack() bool {
	return p.SubtitleContent != ""
}

// FilterChain joins the ordered filters into a single -vf expression.
func (p Program) FilterChain() string {
	return strings.Join(p.Filters, ",")
}

// escapeFilterText neutralizes quote and colon characters before text is
// embedded in a drawtext expression.
func escapeFilterText(text string) string {
	escaped := strings.ReplaceAll(text, "'", "\\'")
	return strings.ReplaceAll(escaped, ":", "\\:")
}

// escapeFilterPath rewrites a filesystem path for use inside a filter
// argument.
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, "\\", "/")
	return strings.ReplaceAll(escaped, ":", "\\:")
}

// Build converts the layer model, timestamp sequence and caption style into
// the filter program. It is a pure function: identical inputs produce
// byte-identical output.
//
// Word captions prefer the subtitle track; time-gated drawtext overlays are
// the fallback when word layers exist without a timestamp sequence. Image
// layers are preview-only and never burned in.
func Build(layers []types.Layer, words []types.WordTimestamp, style types.CaptionStyle, subtitlePath string) Program {
	program := Program{SubtitlePath: subtitlePath}

	if len(words) > 0 {
		program.SubtitleContent = BuildSrt(words, style.SpeedOffset)
		program.Filters = append(program.Filters, fmt.Sprintf(
			"subtitles='%s':force_style='%s'",
			escapeFilterPath(subtitlePath), ForceStyle(style)))
	}

	staticLayers := lo.Filter(layers, func(l types.Layer, _ int) bool { return l.IsStaticText() })
	wordLayers := lo.Filter(layers, func(l types.Layer, _ int) bool {
		return l.IsWordLayer && l.Type == types.LayerTypeText
	})

	for _, layer := range staticLayers {
		program.Filters = append(program.Filters, staticTextFilter(layer))
	}

	if len(words) == 0 {
		for _, layer := range wordLayers {
			program.Filters = append(program.Filters, wordLayerFilter(layer, style))
		}
	}

	return program
}

// staticTextFilter renders an always-visible overlay from the layer's own
// position, size and color, not the caption style.
func staticTextFilter(layer types.Layer) string {
	text := layer.Text
	if text == "" {
		text = "Text"
	}
	fontSize := layer.FontSize
	if fontSize == 0 {
		fontSize = 48
	}
	fill := layer.Fill
	if fill == "" {
		fill = "#ffffff"
	}
	return fmt.Sprintf("drawtext=text='%s':x=%d:y=%d:fontsize=%d:fontcolor=0x%s",
		escapeFilterText(text),
		int(layer.Left), int(layer.Top),
		fontSize,
		strings.TrimPrefix(fill, "#"))
}

// wordLayerFilter renders a word layer visible only inside its timing window,
// styled from the caption style like the subtitle track would be.
func wordLayerFilter(layer types.Layer, style types.CaptionStyle) string {
	fontSize := style.FontSize
	if fontSize == 0 {
		fontSize = 80
	}
	fill := style.Fill
	if fill == "" {
		fill = "#FFFF00"
	}
	verticalPosition := style.VerticalPosition
	if verticalPosition == 0 {
		verticalPosition = 85
	}
	endTime := layer.EndTime
	if endTime <= layer.StartTime {
		endTime = layer.StartTime + 1
	}
	return fmt.Sprintf(
		"drawtext=text='%s':x=(w-text_w)/2:y=(h*%s)/100:fontsize=%d:fontcolor=0x%s:enable='between(t,%s,%s)'",
		escapeFilterText(layer.Text),
		formatNumber(verticalPosition),
		fontSize,
		strings.TrimPrefix(fill, "#"),
		formatNumber(layer.StartTime),
		formatNumber(endTime))
}

// formatNumber prints floats without a trailing decimal point for whole
// values, keeping filter expressions stable and readable.
func formatNumber(value float64) string {
	return fmt.Sprintf("%g", value)
}
