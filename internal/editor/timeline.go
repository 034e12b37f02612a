// Package editor holds the canonical in-memory timeline: the active word
// timestamp sequence, the overlay layer stack and the session caption style.
// It is a pure state container; acquisition pipelines populate it and the
// render pipeline consumes it.
package editor

import (
	"fmt"
	"sync"

	"caption-studio/internal/types"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Timeline struct {
	mu     sync.Mutex
	words  []types.WordTimestamp
	layers []types.Layer
	style  types.CaptionStyle
}

func NewTimeline() *Timeline {
	return &Timeline{style: types.DefaultCaptionStyle()}
}

// SetWords replaces the active word sequence and removes every existing word
// layer. Stale word layers referencing old timing must never survive a
// re-transcription or script edit; non-word layers are untouched.
func (t *Timeline) SetWords(words []types.WordTimestamp) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.words = append([]types.WordTimestamp(nil), words...)
	t.layers = lo.Reject(t.layers, func(layer types.Layer, _ int) bool {
		return layer.IsWordLayer
	})
}

func (t *Timeline) Words() []types.WordTimestamp {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]types.WordTimestamp(nil), t.words...)
}

// MaterializeWordLayers builds one word layer per timestamp at the given
// design-space anchor, snapshotting the current caption style's font fields.
// Later style edits do not touch materialized layers unless explicitly
// re-applied. No-op when no timestamps are set.
func (t *Timeline) MaterializeWordLayers(anchorX, anchorY float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.words) == 0 {
		return
	}

	for index, word := range t.words {
		t.layers = append(t.layers, types.Layer{
			Id:          fmt.Sprintf("word-%s-%d", uuid.NewString(), index),
			Type:        types.LayerTypeText,
			Text:        word.Word,
			Left:        anchorX,
			Top:         anchorY,
			FontSize:    t.style.FontSize,
			Fill:        t.style.Fill,
			FontFamily:  t.style.FontFamily,
			FontWeight:  t.style.FontWeight,
			IsWordLayer: true,
			StartTime:   word.Start,
			EndTime:     word.End,
			WordIndex:   index,
		})
	}
}

// StyleUpdate is a partial style: nil fields are left untouched.
type StyleUpdate struct {
	FontSize   *int
	Fill       *string
	FontFamily *string
	FontWeight *string
	FontStyle  *string
}

// ApplyStyleToAllWordLayers bulk-overwrites the provided style fields on every
// current word layer ("apply to all" semantics, distinct from the live style
// read at export time).
func (t *Timeline) ApplyStyleToAllWordLayers(update StyleUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.layers {
		if !t.layers[i].IsWordLayer {
			continue
		}
		if update.FontSize != nil {
			t.layers[i].FontSize = *update.FontSize
		}
		if update.Fill != nil {
			t.layers[i].Fill = *update.Fill
		}
		if update.FontFamily != nil {
			t.layers[i].FontFamily = *update.FontFamily
		}
		if update.FontWeight != nil {
			t.layers[i].FontWeight = *update.FontWeight
		}
		if update.FontStyle != nil {
			t.layers[i].FontStyle = *update.FontStyle
		}
	}
}

func (t *Timeline) AddLayer(layer types.Layer) types.Layer {
	t.mu.Lock()
	defer t.mu.Unlock()

	if layer.Id == "" {
		layer.Id = uuid.NewString()
	}
	t.layers = append(t.layers, layer)
	return layer
}

func (t *Timeline) UpdateLayer(id string, update func(*types.Layer)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.layers {
		if t.layers[i].Id == id {
			update(&t.layers[i])
			return true
		}
	}
	return false
}

func (t *Timeline) RemoveLayer(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := len(t.layers)
	t.layers = lo.Reject(t.layers, func(layer types.Layer, _ int) bool {
		return layer.Id == id
	})
	return len(t.layers) != before
}

// Layers returns the layer stack in z-order (first drawn at the bottom).
func (t *Timeline) Layers() []types.Layer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]types.Layer(nil), t.layers...)
}

// SwapLayers exchanges two adjacent entries in the z-order.
func (t *Timeline) SwapLayers(i, j int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if i < 0 || j < 0 || i >= len(t.layers) || j >= len(t.layers) {
		return false
	}
	t.layers[i], t.layers[j] = t.layers[j], t.layers[i]
	return true
}

// ReorderLayers replaces the z-order with the supplied permutation. The new
// list must contain exactly the current layer ids.
func (t *Timeline) ReorderLayers(newOrder []types.Layer) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(newOrder) != len(t.layers) {
		return fmt.Errorf("reorder must keep all %d layers, got %d", len(t.layers), len(newOrder))
	}
	current := lo.KeyBy(t.layers, func(layer types.Layer) string { return layer.Id })
	seen := make(map[string]struct{}, len(newOrder))
	for _, layer := range newOrder {
		if _, ok := current[layer.Id]; !ok {
			return fmt.Errorf("reorder references unknown layer id %s", layer.Id)
		}
		if _, dup := seen[layer.Id]; dup {
			return fmt.Errorf("reorder repeats layer id %s", layer.Id)
		}
		seen[layer.Id] = struct{}{}
	}

	t.layers = append([]types.Layer(nil), newOrder...)
	return nil
}

func (t *Timeline) SetStyle(style types.CaptionStyle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.style = style
}

// Style returns a copy: the render pipeline takes its own snapshot at export
// submission and must never read a mutating singleton mid-render.
func (t *Timeline) Style() types.CaptionStyle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.style
}
