package types

// Layers are authored in a fixed 1920x1080 design space, independent of the
// actual source video resolution.
const (
	DesignWidth  = 1920
	DesignHeight = 1080

	// Default anchor word layers are materialized at.
	WordLayerAnchorX = 960
	WordLayerAnchorY = 850
)

const (
	LayerTypeText  = "text"
	LayerTypeImage = "image"
)

// Layer is one overlay entity on the editor canvas. It is polymorphic over
// Type: text layers use the font/fill fields, image layers use Src/Name.
// Word layers are text layers tagged with IsWordLayer plus timing, always
// regenerated as a batch from the current WordTimestamp sequence.
type Layer struct {
	Id     string  `json:"id"`
	Type   string  `json:"type"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	ScaleX float64 `json:"scaleX,omitempty"`
	ScaleY float64 `json:"scaleY,omitempty"`
	Angle  float64 `json:"angle,omitempty"`

	// Text layers
	Text       string `json:"text,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	Fill       string `json:"fill,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`

	// Image layers
	Src  string `json:"src,omitempty"`
	Name string `json:"name,omitempty"`

	// Word layers
	IsWordLayer bool    `json:"isWordLayer,omitempty"`
	StartTime   float64 `json:"startTime,omitempty"`
	EndTime     float64 `json:"endTime,omitempty"`
	WordIndex   int     `json:"wordIndex,omitempty"`
}

// IsStaticText reports whether the layer is an always-visible text overlay.
func (l Layer) IsStaticText() bool {
	return l.Type == LayerTypeText && !l.IsWordLayer
}
