package types

// WordTimestamp is one transcribed word with its timing in seconds.
// Sequences are ordered non-decreasing by Start and satisfy End >= Start >= 0.
type WordTimestamp struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// CaptionStyle describes how burned-in word captions are rendered. Field
// names match the editor frontend's wire format.
type CaptionStyle struct {
	FontFamily       string  `json:"fontFamily"`
	FontSize         int     `json:"fontSize"`
	Fill             string  `json:"fill"`
	FontWeight       string  `json:"fontWeight"`
	FontStyle        string  `json:"fontStyle,omitempty"`
	ShadowBlur       float64 `json:"shadowBlur"`
	ShadowX          float64 `json:"shadowX"`
	ShadowY          float64 `json:"shadowY"`
	ShadowOpacity    float64 `json:"shadowOpacity"`
	VerticalPosition float64 `json:"verticalPosition"`
	// SpeedOffset shifts every caption cue by the given number of seconds.
	SpeedOffset float64 `json:"speedOffset"`
	TextAlign   string  `json:"textAlign,omitempty"`
}

// DefaultCaptionStyle mirrors the editor's initial style.
func DefaultCaptionStyle() CaptionStyle {
	return CaptionStyle{
		FontFamily:       "Arial",
		FontSize:         80,
		Fill:             "#FFFF00",
		FontWeight:       "bold",
		ShadowBlur:       10,
		ShadowX:          3,
		ShadowY:          3,
		ShadowOpacity:    0.9,
		VerticalPosition: 50,
		SpeedOffset:      0,
		TextAlign:        "center",
	}
}
