package config

import (
	"github.com/ivlev/wordmark/internal/ocr"
)

// MarkingMode selects the annotation drawn over the selected words.
type MarkingMode string

const (
	ModeHighlight  MarkingMode = "highlight"
	ModeCircle     MarkingMode = "circle"
	ModeUnderline  MarkingMode = "underline"
	ModeUnblur     MarkingMode = "unblur"
	ModeZoom       MarkingMode = "zoom"
	ModeLowerThird MarkingMode = "lower-third"
)

// CameraMovement is the slow ambient motion applied across the whole clip,
// independent of the enter/exit animations.
type CameraMovement string

const (
	CameraNone      CameraMovement = "none"
	CameraLeftRight CameraMovement = "pan-left-right"
	CameraRightLeft CameraMovement = "pan-right-left"
	CameraUpDown    CameraMovement = "pan-up-down"
	CameraDownUp    CameraMovement = "pan-down-up"
	CameraZoomIn    CameraMovement = "zoom-in"
	CameraZoomOut   CameraMovement = "zoom-out"
)

// EdgeAnimation is an enter or exit transition kind.
type EdgeAnimation string

const (
	EdgeNone        EdgeAnimation = "none"
	EdgeBlur        EdgeAnimation = "blur"
	EdgeSlideTop    EdgeAnimation = "slide-top"
	EdgeSlideBottom EdgeAnimation = "slide-bottom"
	EdgeSlideLeft   EdgeAnimation = "slide-left"
	EdgeSlideRight  EdgeAnimation = "slide-right"
)

// IsSlide reports whether the animation moves the frame off screen.
// Slide exits get an extra half-second buffer before clip end.
func (e EdgeAnimation) IsSlide() bool {
	switch e {
	case EdgeSlideTop, EdgeSlideBottom, EdgeSlideLeft, EdgeSlideRight:
		return true
	}
	return false
}

// OutputFormat selects fixed output pixel dimensions.
type OutputFormat string

const (
	FormatLandscape OutputFormat = "landscape"
	FormatPortrait  OutputFormat = "portrait"
	FormatSquare    OutputFormat = "square"
)

// Dimensions returns the output pixel size for the format.
func (f OutputFormat) Dimensions() (width, height int) {
	switch f {
	case FormatPortrait:
		return 1080, 1920
	case FormatSquare:
		return 1080, 1080
	default:
		return 1920, 1080
	}
}

// ZoomBox is a user-drawn rectangle in normalized image coordinates,
// all components in [0,1]. Consumed once per render to build the zoom
// transform.
type ZoomBox struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Request is the full render request: everything a caller supplies to
// get a deterministic clip. Immutable during a render.
type Request struct {
	SelectedWords []ocr.WordBox `json:"selectedWords" yaml:"selected_words"`
	ZoomBox       *ZoomBox      `json:"zoomBox,omitempty" yaml:"zoom_box,omitempty"`

	BackgroundColor [3]uint8 `json:"backgroundColor" yaml:"background_color"`
	ImageWidth      int      `json:"imageWidth" yaml:"image_width"`
	ImageHeight     int      `json:"imageHeight" yaml:"image_height"`

	HighlightColor string      `json:"highlightColor" yaml:"highlight_color"`
	MarkingMode    MarkingMode `json:"markingMode" yaml:"marking_mode"`

	LeadInSeconds       float64 `json:"leadInSeconds" yaml:"lead_in_seconds"`
	CharsPerSecond      float64 `json:"charsPerSecond" yaml:"chars_per_second"`
	LeadOutSeconds      float64 `json:"leadOutSeconds" yaml:"lead_out_seconds"`
	ZoomDurationSeconds float64 `json:"zoomDurationSeconds" yaml:"zoom_duration_seconds"`

	CameraMovement CameraMovement `json:"cameraMovement" yaml:"camera_movement"`
	EnterAnimation EdgeAnimation  `json:"enterAnimation" yaml:"enter_animation"`
	ExitAnimation  EdgeAnimation  `json:"exitAnimation" yaml:"exit_animation"`

	VCREffect bool `json:"vcrEffect" yaml:"vcr_effect"`

	AttributionText    string `json:"attributionText" yaml:"attribution_text"`
	AttributionColor   string `json:"attributionColor" yaml:"attribution_color"`
	AttributionBgColor string `json:"attributionBgColor" yaml:"attribution_bg_color"`
	AttributionURL     string `json:"attributionUrl,omitempty" yaml:"attribution_url,omitempty"`

	OutputFormat OutputFormat `json:"outputFormat" yaml:"output_format"`
	FrameRate    int          `json:"frameRate" yaml:"frame_rate"`
}

// Default returns the baseline request with the timing and style knobs
// a caller usually leaves alone.
func Default() Request {
	return Request{
		BackgroundColor:     [3]uint8{255, 255, 255},
		HighlightColor:      "#ffd532",
		MarkingMode:         ModeHighlight,
		LeadInSeconds:       1.0,
		CharsPerSecond:      15,
		LeadOutSeconds:      1.0,
		ZoomDurationSeconds: 2.0,
		CameraMovement:      CameraNone,
		EnterAnimation:      EdgeBlur,
		ExitAnimation:       EdgeBlur,
		AttributionColor:    "#ffffff",
		AttributionBgColor:  "#1a1a1a",
		OutputFormat:        FormatLandscape,
		FrameRate:           30,
	}
}
