package codec

// Version is the format version written by this package. Decoders accept
// every version up to and including it.
const Version = 1

type wireDocument struct {
	Version    *int          `json:"version"`
	Width      *float64      `json:"width"`
	Height     *float64      `json:"height"`
	Background string        `json:"backgroundColor,omitempty"`
	Strokes    []*wireStroke `json:"strokes"`
}

type wireStroke struct {
	ID       *string      `json:"id,omitempty"`
	Points   *[]wirePoint `json:"points"`
	Color    string       `json:"color,omitempty"`
	Width    *float64     `json:"width,omitempty"`
	Opacity  *float64     `json:"opacity,omitempty"`
	Simplify *float64     `json:"simplify,omitempty"`
}

type wirePoint struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	T        float64  `json:"t"`
	Pressure *float64 `json:"pressure,omitempty"`
}

// legacyPath is one entry of the version 0 board file: a bare JSON array
// of paths saved by the earlier whiteboard widget.
type legacyPath struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Points  []struct {
		X, Y float32
	} `json:"points"`
	Color  string  `json:"color"`
	Stroke float32 `json:"stroke"`
}
