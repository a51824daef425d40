package codec

import (
	"image/color"
	"math"
	"time"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func ptr[T any](v T) *T { return &v }

func positive(f float64) bool { return f > 0 && !math.IsInf(f, 0) }

func unit(f float64) bool { return f >= 0 && f <= 1 }

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func duration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}
