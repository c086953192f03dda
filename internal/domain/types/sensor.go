package types

import (
	"fmt"
	"math"
)

// MaxAxisG bounds a single accelerometer axis. Phone sensors saturate well below it.
const MaxAxisG = 16.0

// Vector3 is one accelerometer sample in units of g.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Magnitude returns sqrt(x²+y²+z²).
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Validate rejects non-finite axes and axes outside ±MaxAxisG.
func (v Vector3) Validate() error {
	for _, a := range [...]struct {
		name string
		val  float64
	}{{"x", v.X}, {"y", v.Y}, {"z", v.Z}} {
		if math.IsNaN(a.val) || math.IsInf(a.val, 0) {
			return fmt.Errorf("accelerometer %s axis is not finite", a.name)
		}
		if math.Abs(a.val) > MaxAxisG {
			return fmt.Errorf("accelerometer %s axis %.2fg out of range", a.name, a.val)
		}
	}
	return nil
}

// RecordingPreset selects the audio recording quality.
type RecordingPreset struct {
	Name       string
	SampleRate int
	Channels   int
	BitDepth   int
}

// HighQualityPreset is the only preset the scream monitor records with.
var HighQualityPreset = RecordingPreset{
	Name:       "high_quality",
	SampleRate: 44100,
	Channels:   2,
	BitDepth:   16,
}

// AudioWindow is the most recent slice of recorded PCM, normalised to [-1,1].
type AudioWindow struct {
	SampleRate int
	Samples    []float32
}

// ScreamLikelihood is a classifier score in [0,1].
type ScreamLikelihood float64

// Clamp limits l to [0,1].
func (l ScreamLikelihood) Clamp() ScreamLikelihood {
	switch {
	case l < 0 || math.IsNaN(float64(l)):
		return 0
	case l > 1:
		return 1
	}
	return l
}
