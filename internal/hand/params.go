package hand

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid hand params")

// Default tuning values.
const (
	DefaultExtensionThreshold = 0.7
	DefaultPinchThreshold     = 0.05
	DefaultPitchSensitivity   = 360.0
	DefaultProjectionDistance = 200.0
	DefaultRollOffset         = 100.0
	DefaultEpsilon            = 1e-6
)

// Params holds the numeric constants used by the classifiers.
type Params struct {
	// ExtensionThreshold is the cosine above which a finger counts as extended.
	ExtensionThreshold float64 `yaml:"extension_threshold" json:"extension_threshold"`

	// PinchThreshold is the thumb-index distance below which the hand pinches.
	PinchThreshold float64 `yaml:"pinch_threshold" json:"pinch_threshold"`

	// PitchSensitivity is degrees of pitch per unit of normalized wrist displacement.
	PitchSensitivity float64 `yaml:"pitch_sensitivity" json:"pitch_sensitivity"`

	// ProjectionDistance is how far in pixels the pointing cursor is cast.
	ProjectionDistance float64 `yaml:"projection_distance" json:"projection_distance"`

	// RollOffset is added to the raw forward-vector angle before folding.
	RollOffset float64 `yaml:"roll_offset" json:"roll_offset"`

	// Epsilon guards every vector normalization.
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`

	// DetectLike enables the thumbs-up LIKE gesture. It shadows the fist
	// pitch signal, so it is off unless asked for.
	DetectLike bool `yaml:"detect_like" json:"detect_like"`
}

// DefaultParams returns Params with the default tuning values.
func DefaultParams() Params {
	return Params{
		ExtensionThreshold: DefaultExtensionThreshold,
		PinchThreshold:     DefaultPinchThreshold,
		PitchSensitivity:   DefaultPitchSensitivity,
		ProjectionDistance: DefaultProjectionDistance,
		RollOffset:         DefaultRollOffset,
		Epsilon:            DefaultEpsilon,
	}
}

// Validate checks that every value is finite and in a usable range.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"extension_threshold", p.ExtensionThreshold},
		{"pinch_threshold", p.PinchThreshold},
		{"pitch_sensitivity", p.PitchSensitivity},
		{"projection_distance", p.ProjectionDistance},
		{"roll_offset", p.RollOffset},
		{"epsilon", p.Epsilon},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParams, f.name)
		}
	}

	if p.ExtensionThreshold < -1 || p.ExtensionThreshold > 1 {
		return fmt.Errorf("%w: extension_threshold %v outside [-1,1]", ErrInvalidParams, p.ExtensionThreshold)
	}
	if p.PinchThreshold < 0 {
		return fmt.Errorf("%w: pinch_threshold must not be negative", ErrInvalidParams)
	}
	if p.ProjectionDistance < 0 {
		return fmt.Errorf("%w: projection_distance must not be negative", ErrInvalidParams)
	}
	if p.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive", ErrInvalidParams)
	}
	return nil
}
