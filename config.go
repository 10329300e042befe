package orbit

import (
	"math"
	"time"
)

// Config holds the tuning constants of a viewer. Zero fields are replaced by
// the values from DefaultConfig when the viewer is created, so a partially
// filled Config is valid.
type Config struct {
	// Layout selects ring or sphere placement.
	Layout LayoutKind `yaml:"layout" env:"LAYOUT"`
	// Radius is the ring or sphere radius in world units.
	Radius float64 `yaml:"radius" env:"RADIUS"`
	// CardWidth and CardHeight are the card size in world units at scale 1.
	CardWidth  float64 `yaml:"card_width" env:"CARD_WIDTH"`
	CardHeight float64 `yaml:"card_height" env:"CARD_HEIGHT"`

	// HoverScale is the scale a hovered card grows to.
	HoverScale float64 `yaml:"hover_scale" env:"HOVER_SCALE"`
	// HoverDuration is the length of the hover scale tween.
	HoverDuration time.Duration `yaml:"hover_duration" env:"HOVER_DURATION"`
	// RotationSpeed is the ambient rotation rate in radians per second.
	RotationSpeed float64 `yaml:"rotation_speed" env:"ROTATION_SPEED"`
	// ReducedMotion disables ambient rotation and makes hover scale instant.
	// It also silences feedback tones.
	ReducedMotion bool `yaml:"reduced_motion" env:"REDUCED_MOTION"`
	// Sound plays feedback tones when the viewer has a tone player.
	Sound bool `yaml:"sound" env:"SOUND"`

	// CameraDistance is the distance from the camera to the collection centre.
	CameraDistance float64 `yaml:"camera_distance" env:"CAMERA_DISTANCE"`
	// FOV is the vertical field of view in radians.
	FOV float64 `yaml:"fov" env:"FOV"`
	// FocusDuration is the length of the camera focus and reset tweens.
	FocusDuration time.Duration `yaml:"focus_duration" env:"FOCUS_DURATION"`
	// DragSensitivity converts horizontal drag pixels into yaw radians.
	DragSensitivity float64 `yaml:"drag_sensitivity" env:"DRAG_SENSITIVITY"`

	// LODHigh and LODMedium are camera-space depth limits. Cards nearer than
	// LODHigh draw at high detail, nearer than LODMedium at medium, the rest
	// at low. Zero derives the bands from CameraDistance and Radius.
	LODHigh   float64 `yaml:"lod_high" env:"LOD_HIGH"`
	LODMedium float64 `yaml:"lod_medium" env:"LOD_MEDIUM"`
	// LowFPS is the frame rate below which reduced motion is forced.
	LowFPS float64 `yaml:"low_fps" env:"LOW_FPS"`

	// Concurrency caps the number of image fetches in flight.
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
	// Stagger delays each fetch dispatch.
	Stagger time.Duration `yaml:"stagger" env:"STAGGER"`

	// Debug logs per-frame statistics at debug level.
	Debug bool `yaml:"debug" env:"DEBUG"`
}

// DefaultConfig returns the default tuning constants.
func DefaultConfig() Config {
	return Config{
		Layout:          LayoutSphere,
		Radius:          300,
		CardWidth:       192,
		CardHeight:      240,
		HoverScale:      1.15,
		HoverDuration:   300 * time.Millisecond,
		RotationSpeed:   2 * math.Pi / 60,
		CameraDistance:  1200,
		FOV:             math.Pi / 3,
		FocusDuration:   800 * time.Millisecond,
		DragSensitivity: 0.01,
		LowFPS:          30,
		Concurrency:     4,
		Sound:           true,
	}
}

// withDefaults fills zero fields from DefaultConfig. Boolean fields, Layout
// and Stagger keep their zero values, which are valid settings, so a zero
// Config is silent.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Radius <= 0 {
		c.Radius = d.Radius
	}
	if c.CardWidth <= 0 {
		c.CardWidth = d.CardWidth
	}
	if c.CardHeight <= 0 {
		c.CardHeight = d.CardHeight
	}
	if c.HoverScale <= 0 {
		c.HoverScale = d.HoverScale
	}
	if c.HoverDuration <= 0 {
		c.HoverDuration = d.HoverDuration
	}
	if c.RotationSpeed == 0 {
		c.RotationSpeed = d.RotationSpeed
	}
	if c.CameraDistance <= 0 {
		c.CameraDistance = d.CameraDistance
	}
	if c.FOV <= 0 || c.FOV >= math.Pi {
		c.FOV = d.FOV
	}
	if c.FocusDuration <= 0 {
		c.FocusDuration = d.FocusDuration
	}
	if c.DragSensitivity == 0 {
		c.DragSensitivity = d.DragSensitivity
	}
	if c.LODHigh <= 0 {
		c.LODHigh = c.CameraDistance
	}
	if c.LODMedium <= 0 {
		c.LODMedium = c.CameraDistance + c.Radius/2
	}
	if c.LowFPS <= 0 {
		c.LowFPS = d.LowFPS
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Stagger < 0 {
		c.Stagger = 0
	}
	return c
}
