package grove

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/pelletier/go-toml/v2"
	"github.com/tanema/gween/ease"
)

//go:embed scene.toml
var defaultConfig []byte

// ErrInvalidConfig is wrapped by every validation failure of ParseConfig.
var ErrInvalidConfig = errors.New("invalid grove config")

// Config holds every constant of the grove scene.
type Config struct {
	Title      string  `toml:"title"`
	Hint       string  `toml:"hint"`
	Background string  `toml:"background"`
	AssetRoot  string  `toml:"asset_root"`
	Exposure   float32 `toml:"exposure"` // filmic tone mapping exposure

	Fog       FogConfig       `toml:"fog"`
	Camera    CameraConfig    `toml:"camera"`
	Zoom      ZoomConfig      `toml:"zoom"`
	Ambient   LightConfig     `toml:"ambient"`
	Light     LightConfig     `toml:"light"`
	Ground    GroundConfig    `toml:"ground"`
	Sun       SunConfig       `toml:"sun"`
	Trees     TreesConfig     `toml:"trees"`
	Character CharacterConfig `toml:"character"`
}

// FogConfig is the linear distance fog of the scene.
type FogConfig struct {
	Color string  `toml:"color"`
	Near  float32 `toml:"near"`
	Far   float32 `toml:"far"`
}

// CameraConfig is the initial perspective camera.
type CameraConfig struct {
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
}

// ZoomConfig holds the two zoom states and the transition between them.
// Far is the initial state: narrow field of view, camera further back.
type ZoomConfig struct {
	NearFov   float32 `toml:"near_fov"`
	FarFov    float32 `toml:"far_fov"`
	NearDepth float32 `toml:"near_depth"`
	FarDepth  float32 `toml:"far_depth"`
	Duration  float32 `toml:"duration"` // seconds
	Easing    string  `toml:"easing"`
}

// LightConfig describes one light. Position and Shadow only apply to the directional light.
type LightConfig struct {
	Color     string              `toml:"color"`
	Intensity float32             `toml:"intensity"`
	Position  [3]float32          `toml:"position"`
	Shadow    *light.ShadowBounds `toml:"shadow"`
}

// GroundConfig is the flat, shadow-receiving ground plane.
type GroundConfig struct {
	Width float32 `toml:"width"`
	Depth float32 `toml:"depth"`
	Color string  `toml:"color"`
}

// SunConfig is the unlit disc drawn where the directional light sits.
type SunConfig struct {
	Radius   float32    `toml:"radius"`
	Segments int        `toml:"segments"`
	Color    string     `toml:"color"`
	Position [3]float32 `toml:"position"`
}

// TreesConfig describes the tree asset and the grid the populator lays it out on.
type TreesConfig struct {
	Material string  `toml:"material"`
	Geometry string  `toml:"geometry"`
	Lift     float32 `toml:"lift"` // vertical offset applied to the tree geometry
	Columns  int     `toml:"columns"`
	Rows     int     `toml:"rows"`
	SpacingX float32 `toml:"spacing_x"`
	SpacingZ float32 `toml:"spacing_z"`
	Jitter   float32 `toml:"jitter"`
}

// CharacterConfig describes the textured character asset and its placement.
type CharacterConfig struct {
	Geometry string     `toml:"geometry"`
	Texture  string     `toml:"texture"`
	Scale    float32    `toml:"scale"`
	Position [3]float32 `toml:"position"`
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
}

// EasingFunc resolves the configured easing name.
func (z ZoomConfig) EasingFunc() (ease.TweenFunc, error) {
	fn, ok := easings[z.Easing]
	if !ok {
		return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidConfig, z.Easing)
	}
	return fn, nil
}

// DefaultConfig returns the compiled-in scene configuration.
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the embedded document does not decode or validate
func DefaultConfig() (Config, error) {
	return ParseConfig(defaultConfig)
}

// ParseConfig decodes and validates a TOML scene configuration.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode error, or an error wrapping ErrInvalidConfig
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to decode grove config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the ranges the scene relies on and that every colour parses.
func (c Config) Validate() error {
	for _, s := range []string{c.Background, c.Fog.Color, c.Ambient.Color, c.Light.Color, c.Ground.Color, c.Sun.Color} {
		if _, err := common.ParseColor(s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Zoom.EasingFunc(); err != nil {
		return err
	}

	switch {
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Exposure <= 0:
		return fmt.Errorf("%w: exposure must be positive", ErrInvalidConfig)
	case c.Zoom.Duration <= 0:
		return fmt.Errorf("%w: zoom duration must be positive", ErrInvalidConfig)
	case c.Fog.Far < c.Fog.Near:
		return fmt.Errorf("%w: fog far %v before near %v", ErrInvalidConfig, c.Fog.Far, c.Fog.Near)
	case c.Trees.Columns <= 0 || c.Trees.Rows <= 0:
		return fmt.Errorf("%w: tree grid %dx%d", ErrInvalidConfig, c.Trees.Columns, c.Trees.Rows)
	}
	if err := checkJitter(c.Trees.SpacingX, c.Trees.SpacingZ, c.Trees.Jitter); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// parsedColor parses a colour already checked by Validate.
func parsedColor(s string) common.Color {
	c, err := common.ParseColor(s)
	if err != nil {
		return common.White
	}
	return c
}
