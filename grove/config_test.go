package grove

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "#99b6ec", cfg.Background)
	assert.Equal(t, float32(0.8), cfg.Exposure)
	assert.Equal(t, float32(10), cfg.Fog.Near)
	assert.Equal(t, float32(30), cfg.Fog.Far)

	assert.Equal(t, float32(45), cfg.Camera.Fov)
	assert.Equal(t, float32(0.25), cfg.Camera.Near)
	assert.Equal(t, float32(200), cfg.Camera.Far)
	assert.Equal(t, [3]float32{0, 2, 5}, cfg.Camera.Position)
	assert.Equal(t, [3]float32{0, 2, 0}, cfg.Camera.Target)

	assert.Equal(t, ZoomConfig{
		NearFov: 110, FarFov: 45, NearDepth: 3, FarDepth: 5, Duration: 1, Easing: "in-quad",
	}, cfg.Zoom)

	assert.Equal(t, float32(0.3), cfg.Ambient.Intensity)
	require.NotNil(t, cfg.Light.Shadow)
	assert.Equal(t, float32(6), cfg.Light.Shadow.Top)
	assert.Equal(t, float32(-25), cfg.Light.Shadow.Bottom)
	assert.Equal(t, float32(-9), cfg.Light.Shadow.Left)
	assert.Equal(t, float32(26), cfg.Light.Shadow.Right)

	assert.Equal(t, "hsl(120, 30%, 30%)", cfg.Ground.Color)
	assert.Equal(t, 32, cfg.Sun.Segments)

	assert.Equal(t, "lowpolytree.mtl", cfg.Trees.Material)
	assert.Equal(t, float32(1.9), cfg.Trees.Lift)
	assert.Equal(t, 7, cfg.Trees.Columns)
	assert.Equal(t, 7, cfg.Trees.Rows)

	assert.Equal(t, "Finn.png", cfg.Character.Texture)
	assert.Equal(t, float32(0.03), cfg.Character.Scale)
}

func TestDefaultColoursParse(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	sky, want := parsedColor(cfg.Background), common.ColorFromHex(0x99b6ec)
	assert.InDelta(t, want.R, sky.R, 1e-6)
	assert.InDelta(t, want.G, sky.G, 1e-6)
	assert.InDelta(t, want.B, sky.B, 1e-6)
	assert.Equal(t, "#ecec1a", parsedColor(cfg.Sun.Color).Hex())
	assert.Equal(t, common.ColorFromHSL(120, 0.3, 0.3), parsedColor(cfg.Ground.Color))
}

func withLine(t *testing.T, old, replacement string) []byte {
	t.Helper()
	require.Contains(t, string(defaultConfig), old)
	return []byte(strings.Replace(string(defaultConfig), old, replacement, 1))
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string][]byte{
		"bad colour":      withLine(t, `background = "#99b6ec"`, `background = "sky blue"`),
		"unknown easing":  withLine(t, `easing = "in-quad"`, `easing = "bounce"`),
		"zero duration":   withLine(t, `duration = 1.0`, `duration = 0.0`),
		"empty grid":      withLine(t, `columns = 7`, `columns = 0`),
		"jitter too wide": withLine(t, `jitter = 1`, `jitter = 1.75`),
		"clip planes":     withLine(t, `far = 200`, `far = 0.1`),
		"zero exposure":   withLine(t, `exposure = 0.8`, `exposure = 0.0`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseConfigDecodeError(t *testing.T) {
	_, err := ParseConfig([]byte("title = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
