package grove

import (
	"log/slog"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-grove/engine/loader"
)

// SceneContextBuilderOption is a functional option applied to a scene context during NewSceneContext.
type SceneContextBuilderOption func(*sceneContextImpl)

// WithConfig replaces the compiled-in configuration. The configuration is validated by NewSceneContext.
//
// Parameters:
//   - cfg: the scene configuration
//
// Returns:
//   - SceneContextBuilderOption: a function that applies the configuration
func WithConfig(cfg Config) SceneContextBuilderOption {
	return func(c *sceneContextImpl) {
		c.config = cfg
		c.hasConfig = true
	}
}

// WithRand sets the random source of the tree jitter.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - SceneContextBuilderOption: a function that applies the random source
func WithRand(rng *rand.Rand) SceneContextBuilderOption {
	return func(c *sceneContextImpl) {
		c.rng = rng
	}
}

// WithLoader replaces the default loader, which reads the asset file system and dispatches through the engine.
//
// Parameters:
//   - l: the asset loader
//
// Returns:
//   - SceneContextBuilderOption: a function that applies the loader
func WithLoader(l loader.Loader) SceneContextBuilderOption {
	return func(c *sceneContextImpl) {
		c.loader = l
	}
}

// WithLogger sets the logger of the scene context and its default loader.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - SceneContextBuilderOption: a function that applies the logger
func WithLogger(logger *slog.Logger) SceneContextBuilderOption {
	return func(c *sceneContextImpl) {
		c.logger = logger
	}
}
