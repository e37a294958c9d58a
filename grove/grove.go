package grove

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/engine"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/loader"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/Carmen-Shannon/oxy-grove/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// sceneContextImpl is the implementation of the SceneContext interface.
type sceneContextImpl struct {
	mu *sync.Mutex

	engine    engine.Engine
	config    Config
	hasConfig bool
	loader    loader.Loader
	zoom      Zoom
	rng       *rand.Rand
	logger    *slog.Logger

	hintVisible bool
	trees       []uint64
	character   []uint64
}

// SceneContext is the grove demo bound to an engine: the scene contents, the zoom and the asset loads.
// All of its state is mutated on the engine's frame loop.
type SceneContext interface {
	// Config returns the configuration the scene was built from.
	//
	// Returns:
	//   - Config: the scene configuration
	Config() Config

	// Zoom returns the click-driven zoom.
	//
	// Returns:
	//   - Zoom: the zoom state machine
	Zoom() Zoom

	// LoadAssets starts the tree and character loads in parallel.
	// The trees are populated and the character added on the frame loop once their loads finish.
	//
	// Returns:
	//   - []loader.Task: the tree task followed by the character task
	LoadAssets() []loader.Task

	// PopulateTrees lays out clones of prototype on the configured grid.
	//
	// Parameters:
	//   - prototype: the tree to clone
	//   - gridWidth: number of columns
	//   - rowCount: number of rows
	//
	// Returns:
	//   - error: error if the grid is rejected
	PopulateTrees(prototype game_object.GameObject, gridWidth, rowCount int) error

	// TreeCount returns the number of trees in the scene.
	//
	// Returns:
	//   - int: the tree count
	TreeCount() int

	// HintVisible reports whether the click hint is still shown in the window title.
	//
	// Returns:
	//   - bool: true until the first click
	HintVisible() bool

	// Release stops the asset loader's workers. Loads started afterwards fail.
	Release()
}

var _ SceneContext = &sceneContextImpl{}

// NewSceneContext configures the engine's camera and scene for the grove and wires the window click to the zoom.
// Assets are not loaded until LoadAssets.
//
// Parameters:
//   - e: the engine to populate
//   - fsys: the asset file system
//   - options: functional options to configure the context
//
// Returns:
//   - SceneContext: the grove
//   - error: error if the configuration is invalid
func NewSceneContext(e engine.Engine, fsys fs.FS, options ...SceneContextBuilderOption) (SceneContext, error) {
	c := &sceneContextImpl{
		mu:     &sync.Mutex{},
		engine: e,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = c.logger.With("component", "grove")

	if !c.hasConfig {
		cfg, err := DefaultConfig()
		if err != nil {
			return nil, err
		}
		c.config = cfg
	} else if err := c.config.Validate(); err != nil {
		return nil, err
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.loader == nil {
		c.loader = loader.NewLoader(loader.BackendTypeOBJ, fsys,
			loader.WithDispatcher(e.Post),
			loader.WithLogger(c.logger),
		)
	}

	c.setupCamera()
	c.setupScene(e.Scene())

	zoom, err := NewZoom(e.Camera(), e.Tweens(), c.config.Zoom)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoom: %w", err)
	}
	c.zoom = zoom

	w := e.Window()
	if c.config.Hint != "" {
		c.hintVisible = true
		w.SetTitle(fmt.Sprintf("%s (%s)", c.config.Title, c.config.Hint))
	} else {
		w.SetTitle(c.config.Title)
	}
	w.SetClickCallback(func(button window.MouseButton, x, y float32) {
		if button == window.MouseButtonLeft {
			c.onClick()
		}
	})
	return c, nil
}

func (c *sceneContextImpl) setupCamera() {
	cc := c.config.Camera
	cam := c.engine.Camera()
	cam.SetFov(cc.Fov)
	cam.SetNear(cc.Near)
	cam.SetFar(cc.Far)
	cam.SetPosition(mgl32.Vec3(cc.Position))
	cam.SetTarget(mgl32.Vec3(cc.Target))
	cam.UpdateProjection()
}

func (c *sceneContextImpl) setupScene(s scene.Scene) {
	cfg := c.config

	s.SetBackground(parsedColor(cfg.Background))
	s.SetExposure(cfg.Exposure)
	s.SetFog(&scene.Fog{Color: parsedColor(cfg.Fog.Color), Near: cfg.Fog.Near, Far: cfg.Fog.Far})

	s.AddLight(light.NewAmbientLight(
		light.WithColor(parsedColor(cfg.Ambient.Color)),
		light.WithIntensity(cfg.Ambient.Intensity),
	))
	lp := cfg.Light.Position
	sunLight := []light.LightBuilderOption{
		light.WithPosition(lp[0], lp[1], lp[2]),
		light.WithColor(parsedColor(cfg.Light.Color)),
		light.WithIntensity(cfg.Light.Intensity),
	}
	if cfg.Light.Shadow != nil {
		sunLight = append(sunLight, light.WithCastsShadows(*cfg.Light.Shadow))
	}
	s.AddLight(light.NewDirectionalLight(sunLight...))

	ground := model.NewModel(
		model.WithName("ground"),
		model.WithGeometry(model.NewPlane(cfg.Ground.Width, cfg.Ground.Depth)),
		model.WithMaterial(material.NewMaterial(
			material.WithName("ground"),
			material.WithColor(parsedColor(cfg.Ground.Color)),
			material.WithSide(material.SideDouble),
		)),
	)
	s.Add(game_object.NewGameObject(
		game_object.WithName("ground"),
		game_object.WithModel(ground),
		game_object.WithRotation(-math.Pi/2, 0, 0),
		game_object.WithReceiveShadow(true),
	))

	sp := cfg.Sun.Position
	sun := model.NewModel(
		model.WithName("sun"),
		model.WithGeometry(model.NewCircle(cfg.Sun.Radius, cfg.Sun.Segments)),
		model.WithMaterial(material.NewMaterial(
			material.WithName("sun"),
			material.WithColor(parsedColor(cfg.Sun.Color)),
			material.WithShading(material.ShadingBasic),
		)),
	)
	s.Add(game_object.NewGameObject(
		game_object.WithName("sun"),
		game_object.WithModel(sun),
		game_object.WithPosition(sp[0], sp[1], sp[2]),
	))
}

// onClick runs on the frame loop from the window's click callback.
func (c *sceneContextImpl) onClick() {
	c.mu.Lock()
	if c.hintVisible {
		c.hintVisible = false
		c.engine.Window().SetTitle(c.config.Title)
	}
	c.mu.Unlock()

	if !c.zoom.Toggle() {
		c.logger.Debug("click ignored during zoom transition")
	}
}

func (c *sceneContextImpl) Config() Config {
	return c.config
}

func (c *sceneContextImpl) Zoom() Zoom {
	return c.zoom
}

func (c *sceneContextImpl) LoadAssets() []loader.Task {
	root := c.config.AssetRoot
	trees := LoadTreePrototype(c.loader, root, c.config.Trees, func(prototype game_object.GameObject) {
		t := c.config.Trees
		if err := c.PopulateTrees(prototype, t.Columns, t.Rows); err != nil {
			c.logger.Debug("failed to populate trees", "error", err)
		}
	})
	character := LoadCharacter(c.loader, root, c.config.Character, func(objects []game_object.GameObject) {
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, obj := range objects {
			if id := c.engine.Scene().Add(obj); id != 0 {
				c.character = append(c.character, id)
			}
		}
	})
	return []loader.Task{trees, character}
}

func (c *sceneContextImpl) PopulateTrees(prototype game_object.GameObject, gridWidth, rowCount int) error {
	t := c.config.Trees
	ids, err := PopulateTrees(c.engine.Scene(), prototype, Grid{
		Columns:  gridWidth,
		Rows:     rowCount,
		SpacingX: t.SpacingX,
		SpacingZ: t.SpacingZ,
		Jitter:   t.Jitter,
	}, c.rng)

	c.mu.Lock()
	c.trees = append(c.trees, ids...)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.logger.Info("trees populated", "count", len(ids))
	return nil
}

func (c *sceneContextImpl) TreeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.trees)
}

func (c *sceneContextImpl) HintVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hintVisible
}

func (c *sceneContextImpl) Release() {
	c.loader.Release()
}
