package grove

import (
	"log/slog"
	"path"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/loader"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// LoadTreePrototype loads the tree material library, then the tree geometry that uses it.
// On success the first object, with every material group it uses, becomes a shadow-casting prototype whose
// geometry is lifted by cfg.Lift,
// and onReady receives it through the loader's dispatcher exactly once.
// Failures are logged at debug level and leave onReady uncalled.
//
// Parameters:
//   - l: the asset loader
//   - basePath: directory of the tree files inside the loader's file system
//   - cfg: the tree asset names and lift
//   - onReady: receives the prototype
//
// Returns:
//   - loader.Task: the load task
func LoadTreePrototype(l loader.Loader, basePath string, cfg TreesConfig, onReady func(game_object.GameObject)) loader.Task {
	req := loader.Request{
		MaterialPath: path.Join(basePath, cfg.Material),
		GeometryPath: path.Join(basePath, cfg.Geometry),
	}
	return l.LoadAsync(req, func(im *model.ImportedModel) {
		m, err := im.MeshModel(0)
		if err != nil {
			slog.Debug("tree model has no mesh", "component", "grove", "geometry", req.GeometryPath, "error", err)
			return
		}
		m.Geometry().Translate(mgl32.Vec3{0, cfg.Lift, 0})

		onReady(game_object.NewGameObject(
			game_object.WithName("tree"),
			game_object.WithModel(m),
			game_object.WithCastShadow(true),
		))
	})
}

// LoadCharacter loads the character geometry with its standalone texture.
// Every mesh of the file becomes one textured, shadow-casting object with the configured scale and position.
//
// Parameters:
//   - l: the asset loader
//   - basePath: directory of the character files inside the loader's file system
//   - cfg: the character asset names and placement
//   - onReady: receives the character objects
//
// Returns:
//   - loader.Task: the load task
func LoadCharacter(l loader.Loader, basePath string, cfg CharacterConfig, onReady func([]game_object.GameObject)) loader.Task {
	req := loader.Request{
		GeometryPath: path.Join(basePath, cfg.Geometry),
	}
	if cfg.Texture != "" {
		req.TexturePaths = []string{path.Join(basePath, cfg.Texture)}
	}
	return l.LoadAsync(req, func(im *model.ImportedModel) {
		var opts []material.MaterialBuilderOption
		if len(req.TexturePaths) > 0 {
			if tex := im.Textures[req.TexturePaths[0]]; tex != nil {
				opts = append(opts, material.WithDiffuseTexture(tex), material.WithColor(common.White))
			}
		}

		objects := make([]game_object.GameObject, 0, len(im.Meshes))
		for i := range im.Meshes {
			m, err := im.MeshModel(i, opts...)
			if err != nil {
				continue
			}
			p := cfg.Position
			objects = append(objects, game_object.NewGameObject(
				game_object.WithName(m.Name()),
				game_object.WithModel(m),
				game_object.WithPosition(p[0], p[1], p[2]),
				game_object.WithScale(cfg.Scale, cfg.Scale, cfg.Scale),
				game_object.WithCastShadow(true),
			))
		}
		onReady(objects)
	})
}
