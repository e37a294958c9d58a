package grove

import (
	"fmt"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Grid is the layout used by PopulateTrees.
type Grid struct {
	Columns  int
	Rows     int
	SpacingX float32
	SpacingZ float32
	Jitter   float32 // maximum random offset on each axis
}

func checkJitter(spacingX, spacingZ, jitter float32) error {
	limit := min(spacingX, spacingZ) / 2
	if jitter < 0 || jitter >= limit {
		return fmt.Errorf("jitter %v must be in [0, %v)", jitter, limit)
	}
	return nil
}

// PopulateTrees adds one clone of prototype per grid cell to s.
// Columns are centered on x = 0 and rows march away from the camera starting one row in:
// x = -(col - columns/2) * SpacingX, z = -(row + 1) * SpacingZ, each offset by a uniform
// random amount in [-Jitter, Jitter). Clones share the prototype's model and keep its height.
//
// Parameters:
//   - s: the scene to add to
//   - prototype: the object to clone
//   - grid: the layout
//   - rng: the jitter source
//
// Returns:
//   - []uint64: the scene IDs of the clones, row-major per column
//   - error: error if the grid is empty or the jitter could make neighbours overlap
func PopulateTrees(s scene.Scene, prototype game_object.GameObject, grid Grid, rng *rand.Rand) ([]uint64, error) {
	if grid.Columns <= 0 || grid.Rows <= 0 {
		return nil, fmt.Errorf("tree grid %dx%d is empty", grid.Columns, grid.Rows)
	}
	if err := checkJitter(grid.SpacingX, grid.SpacingZ, grid.Jitter); err != nil {
		return nil, err
	}

	jitter := func() float32 {
		return (rng.Float32()*2 - 1) * grid.Jitter
	}

	y := prototype.Position().Y()
	half := float32(grid.Columns) / 2
	ids := make([]uint64, 0, grid.Columns*grid.Rows)
	for col := range grid.Columns {
		for row := range grid.Rows {
			tree := prototype.Clone()
			tree.SetPosition(mgl32.Vec3{
				-(float32(col)-half)*grid.SpacingX + jitter(),
				y,
				-float32(row+1)*grid.SpacingZ + jitter(),
			})
			id := s.Add(tree)
			if id == 0 {
				return ids, fmt.Errorf("scene rejected tree %d", len(ids))
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
