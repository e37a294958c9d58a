package grove

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGrid = Grid{Columns: 7, Rows: 7, SpacingX: 3.5, SpacingZ: 4, Jitter: 1}

func newPrototype() game_object.GameObject {
	m := model.NewModel(model.WithName("tree"), model.WithGeometry(model.NewPlane(1, 1)))
	return game_object.NewGameObject(
		game_object.WithModel(m),
		game_object.WithPosition(0, 0.5, 0),
		game_object.WithCastShadow(true),
	)
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestPopulateTreesFillsGrid(t *testing.T) {
	s := scene.NewScene("test")
	prototype := newPrototype()

	ids, err := PopulateTrees(s, prototype, testGrid, seeded())
	require.NoError(t, err)

	assert.Len(t, ids, 49)
	assert.Equal(t, 49, s.Count())
	assert.Equal(t, 49, s.CountModel(prototype.Model()))

	seen := make(map[mgl32.Vec3]bool)
	for _, id := range ids {
		tree := s.Get(id)
		require.NotNil(t, tree)
		p := tree.Position()
		assert.False(t, seen[p], "duplicate position %v", p)
		seen[p] = true

		assert.Equal(t, float32(0.5), p.Y())
		assert.True(t, tree.CastShadow())
		assert.Same(t, prototype.Model(), tree.Model())
	}
}

func TestPopulateTreesLayout(t *testing.T) {
	s := scene.NewScene("test")
	ids, err := PopulateTrees(s, newPrototype(), Grid{Columns: 7, Rows: 7, SpacingX: 3.5, SpacingZ: 4}, seeded())
	require.NoError(t, err)

	first := s.Get(ids[0]).Position()
	assert.InDelta(t, 12.25, first.X(), 1e-5)
	assert.InDelta(t, -4, first.Z(), 1e-5)

	last := s.Get(ids[len(ids)-1]).Position()
	assert.InDelta(t, -8.75, last.X(), 1e-5)
	assert.InDelta(t, -28, last.Z(), 1e-5)
}

func TestPopulateTreesJitterIsBounded(t *testing.T) {
	s := scene.NewScene("test")
	ids, err := PopulateTrees(s, newPrototype(), testGrid, seeded())
	require.NoError(t, err)

	i := 0
	for col := range testGrid.Columns {
		for row := range testGrid.Rows {
			p := s.Get(ids[i]).Position()
			i++
			x := -(float32(col) - 3.5) * 3.5
			z := -float32(row+1) * 4
			assert.LessOrEqual(t, abs32(p.X()-x), float32(1))
			assert.LessOrEqual(t, abs32(p.Z()-z), float32(1))
		}
	}
}

func TestPopulateTreesIsDeterministicPerSeed(t *testing.T) {
	a, b := scene.NewScene("a"), scene.NewScene("b")
	idsA, err := PopulateTrees(a, newPrototype(), testGrid, seeded())
	require.NoError(t, err)
	idsB, err := PopulateTrees(b, newPrototype(), testGrid, seeded())
	require.NoError(t, err)

	for i := range idsA {
		assert.Equal(t, a.Get(idsA[i]).Position(), b.Get(idsB[i]).Position())
	}
}

func TestPopulatedTreesMoveIndependently(t *testing.T) {
	s := scene.NewScene("test")
	prototype := newPrototype()
	ids, err := PopulateTrees(s, prototype, Grid{Columns: 2, Rows: 1, SpacingX: 3.5, SpacingZ: 4}, seeded())
	require.NoError(t, err)

	a, b := s.Get(ids[0]), s.Get(ids[1])
	before := b.Position()
	a.SetPosition(mgl32.Vec3{100, 0, 100})

	assert.Equal(t, before, b.Position())
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, prototype.Position())
}

func TestPopulateTreesRejects(t *testing.T) {
	cases := map[string]Grid{
		"no columns":      {Columns: 0, Rows: 7, SpacingX: 3.5, SpacingZ: 4},
		"no rows":         {Columns: 7, Rows: 0, SpacingX: 3.5, SpacingZ: 4},
		"negative jitter": {Columns: 7, Rows: 7, SpacingX: 3.5, SpacingZ: 4, Jitter: -1},
		"jitter too wide": {Columns: 7, Rows: 7, SpacingX: 3.5, SpacingZ: 4, Jitter: 1.75},
	}
	for name, grid := range cases {
		t.Run(name, func(t *testing.T) {
			s := scene.NewScene("test")
			_, err := PopulateTrees(s, newPrototype(), grid, seeded())
			assert.Error(t, err)
			assert.Zero(t, s.Count())
		})
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
