package grove

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-grove/engine"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/loader"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer"
	"github.com/Carmen-Shannon/oxy-grove/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treeMTL = `newmtl Leaves
Kd 0.2 0.6 0.2
`

const treeOBJ = `mtllib lowpolytree.mtl
o Tree
usemtl Leaves
v -1 0 0
v 1 0 0
v 0 2 0
f 1 2 3
`

const finnOBJ = `o Finn
v -1 0 0
v 1 0 0
v 0 2 0
vt 0 0
vt 1 0
vt 0.5 1
f 1/1 2/2 3/3
`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func assetFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"lowpolytree.mtl": {Data: []byte(treeMTL)},
		"lowpolytree.obj": {Data: []byte(treeOBJ)},
		"Finn.obj":        {Data: []byte(finnOBJ)},
		"Finn.png":        {Data: pngBytes(t)},
	}
}

// gateFS blocks every Open until gate is closed.
type gateFS struct {
	fs.FS
	gate chan struct{}
}

func (g gateFS) Open(name string) (fs.File, error) {
	<-g.gate
	return g.FS.Open(name)
}

type harness struct {
	engine engine.Engine
	window *window.Headless
	grove  SceneContext
}

func newHarness(t *testing.T, fsys fs.FS) *harness {
	t.Helper()
	win := window.NewHeadless(window.WithWidth(1280), window.WithHeight(720))
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, win)
	require.NoError(t, err)
	e, err := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(r))
	require.NoError(t, err)
	g, err := NewSceneContext(e, fsys, WithRand(seeded()))
	require.NoError(t, err)
	return &harness{engine: e, window: win, grove: g}
}

func waitFor(t *testing.T, tasks []loader.Task) {
	t.Helper()
	for _, task := range tasks {
		select {
		case <-task.Done():
		case <-time.After(5 * time.Second):
			t.Fatalf("load of %s did not finish", task.Request().GeometryPath)
		}
	}
}

func TestNewSceneContextBuildsScene(t *testing.T) {
	h := newHarness(t, assetFS(t))
	cfg := h.grove.Config()

	s := h.engine.Scene()
	assert.Equal(t, 2, s.Count())
	assert.Len(t, s.Lights(), 2)
	assert.Equal(t, parsedColor(cfg.Background), s.Background())
	assert.Equal(t, float32(0.8), s.Exposure())
	require.NotNil(t, s.Fog())
	assert.Equal(t, float32(10), s.Fog().Near)
	assert.Equal(t, float32(30), s.Fog().Far)

	cam := h.engine.Camera()
	assert.Equal(t, float32(45), cam.Fov())
	assert.Equal(t, float32(0.25), cam.Near())
	assert.Equal(t, float32(200), cam.Far())
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, cam.Position())
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, cam.Target())
	assert.InDelta(t, 1280.0/720.0, cam.Aspect(), 1e-6)

	assert.True(t, h.grove.HintVisible())
	assert.Equal(t, "oxy-grove (click to zoom)", h.window.Title())
	assert.Equal(t, ZoomFar, h.grove.Zoom().State())
}

func TestFirstClickHidesHintAndZooms(t *testing.T) {
	h := newHarness(t, assetFS(t))
	z := h.grove.Zoom()

	h.window.Click(window.MouseButtonLeft, 640, 360)
	require.NoError(t, h.engine.Step(0.25))
	assert.False(t, h.grove.HintVisible())
	assert.Equal(t, "oxy-grove", h.window.Title())
	assert.True(t, z.Transitioning())

	// dropped: a transition is running
	h.window.Click(window.MouseButtonLeft, 640, 360)
	require.NoError(t, h.engine.Step(0.25))
	require.NoError(t, h.engine.Step(0.25))
	assert.Equal(t, ZoomFar, z.State())

	require.NoError(t, h.engine.Step(0.25))
	assert.Equal(t, ZoomNear, z.State())
	assert.False(t, z.Transitioning())
	assert.InDelta(t, 110, h.engine.Camera().Fov(), 1e-6)
	assert.InDelta(t, 3, h.engine.Camera().Position().Z(), 1e-6)
}

func TestRightClickDoesNotZoom(t *testing.T) {
	h := newHarness(t, assetFS(t))

	h.window.Click(window.MouseButtonRight, 10, 10)
	require.NoError(t, h.engine.Step(0.1))

	assert.False(t, h.grove.Zoom().Transitioning())
	assert.True(t, h.grove.HintVisible())
}

func TestResizeLeavesZoomUntouched(t *testing.T) {
	h := newHarness(t, assetFS(t))

	h.window.Resize(800, 400)
	require.NoError(t, h.engine.Step(0.016))

	cam := h.engine.Camera()
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-6)
	assert.Equal(t, float32(45), cam.Fov())
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, cam.Position())
}

func TestLoadAssetsPopulatesScene(t *testing.T) {
	h := newHarness(t, assetFS(t))

	waitFor(t, h.grove.LoadAssets())
	require.NoError(t, h.engine.Step(0.016))

	assert.Equal(t, 49, h.grove.TreeCount())
	assert.Equal(t, 2+49+1, h.engine.Scene().Count())

	var finn, tree int
	for _, obj := range h.engine.Scene().Objects() {
		switch obj.Model().Name() {
		case "Finn":
			finn++
			assert.Equal(t, mgl32.Vec3{0.03, 0.03, 0.03}, obj.Scale())
			assert.True(t, obj.Model().Material().DiffuseTexture().Decoded())
		case "Tree":
			tree++
			assert.True(t, obj.CastShadow())
			lo, _ := obj.Model().Geometry().Bounds()
			assert.InDelta(t, 1.9, lo.Y(), 1e-5)
		}
	}
	assert.Equal(t, 1, finn)
	assert.Equal(t, 49, tree)
}

const barkAndLeavesMTL = `newmtl Bark
Kd 0.4 0.25 0.1
newmtl Leaves
Kd 0.2 0.6 0.2
`

const barkAndLeavesOBJ = `mtllib lowpolytree.mtl
o Tree
v -1 0 0
v 1 0 0
v 0 2 0
v -1 2 0
v 1 2 0
v 0 4 0
usemtl Bark
f 1 2 3
usemtl Leaves
f 4 5 6
`

func TestTreePrototypeKeepsEveryMaterialGroup(t *testing.T) {
	fsys := assetFS(t)
	fsys["lowpolytree.mtl"] = &fstest.MapFile{Data: []byte(barkAndLeavesMTL)}
	fsys["lowpolytree.obj"] = &fstest.MapFile{Data: []byte(barkAndLeavesOBJ)}
	l := loader.NewLoader(loader.BackendTypeOBJ, fsys)
	defer l.Release()

	got := make(chan game_object.GameObject, 1)
	task := LoadTreePrototype(l, ".", TreesConfig{Material: "lowpolytree.mtl", Geometry: "lowpolytree.obj", Lift: 1},
		func(obj game_object.GameObject) { got <- obj })
	waitFor(t, []loader.Task{task})

	var proto game_object.GameObject
	select {
	case proto = <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("prototype was not delivered")
	}

	m := proto.Model()
	assert.Equal(t, 2, m.Geometry().TriangleCount())
	groups := m.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Bark", groups[0].Material.Name())
	assert.Equal(t, "Leaves", groups[1].Material.Name())
	lo, hi := m.Geometry().Bounds()
	assert.InDelta(t, 1, lo.Y(), 1e-6)
	assert.InDelta(t, 5, hi.Y(), 1e-6)
}

func TestStalledLoadKeepsFrameLoopRendering(t *testing.T) {
	gate := make(chan struct{})
	h := newHarness(t, gateFS{FS: assetFS(t), gate: gate})
	tasks := h.grove.LoadAssets()

	for range 10 {
		require.NoError(t, h.engine.Step(0.016))
	}
	assert.Equal(t, uint64(10), h.engine.Renderer().Stats().Frames)
	assert.Zero(t, h.grove.TreeCount())
	assert.Equal(t, 2, h.engine.Scene().Count())
	assert.False(t, tasks[0].Stage().Terminal())

	close(gate)
	waitFor(t, tasks)
	require.NoError(t, h.engine.Step(0.016))
	assert.Equal(t, 49, h.grove.TreeCount())
}

func TestMissingAssetsAreSwallowed(t *testing.T) {
	h := newHarness(t, fstest.MapFS{})

	tasks := h.grove.LoadAssets()
	waitFor(t, tasks)
	require.NoError(t, h.engine.Step(0.016))

	assert.Zero(t, h.grove.TreeCount())
	assert.Equal(t, 2, h.engine.Scene().Count())
	for _, task := range tasks {
		assert.Equal(t, loader.StageFailed, task.Stage())
		assert.Error(t, task.Err())
	}
}

func TestSceneContextPopulateTrees(t *testing.T) {
	h := newHarness(t, assetFS(t))

	require.NoError(t, h.grove.PopulateTrees(newPrototype(), 7, 7))
	assert.Equal(t, 49, h.grove.TreeCount())
	assert.Equal(t, 51, h.engine.Scene().Count())

	assert.Error(t, h.grove.PopulateTrees(newPrototype(), 0, 7))
	assert.Equal(t, 49, h.grove.TreeCount())
}

func TestNewSceneContextRejectsInvalidConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	cfg.Trees.Jitter = 5

	win := window.NewHeadless()
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, win)
	require.NoError(t, err)
	e, err := engine.NewEngine(engine.WithWindow(win), engine.WithRenderer(r))
	require.NoError(t, err)

	_, err = NewSceneContext(e, assetFS(t), WithConfig(cfg))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReleaseFailsLaterLoads(t *testing.T) {
	h := newHarness(t, assetFS(t))
	h.grove.Release()

	tasks := h.grove.LoadAssets()
	waitFor(t, tasks)
	require.NoError(t, h.engine.Step(0.016))

	assert.Zero(t, h.grove.TreeCount())
	for _, task := range tasks {
		assert.ErrorIs(t, task.Err(), loader.ErrLoaderReleased)
	}
}
