package renderer

import (
	"errors"
	"strings"
	"testing"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/camera"
	"github.com/Carmen-Shannon/oxy-grove/engine/game_object"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/Carmen-Shannon/oxy-grove/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	w, h int
}

func (s fakeSurface) Width() int  { return s.w }
func (s fakeSurface) Height() int { return s.h }

func newHeadless(t *testing.T, w, h int, options ...RendererBuilderOption) (Renderer, *headlessRendererBackend) {
	t.Helper()
	r, err := NewRenderer(BackendTypeHeadless, fakeSurface{w, h}, options...)
	require.NoError(t, err)
	return r, r.(*renderer).backend.(*headlessRendererBackend)
}

func place(m model.Model, x, y, z float32) game_object.GameObject {
	return game_object.NewGameObject(game_object.WithModel(m), game_object.WithPosition(x, y, z))
}

func TestRenderCountsFrames(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	s := scene.NewScene("test")
	cam := camera.NewCamera()

	for range 3 {
		require.NoError(t, r.Render(s, cam))
	}

	assert.Equal(t, uint64(3), r.Stats().Frames)
	assert.Zero(t, r.Stats().Skipped)
	assert.Equal(t, 3, backend.frames)
	assert.Equal(t, 1, backend.configured)
	assert.Equal(t, 640, backend.last.Width)
	assert.Equal(t, 480, backend.last.Height)
}

func TestRenderSkipsZeroSizedSurface(t *testing.T) {
	r, backend := newHeadless(t, 0, 0)
	s := scene.NewScene("test")
	cam := camera.NewCamera()

	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, uint64(1), r.Stats().Skipped)
	assert.Zero(t, backend.frames)
	assert.Zero(t, backend.configured)

	r.Resize(800, 600)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, uint64(1), r.Stats().Frames)
	assert.Equal(t, 1, backend.configured)

	r.Resize(800, 0)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, uint64(2), r.Stats().Skipped)
	assert.Equal(t, 1, backend.configured)
}

func TestRenderBatchesInstancesPerModel(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	ground := model.NewModel(model.WithName("ground"), model.WithGeometry(model.NewPlane(1, 1)))
	tree := model.NewModel(model.WithName("tree"), model.WithGeometry(model.NewPlane(1, 1)))
	s := scene.NewScene("test", scene.WithObjects(
		place(ground, 0, 0, 0),
		place(tree, -1, 0, 0),
		place(tree, 1, 0, 0),
		place(tree, 0, 1, 0),
	))

	require.NoError(t, r.Render(s, camera.NewCamera()))

	draws := backend.last.Draws
	require.Len(t, draws, 2)
	assert.Same(t, ground, draws[0].Model)
	assert.Len(t, draws[0].Instances, 1)
	assert.Same(t, tree, draws[1].Model)
	require.Len(t, draws[1].Instances, 3)
	assert.Equal(t, float32(-1), draws[1].Instances[0].Model.Col(3)[0])
	assert.Equal(t, 2, r.Stats().DrawCalls)
	assert.Equal(t, 4, r.Stats().Instances)
}

func TestRenderCullsOutsideFrustum(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	m := model.NewModel(model.WithName("box"), model.WithGeometry(model.NewPlane(1, 1)))
	s := scene.NewScene("test", scene.WithObjects(
		place(m, 0, 0, 0),
		place(m, 0, 0, 50),   // behind the camera
		place(m, 0, 0, -500), // past the far plane
	))

	require.NoError(t, r.Render(s, camera.NewCamera()))

	require.Len(t, backend.last.Draws, 1)
	assert.Len(t, backend.last.Draws[0].Instances, 1)
	assert.Equal(t, 1, r.Stats().Instances)
}

func TestRenderPacksSceneIntoFrame(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	sky := common.ColorFromHex(0x99b6ec)
	s := scene.NewScene("test",
		scene.WithBackground(sky),
		scene.WithFog(sky, 10, 30),
		scene.WithLights(
			light.NewAmbientLight(light.WithIntensity(0.3)),
			light.NewDirectionalLight(light.WithPosition(7, 16, -10)),
		),
	)
	cam := camera.NewCamera()

	require.NoError(t, r.Render(s, cam))

	frame := backend.last
	assert.Equal(t, sky, frame.Clear)
	assert.Equal(t, [4]float32{10, 30, 1, 0}, frame.Uniform.Fog)
	assert.Equal(t, sky.Linear(), frame.Uniform.FogColor)
	assert.Equal(t, cam.Uniform(), frame.Uniform.Camera)
	assert.Equal(t, float32(1), frame.Uniform.Lights.Ambient[3])
}

func sun(options ...light.LightBuilderOption) light.Light {
	return light.NewDirectionalLight(append([]light.LightBuilderOption{light.WithPosition(0, 10, 0.01)}, options...)...)
}

func TestRenderCollectsShadowCasters(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	ground := model.NewModel(model.WithName("ground"), model.WithGeometry(model.NewPlane(10, 10)))
	tree := model.NewModel(model.WithName("tree"), model.WithGeometry(model.NewPlane(1, 1)))
	bounds := light.ShadowBounds{Left: -5, Right: 5, Bottom: -5, Top: 5, Near: 0.5, Far: 50}
	s := scene.NewScene("test",
		scene.WithLights(sun(light.WithCastsShadows(bounds))),
		scene.WithObjects(
			game_object.NewGameObject(game_object.WithModel(ground), game_object.WithReceiveShadow(true)),
			game_object.NewGameObject(game_object.WithModel(tree), game_object.WithCastShadow(true)),
			game_object.NewGameObject(game_object.WithModel(tree), game_object.WithCastShadow(true), game_object.WithPosition(1, 0, 0)),
			// outside the shadow box
			game_object.NewGameObject(game_object.WithModel(tree), game_object.WithCastShadow(true), game_object.WithPosition(40, 0, 0)),
		),
	)

	require.NoError(t, r.Render(s, camera.NewCamera()))

	frame := backend.last
	require.NotNil(t, frame.Shadow)
	assert.Equal(t, light.ShadowMapResolution, frame.Shadow.Resolution)
	require.Len(t, frame.Shadow.Casters, 1)
	assert.Same(t, tree, frame.Shadow.Casters[0].Model)
	assert.Len(t, frame.Shadow.Casters[0].Instances, 2)
	assert.Equal(t, 2, r.Stats().ShadowCasters)

	assert.Equal(t, float32(1), frame.Uniform.Shadow.Enabled)
	assert.Equal(t, [16]float32(s.Lights()[0].ShadowViewProjection()), frame.Uniform.Shadow.LightVP)

	// only the ground receives
	for _, d := range frame.Draws {
		want := float32(0)
		if d.Model == ground {
			want = 1
		}
		for _, inst := range d.Instances {
			assert.Equal(t, want, inst.Params[0], d.Model.Name())
		}
	}
}

func TestRenderWithoutShadowLight(t *testing.T) {
	r, backend := newHeadless(t, 640, 480)
	tree := model.NewModel(model.WithName("tree"), model.WithGeometry(model.NewPlane(1, 1)))
	s := scene.NewScene("test",
		scene.WithLights(sun(), sun(light.WithCastsShadows(light.DefaultShadowBounds), light.WithEnabled(false))),
		scene.WithObjects(game_object.NewGameObject(game_object.WithModel(tree), game_object.WithCastShadow(true))),
		scene.WithExposure(0.8),
	)

	require.NoError(t, r.Render(s, camera.NewCamera()))

	assert.Nil(t, backend.last.Shadow)
	assert.Zero(t, backend.last.Uniform.Shadow.Enabled)
	assert.Zero(t, r.Stats().ShadowCasters)
	assert.Equal(t, float32(0.8), backend.last.Uniform.Tone[0])
}

func TestRenderCountsOneDrawPerMaterialGroup(t *testing.T) {
	r, _ := newHeadless(t, 640, 480)
	tree := model.NewModel(
		model.WithName("tree"),
		model.WithGeometry(model.NewPlane(1, 1)),
		model.WithGroups(model.Group{Start: 0, Count: 3}, model.Group{Start: 3, Count: 3}),
	)
	s := scene.NewScene("test", scene.WithObjects(place(tree, 0, 0, 0), place(tree, 1, 0, 0)))

	require.NoError(t, r.Render(s, camera.NewCamera()))
	assert.Equal(t, 2, r.Stats().DrawCalls)
	assert.Equal(t, 2, r.Stats().Instances)
}

func TestFrameUniformWithoutFog(t *testing.T) {
	u := NewFrameUniform(camera.NewCamera(), scene.NewScene("test"))
	assert.Equal(t, [4]float32{}, u.Fog)
	assert.Equal(t, float32(1), u.Tone[0])
	assert.Zero(t, u.Shadow.Enabled)
	assert.Equal(t, 352, u.Size())
	assert.Len(t, u.Marshal(), u.Size())
}

func TestForwardShaderSourceDeclaresEverything(t *testing.T) {
	src := ForwardShaderSource()
	for _, want := range []string{
		"struct CameraUniform",
		"struct Lights",
		"struct MaterialUniform",
		"struct ShadowData",
		"struct FrameUniform",
		"fn vs_main",
		"fn vs_shadow",
		"fn fs_main",
		"textureSampleCompare",
		"fn aces_filmic",
	} {
		assert.True(t, strings.Contains(src, want), "missing %q", want)
	}
}

func TestResizeAndPresentModeReconfigure(t *testing.T) {
	r, backend := newHeadless(t, 640, 480, WithPresentMode(PresentModeVSync))
	assert.Equal(t, PresentModeVSync, backend.presentMode)

	r.Resize(1024, 768)
	assert.Equal(t, 2, backend.configured)
	assert.Equal(t, 1024, backend.width)

	r.SetPresentMode(PresentModeUncapped)
	assert.Equal(t, PresentModeUncapped, backend.presentMode)
	assert.Equal(t, 3, backend.configured)

	r.Release()
	assert.True(t, backend.released)
}

func TestWGPUBackendNeedsSurfaceDescriptor(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, fakeSurface{640, 480})
	assert.True(t, errors.Is(err, ErrSurfaceUnsupported))
}

func TestUnknownBackendType(t *testing.T) {
	_, err := NewRenderer(RendererBackendType(99), fakeSurface{640, 480})
	assert.Error(t, err)
}

type skippingBackend struct {
	*headlessRendererBackend
	err error
}

func (b *skippingBackend) DrawFrame(*Frame) error { return b.err }

func TestRenderBackendErrors(t *testing.T) {
	r, headless := newHeadless(t, 640, 480)
	impl := r.(*renderer)
	s := scene.NewScene("test")
	cam := camera.NewCamera()

	impl.backend = &skippingBackend{headless, ErrFrameSkipped}
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, uint64(1), r.Stats().Skipped)

	boom := errors.New("device lost")
	impl.backend = &skippingBackend{headless, boom}
	err := r.Render(s, cam)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, r.Stats().Frames)
}

func TestGPUInstanceMatchesInstanceStride(t *testing.T) {
	var inst GPUInstance
	assert.Equal(t, instanceStride, uint64(unsafe.Sizeof(inst)))

	obj := game_object.NewGameObject(game_object.WithPosition(1, 2, 3), game_object.WithReceiveShadow(true))
	inst = NewGPUInstance(obj)
	assert.Equal(t, obj.ModelMatrix(), inst.Model)
	assert.Equal(t, [4]float32{1, 0, 0, 0}, inst.Params)
}
