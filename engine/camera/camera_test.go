package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraOptions(t *testing.T) {
	c := NewCamera(
		WithFov(45),
		WithAspect(16.0/9.0),
		WithClipPlanes(0.25, 200),
		WithPosition(0, 2, 5),
		WithTarget(0, 2, 0),
	)

	assert.Equal(t, float32(45), c.Fov())
	assert.Equal(t, float32(16.0/9.0), c.Aspect())
	assert.Equal(t, float32(0.25), c.Near())
	assert.Equal(t, float32(200), c.Far())
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, c.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestViewMatrixFollowsPosition(t *testing.T) {
	c := NewCamera(WithPosition(0, 2, 5), WithTarget(0, 2, 0))

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 2, 0, 1})
	assert.InDelta(t, -5, p.Z(), 1e-5)

	c.SetPosition(mgl32.Vec3{0, 2, 3})
	p = c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 2, 0, 1})
	assert.InDelta(t, -3, p.Z(), 1e-5)
}

func TestUpdateProjectionAppliesFov(t *testing.T) {
	c := NewCamera(WithFov(45))
	before := c.ProjectionMatrix()

	c.SetFov(110)
	c.UpdateProjection()
	after := c.ProjectionMatrix()

	assert.NotEqual(t, before, after)
	// a wider fov shrinks the vertical focal length
	assert.Less(t, after[5], before[5])
}

func TestProjectionRefreshesLazily(t *testing.T) {
	c := NewCamera(WithAspect(1))
	c.SetAspect(2)
	m := c.ProjectionMatrix()
	assert.InDelta(t, m[5]/2, m[0], 1e-6)
}

func TestUniformCarriesPosition(t *testing.T) {
	c := NewCamera(WithPosition(1, 2, 3))
	u := c.Uniform()
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
}

func TestOrbitControllerDisabledIgnoresInput(t *testing.T) {
	c := NewCamera(WithPosition(0, 2, 5), WithTarget(0, 2, 0))
	ctrl := NewOrbitController()
	require.False(t, ctrl.Enabled())

	ctrl.Rotate(100, 0)
	ctrl.Zoom(3)
	ctrl.Update(c)
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, c.Position())

	// input queued while disabled is discarded, not replayed later
	ctrl.SetEnabled(true)
	ctrl.Update(c)
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, c.Position())
}

func TestOrbitControllerZoomKeepsDirection(t *testing.T) {
	c := NewCamera(WithPosition(0, 2, 5), WithTarget(0, 2, 0))
	ctrl := NewOrbitController(WithEnabled(true), WithZoomSpeed(1))

	ctrl.Zoom(2)
	ctrl.Update(c)

	p := c.Position()
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 2, p.Y(), 1e-5)
	assert.InDelta(t, 3, p.Z(), 1e-5)
}

func TestOrbitControllerClampsRadius(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 5))
	ctrl := NewOrbitController(WithEnabled(true), WithZoomSpeed(1), WithRadiusBounds(2, 10))

	ctrl.Zoom(100)
	ctrl.Update(c)
	assert.InDelta(t, 2, c.Position().Len(), 1e-5)

	ctrl.Zoom(-100)
	ctrl.Update(c)
	assert.InDelta(t, 10, c.Position().Len(), 1e-5)
}

func TestOrbitControllerRotatePreservesRadius(t *testing.T) {
	c := NewCamera(WithPosition(0, 2, 5), WithTarget(0, 2, 0))
	ctrl := NewOrbitController(WithEnabled(true), WithMouseSensitivity(0.01))

	ctrl.Rotate(50, 20)
	ctrl.Update(c)

	offset := c.Position().Sub(c.Target())
	assert.InDelta(t, 5, offset.Len(), 1e-4)
	assert.NotEqual(t, mgl32.Vec3{0, 2, 5}, c.Position())
}
