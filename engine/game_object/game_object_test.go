package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()
	assert.True(t, obj.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Scale())
	assert.Equal(t, mgl32.Ident4(), obj.ModelMatrix())
	assert.Zero(t, obj.ID())
}

func TestCloneSharesModelNotTransform(t *testing.T) {
	mdl := model.NewModel(model.WithGeometry(model.NewPlane(1, 1)))
	proto := NewGameObject(WithModel(mdl), WithCastShadow(true), WithPosition(0, 1, 0))
	proto.SetID(7)

	clone := proto.Clone()
	clone.SetPosition(mgl32.Vec3{3, 0, -4})
	clone.SetScale(mgl32.Vec3{2, 2, 2})

	assert.Same(t, mdl, clone.Model())
	assert.True(t, clone.CastShadow())
	assert.Zero(t, clone.ID())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, proto.Position())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, proto.Scale())
	assert.Equal(t, mgl32.Vec3{3, 0, -4}, clone.Position())
}

func TestModelMatrixUsesTransform(t *testing.T) {
	obj := NewGameObject(WithPosition(0, -0.01, 2), WithScale(0.03, 0.03, 0.03))
	p := obj.ModelMatrix().Mul4x1(mgl32.Vec4{100, 0, 0, 1})
	assert.InDelta(t, 3, p.X(), 1e-5)
	assert.InDelta(t, -0.01, p.Y(), 1e-6)
	assert.InDelta(t, 2, p.Z(), 1e-6)
}
