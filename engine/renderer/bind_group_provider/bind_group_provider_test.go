package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("tree mesh")
	assert.Equal(t, "tree mesh", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.VertexBuffer())
	assert.Zero(t, p.IndexCount())
	assert.Zero(t, p.InstanceCapacity())
}

func TestSetMeshAndRelease(t *testing.T) {
	p := NewBindGroupProvider("ground", WithBuffer(0, nil), WithTextureView(1, nil))
	p.SetMesh(nil, nil, 6)
	p.SetInstanceBuffer(nil, 16)
	assert.Equal(t, 6, p.IndexCount())
	assert.Equal(t, 16, p.InstanceCapacity())

	p.Release()
	assert.Zero(t, p.IndexCount())
	assert.Zero(t, p.InstanceCapacity())

	// a second release is a no-op
	p.Release()
}
