package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label prefixed to every GPU object created for this provider.
	label string

	// The following fields are GPU allocated resources owned by this provider. They are populated by the renderer backend, not by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized.
	bindGroup *wgpu.BindGroup
	// buffers holds the GPU uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textureViews holds the GPU texture views created for this provider, keyed by binding index.
	textureViews map[int]*wgpu.TextureView

	// The following fields are specific to mesh providers.

	// vertexBuffer is the GPU vertex buffer, or nil if not initialized.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer, or nil if not initialized.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices passed to DrawIndexed.
	indexCount int
	// instanceBuffer holds per-instance model matrices and grows on demand.
	instanceBuffer *wgpu.Buffer
	// instanceCapacity is the number of matrices instanceBuffer can hold.
	instanceCapacity int
}

// BindGroupProvider owns the GPU resources behind one drawable concern: a mesh's vertex, index and
// instance buffers, a material's uniform buffer, texture and bind group, or the per-frame uniform block.
// The renderer backend creates the resources lazily and stores them here; Release frees them.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider. Safe to call more than once.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// Buffer returns the uniform buffer at a binding index.
	// Returns nil if GPU resources have not been initialized.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the GPU texture view for a specific binding, or nil if not set.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// InstanceBuffer returns the per-instance matrix buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the instance buffer or nil
	InstanceBuffer() *wgpu.Buffer

	// InstanceCapacity returns how many instance matrices the instance buffer holds.
	//
	// Returns:
	//   - int: the capacity in instances
	InstanceCapacity() int

	// SetBindGroup stores the bind group, releasing any previous one.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBuffer stores a uniform buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a GPU texture view for a specific binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tv: the texture view to store
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetMesh stores the vertex and index buffers and the index count.
	//
	// Parameters:
	//   - vertexBuffer: the created vertex buffer
	//   - indexBuffer: the created index buffer
	//   - indexCount: the number of indices
	SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int)

	// SetInstanceBuffer stores the instance buffer, releasing any previous one.
	//
	// Parameters:
	//   - buf: the created buffer
	//   - capacity: how many instance matrices buf holds
	SetInstanceBuffer(buf *wgpu.Buffer, capacity int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) InstanceBuffer() *wgpu.Buffer {
	return p.instanceBuffer
}

func (p *bindGroupProvider) InstanceCapacity() int {
	return p.instanceCapacity
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int) {
	p.vertexBuffer = vertexBuffer
	p.indexBuffer = indexBuffer
	p.indexCount = indexCount
}

func (p *bindGroupProvider) SetInstanceBuffer(buf *wgpu.Buffer, capacity int) {
	if p.instanceBuffer != nil && p.instanceBuffer != buf {
		p.instanceBuffer.Release()
	}
	p.instanceBuffer = buf
	p.instanceCapacity = capacity
}

func (p *bindGroupProvider) Release() {
	for _, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
	}
	clear(p.textureViews)
	for _, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
	}
	clear(p.buffers)

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	for _, buf := range []*wgpu.Buffer{p.vertexBuffer, p.indexBuffer, p.instanceBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	p.vertexBuffer, p.indexBuffer, p.instanceBuffer = nil, nil, nil
	p.indexCount, p.instanceCapacity = 0, 0
}
