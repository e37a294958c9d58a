package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-grove/common"
	"github.com/Carmen-Shannon/oxy-grove/engine/light"
	"github.com/Carmen-Shannon/oxy-grove/engine/model"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-grove/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	frameUniformBinding    = 0
	frameShadowMapBinding  = 1
	frameShadowSampler     = 2
	materialUniformBinding = 0
	materialTextureBinding = 1
	materialSamplerBinding = 2

	instanceStride = uint64(20 * 4)
	minInstances   = 16
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	frameLayout    *wgpu.BindGroupLayout
	materialLayout *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[material.Side]pipeline.Pipeline

	// the depth-only pass binds the frame uniform alone, the shadow map is its attachment
	shadowLayout         *wgpu.BindGroupLayout
	shadowPipelineLayout *wgpu.PipelineLayout
	shadowPipeline       pipeline.Pipeline
	shadowTexture        *wgpu.Texture
	shadowView           *wgpu.TextureView
	shadowSampler        *wgpu.Sampler
	shadowProvider       bind_group_provider.BindGroupProvider
	shadowInstances      map[model.Model]bind_group_provider.BindGroupProvider

	sampler      *wgpu.Sampler
	whiteTexture *wgpu.Texture
	whiteView    *wgpu.TextureView

	frameProvider bind_group_provider.BindGroupProvider
	meshes        map[model.Model]bind_group_provider.BindGroupProvider
	materials     map[material.Material]bind_group_provider.BindGroupProvider
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, ErrSurfaceUnsupported
	}
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		pipelines:   make(map[material.Side]pipeline.Pipeline),
		meshes:      make(map[model.Model]bind_group_provider.BindGroupProvider),
		materials:   make(map[material.Material]bind_group_provider.BindGroupProvider),

		shadowInstances: make(map[model.Model]bind_group_provider.BindGroupProvider),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initSharedResources(); err != nil {
		return nil, err
	}
	return b, nil
}

// initSharedResources creates the bind group layouts, the samplers, the fallback white texture, the shadow map and
// the frame uniform buffer with its two bind groups.
func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var frameUniform GPUFrameUniform
	var materialUniform material.GPUMaterialUniform
	var err error

	b.frameLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    frameUniformBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(frameUniform.Size()),
				},
			},
			{
				Binding:    frameShadowMapBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    frameShadowSampler,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeComparison,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create frame bind group layout: %w", err)
	}

	b.shadowLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    frameUniformBinding,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(frameUniform.Size()),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow bind group layout: %w", err)
	}

	b.materialLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    materialUniformBinding,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(materialUniform.Size()),
				},
			},
			{
				Binding:    materialTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    materialSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create material bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Forward Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.frameLayout, b.materialLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	b.shadowPipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shadow Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.shadowLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow pipeline layout: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Diffuse Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create sampler: %w", err)
	}

	b.shadowSampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	b.whiteTexture, b.whiteView, err = b.uploadTexture("White", 1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		return fmt.Errorf("failed to create fallback texture: %w", err)
	}

	b.shadowTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Shadow Depth Texture",
		Size:          wgpu.Extent3D{Width: light.ShadowMapResolution, Height: light.ShadowMapResolution, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	b.shadowView, err = b.shadowTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uint64(frameUniform.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create frame uniform buffer: %w", err)
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: frameUniformBinding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: frameShadowMapBinding, TextureView: b.shadowView},
			{Binding: frameShadowSampler, Sampler: b.shadowSampler},
		},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("failed to create frame bind group: %w", err)
	}
	b.frameProvider = bind_group_provider.NewBindGroupProvider("Frame", bind_group_provider.WithBuffer(frameUniformBinding, buf))
	b.frameProvider.SetBindGroup(bg)

	// shares the frame uniform buffer, which stays owned by frameProvider
	shadowBG, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Shadow Bind Group",
		Layout: b.shadowLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: frameUniformBinding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow bind group: %w", err)
	}
	b.shadowProvider = bind_group_provider.NewBindGroupProvider("Shadow")
	b.shadowProvider.SetBindGroup(shadowBG)
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if err := b.createAttachments(width, height); err != nil {
		panic(err)
	}
	if len(b.pipelines) == 0 {
		if err := b.createPipelines(); err != nil {
			panic(err)
		}
	}
}

// createAttachments (re)creates the MSAA and depth textures and the cached render pass descriptor.
func (b *wgpuRendererBackendImpl) createAttachments(width, height int) error {
	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result goes to the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			return err
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseAttachments() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.msaaTexture, b.depthTexture} {
		if t != nil {
			t.Release()
		}
	}
	b.msaaTexture, b.msaaTextureView, b.depthTexture, b.depthTextureView = nil, nil, nil, nil
}

// createPipelines builds one forward pipeline per material side, back-face culled and double sided, plus the
// depth-only shadow pipeline.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	source := ForwardShaderSource()
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Forward Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile forward shader: %w", err)
	}
	defer module.Release()

	specs := map[material.Side]pipeline.Pipeline{
		material.SideFront: pipeline.NewPipeline("forward",
			pipeline.WithShaderSource(source, "vs_main", "fs_main"),
			pipeline.WithCullMode(wgpu.CullModeBack),
		),
		material.SideDouble: pipeline.NewPipeline("forward-double-sided",
			pipeline.WithShaderSource(source, "vs_main", "fs_main"),
			pipeline.WithCullMode(wgpu.CullModeNone),
		),
	}
	for side, p := range specs {
		rp, err := b.createRenderPipeline(p, module)
		if err != nil {
			return fmt.Errorf("failed to create pipeline %s: %w", p.PipelineKey(), err)
		}
		p.SetRenderPipeline(rp)
		b.pipelines[side] = p
	}

	// flat leaves and ground planes are open geometry, so both faces cast
	shadow := pipeline.NewPipeline("shadow",
		pipeline.WithShaderSource(source, "vs_shadow", ""),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithDepthBias(2, 1.5),
	)
	rp, err := b.createRenderPipeline(shadow, module)
	if err != nil {
		return fmt.Errorf("failed to create pipeline %s: %w", shadow.PipelineKey(), err)
	}
	shadow.SetRenderPipeline(rp)
	b.shadowPipeline = shadow
	return nil
}

func (b *wgpuRendererBackendImpl) createRenderPipeline(p pipeline.Pipeline, module *wgpu.ShaderModule) (*wgpu.RenderPipeline, error) {
	vertexLayouts := []wgpu.VertexBufferLayout{
		{
			ArrayStride: model.VertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			},
		},
		{
			// one model matrix per instance, one column per location, then the shadow flags
			ArrayStride: instanceStride,
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 4},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 6},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 7},
			},
		},
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	// a pipeline with no fragment stage renders depth only, into the single-sampled shadow map
	layout, depthFormat, samples := b.pipelineLayout, wgpu.TextureFormatDepth24Plus, uint32(b.sampleCount)
	var fragment *wgpu.FragmentState
	if p.FragmentEntryPoint() == "" {
		layout, depthFormat, samples = b.shadowPipelineLayout, wgpu.TextureFormatDepth32Float, 1
	} else {
		fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: p.WriteMask(),
				},
			},
		}
	}

	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    vertexLayouts,
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              depthFormat,
			DepthWriteEnabled:   p.DepthWriteEnabled(),
			DepthCompare:        depthCompare,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) uploadTexture(label string, width, height uint32, pixels []byte) (*wgpu.Texture, *wgpu.TextureView, error) {
	size := wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, err
	}
	return tex, view, nil
}

// meshProvider returns the GPU buffers of a model's geometry, uploading them on first use.
func (b *wgpuRendererBackendImpl) meshProvider(m model.Model) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := b.meshes[m]; ok {
		return p, nil
	}
	g := m.Geometry()
	p := bind_group_provider.NewBindGroupProvider(m.Name())

	vertexData := common.SliceToBytes(g.Vertices)
	indexData := common.SliceToBytes(g.Indices)
	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	p.SetMesh(vb, ib, len(g.Indices))
	b.meshes[m] = p
	return p, nil
}

// ensureInstanceCapacity grows the instance buffer to hold at least n instances, doubling from minInstances.
func (b *wgpuRendererBackendImpl) ensureInstanceCapacity(p bind_group_provider.BindGroupProvider, n int) error {
	if p.InstanceBuffer() != nil && p.InstanceCapacity() >= n {
		return nil
	}
	capacity := max(p.InstanceCapacity(), minInstances)
	for capacity < n {
		capacity *= 2
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Label() + " Instance Buffer",
		Size:  uint64(capacity) * instanceStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	p.SetInstanceBuffer(buf, capacity)
	return nil
}

// materialProvider returns the uniform buffer, texture and bind group of a material, creating them on first use.
func (b *wgpuRendererBackendImpl) materialProvider(mat material.Material) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := b.materials[mat]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(mat.Name())

	u := mat.Uniform()
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: p.Label() + " Material Buffer",
		Size:  uint64(u.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	p.SetBuffer(materialUniformBinding, buf)
	b.queue.WriteBuffer(buf, 0, u.Marshal())

	view := b.whiteView
	if tex := mat.DiffuseTexture(); tex.Decoded() {
		// the view owns the only reference the provider keeps; the texture itself is released with it
		t, v, err := b.uploadTexture(p.Label(), tex.Width, tex.Height, tex.Pixels)
		if err != nil {
			p.Release()
			return nil, err
		}
		t.Release()
		p.SetTextureView(materialTextureBinding, v)
		view = v
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  p.Label() + " Bind Group",
		Layout: b.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: materialUniformBinding, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: materialTextureBinding, TextureView: view},
			{Binding: materialSamplerBinding, Sampler: b.sampler},
		},
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	p.SetBindGroup(bg)
	b.materials[mat] = p
	return p, nil
}

type preparedDraw struct {
	pipeline  pipeline.Pipeline
	mesh      bind_group_provider.BindGroupProvider
	material  bind_group_provider.BindGroupProvider
	start     uint32
	count     uint32
	instances uint32
}

type preparedCaster struct {
	mesh      bind_group_provider.BindGroupProvider
	instances bind_group_provider.BindGroupProvider
	count     uint32
}

// prepare uploads everything the frame needs before the passes begin.
func (b *wgpuRendererBackendImpl) prepare(frame *Frame) ([]preparedDraw, []preparedCaster, error) {
	b.queue.WriteBuffer(b.frameProvider.Buffer(frameUniformBinding), 0, frame.Uniform.Marshal())

	draws := make([]preparedDraw, 0, len(frame.Draws))
	for _, item := range frame.Draws {
		if len(item.Instances) == 0 || len(item.Model.Geometry().Indices) == 0 {
			continue
		}
		mesh, err := b.meshProvider(item.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %s: %w", item.Model.Name(), err)
		}
		if err := b.writeInstances(mesh, item.Instances); err != nil {
			return nil, nil, fmt.Errorf("mesh %s instances: %w", item.Model.Name(), err)
		}

		for _, g := range item.Model.Groups() {
			matProvider, err := b.materialProvider(g.Material)
			if err != nil {
				return nil, nil, fmt.Errorf("material %s: %w", g.Material.Name(), err)
			}
			draws = append(draws, preparedDraw{
				pipeline:  b.pipelines[g.Material.Side()],
				mesh:      mesh,
				material:  matProvider,
				start:     g.Start,
				count:     g.Count,
				instances: uint32(len(item.Instances)),
			})
		}
	}

	if frame.Shadow == nil {
		return draws, nil, nil
	}
	casters := make([]preparedCaster, 0, len(frame.Shadow.Casters))
	for _, item := range frame.Shadow.Casters {
		if len(item.Instances) == 0 || len(item.Model.Geometry().Indices) == 0 {
			continue
		}
		mesh, err := b.meshProvider(item.Model)
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %s: %w", item.Model.Name(), err)
		}
		inst, ok := b.shadowInstances[item.Model]
		if !ok {
			inst = bind_group_provider.NewBindGroupProvider(item.Model.Name() + " Shadow")
			b.shadowInstances[item.Model] = inst
		}
		if err := b.writeInstances(inst, item.Instances); err != nil {
			return nil, nil, fmt.Errorf("mesh %s shadow instances: %w", item.Model.Name(), err)
		}
		casters = append(casters, preparedCaster{mesh: mesh, instances: inst, count: uint32(len(item.Instances))})
	}
	return draws, casters, nil
}

func (b *wgpuRendererBackendImpl) writeInstances(p bind_group_provider.BindGroupProvider, instances []GPUInstance) error {
	if err := b.ensureInstanceCapacity(p, len(instances)); err != nil {
		return err
	}
	b.queue.WriteBuffer(p.InstanceBuffer(), 0, common.SliceToBytes(instances))
	return nil
}

// drawShadows clears the shadow map and renders the casters into it.
func (b *wgpuRendererBackendImpl) drawShadows(encoder *wgpu.CommandEncoder, casters []preparedCaster) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(b.shadowPipeline.RenderPipeline())
	pass.SetBindGroup(0, b.shadowProvider.BindGroup(), nil)
	for _, c := range casters {
		pass.SetVertexBuffer(0, c.mesh.VertexBuffer(), 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, c.instances.InstanceBuffer(), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(c.mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(c.mesh.IndexCount()), c.count, 0, 0, 0)
	}
	pass.End()
	pass.Release()
}

func (b *wgpuRendererBackendImpl) DrawFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured: %w", ErrFrameSkipped)
	}

	draws, casters, err := b.prepare(frame)
	if err != nil {
		return err
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrameSkipped, err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if frame.Shadow != nil {
		b.drawShadows(encoder, casters)
	}

	clear := frame.Clear.Linear()
	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	attachment.ClearValue = wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: float64(clear[3])}
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	for _, d := range draws {
		pass.SetPipeline(d.pipeline.RenderPipeline())
		pass.SetBindGroup(0, b.frameProvider.BindGroup(), nil)
		pass.SetBindGroup(1, d.material.BindGroup(), nil)
		pass.SetVertexBuffer(0, d.mesh.VertexBuffer(), 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, d.mesh.InstanceBuffer(), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(d.count, d.instances, d.start, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.meshes {
		p.Release()
	}
	clear(b.meshes)
	for _, p := range b.materials {
		p.Release()
	}
	clear(b.materials)
	for _, p := range b.shadowInstances {
		p.Release()
	}
	clear(b.shadowInstances)
	if b.shadowProvider != nil {
		b.shadowProvider.Release()
	}
	if b.frameProvider != nil {
		b.frameProvider.Release()
	}
	for _, p := range b.pipelines {
		p.Release()
	}
	clear(b.pipelines)
	if b.shadowPipeline != nil {
		b.shadowPipeline.Release()
	}
	b.releaseAttachments()

	if b.shadowView != nil {
		b.shadowView.Release()
	}
	if b.shadowTexture != nil {
		b.shadowTexture.Release()
	}
	if b.shadowSampler != nil {
		b.shadowSampler.Release()
	}
	if b.shadowPipelineLayout != nil {
		b.shadowPipelineLayout.Release()
	}
	if b.shadowLayout != nil {
		b.shadowLayout.Release()
	}

	if b.whiteView != nil {
		b.whiteView.Release()
	}
	if b.whiteTexture != nil {
		b.whiteTexture.Release()
	}
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
	}
	if b.materialLayout != nil {
		b.materialLayout.Release()
	}
	if b.frameLayout != nil {
		b.frameLayout.Release()
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}
