// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu renders the fractal on the gogpu/wgpu HAL.
//
// A Renderer is both the fractal.Program and the fractal.Device of a viewer:
// it owns the compiled shader, the render pipeline, the full-screen quad
// buffers and the uniform buffer, and records one render pass per frame
// into the surface view the host hands it with SetTarget.
package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/shader"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNoHAL is returned by FromProvider when the provider does not
	// expose HAL device and queue.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL types")

	// ErrFrame wraps failures while encoding or submitting a frame.
	ErrFrame = errors.New("wgpu: frame failed")
)

const (
	quadVertexStride = 8 // vec2<f32>
	depthFormat      = gputypes.TextureFormatDepth24PlusStencil8
	fenceTimeout     = 5 * time.Second
)

// FromProvider extracts the HAL device and queue from a GPU context provider
// such as the one a gogpu App exposes.
func FromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}

// Renderer implements fractal.Program and fractal.Device.
//
// If the shader fails to compile or the pipeline cannot be created the
// renderer stays unlinked: frames still clear the target, nothing is drawn.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	module *shader.Module
	block  *shader.Block
	linked bool

	shaderModule  hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	vertBuf       hal.Buffer
	idxBuf        hal.Buffer
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup

	depthTex  hal.Texture
	depthView hal.TextureView
	width     uint32
	height    uint32

	target  hal.TextureView
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
	bound   bool
	err     error
}

var (
	_ fractal.Program = (*Renderer)(nil)
	_ fractal.Device  = (*Renderer)(nil)
)

// NewRenderer compiles src and creates the pipeline and buffers on device.
// Failures are logged and leave the renderer unlinked; a nil device gives a
// renderer on which every call is a no-op.
func NewRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, src string) *Renderer {
	r := &Renderer{device: device, queue: queue, format: format}
	if device == nil || queue == nil {
		return r
	}

	mod, err := shader.Compile(src)
	if err != nil {
		fractal.Logger().Warn("wgpu: shader compile failed", slog.Any("error", err))
		return r
	}
	r.module = mod
	r.block = shader.NewBlock(mod.Layout)

	if err := r.createPipeline(); err != nil {
		fractal.Logger().Warn("wgpu: pipeline creation failed", slog.Any("error", err))
		r.destroyPipeline()
		return r
	}
	if err := r.createBuffers(); err != nil {
		fractal.Logger().Warn("wgpu: buffer creation failed", slog.Any("error", err))
		r.destroyBuffers()
		r.destroyPipeline()
		return r
	}
	r.linked = true
	fractal.Logger().Info("wgpu: renderer ready",
		slog.Int("spirvWords", len(mod.SPIRV)),
		slog.Int("uniformBytes", mod.Layout.BufferSize()))
	return r
}

// createPipeline builds the shader module, layouts and render pipeline.
func (r *Renderer) createPipeline() error {
	sm, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fractal_shader",
		Source: hal.ShaderSource{SPIRV: r.module.SPIRV},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	r.shaderModule = sm

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "fractal_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    uint32(r.module.Layout.Binding), //nolint:gosec // small binding index
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fractal_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fractal_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shaderModule,
			EntryPoint: shader.VertexEntry,
			Buffers:    quadVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shaderModule,
			EntryPoint: shader.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// createBuffers uploads the static quad and allocates the uniform buffer
// and its bind group.
func (r *Renderer) createBuffers() error {
	var err error
	r.vertBuf, err = r.createAndUploadBuffer("fractal_quad_verts", quadVertexBytes(),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.idxBuf, err = r.createAndUploadBuffer("fractal_quad_indices", quadIndexBytes(),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.uniformBuf, err = r.createAndUploadBuffer("fractal_uniforms", r.block.Bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.block.MarkClean()

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "fractal_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: uint32(r.module.Layout.Binding), Resource: gputypes.BufferBinding{ //nolint:gosec // small binding index
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: uint64(len(r.block.Bytes())),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// SetTarget sets the texture view the next frame renders into.
// Hosts call it with the current surface view before every Frame.
func (r *Renderer) SetTarget(view hal.TextureView, width, height uint32) {
	r.target = view
	if width != r.width || height != r.height {
		r.SetViewport(int(width), int(height))
	}
}

// Linked reports whether the pipeline is usable.
func (r *Renderer) Linked() bool { return r.linked }

// UniformLocation returns the byte offset of name in the uniform block.
func (r *Renderer) UniformLocation(name string) (fractal.UniformLocation, bool) {
	if r.module == nil {
		return -1, false
	}
	f, ok := r.module.Layout.Lookup(name)
	if !ok {
		return -1, false
	}
	return fractal.UniformLocation(f.Offset), true
}

// SetVec2 stages a vec2<f32> uniform.
func (r *Renderer) SetVec2(loc fractal.UniformLocation, x, y float32) {
	if r.block != nil {
		r.block.SetVec2(int(loc), x, y)
	}
}

// SetFloat stages an f32 uniform.
func (r *Renderer) SetFloat(loc fractal.UniformLocation, v float32) {
	if r.block != nil {
		r.block.SetFloat(int(loc), v)
	}
}

// SetInt stages an i32 uniform.
func (r *Renderer) SetInt(loc fractal.UniformLocation, v int32) {
	if r.block != nil {
		r.block.SetInt(int(loc), v)
	}
}

// Bind sets the pipeline and uniform bind group on the open pass.
func (r *Renderer) Bind() {
	r.bound = true
	if r.pass == nil || !r.linked {
		return
	}
	r.pass.SetPipeline(r.pipeline)
	r.pass.SetBindGroup(0, r.bindGroup, nil)
}

// Release uploads staged uniform changes. Queue writes land before the
// frame's command buffer is submitted.
func (r *Renderer) Release() {
	r.bound = false
	r.flushUniforms()
}

func (r *Renderer) flushUniforms() {
	if !r.linked || r.block == nil || !r.block.Dirty() {
		return
	}
	r.queue.WriteBuffer(r.uniformBuf, 0, r.block.Bytes())
	r.block.MarkClean()
}

// SetViewport records the drawable size and rebuilds the depth buffer.
func (r *Renderer) SetViewport(width, height int) {
	w := uint32(max(width, 1))  //nolint:gosec // clamped positive
	h := uint32(max(height, 1)) //nolint:gosec // clamped positive
	if w == r.width && h == r.height && r.depthView != nil {
		return
	}
	r.width, r.height = w, h
	if r.device == nil {
		return
	}
	r.destroyDepth()
	if err := r.createDepth(); err != nil {
		fractal.Logger().Warn("wgpu: depth buffer", slog.Any("error", err))
		r.destroyDepth()
		return
	}
	fractal.Logger().Debug("wgpu: viewport", slog.Int("width", int(w)), slog.Int("height", int(h)))
}

func (r *Renderer) createDepth() error {
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "fractal_depth",
		Size:          hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	r.depthTex = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "fractal_depth_view",
	})
	if err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}
	r.depthView = view
	return nil
}

// Clear opens the frame's command encoder and render pass, clearing color
// to black and depth to 1. Without a target the frame is skipped.
func (r *Renderer) Clear() {
	r.err = nil
	if r.device == nil || r.target == nil || r.pass != nil {
		return
	}
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "fractal_encoder",
	})
	if err != nil {
		r.err = fmt.Errorf("%w: create command encoder: %w", ErrFrame, err)
		return
	}
	if err := encoder.BeginEncoding("fractal_frame"); err != nil {
		r.err = fmt.Errorf("%w: begin encoding: %w", ErrFrame, err)
		return
	}
	r.encoder = encoder

	desc := &hal.RenderPassDescriptor{
		Label: "fractal_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.target,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	}
	if r.depthView != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              r.depthView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		}
	}
	r.pass = encoder.BeginRenderPass(desc)
	r.pass.SetViewport(0, 0, float32(r.width), float32(r.height), 0, 1)
}

// BindQuad binds the quad's vertex and index buffers.
func (r *Renderer) BindQuad() {
	if r.pass == nil || !r.linked {
		return
	}
	r.pass.SetVertexBuffer(0, r.vertBuf, 0)
	r.pass.SetIndexBuffer(r.idxBuf, gputypes.IndexFormatUint32, 0)
}

// DrawQuad records the indexed draw.
func (r *Renderer) DrawQuad(indexCount int) {
	if r.pass == nil || !r.linked || indexCount <= 0 {
		return
	}
	r.pass.DrawIndexed(uint32(indexCount), 1, 0, 0, 0) //nolint:gosec // positive
}

// ReleaseQuad is a no-op: WebGPU passes have no buffer unbinding.
func (r *Renderer) ReleaseQuad() {}

// Present ends the pass, submits it and waits for the GPU so the host can
// present the surface.
func (r *Renderer) Present() error {
	if r.pass == nil {
		return r.err
	}
	pass, encoder := r.pass, r.encoder
	r.pass, r.encoder = nil, nil

	pass.End()
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("%w: end encoding: %w", ErrFrame, err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("%w: create fence: %w", ErrFrame, err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("%w: submit: %w", ErrFrame, err)
	}
	ok, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("%w: wait for GPU: ok=%v err=%w", ErrFrame, ok, err)
	}
	return nil
}

// Destroy releases every GPU object in reverse creation order. Safe to call
// more than once.
func (r *Renderer) Destroy() {
	if r.encoder != nil {
		r.encoder.DiscardEncoding()
		r.encoder, r.pass = nil, nil
	}
	r.destroyDepth()
	r.destroyBuffers()
	r.destroyPipeline()
	r.linked = false
	r.target = nil
}

func (r *Renderer) destroyDepth() {
	if r.device == nil {
		return
	}
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		r.device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
}

func (r *Renderer) destroyBuffers() {
	if r.device == nil {
		return
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.idxBuf != nil {
		r.device.DestroyBuffer(r.idxBuf)
		r.idxBuf = nil
	}
	if r.vertBuf != nil {
		r.device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

func (r *Renderer) destroyPipeline() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shaderModule != nil {
		r.device.DestroyShaderModule(r.shaderModule)
		r.shaderModule = nil
	}
}

// quadVertexLayout describes one vec2<f32> position at location 0.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
	}
}

// quadVertexBytes encodes fractal.QuadVertices as little-endian f32 pairs.
func quadVertexBytes() []byte {
	verts := fractal.QuadVertices()
	buf := make([]byte, len(verts)*quadVertexStride)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(v[1]))
	}
	return buf
}

// quadIndexBytes encodes fractal.QuadIndices as little-endian u32.
func quadIndexBytes() []byte {
	idx := fractal.QuadIndices()
	buf := make([]byte, len(idx)*4)
	for i, v := range idx {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}
