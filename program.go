package fractal

// UniformLocation identifies a uniform inside a linked Program. Its meaning
// is backend-specific: a byte offset into a uniform block for WebGPU, an
// index into a uniform table for ebiten.
type UniformLocation int

// Program is a linked shader program.
//
// Linked reports whether compilation and linking succeeded. Every other
// method may be a no-op on an unlinked program; the viewer never calls the
// setters without a successful Linked check and a Bind.
type Program interface {
	// Linked reports whether the program is usable.
	Linked() bool

	// Bind makes the program current for uniform writes and drawing.
	Bind()

	// Release unbinds the program.
	Release()

	// UniformLocation resolves a uniform name. ok is false when the shader
	// does not declare the uniform.
	UniformLocation(name string) (loc UniformLocation, ok bool)

	// SetVec2 writes a vec2<f32> uniform.
	SetVec2(loc UniformLocation, x, y float32)

	// SetFloat writes an f32 uniform.
	SetFloat(loc UniformLocation, v float32)

	// SetInt writes an i32 uniform.
	SetInt(loc UniformLocation, v int32)

	// Destroy releases the program's GPU objects.
	Destroy()
}

// Device is the graphics device a viewer draws through. It owns the
// full-screen quad geometry and the frame target.
type Device interface {
	// SetViewport sets the drawable area in pixels.
	SetViewport(width, height int)

	// Clear starts a frame and clears color and depth.
	Clear()

	// BindQuad binds the quad's vertex and index buffers.
	BindQuad()

	// DrawQuad draws indexCount indices of the bound quad as a triangle list.
	DrawQuad(indexCount int)

	// ReleaseQuad unbinds the quad buffers.
	ReleaseQuad()

	// Present submits the frame.
	Present() error

	// Destroy releases the quad buffers and any frame resources.
	Destroy()
}

// ContextBinder makes a graphics context current outside the regular
// paint callback. The returned function releases it and must always be
// called, typically deferred.
type ContextBinder interface {
	MakeCurrent() (release func())
}

// nopBinder is used when the host has no notion of a current context.
type nopBinder struct{}

func (nopBinder) MakeCurrent() func() { return func() {} }

// QuadIndexCount is the number of indices of the full-screen quad.
const QuadIndexCount = 6

// QuadVertices returns the corners of the full-screen quad in clip space.
func QuadVertices() [4][2]float32 {
	return [4][2]float32{
		{-1, -1},
		{1, 1},
		{-1, 1},
		{1, -1},
	}
}

// QuadIndices returns the two counter-clockwise triangles covering the quad.
func QuadIndices() [QuadIndexCount]uint32 {
	return [QuadIndexCount]uint32{0, 1, 2, 0, 3, 1}
}
