package fractal

import "errors"

// callLog records collaborator calls in order across mocks.
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	if l != nil {
		l.calls = append(l.calls, call)
	}
}

// mockProgram is a hand-written Program recording uniform writes by name.
type mockProgram struct {
	log       *callLog
	linked    bool
	names     []string
	lookups   []string
	bound     bool
	destroyed int

	vec2   map[string][2]float32
	floats map[string]float32
	ints   map[string]int32
}

func newMockProgram(linked bool, names ...string) *mockProgram {
	return &mockProgram{
		linked: linked,
		names:  names,
		vec2:   make(map[string][2]float32),
		floats: make(map[string]float32),
		ints:   make(map[string]int32),
	}
}

func (p *mockProgram) Linked() bool { return p.linked }

func (p *mockProgram) Bind() {
	p.bound = true
	p.log.add("program.Bind")
}

func (p *mockProgram) Release() {
	p.bound = false
	p.log.add("program.Release")
}

func (p *mockProgram) UniformLocation(name string) (UniformLocation, bool) {
	p.lookups = append(p.lookups, name)
	for i, n := range p.names {
		if n == name {
			return UniformLocation(i), true
		}
	}
	return -1, false
}

func (p *mockProgram) name(loc UniformLocation) string {
	return p.names[loc]
}

func (p *mockProgram) SetVec2(loc UniformLocation, x, y float32) {
	p.vec2[p.name(loc)] = [2]float32{x, y}
	p.log.add("uniform." + p.name(loc))
}

func (p *mockProgram) SetFloat(loc UniformLocation, v float32) {
	p.floats[p.name(loc)] = v
	p.log.add("uniform." + p.name(loc))
}

func (p *mockProgram) SetInt(loc UniformLocation, v int32) {
	p.ints[p.name(loc)] = v
	p.log.add("uniform." + p.name(loc))
}

func (p *mockProgram) Destroy() {
	p.destroyed++
	p.log.add("program.Destroy")
}

func (p *mockProgram) writes() int {
	return len(p.vec2) + len(p.floats) + len(p.ints)
}

// mockDevice is a hand-written Device.
type mockDevice struct {
	log        *callLog
	width      int
	height     int
	viewports  int
	draws      []int
	presentErr error
	destroyed  int
}

func (d *mockDevice) SetViewport(w, h int) {
	d.width, d.height = w, h
	d.viewports++
	d.log.add("device.SetViewport")
}

func (d *mockDevice) Clear()       { d.log.add("device.Clear") }
func (d *mockDevice) BindQuad()    { d.log.add("device.BindQuad") }
func (d *mockDevice) ReleaseQuad() { d.log.add("device.ReleaseQuad") }

func (d *mockDevice) DrawQuad(n int) {
	d.draws = append(d.draws, n)
	d.log.add("device.DrawQuad")
}

func (d *mockDevice) Present() error {
	d.log.add("device.Present")
	return d.presentErr
}

func (d *mockDevice) Destroy() {
	d.destroyed++
	d.log.add("device.Destroy")
}

// mockBinder records context scopes.
type mockBinder struct {
	log     *callLog
	current bool
	scopes  int
}

func (b *mockBinder) MakeCurrent() func() {
	b.current = true
	b.scopes++
	b.log.add("context.MakeCurrent")
	return func() {
		b.current = false
		b.log.add("context.Release")
	}
}

var errDeviceLost = errors.New("device lost")
