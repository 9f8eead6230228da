package camera

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varkas/overlens/memread"
)

const (
	defaultFOV    = 60
	defaultAspect = 16.0 / 9.0

	minFOV    = 1
	maxFOV    = 180
	minAspect = 0.1
	maxAspect = 10
)

// State is the camera snapshot the renderer projects through. The view
// matrix is stored so that mgl32's Mul4x1 applies it directly (the target
// process keeps it row-major; the provider transposes on read). On read
// failure the previous values persist, never zeroes.
type State struct {
	FOV         float32
	AspectRatio float32
	View        mgl32.Mat4
	IsAiming    bool
}

// Provider finds the target's camera objects and refreshes State once per
// frame. It is single-threaded by design: Update and State are called from
// the render loop only.
type Provider struct {
	reader memread.Reader
	layout Layout
	log    *slog.Logger

	initialized bool
	primaryAddr uint64
	opticAddr   uint64

	state State
}

func NewProvider(r memread.Reader, layout Layout, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{
		reader: r,
		layout: layout,
		log:    log,
		state: State{
			FOV:         defaultFOV,
			AspectRatio: defaultAspect,
			View:        mgl32.Ident4(),
		},
	}
}

// TryInitialize walks the camera manager's slot table looking for the
// primary and optic cameras by name. It is idempotent: once the primary
// camera is found the memoized addresses are kept and the probe never runs
// again. Until then it is cheap to re-attempt every frame.
func (p *Provider) TryInitialize() bool {
	if p.initialized {
		return true
	}
	if len(p.layout.ManagerChain) == 0 {
		return false
	}

	table, err := memread.ReadPointerChain(p.reader, p.layout.ManagerChain[0], p.layout.ManagerChain[1:]...)
	if err != nil {
		return false
	}

	for i := 0; i < p.layout.ProbeLimit; i++ {
		slot := table + uint64(i)*p.layout.SlotStride
		obj, err := memread.ReadUint64(p.reader, slot)
		if err != nil || obj == 0 {
			continue
		}
		name, err := p.readName(obj)
		if err != nil {
			continue
		}
		switch name {
		case p.layout.PrimaryName:
			p.primaryAddr = obj
		case p.layout.OpticName:
			p.opticAddr = obj
		}
		if p.primaryAddr != 0 && p.opticAddr != 0 {
			break
		}
	}

	if p.primaryAddr == 0 {
		return false
	}
	p.initialized = true
	p.log.Info("camera discovered",
		"primary", p.primaryAddr,
		"optic_found", p.opticAddr != 0)
	return true
}

func (p *Provider) readName(obj uint64) (string, error) {
	addr, err := memread.ReadPointerChain(p.reader, obj, p.layout.NameChain...)
	if err != nil {
		return "", err
	}
	return memread.ReadUTF8String(p.reader, addr, p.layout.NameMaxLen)
}

// Update refreshes the camera state for this frame. Before discovery
// succeeds it only re-attempts discovery; the state keeps its last-known
// values for the tick either way. Reads from the live process can tear, so
// out-of-range values reset to safe defaults and any failed read leaves the
// whole state untouched. Update never returns an error to the render loop.
func (p *Provider) Update(isAiming bool) {
	if !p.initialized {
		p.TryInitialize()
		return
	}

	base := p.primaryAddr
	if isAiming && p.opticAddr != 0 {
		base = p.opticAddr
	}

	fov, err := memread.ReadFloat32(p.reader, base+p.layout.FOVOffset)
	if err != nil {
		p.log.Warn("camera fov read failed", "err", err)
		return
	}
	aspect, err := memread.ReadFloat32(p.reader, base+p.layout.AspectOffset)
	if err != nil {
		p.log.Warn("camera aspect read failed", "err", err)
		return
	}
	raw, err := memread.ReadMatrix4(p.reader, base+p.layout.MatrixOffset)
	if err != nil {
		p.log.Warn("camera matrix read failed", "err", err)
		return
	}

	if fov < minFOV || fov > maxFOV {
		fov = defaultFOV
	}
	if aspect < minAspect || aspect > maxAspect {
		aspect = defaultAspect
	}

	p.state = State{
		FOV:         fov,
		AspectRatio: aspect,
		View:        mgl32.Mat4(raw).Transpose(),
		IsAiming:    isAiming,
	}
}

// SetLayout swaps in a new offset table and restarts discovery. The current
// camera state persists until the new table finds a camera, so a bad table
// degrades to stale data rather than zeroes.
func (p *Provider) SetLayout(layout Layout) {
	p.layout = layout
	p.initialized = false
	p.primaryAddr = 0
	p.opticAddr = 0
}

// State returns the current camera snapshot.
func (p *Provider) State() State {
	return p.state
}

// Initialized reports whether discovery has succeeded.
func (p *Provider) Initialized() bool {
	return p.initialized
}
