// Package camera discovers the active camera objects in the observed process
// and maintains the per-frame camera state the overlay projects through.
package camera

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout holds the address offsets used to walk the observed process's
// camera objects. Offsets shift between builds of the target, so the table is
// loadable from YAML; the defaults match the build the module was written
// against.
type Layout struct {
	// ManagerChain leads from the fixed root address to the camera
	// manager's slot table. Intermediate offsets are dereferenced, the
	// last is added.
	ManagerChain []uint64 `yaml:"manager_chain"`

	// SlotStride is the byte distance between child slots; ProbeLimit
	// bounds the linear scan over them.
	SlotStride uint64 `yaml:"slot_stride"`
	ProbeLimit int    `yaml:"probe_limit"`

	// NameChain leads from a camera object to its NUL-terminated name.
	NameChain  []uint64 `yaml:"name_chain"`
	NameMaxLen int      `yaml:"name_max_len"`

	// Per-camera field offsets relative to the camera object base.
	FOVOffset    uint64 `yaml:"fov_offset"`
	AspectOffset uint64 `yaml:"aspect_offset"`
	MatrixOffset uint64 `yaml:"matrix_offset"`

	// Names matched during discovery. The optic camera is optional.
	PrimaryName string `yaml:"primary_name"`
	OpticName   string `yaml:"optic_name"`
}

// DefaultLayout returns the offset table for the currently supported target
// build.
func DefaultLayout() Layout {
	return Layout{
		ManagerChain: []uint64{0x17F8D28, 0x28, 0x10},
		SlotStride:   0x8,
		ProbeLimit:   100,
		NameChain:    []uint64{0x30, 0x60, 0x0},
		NameMaxLen:   32,
		FOVOffset:    0x15C,
		AspectOffset: 0x4C8,
		MatrixOffset: 0x2E4,
		PrimaryName:  "FPS Camera",
		OpticName:    "Optic Camera",
	}
}

// LoadLayout reads a layout table from a YAML file. Zero-valued fields fall
// back to the defaults so a file only needs to list the offsets that moved.
func LoadLayout(path string) (Layout, error) {
	l := DefaultLayout()
	data, err := os.ReadFile(path)
	if err != nil {
		return l, fmt.Errorf("camera: load layout %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return l, fmt.Errorf("camera: unmarshal layout %s: %w", path, err)
	}
	if l.ProbeLimit <= 0 {
		l.ProbeLimit = DefaultLayout().ProbeLimit
	}
	if l.NameMaxLen <= 0 {
		l.NameMaxLen = DefaultLayout().NameMaxLen
	}
	return l, nil
}
