package memread

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// MockReader is a sparse in-memory address space. It backs tests and the
// -demo mode of the tools; reads covering any unset byte fail, which mirrors
// how a live reader fails on unmapped pages.
type MockReader struct {
	mu    sync.RWMutex
	bytes map[uint64]byte

	// Reads counts ReadBytes calls, letting tests assert probe bounds.
	Reads int
}

func NewMockReader() *MockReader {
	return &MockReader{bytes: make(map[uint64]byte)}
}

func (m *MockReader) ReadBytes(addr uint64, buf []byte) error {
	m.mu.Lock()
	m.Reads++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range buf {
		b, ok := m.bytes[addr+uint64(i)]
		if !ok {
			return fmt.Errorf("memread: unmapped address %#x", addr+uint64(i))
		}
		buf[i] = b
	}
	return nil
}

func (m *MockReader) SetBytes(addr uint64, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, b := range data {
		m.bytes[addr+uint64(i)] = b
	}
}

func (m *MockReader) SetUint64(addr, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	m.SetBytes(addr, buf[:])
}

func (m *MockReader) SetFloat32(addr uint64, v float32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
	m.SetBytes(addr, buf[:])
}

// SetString writes a NUL-terminated string zero-padded to 64 bytes so that
// bounded string reads over the region succeed.
func (m *MockReader) SetString(addr uint64, s string) {
	buf := make([]byte, 64)
	if len(s) > len(buf)-1 {
		s = s[:len(buf)-1]
	}
	copy(buf, s)
	m.SetBytes(addr, buf)
}

func (m *MockReader) SetMatrix4(addr uint64, mat [16]float32) {
	var buf [64]byte
	for i, f := range mat {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	m.SetBytes(addr, buf[:])
}

// Clear removes a byte range, simulating the target unmapping a region.
func (m *MockReader) Clear(addr uint64, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		delete(m.bytes, addr+uint64(i))
	}
}
