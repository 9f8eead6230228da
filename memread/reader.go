// Package memread defines the byte-level access contract to the observed
// process and the helpers the rest of the module reads through. The transport
// behind Reader is interchangeable: a live acquisition bridge (Client), or an
// in-memory fixture (MockReader) in tests and demo mode.
package memread

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Reader is the minimal contract to the observed process's address space.
// Implementations must be low-latency and non-blocking; any call may fail on
// an unmapped or concurrently remapped address.
type Reader interface {
	ReadBytes(addr uint64, buf []byte) error
}

var (
	ErrNullPointer = errors.New("memread: null pointer")
	ErrShortRead   = errors.New("memread: short read")
)

// ReadUint64 reads a little-endian pointer-sized value.
func ReadUint64(r Reader, addr uint64) (uint64, error) {
	var buf [8]byte
	if err := r.ReadBytes(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadFloat32 reads a little-endian 32-bit float.
func ReadFloat32(r Reader, addr uint64) (float32, error) {
	var buf [4]byte
	if err := r.ReadBytes(addr, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// ReadMatrix4 reads 16 consecutive floats as stored by the target process
// (row-major).
func ReadMatrix4(r Reader, addr uint64) ([16]float32, error) {
	var raw [64]byte
	var out [16]float32
	if err := r.ReadBytes(addr, raw[:]); err != nil {
		return out, err
	}
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadPointerChain dereferences base, then each intermediate offset, and
// returns the final address plus the last offset. A zero pointer anywhere in
// the chain fails with ErrNullPointer.
func ReadPointerChain(r Reader, base uint64, offsets ...uint64) (uint64, error) {
	if base == 0 {
		return 0, ErrNullPointer
	}
	addr := base
	for i, off := range offsets {
		if i == len(offsets)-1 {
			return addr + off, nil
		}
		next, err := ReadUint64(r, addr+off)
		if err != nil {
			return 0, fmt.Errorf("memread: chain step %d at %#x: %w", i, addr+off, err)
		}
		if next == 0 {
			return 0, ErrNullPointer
		}
		addr = next
	}
	return addr, nil
}

// ReadUTF8String reads up to maxLen bytes and truncates at the first NUL.
func ReadUTF8String(r Reader, addr uint64, maxLen int) (string, error) {
	if maxLen <= 0 {
		return "", nil
	}
	buf := make([]byte, maxLen)
	if err := r.ReadBytes(addr, buf); err != nil {
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// ReadValue reads a fixed-size value or struct at addr. Types with a
// non-constant encoded size are rejected.
func ReadValue[T any](r Reader, addr uint64) (T, error) {
	var v T
	size := binary.Size(v)
	if size < 0 {
		return v, fmt.Errorf("memread: type %T has no fixed size", v)
	}
	buf := make([]byte, size)
	if err := r.ReadBytes(addr, buf); err != nil {
		return v, err
	}
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &v); err != nil {
		return v, fmt.Errorf("memread: decode %T: %w", v, err)
	}
	return v, nil
}
