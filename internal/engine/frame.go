package engine

import (
	"fmt"
	"unsafe"
)

// SuffixOffset places the framebuffer at the end of memory as sized when the
// FrameSource is created.
const SuffixOffset = -1

// Layout describes where the framebuffer lives in engine memory.
type Layout struct {
	Width, Height int
	Offset        int64 // byte offset, or SuffixOffset
}

func (l Layout) byteLen() uint32 { return uint32(l.Width * l.Height * 4) }

// Frame is a read-only view of one framebuffer. Pix aliases engine memory and
// must not be written.
type Frame struct {
	Width, Height int
	Pix           []int32
}

func (f Frame) At(x, y int) int32 { return f.Pix[y*f.Width+x] }

// FrameSource is the pixel source: a zero-copy []int32 view over the
// framebuffer region of engine memory.
//
// The view is acquired once. Engine memory only moves when the guest grows it,
// so Frame compares the current memory size with the size seen at acquisition
// and re-reads the view only when it changed. The framebuffer offset is fixed
// at construction even for suffix layouts.
type FrameSource struct {
	mem    Memory
	layout Layout
	offset uint32
	size   uint32
	pix    []int32
}

func NewFrameSource(mem Memory, layout Layout) (*FrameSource, error) {
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadLayout, layout.Width, layout.Height)
	}
	size := mem.Size()
	n := layout.byteLen()
	var off int64
	if layout.Offset == SuffixOffset {
		off = int64(size) - int64(n)
	} else {
		off = layout.Offset
	}
	if off < 0 || off+int64(n) > int64(size) {
		return nil, fmt.Errorf("%w: offset %d + %d bytes > %d", ErrBadLayout, off, n, size)
	}
	if off%4 != 0 {
		return nil, fmt.Errorf("%w: offset %d not 4-byte aligned", ErrBadLayout, off)
	}
	fs := &FrameSource{mem: mem, layout: layout, offset: uint32(off)}
	fs.acquire()
	return fs, nil
}

func (fs *FrameSource) acquire() {
	n := fs.layout.byteLen()
	b, ok := fs.mem.Read(fs.offset, n)
	if !ok || uint32(len(b)) < n {
		panic(fmt.Sprintf("engine: framebuffer view [%d,+%d) unavailable", fs.offset, n))
	}
	// wasm memory is little-endian, as are all hosts we build for.
	fs.pix = unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), fs.layout.Width*fs.layout.Height)
	fs.size = fs.mem.Size()
}

// Offset returns the resolved byte offset of the framebuffer.
func (fs *FrameSource) Offset() uint32 { return fs.offset }

// Frame returns the live framebuffer.
func (fs *FrameSource) Frame() Frame {
	if fs.mem.Size() != fs.size {
		fs.acquire()
	}
	return Frame{Width: fs.layout.Width, Height: fs.layout.Height, Pix: fs.pix}
}
