//go:build !android

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"wasmsnake/internal/engine"
	"wasmsnake/internal/game"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer draws the engine framebuffer as a single textured quad. The
// integer texture is allocated once at the framebuffer size and every frame
// is a sub-image upload into it.
type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32
	ebo  uint32
	tex  uint32

	uFrame int32

	width, height int

	window surface
}

// surface is the part of the window the renderer needs.
type surface interface {
	GetFramebufferSize() (int, int)
	SwapBuffers()
}

func NewRenderer(win surface, width, height int) (*Renderer, error) {
	prog, err := linkProgram(frameVertSrc, frameFragSrc)
	if err != nil {
		return nil, fmt.Errorf("frame program: %w", err)
	}
	r := &Renderer{prog: prog, width: width, height: height, window: win}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(game.QuadVertices)*4, gl.Ptr(&game.QuadVertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(game.QuadIndices)*2, gl.Ptr(&game.QuadIndices[0]), gl.STATIC_DRAW)

	stride := int32(game.QuadStride * 4)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aUV (vec2)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))

	gl.GenTextures(1, &r.tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32I, int32(width), int32(height), 0, gl.RED_INTEGER, gl.INT, nil)

	gl.UseProgram(prog)
	r.uFrame = gl.GetUniformLocation(prog, gl.Str("uFrame\x00"))
	gl.Uniform1i(r.uFrame, 0)

	gl.BindVertexArray(0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		r.Destroy()
		return nil, fmt.Errorf("renderer setup: gl error 0x%x", e)
	}
	return r, nil
}

// Present uploads f and draws it across the whole framebuffer.
func (r *Renderer) Present(f engine.Frame) error {
	if f.Width != r.width || f.Height != r.height || len(f.Pix) < f.Width*f.Height {
		return fmt.Errorf("frame %dx%d does not match texture %dx%d", f.Width, f.Height, r.width, r.height)
	}
	fbW, fbH := r.window.GetFramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		// Minimised.
		return nil
	}
	gl.Viewport(0, 0, int32(fbW), int32(fbH))

	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(f.Width), int32(f.Height), gl.RED_INTEGER, gl.INT, gl.Ptr(&f.Pix[0]))
	gl.DrawElements(gl.TRIANGLES, int32(len(game.QuadIndices)), gl.UNSIGNED_SHORT, glOffset(0))
	gl.BindVertexArray(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("present: gl error 0x%x", e)
	}
	r.window.SwapBuffers()
	return nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.vbo, r.ebo} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.tex != 0 {
		gl.DeleteTextures(1, &r.tex)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}
