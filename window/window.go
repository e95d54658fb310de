// Package window wraps GLFW and an OpenGL context: the windowing
// backend collaborator from the design (C10). It owns the event
// callbacks and translates key presses into the byte sequences the
// PTY expects, grounded on the teacher's src/window.Window and
// keybindings.TranslateKey/TranslateChar.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

// Config holds the initial window geometry and title.
type Config struct {
	Width  int
	Height int
	Title  string
}

// DefaultConfig returns a reasonable starting window size.
func DefaultConfig() Config {
	return Config{Width: 900, Height: 600, Title: "xst"}
}

// Window wraps a GLFW window with its OpenGL context.
type Window struct {
	glfw *glfw.Window
}

// New creates a window with an OpenGL 4.1 core-profile context.
func New(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	glfwWin, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	glfwWin.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfwWin.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	glfw.SwapInterval(1)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &Window{glfw: glfwWin}, nil
}

// GLFW exposes the underlying window for callback registration.
func (w *Window) GLFW() *glfw.Window { return w.glfw }

// FramebufferSize returns the current drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.glfw.GetFramebufferSize() }

// ShouldClose reports whether a close has been requested.
func (w *Window) ShouldClose() bool { return w.glfw.ShouldClose() }

// RequestClose marks the window for shutdown.
func (w *Window) RequestClose() { w.glfw.SetShouldClose(true) }

// SwapBuffers presents the frame just drawn.
func (w *Window) SwapBuffers() { w.glfw.SwapBuffers() }

// SetViewport resizes the OpenGL viewport to match the framebuffer.
func (w *Window) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetTitle updates the window title, used by the OSC 2 handler.
func (w *Window) SetTitle(title string) { w.glfw.SetTitle(title) }

// Destroy releases the window and terminates GLFW.
func (w *Window) Destroy() {
	w.glfw.Destroy()
	glfw.Terminate()
}

// PollEvents drains the platform event queue, invoking any registered
// callbacks synchronously.
func PollEvents() { glfw.PollEvents() }
