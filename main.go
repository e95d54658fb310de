// Command xst is a minimal graphical terminal emulator: it spawns a
// shell on a pseudoterminal, interprets the byte stream as ANSI/VT
// control sequences mutating a cell grid, and draws that grid to a
// window each frame. The event loop is grounded on the teacher's
// main.go, stripped of tabs, panes, menus, and the AI/search panels:
// spec §5 requires a single-threaded, single-writer loop, so unlike
// the teacher's reader-goroutine-per-tab design, PTY bytes are drained
// here with non-blocking reads inside the same loop that renders.
package main

import (
	"log"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/relayterm/xst/atlas"
	"github.com/relayterm/xst/config"
	"github.com/relayterm/xst/render"
	"github.com/relayterm/xst/shell"
	"github.com/relayterm/xst/term"
	"github.com/relayterm/xst/window"
)

const (
	blinkInterval = 500 * time.Millisecond
	frameInterval = 16 * time.Millisecond
	ptyReadChunk  = 4096
)

func main() {
	win, err := window.New(window.DefaultConfig())
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	defer win.Destroy()

	fontSize := config.FontSize(cliFontArg())
	a, err := atlas.Load("", fontSize)
	if err != nil {
		log.Fatalf("load font atlas: %v", err)
	}

	renderer, err := render.New(a)
	if err != nil {
		log.Fatalf("create renderer: %v", err)
	}
	defer renderer.Destroy()

	fbWidth, fbHeight := win.FramebufferSize()
	cols, rows := renderer.GridSize(fbWidth, fbHeight)

	session, err := shell.Spawn(uint16(cols), uint16(rows))
	if err != nil {
		log.Fatalf("spawn shell: %v", err)
	}
	defer session.Close()

	vt := term.New(cols, rows)
	vt.Title = win.SetTitle
	vt.Respond = func(b []byte) {
		_, _ = session.Write(b)
	}

	win.GLFW().SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if seq, ok := window.TranslateKey(key, mods); ok {
			_, _ = session.Write(seq)
		}
	})

	win.GLFW().SetCharCallback(func(w *glfw.Window, char rune) {
		_, _ = session.Write(window.TranslateChar(char))
	})

	win.GLFW().SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		win.SetViewport(width, height)
		cols, rows := renderer.GridSize(width, height)
		if err := vt.Grid.Resize(cols, rows); err != nil {
			log.Printf("resize grid: %v", err)
			return
		}
		if err := session.Resize(uint16(cols), uint16(rows)); err != nil {
			log.Printf("resize pty: %v", err)
		}
	})

	win.GLFW().SetCloseCallback(func(w *glfw.Window) {
		win.RequestClose()
	})

	cursorOn := true
	lastBlink := time.Now()
	readBuf := make([]byte, ptyReadChunk)

	for !win.ShouldClose() {
		if session.HasExited() {
			break
		}

		for i := 0; i < 64; i++ {
			result := session.Read(readBuf)
			switch result.Kind {
			case shell.ReadBytes:
				vt.Feed(readBuf[:result.N])
				continue
			case shell.ReadWouldBlock:
			case shell.ReadEOF, shell.ReadError:
				win.RequestClose()
			}
			break
		}

		now := time.Now()
		if now.Sub(lastBlink) >= blinkInterval {
			cursorOn = !cursorOn
			lastBlink = now
		}

		width, height := win.FramebufferSize()
		renderer.Draw(vt.Grid, width, height, cursorOn)
		win.SwapBuffers()
		window.PollEvents()

		time.Sleep(frameInterval)
	}
}

// cliFontArg reads an optional font-size override from argv[1], per
// spec §6's CLI-arg-wins-over-config-file resolution order.
func cliFontArg() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return ""
}
