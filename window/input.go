package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// TranslateKey maps a non-printable key press to the byte sequence the
// PTY expects, grounded on the teacher's keybindings.TranslateKey. Only
// the keys spec §6 names are handled; everything else returns nil, ok=false
// so the caller knows to fall back to the char callback.
func TranslateKey(key glfw.Key, mods glfw.ModifierKey) ([]byte, bool) {
	ctrl := mods&glfw.ModControl != 0

	switch key {
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return []byte("\r"), true
	case glfw.KeyBackspace:
		return []byte{0x7f}, true
	case glfw.KeyTab:
		return []byte("\t"), true
	case glfw.KeyEscape:
		return []byte{0x1b}, true
	case glfw.KeyUp:
		return []byte("\x1b[A"), true
	case glfw.KeyDown:
		return []byte("\x1b[B"), true
	case glfw.KeyRight:
		return []byte("\x1b[C"), true
	case glfw.KeyLeft:
		return []byte("\x1b[D"), true
	case glfw.KeyHome:
		return []byte("\x1b[H"), true
	case glfw.KeyEnd:
		return []byte("\x1b[F"), true
	case glfw.KeyDelete:
		return []byte("\x1b[3~"), true
	}

	if ctrl && key >= glfw.KeyA && key <= glfw.KeyZ {
		// Ctrl+letter maps to the letter's position in the alphabet.
		return []byte{byte(key-glfw.KeyA) + 1}, true
	}

	return nil, false
}

// TranslateChar encodes a decoded character event (GLFW's CharCallback
// already resolves layout and modifiers) to UTF-8 bytes for the PTY.
func TranslateChar(char rune) []byte {
	return []byte(string(char))
}
