package term

import "strings"

// dispatchOSC applies a complete OSC payload sitting in t.oscBuf. Only
// "2;<title>" (set window title) is recognized; every other form,
// including malformed payloads, is silently dropped.
func (t *Terminal) dispatchOSC() {
	payload := string(t.oscBuf)

	ps, pt, ok := strings.Cut(payload, ";")
	if !ok {
		return
	}
	if ps != "2" {
		return
	}
	if t.Title != nil {
		t.Title(pt)
	}
}
