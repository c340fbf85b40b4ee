package diagram

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Notches float64 `json:"notches,omitempty"`
	Shift   bool    `json:"shift,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays injected input and snapshots across frames, for
// automated visual checks and demos. Attach it with SetScript.
//
// Actions: "click", "shiftclick", "drag", "hover", "wheel", "wait",
// "snapshot", "fit".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "shiftclick", "drag", "hover", "wheel", "wait", "snapshot", "fit":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches r. Its step runs at the start of every Update, before
// input processing. nil detaches.
func (e *Editor) SetScript(r *ScriptRunner) {
	e.script = r
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(e *Editor) {
	if r.done {
		return
	}
	if e.InjectPending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		e.Snapshot(st.Label)
	case "click", "shiftclick":
		var mods KeyModifiers
		if st.Shift || st.Action == "shiftclick" {
			mods = ModShift
		}
		e.InjectPressMods(st.X, st.Y, mods)
		e.InjectRelease(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "hover":
		e.InjectHover(st.X, st.Y)
	case "wheel":
		e.InjectWheel(st.X, st.Y, st.Notches)
	case "fit":
		e.FitContent(float32(st.Frames) / 60)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && e.InjectPending() == 0 {
		r.done = true
	}
}
