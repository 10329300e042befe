package orbit

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("orbit: script has no steps")

// ScriptStep is a single action in a script.
type ScriptStep struct {
	Action   string  `yaml:"action" json:"action"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	X        float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty" json:"y,omitempty"`
	FromX    float64 `yaml:"fromX,omitempty" json:"fromX,omitempty"`
	FromY    float64 `yaml:"fromY,omitempty" json:"fromY,omitempty"`
	ToX      float64 `yaml:"toX,omitempty" json:"toX,omitempty"`
	ToY      float64 `yaml:"toY,omitempty" json:"toY,omitempty"`
	Frames   int     `yaml:"frames,omitempty" json:"frames,omitempty"`
	Key      string  `yaml:"key,omitempty" json:"key,omitempty"`
	Category string  `yaml:"category,omitempty" json:"category,omitempty"`
	Query    string  `yaml:"query,omitempty" json:"query,omitempty"`
}

type script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptRunner sequences injected input, filter changes and screenshots
// across ticks for automated runs. Attach to a Viewer via SetScript.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func (st ScriptStep) validate() error {
	switch st.Action {
	case "move", "click", "drag", "filter", "search", "wait", "screenshot":
		return nil
	case "key":
		if _, ok := ParseKey(st.Key); !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// Steps returns the parsed steps.
func (r *ScriptRunner) Steps() []ScriptStep { return r.steps }

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool { return r.done }

// SetScript attaches a runner. Its step method is called from Update before
// input is processed each tick.
func (v *Viewer) SetScript(r *ScriptRunner) {
	v.script = r
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if v.Injecting() {
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
	case "screenshot":
		v.Screenshot(st.Label)
	case "move":
		v.InjectMove(st.X, st.Y)
	case "click":
		v.InjectClick(st.X, st.Y)
	case "drag":
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		k, _ := ParseKey(st.Key)
		v.InjectKey(k)
	case "filter":
		v.controller.SetFilter(st.Category)
	case "search":
		v.controller.SetSearch(st.Query)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !v.Injecting() {
		r.done = true
	}
}
