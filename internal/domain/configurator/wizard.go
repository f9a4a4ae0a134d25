package configurator

import "lumera/internal/errors"

// Step identifies a page of the builder.
type Step int

const (
	StepVessel Step = iota + 1
	StepFragrance
	StepWaxAndWick
	StepLabel
	StepFinishingTouches
)

// FirstStep and LastStep bound navigation.
const (
	FirstStep = StepVessel
	LastStep  = StepFinishingTouches
)

var ErrStepIncomplete = errors.New("current step is incomplete")

// Wizard walks a Configuration through the builder steps. Navigation is
// strictly linear and forward moves are gated on the current step.
type Wizard struct {
	Step   Step          `json:"step"`
	Config Configuration `json:"config"`
}

// NewWizard starts at the first step with the default selections.
func NewWizard() *Wizard {
	return &Wizard{Step: FirstStep, Config: Default()}
}

// CanProceed reports whether step's required selections are made.
func (w *Wizard) CanProceed(step Step) bool {
	return StepComplete(w.Config, step)
}

// StepComplete is the per-step gate: vessel, then a scent, then wax type and
// wick. Label and finishing touches are optional.
func StepComplete(c Configuration, step Step) bool {
	switch step {
	case StepVessel:
		return c.Vessel != ""
	case StepFragrance:
		return len(c.Scents()) > 0
	case StepWaxAndWick:
		return c.WaxType != "" && c.WickType != ""
	case StepLabel, StepFinishingTouches:
		return true
	default:
		return false
	}
}

// Next advances one step when the current step is complete.
func (w *Wizard) Next() error {
	if w.Step >= LastStep {
		return nil
	}

	if !w.CanProceed(w.Step) {
		return ErrStepIncomplete
	}

	w.Step++

	return nil
}

// Back returns one step; it is a no-op on the first step.
func (w *Wizard) Back() {
	if w.Step > FirstStep {
		w.Step--
	}
}

// Gates reports the proceed state of every step, keyed 1..5.
func Gates(c Configuration) map[Step]bool {
	gates := make(map[Step]bool, int(LastStep))
	for step := FirstStep; step <= LastStep; step++ {
		gates[step] = StepComplete(c, step)
	}

	return gates
}
