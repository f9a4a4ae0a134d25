package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_GatedForwardNavigation(t *testing.T) {
	w := &Wizard{Step: FirstStep}

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.Equal(t, StepVessel, w.Step)

	w.Config.Vessel = "ceramic-artisan"
	require.NoError(t, w.Next())
	assert.Equal(t, StepFragrance, w.Step)

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)

	w.Config.PrimaryScent = "citrus-grove"
	require.NoError(t, w.Next())
	assert.Equal(t, StepWaxAndWick, w.Step)

	w.Config.WaxType = "soy"
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete, "wick still missing")

	w.Config.WickType = "cotton"
	require.NoError(t, w.Next())
	assert.Equal(t, StepLabel, w.Step)

	require.NoError(t, w.Next())
	assert.Equal(t, StepFinishingTouches, w.Step)

	require.NoError(t, w.Next())
	assert.Equal(t, LastStep, w.Step, "cannot move past the last step")
}

func TestWizard_Back(t *testing.T) {
	w := NewWizard()
	w.Back()
	assert.Equal(t, FirstStep, w.Step)

	w.Step = StepLabel
	w.Back()
	assert.Equal(t, StepWaxAndWick, w.Step)
}

func TestGates(t *testing.T) {
	gates := Gates(Default())

	assert.True(t, gates[StepVessel])
	assert.False(t, gates[StepFragrance])
	assert.True(t, gates[StepWaxAndWick])
	assert.True(t, gates[StepLabel])
	assert.True(t, gates[StepFinishingTouches])
}
