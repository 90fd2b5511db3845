package pwm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fanduty/fanduty/internal/duty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOutput struct {
	compareErr error
	modeErr    error
	modes      []Mode
}

func (o *failingOutput) SetCompare(value uint32) error {
	return o.compareErr
}

func (o *failingOutput) SetMode(mode Mode) error {
	o.modes = append(o.modes, mode)
	return o.modeErr
}

func createDriver(t *testing.T) (*Driver, *Register) {
	register := NewRegister()
	driver, err := NewDriver(register, DefaultMax)
	require.NoError(t, err)
	return driver, register
}

func TestNewDriver_InvalidMax(t *testing.T) {
	// WHEN
	_, err := NewDriver(NewRegister(), 0)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidMax)
}

func TestStateFor_Scaling(t *testing.T) {
	// GIVEN
	driver, _ := createDriver(t)
	expected := map[duty.Percent]uint32{
		0:   0,
		20:  51,
		50:  127,
		95:  242,
		100: 255,
	}

	for percent, compare := range expected {
		// WHEN
		state := driver.StateFor(percent)

		// THEN
		assert.Equal(t, compare, state.Compare, "duty %d", percent)
	}
}

func TestApply_ZeroDisablesOutput(t *testing.T) {
	// GIVEN
	driver, register := createDriver(t)

	// WHEN
	state, err := driver.Apply(duty.Off)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, State{Compare: 0, Mode: ModeDisabled}, state)
	assert.Equal(t, state, register.State())
}

func TestApply_FullIsActive(t *testing.T) {
	// GIVEN
	driver, register := createDriver(t)

	// WHEN
	state, err := driver.Apply(duty.Full)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, State{Compare: 255, Mode: ModeActive}, state)
	assert.Equal(t, state, register.State())
}

func TestApply_IsIdempotent(t *testing.T) {
	for _, percent := range []duty.Percent{0, 42, 100} {
		// GIVEN
		driver, register := createDriver(t)

		// WHEN
		first, err := driver.Apply(percent)
		require.NoError(t, err)
		afterFirst := register.State()
		second, err := driver.Apply(percent)
		require.NoError(t, err)

		// THEN
		assert.Equal(t, first, second)
		assert.Equal(t, afterFirst, register.State())
		// both registers are written every time, no edge detection
		assert.Equal(t, 2, register.CompareWrites)
		assert.Equal(t, 2, register.ModeWrites)
	}
}

func TestApply_TransitionsBetweenModes(t *testing.T) {
	// GIVEN
	driver, register := createDriver(t)

	// WHEN
	_, _ = driver.Apply(60)

	// THEN
	assert.Equal(t, ModeActive, register.Mode)
	assert.Equal(t, uint32(153), register.Compare)

	// WHEN
	_, _ = driver.Apply(0)

	// THEN
	assert.Equal(t, ModeDisabled, register.Mode)
	assert.Equal(t, uint32(0), register.Compare)
}

func TestApply_CompareErrorStillWritesMode(t *testing.T) {
	// GIVEN
	compareErr := errors.New("bus error")
	output := &failingOutput{compareErr: compareErr}
	driver, err := NewDriver(output, DefaultMax)
	require.NoError(t, err)

	// WHEN
	_, err = driver.Apply(0)

	// THEN
	assert.ErrorIs(t, err, compareErr)
	assert.Equal(t, []Mode{ModeDisabled}, output.modes)
}

func TestReadBack_Register(t *testing.T) {
	// GIVEN
	driver, _ := createDriver(t)
	applied, err := driver.Apply(83)
	require.NoError(t, err)

	// WHEN
	current, err := driver.ReadBack()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, applied, current)
}

func TestReadBack_WriteOnlyOutput(t *testing.T) {
	// GIVEN
	driver, err := NewDriver(&failingOutput{}, DefaultMax)
	require.NoError(t, err)

	// WHEN
	_, err = driver.ReadBack()

	// THEN
	assert.ErrorIs(t, err, ErrNotReadable)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "disabled", ModeDisabled.String())
	assert.Equal(t, "active", ModeActive.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestState_JSON(t *testing.T) {
	// WHEN
	data, err := json.Marshal(State{Compare: 255, Mode: ModeActive})

	// THEN
	assert.NoError(t, err)
	assert.JSONEq(t, `{"compare": 255, "mode": "active"}`, string(data))
}

func TestMode_UnmarshalText(t *testing.T) {
	var state State
	assert.NoError(t, json.Unmarshal([]byte(`{"compare": 0, "mode": "disabled"}`), &state))
	assert.Equal(t, ModeDisabled, state.Mode)

	assert.Error(t, json.Unmarshal([]byte(`{"mode": "pulsing"}`), &state))
}
