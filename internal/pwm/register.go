package pwm

// Register is an in-memory Output. It keeps the last written values and
// counts writes, which makes it useful for simulation and tests.
type Register struct {
	Compare uint32
	Mode    Mode

	CompareWrites int
	ModeWrites    int
}

func NewRegister() *Register {
	return &Register{Mode: ModeDisabled}
}

func (r *Register) SetCompare(value uint32) error {
	r.Compare = value
	r.CompareWrites++
	return nil
}

func (r *Register) SetMode(mode Mode) error {
	r.Mode = mode
	r.ModeWrites++
	return nil
}

func (r *Register) GetCompare() (uint32, error) {
	return r.Compare, nil
}

func (r *Register) GetMode() (Mode, error) {
	return r.Mode, nil
}

func (r *Register) State() State {
	return State{
		Compare: r.Compare,
		Mode:    r.Mode,
	}
}
