// Package format renders unsigned integers into fixed width byte buffers
// without allocating, for use on small displays.
package format

const (
	// Filler occupies every position not taken by a digit.
	Filler byte = ' '

	// DutyWidth holds every value of the 0..100 duty range.
	DutyWidth = 3
)

// DutyText is the fixed width, left-justified decimal text of a duty value.
// It only ever contains ASCII digits and Filler.
type DutyText [DutyWidth]byte

// Uint writes the decimal representation of value into buf, most significant
// digit first, starting at index 0. All remaining positions are set to Filler.
// It returns the number of digits written.
//
// buf must be large enough to hold every digit of value; a shorter buffer is a
// programming error and panics.
func Uint(buf []byte, value uint64) int {
	for i := range buf {
		buf[i] = Filler
	}

	if value == 0 {
		buf[0] = '0'
		return 1
	}

	n := 0
	for value > 0 {
		buf[n] = byte(value%10) + '0'
		value /= 10
		n++
	}
	reverse(buf[:n])
	return n
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Duty formats a duty percentage.
func Duty(value uint8) DutyText {
	var text DutyText
	Uint(text[:], uint64(value))
	return text
}

// String returns the full width text including trailing Filler.
func (t DutyText) String() string {
	return string(t[:])
}

// Digits returns the text without trailing Filler.
func (t DutyText) Digits() string {
	n := len(t)
	for n > 0 && t[n-1] == Filler {
		n--
	}
	return string(t[:n])
}
