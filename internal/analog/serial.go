package analog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

const (
	DefaultBaudRate = 115200
	// maximum length of a single line, longer lines are discarded
	maxLineLength = 32
	// how long a Read waits for new data before using the last sample
	serialReadTimeout = 5 * time.Millisecond
	// DefaultMaxAge is how long the last line stays valid without a new one.
	DefaultMaxAge = 5 * time.Second
)

var ErrStaleSample = errors.New("no new analog sample received")

// SerialInput reads samples from a microcontroller that prints one decimal
// sample per line. Read drains everything received since the previous call
// and returns the newest complete sample.
type SerialInput struct {
	port    io.ReadCloser
	buf     []byte
	pending []byte

	maxAge time.Duration
	now    func() time.Time

	last       uint32
	lastAt     time.Time
	hasSample  bool
	lastErr    error
	discarding bool
}

// OpenSerialInput opens the port. A sample older than maxAge is reported
// as ErrStaleSample; zero selects DefaultMaxAge.
func OpenSerialInput(portName string, baudRate int, maxAge time.Duration) (*SerialInput, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(serialReadTimeout); err != nil {
		_ = port.Close()
		return nil, err
	}
	return newSerialInput(port, maxAge, time.Now), nil
}

func newSerialInput(port io.ReadCloser, maxAge time.Duration, now func() time.Time) *SerialInput {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &SerialInput{
		port:    port,
		maxAge:  maxAge,
		now:     now,
		buf:     make([]byte, 128),
		pending: make([]byte, 0, maxLineLength),
	}
}

func (i *SerialInput) Read() (uint32, error) {
	for {
		n, err := i.port.Read(i.buf)
		if n > 0 {
			i.consume(i.buf[:n])
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if err == io.EOF || n < len(i.buf) {
			break
		}
	}

	if !i.hasSample {
		if i.lastErr != nil {
			return 0, i.lastErr
		}
		return 0, ErrNoSample
	}
	if age := i.now().Sub(i.lastAt); age > i.maxAge {
		return 0, fmt.Errorf("%w for %s, last was %d", ErrStaleSample, age, i.last)
	}
	return i.last, nil
}

func (i *SerialInput) consume(data []byte) {
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			i.appendPending(data)
			return
		}
		i.appendPending(data[:idx])
		data = data[idx+1:]

		if !i.discarding {
			line := bytes.TrimSpace(i.pending)
			if len(line) > 0 {
				sample, err := parseSample(string(line))
				if err != nil {
					i.lastErr = err
				} else {
					i.last = sample
					i.lastAt = i.now()
					i.hasSample = true
				}
			}
		}
		i.pending = i.pending[:0]
		i.discarding = false
	}
}

func (i *SerialInput) appendPending(data []byte) {
	if i.discarding {
		return
	}
	if len(i.pending)+len(data) > maxLineLength {
		i.pending = i.pending[:0]
		i.discarding = true
		return
	}
	i.pending = append(i.pending, data...)
}

func (i *SerialInput) Close() error {
	return i.port.Close()
}
