package analog

import (
	"fmt"
	"time"

	"github.com/fanduty/fanduty/internal/util"
)

const DefaultCmdTimeout = 2 * time.Second

// CmdInput runs an executable and parses its output as a sample. The
// executable must be owned by root and not be writable by others.
type CmdInput struct {
	Exec    string
	Args    []string
	Timeout time.Duration
}

func (i *CmdInput) Read() (uint32, error) {
	timeout := i.Timeout
	if timeout <= 0 {
		timeout = DefaultCmdTimeout
	}
	output, err := util.SafeCmdExecution(i.Exec, i.Args, timeout)
	if err != nil {
		return 0, err
	}
	sample, err := parseSample(output)
	if err != nil {
		return 0, fmt.Errorf("command %s: %w", i.Exec, err)
	}
	return sample, nil
}
