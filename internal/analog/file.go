package analog

import (
	"os"

	"github.com/fanduty/fanduty/internal/util"
)

// FileInput reads an integer attribute, e.g. an iio in_voltageX_raw or
// hwmon inX_input file.
type FileInput struct {
	Path string
}

func NewFileInput(path string) (*FileInput, error) {
	expanded, err := util.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileInput{Path: expanded}, nil
}

func (i *FileInput) Read() (uint32, error) {
	data, err := os.ReadFile(i.Path)
	if err != nil {
		return 0, err
	}
	return parseSample(string(data))
}
