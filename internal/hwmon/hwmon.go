package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fanduty/fanduty/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

const (
	DefaultPwmClassPath = "/sys/class/pwm"
	DefaultLedClassPath = "/sys/class/leds"
)

// HwMonController is a hwmon chip exposing voltage inputs or pwm outputs.
type HwMonController struct {
	Name     string
	DType    string
	Platform string
	Path     string

	Inputs  []*VoltageInput
	Outputs []*PwmOutput
}

// VoltageInput is an in*_input attribute usable as analog input.
type VoltageInput struct {
	Label string
	Index int
	Input string
	// millivolts
	Value float64
	Max   float64
}

// PwmOutput is a pwm* attribute usable as pwm output.
type PwmOutput struct {
	Label  string
	Index  int
	Path   string
	Enable string
	Value  int
}

// PwmChip is a generic pwm chip in the pwm class.
type PwmChip struct {
	Name     string
	Path     string
	Channels int
}

// Led is a led class device usable as heartbeat indicator.
type Led struct {
	Name          string
	Path          string
	MaxBrightness int
}

func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		inputs := GetVoltageInputs(chip)
		outputs := FindPwmOutputs(chip.Path)

		if len(inputs) <= 0 && len(outputs) <= 0 {
			continue
		}

		list = append(list, &HwMonController{
			Name:     identifier,
			DType:    util.GetDeviceType(chip.Path),
			Platform: platform,
			Path:     chip.Path,
			Inputs:   inputs,
			Outputs:  outputs,
		})
	}

	return list
}

func GetVoltageInputs(chip gosensors.Chip) []*VoltageInput {
	var inputList []*VoltageInput

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeIn {
			continue
		}

		subfeatures := feature.GetSubFeatures()

		inputSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeInInput)
		if !ok {
			continue
		}

		max := -1.0
		if maxSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeInMax); ok {
			max = maxSubFeature.GetValue() * 1000
		}

		inputList = append(inputList, &VoltageInput{
			Label: util.GetLabel(chip.Path, inputSubFeature.Name),
			Index: len(inputList) + 1,
			Input: filepath.Join(chip.Path, inputSubFeature.Name),
			Value: inputSubFeature.GetValue() * 1000,
			Max:   max,
		})
	}

	return inputList
}

var pwmAttributeRegex = regexp.MustCompile(`^pwm(\d+)$`)

// FindPwmOutputs lists the pwm attributes of a hwmon device directory.
func FindPwmOutputs(devicePath string) []*PwmOutput {
	entries, err := os.ReadDir(devicePath)
	if err != nil {
		return nil
	}

	var outputs []*PwmOutput
	for _, entry := range entries {
		if !pwmAttributeRegex.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(devicePath, entry.Name())
		value, err := util.ReadIntFromFile(path)
		if err != nil {
			value = -1
		}
		outputs = append(outputs, &PwmOutput{
			Label:  util.GetLabel(devicePath, entry.Name()),
			Path:   path,
			Enable: path + "_enable",
			Value:  value,
		})
	}

	sort.Slice(outputs, func(i, j int) bool {
		return channelOf(outputs[i].Path) < channelOf(outputs[j].Path)
	})
	for i, output := range outputs {
		output.Index = i + 1
	}
	return outputs
}

func channelOf(path string) int {
	match := pwmAttributeRegex.FindStringSubmatch(filepath.Base(path))
	if match == nil {
		return -1
	}
	channel, _ := strconv.Atoi(match[1])
	return channel
}

// FindPwmChips lists the chips of the pwm class.
func FindPwmChips(classPath string) []*PwmChip {
	paths, _ := filepath.Glob(filepath.Join(classPath, "pwmchip*"))
	sort.Strings(paths)

	var chips []*PwmChip
	for _, path := range paths {
		channels, err := util.ReadIntFromFile(filepath.Join(path, "npwm"))
		if err != nil {
			continue
		}
		chips = append(chips, &PwmChip{
			Name:     filepath.Base(path),
			Path:     path,
			Channels: channels,
		})
	}
	return chips
}

// FindLeds lists the devices of the led class.
func FindLeds(classPath string) []*Led {
	entries, err := os.ReadDir(classPath)
	if err != nil {
		return nil
	}

	var leds []*Led
	for _, entry := range entries {
		path := filepath.Join(classPath, entry.Name())
		maxBrightness, err := util.ReadIntFromFile(filepath.Join(path, "max_brightness"))
		if err != nil {
			continue
		}
		leds = append(leds, &Led{
			Name:          entry.Name(),
			Path:          path,
			MaxBrightness: maxBrightness,
		})
	}
	return leds
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == input {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name = util.GetDeviceName(devicePath)
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(`.*/platform/[^/]+/`)
	return strings.TrimSuffix(platformRegex.FindString(devicePath), "/")
}
