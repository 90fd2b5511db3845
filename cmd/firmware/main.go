//go:build tinygo

// Command firmware runs the control loop on an RP2040 board: a
// potentiometer on ADC0 sets the speed of a fan on GP15, the duty cycle is
// shown on an SSD1306 and the onboard LED blinks once per second.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/fanduty/fanduty/internal/controller"
	"github.com/fanduty/fanduty/internal/display"
	"github.com/fanduty/fanduty/internal/duty"
	"github.com/fanduty/fanduty/internal/heartbeat"
	"github.com/fanduty/fanduty/internal/pwm"
	"github.com/fanduty/fanduty/internal/util"
	"tinygo.org/x/drivers/ssd1306"
)

const (
	tickPeriod      = 100 * time.Millisecond
	heartbeatPeriod = time.Second
	// 10-bit samples
	fullScale     = 1023
	carrierPeriod = 40 * time.Microsecond

	screenWidth  = 128
	screenHeight = 64
	screenAddr   = 0x3C
)

// adcInput reduces the 16-bit ADC reading to 10 bits.
type adcInput struct {
	adc machine.ADC
}

func (a adcInput) Read() (uint32, error) {
	return uint32(a.adc.Get() >> 6), nil
}

type pwmGroup interface {
	Top() uint32
	Set(channel uint8, value uint32)
}

// pwmOutput drives one channel of a PWM slice. Compare values are scaled
// from [0, max] onto the counter top.
type pwmOutput struct {
	group   pwmGroup
	channel uint8
	max     uint32
	compare uint32
	mode    pwm.Mode
}

func (p *pwmOutput) SetCompare(value uint32) error {
	p.compare = value
	p.write()
	return nil
}

func (p *pwmOutput) SetMode(mode pwm.Mode) error {
	p.mode = mode
	p.write()
	return nil
}

func (p *pwmOutput) write() {
	if p.mode == pwm.ModeDisabled {
		p.group.Set(p.channel, 0)
		return
	}
	p.group.Set(p.channel, util.ScaleUint(p.compare, p.max, p.group.Top()))
}

type pinIndicator struct {
	pin machine.Pin
}

func (i *pinIndicator) Set(on bool) error {
	i.pin.Set(on)
	return nil
}

func halt(message string, err error) {
	for {
		println(message, err.Error())
		time.Sleep(time.Second)
	}
}

func main() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Low()

	machine.InitADC()
	adc := machine.ADC{Pin: machine.ADC0}
	adc.Configure(machine.ADCConfig{})

	// GP14/GP15 are driven by PWM slice 7.
	slice := machine.PWM7
	if err := slice.Configure(machine.PWMConfig{Period: uint64(carrierPeriod)}); err != nil {
		halt("could not configure PWM:", err)
	}
	channel, err := slice.Channel(machine.GP15)
	if err != nil {
		halt("could not get channel for pin:", err)
	}
	output := &pwmOutput{group: slice, channel: channel, max: pwm.DefaultMax}

	if err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	}); err != nil {
		halt("could not configure I2C:", err)
	}
	screen := ssd1306.NewI2C(machine.I2C0)
	screen.Configure(ssd1306.Config{Address: screenAddr, Width: screenWidth, Height: screenHeight})
	screen.ClearDisplay()

	presenter, err := display.NewPresenter(display.NewCanvas(screen), display.DefaultLayout)
	if err != nil {
		halt("invalid display layout:", err)
	}

	mapper, err := duty.NewMapper(fullScale, duty.DefaultThresholds)
	if err != nil {
		halt("invalid duty thresholds:", err)
	}
	driver, err := pwm.NewDriver(output, pwm.DefaultMax)
	if err != nil {
		halt("invalid pwm driver:", err)
	}
	threshold, err := heartbeat.Threshold(heartbeatPeriod, tickPeriod)
	if err != nil {
		halt("invalid heartbeat:", err)
	}

	loop, err := controller.NewLoop(controller.Config{
		Id:                 "fan",
		TickPeriod:         tickPeriod,
		HeartbeatThreshold: threshold,
		WindowSize:         1,
		ShutdownDuty:       duty.Full,
	}, mapper, controller.Peripherals{
		Input:     adcInput{adc: adc},
		Pwm:       driver,
		Presenter: presenter,
		Indicator: &pinIndicator{pin: led},
	}, controller.TimerSleeper{}, nil)
	if err != nil {
		halt("could not create control loop:", err)
	}

	if err := loop.Init(); err != nil {
		halt("could not draw label:", err)
	}
	_ = loop.Run(context.Background())
}
