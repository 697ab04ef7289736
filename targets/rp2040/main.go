//go:build rp2040 || rp2350

package main

import (
	_ "embed"
	"machine"
	"time"

	"softi2c/app"
	"softi2c/config"
	"softi2c/core"
	"softi2c/i2cs"
)

//go:embed config.json
var configJSON []byte

// newCapture builds the capture backend selected in cfg
func newCapture(cfg *config.Config) core.EdgeCapture {
	if cfg.Backend == config.BackendPIO {
		return newPIOCapture(core.IRQCapture0, machine.Pin(cfg.SDAPin))
	}
	return newGPIOCapture(core.IRQCapture0, machine.Pin(cfg.SDAPin), machine.Pin(cfg.SCLPin))
}

func main() {
	cfg, cfgErr := config.Load(configJSON)
	if cfgErr != nil {
		cfg = config.Default()
	}

	InitClock()
	InitTrace(cfg.Trace)

	if cfgErr != nil {
		core.DebugPrintln("[I2CS] bad config, using defaults: " + cfgErr.Error())
	}

	core.SetLinePinFactory(rpPinFactory{})
	pins := core.MustLinePins()

	demo := app.NewDemo()
	slave := i2cs.New(i2cs.Config{
		Address:    cfg.Address,
		SDA:        pins.OpenDrain(core.GPIOPin(cfg.SDAPin)),
		SCL:        pins.OpenDrain(core.GPIOPin(cfg.SCLPin)),
		Capture:    newCapture(cfg),
		SDAChannel: core.CaptureChannel(cfg.SDAChannel),
		SCLChannel: core.CaptureChannel(cfg.SCLChannel),
	}, demo)
	core.RegisterIRQ(core.IRQCapture0, slave.HandleInterrupt)

	core.DebugPrintln("[I2CS] Start! addr=" + core.HexByte(cfg.Address) + " backend=" + cfg.Backend)
	slave.Start()

	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					core.DebugPrintln("[I2CS] main loop panic")
					core.DumpEventRing()
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
			demo.Flush()
		}()

		time.Sleep(100 * time.Microsecond)
	}
}
