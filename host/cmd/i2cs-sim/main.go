// Command i2cs-sim runs a scripted I2C master against the slave engine
// and the demo application on a simulated bus.
package main

import (
	"flag"
	"fmt"
	"os"

	"softi2c/app"
	"softi2c/config"
	"softi2c/core"
	"softi2c/i2cs"
	"softi2c/sim"
)

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults to the firmware defaults)")
	scriptPath := flag.String("script", "", "master script file")
	inline := flag.String("e", "", "inline master script, e.g. \"tx 37 00 read 4\"")
	trace := flag.Bool("trace", true, "print bus events")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fatalf("Failed to read config: %v", err)
		}
		if cfg, err = config.Load(data); err != nil {
			fatalf("Invalid config: %v", err)
		}
	}

	src := *inline
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			fatalf("Failed to read script: %v", err)
		}
		src = string(data)
	}
	if src == "" {
		fatalf("No script given, use -script or -e")
	}

	cmds, err := sim.ParseScript(src)
	if err != nil {
		fatalf("%v", err)
	}

	core.SetDebugWriter(func(s string) { fmt.Println(s) })
	core.SetDebugEnabled(true)
	core.SetEventTrace(*trace)

	bus := sim.NewBus(core.IRQCapture0,
		core.CaptureChannel(cfg.SDAChannel), core.CaptureChannel(cfg.SCLChannel))
	sda, scl := bus.SlavePins()
	demo := app.NewDemo()
	slave := i2cs.New(i2cs.Config{
		Address:    cfg.Address,
		SDA:        sda,
		SCL:        scl,
		Capture:    bus.Capture,
		SDAChannel: bus.SDAChannel,
		SCLChannel: bus.SCLChannel,
	}, demo)
	core.RegisterIRQ(core.IRQCapture0, slave.HandleInterrupt)
	slave.Start()

	fmt.Printf("slave addr=%s sda=ch%d scl=ch%d\n", core.HexByte(cfg.Address), cfg.SDAChannel, cfg.SCLChannel)

	master := bus.NewMaster()
	events := make([]core.BusEvent, 16)
	failed := false
	for _, cmd := range cmds {
		steps, runErr := sim.Run(master, []sim.Command{cmd})
		for _, step := range steps {
			printStep(step)
			if step.Err != nil {
				failed = true
			}
		}
		for n := core.DrainEvents(events); n > 0; n = core.DrainEvents(events) {
			for _, evt := range events[:n] {
				fmt.Println(core.FormatEvent(evt))
			}
		}
		demo.Flush()
		if runErr != nil {
			break
		}
	}

	st := slave.Stats()
	fmt.Printf("transactions=%d stops=%d rx=%d tx=%d nacks=%d master_nacks=%d mismatches=%d lost=%d\n",
		st.Transactions, st.Stops, st.BytesReceived, st.BytesTransmitted,
		st.Nacks, st.MasterNacks, st.AddressMismatches, core.LostEvents())
	if master.Open() {
		fmt.Println("warning: script left the bus open")
	}
	if failed {
		os.Exit(1)
	}
}

func printStep(step sim.Step) {
	line := fmt.Sprintf("%3d: %s", step.Cmd.Line, step.Cmd.Op)
	switch step.Cmd.Op {
	case sim.OpWrite:
		for i, b := range step.Cmd.Data {
			mark := "+"
			if i < len(step.Acks) && !step.Acks[i] {
				mark = "-"
			}
			line += " " + core.HexByte(b) + mark
		}
	case sim.OpTx:
		line += " addr=" + core.HexByte(uint8(step.Cmd.Addr))
		for _, b := range step.Cmd.Data {
			line += " " + core.HexByte(b)
		}
	}
	if len(step.Data) > 0 {
		line += " ->"
		for _, b := range step.Data {
			line += " " + core.HexByte(b)
		}
	}
	if step.Err != nil {
		line += " (" + step.Err.Error() + ")"
	}
	fmt.Println(line)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
