package glasses

import (
	"time"

	"periph.io/x/devices/v3/as1130"
)

// settleDelay is the pause after each shutdown/test write during Init.
const settleDelay = 5 * time.Millisecond

// watchdogTimeout is wider than the 5-bit field; the chips see a timeout of 0.
const watchdogTimeout = 64

// startupShutdownTest runs the open/short test on all LEDs at power up and
// leaves the chip in normal operation.
const startupShutdownTest = as1130.TestAll | as1130.AutoTest | as1130.Init | as1130.Shutdown

// step is one entry of the Init sequence. A step either waits, or calls apply
// once per side, left first.
type step struct {
	name  string
	wait  time.Duration
	apply func(d *Dev, s Side) error
}

// onChip adapts a chip operation that is identical on both sides.
func onChip(f func(c *as1130.Dev) error) func(d *Dev, s Side) error {
	return func(d *Dev, s Side) error {
		return f(d.chips[s])
	}
}

var initSequence = []step{
	{name: "shutdown", apply: onChip(func(c *as1130.Dev) error {
		return c.SetShutdownTest(0)
	})},
	{name: "settle", wait: settleDelay},
	{name: "startup test", apply: onChip(func(c *as1130.Dev) error {
		return c.SetShutdownTest(startupShutdownTest)
	})},
	{name: "settle", wait: settleDelay},
	{name: "config", apply: onChip(func(c *as1130.Dev) error {
		return c.SetConfig(as1130.LEDErrorCorrection.WithMemConfig(1))
	})},
	{name: "movie", apply: onChip(func(c *as1130.Dev) error {
		return c.SetMovie(0, 0, false, false)
	})},
	{name: "movie options", apply: onChip(func(c *as1130.Dev) error {
		return c.SetMovieOptions(false, false, false, 0)
	})},
	{name: "movie looping", apply: onChip(func(c *as1130.Dev) error {
		return c.SetMovieLooping(1)
	})},
	{name: "brightness", apply: onChip(func(c *as1130.Dev) error {
		return c.SetBrightness(StartingBrightness)
	})},
	{name: "interrupt mask", apply: onChip(func(c *as1130.Dev) error {
		return c.SetInterruptMask(0)
	})},
	{name: "interrupt frame", apply: onChip(func(c *as1130.Dev) error {
		return c.SetInterruptFrame(0)
	})},
	{name: "watchdog", apply: onChip(func(c *as1130.Dev) error {
		return c.SetWatchdog(watchdogTimeout, true)
	})},
	{name: "clock sync", apply: func(d *Dev, s Side) error {
		// The left chip drives the shared SYNC line.
		dir := as1130.SyncIn
		if s == Left {
			dir = as1130.SyncOut
		}
		return d.chips[s].SetClockSync(as1130.Clock1MHz, dir)
	}},
	{name: "pwm frame", apply: func(d *Dev, s Side) error {
		d.pwm[s].Fill(255)
		return d.chips[s].WritePwmFrame(0, &d.pwm[s])
	}},
	{name: "bit frame", apply: func(d *Dev, s Side) error {
		d.bit[s].Fill(false)
		return d.chips[s].WriteBitFrame(0, &d.bit[s])
	}},
	{name: "blink frame", apply: func(d *Dev, s Side) error {
		return d.chips[s].WriteBlinkFrame(0, &d.bit[s])
	}},
	{name: "picture", apply: onChip(func(c *as1130.Dev) error {
		return c.SetFrame(0, true)
	})},
}
