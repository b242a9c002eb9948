// Package as1130 controls an AS1130 132-LED matrix driver via I²C.
//
// The AS1130 drives a 12×8 LED matrix from 36 on/off frames, 6 blink/PWM sets
// and a bank of control registers. The banks share one address space and are
// switched by writing to the register select address.
//
// See the examples for how to use this package.
package as1130

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/as1130/frame"
)

// registerSelect chooses the memory bank for subsequent writes.
const registerSelect = 0xFD

// Memory banks, written to registerSelect.
const (
	memOnOffStart  = 0x01 // + frame slot (0-35)
	memBlinkPwm    = 0x40 // + PWM set (0-5)
	memDotCorrect  = 0x80
	memControlRegs = 0xC0
)

// Control registers.
const (
	regPicture          = 0x00
	regMovie            = 0x01
	regMovieMode        = 0x02
	regFrameTime        = 0x03
	regDisplayOption    = 0x04
	regCurrentSource    = 0x05
	regConfig           = 0x06
	regInterruptMask    = 0x07
	regInterruptFrame   = 0x08
	regShutdownOpenShrt = 0x09
	regI2CMonitor       = 0x0A
	regClkSync          = 0x0B
)

// displayOptionScanLimit is the fixed low nibble of the display option
// register: all 12 CS lines scanned.
const displayOptionScanLimit = 0b1011

// Dev is a handle to a single AS1130.
type Dev struct {
	c    conn.Conn
	addr uint16
}

// NewI2C returns a handle to the AS1130 at addr on b.
//
// Nothing is written to the bus.
func NewI2C(b i2c.Bus, addr uint16) *Dev {
	return &Dev{c: &i2c.Dev{Bus: b, Addr: addr}, addr: addr}
}

// Addr returns the I²C address of the chip.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("as1130.Dev{0x%02X}", d.addr)
}

// WriteBuffer sends b to the chip as a single write transaction.
func (d *Dev) WriteBuffer(b []byte) error {
	return d.c.Tx(b, nil)
}

// WriteRegister writes value to reg in the currently selected bank.
func (d *Dev) WriteRegister(reg, value byte) error {
	return d.WriteBuffer([]byte{reg, value})
}

// selectControl switches to the control register bank.
func (d *Dev) selectControl() error {
	return d.WriteRegister(registerSelect, memControlRegs)
}

// writeControl selects the control register bank and writes value to reg.
func (d *Dev) writeControl(reg, value byte) error {
	if err := d.selectControl(); err != nil {
		return err
	}
	return d.WriteRegister(reg, value)
}

// SetFrame selects the on/off frame to display. index is 0-31.
func (d *Dev) SetFrame(index byte, enable bool) error {
	return d.writeControl(regPicture, bit(enable, 6)|index&0b11111)
}

// SetMovie configures the built-in animation: count frames starting at
// start, optionally looping back to the first frame.
func (d *Dev) SetMovie(start, count byte, loop, enable bool) error {
	if err := d.selectControl(); err != nil {
		return err
	}
	if err := d.WriteRegister(regMovie, bit(enable, 6)|start&0b11111); err != nil {
		return err
	}
	// Bit 7 is the blink enable; always set.
	return d.WriteRegister(regMovieMode, 1<<7|bit(loop, 6)|count&0b11111)
}

// SetMovieOptions sets the animation frame delay (0-15) and scroll options.
func (d *Dev) SetMovieOptions(fading, scrollDir, scroll bool, delay byte) error {
	v := bit(fading, 7) | bit(scrollDir, 6) | bit(scroll, 4) | delay&0b1111
	return d.writeControl(regFrameTime, v)
}

// SetMovieLooping sets how many times the movie is played (0-7).
func (d *Dev) SetMovieLooping(loops byte) error {
	return d.writeControl(regDisplayOption, (loops&0b111)<<5|displayOptionScanLimit)
}

// SetBrightness sets the LED current source level.
func (d *Dev) SetBrightness(level byte) error {
	return d.writeControl(regCurrentSource, level)
}

// SetConfig writes the config register.
func (d *Dev) SetConfig(f ConfigFlags) error {
	return d.writeControl(regConfig, byte(f))
}

// SetInterruptMask writes the interrupt mask register.
func (d *Dev) SetInterruptMask(m InterruptMask) error {
	return d.writeControl(regInterruptMask, byte(m))
}

// SetInterruptFrame selects the movie frame (0-31) that raises SelectedPicture.
func (d *Dev) SetInterruptFrame(index byte) error {
	return d.writeControl(regInterruptFrame, index&0b11111)
}

// SetShutdownTest writes the shutdown and open/short test register.
func (d *Dev) SetShutdownTest(s ShutdownTest) error {
	return d.writeControl(regShutdownOpenShrt, byte(s&shutdownTestMask))
}

// SetWatchdog configures the I²C interface monitor. timeout is 5 bits wide.
func (d *Dev) SetWatchdog(timeout byte, enable bool) error {
	return d.writeControl(regI2CMonitor, (timeout&0b11111)<<1|bit(enable, 0))
}

// SetClockSync sets the oscillator speed and the SYNC pin direction.
func (d *Dev) SetClockSync(speed ClockSpeed, dir SyncDir) error {
	return d.writeControl(regClkSync, byte(speed&0b11)<<2|byte(dir&0b11))
}

// WriteBitFrame uploads f to on/off frame slot (0-35).
func (d *Dev) WriteBitFrame(slot byte, f *frame.BitFrame) error {
	if err := d.WriteRegister(registerSelect, memOnOffStart+slot); err != nil {
		return err
	}
	b := frame.EncodeBit(f)
	return d.WriteBuffer(b[:])
}

// WritePwmFrame uploads f to blink/PWM set slot (0-5).
func (d *Dev) WritePwmFrame(slot byte, f *frame.PwmFrame) error {
	if err := d.WriteRegister(registerSelect, memBlinkPwm+slot); err != nil {
		return err
	}
	b := frame.EncodePwm(f)
	return d.WriteBuffer(b[:])
}

// WriteBlinkFrame uploads f as the blink bits of blink/PWM set slot (0-5).
// A lit bit makes the LED blink.
func (d *Dev) WriteBlinkFrame(slot byte, f *frame.BitFrame) error {
	if err := d.WriteRegister(registerSelect, memBlinkPwm+slot); err != nil {
		return err
	}
	b := frame.EncodeBit(f)
	return d.WriteBuffer(b[:])
}

// WriteDotCorrection uploads the dot correction table, one analog current
// scale per column (segment), starting at address 0x00 of the bank.
func (d *Dev) WriteDotCorrection(levels *[frame.Cols]byte) error {
	if err := d.WriteRegister(registerSelect, memDotCorrect); err != nil {
		return err
	}
	b := make([]byte, 1+frame.Cols)
	copy(b[1:], levels[:])
	return d.WriteBuffer(b)
}

// bit returns 1<<pos if b is set.
func bit(b bool, pos uint) byte {
	if b {
		return 1 << pos
	}
	return 0
}
