// Package as1130 controls an AS1130 LED matrix driver via I²C.
//
// The AS1130 drives up to 132 LEDs arranged as a 12×8 matrix (plus 12 extra
// LEDs that this driver does not address). The picture lives in on-chip RAM:
// 36 on/off frames, 6 blink/PWM sets and a dot correction table, next to a
// bank of control registers. A write to the register select address (0xFD)
// picks which of these the following writes land in.
//
// # Register Protocol
//
// Every setting method writes two I²C transactions or more:
//
//	[0xFD, 0xC0]        select the control register bank
//	[register, value]   write the setting
//
// Values are bit packed as the datasheet describes. Inputs wider than their
// field are masked, never rejected, the same way the chip ignores extra bits.
//
// Frame uploads select the frame's bank and then send the whole frame in one
// transaction:
//
//	[0xFD, 0x01+slot]   on/off frame slot
//	frame.EncodeBit(f)  25 bytes
//
//	[0xFD, 0x40+slot]   blink/PWM set
//	frame.EncodePwm(f)  108 bytes
//
// # Errors
//
// The first failing bus write stops the operation and its error is returned
// as is. Nothing is retried and nothing already written is undone.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/as1130"
//		"periph.io/x/devices/v3/as1130/frame"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		bus, _ := i2creg.Open("")
//		defer bus.Close()
//
//		dev := as1130.NewI2C(bus, 0x30)
//		dev.SetShutdownTest(as1130.Shutdown)
//		dev.SetConfig(as1130.LEDErrorCorrection.WithMemConfig(1))
//		dev.SetBrightness(32)
//
//		f := frame.FillBit(true)
//		dev.WriteBitFrame(0, &f)
//		dev.SetFrame(0, true)
//	}
//
// Two chips sharing one SYNC line are best driven together through package
// glasses, which owns the power-up sequence and the draw modes.
//
// # Datasheet
//
// Register descriptions and timing are in the ams AS1130 datasheet.
package as1130
