package frame

import (
	"image"
	"image/color"
)

// Frame dimensions of a single AS1130 chip.
const (
	Cols = 12
	Rows = 8
)

// pwmPageBase is the page address of column 0 in a PWM frame; each further
// column starts pwmPageStride addresses later.
const (
	pwmPageBase   = 26
	pwmPageStride = 11
)

// BitFrame is a 12×8 on/off picture, one byte per column. Bit r is row r.
type BitFrame [Cols]byte

// PwmFrame is a 12×8 intensity picture stored column by column:
// the intensity of (col, row) is at col*Rows + row.
type PwmFrame [Cols * Rows]byte

// BitBuffer is a BitFrame as written to on/off frame memory.
type BitBuffer [Cols*2 + 1]byte

// PwmBuffer is a PwmFrame as written to blink/PWM frame memory.
type PwmBuffer [Cols * (Rows + 1)]byte

// BitModel converts colors to on (Gray 0xFF) or off (Gray 0x00), splitting at
// mid-gray.
var BitModel = color.ModelFunc(toBit)

func toBit(c color.Color) color.Color {
	g := color.GrayModel.Convert(c).(color.Gray)
	if g.Y >= 0x80 {
		return color.Gray{Y: 0xFF}
	}
	return color.Gray{}
}

// Rect is the bounds of every frame.
var Rect = image.Rect(0, 0, Cols, Rows)

// FillBit returns a bit frame with every LED on or off.
func FillBit(on bool) BitFrame {
	var f BitFrame
	f.Fill(on)
	return f
}

// FillPwm returns a PWM frame with every LED at level.
func FillPwm(level byte) PwmFrame {
	var f PwmFrame
	f.Fill(level)
	return f
}

// PageAddress returns the PWM memory page address of column col.
func PageAddress(col int) byte {
	return byte(pwmPageBase + col*pwmPageStride)
}

// EncodeBit lays out f for the on/off frame memory.
//
// The leading byte is the start address within the frame. The chip maps the
// 8 rows of a column onto two registers: rows 0-5 land in bits 2-7 of the
// first, rows 6-7 in bits 0-1 of the second.
func EncodeBit(f *BitFrame) BitBuffer {
	var b BitBuffer
	i := 1
	for _, v := range f {
		b[i] = v << 2
		b[i+1] = v >> 6
		i += 2
	}
	return b
}

// DecodeBit reverses EncodeBit.
func DecodeBit(b *BitBuffer) BitFrame {
	var f BitFrame
	for c := range f {
		lo, hi := b[1+c*2], b[2+c*2]
		f[c] = hi<<6 | lo>>2
	}
	return f
}

// EncodePwm lays out f for the blink/PWM frame memory: every column is
// preceded by its page address.
func EncodePwm(f *PwmFrame) PwmBuffer {
	var b PwmBuffer
	i := 0
	for c := 0; c < Cols; c++ {
		b[i] = PageAddress(c)
		i++
		i += copy(b[i:i+Rows], f[c*Rows:(c+1)*Rows])
	}
	return b
}

// Fill turns every LED on or off.
func (f *BitFrame) Fill(on bool) {
	v := byte(0)
	if on {
		v = 0xFF
	}
	for i := range f {
		f[i] = v
	}
}

// Invert toggles every LED.
func (f *BitFrame) Invert() {
	for i := range f {
		f[i] = ^f[i]
	}
}

// Bit reports whether the LED at (col, row) is on.
func (f *BitFrame) Bit(col, row int) bool {
	if !(image.Point{X: col, Y: row}.In(Rect)) {
		return false
	}
	return f[col]&(1<<uint(row)) != 0
}

// SetBit turns the LED at (col, row) on or off.
func (f *BitFrame) SetBit(col, row int, on bool) {
	if !(image.Point{X: col, Y: row}.In(Rect)) {
		return
	}
	if on {
		f[col] |= 1 << uint(row)
	} else {
		f[col] &^= 1 << uint(row)
	}
}

// ColorModel implements image.Image.
func (f *BitFrame) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (f *BitFrame) Bounds() image.Rectangle {
	return Rect
}

// At implements image.Image.
func (f *BitFrame) At(x, y int) color.Color {
	if f.Bit(x, y) {
		return color.Gray{Y: 0xFF}
	}
	return color.Gray{}
}

// Set implements draw.Image.
func (f *BitFrame) Set(x, y int, c color.Color) {
	f.SetBit(x, y, BitModel.Convert(c).(color.Gray).Y != 0)
}

// Fill sets every LED to level.
func (f *PwmFrame) Fill(level byte) {
	for i := range f {
		f[i] = level
	}
}

// Invert mirrors every intensity around the middle of the range. Intensities
// are linear, so this is 255-v rather than a bitwise complement.
func (f *PwmFrame) Invert() {
	for i := range f {
		f[i] = 255 - f[i]
	}
}

// Level returns the intensity at (col, row).
func (f *PwmFrame) Level(col, row int) byte {
	if !(image.Point{X: col, Y: row}.In(Rect)) {
		return 0
	}
	return f[col*Rows+row]
}

// SetLevel sets the intensity at (col, row).
func (f *PwmFrame) SetLevel(col, row int, level byte) {
	if !(image.Point{X: col, Y: row}.In(Rect)) {
		return
	}
	f[col*Rows+row] = level
}

// Column returns the 8 intensities of column col, or nil if col is out of
// range. The slice aliases f.
func (f *PwmFrame) Column(col int) []byte {
	if col < 0 || col >= Cols {
		return nil
	}
	return f[col*Rows : (col+1)*Rows]
}

// ColorModel implements image.Image.
func (f *PwmFrame) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements image.Image.
func (f *PwmFrame) Bounds() image.Rectangle {
	return Rect
}

// At implements image.Image.
func (f *PwmFrame) At(x, y int) color.Color {
	return color.Gray{Y: f.Level(x, y)}
}

// Set implements draw.Image.
func (f *PwmFrame) Set(x, y int, c color.Color) {
	f.SetLevel(x, y, color.GrayModel.Convert(c).(color.Gray).Y)
}
