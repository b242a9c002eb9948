// Package frame holds the per-chip frame types of the AS1130 LED matrix driver
// and the encoders that lay them out for the chip's frame memory.
//
// One AS1130 drives a 12×8 matrix: 12 columns (CS0-CS11) of 8 LEDs each.
//
// BitFrame is the on/off picture. Each of its 12 bytes is a column and bit r
// of that byte is row r:
//
//	column: 0    1    ...  11
//	byte:   0x81 0x00 ...  0xFF
//	        (0x81 = rows 0 and 7 lit)
//
// PwmFrame is the intensity picture, one byte (0-255) per LED, stored column
// by column: index = col*8 + row.
//
// On the wire, a bit frame is split over two bytes per column and a PWM frame
// is prefixed column by column with the page address the chip expects:
//
//	BitBuffer: 0x00, c0<<2, c0>>6, c1<<2, c1>>6, ...                  (25 bytes)
//	PwmBuffer: 26, p[0..8], 37, p[8..16], ..., 147, p[88..96]         (108 bytes)
//
// Both frame types implement draw.Image so the standard image packages can
// render into them:
//
//	var f frame.PwmFrame
//	draw.Draw(&f, f.Bounds(), image.NewUniform(color.Gray{Y: 0x40}), image.Point{}, draw.Src)
//	buf := frame.EncodePwm(&f)
package frame
