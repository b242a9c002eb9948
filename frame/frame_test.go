package frame

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBitFrame(r *rand.Rand) BitFrame {
	var f BitFrame
	r.Read(f[:])
	return f
}

func randomPwmFrame(r *rand.Rand) PwmFrame {
	var f PwmFrame
	r.Read(f[:])
	return f
}

func TestEncodeBit(t *testing.T) {
	f := BitFrame{0x00, 0xFF, 0x81, 0x3F, 0xC0, 0x01, 0x80, 0x55, 0xAA, 0x0F, 0xF0, 0x7E}
	b := EncodeBit(&f)

	want := BitBuffer{
		0x00,
		0x00, 0x00,
		0xFC, 0x03,
		0x04, 0x02,
		0xFC, 0x00,
		0x00, 0x03,
		0x04, 0x00,
		0x00, 0x02,
		0x54, 0x01,
		0xA8, 0x02,
		0x3C, 0x00,
		0xC0, 0x03,
		0xF8, 0x01,
	}
	assert.Equal(t, want, b)
}

func TestEncodeBitLeadingByte(t *testing.T) {
	for _, on := range []bool{false, true} {
		f := FillBit(on)
		b := EncodeBit(&f)
		assert.Zero(t, b[0], "on=%v", on)
		assert.Len(t, b, 25)
	}
}

func TestBitRoundTrip(t *testing.T) {
	// Every byte value in every column.
	for v := 0; v < 256; v++ {
		var f BitFrame
		for c := range f {
			f[c] = byte(v + c)
		}
		b := EncodeBit(&f)
		for c := 0; c < Cols; c++ {
			lo, hi := b[1+2*c], b[2+2*c]
			require.Equal(t, f[c], hi<<6|lo>>2, "value %d column %d", v, c)
		}
		require.Equal(t, f, DecodeBit(&b))
	}
}

func TestPageAddress(t *testing.T) {
	tests := []struct {
		col  int
		want byte
	}{
		{0, 26},
		{1, 37},
		{5, 81},
		{11, 147},
	}
	for _, tt := range tests {
		if got := PageAddress(tt.col); got != tt.want {
			t.Errorf("PageAddress(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestEncodePwm(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 64; n++ {
		f := randomPwmFrame(r)
		b := EncodePwm(&f)
		require.Len(t, b, 108)
		for c := 0; c < Cols; c++ {
			chunk := b[c*(Rows+1) : (c+1)*(Rows+1)]
			assert.Equal(t, byte(26+11*c), chunk[0], "page address of column %d", c)
			assert.Equal(t, f[c*Rows:(c+1)*Rows], chunk[1:], "data of column %d", c)
		}
	}
}

func TestBitFrameInvert(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for n := 0; n < 64; n++ {
		orig := randomBitFrame(r)
		f := orig
		f.Invert()
		for i := range f {
			require.Equal(t, ^orig[i], f[i])
		}
		f.Invert()
		require.Equal(t, orig, f)
	}
}

func TestPwmFrameInvert(t *testing.T) {
	var f PwmFrame
	for i := range f {
		f[i] = byte(i * 3)
	}
	orig := f
	f.Invert()
	for i := range f {
		if f[i] != 255-orig[i] {
			t.Fatalf("f[%d] = %d, want %d", i, f[i], 255-orig[i])
		}
	}
	f.Invert()
	assert.Equal(t, orig, f)

	// 255-v, not ^v, on the full range.
	for v := 0; v < 256; v++ {
		g := FillPwm(byte(v))
		g.Invert()
		require.Equal(t, byte(255-v), g[0])
		g.Invert()
		require.Equal(t, byte(v), g[0])
	}
}

func TestFillThenInvert(t *testing.T) {
	on := FillBit(true)
	on.Invert()
	assert.Equal(t, FillBit(false), on)

	off := FillBit(false)
	off.Invert()
	assert.Equal(t, FillBit(true), off)

	full := FillPwm(255)
	full.Invert()
	assert.Equal(t, FillPwm(0), full)
}

func TestBitFrameBits(t *testing.T) {
	var f BitFrame
	f.SetBit(0, 0, true)
	f.SetBit(11, 7, true)
	f.SetBit(3, 4, true)
	f.SetBit(3, 4, false)
	f.SetBit(12, 0, true) // out of bounds, ignored
	f.SetBit(0, -1, true) // out of bounds, ignored

	assert.Equal(t, BitFrame{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x80}, f)
	assert.True(t, f.Bit(0, 0))
	assert.True(t, f.Bit(11, 7))
	assert.False(t, f.Bit(3, 4))
	assert.False(t, f.Bit(20, 20))
}

func TestPwmFrameLevels(t *testing.T) {
	var f PwmFrame
	f.SetLevel(2, 5, 0x42)
	f.SetLevel(12, 0, 0xFF) // out of bounds, ignored
	assert.Equal(t, byte(0x42), f[2*Rows+5])
	assert.Equal(t, byte(0x42), f.Level(2, 5))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0x42, 0, 0}, f.Column(2))
	assert.Zero(t, f.Level(-1, 0))
	assert.Nil(t, f.Column(-1))
	assert.Nil(t, f.Column(Cols))
	assert.Len(t, f.Column(Cols-1), Rows)
}

func TestBitModel(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  uint8
	}{
		{"black", color.Black, 0},
		{"white", color.White, 0xFF},
		{"dark gray", color.Gray{Y: 0x7F}, 0},
		{"mid gray", color.Gray{Y: 0x80}, 0xFF},
		{"red", color.RGBA{0xFF, 0, 0, 0xFF}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BitModel.Convert(tt.input).(color.Gray)
			if got.Y != tt.want {
				t.Errorf("BitModel.Convert(%v).Y = %d, want %d", tt.input, got.Y, tt.want)
			}
		})
	}
}

func TestDrawIntoFrames(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, Cols, Rows))
	for x := 0; x < Cols; x++ {
		src.SetGray(x, 0, color.Gray{Y: 0xFF})
		src.SetGray(x, 7, color.Gray{Y: byte(x * 20)})
	}

	var bf BitFrame
	draw.Draw(&bf, bf.Bounds(), src, image.Point{}, draw.Src)
	for x := 0; x < Cols; x++ {
		assert.True(t, bf.Bit(x, 0), "row 0 col %d", x)
		assert.Equal(t, x*20 >= 0x80, bf.Bit(x, 7), "row 7 col %d", x)
	}

	var pf PwmFrame
	draw.Draw(&pf, pf.Bounds(), src, image.Point{}, draw.Src)
	for x := 0; x < Cols; x++ {
		assert.Equal(t, byte(0xFF), pf.Level(x, 0))
		assert.Equal(t, byte(x*20), pf.Level(x, 7))
		assert.Zero(t, pf.Level(x, 3))
	}
}
