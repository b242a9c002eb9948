// Package glasses drives the two AS1130 chips of a pair of LED glasses, one
// per eye, sharing one I²C bus.
//
// The glasses are a 24×8 display: x 0-11 is the left eye, x 12-23 the right.
// They draw either in bit mode (on/off frames at full PWM) or in PWM mode
// (per-LED intensity with every on/off bit lit).
package glasses

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/as1130"
	"periph.io/x/devices/v3/as1130/frame"
)

// Chip addresses.
const (
	LeftAddr  = 0x30
	RightAddr = 0x37
)

// StartingBrightness is the current source level set by Init.
const StartingBrightness = 16

var (
	// ErrNotReady is returned by operations that need Init to have succeeded.
	ErrNotReady = errors.New("glasses: not initialized")
	// ErrHalted is returned after Halt until the next Init.
	ErrHalted = errors.New("glasses: halted")
	// ErrNilFrame is returned by SetFrames when the frame of the current draw
	// mode is nil.
	ErrNilFrame = errors.New("glasses: nil frame")
)

// Side selects one eye.
type Side int

const (
	Left Side = iota
	Right
)

var sides = [...]Side{Left, Right}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// DrawMode selects which frame memory carries the picture.
type DrawMode int

const (
	// Pwm draws intensities from the PWM set; every on/off bit is lit.
	Pwm DrawMode = iota
	// Bit draws on/off frames; the PWM set is at full intensity.
	Bit
)

func (m DrawMode) String() string {
	switch m {
	case Pwm:
		return "pwm"
	case Bit:
		return "bit"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// ParseDrawMode parses "bit" or "pwm", case insensitively.
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(s) {
	case "pwm":
		return Pwm, nil
	case "bit":
		return Bit, nil
	}
	return 0, fmt.Errorf("glasses: unknown draw mode %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DrawMode) UnmarshalText(b []byte) error {
	v, err := ParseDrawMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m DrawMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// State is the lifecycle state of the glasses.
type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Halted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Opts is the configuration for the glasses.
type Opts struct {
	// Logger receives debug output of every bus step. Nil disables logging.
	Logger *zerolog.Logger
}

// Dev is the handle to both chips of the glasses.
type Dev struct {
	chips [2]*as1130.Dev

	// Last frames written, per side.
	bit [2]frame.BitFrame
	pwm [2]frame.PwmFrame

	brightness byte
	mode       DrawMode
	slot       byte // on/off frame slot used by bit mode
	state      State

	log   zerolog.Logger
	sleep func(time.Duration)
}

var _ display.Drawer = &Dev{}

// New returns a handle to the glasses on b.
//
// Nothing is written to the bus until Init is called. opts can be nil.
func New(b i2c.Bus, opts *Opts) *Dev {
	d := &Dev{
		chips: [2]*as1130.Dev{
			as1130.NewI2C(b, LeftAddr),
			as1130.NewI2C(b, RightAddr),
		},
		brightness: StartingBrightness,
		log:        zerolog.Nop(),
		sleep:      time.Sleep,
	}
	if opts != nil && opts.Logger != nil {
		d.log = opts.Logger.With().Str("dev", "glasses").Logger()
	}
	return d
}

// Chip returns the driver of one eye.
func (d *Dev) Chip(s Side) *as1130.Dev {
	return d.chips[s]
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Mode returns the current draw mode. It is only meaningful when Ready.
func (d *Dev) Mode() DrawMode {
	return d.mode
}

// Brightness returns the last brightness written to both chips.
func (d *Dev) Brightness() byte {
	return d.brightness
}

// Frames returns copies of the last frames written to one eye.
func (d *Dev) Frames(s Side) (frame.BitFrame, frame.PwmFrame) {
	return d.bit[s], d.pwm[s]
}

// Init powers up and configures both chips, leaving them in PWM mode showing
// frame 0 at full intensity with no LED lit.
//
// The first bus error stops the sequence and is returned as is; the chips are
// then left partially configured and Init can be called again.
func (d *Dev) Init() error {
	d.state = Initializing
	for _, st := range initSequence {
		if st.wait > 0 {
			d.log.Debug().Str("step", st.name).Dur("wait", st.wait).Msg("init")
			d.sleep(st.wait)
			continue
		}
		for _, s := range sides {
			d.log.Debug().Str("step", st.name).Stringer("side", s).Msg("init")
			if err := st.apply(d, s); err != nil {
				d.state = Uninitialized
				d.log.Error().Err(err).Str("step", st.name).Stringer("side", s).Msg("init failed")
				return err
			}
		}
	}
	d.brightness = StartingBrightness
	d.mode = Pwm
	d.slot = 0
	d.state = Ready
	return nil
}

// SwitchDrawMode switches both chips to mode. slot is the on/off frame slot
// that carries the bit picture; the PWM picture always lives in PWM set 0.
//
// Switching to Bit blanks the bit frames and lights the PWM set fully;
// switching to Pwm blanks the PWM set and lights every bit. The writes are
// not atomic: a bus error leaves the chips showing a mix of both.
//
// The chips keep displaying the frame selected by Init (slot 0). When slot is
// not 0, call ShowSlot to make it visible.
func (d *Dev) SwitchDrawMode(slot byte, mode DrawMode) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.log.Debug().Stringer("mode", mode).Uint8("slot", slot).Msg("switch draw mode")
	switch mode {
	case Bit:
		if err := d.fillBit(slot, false); err != nil {
			return err
		}
		if err := d.fillPwm(255); err != nil {
			return err
		}
	case Pwm:
		if err := d.fillPwm(0); err != nil {
			return err
		}
		if err := d.fillBit(slot, true); err != nil {
			return err
		}
	default:
		return fmt.Errorf("glasses: unknown draw mode %d", int(mode))
	}
	d.mode = mode
	d.slot = slot
	return nil
}

// ShowSlot makes both chips display the on/off frame slot chosen by the last
// SwitchDrawMode.
func (d *Dev) ShowSlot() error {
	if err := d.ready(); err != nil {
		return err
	}
	for _, s := range sides {
		if err := d.chips[s].SetFrame(d.slot, true); err != nil {
			return err
		}
	}
	return nil
}

// SetBrightness sets the current source level of both chips.
func (d *Dev) SetBrightness(level byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	for _, s := range sides {
		if err := d.chips[s].SetBrightness(level); err != nil {
			return err
		}
	}
	d.brightness = level
	return nil
}

// SetFrames replaces the picture of one eye in the current draw mode and
// uploads it. In bit mode only bf is used, in PWM mode only pf; the other one
// can be nil. A nil frame for the current mode returns ErrNilFrame.
//
// Bit frames land in the slot of the last SwitchDrawMode, see ShowSlot.
func (d *Dev) SetFrames(s Side, bf *frame.BitFrame, pf *frame.PwmFrame) error {
	if err := d.ready(); err != nil {
		return err
	}
	if d.mode == Bit {
		if bf == nil {
			return ErrNilFrame
		}
		d.bit[s] = *bf
	} else {
		if pf == nil {
			return ErrNilFrame
		}
		d.pwm[s] = *pf
	}
	return d.upload(s)
}

// ColorModel implements display.Drawer. It follows the draw mode.
func (d *Dev) ColorModel() color.Model {
	if d.mode == Bit {
		return frame.BitModel
	}
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, 2*frame.Cols, frame.Rows)
}

// Draw implements display.Drawer.
//
// src is rendered into the frames of the current draw mode, and the full
// frames of both eyes are uploaded. In bit mode they go to the slot of the
// last SwitchDrawMode, see ShowSlot.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	orig := dst
	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}
	sp = sp.Add(dst.Min.Sub(orig.Min))
	for _, s := range sides {
		origin := image.Pt(int(s)*frame.Cols, 0)
		r := dst.Intersect(frame.Rect.Add(origin))
		if r.Empty() {
			continue
		}
		local := r.Sub(origin)
		p := sp.Add(r.Min.Sub(dst.Min))
		if d.mode == Bit {
			draw.Draw(&d.bit[s], local, src, p, draw.Src)
		} else {
			draw.Draw(&d.pwm[s], local, src, p, draw.Src)
		}
	}
	for _, s := range sides {
		if err := d.upload(s); err != nil {
			return err
		}
	}
	return nil
}

// Halt puts both chips in shutdown.
//
// The state only becomes Halted once both chips accepted the write; on error
// it is unchanged and Halt can be retried.
func (d *Dev) Halt() error {
	for _, s := range sides {
		if err := d.chips[s].SetShutdownTest(0); err != nil {
			return err
		}
	}
	d.state = Halted
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("glasses.Dev{%s, %s}", d.chips[Left], d.chips[Right])
}

func (d *Dev) ready() error {
	switch d.state {
	case Ready:
		return nil
	case Halted:
		return ErrHalted
	}
	return ErrNotReady
}

// upload writes the frame of the current draw mode of one eye.
func (d *Dev) upload(s Side) error {
	if d.mode == Bit {
		return d.chips[s].WriteBitFrame(d.slot, &d.bit[s])
	}
	return d.chips[s].WritePwmFrame(0, &d.pwm[s])
}

// fillBit fills the bit frames of both eyes and writes them to slot.
func (d *Dev) fillBit(slot byte, on bool) error {
	for _, s := range sides {
		d.bit[s].Fill(on)
	}
	for _, s := range sides {
		if err := d.chips[s].WriteBitFrame(slot, &d.bit[s]); err != nil {
			return err
		}
	}
	return nil
}

// fillPwm fills the PWM frames of both eyes and writes them to PWM set 0.
func (d *Dev) fillPwm(level byte) error {
	for _, s := range sides {
		d.pwm[s].Fill(level)
	}
	for _, s := range sides {
		if err := d.chips[s].WritePwmFrame(0, &d.pwm[s]); err != nil {
			return err
		}
	}
	return nil
}
