package as1130

import (
	"fmt"
	"strings"
)

// ConfigFlags is the value of the AS1130 config register.
//
// Bits 0-2 hold the memory configuration, which decides how many frames and
// PWM sets fit in RAM. Use WithMemConfig to set them.
type ConfigFlags byte

const (
	LowVddReset        ConfigFlags = 1 << 7
	LowVddStatus       ConfigFlags = 1 << 6
	LEDErrorCorrection ConfigFlags = 1 << 5
	DotCorrection      ConfigFlags = 1 << 4
	CommonAddress      ConfigFlags = 1 << 3

	memConfigMask ConfigFlags = 0b111
)

// WithMemConfig returns f with the memory configuration bits replaced by
// memConfig. Only the low 3 bits of memConfig are used.
func (f ConfigFlags) WithMemConfig(memConfig byte) ConfigFlags {
	return f&^memConfigMask | ConfigFlags(memConfig)&memConfigMask
}

// MemConfig returns the memory configuration bits.
func (f ConfigFlags) MemConfig() byte {
	return byte(f & memConfigMask)
}

func (f ConfigFlags) String() string {
	s := formatFlags(byte(f&^memConfigMask), configNames[:])
	return fmt.Sprintf("%s|mem%d", s, f.MemConfig())
}

var configNames = [8]string{
	7: "LowVddReset",
	6: "LowVddStatus",
	5: "LEDErrorCorrection",
	4: "DotCorrection",
	3: "CommonAddress",
}

// InterruptMask selects which events raise the IRQ pin.
type InterruptMask byte

const (
	SelectedPicture InterruptMask = 1 << 7
	Watchdog        InterruptMask = 1 << 6
	PowerOnReset    InterruptMask = 1 << 5
	OverTemperature InterruptMask = 1 << 4
	LowVdd          InterruptMask = 1 << 3
	OpenError       InterruptMask = 1 << 2
	ShortError      InterruptMask = 1 << 1
	MovieFinished   InterruptMask = 1 << 0
)

func (m InterruptMask) String() string {
	return formatFlags(byte(m), interruptNames[:])
}

var interruptNames = [8]string{
	"MovieFinished",
	"ShortError",
	"OpenError",
	"LowVdd",
	"OverTemperature",
	"PowerOnReset",
	"Watchdog",
	"SelectedPicture",
}

// ShutdownTest is the value of the shutdown and open/short register.
//
// Shutdown set means normal operation; cleared puts the chip in shutdown.
type ShutdownTest byte

const (
	TestAll    ShutdownTest = 1 << 4
	AutoTest   ShutdownTest = 1 << 3
	ManualTest ShutdownTest = 1 << 2
	Init       ShutdownTest = 1 << 1
	Shutdown   ShutdownTest = 1 << 0

	shutdownTestMask ShutdownTest = 0b11111
)

func (s ShutdownTest) String() string {
	return formatFlags(byte(s), shutdownNames[:])
}

var shutdownNames = [8]string{
	"Shutdown",
	"Init",
	"ManualTest",
	"AutoTest",
	"TestAll",
}

// ClockSpeed is the internal oscillator frequency.
type ClockSpeed byte

const (
	Clock1MHz   ClockSpeed = 0b00
	Clock500kHz ClockSpeed = 0b01
	Clock125kHz ClockSpeed = 0b10
	Clock32kHz  ClockSpeed = 0b11
)

func (c ClockSpeed) String() string {
	switch c & 0b11 {
	case Clock1MHz:
		return "1MHz"
	case Clock500kHz:
		return "500kHz"
	case Clock125kHz:
		return "125kHz"
	default:
		return "32kHz"
	}
}

// SyncDir is the direction of the SYNC pin. Chips sharing a SYNC line need
// exactly one SyncOut.
type SyncDir byte

const (
	SyncIn  SyncDir = 0b01
	SyncOut SyncDir = 0b10
)

func (d SyncDir) String() string {
	switch d {
	case 0:
		return "SyncOff"
	case SyncIn:
		return "SyncIn"
	case SyncOut:
		return "SyncOut"
	}
	return fmt.Sprintf("SyncDir(%d)", byte(d))
}

// formatFlags joins the names of the set bits of v, highest bit first.
// Bits without a name are printed by position.
func formatFlags(v byte, names []string) string {
	if v == 0 {
		return "0"
	}
	var parts []string
	for bit := 7; bit >= 0; bit-- {
		if v&(1<<uint(bit)) == 0 {
			continue
		}
		if names[bit] != "" {
			parts = append(parts, names[bit])
		} else {
			parts = append(parts, fmt.Sprintf("bit%d", bit))
		}
	}
	return strings.Join(parts, "|")
}
