// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator executes the machine listing produced by pass 2.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/ezrec/twopass/asm"
	"github.com/ezrec/twopass/isa"
)

// Emulator state. Registers, condition flag, and word addressed memory.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Table   *isa.Table   // Instruction set the listing was assembled with.
	Listing *asm.Listing // Currently loaded listing.

	Input  io.Reader // Source of READ values.
	Output io.Writer // Destination of PRINT values.

	Ip       int         // Address of the next instruction.
	Register map[int]int // Register contents by register number.
	Flag     int         // Sign of the last arithmetic result.
	Ticks    int         // Instructions executed since Reset.

	memory map[int]int
	code   map[int]asm.Line
}

// NewEmulator creates a new emulator for the default instruction set.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Table:   isa.Default(),
		Listing: &asm.Listing{},
	}

	return
}

// Load a listing and reset.
func (emu *Emulator) Load(listing *asm.Listing) {
	emu.Listing = listing
	emu.Reset()
}

// Reset the machine state to the loaded listing.
func (emu *Emulator) Reset() {
	emu.memory = map[int]int{}
	emu.code = map[int]asm.Line{}
	emu.Register = map[int]int{}
	emu.Flag = 0
	emu.Ticks = 0

	var entry []int
	for _, line := range emu.Listing.Lines {
		switch line.Kind {
		case asm.LINE_INSTRUCTION:
			emu.code[line.Address] = line
			entry = append(entry, line.Address)
		case asm.LINE_CONSTANT:
			emu.memory[line.Address] = line.Value
		case asm.LINE_STORAGE:
			for n := range line.Value {
				emu.memory[line.Address+n] = 0
			}
		}
	}

	// START is the entry point only when an instruction is there.
	start, ok := emu.Listing.Start.Get()
	_, is_code := emu.code[start]
	switch {
	case ok && is_code:
		emu.Ip = start
	case len(entry) > 0:
		emu.Ip = slices.Min(entry)
	case ok:
		emu.Ip = start
	default:
		emu.Ip = 0
	}
}

// Memory returns the word at an address.
func (emu *Emulator) Memory(address int) int {
	return emu.memory[address]
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.code[emu.Ip].LineNo
}

// holds tests a branch condition against the flag.
func (emu *Emulator) holds(cond int) (ok bool, err error) {
	var name string
	for n, code := range emu.Table.Conditions {
		if code == cond {
			name = n
			break
		}
	}

	switch name {
	case "LT":
		ok = emu.Flag < 0
	case "LE":
		ok = emu.Flag <= 0
	case "EQ":
		ok = emu.Flag == 0
	case "GT":
		ok = emu.Flag > 0
	case "GE":
		ok = emu.Flag >= 0
	case "ANY":
		ok = true
	default:
		err = ErrOpcodeInvalid
	}

	return
}

func (emu *Emulator) setFlag(value int) {
	switch {
	case value < 0:
		emu.Flag = -1
	case value > 0:
		emu.Flag = 1
	default:
		emu.Flag = 0
	}
}

// Tick executes a single instruction. done is set once STOP executes.
func (emu *Emulator) Tick() (done bool, err error) {
	ip := emu.Ip
	line, ok := emu.code[ip]

	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: ip, LineNo: line.LineNo, Err: err}
		}
	}()

	if !ok {
		err = ErrIpInvalid
		return
	}

	name, ok := emu.Table.Mnemonic(line.Opcode)
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	if emu.Verbose {
		log.Printf("%03d: %v %v\n", ip, name, line.Text)
	}

	emu.Ticks++
	emu.Ip++

	reg := line.Register
	mem := line.Memory

	switch name {
	case isa.STOP:
		done = true
	case isa.ADD:
		emu.Register[reg] += emu.memory[mem]
		emu.setFlag(emu.Register[reg])
	case isa.SUB:
		emu.Register[reg] -= emu.memory[mem]
		emu.setFlag(emu.Register[reg])
	case isa.MULT:
		emu.Register[reg] *= emu.memory[mem]
		emu.setFlag(emu.Register[reg])
	case isa.DIV:
		if emu.memory[mem] == 0 {
			err = ErrDivideByZero
			return
		}
		emu.Register[reg] /= emu.memory[mem]
		emu.setFlag(emu.Register[reg])
	case isa.MOVER:
		emu.Register[reg] = emu.memory[mem]
		emu.setFlag(emu.Register[reg])
	case isa.MOVEM:
		emu.memory[mem] = emu.Register[reg]
	case isa.BC:
		var taken bool
		taken, err = emu.holds(reg)
		if err != nil {
			return
		}
		if taken {
			emu.Ip = mem
		}
	case isa.READ:
		var value int
		if emu.Input == nil {
			err = ErrInputEOF
			return
		}
		_, err = fmt.Fscan(emu.Input, &value)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrInputEOF
		}
		if err != nil {
			return
		}
		emu.memory[mem] = value
	case isa.PRINT:
		if emu.Output != nil {
			_, err = fmt.Fprintln(emu.Output, emu.memory[mem])
		}
	default:
		err = ErrOpcodeInvalid
	}

	return
}

// Run executes until STOP. A positive maxTicks bounds the instruction count.
func (emu *Emulator) Run(maxTicks int) (err error) {
	for {
		if maxTicks > 0 && emu.Ticks >= maxTicks {
			err = &ErrRuntime{Address: emu.Ip, LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
