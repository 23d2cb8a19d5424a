package asm

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/twopass/internal"
	"github.com/ezrec/twopass/isa"
)

// LineKind is the kind of machine listing line.
type LineKind int

const (
	LINE_INSTRUCTION = LineKind(0) // Imperative statement.
	LINE_CONSTANT    = LineKind(1) // DC, or a pooled literal.
	LINE_STORAGE     = LineKind(2) // DS reservation.
)

// Line is one line of the machine listing.
type Line struct {
	Address  int
	LineNo   int // Source line; 0 for pooled literals.
	Kind     LineKind
	Opcode   int // Instruction opcode.
	Register int // Instruction register or condition code.
	Memory   int // Instruction memory operand.
	Value    int // Constant value, or reserved word count.
	Text     string
}

// String renders the line contents without the address.
func (ln Line) String() string {
	return ln.Text
}

// Listing is the output of pass 2.
type Listing struct {
	Start  Address // START address, if declared.
	Lines  []Line  // Ordered by address.
	Errors []error // Per-record *ErrRecord failures.
}

// WriteTo writes "AAA : text" lines.
func (listing *Listing) WriteTo(w io.Writer) (n int64, err error) {
	for _, line := range listing.Lines {
		var count int
		count, err = fmt.Fprintf(w, "%03d : %s\n", line.Address, line.Text)
		n += int64(count)
		if err != nil {
			return
		}
	}
	return
}

// Emitter is the pass 2 machine listing generator.
type Emitter struct {
	Verbose bool // If set, logs each emitted line.
}

// Emit resolves the intermediate code of a completed pass 1.
//
// Records that cannot be resolved are left out of the listing and reported
// in Listing.Errors; the only error returned is ErrPassIncomplete.
func (em *Emitter) Emit(ctx *Context) (listing *Listing, err error) {
	if ctx == nil || !ctx.Complete() {
		err = ErrPassIncomplete
		return
	}

	lines, errs := internal.Partition(internal.Concat2(em.records(ctx), em.literals(ctx)))

	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Compare(a.Address, b.Address)
	})

	if em.Verbose {
		for _, line := range lines {
			log.Printf("%03d : %s\n", line.Address, line.Text)
		}
		for _, err := range errs {
			log.Printf("%v\n", err)
		}
	}

	listing = &Listing{
		Start:  ctx.Start,
		Lines:  lines,
		Errors: errs,
	}

	return
}

// records yields a line for every memory occupying record.
func (em *Emitter) records(ctx *Context) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for _, rec := range ctx.Code {
			var line Line
			var err error

			switch rec.Class {
			case isa.CLASS_IMPERATIVE:
				line, err = instruction(ctx, rec)
			case isa.CLASS_DECLARATIVE:
				line, err = declaration(rec)
			case isa.CLASS_DIRECTIVE:
				continue
			default:
				err = ErrUnknownMnemonic(rec.Mnemonic)
			}

			if err != nil {
				err = &ErrRecord{LineNo: rec.LineNo, Location: rec.Location, Err: err}
			}

			if !yield(line, err) {
				return
			}
		}
	}
}

// literals yields a constant line for every pooled literal.
func (em *Emitter) literals(ctx *Context) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for _, lit := range ctx.Literals.Literals() {
			line := Line{
				Address: lit.Address.Value,
				Kind:    LINE_CONSTANT,
				Value:   lit.Value,
				Text:    "DC " + lit.ValueString(),
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

func instruction(ctx *Context, rec Record) (line Line, err error) {
	line = Line{
		Address: rec.Location.Value,
		LineNo:  rec.LineNo,
		Kind:    LINE_INSTRUCTION,
		Opcode:  rec.Code,
	}

	// The first register or condition operand is the register field.
	has_reg := false
	for _, op := range rec.Operands {
		switch op := op.(type) {
		case Register:
			if !has_reg {
				line.Register = op.N
				has_reg = true
			}
		case Condition:
			if !has_reg {
				line.Register = op.Code
				has_reg = true
			}
		case Constant:
			line.Memory = op.Value
		case SymbolRef:
			address, ok := ctx.Symbols.Lookup(op.Name)
			if !ok {
				err = ErrUnresolvedSymbol(op.Name)
				return
			}
			line.Memory = address
		case LiteralRef:
			lit, ok := ctx.Literals.Literal(op.Index)
			if !ok || !lit.Address.Ok {
				err = ErrUnresolvedSymbol(op.String())
				return
			}
			line.Memory = lit.Address.Value
		default:
			err = ErrMalformedExpression(op.String())
			return
		}
	}

	line.Text = fmt.Sprintf("%02d %d %d", line.Opcode, line.Register, line.Memory)

	return
}

func declaration(rec Record) (line Line, err error) {
	line = Line{
		Address: rec.Location.Value,
		LineNo:  rec.LineNo,
	}

	for _, op := range rec.Operands {
		if c, ok := op.(Constant); ok {
			line.Value = c.Value
		}
	}

	switch rec.Mnemonic {
	case isa.DS:
		line.Kind = LINE_STORAGE
	case isa.DC:
		line.Kind = LINE_CONSTANT
	default:
		err = isa.ErrDirectiveInvalid(rec.Mnemonic)
		return
	}

	line.Text = fmt.Sprintf("%v %d", rec.Mnemonic, line.Value)

	return
}
