// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/ezrec/twopass/isa"
)

// Context is the state of one translation run.
type Context struct {
	LC          int           // Location counter.
	Start       Address       // Address declared by START.
	Symbols     *SymbolTable  // Symbol table.
	Literals    *LiteralTable // Literal and pool tables.
	Code        []Record      // Intermediate code, in source order.
	Diagnostics []error       // Non-fatal problems, in source order.

	complete bool
}

// NewContext returns a context with empty tables.
func NewContext() *Context {
	return &Context{
		Symbols:  NewSymbolTable(),
		Literals: NewLiteralTable(),
	}
}

// Complete reports if pass 1 finished, including the final literal flush.
func (ctx *Context) Complete() bool {
	return ctx.complete
}

// Translator is the pass 1 intermediate code generator.
type Translator struct {
	Verbose bool       // If set, logs each source line.
	Table   *isa.Table // Instruction set.
}

// NewTranslator creates a translator for an instruction set.
// A nil table selects isa.Default().
func NewTranslator(table *isa.Table) *Translator {
	if table == nil {
		table = isa.Default()
	}
	return &Translator{Table: table}
}

// Pass1 reads source text and builds the tables and intermediate code.
//
// On a fatal error the partial context is returned together with an
// *ErrSyntax, and the context is not Complete.
func (tr *Translator) Pass1(input io.Reader) (ctx *Context, err error) {
	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		ctx = NewContext()
		err = &ErrSyntax{LineNo: len(lines) + 1, Err: err}
		return
	}

	return tr.Pass1Lines(lines)
}

// Pass1Lines is Pass1 over lines already split.
func (tr *Translator) Pass1Lines(lines []string) (ctx *Context, err error) {
	ctx = NewContext()

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ended := false
	for n, text := range lines {
		lineno = n + 1
		line = strings.TrimSpace(text)

		if tr.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		stmt, ok := Tokenize(text, tr.Table)
		if !ok {
			continue
		}

		ended, err = tr.statement(ctx, stmt, lineno, line)
		if err != nil {
			return
		}
		if ended {
			break
		}
	}

	if !ended {
		ctx.Diagnostics = append(ctx.Diagnostics, &ErrSyntax{LineNo: lineno, Line: line, Err: ErrEndMissing})
		ctx.LC = ctx.Literals.Flush(ctx.LC)
	}

	ctx.complete = true

	return
}

// emit appends a record; a located record is placed at the location counter.
func (ctx *Context) emit(located bool, rec Record) {
	if located {
		rec.Location = At(ctx.LC)
	}
	ctx.Code = append(ctx.Code, rec)
}

// statement processes one tokenized line. Returns true at END.
func (tr *Translator) statement(ctx *Context, stmt Statement, lineno int, line string) (ended bool, err error) {
	op, ok := tr.Table.Opcode(stmt.Mnemonic)

	if len(stmt.Label) > 0 && !(ok && stmt.Mnemonic == isa.EQU) {
		ctx.Symbols.Define(stmt.Label, ctx.LC)
	}

	if len(stmt.Mnemonic) == 0 {
		return
	}

	rec := Record{
		LineNo:   lineno,
		Class:    op.Class,
		Code:     op.Code,
		Mnemonic: stmt.Mnemonic,
	}

	if !ok {
		rec.Class = isa.CLASS_UNKNOWN
		ctx.Diagnostics = append(ctx.Diagnostics, &ErrSyntax{
			LineNo: lineno,
			Line:   line,
			Err:    ErrUnknownMnemonic(rec.Mnemonic),
		})
		ctx.emit(true, rec)
		ctx.LC++
		return
	}

	switch op.Class {
	case isa.CLASS_DIRECTIVE:
		ended, err = tr.directive(ctx, stmt, rec)
	case isa.CLASS_DECLARATIVE:
		err = tr.declarative(ctx, stmt, rec)
	default:
		err = tr.imperative(ctx, stmt, rec)
	}

	return
}

// operand returns the single optional operand of a directive.
func operand(stmt Statement) (word string, ok bool, err error) {
	switch len(stmt.Operands) {
	case 0:
		return
	case 1:
		return stmt.Operands[0], true, nil
	default:
		err = ErrOperandExtra
		return
	}
}

func (tr *Translator) directive(ctx *Context, stmt Statement, rec Record) (ended bool, err error) {
	word, has_word, err := operand(stmt)
	if err != nil {
		return
	}

	switch stmt.Mnemonic {
	case isa.START:
		start := 0
		if has_word {
			start, err = parseNumber(word)
			if err != nil {
				return
			}
		}
		ctx.LC = start
		ctx.Start = At(start)
		rec.Operands = []Operand{Constant{start}}
		ctx.emit(false, rec)
	case isa.ORIGIN:
		if !has_word {
			err = ErrOperandMissing
			return
		}
		var target int
		target, err = Evaluate(word, ctx.Symbols)
		if err != nil {
			return
		}
		rec.Operands = []Operand{Constant{target}}
		ctx.emit(false, rec)
		ctx.LC = target
	case isa.EQU:
		if len(stmt.Label) == 0 {
			err = ErrMissingLabel
			return
		}
		if !has_word {
			err = ErrOperandMissing
			return
		}
		var value int
		value, err = Evaluate(word, ctx.Symbols)
		if err != nil {
			return
		}
		ctx.Symbols.Define(stmt.Label, value)
		rec.Operands = []Operand{Constant{value}}
		ctx.emit(false, rec)
	case isa.LTORG:
		ctx.emit(false, rec)
		ctx.LC = ctx.Literals.Flush(ctx.LC)
	case isa.END:
		ctx.emit(false, rec)
		ctx.LC = ctx.Literals.Flush(ctx.LC)
		ended = true
	default:
		err = isa.ErrDirectiveInvalid(stmt.Mnemonic)
	}

	return
}

func (tr *Translator) declarative(ctx *Context, stmt Statement, rec Record) (err error) {
	word, has_word, err := operand(stmt)
	if err != nil {
		return
	}

	value := 1
	if has_word {
		value, err = parseNumber(word)
		if err != nil {
			return
		}
	}

	// DS reserves a non-negative count.
	if stmt.Mnemonic == isa.DS && value < 0 {
		err = ErrParseNumber(word)
		return
	}

	rec.Operands = []Operand{Constant{value}}
	ctx.emit(true, rec)

	switch stmt.Mnemonic {
	case isa.DS:
		ctx.LC += value
	case isa.DC:
		ctx.LC++
	default:
		err = isa.ErrDirectiveInvalid(stmt.Mnemonic)
	}

	return
}

func (tr *Translator) imperative(ctx *Context, stmt Statement, rec Record) (err error) {
	for _, word := range stmt.Operands {
		rec.Operands = append(rec.Operands, tr.classify(ctx, word))
	}

	ctx.emit(true, rec)
	ctx.LC++

	return
}

// classify tags an instruction operand. Symbols are declared, not resolved.
func (tr *Translator) classify(ctx *Context, word string) Operand {
	if n, ok := tr.Table.Register(word); ok {
		return Register{n}
	}

	if isLiteral(word) {
		return LiteralRef{ctx.Literals.Intern(word)}
	}

	if n, err := strconv.Atoi(word); err == nil {
		return Constant{n}
	}

	if n, ok := tr.Table.Condition(word); ok {
		return Condition{Name: strings.ToUpper(word), Code: n}
	}

	ctx.Symbols.DeclareIfAbsent(word)
	return SymbolRef{word}
}

// parseNumber accepts 5 and '5'.
func parseNumber(word string) (value int, err error) {
	text := word
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		text = text[1 : len(text)-1]
	}
	value, err = strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}
