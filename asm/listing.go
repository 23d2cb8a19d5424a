package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// The four pass 1 tables are written tab separated, each with a header.

// WriteIntermediate writes the intermediate code listing.
func (ctx *Context) WriteIntermediate(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "LC\tIntermediate\n")
	for _, rec := range ctx.Code {
		fmt.Fprintf(bw, "%v\t%v\n", rec.Location, rec)
	}
	return bw.Flush()
}

// WriteSymbols writes the symbol table listing.
func (ctx *Context) WriteSymbols(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Symbol\tAddress\tDefined\n")
	for sym := range ctx.Symbols.Symbols() {
		fmt.Fprintf(bw, "%v\t%v\t%v\n", sym.Name, sym.Address, strconv.FormatBool(sym.Defined))
	}
	return bw.Flush()
}

// WriteLiterals writes the literal table listing, indexed from 1.
func (ctx *Context) WriteLiterals(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Index\tLiteral\tValue\tAddress\tPool\n")
	for index, lit := range ctx.Literals.Literals() {
		fmt.Fprintf(bw, "%d\t%v\t%v\t%v\t%d\n", index, lit.Text, lit.ValueString(), lit.Address, lit.Pool)
	}
	return bw.Flush()
}

// WritePools writes the pool table listing.
func (ctx *Context) WritePools(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "PoolIndex\tLITTABStartIndex\n")
	for index, start := range ctx.Literals.Pools() {
		fmt.Fprintf(bw, "%d\t%d\n", index, start)
	}
	return bw.Flush()
}
