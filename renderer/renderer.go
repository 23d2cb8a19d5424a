// Package renderer renders the result of a translation in different formats.
package renderer

import (
	"io"

	"github.com/ezrec/twopass/asm"
)

// Renderer defines the interface for rendering a translation report.
type Renderer interface {
	// Render writes the report to the provided writer.
	Render(report *Report, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the renderer for a format name.
func New(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "yaml":
		return NewYAMLRenderer(), nil
	default:
		return nil, ErrFormatInvalid(format)
	}
}

type IntermediateRow struct {
	Location *int   `json:"lc,omitempty" yaml:"lc,omitempty"`
	Code     string `json:"code" yaml:"code"`
}

type SymbolRow struct {
	Name    string `json:"name" yaml:"name"`
	Address *int   `json:"address,omitempty" yaml:"address,omitempty"`
	Defined bool   `json:"defined" yaml:"defined"`
}

type LiteralRow struct {
	Index   int    `json:"index" yaml:"index"`
	Literal string `json:"literal" yaml:"literal"`
	Value   string `json:"value" yaml:"value"`
	Address *int   `json:"address,omitempty" yaml:"address,omitempty"`
	Pool    int    `json:"pool" yaml:"pool"`
}

type PoolRow struct {
	Pool  int `json:"pool" yaml:"pool"`
	Start int `json:"start" yaml:"start"`
}

type MachineRow struct {
	Address int    `json:"address" yaml:"address"`
	Code    string `json:"code" yaml:"code"`
}

// Report is a format independent view of a translation.
type Report struct {
	Intermediate []IntermediateRow `json:"intermediate" yaml:"intermediate"`
	Symbols      []SymbolRow       `json:"symbols" yaml:"symbols"`
	Literals     []LiteralRow      `json:"literals" yaml:"literals"`
	Pools        []PoolRow         `json:"pools" yaml:"pools"`
	Machine      []MachineRow      `json:"machine,omitempty" yaml:"machine,omitempty"`
	Diagnostics  []string          `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Errors       []string          `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func optional(addr asm.Address) *int {
	if v, ok := addr.Get(); ok {
		return &v
	}
	return nil
}

// NewReport collects the tables of a pass 1 context and, when not nil, the
// pass 2 listing.
func NewReport(ctx *asm.Context, listing *asm.Listing) *Report {
	report := &Report{}

	for _, rec := range ctx.Code {
		report.Intermediate = append(report.Intermediate, IntermediateRow{
			Location: optional(rec.Location),
			Code:     rec.String(),
		})
	}

	for sym := range ctx.Symbols.Symbols() {
		report.Symbols = append(report.Symbols, SymbolRow{
			Name:    sym.Name,
			Address: optional(sym.Address),
			Defined: sym.Defined,
		})
	}

	for index, lit := range ctx.Literals.Literals() {
		report.Literals = append(report.Literals, LiteralRow{
			Index:   index,
			Literal: lit.Text,
			Value:   lit.ValueString(),
			Address: optional(lit.Address),
			Pool:    lit.Pool,
		})
	}

	for pool, start := range ctx.Literals.Pools() {
		report.Pools = append(report.Pools, PoolRow{Pool: pool, Start: start})
	}

	for _, err := range ctx.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, err.Error())
	}

	if listing != nil {
		for _, line := range listing.Lines {
			report.Machine = append(report.Machine, MachineRow{Address: line.Address, Code: line.Text})
		}
		for _, err := range listing.Errors {
			report.Errors = append(report.Errors, err.Error())
		}
	}

	return report
}
