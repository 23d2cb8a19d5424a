package renderer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/twopass/translate"
)

// TextRenderer writes the tab separated tables, one section each.
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

func blank(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Render writes every section of the report.
func (r *TextRenderer) Render(report *Report, output io.Writer) error {
	var text strings.Builder

	text.WriteString("=== Intermediate Code ===\n")
	text.WriteString("LC\tIntermediate\n")
	for _, row := range report.Intermediate {
		fmt.Fprintf(&text, "%s\t%s\n", blank(row.Location), row.Code)
	}

	text.WriteString("\n=== SYMTAB ===\n")
	text.WriteString("Symbol\tAddress\tDefined\n")
	for _, row := range report.Symbols {
		fmt.Fprintf(&text, "%s\t%s\t%t\n", row.Name, blank(row.Address), row.Defined)
	}

	text.WriteString("\n=== LITTAB ===\n")
	text.WriteString("Index\tLiteral\tValue\tAddress\tPool\n")
	for _, row := range report.Literals {
		fmt.Fprintf(&text, "%d\t%s\t%s\t%s\t%d\n", row.Index, row.Literal, row.Value, blank(row.Address), row.Pool)
	}

	text.WriteString("\n=== POOLTAB ===\n")
	text.WriteString("PoolIndex\tLITTABStartIndex\n")
	for _, row := range report.Pools {
		fmt.Fprintf(&text, "%d\t%d\n", row.Pool, row.Start)
	}

	if len(report.Machine) > 0 {
		text.WriteString("\n=== Machine Code ===\n")
		for _, row := range report.Machine {
			fmt.Fprintf(&text, "%03d : %s\n", row.Address, row.Code)
		}
	}

	if len(report.Diagnostics) > 0 || len(report.Errors) > 0 {
		text.WriteString("\n=== Diagnostics ===\n")
		for _, msg := range report.Diagnostics {
			translate.Fprintf(&text, "warning: %s\n", msg)
		}
		for _, msg := range report.Errors {
			translate.Fprintf(&text, "error: %s\n", msg)
		}
	}

	_, err := io.WriteString(output, text.String())
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
