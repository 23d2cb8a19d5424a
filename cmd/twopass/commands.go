package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ezrec/twopass/asm"
	"github.com/ezrec/twopass/emulator"
	"github.com/ezrec/twopass/isa"
	"github.com/ezrec/twopass/renderer"
)

var (
	IsaFlag = &cli.PathFlag{
		Name:     "isa",
		Usage:    "Path to a YAML instruction set table. Default: built-in",
		Required: false,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Verbose mode",
		Value:   false,
	}
	OutputDirFlag = &cli.PathFlag{
		Name:  "output-dir",
		Usage: "Directory for IC.txt, SYMTAB.txt, LITTAB.txt and POOLTAB.txt",
		Value: ".",
	}
	FormatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "format of the output. Options: text, json, yaml",
		Value: "text",
	}
	OutputFlag = &cli.PathFlag{
		Name:  "output",
		Usage: "output file path for the report. Default: stdout",
	}
	MaxTicksFlag = &cli.IntFlag{
		Name:  "max-ticks",
		Usage: "instruction limit, 0 for none",
		Value: 100000,
	}
)

var Pass1Command = &cli.Command{
	Name:      "pass1",
	Usage:     "Writes the intermediate code and the symbol, literal and pool tables",
	ArgsUsage: "FILE",
	Action:    Pass1,
	Flags:     []cli.Flag{IsaFlag, VerboseFlag, OutputDirFlag},
}

var AssembleCommand = &cli.Command{
	Name:      "assemble",
	Usage:     "Runs both passes and reports the tables and machine listing",
	ArgsUsage: "FILE",
	Action:    Assemble,
	Flags:     []cli.Flag{IsaFlag, VerboseFlag, FormatFlag, OutputFlag},
}

var RunCommand = &cli.Command{
	Name:      "run",
	Usage:     "Assembles and executes a program, using stdin and stdout for READ and PRINT",
	ArgsUsage: "FILE",
	Action:    Run,
	Flags:     []cli.Flag{IsaFlag, VerboseFlag, MaxTicksFlag},
}

// loadTable returns the instruction set selected by --isa.
func loadTable(ctx *cli.Context) (*isa.Table, error) {
	path := ctx.Path(IsaFlag.Name)
	if path == "" {
		return isa.Default(), nil
	}
	return isa.LoadFile(path)
}

// source opens the FILE argument; "-" or no argument reads the app input.
func source(ctx *cli.Context) (io.ReadCloser, error) {
	if ctx.NArg() > 1 {
		return nil, fmt.Errorf("unknown arguments: %v", ctx.Args().Tail())
	}
	path := ctx.Args().First()
	if path == "" || path == "-" {
		return io.NopCloser(ctx.App.Reader), nil
	}
	inf, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open source: %w", err)
	}
	return inf, nil
}

// translate runs pass 1 over the FILE argument.
func translate(ctx *cli.Context) (*asm.Context, *isa.Table, error) {
	table, err := loadTable(ctx)
	if err != nil {
		return nil, nil, err
	}

	inf, err := source(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer inf.Close()

	tr := asm.NewTranslator(table)
	tr.Verbose = ctx.Bool(VerboseFlag.Name)

	pass, err := tr.Pass1(inf)
	if err != nil {
		return nil, nil, fmt.Errorf("pass 1 failed: %w", err)
	}

	return pass, table, nil
}

// emit runs pass 2.
func emit(ctx *cli.Context, pass *asm.Context) (*asm.Listing, error) {
	em := &asm.Emitter{Verbose: ctx.Bool(VerboseFlag.Name)}
	listing, err := em.Emit(pass)
	if err != nil {
		return nil, fmt.Errorf("pass 2 failed: %w", err)
	}
	return listing, nil
}

func Pass1(ctx *cli.Context) error {
	pass, _, err := translate(ctx)
	if err != nil {
		return err
	}

	dir := ctx.Path(OutputDirFlag.Name)
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"IC.txt", pass.WriteIntermediate},
		{"SYMTAB.txt", pass.WriteSymbols},
		{"LITTAB.txt", pass.WriteLiterals},
		{"POOLTAB.txt", pass.WritePools},
	}

	for _, file := range files {
		err = writeFile(filepath.Join(dir, file.name), file.write)
		if err != nil {
			return err
		}
	}

	return renderer.NewTextRenderer().Render(renderer.NewReport(pass, nil), ctx.App.Writer)
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	ouf, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to open output file: %w", err)
	}
	defer func() {
		if cerr := ouf.Close(); err == nil {
			err = cerr
		}
	}()

	return write(ouf)
}

func Assemble(ctx *cli.Context) error {
	pass, _, err := translate(ctx)
	if err != nil {
		return err
	}

	listing, err := emit(ctx, pass)
	if err != nil {
		return err
	}

	r, err := renderer.New(ctx.String(FormatFlag.Name))
	if err != nil {
		return err
	}

	report := renderer.NewReport(pass, listing)

	outputPath := ctx.Path(OutputFlag.Name)
	if outputPath == "" {
		err = r.Render(report, ctx.App.Writer)
	} else {
		err = writeFile(outputPath, func(w io.Writer) error { return r.Render(report, w) })
	}
	if err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}

	if len(listing.Errors) > 0 {
		return cli.Exit(fmt.Sprintf("%v records could not be resolved", len(listing.Errors)), 1)
	}

	return nil
}

func Run(ctx *cli.Context) error {
	pass, table, err := translate(ctx)
	if err != nil {
		return err
	}

	listing, err := emit(ctx, pass)
	if err != nil {
		return err
	}
	for _, err := range listing.Errors {
		fmt.Fprintln(ctx.App.ErrWriter, err)
	}
	if len(listing.Errors) > 0 {
		return cli.Exit("program has unresolved records", 1)
	}

	emu := emulator.NewEmulator()
	emu.Table = table
	emu.Verbose = ctx.Bool(VerboseFlag.Name)
	emu.Input = ctx.App.Reader
	emu.Output = ctx.App.Writer
	emu.Load(listing)

	return emu.Run(ctx.Int(MaxTicksFlag.Name))
}
