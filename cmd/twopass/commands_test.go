package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/twopass/emulator"
	"github.com/ezrec/twopass/renderer"
)

const sampleSource = "../../asm/testdata/sample.asm"

func TestPass1(t *testing.T) {
	dir := t.TempDir()

	err := newApp().Run([]string{"twopass", "pass1", "--output-dir", dir, sampleSource})
	require.NoError(t, err)

	for file, expected := range map[string]string{
		"IC.txt":      "sample.ic",
		"SYMTAB.txt":  "sample.sym",
		"LITTAB.txt":  "sample.lit",
		"POOLTAB.txt": "sample.pool",
	} {
		want, err := os.ReadFile(filepath.Join("../../asm/testdata", expected))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err, file)
		assert.Equal(t, string(want), string(got), file)
	}
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	output := filepath.Join(dir, "report.json")
	err := newApp().Run([]string{"twopass", "assemble", "--format", "json", "--output", output, sampleSource})
	assert.NoError(err)

	data, err := os.ReadFile(output)
	assert.NoError(err)

	var report renderer.Report
	assert.NoError(json.Unmarshal(data, &report))
	if assert.NotEmpty(report.Machine) {
		assert.Equal(renderer.MachineRow{Address: 200, Code: "04 1 205"}, report.Machine[0])
	}
	assert.Empty(report.Errors)

	output = filepath.Join(dir, "report.yaml")
	err = newApp().Run([]string{"twopass", "assemble", "--format", "yaml", "--output", output, sampleSource})
	assert.NoError(err)

	data, err = os.ReadFile(output)
	assert.NoError(err)

	report = renderer.Report{}
	assert.NoError(yaml.Unmarshal(data, &report))
	assert.Len(report.Pools, 4)
}

func TestAssemble_Errors(t *testing.T) {
	assert := assert.New(t)

	err := newApp().Run([]string{"twopass", "assemble", "--format", "xml", sampleSource})
	assert.ErrorIs(err, renderer.ErrFormatInvalid("xml"))

	err = newApp().Run([]string{"twopass", "assemble", "testdata/missing.asm"})
	assert.ErrorIs(err, os.ErrNotExist)

	err = newApp().Run([]string{"twopass", "assemble", "--isa", "testdata/missing.yaml", sampleSource})
	assert.ErrorIs(err, os.ErrNotExist)
}

func writeProgram(t *testing.T, dir string, name string, program []string) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(strings.Join(program, "\n")+"\n"), 0644)
	require.NoError(t, err)
	return path
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	program := writeProgram(t, dir, "sum.asm", []string{
		"START 100",
		"READ A",
		"READ B",
		"MOVER AREG, A",
		"ADD AREG, B",
		"MOVEM AREG, C",
		"PRINT C",
		"STOP",
		"A DS 1",
		"B DS 1",
		"C DS 1",
		"END",
	})

	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("3 4\n"), 0644))
	inf, err := os.Open(input)
	require.NoError(t, err)
	defer inf.Close()

	output := &bytes.Buffer{}

	app := newApp()
	app.Reader = inf
	app.Writer = output

	err = app.Run([]string{"twopass", "run", program})
	assert.NoError(err)
	assert.Equal("7\n", output.String())
}

func TestRun_Errors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	program := writeProgram(t, dir, "div.asm", []string{
		"START 0",
		"DIV AREG, ='0'",
		"STOP",
		"END",
	})

	app := newApp()
	app.Reader = strings.NewReader("")
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"twopass", "run", program})
	assert.ErrorIs(err, emulator.ErrDivideByZero)

	program = writeProgram(t, dir, "loop.asm", []string{
		"START 0",
		"L BC ANY, L",
		"END",
	})

	app = newApp()
	app.Reader = strings.NewReader("")
	app.Writer = &bytes.Buffer{}

	err = app.Run([]string{"twopass", "run", "--max-ticks", "10", program})
	assert.ErrorIs(err, emulator.ErrTickLimit)
}
