package emulator

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/twopass/asm"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Table)
	assert.NotNil(emu.Listing)
}

func assemble(t *testing.T, program []string) *asm.Listing {
	ctx, err := asm.NewTranslator(nil).Pass1(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	listing, err := (&asm.Emitter{}).Emit(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Errors) != 0 {
		t.Fatal(listing.Errors)
	}
	return listing
}

func doRun(t *testing.T, program []string, input string) (output string, err error) {
	emu := NewEmulator()
	emu.Load(assemble(t, program))

	buff := &bytes.Buffer{}
	emu.Input = strings.NewReader(input)
	emu.Output = buff

	err = emu.Run(1000)
	output = buff.String()
	return
}

func TestEmulator_Sum(t *testing.T) {
	assert := assert.New(t)

	program := []string{
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
	}

	output, err := doRun(t, program, "3 4\n")
	assert.NoError(err)
	assert.Equal("7\n", output)
}

func TestEmulator_Loop(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"START 100",
		"MOVER AREG, ='3'",
		"LOOP MOVEM AREG, N",
		"PRINT N",
		"SUB AREG, ='1'",
		"BC GT, LOOP",
		"STOP",
		"N DS 1",
		"END",
	}

	output, err := doRun(t, program, "")
	assert.NoError(err)
	assert.Equal("3\n2\n1\n", output)
}

func TestEmulator_Step(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"START 10",
		"MOVER BREG, ='6'",
		"DIV BREG, TWO",
		"MULT BREG, ='-1'",
		"STOP",
		"TWO DC 2",
		"END",
	}

	emu := NewEmulator()
	emu.Load(assemble(t, program))
	assert.Equal(10, emu.Ip)
	assert.Equal(2, emu.LineNo())
	assert.Equal(2, emu.Memory(14))

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(6, emu.Register[2])

	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(3, emu.Register[2])
	assert.Equal(1, emu.Flag)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(-3, emu.Register[2])
	assert.Equal(-1, emu.Flag)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(4, emu.Ticks)

	emu.Reset()
	assert.Equal(10, emu.Ip)
	assert.Equal(0, emu.Ticks)
	assert.Equal(0, emu.Register[2])
}

func TestEmulator_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := doRun(t, []string{
		"START 0",
		"DIV AREG, ='0'",
		"STOP",
		"END",
	}, "")
	var er *ErrRuntime
	assert.ErrorAs(err, &er)
	assert.Equal(0, er.Address)
	assert.Equal(2, er.LineNo)
	assert.ErrorIs(err, ErrDivideByZero)

	// Runs into its literal pool.
	_, err = doRun(t, []string{
		"START 0",
		"MOVER AREG, ='1'",
		"END",
	}, "")
	assert.ErrorIs(err, ErrIpInvalid)

	_, err = doRun(t, []string{
		"START 0",
		"READ X",
		"STOP",
		"X DS 1",
		"END",
	}, "")
	assert.ErrorIs(err, ErrInputEOF)

	_, err = doRun(t, []string{
		"START 0",
		"L BC ANY, L",
		"END",
	}, "")
	assert.ErrorIs(err, ErrTickLimit)

	_, err = doRun(t, []string{
		"START 0",
		"BC 9, 0",
		"END",
	}, "")
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

func TestEmulator_Sample(t *testing.T) {
	assert := assert.New(t)

	source, err := os.ReadFile("../asm/testdata/sample.asm")
	if err != nil {
		t.Fatal(err)
	}

	// ORIGIN L1+3 leaves a hole at 203 that execution runs into.
	_, err = doRun(t, strings.Split(string(source), "\n"), "")
	var er *ErrRuntime
	assert.ErrorAs(err, &er)
	assert.Equal(203, er.Address)
	assert.ErrorIs(err, ErrIpInvalid)
}

func TestEmulator_DataAtStart(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"START 100",
		"X DC 5",
		"Y DS 1",
		"MOVER AREG, X",
		"MOVEM AREG, Y",
		"PRINT Y",
		"STOP",
		"END",
	}

	emu := NewEmulator()
	emu.Load(assemble(t, program))
	assert.Equal(102, emu.Ip)

	output, err := doRun(t, program, "")
	assert.NoError(err)
	assert.Equal("5\n", output)
}
