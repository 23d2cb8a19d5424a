// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "twopass"
	app.Usage = "Two-pass assembler"
	app.Description = "Translates assembly source through pass 1 (symbol, literal and pool tables, intermediate code) and pass 2 (machine listing)."
	app.Commands = []*cli.Command{
		Pass1Command,
		AssembleCommand,
		RunCommand,
	}
	return app
}

func main() {
	err := newApp().RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
