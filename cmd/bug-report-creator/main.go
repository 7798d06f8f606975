package main

import (
	"log"
	"os"

	"bug-report-creator/internal/app"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	cliApp := cli.NewApp()
	cliApp.Name = "bug-report-creator"
	cliApp.Version = app.AppVersion
	cliApp.Usage = "Collect a bug report and save it as a text file"
	cliApp.Flags = GlobalFlags()
	cliApp.Action = GUI
	cliApp.Commands = []*cli.Command{
		{
			Name:   "gui",
			Usage:  "open the report form (default)",
			Action: GUI,
		},
		{
			Name:    "write",
			Aliases: []string{"w"},
			Usage:   "write a report without opening a window",
			Action:  Write,
			Flags:   WriteFlags(),
		},
	}
	return cliApp
}
