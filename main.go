package main

import (
	"context"
	"log"
	"os"

	"github.com/ChainSafe/keystack/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "keystack"
	app.Usage = "Multi-key stack script runner"
	app.Description = "Runs YAML scripts against a multi-key LIFO stack and checks them against a reference model"
	app.Flags = []cli.Flag{
		cmd.LogLevelFlag,
	}
	app.Commands = []*cli.Command{
		cmd.RunCommand,
		cmd.VerifyCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
