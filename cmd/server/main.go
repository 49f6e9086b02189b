package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	_ = godotenv.Load() // .env 可选

	app := &cli.App{
		Name:  "blood-donation",
		Usage: "Blood donation coordination API",
		Commands: []*cli.Command{
			serveCommand,
			promoteCommand,
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
