package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/wonton/cli"
)

const version = "0.1.0"

func main() {
	app := cli.New("archsketch").
		Description("Turn plain-language system descriptions into architecture diagrams").
		Version(version)

	app.Main().
		Flags(
			cli.String("config", "c").
				Default("").
				Env("ARCHSKETCH_CONFIG").
				Help("Path to a YAML or JSON config file"),
			cli.String("env-file", "").
				Default(".env").
				Env("ARCHSKETCH_ENV_FILE").
				Help("Dotenv file loaded before reading the environment"),
			cli.String("addr", "a").
				Default("").
				Help("Listen address (default :5000)"),
			cli.String("static-dir", "").
				Default("").
				Help("Serve the browser client from this directory instead of the embedded copy"),
			cli.String("model", "m").
				Default("").
				Help("Gemini model (default gemini-2.5-flash)"),
			cli.String("log-level", "").
				Default("").
				Help("Log level: debug, info, warn or error"),
			cli.String("log-format", "").
				Default("").
				Help("Log format: text or json"),
			cli.Bool("validate-edges", "").
				Default(false).
				Help("Reject diagrams whose edges reference unknown nodes"),
			cli.Bool("print-config", "").
				Default(false).
				Help("Print the effective configuration and exit"),
		).
		Run(runServe)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
