package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/archsketch/config"
	"github.com/fatih/color"
)

func printBanner(w io.Writer, cfg *config.Config, generatorReady bool) {
	title := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite, color.Bold)

	title.Fprintf(w, "archsketch %s\n", version)
	label.Fprint(w, "  url:    ")
	fmt.Fprintln(w, displayURL(cfg.Server.Address))
	label.Fprint(w, "  model:  ")
	fmt.Fprintln(w, cfg.Gemini.Model)
	label.Fprint(w, "  assets: ")
	if cfg.Server.StaticDir != "" {
		fmt.Fprintln(w, cfg.Server.StaticDir)
	} else {
		fmt.Fprintln(w, "embedded")
	}
	if !generatorReady {
		color.New(color.FgYellow).Fprintln(w, "  AI client not initialized. Set GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT.")
	}
}

// displayURL turns a listen address into a browsable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
