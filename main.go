package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"MyInkPad/internal/applog"
	"MyInkPad/internal/config"
	"MyInkPad/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "inkpad:", err)
		os.Exit(2)
	}
	applog.Init(cfg.LogLevel, os.Stderr)
	log := applog.WithComponent("main")

	if cfg.View {
		log.Info("starting as viewer", "link", cfg.Link)
		ui.RunViewer(cfg.Link)
		return
	}
	log.Info("starting pad", "share", cfg.Share, "row_height", cfg.RowHeight)
	ui.RunApp(cfg)
}
