package main

import (
	"os"

	"LocalPaint/internal/ui"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	ui.RunApp()
}
