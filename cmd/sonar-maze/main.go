// Command sonar-maze plays sonar maze in a window
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/sonar-maze/audio"
	"github.com/lixenwraith/sonar-maze/config"
	"github.com/lixenwraith/sonar-maze/engine"
	"github.com/lixenwraith/sonar-maze/logging"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	seed := flag.Int64("seed", 0, "Maze seed (0 = from config or time)")
	debugLog := flag.Bool("debug", false, "Write a debug log to logs/")
	mute := flag.Bool("mute", false, "Start with sound off")
	scale := flag.Float64("scale", 1, "Window scale factor")
	flag.Parse()

	logFile, err := logging.Setup(*debugLog, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	if *debugLog {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	log := logrus.StandardLogger()
	session, err := engine.NewSession(cfg, engine.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}

	sound := audio.NewSoundManager(cfg.Audio, log)
	if err := sound.Initialize(); err != nil {
		log.WithError(err).Warn("audio initialization failed")
	}
	defer sound.Cleanup()
	sound.SetMuted(*mute)

	g := NewGame(session, sound, log)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(int(float64(w)**scale), int(float64(h)**scale))
	ebiten.SetWindowTitle("Sonar Maze")

	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Error("game loop failed")
		fmt.Fprintf(os.Stderr, "Game error: %v\n", err)
		os.Exit(1)
	}
}
