// Command sonar-tui plays sonar maze in a terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
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
		// Non-fatal, the game runs silent
		log.WithError(err).Warn("audio initialization failed")
	}
	defer sound.Cleanup()
	sound.SetMuted(*mute)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSONAR-MAZE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	NewGame(screen, session, sound, log).run()
	screen.Fini()

	fmt.Printf("seed %d, %s\n", session.Seed(), session.Phase())
}
