// Command maze-generator prints generated sonar mazes with their danger zones and solution
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/sonar-maze/config"
	"github.com/lixenwraith/sonar-maze/maze"
	"github.com/lixenwraith/sonar-maze/navigation"
	"github.com/lixenwraith/sonar-maze/vmath"
)

func main() {
	configPath := flag.String("config", "", "TOML settings file")
	seed := flag.Int64("seed", 0, "Generation seed (0 = time based)")
	cols := flag.Int("cols", 0, "Override grid columns")
	rows := flag.Int("rows", 0, "Override grid rows")
	ratio := flag.Float64("ratio", -1, "Override danger zone ratio [0.0 - 1.0]")
	layout := flag.String("layout", "", "Solve a hand-written layout file instead of generating")
	save := flag.String("save", "", "Write the generated layout to this file")
	interactive := flag.Bool("i", false, "Prompt for parameters in a loop")
	writeConfig := flag.String("write-config", "", "Write the effective settings as TOML and exit")
	flag.Parse()

	if *layout != "" {
		if err := solveLayout(*layout, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *cols > 0 {
		cfg.Maze.Cols = *cols
	}
	if *rows > 0 {
		cfg.Maze.Rows = *rows
	}
	if *ratio >= 0 {
		cfg.Maze.DangerRatio = *ratio
	}
	if *seed == 0 {
		*seed = cfg.Seed
	}
	mc := cfg.MazeConfig()

	if *writeConfig != "" {
		cfg.Seed = *seed
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Settings written to %s\n", *writeConfig)
		return
	}

	if !*interactive {
		g, err := generate(mc, *seed, os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if *save != "" {
			if err := os.WriteFile(*save, []byte(maze.Format(g)), 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\n=== SONAR MAZE GENERATOR ===")

		mc.Cols = getInt(reader, fmt.Sprintf("Columns (default %d): ", mc.Cols), mc.Cols)
		mc.Rows = getInt(reader, fmt.Sprintf("Rows (default %d): ", mc.Rows), mc.Rows)
		mc.DangerRatio = getFloat(reader, fmt.Sprintf("Danger Ratio [0.0 - 1.0] (default %.2f): ", mc.DangerRatio), mc.DangerRatio)
		s := int64(getInt(reader, "Seed (default random): ", 0))

		if _, err := generate(mc, s, os.Stdout); err != nil {
			fmt.Println("Error:", err)
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

func generate(mc maze.Config, seed int64, w io.Writer) (*maze.Grid, error) {
	if seed == 0 {
		seed = vmath.SeedFromTime()
	}

	fmt.Fprintln(w, "\nGenerating...")
	startT := time.Now()
	g, err := maze.Generate(mc, vmath.NewFastRand(uint64(seed)))
	if err != nil {
		return nil, err
	}
	dur := time.Since(startT)

	path := navigation.FindPath(g, g.Start, g.Exit)

	fmt.Fprintf(w, "Done in %v (seed %d)\n", dur, seed)
	fmt.Fprintf(w, "Grid Dimensions: %dx%d\n", g.Cols, g.Rows)
	fmt.Fprintf(w, "Border Walls: %d, Danger Zones: %d of %d eligible\n", g.BorderWalls, g.Danger.Size(), g.DangerCandidates)
	fmt.Fprintf(w, "Exit: %v\n", g.Exit)
	printPath(w, path)

	draw(w, g, path)
	return g, nil
}

func solveLayout(file string, w io.Writer) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	g, err := maze.Parse(1, lines)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	path := navigation.FindPath(g, g.Start, g.Exit)
	fmt.Fprintf(w, "Layout: %s (%dx%d)\n", file, g.Cols, g.Rows)
	printPath(w, path)
	draw(w, g, path)
	return nil
}

func printPath(w io.Writer, path []maze.Point) {
	if path != nil {
		fmt.Fprintf(w, "Solution Path Length: %d steps\n", len(path))
	} else {
		fmt.Fprintln(w, "Status: Unsolvable (Isolated Start/Exit)")
	}
}

// draw renders thin walls solid, invisible walls shaded and danger zones as X
func draw(w io.Writer, g *maze.Grid, path []maze.Point) {
	onPath := make(map[maze.Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			p := maze.Point{X: x, Y: y}

			switch {
			case p == g.Start:
				bw.WriteString("S")
			case g.IsExit(x, y):
				bw.WriteString("E")
			case g.IsDanger(x, y):
				bw.WriteString("X")
			case g.IsThinWall(x, y):
				bw.WriteString("█")
			case g.IsWall(x, y):
				bw.WriteString("░")
			case onPath[p]:
				bw.WriteString("•")
			default:
				bw.WriteString(" ")
			}
		}
		bw.WriteString("\n")
	}
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getFloat(r *bufio.Reader, prompt string, def float64) float64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return vmath.Clamp(v, 0, 1)
}
