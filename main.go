package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runner/common"
	"github.com/milk9111/runner/prefabs"
	"github.com/milk9111/runner/session"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (collision boxes, state readout)")
	level := flag.Int("level", 1, "level to start in (1-5)")
	rules := flag.String("rules", "", "ruleset in prefabs/rules.yaml (empty uses the file default)")
	seed := flag.Int64("seed", 0, "obstacle RNG seed (0 seeds from the clock)")
	watch := flag.Bool("watch", false, "reload prefabs/ yaml and scripts when they change")
	width := flag.Int("width", common.BaseWidth, "viewport width")
	height := flag.Int("height", common.BaseHeight, "viewport height")
	flag.Parse()

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Fatalf("load tuning: %v", err)
	}
	obstacles, err := prefabs.LoadObstacles()
	if err != nil {
		log.Fatalf("load obstacles: %v", err)
	}
	ruleset, err := prefabs.LoadRuleset(*rules)
	if err != nil {
		log.Fatalf("load rules: %v", err)
	}

	game, err := NewGame(GameOptions{
		Tuning:     tuning,
		Obstacles:  obstacles,
		Rules:      ruleset,
		StartLevel: session.LevelID(*level),
		Seed:       *seed,
		Width:      float64(*width),
		Height:     float64(*height),
		Debug:      *debug,
	})
	if err != nil {
		log.Fatalf("new game: %v", err)
	}

	if *watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("watch %s: %v", prefabs.Dir, err)
		} else {
			defer w.Close()
			game.watcher = w
		}
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("runner")
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
