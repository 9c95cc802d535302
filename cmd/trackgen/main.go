// Command trackgen simulates a squad of players and writes their
// trajectories as CSV, optionally persisting the run to SQLite.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pitchside-data/tracklab/internal/config"
	"github.com/pitchside-data/tracklab/internal/pitch"
	"github.com/pitchside-data/tracklab/internal/sim"
	"github.com/pitchside-data/tracklab/internal/store"
	"github.com/pitchside-data/tracklab/internal/trackio"
)

var (
	players    = flag.Int("players", 11, "Number of players to simulate (max 11, uses the default squad)")
	ticks      = flag.Int("ticks", 0, "Samples per player (0 = use tuning config, default 2700)")
	seed       = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	outDir     = flag.String("out", "testdata-out", "Output directory for CSV files")
	dbPath     = flag.String("db", "", "Optional SQLite database to persist the run to")
	tuningPath = flag.String("tuning", "", "Optional tuning config JSON file")
)

func main() {
	flag.Parse()

	cfg := config.EmptyTuningConfig()
	if *tuningPath != "" {
		loaded, err := config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
		cfg = loaded
	}

	n := *ticks
	if n <= 0 {
		n = cfg.GetSampleCount()
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(runSeed))

	squad := sim.DefaultSquad()
	if *players < 1 || *players > len(squad) {
		log.Fatalf("players must be between 1 and %d", len(squad))
	}
	squad = squad[:*players]

	bounds := pitch.Default()
	simulator := sim.NewSimulator(sim.ParamsFromTuning(cfg), bounds, rng)

	log.Printf("Simulating %d players for %d ticks (seed %d)", len(squad), n, runSeed)
	var samples []sim.Sample
	for _, role := range squad {
		agent := sim.NewAgent(role.Code, role.Home)
		samples = append(samples, simulator.Run(agent, n)...)
	}
	infos := sim.GeneratePlayerInfo(squad, rng)

	if err := writeCSVs(*outDir, samples, infos); err != nil {
		log.Fatalf("failed to write CSV output: %v", err)
	}

	if *dbPath != "" {
		if err := persistRun(*dbPath, runSeed, n, samples, infos); err != nil {
			log.Fatalf("failed to persist run: %v", err)
		}
	}

	log.Printf("Done: %d samples written", len(samples))
}

func writeCSVs(dir string, samples []sim.Sample, infos []sim.PlayerInfo) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	trackingPath := filepath.Join(dir, "tracking.csv")
	f, err := os.Create(trackingPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", trackingPath, err)
	}
	defer f.Close()
	if err := trackio.WriteSamples(f, samples); err != nil {
		return err
	}
	log.Printf("Wrote tracking data to %s", trackingPath)

	metaPath := filepath.Join(dir, "players.csv")
	mf, err := os.Create(metaPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", metaPath, err)
	}
	defer mf.Close()
	if err := trackio.WritePlayerInfo(mf, infos); err != nil {
		return err
	}
	log.Printf("Wrote player metadata to %s", metaPath)
	return nil
}

func persistRun(path string, seed int64, ticks int, samples []sim.Sample, infos []sim.PlayerInfo) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.CreateRun(seed, ticks)
	if err != nil {
		return err
	}
	if err := db.InsertSamples(runID, samples); err != nil {
		return err
	}
	if err := db.UpsertPlayerInfo(infos); err != nil {
		return err
	}
	log.Printf("Persisted run %s to %s", runID, path)
	return nil
}
