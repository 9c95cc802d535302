// Command trackreport computes movement metrics for one player's
// trajectory, read from a tracking CSV or a recorded SQLite run, and
// optionally renders heatmap and vector-map PNGs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchside-data/tracklab/internal/metrics"
	"github.com/pitchside-data/tracklab/internal/pitch"
	"github.com/pitchside-data/tracklab/internal/sim"
	"github.com/pitchside-data/tracklab/internal/store"
	"github.com/pitchside-data/tracklab/internal/trackio"
	"github.com/pitchside-data/tracklab/internal/units"
	"github.com/pitchside-data/tracklab/internal/visual"
)

var (
	inPath    = flag.String("in", "", "Tracking CSV file to analyse")
	dbPath    = flag.String("db", "", "SQLite database to read a run from (alternative to -in)")
	runID     = flag.String("run", "", "Run ID inside the database")
	playerID  = flag.String("player", "", "Player ID to report on (required with -db and with multi-player CSVs)")
	speedUnit = flag.String("units", units.MPS, "Speed units for the report: "+units.GetValidUnitsString())
	plotsDir  = flag.String("plots", "", "Optional directory to write heatmap and vector map PNGs to")
)

func main() {
	flag.Parse()

	if !units.IsValid(*speedUnit) {
		log.Fatalf("invalid units %q (valid: %s)", *speedUnit, units.GetValidUnitsString())
	}

	points, err := loadTrajectory()
	if err != nil {
		log.Fatalf("failed to load trajectory: %v", err)
	}
	if len(points) == 0 {
		log.Fatal("trajectory is empty")
	}

	printReport(metrics.Summarize(points))

	if *plotsDir != "" {
		if err := writePlots(points, *plotsDir); err != nil {
			log.Fatalf("failed to write plots: %v", err)
		}
	}
}

func loadTrajectory() ([]pitch.Point, error) {
	switch {
	case *inPath != "":
		f, err := os.Open(*inPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", *inPath, err)
		}
		defer f.Close()

		samples, err := trackio.ReadSamples(f)
		if err != nil {
			return nil, err
		}
		// Generated tracking CSVs interleave the whole squad; the
		// metrics reducers only make sense over a single player's
		// trajectory, so a multi-player stream needs -player.
		if *playerID != "" {
			samples = sim.FilterPlayer(samples, *playerID)
			if len(samples) == 0 {
				return nil, fmt.Errorf("no samples for player %q in %s", *playerID, *inPath)
			}
		} else if ids := sim.PlayerIDs(samples); len(ids) > 1 {
			return nil, fmt.Errorf("%s contains %d players (%s); pick one with -player",
				*inPath, len(ids), strings.Join(ids, ", "))
		}
		return sim.Points(samples), nil

	case *dbPath != "":
		if *runID == "" || *playerID == "" {
			return nil, fmt.Errorf("-db requires -run and -player")
		}
		db, err := store.Open(*dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.PlayerTrajectory(*runID, *playerID)

	default:
		return nil, fmt.Errorf("one of -in or -db is required")
	}
}

func printReport(s metrics.Summary) {
	fmt.Printf("Total distance ran: %.2f metres\n", s.TotalDistance)

	fmt.Println("Time spent in each region:")
	for i, seconds := range s.ZoneTimes {
		fmt.Printf("Region %d: %s\n", i+1, units.FormatMinSec(seconds))
	}

	fmt.Printf("Time spent sprinting (>%.0f m/s): %s\n",
		metrics.SprintSpeedMps, units.FormatMinSec(s.SprintTime))
	fmt.Printf("Total number of quick turns (>90° after sprint): %d\n", s.QuickTurns)

	label := units.Label(*speedUnit)
	fmt.Printf("Mean speed: %.2f %s\n", units.ConvertSpeed(s.MeanSpeedMps, *speedUnit), label)
	fmt.Printf("Max speed: %.2f %s\n", units.ConvertSpeed(s.MaxSpeedMps, *speedUnit), label)
}

func writePlots(points []pitch.Point, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create plots dir: %w", err)
	}
	bounds := pitch.Default()

	heatmapPath := filepath.Join(dir, "heatmap.png")
	if err := visual.SaveHeatmap(points, bounds, heatmapPath); err != nil {
		return err
	}
	log.Printf("Heatmap saved to %s", heatmapPath)

	vectorPath := filepath.Join(dir, "vectormap.png")
	if err := visual.SaveVectorMap(points, bounds, vectorPath); err != nil {
		return err
	}
	log.Printf("Vector map saved to %s", vectorPath)
	return nil
}
