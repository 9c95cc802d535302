// Package web serves the tracking database over HTTP: JSON endpoints
// for runs and metrics, and ECharts HTML pages for quick visual
// inspection without a frontend build.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pitchside-data/tracklab/internal/metrics"
	"github.com/pitchside-data/tracklab/internal/store"
	"github.com/pitchside-data/tracklab/internal/units"
)

// WebServer handles the HTTP interface for browsing recorded runs.
type WebServer struct {
	address string
	server  *http.Server
	db      *store.DB
}

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Address string
	DB      *store.DB
}

// NewWebServer creates a new web server with the provided configuration.
func NewWebServer(config WebServerConfig) *WebServer {
	ws := &WebServer{
		address: config.Address,
		db:      config.DB,
	}

	ws.server = &http.Server{
		Addr:    ws.address,
		Handler: ws.setupRoutes(),
	}

	return ws
}

func (ws *WebServer) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Start begins the HTTP server in a goroutine and handles graceful shutdown.
func (ws *WebServer) Start(ctx context.Context) error {
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers.
func (ws *WebServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/api/runs", ws.handleRuns)
	mux.HandleFunc("/api/players", ws.handlePlayers)
	mux.HandleFunc("/api/metrics", ws.handleMetrics)
	mux.HandleFunc("/charts/heatmap", ws.handleHeatmapChart)
	mux.HandleFunc("/charts/speed", ws.handleSpeedChart)

	return mux
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRuns returns a JSON array of recorded runs, newest first.
func (ws *WebServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	runs, err := ws.db.ListRuns()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list runs: %v", err))
		return
	}

	type runJSON struct {
		RunID     string    `json:"run_id"`
		Seed      int64     `json:"seed"`
		Ticks     int       `json:"ticks"`
		CreatedAt time.Time `json:"created_at"`
		PlayerIDs []string  `json:"player_ids"`
	}
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		ids, err := ws.db.RunPlayerIDs(run.RunID)
		if err != nil {
			ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list run players: %v", err))
			return
		}
		out = append(out, runJSON{
			RunID:     run.RunID,
			Seed:      run.Seed,
			Ticks:     run.Ticks,
			CreatedAt: run.CreatedAt,
			PlayerIDs: ids,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handlePlayers returns the stored player metadata.
func (ws *WebServer) handlePlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	infos, err := ws.db.ListPlayerInfo()
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("list players: %v", err))
		return
	}

	type playerJSON struct {
		PlayerID    string `json:"player_id"`
		ShirtNumber int    `json:"shirt_number"`
		Age         int    `json:"age"`
		HeightCM    int    `json:"height_cm"`
		WeightKG    int    `json:"weight_kg"`
	}
	out := make([]playerJSON, 0, len(infos))
	for _, info := range infos {
		out = append(out, playerJSON{
			PlayerID:    info.PlayerID,
			ShirtNumber: info.ShirtNumber,
			Age:         info.Age,
			HeightCM:    info.HeightCM,
			WeightKG:    info.WeightKG,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleMetrics computes the metric summary for one player in one run.
// Query params:
//
//	run_id (required)
//	player_id (required)
//	units (optional; mps, mph, kmph, kph — default mps)
func (ws *WebServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		ws.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	runID := r.URL.Query().Get("run_id")
	playerID := r.URL.Query().Get("player_id")
	if runID == "" || playerID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "missing 'run_id' or 'player_id' parameter")
		return
	}

	unit := r.URL.Query().Get("units")
	if unit == "" {
		unit = units.MPS
	}
	if !units.IsValid(unit) {
		ws.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid units %q (valid: %s)", unit, units.GetValidUnitsString()))
		return
	}

	points, err := ws.db.PlayerTrajectory(runID, playerID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("load trajectory: %v", err))
		return
	}
	if len(points) == 0 {
		ws.writeJSONError(w, http.StatusNotFound, "no samples for that run and player")
		return
	}

	summary := metrics.Summarize(points)
	resp := map[string]interface{}{
		"run_id":         runID,
		"player_id":      playerID,
		"samples":        summary.Samples,
		"total_distance": summary.TotalDistance,
		"zone_times":     summary.ZoneTimes,
		"sprint_time":    summary.SprintTime,
		"quick_turns":    summary.QuickTurns,
		"speed_units":    unit,
		"mean_speed":     units.ConvertSpeed(summary.MeanSpeedMps, unit),
		"max_speed":      units.ConvertSpeed(summary.MaxSpeedMps, unit),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
