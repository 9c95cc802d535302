// Command trackserver serves recorded runs over HTTP: JSON APIs plus
// ECharts pages for heatmaps and speed traces.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/pitchside-data/tracklab/internal/store"
	"github.com/pitchside-data/tracklab/internal/web"
)

var (
	listen = flag.String("listen", ":8080", "Listen address")
	dbPath = flag.String("db", "tracking_data.db", "SQLite database with recorded runs")
)

func main() {
	flag.Parse()

	db, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ws := web.NewWebServer(web.WebServerConfig{Address: *listen, DB: db})
	if err := ws.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
