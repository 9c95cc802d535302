package web

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pitchside-data/tracklab/internal/pitch"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleHeatmapChart renders an occupancy heatmap (as coloured
// scatter over binned cells) for one player in one run.
// Query params:
//
//	run_id (required)
//	player_id (required)
//	cell_size (optional metres per bucket; default 2, min 1)
func (ws *WebServer) handleHeatmapChart(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	playerID := r.URL.Query().Get("player_id")
	if runID == "" || playerID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "missing 'run_id' or 'player_id' parameter")
		return
	}

	cellSize := 2.0
	if v := r.URL.Query().Get("cell_size"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 1.0 {
			cellSize = parsed
		}
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

	// Bucket samples into cell_size x cell_size metre cells.
	bounds := pitch.Default()
	type cell struct{ cx, cy int }
	counts := map[cell]int{}
	for _, p := range points {
		counts[cell{
			cx: int(math.Floor((p.X - bounds.XMin) / cellSize)),
			cy: int(math.Floor((p.Y - bounds.YMin) / cellSize)),
		}]++
	}

	data := make([]opts.ScatterData, 0, len(counts))
	maxCount := 0
	for c, n := range counts {
		x := bounds.XMin + (float64(c.cx)+0.5)*cellSize
		y := bounds.YMin + (float64(c.cy)+0.5)*cellSize
		data = append(data, opts.ScatterData{Value: []interface{}{x, y, n}})
		if n > maxCount {
			maxCount = n
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Player Position Heatmap", Theme: "dark", Width: "640px", Height: "900px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Position Heatmap", Subtitle: fmt.Sprintf("run=%s player=%s cells=%d", runID, playerID, len(data))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: bounds.XMin, Max: bounds.XMax, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: bounds.YMin, Max: bounds.YMax, Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("occupancy", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleSpeedChart renders segment speed over time for one player in
// one run as a line chart.
// Query params:
//
//	run_id (required)
//	player_id (required)
func (ws *WebServer) handleSpeedChart(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run_id")
	playerID := r.URL.Query().Get("player_id")
	if runID == "" || playerID == "" {
		ws.writeJSONError(w, http.StatusBadRequest, "missing 'run_id' or 'player_id' parameter")
		return
	}

	points, err := ws.db.PlayerTrajectory(runID, playerID)
	if err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("load trajectory: %v", err))
		return
	}
	if len(points) < 2 {
		ws.writeJSONError(w, http.StatusNotFound, "not enough samples for a speed chart")
		return
	}

	ticks := make([]string, 0, len(points)-1)
	speeds := make([]opts.LineData, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		ticks = append(ticks, strconv.Itoa(i))
		speed := math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
		speeds = append(speeds, opts.LineData{Value: speed})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Player Speed", Theme: "dark", Width: "1200px", Height: "500px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: "Segment Speed", Subtitle: fmt.Sprintf("run=%s player=%s", runID, playerID)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Speed (m/s)", NameLocation: "middle", NameGap: 35}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tick (s)", NameLocation: "middle", NameGap: 25}),
	)

	line.SetXAxis(ticks).AddSeries("speed", speeds)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
