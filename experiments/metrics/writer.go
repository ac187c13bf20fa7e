package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type Writer struct {
	baseDir string
}

// NewWriter creates <outDir>/<name>/<timestamp> to hold the files of one
// experiment run.
func NewWriter(outDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(outDir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) writeCSV(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "simulations", "seed"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Simulations),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "matchup", "agent1", "agent2", "first", "winner", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Matchup),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.First.String(),
			record.Winner.String(),
			strconv.Itoa(record.Moves),
			record.Start.Format(time.RFC3339),
			record.End.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "episodes", "full_playouts", "terminal_hits", "nodes", "rollout_plies"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(int(record.Action)),
			record.Duration.String(),
			strconv.Itoa(record.Search.Episodes),
			strconv.Itoa(record.Search.FullPlayouts),
			strconv.Itoa(record.Search.TerminalHits),
			strconv.Itoa(record.Search.Nodes),
			strconv.Itoa(record.Search.RolloutPlies),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{"matchup", "agent1", "agent2", "games", "agent1_wins", "agent2_wins", "draws", "mean_moves", "std_moves", "mean_search_ms", "std_search_ms"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Matchup),
			strconv.Itoa(s.Agent1),
			strconv.Itoa(s.Agent2),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Agent1Wins),
			strconv.Itoa(s.Agent2Wins),
			strconv.Itoa(s.Draws),
			strconv.FormatFloat(s.MeanMoves, 'f', 3, 64),
			strconv.FormatFloat(s.StdMoves, 'f', 3, 64),
			strconv.FormatFloat(s.MeanSearchMs, 'f', 3, 64),
			strconv.FormatFloat(s.StdSearchMs, 'f', 3, 64),
		})
	}
	return w.writeCSV("summaries.csv", header, rows)
}

// WriteWinRateChart renders the outcome share of every matchup as an HTML
// bar chart.
func (w *Writer) WriteWinRateChart(title string, summaries []Summary) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
	)

	labels := make([]string, 0, len(summaries))
	agent1 := make([]opts.BarData, 0, len(summaries))
	agent2 := make([]opts.BarData, 0, len(summaries))
	draws := make([]opts.BarData, 0, len(summaries))
	for _, s := range summaries {
		labels = append(labels, fmt.Sprintf("%d vs %d", s.Agent1, s.Agent2))
		agent1 = append(agent1, opts.BarData{Value: rate(s.Agent1Wins, s.Games)})
		agent2 = append(agent2, opts.BarData{Value: rate(s.Agent2Wins, s.Games)})
		draws = append(draws, opts.BarData{Value: rate(s.Draws, s.Games)})
	}
	bar.SetXAxis(labels).
		AddSeries("agent1 wins", agent1).
		AddSeries("agent2 wins", agent2).
		AddSeries("draws", draws)

	path := filepath.Join(w.baseDir, "win_rates.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func rate(n, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(n) / float64(games)
}
