package metrics

import (
	"time"

	"mcts/engine"
	"mcts/game"
)

const (
	KindMCTS   = "mcts"
	KindRandom = "random"
)

// AgentConfig describes one competitor of an experiment.
type AgentConfig struct {
	ID          int    `yaml:"id"`
	Kind        string `yaml:"kind"`
	Simulations int    `yaml:"simulations,omitempty"`
	Seed        uint64 `yaml:"seed,omitempty"` // 0 seeds every game from the system
}

type GameRecord struct {
	ID       string // engine.Result.ID
	Matchup  int
	Agent1   int // AgentConfig.ID, plays X
	Agent2   int // AgentConfig.ID, plays O
	First    game.Player
	Winner   game.Player
	Moves    int
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

type MoveRecord struct {
	Game string // GameRecord.ID
	engine.MoveMetric
}

func NewGameRecord(matchup, agent1, agent2 int, result engine.Result) GameRecord {
	return GameRecord{
		ID:       result.ID,
		Matchup:  matchup,
		Agent1:   agent1,
		Agent2:   agent2,
		First:    result.First,
		Winner:   result.Winner,
		Moves:    len(result.Moves),
		Start:    result.StartTime,
		End:      result.EndTime,
		Duration: result.Duration,
	}
}

func NewMoveRecords(result engine.Result) []MoveRecord {
	records := make([]MoveRecord, len(result.Metrics))
	for i, m := range result.Metrics {
		records[i] = MoveRecord{Game: result.ID, MoveMetric: m}
	}
	return records
}

// Summary aggregates the games of one matchup.
type Summary struct {
	Matchup      int
	Agent1       int
	Agent2       int
	Games        int
	Agent1Wins   int
	Agent2Wins   int
	Draws        int
	MeanMoves    float64
	StdMoves     float64
	MeanSearchMs float64 // per searched move
	StdSearchMs  float64
}
