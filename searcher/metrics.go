package searcher

import "time"

// SearchMetric summarizes one call to MCTS.Search.
type SearchMetric struct {
	Simulations  int
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // simulations that expanded a leaf and rolled out
	TerminalHits int // simulations that ended the game during descent
	Nodes        int // nodes in the tree, root included
	RolloutPlies int
}

type Collector interface {
	Start(simulations int)
	AddEpisode()
	AddFullPlayout(plies int)
	AddTerminalHit()
	AddNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	metric    SearchMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(simulations int) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Simulations: simulations, Nodes: 1}
}

func (m *collector) AddEpisode() {
	m.metric.Episodes++
}

func (m *collector) AddFullPlayout(plies int) {
	m.metric.FullPlayouts++
	m.metric.RolloutPlies += plies
}

func (m *collector) AddTerminalHit() {
	m.metric.TerminalHits++
}

func (m *collector) AddNodes(n int) {
	m.metric.Nodes += n
}

func (m *collector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(m.startTime)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(int)              {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout(int)     {}
func (m *dummyCollector) AddTerminalHit()        {}
func (m *dummyCollector) AddNodes(int)           {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
