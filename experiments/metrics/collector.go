package metrics

import (
	"time"
)

// SearchMetric describes one decision call of the search engine.
type SearchMetric struct {
	StartTime    time.Time
	Duration     time.Duration
	Iterations   int
	NodesCreated int
	FullPlayouts int // rollouts that ended in a terminal state
	Fallback     bool
	TreeReused   bool
}

// DecisionMetric is a SearchMetric placed within a trial.
type DecisionMetric struct {
	Step   int
	Action string
	SearchMetric
}

// TrialMetric summarises one episode.
type TrialMetric struct {
	Agent       string
	Trial       int
	Seed        uint64
	TotalReward float64
	Steps       int
	Outcome     string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

// Trial outcomes
const (
	OutcomeGoal     = "goal"
	OutcomeObstacle = "obstacle"
	OutcomeTimeout  = "timeout"
)

type Collector interface {
	Start()
	SetTreeReused(value bool)
	SetFallback()
	AddIteration()
	AddNode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	iterations   int
	nodes        int
	fullPlayouts int
	fallback     bool
	treeReused   bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new decision.
func (m *collector) Start() {
	*m = collector{startTime: time.Now()}
}

func (m *collector) SetTreeReused(value bool) {
	m.treeReused = value
}

func (m *collector) SetFallback() {
	m.fallback = true
}

func (m *collector) AddIteration() {
	m.iterations++
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations,
		NodesCreated: m.nodes,
		FullPlayouts: m.fullPlayouts,
		Fallback:     m.fallback,
		TreeReused:   m.treeReused,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                   {}
func (m *dummyCollector) SetTreeReused(value bool) {}
func (m *dummyCollector) SetFallback()             {}
func (m *dummyCollector) AddIteration()            {}
func (m *dummyCollector) AddNode()                 {}
func (m *dummyCollector) AddFullPlayout()          {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
