package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth    int
	Duration time.Duration
	Nodes    int // Nodes generated by tree expansion, root excluded
	Leaves   int // Cutoff nodes evaluated
	Prunes   int // Early returns from alpha or beta cutoffs
}

type Collector interface {
	Start(depth int)
	AddNodes(n int)
	AddLeaf()
	AddPrune()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	prunes    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.depth = depth
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.prunes.Store(0)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Prunes:   int(m.prunes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)        {}
func (m *dummyCollector) AddNodes(n int)         {}
func (m *dummyCollector) AddLeaf()               {}
func (m *dummyCollector) AddPrune()              {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
