package diagram

import "go.uber.org/zap"

// Stats is a snapshot of the editor's size and work counters.
type Stats struct {
	Nodes    int
	Edges    int
	Selected int
	Moving   int
	Stale    int // edges awaiting an index refresh
	Index    QuadtreeStats
	Requests int // draw requests since construction
	Passes   int // render passes since construction
	LastPass PassStats
}

// SetDebugMode toggles per-pass logging at debug level.
func (e *Editor) SetDebugMode(on bool) {
	e.debug = on
}

// Stats returns the current counters.
func (e *Editor) Stats() Stats {
	req, passes := e.sched.Counts()
	return Stats{
		Nodes:    len(e.nodes),
		Edges:    len(e.edges),
		Selected: len(e.selected),
		Moving:   len(e.moving),
		Stale:    len(e.stale),
		Index:    e.index.Stats(),
		Requests: req,
		Passes:   passes,
		LastPass: e.last,
	}
}

// logPass writes the stats of one pass when debug mode is on.
func (e *Editor) logPass(st PassStats) {
	if !e.debug {
		return
	}
	e.log.Debug("render pass",
		zap.Stringer("mode", st.Mode),
		zap.Bool("scoped", st.Scoped),
		zap.Int("candidates", st.Candidates),
		zap.Int("drawn", st.Drawn),
		zap.Int("culled", st.Culled),
		zap.Duration("duration", st.Duration),
	)
}

// CheckLinks returns the ids of nodes whose edge back-references disagree with
// the edge table. An empty result means the graph is consistent.
func (e *Editor) CheckLinks() []int {
	var bad []int
	for id := range e.nodes {
		d := e.data.node(id)
		if d == nil {
			bad = append(bad, id)
			continue
		}
		ok := true
		for eid := range d.out {
			if ed, found := e.edges[eid]; !found || ed.Source != id {
				ok = false
			}
		}
		for eid := range d.in {
			if ed, found := e.edges[eid]; !found || ed.Target != id {
				ok = false
			}
		}
		if !ok {
			bad = append(bad, id)
		}
	}
	for _, ed := range e.edges {
		src, dst := e.data.node(ed.Source), e.data.node(ed.Target)
		if src == nil || dst == nil {
			bad = append(bad, ed.Source, ed.Target)
			continue
		}
		if _, ok := src.out[ed.ID]; !ok {
			bad = append(bad, ed.Source)
		}
		if _, ok := dst.in[ed.ID]; !ok {
			bad = append(bad, ed.Target)
		}
	}
	return bad
}
