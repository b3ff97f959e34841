// Package searchviews holds the dashboard's view-models and views, derived
// from a stream of planner progress events. It converts htnplan.ProgressEvent
// into a SearchStatus: the numbers and the latest plan a human watching the
// dashboard actually wants to see.
package searchviews

import (
	"fmt"
	"strings"
	"time"

	"anyhop/htnplan"
)

// Update is what the CLI feeds into the view builder once per progress
// event: the event itself, plus the run-identifying context that doesn't
// change within a single planning call.
type Update struct {
	RunID    string
	Domain   string
	Strategy string
	Frontier string
	Event    htnplan.ProgressEvent
}

// SearchStatus is the view-model both bundled views render from.
type SearchStatus struct {
	RunID         string
	Domain        string
	Strategy      string
	Frontier      string
	BestCost      float64
	NodesExpanded int
	FrontierSize  int
	Elapsed       time.Duration
	Plan          []string
}

// Convert builds a SearchStatus from one Update.
func Convert(u Update) SearchStatus {
	plan := make([]string, len(u.Event.Plan))
	for i, task := range u.Event.Plan {
		plan[i] = task.String()
	}
	return SearchStatus{
		RunID:         u.RunID,
		Domain:        u.Domain,
		Strategy:      u.Strategy,
		Frontier:      u.Frontier,
		BestCost:      u.Event.Cost,
		NodesExpanded: u.Event.NodesExpanded,
		FrontierSize:  u.Event.FrontierSize,
		Elapsed:       u.Event.Elapsed,
		Plan:          plan,
	}
}

func costText(cost float64) string {
	if cost < 0 {
		return "none yet"
	}
	return fmt.Sprintf("%.3f", cost)
}

func planText(plan []string) string {
	if len(plan) == 0 {
		return "(no complete plan yet)"
	}
	return strings.Join(plan, " → ")
}
