package searchviews

import (
	"fmt"
	"html/template"

	"anyhop/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// StatusView renders the numeric summary of a planning run: run id, domain,
// strategy, frontier, best cost so far, nodes expanded, frontier size, and
// elapsed time. Every field is a single element updated by textContent, the
// simplest op fastview supports.
type StatusView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

// NewStatusView wires a StatusView to a stream of SearchStatus updates.
func NewStatusView(
	done <-chan struct{},
	statuses <-chan SearchStatus,
) *StatusView {
	sv := &StatusView{id: "status"}
	sv.updates = channerics.Convert(done, statuses, sv.onUpdate)
	return sv
}

// Updates returns the ele-update channel this view emits on.
func (sv *StatusView) Updates() <-chan []fastview.EleUpdate {
	return sv.updates
}

func (sv *StatusView) onUpdate(status SearchStatus) []fastview.EleUpdate {
	textUpdate := func(eleID, value string) fastview.EleUpdate {
		return fastview.EleUpdate{EleId: eleID, Ops: []fastview.Op{{Key: "textContent", Value: value}}}
	}
	return []fastview.EleUpdate{
		textUpdate("run-id", status.RunID),
		textUpdate("domain", status.Domain),
		textUpdate("strategy", status.Strategy),
		textUpdate("frontier", status.Frontier),
		textUpdate("best-cost", costText(status.BestCost)),
		textUpdate("nodes-expanded", fmt.Sprintf("%d", status.NodesExpanded)),
		textUpdate("frontier-size", fmt.Sprintf("%d", status.FrontierSize)),
		textUpdate("elapsed", status.Elapsed.String()),
	}
}

// Parse adds the status table's template to the parent, returning its name.
func (sv *StatusView) Parse(t *template.Template) (name string, err error) {
	name = sv.id
	_, err = t.Parse(`{{ define "` + name + `" }}
		<table id="` + sv.id + `" style="font-family: monospace;">
			<tr><td>run</td><td id="run-id"></td></tr>
			<tr><td>domain</td><td id="domain"></td></tr>
			<tr><td>strategy</td><td id="strategy"></td></tr>
			<tr><td>frontier</td><td id="frontier"></td></tr>
			<tr><td>best cost</td><td id="best-cost"></td></tr>
			<tr><td>nodes expanded</td><td id="nodes-expanded"></td></tr>
			<tr><td>frontier size</td><td id="frontier-size"></td></tr>
			<tr><td>elapsed</td><td id="elapsed"></td></tr>
		</table>
	{{ end }}`)
	return
}
