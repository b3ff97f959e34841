package searchviews

import (
	"html/template"

	"anyhop/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// PlanView renders the most recently emitted plan as a single arrow-joined
// line of task names, so a viewer watching the dashboard can see the plan
// improve in place rather than scrolling a growing log.
type PlanView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

// NewPlanView wires a PlanView to a stream of SearchStatus updates.
func NewPlanView(
	done <-chan struct{},
	statuses <-chan SearchStatus,
) *PlanView {
	pv := &PlanView{id: "plan"}
	pv.updates = channerics.Convert(done, statuses, pv.onUpdate)
	return pv
}

// Updates returns the ele-update channel this view emits on.
func (pv *PlanView) Updates() <-chan []fastview.EleUpdate {
	return pv.updates
}

func (pv *PlanView) onUpdate(status SearchStatus) []fastview.EleUpdate {
	return []fastview.EleUpdate{
		{
			EleId: pv.id,
			Ops:   []fastview.Op{{Key: "textContent", Value: planText(status.Plan)}},
		},
	}
}

// Parse adds the plan line's template to the parent, returning its name.
func (pv *PlanView) Parse(t *template.Template) (name string, err error) {
	name = pv.id
	_, err = t.Parse(`{{ define "` + name + `" }}
		<pre id="` + pv.id + `" style="font-family: monospace; white-space: pre-wrap;"></pre>
	{{ end }}`)
	return
}
