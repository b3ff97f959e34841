// Package root_view assembles the dashboard's single page: the container
// for every view component, and the wiring that fans their ele-update
// channels into one stream the server pushes over a websocket.
package root_view

import (
	"context"
	"html/template"
	"log"
	"time"

	"anyhop/server/fastview"
	"anyhop/server/searchviews"

	channerics "github.com/niceyeti/channerics/channels"
)

// RootView is the main page's index.html: the container for all the view
// components and the wiring for their channels.
type RootView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

// NewRootView builds the main page and the views it contains, given a
// stream of searchviews.Update fed by the CLI's progress hook.
func NewRootView(
	ctx context.Context,
	updates <-chan searchviews.Update,
) *RootView {
	views, err := fastview.NewViewBuilder[searchviews.Update, searchviews.SearchStatus]().
		WithContext(ctx).
		WithModel(updates, searchviews.Convert).
		WithView(func(done <-chan struct{}, statuses <-chan searchviews.SearchStatus) fastview.ViewComponent {
			return searchviews.NewStatusView(done, statuses)
		}).
		WithView(func(done <-chan struct{}, statuses <-chan searchviews.SearchStatus) fastview.ViewComponent {
			return searchviews.NewPlanView(done, statuses)
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	return &RootView{
		views:   views,
		updates: fanIn(ctx.Done(), views),
	}
}

// Updates returns the main ele-update channel for all the views.
func (rv *RootView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the main page's template, with websocket bootstrap code, and
// returns its name.
func (rv *RootView) Parse(
	parent *template.Template,
) (name string, err error) {
	rt := parent.Funcs(
		template.FuncMap{
			"add":  func(i, j int) int { return i + j },
			"sub":  func(i, j int) int { return i - j },
			"mult": func(i, j int) int { return i * j },
			"div":  func(i, j int) int { return i / j },
		})

	var viewTemplates []string
	for _, vc := range rv.views {
		tname, parseErr := vc.Parse(rt)
		if parseErr != nil {
			err = parseErr
			return
		}
		viewTemplates = append(viewTemplates, tname)
	}

	var bodySpec string
	for _, tname := range viewTemplates {
		bodySpec += `{{ template "` + tname + `" . }}`
	}

	name = "mainpage"
	indexTemplate := `
	{{ define "` + name + `" }}
	<!DOCTYPE html>
	<html>
		<head>
			<title>htnplan dashboard</title>
			<link rel="icon" href="data:,">
			<script>
				const ws = new WebSocket("ws://" + window.location.host + "/ws");
				ws.onopen = function (event) {
					console.log("dashboard socket opened")
				};
				ws.onerror = function (event) {
					console.log('dashboard socket error: ', event);
				};
				ws.onmessage = function (event) {
					const items = JSON.parse(event.data)
					for (const update of items) {
						const ele = document.getElementById(update.EleId)
						if (!ele) { continue }
						for (const op of update.Ops) {
							if (op.Key === "textContent") {
								ele.textContent = op.Value;
							} else {
								ele.setAttribute(op.Key, op.Value)
							}
						}
					}
				}
			</script>
		</head>
		<body>
		` + bodySpec + `
		</body></html>
	{{ end }}
	`

	_, err = rt.Parse(indexTemplate)
	return
}

// fanIn aggregates the views' ele-update channels into a single channel,
// batching updates that land within a short window so the dashboard never
// publishes faster than the client can usefully render.
func fanIn(
	done <-chan struct{},
	views []fastview.ViewComponent,
) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, view := range views {
		inputs[i] = view.Updates()
	}
	return batchify(done, channerics.Merge(done, inputs...), time.Millisecond*20)
}

// batchify coalesces updates received within rate into a single emission,
// overwriting any earlier update to the same element id.
func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	rate time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)

		data := map[string]fastview.EleUpdate{}
		last := time.Now()
		for updates := range channerics.OrDone(done, source) {
			for _, update := range updates {
				data[update.EleId] = update
			}

			if time.Since(last) > rate && len(updates) > 0 {
				select {
				case output <- slicedVals(data):
					data = map[string]fastview.EleUpdate{}
					last = time.Now()
				case <-done:
					return
				}
			}
		}
	}()

	return output
}

func slicedVals[K comparable, V any](m map[K]V) (vals []V) {
	for _, v := range m {
		vals = append(vals, v)
	}
	return
}
