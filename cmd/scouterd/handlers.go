package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/comalice/scouter"
)

func (app *application) ping(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, envelope{"status": "available", "viewers": app.viewers.count()})
}

func (app *application) startHandler(w http.ResponseWriter, r *http.Request) {
	app.control(w, r, (*scouter.Controller).Start)
}

func (app *application) stopHandler(w http.ResponseWriter, r *http.Request) {
	app.control(w, r, (*scouter.Controller).Stop)
}

func (app *application) forceStartHandler(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest, "enabled must be a boolean")
		return
	}

	app.control(w, r, func(c *scouter.Controller) { c.SetForceStart(enabled) })
}

// baseHandler moves the base. Without millis, the base becomes the loop's current time.
func (app *application) baseHandler(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("millis")
	if v == "" {
		app.control(w, r, func(c *scouter.Controller) { c.SetBaseMillis(app.loop.Now().Milliseconds()) })
		return
	}

	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		app.clientError(w, http.StatusBadRequest, fmt.Sprintf("millis %q is not an integer", v))
		return
	}

	app.control(w, r, func(c *scouter.Controller) { c.SetBaseMillis(ms) })
}

func (app *application) stateHandler(w http.ResponseWriter, r *http.Request) {
	app.control(w, r, nil)
}

func (app *application) stateDOTHandler(w http.ResponseWriter, r *http.Request) {
	var snap scouter.Snapshot
	if err := app.loop.Do(r.Context(), func() { snap = app.controller.Snapshot() }); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	fmt.Fprint(w, app.visualizer.ExportDOT(snap))
}
