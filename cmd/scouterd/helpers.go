package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/comalice/scouter"
	"github.com/comalice/scouter/realtime"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		app.logger.Error("json marshal", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Error(err.Error(), "method", r.Method, "uri", r.URL.RequestURI())

	status := http.StatusInternalServerError
	if errors.Is(err, realtime.ErrClosed) || errors.Is(err, realtime.ErrQueueFull) {
		status = http.StatusServiceUnavailable
	}
	app.writeJSON(w, status, envelope{"error": http.StatusText(status)})
}

func (app *application) clientError(w http.ResponseWriter, status int, msg string) {
	app.writeJSON(w, status, envelope{"error": msg})
}

// control runs fn against the controller on the loop and replies with the resulting
// snapshot.
func (app *application) control(w http.ResponseWriter, r *http.Request, fn func(*scouter.Controller)) {
	var snap scouter.Snapshot
	err := app.loop.Do(r.Context(), func() {
		if fn != nil {
			fn(app.controller)
		}
		snap = app.controller.Snapshot()
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, snap)
}
