package main

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", app.ping)
	mux.HandleFunc("GET /ws", app.viewers.serveWS)

	mux.HandleFunc("POST /start", app.startHandler)
	mux.HandleFunc("POST /stop", app.stopHandler)
	mux.HandleFunc("POST /force-start", app.forceStartHandler)
	mux.HandleFunc("PUT /base", app.baseHandler)

	mux.HandleFunc("GET /state", app.stateHandler)
	mux.HandleFunc("GET /state.dot", app.stateDOTHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(app.metricsRegistry, promhttp.HandlerOpts{}))

	standard := alice.New(app.metrics, app.recoverPanic, app.logRequest)

	return standard.Then(mux)
}
