package main

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		app.logger.Debug("received request", "ip", ip, "proto", proto, "method", method, "uri", uri)

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type metricsResponseWriter struct {
	wrapped       http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		wrapped:    w,
		statusCode: http.StatusOK,
	}
}

func (mw *metricsResponseWriter) Header() http.Header {
	return mw.wrapped.Header()
}

func (mw *metricsResponseWriter) WriteHeader(statusCode int) {
	mw.wrapped.WriteHeader(statusCode)

	if !mw.headerWritten {
		mw.statusCode = statusCode
		mw.headerWritten = true
	}
}

func (mw *metricsResponseWriter) Write(b []byte) (int, error) {
	mw.headerWritten = true
	return mw.wrapped.Write(b)
}

func (mw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return mw.wrapped
}

// Hijack lets the websocket upgrader take the connection through the wrapper.
func (mw *metricsResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	mw.statusCode = http.StatusSwitchingProtocols
	mw.headerWritten = true
	return http.NewResponseController(mw.wrapped).Hijack()
}

func (app *application) metrics(next http.Handler) http.Handler {
	var totalRequestsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_received_total",
			Help: "Total number of http requests received",
		},
	)

	var totalResponsesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "responses_sent_total",
			Help: "Total number of http responses sent",
		},
	)

	var totalResponsesSentByStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "responses_sent_by_status_total",
			Help: "Total http responses sent by status",
		},
		[]string{
			"response_code",
		},
	)

	app.metricsRegistry.MustRegister(totalRequestsReceived, totalResponsesSent, totalResponsesSentByStatus)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totalRequestsReceived.Inc()

		mw := newMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		totalResponsesSent.Inc()

		totalResponsesSentByStatus.With(prometheus.Labels{
			"response_code": strconv.Itoa(mw.statusCode),
		}).Inc()
	})
}
