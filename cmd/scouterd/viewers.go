package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/comalice/scouter/internal/production"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10 // 90% of pongWait

	websocketUpgrader = websocket.Upgrader{
		CheckOrigin:     checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
)

// checkOrigin accepts non-browser clients and same-host pages.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// viewer is one websocket connection watching the frame stream.
type viewer struct {
	connection *websocket.Conn
	hub        *viewerHub

	// egress serialises writes on the connection
	egress chan []byte
}

type viewerList map[*viewer]bool

// viewerHub tracks the connected viewers. Together they are the host surface: the
// first viewer makes it visible and the last one leaving detaches it.
type viewerHub struct {
	logger *slog.Logger

	viewers   viewerList
	viewersMu sync.RWMutex

	onFirst func()
	onLast  func()
}

func newViewerHub(logger *slog.Logger, onFirst, onLast func()) *viewerHub {
	return &viewerHub{
		logger:  logger,
		viewers: make(viewerList),
		onFirst: onFirst,
		onLast:  onLast,
	}
}

func (h *viewerHub) serveWS(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("new viewer", "origin", r.RemoteAddr)

	conn, err := websocketUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(err.Error())
		return
	}

	v := &viewer{
		connection: conn,
		hub:        h,
		egress:     make(chan []byte, 16),
	}

	h.addViewer(v)

	go v.readMessages(h.logger)
	go v.writeMessages(h.logger)
}

func (h *viewerHub) addViewer(v *viewer) {
	h.viewersMu.Lock()
	h.viewers[v] = true
	first := len(h.viewers) == 1
	h.viewersMu.Unlock()

	if first && h.onFirst != nil {
		h.onFirst()
	}
}

func (h *viewerHub) removeViewer(v *viewer) {
	h.viewersMu.Lock()
	if _, ok := h.viewers[v]; !ok {
		h.viewersMu.Unlock()
		return
	}
	delete(h.viewers, v)
	close(v.egress)
	last := len(h.viewers) == 0
	h.viewersMu.Unlock()

	v.connection.Close()
	h.logger.Info("viewer left", "origin", v.connection.RemoteAddr().String())

	if last && h.onLast != nil {
		h.onLast()
	}
}

func (h *viewerHub) count() int {
	h.viewersMu.RLock()
	defer h.viewersMu.RUnlock()

	return len(h.viewers)
}

// closeAll drops every viewer connection. The read pumps notice and remove them.
func (h *viewerHub) closeAll() {
	h.viewersMu.RLock()
	defer h.viewersMu.RUnlock()

	for v := range h.viewers {
		v.connection.Close()
	}
}

// broadcast fans frames out until the channel is closed. A viewer whose buffer is
// full misses the frame.
func (h *viewerHub) broadcast(frames <-chan production.PublishedFrame) {
	for f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			h.logger.Error("error marshalling frame", "error", err)
			continue
		}

		h.viewersMu.RLock()
		for v := range h.viewers {
			select {
			case v.egress <- data:
			default:
				h.logger.Debug("viewer lagging, frame dropped", "seq", f.Seq)
			}
		}
		h.viewersMu.RUnlock()
	}
}

func (v *viewer) readMessages(logger *slog.Logger) {
	defer func() {
		v.hub.removeViewer(v)
	}()

	if err := v.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Error(err.Error())
		return
	}

	// viewers only listen; anything they send is discarded
	v.connection.SetReadLimit(512)
	v.connection.SetPongHandler(v.pongHandler)

	for {
		if _, _, err := v.connection.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("error reading message", "error", err)
			}
			return
		}
	}
}

func (v *viewer) writeMessages(logger *slog.Logger) {
	defer func() {
		v.hub.removeViewer(v)
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-v.egress:
			if !ok {
				v.connection.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			if err := v.connection.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Debug("failed to send frame", "error", err)
				return
			}
		case <-ticker.C:
			if err := v.connection.WriteMessage(websocket.PingMessage, []byte(``)); err != nil {
				logger.Debug("ping error", "error", err)
				return
			}
		}
	}
}

func (v *viewer) pongHandler(string) error {
	return v.connection.SetReadDeadline(time.Now().Add(pongWait))
}
