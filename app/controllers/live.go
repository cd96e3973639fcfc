package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/km-arc/controlled-form/app/form"
	"github.com/km-arc/controlled-form/app/views"
)

const (
	liveWriteWait  = 10 * time.Second
	liveReadLimit  = 16 << 10
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

// LiveController pushes a freshly rendered form fragment to the browser
// after every state change of the caller's session. The browser sends its
// input events over the same connection.
type LiveController struct {
	*FormController
	Upgrader websocket.Upgrader
}

// Connect upgrades the request.
//
//	GET /form/live
func (c *LiveController) Connect(w http.ResponseWriter, r *http.Request) {
	header := http.Header{}
	id, store, created := c.Sessions.GetOrCreate(c.Request(r).Cookie(c.Cookie))
	if created {
		header.Add("Set-Cookie", c.cookie(id).String())
	}

	conn, err := c.Upgrader.Upgrade(w, r, header)
	if err != nil {
		c.Logger.Error("websocket upgrade failed", "error", err)
		return
	}
	c.Metrics.LiveConnected()
	defer c.Metrics.LiveDisconnected()

	renders := make(chan []byte, 1)
	unsubscribe := store.Subscribe(func(snap form.Snapshot) {
		var buf bytes.Buffer
		if err := c.Views.Render(&buf, views.Form, views.NewFormView(snap)); err != nil {
			c.Logger.Error("render form", "error", err)
			return
		}
		latest(renders, buf.Bytes())
	})
	defer unsubscribe()

	done := make(chan struct{})
	go c.writeLoop(conn, renders, done)
	c.readLoop(conn, id, store)
	close(done)
}

// readLoop applies every event the client sends until the connection drops.
// Each event and pong counts as session activity; once the session has been
// evicted the connection is closed so the page reconnects to a fresh one.
func (c *LiveController) readLoop(conn *websocket.Conn, id string, store *form.Store) {
	defer conn.Close()
	conn.SetReadLimit(liveReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		if _, err := c.Sessions.Get(id); err != nil {
			return err
		}
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		var change form.Change
		if err := conn.ReadJSON(&change); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				c.Logger.Debug("live connection closed", "error", err)
			}
			return
		}
		if _, err := c.Sessions.Get(id); err != nil {
			c.Logger.Debug("live session expired", "error", err)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		// Rejections are logged and counted by dispatch; the client keeps
		// the last good render.
		_, _ = c.dispatch(store, change)
	}
}

// writeLoop is the connection's only writer.
func (c *LiveController) writeLoop(conn *websocket.Conn, renders <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(liveWriteWait))
			return
		case html := <-renders:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, html); err != nil {
				c.Logger.Debug("live write failed", "error", err)
				conn.Close()
				return
			}
			c.Metrics.Rendered()
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				conn.Close()
				return
			}
		}
	}
}

// latest puts b into ch, replacing any render still waiting to be sent.
func latest(ch chan []byte, b []byte) {
	for {
		select {
		case ch <- b:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
