package network

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"deepdive_server/dataset"
	"deepdive_server/logic"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection with its own game session.
type Client struct {
	Room      *Room
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	Loop      *logic.GameLoop
}

func ServeWs(room *Room, w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sessID := fmt.Sprintf("dive_%d", time.Now().UnixNano())
	client := &Client{
		Room:      room,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: sessID,
		Loop:      logic.NewGameLoop(room.Config, sessID, time.Now().UnixNano(), room.Rewards),
	}
	client.Room.Register <- client

	go client.Loop.Run()
	go client.snapshotPump()
	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Room.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(c.Room.Config.Server.ReadLimitBytes)

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		env, err := DecodeEnvelope(message)
		if err != nil {
			continue
		}

		switch env.T {
		case MsgAction:
			p, err := DecodePayload[ActionPayload](env)
			if err != nil {
				continue
			}
			if input, ok := actionInput(p); ok {
				c.Loop.InputChan <- input
			}

		case MsgLoadDataset:
			p, err := DecodePayload[LoadDatasetPayload](env)
			if err != nil {
				continue
			}
			// Parsing runs here, on the read goroutine; only the
			// finished result crosses into the simulation, so the
			// tick never blocks on ingestion.
			qs, accepted, perr := dataset.Parse(p.Raw, dataset.FromHint(p.Hint))
			c.Loop.InputChan <- logic.PlayerInput{
				Type:      logic.ActionDatasetLoaded,
				Questions: qs,
				Accepted:  accepted,
				LoadErr:   perr,
			}

		case MsgTheme:
			p, err := DecodePayload[ThemePayload](env)
			if err != nil {
				continue
			}
			c.Room.NotifyTheme(p.Dark)
		}
	}
}

func (c *Client) writePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// snapshotPump forwards per-tick snapshots to the write pump. Frames
// are dropped rather than queued when the connection is slow. It is
// the last sender on Send once the loop stops, so it closes the
// channel to release the write pump.
func (c *Client) snapshotPump() {
	for {
		select {
		case snap := <-c.Loop.SnapshotChan:
			b, err := Encode(MsgSnapshot, snap)
			if err != nil {
				continue
			}
			select {
			case c.Send <- b:
			default:
			}
		case <-c.Loop.StopChan:
			close(c.Send)
			return
		}
	}
}

func (c *Client) SendJSON(t string, payload any) {
	b, err := Encode(t, payload)
	if err != nil {
		return
	}
	select {
	case c.Send <- b:
	default:
	}
}
