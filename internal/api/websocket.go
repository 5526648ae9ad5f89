package api

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/opensmoker/smokerd/internal/ui"
)

// streamRate is how often a snapshot is pushed to each connected client.
const streamRate = 1 * time.Second

var upgrader = websocket.Upgrader{} // use default options

// streamStatus upgrades the connection and pushes one snapshot per
// streamRate until the peer goes away.
func streamStatus(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ui.Warning("Websocket upgrade failed: %v", err)
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	if err := conn.WriteJSON(statusTracker.Snapshot()); err != nil {
		return nil
	}

	ticker := time.NewTicker(streamRate)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := conn.WriteJSON(statusTracker.Snapshot()); err != nil {
				// client disconnected
				return nil
			}
		}
	}
}
