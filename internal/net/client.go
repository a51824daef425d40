package net

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

// Follow connects to the mirror at url and calls onSnapshot with every
// snapshot it receives, until ctx is done or the host closes the mirror.
// A normal close by the host returns nil.
func Follow(ctx context.Context, url string, onSnapshot func([]byte)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("reading from %s: %w", url, err)
		}
		onSnapshot(data)
	}
}
