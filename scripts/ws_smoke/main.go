package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Manual smoke client: registers in a room, asks for the peer list and
// sends a chat line, printing everything the relay sends back.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "tester", "display name to register with")
	room := flag.String("room", "demo", "room id")
	text := flag.String("text", "hello from smoke test", "chat text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v map[string]any) error {
		if err := wsjson.Write(ctx, conn, v); err != nil {
			return fmt.Errorf("send %v: %w", v["type"], err)
		}
		return nil
	}

	if err := send(map[string]any{"type": "register", "peerName": *name, "roomId": *room}); err != nil {
		return err
	}
	if err := send(map[string]any{"type": "get-peers"}); err != nil {
		return err
	}
	if err := send(map[string]any{"type": "chat", "text": *text, "timestamp": time.Now().UnixMilli()}); err != nil {
		return err
	}

	for {
		var msg map[string]any
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		line, _ := json.Marshal(msg)
		fmt.Printf("received: %s\n", line)
	}
}
