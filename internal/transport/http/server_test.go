package http

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/peerlink/signaling-server/internal/core"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, 0)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestBannerWithoutStaticDir(t *testing.T) {
	ts := startTestServer(t, 0)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "WebRTC signaling server is running\n" {
		t.Fatalf("unexpected root response: %d %q", resp.StatusCode, body)
	}
}

func TestRoomsEndpoint(t *testing.T) {
	ts := startTestServer(t, 16)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	defer connA.Close(websocket.StatusNormalClosure, "done")
	connB := dialWS(t, ctx, ts)
	defer connB.Close(websocket.StatusNormalClosure, "done")

	idA := readType(t, ctx, connA, "welcome")["clientId"].(float64)
	readType(t, ctx, connB, "welcome")

	registerSync(t, ctx, connA, "alice", "demo")
	registerSync(t, ctx, connB, "bob", "lobby")

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("rooms request failed: %v", err)
	}
	defer resp.Body.Close()

	var snap core.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode rooms response: %v", err)
	}

	if snap.TotalClients != 2 || snap.TotalRooms != 2 {
		t.Fatalf("unexpected totals: %+v", snap)
	}
	demo, ok := snap.Rooms["demo"]
	if !ok || demo.Count != 1 || demo.MaxPeers != 16 {
		t.Fatalf("unexpected demo room: %+v", snap.Rooms)
	}
	if demo.Peers[0].ID != int64(idA) || demo.Peers[0].Name != "alice" {
		t.Fatalf("unexpected peer entry: %+v", demo.Peers[0])
	}
}
