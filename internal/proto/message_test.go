package proto

import "testing"

func TestDecodeInboundTargetIDForms(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want ID
	}{
		{"number", `{"type":"offer","targetId":5}`, 5},
		{"numeric string", `{"type":"offer","targetId":"5"}`, 5},
		{"null", `{"type":"offer","targetId":null}`, 0},
		{"absent", `{"type":"offer"}`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, _, err := DecodeInbound([]byte(tc.raw))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.TargetID != tc.want {
				t.Fatalf("targetId = %d, want %d", env.TargetID, tc.want)
			}
		})
	}
}

func TestDecodeInboundKeepsOpaqueFields(t *testing.T) {
	raw := `{"type":"offer","targetId":2,"sdp":{"type":"offer","sdp":"v=0"},"custom":"x"}`

	env, payload, err := DecodeInbound([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Type != TypeOffer {
		t.Fatalf("type = %q", env.Type)
	}
	if _, ok := payload["sdp"]; !ok {
		t.Fatal("sdp payload not retained")
	}
	if payload["custom"] != "x" {
		t.Fatal("unknown field not retained")
	}
}

func TestDecodeInboundRegisterNameAlias(t *testing.T) {
	env, _, err := DecodeInbound([]byte(`{"type":"register","name":"alice","roomId":"demo"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Name != "alice" || env.RoomID != "demo" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestDecodeInboundMalformed(t *testing.T) {
	for _, raw := range []string{"not json", `{"type":"offer","targetId":"abc"}`, `[]`} {
		if _, _, err := DecodeInbound([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
