package save

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/oski/internal/core"
	"github.com/vovakirdan/oski/internal/dialogue"
	"github.com/vovakirdan/oski/internal/world"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Params: world.DefaultParams(),
		Seed:   42,
		Avatar: core.Pt(10, 12),
		NPC:    core.Pt(30, 20),
		Items: world.ItemPositions{
			Beer:  []core.Point{core.Pt(5, 7), core.Pt(6, 9)},
			Cards: []core.Point{core.Pt(40, 30)},
		},
		Picked:    world.NewLedger(core.Pt(5, 7)),
		Inventory: []world.Tile{world.TileBeer, world.TileCard},
		Dialogue:  dialogue.StateSecondTree,
		Warned:    true,
		Turns:     57,
		SessionID: "5f0c3a52-1d4e-4c1b-9a53-2f6f3f1f9e10",
	}
}

func TestRoundTrip(t *testing.T) {
	s := sampleSnapshot()

	blob, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if !got.Equal(s) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, s)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %d", got.Seed)
	}
	if !got.Picked.Has(core.Pt(5, 7)) || len(got.Picked) != 1 {
		t.Errorf("Picked = %v", got.Picked.Sorted())
	}
	if len(got.Inventory) != 2 || got.Inventory[0] != world.TileBeer || got.Inventory[1] != world.TileCard {
		t.Errorf("Inventory = %v", got.Inventory)
	}
	if got.Turns != 57 || got.SessionID != s.SessionID {
		t.Errorf("Turns = %d, SessionID = %q", got.Turns, got.SessionID)
	}
}

func TestRoundTripEmptyCollections(t *testing.T) {
	s := Snapshot{
		Params:   world.DefaultParams(),
		Seed:     0,
		Avatar:   core.Pt(3, 4),
		NPC:      core.Pt(4, 4),
		Dialogue: dialogue.StateIdle,
	}
	blob, err := Encode(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(s) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCodecsShared(t *testing.T) {
	enc1, dec1, err := codecs()
	if err != nil {
		t.Fatalf("codecs() failed: %v", err)
	}
	enc2, dec2, err := codecs()
	if err != nil {
		t.Fatalf("codecs() failed on second call: %v", err)
	}
	if enc1 == nil || dec1 == nil || enc1 != enc2 || dec1 != dec2 {
		t.Error("codecs() should build one encoder and decoder and reuse them")
	}
}

func TestEncodeIsText(t *testing.T) {
	blob, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(blob, "\n\r\x00") {
		t.Error("blob should be a single line of text")
	}
	if _, err := base64.StdEncoding.DecodeString(blob); err != nil {
		t.Errorf("blob is not base64: %v", err)
	}
}

// pack builds a blob around arbitrary JSON, bypassing the snapshot encoder.
func pack(t *testing.T, raw string) string {
	t.Helper()
	enc, _, err := codecs()
	if err != nil {
		t.Fatalf("codecs() failed: %v", err)
	}
	return base64.StdEncoding.EncodeToString(enc.EncodeAll([]byte(raw), nil))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		stage string
	}{
		{"not base64", "!!!", "base64"},
		{"not zstd", base64.StdEncoding.EncodeToString([]byte("plain text")), "zstd"},
		{"not json", pack(t, "{oops"), "json"},
		{"missing fields", pack(t, `{"version":1,"seed":42}`), "schema"},
		{"negative position", pack(t, strings.Replace(validJSON(t), `"avatar":[10,12]`, `"avatar":[-1,12]`, 1)), "schema"},
		{"unknown item", pack(t, strings.Replace(validJSON(t), `"inventory":["beer","card"]`, `"inventory":["beer","pizza"]`, 1)), "schema"},
		{"negative turns", pack(t, strings.Replace(validJSON(t), `"turns":57`, `"turns":-1`, 1)), "schema"},
	}
	for _, tt := range tests {
		_, err := Decode(tt.blob)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("%s: expected ErrDecode, got %v", tt.name, err)
			continue
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected *DecodeError, got %T", tt.name, err)
			continue
		}
		if de.Stage != tt.stage {
			t.Errorf("%s: stage %q, want %q", tt.name, de.Stage, tt.stage)
		}
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	raw := strings.Replace(validJSON(t), `"version":1`, `"version":2`, 1)
	_, err := Decode(pack(t, raw))
	if !errors.Is(err, ErrVersion) {
		t.Errorf("expected ErrVersion, got %v", err)
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("version errors should also match ErrDecode, got %v", err)
	}
}

// validJSON returns the wire JSON of the sample snapshot.
func validJSON(t *testing.T) string {
	t.Helper()
	blob, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	packed, _ := base64.StdEncoding.DecodeString(blob)
	_, dec, err := codecs()
	if err != nil {
		t.Fatal(err)
	}
	raw, err := dec.DecodeAll(packed, nil)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}
