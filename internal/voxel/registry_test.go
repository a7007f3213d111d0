package voxel

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestDefaultRegistryRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	for _, typ := range Types() {
		id, ok := r.ID(typ)
		if !ok {
			t.Fatalf("%s not registered", typ)
		}
		back, ok := r.Type(id)
		if !ok || back != typ {
			t.Fatalf("round trip %s -> %d -> %s (ok=%v)", typ, id, back, ok)
		}
	}
	if r.Len() != len(Types()) {
		t.Fatalf("len: got %d, want %d", r.Len(), len(Types()))
	}
}

func TestRegisterRejectsSharedID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Dirt, 7); err != nil {
		t.Fatalf("register dirt: %v", err)
	}
	err := r.Register(Stone, 7)
	if !errors.Is(err, ErrAmbiguousRegistryState) {
		t.Fatalf("got %v, want ErrAmbiguousRegistryState", err)
	}
	if got, _ := r.Type(7); got != Dirt {
		t.Fatalf("id 7 resolves to %s after rejected registration, want dirt", got)
	}
	if _, ok := r.ID(Stone); ok {
		t.Fatalf("stone should stay unregistered")
	}
}

func TestRegisterAfterEvict(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Dirt, 3)
	if !r.Evict(Dirt) {
		t.Fatalf("evict dirt reported not registered")
	}
	if r.Evict(Dirt) {
		t.Fatalf("second evict should report false")
	}
	if err := r.Register(Stone, 3); err != nil {
		t.Fatalf("register stone on freed id: %v", err)
	}
	if got, _ := r.Type(3); got != Stone {
		t.Fatalf("id 3: got %s, want stone", got)
	}
}

func TestRemapIsObservable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewRegistry(WithLogger(logger))
	r.MustRegister(Grass, 1)
	r.MustRegister(Grass, 1) // same pair, no-op
	if r.Remaps() != 0 {
		t.Fatalf("identical registration counted as remap")
	}

	if err := r.Register(Grass, 9); err != nil {
		t.Fatalf("remap grass: %v", err)
	}
	if r.Remaps() != 1 {
		t.Fatalf("remaps: got %d, want 1", r.Remaps())
	}
	if _, ok := r.Type(1); ok {
		t.Fatalf("old id 1 should be released after remap")
	}
	if got, _ := r.Type(9); got != Grass {
		t.Fatalf("id 9: got %s, want grass", got)
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning entry, got %+v", entry)
	}
	if entry.Data["old_id"] != ID(1) || entry.Data["new_id"] != ID(9) {
		t.Fatalf("unexpected fields: %v", entry.Data)
	}
}

func TestUnknownType(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.ID(Sand); ok {
		t.Fatalf("empty registry returned an id")
	}
	if err := r.Register(Type(200), 1); !errors.Is(err, ErrUnknownVoxelType) {
		t.Fatalf("got %v, want ErrUnknownVoxelType", err)
	}
	if _, err := ParseType("bedrock"); !errors.Is(err, ErrUnknownVoxelType) {
		t.Fatalf("parse bedrock: got %v", err)
	}
	if typ, err := ParseType(" Stone "); err != nil || typ != Stone {
		t.Fatalf("parse stone: got %s, %v", typ, err)
	}
}

func TestEntriesSortedByID(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Water, 40)
	r.MustRegister(Air, 0)
	r.MustRegister(Sand, 12)

	entries := r.Entries()
	want := []Entry{{Air, 0}, {Sand, 12}, {Water, 40}}
	if len(entries) != len(want) {
		t.Fatalf("entries: got %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entries[%d]: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}
