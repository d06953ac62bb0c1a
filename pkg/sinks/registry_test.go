package sinks

import (
	"errors"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	console := &fakeHandler{name: "Console"}
	journal := &fakeHandler{name: "journal"}
	reg := NewRegistry(console, journal)

	got, err := reg.Get("console")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != Handler(console) {
		t.Fatalf("expected the console handler back")
	}

	if _, err := reg.Get("missing"); !errors.Is(err, ErrHandlerNotFound) {
		t.Fatalf("expected ErrHandlerNotFound, got %v", err)
	}
}

func TestRegistryDescribe(t *testing.T) {
	reg := NewRegistry(&fakeHandler{name: "journal"}, &fakeHandler{name: "console"})

	got := reg.Describe()
	if len(got) != 2 || got[0] != "console" || got[1] != "journal" {
		t.Fatalf("expected sorted names, got %v", got)
	}
}

func TestRegistrySkipsUnusable(t *testing.T) {
	reg := NewRegistry(nil, &fakeHandler{name: "  "})
	if len(reg.Describe()) != 0 {
		t.Fatalf("expected nil and unnamed handlers skipped, got %v", reg.Describe())
	}
}
