package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"Sketchpad/internal/state"
)

func waitPeers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Peers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d peers, want %d", h.Peers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	h := NewHub()
	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return h, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHubMirrorsJournal(t *testing.T) {
	h, url := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan state.Change, 8)
	errc := make(chan error, 1)
	go func() { errc <- Watch(ctx, url, func(c state.Change) { got <- c }) }()
	waitPeers(t, h, 1)

	j := state.NewJournal()
	j.Subscribe(h.Broadcast)
	s := state.NewStroke([]state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, state.DefaultAttributes())
	want := []state.Change{
		j.Record(state.ChangeCommit, &s),
		j.Record(state.ChangeUndo, nil),
	}

	for i := range want {
		select {
		case c := <-got:
			if d := cmp.Diff(want[i], c); d != "" {
				t.Errorf("change %d mismatch (-want +got):\n%s", i, d)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("change %d never arrived", i)
		}
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Watch() = %v after cancel", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	waitPeers(t, h, 0)
}

func TestHubBroadcastWithoutPeers(t *testing.T) {
	h := NewHub()
	h.Broadcast(state.Change{Kind: state.ChangeClear, Seq: 1})
	if h.Peers() != 0 {
		t.Errorf("Peers() = %d", h.Peers())
	}
}

func TestHubClose(t *testing.T) {
	h, url := startHub(t)
	errc := make(chan error, 1)
	go func() { errc <- Watch(context.Background(), url, func(state.Change) {}) }()
	waitPeers(t, h, 1)

	h.Close()
	select {
	case err := <-errc:
		if err == nil {
			t.Error("Watch() returned nil after the hub hung up")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not notice the hub closing")
	}
	if h.Peers() != 0 {
		t.Errorf("Peers() = %d after Close", h.Peers())
	}
}

func TestWatchBadURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := Watch(ctx, "ws://127.0.0.1:1"+MirrorPath, func(state.Change) {}); err == nil {
		t.Error("expected a dial error")
	}
}
