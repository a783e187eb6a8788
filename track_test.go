package progrich

import (
	"io"
	"strings"
	"testing"
)

func TestTrackSliceYieldsEverythingAndFinishes(t *testing.T) {
	mgr, _ := quietManager()
	in := []string{"a", "b", "c"}
	var got []string
	for v := range TrackSlice(in, "letters", WithBarManager(mgr)) {
		got = append(got, v)
	}
	if strings.Join(got, "") != "abc" {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestTrackNCountsAndCompletes(t *testing.T) {
	mgr, _ := quietManager()
	sum := 0
	for i := range TrackN(5, "count", WithBarManager(mgr)) {
		sum += i
	}
	if sum != 10 {
		t.Fatalf("sum = %d, want 10", sum)
	}
}

func TestTrackEarlyBreak(t *testing.T) {
	mgr, _ := quietManager()
	seen := 0
	for range TrackN(100, "partial", WithBarManager(mgr)) {
		seen++
		if seen == 3 {
			break
		}
	}
	if seen != 3 {
		t.Fatalf("seen = %d, want 3", seen)
	}
}

func TestReaderAdvancesWithBytes(t *testing.T) {
	mgr, _ := quietManager()
	payload := strings.Repeat("x", 1024)
	r := NewReader(strings.NewReader(payload), int64(len(payload)), "download",
		WithBarManager(mgr))
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("copied %d bytes, want %d", n, len(payload))
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestReaderCloseStopsEarly(t *testing.T) {
	mgr, _ := quietManager()
	r := NewReader(strings.NewReader("abcdef"), 6, "partial", WithBarManager(mgr))
	buf := make([]byte, 2)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Closing again must not error: the bar is already finished.
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
