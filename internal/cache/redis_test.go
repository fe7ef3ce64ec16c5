package cache

import "testing"

func TestBuildKey(t *testing.T) {
	got := buildKey("hybrid", 42, 10)
	want := "rec:hybrid:user:42:limit:10"
	if got != want {
		t.Errorf("buildKey = %q, want %q", got, want)
	}
}
