package guard

import "testing"

func TestDepthTracksNestingAcrossContainers(t *testing.T) {
	d := Depth([]byte(`{"a": [1, 2, {"b": [3]}]}`))
	if d != 4 {
		t.Fatalf("Depth() = %d, want 4", d)
	}
}

func TestDepthIgnoresBracesInsideStrings(t *testing.T) {
	d := Depth([]byte(`{"a": "{[{[{["}`))
	if d != 1 {
		t.Fatalf("Depth() = %d, want 1", d)
	}
}

func TestDepthNeverGoesNegativeOnUnbalancedClosers(t *testing.T) {
	d := Depth([]byte(`}}}{"a": 1}`))
	if d != 1 {
		t.Fatalf("Depth() = %d, want 1", d)
	}
}

func TestTooDeepDisabledByNonPositiveMax(t *testing.T) {
	if _, exceeded := TooDeep([]byte(`{"a":{"b":{"c":1}}}`), 0); exceeded {
		t.Fatal("TooDeep with maxDepth<=0 should never report exceeded")
	}
}

func TestTooDeepReportsExceeded(t *testing.T) {
	depth, exceeded := TooDeep([]byte(`{"a":{"b":{"c":1}}}`), 2)
	if !exceeded || depth != 3 {
		t.Fatalf("TooDeep() = (%d, %v), want (3, true)", depth, exceeded)
	}
}

func TestTooLargeReportsExceeded(t *testing.T) {
	size, exceeded := TooLarge([]byte(`{"a":1}`), 4)
	if !exceeded || size != 7 {
		t.Fatalf("TooLarge() = (%d, %v), want (7, true)", size, exceeded)
	}
}
