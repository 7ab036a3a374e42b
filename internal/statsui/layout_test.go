package statsui

import (
	"strings"
	"testing"
)

func TestFitLines(t *testing.T) {
	out := fitLines("a\nbb", 4, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Fatalf("line %d not padded: %q", i, line)
		}
	}

	out = fitLines("a\nb\nc\nd", 1, 2)
	if out != "a\nb" {
		t.Fatalf("expected truncation to height, got %q", out)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := truncateLine("a long header line", 10); got != "a long ..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected: %q", got)
	}
}
