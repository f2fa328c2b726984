package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Infof("encoded %d bytes", 12)
	l.Errorf("decode: %v", "bad")
	got := buf.String()
	for _, want := range []string{"[INFO] encoded 12 bytes\n", "[ERROR] decode: bad\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}
