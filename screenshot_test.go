package thicket

import (
	"testing"

	"github.com/phanxgames/thicket/config"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"hello world", "hello_world"},
		{"a/b\\c", "a_b_c"},
		{"file.png", "file.png"},
		{"my-label", "my-label"},
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"café", "caf_"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshot_Queues(t *testing.T) {
	tg := newTestGame(t, config.Default())
	tg.Screenshot("one")
	tg.Screenshot("two")
	if len(tg.screenshots) != 2 || tg.screenshots[1] != "two" {
		t.Errorf("screenshots = %v, want [one two]", tg.screenshots)
	}
}

func TestStraightAlpha(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	}
	img := straightAlpha(pixels, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], b)
		}
	}
}
