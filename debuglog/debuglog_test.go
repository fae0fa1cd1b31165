package debuglog

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimedMessagesDeduplicate(t *testing.T) {
	q := NewQueue(LevelDebug, 100, &bytes.Buffer{})
	log := q.Logger("map")
	for i := range 5 {
		log.Debugf("player at %d", i)
	}
	got := q.Pop(10)
	if len(got) != 1 {
		t.Fatalf("messages = %v, want 1", got)
	}
	if got[0].Text != "player at 0" {
		t.Errorf("Text = %q, want the first message kept", got[0].Text)
	}
	if got[0].String() != "[map] player at 0" {
		t.Errorf("String = %q", got[0].String())
	}
}

func TestTimedMessagesExpire(t *testing.T) {
	q := NewQueue(LevelDebug, 100, &bytes.Buffer{})
	q.Logger("scene").Infof("entered")
	if len(q.Pop(60)) != 1 {
		t.Fatal("message should be visible on the first frame")
	}
	if len(q.Pop(60)) != 1 {
		t.Fatal("message should still be visible at 60ms")
	}
	if len(q.Pop(10)) != 0 {
		t.Error("message should have expired after 120ms")
	}
}

func TestPerFrameMessages(t *testing.T) {
	q := NewQueue(LevelDebug, 100, &bytes.Buffer{})
	q.Logger("fps").PerFrame().Debugf("60")
	if len(q.Pop(16)) != 1 {
		t.Fatal("per-frame message missing")
	}
	if len(q.Pop(16)) != 0 {
		t.Error("per-frame message should be cleared after one pop")
	}
}

func TestLevelFilter(t *testing.T) {
	var out bytes.Buffer
	q := NewQueue(LevelWarning, 100, &out)
	l := q.Logger("tilemap")
	l.Debugf("ignored")
	l.Errorf("missing tileset %s", "grass.tsx")
	got := q.Pop(0)
	if len(got) != 1 || got[0].Level != LevelError {
		t.Fatalf("messages = %v, want only the error", got)
	}
	if !strings.Contains(out.String(), "[thicket] ") || !strings.Contains(out.String(), "missing tileset grass.tsx") {
		t.Errorf("console = %q", out.String())
	}
}

func TestConsoleOnlyShowsNothing(t *testing.T) {
	var out bytes.Buffer
	q := ConsoleOnly(&out)
	q.Logger("game").Warningf("slow frame")
	if len(q.Pop(0)) != 0 {
		t.Error("console-only queue should not show messages on screen")
	}
	if out.Len() == 0 {
		t.Error("warnings should still reach the console")
	}
}

func TestNilQueueDiscards(t *testing.T) {
	var q *Queue
	q.Logger("x").Errorf("dropped")
	if q.Pop(10) != nil {
		t.Error("nil queue should pop nothing")
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("Warning")
	if err != nil || l != LevelWarning {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}
