// Package debuglog collects debug messages for display on top of the game.
//
// Messages are either shown for a single frame or for a duration. Timed
// messages are keyed by component and format string, so a message logged
// every frame stays on screen once instead of piling up. Warnings and errors
// are also written to stderr.
package debuglog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/phanxgames/thicket/timing"
)

// Level orders messages by severity.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

var levelNames = [...]string{"debug", "info", "warning", "error"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", l)
}

// ParseLevel converts a level name.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("debuglog: unknown level %q", s)
}

// Message is one line ready for display.
type Message struct {
	Component string
	Level     Level
	Text      string
}

func (m Message) String() string { return "[" + m.Component + "] " + m.Text }

type key struct {
	component string
	format    string
}

type timedEntry struct {
	msg   Message
	timer timing.Timer
}

// Queue holds the messages of the running game. A nil *Queue discards
// everything.
type Queue struct {
	onScreen bool
	level    Level
	duration timing.Millisecond

	frame   []Message
	timed   map[key]timedEntry
	order   []key
	console *log.Logger
}

// NewQueue returns a queue showing messages at or above level, keeping timed
// messages for duration. Warnings and errors are mirrored to out, or stderr
// when out is nil.
func NewQueue(level Level, duration timing.Millisecond, out io.Writer) *Queue {
	if out == nil {
		out = os.Stderr
	}
	return &Queue{
		onScreen: true,
		level:    level,
		duration: duration,
		timed:    map[key]timedEntry{},
		console:  log.New(out, "[thicket] ", log.LstdFlags),
	}
}

// ConsoleOnly returns a queue that shows nothing on screen but still writes
// warnings and errors to out.
func ConsoleOnly(out io.Writer) *Queue {
	q := NewQueue(LevelWarning, 0, out)
	q.onScreen = false
	return q
}

// Logger returns a logger tagging messages with component.
func (q *Queue) Logger(component string) Logger {
	return Logger{q: q, component: component, duration: -2}
}

func (q *Queue) add(component string, lvl Level, d timing.Millisecond, format string, args []any) {
	if q == nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if lvl >= LevelWarning {
		q.console.Printf("%s %s: %s", lvl, component, text)
	}
	if !q.onScreen || lvl < q.level {
		return
	}
	msg := Message{Component: component, Level: lvl, Text: text}
	if d == -1 {
		q.frame = append(q.frame, msg)
		return
	}
	if d < 0 {
		d = q.duration
	}
	k := key{component, format}
	if _, ok := q.timed[k]; ok {
		return
	}
	q.timed[k] = timedEntry{msg: msg, timer: timing.NewTimer(d)}
	q.order = append(q.order, k)
}

// Pop returns the messages to show this frame, then drops per-frame
// messages and ages timed ones by dt.
func (q *Queue) Pop(dt timing.Millisecond) []Message {
	if q == nil {
		return nil
	}
	out := append([]Message(nil), q.frame...)
	q.frame = q.frame[:0]
	order := q.order[:0]
	for _, k := range q.order {
		e := q.timed[k]
		out = append(out, e.msg)
		e.timer = e.timer.Advance(dt)
		if e.timer.Complete() {
			delete(q.timed, k)
			continue
		}
		q.timed[k] = e
		order = append(order, k)
	}
	q.order = order
	return out
}

// Logger writes messages for one component.
type Logger struct {
	q         *Queue
	component string
	// duration is -1 for a single frame, -2 for the queue default.
	duration timing.Millisecond
}

// For returns a logger whose messages stay on screen for d.
func (l Logger) For(d timing.Millisecond) Logger {
	l.duration = max(d, 0)
	return l
}

// PerFrame returns a logger whose messages show for one frame only.
func (l Logger) PerFrame() Logger {
	l.duration = -1
	return l
}

func (l Logger) Debugf(format string, args ...any) {
	l.q.add(l.component, LevelDebug, l.duration, format, args)
}

func (l Logger) Infof(format string, args ...any) {
	l.q.add(l.component, LevelInfo, l.duration, format, args)
}

func (l Logger) Warningf(format string, args ...any) {
	l.q.add(l.component, LevelWarning, l.duration, format, args)
}

func (l Logger) Errorf(format string, args ...any) {
	l.q.add(l.component, LevelError, l.duration, format, args)
}
