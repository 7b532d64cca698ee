package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

var (
	colorTitle = color.New(color.FgYellow, color.Bold)
	colorBody  = color.New(color.FgWhite, color.Faint)
)

// Terminal prints notifications to a writer, optionally ringing the bell.
type Terminal struct {
	mu   sync.Mutex
	w    io.Writer
	bell bool
}

// NewTerminal returns a sink writing to w.
func NewTerminal(w io.Writer, bell bool) *Terminal {
	return &Terminal{w: w, bell: bell}
}

func (t *Terminal) Available() bool {
	return t != nil && t.w != nil
}

func (t *Terminal) Notify(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prefix := ""
	if t.bell {
		prefix = "\a"
	}
	line := fmt.Sprintf("%s%s %s %s\n", prefix, n.At.Format("15:04"), colorTitle.Sprint(n.Title), colorBody.Sprint(n.Body))
	if _, err := io.WriteString(t.w, line); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}
