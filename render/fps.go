package render

import (
	"fmt"
	"os"
	"time"

	"github.com/gogv/gview"
)

// frameLog records begin/end timestamps per frame to a file named by the
// scene's ui.log attribute (or the config fallback). I/O failures degrade
// to lost statistics, logged at Warn; they never interrupt rendering.
type frameLog struct {
	path  string
	f     *os.File
	frame int64
	t0    time.Time
}

// newFrameLog opens (or creates) the destination. On failure it returns a
// disabled logger that drops every frame.
func newFrameLog(path string) *frameLog {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		gview.Logger().Warn("frame log unavailable", "path", path, "err", err)
		return &frameLog{path: path}
	}
	return &frameLog{path: path, f: f}
}

func (l *frameLog) begin() {
	l.t0 = time.Now()
}

// end writes one line: frame index, begin timestamp (ms since epoch),
// frame duration in ms.
func (l *frameLog) end() {
	l.frame++
	if l.f == nil {
		return
	}
	d := time.Since(l.t0)
	if _, err := fmt.Fprintf(l.f, "%d\t%d\t%.3f\n",
		l.frame, l.t0.UnixMilli(), float64(d.Microseconds())/1000); err != nil {
		gview.Logger().Warn("frame log write failed", "path", l.path, "err", err)
	}
}

func (l *frameLog) close() {
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
}
