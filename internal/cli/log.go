package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierarchy/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded gui.toml (3ms)"
func (p *progress) done(msg string) {
	p.logger.Debugf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks forwards hierarchy and dispatch events to a logger at debug
// level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.HierarchyHooks = logHooks{}
	_ observability.DispatchHooks  = logHooks{}
)

func (l logHooks) OnDerive(hierarchy string, child, parent any, changed bool, err error) {
	switch {
	case err != nil:
		l.logger.Debug("derive rejected", "hierarchy", hierarchy, "child", child, "parent", parent, "err", err)
	case changed:
		l.logger.Debug("derived", "hierarchy", hierarchy, "child", child, "parent", parent)
	}
}

func (l logHooks) OnGraft(hierarchy string, root any, grafted int, err error) {
	if err != nil {
		l.logger.Debug("graft rejected", "hierarchy", hierarchy, "root", root, "err", err)
		return
	}
	l.logger.Debug("grafted root", "hierarchy", hierarchy, "root", root, "roots", grafted)
}

func (l logHooks) OnCacheHit(method string, value fmt.Stringer) {
	l.logger.Debug("cache hit", "method", method, "value", value.String())
}

func (l logHooks) OnCacheMiss(method string, value fmt.Stringer) {
	l.logger.Debug("cache miss", "method", method, "value", value.String())
}

func (l logHooks) OnResolve(method string, value fmt.Stringer, d time.Duration, err error) {
	if err != nil {
		l.logger.Debug("resolve failed", "method", method, "value", value.String(), "err", err)
		return
	}
	l.logger.Debug("resolved", "method", method, "value", value.String(), "took", d)
}

func (l logHooks) OnCacheRetry(method string, value fmt.Stringer) {
	l.logger.Debug("cache retry", "method", method, "value", value.String())
}

func (l logHooks) OnInvalidate(method string, reason string) {
	l.logger.Debug("cache reset", "method", method, "reason", reason)
}
