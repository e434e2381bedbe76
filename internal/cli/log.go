package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labeler/pkg/pipeline"
)

// newLogger returns the CLI logger: prefixed with the app name, timestamps
// with centisecond precision.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          appName,
	})
}

// stopwatch starts timing and returns a function that logs msg at debug
// level with the elapsed time appended. Layout passes take microseconds,
// so elapsed is rounded to the microsecond.
func stopwatch(l *log.Logger) func(msg string, keyvals ...any) {
	start := time.Now()
	return func(msg string, keyvals ...any) {
		l.Debug(msg, append(keyvals, "elapsed", time.Since(start).Round(time.Microsecond))...)
	}
}

// logStages writes the stage timings of a pipeline run at debug level.
func logStages(l *log.Logger, r *pipeline.Result) {
	l.Debug("stage timings",
		"parse", r.Stats.ParseTime.Round(time.Microsecond),
		"layout", r.Stats.LayoutTime.Round(time.Microsecond),
		"render", r.Stats.RenderTime.Round(time.Microsecond),
		"layout_cached", r.CacheInfo.LayoutHit,
		"render_cached", r.CacheInfo.RenderHit,
	)
}
