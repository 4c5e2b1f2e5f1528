// Package audit appends one CSV row per served prediction to an append-only
// log. It is a side channel: nothing in here is ever allowed to fail the
// request that triggered the write.
package audit

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"solard/internal/common/fsutil"
	"solard/internal/features"
)

// Header is written exactly once, when the sink file is created (or found
// empty). Column order matches the offline-review tooling.
var Header = []string{"timestamp", "temperature", "humidity", "ghi", "power_t_1", "power_t_2", "predicted_power"}

var writeFailures = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "solard",
	Subsystem: "audit",
	Name:      "write_failures_total",
	Help:      "Audit rows dropped because the sink could not be written",
})

func init() {
	prometheus.MustRegister(writeFailures)
}

type entry struct {
	ts   time.Time
	rec  features.Record
	pred float64
}

// Logger serializes all appends through one writer goroutine so that
// concurrent predictions never interleave partial rows.
type Logger struct {
	ch  chan entry
	wg  sync.WaitGroup
	log zerolog.Logger

	path string
}

// queueDepth is the burst buffer in front of the writer. A full buffer
// applies backpressure instead of dropping: the writer always drains (it
// discards on sink failure rather than stalling), so a send can only wait
// for one row's worth of I/O and every successful prediction yields
// exactly one row attempt.
const queueDepth = 256

// Open starts the writer goroutine for the sink at path. The file itself is
// opened lazily on first write, so a bad path degrades to dropped rows
// rather than a startup failure.
func Open(path string, log zerolog.Logger) *Logger {
	l := &Logger{
		ch:   make(chan entry, queueDepth),
		log:  log,
		path: path,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

// Record enqueues one row for a successful prediction. It never returns an
// error; the caller's response is already determined. The send blocks if
// the buffer is full rather than dropping the row (see queueDepth).
func (l *Logger) Record(rec features.Record, predicted float64) {
	l.ch <- entry{ts: time.Now().UTC(), rec: rec, pred: predicted}
}

// Close drains queued rows, flushes, and stops the writer. Call at shutdown.
func (l *Logger) Close() {
	close(l.ch)
	l.wg.Wait()
}

func (l *Logger) run() {
	defer l.wg.Done()

	var f *os.File
	var w *csv.Writer
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	for e := range l.ch {
		if f == nil {
			var err error
			f, w, err = l.open()
			if err != nil {
				writeFailures.Inc()
				l.log.Error().Err(err).Str("path", l.path).Msg("audit sink unavailable, dropping record")
				continue
			}
		}
		if err := w.Write(formatRow(e)); err == nil {
			w.Flush()
		}
		if err := w.Error(); err != nil {
			writeFailures.Inc()
			l.log.Error().Err(err).Str("path", l.path).Msg("audit write failed, dropping record")
		}
	}
}

// open opens the sink for appending and writes the header iff the file did
// not previously hold any data.
func (l *Logger) open() (*os.File, *csv.Writer, error) {
	if err := fsutil.EnsureParentDir(l.path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(Header); err == nil {
			w.Flush()
		}
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, nil, err
		}
	}
	return f, w, nil
}

func formatRow(e entry) []string {
	return []string{
		e.ts.Format(time.RFC3339),
		num(e.rec.Temperature),
		num(e.rec.Humidity),
		num(e.rec.GHI),
		num(e.rec.PowerT1),
		num(e.rec.PowerT2),
		num(e.pred),
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
