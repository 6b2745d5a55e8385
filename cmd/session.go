package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tracetm/tracetm/sim"
	"github.com/tracetm/tracetm/sim/report"
	"github.com/tracetm/tracetm/sim/telemetry"
	"github.com/tracetm/tracetm/sim/workload"
)

// session runs a list of cases against one machine and reports each result.
type session struct {
	machine  *sim.Machine
	limits   sim.Limits
	opts     []sim.Option
	jobs     int // simulations allowed to run at once
	metrics  *sim.Metrics
	recorder *telemetry.Recorder
	log      *logrus.Entry
}

func newSession(m *sim.Machine, limits sim.Limits, opts []sim.Option) *session {
	return &session{
		machine:  m,
		limits:   limits,
		opts:     opts,
		jobs:     1,
		metrics:  sim.NewMetrics(),
		recorder: telemetry.NewRecorder(),
		log: logrus.WithFields(logrus.Fields{
			"run_id":  uuid.NewString(),
			"machine": m.Name,
		}),
	}
}

// execute writes a report for every case to out, and appends the same plain
// reports to outputPath when it is set.
func (s *session) execute(out io.Writer, cases []workload.Case, outputPath string, color bool) error {
	writers := []*report.Writer{report.NewWriter(out, color)}
	if outputPath != "" {
		f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()
		writers = append(writers, report.NewWriter(f, false))
	}

	s.log.Infof("Tracing %d inputs with limits %+v", len(cases), s.limits)
	results, err := s.simulateAll(cases)
	if err != nil {
		return err
	}
	for i, c := range cases {
		if i > 0 {
			for _, w := range writers {
				w.Separator()
			}
		}
		res := results[i]
		expected := c.Expected()
		s.metrics.Observe(res, expected)
		s.recorder.Observe(res)
		for _, w := range writers {
			w.Result(res, expected)
		}
		s.log.WithFields(logrus.Fields{
			"input":       c.Input,
			"outcome":     res.Outcome.String(),
			"transitions": res.TransitionsSimulated,
			"elapsed":     res.Elapsed,
		}).Debug("Run complete")
	}

	if s.metrics.Checked > 0 {
		for _, w := range writers {
			w.Separator()
			w.Wrong(s.metrics.Wrong)
		}
	}
	if len(cases) > 1 {
		fmt.Fprintln(out)
		s.metrics.Print(out)
	}
	if s.metrics.Wrong > 0 {
		s.log.Warnf("%d of %d checked inputs disagreed with their expectation", s.metrics.Wrong, s.metrics.Checked)
	}
	return nil
}

// simulateAll runs every case, up to s.jobs at a time. Results keep the
// order of cases.
func (s *session) simulateAll(cases []workload.Case) ([]*sim.SimulationResult, error) {
	results := make([]*sim.SimulationResult, len(cases))
	var g errgroup.Group
	g.SetLimit(max(s.jobs, 1))
	for i, c := range cases {
		i, c := i, c // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			res, err := sim.Simulate(s.machine, c.Input, s.limits, s.opts...)
			if err != nil {
				return fmt.Errorf("simulating %q: %w", c.Input, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeMetrics writes the Prometheus textfile when path is set.
func (s *session) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := s.recorder.WriteTextfile(path); err != nil {
		return err
	}
	s.log.Infof("Metrics written to %s", path)
	return nil
}

// stdoutColor reports whether outcome lines on stdout should be colored.
func stdoutColor() bool {
	if noColor {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
