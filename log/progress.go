/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package log

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"
)

// ProgressInfo is what a runner reports while it works.
type ProgressInfo struct {
	Series int // series received so far
}

type UpdateFunc func(info ProgressInfo)
type RunnerFunc func(update UpdateFunc) error

type progressState struct {
	lock  sync.Mutex
	info  ProgressInfo
	out   io.Writer
	label string
}

func (s *progressState) updateInfo(info ProgressInfo) {
	s.lock.Lock()
	s.info = info
	s.lock.Unlock()
}

func (s *progressState) renderProgress(startTime time.Time, final bool) {
	// safely grab a copy of the info
	s.lock.Lock()
	info := s.info
	s.lock.Unlock()

	elapsed := math.Round(time.Since(startTime).Seconds()*10) / 10
	fmt.Fprintf(s.out, "\r%v (%.1fs): %v series... ", s.label, elapsed, info.Series)
	if final {
		fmt.Fprintf(s.out, "done.\n")
	}
}

// GoWithProgress runs runner in the background, redrawing a one-line progress
// report on out until it returns. A nil out runs runner without any output.
func GoWithProgress(out io.Writer, label string, runner RunnerFunc) error {
	state := &progressState{out: out, label: label}
	if out == nil {
		return runner(func(ProgressInfo) {})
	}

	done := make(chan error, 1)
	startTime := time.Now()
	state.renderProgress(startTime, false)

	go func() {
		done <- runner(state.updateInfo)
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			state.renderProgress(startTime, true)
			return err
		case <-ticker.C:
			state.renderProgress(startTime, false)
		}
	}
}
