package loadtest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidStages = errors.New("invalid stages")

// Stage ramps the number of virtual users linearly to Target over Duration.
type Stage struct {
	Duration time.Duration
	Target   int
}

// DefaultStages ramps to 10 users, holds for 30 seconds and ramps down.
func DefaultStages() []Stage {
	return []Stage{
		{Duration: 10 * time.Second, Target: 10},
		{Duration: 30 * time.Second, Target: 10},
		{Duration: 10 * time.Second, Target: 0},
	}
}

// ParseStages parses a comma-separated list of duration:target pairs, e.g.
// "10s:10,30s:10,10s:0".
func ParseStages(s string) ([]Stage, error) {
	var stages []Stage
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		durStr, targetStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not duration:target", ErrInvalidStages, part)
		}
		d, err := time.ParseDuration(durStr)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: bad duration %q", ErrInvalidStages, durStr)
		}
		target, err := strconv.Atoi(targetStr)
		if err != nil || target < 0 {
			return nil, fmt.Errorf("%w: bad target %q", ErrInvalidStages, targetStr)
		}
		stages = append(stages, Stage{Duration: d, Target: target})
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidStages)
	}
	return stages, nil
}

// TotalDuration is the length of the whole run.
func TotalDuration(stages []Stage) time.Duration {
	var total time.Duration
	for _, s := range stages {
		total += s.Duration
	}
	return total
}

// TargetAt returns the number of virtual users that should be running at
// elapsed time into the run. Each stage starts from the previous stage's
// target; the first starts from zero.
func TargetAt(stages []Stage, elapsed time.Duration) int {
	from := 0
	for _, s := range stages {
		if elapsed < s.Duration {
			frac := float64(elapsed) / float64(s.Duration)
			return from + int(float64(s.Target-from)*frac+0.5)
		}
		elapsed -= s.Duration
		from = s.Target
	}
	return from
}
