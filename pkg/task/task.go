package task

import "strconv"

//go:generate go run github.com/dmarkham/enumer -type Task -trimprefix Task -transform lower -output task.gen.go

// Task selects one of the wrapper's operations.
type Task int

const (
	// TaskTest runs the non-performance test subset. It is the default.
	TaskTest Task = iota
	// TaskPerformance runs the performance subset with parameterized load.
	TaskPerformance
	// TaskClean resets persistent schema state via the migration tool.
	TaskClean
)

// PerfParams carries the load-test parameters. They are propagated to the
// test runner's environment unchanged.
type PerfParams struct {
	Users  int
	Rounds int
	Batch  int
}

// DefaultPerfParams mirrors the test suite's own fallback values.
func DefaultPerfParams() PerfParams {
	return PerfParams{Users: 200, Rounds: 3, Batch: 1000}
}

// Env returns the environment entries consumed by the performance suite.
func (p PerfParams) Env() []string {
	return []string{
		"PERF_USERS=" + strconv.Itoa(p.Users),
		"PERF_ROUNDS=" + strconv.Itoa(p.Rounds),
		"PERF_BATCH=" + strconv.Itoa(p.Batch),
	}
}
