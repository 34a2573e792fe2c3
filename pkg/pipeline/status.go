package pipeline

//go:generate go run github.com/dmarkham/enumer -type StageStatus -trimprefix Status -transform lower -output status.gen.go

// StageStatus tracks a stage (or a whole run) through its lifecycle.
type StageStatus int

const (
	StatusPending StageStatus = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
	StatusSkipped
)
