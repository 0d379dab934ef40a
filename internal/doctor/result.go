// Package doctor runs read-only health checks over the bootstrap state.
package doctor

// Status classifies a check outcome.
type Status int

// Check outcomes in increasing severity.
const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Result is a single health check outcome.
type Result struct {
	CheckName      string
	Status         Status
	Message        string
	Recommendation string
}
