package metrics

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// NoopMetrics is a no-op implementation of Recorder for when metrics are disabled
type NoopMetrics struct{}

var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new NoopMetrics instance
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

// RecordTokenAcquisition does nothing.
func (n *NoopMetrics) RecordTokenAcquisition(grantType string, success bool) {}

// RecordSearchStrategy does nothing.
func (n *NoopMetrics) RecordSearchStrategy(strategy string, success bool) {}

// RecordRecordStrategy does nothing.
func (n *NoopMetrics) RecordRecordStrategy(strategy string, success bool) {}
