package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitDisabledReturnsNoop(t *testing.T) {
	rec := Init(false)

	_, ok := rec.(*NoopMetrics)
	assert.True(t, ok, "disabled metrics should be a no-op recorder")

	// No-op recorder must tolerate every call.
	rec.RecordTokenAcquisition("refresh_token", true)
	rec.RecordSearchStrategy("kind", false)
	rec.RecordRecordStrategy("storage_get", true)
}

func TestInitEnabledReturnsSameInstance(t *testing.T) {
	first := Init(true)
	second := Init(true)

	assert.Same(t, first, second)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "success", result(true))
	assert.Equal(t, "failure", result(false))
}
