package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Outcome(t *testing.T) {
	r := New()
	r.Outcome("sync", "Fetched")
	r.Outcome("sync", "Fetched")
	r.Outcome("update", "FAILED")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.outcomes.WithLabelValues("sync", "Fetched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("update", "FAILED")))
}

func TestRecorder_VCS(t *testing.T) {
	r := New()
	r.VCS("clone", time.Now(), nil)
	r.VCS("clone", time.Now(), errors.New("boom"))

	assert.Equal(t, 1, testutil.CollectAndCount(r.vcsDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.vcsErrors.WithLabelValues("clone")))
}

func TestRecorder_nil(t *testing.T) {
	var r *Recorder
	r.Outcome("sync", "OK")
	r.VCS("fetch", time.Now(), nil)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteToTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestRecorder_WriteToTextfile(t *testing.T) {
	r := New()
	r.Outcome("add", "Added")
	path := filepath.Join(t.TempDir(), "depot.prom")

	require.NoError(t, r.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `depot_dependency_outcomes_total{operation="add",outcome="Added"} 1`)
}
