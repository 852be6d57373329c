package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecords(t *testing.T) {
	r := New()
	r.Individuals(3)
	r.Plan(27, 2, 6)
	r.Scored(40)
	r.Scored(14)
	r.Shard(time.Millisecond)
	r.Done(time.Second, nil)
	r.Done(time.Second, errors.New("x"))

	assert.Equal(t, 3.0, testutil.ToFloat64(r.individuals))
	assert.Equal(t, 27.0, testutil.ToFloat64(r.geneSpace))
	assert.Equal(t, 6.0, testutil.ToFloat64(r.rejected))
	assert.Equal(t, 54.0, testutil.ToFloat64(r.scored))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("error")))
}

func TestNilRunIsNoop(t *testing.T) {
	var r *Run
	assert.NotPanics(t, func() {
		r.Individuals(1)
		r.Plan(1, 1, 1)
		r.Scored(1)
		r.Shard(time.Second)
		r.Done(time.Second, nil)
	})
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.Scored(5)
	fn := filepath.Join(t.TempDir(), "heredity.prom")
	require.NoError(t, r.WriteFile(fn))

	raw, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "heredity_candidates_scored_total 5"), string(raw))
}
