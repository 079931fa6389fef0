package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masmgr/githistory-go/internal/cmdexec"
)

func TestRecorder_ObserveCommand(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := NewRecorder(registry)

	r.ObserveCommand("git log", cmdexec.OutcomeSuccess, 20*time.Millisecond)
	r.ObserveCommand("git log", cmdexec.OutcomeSuccess, 40*time.Millisecond)
	r.ObserveCommand("git clone", cmdexec.OutcomeFailure, time.Second)
	r.ObserveCommand("git diff", cmdexec.OutcomeTimeout, 300*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.commands.WithLabelValues("git log", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("git clone", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("git diff", "timeout")))
	assert.Equal(t, 3, testutil.CollectAndCount(r.duration))
	assert.Same(t, registry, r.Registry())
}

func TestRecorder_NilRegistry(t *testing.T) {
	r := NewRecorder(nil)
	require.NotNil(t, r.Registry())

	r.ObserveCommand("git show", cmdexec.OutcomeSuccess, time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(r.commands))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveCommand("git ls-tree", cmdexec.OutcomeSuccess, 5*time.Millisecond)

	path := filepath.Join(t.TempDir(), "githistory.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `githistory_commands_total{command="git ls-tree",outcome="success"} 1`)
	assert.Contains(t, string(data), "githistory_command_duration_seconds_bucket")
}

func TestRecorder_WithExecutor(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	r := NewRecorder(nil)
	ex := cmdexec.New(cmdexec.WithObserver(r))

	_, err := ex.Run(t.Context(), cmdexec.Shell("exit 0"), cmdexec.Options{Label: "probe"})
	require.NoError(t, err)
	_, err = ex.Run(t.Context(), cmdexec.Shell("exit 1"), cmdexec.Options{Label: "probe"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("probe", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.commands.WithLabelValues("probe", "failure")))
}
