package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/sdes/internal/metrics"
)

func TestNew(t *testing.T) {
	m := metrics.New()
	m.CipherOperations.WithLabelValues("encrypt").Inc()
	m.CipherOperations.WithLabelValues("encrypt").Inc()
	m.CipherErrors.WithLabelValues("decrypt", "invalid_length").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CipherOperations.WithLabelValues("encrypt")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CipherErrors.WithLabelValues("decrypt", "invalid_length")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "sdes_cipher_operations_total")
	assert.Contains(t, names, "go_goroutines")
}
