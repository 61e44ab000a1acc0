// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/leapstack-labs/launchdash/internal/metrics"
	"github.com/leapstack-labs/launchdash/internal/testutil"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Dataset *dataset.Dataset
	Metrics *metrics.Metrics
	CSVPath string
}

// SetupTestFixture loads the sample launch CSV into a snapshot and creates a
// fresh metrics registry.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	path := testutil.WriteSampleCSV(t)
	ds, err := dataset.Load(context.Background(), dataset.Options{
		Path:   path,
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)

	return &TestFixture{
		Dataset: ds,
		Metrics: metrics.New(),
		CSVPath: path,
	}
}
