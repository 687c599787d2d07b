package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/grover"
	"github.com/san-kum/groversim/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioYAML = `name: growth
description: first peak as n grows
steps:
  - name: tiny
    n: 4
    marked: 0
    iterations: 12
  - name: classic
    n: 100
    marked: 20
    iterations: 50
    save: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, "growth", sc.Name)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, ScenarioStep{Name: "classic", N: 100, Marked: 20, Iterations: 50, Save: true}, sc.Steps[1])
}

func TestLoadScenario_Errors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	assert.ErrorContains(t, err, "no steps")

	_, err = LoadScenario(writeScenario(t, "steps: [[[\n"))
	assert.ErrorContains(t, err, "parse scenario")
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	require.NoError(t, err)

	st := storage.New(t.TempDir())
	require.NoError(t, st.Init())

	outcomes, err := RunScenario(context.Background(), sc, st, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Empty(t, outcomes[0].RunID)
	assert.Equal(t, 12, outcomes[0].Result.StepsTaken)
	assert.NotEmpty(t, outcomes[1].RunID)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, outcomes[1].RunID, runs[0].ID)
	assert.Equal(t, 6, runs[0].FirstPeakStep)
}

func TestRunScenario_StopsOnBadStep(t *testing.T) {
	sc := &Scenario{Name: "bad", Steps: []ScenarioStep{
		{N: 4, Marked: 1, Iterations: 3},
		{N: 4, Marked: 9, Iterations: 3},
		{N: 4, Marked: 2, Iterations: 3},
	}}

	outcomes, err := RunScenario(context.Background(), sc, nil, zerolog.Nop())
	assert.ErrorIs(t, err, grover.ErrMarkedOutOfRange)
	assert.Len(t, outcomes, 1)
}

func TestRunScenario_SaveWithoutStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{N: 4, Iterations: 3, Save: true}}}
	_, err := RunScenario(context.Background(), sc, nil, zerolog.Nop())
	assert.ErrorContains(t, err, "no store")
}

func TestRunInvariance(t *testing.T) {
	cfg := &InvarianceConfig{N: 256, Iterations: 120, Trials: 20, Seed: 7}
	results, err := RunInvariance(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, results, 20)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.Marked, 0)
		assert.Less(t, r.Marked, 256)
		assert.Less(t, r.MaxDeviation, 1e-9, "marked=%d", r.Marked)
		assert.True(t, r.SamePeaks, "marked=%d", r.Marked)
	}
}

func TestRunInvariance_Deterministic(t *testing.T) {
	cfg := &InvarianceConfig{N: 50, Iterations: 10, Trials: 5, Seed: 42}
	a, err := RunInvariance(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	b, err := RunInvariance(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Marked, b[i].Marked)
	}
}

func TestRunInvariance_NoTrials(t *testing.T) {
	_, err := RunInvariance(context.Background(), &InvarianceConfig{N: 4, Iterations: 4}, zerolog.Nop())
	assert.Error(t, err)
}
