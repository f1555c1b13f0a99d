package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reggo/rbfsvm/dataset"
	"github.com/reggo/rbfsvm/svm"
)

// run executes the command line with a configuration file that does not
// exist, so only defaults and flags apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RBFSVM_MODEL", "")
	t.Setenv("RBFSVM_LOG_LEVEL", "error")
	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(new(bytes.Buffer))
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, b, 0644))
	return path
}

func TestGenerate(t *testing.T) {
	out, err := run(t, "generate", "--seed", "3", "--samples", "20")
	require.NoError(t, err)

	var d datasetFile
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	x, y, err := dataset.Generate(20, dataset.NewSource(3))
	require.NoError(t, err)
	assert.Equal(t, x, d.X)
	assert.Equal(t, y, d.Y)
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	out, err := run(t, "--out", path, "generate", "--samples", "4")
	require.NoError(t, err)
	assert.Empty(t, out)

	var d datasetFile
	require.NoError(t, readJSON(path, &d))
	assert.Len(t, d.X, 4)
}

func TestGrid(t *testing.T) {
	out, err := run(t, "grid", "--min", "-1", "--max", "1", "--points", "5")
	require.NoError(t, err)

	var d datasetFile
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, [][]float64{{-1}, {-0.5}, {0}, {0.5}, {1}}, d.X)
	assert.Nil(t, d.Y)

	_, err = run(t, "grid", "--points", "1")
	assert.Error(t, err)
}

func TestPredictSingleSupportVector(t *testing.T) {
	dir := t.TempDir()
	model, err := svm.NewModel(1, [][]float64{{0}}, svm.Status{A: []float64{2}, B: 1}, svm.Params{Lambda: 2, Gamma: 1})
	require.NoError(t, err)
	modelPath := writeFile(t, dir, "model.json", model)

	out, err := run(t, "predict", "--model", modelPath, "--min", "0", "--max", "1", "--points", "2")
	require.NoError(t, err)

	var res predictionFile
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Prediction, 2)
	assert.Equal(t, 2.0, res.Prediction[0])
	assert.InDelta(t, math.Exp(-1)+1, res.Prediction[1], 1e-15)
	assert.Nil(t, res.Loss)
}

func TestSupportThenPredict(t *testing.T) {
	dir := t.TempDir()
	x := [][]float64{{0}, {0.25}, {0.5}, {0.75}}
	dataPath := writeFile(t, dir, "data.json", datasetFile{X: x, Y: []float64{1, 0, -1, 0}})
	coefPath := writeFile(t, dir, "coef.json", svm.Status{A: []float64{1, 0, -1, 0}, B: 0.5})

	modelPath := filepath.Join(dir, "model.json")
	_, err := run(t, "--out", modelPath, "support", "--data", dataPath, "--coef", coefPath, "--lmbda", "2", "--gamma", "10")
	require.NoError(t, err)

	model, err := loadModel(modelPath)
	require.NoError(t, err)
	assert.Equal(t, 2, model.NumSupport())
	assert.Equal(t, svm.Params{Lambda: 2, Gamma: 10}, model.Params())

	out, err := run(t, "predict", "--model", modelPath, "--data", dataPath, "--loss", "manhattan", "--grain", "1")
	require.NoError(t, err)
	var res predictionFile
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Prediction, 4)
	for i, xi := range x {
		want, err := svm.DecisionFunction(xi, svm.Status{A: []float64{1, 0, -1, 0}, B: 0.5}, x, svm.Params{Lambda: 2, Gamma: 10})
		require.NoError(t, err)
		assert.InDelta(t, want, res.Prediction[i], 1e-14)
	}
	require.NotNil(t, res.Loss)
	assert.Equal(t, "manhattan", res.Loss.Name)
	assert.True(t, res.Loss.Value >= 0)
}

func TestPredictErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "predict", "--model", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"support_vectors": [[0]], "status": {"a": [1], "b": 0}, "params": {"lmbda": 0}}`), 0644))
	_, err = run(t, "predict", "--model", bad)
	assert.Error(t, err)

	model, err := svm.NewModel(2, [][]float64{{0, 0}}, svm.Status{A: []float64{1}}, svm.Params{Lambda: 1, Gamma: 1})
	require.NoError(t, err)
	modelPath := writeFile(t, dir, "model2.json", model)
	_, err = run(t, "predict", "--model", modelPath)
	assert.Error(t, err, "grid queries on a two dimensional model")

	dataPath := writeFile(t, dir, "data.json", datasetFile{X: [][]float64{{1}}})
	_, err = run(t, "predict", "--model", modelPath, "--data", dataPath)
	assert.Error(t, err, "dimension mismatch between data and model")

	_, err = run(t, "predict", "--model", modelPath, "--loss", "hinge")
	assert.Error(t, err)
}

func TestPredictKernelNameAsLoss(t *testing.T) {
	dir := t.TempDir()
	model, err := svm.NewModel(1, [][]float64{{0}}, svm.Status{A: []float64{1}}, svm.Params{Lambda: 1, Gamma: 1})
	require.NoError(t, err)
	modelPath := writeFile(t, dir, "model.json", model)

	_, err = run(t, "predict", "--model", modelPath, "--loss", "gaussian")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a loss")
}

func TestSupportNaNParams(t *testing.T) {
	dir := t.TempDir()
	x := [][]float64{{0}, {1}}
	dataPath := writeFile(t, dir, "data.json", datasetFile{X: x})
	coefPath := writeFile(t, dir, "coef.json", svm.Status{A: []float64{1, 1}})

	_, err := run(t, "support", "--data", dataPath, "--coef", coefPath, "--lmbda", "NaN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lmbda")

	out, err := run(t, "support", "--data", dataPath, "--coef", coefPath, "--lmbda", "2", "--gamma", "NaN")
	require.NoError(t, err)
	var model svm.Model
	require.NoError(t, json.Unmarshal([]byte(out), &model))
	assert.Equal(t, svm.Params{Lambda: 2, Gamma: svm.DefaultGamma}, model.Params())
}

func TestProfile(t *testing.T) {
	dir := t.TempDir()
	model, err := svm.NewModel(1, [][]float64{{0}}, svm.Status{A: []float64{1}}, svm.Params{Lambda: 1, Gamma: 1})
	require.NoError(t, err)
	modelPath := writeFile(t, dir, "model.json", model)

	profDir := filepath.Join(dir, "prof")
	_, err = run(t, "predict", "--model", modelPath, "--profile", "cpu", "--profile-path", profDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(profDir, "cpu.pprof"))

	// A failing command must still stop the profile so a later one can
	// start.
	_, err = run(t, "predict", "--model", filepath.Join(dir, "missing.json"), "--profile", "mem", "--profile-path", profDir)
	require.Error(t, err)
	_, err = run(t, "grid", "--profile", "cpu", "--profile-path", profDir)
	require.NoError(t, err)

	_, err = run(t, "grid", "--profile", "disk")
	assert.Error(t, err)
}
