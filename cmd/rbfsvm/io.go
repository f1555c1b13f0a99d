package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// datasetFile is the on-disk form of a dataset or a grid. Y is absent for
// grids.
type datasetFile struct {
	X [][]float64 `json:"x"`
	Y []float64   `json:"y,omitempty"`
}

// predictionFile is the output of the predict command.
type predictionFile struct {
	X          [][]float64 `json:"x"`
	Prediction []float64   `json:"prediction"`
	Loss       *lossReport `json:"loss,omitempty"`
}

type lossReport struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func readJSON(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v to the --out destination of the command.
func (a *app) writeJSON(cmd *cobra.Command, v interface{}) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if a.out != "-" {
		var f *os.File
		f, err = os.Create(a.out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
