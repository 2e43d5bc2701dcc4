package model

import (
	"fmt"
	"os"

	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"

	"github.com/tidwall/gjson"
)

// GridOverrides carries optional hyperparameter grids loaded from a JSON
// file, keyed per model family. Empty fields keep the built-in grids.
type GridOverrides struct {
	LinearLambdas []float64
	GBT           GBTGrids
}

// LoadGridOverrides parses the grid file. A named-but-absent file is fatal;
// keys are all optional. Expected shape:
//
//	{
//	  "linear": {"lambdas": [0.001, 0.01, 0.1]},
//	  "gbt": {"trees": [100, 200], "depths": [2, 3], "min_leaf": [10],
//	          "learning_rate": 0.1, "final_rate": 0.01}
//	}
func LoadGridOverrides(path string) (*GridOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ArtifactMissing(path)
		}
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput(fmt.Sprintf("grid file %s is not valid JSON", path))
	}

	overrides := &GridOverrides{}
	root := gjson.ParseBytes(data)

	for _, v := range root.Get("linear.lambdas").Array() {
		overrides.LinearLambdas = append(overrides.LinearLambdas, v.Float())
	}
	for _, v := range root.Get("gbt.trees").Array() {
		overrides.GBT.Trees = append(overrides.GBT.Trees, int(v.Int()))
	}
	for _, v := range root.Get("gbt.depths").Array() {
		overrides.GBT.Depths = append(overrides.GBT.Depths, int(v.Int()))
	}
	for _, v := range root.Get("gbt.min_leaf").Array() {
		overrides.GBT.MinLeaves = append(overrides.GBT.MinLeaves, int(v.Int()))
	}
	overrides.GBT.LearningRate = root.Get("gbt.learning_rate").Float()
	overrides.GBT.FinalRate = root.Get("gbt.final_rate").Float()
	return overrides, nil
}
