package app

import (
	"context"
	"math"
	"time"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/run"
	"github.com/SabreenNoorAli/final-project-EDLD654/domain/survey"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/errors"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/evaluate"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/logging"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/model"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/recipe"
	"github.com/SabreenNoorAli/final-project-EDLD654/internal/split"
)

// ModelService runs stage two: one tuning-and-evaluation pass per outcome,
// identical in shape for every outcome and model family.
type ModelService struct {
	logger *logging.Logger
}

// TrainRequest defines one outcome's modeling pass.
type TrainRequest struct {
	Table        *survey.Table
	Outcome      string
	TrainRatio   float64
	Folds        int
	Recipe       recipe.Config
	Seeds        run.Seeds
	LinearPasses int
	GridWorkers  int
	Overrides    *model.GridOverrides // nil keeps built-in grids
}

// FamilyFit records the hyperparameters chosen for one family.
type FamilyFit struct {
	Family  modeling.Family `json:"family"`
	Lambda  float64         `json:"lambda,omitempty"`
	Trees   int             `json:"trees,omitempty"`
	Depth   int             `json:"depth,omitempty"`
	MinLeaf int             `json:"min_leaf,omitempty"`
	Rate    float64         `json:"rate,omitempty"`
	CVError float64         `json:"cv_error"`
}

// TrainResult is one outcome's complete modeling output.
type TrainResult struct {
	Outcome     string
	Records     []modeling.EvalRecord
	Fits        []FamilyFit
	Importances map[modeling.Family][]modeling.Importance
	Predictions map[modeling.Family][]modeling.Prediction
	Dropped     map[string]string // column -> dropping step
	TrainRows   int
	TestRows    int
	RuntimeMs   int64
}

// NewModelService creates the stage-two service.
func NewModelService(logger *logging.Logger) *ModelService {
	return &ModelService{logger: logger}
}

// TrainOutcome executes the full modeling procedure for one outcome: split,
// fit the preprocessing blueprint on the training partition only, tune all
// three families by k-fold cross-validation, refit each winner on the full
// training partition, and evaluate on the untouched test partition. The
// same split and blueprint serve every family, so family metrics are
// directly comparable.
func (s *ModelService) TrainOutcome(ctx context.Context, req TrainRequest) (*TrainResult, error) {
	startTime := time.Now()

	if err := modeling.ValidateOutcome(req.Outcome, survey.Outcomes()); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	trainTable, testTable, err := s.partition(req)
	if err != nil {
		return nil, err
	}

	blueprint := recipe.NewBlueprint(survey.DefaultRoles(), req.Recipe, s.leakageColumns(req.Outcome)...)
	if err := blueprint.Fit(trainTable); err != nil {
		return nil, errors.Wrap(err, "fitting preprocessing blueprint")
	}
	trainTable, err = blueprint.Apply(trainTable)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing training partition")
	}
	testTable, err = blueprint.Apply(testTable)
	if err != nil {
		return nil, errors.Wrap(err, "preprocessing test partition")
	}

	roles := survey.DefaultRoles()
	trainData, err := model.FromTable(trainTable, roles, req.Outcome)
	if err != nil {
		return nil, err
	}
	testData, err := model.FromTable(testTable, roles, req.Outcome)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[Model] outcome %s: %d train rows, %d test rows, %d predictors after preprocessing",
		req.Outcome, trainData.Len(), testData.Len(), len(trainData.Features))

	folds, err := split.KFold(trainData.Len(), req.Folds, req.Seeds.Folds)
	if err != nil {
		return nil, errors.Wrap(err, "building cross-validation folds")
	}

	result := &TrainResult{
		Outcome:     req.Outcome,
		Importances: make(map[modeling.Family][]modeling.Importance),
		Predictions: make(map[modeling.Family][]modeling.Prediction),
		Dropped:     blueprint.DroppedColumns(),
		TrainRows:   trainData.Len(),
		TestRows:    testData.Len(),
	}

	if err := s.trainLinear(ctx, req, modeling.FamilyRidge, 0, trainData, testData, folds, result); err != nil {
		return nil, err
	}
	if err := s.trainLinear(ctx, req, modeling.FamilyLasso, 1, trainData, testData, folds, result); err != nil {
		return nil, err
	}
	if err := s.trainGBT(ctx, req, trainData, testData, folds, result); err != nil {
		return nil, err
	}

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// partition cuts the table into train and test row subsets.
func (s *ModelService) partition(req TrainRequest) (*survey.Table, *survey.Table, error) {
	part, err := split.TrainTest(req.Table.NumRows(), req.TrainRatio, req.Seeds.Split)
	if err != nil {
		return nil, nil, errors.Wrap(err, "partitioning rows")
	}
	trainTable, err := req.Table.SubsetRows(part.Train)
	if err != nil {
		return nil, nil, err
	}
	testTable, err := req.Table.SubsetRows(part.Test)
	if err != nil {
		return nil, nil, err
	}
	return trainTable, testTable, nil
}

// leakageColumns lists everything that must be removed before modeling this
// outcome: the other outcome and the experimental condition label.
func (s *ModelService) leakageColumns(outcome string) []string {
	leakage := []string{survey.ColCondition}
	for _, other := range survey.Outcomes() {
		if other != outcome {
			leakage = append(leakage, other)
		}
	}
	return leakage
}

// trainLinear tunes one linear family, refits the chosen penalty on the
// full training partition, and evaluates held out.
func (s *ModelService) trainLinear(ctx context.Context, req TrainRequest, family modeling.Family, alpha float64,
	trainData, testData *model.Dataset, folds []split.Fold, result *TrainResult) error {

	var grid []float64
	if req.Overrides != nil {
		grid = req.Overrides.LinearLambdas
	}
	tuned, err := model.TuneElasticNet(ctx, trainData, folds, alpha, req.LinearPasses, req.GridWorkers, grid)
	if err != nil {
		return errors.Wrapf(err, "tuning %s", family)
	}

	net := model.NewElasticNet(model.DefaultElasticNetConfig(tuned.Lambda, alpha))
	if err := net.Fit(trainData); err != nil {
		return errors.Wrapf(err, "refitting %s", family)
	}

	result.Fits = append(result.Fits, FamilyFit{Family: family, Lambda: tuned.Lambda, CVError: tuned.CVError})
	result.Importances[family] = net.Coefficients()
	return s.evaluateFamily(family, req.Outcome, net, trainData, testData, result)
}

// trainGBT runs the staged boosted-tree sweep and evaluates the winner.
func (s *ModelService) trainGBT(ctx context.Context, req TrainRequest,
	trainData, testData *model.Dataset, folds []split.Fold, result *TrainResult) error {

	var grids model.GBTGrids
	if req.Overrides != nil {
		grids = req.Overrides.GBT
	}
	tuned, err := model.TuneGBT(ctx, trainData, folds, req.GridWorkers, grids)
	if err != nil {
		return errors.Wrap(err, "tuning gbt")
	}

	gbt := model.NewGradientBoosted(tuned.Config)
	if err := gbt.Fit(trainData); err != nil {
		return errors.Wrap(err, "refitting gbt")
	}

	result.Fits = append(result.Fits, FamilyFit{
		Family:  modeling.FamilyGBT,
		Trees:   tuned.Config.Trees,
		Depth:   tuned.Config.Depth,
		MinLeaf: tuned.Config.MinLeaf,
		Rate:    tuned.Config.LearningRate,
		CVError: tuned.CVError,
	})
	result.Importances[modeling.FamilyGBT] = gbt.Importances()
	return s.evaluateFamily(modeling.FamilyGBT, req.Outcome, gbt, trainData, testData, result)
}

// evaluateFamily scores a refitted model on the test partition and checks
// it against the intercept-only baseline.
func (s *ModelService) evaluateFamily(family modeling.Family, outcome string, p model.Predictor,
	trainData, testData *model.Dataset, result *TrainResult) error {

	observed := make([]float64, testData.Len())
	predicted := make([]float64, testData.Len())
	predictions := make([]modeling.Prediction, testData.Len())
	baseline := trainData.MeanY()
	baselineSq := 0.0
	for i, row := range testData.X {
		observed[i] = testData.Y[i]
		predicted[i] = p.Predict(row)
		predictions[i] = modeling.Prediction{Observed: observed[i], Predicted: predicted[i]}
		diff := baseline - observed[i]
		baselineSq += diff * diff
	}

	record, err := evaluate.Evaluate(family, outcome, observed, predicted)
	if err != nil {
		return errors.Wrapf(err, "evaluating %s", family)
	}

	baselineRMSE := 0.0
	if testData.Len() > 0 {
		baselineRMSE = math.Sqrt(baselineSq / float64(testData.Len()))
	}
	if record.RMSE >= baselineRMSE {
		record.Warnings = append(record.Warnings, modeling.WarningBaselineNotBeaten)
		s.logger.Warn("[Model] %s on %s did not beat the mean baseline (rmse %.4f vs %.4f)",
			family, outcome, record.RMSE, baselineRMSE)
	}

	result.Records = append(result.Records, record)
	result.Predictions[family] = predictions
	return nil
}
