package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/SabreenNoorAli/final-project-EDLD654/domain/modeling"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ElasticNetConfig parameterizes the linear family. Alpha mixes the
// penalties: 0 is pure L2 (ridge), 1 pure L1 (lasso).
type ElasticNetConfig struct {
	Lambda  float64
	Alpha   float64
	MaxIter int
	Tol     float64
}

// DefaultElasticNetConfig returns sensible solver settings for a given
// penalty point.
func DefaultElasticNetConfig(lambda, alpha float64) ElasticNetConfig {
	return ElasticNetConfig{Lambda: lambda, Alpha: alpha, MaxIter: 1000, Tol: 1e-6}
}

// ElasticNet is a fitted linear model. Ridge points solve the penalized
// normal equations directly; any L1 weight switches to coordinate descent
// with soft thresholding.
type ElasticNet struct {
	config    ElasticNetConfig
	intercept float64
	coefs     []float64
	features  []string
}

// NewElasticNet creates an unfitted model.
func NewElasticNet(config ElasticNetConfig) *ElasticNet {
	return &ElasticNet{config: config}
}

// Fit estimates coefficients on the training matrix. Predictors are
// expected standardized by the recipe; the intercept is the outcome mean.
func (m *ElasticNet) Fit(d *Dataset) error {
	if d.Len() == 0 {
		return fmt.Errorf("cannot fit elastic net on empty dataset")
	}
	if m.config.Lambda < 0 || m.config.Alpha < 0 || m.config.Alpha > 1 {
		return fmt.Errorf("invalid penalty: lambda=%v alpha=%v", m.config.Lambda, m.config.Alpha)
	}
	m.features = d.Features
	m.intercept = d.MeanY()

	centered := make([]float64, d.Len())
	for i, y := range d.Y {
		centered[i] = y - m.intercept
	}

	if m.config.Alpha == 0 {
		return m.fitRidge(d, centered)
	}
	return m.fitCoordinateDescent(d, centered)
}

// fitRidge solves (X'X + n*lambda*I) b = X'y by Cholesky decomposition.
// The penalized Gram matrix is positive definite for any lambda > 0; a
// singular unpenalized matrix at lambda = 0 falls back to least squares.
func (m *ElasticNet) fitRidge(d *Dataset, centered []float64) error {
	n, p := d.Len(), len(d.Features)
	x := mat.NewDense(n, p, nil)
	for i, row := range d.X {
		x.SetRow(i, row)
	}
	y := mat.NewVecDense(n, centered)

	var gram mat.SymDense
	gram.SymOuterK(1, x.T())
	for j := 0; j < p; j++ {
		gram.SetSym(j, j, gram.At(j, j)+float64(n)*m.config.Lambda)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		// Degenerate at lambda = 0; a least-squares solve still yields
		// usable coefficients.
		var solved mat.VecDense
		if err := solved.SolveVec(&gram, &xty); err != nil {
			return fmt.Errorf("ridge normal equations are singular: %w", err)
		}
		m.coefs = append([]float64{}, solved.RawVector().Data...)
		return nil
	}
	var solved mat.VecDense
	if err := chol.SolveVecTo(&solved, &xty); err != nil {
		return fmt.Errorf("ridge solve failed: %w", err)
	}
	m.coefs = append([]float64{}, solved.RawVector().Data...)
	return nil
}

// fitCoordinateDescent runs cyclic coordinate descent with the elastic-net
// soft-threshold update until the largest coefficient change drops below
// tolerance.
func (m *ElasticNet) fitCoordinateDescent(d *Dataset, centered []float64) error {
	n, p := d.Len(), len(d.Features)
	coefs := make([]float64, p)

	// Per-feature second moments and the running residual.
	z := make([]float64, p)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			z[j] += d.X[i][j] * d.X[i][j]
		}
		z[j] /= float64(n)
	}
	residual := append([]float64{}, centered...)

	l1 := m.config.Lambda * m.config.Alpha
	l2 := m.config.Lambda * (1 - m.config.Alpha)

	for iter := 0; iter < m.config.MaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			if z[j] == 0 {
				continue // constant column, coefficient stays zero
			}
			old := coefs[j]

			// rho_j = (1/n) sum_i x_ij (r_i + x_ij b_j)
			rho := 0.0
			for i := 0; i < n; i++ {
				rho += d.X[i][j] * (residual[i] + d.X[i][j]*old)
			}
			rho /= float64(n)

			updated := softThreshold(rho, l1) / (z[j] + l2)
			if updated != old {
				delta := updated - old
				for i := 0; i < n; i++ {
					residual[i] -= delta * d.X[i][j]
				}
				coefs[j] = updated
				if math.Abs(delta) > maxDelta {
					maxDelta = math.Abs(delta)
				}
			}
		}
		if maxDelta < m.config.Tol {
			break
		}
	}
	m.coefs = coefs
	return nil
}

func softThreshold(value, threshold float64) float64 {
	switch {
	case value > threshold:
		return value - threshold
	case value < -threshold:
		return value + threshold
	default:
		return 0
	}
}

// Predict returns the linear prediction for one row.
func (m *ElasticNet) Predict(row []float64) float64 {
	return m.intercept + floats.Dot(m.coefs, row)
}

// Coefficients returns the nonzero coefficients ranked by absolute
// magnitude, which doubles as the linear families' importance ranking on
// standardized predictors.
func (m *ElasticNet) Coefficients() []modeling.Importance {
	var out []modeling.Importance
	for j, c := range m.coefs {
		if c != 0 {
			out = append(out, modeling.Importance{Feature: m.features[j], Score: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].Score) > math.Abs(out[j].Score)
	})
	return out
}
