package york

import (
	"context"

	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/utils"
	"go.uber.org/zap"
)

// FitAnalyses regresses 206Pb/238U on 207Pb/235U, the discordia of a U-Pb population.
func FitAnalyses(ctx context.Context, analyses []model.UPbAnalysis, iterations int) (model.YorkFit, error) {
	logger := utils.GetLogger(ctx)

	n := len(analyses)
	x, sx, y, sy := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, a := range analyses {
		x[i], sx[i] = a.Mu[0], a.Sigma[0]
		y[i], sy[i] = a.Mu[1], a.Sigma[1]
	}

	fit, err := Fit(x, sx, y, sy, iterations)
	if err != nil {
		logger.Error("york Fit failed", zap.Int("analysisCnt", n), zap.Error(err))
		return model.YorkFit{}, err
	}
	if fit.N < n {
		logger.Info("drop analyses with missing data", zap.Int("dropCnt", n-fit.N))
	}

	logger.Info("FitAnalyses success", zap.String("fit", fit.DebugString()))
	return fit, nil
}
