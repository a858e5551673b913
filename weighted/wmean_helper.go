package weighted

import (
	"context"

	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"go.uber.org/zap"
)

// WeightedMeanAge pools ages of a sample, skipping ages with NaN parts.
func WeightedMeanAge(ctx context.Context, ages []uncertain.Value, corrected bool) (*model.WeightedMean, error) {
	logger := utils.GetLogger(ctx)

	usable := make([]uncertain.Value, 0, len(ages))
	for _, a := range ages {
		if a.IsNaN() {
			continue
		}
		usable = append(usable, a)
	}
	if len(usable) < len(ages) {
		logger.Info("drop ages with missing data", zap.Int("dropCnt", len(ages)-len(usable)))
	}

	mean, mswd, err := WMeanValues(usable, corrected)
	if err != nil {
		logger.Error("WMeanValues failed", zap.Int("cnt", len(usable)), zap.Error(err))
		return nil, err
	}

	logger.Info("WeightedMeanAge success", zap.Float64("mean", mean.Mean), zap.Float64("sigma", mean.Sigma),
		zap.Float64("mswd", mswd), zap.Bool("corrected", corrected))
	return &model.WeightedMean{
		Mean:      mean,
		MSWD:      mswd,
		N:         len(usable),
		Corrected: corrected,
	}, nil
}
