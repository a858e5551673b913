package kde

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"github.com/uyouii/geochron/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// CalculateAgeQuantiles estimates the age spectrum of a sample and reads the given
// quantiles off it. Ages further than ClipUpperZScore/ClipLowerZScore standard
// deviations from the mean are left out. bwAdjust and cut are passed to
// NewAgeDensity. A nil quantiles slice uses DefaultQuantiles.
func CalculateAgeQuantiles(ctx context.Context, ages []uncertain.Value, bwAdjust, cut float64,
	quantiles []float64) (res *model.AgeQuantiles, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("CalculateAgeQuantiles recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("ageCnt", len(ages)))
			res, err = nil, fmt.Errorf("%w: density estimate panicked: %v", common.ErrorDomain, r)
		}
	}()

	if quantiles == nil {
		quantiles = DefaultQuantiles
	}

	values := make([]float64, 0, len(ages))
	for _, a := range ages {
		if math.IsNaN(a.Mean) {
			continue
		}
		values = append(values, a.Mean)
	}

	if len(values) < MinDensityAgeCnt {
		logger.Error("ages too little, skip calculate", zap.Int("cnt", len(values)))
		return nil, fmt.Errorf("%w: need %d ages, got %d", common.ErrorInsufficientData, MinDensityAgeCnt, len(values))
	}

	mean, stddev := stat.MeanStdDev(values, nil)
	clip := &model.Clip{
		Upper: mean + stddev*ClipUpperZScore,
		Lower: math.Max(mean-stddev*ClipLowerZScore, 0),
	}

	k, err := NewAgeDensity(ages, bwAdjust, cut, clip)
	if err != nil {
		logger.Error("NewAgeDensity failed", zap.Error(err))
		return nil, err
	}

	calculated := map[string]*model.QuantileValue{}
	for _, q := range quantiles {
		quantile, err := k.Quantile(q)
		if err != nil {
			logger.Error("kde Quantile failed", zap.Error(err), zap.Float64("q", q))
			continue
		}
		quantile.Age = utils.FormatFloat(quantile.Age, QuantileDecimals)
		calculated[fmt.Sprintf("%v", q)] = quantile
	}

	logger.Info("CalculateAgeQuantiles success", zap.Int("ageCnt", len(k.Ages)),
		zap.Float64("bandwidth", k.Bandwidth()), zap.Int("quantileCnt", len(calculated)))
	return &model.AgeQuantiles{QuantileValues: calculated}, nil
}
