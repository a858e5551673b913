package age

import (
	"context"

	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/utils"
	"go.uber.org/zap"
)

// CalculateSampleAges computes both ages and the discordance of every analysis.
// Analyses whose ages cannot be computed are logged and skipped.
func CalculateSampleAges(ctx context.Context, analyses []model.UPbAnalysis, c Constants) []model.SampleAge {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("CalculateSampleAges recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("analysisCnt", len(analyses)))
		}
	}()

	res := make([]model.SampleAge, 0, len(analyses))
	for i, a := range analyses {
		if a.Missing() {
			logger.Info("analysis has missing data, skip", zap.Int("index", i))
			continue
		}
		age75, age68, err := c.Age(a)
		if err != nil {
			logger.Error("age failed, skip analysis", zap.Int("index", i), zap.Any("mu", a.Mu), zap.Error(err))
			continue
		}
		res = append(res, model.SampleAge{
			Index:       i,
			Age75:       age75,
			Age68:       age68,
			Discordance: 100 * (age75.Mean - age68.Mean) / age75.Mean,
		})
	}

	logger.Info("CalculateSampleAges success", zap.Int("analysisCnt", len(analyses)),
		zap.Int("ageCnt", len(res)))
	return res
}

// FilterConcordant keeps the ages whose absolute discordance is at most maxDiscordance percent.
func FilterConcordant(ages []model.SampleAge, maxDiscordance float64) []model.SampleAge {
	res := []model.SampleAge{}
	for _, a := range ages {
		if a.Discordance >= -maxDiscordance && a.Discordance <= maxDiscordance {
			res = append(res, a)
		}
	}
	return res
}
