package cli

import (
	"github.com/uyouii/geochron/config"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
)

func loadUPb(path string) ([]model.UPbAnalysis, error) {
	ds, err := config.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return ds.UPbAnalyses()
}

func loadPbPb(path string) ([]model.PbPbAnalysis, error) {
	ds, err := config.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return ds.PbPbAnalyses()
}

func loadValues(path string) ([]uncertain.Value, error) {
	ds, err := config.LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return ds.UncertainValues()
}
