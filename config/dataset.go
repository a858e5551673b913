package config

import (
	"fmt"
	"os"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
	"gopkg.in/yaml.v3"
)

// Dataset is a sample of measurements as written in a YAML file. Analysis rows
// hold r1, sigma1, r2, sigma2, rho; value rows hold value, sigma. Missing
// entries are written as .nan.
type Dataset struct {
	Name string `yaml:"name"`
	// 207Pb/235U, 206Pb/238U rows
	UPb [][]float64 `yaml:"upb,omitempty"`
	// 206Pb/238U, 207Pb/206Pb rows
	PbPb   [][]float64 `yaml:"pbpb,omitempty"`
	Values [][]float64 `yaml:"values,omitempty"`
}

func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{}
	if err := yaml.Unmarshal(data, ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

func SaveDataset(path string, ds *Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, defaultConfigFileMode)
}

func (d *Dataset) UPbAnalyses() ([]model.UPbAnalysis, error) {
	res := make([]model.UPbAnalysis, 0, len(d.UPb))
	for i, row := range d.UPb {
		if err := checkRow("upb", i, row, 5); err != nil {
			return nil, err
		}
		a, err := model.NewUPbAnalysis(row[0], row[1], row[2], row[3], row[4])
		if err != nil {
			return nil, fmt.Errorf("upb row %d: %w", i, err)
		}
		res = append(res, a)
	}
	return res, nil
}

func (d *Dataset) PbPbAnalyses() ([]model.PbPbAnalysis, error) {
	res := make([]model.PbPbAnalysis, 0, len(d.PbPb))
	for i, row := range d.PbPb {
		if err := checkRow("pbpb", i, row, 5); err != nil {
			return nil, err
		}
		a, err := model.NewPbPbAnalysis(row[0], row[1], row[2], row[3], row[4])
		if err != nil {
			return nil, fmt.Errorf("pbpb row %d: %w", i, err)
		}
		res = append(res, a)
	}
	return res, nil
}

func (d *Dataset) UncertainValues() ([]uncertain.Value, error) {
	res := make([]uncertain.Value, 0, len(d.Values))
	for i, row := range d.Values {
		if err := checkRow("values", i, row, 2); err != nil {
			return nil, err
		}
		res = append(res, uncertain.New(row[0], row[1]))
	}
	return res, nil
}

func checkRow(section string, i int, row []float64, want int) error {
	if len(row) != want {
		return fmt.Errorf("%w: %s row %d has %d columns, want %d", common.ErrorInvalidValue, section, i, len(row), want)
	}
	return nil
}
