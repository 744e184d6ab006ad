package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Define struct for YAML
type CaseConfig struct {
	Cases map[string]StudyCase `yaml:"cases"`
}

type StudyCase struct {
	Cycles         int     `yaml:"cycles"`
	Policy         string  `yaml:"policy"`
	LowExp         int     `yaml:"low_exp"`
	HighExp        int     `yaml:"high_exp"`
	BinsPerDecade  int     `yaml:"bins_per_decade"`
	TargetFraction float64 `yaml:"target_fraction"`
	ErrorFraction  float64 `yaml:"error_fraction"`
	SizeExponent   float64 `yaml:"size_exponent"`
	TargetSize     float64 `yaml:"target_size"`
	GridNX         int     `yaml:"grid_nx"`
	GridNY         int     `yaml:"grid_ny"`
	CellSize       float64 `yaml:"cell_size"`
	MaxLevel       int     `yaml:"max_level"`
	PeakX          float64 `yaml:"peak_x"`
	PeakY          float64 `yaml:"peak_y"`
	PeakWidth      float64 `yaml:"peak_width"`
	NoiseSigma     float64 `yaml:"noise_sigma"`
}

// GetCaseConfig loads a named study case from a YAML preset file.
// Returns nil when the case does not exist.
func GetCaseConfig(caseFilePath string, name string) *StudyCase {
	// Read YAML file
	data, err := os.ReadFile(caseFilePath)
	if err != nil {
		panic(err)
	}

	// Parse YAML
	var cfg CaseConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}

	if studyCase, caseExists := cfg.Cases[name]; caseExists {
		logrus.Infof("Using preset case %v\n", name)
		return &studyCase
	}
	return nil
}

// applyCase overrides the CLI flag values with the preset's fields.
// Zero-valued preset fields keep the flag defaults.
func applyCase(c *StudyCase) {
	if c.Cycles > 0 {
		cycles = c.Cycles
	}
	if c.Policy != "" {
		policy = c.Policy
	}
	if c.LowExp != 0 || c.HighExp != 0 {
		lowExp, highExp = c.LowExp, c.HighExp
	}
	if c.BinsPerDecade > 0 {
		binsPerDecade = c.BinsPerDecade
	}
	if c.TargetFraction > 0 {
		targetFraction = c.TargetFraction
	}
	if c.ErrorFraction > 0 {
		errorFraction = c.ErrorFraction
	}
	if c.SizeExponent > 0 {
		sizeExponent = c.SizeExponent
	}
	if c.TargetSize > 0 {
		targetSize = c.TargetSize
	}
	if c.GridNX > 0 {
		gridNX = c.GridNX
	}
	if c.GridNY > 0 {
		gridNY = c.GridNY
	}
	if c.CellSize > 0 {
		cellSize = c.CellSize
	}
	if c.MaxLevel > 0 {
		maxLevel = c.MaxLevel
	}
	if c.PeakWidth > 0 {
		peakX, peakY, peakWidth = c.PeakX, c.PeakY, c.PeakWidth
	}
	if c.NoiseSigma > 0 {
		noiseSigma = c.NoiseSigma
	}
}
