package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Loaded once at startup,
// validated once, then treated as immutable.
type Config struct {
	// Preset selects the threshold set used to fill unset strategy fields:
	// "default" (strict) or "relaxed" (the loosened variant).
	Preset string `yaml:"preset"`

	Strategy struct {
		BBPeriod            int     `yaml:"bb_period"`
		BBStdDev            float64 `yaml:"bb_std_dev"`
		RSIPeriod           int     `yaml:"rsi_period"`
		RSIOversold         float64 `yaml:"rsi_oversold"`
		RSIOverbought       float64 `yaml:"rsi_overbought"`
		MACDFast            int     `yaml:"macd_fast"`
		MACDSlow            int     `yaml:"macd_slow"`
		MACDSignal          int     `yaml:"macd_signal"`
		VolumeMAPeriod      int     `yaml:"volume_ma_period"`
		MinVolumeRatio      float64 `yaml:"min_volume_ratio"`
		MomentumThreshold   float64 `yaml:"momentum_threshold"`
		BandStrongOversold  float64 `yaml:"band_strong_oversold"`
		BandOversold        float64 `yaml:"band_oversold"`
		BandOverbought      float64 `yaml:"band_overbought"`
		BandStrongOverbought float64 `yaml:"band_strong_overbought"`
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
		MinDataPoints       int     `yaml:"min_data_points"`
	} `yaml:"strategy"`

	Screening struct {
		MinPrice     float64 `yaml:"min_price"`
		MaxPrice     float64 `yaml:"max_price"`
		MinMarketCap float64 `yaml:"min_market_cap"`
	} `yaml:"screening"`

	Portfolio struct {
		MaxPositions     int     `yaml:"max_positions"`
		MaxPositionRatio float64 `yaml:"max_position_ratio"`
		StopLoss         float64 `yaml:"stop_loss"`
		TakeProfit       float64 `yaml:"take_profit"`
		RiskFreeRate     float64 `yaml:"risk_free_rate"`
	} `yaml:"portfolio"`

	Runner struct {
		WorkerCount    int  `yaml:"worker_count"`
		BatchSize      int  `yaml:"batch_size"`
		MaxInstruments int  `yaml:"max_instruments"`
		LookbackDays   int  `yaml:"lookback_days"`
		FetchDelayMS   int  `yaml:"fetch_delay_ms"`
		IncludeAll     bool `yaml:"include_all"`
	} `yaml:"runner"`

	DataSource struct {
		ListURL  string   `yaml:"list_url"`
		KlineURL string   `yaml:"kline_url"`
		Universe []string `yaml:"universe"` // explicit code list, skips the list API
	} `yaml:"data_source"`

	Output struct {
		CSVDir     string `yaml:"csv_dir"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`

	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// preset holds the threshold set a named variant fills in for unset fields.
type preset struct {
	rsiOversold    float64
	rsiOverbought  float64
	minVolumeRatio float64
	momentum       float64
	confidence     float64
}

var presets = map[string]preset{
	"default": {rsiOversold: 30, rsiOverbought: 70, minVolumeRatio: 1.2, momentum: 0.05, confidence: 0.6},
	"relaxed": {rsiOversold: 15, rsiOverbought: 85, minVolumeRatio: 0.8, momentum: 0.02, confidence: 0.5},
}

// Load reads config from a YAML file, then applies environment variable
// overrides and fills defaults. A missing file yields the full default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PICKER_PRESET"); v != "" {
		cfg.Preset = v
	}
	if v := os.Getenv("PICKER_SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("PICKER_CSV_DIR"); v != "" {
		cfg.Output.CSVDir = v
	}
	if v := os.Getenv("PICKER_MAX_INSTRUMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Runner.MaxInstruments = n
		}
	}
	if v := os.Getenv("PICKER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Runner.WorkerCount = n
		}
	}
	if v := os.Getenv("PICKER_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Preset == "" {
		c.Preset = "default"
	}
	p, ok := presets[c.Preset]
	if !ok {
		// Validate reports the bad preset; fill from default so the error is singular.
		p = presets["default"]
	}

	s := &c.Strategy
	if s.BBPeriod == 0 {
		s.BBPeriod = 20
	}
	if s.BBStdDev == 0 {
		s.BBStdDev = 2.0
	}
	if s.RSIPeriod == 0 {
		s.RSIPeriod = 14
	}
	if s.RSIOversold == 0 {
		s.RSIOversold = p.rsiOversold
	}
	if s.RSIOverbought == 0 {
		s.RSIOverbought = p.rsiOverbought
	}
	if s.MACDFast == 0 {
		s.MACDFast = 12
	}
	if s.MACDSlow == 0 {
		s.MACDSlow = 26
	}
	if s.MACDSignal == 0 {
		s.MACDSignal = 9
	}
	if s.VolumeMAPeriod == 0 {
		s.VolumeMAPeriod = 20
	}
	if s.MinVolumeRatio == 0 {
		s.MinVolumeRatio = p.minVolumeRatio
	}
	if s.MomentumThreshold == 0 {
		s.MomentumThreshold = p.momentum
	}
	if s.BandStrongOversold == 0 {
		s.BandStrongOversold = 0.1
	}
	if s.BandOversold == 0 {
		s.BandOversold = 0.2
	}
	if s.BandOverbought == 0 {
		s.BandOverbought = 0.8
	}
	if s.BandStrongOverbought == 0 {
		s.BandStrongOverbought = 0.9
	}
	if s.ConfidenceThreshold == 0 {
		s.ConfidenceThreshold = p.confidence
	}
	if s.MinDataPoints == 0 {
		s.MinDataPoints = 50
	}

	if c.Screening.MinPrice == 0 {
		c.Screening.MinPrice = 1.0
	}
	if c.Screening.MaxPrice == 0 {
		c.Screening.MaxPrice = 500.0
	}
	if c.Screening.MinMarketCap == 0 {
		c.Screening.MinMarketCap = 200_000_000
	}

	if c.Portfolio.MaxPositions == 0 {
		c.Portfolio.MaxPositions = 10
	}
	if c.Portfolio.MaxPositionRatio == 0 {
		c.Portfolio.MaxPositionRatio = 0.1
	}
	if c.Portfolio.StopLoss == 0 {
		c.Portfolio.StopLoss = 0.08
	}
	if c.Portfolio.TakeProfit == 0 {
		c.Portfolio.TakeProfit = 0.20
	}
	if c.Portfolio.RiskFreeRate == 0 {
		c.Portfolio.RiskFreeRate = 0.03
	}

	if c.Runner.WorkerCount == 0 {
		c.Runner.WorkerCount = 8
	}
	if c.Runner.BatchSize == 0 {
		c.Runner.BatchSize = 20
	}
	if c.Runner.MaxInstruments == 0 {
		c.Runner.MaxInstruments = 500
	}
	if c.Runner.LookbackDays == 0 {
		c.Runner.LookbackDays = 60
	}
	if c.Runner.FetchDelayMS == 0 {
		c.Runner.FetchDelayMS = 200
	}

	if c.DataSource.ListURL == "" {
		c.DataSource.ListURL = "https://82.push2.eastmoney.com/api/qt/clist/get"
	}
	if c.DataSource.KlineURL == "" {
		c.DataSource.KlineURL = "https://push2his.eastmoney.com/api/qt/stock/kline/get"
	}

	if c.Output.CSVDir == "" {
		c.Output.CSVDir = "results"
	}
	if c.Output.SQLitePath == "" {
		c.Output.SQLitePath = "data/picker.db"
	}

	// Weekdays at 17:00, after the A-share close.
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 0 17 * * 1-5"
	}
}

// Validate checks the configuration before any instrument is processed.
// An invalid configuration is fatal for the whole run.
func (c *Config) Validate() error {
	if _, ok := presets[c.Preset]; !ok {
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	s := &c.Strategy
	if s.BBPeriod < 2 {
		return fmt.Errorf("strategy.bb_period must be >= 2, got %d", s.BBPeriod)
	}
	if s.BBStdDev <= 0 {
		return fmt.Errorf("strategy.bb_std_dev must be positive, got %g", s.BBStdDev)
	}
	if s.RSIPeriod < 1 {
		return fmt.Errorf("strategy.rsi_period must be >= 1, got %d", s.RSIPeriod)
	}
	if s.RSIOversold <= 0 || s.RSIOversold >= 100 || s.RSIOverbought <= 0 || s.RSIOverbought >= 100 {
		return fmt.Errorf("strategy RSI thresholds must be within (0, 100)")
	}
	if s.RSIOversold >= s.RSIOverbought {
		return fmt.Errorf("strategy.rsi_oversold (%g) must be below rsi_overbought (%g)",
			s.RSIOversold, s.RSIOverbought)
	}
	if s.MACDFast >= s.MACDSlow {
		return fmt.Errorf("strategy.macd_fast (%d) must be below macd_slow (%d)", s.MACDFast, s.MACDSlow)
	}
	if s.MACDSignal < 1 {
		return fmt.Errorf("strategy.macd_signal must be >= 1, got %d", s.MACDSignal)
	}
	if s.VolumeMAPeriod < 1 {
		return fmt.Errorf("strategy.volume_ma_period must be >= 1, got %d", s.VolumeMAPeriod)
	}
	if s.MomentumThreshold <= 0 {
		return fmt.Errorf("strategy.momentum_threshold must be positive, got %g", s.MomentumThreshold)
	}
	if !(s.BandStrongOversold < s.BandOversold && s.BandOversold < s.BandOverbought &&
		s.BandOverbought < s.BandStrongOverbought) {
		return fmt.Errorf("band thresholds must be strictly ordered: %g < %g < %g < %g",
			s.BandStrongOversold, s.BandOversold, s.BandOverbought, s.BandStrongOverbought)
	}
	if s.ConfidenceThreshold < 0 || s.ConfidenceThreshold > 1 {
		return fmt.Errorf("strategy.confidence_threshold must be within [0, 1], got %g", s.ConfidenceThreshold)
	}
	minWindow := s.BBPeriod
	if s.RSIPeriod > minWindow {
		minWindow = s.RSIPeriod
	}
	if s.MACDSlow > minWindow {
		minWindow = s.MACDSlow
	}
	if s.MinDataPoints < minWindow {
		return fmt.Errorf("strategy.min_data_points (%d) must cover the longest window (%d)",
			s.MinDataPoints, minWindow)
	}

	if c.Screening.MinPrice < 0 || c.Screening.MaxPrice <= c.Screening.MinPrice {
		return fmt.Errorf("screening price range [%g, %g] is invalid",
			c.Screening.MinPrice, c.Screening.MaxPrice)
	}

	if c.Portfolio.MaxPositions < 1 {
		return fmt.Errorf("portfolio.max_positions must be >= 1, got %d", c.Portfolio.MaxPositions)
	}
	if c.Portfolio.MaxPositionRatio <= 0 || c.Portfolio.MaxPositionRatio > 1 {
		return fmt.Errorf("portfolio.max_position_ratio must be within (0, 1], got %g",
			c.Portfolio.MaxPositionRatio)
	}
	if c.Portfolio.StopLoss <= 0 || c.Portfolio.StopLoss >= 1 {
		return fmt.Errorf("portfolio.stop_loss must be within (0, 1), got %g", c.Portfolio.StopLoss)
	}
	if c.Portfolio.TakeProfit <= 0 || c.Portfolio.TakeProfit >= 1 {
		return fmt.Errorf("portfolio.take_profit must be within (0, 1), got %g", c.Portfolio.TakeProfit)
	}

	if c.Runner.WorkerCount < 1 {
		return fmt.Errorf("runner.worker_count must be >= 1, got %d", c.Runner.WorkerCount)
	}
	if c.Runner.BatchSize < 1 {
		return fmt.Errorf("runner.batch_size must be >= 1, got %d", c.Runner.BatchSize)
	}
	if c.Runner.LookbackDays < c.Strategy.MinDataPoints {
		return fmt.Errorf("runner.lookback_days (%d) must cover strategy.min_data_points (%d)",
			c.Runner.LookbackDays, c.Strategy.MinDataPoints)
	}
	return nil
}
