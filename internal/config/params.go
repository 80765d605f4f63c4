package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Environment variables that override the default trading parameters.
const (
	EnvMaxPositionSize    = "MAX_POSITION_SIZE"
	EnvMaxDailyLoss       = "MAX_DAILY_LOSS"
	EnvStopLossPct        = "STOP_LOSS_PCT"
	EnvLookbackPeriod     = "LOOKBACK_PERIOD"
	EnvMinVolumeThreshold = "MIN_VOLUME_THRESHOLD"
	EnvExchangeFee        = "EXCHANGE_FEE"
	EnvAPITimeoutSeconds  = "API_TIMEOUT_SECONDS"
)

// TradingParams holds the risk and sizing knobs consumed by the
// trading layer. Immutable after construction.
type TradingParams struct {
	// Risk parameters. All four must be strictly positive.
	MaxPositionSize float64 // portfolio fraction per trade
	MaxDailyLoss    float64 // max daily loss fraction
	StopLossPct     float64 // stop-loss fraction
	LookbackPeriod  int     // candles of history for signals

	MinVolumeThreshold float64       // minimum 24h quote volume
	ExchangeFee        float64       // taker fee fraction
	APITimeout         time.Duration // exchange API call timeout
}

// DefaultTradingParams returns the fixed parameter defaults.
func DefaultTradingParams() TradingParams {
	return TradingParams{
		MaxPositionSize:    0.1,  // 10% of portfolio per trade
		MaxDailyLoss:       0.02, // 2% max daily loss
		StopLossPct:        0.02, // 2% stop loss
		LookbackPeriod:     100,
		MinVolumeThreshold: 1_000_000, // $1M minimum volume
		ExchangeFee:        0.001,     // 0.1% trading fee
		APITimeout:         30 * time.Second,
	}
}

// resolveTradingParams builds the parameter set from defaults plus
// environment overrides. A value that does not parse keeps the default
// and logs a warning; only the positivity invariant is fatal, and that
// is checked separately by Validate.
func resolveTradingParams(logger zerolog.Logger) TradingParams {
	p := DefaultTradingParams()

	overrideFloat(logger, EnvMaxPositionSize, &p.MaxPositionSize)
	overrideFloat(logger, EnvMaxDailyLoss, &p.MaxDailyLoss)
	overrideFloat(logger, EnvStopLossPct, &p.StopLossPct)
	overrideInt(logger, EnvLookbackPeriod, &p.LookbackPeriod)
	overrideFloat(logger, EnvMinVolumeThreshold, &p.MinVolumeThreshold)
	overrideFloat(logger, EnvExchangeFee, &p.ExchangeFee)

	if raw := os.Getenv(EnvAPITimeoutSeconds); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warn().Str("var", EnvAPITimeoutSeconds).Str("value", raw).
				Msg("unparseable override, keeping default")
		} else {
			p.APITimeout = time.Duration(secs) * time.Second
		}
	}

	return p
}

// Validate checks the positivity invariant on the four risk/sizing
// fields. A violation aborts startup.
func (p TradingParams) Validate() error {
	switch {
	case p.MaxPositionSize <= 0:
		return fmt.Errorf("max position size must be positive, got %v", p.MaxPositionSize)
	case p.MaxDailyLoss <= 0:
		return fmt.Errorf("max daily loss must be positive, got %v", p.MaxDailyLoss)
	case p.StopLossPct <= 0:
		return fmt.Errorf("stop loss pct must be positive, got %v", p.StopLossPct)
	case p.LookbackPeriod <= 0:
		return fmt.Errorf("lookback period must be positive, got %v", p.LookbackPeriod)
	}
	return nil
}

func overrideFloat(logger zerolog.Logger, key string, dst *float64) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn().Str("var", key).Str("value", raw).
			Msg("unparseable override, keeping default")
		return
	}
	*dst = v
}

func overrideInt(logger zerolog.Logger, key string, dst *int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn().Str("var", key).Str("value", raw).
			Msg("unparseable override, keeping default")
		return
	}
	*dst = v
}
