// Package technical computes price-based indicators used to enrich the
// dashboard. None of them feed the SQGLP score.
//
// Values follow TA-Lib conventions: RSI uses Wilder smoothing, and EMA (and
// so MACD) is seeded with the SMA of the first period. Tools that take a plain
// rolling mean of gains and losses for RSI, or seed the EMA with the first
// close, report different numbers for the same series, most visibly on
// short histories.
package technical

import (
	"math"

	"github.com/markcheno/go-talib"
)

const (
	SMAPeriod        = 20
	EMAPeriod        = 20
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
)

// Indicators holds the latest value of each indicator.
// A nil field means there were not enough closes to compute it.
type Indicators struct {
	SMA20      *float64
	EMA20      *float64
	RSI14      *float64
	MACD       *float64
	MACDSignal *float64
}

// Compute derives the latest indicator values from closes, oldest first
func Compute(closes []float64) Indicators {
	var ind Indicators
	if len(closes) >= SMAPeriod {
		ind.SMA20 = last(talib.Sma(closes, SMAPeriod))
	}
	if len(closes) >= EMAPeriod {
		ind.EMA20 = last(talib.Ema(closes, EMAPeriod))
	}
	if len(closes) > RSIPeriod {
		ind.RSI14 = last(talib.Rsi(closes, RSIPeriod))
	}
	if len(closes) >= MACDSlowPeriod+MACDSignalPeriod-1 {
		macd, signal, _ := talib.Macd(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod)
		ind.MACD = last(macd)
		ind.MACDSignal = last(signal)
	}
	return ind
}

// last returns the final value of series, or nil if it is missing or not a number
func last(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
