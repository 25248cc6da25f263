package config

import "time"

// Rates holds per-million-token prices applied to session usage.
type Rates struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

type ratesVersion struct {
	EffectiveFrom time.Time
	Rates         Rates
}

// defaultRatesHistory stores effective-dated default rates, sorted by
// EffectiveFrom ascending. The zero EffectiveFrom entry is the floor.
var defaultRatesHistory = []ratesVersion{
	{
		Rates: Rates{InputPerMTok: 3.00, OutputPerMTok: 15.00},
	},
	{
		EffectiveFrom: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Rates:         Rates{InputPerMTok: 5.00, OutputPerMTok: 25.00},
	},
}

// RatesAt returns the default rates in effect at the given time.
func RatesAt(t time.Time) Rates {
	rates := defaultRatesHistory[0].Rates
	for _, v := range defaultRatesHistory[1:] {
		if t.Before(v.EffectiveFrom) {
			break
		}
		rates = v.Rates
	}
	return rates
}

// EffectiveRates returns the current rates with any config overrides applied.
func (c Config) EffectiveRates() Rates {
	rates := RatesAt(time.Now())
	if c.Pricing.InputPerMTok != nil {
		rates.InputPerMTok = *c.Pricing.InputPerMTok
	}
	if c.Pricing.OutputPerMTok != nil {
		rates.OutputPerMTok = *c.Pricing.OutputPerMTok
	}
	return rates
}

// Cost computes the USD estimate for the given token counts.
func (r Rates) Cost(tokensIn, tokensOut int64) float64 {
	return float64(tokensIn)/1_000_000*r.InputPerMTok +
		float64(tokensOut)/1_000_000*r.OutputPerMTok
}
