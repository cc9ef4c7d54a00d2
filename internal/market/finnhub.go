package market

import (
	"context"
	"strings"

	"finbot/internal/errors"
	"finbot/internal/models"
)

// Quote fetches recent daily bars for symbol and derives a snapshot from the
// two most recent closes. Fewer than two bars is reported as
// errors.ErrInsufficientData, distinct from a provider failure.
func (c *Client) Quote(ctx context.Context, symbol string) (models.QuoteSnapshot, error) {
	symbol = strings.ToUpper(symbol)

	// A week-wide window so weekends and holidays still yield two bars.
	to := c.now()
	from := to.AddDate(0, 0, -7)

	candles, _, err := c.api.StockCandles(ctx).
		Symbol(symbol).
		Resolution("D").
		From(from.Unix()).
		To(to.Unix()).
		Execute()
	if err != nil {
		return models.QuoteSnapshot{}, errors.NewUpstreamError("finnhub", "candles", err)
	}

	closes := candles.GetC()
	if candles.GetS() != "ok" || len(closes) < 2 {
		return models.QuoteSnapshot{}, errors.ErrInsufficientData
	}

	highs := candles.GetH()
	lows := candles.GetL()
	last := len(closes) - 1

	snap := models.QuoteSnapshot{
		Symbol:        symbol,
		LongName:      symbol,
		CurrentPrice:  float64(closes[last]),
		PreviousClose: float64(closes[last-1]),
	}
	if len(highs) > last {
		snap.DayHigh = float64(highs[last])
	}
	if len(lows) > last {
		snap.DayLow = float64(lows[last])
	}

	// Best effort: a nicer title when the company name resolves.
	if profile, _, err := c.api.CompanyProfile2(ctx).Symbol(symbol).Execute(); err == nil {
		if name := profile.GetName(); name != "" {
			snap.LongName = name
		}
	}

	return snap, nil
}

// Profile fetches company metadata and key statistics for symbol. A symbol
// with no resolvable canonical name is reported as errors.ErrSymbolNotFound.
func (c *Client) Profile(ctx context.Context, symbol string) (models.ProfileSnapshot, error) {
	symbol = strings.ToUpper(symbol)

	profile, _, err := c.api.CompanyProfile2(ctx).Symbol(symbol).Execute()
	if err != nil {
		return models.ProfileSnapshot{}, errors.NewUpstreamError("finnhub", "profile", err)
	}
	if profile.GetName() == "" {
		return models.ProfileSnapshot{}, errors.ErrSymbolNotFound
	}

	snap := models.ProfileSnapshot{
		LongName: profile.GetName(),
		Symbol:   symbol,
	}
	if t := profile.GetTicker(); t != "" {
		snap.Symbol = t
	}

	financials, _, err := c.api.CompanyBasicFinancials(ctx).Symbol(symbol).Metric("all").Execute()
	if err != nil {
		return models.ProfileSnapshot{}, errors.NewUpstreamError("finnhub", "financials", err)
	}

	metrics := financials.GetMetric()
	if vol := metricFloat(metrics, "10DayAverageTradingVolume"); vol != nil {
		// Provider reports millions of shares.
		shares := *vol * 1e6
		snap.Volume = &shares
	}
	snap.Week52Low = metricFloat(metrics, "52WeekLow")
	snap.Week52High = metricFloat(metrics, "52WeekHigh")
	snap.TrailingPE = metricFloat(metrics, "peBasicExclExtraTTM")
	snap.DividendYield = metricFloat(metrics, "currentDividendYieldTTM")
	snap.Beta = metricFloat(metrics, "beta")

	return snap, nil
}

// metricFloat extracts a numeric metric from the provider's sparse map.
func metricFloat(metrics map[string]interface{}, key string) *float64 {
	raw, ok := metrics[key]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
