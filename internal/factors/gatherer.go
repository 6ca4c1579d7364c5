package factors

import (
	"context"
	"time"

	"moodplayer/internal/clock"

	"go.uber.org/zap"
)

// WeatherSource provides the current forecast
type WeatherSource interface {
	Weather(ctx context.Context) (Weather, error)
}

// MarketSource provides the current market movement
type MarketSource interface {
	Market(ctx context.Context) (Market, error)
}

// RetrogradeSource provides the retrograde flag
type RetrogradeSource interface {
	Retrograde(ctx context.Context) (bool, error)
}

// Daylight answers whether the sun is up, used when no forecast is available
type Daylight interface {
	IsDaytime(t time.Time) bool
}

// neutralTemperature maps to an even warm/nostalgic split
const neutralTemperature = 60

// Gatherer assembles an ExternalFactors snapshot. Every source is optional:
// a nil or failing source degrades to a neutral contribution.
type Gatherer struct {
	Weather    WeatherSource
	Market     MarketSource
	Retrograde RetrogradeSource
	Daylight   Daylight
	Clock      clock.Clock

	logger *zap.Logger
}

// NewGatherer creates a gatherer reading time from c
func NewGatherer(c clock.Clock, logger *zap.Logger) *Gatherer {
	return &Gatherer{
		Clock:  c,
		logger: logger.Named("factors"),
	}
}

// Gather collects a fresh snapshot. It never fails.
func (g *Gatherer) Gather(ctx context.Context) ExternalFactors {
	now := g.Clock.Now()

	f := ExternalFactors{
		Weather:    g.gatherWeather(ctx, now),
		Time:       TimeFrom(now),
		Market:     g.gatherMarket(ctx),
		Retrograde: g.gatherRetrograde(ctx),
	}

	g.logger.Info("External factors gathered",
		zap.Int("temperature", f.Weather.Temperature),
		zap.Bool("is_daytime", f.Weather.IsDaytime),
		zap.Float64("precipitation", f.Weather.PrecipitationProbability),
		zap.String("forecast", f.Weather.ShortForecast),
		zap.Int("hour", f.Time.Hour),
		zap.String("season", string(f.Time.Season)),
		zap.Float64("equity_change", f.Market.EquityChange),
		zap.Float64("crypto_change", f.Market.CryptoChange),
		zap.Bool("retrograde", f.Retrograde))

	return f
}

func (g *Gatherer) gatherWeather(ctx context.Context, now time.Time) Weather {
	if g.Weather != nil {
		w, err := g.Weather.Weather(ctx)
		if err == nil {
			return w
		}
		g.logger.Warn("Weather unavailable, using neutral forecast", zap.Error(err))
	}

	return Weather{
		Temperature: neutralTemperature,
		IsDaytime:   g.isDaytime(now),
	}
}

func (g *Gatherer) isDaytime(now time.Time) bool {
	if g.Daylight != nil {
		return g.Daylight.IsDaytime(now)
	}
	return now.Hour() >= 6 && now.Hour() < 18
}

func (g *Gatherer) gatherMarket(ctx context.Context) Market {
	if g.Market == nil {
		return Market{}
	}
	m, err := g.Market.Market(ctx)
	if err != nil {
		g.logger.Warn("Market data unavailable, assuming flat market", zap.Error(err))
		return Market{}
	}
	return m
}

func (g *Gatherer) gatherRetrograde(ctx context.Context) bool {
	if g.Retrograde == nil {
		return false
	}
	r, err := g.Retrograde.Retrograde(ctx)
	if err != nil {
		g.logger.Warn("Retrograde state unavailable, assuming direct", zap.Error(err))
		return false
	}
	return r
}
