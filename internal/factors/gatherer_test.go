package factors

import (
	"context"
	"errors"
	"testing"
	"time"

	"moodplayer/internal/clock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWeather struct {
	w   Weather
	err error
}

func (f fakeWeather) Weather(ctx context.Context) (Weather, error) { return f.w, f.err }

type fakeMarket struct {
	m   Market
	err error
}

func (f fakeMarket) Market(ctx context.Context) (Market, error) { return f.m, f.err }

type fakeRetrograde struct {
	r   bool
	err error
}

func (f fakeRetrograde) Retrograde(ctx context.Context) (bool, error) { return f.r, f.err }

type fixedDaylight bool

func (d fixedDaylight) IsDaytime(time.Time) bool { return bool(d) }

func TestGatherer_AllSources(t *testing.T) {
	now := time.Date(2026, time.July, 4, 15, 45, 0, 0, time.UTC)
	g := NewGatherer(clock.NewMockClock(now), zap.NewNop())
	g.Weather = fakeWeather{w: Weather{Temperature: 88, IsDaytime: true, ShortForecast: "Sunny"}}
	g.Market = fakeMarket{m: Market{EquityChange: 0.4, CryptoChange: 1.2}}
	g.Retrograde = fakeRetrograde{r: true}

	f := g.Gather(context.Background())

	assert.Equal(t, 88, f.Weather.Temperature)
	assert.Equal(t, Time{Hour: 15, Minute: 45, Day: 4, Month: 7, Year: 2026, Season: SeasonSummer}, f.Time)
	assert.Equal(t, Market{EquityChange: 0.4, CryptoChange: 1.2}, f.Market)
	assert.True(t, f.Retrograde)
}

func TestGatherer_DegradesFailedSources(t *testing.T) {
	now := time.Date(2026, time.January, 10, 23, 0, 0, 0, time.UTC)
	g := NewGatherer(clock.NewMockClock(now), zap.NewNop())
	g.Weather = fakeWeather{err: errors.New("timeout")}
	g.Market = fakeMarket{err: errors.New("rate limited")}
	g.Retrograde = fakeRetrograde{r: true, err: errors.New("unreachable")}
	g.Daylight = fixedDaylight(true)

	f := g.Gather(context.Background())

	assert.Equal(t, Weather{Temperature: neutralTemperature, IsDaytime: true}, f.Weather)
	assert.Equal(t, Market{}, f.Market)
	assert.False(t, f.Retrograde, "failed retrograde lookup resolves to false")
	assert.Equal(t, SeasonWinter, f.Time.Season)
}

func TestGatherer_NoSources(t *testing.T) {
	now := time.Date(2026, time.April, 1, 2, 0, 0, 0, time.UTC)
	g := NewGatherer(clock.NewMockClock(now), zap.NewNop())

	f := g.Gather(context.Background())

	assert.False(t, f.Weather.IsDaytime, "2am is night without a daylight calculator")
	assert.False(t, f.Retrograde)
	assert.Equal(t, SeasonSpring, f.Time.Season)
}
