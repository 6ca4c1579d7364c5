package main

import (
	"fmt"
	"strings"

	"moodplayer/internal/catalog"
	"moodplayer/internal/dayphase"
	"moodplayer/internal/factors"
	"moodplayer/internal/jukebox"
	"moodplayer/internal/mood"
	"moodplayer/internal/player"
	"moodplayer/internal/recent"
	"moodplayer/internal/schedule"
	"moodplayer/internal/selector"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type setupFunc func() (*app, error)

func newScheduleCmd(setup setupFunc) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{schedule.ArgSchedule},
		Short:   "Sample today's playback times and install them in the crontab",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			today := a.clock.Now()
			sampler := schedule.NewSampler(a.cfg.Settings.Schedule)
			hours := sampler.SampleDay(today, a.rng)

			a.logger.Info("Sampled playback times",
				zap.Bool("weekend", factors.IsWeekend(today)),
				zap.Int("plays_per_day", sampler.PlaysPerDay()),
				zap.Float64s("hours", hours))

			installer := schedule.NewInstaller(schedule.InstallerConfig{
				Script:      a.cfg.PlayerScript,
				Mpg123Path:  a.cfg.Mpg123Path,
				SilencePath: a.cfg.SilencePath,
			}, schedule.ExecRunner{}, a.logger)

			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), installer.Crontab(today, hours))
				return nil
			}
			return installer.Install(cmd.Context(), today, hours)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the crontab instead of installing it")
	return cmd
}

func newPlayCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "play",
		Aliases: []string{schedule.ArgPlay},
		Short:   "Pick a track for the current mood and play it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if err := a.cfg.RequirePlayback(); err != nil {
				return err
			}

			log := selector.NewFileLog(a.cfg.SelectionLogPath)
			defer log.Close()

			j, err := a.newJukebox(log)
			if err != nil {
				return err
			}

			_, err = j.PlayOnce(cmd.Context())
			return err
		},
	}
}

func newPickCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Show which track would play now without playing or recording it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			if err := a.cfg.RequireCatalog(); err != nil {
				return err
			}

			j, err := a.newJukebox(nil)
			if err != nil {
				return err
			}

			pick, err := j.Pick(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Track:     %d %s (%s)\n", pick.Result.Index, pick.Result.Track.Name, pick.File)
			fmt.Fprintf(out, "Distance:  %.4f (%d finalists)\n", pick.Result.Distance, len(pick.Result.Finalists))
			fmt.Fprintf(out, "Season:    %s, %s\n", pick.Factors.Time.Season, dayphase.PhaseForHour(pick.Factors.Time.Hour))
			fmt.Fprintf(out, "Mood:      %s\n", formatMood(pick.Mood))
			return nil
		},
	}
}

const catalogLong = `List the catalog and group its tracks by mood.

Grouping seeds k-means from its own random source, so group membership
can vary between runs and is not controlled by --seed.`

func newCatalogCmd(setup setupFunc) *cobra.Command {
	var groups int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the catalog and group its tracks by mood",
		Long:  catalogLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			tracks, err := a.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, t := range tracks {
				fmt.Fprintf(out, "%3d  %-32s %s\n", i, t.Name, formatMood(t.Mood))
			}

			grouped, err := catalog.GroupByMood(tracks, groups)
			if err != nil {
				a.logger.Warn("Unable to group catalog", zap.Error(err))
				return nil
			}

			fmt.Fprintln(out)
			for _, g := range grouped {
				fmt.Fprintf(out, "%-12s %v\n", g.Dominant, g.Indices)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&groups, "groups", catalog.DefaultGroups, "number of mood groups")
	return cmd
}

func (a *app) loadCatalog() ([]catalog.Track, error) {
	if err := a.cfg.RequireCatalog(); err != nil {
		return nil, err
	}

	tracks, err := catalog.Load(a.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Catalog loaded",
		zap.String("path", a.cfg.CatalogPath),
		zap.Int("tracks", len(tracks)))

	return catalog.CheckCount(tracks, a.cfg.CatalogExpectedCount, a.logger), nil
}

func (a *app) newGatherer() *factors.Gatherer {
	g := factors.NewGatherer(a.clock, a.logger)
	g.Market = factors.NewMarketClient(a.cfg.UserAgent)
	g.Retrograde = factors.NewRetrogradeClient(a.cfg.UserAgent)

	if a.cfg.HasLocation {
		g.Weather = factors.NewWeatherClient(a.cfg.Latitude, a.cfg.Longitude, a.cfg.UserAgent)
		g.Daylight = dayphase.NewCalculator(a.cfg.Latitude, a.cfg.Longitude, a.logger)
	} else {
		a.logger.Warn("LAT and LONG not set, weather will be neutral")
	}
	return g
}

// newJukebox wires the playback cycle. log may be nil to skip the selection log.
func (a *app) newJukebox(log selector.SelectionLog) (*jukebox.Jukebox, error) {
	tracks, err := a.loadCatalog()
	if err != nil {
		return nil, err
	}

	sel := selector.New(a.cfg.Settings.Selector, a.logger)
	if log != nil {
		sel.Log = log
	}

	return jukebox.New(jukebox.Options{
		Tracks:    tracks,
		AlbumPath: a.cfg.AlbumPath,
		Factors:   a.newGatherer(),
		Selector:  sel,
		Store:     recent.NewStore(a.cfg.RecentPlaysPath, a.logger),
		Player:    player.NewMpg123(a.cfg.Mpg123Path, a.logger),
		Clock:     a.clock,
		Rand:      a.rng,
	}, a.logger), nil
}

func formatMood(v mood.Vector) string {
	parts := make([]string, 0, mood.NumAxes)
	for _, axis := range mood.Axes {
		parts = append(parts, fmt.Sprintf("%s=%.2f", axis, v[axis]))
	}
	return strings.Join(parts, " ")
}
