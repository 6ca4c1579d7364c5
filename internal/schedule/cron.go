package schedule

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DailySchedule re-runs scheduling at midnight
const DailySchedule = "0 0 * * *"

// keepAliveSchedule plays silence to keep the audio sink awake
const keepAliveSchedule = "*/5 * * * *"

// Script arguments understood by the player wrapper
const (
	ArgSchedule = "0"
	ArgPlay     = "1"
)

// CronSpec formats an hour-of-day as "<minute> <hour> <day> <month> *" on day's date
func CronSpec(day time.Time, hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%d %d %d %d *", m, h, day.Day(), int(day.Month()))
}

// Runner executes a command with the given stdin
type Runner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) error
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args, feeding stdin
func (ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// InstallerConfig names the commands written into the crontab
type InstallerConfig struct {
	Script      string // player wrapper invoked with ArgSchedule or ArgPlay
	Mpg123Path  string
	SilencePath string // keep-alive audio; empty disables keep-alive
}

// Installer replaces the user crontab with the day's playback jobs
type Installer struct {
	cfg    InstallerConfig
	runner Runner
	logger *zap.Logger
}

// NewInstaller creates an installer
func NewInstaller(cfg InstallerConfig, runner Runner, logger *zap.Logger) *Installer {
	if runner == nil {
		runner = ExecRunner{}
	}
	if cfg.Mpg123Path == "" {
		cfg.Mpg123Path = "mpg123"
	}
	return &Installer{
		cfg:    cfg,
		runner: runner,
		logger: logger.Named("schedule"),
	}
}

// Crontab renders the full crontab for day and the sampled hours
func (i *Installer) Crontab(day time.Time, hours []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", DailySchedule, i.cfg.Script, ArgSchedule)
	for _, h := range hours {
		fmt.Fprintf(&b, "%s %s %s\n", CronSpec(day, h), i.cfg.Script, ArgPlay)
	}
	if i.cfg.SilencePath != "" {
		fmt.Fprintf(&b, "%s %s -o pulse '%s' > ~/keep-alive-log.txt 2>&1\n",
			keepAliveSchedule, i.cfg.Mpg123Path, i.cfg.SilencePath)
	}
	return b.String()
}

// Install writes the crontab in a single replace so a failure leaves the previous one intact
func (i *Installer) Install(ctx context.Context, day time.Time, hours []float64) error {
	content := i.Crontab(day, hours)

	if err := i.runner.Run(ctx, content, "crontab", "-"); err != nil {
		return fmt.Errorf("failed to install crontab: %w", err)
	}

	i.logger.Info("Crontab installed",
		zap.Int("plays", len(hours)),
		zap.Bool("keep_alive", i.cfg.SilencePath != ""),
		zap.String("day", day.Format("2006-01-02")))
	return nil
}
