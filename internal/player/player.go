// Package player invokes the external audio player.
package player

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// CommandFunc builds the command for a player binary and its arguments
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Mpg123 plays files with mpg123
type Mpg123 struct {
	path    string
	command CommandFunc
	logger  *zap.Logger
}

// NewMpg123 creates a player using the given binary (default "mpg123")
func NewMpg123(path string, logger *zap.Logger) *Mpg123 {
	if path == "" {
		path = "mpg123"
	}
	return &Mpg123{
		path:    path,
		command: exec.CommandContext,
		logger:  logger.Named("player"),
	}
}

// Play blocks until the file finishes playing
func (p *Mpg123) Play(ctx context.Context, file string) error {
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("audio file unavailable: %w", err)
	}

	p.logger.Info("Playing track", zap.String("file", file))

	cmd := p.command(ctx, p.path, "-v", file)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", p.path, err)
	}
	return nil
}
