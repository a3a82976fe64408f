package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/jusunglee/phonetics-to-hangul/internal/app"
	"github.com/jusunglee/phonetics-to-hangul/internal/bot"
	"github.com/jusunglee/phonetics-to-hangul/internal/envsetup"
	"github.com/jusunglee/phonetics-to-hangul/internal/health"
	"github.com/jusunglee/phonetics-to-hangul/internal/logger"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	if os.Getenv("DISCORD_TOKEN") == "" && envsetup.NeedsSetup(envsetup.DefaultPath) && isatty.IsTerminal(os.Stdin.Fd()) {
		saved, err := envsetup.Run(envsetup.DefaultPath)
		if err != nil {
			return fmt.Errorf("running setup wizard: %w", err)
		}
		if !saved {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("phonetics-to-hangul-bot")

	var (
		discordToken    = fs.StringLong("discord-token", "", "Discord bot token")
		guildID         = fs.StringLong("discord-guild-id", "", "Register commands to this guild only (instant updates, for development)")
		healthPort      = fs.Int64Long("health-port", 8080, "Port for /health and /metrics")
		janitorInterval = fs.DurationLong("cache-cleanup-interval", time.Hour, "How often expired cache rows are deleted")
	)
	appFlags := app.RegisterFlags(fs)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, appFlags.Config(), log)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.Repo != nil {
		go app.RunCacheJanitor(ctx, a.Repo, *janitorInterval, log)
		go app.ExportPoolStats(ctx, a.Repo, 15*time.Second)
	}

	healthServer := health.New(int(*healthPort), a.HealthChecks()...)
	go func() {
		if err := healthServer.Start(); err != nil {
			log.ErrorContext(ctx, "health server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		healthServer.Shutdown(shutdownCtx)
	}()

	session, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}

	b := bot.New(bot.NewLogger(log), bot.NewDiscordSession(session), a.Transcriber, bot.Config{GuildID: *guildID})
	return b.Run(ctx)
}
