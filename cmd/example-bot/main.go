// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// example-bot is a small Matrix bot built on botkit. It joins rooms it
// is invited to and answers !hello_world, !echo, !about and !help.
//
// Usage:
//
//	example-bot [--config path]
//
// The configuration file defaults to config.yml; BOTKIT_CONFIG names it
// when --config is not given. BOTKIT_LOG_LEVEL and BOTKIT_LOG_FORMAT
// control logging on stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/botkit/lib/bot"
	"github.com/bureau-foundation/botkit/lib/config"
	"github.com/bureau-foundation/botkit/lib/extension"
	"github.com/bureau-foundation/botkit/lib/process"
	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/lib/router"
	"github.com/bureau-foundation/botkit/lib/secret"
	"github.com/bureau-foundation/botkit/lib/syncstore"
	"github.com/bureau-foundation/botkit/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

func run(args []string) error {
	var (
		configPath  string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("example-bot", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "config.yml", "path to the bot configuration file (YAML, or .json/.jsonc)")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		fmt.Printf("example-bot %s\n", version.Info())
		return nil
	}

	environment, err := config.ParseEnvironment()
	if err != nil {
		return err
	}
	if !flagSet.Changed("config") && environment.ConfigPath != "" {
		configPath = environment.ConfigPath
	}

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	userID, err := cfg.UserID()
	if err != nil {
		return err
	}

	logger, err := newLogger(environment)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := process.SignalContext(context.Background())
	defer stop()

	_, session, err := bot.Login(ctx, bot.LoginConfig{
		HomeserverURL: cfg.HomeserverURL,
		UserID:        userID,
		Password:      passwordSource(cfg, userID),
		DeviceName:    cfg.DeviceName,
		SessionDir:    cfg.SessionPath,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	defer session.Close()
	logger.Info("logged in", "user_id", session.UserID(), "device_id", session.DeviceID())

	store, err := syncstore.Open(cfg.StorePath, logger)
	if err != nil {
		return err
	}

	snapshot := withIdentityDefaults(cfg.Snapshot())
	table, err := buildCommandTable(snapshot)
	if err != nil {
		return fmt.Errorf("building command table: %w", err)
	}

	b, err := bot.New(bot.Config{
		Session: session,
		Router:  router.New(table),
		Store:   store,
		Prepare: func(extensions *extension.Map) {
			extension.Insert(extensions, snapshot)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}

	logger.Info("bot running",
		"bot_name", snapshot.BotName,
		"commands", len(table.Entries()),
		"version", version.Info(),
	)
	return b.Run(ctx)
}

func newLogger(environment config.Environment) (*slog.Logger, error) {
	level, err := environment.Level()
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: level}
	if environment.LogFormat == config.LogFormatText {
		return slog.New(slog.NewTextHandler(os.Stderr, options)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options)), nil
}

// passwordSource reads the password from the configuration, the
// password file, or an interactive prompt, in that order.
func passwordSource(cfg *config.Config, userID ref.UserID) func() (*secret.Buffer, error) {
	return func() (*secret.Buffer, error) {
		switch {
		case cfg.Password != "":
			return secret.NewFromString(cfg.Password)
		case cfg.PasswordFile != "":
			return secret.ReadFromPath(cfg.PasswordFile)
		default:
			return secret.Prompt(os.Stdin, os.Stderr, fmt.Sprintf("Password for %s: ", userID))
		}
	}
}
