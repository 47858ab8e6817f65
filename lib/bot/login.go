// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/botkit/lib/ref"
	"github.com/bureau-foundation/botkit/lib/secret"
	"github.com/bureau-foundation/botkit/lib/sessionstore"
	"github.com/bureau-foundation/botkit/messaging"
)

// ErrPasswordRequired is returned by Login when no usable session is
// saved and LoginConfig.Password is nil.
var ErrPasswordRequired = errors.New("bot: no saved session and no password available")

// LoginConfig configures Login.
type LoginConfig struct {
	HomeserverURL string
	UserID        ref.UserID

	// Password supplies the password when a fresh login is needed. It
	// is called at most once, and only when the saved session is
	// missing or rejected. Login closes the returned buffer.
	Password func() (*secret.Buffer, error)

	// DeviceName is the display name for a newly created device.
	DeviceName string

	// SessionDir holds session.json.
	SessionDir string

	// HTTPClient is passed to the Matrix client. If nil,
	// http.DefaultClient is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Login returns an authenticated session for config.UserID. A saved
// session for the same user and homeserver is reused when the
// homeserver still accepts its token. Otherwise the bot logs in with
// the password and the new session is saved before returning.
//
// A saved token is only discarded when the homeserver rejects it.
// Other WhoAmI failures (network errors, 5xx) are returned so a flaky
// homeserver does not mint a new device on every restart.
//
// The caller must Close the returned session.
func Login(ctx context.Context, config LoginConfig) (*messaging.Client, *messaging.DirectSession, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := messaging.NewClient(messaging.ClientConfig{
		HomeserverURL: config.HomeserverURL,
		HTTPClient:    config.HTTPClient,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("bot: creating matrix client: %w", err)
	}

	session, err := restoreSession(ctx, client, config, logger)
	if err != nil {
		return nil, nil, err
	}
	if session != nil {
		return client, session, nil
	}

	if config.Password == nil {
		return nil, nil, ErrPasswordRequired
	}
	password, err := config.Password()
	if err != nil {
		return nil, nil, fmt.Errorf("bot: reading password: %w", err)
	}
	defer password.Close()

	session, err = client.Login(ctx, config.UserID.String(), password, config.DeviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("bot: %w", err)
	}

	saved := sessionstore.Session{
		Homeserver:  client.Homeserver(),
		AccessToken: session.AccessToken(),
		UserID:      session.UserID(),
		DeviceID:    session.DeviceID(),
	}
	if err := sessionstore.Save(saved, config.SessionDir); err != nil {
		session.Close()
		return nil, nil, fmt.Errorf("bot: saving session: %w", err)
	}
	logger.Info("saved new session",
		"path", sessionstore.Path(config.SessionDir),
		"device_id", session.DeviceID(),
	)
	return client, session, nil
}

// restoreSession returns the saved session when it is still valid, nil
// when a fresh login is needed, or an error that should stop startup.
func restoreSession(ctx context.Context, client *messaging.Client, config LoginConfig, logger *slog.Logger) (*messaging.DirectSession, error) {
	saved, found, err := sessionstore.Load(config.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("bot: loading saved session: %w", err)
	}
	if !found || !saved.Valid() {
		return nil, nil
	}
	if saved.UserID != config.UserID || saved.Homeserver != client.Homeserver() {
		logger.Info("saved session is for a different account, logging in again",
			"saved_user_id", saved.UserID,
			"saved_homeserver", saved.Homeserver,
		)
		return nil, nil
	}

	session, err := client.SessionFromToken(saved.UserID, saved.AccessToken, saved.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("bot: restoring session: %w", err)
	}

	owner, err := session.WhoAmI(ctx)
	if err != nil {
		session.Close()
		if messaging.IsAuthError(err) {
			logger.Info("saved access token was rejected, logging in again", "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("bot: verifying saved session: %w", err)
	}
	if owner != config.UserID {
		session.Close()
		logger.Warn("saved access token belongs to another user, logging in again", "owner", owner)
		return nil, nil
	}

	logger.Info("restored saved session",
		"user_id", owner,
		"device_id", saved.DeviceID,
	)
	return session, nil
}
