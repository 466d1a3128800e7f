package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spolify/spolify/internal/api"
	"github.com/spolify/spolify/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in and stores the session marker locally.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	user, err := controllers.SignIn(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}

	r.logger.Info("signed in", "user", user.Username)
	return r.writePlain("✓ Signed in as %s\n", user.Username)
}

// AuthLogout ends the backend session and clears the local marker.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	if err := controllers.SignOut(ctx); err != nil {
		r.logger.Warn("backend logout failed, local marker cleared anyway", "err", err)
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthSignup registers a new account. It does not sign the account in.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	user, err := controllers.SignUp(ctx, api.SignupData{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Name:     cmd.String("name"),
		Surname:  cmd.String("surname"),
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	return r.writePlain("✓ Account created for %s, run: spolify auth login\n", user.Username)
}

// AuthStatus asks the backend whether the session cookie is still valid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	controllers, err := r.controllers()
	if err != nil {
		return err
	}

	user, err := controllers.Restore(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return r.writePlain("✗ Not signed in\n")
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	return r.writePlain("✓ Signed in as %s\n", user.Username)
}
