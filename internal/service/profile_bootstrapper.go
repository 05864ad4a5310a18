package service

import (
	"context"
	"errors"

	"energy-marketplace/internal/core/domain"
	"energy-marketplace/internal/core/ports"
	"energy-marketplace/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProfileReader looks up an account's profile; nil, nil means it has none.
type ProfileReader interface {
	Profile(ctx context.Context, account string) (*domain.UserProfile, error)
}

// ProfileBootstrapper starts profile creation at most once per session and account.
type ProfileBootstrapper struct {
	profiles ProfileReader
	attempts ports.AttemptStore
	log      zerolog.Logger
}

// NewProfileBootstrapper creates a new profile bootstrapper.
func NewProfileBootstrapper(profiles ProfileReader, attempts ports.AttemptStore, log zerolog.Logger) *ProfileBootstrapper {
	return &ProfileBootstrapper{
		profiles: profiles,
		attempts: attempts,
		log:      log,
	}
}

// Ensure returns the account's profile when it exists. Otherwise the first caller
// for (sessionID, account) starts a create_profile action on ctrl; later and
// concurrent callers get an empty result. While ctrl is busy nothing is marked,
// so a later call can still make the attempt.
func (b *ProfileBootstrapper) Ensure(ctx context.Context, sessionID uuid.UUID, account string, ctrl *LifecycleController) (*ports.BootstrapResult, error) {
	if account == "" {
		return nil, apperror.ErrNoConnectedAccount()
	}

	profile, err := b.profiles.Profile(ctx, account)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return &ports.BootstrapResult{Profile: profile}, nil
	}
	if ctrl.InFlight() {
		return &ports.BootstrapResult{}, nil
	}

	first, err := b.attempts.MarkAttempted(ctx, sessionID, account)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if !first {
		return &ports.BootstrapResult{}, nil
	}

	st, err := ctrl.Start(ctx, account, domain.Action{Kind: domain.ActionCreateProfile})
	if err != nil {
		if relErr := b.attempts.Release(ctx, sessionID, account); relErr != nil {
			b.log.Warn().Err(relErr).Str("account", account).Msg("bootstrap: failed to release attempt mark")
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrActionInFlight().Code {
			return &ports.BootstrapResult{}, nil
		}
		return nil, err
	}

	b.log.Info().Str("session_id", sessionID.String()).Str("account", account).Msg("bootstrap: profile creation started")
	return &ports.BootstrapResult{Attempted: true, State: &st}, nil
}
