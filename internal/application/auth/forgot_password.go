package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

type ForgotPasswordInput struct {
	Email string
}

// ForgotPassword opens a reset flow: it persists the secret's hash and expiry
// on the identity, then delivers the plaintext secret by email. Delivery
// failure rolls the reset state back so no unusable flow is left dangling.
type ForgotPassword struct {
	identities ports.IdentityStore
	mailer     ports.Mailer
	from       string
	resetURL   string
	window     time.Duration
}

func NewForgotPassword(identities ports.IdentityStore, mailer ports.Mailer, from, resetURL string, window time.Duration) *ForgotPassword {
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &ForgotPassword{
		identities: identities,
		mailer:     mailer,
		from:       from,
		resetURL:   resetURL,
		window:     window,
	}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) error {
	identity, err := uc.identities.FindByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if identity == nil {
		return domerrors.ErrNotFound
	}

	secret, hash, expiresAt, err := GenerateResetSecret(uc.window)
	if err != nil {
		return err
	}
	identity.SetResetToken(hash, expiresAt)
	if err := uc.identities.Save(ctx, identity); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/%s", uc.resetURL, secret)
	body := fmt.Sprintf(
		"To reset your password, send a PATCH request with your new password to %s\n"+
			"The link expires in %d minutes. If you didn't forget your password, ignore this email.",
		resetLink, int(uc.window.Minutes()))
	if err := uc.mailer.Send(ctx, uc.from, identity.Email, "Your password reset token", body); err != nil {
		// Compensating action: never leave reset state behind that the
		// user has no secret for.
		identity.ClearResetToken()
		if saveErr := uc.identities.Save(ctx, identity); saveErr != nil {
			return saveErr
		}
		return domerrors.ErrDeliveryFailed
	}
	return nil
}
