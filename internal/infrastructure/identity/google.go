package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"findmymechanic-service/internal/domain/apperrors"
	"findmymechanic-service/pkg/logger"
)

const userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// GoogleVerifier resolves tokens issued by Google (the mobile client signs
// in through Firebase Auth). ID tokens are validated offline against the
// configured audience; opaque access tokens fall back to the userinfo
// endpoint.
type GoogleVerifier struct {
	audience string
	logger   logger.Logger
}

// NewGoogleVerifier creates a verifier for the given OAuth audience.
func NewGoogleVerifier(audience string, logger logger.Logger) *GoogleVerifier {
	return &GoogleVerifier{audience: audience, logger: logger}
}

// VerifyToken resolves a Google-issued token to the account's subject id.
func (v *GoogleVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err == nil {
		return payload.Subject, nil
	}
	v.logger.Debug("Token is not a valid ID token, trying userinfo", "error", err)

	sub, err := v.userinfoSubject(ctx, token)
	if err != nil {
		return "", apperrors.Authorizationf("token rejected by identity provider: %v", err)
	}
	return sub, nil
}

// userinfoSubject exchanges an opaque access token for the account subject.
func (v *GoogleVerifier) userinfoSubject(ctx context.Context, accessToken string) (string, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo returned %s", resp.Status)
	}

	var info struct {
		Sub string `json:"sub"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}
	if info.Sub == "" {
		return "", fmt.Errorf("userinfo response has no subject")
	}
	return info.Sub, nil
}
