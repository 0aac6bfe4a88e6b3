// Package google exchanges Google OAuth authorization codes for verified
// user identities.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sipalaciosv/dupe/internal/auth"
)

var (
	// Made variables for testing purposes
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Verifier exchanges Google OAuth authorization codes for user identity.
type Verifier struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
	log          *slog.Logger
}

// NewVerifier creates a Google OAuth verifier.
// Parameters come from config.AuthConfig: GoogleClientID, GoogleClientSecret, GoogleRedirectURI.
func NewVerifier(clientID, clientSecret, redirectURI string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "google_oauth"),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// VerifyCode exchanges an authorization code for user identity.
// The email must be verified on the Google side.
func (v *Verifier) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	accessToken, err := v.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	userinfo, err := v.fetchUserinfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !userinfo.VerifiedEmail {
		return nil, fmt.Errorf("oauth: email not verified")
	}

	identity := &auth.OAuthIdentity{
		Email:      userinfo.Email,
		ProviderID: userinfo.ID,
	}
	if userinfo.Name != "" {
		identity.DisplayName = &userinfo.Name
	}
	if userinfo.Picture != "" {
		identity.PhotoURL = &userinfo.Picture
	}

	v.log.DebugContext(ctx, "google oauth success", slog.String("email", userinfo.Email))

	return identity, nil
}

// exchangeCode exchanges the authorization code for an access token.
func (v *Verifier) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", v.clientID)
	data.Set("client_secret", v.clientSecret)
	data.Set("redirect_uri", v.redirectURI)

	encodedData := data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(encodedData))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// GetBody lets the retry replay the form body.
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encodedData)), nil
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("oauth: google unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("oauth: failed to read token response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			v.log.ErrorContext(ctx, "google oauth token exchange failed",
				slog.Int("status", resp.StatusCode),
				slog.String("error", errResp.Error))

			// 400 errors are typically invalid/expired codes
			if resp.StatusCode == http.StatusBadRequest {
				return "", fmt.Errorf("oauth: invalid or expired code")
			}
		}

		v.log.ErrorContext(ctx, "google oauth token exchange failed", slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("oauth: google unavailable")
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("oauth: invalid token response")
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("oauth: invalid token response")
	}

	return tokenResp.AccessToken, nil
}

// fetchUserinfo fetches user information using the access token.
func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}

	var userinfo userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&userinfo); err != nil {
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}
	if userinfo.ID == "" || userinfo.Email == "" {
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}

	return &userinfo, nil
}

// doWithRetry executes an HTTP request, retrying once on 5xx or network
// errors with a 500ms context-aware backoff. POST bodies must be replayable
// via req.GetBody.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		resp, err = v.httpClient.Do(req)
	}

	return resp, err
}
