package google

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// withTestServers points the package-level endpoint vars at httptest servers
// for the duration of a test.
func withTestServers(t *testing.T, token, userinfo http.HandlerFunc) {
	t.Helper()

	tokenSrv := httptest.NewServer(token)
	userinfoSrv := httptest.NewServer(userinfo)
	t.Cleanup(tokenSrv.Close)
	t.Cleanup(userinfoSrv.Close)

	origToken, origUserinfo := tokenURL, userinfoURL
	tokenURL = tokenSrv.URL
	userinfoURL = userinfoSrv.URL
	t.Cleanup(func() {
		tokenURL = origToken
		userinfoURL = origUserinfo
	})
}

func newTestVerifier() *Verifier {
	return NewVerifier("client-id", "client-secret", "http://localhost/callback", slog.Default())
}

func TestVerifyCode_Success(t *testing.T) {
	withTestServers(t,
		func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			if got := r.Form.Get("code"); got != "auth-code" {
				t.Errorf("code: got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer at-123" {
				t.Errorf("authorization: got %q", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"g-1","email":"ana@example.com","verified_email":true,"name":"Ana","picture":"https://img/p.jpg"}`))
		},
	)

	identity, err := newTestVerifier().VerifyCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Email != "ana@example.com" || identity.ProviderID != "g-1" {
		t.Errorf("identity: %+v", identity)
	}
	if identity.DisplayName == nil || *identity.DisplayName != "Ana" {
		t.Errorf("display name: %v", identity.DisplayName)
	}
	if identity.PhotoURL == nil || *identity.PhotoURL != "https://img/p.jpg" {
		t.Errorf("photo url: %v", identity.PhotoURL)
	}
}

func TestVerifyCode_UnverifiedEmail(t *testing.T) {
	withTestServers(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"at-123"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"g-1","email":"ana@example.com","verified_email":false}`))
		},
	)

	if _, err := newTestVerifier().VerifyCode(context.Background(), "auth-code"); err == nil {
		t.Fatal("expected error for unverified email")
	}
}

func TestVerifyCode_InvalidCode(t *testing.T) {
	withTestServers(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"expired"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("userinfo must not be called when the exchange fails")
		},
	)

	if _, err := newTestVerifier().VerifyCode(context.Background(), "stale-code"); err == nil {
		t.Fatal("expected error for invalid code")
	}
}

func TestVerifyCode_RetriesOn5xx(t *testing.T) {
	attempts := 0
	withTestServers(t,
		func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"access_token":"at-123"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"g-1","email":"ana@example.com","verified_email":true}`))
		},
	)

	identity, err := newTestVerifier().VerifyCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts: got %d, want 2", attempts)
	}
	if identity.DisplayName != nil || identity.PhotoURL != nil {
		t.Error("optional fields must stay nil when absent")
	}
}

func TestVerifyCode_MissingUserinfoFields(t *testing.T) {
	withTestServers(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"at-123"}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"email":"","id":""}`))
		},
	)

	if _, err := newTestVerifier().VerifyCode(context.Background(), "auth-code"); err == nil {
		t.Fatal("expected error for missing userinfo fields")
	}
}
