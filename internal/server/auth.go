package server

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/securecookie"
	"golang.org/x/oauth2"

	"github.com/streakd/streakd/internal/config"
	"github.com/streakd/streakd/internal/logger"
	"github.com/streakd/streakd/internal/storage"
)

const (
	sessionMaxAge = 24 * time.Hour
	apiKeyPrefix  = "sk_live_"
)

type userCtxKey struct{}

type User struct {
	Subject string
	Email   string
	UserID  string
	Claims  map[string]any
}

// authenticator resolves a verified user identity from a request: session
// cookie, API key, or OIDC bearer token. Handlers never see token mechanics,
// only the User in the request context.
type authenticator struct {
	cfg   *config.Config
	store storage.Store

	providerName  string
	oauth2Cfg     *oauth2.Config
	idVerifier    *oidc.IDTokenVerifier
	sessionCookie *securecookie.SecureCookie
	state         *stateStore
}

func newAuthenticator(cfg *config.Config, store storage.Store) (*authenticator, error) {
	hashKey := securecookie.GenerateRandomKey(64)
	blockKey := securecookie.GenerateRandomKey(32)
	if hashKey == nil || blockKey == nil {
		return nil, fmt.Errorf("failed to generate secure cookie keys")
	}
	sessionCookie := securecookie.New(hashKey, blockKey)
	sessionCookie.MaxAge(int(sessionMaxAge.Seconds()))

	a := &authenticator{
		cfg:           cfg,
		store:         store,
		sessionCookie: sessionCookie,
		state:         newStateStore(5 * time.Minute),
	}

	// API-key-only deployments leave the issuer unset.
	if cfg.OIDCProvider.IssuerURL != "" {
		p := cfg.OIDCProvider
		logger.Info("Configuring OIDC provider", "name", p.Name, "issuer", p.IssuerURL)
		prov, err := oidc.NewProvider(context.Background(), p.IssuerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
		}
		a.providerName = p.Name
		a.idVerifier = prov.Verifier(&oidc.Config{ClientID: p.ClientID})
		a.oauth2Cfg = &oauth2.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			Endpoint:     prov.Endpoint(),
			RedirectURL:  p.RedirectURL,
			Scopes:       p.Scopes,
		}
	}

	return a, nil
}

func (a *authenticator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rawIDToken string

		// 1) Session cookie
		if c, err := r.Cookie("session"); err == nil {
			if err := a.sessionCookie.Decode("session", c.Value, &rawIDToken); err != nil {
				logger.Debug("Failed to decode session cookie", "error", err)
				rawIDToken = ""
			}
		}

		// 2) Bearer token: API key or OIDC ID token
		if rawIDToken == "" {
			if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
				token := strings.TrimPrefix(ah, "Bearer ")
				if strings.HasPrefix(token, apiKeyPrefix) {
					if user, ok := a.authenticateAPIKey(token); ok {
						recordAuthEvent("verification", "success_apikey")
						next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, user)))
						return
					}
					recordAuthEvent("verification", "failed_apikey")
					a.handleAuthFailure(w, r, false)
					return
				}
				rawIDToken = token
			}
		}

		if rawIDToken == "" || a.idVerifier == nil {
			recordAuthEvent("verification", "missing_token")
			a.handleAuthFailure(w, r, false)
			return
		}

		// 3) Verify with the OIDC provider
		idTok, err := a.idVerifier.Verify(r.Context(), rawIDToken)
		if err != nil {
			logger.Debug("ID token verification failed", "error", err)
			recordAuthEvent("verification", "failed")
			a.handleAuthFailure(w, r, true)
			return
		}
		recordAuthEvent("verification", "success")

		var claims map[string]any
		if err := idTok.Claims(&claims); err != nil {
			logger.Error("Failed to extract claims from token", "error", err)
			a.handleAuthFailure(w, r, true)
			return
		}
		u := &User{
			Subject: idTok.Subject,
			Email:   strClaim(claims, "email"),
			UserID:  userIDFromClaims(claims),
			Claims:  claims,
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, u)))
	})
}

func (a *authenticator) authenticateAPIKey(apiKey string) (*User, bool) {
	keyHash := hashAPIKey(apiKey)

	userID, found, err := a.store.GetAPIKey(keyHash)
	if err != nil {
		logger.Error("Failed to look up API key", "error", err)
		return nil, false
	}
	if !found {
		logger.Debug("API key not found", "key_hash", truncateHash(keyHash))
		return nil, false
	}

	return &User{
		UserID:  userID,
		Subject: "apikey:" + truncateHash(keyHash),
		Claims:  map[string]any{"auth_method": "api_key"},
	}, true
}

func (a *authenticator) handleAuthFailure(w http.ResponseWriter, r *http.Request, clearCookie bool) {
	if clearCookie {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	}

	accept := r.Header.Get("Accept")
	if r.Method == http.MethodGet && strings.Contains(accept, "text/html") {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}
	if clearCookie {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	} else {
		w.Header().Set("WWW-Authenticate", `Bearer realm="streakd"`)
	}
	writeError(w, http.StatusUnauthorized, "authentication required")
}

func hashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return fmt.Sprintf("%x", hash)
}

func truncateHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func strClaim(m map[string]any, k string) string {
	if v, ok := m[k].(string); ok {
		return v
	}
	return ""
}

// userIDFromClaims derives a stable user ID from issuer and subject, so the
// same identity always maps to the same storage bucket.
func userIDFromClaims(claims map[string]any) string {
	iss, ok := claims["iss"].(string)
	if !ok {
		return ""
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return ""
	}

	hash := sha256.Sum256([]byte(iss + "|" + sub))
	return fmt.Sprintf("user-%x", hash[:8])
}

type stateStore struct {
	ttl time.Duration
	mu  sync.Mutex
	m   map[string]authState
}

type authState struct {
	Verifier string
	Return   string
	ExpireAt time.Time
}

func newStateStore(ttl time.Duration) *stateStore {
	s := &stateStore{ttl: ttl, m: make(map[string]authState)}
	go func() { // janitor
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			s.mu.Lock()
			for k, v := range s.m {
				if now.After(v.ExpireAt) {
					delete(s.m, k)
				}
			}
			s.mu.Unlock()
		}
	}()
	return s
}

func (s *stateStore) Put(key string, st authState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = st
}

func (s *stateStore) GetAndDelete(key string) (authState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	if ok && time.Now().After(st.ExpireAt) {
		return authState{}, false
	}
	return st, ok
}
