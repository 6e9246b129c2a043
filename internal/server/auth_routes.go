package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"

	"github.com/streakd/streakd/internal/logger"
)

func (a *authenticator) loginPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if a.oauth2Cfg == nil {
		fmt.Fprint(w, `<h1>Login</h1><p>No identity provider configured. Use an API key.</p>`)
		return
	}
	fmt.Fprint(w, `<h1>Login</h1><style>button{display:block;margin:10px 0;padding:10px 20px;}</style>`)
	fmt.Fprintf(w, `<form action="/auth/login/start"><button>%s</button></form>`, a.providerName)
}

func (a *authenticator) login(w http.ResponseWriter, r *http.Request) {
	if a.oauth2Cfg == nil {
		http.Error(w, "no identity provider configured", http.StatusNotFound)
		return
	}

	// PKCE challenge
	verifier := make([]byte, 48)
	if _, err := rand.Read(verifier); err != nil {
		http.Error(w, "pkce gen failed", http.StatusInternalServerError)
		return
	}
	verifierStr := base64.RawURLEncoding.EncodeToString(verifier)
	hash := sha256.Sum256([]byte(verifierStr))
	challenge := base64.RawURLEncoding.EncodeToString(hash[:])

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		http.Error(w, "state gen failed", http.StatusInternalServerError)
		return
	}
	st := hex.EncodeToString(stateBytes)

	// Keep the return path relative
	ret := r.URL.Query().Get("return")
	if ret == "" {
		ret = "/"
	} else if u, err := url.Parse(ret); err != nil || u.IsAbs() || u.Host != "" {
		ret = "/"
	}

	a.state.Put(st, authState{
		Verifier: verifierStr,
		Return:   ret,
		ExpireAt: time.Now().Add(a.state.ttl),
	})

	authURL := a.oauth2Cfg.AuthCodeURL(
		st,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (a *authenticator) callback(w http.ResponseWriter, r *http.Request) {
	if a.oauth2Cfg == nil {
		http.Error(w, "no identity provider configured", http.StatusNotFound)
		return
	}

	st := r.URL.Query().Get("state")
	if st == "" {
		http.Error(w, "missing state", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	saved, ok := a.state.GetAndDelete(st)
	if !ok || saved.Verifier == "" {
		http.Error(w, "invalid or expired state", http.StatusBadRequest)
		return
	}

	tok, err := a.oauth2Cfg.Exchange(
		r.Context(),
		code,
		oauth2.SetAuthURLParam("code_verifier", saved.Verifier),
	)
	if err != nil {
		logger.Error("OIDC code exchange failed", "error", err)
		http.Error(w, "code exchange failed", http.StatusBadGateway)
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		http.Error(w, "missing id_token", http.StatusBadGateway)
		return
	}
	if _, err := a.idVerifier.Verify(r.Context(), rawIDToken); err != nil {
		logger.Error("ID token verification failed after exchange", "error", err)
		http.Error(w, "invalid id token", http.StatusBadGateway)
		return
	}

	val, err := a.sessionCookie.Encode("session", rawIDToken)
	if err != nil {
		logger.Error("Failed to encode session cookie", "error", err)
		http.Error(w, "session encode failed", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionMaxAge.Seconds()),
	})
	recordAuthEvent("login", "success")

	http.Redirect(w, r, saved.Return, http.StatusFound)
}

func (a *authenticator) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Info("User logged out")
	w.WriteHeader(http.StatusNoContent)
}

func (a *authenticator) generateAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(userCtxKey{}).(*User)
	if !ok || user.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		writeError(w, http.StatusInternalServerError, "key generation failed")
		return
	}
	apiKey := apiKeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	if err := a.store.PutAPIKey(hashAPIKey(apiKey), user.UserID); err != nil {
		logger.Error("Failed to store API key", "user_id", user.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store API key")
		return
	}
	recordAuthEvent("apikey_generate", "success")
	logger.Info("API key generated", "user_id", user.UserID)

	// The plaintext key is shown exactly once.
	_ = writeJSON(w, http.StatusOK, map[string]string{"api_key": apiKey})
}

func (a *authenticator) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(userCtxKey{}).(*User)
	if !ok || user.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	hashes, err := a.store.ListAPIKeyHashes(user.UserID)
	if err != nil {
		logger.Error("Failed to list API keys", "user_id", user.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list API keys")
		return
	}

	keys := make([]map[string]string, 0, len(hashes))
	for _, h := range hashes {
		keys = append(keys, map[string]string{"key_hash": h})
	}
	_ = writeJSON(w, http.StatusOK, map[string][]map[string]string{"keys": keys})
}

func (a *authenticator) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(userCtxKey{}).(*User)
	if !ok || user.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	keyHash := chi.URLParam(r, "key_hash")
	if keyHash == "" {
		writeError(w, http.StatusBadRequest, "key hash is required")
		return
	}

	// Only the owner may revoke a key.
	owner, found, err := a.store.GetAPIKey(keyHash)
	if err != nil {
		logger.Error("Failed to look up API key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete API key")
		return
	}
	if !found || owner != user.UserID {
		writeError(w, http.StatusNotFound, "API key not found")
		return
	}

	if err := a.store.DeleteAPIKey(keyHash); err != nil {
		logger.Error("Failed to delete API key", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete API key")
		return
	}
	recordAuthEvent("apikey_delete", "success")
	w.WriteHeader(http.StatusNoContent)
}
