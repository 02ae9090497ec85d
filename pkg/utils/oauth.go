package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/shift-cover/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".shift-cover/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
)

// ScopeSheetsReadonly is the only Google scope needed: schedules are read, never written
const ScopeSheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"

// requiredScopes returns all scopes required by the application
func requiredScopes() []string {
	return []string{ScopeSheetsReadonly}
}

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// TokenFlow obtains a Sheets token for one environment, reusing the stored token
// when it is still usable and falling back to a browser authorization otherwise
type TokenFlow struct {
	Config *oauth2.Config
	Env    string
	Logger *zap.Logger

	// Addr is the callback listener address, ":3000" when empty
	Addr string
}

// Tokens are cached per environment for the life of the process. The mutex also
// keeps two interactive commands from opening competing browser flows.
var (
	tokenCache   = map[string]*oauth2.Token{}
	tokenCacheMu sync.Mutex
)

// Token returns a valid token, running the browser flow if nothing stored can be used
func (f *TokenFlow) Token(ctx context.Context) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if cached := tokenCache[f.Env]; cached != nil && cached.Valid() {
		return cached, nil
	}

	if token := f.storedToken(ctx); token != nil {
		tokenCache[f.Env] = token
		return token, nil
	}

	token, err := f.authorize(ctx)
	if err != nil {
		return nil, err
	}

	if err := SaveTokenToFile(f.Env, token); err != nil {
		f.Logger.Warn("Failed to save token, it will only last for this session", zap.Error(err))
	}
	tokenCache[f.Env] = token
	return token, nil
}

// storedToken loads the token file and returns it, refreshed if needed, when it
// still carries every required scope. A stored token that fails the scope check
// is deleted so the next flow starts clean.
func (f *TokenFlow) storedToken(ctx context.Context) *oauth2.Token {
	stored, err := LoadTokenFromFile(f.Env)
	if err != nil {
		f.Logger.Warn("Failed to load stored token", zap.Error(err))
		return nil
	}
	if stored == nil {
		return nil
	}

	token := stored
	refreshed := false
	if !stored.Valid() {
		if stored.RefreshToken == "" {
			return nil
		}
		token, err = f.Config.TokenSource(ctx, stored).Token()
		if err != nil {
			f.Logger.Warn("Failed to refresh stored token", zap.Error(err))
			return nil
		}
		refreshed = true
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		f.Logger.Warn("Stored token rejected, starting a new authorization", zap.Error(err))
		if err := DeleteTokenFile(f.Env); err != nil {
			f.Logger.Warn("Failed to delete stored token", zap.Error(err))
		}
		return nil
	}

	if refreshed {
		f.Logger.Info("Token refreshed")
		if err := SaveTokenToFile(f.Env, token); err != nil {
			f.Logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
	}
	return token
}

// authorize runs the browser consent flow and exchanges the returned code
func (f *TokenFlow) authorize(ctx context.Context) (*oauth2.Token, error) {
	state := uuid.NewString()
	authURL := f.Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	f.Logger.Info("No usable token found, visit this URL to authorize the application", zap.String("url", authURL))

	code, err := f.awaitCallback(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := f.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	return token, nil
}

// awaitCallback serves the redirect on a mux owned by this flow until a code
// arrives, the handler reports an error or the timeout passes
func (f *TokenFlow) awaitCallback(ctx context.Context, state string) (string, error) {
	addr := f.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", AuthPort)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen for oauth callback on %s: %w", addr, err)
	}

	codes := make(chan string, 1)
	errs := make(chan error, 1)

	mux := http.NewServeMux()
	mux.Handle(callbackPath, callbackHandler(state, codes, errs))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errs <- fmt.Errorf("callback server error: %w", err):
			default:
			}
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			f.Logger.Debug("Callback server shutdown", zap.Error(err))
		}
	}()

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	select {
	case code := <-codes:
		return code, nil
	case err := <-errs:
		return "", err
	case <-timeout.C:
		return "", fmt.Errorf("authorization timeout after %v", authTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// callbackHandler accepts the first redirect carrying the expected state. The
// outcome is delivered on codes or errs; both channels need a buffer of one and
// later requests are answered without blocking.
func callbackHandler(state string, codes chan<- string, errs chan<- error) http.Handler {
	var once sync.Once
	deliver := func(fn func()) {
		once.Do(fn)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if got := query.Get("state"); got != state {
			http.Error(w, "Authorization failed: state mismatch", http.StatusBadRequest)
			deliver(func() { errs <- fmt.Errorf("oauth callback state mismatch") })
			return
		}
		if denied := query.Get("error"); denied != "" {
			http.Error(w, "Authorization denied", http.StatusForbidden)
			deliver(func() { errs <- fmt.Errorf("authorization denied: %s", denied) })
			return
		}
		code := query.Get("code")
		if code == "" {
			http.Error(w, "Authorization failed: no code", http.StatusBadRequest)
			deliver(func() { errs <- fmt.Errorf("no authorization code received") })
			return
		}

		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, `<html><head><title>Shift Cover</title></head>`+
			`<body><h1>Authorization successful</h1><p>You can close this window and return to the terminal.</p></body></html>`)
		deliver(func() { codes <- code })
	})
}

// validateTokenScopes checks the token's granted scopes against Google's tokeninfo endpoint
func validateTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if missing := missingScopes(tokenInfo.Scope); len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}

	return nil
}

// missingScopes returns the required scopes absent from a space-separated granted scope list
func missingScopes(granted string) []string {
	grantedScopes := strings.Fields(granted)
	var missing []string
	for _, required := range requiredScopes() {
		if !slices.Contains(grantedScopes, required) {
			missing = append(missing, required)
		}
	}
	return missing
}

// tokenFilePath returns the token file for an environment under the user's home
func tokenFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName, fmt.Sprintf("token-%s.json", env)), nil
}

// LoadTokenFromFile loads the stored token for an environment.
// A missing file returns nil without an error.
func LoadTokenFromFile(env string) (*oauth2.Token, error) {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// SaveTokenToFile stores a token for an environment, readable by the owner only
func SaveTokenToFile(env string, token *oauth2.Token) error {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(tokenPath), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(tokenPath, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// DeleteTokenFile removes the stored token for an environment
func DeleteTokenFile(env string) error {
	tokenPath, err := tokenFilePath(env)
	if err != nil {
		return err
	}

	if err := os.Remove(tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}

	return nil
}
