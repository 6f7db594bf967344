package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/market-api/internal/config"
)

const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"
	githubEmailsURL    = "https://api.github.com/user/emails"
)

// GitHubUser is the provider-side identity. Email is mandatory for us:
// the system has no passwordless-without-email account shape.
type GitHubUser struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GitHubClient struct {
	clientID     string
	clientSecret string
	redirectURL  string
	http         *http.Client

	// state parameters pending callback, for CSRF protection
	states map[string]time.Time
	mu     sync.Mutex
}

func NewGitHubClient(cfg *config.Config) *GitHubClient {
	return &GitHubClient{
		clientID:     cfg.GitHubClientID,
		clientSecret: cfg.GitHubClientSecret,
		redirectURL:  cfg.GitHubRedirectURL,
		http:         &http.Client{Timeout: 10 * time.Second},
		states:       make(map[string]time.Time),
	}
}

// AuthorizeURL generates a fresh state and builds the provider
// redirect. States expire after 10 minutes and are single-use.
func (g *GitHubClient) AuthorizeURL() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	state := hex.EncodeToString(buf)

	g.mu.Lock()
	now := time.Now()
	for s, exp := range g.states {
		if now.After(exp) {
			delete(g.states, s)
		}
	}
	g.states[state] = now.Add(10 * time.Minute)
	g.mu.Unlock()

	params := url.Values{}
	params.Set("client_id", g.clientID)
	params.Set("redirect_uri", g.redirectURL)
	params.Set("scope", "read:user user:email")
	params.Set("state", state)

	return githubAuthorizeURL + "?" + params.Encode()
}

func (g *GitHubClient) ValidateState(state string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	exp, ok := g.states[state]
	if !ok {
		return false
	}
	delete(g.states, state)
	return time.Now().Before(exp)
}

// Exchange trades the callback code for an access token.
func (g *GitHubClient) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", g.redirectURL)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, githubTokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("github token exchange failed: %s", payload.Error)
	}
	return payload.AccessToken, nil
}

// FetchUser loads the provider profile. GitHub hides the email on the
// profile when the user marks it private, so the verified primary email
// is resolved through /user/emails in that case.
func (g *GitHubClient) FetchUser(ctx context.Context, token string) (*GitHubUser, error) {
	var user GitHubUser
	if err := g.getJSON(ctx, githubUserURL, token, &user); err != nil {
		return nil, err
	}

	if user.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := g.getJSON(ctx, githubEmailsURL, token, &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					user.Email = e.Email
					break
				}
			}
		}
	}

	return &user, nil
}

func (g *GitHubClient) getJSON(ctx context.Context, rawURL, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s returned %d", rawURL, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
