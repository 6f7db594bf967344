package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/market-api/internal/config"
)

func newClient() *GitHubClient {
	return NewGitHubClient(&config.Config{
		GitHubClientID:    "client-id",
		GitHubRedirectURL: "http://localhost:8080/api/auth/github/callback",
	})
}

func TestAuthorizeURLCarriesStateAndScopes(t *testing.T) {
	g := newClient()

	raw := g.AuthorizeURL()
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "read:user user:email", q.Get("scope"))
	assert.NotEmpty(t, q.Get("state"))

	// the state it just minted validates
	assert.True(t, g.ValidateState(q.Get("state")))
}

func TestStateIsSingleUse(t *testing.T) {
	g := newClient()

	parsed, err := url.Parse(g.AuthorizeURL())
	require.NoError(t, err)
	state := parsed.Query().Get("state")

	assert.True(t, g.ValidateState(state))
	assert.False(t, g.ValidateState(state), "second use must fail")
}

func TestUnknownStateRejected(t *testing.T) {
	g := newClient()
	assert.False(t, g.ValidateState("never-issued"))
}

func TestStatesAreUniquePerRequest(t *testing.T) {
	g := newClient()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		parsed, err := url.Parse(g.AuthorizeURL())
		require.NoError(t, err)
		state := parsed.Query().Get("state")
		assert.False(t, seen[state])
		seen[state] = true
	}
}
