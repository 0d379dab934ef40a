package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withReleaseServer(t *testing.T, status int, body string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	prev := latestReleaseURL
	latestReleaseURL = server.URL
	t.Cleanup(func() {
		latestReleaseURL = prev
		server.Close()
	})
}

func TestCheck_Outdated(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	result, err := Check(context.Background(), "1.1.0")
	require.NoError(t, err)
	assert.True(t, result.Outdated)
	assert.Equal(t, "1.2.0", result.Latest)
	assert.Equal(t, "1.1.0", result.Current)
}

func TestCheck_UpToDate(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	result, err := Check(context.Background(), "v1.2.0")
	require.NoError(t, err)
	assert.False(t, result.Outdated)
}

func TestCheck_DevBuild(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `{"tag_name": "v1.2.0"}`)
	result, err := Check(context.Background(), "dev")
	require.NoError(t, err)
	assert.True(t, result.CurrentIsDev)
	assert.False(t, result.Outdated)
}

func TestCheck_ServerError(t *testing.T) {
	withReleaseServer(t, http.StatusInternalServerError, "")
	_, err := Check(context.Background(), "1.0.0")
	assert.Error(t, err)
}

func TestCheck_MissingTag(t *testing.T) {
	withReleaseServer(t, http.StatusOK, `{}`)
	_, err := Check(context.Background(), "1.0.0")
	assert.Error(t, err)
}

func TestCompareSemver(t *testing.T) {
	assert.Equal(t, -1, compareSemver("1.2.3", "1.2.4"))
	assert.Equal(t, 0, compareSemver("1.2.3", "1.2.3"))
	assert.Equal(t, 1, compareSemver("2.0.0", "1.9.9"))
}
