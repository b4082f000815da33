package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestKeywords(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{response: "Guitar, Music Lessons, Acoustic, guitar"}
	app := newTestApp(t, db, &fakeSender{}, gen)
	token := tokenFor(t, createTestUser(t, db, "Alice", "alice@example.com"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", token, map[string]string{
		"title":       "Guitar Lessons",
		"description": "Acoustic guitar for beginners",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		SuggestedKeywords []string `json:"suggested_keywords"`
		RawResponse       string   `json:"raw_response"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []string{"Guitar", "Music Lessons", "Acoustic"}, body.SuggestedKeywords)
	assert.NotEmpty(t, body.RawResponse)

	gen.mu.Lock()
	prompt := gen.lastPrompt
	gen.mu.Unlock()
	assert.Contains(t, prompt, "Guitar Lessons")
	assert.Contains(t, prompt, "Acoustic guitar for beginners")
}

func TestSuggestKeywordsValidation(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, &fakeSender{}, &fakeGenerator{response: "a, b, c"})
	token := tokenFor(t, createTestUser(t, db, "Alice", "alice@example.com"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", token,
		map[string]string{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", token,
		map[string]string{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", "",
		map[string]string{"title": "Guitar"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSuggestKeywordsUpstreamFailure(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, &fakeSender{}, &fakeGenerator{err: errors.New("model overloaded")})
	token := tokenFor(t, createTestUser(t, db, "Alice", "alice@example.com"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", token,
		map[string]string{"title": "Guitar Lessons"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSuggestKeywordsNotConfigured(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db, &fakeSender{}, nil)
	token := tokenFor(t, createTestUser(t, db, "Alice", "alice@example.com"))

	resp := doRequest(t, app, http.MethodPost, "/api/v1/ai/suggest-keywords", token,
		map[string]string{"title": "Guitar Lessons"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
