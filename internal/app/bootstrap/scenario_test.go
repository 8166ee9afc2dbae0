package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// apiClient drives the full router the way the browser client does.
type apiClient struct {
	t *testing.T
	h http.Handler
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.SetupIndexedDB(t)
	h, err := BuildHandler(&config.CoreConfig{Env: "dev"}, validAppConfig(),
		DBDeps{MongoClient: db.Client(), MongoDatabase: db}, zap.NewNop())
	require.NoError(t, err)
	return &apiClient{t: t, h: h}
}

func (c *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	req := testutil.NewJSONRequest(c.t, method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its token and id.
func (c *apiClient) register(username string) (token, id string) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password-" + username,
		"name":     username,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"_id"`
		} `json:"user"`
	}
	testutil.DecodeJSON(c.t, rec, &body)
	return body.Token, body.User.ID
}

type idStatus struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
	Host   struct {
		ID string `json:"_id"`
	} `json:"host"`
}

func TestScenario_JoinAcceptCreateTask(t *testing.T) {
	c := newAPIClient(t)
	hostTok, hostID := c.register("host")
	uTok, _ := c.register("member")
	u2Tok, _ := c.register("outsider")

	rec := c.do(http.MethodPost, "/activities", hostTok, map[string]any{
		"title":       "Watershed Study",
		"description": "Sample the creek monthly",
		"type":        "Research",
		"startDate":   "2024-01-01",
		"endDate":     "2024-06-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var act idStatus
	testutil.DecodeJSON(t, rec, &act)
	assert.Equal(t, "active", act.Status)
	assert.Equal(t, hostID, act.Host.ID)

	rec = c.do(http.MethodPost, "/activities/"+act.ID+"/join", uTok, map[string]string{"role": "primary"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var req idStatus
	testutil.DecodeJSON(t, rec, &req)
	assert.Equal(t, "pending", req.Status)

	// Host cannot join their own activity.
	rec = c.do(http.MethodPost, "/activities/"+act.ID+"/join", hostTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A non-host cannot see or resolve requests.
	rec = c.do(http.MethodGet, "/activities/"+act.ID+"/requests", u2Tok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPut, "/activities/"+act.ID+"/requests/"+req.ID, hostTok, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resolved idStatus
	testutil.DecodeJSON(t, rec, &resolved)
	assert.Equal(t, "active", resolved.Status, "accepted is stored as active")

	rec = c.do(http.MethodPost, "/tasks", uTok, map[string]string{"title": "Buy sample jars", "activity": act.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var task idStatus
	testutil.DecodeJSON(t, rec, &task)
	assert.Equal(t, "pending", task.Status)

	rec = c.do(http.MethodPut, "/tasks/"+task.ID, u2Tok, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPut, "/tasks/"+task.ID, uTok, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodDelete, "/tasks/"+task.ID, uTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScenario_RejectedUserCannotRejoin(t *testing.T) {
	c := newAPIClient(t)
	hostTok, _ := c.register("host")
	uTok, _ := c.register("applicant")

	rec := c.do(http.MethodPost, "/activities", hostTok, map[string]any{
		"title":       "Morning Run",
		"description": "5k loop",
		"type":        "Sports",
		"startDate":   "2024-03-01T07:00:00Z",
		"endDate":     "2024-03-31T07:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var act idStatus
	testutil.DecodeJSON(t, rec, &act)

	rec = c.do(http.MethodPost, "/activities/"+act.ID+"/join", uTok, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var req idStatus
	testutil.DecodeJSON(t, rec, &req)

	rec = c.do(http.MethodPut, "/activities/"+act.ID+"/requests/"+req.ID, hostTok, map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/activities/"+act.ID+"/join", uTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
