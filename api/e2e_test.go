package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideahub/ideahub-backend/auth"
	"github.com/ideahub/ideahub-backend/models"
)

// newTestRouter wires the real routes and middleware over in-memory stores.
func newTestRouter() (*chi.Mux, *fakeUserStore, *fakeProjectStore) {
	tokens := auth.NewTokenIssuer("test-secret")
	users := newFakeUserStore()
	projects := newFakeProjectStore(users)

	handlers := &routeHandlers{
		userHandler:    newUserHandler(users, tokens, false),
		projectHandler: newProjectHandler(projects, users),
	}

	router := chi.NewRouter()
	setupRoutes(router, handlers, newAuthMiddleware(tokens))
	return router, users, projects
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, decodeEnvelope(t, rec)
}

func TestRegisterLoginCreateFetchDeleteFlow(t *testing.T) {
	router, _, _ := newTestRouter()

	// Register user A.
	rec, env := doJSON(t, router, http.MethodPost, "/users",
		`{"username":"a","email":"a@x.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var registered struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	require.NotEmpty(t, registered.Token)

	// Login as A and capture the session cookie.
	rec, env = doJSON(t, router, http.MethodPost, "/users/login",
		`{"email":"a@x.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]

	// Creating without the cookie is rejected at the gate.
	rec, _ = doJSON(t, router, http.MethodPost, "/projects", `{}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Create a project with valid fields.
	body := fmt.Sprintf(
		`{"name":"idea board","description":"collect ideas","difficulty":"easy","user":%q,"stack":[{"frontend":"react","backend":"go","api":"rest"}]}`,
		registered.User.ID,
	)
	rec, env = doJSON(t, router, http.MethodPost, "/projects", body, session)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Fetching it back returns the same fields; no auth needed for reads.
	rec, env = doJSON(t, router, http.MethodGet, "/projects/"+created.Project.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched struct {
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.Project.ID, fetched.Project.ID)
	assert.Equal(t, "idea board", fetched.Project.Name)
	assert.Equal(t, created.Project.Stack, fetched.Project.Stack)

	// Delete as A succeeds; deleting again answers not found.
	rec, _ = doJSON(t, router, http.MethodDelete, "/projects/"+created.Project.ID.String(), "", session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodDelete, "/projects/"+created.Project.ID.String(), "", session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListingRequiresAuthForUsersOnly(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodGet, "/projects", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
