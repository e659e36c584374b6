// ABOUTME: End-to-end tests for the HTTP API over a real SQLite store
// ABOUTME: Covers login, bearer-token enforcement, and the team CRUD scenarios

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxsoftware/equipos-api/internal/auth"
	"github.com/duxsoftware/equipos-api/internal/store"
	"github.com/duxsoftware/equipos-api/internal/teams"
	"github.com/duxsoftware/equipos-api/internal/users"
)

var apiTestSecret = []byte("api-handler-test-secret-32bytes!")

type testServer struct {
	srv   *Server
	store *store.SQLiteStore
	codec *auth.TokenCodec
}

// setupServer builds the full API stack on a temporary database and seeds
// the default user.
func setupServer(t *testing.T) *testServer {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	codec, err := auth.NewTokenCodec(apiTestSecret, time.Hour)
	require.NoError(t, err)

	userSvc := users.NewService(st)
	require.NoError(t, userSvc.EnsureDefaultUser(context.Background()))

	gate := auth.NewGate(userSvc, codec)
	teamSvc := teams.NewService(st)

	return &testServer{
		srv:   NewServer(gate, teamSvc, userSvc, codec),
		store: st,
		codec: codec,
	}
}

// do performs a request against the server, optionally with a bearer token
// and JSON body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	return rec
}

// login obtains a token for the seeded default user.
func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/auth/login", "", AuthRequest{Username: "test", Password: "12345"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin_Success(t *testing.T) {
	ts := setupServer(t)

	token := ts.login(t)

	claims, err := ts.codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "test", claims.Username)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := setupServer(t)

	tests := []struct {
		name string
		body AuthRequest
	}{
		{name: "wrong password", body: AuthRequest{Username: "test", Password: "wrong"}},
		{name: "unknown user", body: AuthRequest{Username: "ghost", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Credenciales inválidas", body["mensaje"])
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	ts := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEquipos_RequireAuth(t *testing.T) {
	ts := setupServer(t)

	// No Authorization header
	rec := ts.do(t, http.MethodGet, "/equipos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token for a disabled user
	disabled := &store.User{
		Username: "disabled", PasswordHash: "hash",
		Enabled: false, AccountNonLocked: true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ts.store.CreateUser(context.Background(), disabled))
	token, err := ts.codec.Issue("disabled", time.Now())
	require.NoError(t, err)

	rec = ts.do(t, http.MethodGet, "/equipos", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token
	rec = ts.do(t, http.MethodGet, "/equipos", ts.login(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz_Public(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateTeam_Scenario(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/equipos", token,
		TeamRequest{Nombre: "Ajax", Liga: "Eredivisie", Pais: "Países Bajos"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ajax", created.Nombre)
	assert.Equal(t, "Eredivisie", created.Liga)
	assert.Equal(t, "Países Bajos", created.Pais)

	// Subsequent GET returns the same values
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/equipos/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}

func TestCreateTeam_Validation(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	tests := []struct {
		name       string
		body       TeamRequest
		wantFields []string
	}{
		{
			name:       "blank nombre",
			body:       TeamRequest{Nombre: "  ", Liga: "LaLiga", Pais: "España"},
			wantFields: []string{"nombre"},
		},
		{
			name:       "missing liga",
			body:       TeamRequest{Nombre: "Sevilla", Pais: "España"},
			wantFields: []string{"liga"},
		},
		{
			name:       "all blank",
			body:       TeamRequest{},
			wantFields: []string{"nombre", "liga", "pais"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/equipos", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var fields map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}

	// Nothing was persisted
	rec := ts.do(t, http.MethodGet, "/equipos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	assert.Empty(t, teams)
}

func TestUpdateTeam_Scenario(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/equipos", token,
		TeamRequest{Nombre: "Old Name", Liga: "Old Liga", Pais: "Old Pais"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/equipos/%d", created.ID), token,
		TeamRequest{Nombre: "PSG", Liga: "Ligue 1", Pais: "Francia"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "PSG", updated.Nombre)
	assert.Equal(t, "Ligue 1", updated.Liga)
	assert.Equal(t, "Francia", updated.Pais)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/equipos/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, updated, got)
}

func TestTeam_NotFound(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "get missing id", method: http.MethodGet, path: "/equipos/999"},
		{name: "get non-numeric id", method: http.MethodGet, path: "/equipos/abc"},
		{
			name: "update missing id", method: http.MethodPut, path: "/equipos/999",
			body: TeamRequest{Nombre: "X", Liga: "Y", Pais: "Z"},
		},
		{name: "delete missing id", method: http.MethodDelete, path: "/equipos/999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.path, token, tt.body)
			require.Equal(t, http.StatusNotFound, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Recurso no encontrado", body["error"])
		})
	}
}

func TestDeleteTeam(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodPost, "/equipos", token,
		TeamRequest{Nombre: "Ajax", Liga: "Eredivisie", Pais: "Países Bajos"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/equipos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/equipos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchTeams(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	for _, r := range []TeamRequest{
		{Nombre: "Real Madrid", Liga: "LaLiga", Pais: "España"},
		{Nombre: "Real Sociedad", Liga: "LaLiga", Pais: "España"},
		{Nombre: "Liverpool", Liga: "Premier League", Pais: "Inglaterra"},
	} {
		rec := ts.do(t, http.MethodPost, "/equipos", token, r)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/equipos/buscar?nombre=real", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var teams []TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Real Madrid", teams[0].Nombre)
	assert.Equal(t, "Real Sociedad", teams[1].Nombre)
}

func TestListTeams_EmptyIsArray(t *testing.T) {
	ts := setupServer(t)
	token := ts.login(t)

	rec := ts.do(t, http.MethodGet, "/equipos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
