package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DaUnderlord/monday-sippin-sub000/auth"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/customerrors"
	"github.com/DaUnderlord/monday-sippin-sub000/model"
	"github.com/DaUnderlord/monday-sippin-sub000/service"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gin-gonic/gin"
	goCache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVisualizeService struct {
	creds model.Credentials
	req   model.VisualizeRequest
	spec  *model.PlaySpec
	err   error
}

func (s *stubVisualizeService) Resolve(_ context.Context, req model.VisualizeRequest, creds model.Credentials) (*model.PlaySpec, error) {
	s.req = req
	s.creds = creds
	return s.spec, s.err
}

type staticFilterStore struct {
	records []model.FilterRecord
}

func (s *staticFilterStore) FindAll(context.Context) ([]model.FilterRecord, error) {
	return s.records, nil
}

func (s *staticFilterStore) UpdateParent(_ context.Context, id, parentID string, level int) (*model.FilterRecord, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].ParentID = parentID
			s.records[i].Level = level
			return &s.records[i], nil
		}
	}
	return nil, customerrors.ErrFilterNotFound
}

func (s *staticFilterStore) UpdateLevels(context.Context, map[string]int) error {
	return nil
}

func newStaticFilterService() service.FilterService {
	store := &staticFilterStore{records: []model.FilterRecord{
		{ID: "markets", Name: "Markets"},
		{ID: "crypto", Name: "Crypto", ParentID: "markets"},
		{ID: "btc", Name: "Bitcoin", ParentID: "crypto"},
		{ID: "education", Name: "Education", OrderIndex: 1},
	}}
	return service.NewFilterService(store, goCache.New(time.Minute, time.Minute))
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return env
}

func TestVisualizeController_Success(t *testing.T) {
	_, api := humatest.New(t)
	stub := &stubVisualizeService{spec: &model.PlaySpec{
		Version: model.PlaySpecVersion,
		Symbol:  "BTC-USD",
		Entries: []model.PricePoint{{Price: 98800}},
	}}
	NewVisualizeController(stub).RegisterRoutes(api)

	resp := api.Post("/api/visualize-play",
		"Authorization: Bearer user-token",
		map[string]any{"articleId": "a-1", "content": "Entries: 98,800"})

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)

	var spec model.PlaySpec
	require.NoError(t, json.Unmarshal(env.Data, &spec))
	assert.Equal(t, "BTC-USD", spec.Symbol)
	assert.Equal(t, "Bearer user-token", stub.creds.Authorization)
	assert.Equal(t, "a-1", stub.req.ArticleID)
	assert.Equal(t, "Entries: 98,800", stub.req.Content)
}

func TestVisualizeController_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no credentials", err: customerrors.New(customerrors.ErrMissingCredentials, nil), want: http.StatusUnauthorized},
		{name: "timeout", err: customerrors.New(customerrors.ErrUpstreamTimeout, nil), want: http.StatusGatewayTimeout},
		{name: "upstream failure", err: customerrors.New(customerrors.ErrUpstreamFailure, map[string]any{"status": 500, "body": "boom"}), want: http.StatusBadGateway},
		{name: "invalid", err: customerrors.New(customerrors.ErrInvalidPlaySpec, map[string]any{"issues": []string{"version: bad"}}), want: http.StatusBadGateway},
		{name: "missing config", err: customerrors.New(customerrors.ErrMissingConfiguration, nil), want: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := humatest.New(t)
			NewVisualizeController(&stubVisualizeService{err: tt.err}).RegisterRoutes(api)

			resp := api.Post("/api/visualize-play", map[string]any{"content": "prose"})
			assert.Equal(t, tt.want, resp.Code, resp.Body.String())
		})
	}
}

func TestFilterController_TreeAndSelection(t *testing.T) {
	_, api := humatest.New(t)
	NewFilterController(newStaticFilterService(), false).RegisterRoutes(api)

	resp := api.Get("/api/filters/tree?q=bit")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var tree []*model.FilterNode
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "markets", tree[0].ID)

	resp = api.Post("/api/filters/selection", map[string]any{
		"query":  "filters=markets&filters=crypto&filters=btc",
		"action": "select",
		"id":     "education",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var sel model.SelectionResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &sel))
	assert.Equal(t, []string{"education"}, sel.Filters)
	assert.Equal(t, "filters=education", sel.Query)

	resp = api.Post("/api/filters/selection", map[string]any{"action": "select"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestFilterController_AdminRoutes(t *testing.T) {
	prev := auth.SecretKey
	auth.SetSecret("controller-secret")
	t.Cleanup(func() { auth.SecretKey = prev })

	adminToken, err := auth.GenerateToken(model.UserDto{UserID: "u-1", Role: model.RoleAdmin})
	require.NoError(t, err)
	userToken, err := auth.GenerateToken(model.UserDto{UserID: "u-2", Role: model.RoleUser})
	require.NoError(t, err)

	_, api := humatest.New(t)
	NewFilterController(newStaticFilterService(), false).RegisterRoutes(api)

	resp := api.Get("/api/filters/btc/candidate-parents")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Get("/api/filters/btc/candidate-parents", "Authorization: Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = api.Get("/api/filters/btc/candidate-parents", "Cookie: auth_token="+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = api.Patch("/api/filters/btc/parent", "Authorization: Bearer "+adminToken, map[string]any{"parentId": "btc"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = api.Patch("/api/filters/ghost/parent", "Authorization: Bearer "+adminToken, map[string]any{"parentId": "markets"})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())

	resp = api.Patch("/api/filters/btc/parent", "Authorization: Bearer "+adminToken, map[string]any{"parentId": "education"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var moved model.FilterNode
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &moved))
	assert.Equal(t, 1, moved.Level)
}

type stubArticleService struct {
	selected []string
}

func (s *stubArticleService) ListByFilters(_ context.Context, selected []string) ([]model.Article, error) {
	s.selected = selected
	return []model.Article{}, nil
}

func TestArticleController_DedupesFilters(t *testing.T) {
	_, api := humatest.New(t)
	stub := &stubArticleService{}
	NewArticleController(stub).RegisterRoutes(api)

	resp := api.Get("/api/articles?filters=markets&filters=crypto&filters=markets")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, []string{"markets", "crypto"}, stub.selected)
}

func TestHealthController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		checks map[string]HealthCheck
		method string
		want   int
	}{
		{name: "no checks", method: http.MethodGet, want: http.StatusOK},
		{name: "healthy", method: http.MethodHead, want: http.StatusOK, checks: map[string]HealthCheck{
			"mongo": func(context.Context) error { return nil },
		}},
		{name: "backend down", method: http.MethodGet, want: http.StatusServiceUnavailable, checks: map[string]HealthCheck{
			"mongo": func(context.Context) error { return nil },
			"redis": func(context.Context) error { return errors.New("refused") },
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthController(tt.checks).RegisterRoutes(r.Group("/api"))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestConfigController_UpdateSettings(t *testing.T) {
	prev := auth.SecretKey
	auth.SetSecret("controller-secret")
	t.Cleanup(func() { auth.SecretKey = prev })

	adminToken, err := auth.GenerateToken(model.UserDto{UserID: "u-1", Role: model.RoleAdmin})
	require.NoError(t, err)

	cm := config.NewConfigManager(&model.EnvConfig{})
	_, api := humatest.New(t)
	NewConfigController(service.NewConfigService(cm), false).RegisterRoutes(api)

	resp := api.Patch("/api/config/update", map[string]any{"preferAi": true})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Patch("/api/config/update", "Authorization: Bearer "+adminToken, map[string]any{"unknown": 1})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = api.Patch("/api/config/update", "Authorization: Bearer "+adminToken, map[string]any{"preferAi": true, "visualizeTimeoutSeconds": 30})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, cm.GetConfig().PreferAI)
	assert.Equal(t, 30, cm.GetConfig().VisualizeTimeoutSeconds)

	resp = api.Get("/api/config/active", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var settings model.RuntimeSettings
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &settings))
	assert.Equal(t, model.RuntimeSettings{PreferAI: true, VisualizeTimeoutSeconds: 30}, settings)
}
