package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodiez/directory/internal/api/http/handlers"
	"github.com/foodiez/directory/internal/auth"
	"github.com/foodiez/directory/internal/config"
	"github.com/foodiez/directory/internal/events"
	"github.com/foodiez/directory/internal/observability"
	"github.com/foodiez/directory/internal/repository/memory"
	"github.com/foodiez/directory/internal/service"
)

type testServer struct {
	app     *fiber.App
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	vault := auth.NewVault(bcrypt.MinCost)
	tokens := auth.NewTokenManager("router-test-secret", 10)

	identities := service.NewIdentityStore(config.IdentityConfig{}, service.IdentityDependencies{
		UserRepo:       store.Users(),
		AdminRepo:      store.Admins(),
		RestaurantRepo: store.Restaurants(),
		Logger:         logger,
	})
	registration := service.NewRegistrationService("42admin", service.RegistrationDependencies{
		Identities: identities,
		Vault:      vault,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authn, err := service.NewAuthenticationService(service.AuthenticationDependencies{
		Identities: identities,
		Vault:      vault,
		Tokens:     tokens,
		Logger:     logger,
	})
	require.NoError(t, err)
	restaurants := service.NewRestaurantService(config.SearchConfig{}, service.RestaurantDependencies{
		Identities:     identities,
		RestaurantRepo: store.Restaurants(),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("foodiez", "test", map[string]handlers.Dependency{}),
		Users:          handlers.NewUsersHandler(registration, authn, service.NewProfileService(identities, nil, logger)),
		Admins:         handlers.NewAdminsHandler(registration, authn),
		Restaurants:    handlers.NewRestaurantsHandler(restaurants),
		Reviews:        handlers.NewReviewsHandler(service.NewReviewService(store.Reviews(), dispatcher, logger)),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, identities),
	})
	return &testServer{app: app, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

type authData struct {
	User  map[string]any `json:"user"`
	Admin map[string]any `json:"admin"`
	Auth  struct {
		Token string `json:"token"`
	} `json:"auth"`
}

func (s *testServer) registerUser(t *testing.T, name, email, password string) authData {
	t.Helper()
	status, raw := s.do(t, fiber.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	var data authData
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &data))
	return data
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	first := s.registerUser(t, "Jane Doe", "jane@x.com", "secret1")
	assert.Equal(t, "jane-doe", first.User["slug"])
	assert.NotEmpty(t, first.Auth.Token)
	assert.NotContains(t, first.User, "password_hash")

	second := s.registerUser(t, "Jane Doe", "jane2@x.com", "secret2")
	assert.Equal(t, "jane-doe-2", second.User["slug"])

	status, raw := s.do(t, fiber.MethodPost, "/register", map[string]string{
		"name": "Dup", "email": "JANE@x.com", "password": "pw",
	}, "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_EMAIL", decode(t, raw).Error.Code)

	status, raw = s.do(t, fiber.MethodPost, "/login", map[string]string{
		"email": "jane@x.com", "password": "secret1",
	}, "")
	require.Equal(t, fiber.StatusOK, status, string(raw))
	var data authData
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &data))
	assert.Equal(t, "Jane Doe", data.User["name"])
	assert.NotEmpty(t, data.Auth.Token)
}

func TestLoginFailuresRenderIdentically(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "Jane Doe", "jane@x.com", "secret1")

	wrongStatus, wrongBody := s.do(t, fiber.MethodPost, "/login", map[string]string{
		"email": "jane@x.com", "password": "wrong",
	}, "")
	unknownStatus, unknownBody := s.do(t, fiber.MethodPost, "/login", map[string]string{
		"email": "nobody@x.com", "password": "x",
	}, "")

	assert.Equal(t, fiber.StatusUnauthorized, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.JSONEq(t, string(wrongBody), string(unknownBody))
}

func TestAdminRegistrationGate(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodPost, "/admin/register", map[string]string{
		"name": "Root2", "email": "root2@x.com", "password": "pw", "code": "wrongcode",
	}, "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "INVALID_ADMIN_CODE", decode(t, raw).Error.Code)

	status, raw = s.do(t, fiber.MethodPost, "/admin/register", map[string]string{
		"name": "Root", "email": "root@x.com", "password": "pw", "code": "42admin",
	}, "")
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	status, raw = s.do(t, fiber.MethodPost, "/admin/login", map[string]string{
		"email": "root@x.com", "password": "pw",
	}, "")
	require.Equal(t, fiber.StatusOK, status, string(raw))
	var data authData
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &data))
	assert.Equal(t, "ADMIN", data.Admin["kind"])

	status, _ = s.do(t, fiber.MethodGet, "/admin/me", nil, data.Auth.Token)
	assert.Equal(t, fiber.StatusOK, status)

	user := s.registerUser(t, "Jane", "jane@x.com", "pw")
	status, _ = s.do(t, fiber.MethodGet, "/admin/me", nil, user.Auth.Token)
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = s.do(t, fiber.MethodGet, "/me", nil, user.Auth.Token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRestaurantsAndSearch(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerUser(t, "Owner", "owner@x.com", "pw")

	status, _ := s.do(t, fiber.MethodPost, "/restaurants", map[string]string{"name": "xa.by"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	for _, name := range []string{"xa.by", "axby", "Noodle Bar"} {
		status, raw := s.do(t, fiber.MethodPost, "/restaurants", map[string]string{"name": name}, owner.Auth.Token)
		require.Equal(t, fiber.StatusCreated, status, string(raw))
	}

	status, raw := s.do(t, fiber.MethodGet, "/restaurants/noodle-bar", nil, "")
	require.Equal(t, fiber.StatusOK, status, string(raw))
	var found map[string]any
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &found))
	assert.Equal(t, "Noodle Bar", found["name"])

	status, _ = s.do(t, fiber.MethodGet, "/restaurants/"+found["id"].(string), nil, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, raw = s.do(t, fiber.MethodGet, "/restaurants/unknown", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode(t, raw).Error.Code)

	var matches []map[string]any
	status, raw = s.do(t, fiber.MethodGet, "/search?keyword=a.b", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "xa.by", matches[0]["name"])

	status, raw = s.do(t, fiber.MethodPost, "/search", map[string]string{"keyword": "NOODLE"}, "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "noodle-bar", matches[0]["slug"])

	status, raw = s.do(t, fiber.MethodGet, "/", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &matches))
	assert.Len(t, matches, 3)
}

func TestSearchToleratesInvalidUTF8(t *testing.T) {
	s := newTestServer(t)
	owner := s.registerUser(t, "Owner", "owner@x.com", "pw")
	status, raw := s.do(t, fiber.MethodPost, "/restaurants", map[string]string{"name": "Cafe Ole"}, owner.Auth.Token)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	var matches []map[string]any
	status, raw = s.do(t, fiber.MethodGet, "/search?keyword=caf%ff", nil, "")
	require.Equal(t, fiber.StatusOK, status, string(raw))
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Cafe Ole", matches[0]["name"])

	req := httptest.NewRequest(fiber.MethodPost, "/search", strings.NewReader("keyword=%ff"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestReviewsAndProfile(t *testing.T) {
	s := newTestServer(t)
	author := s.registerUser(t, "Jane Doe", "jane@x.com", "pw")

	status, raw := s.do(t, fiber.MethodPost, "/reviews", map[string]string{
		"title": "Great noodles", "description": "would eat again",
	}, author.Auth.Token)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	status, raw = s.do(t, fiber.MethodPost, "/reviews", map[string]string{"title": ""}, author.Auth.Token)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "MALFORMED_INPUT", decode(t, raw).Error.Code)

	status, raw = s.do(t, fiber.MethodGet, "/reviews", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Jane Doe", reviews[0]["author"].(map[string]any)["name"])

	status, raw = s.do(t, fiber.MethodGet, "/profile/jane-doe", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotContains(t, string(raw), "jane@x.com")

	status, _ = s.do(t, fiber.MethodGet, "/profile/ghost", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, fiber.MethodGet, "/health/live", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = s.do(t, fiber.MethodGet, "/health/ready", nil, "")
	assert.Equal(t, fiber.StatusOK, status)

	requests, _ := s.metrics.Snapshot()
	assert.Equal(t, int64(1), requests["/health/live|GET|200"])
}
