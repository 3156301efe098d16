package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open("file::memory:?_pragma=foreign_keys(1)"),
		database.Config(logger.Default.LogMode(logger.Silent)),
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.UserRole, active bool) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FullName:     username,
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newAuthApp(t *testing.T) (*fiber.App, *auth.JWTManager, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	jwtManager := auth.NewJWTManager(auth.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "test"})
	m := NewAuthMiddleware(jwtManager, db)

	app := fiber.New()
	app.Get("/me", m.Required(), func(c *fiber.Ctx) error {
		id, _ := GetUserID(c)
		return c.SendString(strconv.FormatUint(uint64(id), 10))
	})
	app.Get("/admin", m.Required(), m.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/maybe", m.Optional(), func(c *fiber.Ctx) error {
		if _, ok := GetUser(c); ok {
			return c.SendString("user")
		}
		return c.SendString("anonymous")
	})
	return app, jwtManager, db
}

func bearer(t *testing.T, jm *auth.JWTManager, u *model.User) string {
	t.Helper()
	token, _, err := jm.GenerateAccessToken(u.ID, u.Username, string(u.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

func doGet(t *testing.T, app *fiber.App, path, authorization string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequired(t *testing.T) {
	app, jm, db := newAuthApp(t)
	active := seedUser(t, db, "editor", model.RoleEditor, true)
	disabled := seedUser(t, db, "gone", model.RoleAdmin, false)

	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "Token abc"))
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", "Bearer not-a-jwt"))
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", bearer(t, jm, disabled)))
	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/me", bearer(t, jm, active)))
}

func TestRequiredRejectsTokenFromOtherIssuer(t *testing.T) {
	app, _, db := newAuthApp(t)
	u := seedUser(t, db, "editor", model.RoleEditor, true)

	other := auth.NewJWTManager(auth.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "someone-else"})
	assert.Equal(t, fiber.StatusUnauthorized, doGet(t, app, "/me", bearer(t, other, u)))
}

func TestRequireAdmin(t *testing.T) {
	app, jm, db := newAuthApp(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin, true)
	editor := seedUser(t, db, "editor", model.RoleEditor, true)

	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/admin", bearer(t, jm, admin)))
	assert.Equal(t, fiber.StatusForbidden, doGet(t, app, "/admin", bearer(t, jm, editor)))
}

func TestRequireRoleUsesStoredRole(t *testing.T) {
	app, jm, db := newAuthApp(t)
	u := seedUser(t, db, "promoted", model.RoleEditor, true)
	token := bearer(t, jm, u)

	require.NoError(t, db.Model(u).Update("role", model.RoleAdmin).Error)
	assert.Equal(t, fiber.StatusOK, doGet(t, app, "/admin", token))
}

func TestOptional(t *testing.T) {
	app, jm, db := newAuthApp(t)
	u := seedUser(t, db, "editor", model.RoleEditor, true)

	for _, tc := range []struct {
		header string
		want   string
	}{
		{"", "anonymous"},
		{"Bearer junk", "anonymous"},
		{bearer(t, jm, u), "user"},
	} {
		req := httptest.NewRequest("GET", "/maybe", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		body := make([]byte, 16)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, tc.want, string(body[:n]))
	}
}

// memoryStore is an AttemptStore backed by maps.
type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = expiration
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
		delete(m.ttls, k)
	}
	return nil
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func (m *memoryStore) IncrementWithWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	n, _ := strconv.ParseInt(m.values[key], 10, 64)
	n++
	m.values[key] = strconv.FormatInt(n, 10)
	if _, ok := m.ttls[key]; !ok {
		m.ttls[key] = window
	}
	return n, nil
}

func (m *memoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	return m.ttls[key], nil
}

func TestLockoutFor(t *testing.T) {
	assert.Equal(t, time.Duration(0), lockoutFor(4))
	assert.Equal(t, 2*time.Minute, lockoutFor(5))
	assert.Equal(t, time.Hour, lockoutFor(10))
	assert.Equal(t, 24*time.Hour, lockoutFor(25))
}

func TestBruteForceLocksAfterRepeatedFailures(t *testing.T) {
	store := newMemoryStore()
	bf := NewBruteForceProtection(store)

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		if c.Query("ok") == "1" {
			_ = bf.RecordSuccessfulAttempt(c, c.IP())
			return c.SendStatus(fiber.StatusOK)
		}
		_ = bf.RecordFailedAttempt(c, c.IP(), "admin")
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	post := func(path string) *http.Response {
		resp, err := app.Test(httptest.NewRequest("POST", path, nil))
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusUnauthorized, post("/login").StatusCode)
	}

	locked := post("/login?ok=1")
	assert.Equal(t, fiber.StatusTooManyRequests, locked.StatusCode)
	assert.Equal(t, "120", locked.Header.Get(fiber.HeaderRetryAfter))
	for key, ttl := range store.ttls {
		if strings.HasPrefix(key, "brute_force:attempts:") {
			assert.Equal(t, AttemptWindow, ttl)
		}
	}
}

func TestBruteForceSuccessClearsAttempts(t *testing.T) {
	store := newMemoryStore()
	bf := NewBruteForceProtection(store)

	app := fiber.New()
	app.Post("/fail", func(c *fiber.Ctx) error {
		return bf.RecordFailedAttempt(c, "10.0.0.1", "admin")
	})
	app.Post("/ok", func(c *fiber.Ctx) error {
		return bf.RecordSuccessfulAttempt(c, "10.0.0.1")
	})
	app.Get("/count", func(c *fiber.Ctx) error {
		n, err := bf.GetAttemptCount(c, "10.0.0.1")
		if err != nil {
			return err
		}
		return c.SendString(strconv.Itoa(n))
	})

	read := func() string {
		resp, err := app.Test(httptest.NewRequest("GET", "/count", nil))
		require.NoError(t, err)
		body := make([]byte, 8)
		n, _ := resp.Body.Read(body)
		return string(body[:n])
	}

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("POST", "/fail", nil))
		require.NoError(t, err)
	}
	assert.Equal(t, "3", read())

	_, err := app.Test(httptest.NewRequest("POST", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, "0", read())
}

func TestBruteForceWithoutStoreAllowsEverything(t *testing.T) {
	bf := NewBruteForceProtection(nil)

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		require.NoError(t, bf.RecordFailedAttempt(c, c.IP(), "admin"))
		locked, err := bf.IsIPLocked(c, c.IP())
		require.NoError(t, err)
		assert.False(t, locked)
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	for i := 0; i < 30; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}
