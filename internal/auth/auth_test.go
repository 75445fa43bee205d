package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

// issue signs a token the way the hosted auth service does.
func issue(v *Verifier, userID, email, tokenID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if v.audience != "" {
		claims.Audience = jwt.ClaimStrings{v.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func TestVerify(t *testing.T) {
	v := NewVerifier("secret", "authenticated")

	token, err := issue(v, "u1", "u1@example.com", "tok-1", time.Hour)
	require.NoError(t, err)

	s, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "u1@example.com", s.Email)
	assert.Equal(t, "tok-1", s.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 5*time.Second)

	tests := []struct {
		name  string
		token func() string
	}{
		{"wrong secret", func() string {
			tok, _ := issue(NewVerifier("other", "authenticated"), "u1", "", "x", time.Hour)
			return tok
		}},
		{"wrong audience", func() string {
			tok, _ := issue(NewVerifier("secret", "service_role"), "u1", "", "x", time.Hour)
			return tok
		}},
		{"expired", func() string {
			tok, _ := issue(v, "u1", "", "x", -time.Minute)
			return tok
		}},
		{"no subject", func() string {
			tok, _ := issue(v, "", "", "x", time.Hour)
			return tok
		}},
		{"other algorithm", func() string {
			tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS384, Claims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Audience: jwt.ClaimStrings{"authenticated"}},
			}).SignedString([]byte("secret"))
			return tok
		}},
		{"garbage", func() string { return "not.a.jwt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token())
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestStoreRevoke(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	gone, err := store.Revoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, gone)

	require.NoError(t, store.Revoke(ctx, "tok-1", time.Now().Add(30*time.Minute)))
	gone, err = store.Revoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, gone)
	assert.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("session:revoked:tok-1").Seconds(), 5)

	require.NoError(t, store.Revoke(ctx, "tok-2", time.Time{}))
	assert.Equal(t, time.Hour, mr.TTL("session:revoked:tok-2"))

	// already expired tokens need no entry
	require.NoError(t, store.Revoke(ctx, "tok-3", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("session:revoked:tok-3"))
}

func newRouter(v *Verifier, store *Store, extra ...gin.HandlerFunc) *gin.Engine {
	return newRouterWith(RequireSession(v, store), extra...)
}

func newRouterWith(session gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{session}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s, _ := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user": s.UserID})
	})
	r.GET("/me", handlers...)
	return r
}

func TestRequireSession(t *testing.T) {
	v := NewVerifier("secret", "")
	store, _ := newTestStore(t)
	r := newRouter(v, store)
	token, err := issue(v, "u1", "u1@example.com", "tok-1", time.Hour)
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"u1"}`, w.Body.String())
	})

	t.Run("query parameter is ignored", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?access_token="+token, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("socket routes accept the query parameter", func(t *testing.T) {
		w := httptest.NewRecorder()
		sock := newRouterWith(RequireSocketSession(v, store))
		sock.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?access_token="+token, nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"u1"}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, store.Revoke(context.Background(), "tok-1", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type adminFunc func(ctx context.Context, userID string) (bool, error)

func (f adminFunc) IsAdmin(ctx context.Context, userID string) (bool, error) { return f(ctx, userID) }

func TestRequireAdmin(t *testing.T) {
	v := NewVerifier("secret", "")
	admins := adminFunc(func(_ context.Context, userID string) (bool, error) {
		if userID == "broken" {
			return false, errors.New("db down")
		}
		return userID == "root", nil
	})
	r := newRouter(v, nil, RequireAdmin(admins))

	for user, want := range map[string]int{
		"root":   http.StatusOK,
		"u1":     http.StatusForbidden,
		"broken": http.StatusInternalServerError,
	} {
		token, err := issue(v, user, "", user, time.Hour)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "user %s", user)
	}
}
