package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ikeike55momo/schedule/internal/app"
	"github.com/ikeike55momo/schedule/internal/auth"
	"github.com/ikeike55momo/schedule/internal/bridge"
	"github.com/ikeike55momo/schedule/internal/config"
	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo/repotest"
)

var jst = time.FixedZone("JST", 9*60*60)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeInvoker struct {
	calls []bridge.Call
	resp  bridge.Response
	err   error
}

func (f *fakeInvoker) Invoke(_ context.Context, call bridge.Call) (bridge.Response, error) {
	f.calls = append(f.calls, call)
	return f.resp, f.err
}

type fixture struct {
	router    *gin.Engine
	schedules *repotest.Schedules
	tasks     *repotest.Tasks
	records   *repotest.TimeRecords
	documents *repotest.Documents
	allowed   *repotest.AllowedUsers
	invoker   *fakeInvoker
}

const (
	testSecret   = "test-secret"
	testAudience = "authenticated"
)

// newFixture serves the production route table over in-memory repositories.
// "root" is the only administrator.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := &fixture{
		schedules: &repotest.Schedules{},
		tasks:     &repotest.Tasks{},
		records:   &repotest.TimeRecords{},
		documents: &repotest.Documents{},
		allowed:   &repotest.AllowedUsers{},
		invoker:   &fakeInvoker{resp: bridge.Response{Content: []bridge.Content{{Type: "text", Text: "ok"}}}},
	}
	svc := app.BuildServices(app.Repos{
		Schedules:   f.schedules,
		Tasks:       f.tasks,
		TimeRecords: f.records,
		Documents:   f.documents,
		Articles:    &repotest.Articles{},
		Profiles:    repotest.Profiles{"u1": {ID: "u1", FullName: "Aki", Email: "u1@example.com"}},
		Admins:      repotest.Admins{"root": true},
		Allowed:     f.allowed,
	}, nil, f.invoker, jst)
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: testSecret, Audience: testAudience}}

	f.router = gin.New()
	app.Setup(f.router, cfg, svc, auth.NewStore(rdb, time.Hour))
	return f
}

// token signs a session token for user the way the hosted auth service does.
func (f *fixture) token(t *testing.T, user string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: user + "@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user,
			ID:        user + "-token",
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

// do sends body (marshalled unless nil) as user and returns the recorder.
func (f *fixture) do(t *testing.T, user, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Authorization", "Bearer "+f.token(t, user))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (f *fixture) seedSchedule(userID, title string, start, end time.Time) dom.Schedule {
	s, _ := f.schedules.Create(context.Background(), dom.Schedule{UserID: userID, Title: title, Start: start, End: end})
	return s
}
