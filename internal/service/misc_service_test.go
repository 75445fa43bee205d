package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo/repotest"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":            "/",
		"/":           "/",
		"docs":        "/docs/",
		"/docs":       "/docs/",
		"docs//2024/": "/docs/2024/",
		" / a / b / ": "/a/b/",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), "path %q", in)
	}
}

func TestDocumentService(t *testing.T) {
	ctx := context.Background()
	svc := NewDocumentService(&repotest.Documents{})

	_, err := svc.RegisterFile(ctx, "u1", "docs", "b.pdf", 1024)
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "u1", "/docs/", "2024")
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, "u1", "/docs", "2024")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.CreateFolder(ctx, "u1", "/docs", "a/b")
	assert.ErrorIs(t, err, ErrEmptyName)

	list, err := svc.List(ctx, "u1", "/docs")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, dom.DocumentFolder, list[0].Type)
	assert.Equal(t, "/docs/b.pdf", list[1].ObjectKey())

	gone, err := svc.Delete(ctx, "u1", list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, list[1].Name, gone.Name)
	_, err = svc.Delete(ctx, "u1", list[1].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"go", "redis"}, SplitTags(" go, redis ,,go"))
	assert.Equal(t, []string{}, SplitTags(""))
}

func TestArticleService(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(&repotest.Articles{})

	_, err := svc.Create(ctx, "u1", "", "body", "")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = svc.Create(ctx, "u1", "title", " ", "")
	assert.ErrorIs(t, err, ErrEmptyContent)

	a, err := svc.Create(ctx, "u1", "Onboarding", "Read the handbook", "hr, guide")
	require.NoError(t, err)
	assert.Equal(t, []string{"hr", "guide"}, a.Tags)
	_, err = svc.Create(ctx, "u2", "Deploys", "Use the pipeline", "ops")
	require.NoError(t, err)

	found, err := svc.Search(ctx, "GUIDE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Onboarding", found[0].Title)

	all, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(repotest.Profiles{"u1": {ID: "u1", FullName: "Old", Email: "a@example.com"}})

	p, err := svc.Update(ctx, "u1", ProfilePatch{
		FullName:             ptr(" New Name "),
		NotificationSettings: &dom.NotificationSettings{Email: true, Slack: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", p.FullName)
	assert.True(t, p.NotificationSettings.Slack)
	assert.Equal(t, "a@example.com", p.Email)

	_, err = svc.Get(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminService(repotest.Admins{"root": true}, &repotest.AllowedUsers{})

	ok, err := svc.IsAdmin(ctx, "root")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.IsAdmin(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, bad := range []string{"", "no-at", "@example.com", "user@"} {
		_, err := svc.AddAllowed(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", bad)
	}

	u, err := svc.AddAllowed(ctx, " member@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", u.Email)

	_, err = svc.AddAllowed(ctx, "member@example.com")
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.RemoveAllowed(ctx, u.ID))
	assert.ErrorIs(t, svc.RemoveAllowed(ctx, u.ID), ErrNotFound)
}
