package service

import (
	"context"
	"strings"

	dom "github.com/ikeike55momo/schedule/internal/domain"
	"github.com/ikeike55momo/schedule/internal/repo"
)

// DocumentService manages document metadata. The object bytes are stored
// elsewhere under Document.ObjectKey.
type DocumentService struct {
	repo repo.DocumentRepo
}

func NewDocumentService(r repo.DocumentRepo) *DocumentService {
	return &DocumentService{repo: r}
}

func (s *DocumentService) List(ctx context.Context, userID, path string) ([]dom.Document, error) {
	return s.repo.ListByPath(ctx, userID, NormalizePath(path))
}

func (s *DocumentService) CreateFolder(ctx context.Context, userID, path, name string) (dom.Document, error) {
	return s.create(ctx, dom.Document{UserID: userID, Path: path, Name: name, Type: dom.DocumentFolder})
}

// RegisterFile records an uploaded file.
func (s *DocumentService) RegisterFile(ctx context.Context, userID, path, name string, size int64) (dom.Document, error) {
	if size < 0 {
		size = 0
	}
	return s.create(ctx, dom.Document{UserID: userID, Path: path, Name: name, Size: size, Type: dom.DocumentFile})
}

// Delete removes the row and returns what was removed.
func (s *DocumentService) Delete(ctx context.Context, userID, id string) (dom.Document, error) {
	d, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return dom.Document{}, storeErr(err)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return dom.Document{}, storeErr(err)
	}
	return d, nil
}

func (s *DocumentService) create(ctx context.Context, d dom.Document) (dom.Document, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" || strings.Contains(d.Name, "/") {
		return dom.Document{}, ErrEmptyName
	}
	d.Path = NormalizePath(d.Path)
	out, err := s.repo.Create(ctx, d)
	if err != nil {
		return dom.Document{}, storeErr(err)
	}
	return out, nil
}

// NormalizePath makes p start and end with a slash and collapses repeated slashes.
func NormalizePath(p string) string {
	var parts []string
	for _, seg := range strings.Split(p, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/") + "/"
}
