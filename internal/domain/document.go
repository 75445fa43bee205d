package domain

import "time"

const (
	DocumentFile   = "file"
	DocumentFolder = "folder"
)

// Document is the metadata row of a stored file or a folder. The bytes live
// in object storage under Path+Name.
type Document struct {
	ID        string
	UserID    string
	Name      string
	Path      string
	Size      int64
	Type      string
	CreatedAt time.Time
}

func (d Document) ObjectKey() string { return d.Path + d.Name }
