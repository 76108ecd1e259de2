package drivetarget

import (
	"time"

	"google.golang.org/api/drive/v3"
)

const mimeTypeGoogleAppFolder = "application/vnd.google-apps.folder"

type FileID string

// FileInfo describes an object of the target tree stored in Google Drive.
type FileInfo struct {
	Name    string
	ID      FileID
	Size    int64
	Mime    string
	ModTime time.Time
}

func (i FileInfo) IsFolder() bool {
	return i.Mime == mimeTypeGoogleAppFolder
}

func newFileInfo(f *drive.File) FileInfo {
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return FileInfo{
		Name:    f.Name,
		ID:      FileID(f.Id),
		Size:    f.Size,
		Mime:    f.MimeType,
		ModTime: modTime,
	}
}
