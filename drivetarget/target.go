// Package drivetarget materializes local files and directories as objects in a
// Google Drive folder, naming each object after the sanitized local name.
package drivetarget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Jumpaku/go-syncname"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

type Target struct {
	service *drive.Service
}

// New creates a new Target with the given drive.Service.
func New(service *drive.Service) *Target {
	return &Target{service: service}
}

// InstanceName returns the name the local file or directory is synced as.
// The suffix is removed from the local file name and reserved characters are replaced.
// An empty suffix keeps the whole file name.
func InstanceName(local syncname.LocalPath, suffix string) (string, error) {
	name, err := local.TrimNameSuffix(suffix)
	if err != nil {
		return "", fmt.Errorf("failed to derive instance name: %w", err)
	}
	return syncname.SanitizeInstanceName(name), nil
}

// Lookup returns the objects named name directly in the folder parentID, excluding trashed ones.
func (t *Target) Lookup(parentID FileID, name string) (found []FileInfo, err error) {
	files, err := findAllByNameIn(t.service, string(parentID), name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up '%s' in '%s': %w", name, parentID, err)
	}
	for _, f := range files {
		found = append(found, newFileInfo(f))
	}
	return found, nil
}

// EnsureDir returns the folder in parentID that the local directory is synced as, creating it if needed.
func (t *Target) EnsureDir(parentID FileID, local syncname.LocalPath) (info FileInfo, err error) {
	name, err := InstanceName(local, "")
	if err != nil {
		return FileInfo{}, err
	}
	files, err := findAllByNameIn(t.service, string(parentID), name)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to find directory '%s' in '%s': %w", name, parentID, err)
	}
	switch {
	case len(files) > 1:
		return FileInfo{}, fmt.Errorf("multiple objects '%s' already exist in '%s': %w", name, parentID, ErrAlreadyExists)
	case len(files) == 1 && files[0].MimeType != mimeTypeGoogleAppFolder:
		return FileInfo{}, fmt.Errorf("'%s' in '%s' is not a folder: %w", name, parentID, ErrNotADirectory)
	case len(files) == 1:
		return newFileInfo(files[0]), nil
	}
	f, err := createDirIn(t.service, string(parentID), name)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to create directory '%s' in '%s': %w", name, parentID, err)
	}
	return newFileInfo(f), nil
}

// Put writes data to the file in parentID that the local file is synced as.
// The file is created if it does not exist and overwritten otherwise.
func (t *Target) Put(parentID FileID, local syncname.LocalPath, suffix string, data []byte) (info FileInfo, err error) {
	name, err := InstanceName(local, suffix)
	if err != nil {
		return FileInfo{}, err
	}
	files, err := findAllByNameIn(t.service, string(parentID), name)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to find file '%s' in '%s': %w", name, parentID, err)
	}
	switch {
	case len(files) > 1:
		return FileInfo{}, fmt.Errorf("multiple objects '%s' already exist in '%s': %w", name, parentID, ErrAlreadyExists)
	case len(files) == 1 && files[0].MimeType == mimeTypeGoogleAppFolder:
		return FileInfo{}, fmt.Errorf("'%s' in '%s' is a folder: %w", name, parentID, ErrNotAFile)
	case len(files) == 1:
		f, err := uploadFile(t.service, files[0].Id, data)
		if err != nil {
			return FileInfo{}, fmt.Errorf("failed to write file '%s': %w", name, err)
		}
		return newFileInfo(f), nil
	}
	f, err := createFileIn(t.service, string(parentID), name, data)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to create file '%s' in '%s': %w", name, parentID, err)
	}
	return newFileInfo(f), nil
}

// ResolvePath returns the absolute path from the root folder to the object with the given fileID.
func (t *Target) ResolvePath(fileID FileID) (path syncname.Path, err error) {
	parts := []string{}
	currentID := string(fileID)
	for {
		f, found, err := findByID(t.service, currentID)
		if err != nil {
			return "", fmt.Errorf("failed to get file info: %w", err)
		}
		if !found {
			return "", fmt.Errorf("file not found: %s: %w", currentID, ErrNotFound)
		}
		if len(f.Parents) == 0 {
			break
		}
		if len(f.Parents) > 1 {
			return "", fmt.Errorf("failed to resolve path of '%s': %w", currentID, ErrMultiParentsNotSupported)
		}
		parts = append(parts, f.Name)
		currentID = f.Parents[0]
	}
	slices.Reverse(parts)
	return syncname.Path("/" + strings.Join(parts, "/")), nil
}

const (
	driveFileFields  = "parents,id,name,mimeType,size,modifiedTime"
	driveFilesFields = "nextPageToken,files(parents,id,name,mimeType,size,modifiedTime)"
)

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

func findAllByNameIn(s *drive.Service, parentID string, name string) (files []*drive.File, err error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escapeQuery(name), escapeQuery(parentID))
	err = s.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(q).
		Fields(driveFilesFields).
		Pages(context.Background(), func(list *drive.FileList) error {
			files = append(files, list.Files...)
			return nil
		})
	if err != nil {
		return nil, newDriveError("failed to query files", err)
	}
	return files, nil
}

func findByID(s *drive.Service, fileID string) (file *drive.File, found bool, err error) {
	file, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			if gErr.Code == 404 {
				return nil, false, nil
			}
		}
		return nil, false, newDriveError("failed to get files", err)
	}
	return file, true, nil
}

func createDirIn(s *drive.Service, parentID, name string) (file *drive.File, err error) {
	file, err = s.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeTypeGoogleAppFolder,
		Parents:  []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		return nil, newDriveError("failed to create directory", err)
	}
	return file, nil
}

func createFileIn(s *drive.Service, parentID, name string, data []byte) (file *drive.File, err error) {
	file, err = s.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).
		SupportsAllDrives(true).
		Media(bytes.NewReader(data)).
		Fields(driveFileFields).
		Do()
	if err != nil {
		return nil, newDriveError("failed to create file", err)
	}
	return file, nil
}

func uploadFile(s *drive.Service, fileID string, data []byte) (file *drive.File, err error) {
	file, err = s.Files.Update(fileID, &drive.File{}).
		SupportsAllDrives(true).
		Media(bytes.NewReader(data)).
		Fields(driveFileFields).
		Do()
	if err != nil {
		return nil, newDriveError("failed to upload file", err)
	}
	return file, nil
}
