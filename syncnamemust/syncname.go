// Package syncnamemust wraps the syncname and drivetarget packages with panic-based error handling.
//
// It provides the same operations as the fallible packages, but instead of
// returning errors, all exported functions and methods panic on failure.
package syncnamemust

import (
	"github.com/Jumpaku/go-syncname"
	"github.com/Jumpaku/go-syncname/drivetarget"
	"google.golang.org/api/drive/v3"
)

// TrimNameSuffix returns the final component of p with suffix removed.
//
// It panics if p has no final component (the underlying error would be ErrNoFileName)
// or the final component does not end with suffix (ErrSuffixMismatch).
func TrimNameSuffix[P syncname.PathExt[P]](p P, suffix string) string {
	return must1(p.TrimNameSuffix(suffix))
}

// RequireParent returns the parent of p.
//
// It panics if p has no parent (the underlying error would be ErrNoParent).
func RequireParent[P syncname.PathExt[P]](p P) P {
	return must1(p.RequireParent())
}

// InstanceName returns the name the local file or directory is synced as.
//
// It panics if the name cannot be derived from the local path.
func InstanceName(local syncname.LocalPath, suffix string) string {
	return must1(drivetarget.InstanceName(local, suffix))
}

// Target materializes local files and directories as objects in Google Drive.
//
// All methods of Target panic on error instead of returning an error value.
type Target struct {
	target *drivetarget.Target
}

// New creates a new Target with the given drive.Service.
// The service should be properly authenticated before being passed to this function.
func New(service *drive.Service) *Target {
	return &Target{target: drivetarget.New(service)}
}

// Lookup returns the objects named name directly in the folder parentID.
//
// It panics if querying Drive fails.
func (t *Target) Lookup(parentID drivetarget.FileID, name string) (found []drivetarget.FileInfo) {
	return must1(t.target.Lookup(parentID, name))
}

// EnsureDir returns the folder that the local directory is synced as, creating it if needed.
//
// It panics if an error occurs, including when an object of the same name that is
// not a folder exists (the underlying error would be ErrNotADirectory).
func (t *Target) EnsureDir(parentID drivetarget.FileID, local syncname.LocalPath) (info drivetarget.FileInfo) {
	return must1(t.target.EnsureDir(parentID, local))
}

// Put writes data to the file that the local file is synced as.
//
// It panics if an error occurs, including when a folder of the same name exists
// (the underlying error would be ErrNotAFile).
func (t *Target) Put(parentID drivetarget.FileID, local syncname.LocalPath, suffix string, data []byte) (info drivetarget.FileInfo) {
	return must1(t.target.Put(parentID, local, suffix, data))
}

// ResolvePath returns the absolute path from the root folder to the object with the given fileID.
//
// It panics if the path cannot be resolved, including for objects with multiple parents.
func (t *Target) ResolvePath(fileID drivetarget.FileID) (path syncname.Path) {
	return must1(t.target.ResolvePath(fileID))
}
