package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/Jumpaku/go-syncname"
	"github.com/Jumpaku/go-syncname/drivetarget"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

func newTarget() *drivetarget.Target {
	ctx := context.Background()

	client, err := google.DefaultClient(ctx,
		drive.DriveScope,
	)
	if err != nil {
		log.Panic(err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.Panic(err)
	}
	return drivetarget.New(driveService)
}

// parentFolder returns the ID of the folder that the parent directory of local was synced as.
func parentFolder(folders map[syncname.LocalPath]drivetarget.FileID, local syncname.LocalPath) (drivetarget.FileID, error) {
	parent, err := local.RequireParent()
	if err != nil {
		return "", err
	}
	parentID, ok := folders[parent]
	if !ok {
		return "", fmt.Errorf("parent of %s was not synced: %s", local, parent)
	}
	return parentID, nil
}

func main() {
	dir := flag.String("dir", ".", "local directory to sync")
	root := flag.String("root", "", "ID of the Drive folder to sync into; names are only printed when empty")
	suffix := flag.String("suffix", "", "suffix removed from file names")
	flag.Parse()

	var target *drivetarget.Target
	if *root != "" {
		target = newTarget()
	}

	base, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatal(err)
	}
	// Folder IDs keyed by the local directory they were synced from.
	folders := map[syncname.LocalPath]drivetarget.FileID{syncname.LocalPath(base): drivetarget.FileID(*root)}

	err = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		local := syncname.LocalPath(filepath.Clean(path))
		if _, ok := folders[local]; ok {
			return nil
		}

		fileSuffix := *suffix
		if d.IsDir() || !local.HasNameSuffix(fileSuffix) {
			fileSuffix = ""
		}
		name, err := drivetarget.InstanceName(local, fileSuffix)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", local, name)
		if target == nil {
			return nil
		}

		parentID, err := parentFolder(folders, local)
		if err != nil {
			return err
		}
		if d.IsDir() {
			info, err := target.EnsureDir(parentID, local)
			if err != nil {
				return err
			}
			folders[local] = info.ID
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := target.Put(parentID, local, fileSuffix, data)
		if err != nil {
			return err
		}
		resolved, err := target.ResolvePath(info.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  synced as %s (ID: %s)\n", resolved, info.ID)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}
