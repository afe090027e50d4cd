// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package perms

import (
	"os"
	"path/filepath"
)

const ReadWriteExecute = 0o750

// PrepareDir creates [dir] if needed and sets the permissions of it and of
// every directory below it to [perm]. An empty [dir] is ignored.
func PrepareDir(dir string, perm os.FileMode) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	return filepath.Walk(dir, func(name string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return err
		}
		return os.Chmod(name, perm)
	})
}
