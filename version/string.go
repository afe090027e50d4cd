// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"fmt"
	"runtime"
)

// GitCommit is set by the build script
var GitCommit string

// String returns a human readable description of the binary.
func String(commit string) string {
	format := "%s [go=%s"
	args := []interface{}{
		Current,
		runtime.Version(),
	}

	if commit != "" {
		format += ", commit=%s"
		args = append(args, commit)
	}
	format += "]\n"
	return fmt.Sprintf(format, args...)
}
