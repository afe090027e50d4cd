// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package version

const Client = "ratemeter"

// Current is the version of this binary
var Current = &Application{
	Name:  Client,
	Major: 0,
	Minor: 1,
	Patch: 0,
}
