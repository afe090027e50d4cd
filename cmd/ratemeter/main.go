// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ava-labs/ratemeter/app"
	"github.com/ava-labs/ratemeter/config"
	"github.com/ava-labs/ratemeter/utils/logging"
	"github.com/ava-labs/ratemeter/utils/perms"
	"github.com/ava-labs/ratemeter/version"
)

// main is the primary entry point to ratemeter.
func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Printf("couldn't configure flags: %s\n", err)
		os.Exit(1)
	}

	if v.GetBool(config.VersionKey) {
		fmt.Print(version.String(version.GitCommit))
		os.Exit(0)
	}

	c, err := config.GetConfig(v)
	if err != nil {
		fmt.Printf("couldn't load ratemeter config: %s\n", err)
		os.Exit(1)
	}

	if err := perms.PrepareDir(c.Logging.Directory, perms.ReadWriteExecute); err != nil {
		fmt.Printf("failed to prepare the log directory: %s\n", err)
		os.Exit(1)
	}

	log := logging.Build(c.Logging)
	log.Info("starting ratemeter",
		zap.Stringer("version", version.Current),
		zap.String("commit", version.GitCommit),
		zap.Reflect("config", c),
	)

	ratemeter, err := app.New(c, log, prometheus.NewRegistry())
	if err != nil {
		log.Fatal("failed to create ratemeter",
			zap.Error(err),
		)
		log.Stop()
		os.Exit(1)
	}

	exitCode := app.Run(ratemeter)
	log.Stop()
	os.Exit(exitCode)
}
