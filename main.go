/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/n0call/dxtally/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "dxtally",
		Usage: "dxtally - DXCC award tracker",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdImportDXCC,
			cmd.CmdImportCTY,
			cmd.CmdLotwChallenge,
			cmd.CmdUser,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
