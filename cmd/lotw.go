/*
 * Copyright 2025 The dxtally authors
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/n0call/dxtally/lotw"
)

var CmdLotwChallenge = &cli.Command{
	Name:      "lotw-challenge",
	Usage:     "Summarize a LoTW DXCC credits CSV export <file>",
	ArgsUsage: "<file>",
	Action:    lotwChallenge,
}

func lotwChallenge(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errCreditsPathRequired
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open credits CSV: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			appLogger.Warn("Failed to close credits file", "error", err)
		}
	}()

	summary, err := lotw.ParseCreditsCSV(file)
	if err != nil {
		return fmt.Errorf("failed to parse credits CSV: %w", err)
	}

	fmt.Printf("Entities credited: %d\n", summary.TotalEntities)
	fmt.Printf("Challenge slots (band, entity): %d\n", summary.ChallengeSlots)

	printCreditCounts("Entities by band", summary.EntitiesByBand)
	printCreditCounts("Entities by mode", summary.EntitiesByMode)

	return nil
}

func printCreditCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	fmt.Printf("%s:\n", title)

	for _, key := range keys {
		fmt.Printf("  %6s: %d\n", key, counts[key])
	}
}
