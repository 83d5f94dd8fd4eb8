// Package main is the entry point for the fightmetrics CLI tool, which
// stores fight history and derives leakage-safe fighter profiles and
// matchup features.
package main

import "github.com/fightlab/go-fight-metrics/cmd"

func main() {
	cmd.Execute()
}
