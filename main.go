// Package main is the entry point for the dotainsight CLI tool, which turns
// normalized Dota 2 match events into a scored performance analysis.
package main

import "github.com/pable/go-dota-insight/cmd"

func main() {
	cmd.Execute()
}
