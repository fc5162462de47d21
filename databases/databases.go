// Package databases embeds the fixed seed tables the visualizer runs on.
package databases

import "embed"

// Content holds one directory per database, each table a directory with
// meta.json and data.json.
//
//go:embed main
var Content embed.FS
