// Package config provides configuration management for cuesplit.
//
// Settings are stored as JSON. Load falls back to defaults when the
// file is absent, so a config file is never required:
//
//	settings, err := config.Load("/path/to/config.json")
//
// Defaults split next to the cue sheet (a "split" subdirectory), name
// tracks "<year> - <album>/<no>. <title>.<ext>", and run about half the
// logical CPU cores worth of parallel ffmpeg invocations.
//
// Command-line flags are applied on top of the loaded settings by the
// cmd packages; Validate is re-run after that merge.
package config
