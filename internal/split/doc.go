// Package split turns cue sheets plus album images into per-track
// audio files by driving ffmpeg.
//
// The Manager works in two phases. Initialize finds and parses cue
// sheets under a path, checks that every referenced audio file exists,
// and plans one ffmpeg invocation per disc; every planning error
// (missing files, bad templates, output name collisions) surfaces here,
// before anything touches the disk. Run then executes the planned jobs
// with bounded parallelism and, when configured, writes playlists,
// retags MP3 output, and records finished sheets in the ledger.
//
//	m, err := split.NewManager(settings, onProgress)
//	defer m.Close()
//	if err := m.Initialize(ctx, path); err != nil { ... }
//	if err := m.Run(ctx); err != nil { ... }
package split
