// Package tag writes ID3v2 tags to split MP3 files.
//
// ffmpeg already copies -metadata pairs into most containers, but MP3
// output benefits from an explicit ID3 pass so players that ignore the
// ffmpeg-written frames still see artist, album, and track number.
// Only .mp3 files are tagged; other formats carry their metadata in
// the container.
package tag
