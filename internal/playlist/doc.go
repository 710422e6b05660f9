// Package playlist generates playlist files for split albums.
//
// A playlist is built from the tracks of one disc, in play order, and
// written next to the track files so entries can stay relative:
//
//	creator := playlist.NewCreator(playlist.FormatM3U, true)
//	content := creator.Create("Album", "Artist", entries)
//	os.WriteFile(path, []byte(content), 0644)
package playlist
