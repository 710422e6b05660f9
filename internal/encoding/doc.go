// Package encoding converts raw cue sheet bytes into UTF-8 text.
//
// Cue sheets predate any encoding convention: rips come with UTF-8,
// UTF-16 exported by Windows tools, and legacy code pages, frequently
// GBK for East Asian releases. Decode applies a small detection ladder
// and always produces valid UTF-8:
//
//	text, err := encoding.Decode(raw)
//	sheet, err := cue.Parse(text)
//
// The ladder: explicit UTF-8 or UTF-16 byte order marks win, then bytes
// that already validate as UTF-8 pass through, then a GBK decode is
// attempted, and Windows-1252 is the final fallback that cannot fail.
package encoding
