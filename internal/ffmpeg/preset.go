package ffmpeg

import (
	"fmt"
	"strings"
)

// Preset is a named encoding configuration: an output container and
// codec with a quality tier.
type Preset int

const (
	PresetWav Preset = iota
	PresetFlac
	PresetFlacComp10
	PresetOpusLow
	PresetOpus
	PresetOpusHigh
	PresetOpusUltra
	PresetMP3Low
	PresetMP3
	PresetMP3High
	PresetMP3Ultra
	PresetAACLow
	PresetAAC
	PresetAACHigh
	PresetAACUltra
	PresetVorbisLow
	PresetVorbis
	PresetVorbisHigh
	PresetVorbisUltra
)

var presetNames = map[Preset]string{
	PresetWav:         "wav",
	PresetFlac:        "flac",
	PresetFlacComp10:  "flac-comp10",
	PresetOpusLow:     "opus-low",
	PresetOpus:        "opus",
	PresetOpusHigh:    "opus-high",
	PresetOpusUltra:   "opus-ultra",
	PresetMP3Low:      "mp3-low",
	PresetMP3:         "mp3",
	PresetMP3High:     "mp3-high",
	PresetMP3Ultra:    "mp3-ultra",
	PresetAACLow:      "aac-low",
	PresetAAC:         "aac",
	PresetAACHigh:     "aac-high",
	PresetAACUltra:    "aac-ultra",
	PresetVorbisLow:   "vorbis-low",
	PresetVorbis:      "vorbis",
	PresetVorbisHigh:  "vorbis-high",
	PresetVorbisUltra: "vorbis-ultra",
}

// Presets returns every preset in declaration order.
func Presets() []Preset {
	all := make([]Preset, 0, len(presetNames))
	for p := PresetWav; p <= PresetVorbisUltra; p++ {
		all = append(all, p)
	}
	return all
}

// ParsePreset resolves a preset by its CLI name.
func ParsePreset(name string) (Preset, error) {
	for p, n := range presetNames {
		if strings.EqualFold(name, n) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown preset: %s", name)
}

// String returns the preset's CLI name.
func (p Preset) String() string {
	return presetNames[p]
}

// Ext returns the output file extension without the leading dot.
func (p Preset) Ext() string {
	switch p {
	case PresetWav:
		return "wav"
	case PresetFlac, PresetFlacComp10:
		return "flac"
	case PresetOpusLow, PresetOpus, PresetOpusHigh, PresetOpusUltra:
		return "ogg"
	case PresetMP3Low, PresetMP3, PresetMP3High, PresetMP3Ultra:
		return "mp3"
	case PresetAACLow, PresetAAC, PresetAACHigh, PresetAACUltra:
		return "m4a"
	case PresetVorbisLow, PresetVorbis, PresetVorbisHigh, PresetVorbisUltra:
		return "ogg"
	default:
		return "flac"
	}
}

// Args returns the ffmpeg encoding arguments for the preset.
func (p Preset) Args() []string {
	switch p {
	case PresetWav:
		return []string{"-f", "wav"}
	case PresetFlac:
		return []string{"-f", "flac", "-c:a", "flac", "-compression_level", "8"}
	case PresetFlacComp10:
		return []string{"-f", "flac", "-c:a", "flac", "-compression_level", "10"}

	case PresetOpusLow:
		return []string{"-f", "oga", "-c:a", "libopus", "-b:a", "48k"}
	case PresetOpus:
		return []string{"-f", "oga", "-c:a", "libopus", "-b:a", "128k"}
	case PresetOpusHigh:
		return []string{"-f", "oga", "-c:a", "libopus", "-b:a", "192k"}
	case PresetOpusUltra:
		return []string{"-f", "oga", "-c:a", "libopus", "-b:a", "256k"}

	case PresetMP3Low:
		return []string{"-f", "mp3", "-c:a", "libmp3lame", "-b:a", "64k"}
	case PresetMP3:
		return []string{"-f", "mp3", "-c:a", "libmp3lame", "-b:a", "128k"}
	case PresetMP3High:
		return []string{"-f", "mp3", "-c:a", "libmp3lame", "-b:a", "224k"}
	case PresetMP3Ultra:
		return []string{"-f", "mp3", "-c:a", "libmp3lame", "-b:a", "320k"}

	case PresetAACLow:
		return []string{"-f", "mp4", "-c:a", "libfdk_aac", "-b:a", "64k"}
	case PresetAAC:
		return []string{"-f", "mp4", "-c:a", "libfdk_aac", "-b:a", "128k"}
	case PresetAACHigh:
		return []string{"-f", "mp4", "-c:a", "libfdk_aac", "-b:a", "192k"}
	case PresetAACUltra:
		return []string{"-f", "mp4", "-c:a", "libfdk_aac", "-b:a", "256k", "-cutoff", "18000"}

	case PresetVorbisLow:
		return []string{"-f", "oga", "-c:a", "libvorbis", "-q", "2.0"}
	case PresetVorbis:
		return []string{"-f", "oga", "-c:a", "libvorbis", "-q", "5.0"}
	case PresetVorbisHigh:
		return []string{"-f", "oga", "-c:a", "libvorbis", "-q", "6.5"}
	case PresetVorbisUltra:
		return []string{"-f", "oga", "-c:a", "libvorbis", "-q", "8.0"}
	default:
		return PresetFlac.Args()
	}
}
