package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultTemplate is the output-name template used when neither the
// config file nor the command line provides one.
const DefaultTemplate = "<year> - <album>/<no>. <title>.<ext>"

// Overwrite policies for output files that already exist.
const (
	// OverwriteAsk leaves the decision to ffmpeg, which prompts.
	OverwriteAsk = "ask"
	// OverwriteAlways passes -y and replaces existing files.
	OverwriteAlways = "always"
	// OverwriteNever passes -n and skips existing files.
	OverwriteNever = "never"
)

// Settings holds all configuration options.
type Settings struct {
	// Output naming and placement
	Template string `json:"template"`
	OutDir   string `json:"out_dir"` // empty: <cue dir>/split

	// Encoding
	Preset     string   `json:"preset"` // empty: copy when possible, else flac
	NoCopy     bool     `json:"no_copy"`
	EncodeArgs []string `json:"encode_args"` // raw ffmpeg args, used with Ext
	Ext        string   `json:"ext"`

	// Execution
	FFmpegPath string `json:"ffmpeg_path"`
	Jobs       int    `json:"jobs"`
	Overwrite  string `json:"overwrite"` // ask, always, never
	DryRun     bool   `json:"dry_run"`

	// Extras
	CreatePlaylist bool   `json:"create_playlist"`
	M3UExtended    bool   `json:"m3u_extended"`
	RetagMP3       bool   `json:"retag_mp3"`
	LedgerPath     string `json:"ledger_path"` // empty: ledger disabled

	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Template:    DefaultTemplate,
		FFmpegPath:  "ffmpeg",
		Jobs:        runtime.NumCPU()/2 + 1,
		Overwrite:   OverwriteAsk,
		M3UExtended: true,
	}
}

// Load reads settings from a JSON file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks cross-field constraints the JSON schema cannot.
func (s *Settings) Validate() error {
	switch s.Overwrite {
	case OverwriteAsk, OverwriteAlways, OverwriteNever:
	default:
		return fmt.Errorf("unknown overwrite policy: %s", s.Overwrite)
	}

	if s.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, have %d", s.Jobs)
	}

	if len(s.EncodeArgs) > 0 {
		if s.Preset != "" {
			return fmt.Errorf("encode args and a preset are mutually exclusive")
		}
		if err := ValidateExt(s.Ext); err != nil {
			return fmt.Errorf("raw encode args require an extension: %w", err)
		}
	} else if s.Ext != "" {
		return fmt.Errorf("an explicit extension requires raw encode args")
	}

	return nil
}

// ValidateExt checks a user-supplied output extension: non-empty and
// alphanumeric, without the leading dot.
func ValidateExt(ext string) error {
	if ext == "" {
		return fmt.Errorf("extension can't be empty")
	}
	for _, c := range ext {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return fmt.Errorf("extensions must consist of alphanumeric characters only")
		}
	}
	return nil
}
