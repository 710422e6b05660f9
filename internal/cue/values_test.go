package cue

import (
	"strings"
	"testing"
)

func TestParseWord(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantVal  string
		wantRest string
		wantErr  bool
	}{
		{name: "bare word", input: "WAVE", wantVal: "WAVE", wantRest: ""},
		{name: "word then rest", input: "image.wav WAVE", wantVal: "image.wav", wantRest: " WAVE"},
		{name: "leading whitespace", input: "  \ttitle", wantVal: "title"},
		{name: "quoted", input: `"CD 1.wav" WAVE`, wantVal: "CD 1.wav", wantRest: " WAVE"},
		{name: "quoted keeps inner spaces", input: `"a  b"`, wantVal: "a  b"},
		{name: "escaped quote inside quotes", input: `"He said \"hi\""`, wantVal: `He said "hi"`},
		{name: "named escapes", input: `"a\tb\nc\rd"`, wantVal: "a\tb\nc\rd"},
		{name: "unknown escape is literal", input: `"a\zb"`, wantVal: "azb"},
		{name: "escaped backslash", input: `"a\\b"`, wantVal: `a\b`},
		{name: "unquoted with escape", input: `a\ b c`, wantVal: "a b", wantRest: " c"},
		{name: "trailing lone backslash", input: `word\`, wantVal: `word\`},
		{name: "unterminated quote", input: `"never closed`, wantErr: true},
		{name: "unterminated after escape", input: `"ends with \`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, val, err := parseWord(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseWord(%q) succeeded with %q, want error", tt.input, val)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWord(%q) error: %v", tt.input, err)
			}
			if val != tt.wantVal {
				t.Errorf("value = %q, want %q", val, tt.wantVal)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "unquoted taken verbatim", input: "  Some Album Title  ", want: "Some Album Title"},
		{name: "unquoted keeps inner quotes", input: `He said "hi" once`, want: `He said "hi" once`},
		{name: "quoted", input: `"Some Album Title"`, want: "Some Album Title"},
		{name: "single quote char is verbatim", input: `"`, want: `"`},
		{name: "empty", input: "   ", wantErr: "missing value"},
		{name: "unwrapped trailing content is verbatim", input: `"a" b`, want: `"a" b`},
		{name: "trailing content after quote", input: `"a" "b"`, wantErr: "too many values in line"},
		{name: "interior quote ends literal early", input: `"He said "hi""`, wantErr: "too many values in line"},
		{name: "unterminated", input: `"a b`, want: `"a b`}, // no closing quote: not treated as quoted
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseValue(tt.input)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("parseValue(%q) error = %v, want %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseValue(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseComment(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantVal string
		wantErr bool
	}{
		{name: "key and value", input: "GENRE Electronic", wantKey: "GENRE", wantVal: "Electronic"},
		{name: "quoted value", input: `COMMENT "ripped by hand"`, wantKey: "COMMENT", wantVal: "ripped by hand"},
		{name: "quoted key", input: `"MY KEY" value`, wantKey: "MY KEY", wantVal: "value"},
		{name: "value with spaces", input: "DATE 1998 / 2001", wantKey: "DATE", wantVal: "1998 / 2001"},
		{name: "key only", input: "DISCID", wantKey: "DISCID", wantVal: ""},
		{name: "key only with trailing tabs", input: "DISCID\t\t", wantKey: "DISCID", wantVal: ""},
		{name: "unclosed quote in value is verbatim", input: `GENRE "oops`, wantKey: "GENRE", wantVal: `"oops`},
		{name: "empty", input: "   ", wantErr: true},
		{name: "unterminated key", input: `"oops value`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, val, err := parseComment(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseComment(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseComment(%q) error: %v", tt.input, err)
			}
			if key != tt.wantKey || val != tt.wantVal {
				t.Errorf("parseComment(%q) = (%q, %q), want (%q, %q)", tt.input, key, val, tt.wantKey, tt.wantVal)
			}
		})
	}
}

func TestParseTimeOffset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr string
	}{
		{name: "single field is milliseconds", input: "01 500", want: 500},
		{name: "two fields", input: "1 5:250", want: 5250},
		{name: "three fields", input: "1 00:02:03", want: 2003},
		{name: "four fields", input: "01 1:02:03:004", want: 3_600_000 + 2*60_000 + 3*1000 + 4},
		{name: "conventional pregap shape", input: "00 00:00:00", want: 0},
		{name: "fifth field ignored", input: "01 9:0:0:0:1", want: 1},
		{name: "quoted specifier", input: `01 "02:03"`, want: 2003},
		{name: "missing index number", input: "   ", wantErr: "missing index number"},
		{name: "missing specifier", input: "01", wantErr: "missing time specifier after index number"},
		{name: "missing specifier after spaces", input: "01   ", wantErr: "missing time specifier after index number"},
		{name: "non-numeric field", input: "01 a:b", wantErr: "invalid index time: a:b"},
		{name: "empty field", input: "01 00:", wantErr: "invalid index time: 00:"},
		{name: "negative field", input: "01 -1:00", wantErr: "invalid index time: -1:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeOffset(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("parseTimeOffset(%q) = %d, want error %q", tt.input, got, tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("parseTimeOffset(%q) error = %q, want %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeOffset(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseTimeOffset(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNextWord(t *testing.T) {
	rest, word, ok := nextWord("  FILE  image.wav WAVE")
	if !ok || word != "FILE" {
		t.Fatalf("word = %q, ok = %v, want FILE", word, ok)
	}
	if !strings.HasPrefix(rest, "  image.wav") {
		t.Errorf("rest = %q, want remainder starting with separating spaces", rest)
	}

	if _, _, ok := nextWord("   \t "); ok {
		t.Error("blank line should yield no word")
	}
}
