package encoding

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode_UTF8(t *testing.T) {
	got, err := Decode([]byte("TITLE \"plain\""))
	if err != nil {
		t.Fatal(err)
	}
	if got != "TITLE \"plain\"" {
		t.Errorf("got %q", got)
	}
}

func TestDecode_UTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("REM hi")...)
	got, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got != "REM hi" {
		t.Errorf("BOM not stripped: %q", got)
	}
}

func TestDecode_UTF16(t *testing.T) {
	for name, enc := range map[string]unicode.Endianness{
		"little endian": unicode.LittleEndian,
		"big endian":    unicode.BigEndian,
	} {
		t.Run(name, func(t *testing.T) {
			encoder := unicode.UTF16(enc, unicode.UseBOM).NewEncoder()
			raw, err := encoder.Bytes([]byte("TITLE épée"))
			if err != nil {
				t.Fatal(err)
			}

			got, err := Decode(raw)
			if err != nil {
				t.Fatal(err)
			}
			if got != "TITLE épée" {
				t.Errorf("got %q", got)
			}
		})
	}
}

func TestDecode_GBK(t *testing.T) {
	raw, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("TITLE 笨小孩"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got != "TITLE 笨小孩" {
		t.Errorf("got %q", got)
	}
}

func TestDecode_Windows1252Fallback(t *testing.T) {
	// 0x81 is unassigned in GBK's single-byte range and invalid UTF-8
	// when followed by ASCII, forcing the final fallback.
	raw := []byte{'T', 0x81}
	got, err := Decode(raw)
	if err != nil {
		t.Fatal(err)
	}
	want, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got != string(want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
