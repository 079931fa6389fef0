// Package codec turns raw command output into text and prepares path
// arguments for inline use in shell command lines.
package codec

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Decoder converts bytes to text. It first tries the preferred encoding
// strictly and falls back to a second encoding that drops invalid sequences,
// so a single badly encoded file never fails a whole decode.
type Decoder struct {
	preferred encoding.Encoding // nil means UTF-8
	fallback  encoding.Encoding // nil means UTF-8
}

// NewDecoder returns a Decoder that prefers the host encoding and falls back
// to the named encoding.
func NewDecoder(fallbackName string) (*Decoder, error) {
	return NewDecoderWith(PreferredEncoding(), fallbackName)
}

// NewDecoderWith returns a Decoder for an explicit preferred/fallback pair.
// An unknown preferred name degrades to UTF-8; an unknown fallback is an error.
func NewDecoderWith(preferredName, fallbackName string) (*Decoder, error) {
	preferred, err := lookup(preferredName)
	if err != nil {
		preferred = nil
	}
	fallback, err := lookup(fallbackName)
	if err != nil {
		return nil, err
	}
	return &Decoder{preferred: preferred, fallback: fallback}, nil
}

// UTF8 is a Decoder that uses UTF-8 for both steps.
var UTF8 = &Decoder{}

func lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// Decode returns b as text. It never fails.
func (d *Decoder) Decode(b []byte) string {
	if d == nil {
		d = UTF8
	}
	if s, ok := decodeStrict(d.preferred, b); ok {
		return s
	}
	return decodeLossy(d.fallback, b)
}

func decodeStrict(enc encoding.Encoding, b []byte) (string, bool) {
	if enc == nil {
		if !utf8.Valid(b) {
			return "", false
		}
		return string(b), true
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil || strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

func decodeLossy(enc encoding.Encoding, b []byte) string {
	if enc == nil {
		return strings.ToValidUTF8(string(b), "")
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "")
	}
	return strings.ReplaceAll(string(out), string(utf8.RuneError), "")
}

// PreferredEncoding reports the codeset of the host locale, taken from
// LC_ALL, LC_CTYPE and LANG in that order. It defaults to UTF-8.
func PreferredEncoding() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		return codesetOf(v)
	}
	return "utf-8"
}

// codesetOf extracts "UTF-8" from "en_US.UTF-8@euro".
func codesetOf(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 || i == len(locale)-1 {
		return "utf-8"
	}
	return locale[i+1:]
}

// escapedChars must start with the backslash so later escapes are not doubled.
var escapedChars = []string{`\`, `$`, `'`, `:`, "`"}

// EscapePath backslash-escapes shell and pathspec metacharacters in p and
// wraps it in double quotes, for interpolation into a shell command line
// where it is read by git as a pathspec.
func EscapePath(p string) string {
	for _, c := range escapedChars {
		p = strings.ReplaceAll(p, c, `\`+c)
	}
	return `"` + p + `"`
}

// QuoteArg renders one argument for a POSIX shell, leaving plain words bare.
func QuoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.IndexFunc(arg, needsQuote) < 0 {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// ShellJoin renders an argument vector as a copy-pasteable command line.
func ShellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = QuoteArg(a)
	}
	return strings.Join(quoted, " ")
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./=:,@%+", r)
}
