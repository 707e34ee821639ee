package render

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// ErrFont is returned when the font resource cannot be loaded or parsed.
var ErrFont = errors.New("font resource error")

// FontSource supplies the TrueType font used for every label.
type FontSource interface {
	Name() string
	Load() ([]byte, error)
}

type fileFont string

// FontFile reads the font from a file path when loaded.
func FontFile(path string) FontSource {
	return fileFont(path)
}

func (f fileFont) Name() string { return string(f) }

func (f fileFont) Load() ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFont, string(f), err)
	}
	return data, nil
}

type byteFont struct {
	name string
	data []byte
}

// FontBytes serves an in-memory font, typically one embedded in the binary.
func FontBytes(name string, data []byte) FontSource {
	return byteFont{name: name, data: data}
}

func (b byteFont) Name() string { return b.name }

func (b byteFont) Load() ([]byte, error) {
	return b.data, nil
}

// DefaultFont is the Go Regular font compiled into the binary.
func DefaultFont() FontSource {
	return FontBytes("goregular", goregular.TTF)
}

// loadFont loads src and checks that it parses as an sfnt font.
func loadFont(src FontSource) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no font source", ErrFont)
	}
	data, err := src.Load()
	if err != nil {
		if errors.Is(err, ErrFont) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFont, src.Name(), err)
	}
	if _, err := sfnt.Parse(data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrFont, src.Name(), err)
	}
	return data, nil
}
