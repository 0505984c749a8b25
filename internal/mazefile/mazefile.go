// Package mazefile decodes maze definitions into engine environments.
//
// YAML and JSON files share one decoder (JSON is read as YAML flow syntax).
// RON files, such as
//
//	(maze: [[2, 0], [0, 1]], endpoint: (x: 0, y: 0), startpoint: (x: 1, y: 1))
//
// are read by a small dedicated parser.
package mazefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"qmaze/internal/engine"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatRON  Format = "ron"
)

var ErrUnknownFormat = errors.New("unknown maze file format")

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".ron":
		return FormatRON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads and validates the maze stored at path.
func Load(path string) (*engine.Environment, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maze file: %w", err)
	}
	defer f.Close()

	env, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

type document struct {
	Maze       [][]int          `yaml:"maze"`
	Startpoint *engine.Position `yaml:"startpoint"`
	Endpoint   *engine.Position `yaml:"endpoint"`
}

// Decode parses r in the given format. Syntax errors and missing fields wrap
// engine.ErrMalformedInput; the result has passed engine validation.
func Decode(r io.Reader, format Format) (*engine.Environment, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}

	var doc document
	switch format {
	case FormatYAML, FormatJSON:
		doc, err = decodeYAML(raw)
	case FormatRON:
		doc, err = decodeRON(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if doc.Startpoint == nil {
		return nil, fmt.Errorf("%w: missing startpoint", engine.ErrMalformedInput)
	}
	if doc.Endpoint == nil {
		return nil, fmt.Errorf("%w: missing endpoint", engine.ErrMalformedInput)
	}
	return engine.NewEnvironment(doc.Maze, *doc.Startpoint, *doc.Endpoint)
}

func decodeYAML(raw []byte) (document, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, fmt.Errorf("%w: empty document", engine.ErrMalformedInput)
		}
		return doc, fmt.Errorf("%w: %v", engine.ErrMalformedInput, err)
	}
	return doc, nil
}
