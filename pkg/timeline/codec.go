package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/timelanes/pkg/errors"
)

// Request file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatFromPath infers the request format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported request file %q (must end in .toml or .json)", filepath.Base(path))
}

// DecodeRequest reads a request in the given format. Unknown keys are
// rejected so typos in policy or window tables do not go unnoticed.
func DecodeRequest(r io.Reader, format string) (Request, error) {
	var req Request
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&req)
		if err != nil {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return Request{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return Request{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return Request{}, errors.New(errors.ErrCodeInvalidFormat, "unknown request format %q", format)
	}
	return req, nil
}

// ReadRequestFile loads a request from a .toml or .json file.
func ReadRequestFile(path string) (Request, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Request{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Request{}, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Request{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "request file %s", path)
	}
	if err != nil {
		return Request{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	req, err := DecodeRequest(f, format)
	if err != nil {
		return Request{}, fmt.Errorf("read %s: %w", path, err)
	}
	return req, nil
}

// EncodeRequest writes req as TOML or JSON.
func EncodeRequest(w io.Writer, req Request, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(req)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(req)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown request format %q", format)
}

// MarshalLayout serializes a Layout to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Rows) > 0 && len(l.Blocks) == 0 {
		return Layout{}, fmt.Errorf("layout with rows must contain blocks")
	}
	return l, nil
}

// WriteLayout writes l as indented JSON to w.
func WriteLayout(w io.Writer, l Layout) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
