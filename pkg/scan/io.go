package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Scan Serialization API
// =============================================================================

// MarshalScan converts a Scan to JSON bytes.
func MarshalScan(s *Scan) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeScanTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteScanFile writes a Scan to a JSON file.
// The file is created with 0644 permissions.
func WriteScanFile(s *Scan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeScanTo(s, f)
}

// ReadScanFile reads a JSON file and returns the decoded and validated Scan.
// Returns validation errors for malformed module records.
func ReadScanFile(path string) (*Scan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readScanFrom(f)
}

// ReadScan decodes a JSON scan from an io.Reader.
// Use ReadScanFile for files or pass bytes.NewReader for in-memory data.
func ReadScan(r io.Reader) (*Scan, error) {
	return readScanFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeScanTo(s *Scan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readScanFrom(r io.Reader) (*Scan, error) {
	var s Scan
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
