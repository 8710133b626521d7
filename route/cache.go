package route

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// SerializeIndex encodes an Index to bytes using gob encoding.
// Useful for keeping the selected route across process restarts during a run.
//
// Example:
//
//	idx, _ := route.Build(polyline)
//	data, err := route.SerializeIndex(idx)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/path/to/cache/route.gob", data, 0644)
func SerializeIndex(idx *Index) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeIndexToWriter(idx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeIndex decodes an Index from bytes using gob encoding.
// The decoded index is checked against its invariants so a corrupted cache is
// rejected instead of producing wrong progress values.
//
// Example:
//
//	data, _ := os.ReadFile("/path/to/cache/route.gob")
//	idx, err := route.DeserializeIndex(data)
//	if err != nil {
//	    // Cache is corrupted or invalid, rebuild from the polyline
//	    idx, _ = route.Build(polyline)
//	}
func DeserializeIndex(data []byte) (*Index, error) {
	return DeserializeIndexFromReader(bytes.NewReader(data))
}

// SerializeIndexToFile writes an Index to a file using gob encoding.
func SerializeIndexToFile(idx *Index, filepath string) error {
	data, err := SerializeIndex(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// DeserializeIndexFromFile reads an Index from a gob file.
//
// Example:
//
//	idx, err := route.DeserializeIndexFromFile("/cache/route.gob")
//	if err != nil {
//	    // Cache miss or corrupted
//	}
func DeserializeIndexFromFile(filepath string) (*Index, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeIndex(data)
}

// SerializeIndexToWriter writes an Index to an io.Writer using gob encoding.
func SerializeIndexToWriter(idx *Index, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(idx); err != nil {
		return fmt.Errorf("failed to encode route index: %w", err)
	}
	return nil
}

// DeserializeIndexFromReader reads an Index from an io.Reader using gob encoding.
func DeserializeIndexFromReader(r io.Reader) (*Index, error) {
	var idx Index
	if err := gob.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("failed to decode route index: %w", err)
	}
	if err := idx.check(); err != nil {
		return nil, err
	}
	return &idx, nil
}

func (idx *Index) check() error {
	n := len(idx.Points)
	if n < 2 {
		return &InvalidRouteError{Points: n, Reason: "at least 2 points required"}
	}
	if len(idx.SegmentLengths) != n-1 || len(idx.SegmentBearings) != n-1 || len(idx.CumulativeDistance) != n {
		return &InvalidRouteError{Points: n, Reason: "index arrays do not match point count"}
	}
	if idx.CumulativeDistance[0] != 0 {
		return &InvalidRouteError{Points: n, Reason: "cumulative distance must start at 0"}
	}
	return nil
}
