package ncs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
)

// minReferenceFields is the smallest row: two key fields plus R, G and B.
const minReferenceFields = 5

// LookupTable maps NCS keys such as "S 1050-Y90R" to RGB values. It is built
// once by LoadLookupTable and read-only afterwards.
type LookupTable struct {
	entries map[string]RGB
}

// NewLookupTable builds a table from an existing map. The map is copied.
func NewLookupTable(entries map[string]RGB) *LookupTable {
	copied := make(map[string]RGB, len(entries))
	for key, value := range entries {
		copied[key] = value
	}
	return &LookupTable{entries: copied}
}

// Lookup returns the RGB value stored for key.
func (lt *LookupTable) Lookup(key string) (RGB, bool) {
	rgb, ok := lt.entries[key]
	return rgb, ok
}

// Len returns the number of entries.
func (lt *LookupTable) Len() int {
	return len(lt.entries)
}

// Keys returns all keys in sorted order.
func (lt *LookupTable) Keys() []string {
	keys := make([]string, 0, len(lt.entries))
	for key := range lt.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// LoadLookupTable reads a whitespace-separated reference listing. The key of
// each row is its first two fields joined by one space and the value is its
// last three fields. Any malformed row fails the whole load. Blank lines are
// ignored. When a key repeats, the later row wins.
func LoadLookupTable(r io.Reader) (*LookupTable, error) {
	entries := make(map[string]RGB)

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		key, rgb, err := parseReferenceFields(fields)
		if err != nil {
			return nil, &ReferenceLineError{Line: lineNumber, Text: line, Reason: err.Error()}
		}
		entries[key] = rgb
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference table: %w", err)
	}

	return &LookupTable{entries: entries}, nil
}

// LoadLookupFile loads a reference file from disk. Files ending in .xz or .gz
// are decompressed while reading.
func LoadLookupFile(path string) (*LookupTable, error) {
	file, err := os.Open(path) // #nosec G304 - reference path comes from run configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		xzr, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzr
	case ".gz":
		gzr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		reader = gzr
	}

	table, err := LoadLookupTable(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func parseReferenceFields(fields []string) (string, RGB, error) {
	if len(fields) < minReferenceFields {
		return "", RGB{}, fmt.Errorf("expected at least %d fields, got %d", minReferenceFields, len(fields))
	}

	var channels [3]uint8
	for index, field := range fields[len(fields)-3:] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return "", RGB{}, fmt.Errorf("channel %q is not an integer", field)
		}
		if value < 0 || value > 255 {
			return "", RGB{}, fmt.Errorf("channel %d out of range 0-255", value)
		}
		channels[index] = uint8(value)
	}

	key := fields[0] + " " + fields[1]
	return key, RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
