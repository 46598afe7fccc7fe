package cache

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/pigeon/pkg/coords"
)

// KeyPrefix starts every layout key.
const KeyPrefix = "preprocessed_"

// LayoutKey returns the cache key for an algorithm. Characters outside
// [A-Za-z0-9_-] are replaced so the key is always a safe file name.
func LayoutKey(algorithm string) string {
	var b strings.Builder
	b.WriteString(KeyPrefix)
	for _, r := range algorithm {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Entry is one cached normalized point.
type Entry struct {
	Index int
	X, Y  float64
}

// MarshalJSON encodes the entry as [index, x, y].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{e.Index, e.X, e.Y})
}

// UnmarshalJSON decodes an [index, x, y] triple.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var row []float64
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	if len(row) != 3 {
		return fmt.Errorf("want [index, x, y], got %d values", len(row))
	}
	if row[0] != math.Trunc(row[0]) || row[0] < 0 || row[0] > math.MaxInt32 {
		return fmt.Errorf("index %v is not a non-negative integer", row[0])
	}
	*e = Entry{Index: int(row[0]), X: row[1], Y: row[2]}
	return nil
}

// EncodePoints serializes entries to the cache document format.
func EncodePoints(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// DecodePoints parses a cache document.
func DecodePoints(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

// Entries indexes normalized points by position.
func Entries(points []coords.Normalized) []Entry {
	entries := make([]Entry, len(points))
	for i, p := range points {
		entries[i] = Entry{Index: i, X: p.X, Y: p.Y}
	}
	return entries
}

// Check verifies that entries describe exactly n nodes: one entry per
// index in [0,n) with both coordinates in [0,1]. Any mismatch wraps ErrStale.
//
// A graph that changed without changing its node count still passes.
func Check(entries []Entry, n int) error {
	if len(entries) != n {
		return fmt.Errorf("%w: %d cached points for %d nodes", ErrStale, len(entries), n)
	}
	seen := make([]bool, n)
	for _, e := range entries {
		if e.Index < 0 || e.Index >= n {
			return fmt.Errorf("%w: index %d outside 0..%d", ErrStale, e.Index, n-1)
		}
		if seen[e.Index] {
			return fmt.Errorf("%w: duplicate index %d", ErrStale, e.Index)
		}
		seen[e.Index] = true
		if !unit(e.X) || !unit(e.Y) {
			return fmt.Errorf("%w: point %d (%v, %v) outside the unit square", ErrStale, e.Index, e.X, e.Y)
		}
	}
	return nil
}

// Points checks entries against n and returns them ordered by index.
func Points(entries []Entry, n int) ([]coords.Normalized, error) {
	if err := Check(entries, n); err != nil {
		return nil, err
	}
	points := make([]coords.Normalized, n)
	for _, e := range entries {
		points[e.Index] = coords.Normalized{X: e.X, Y: e.Y}
	}
	return points, nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
