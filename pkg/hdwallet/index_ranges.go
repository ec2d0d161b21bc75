package hdwallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// MaxNormalIndex is the greatest child index reachable with public-only
// derivation. Hardened indexes start right past it.
const MaxNormalIndex = hdkeychain.HardenedKeyStart - 1

// IndexRange is a single inclusive range of normal derivation indexes.
type IndexRange struct {
	Lo uint32
	Hi uint32
}

// Size returns the number of indexes covered by the range.
func (r IndexRange) Size() uint64 {
	return uint64(r.Hi) - uint64(r.Lo) + 1
}

// Contains returns whether the given index falls within the range bounds.
func (r IndexRange) Contains(index uint32) bool {
	return index >= r.Lo && index <= r.Hi
}

func (r IndexRange) String() string {
	if r.Lo == r.Hi {
		return strconv.FormatUint(uint64(r.Lo), 10)
	}
	return fmt.Sprintf("%d-%d", r.Lo, r.Hi)
}

// IndexRangeSet is an ordered, non-empty collection of inclusive index
// sub-ranges used as the final, variable step of a batched derivation.
// Sub-ranges are kept in the order they were given and overlapping ones are
// not collapsed, so iteration may yield repeated indexes.
type IndexRangeSet struct {
	ranges []IndexRange
}

// NewIndexRangeSet returns a set from the given sub-ranges or
// ErrRangeNotSpecified if there is none.
func NewIndexRangeSet(ranges []IndexRange) (*IndexRangeSet, error) {
	if len(ranges) <= 0 {
		return nil, ErrRangeNotSpecified
	}
	for pos, r := range ranges {
		if r.Lo > r.Hi || r.Hi > MaxNormalIndex {
			return nil, WrongRangeError{Token: r.String(), Position: pos}
		}
	}
	return &IndexRangeSet{ranges: ranges}, nil
}

// ParseIndexRanges parses a comma-separated list of range tokens, each one
// being either a single index or a "lo-hi" pair of inclusive bounds.
// Whitespace around tokens is trimmed; order and overlaps are preserved.
func ParseIndexRanges(text string) (*IndexRangeSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrRangeNotSpecified
	}

	ranges := make([]IndexRange, 0)
	for pos, elem := range strings.Split(text, ",") {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			return nil, EmptyRangeError{Position: pos}
		}

		bounds := strings.Split(elem, "-")
		switch len(bounds) {
		case 1:
			index, err := parseIndex(bounds[0], pos)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, IndexRange{Lo: index, Hi: index})
		case 2:
			lo, err := parseIndex(bounds[0], pos)
			if err != nil {
				return nil, err
			}
			hi, err := parseIndex(bounds[1], pos)
			if err != nil {
				return nil, err
			}
			if lo > hi {
				return nil, WrongRangeError{Token: elem, Position: pos}
			}
			ranges = append(ranges, IndexRange{Lo: lo, Hi: hi})
		default:
			return nil, WrongRangeError{Token: elem, Position: pos}
		}
	}

	return NewIndexRangeSet(ranges)
}

func parseIndex(token string, pos int) (uint32, error) {
	token = strings.TrimSpace(token)
	index, err := strconv.ParseUint(token, 10, 32)
	if err != nil || index > uint64(MaxNormalIndex) {
		return 0, WrongIndexNumberError{Token: token, Position: pos}
	}
	return uint32(index), nil
}

// String formats the set back to the textual grammar accepted by
// ParseIndexRanges.
func (s *IndexRangeSet) String() string {
	elems := make([]string, 0, len(s.ranges))
	for _, r := range s.ranges {
		elems = append(elems, r.String())
	}
	return strings.Join(elems, ",")
}

// Ranges returns a copy of the ordered sub-ranges.
func (s *IndexRangeSet) Ranges() []IndexRange {
	ranges := make([]IndexRange, len(s.ranges))
	copy(ranges, s.ranges)
	return ranges
}

// Bounds returns the minimum and maximum index across all sub-ranges.
func (s *IndexRangeSet) Bounds() (uint32, uint32) {
	min, max := s.ranges[0].Lo, s.ranges[0].Hi
	for _, r := range s.ranges[1:] {
		if r.Lo < min {
			min = r.Lo
		}
		if r.Hi > max {
			max = r.Hi
		}
	}
	return min, max
}

// Contains returns whether any sub-range covers the given index.
func (s *IndexRangeSet) Contains(index uint32) bool {
	for _, r := range s.ranges {
		if r.Contains(index) {
			return true
		}
	}
	return false
}

// Count returns the total number of indexes yielded by a full iteration,
// counting repeats across overlapping sub-ranges.
func (s *IndexRangeSet) Count() uint64 {
	var count uint64
	for _, r := range s.ranges {
		count += r.Size()
	}
	return count
}

// Iterator returns a fresh iterator over every covered index, sub-range by
// sub-range. Iterators do not share any cursor.
func (s *IndexRangeSet) Iterator() *IndexIterator {
	return &IndexIterator{ranges: s.ranges, current: s.ranges[0].Lo}
}

// IndexIterator walks an IndexRangeSet lazily. The zero value is not usable,
// use IndexRangeSet.Iterator.
type IndexIterator struct {
	ranges  []IndexRange
	pos     int
	current uint32
	done    bool
}

// Next returns the next covered index, or false once the set is exhausted.
func (it *IndexIterator) Next() (uint32, bool) {
	if it.done || it.pos >= len(it.ranges) {
		return 0, false
	}

	index := it.current
	if index < it.ranges[it.pos].Hi {
		it.current++
		return index, true
	}

	// end of the current sub-range, move to the next one
	it.pos++
	if it.pos < len(it.ranges) {
		it.current = it.ranges[it.pos].Lo
	} else {
		it.done = true
	}
	return index, true
}
