package lvm

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"
	"math"
	"strconv"
	"strings"
)

// ParseSegments turns seg_pe_ranges columns into segments. Each column may
// hold several "<device>:<start>-<end>" pieces separated by the report
// delimiter or by blanks (newer lvm releases use blanks inside the column).
// A range that does not parse becomes (0, 0); a piece without a colon fails.
func ParseSegments(fields []string) ([]Segment, error) {
	segs := make([]Segment, 0, len(fields))
	for _, field := range fields {
		for _, piece := range splitPieces(field) {
			seg, err := parseSegment(piece)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

// ResolveSegmentDevices reads the output of a dedicated seg_pe_ranges query
// for one logical volume. Devices are returned once each, carrying the last
// range seen for them. Callers must not depend on the order.
func ResolveSegmentDevices(text string) ([]Segment, error) {
	devices := orderedmap.NewOrderedMap[string, Segment]()
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		segs, err := ParseSegments(strings.Split(line, reportSeparator))
		if err != nil {
			return nil, &ReportError{Report: "lvs", Line: i + 1, Field: "seg_pe_ranges", Text: line, Err: err}
		}
		for _, seg := range segs {
			devices.Set(seg.Device, seg)
		}
	}
	return segmentValues(devices), nil
}

// SegmentLookup returns the segments of the named sub-volume.
type SegmentLookup func(name string) ([]Segment, error)

// Flatten replaces every bracketed sub-volume reference in segs with the
// segments of that sub-volume, recursively, until only real devices remain.
// The result holds each device once.
func Flatten(segs []Segment, lookup SegmentLookup) ([]Segment, error) {
	devices := orderedmap.NewOrderedMap[string, Segment]()
	visiting := make(map[string]bool)
	if err := flattenInto(devices, segs, lookup, visiting); err != nil {
		return nil, err
	}
	return segmentValues(devices), nil
}

func flattenInto(devices *orderedmap.OrderedMap[string, Segment], segs []Segment,
	lookup SegmentLookup, visiting map[string]bool) error {
	for _, seg := range segs {
		if !seg.IsSubVolumeRef() {
			devices.Set(seg.Device, seg)
			continue
		}
		name := stripBrackets(seg.Device)
		if visiting[name] {
			return errors.Errorf("segment tree loops through %s", seg.Device)
		}
		children, err := lookup(name)
		if err != nil {
			return errors.Wrapf(err, "resolve %s", seg.Device)
		}
		visiting[name] = true
		if err := flattenInto(devices, children, lookup, visiting); err != nil {
			return err
		}
		delete(visiting, name)
	}
	return nil
}

func segmentValues(m *orderedmap.OrderedMap[string, Segment]) []Segment {
	out := make([]Segment, 0, m.Len())
	for el := m.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func splitPieces(field string) []string {
	pieces := make([]string, 0, 1)
	for _, part := range strings.Split(field, reportSeparator) {
		pieces = append(pieces, strings.Fields(part)...)
	}
	return pieces
}

func parseSegment(piece string) (Segment, error) {
	idx := strings.Index(piece, ":")
	if idx < 0 {
		return Segment{}, errors.Wrapf(ErrDeviceTokenMissing, "range %q", piece)
	}
	seg := Segment{Device: piece[:idx]}
	seg.Start, seg.Count = parseRange(piece[idx+1:])
	return seg, nil
}

// parseRange reads an inclusive "<start>-<end>" extent range. Garbled text
// yields (0, 0) so one bad range does not discard the volume.
func parseRange(tok string) (start, count uint64) {
	lo, hi, ok := strings.Cut(tok, "-")
	if !ok {
		return 0, 0
	}
	s, err := strconv.ParseUint(lo, 10, 64)
	if err != nil {
		return 0, 0
	}
	e, err := strconv.ParseUint(hi, 10, 64)
	if err != nil || e < s {
		return 0, 0
	}
	// the extent count of 0-MaxUint64 does not fit in a uint64
	if e-s == math.MaxUint64 {
		return 0, 0
	}
	return s, e - s + 1
}
