package lvm

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"
	"strings"
)

// Column order of the reports parsed below, see cmd.go:
//
//	vgs: vg_name,vg_size,vg_free,pv_count,vg_attr,vg_uuid
//	pvs: pv_name,vg_name,pv_size,pv_free,pv_attr,pv_uuid
//	lvs: lv_name,vg_name,lv_size,lv_attr,segtype,lv_uuid,stripes,data_stripes,lv_parent,seg_pe_ranges...
var (
	vgColumns = []string{"vg_name", "vg_size", "vg_free", "pv_count", "vg_attr", "vg_uuid"}
	pvColumns = []string{"pv_name", "vg_name", "pv_size", "pv_free", "pv_attr", "pv_uuid"}
	lvColumns = []string{"lv_name", "vg_name", "lv_size", "lv_attr", "segtype", "lv_uuid",
		"stripes", "data_stripes", "lv_parent"}
)

// ParseVolumeGroupNames reads `vgs -o vg_name`. Blank input gives an empty list.
func ParseVolumeGroupNames(text string) []string {
	names := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

// ParseVolumeGroup reads one line of the volume group detail report.
// Six fields are required, extra fields are ignored. A blank line is an
// empty report and yields ok == false with no error.
func ParseVolumeGroup(line string) (vg VolumeGroup, ok bool, err error) {
	if strings.TrimSpace(line) == "" {
		return VolumeGroup{}, false, nil
	}
	if vg, err = parseVolumeGroupLine(1, line); err != nil {
		return VolumeGroup{}, false, err
	}
	return vg, true, nil
}

// ParseVolumeGroups reads the detail report for any number of volume groups.
func ParseVolumeGroups(text string) ([]VolumeGroup, error) {
	vgs := make([]VolumeGroup, 0)
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		vg, err := parseVolumeGroupLine(i+1, line)
		if err != nil {
			return nil, err
		}
		vgs = append(vgs, vg)
	}
	return vgs, nil
}

func parseVolumeGroupLine(n int, line string) (VolumeGroup, error) {
	vals := splitFields(line)
	if len(vals) < len(vgColumns) {
		return VolumeGroup{}, missingField("vgs", n, vgColumns[len(vals)], line)
	}
	var (
		vg  = VolumeGroup{Name: vals[0], Attr: vals[4], UUID: vals[5]}
		err error
	)
	if vg.Name == "" {
		return VolumeGroup{}, missingField("vgs", n, "vg_name", line)
	}
	if vg.Size, err = ParseBytes(vals[1]); err != nil {
		return VolumeGroup{}, badField("vgs", n, "vg_size", line, err)
	}
	if vg.Free, err = ParseBytes(vals[2]); err != nil {
		return VolumeGroup{}, badField("vgs", n, "vg_free", line, err)
	}
	if vg.PvCount, err = ParseCount(vals[3]); err != nil {
		return VolumeGroup{}, badField("vgs", n, "pv_count", line, err)
	}
	if vg.Free > vg.Size {
		return VolumeGroup{}, badField("vgs", n, "vg_free", line,
			errors.Errorf("free %d exceeds size %d", vg.Free, vg.Size))
	}
	return vg, nil
}

// ParsePhysicalVolumes reads the pvs report. Only the device path is required;
// a missing or empty vg_name marks an unassigned physical volume.
func ParsePhysicalVolumes(text string) ([]PhysicalVolume, error) {
	pvs := make([]PhysicalVolume, 0)
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pv, err := parsePhysicalVolumeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		pvs = append(pvs, pv)
	}
	return pvs, nil
}

func parsePhysicalVolumeLine(n int, line string) (PhysicalVolume, error) {
	vals := splitFields(line)
	pv := PhysicalVolume{Path: vals[0]}
	if pv.Path == "" {
		return PhysicalVolume{}, missingField("pvs", n, "pv_name", line)
	}
	if len(vals) > 1 {
		pv.VgName = vals[1]
	}
	var err error
	if len(vals) > 2 && vals[2] != "" {
		if pv.Size, err = ParseBytes(vals[2]); err != nil {
			return PhysicalVolume{}, badField("pvs", n, "pv_size", line, err)
		}
	}
	if len(vals) > 3 && vals[3] != "" {
		if pv.Free, err = ParseBytes(vals[3]); err != nil {
			return PhysicalVolume{}, badField("pvs", n, "pv_free", line, err)
		}
	}
	if len(vals) > 4 {
		pv.Attr = vals[4]
	}
	if len(vals) > 5 {
		pv.UUID = vals[5]
	}
	return pv, nil
}

// ParseLogicalVolumes reads the lvs report. lvs prints one line per segment,
// so a volume can appear on several lines: the first line makes the record
// and the ranges of later lines are appended to its segments.
func ParseLogicalVolumes(text string) ([]LogicalVolume, error) {
	lvs := orderedmap.NewOrderedMap[string, *LogicalVolume]()
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lv, err := parseLogicalVolumeLine(i+1, line)
		if err != nil {
			return nil, err
		}
		if prev, ok := lvs.Get(lv.key()); ok {
			prev.Segments = append(prev.Segments, lv.Segments...)
			continue
		}
		lvs.Set(lv.key(), &lv)
	}
	out := make([]LogicalVolume, 0, lvs.Len())
	for el := lvs.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value)
	}
	return out, nil
}

func parseLogicalVolumeLine(n int, line string) (LogicalVolume, error) {
	vals := splitFields(line)
	if len(vals) < len(lvColumns) {
		return LogicalVolume{}, missingField("lvs", n, lvColumns[len(vals)], line)
	}
	var (
		lv = LogicalVolume{
			Name:    vals[0],
			VgName:  vals[1],
			Attr:    vals[3],
			SegType: SegType(vals[4]),
			UUID:    vals[5],
			Parent:  vals[8],
		}
		err error
	)
	if lv.Name == "" {
		return LogicalVolume{}, missingField("lvs", n, "lv_name", line)
	}
	if lv.Size, err = ParseBytes(vals[2]); err != nil {
		return LogicalVolume{}, badField("lvs", n, "lv_size", line, err)
	}
	// stripe columns are blank for segment types that have no stripes
	if lv.Stripes, err = optionalCount(vals[6]); err != nil {
		return LogicalVolume{}, badField("lvs", n, "stripes", line, err)
	}
	if lv.DataStripes, err = optionalCount(vals[7]); err != nil {
		return LogicalVolume{}, badField("lvs", n, "data_stripes", line, err)
	}
	if lv.Segments, err = ParseSegments(vals[len(lvColumns):]); err != nil {
		return LogicalVolume{}, badField("lvs", n, "seg_pe_ranges", line, err)
	}
	return lv, nil
}

func optionalCount(tok string) (uint16, error) {
	if tok == "" {
		return 0, nil
	}
	return ParseCount(tok)
}

func splitFields(line string) []string {
	vals := strings.Split(strings.TrimSpace(line), reportSeparator)
	for i := range vals {
		vals[i] = strings.TrimSpace(vals[i])
	}
	return vals
}
