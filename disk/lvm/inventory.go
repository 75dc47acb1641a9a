package lvm

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"strconv"
)

// Inventory is one consistent snapshot of the lvm reports. Membership is
// resolved by comparing names at query time; nothing links records together.
// An Inventory is never modified after it is built.
type Inventory struct {
	vgs     []VolumeGroup
	pvs     []PhysicalVolume
	lvs     []LogicalVolume
	lvIndex map[string]int
	// backing devices collected by per-volume segment queries, keyed by vg/lv
	devices map[string][]Segment
}

func NewInventory(vgs []VolumeGroup, pvs []PhysicalVolume, lvs []LogicalVolume) *Inventory {
	inv := &Inventory{
		vgs:     append([]VolumeGroup(nil), vgs...),
		pvs:     append([]PhysicalVolume(nil), pvs...),
		lvs:     append([]LogicalVolume(nil), lvs...),
		lvIndex: make(map[string]int, len(lvs)),
		devices: make(map[string][]Segment),
	}
	for i, lv := range inv.lvs {
		if _, ok := inv.lvIndex[lv.key()]; !ok {
			inv.lvIndex[lv.key()] = i
		}
	}
	return inv
}

// withDevices returns a copy of inv holding the given segment query results.
func (inv *Inventory) withDevices(devices map[string][]Segment) *Inventory {
	out := NewInventory(inv.vgs, inv.pvs, inv.lvs)
	for k, v := range devices {
		out.devices[k] = append([]Segment(nil), v...)
	}
	return out
}

func (inv *Inventory) VolumeGroups() []VolumeGroup {
	return append([]VolumeGroup(nil), inv.vgs...)
}

func (inv *Inventory) PhysicalVolumes() []PhysicalVolume {
	return append([]PhysicalVolume(nil), inv.pvs...)
}

func (inv *Inventory) LogicalVolumes() []LogicalVolume {
	out := make([]LogicalVolume, len(inv.lvs))
	for i, lv := range inv.lvs {
		out[i] = copyLV(lv)
	}
	return out
}

func (inv *Inventory) VolumeGroup(name string) (VolumeGroup, bool) {
	for _, vg := range inv.vgs {
		if vg.Name == name {
			return vg, true
		}
	}
	return VolumeGroup{}, false
}

// LogicalVolume looks a volume up by name; brackets on name are optional.
func (inv *Inventory) LogicalVolume(vgName, lvName string) (LogicalVolume, bool) {
	i, ok := inv.lvIndex[lvKey(vgName, lvName)]
	if !ok {
		return LogicalVolume{}, false
	}
	return copyLV(inv.lvs[i]), true
}

// PhysicalVolumesIn returns the device paths of the physical volumes in vgName,
// in report order.
func (inv *Inventory) PhysicalVolumesIn(vgName string) []string {
	paths := make([]string, 0)
	for _, pv := range inv.pvs {
		if pv.VgName == vgName {
			paths = append(paths, pv.Path)
		}
	}
	return paths
}

// LogicalVolumesIn returns the names of all logical volumes in vgName,
// sub-volumes included, in report order.
func (inv *Inventory) LogicalVolumesIn(vgName string) []string {
	names := make([]string, 0)
	for _, lv := range inv.lvs {
		if lv.VgName == vgName {
			names = append(names, lv.Name)
		}
	}
	return names
}

func (inv *Inventory) LogicalVolumeRecordsIn(vgName string) []LogicalVolume {
	records := make([]LogicalVolume, 0)
	for _, lv := range inv.lvs {
		if lv.VgName == vgName {
			records = append(records, copyLV(lv))
		}
	}
	return records
}

// UserVolumesIn is LogicalVolumeRecordsIn without RAID images, metadata and
// other hidden volumes.
func (inv *Inventory) UserVolumesIn(vgName string) []LogicalVolume {
	records := make([]LogicalVolume, 0)
	for _, lv := range inv.lvs {
		if lv.VgName == vgName && !lv.IsSubVolume() {
			records = append(records, copyLV(lv))
		}
	}
	return records
}

// SubVolumesOf returns the volumes whose parent is lvName.
func (inv *Inventory) SubVolumesOf(vgName, lvName string) []LogicalVolume {
	parent := stripBrackets(lvName)
	records := make([]LogicalVolume, 0)
	for _, lv := range inv.lvs {
		if lv.VgName == vgName && lv.Parent != "" && stripBrackets(lv.Parent) == parent {
			records = append(records, copyLV(lv))
		}
	}
	return records
}

func (inv *Inventory) UnassignedPhysicalVolumes() []PhysicalVolume {
	pvs := make([]PhysicalVolume, 0)
	for _, pv := range inv.pvs {
		if !pv.IsAssigned() {
			pvs = append(pvs, pv)
		}
	}
	return pvs
}

// BackingDevices returns the real devices under a logical volume. RAID
// sub-volume references are followed through the records of this inventory,
// unless a per-volume segment query already answered for the volume.
func (inv *Inventory) BackingDevices(vgName, lvName string) ([]Segment, error) {
	if segs, ok := inv.devices[lvKey(vgName, lvName)]; ok {
		return append([]Segment(nil), segs...), nil
	}
	lv, ok := inv.LogicalVolume(vgName, lvName)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "logical volume %s/%s", vgName, lvName)
	}
	return Flatten(lv.Segments, func(name string) ([]Segment, error) {
		sub, ok := inv.LogicalVolume(vgName, name)
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "sub-volume %s/%s", vgName, name)
		}
		return sub.Segments, nil
	})
}

// Row is one line of the overview table: a volume group with one of its
// physical volumes and one of its logical volumes side by side.
type Row struct {
	VgName string `json:"vg_name"`
	PvName string `json:"pv_name"`
	LvName string `json:"lv_name"`
}

// Rows pairs physical and logical volumes of each volume group line by line.
// A volume group without members still gets a row of its own.
func (inv *Inventory) Rows() []Row {
	rows := make([]Row, 0)
	for _, vg := range inv.vgs {
		group := make([]Row, 0)
		for _, pv := range inv.PhysicalVolumesIn(vg.Name) {
			group = append(group, Row{VgName: vg.Name, PvName: pv})
		}
		next := 0
		for _, lv := range inv.UserVolumesIn(vg.Name) {
			if next < len(group) {
				group[next].LvName = lv.Name
			} else {
				group = append(group, Row{VgName: vg.Name, LvName: lv.Name})
			}
			next++
		}
		if len(group) == 0 {
			group = append(group, Row{VgName: vg.Name})
		}
		rows = append(rows, group...)
	}
	return rows
}

// Fingerprint hashes the record contents; two inventories built from the same
// reports have the same fingerprint.
func (inv *Inventory) Fingerprint() uint64 {
	d := xxhash.New()
	w := func(fields ...string) {
		for _, f := range fields {
			_, _ = d.WriteString(f)
			_, _ = d.WriteString("\x00")
		}
		_, _ = d.WriteString("\n")
	}
	u := func(v uint64) string { return strconv.FormatUint(v, 10) }
	for _, vg := range inv.vgs {
		w("vg", vg.Name, u(vg.Size), u(vg.Free), u(uint64(vg.PvCount)), vg.Attr, vg.UUID)
	}
	for _, pv := range inv.pvs {
		w("pv", pv.Path, pv.VgName, u(pv.Size), u(pv.Free), pv.Attr, pv.UUID)
	}
	for _, lv := range inv.lvs {
		w("lv", lv.Name, lv.VgName, u(lv.Size), lv.Attr, string(lv.SegType), lv.UUID,
			u(uint64(lv.Stripes)), u(uint64(lv.DataStripes)), lv.Parent)
		for _, seg := range lv.Segments {
			w("seg", seg.Device, u(seg.Start), u(seg.Count))
		}
	}
	return d.Sum64()
}

func copyLV(lv LogicalVolume) LogicalVolume {
	lv.Segments = append([]Segment(nil), lv.Segments...)
	return lv
}
