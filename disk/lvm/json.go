package lvm

import (
	"fmt"
	"github.com/tidwall/sjson"
)

// JSON renders the inventory as
//
//	{"vgs":[{..., "pvs":[...], "lvs":[...]}], "pvs":[...], "lvs":[...]}
//
// where the per-group "pvs" and "lvs" lists hold member names.
func (inv *Inventory) JSON() (string, error) {
	var (
		json_ = `{"vgs":[],"pvs":[],"lvs":[]}`
		err   error
	)
	set := func(path string, value interface{}) {
		if err == nil {
			json_, err = sjson.Set(json_, path, value)
		}
	}
	for i, vg := range inv.vgs {
		set(fmt.Sprintf("vgs.%d", i), vg)
		set(fmt.Sprintf("vgs.%d.pvs", i), inv.PhysicalVolumesIn(vg.Name))
		set(fmt.Sprintf("vgs.%d.lvs", i), inv.LogicalVolumesIn(vg.Name))
	}
	for i, pv := range inv.pvs {
		set(fmt.Sprintf("pvs.%d", i), pv)
	}
	for i, lv := range inv.lvs {
		set(fmt.Sprintf("lvs.%d", i), lv)
		set(fmt.Sprintf("lvs.%d.sub_volume", i), lv.IsSubVolume())
	}
	if err != nil {
		return "", err
	}
	return json_, nil
}
