package lvm_test

import (
	"github.com/tidwall/gjson"
	gc "gopkg.in/check.v1"
)

type jsonSuite struct{}

var _ = gc.Suite(&jsonSuite{})

func (s *jsonSuite) TestInventoryJSON(c *gc.C) {
	doc, err := parseInventory(c).JSON()
	c.Assert(err, gc.IsNil)
	c.Assert(gjson.Valid(doc), gc.Equals, true)

	c.Assert(gjson.Get(doc, "vgs.#").Int(), gc.Equals, int64(2))
	c.Assert(gjson.Get(doc, "vgs.0.name").String(), gc.Equals, "vg01")
	c.Assert(gjson.Get(doc, "vgs.0.size").Uint(), gc.Equals, uint64(120028397568))
	c.Assert(gjson.Get(doc, "vgs.0.pvs.#").Int(), gc.Equals, int64(4))
	c.Assert(gjson.Get(doc, "vgs.0.lvs.#").Int(), gc.Equals, int64(10))
	c.Assert(gjson.Get(doc, "vgs.1.lvs").Raw, gc.Equals, "[]")

	c.Assert(gjson.Get(doc, "pvs.#").Int(), gc.Equals, int64(6))
	c.Assert(gjson.Get(doc, "pvs.5.vg_name").String(), gc.Equals, "")

	c.Assert(gjson.Get(doc, `lvs.#(name=="lvpub").segtype`).String(), gc.Equals, "raid5")
	c.Assert(gjson.Get(doc, `lvs.#(name=="lvpub").sub_volume`).Bool(), gc.Equals, false)
	c.Assert(gjson.Get(doc, "lvs.1.sub_volume").Bool(), gc.Equals, true)
	c.Assert(gjson.Get(doc, "lvs.1.parent").String(), gc.Equals, "lvpub")
	c.Assert(gjson.Get(doc, "lvs.1.segments.0.device").String(), gc.Equals, "/dev/sdb1")
	c.Assert(gjson.Get(doc, `lvs.#(sub_volume==true)#.name`).Array(), gc.HasLen, 8)
}
