package address

import (
	"strings"

	"github.com/steosofficial/steosaddress/token"
)

// --- РАЗБОР ЭЛЕМЕНТА С УЛИЦАМИ ---

// ClassifyItem распознает элемент адреса с позиции i: населенный пункт, улицу или
// любой элемент ClassifyBare. prev - предыдущий элемент последовательности.
func (c *Context) ClassifyItem(i int, prev *Item) *Item {
	return c.classifyItem(i, false, prev)
}

func (c *Context) classifyItem(i int, prefixBefore bool, prev *Item) *Item {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	cacheable := prev == nil && !prefixBefore && c.atTopLevel()
	if cacheable {
		if it, ok := c.itemCache[i]; ok {
			return it
		}
	}
	res, ok := c.leveledItemAt(i, prefixBefore, prev)
	if !ok {
		return nil
	}
	res = c.joinHouseNumbers(res)
	if cacheable {
		c.itemCache[i] = res
	}
	return res
}

// leveledItemAt разбирает элемент, поднимая уровень вложенности на время разбора.
// ok=false - предел вложенности исчерпан.
func (c *Context) leveledItemAt(i int, prefixBefore bool, prev *Item) (res *Item, ok bool) {
	if !enter(&c.itemLevel, maxItemLevel) {
		return nil, false
	}
	defer leave(&c.itemLevel)
	return c.itemAt(i, prefixBefore, prev), true
}

// joinHouseNumbers склеивает номер дома с продолжением через дефис или черту:
// "д. 5-7", "д. 12/3-1", "д. 4-Б".
func (c *Context) joinHouseNumbers(res *Item) *Item {
	if res == nil || res.Value == "" || !res.is(ItemHouse, ItemBuilding, ItemCorpus, ItemPlot) {
		return res
	}
	sep := c.tok(res.End + 1)
	if c.tok(res.End).IsWhitespaceAfter() || !(sep.IsHyphen() || sep.IsCharOf("\\/")) || sep.IsWhitespaceAfter() {
		return res
	}
	if n := c.ClassifyBare(res.End+2, nil); n.is(ItemNumber) {
		r := res.withSpan(res.Begin, n.End)
		r.Value += joinSep(sep) + n.Value
		if sep2 := c.tok(r.End + 1); (sep2.IsHyphen() || sep2.IsCharOf("\\/")) && !sep2.IsWhitespaceBefore() &&
			!sep2.IsWhitespaceAfter() {
			if n2 := c.ClassifyBare(r.End+2, nil); n2.is(ItemNumber) {
				r.Value += joinSep(sep2) + n2.Value
				r.End = n2.End
			}
		}
		return r
	}
	if l := c.tok(res.End + 2); l.IsLetters() && l.Length() == 1 && l.Chars.IsAllUpper {
		r := res.withSpan(res.Begin, res.End+2)
		r.Value += "-" + l.Term
		return r
	}
	return res
}

func (c *Context) itemAt(i int, prefixBefore bool, prev *Item) *Item {
	t := c.tok(i)
	if t.IsReferent(token.Geo) {
		if r := c.geoItem(i); r != nil {
			return r
		}
	}
	kvart := false
	if prev != nil && t.IsValueOf("КВ", "КВАРТ") {
		if prev.is(ItemHouse, ItemNumber, ItemBuilding, ItemFloor, ItemPorch, ItemCorpus, ItemCorpusOrFlat, ItemDetail) {
			return c.ClassifyBare(i, prev)
		}
		kvart = true
	}
	// "поз. 5" - номер по генплану.
	if prev != nil && t.IsValueOf("П", "ПОЗ", "ПОЗИЦИЯ") && (c.addressMode() || prev.is(ItemStreet, ItemCity, ItemGenplan, ItemPlot)) {
		j := i + 1
		if c.tok(j).IsChar('.') {
			j++
		}
		if n := c.ClassifyBare(j, nil); n.is(ItemNumber, ItemGenplan) {
			r := n.withSpan(i, n.End)
			r.Kind = ItemNumber
			r.genplan = true
			return r
		}
	}
	pure := c.ClassifyBare(i, prev)
	if pure != nil && !pure.is(ItemNumber, ItemKilometer) && pure.Value != "" {
		if !kvart {
			return pure
		}
		// "кв. 12, уч. 5" - квартал, а не квартира.
		if n := c.ClassifyBare(c.skipComma(pure.End+1), nil); !n.is(ItemPlot) {
			return pure
		}
	}
	if j := c.territoryEnd(i); j >= 0 {
		if n := c.ClassifyItem(j+1, nil); n.is(ItemStreet) && n.Street != nil &&
			(n.Street.Kind == StreetRoad || n.Street.Kind == StreetRailway) {
			return n.withSpan(i, n.End)
		}
	}
	if r, done := c.streetItem(i, prefixBefore, prev); done {
		return r
	}
	if pure != nil {
		return pure
	}
	// "г. Москва, Б 12" - микрорайон Б.
	if t.IsLetters() && t.Length() == 1 && prev.is(ItemCity) && c.addressMode() {
		j := i + 1
		if c.tok(j).IsHyphen() {
			j++
		}
		if ch := houseLetter(t); ch != "" && c.tok(j).IsNumber() {
			st := &Street{}
			st.AddType("микрорайон")
			st.AddName(ch)
			st.Number = c.tok(j).Number.Value
			return &Item{Kind: ItemStreet, Begin: i, End: j, Street: st}
		}
	}
	return nil
}

// geoItem - населенный пункт, регион или страна, распознанные токенизатором.
func (c *Context) geoItem(i int) *Item {
	e := c.tok(i).Entity
	// "Ленина-12" в строке адреса: имя улицы, совпавшее с городом.
	if c.tok(i+1).IsHyphen() && c.addressMode() {
		if sp := c.classifySpecial(i, nil); len(sp) > 0 && sp[0].Kind == FragName {
			return nil
		}
	}
	kind := ItemRegion
	switch {
	case e.IsCity:
		kind = ItemCity
	case e.IsState:
		kind = ItemCountry
	}
	return &Item{Kind: kind, Begin: i, End: i, Geo: e}
}

// territoryEnd - "территория", "тер.", "на территории": последний индекс или -1.
func (c *Context) territoryEnd(i int) int {
	j := i
	if c.tok(j).IsValue("НА") {
		j++
	}
	if !isWordOf(c.tok(j), "ТЕРРИТОРИЯ", "ТЕРИТОРІЯ") && !c.tok(j).IsValueOf("ТЕР", "ТЕРР") {
		return -1
	}
	if c.tok(j + 1).IsChar('.') {
		j++
	}
	return j
}

// streetItem - улица с позиции i. done - разбор окончателен, даже если результат nil.
func (c *Context) streetItem(i int, prefixBefore bool, prev *Item) (*Item, bool) {
	t := c.tok(i)
	frags := c.ClassifyFragments(i, c.opts.MaxStreetItems)
	if len(frags) == 0 {
		return nil, false
	}
	rt := c.AssembleStreet(frags, prefixBefore, false, prev.is(ItemStreet), nil)
	if rt == nil && frags[0].Kind != FragFix {
		switch f0 := frags[0]; {
		case t.IsReferent(token.Org):
			f := &Fragment{Kind: FragFix, Begin: i, End: i, Org: t.Entity}
			rt = c.AssembleStreet([]*Fragment{f}, prefixBefore || prev != nil, false, false, nil)
		case len(frags) == 1 && f0.Kind == FragNoun && !c.isNewlineAfter(f0) && c.tok(f0.End+1).IsReferent(token.Org):
			typ := strings.ToLower(f0.canonic())
			f := &Fragment{Kind: FragFix, Begin: i, End: f0.End + 1, Org: c.tok(f0.End + 1).Entity}
			if rt = c.AssembleStreet([]*Fragment{f}, true, false, false, nil); rt != nil && rt.Street != nil {
				rt.Street.Types = []string{typ}
				rt.Street.Kind = StreetUndefined
			}
		}
	}
	if rt == nil && prev.is(ItemCity) && c.addressMode() && len(frags) == 1 {
		f := frags[0]
		if f.Kind == FragName || f.Kind == FragStdName || f.Kind == FragStdAdjective ||
			f.Kind == FragNumber && c.tok(f.Begin).Morph.IsAdjective() {
			rt = c.AssembleStreet(frags, true, false, false, nil)
		}
	}
	if rt != nil {
		if rt.Begin > frags[0].Begin {
			return nil, true
		}
		if c.hasNewlineBetween(rt.Begin, rt.End) && !c.geoBefore(rt.Begin) &&
			!(frags[0].Kind == FragNoun && strings.Contains(frags[0].canonic(), "ДОРОГА")) {
			if aat := c.ClassifyBare(rt.End+1, nil); !aat.is(ItemHouse) {
				return nil, true
			}
		}
		if c.tok(rt.End+1).IsCharOf("\\/") && !c.checkHouseAfter(rt.End+2, false, false) {
			if frags2 := c.ClassifyFragments(rt.End+2, c.opts.MaxStreetItems); len(frags2) > 0 {
				if rt2 := c.AssembleStreet(frags2, prefixBefore, false, true, rt.Street); rt2 != nil && rt2.Street != nil {
					rt = rt.withSpan(rt.Begin, rt2.End)
					rt.Street2 = rt2.Street
				}
			}
		}
		return rt, true
	}
	// "ул. - , д. 5" - улица не указана.
	if f0 := frags[0]; len(frags) == 1 && f0.Kind == FragNoun {
		if n := c.tok(f0.End + 1); n.IsHyphen() || n.IsChar('_') || n.IsValue("НЕТ") {
			if att := c.ClassifyBare(c.skipComma(f0.End+2), nil); att.is(ItemHouse, ItemCorpus, ItemBuilding) {
				st := &Street{}
				st.AddType(strings.ToLower(f0.canonic()))
				return &Item{Kind: ItemStreet, Begin: i, End: f0.End + 1, Street: st}, true
			}
		}
	}
	return nil, false
}
