package address

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// --- ЧИСТЫЙ РАЗБОР ЭЛЕМЕНТА ---

// ClassifyBare распознает элемент адреса с позиции i без разбора улиц: индекс, дом,
// корпус, квартиру, уточнение положения. prev - предыдущий элемент (может быть nil),
// он влияет на прочтение неоднозначных типов ("К." после квартиры - комната).
func (c *Context) ClassifyBare(i int, prev *Item) *Item {
	t := c.tok(i)
	if t == nil || t.IsComma() {
		return nil
	}
	ceiling := 0
	if prev.is(ItemStreet) && t.Length() == 1 && t.IsValueOf("С", "Д") {
		ceiling = 1
	}
	if c.itemLevel > ceiling+1 {
		return nil
	}
	cacheable := prev == nil && c.atTopLevel()
	if cacheable {
		if it, ok := c.bareCache[i]; ok {
			return it
		}
	}
	if !enter(&c.pureLevel, maxPureLevel) {
		return nil
	}
	defer leave(&c.pureLevel)
	res := c.bareItem(i, prev)
	if cacheable {
		c.bareCache[i] = res
	}
	return res
}

func (c *Context) matchItem(i int) *ontology.Match { return c.Onto.Items.Match(c.Doc, i) }

func (c *Context) bareItem(i int, prev *Item) *Item {
	t := c.tok(i)
	res := c.pureItem(i, prev)
	if res == nil && token.IsBracket(t, true) && t.WhitespacesAfter < 2 {
		if r := c.pureItem(i+1, prev); r != nil && token.IsBracket(c.tok(r.End+1), false) {
			res = r.withSpan(i, r.End+1)
		}
	}
	// "С 2" после корпуса или дома - строение.
	if res == nil && t.Length() == 1 && t.IsValue("С") && prev.is(ItemCorpus, ItemHouse, ItemStreet) {
		if n := c.pureItem(i+1, nil); n.is(ItemNumber) {
			res = n.withSpan(i, n.End)
			res.Kind = ItemBuilding
			res.BuildingType = BuildingBuilding
		}
	}
	if !res.is(ItemDetail) {
		if det := c.attachDetail(i, nil); det != nil && (res == nil || det.End > res.End) {
			res = det
		}
	}
	if res != nil && c.addressMode() && endsWithDigit(res.Value) {
		l := c.tok(res.End + 1)
		if l.IsLetters() && l.Length() == 1 && l.WhitespacesBefore < 3 && !l.IsNewlineBefore() &&
			!c.isStreetNounAt(res.End+1) && !c.tok(res.End+2).IsReferent(token.Org) {
			if ch := houseLetter(l); ch != "" && ch != "К" && ch != "С" && c.pureItem(res.End+1, nil) == nil {
				res = res.withSpan(res.Begin, res.End+1)
				res.Value += ch
			}
		}
	}
	if res.is(ItemNumber) && isWordOf(c.tok(res.End+1), "ДОЛЯ", "ЧАСТКА") {
		res = res.withSpan(res.Begin, res.End+1)
		res.Kind = ItemPart
		res.Value = "1"
	}
	if res == nil && t.DictionaryClass().IsPreposition() && !c.tok(i+1).IsValue("СТ") {
		if n := c.ClassifyBare(i+1, nil); n != nil && n.Kind != ItemNumber {
			res = n.withSpan(i, n.End)
		}
	}
	return res
}

func endsWithDigit(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && unicode.IsDigit(r)
}

// pureParse - состояние разбора "тип + номер".
type pureParse struct {
	begin int
	m     *ontology.Match
	prev  *Item

	kind  ItemKind
	house HouseType
	build BuildingType

	// nounEnd - конец типа вместе с пометками вроде "общ.".
	nounEnd int
	// at - позиция, с которой ожидается номер.
	at int
}

func (c *Context) pureItem(i int, prev *Item) *Item {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	if t.IsNumber() {
		if it, done := c.numberFirst(i, prev); done {
			return it
		}
	}
	prepos := false
	var m *ontology.Match
	if t.IsPreposition() {
		if m = c.matchItem(i); m == nil {
			if t.Length() > 1 {
				return nil
			}
			if t.IsValue("В") && c.addressMode() {
				if it := c.plotInQuarter(i); it != nil {
					return it
				}
			}
			if !t.IsValueOf("К", "С") {
				i++
				t = c.tok(i)
			}
			prepos = true
		}
	}
	if t == nil {
		return nil
	}
	// ", Б" в конце строки - литера.
	if t.IsLetters() && t.Length() == 1 && !t.IsValueOf("V", "I", "X") && c.tok(i-1).IsComma() &&
		(t.IsNewlineAfter() || c.tok(i+1).IsComma()) {
		if ch := houseLetter(t); ch != "" {
			return &Item{Kind: ItemBuilding, Begin: i, End: i, BuildingType: BuildingLiter, Value: ch}
		}
	}
	if t.IsChar('/') {
		if n := c.ClassifyBare(i+1, prev); n != nil {
			if c.tok(n.End + 1).IsChar('/') {
				return n.withSpan(i, n.End+1)
			}
			if c.tok(n.End).IsChar('/') {
				return n.withSpan(i, n.End)
			}
		}
	}
	// "ЛитераА"
	if src := []rune(t.Source); t.IsLetters() && len(src) == 7 && strings.HasPrefix(t.Term, "ЛИТЕРА") &&
		unicode.IsLower(src[5]) && unicode.IsUpper(src[6]) {
		return &Item{Kind: ItemBuilding, Begin: i, End: i, BuildingType: BuildingLiter, Value: string([]rune(t.Term)[6])}
	}
	if m == nil {
		m = c.matchItem(i)
	}
	p := &pureParse{begin: i, m: m, prev: prev, kind: ItemNumber, at: i, nounEnd: i - 1}
	if m != nil {
		if it, done := c.nounPart(p); done {
			return it
		}
	}
	if it, done := c.valueStart(p); done {
		return it
	}
	var res *Item
	if c.tok(p.at).IsNumber() {
		res = c.numericValue(p)
	} else {
		res = c.otherValue(p)
	}
	if res.is(ItemNumber) && prepos {
		return nil
	}
	return res
}

// numberFirst - число перед типом: "5 этаж", "12 км", шестизначный индекс.
func (c *Context) numberFirst(i int, prev *Item) (*Item, bool) {
	t := c.tok(i)
	if l := t.Length(); (l == 5 || l == 6) && t.Number.Spelling == token.Digit && !t.Number.Adjective {
		return &Item{Kind: ItemZip, Begin: i, End: i, Value: t.Number.Value}, true
	}
	m0 := c.matchItem(i + 1)
	if m0 == nil {
		return nil, false
	}
	typ0 := itemKindOf(m0.Termin)
	after := c.tok(m0.End + 1)
	if !c.tok(m0.End).IsNewlineAfter() && after.IsComma() && c.tok(m0.End+2).IsNumber() && typ0 == ItemFlat {
		return &Item{Kind: ItemHouse, Begin: i, End: i, Value: t.Number.Value, HouseType: HouseHouse}, true
	}
	if typ0 == ItemFlat {
		if n := c.tok(i + 1); n.IsValue("КВ") {
			if n.Source == "кВ" {
				return nil, true
			}
			if sm := c.matchStreet(i + 1); sm != nil && fragKindOf(sm.Termin) == FragNoun && sm.End > m0.End {
				return nil, true
			}
			if u, _ := c.unitAt(i + 1); u != unitNone {
				return nil, true
			}
		}
		if after.IsNumber() && c.tok(m0.End).WhitespacesAfter < 3 && prev.is(ItemStreet, ItemCity) {
			return &Item{Kind: ItemNumber, Begin: i, End: i, Value: t.Number.Value}, true
		}
	}
	if after.IsNumber() || after.IsValue("НЕТ") {
		return nil, false
	}
	switch typ0 {
	case ItemKilometer, ItemFloor, ItemBlock, ItemPorch, ItemFlat, ItemPlot, ItemBox, ItemOffice:
		if n := c.pureItem(m0.End+1, nil); n.is(ItemNumber) {
			return nil, false
		}
		if n := c.pureItem(m0.End, nil); n != nil && n.Value != "" && n.Value != "0" {
			return nil, false
		}
		return &Item{Kind: typ0, Begin: i, End: m0.End, Value: t.Number.Value}, true
	}
	return nil, false
}

// plotInQuarter - "квартал 12 в 5": участок внутри квартала или лесничества.
func (c *Context) plotInQuarter(i int) *Item {
	j := i + 1
	if c.tok(j).IsChar('.') {
		j++
	}
	v, end := c.houseNumber(j)
	if end < 0 {
		return nil
	}
	for k := i - 1; k >= 0; k-- {
		w := c.tok(k)
		if w.IsValueOf("КВАРТАЛ", "КВ") || isWordOf(w, "ЛЕСНИЧЕСТВО") {
			return &Item{Kind: ItemPlot, Begin: i, End: end, Value: v}
		}
		if w.IsNewlineBefore() {
			break
		}
	}
	return nil
}

// houseNumber - номер с необязательным префиксом "№" и слитной литерой: "№ 5", "12А".
func (c *Context) houseNumber(i int) (string, int) {
	if v, end := c.prefixedNumber(i); end >= 0 {
		return v, end
	}
	t := c.tok(i)
	if !t.IsNumber() || t.Number.Int < 0 {
		return "", -1
	}
	v, end := t.Number.Value, i
	if l := c.tok(i + 1); !l.IsWhitespaceBefore() && l.Length() == 1 {
		if ch := houseLetter(l); ch != "" {
			v += ch
			end++
		}
	}
	return v, end
}

// numberPrefixEnd - позиция после префикса номера ("№", "N", "номер") или -1.
func (c *Context) numberPrefixEnd(i int) int {
	t := c.tok(i)
	if !t.IsValueOf("№", "N", "НОМЕР", "НОМ", "NO") && !t.IsChar('№') {
		return -1
	}
	j := i + 1
	if c.tok(j).IsChar('.') {
		j++
	}
	return j
}

// isObsh - пометка "общ." (общая, общежитие) после типа помещения.
func isObsh(t *token.Token) bool { return t.IsLetters() && strings.HasPrefix(t.Term, "ОБ") }

// nounPart разбирает тип элемента из словаря и все, что может стоять между типом
// и номером. done - результат окончательный.
func (c *Context) nounPart(p *pureParse) (*Item, bool) {
	t := c.tok(p.begin)
	m := p.m
	if t.IsValue("УЖЕ") {
		return nil, true
	}
	kind := itemKindOf(m.Termin)
	if kind == ItemDetail {
		return c.attachDetail(p.begin, m), true
	}
	p.nounEnd = m.End
	p.at = m.End + 1
	if w := c.tok(p.at); isObsh(w) {
		p.nounEnd, p.at = p.at, p.at+1
		if c.tok(p.at).IsChar('.') {
			p.nounEnd, p.at = p.at, p.at+1
		}
	} else if w.IsChar('(') && isObsh(c.tok(p.at+1)) {
		p.nounEnd, p.at = p.at+1, p.at+2
		for c.tok(p.at).IsCharOf(".)") {
			p.nounEnd, p.at = p.at, p.at+1
		}
	}
	sub := itemSubOf(m.Termin)
	p.kind, p.house, p.build = kind, sub.house, sub.building
	if kind == ItemPlot && isWordOf(c.tok(p.begin-1), "СУДЕБНЫЙ", "СУДОВИЙ", "ИЗБИРАТЕЛЬНЫЙ", "ВИБОРЧИЙ") {
		return nil, true
	}
	// "д/корп. 5/2": значение через черту делится между типами.
	if c.tok(p.at).IsCharOf("\\/") && c.matchItem(p.at+1) != nil {
		if aa := c.ClassifyBare(p.at+1, nil); aa != nil && aa.Kind != ItemNumber && aa.Value != "" {
			if k := strings.IndexAny(aa.Value, "/\\"); k > 0 {
				alt := aa.clone()
				alt.Value = aa.Value[k+1:]
				return &Item{Kind: kind, Begin: p.begin, End: aa.End, Value: aa.Value[:k], HouseType: p.house,
					BuildingType: p.build, AltItem: alt, Termin: m.Termin}, true
			}
		}
	}
	switch {
	case kind == ItemHouse && sub.house == HouseSpecial:
		return c.specialHouse(p), true
	case kind == ItemPrefix:
		return c.prefixItem(p), true
	case kind == ItemCorpusOrFlat && m.Begin == m.End && t.IsValue("К") && !t.IsWhitespaceBefore() && !t.IsWhitespaceAfter():
		if p.prev.is(ItemFlat) {
			p.kind = ItemRoom
		} else {
			p.kind = ItemCorpus
		}
	}
	if kind == ItemFlat && t.IsValue("КВ") && t.Source == "кВ" {
		return nil, true
	}
	nextIsNum := c.tok(m.End + 1).IsNumber()
	if (kind == ItemFlat || kind == ItemSpace || kind == ItemOffice) && !nextIsNum {
		n := c.pureItem(m.End+1, nil)
		if n != nil && kind != ItemOffice && n.is(ItemPantry, ItemFlat) {
			r := n.withSpan(p.begin, n.End)
			if kind != n.Kind {
				r.Kind = ItemPantry
			}
			return r, true
		}
		if n != nil && kind == ItemOffice && n.is(ItemSpace, ItemFlat) {
			r := n.withSpan(p.begin, n.End)
			r.Kind = ItemOffice
			return r, true
		}
		if c.tok(m.End + 1).IsChar('(') {
			if m2 := c.matchItem(m.End + 2); m2 != nil && c.tok(m2.End+1).IsChar(')') {
				p.at = m2.End + 2
			}
		}
	}
	if kind == ItemPantry && !nextIsNum {
		if n := c.pureItem(m.End+1, nil); n.is(ItemSpace, ItemFlat) {
			r := n.withSpan(p.begin, n.End)
			r.Kind = ItemPantry
			return r, true
		}
	}
	if kind == ItemFloor {
		j := p.at
		if c.tok(j).IsCharOf("\\/") {
			j++
		}
		if n := c.pureItem(j, p.prev); n != nil && n.Value == "подвал" {
			j = n.End + 1
			if c.tok(j).IsCharOf("\\/") {
				j++
			}
			if num := c.pureItem(j, p.prev); num.is(ItemNumber) && num.Value != "" {
				r := num.withSpan(p.begin, num.End)
				r.Kind = ItemFloor
				r.Value = "-" + num.Value
				return r, true
			}
		}
	}
	if kind == ItemKilometer || kind == ItemFloor || kind == ItemPorch {
		if _, e := c.prefixedNumber(m.End + 1); !nextIsNum && e < 0 {
			return &Item{Kind: kind, Begin: p.begin, End: m.End, Termin: m.Termin}, true
		}
	}
	if kind == ItemSpace {
		if sub.forced {
			r := &Item{Kind: kind, Begin: p.begin, End: m.End, Value: strings.ToLower(m.Termin.Canonic),
				Termin: m.Termin, forced: true}
			if c.tok(m.End + 1).IsHyphen() {
				if n := c.ClassifyBare(m.End+2, nil); n.is(ItemSpace) {
					r.End = n.End
				}
			}
			return r, true
		}
		if n := c.ClassifyBare(m.End+1, nil); n.is(ItemSpace) {
			return n.withSpan(p.begin, n.End), true
		}
		if w := c.tok(m.End + 1); w.IsLetters() && w.Length() == 1 && strings.HasPrefix(w.Term, "Н") {
			p.at = m.End + 2
			if c.tok(p.at).IsChar('.') {
				p.at++
			}
		}
	}
	if p.kind.isHouseLike() {
		if it, done := c.skipHouseWords(p); done {
			return it, true
		}
	}
	if p.kind == ItemHouse && c.tok(p.at).IsLetters() {
		if n := c.ClassifyBare(p.at, p.prev); n.is(p.kind, ItemPlot) {
			return n.withSpan(p.begin, n.End), true
		}
	}
	if p.kind == ItemFlat && c.tok(p.at).IsValueOf("М", "M") {
		if c.tok(p.at + 1).IsNumber() {
			p.at++
		} else if c.tok(p.at+1).IsChar('.') && c.tok(p.at+2).IsNumber() {
			p.at += 2
		}
	}
	if p.kind == ItemRoom && c.tok(p.at).IsCharOf("\\/") {
		if n := c.pureItem(p.at+1, p.prev); n.is(ItemRoom, ItemOffice) {
			return n.withSpan(p.begin, n.End), true
		}
	}
	if p.kind == ItemField {
		if r := c.fieldValue(p); r != nil {
			return r, true
		}
	}
	if p.kind == ItemNoNumber {
		return &Item{Kind: ItemNoNumber, Begin: p.begin, End: m.End, Value: "0", Termin: m.Termin}, true
	}
	if (p.kind == ItemHouse || p.kind == ItemPlot) && c.tok(p.at).IsValue("ЛПХ") {
		p.at++
	}
	if p.kind != ItemNumber {
		if w := c.tok(p.at); w.IsLetters() && !w.Chars.IsAllUpper {
			if n := c.ClassifyBare(p.at, nil); n != nil && !n.is(ItemNumber, ItemNoNumber) && n.Value != "" {
				return n.withSpan(p.begin, n.End), true
			}
		}
		if (c.tok(p.at) == nil || c.tok(m.End).IsNewlineAfter()) && t.Length() > 1 &&
			(p.prev != nil || c.addressMode()) && !t.IsNewlineBefore() {
			return &Item{Kind: p.kind, Begin: p.begin, End: m.End, Value: "0", HouseType: p.house,
				BuildingType: p.build, Termin: m.Termin}, true
		}
	}
	if p.kind == ItemPlot || p.kind == ItemWell {
		if v, e := c.houseNumber(p.at); e >= 0 {
			return &Item{Kind: p.kind, Begin: p.begin, End: e, Value: v, Termin: m.Termin}, true
		}
	}
	return nil, false
}

// skipHouseWords пропускает слова между типом дома и номером: "расположенный",
// "доп.", предлоги. "Дом, участок 5" дает дом без номера.
func (c *Context) skipHouseWords(p *pureParse) (*Item, bool) {
	for j := p.at; ; j++ {
		w := c.tok(j)
		if w == nil {
			break
		}
		if w.IsComma() || isWordOf(w, "РАСПОЛОЖЕННЫЙ", "НАХОДЯЩИЙСЯ", "ПРИЛЕГАЮЩИЙ", "РОЗТАШОВАНИЙ") {
			continue
		}
		if isWordOf(w, "ПОДВАЛ") {
			p.at = j + 1
			continue
		}
		if w.IsPreposition() {
			continue
		}
		if m2 := c.matchItem(j); m2 != nil {
			k2 := itemKindOf(m2.Termin)
			if k2 != p.kind && (k2 == ItemPlot || k2 == ItemHouse && p.kind == ItemPlot) {
				return &Item{Kind: p.kind, Begin: p.begin, End: p.nounEnd, Value: "0", HouseType: p.house,
					BuildingType: p.build, Termin: p.m.Termin}, true
			}
			if p.kind == ItemBox && k2 == ItemSpace && m2.Termin.Canonic == "ПОДВАЛ" {
				j = m2.End
				p.at = j + 1
				continue
			}
		}
		if w.IsLetters() && strings.HasPrefix(w.Term, "ДОП") {
			p.at = j + 1
			if c.tok(p.at).IsChar('.') {
				j++
				p.at++
			}
			continue
		}
		break
	}
	return nil, false
}

// specialHouse - объект инфраструктуры как дом: "АЗС-3", "КТП 12".
func (c *Context) specialHouse(p *pureParse) *Item {
	m := p.m
	v := m.Termin.Acronym
	if v == "" {
		v = m.Termin.Canonic
	}
	r := &Item{Kind: ItemHouse, Begin: p.begin, End: m.End, HouseType: HouseSpecial, Value: v, Termin: m.Termin}
	j := m.End + 1
	if c.tok(j).IsHyphen() {
		j++
	}
	if num, e := c.houseNumber(j); e >= 0 && c.tok(j).WhitespacesBefore < 2 {
		r.Value += "-" + num
		r.End = e
	}
	return r
}

// prefixItem - "юридический адрес:", "адрес места жительства".
func (c *Context) prefixItem(p *pureParse) *Item {
	j := p.at
	for ; c.tok(j) != nil; j++ {
		w := c.tok(j)
		if (w.IsPreposition() || w.Morph.IsConjunction()) && w.WhitespacesAfter == 1 {
			continue
		}
		if w.IsChar(':') {
			j++
			break
		}
		if w.IsChar('(') {
			if cl := c.Doc.BracketEnd(j, 20); cl > 0 && utf8.RuneCountInString(c.Doc.Span(j, cl)) < 50 {
				j = cl
				continue
			}
		}
		if w.IsLetters() && (w.Chars.IsAllLower || w.WhitespacesBefore < 3) {
			if np := c.nounPhrase(j); np != nil && (c.tok(np.end).Chars.IsAllLower || np.isGenitive()) &&
				!c.isStreetNounAt(np.end) && c.matchItem(np.end) == nil {
				j = np.end
				continue
			}
		}
		if isWordOf(w, "УКАЗАННЫЙ", "ЕГРИП", "ФАКТИЧЕСКИЙ") {
			continue
		}
		if w.IsComma() && isWordOf(c.tok(j+1), "УКАЗАННЫЙ") {
			continue
		}
		break
	}
	if c.tok(j) == nil {
		return nil
	}
	res := &Item{Kind: ItemPrefix, Begin: p.begin, End: j - 1, Termin: p.m.Termin}
	for k := p.begin - 1; k >= 0; k-- {
		w := c.tok(k)
		if w.NewlinesAfter > 3 {
			break
		}
		if w.IsComma() || w.IsAnd() || w.IsCharOf("().") {
			continue
		}
		if !isWordOf(w, "ПОЧТОВЫЙ", "ЮРИДИЧЕСКИЙ", "ФАКТИЧЕСКИЙ") && !w.IsValueOf("ЮР", "ФАКТ", "ПОЧТ", "АДРЕС") {
			break
		}
		res.Begin = k
	}
	return res
}

// fieldValue - номер поля: "поле II-3", "поле 5 га".
func (c *Context) fieldValue(p *pureParse) *Item {
	if ms := c.numberWithUnit(p.at); ms != nil && ms.unit == unitOther {
		return &Item{Kind: ItemField, Begin: p.begin, End: ms.end, Value: c.Doc.Span(p.at, ms.end)}
	}
	var parts []string
	end := -1
	for j := p.nounEnd + 1; c.tok(j) != nil; j++ {
		w := c.tok(j)
		if w.IsRoman() {
			parts = append(parts, strconv.Itoa(w.Number.Int))
			end = j
			continue
		}
		if w.IsHyphen() {
			continue
		}
		if w.IsWhitespaceBefore() {
			break
		}
		if w.IsNumber() {
			parts = append(parts, w.Number.Value)
			end = j
			continue
		}
		if w.IsLetters() && w.Chars.IsAllUpper {
			parts = append(parts, w.Term)
			end = j
			continue
		}
		break
	}
	if len(parts) == 0 {
		return nil
	}
	return &Item{Kind: ItemField, Begin: p.begin, End: end, Value: strings.Join(parts, "-")}
}

// valueStart сдвигает p.at на начало номера через разделители и префиксы ("№", "литер").
func (c *Context) valueStart(p *pureParse) (*Item, bool) {
	at := p.at
	if p.kind == ItemFlat && c.tok(at).IsComma() && c.tok(at+1).IsNumber() {
		at++
	}
	if c.tok(at).IsChar('.') && c.tok(at+1) != nil {
		at++
	}
	if at != p.begin && (c.tok(at).IsHyphen() || c.tok(at).IsCharOf("_:")) && c.tok(at+1).IsNumber() {
		at++
	}
	m2 := c.matchItem(at)
	switch {
	case m2 != nil && itemKindOf(m2.Termin) == ItemNumber:
		at = m2.End + 1
	case m2 != nil && itemKindOf(m2.Termin) == ItemNoNumber:
		r := &Item{Kind: p.kind, Begin: p.begin, End: m2.End, Value: "0", HouseType: p.house, BuildingType: p.build}
		if n := c.tok(r.End + 1); !c.tok(r.End).IsWhitespaceAfter() && n.IsNumber() {
			r.End++
			r.Value = n.Number.Value
		}
		return r, true
	default:
		w := c.tok(at)
		if w == nil || w.Kind != token.Word {
			break
		}
		term, src := []rune(w.Term), []rune(w.Source)
		if len(term) != len(src) {
			src = term
		}
		switch {
		case len(term) == 7 && unicode.IsUpper(src[6]) && strings.HasPrefix(w.Term, "ЛИТЕРА"),
			len(term) == 6 && strings.HasPrefix(w.Term, "ЛИТЕР") && unicode.IsUpper(src[5]),
			len(term) == 4 && strings.HasPrefix(w.Term, "ЛИТ") && unicode.IsUpper(src[3]):
			return &Item{Kind: ItemBuilding, Begin: p.begin, End: at, BuildingType: BuildingLiter,
				Value: string(term[len(term)-1])}, true
		case len(term) > 4 && strings.HasPrefix(w.Term, "БЛОК") && unicode.IsUpper(src[4]) && unicode.IsLower(src[0]):
			if v, e := c.houseNumber(at + 1); e >= 0 {
				return &Item{Kind: ItemBlock, Begin: p.begin, End: e, Value: string(term[4:]) + v}, true
			}
		}
		if p.kind == ItemFlat {
			m3 := c.matchItem(at)
			if m3 == nil && w.IsComma() {
				m3 = c.matchItem(at + 1)
			}
			if m3 != nil && itemKindOf(m3.Termin) == ItemFlat {
				at = m3.End + 1
			}
		}
		if isWordOf(c.tok(at), "СТРОИТЕЛЬНЫЙ") && isWordOf(c.tok(at+1), "НОМЕР") {
			at++
		}
		if k := c.numberPrefixEnd(at); k >= 0 {
			at = k
			if c.tok(at).IsHyphen() || c.tok(at).IsChar('_') {
				at++
			}
		}
	}
	if p.kind != ItemNumber && c.tok(at).IsChar('.') && c.addressMode() {
		at++
	}
	p.at = at
	if c.tok(at) == nil {
		if p.kind == ItemGenplan && p.m != nil {
			return &Item{Kind: ItemGenplan, Begin: p.begin, End: p.m.End, Value: "0"}, true
		}
		return nil, true
	}
	return nil, false
}

func isAnyBracket(t *token.Token) bool { return token.IsBracket(t, true) || token.IsBracket(t, false) }

func joinSep(t *token.Token) string {
	if t.IsHyphen() {
		return "-"
	}
	return "/"
}

// numericValue - номер, начинающийся с числа: "5", "5/2", "12А", "3-1", "7 (Б)".
func (c *Context) numericValue(p *pureParse) *Item {
	nt := c.tok(p.at)
	if nt.Number.Int < 0 {
		return nil
	}
	num := nt.Number.Value
	end := p.at
	drob, hiph := false, false
	et := p.at + 1
	switch w := c.tok(et); {
	case w.IsCharOf("\\/") || isWordOf(w, "ДРОБЬ") || w.IsChar('.') && c.addressMode() && c.tok(et+1).IsNumber():
		n := c.ClassifyBare(et+1, nil)
		if n != nil && n.Kind != ItemNumber && p.kind != ItemFlat {
			if n.Kind == p.kind && n.Value != "" {
				r := n.withSpan(p.begin, n.End)
				r.Value = num + "/" + n.Value
				return r
			}
			end = et
		} else {
			drob = true
			et++
			if c.tok(et).IsCharOf("\\/") {
				et++
			}
		}
	case w.IsHyphen() || w.IsChar('_'):
		hiph = true
		et++
	case w.IsChar('.') && c.tok(et+1).IsNumber() && !w.IsWhitespaceAfter():
		hiph = true
		et++
	}
	if e := c.tok(et); e.IsNumber() {
		switch {
		case drob:
			if n := c.ClassifyBare(et, nil); n.is(ItemNumber) {
				num += "/" + n.Value
				end = n.End
			} else {
				num += "/" + e.Number.Value
				end = et
				if c.tok(et+1).IsCharOf("\\/") && c.tok(et+2).IsNumber() {
					num += "/" + c.tok(et+2).Number.Value
					end = et + 2
				}
			}
			et = end + 1
			drob = false
		case hiph && !c.tok(end).IsWhitespaceAfter() && !e.IsWhitespaceBefore():
			if numm := c.ClassifyBare(et, nil); numm.is(ItemNumber) {
				merge := false
				switch p.kind {
				case ItemFlat, ItemPlot, ItemOffice:
					merge = true
				case ItemHouse, ItemBuilding, ItemCorpus:
					k := c.skipComma(numm.End + 1)
					if n2 := c.ClassifyBare(k, nil); n2.is(ItemFlat, ItemBuilding, ItemCorpus) ||
						n2.is(ItemCorpusOrFlat) && n2.Value != "" {
						merge = true
					}
				}
				if merge {
					num += "/" + numm.Value
					end = numm.End
					et = end + 1
					hiph = false
				}
			}
		}
	} else if (e.IsHyphen() || e.IsChar('_') || e.IsValue("НЕТ")) && drob {
		end = et
	}
	ett := et
	if w := c.tok(ett); w.IsCharOf(",.") && w.WhitespacesAfter < 2 && c.tok(ett+1) != nil && c.tok(ett+1).Kind == token.Word {
		n := c.tok(ett + 1)
		if isAnyBracket(n) {
			ett++
		} else if n.IsLetters() && n.Length() == 1 && (c.tok(ett+2) == nil || c.tok(ett+2).IsComma()) {
			if ch := houseLetter(n); ch != "" {
				num += ch
				ett++
				end = ett
			}
		}
	}
	e := c.tok(ett)
	switch {
	case isAnyBracket(e) && c.tok(ett+1).IsLetters() && c.tok(ett+1).Length() == 1 && isAnyBracket(c.tok(ett+2)):
		l := c.tok(ett + 1)
		if ch := houseLetter(l); ch != "" {
			num += ch
			end = ett + 2
		} else if l.IsRoman() {
			num += "/" + strconv.Itoa(l.Number.Int)
			end = ett + 2
		}
	case e.IsLetters() && (e.Length() == 1 || e.Length() == 2 && e.Chars.IsAllUpper && !e.IsWhitespaceBefore()):
		num, end = c.numberLetter(p, ett, num, end, drob, hiph)
	case e != nil && e.Kind == token.Word && !e.IsWhitespaceBefore():
		val := []rune(e.Term)
		switch {
		case e.Term == "КМ" && p.kind == ItemHouse:
			end = ett
			num += "КМ"
		case e.Term == "БН":
			end = ett
		case len(val) == 2 && val[1] == 'Б' && c.tok(ett+1).IsCharOf("\\/") && c.tok(ett+2).IsValue("Н"):
			num += string(val[0])
			end = ett + 2
		}
	}
	if !drob && c.tok(end+1).IsCharOf("\\/") {
		if n := c.pureItem(end+2, nil); n.is(ItemNumber) {
			num += "/" + n.Value
			end = n.End
		}
	}
	return c.finishValue(p, num, end)
}

// numberLetter присоединяет литеру после числа: "12 А", "5Б", "7 б/н".
func (c *Context) numberLetter(p *pureParse, ett int, num string, end int, drob, hiph bool) (string, int) {
	e := c.tok(ett)
	s := houseLetter(e)
	if f := c.fragmentAt(ett, nil, false); f != nil && (f.Kind == FragStdName || f.Kind == FragNoun || f.Kind == FragFix) {
		s = ""
	}
	if e.IsWhitespaceBefore() {
		if n := c.ClassifyBare(ett, nil); n != nil && n.Value != "" {
			s = ""
		} else if c.tok(ett-1).IsHyphen() && c.tok(ett-1).IsWhitespaceBefore() {
			s = ""
		}
	}
	if s == "" {
		return num, end
	}
	switch {
	case (s == "К" || s == "С") && c.tok(ett+1).IsNumber() && !e.IsWhitespaceAfter():
		return num, end
	case s == "Б" && c.tok(ett+1).IsCharOf("/\\") && c.tok(ett+2).IsValue("Н"):
		return num, ett + 2
	}
	ok := false
	switch {
	case drob || hiph:
		ok = true
	case !e.IsWhitespaceBefore() || e.WhitespacesBefore == 1 &&
		(c.addressMode() || e.Chars.IsAllUpper || e.IsNewlineAfter() || c.tok(ett+1).IsComma()):
		ok = true
		if c.tok(ett+1).IsNumber() && (e.IsWhitespaceBefore() || !e.IsWhitespaceAfter()) {
			ok = false
		}
		if s == "К" {
			tmp := &Item{Kind: p.kind, Begin: p.begin, End: ett - 1}
			if n := c.ClassifyBare(ett, tmp); n != nil && n.Value != "" {
				ok = false
			}
		}
		if s == "И" {
			if n := c.ClassifyBare(ett+1, p.prev); n.is(p.kind) {
				ok = false
			}
		}
	case (c.tok(ett+1) == nil || c.tok(ett+1).IsComma()) && (e.WhitespacesBefore < 2 || c.addressMode()):
		ok = true
	case e.IsWhitespaceBefore() && e.Chars.IsAllLower && e.IsValueOf("В", "У"):
	default:
		if n := c.ClassifyBare(ett+1, nil); n.is(ItemCorpus, ItemFlat, ItemBuilding, ItemOffice, ItemRoom) {
			ok = true
		}
	}
	if !ok {
		return num, end
	}
	num += s
	end = ett
	if c.tok(ett+1).IsCharOf("\\/") {
		if n2 := c.tok(ett + 2); n2.IsNumber() {
			num += "/" + n2.Number.Value
			end = ett + 2
		} else if n2.IsHyphen() || n2.IsChar('_') || n2.IsValue("НЕТ") {
			end = ett + 2
		}
	}
	return num, end
}

// otherValue - номер, начинающийся не с числа: литера, "в/ч", римское число, "б/н".
func (c *Context) otherValue(p *pureParse) *Item {
	w := c.tok(p.at)
	t := c.tok(p.begin)
	if r := c.militaryUnit(p.at, p.kind); r != nil {
		r.Begin = p.begin
		r.HouseType, r.BuildingType = p.house, p.build
		return r
	}
	// "5кА" - корпус А.
	if src := []rune(w.Source); w.IsLetters() && len(src) == 2 && !w.IsWhitespaceBefore() && c.tok(p.at-1).IsNumber() &&
		(src[0] == 'к' || src[0] == 'k') && unicode.IsUpper(src[1]) {
		if ch := letterChar(src[1]); ch != 0 {
			return &Item{Kind: ItemCorpus, Begin: p.at, End: p.at, Value: string(ch)}
		}
	}
	num := ""
	end := -1
	switch {
	case w.IsLetters() && w.Length() == 1:
		ch := houseLetter(w)
		if ch == "" {
			break
		}
		if p.kind == ItemNumber {
			return nil
		}
		if (ch == "К" || ch == "С") && !w.IsWhitespaceAfter() && c.tok(p.at+1).IsNumber() {
			return nil
		}
		if ch == "С" {
			if v, e := c.prefixedNumber(p.at + 1); e >= 0 {
				return &Item{Kind: p.kind, Begin: p.begin, End: e, Value: v}
			}
		}
		if ch == "Д" && p.kind == ItemPlot {
			if r := c.ClassifyBare(p.at, nil); r != nil {
				r = r.withSpan(p.begin, r.End)
				r.Kind = ItemPlot
				return r
			}
		}
		if ch == "С" && w.IsWhitespaceAfter() {
			if n := c.ClassifyBare(p.at+1, nil); n.is(ItemNumber) {
				return &Item{Kind: p.kind, Begin: p.begin, End: n.End, Value: n.Value, HouseType: p.house, BuildingType: p.build}
			}
		}
		if p.prev.is(ItemHouse, ItemNumber, ItemFlat) && c.addressMode() {
			if p.kind == ItemCorpusOrFlat && p.prev.Kind == ItemHouse {
				p.kind = ItemCorpus
			}
		} else {
			if w.Chars.IsAllLower && (w.IsPreposition() || w.Morph.IsConjunction()) && w.WhitespacesAfter < 2 &&
				c.tok(p.at+1).IsLetters() {
				if p.kind == ItemHouse || p.kind == ItemPlot || p.kind == ItemBox {
					return &Item{Kind: p.kind, Begin: p.begin, End: p.at - 1, Value: "0", HouseType: p.house}
				}
				return nil
			}
			// "Д. А. Иванова" - инициалы, а не дом.
			if t.Chars.IsAllUpper && t.Length() == 1 && c.tok(p.begin+1).IsChar('.') {
				return nil
			}
		}
		num, end = ch, p.at
		n := c.tok(p.at + 1)
		switch {
		case (n.IsHyphen() || n.IsChar('_')) && !w.IsWhitespaceAfter() && !n.IsWhitespaceAfter() && c.tok(p.at+2).IsNumber():
			num += c.tok(p.at + 2).Number.Value
			end = p.at + 2
		case n.IsNumber() && !w.IsWhitespaceAfter():
			num += n.Number.Value
			end = p.at + 1
		}
		if utf8.RuneCountInString(num) == 1 && (p.kind == ItemOffice || p.kind == ItemRoom) {
			return nil
		}
	case isAnyBracket(w) && c.tok(p.at+1).IsLetters() && c.tok(p.at+1).Length() == 1 && isAnyBracket(c.tok(p.at+2)):
		ch := houseLetter(c.tok(p.at + 1))
		if ch == "" {
			return nil
		}
		num, end = ch, p.at+2
	case (w.IsHyphen() || w.IsChar('_') || w.IsValueOf("НЕТ", "БН")) &&
		(p.kind == ItemCorpus || p.kind == ItemCorpusOrFlat || p.kind == ItemBuilding || p.kind == ItemHouse || p.kind == ItemFlat):
		for w2 := c.tok(p.at + 1); w2.IsHyphen() || w2.IsChar('_'); w2 = c.tok(p.at + 1) {
			p.at++
		}
		num, end = "0", p.at
	default:
		return c.fallbackValue(p)
	}
	if num == "" {
		if t.Chars.IsLatin && t.IsRoman() {
			return &Item{Kind: p.kind, Begin: p.begin, End: p.begin, Value: strconv.Itoa(t.Number.Int)}
		}
		return nil
	}
	return c.finishValue(p, num, end)
}

// fallbackValue - номер, который не удалось прочитать обычным образом: исправленные
// буквы ("ЗО" -> "30"), римские числа, "около", значение после запятой.
func (c *Context) fallbackValue(p *pureParse) *Item {
	w := c.tok(p.at)
	t := c.tok(p.begin)
	item := func(end int, v string) *Item {
		return &Item{Kind: p.kind, Begin: p.begin, End: end, Value: v, HouseType: p.house, BuildingType: p.build}
	}
	if (p.kind == ItemFloor || p.kind == ItemKilometer || p.kind == ItemPorch) && c.tok(p.begin-1).IsNumber() {
		return &Item{Kind: p.kind, Begin: p.begin, End: p.at - 1}
	}
	if w.IsLetters() && (p.kind == ItemHouse || p.kind == ItemBuilding || p.kind == ItemCorpus) {
		ter := w.Term
		if w.IsValueOf("АБ", "АБВ", "МГУ") {
			return item(p.at, ter)
		}
		if v := corrNumber(ter); v != "" {
			return item(p.at, v)
		}
		if w.Chars.IsAllUpper {
			switch {
			case p.prev.is(ItemStreet, ItemCity),
				p.kind == ItemCorpus && w.Length() < 4,
				p.kind == ItemBuilding && p.build == BuildingLiter && w.Length() < 4:
				return item(p.at, ter)
			}
		}
	}
	switch p.kind {
	case ItemBox, ItemSpace, ItemPart, ItemCarplace, ItemWell:
		if v, e := c.houseNumber(p.at); e >= 0 {
			return item(e, v)
		}
	case ItemPlot:
		if isWordOf(w, "ОКОЛО", "РЯДОМ", "НАПРОТИВ", "БЛИЗЬКО", "НАВПАКИ") {
			return item(p.at, strings.ToLower(w.Source))
		}
		if c.attachDetail(p.at, nil) != nil {
			return item(p.at-1, "0")
		}
	}
	if w.IsComma() && p.prev != nil {
		if n := c.ClassifyBare(p.at+1, nil); n != nil {
			if n.Kind == ItemNumber || n.Kind == p.kind {
				return item(n.End, n.Value)
			}
			return item(p.at-1, "")
		}
	}
	if token.IsBracket(w, true) {
		if n := c.ClassifyBare(p.at+1, p.prev); n.is(ItemNumber) && token.IsBracket(c.tok(n.End+1), false) {
			return item(n.End+1, n.Value)
		}
	}
	if (c.addressMode() || p.kind != ItemNumber) && w.IsRoman() {
		return item(p.at, strconv.Itoa(w.Number.Int))
	}
	if p.kind == ItemGenplan && p.m != nil {
		return &Item{Kind: ItemGenplan, Begin: p.begin, End: p.m.End, Value: "0"}
	}
	if p.kind == ItemNumber && isWordOf(t, "ОБЩЕЖИТИЕ", "ГУРТОЖИТОК") {
		if v, e := c.houseNumber(p.begin + 1); e >= 0 {
			return &Item{Kind: ItemHouse, Begin: p.begin, End: e, Value: v, HouseType: HouseHouse}
		}
	}
	if t.Chars.IsLatin && t.IsRoman() {
		return item(p.begin, strconv.Itoa(t.Number.Int))
	}
	return nil
}

// finishValue строит элемент по номеру и поглощает пометку "общ." после него.
func (c *Context) finishValue(p *pureParse, num string, end int) *Item {
	for k := p.begin + 1; k <= end; k++ {
		if w := c.tok(k); w.IsNewlineBefore() && !w.IsNumber() {
			return nil
		}
	}
	if num == "" {
		return nil
	}
	res := &Item{Kind: p.kind, Begin: p.begin, End: end, Value: num, HouseType: p.house, BuildingType: p.build}
	if p.m != nil {
		res.Termin = p.m.Termin
	}
	k := c.skipComma(end + 1)
	if isObsh(c.tok(k)) {
		res.End = k
		if c.tok(k + 1).IsChar('.') {
			res.End++
		}
		if res.Kind == ItemCorpusOrFlat {
			res.Kind = ItemFlat
		}
	} else if c.tok(k).IsChar('(') && isObsh(c.tok(k+1)) {
		res.End = k + 1
		for c.tok(res.End + 1).IsCharOf(".)") {
			res.End++
		}
		if res.Kind == ItemCorpusOrFlat {
			res.Kind = ItemFlat
		}
	}
	return res
}

// militaryUnit - "в/ч 1234", "войсковая часть"; для квартир также "общ." и обозначения
// заглавными буквами ("кв. АБ").
func (c *Context) militaryUnit(i int, kind ItemKind) *Item {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	j := -1
	switch {
	case t.IsValueOf("В", "B") && c.tok(i+1).IsCharOf("./\\") && c.tok(i+2).IsValue("Ч"):
		j = i + 2
		if c.tok(j + 1).IsChar('.') {
			j++
		}
	case isWordOf(t, "ВОЙСКОВОЙ", "ВОИНСКИЙ") && isWordOf(c.tok(i+1), "ЧАСТЬ"):
		j = i + 1
	}
	if j >= 0 {
		if k := c.numberPrefixEnd(j + 1); k >= 0 {
			j = k - 1
		}
		if c.tok(j+1).IsNumber() && c.tok(j).WhitespacesAfter < 2 {
			j++
		}
		return &Item{Kind: kind, Begin: i, End: j, Value: "В/Ч"}
	}
	if kind != ItemFlat || t.WhitespacesBefore > 1 || !t.IsLetters() {
		return nil
	}
	if strings.HasPrefix(t.Term, "ОБЩ") || strings.HasPrefix(t.Term, "ВЕД") {
		j = i
		if c.tok(j + 1).IsChar('.') {
			j++
		}
		if r := c.militaryUnit(j+1, kind); r != nil {
			return r
		}
		return &Item{Kind: kind, Begin: i, End: j, Value: "0"}
	}
	if t.Chars.IsAllUpper && t.Length() > 1 {
		r := &Item{Kind: kind, Begin: i, End: i, Value: t.Term}
		if n := c.tok(i + 1); t.WhitespacesAfter < 2 && n.IsLetters() && n.Chars.IsAllUpper {
			r.End = i + 1
			r.Value += n.Term
		}
		return r
	}
	return nil
}

// --- УТОЧНЕНИЯ ПОЛОЖЕНИЯ ---

// attachDetail - уточнение положения: "в 300 м севернее", "на пересечении",
// "вблизи", "км 12+300 - км 15+100". m - уже найденный термин уточнения (может быть nil).
func (c *Context) attachDetail(i int, m *ontology.Match) *Item {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	if t.IsValueOf("КМ", "КИЛОМЕТР") {
		if r := c.detailRange(i); r != nil {
			return r
		}
	}
	if t.Kind != token.Word {
		if !t.IsNumber() {
			return nil
		}
	} else if t.Chars.IsCapitalUpper && !t.Morph.IsPreposition() {
		return nil
	}
	begin := i
	if m == nil && t.DictionaryClass().IsPreposition() {
		i++
	}
	w := c.tok(i)
	if w == nil {
		return nil
	}
	if m == nil || m.Begin != i {
		m = c.matchItem(i)
		if m != nil && itemKindOf(m.Termin) != ItemDetail {
			m = nil
		}
	}
	var res *Item
	firstNum := false
	switch {
	case m != nil:
		sub := itemSubOf(m.Termin)
		if m.Termin.Canonic == "ВБЛИЗИ" && w.IsValue("У") && !c.geoBefore(begin) {
			return nil
		}
		if sub.forced {
			return &Item{Kind: ItemDetail, Begin: begin, End: m.End, DetailType: sub.detail, DetailParam: "часть",
				Termin: m.Termin}
		}
		res = &Item{Kind: ItemDetail, Begin: begin, End: m.End, DetailType: sub.detail, Termin: m.Termin}
	case w.DictionaryClass().IsVerb() && !w.DictionaryClass().IsNoun():
		if n := c.attachDetail(i+1, nil); n != nil {
			return n.withSpan(begin, n.End)
		}
		return nil
	case w.IsNumber():
		ms := c.numberWithUnit(i)
		if ms == nil || ms.unit != unitMeter && ms.unit != unitKm {
			return nil
		}
		res = &Item{Kind: ItemDetail, Begin: begin, End: ms.end, DetailMeters: meters(ms)}
		firstNum = true
	default:
		return nil
	}
	for j := res.End + 1; ; j++ {
		w := c.tok(j)
		if w == nil || w.Kind == token.Referent {
			break
		}
		if !w.IsPreposition() && (w.Chars.IsCapitalUpper || w.Chars.IsAllUpper) {
			break
		}
		if m2 := c.matchItem(j); m2 != nil && itemKindOf(m2.Termin) == ItemDetail {
			d := itemSubOf(m2.Termin).detail
			if d != DetailUndefined && !(d == DetailNear && res.DetailType != DetailUndefined) {
				res.DetailType = d
			}
			res.End = m2.End
			j = m2.End
			continue
		}
		k := j
		if np := c.nounPhrase(j); np != nil {
			k = np.end
		}
		wk := c.tok(k)
		if isWordOf(wk, "ОРИЕНТИР", "НАПРАВЛЕНИЕ", "УСАДЬБА", "ДВОР") || wk.IsValueOf("ОТ", "В") {
			res.End = k
			j = k
			continue
		}
		if isWordOf(wk, "ЗДАНИЕ", "СТРОЕНИЕ", "ДОМ") {
			if ait := c.ClassifyBare(k, nil); ait != nil && ait.Value != "" {
				break
			}
			if c.tok(k + 1).IsReferent(token.Org) {
				break
			}
			res.End = k
			j = k
			continue
		}
		if isWordOf(wk, "ГРАНИЦА", "ПРЕДЕЛ") && isWordOf(c.tok(k+1), "УЧАСТОК") {
			res.End = k + 1
			j = k + 1
			continue
		}
		dc := w.DictionaryClass()
		if dc.IsVerb() && !dc.IsNoun() {
			j = k
			continue
		}
		if w.IsComma() || dc.IsPreposition() || w.IsHyphen() || w.IsChar(':') {
			continue
		}
		if w.IsNumber() {
			if ms := c.numberWithUnit(j); ms != nil && (ms.unit == unitMeter || ms.unit == unitKm) {
				res.End = ms.end
				j = ms.end
				res.DetailMeters = meters(ms)
				continue
			}
		}
		break
	}
	if firstNum && res.DetailType == DetailUndefined {
		return nil
	}
	if n := c.tok(res.End + 1); n.DictionaryClass().IsPreposition() && c.tok(res.End).WhitespacesAfter == 1 &&
		n.WhitespacesAfter == 1 {
		res.End++
	}
	if n := c.tok(res.End + 1); n.IsHyphen() || n.IsChar(':') {
		res.End++
	}
	return res
}

func meters(ms *measure) int {
	if ms.unit == unitKm {
		return int(ms.real * 1000)
	}
	return int(ms.real)
}

// detailRange - участок трассы между километрами: "км 12+300 - км 15+100".
func (c *Context) detailRange(i int) *Item {
	kmAt := func(j int) (string, int) {
		if c.tok(j).IsChar('.') {
			j++
		}
		a, plus, b := c.tok(j), c.tok(j+1), c.tok(j+2)
		if !a.IsNumber() || !plus.IsChar('+') || !b.IsNumber() {
			return "", -1
		}
		return "км" + kmWithMeters(a, b), j + 2
	}
	v1, end := kmAt(i + 1)
	if end < 0 {
		return nil
	}
	j := end + 1
	if c.tok(j).IsHyphen() {
		j++
	}
	if !c.tok(j).IsValueOf("КМ", "КИЛОМЕТР") {
		return nil
	}
	v2, end2 := kmAt(j + 1)
	if end2 < 0 {
		return nil
	}
	return &Item{Kind: ItemDetail, Begin: i, End: end2, DetailType: DetailRange, Value: v1 + "-" + v2}
}
