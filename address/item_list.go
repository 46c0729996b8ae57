package address

import (
	"strings"

	"github.com/steosofficial/steosaddress/token"
)

// --- ПОСЛЕДОВАТЕЛЬНОСТЬ ЭЛЕМЕНТОВ ---

// nestedListItems - предел элементов в последовательности внутри скобок.
const nestedListItems = 3

// BuildItems строит последовательность элементов адреса начиная с позиции i.
// Возвращает nil, если с i адрес не начинается. Размер ограничен Options.MaxItems.
func (c *Context) BuildItems(i int) []*Item {
	if c.tok(i) == nil || !enter(&c.listLevel, maxListLevel) {
		return nil
	}
	defer leave(&c.listLevel)
	res := c.buildItems(i, c.opts.MaxItems, false)
	if len(res) == 0 {
		return nil
	}
	return res
}

func (c *Context) buildItems(i, maxCount int, nested bool) []*Item {
	t := c.tok(i)
	if t.IsNumber() {
		if t.Number.Int < 0 {
			return nil
		}
		// Одиночное число - не начало адреса, если это не индекс.
		if v := t.Number.Int; (v < 100000 || v >= 10000000) && t.Number.Spelling == token.Digit && !t.Morph.IsAdjective() {
			if n := c.tok(i + 1); n == nil || n.IsNumber() {
				if !c.tok(i - 1).IsPreposition() {
					return nil
				}
			}
		}
	}
	it := c.ClassifyItem(i, nil)
	if it == nil || it.is(ItemNumber) {
		return nil
	}
	if it.is(ItemKilometer) && c.tok(it.Begin-1).IsNumber() {
		b := it.Begin - 1
		it = it.withSpan(b, it.End)
		it.Value = c.tok(b).Number.Value
		if c.tok(b - 1).IsPreposition() {
			it = it.withSpan(b-1, it.End)
		}
	}
	if it.is(ItemStreet) && it.Street != nil && it.Street.Org != nil && !c.addressMode() {
		return nil
	}
	res := []*Item{it}
	if it.AltItem != nil {
		res = append(res, it.AltItem)
	}
	pref := it.is(ItemPrefix)

loop:
	for k := it.End + 1; c.tok(k) != nil; k++ {
		t := c.tok(k)
		if maxCount > 0 && len(res) >= maxCount {
			break
		}
		last := res[len(res)-1]
		if len(res) > 1 && c.tok(last.Begin).IsNewlineBefore() && !res[len(res)-2].is(ItemPrefix) && repeatsOnNewline(res) {
			res = res[:len(res)-1]
			break
		}
		switch {
		case t.IsCharOf(",|") || t.IsValue("ДУБЛЬ"):
			continue
		case t.IsCharOf("\\/"):
			if t.IsNewlineBefore() || t.IsNewlineAfter() {
				break loop
			}
			if c.tok(k - 1).IsComma() {
				continue
			}
			if last.is(ItemStreet) && last.Doubt {
				break loop
			}
			res = append(res, &Item{Kind: ItemDetail, Begin: k, End: k, DetailType: DetailCross})
			continue
		case t.IsCharOf(":;") && c.addressMode():
			continue
		case isAnyBracket(t) && c.tok(k+1).IsComma():
			continue
		case t.IsChar('.'):
			if t.IsNewlineAfter() {
				if last.is(ItemCity) {
					if next := c.ClassifyItem(k+1, nil); next.is(ItemStreet) {
						continue
					}
				}
				break loop
			}
			if c.tok(k-1).IsChar('.') && c.tok(k-2).IsChar('.') {
				break loop
			}
			continue
		}
		if t.IsHyphen() || t.IsChar('_') {
			if it.is(ItemNumber, ItemStreet) && c.tok(k+1).IsNumber() || c.addressMode() || it.is(ItemCity) {
				continue
			}
		}

		// "на пересечении ул. Мира и Ленина"
		if it.is(ItemDetail) && it.DetailType == DetailCross {
			if s1 := c.classifyItem(k, true, nil); s1.is(ItemStreet) {
				if sep := c.tok(s1.End + 1); sep.IsAnd() || sep.IsHyphen() {
					s2 := c.classifyItem(s1.End+2, true, nil)
					if !s2.is(ItemStreet) {
						if s2 = c.SecondStreet(s1.Begin, s1.End+2); s2 != nil {
							s2.Doubt = false
						}
					}
					if s2.is(ItemStreet) {
						res = append(res, s1, s2)
						it = s2
						k = s2.End
						continue
					}
				}
			}
		}

		pre := pref
		if (it.is(ItemKilometer) || it.is(ItemHouse) && it.Value != "") && !t.IsNewlineBefore() {
			pre = true
		}
		it0 := c.classifyItem(k, pre, it)
		if it0 == nil && t.DictionaryClass().IsPreposition() && t.WhitespacesAfter < 3 {
			if it0 = c.classifyItem(k+1, pre, it); it0 != nil {
				if it0.is(ItemNumber) || it0.is(ItemBuilding) && c.tok(k+1).IsValue("СТ") {
					it0 = nil
				}
			}
		}
		if it0 == nil && token.IsBracket(t, false) && last.is(ItemStreet) {
			continue
		}
		if it0 == nil && t.IsChar('(') && c.tok(k+1).IsReferent(token.Geo) && c.tok(k+2).IsChar(')') {
			if it0 = c.classifyItem(k+1, pre, it); it0 != nil {
				it0 = it0.withSpan(k, it0.End+1)
			}
		}

		if it0 == nil {
			next, stop := c.recoverAt(k, &res, &it, pre, nested)
			if stop {
				break
			}
			k = next
			continue
		}
		// Элемент мог захватить токены слева ("тер." перед названием), уже вошедшие в last.
		if it0.Begin <= last.End {
			if it0.End < k {
				break
			}
			it0 = clipBegin(it0, k)
		}

		if t.WhitespacesBefore > 15 && !(it0.is(ItemStreet) && last.is(ItemCity)) {
			break
		}
		if t.IsNewlineBefore() && it0.is(ItemStreet) && it0.Street != nil && it0.Street.Org != nil && !it0.Street.Org.IsGsk {
			break
		}
		if it0.is(ItemStreet) && t.IsValue("КВ") && it.is(ItemHouse, ItemBuilding, ItemCorpus) {
			if it2 := c.ClassifyBare(k, nil); it2.is(ItemFlat) {
				it0 = it2
			}
		}
		if it0.is(ItemPrefix) {
			break
		}
		if it0.is(ItemNumber) {
			if !isDigitStart(it0.Value) {
				break
			}
			cou := 0
			for j := len(res) - 1; j >= 0 && res[j].is(ItemNumber); j-- {
				cou++
			}
			if cou > 5 || it.Doubt && t.IsNewlineBefore() {
				break
			}
		}
		if it0.is(ItemCorpusOrFlat) && it.is(ItemFlat) {
			it0 = it0.clone()
			it0.Kind = ItemRoom
		}
		switch {
		case it0.is(ItemFloor, ItemPorch, ItemBlock, ItemKilometer) && it0.Value == "" && it.is(ItemNumber) &&
			it.End+1 == it0.Begin:
			// "5 этаж"
			n := it.clone()
			n.Kind = it0.Kind
			n.End = it0.End
			replaceItem(res, it, n)
			it = n
		case it.is(ItemFloor, ItemPorch) && it.Value == "" && it0.is(ItemNumber) && it.End+1 == it0.Begin:
			n := it.clone()
			n.Value = it0.Value
			n.End = it0.End
			replaceItem(res, it, n)
			it = n
		default:
			it = it0
			res = append(res, it)
			if it.AltItem != nil {
				res = append(res, it.AltItem)
			}
		}
		k = it.End
	}
	if len(res) == 0 {
		return nil
	}
	res = c.cleanupItems(res)
	if len(res) == 0 {
		return nil
	}
	return res
}

// repeatsOnNewline - последний элемент с новой строки повторяет тип уже собранного:
// начинается другой адрес.
func repeatsOnNewline(res []*Item) bool {
	last := res[len(res)-1]
	i := 0
	for ; i < len(res)-1; i++ {
		if res[i].Kind != last.Kind {
			continue
		}
		if i == len(res)-2 && last.is(ItemCity, ItemRegion) {
			jj := 0
			for ; jj < i; jj++ {
				if !res[jj].is(ItemPrefix, ItemZip, ItemRegion, ItemCountry) {
					break
				}
			}
			if jj >= i {
				continue
			}
		}
		break
	}
	return i < len(res)-1 || last.is(ItemZip)
}

// recoverAt - разбор с позиции k не дал элемента: пропуск связок, предлоги, скобки,
// слитные корпуса. Возвращает позицию, после которой продолжать, или stop.
func (c *Context) recoverAt(k int, res *[]*Item, it **Item, pre, nested bool) (int, bool) {
	t := c.tok(k)
	cur := *it
	if t.NewlinesBefore > 2 || cur.is(ItemPostOfficeBox) {
		return k, true
	}
	if t.IsHyphen() && (c.tok(k+1).IsComma() || c.tok(k+1).IsNumber() && c.addressMode()) {
		return k, false
	}
	if t.IsValueOf("НЕТ", "ТЕР", "ТЕРРИТОРИЯ") {
		return k, false
	}
	if e := c.stdNameEnd(k); e >= k {
		return e, false
	}
	push := func(n *Item) int {
		*res = append(*res, n)
		*it = n
		return n.End
	}
	if t.Morph.IsPreposition() {
		it0 := c.classifyItem(k+1, false, cur)
		if it0.is(ItemBuilding) && c.tok(it0.Begin).IsValue("СТ") {
			return k, true
		}
		if it0 != nil {
			if it0.is(ItemDetail) && cur.is(ItemCity) && cur.DetailMeters > 0 && cur.DetailType == DetailUndefined {
				n := cur.clone()
				n.DetailType = it0.DetailType
				n.End = it0.End
				replaceItem(*res, cur, n)
				*it = n
				return n.End, false
			}
			if it0.is(ItemHouse, ItemBuilding, ItemCorpus, ItemStreet, ItemDetail) {
				return push(it0), false
			}
		}
	}
	// "д.5к2с1" - слитные корпус и строение.
	if cur.is(ItemHouse, ItemBuilding, ItemNumber) {
		if kind := gluedKind(t); kind != ItemUndefined && !t.IsWhitespaceBefore() && !t.IsWhitespaceAfter() && c.tok(k+1).IsNumber() {
			end := push(&Item{Kind: kind, Begin: k, End: k + 1, Value: c.tok(k + 1).Number.Value})
			if tt := c.tok(end + 1); !tt.IsWhitespaceBefore() && !tt.IsWhitespaceAfter() && c.tok(end+2).IsNumber() {
				if kind2 := gluedKind(tt); kind2 != ItemUndefined {
					end = push(&Item{Kind: kind2, Begin: end + 1, End: end + 2, Value: c.tok(end + 2).Number.Value})
				}
			}
			return end, false
		}
	}
	if t.Morph.IsPreposition() && t.IsValueOf("У", "ВОЗЛЕ", "НАПРОТИВ", "НА", "В", "ВО", "ПО", "ОКОЛО") {
		return k, false
	}
	if t.Morph.IsNoun() && t.IsValueOf("ДВОР", "ПОДЪЕЗД", "КРЫША", "ПОДВАЛ") {
		return k, false
	}
	if isWordOf(t, "ТЕРРИТОРИЯ", "ТЕРИТОРІЯ") {
		return k, false
	}
	if t.IsChar('(') && c.tok(k+1) != nil {
		if in := c.classifyItem(k+1, pre, nil); in != nil && c.tok(in.End+1).IsChar(')') {
			return push(in.withSpan(k, in.End+1)), false
		}
		if !nested {
			li := c.buildItems(k+1, nestedListItems, true)
			if len(li) > 1 && !li[0].is(ItemDetail) && c.tok(li[len(li)-1].End+1).IsChar(')') {
				li[0] = li[0].withSpan(k, li[0].End)
				lst := li[len(li)-1]
				li[len(li)-1] = lst.withSpan(lst.Begin, lst.End+1)
				*res = append(*res, li...)
				*it = li[len(li)-1]
				return (*it).End, false
			}
		}
		if e := c.Doc.BracketEnd(k, 100); e > k && len([]rune(c.Doc.Span(k, e))) < 100 {
			if c.tok(k+1).IsValueOf("БЫВШИЙ", "БЫВШ") {
				push(&Item{Kind: ItemDetail, Begin: k, End: e})
			}
			return e, false
		}
	}
	if t.IsValueOf("КВ", "KB") && c.flatAfterHouse(*res, cur) {
		k2 := k + 1
		if c.tok(k2).IsChar('.') {
			k2++
		}
		if n := c.ClassifyBare(k2, nil); n.is(ItemNumber) {
			f := n.withSpan(k, n.End)
			f.Kind = ItemFlat
			*res = append(*res, f)
			return f.End, false
		}
	}
	// "г. Курск, -, д. 5" - улица не указана.
	if (*res)[len(*res)-1].is(ItemCity) && (t.IsHyphen() || t.IsChar('_') || t.IsValue("НЕТ")) && c.tok(k+1).IsComma() {
		if att := c.ClassifyBare(k+2, nil); att.is(ItemHouse, ItemBuilding, ItemCorpus) {
			return push(&Item{Kind: ItemStreet, Begin: k, End: k}), false
		}
	}
	// "РФ", "РБ" между элементами.
	if t.Kind == token.Word && t.Length() == 2 && t.Chars.IsAllUpper && strings.HasPrefix(t.Term, "Р") {
		return k, false
	}
	return k, true
}

// flatAfterHouse - "кв" после номера дома читается как квартира.
func (c *Context) flatAfterHouse(res []*Item, it *Item) bool {
	if it.is(ItemNumber) && len(res) > 1 && res[len(res)-2].is(ItemStreet) {
		return true
	}
	if it.is(ItemHouse, ItemBuilding, ItemCorpus, ItemCorpusOrFlat) {
		for j := len(res) - 2; j >= 0; j-- {
			if res[j].is(ItemStreet, ItemCity) {
				return true
			}
		}
	}
	return false
}

// gluedKind - однобуквенный маркер слитного номера: "к" - корпус, "с" - строение.
func gluedKind(t *token.Token) ItemKind {
	if !t.IsLetters() || t.Length() != 1 {
		return ItemUndefined
	}
	switch correctChar([]rune(t.Term)[0]) {
	case 'К':
		return ItemCorpus
	case 'С':
		return ItemBuilding
	}
	return ItemUndefined
}

// replaceItem заменяет old на n в списке по указателю.
func replaceItem(res []*Item, old, n *Item) {
	for j := len(res) - 1; j >= 0; j-- {
		if res[j] == old {
			res[j] = n
			return
		}
	}
}

// --- ЧИСТКА ПОСЛЕДОВАТЕЛЬНОСТИ ---

// cleanupItems - проходы по готовому списку. Порядок проходов существенен.
func (c *Context) cleanupItems(res []*Item) []*Item {
	res = clipOverlaps(res)
	res = c.cleanupTail(res)
	if len(res) == 0 {
		return nil
	}
	c.propagateDetails(res)
	numberBeforeBuilding(res)
	res = c.areaWithCity(res)
	res = dropLetterBeforeCity(res)
	res = forestryNumbers(res)
	res = foldKilometers(res)
	c.zdBuildings(res)
	res = trimParts(res)
	if res == nil {
		return nil
	}
	if c.addressMode() {
		res = c.dedupGeos(res)
	}
	res = c.dropTrailing(res)
	if c.addressMode() && len(res) > 2 {
		streetNumberAsHouse(res)
	}
	res = dropRegionNumber(res)
	return res
}

// clipOverlaps убирает наложения соседних элементов: элемент, начатый внутри
// предыдущего, обрезается слева, а целиком вложенный отбрасывается. Второе
// прочтение с тем же диапазоном остается.
func clipOverlaps(res []*Item) []*Item {
	out := res[:0]
	var alt *Item
	for _, orig := range res {
		it := orig
		if n := len(out); n > 0 {
			prev := out[n-1]
			switch {
			case orig == alt && prev.AltItem != nil:
				it = prev.AltItem
			case it.Begin > prev.End:
			case it.Begin == prev.Begin && it.End == prev.End:
			case it.End <= prev.End:
				continue
			default:
				it = clipBegin(it, prev.End+1)
			}
		}
		alt = orig.AltItem
		out = append(out, it)
	}
	return out
}

func clipBegin(it *Item, begin int) *Item {
	res := it.withSpan(begin, it.End)
	if res.AltItem != nil && res.AltItem.Begin < begin {
		res.AltItem.Begin = begin
	}
	return res
}

// cleanupTail - последнее число: бокс после гаражного кооператива, дом после улицы
// или удаление, если это начало другого оборота.
func (c *Context) cleanupTail(res []*Item) []*Item {
	n := len(res)
	it := res[n-1]
	var it0 *Item
	if n > 1 {
		it0 = res[n-2]
	}
	if it.is(ItemNumber) && it0 != nil && it0.Street != nil && isGarage(it0.Street.Org) {
		b := it.clone()
		b.Kind = ItemBox
		res[n-1] = b
		return res
	}
	if !it.is(ItemNumber, ItemZip) {
		return res
	}
	del := c.tok(it.Begin - 1).IsPreposition()
	if !del && it.is(ItemNumber) && c.tok(it.End).WhitespacesAfter == 1 && c.tok(it.Begin).WhitespacesBefore > 0 {
		del = c.nounPhrase(it.End+1) != nil
	}
	switch {
	case del:
		return res[:n-1]
	case it.is(ItemNumber) && it0.is(ItemStreet) && (it0.Street == nil || it0.Street.Org == nil):
		if c.tok(it.Begin-1).IsComma() || c.tok(it.End).IsNewlineAfter() {
			h := it.clone()
			h.Kind = ItemHouse
			h.Doubt = true
			res[n-1] = h
		}
	}
	return res
}

func isGarage(org *token.Entity) bool {
	if org == nil {
		return false
	}
	for _, nm := range org.Names {
		if nm == "РОСАТОМ" {
			return false
		}
	}
	for _, typ := range org.Types {
		if strings.Contains(typ, "гараж") || strings.HasPrefix(typ, "г") && strings.HasSuffix(typ, "к") {
			return true
		}
	}
	return false
}

// propagateDetails переносит уточнение положения внутри города или улицы на сам элемент.
func (c *Context) propagateDetails(res []*Item) {
	for j, r := range res {
		if !r.is(ItemCity, ItemStreet) {
			continue
		}
		if r.Geo != nil && strings.Contains(r.Geo.Type(), "район") {
			continue
		}
		for k := r.Begin; k <= r.End; k++ {
			d := c.attachDetail(k, nil)
			if d == nil || d.End > r.End || d.DetailType == DetailUndefined && d.DetailMeters == 0 {
				continue
			}
			n := r.clone()
			if n.DetailType == DetailUndefined {
				n.DetailType = d.DetailType
			}
			if d.DetailMeters > 0 {
				n.DetailMeters = d.DetailMeters
			}
			if d.DetailParam != "" {
				n.DetailParam = d.DetailParam
			}
			res[j] = n
			break
		}
	}
}

// numberBeforeBuilding - "ул. Мира, 5, корп. 2": число между улицей и корпусом - дом.
func numberBeforeBuilding(res []*Item) {
	for j := 0; j+2 < len(res); j++ {
		if res[j].is(ItemStreet) && res[j+1].is(ItemNumber) && res[j+2].is(ItemBuilding, ItemCorpus, ItemOffice, ItemFlat) {
			h := res[j+1].clone()
			h.Kind = ItemHouse
			res[j+1] = h
		}
	}
}

// areaWithCity - "мкр. Северный" после населенного пункта, где название ушло в CITY.
func (c *Context) areaWithCity(res []*Item) []*Item {
	for j := 0; j+1 < len(res); j++ {
		r, nx := res[j], res[j+1]
		if !r.is(ItemStreet) || !nx.is(ItemCity) || r.Street == nil {
			continue
		}
		st := r.Street
		if st.Kind != StreetArea || len(st.Types) != 1 || len(st.Names) > 0 || st.Number != "" {
			continue
		}
		if !(j == 0 && c.addressMode() || j > 0 && res[j-1].is(ItemCity)) {
			continue
		}
		name := ""
		if nx.Geo != nil {
			name = nx.Geo.Name()
		} else if p := c.nounPhrase(nx.Begin); p != nil && p.end == nx.End {
			name = c.normalText(p)
		}
		if name == "" {
			continue
		}
		m := r.clone()
		m.End = nx.End
		m.Street.AddName(name)
		res[j] = m
		return append(res[:j+1], res[j+2:]...)
	}
	return res
}

// dropLetterBeforeCity - одиночная буква, принятая за строение перед городом ("С. Ивановка").
func dropLetterBeforeCity(res []*Item) []*Item {
	for j := 0; j+1 < len(res); j++ {
		if res[j].is(ItemBuilding) && res[j].Begin == res[j].End && res[j+1].is(ItemCity) && len([]rune(res[j].Value)) <= 1 {
			res = append(res[:j], res[j+1:]...)
			j--
		}
	}
	return res
}

// forestryNumbers - номер квартала лесничества: "кв. 12 Курского лесничества".
func forestryNumbers(res []*Item) []*Item {
	for j := 0; j+1 < len(res); j++ {
		r, nx := res[j], res[j+1]
		if !nx.is(ItemStreet) || nx.Street == nil || !isForestry(nx.Street.Org) {
			continue
		}
		num := ""
		switch {
		case r.is(ItemFlat):
			num = r.Value
		case r.is(ItemStreet) && r.Street != nil && r.Street.Number != "" && len(r.Street.Names) == 0 &&
			r.Street.HasType("квартал"):
			num = r.Street.Number
		default:
			continue
		}
		m := nx.withSpan(r.Begin, nx.End)
		m.Street.Number = num
		res[j+1] = m
		return append(res[:j], res[j+1:]...)
	}
	return res
}

func isForestry(org *token.Entity) bool {
	if org == nil {
		return false
	}
	for _, s := range append(append([]string(nil), org.Types...), org.Names...) {
		if strings.Contains(strings.ToUpper(s), "ЛЕСНИЧ") {
			return true
		}
	}
	return false
}

// foldKilometers - километр рядом с улицей становится ее номером.
func foldKilometers(res []*Item) []*Item {
	for j := 0; j+1 < len(res); j++ {
		r, nx := res[j], res[j+1]
		if r.is(ItemStreet) && nx.is(ItemKilometer) && r.Street != nil && r.Street.Number == "" {
			m := r.withSpan(r.Begin, nx.End)
			m.Street.Number = nx.Value + "км"
			res[j] = m
			res = append(res[:j+1], res[j+2:]...)
		}
	}
	for j := 0; j+1 < len(res); j++ {
		r, nx := res[j], res[j+1]
		if nx.is(ItemStreet) && r.is(ItemKilometer) && nx.Street != nil && nx.Street.Number == "" {
			m := nx.withSpan(r.Begin, nx.End)
			m.Street.Number = r.Value + "км"
			res[j+1] = m
			res = append(res[:j], res[j+1:]...)
			break
		}
	}
	return res
}

// zdBuildings - "зд. 5, стр. 2": здание перед строением - дом.
func (c *Context) zdBuildings(res []*Item) {
	for j := 0; j+1 < len(res); j++ {
		if res[j].is(ItemBuilding) && res[j+1].is(ItemBuilding) && strings.HasPrefix(c.tok(res[j].Begin).Term, "ЗД") {
			h := res[j].clone()
			h.Kind = ItemHouse
			res[j] = h
		}
	}
}

// trimParts - "часть" без дома или участка рядом обрывает последовательность;
// "б/н" в конце после города - дом без номера.
func trimParts(res []*Item) []*Item {
	for j := 0; j < len(res); j++ {
		r := res[j]
		if r.is(ItemPart) {
			if j > 0 && res[j-1].is(ItemHouse, ItemPlot) || j+1 < len(res) && res[j+1].is(ItemHouse, ItemPlot) {
				continue
			}
			if j == 0 {
				return nil
			}
			return res[:j]
		}
		if r.is(ItemNoNumber) && j == len(res)-1 && j > 0 && res[j-1].is(ItemCity) {
			h := r.clone()
			h.Kind = ItemHouse
			res[j] = h
		}
	}
	return res
}

// dedupGeos убирает повтор того же населенного пункта в пределах строки.
func (c *Context) dedupGeos(res []*Item) []*Item {
	for j := 0; j+1 < len(res); j++ {
		if res[j].Geo == nil {
			continue
		}
		for k := j + 1; k < len(res); k++ {
			if c.tok(res[k].Begin).IsNewlineBefore() {
				break
			}
			if res[k].Kind == res[j].Kind && res[k].Geo.Equal(res[j].Geo) {
				res = append(res[:k], res[k+1:]...)
				k--
			}
		}
	}
	return res
}

// dropTrailing убирает хвост: одиночную косую черту, лишний город в длинной
// последовательности, организацию без признака территории.
func (c *Context) dropTrailing(res []*Item) []*Item {
	for len(res) > 0 {
		last := res[len(res)-1]
		if last.is(ItemDetail) && last.DetailType == DetailCross && last.Begin == last.End && c.tok(last.Begin).Length() == 1 {
			res = res[:len(res)-1]
			continue
		}
		if last.is(ItemCity) && len(res) > 4 {
			ok := false
			for j := 0; j < 3; j++ {
				if res[j].is(ItemCity) {
					ok = true
				}
			}
			if ok {
				res = res[:len(res)-1]
				continue
			}
		}
		if !last.is(ItemStreet) || last.Street == nil || last.Street.Org == nil {
			break
		}
		if last.Street.Org.IsGsk || c.addressMode() {
			break
		}
		res = res[:len(res)-1]
	}
	return res
}

// streetNumberAsHouse - "г. Курск, ул. 5" в строке адреса: номерная "улица" в конце - дом.
func streetNumberAsHouse(res []*Item) {
	for j := 1; j < len(res); j++ {
		prev, r := res[j-1], res[j]
		if !prev.is(ItemStreet, ItemCity) || !r.is(ItemStreet) || r.Street == nil {
			continue
		}
		st := r.Street
		if st.Number == "" || len(st.Names) > 0 || len(st.Types) != 1 || st.Types[0] != "улица" || j+1 < len(res) {
			continue
		}
		if prev.is(ItemCity) && (prev.Geo == nil || prev.Geo.HasType("город")) {
			continue
		}
		h := r.clone()
		h.Kind = ItemHouse
		h.Value = st.Number
		h.Street = nil
		res[j] = h
	}
}

// dropRegionNumber - число между регионом и городом при наличии улицы или дома дальше.
func dropRegionNumber(res []*Item) []*Item {
	for j := 0; j+2 < len(res); j++ {
		if !res[j].is(ItemRegion) || !res[j+1].is(ItemNumber) || !res[j+2].is(ItemCity) {
			continue
		}
		for k := j + 3; k < len(res); k++ {
			if res[k].is(ItemStreet) || res[k].Value != "" {
				return append(res[:j+1], res[j+2:]...)
			}
		}
	}
	return res
}
