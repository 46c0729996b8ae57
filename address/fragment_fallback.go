package address

import (
	"strings"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// --- ОБЩИЕ ПРАВИЛА ---

// fallbackFragment - разбор без словаря: километры, реки, инициалы, обычные слова.
// m - совпадение словаря в позиции i, не давшее результата (может быть nil).
func (c *Context) fallbackFragment(i int, m *ontology.Match, prev *Fragment, inSearch, hasNamed bool) *Fragment {
	t := c.tok(i)
	if t.Kind == token.Word {
		if f := c.kilometerFragment(i, inSearch); f != nil {
			return f
		}
		if f := c.riverName(i, prev); f != nil {
			return f
		}
		if isWordOf(t, "КАДАСТРОВЫЙ") {
			if next := c.fragmentAt(i+1, prev, inSearch); next.isNoun("КВАРТАЛ") {
				return next.withSpan(i, next.End)
			}
		}
		if p := c.tok(i - 1); p.IsNumber() && p.Number.Value == "26" && t.IsLetters() &&
			(strings.HasPrefix(t.Term, "БАКИНСК") || strings.HasPrefix("БАКИНСК", t.Term)) {
			j := i
			if c.tok(j + 1).IsChar('.') {
				j++
			}
			if w := c.tok(j + 1); w.IsLetters() && strings.HasPrefix(w.Term, "КОМИСС") {
				j++
				if c.tok(j + 1).IsChar('.') {
					j++
				}
				return &Fragment{Kind: FragStdName, Begin: i, End: j, Value: "БАКИНСКИХ КОМИССАРОВ", Morph: t.Morph}
			}
		}
		if f := c.initialsName(i, m, prev, hasNamed); f != nil {
			return f
		}
		if t.Chars.IsCyrillic && t.Length() > 1 && !t.Morph.IsPreposition() {
			if isWordOf(t, "ОБЪЕЗД", "ОБХОД") && c.tok(i+1) != nil {
				if prev == nil {
					return nil
				}
				if prev.isRoad() {
					if name, end := c.properName(i + 1); end >= 0 {
						return &Fragment{Kind: FragName, Begin: i, End: end, Value: "ОБЪЕЗД " + name, IsRoadName: true}
					}
				}
			}
			if f := c.honoraryName(i); f != nil {
				return f
			}
			if f := c.wordName(i, prev); f != nil {
				return f
			}
		}
		if t.IsHyphen() && c.tok(i+1).IsNumber() && prev.isNoun() &&
			(prev.NounCanBeName || prev.isNoun("МИКРОРАЙОН", "КВАРТАЛ") || strings.HasSuffix(prev.canonic(), "ГОРОДОК")) {
			n := c.tok(i + 1)
			return &Fragment{Kind: FragNumber, Begin: i, End: i + 1, Value: n.Number.Value, IsNumeric: true, NumberHasPrefix: true}
		}
		if f := c.letterAfterNoun(i, prev, inSearch); f != nil {
			return f
		}
	}
	if t.IsReferent(token.Geo) && prev.isNoun() && c.checkHouseAfter(i+1, false, false) {
		return &Fragment{Kind: FragName, Begin: i, End: i, Value: c.textValue(i, i), Morph: t.Morph}
	}
	if t.IsLetters() && t.Chars.IsCapitalUpper && t.Chars.IsLatin && t.WhitespacesAfter < 2 {
		if t.IsValueOf("THE", "A", "AN") {
			return nil
		}
		j := i + 1
		if c.tok(j).IsCharOf("'’") && c.tok(j+1).IsValue("S") {
			j += 2
		}
		if c.matchStreet(j) != nil {
			return &Fragment{Kind: FragName, Begin: i, End: j - 1, Value: c.textValue(i, j-1), Morph: t.Morph}
		}
	}
	if isWordOf(t, "ПОДЪЕЗД", "ПІД'ЇЗД") && prev.isRoad() && c.tok(i+1).IsValue("К") {
		if name, end := c.properName(i + 2); end >= 0 {
			return &Fragment{Kind: FragName, Begin: i, End: end, Value: "ПОДЪЕЗД - " + name, IsRoadName: true}
		}
	}
	if t.IsLetters() && t.Length() == 1 {
		if e := c.initialEnd(i); e >= 0 {
			if r := c.fragmentAt(e, nil, false); r != nil {
				x := r.withSpan(i, r.End)
				if x.Value == "" {
					x.Value = c.textValue(r.Begin, r.End)
				}
				return x
			}
		}
	}
	return nil
}

// kilometerFragment - "км 105", "километр 12+300".
func (c *Context) kilometerFragment(i int, inSearch bool) *Fragment {
	t := c.tok(i)
	if !t.IsValue("КМ") && !isWordOf(t, "КИЛОМЕТР", "КІЛОМЕТР") {
		return nil
	}
	j := i
	if c.tok(j + 1).IsChar('.') {
		j++
	}
	if n := c.tok(j + 1); c.tok(j).WhitespacesAfter < 3 && n.IsNumber() {
		f := &Fragment{Kind: FragNumber, Begin: i, End: j + 1, Value: n.Number.Value, IsNumeric: true, IsNumberKm: true}
		k := j + 2
		plus := false
		if w := c.tok(k); w.IsHyphen() || w.IsChar('+') {
			plus = w.IsChar('+')
			k++
		}
		if ms := c.numberWithUnit(k); ms != nil && ms.unit == unitMeter {
			f.End = ms.end
			f.Value += metersFraction(ms.real)
		} else if n2 := c.tok(k); plus && n2.IsNumber() && n2.Number.Int > 0 && n2.Number.Int < 1000 {
			f.End = k
			f.Value += metersFraction(float64(n2.Number.Int))
		}
		return f
	}
	if next := c.fragmentAt(i+1, nil, inSearch); next != nil && (next.IsRailway || next.isRoad()) {
		return next.withSpan(i, next.End)
	}
	return nil
}

// riverName - "набережная реки Фонтанки", "наб. р. Мойки".
func (c *Context) riverName(i int, prev *Fragment) *Fragment {
	t := c.tok(i)
	j := -1
	switch {
	case isWordOf(t, "РЕКА", "РЕЧКА", "РІЧКА"):
		if n := c.tok(i + 1); n != nil && (!n.Chars.IsAllLower || c.addressMode()) {
			j = i + 1
		}
	case t.IsValue("Р") && prev.isNoun("НАБЕРЕЖНАЯ", "НАБЕРЕЖНА"):
		j = i + 1
		if c.tok(j).IsChar('.') {
			j++
		}
	}
	if j < 0 {
		return nil
	}
	name, end := c.properName(j)
	if end < 0 {
		return nil
	}
	return &Fragment{Kind: FragName, Begin: i, End: end, Value: name, Misc: "реки", Morph: t.Morph}
}

// properName - имя собственное с позиции i: географический объект или слово с заглавной
// буквы, возможно через дефис ("Яуза", "Ханты-Мансийск").
func (c *Context) properName(i int) (string, int) {
	t := c.tok(i)
	if t.IsReferent(token.Geo) {
		return strings.ToUpper(t.Entity.Name()), i
	}
	if !t.IsLetters() || t.Chars.IsAllLower || t.Length() < 2 || c.isStreetNounAt(i) {
		return "", -1
	}
	end := i
	if c.tok(i+1).IsHyphen() && !c.tok(i+1).IsWhitespaceBefore() {
		if w := c.tok(i + 2); w.IsLetters() && !w.IsWhitespaceBefore() {
			end = i + 2
		}
	}
	return c.textValue(i, end), end
}

// initialsName - название с инициалами: "А.С. Пушкина", "М.Горького".
func (c *Context) initialsName(i int, m *ontology.Match, prev *Fragment, hasNamed bool) *Fragment {
	t := c.tok(i)
	n1 := c.tok(i + 1)
	if !t.IsLetters() || n1 == nil || !(n1.IsChar('.') || n1.IsHyphen() && t.Length() == 1) {
		return nil
	}
	if t.Chars.IsAllLower && !c.addressMode() || n1.WhitespacesAfter >= 3 || !c.tok(i+2).IsLetters() {
		return nil
	}
	j := i + 2
	if t.Length() == 1 && c.tok(j).Length() == 1 && c.tok(j+1) != nil {
		w := c.tok(j)
		switch {
		case w.IsAnd() && c.tok(j+1).Chars.IsAllUpper && c.tok(j+1).Length() == 1:
			j++
			w = c.tok(j)
		}
		if w.Chars.IsAllUpper && c.tok(j+1).IsChar('.') && c.tok(j+1).WhitespacesAfter < 3 && c.tok(j+2).IsLetters() {
			j += 2
		} else if w.Chars.IsAllUpper && w.WhitespacesAfter < 3 && c.tok(j+1).IsLetters() && !c.tok(j+1).Chars.IsAllLower {
			j++
		}
	}
	sit := c.fragmentAt(j, nil, false)
	if sit != nil {
		if ait := c.ClassifyBare(i, nil); ait != nil && ait.Value != "" && ait.Value != "0" {
			sit = nil
		}
	}
	w := c.tok(j)
	if sit == nil || !w.IsLetters() {
		return nil
	}
	str := w.Term
	mc := w.DictionaryClass()
	cla := c.tok(i + 2).DictionaryClass()
	ok := false
	switch {
	case sit.IsInDictionary:
		ok = true
	case c.isSurname(sit) || cla.IsProperName():
		ok = true
	case strings.HasSuffix(str, "ОЙ") && sit.Kind == FragName && sit.IsInDictionary:
		ok = true
	case hasAnySuffix(str, "ГО", "ИХ", "ЫХ"):
		ok = true
	case w.IsWhitespaceBefore() && mc != 0 && !mc.IsProperName():
		ok = c.checkHouseAfter(sit.End+1, false, true)
	case prev.isNoun() && (!prev.IsAbridge || c.lengthChar(prev) > 2):
		ok = true
	case prev != nil && prev.Kind == FragName && sit.Kind == FragNoun && c.checkHouseAfter(sit.End+1, false, true):
		ok = true
	case sit.Kind == FragName && c.checkHouseAfter(sit.End+1, false, true):
		ok = c.geoBefore(i)
	}
	if !ok && c.addressMode() && (sit.Kind == FragName || sit.Kind == FragStdAdjective) {
		switch {
		case c.fragmentAt(sit.End+1, nil, false).isNoun():
			ok = true
		case c.checkHouseAfter(sit.End+1, true, false):
			ok = true
		case c.tok(sit.End).IsNewlineAfter():
			ok = true
		}
	}
	if !ok {
		return nil
	}
	r := sit.withSpan(i, sit.End)
	if r.Value == "" {
		r.Value = str
	}
	if m != nil && fragKindOf(m.Termin) == FragStdAdjective && !hasNamed {
		if nt := c.tok(m.End + 1); !(nt.IsLetters() && nt.Length() == 1) {
			std := &Fragment{Kind: FragStdAdjective, Begin: m.Begin, End: m.End, Termin: m.Termin, IsAbridge: true}
			if all := c.Onto.Streets.MatchAll(c.Doc, i); len(all) > 1 {
				std.AltTermin = all[1].Termin
			}
			r.StdAdjVersion = std
		}
	}
	return r
}

// honoraryName - "Героев Панфиловцев", "Защитников Отечества", "Конституции СССР".
func (c *Context) honoraryName(i int) *Fragment {
	t := c.tok(i)
	if !isWordOf(t, "ГЕРОЙ", "ЗАЩИТНИК", "ЗАХИСНИК", "ОБРАЗОВАНИЕ", "ОСВОБОДИТЕЛЬ", "ВИЗВОЛИТЕЛЬ", "КОНСТИТУЦИЯ") {
		return nil
	}
	e2 := -1
	if c.tok(i + 1).IsReferent(token.Geo) {
		e2 = i + 1
	} else if p := c.nounPhrase(i + 1); p != nil && p.morph.IsGenitive() {
		e2 = p.end
	}
	if e2 < 0 {
		return nil
	}
	text := c.textValue(i, e2)
	sit := c.fragmentAt(e2+1, nil, false)
	if sit == nil || sit.Kind != FragName {
		if sit != nil && (sit.Kind == FragStdAdjective || sit.Kind == FragNoun) ||
			c.checkHouseAfter(e2+1, false, true) || c.tok(e2).IsNewlineAfter() {
			return &Fragment{Kind: FragName, Begin: i, End: e2, Value: text, Morph: t.Morph}
		}
		return &Fragment{Kind: FragStdPartOfName, Begin: i, End: e2, Value: text, Misc: text, IsInDictionary: true, Morph: t.Morph}
	}
	r := sit.withSpan(i, sit.End)
	v := c.valueOf(sit)
	if sit.AltValue == "" {
		r.AltValue = v
	}
	r.Value = text + " " + v
	return r
}

// letterAfterNoun - одиночная заглавная буква после типа: "квартал Б", "ряд 5А".
func (c *Context) letterAfterNoun(i int, prev *Fragment, inSearch bool) *Fragment {
	t := c.tok(i)
	if !t.IsLetters() || t.Length() != 1 || t.WhitespacesBefore >= 2 || !t.Chars.IsAllUpper || !prev.isNoun() {
		return nil
	}
	switch {
	case prev.isNoun("МИКРОРАЙОН", "КВАРТАЛ") || strings.HasSuffix(prev.canonic(), "ГОРОДОК"):
		return &Fragment{Kind: FragName, Begin: i, End: i, Value: t.Term, Morph: t.Morph}
	case prev.isNoun("РЯД", "БЛОК", "ЛИНИЯ", "ПАНЕЛЬ"):
		res := &Fragment{Kind: FragNumber, Begin: i, End: i, Value: cyrLetter(t.Term)}
		k := i + 1
		if c.tok(k).IsHyphen() {
			k++
		}
		if c.tok(k).IsNumber() && t.WhitespacesAfter < 3 {
			if ait := c.ClassifyBare(k, nil); ait.is(ItemNumber) {
				res.Value = ait.Value + res.Value
				res.End = ait.End
			}
		}
		return res
	case c.addressMode():
		if next := c.fragmentAt(i+1, prev, inSearch); next != nil && next.Kind == FragName {
			x := next.withSpan(i, next.End)
			x.Value = c.textValue(next.Begin, next.End)
			return x
		}
	}
	return nil
}

// --- ОБЫЧНЫЕ СЛОВА ---

// wordName - слово как название улицы, когда контекст это подтверждает: тип рядом,
// номер дома следом или весь текст - адрес.
func (c *Context) wordName(i int, prev *Fragment) *Fragment {
	t := c.tok(i)
	ok := false
	switch {
	case !t.Chars.IsAllLower:
		if ait := c.ClassifyBare(i, nil); ait != nil {
			if c.tok(i+1).IsHyphen() || t.IsValueOf("БЛОК", "ДОС") || c.tok(ait.End).IsValue("БЛОК") {
				ok = true
			}
		} else {
			ok = true
		}
	case prev != nil && (prev.Kind == FragNoun || prev.Kind == FragStdAdjective && c.tok(i-1).IsHyphen() ||
		prev.Kind == FragNumber && c.addressMode()):
		if c.checkHouseAfter(i+1, false, false) && !c.checkHouseAfter(i, false, false) {
			ok = true
		}
		if !ok {
			k := prev.Begin - 1
			if c.tok(k).IsComma() {
				k--
			}
			switch {
			case c.tok(k).IsReferent(token.Geo):
				ok = true
			case c.addressMode() && !c.checkHouseAfter(i, false, false):
				ok = true
			case c.tok(i - 1).IsHyphen():
				ok = true
			}
		}
	case t.WhitespacesAfter < 2:
		if nm := c.matchStreet(i + 1); nm != nil {
			if nm.Termin.Canonic == "ПЛОЩАДЬ" && isWordOf(t, "ОБЩИЙ") {
				return nil
			}
			k := i - 1
			if c.tok(k).IsComma() {
				k--
			}
			switch {
			case c.tok(k).IsReferent(token.Geo):
				ok = true
			case c.checkHouseAfter(nm.End+1, false, false):
				ok = true
			case c.addressMode():
				ok = true
			}
		} else if c.addressMode() && t.Length() > 3 && c.ClassifyBare(i, nil) == nil {
			ok = true
		}
	case t.IsNewlineAfter() && t.Length() > 2 && c.addressMode():
		ok = true
	}
	if !ok {
		return nil
	}
	if dc := t.DictionaryClass(); dc.Has(analyzer.Adverb) && !dc.IsProperName() && !c.addressMode() && !c.tok(i+1).IsHyphen() {
		return nil
	}
	res := &Fragment{Kind: FragName, Begin: i, End: i, Morph: t.Morph}
	n1, n2 := c.tok(i+1), c.tok(i+2)
	switch {
	case n1.IsHyphen() && n2.IsLetters() && !t.IsWhitespaceAfter() && !n1.IsWhitespaceAfter():
		ok2 := c.checkHouseAfter(i+3, false, false) || n2.IsNewlineAfter()
		if !ok2 && c.fragmentAt(i+3, nil, false).isNoun() {
			ok2 = true
		}
		if !ok2 && n2.Length() > 3 {
			ok2 = true
		}
		if ok2 {
			res.End = i + 2
			res.Value = t.Term + "-" + n2.Term
		}
	case t.WhitespacesAfter < 2 && n1.IsLetters():
		if n1.IsValue("БИ") {
			res.End = i + 1
			res.Value = t.Term + " " + n1.Term
		} else if !c.checkHouseAfter(i+1, false, false) || n1.IsNewlineAfter() {
			res = c.extendWordName(res, prev)
		}
	}
	return c.absorbInitials(res)
}

// extendWordName продолжает однословное название: именной группой ("Красных Зорь"),
// вторым словом перед номером дома или согласованием с типом ("Садовой ул." -> "САДОВАЯ").
func (c *Context) extendWordName(res *Fragment, prev *Fragment) *Fragment {
	i := res.Begin
	t := c.tok(i)
	j := i + 1
	pref := false
	if w := c.tok(j); w.IsAllLower() && w.IsValueOf("ДЕ", "ЛА") {
		j++
		pref = true
	}
	w := c.tok(j)
	nn := c.fragmentAt(j, nil, false)
	if nn == nil || nn.Kind == FragName {
		p := c.nounPhrase(i)
		if p != nil && (p.begin == p.end || c.matchStreet(p.end) != nil) {
			p = nil
		}
		switch {
		case p != nil && (c.tok(p.end).IsNewlineAfter() || c.checkHouseAfter(p.end+1, false, false) ||
			c.tok(p.end+1).IsComma() || c.tok(p.end+1).IsAnd()):
			res.End = p.end
			if p.isGenitive() {
				res.Value = c.textValue(i, p.end)
				res.AltValue = c.normalText(p)
			} else {
				res.Value = c.normalText(p)
				res.AltValue = c.textValue(i, p.end)
			}
		case w.Length() > 2 && c.checkHouseAfter(j+1, false, false) && w.Chars.IsCyrillic == t.Chars.IsCyrillic && t.WhitespacesAfter < 2:
			if w.Morph.IsVerb() && !w.IsValue("ДАЛИ") || p == nil && !w.Chars.IsAllLower && !pref {
				break
			}
			res.End = j
			res.Value = t.Term + " " + w.Term
		case nn != nil && t.Length() > 3 && nn.Begin == nn.End && t.DictionaryClass().IsProperName() &&
			c.tok(nn.Begin).Morph.IsProperName():
			res.End = nn.End
			res.Value = c.valueOf(nn)
			res.Misc = t.Term
		}
		return res
	}
	if nn.Kind != FragNoun {
		return res
	}
	gen := nn.gender()
	if gen == 0 {
		if p := c.nounPhrase(i); p != nil && p.end == nn.End {
			gen = singleGender(p.morph)
		} else if prev.isNoun() {
			gen = prev.gender()
		}
	} else {
		for _, f := range t.Forms {
			if (f.Morph.IsProperName() || f.Morph.IsNoun()) && f.Morph.IsGenitive() && f.InDictionary {
				gen = 0
				break
			}
		}
	}
	nnm := c.tok(nn.Begin).Morph
	if gen == 0 || nnm.IsNominative() && !nnm.Has(analyzer.Plural) {
		return res
	}
	text := c.textValue(res.Begin, res.End)
	v := c.nominative(text, gen, false)
	if strings.HasSuffix(v, "ОЙ") && !t.DictionaryClass().IsAdjective() {
		base := strings.TrimSuffix(v, "ОЙ")
		switch gen {
		case analyzer.Masculine:
			v = base + "ЫЙ"
		case analyzer.Neuter:
			v = base + "ОЕ"
		case analyzer.Feminine:
			v = base + "АЯ"
		}
	}
	if v != "" && v != text {
		res.AltValue = text
		res.Value = v
	}
	return res
}

// absorbInitials поглощает инициалы после фамилии: "Пушкина А.С.".
func (c *Context) absorbInitials(res *Fragment) *Fragment {
	if res.Kind != FragName || c.tok(res.End).WhitespacesAfter >= 2 {
		return res
	}
	j := res.End + 1
	w := c.tok(j)
	if !w.IsLetters() || w.Length() != 1 || !w.Chars.IsAllUpper || !c.tok(j+1).IsChar('.') {
		return res
	}
	if c.fragmentAt(j, nil, false) != nil || c.checkHouseAfter(j, false, false) {
		return res
	}
	if res.Value == "" {
		res.Value = c.textValue(res.Begin, res.End)
	}
	res.End = j + 1
	if w2 := c.tok(j + 2); c.tok(j+1).WhitespacesAfter < 2 && w2.IsLetters() && w2.Length() == 1 && w2.Chars.IsAllUpper {
		if c.tok(j + 3).IsChar('.') {
			res.End = j + 3
		} else if n := c.tok(j + 3); n == nil || n.IsComma() {
			res.End = j + 2
		}
	}
	return res
}
