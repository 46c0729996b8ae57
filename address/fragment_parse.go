package address

import (
	"strconv"
	"strings"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// ClassifyFragment классифицирует фрагмент названия улицы с позиции i.
// prev - предыдущий фрагмент цепочки (может быть nil). Nil - фрагмента нет.
func (c *Context) ClassifyFragment(i int, prev *Fragment) *Fragment {
	return c.fragmentAt(i, prev, false)
}

// atTopLevel - разбор идет не изнутри другого разбора, результат можно кэшировать.
func (c *Context) atTopLevel() bool {
	return c.cacheValid && c.fragLevel == 0 && c.runLevel == 0 && c.itemLevel == 0 && c.pureLevel == 0
}

func (c *Context) fragmentAt(i int, prev *Fragment, inSearch bool) *Fragment {
	t := c.tok(i)
	if t == nil || t.IsCharOf(",.:") {
		return nil
	}
	cacheable := prev == nil && !inSearch && c.atTopLevel()
	if cacheable {
		if f, ok := c.fragCache[i]; ok {
			return f
		}
	}
	if !enter(&c.fragLevel, maxFragmentLevel) {
		return nil
	}
	defer leave(&c.fragLevel)
	res := c.classifyFragment(i, prev, inSearch, false)
	if res != nil {
		res = c.refineFragment(res, prev, inSearch)
	} else {
		res = c.bracketedNoun(i)
	}
	if cacheable {
		c.fragCache[i] = res
	}
	return res
}

// bracketedNoun - тип улицы в скобках: "Мира (ул.)".
func (c *Context) bracketedNoun(i int) *Fragment {
	if !c.tok(i).IsChar('(') || !c.addressMode() {
		return nil
	}
	if m := c.matchStreet(i + 1); m == nil {
		return nil
	}
	n := c.classifyFragment(i+1, nil, false, false)
	if n == nil || n.Kind != FragNoun || !c.tok(n.End+1).IsChar(')') {
		return nil
	}
	r := n.withSpan(i, n.End+1)
	r.IsInBrackets = true
	return r
}

// --- УТОЧНЕНИЕ РЕЗУЛЬТАТА ---

// refineFragment применяет правила, общие для всех путей классификации:
// отсев служебных слов, склейку номеров и территорию в скобках.
func (c *Context) refineFragment(res *Fragment, prev *Fragment, inSearch bool) *Fragment {
	if res.Kind == FragNoun {
		return res
	}
	t := c.tok(res.Begin)
	if res.Kind == FragName && res.Begin == res.End && t.IsValueOf("ИЖС", "ЛПХ", "ДУБЛЬ") {
		return nil
	}
	if res.Kind != FragNumber {
		if ait := c.ClassifyBare(res.Begin, nil); ait.is(ItemHouse) && ait.Value != "" && ait.Value != "0" {
			return nil
		}
	}
	if res.Kind == FragNumber {
		next := c.tok(res.End + 1)
		switch {
		case isWordOf(next, "ОТДЕЛЕНИЕ"):
			res = res.withSpan(res.Begin, res.End+1)
			res.NumberHasPrefix = true
		case next.IsChar('+'):
			if n := c.fragmentAt(res.End+2, nil, false); n != nil && n.Kind == FragNumber {
				v := res.Value + "+" + n.Value
				res = res.withSpan(res.Begin, n.End)
				res.Value = v
			}
		}
	}
	if w := c.tok(res.End + 1); w.IsChar('(') {
		res = c.territoryInBrackets(res, res.End+1)
	}
	if res.Begin == res.End && (res.Kind == FragName || res.Kind == FragStdName || res.Kind == FragStdPartOfName) {
		res = c.extendLongName(res)
	}
	if res.Kind == FragNumber && prev != nil {
		res = c.rowNumber(res, prev)
	}
	if res.isRoad() || res.Kind == FragNoun && prev.isRoad() {
		res = c.absorbRoadPurpose(res)
	}
	return res
}

// territoryInBrackets - после фрагмента в скобках указана территория:
// "ул. Мира (СНТ Заря)", "Мира (Заречье)".
func (c *Context) territoryInBrackets(res *Fragment, open int) *Fragment {
	if res.Value == "" && res.Kind != FragNoun {
		res = res.clone()
		res.Value = c.textValue(res.Begin, res.End)
	}
	if it := c.ClassifyItem(open+1, nil); it.is(ItemStreet) && c.tok(it.End+1).IsChar(')') {
		r := res.clone()
		r.Territory = it.withSpan(it.Begin, it.End)
		r.End = it.End + 1
		return r
	}
	n := c.classifyFragment(open+1, nil, false, false)
	if n == nil || (n.Kind != FragName && n.Kind != FragStdName) || !c.tok(n.End+1).IsChar(')') {
		return res
	}
	st := &Street{}
	st.AddType("территория")
	c.addNames(st, n)
	r := res.clone()
	r.Territory = &Item{Kind: ItemStreet, Begin: open + 1, End: n.End, Street: st}
	r.End = n.End + 1
	return r
}

// extendLongName присоединяет к однословному названию следующее слово, если оно
// похоже на его продолжение: "Шарль Бодлер", "Лесная Поляна". Только в режиме адреса.
func (c *Context) extendLongName(res *Fragment) *Fragment {
	if !c.addressMode() || c.whitespacesAfter(res) > 2 {
		return res
	}
	j := res.End + 1
	w := c.tok(j)
	if (w.IsPreposition() || w.IsAnd()) && c.tok(j+1) != nil {
		j++
		w = c.tok(j)
	}
	if !w.IsLetters() || w.Length() < 2 || !w.Chars.IsCyrillic {
		return res
	}
	ok := c.tok(j+1) == nil || w.IsNewlineAfter() || c.tok(j+1).IsComma()
	mc := w.DictionaryClass()
	switch {
	case mc.IsAdjective():
		ok = false
	case mc.IsProperName() && !w.IsValueOf("ГОРА", "ГЛИНКА"):
		return res
	case w.IsValue("УЛ") || c.isStreetNounAt(j):
		return res
	case mc.IsNoun(), mc == 0 && w.Chars.IsAllLower:
	default:
		ok = false
	}
	if !ok {
		return res
	}
	r := res.withSpan(res.Begin, j)
	v := c.textValue(res.Begin, j)
	if res.Value != "" && res.Value != v {
		r.AltValue = res.Value
	}
	r.Value = v
	return r
}

// rowNumber - торговые ряды: "ряд 5 место 3", "блок 2 ряд 4".
func (c *Context) rowNumber(res, prev *Fragment) *Fragment {
	n1 := c.tok(res.End + 1)
	switch {
	case prev.isNoun("РЯД") && (isWordOf(n1, "ЛИНИЯ") || isWordOf(n1, "БЛОК")):
		if it := c.ClassifyBare(res.End+2, nil); it.is(ItemNumber) {
			r := res.withSpan(res.Begin, it.End)
			if correctWord(it.Value) != "" && len([]rune(it.Value)) == 1 {
				r.Value = res.Value + it.Value
			} else {
				r.Value = res.Value + "/" + it.Value
			}
			return r
		}
	case prev.isNoun("БЛОК", "ЛИНИЯ") && isWordOf(n1, "РЯД"):
		if it := c.ClassifyBare(res.End+2, nil); it.is(ItemNumber) {
			r := res.withSpan(res.Begin, it.End)
			if isDigits(it.Value) != isDigits(res.Value) {
				r.Value = res.Value + it.Value
			} else {
				r.Value = it.Value + "/" + res.Value
			}
			return r
		}
	}
	return res
}

// absorbRoadPurpose поглощает "общего пользования", "федерального значения" после дороги.
func (c *Context) absorbRoadPurpose(res *Fragment) *Fragment {
	for j, n := res.End+1, 0; n < 3; j, n = j+1, n+1 {
		w := c.tok(j)
		if !w.IsLetters() || w.IsNewlineBefore() {
			break
		}
		if hasAnyPrefix(w.Term, "ПОЛЬЗОВАНИ", "ЗНАЧЕНИ", "КОРИСТУВАННЯ", "ЗНАЧЕННЯ") {
			return res.withSpan(res.Begin, j)
		}
	}
	return res
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isWordOf - термин или лемма токена совпадает с одним из words.
func isWordOf(t *token.Token, words ...string) bool {
	if !t.IsLetters() {
		return false
	}
	for _, w := range words {
		if t.Term == w || t.HasLemma(w) {
			return true
		}
	}
	return false
}

// --- ОСНОВНОЙ РАЗБОР ---

func (c *Context) classifyFragment(i int, prev *Fragment, inSearch, ignoreOnto bool) *Fragment {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	if prev.isRoad() || prev == nil && c.tok(i+1).IsHyphen() && c.addressMode() {
		if special := c.classifySpecial(i, prev); len(special) > 0 && special[0].Kind == FragName {
			return special[0]
		}
	}
	if f := c.roadAbbreviation(i, prev); f != nil {
		return f
	}
	if t.IsValueOf("Ж", "ЖЕЛ") && c.tok(i+1).IsCharOf("/\\") && c.tok(i+2).IsLetters() && hasAnyPrefix(c.tok(i+2).Term, "ДОРОЖН") {
		return &Fragment{Kind: FragName, Begin: i, End: i + 2, Value: "ЖЕЛЕЗНО" + c.tok(i+2).Term, IsRailway: true}
	}
	if f := c.federalRoad(i); f != nil {
		return f
	}
	if t.IsHyphen() && prev != nil && prev.Kind == FragName && c.tok(i+1).IsRoman() {
		r := c.tok(i + 1)
		return &Fragment{Kind: FragNumber, Begin: i, End: i + 1, Value: strconv.Itoa(r.Number.Int),
			Spelling: token.Roman, IsNumeric: true, NumberHasPrefix: true}
	}
	if t.IsReferent(token.Org) {
		return &Fragment{Kind: FragFix, Begin: i, End: i, Org: t.Entity, Morph: t.Morph}
	}
	if t.IsReferent(token.Geo) && t.Entity.IsCity && c.addressMode() {
		for _, typ := range t.Entity.Types {
			switch typ {
			case "поселок", "станция", "слобода", "хутор":
				return &Fragment{Kind: FragFix, Begin: i, End: i, City: t.Entity, Morph: t.Morph}
			}
		}
	}
	if t.IsValueOf("ТЕРРИТОРИЯ", "ТЕР", "ТЕРР", "ТЕРИТОРІЯ") {
		return nil
	}
	if v, end := c.prefixedNumber(i); end >= 0 {
		return &Fragment{Kind: FragNumber, Begin: i, End: end, Value: v, IsNumeric: true, NumberHasPrefix: true}
	}

	j := i
	hasNamed := false
	switch {
	case t.IsValueOf("ИМЕНИ", "ІМЕНІ"):
		j = i + 1
	case t.IsValueOf("ИМ", "ІМ"):
		j = i + 1
		if c.tok(j).IsChar('.') {
			j++
		}
	case t.IsValueOf("ПАМЯТИ", "ПАМЯТІ"):
		if !t.IsNewlineAfter() && !c.tok(i+1).IsComma() {
			j = i + 1
		}
	}
	if j != i {
		if c.tok(j) == nil || c.tok(j-1).NewlinesAfter > 1 {
			return nil
		}
		hasNamed = true
	}
	if c.tok(j).IsValueOf("ДВАЖДЫ", "ТРИЖДЫ", "ЧЕТЫРЕЖДЫ", "ДВІЧІ", "ТРИЧІ") && c.tok(j+1) != nil {
		j++
	}
	res := c.classifyAt(j, prev, inSearch, ignoreOnto, hasNamed)
	if res != nil && j != i && res.Begin == j {
		res = res.withSpan(i, res.End)
	}
	return res
}

func (c *Context) classifyAt(i int, prev *Fragment, inSearch, ignoreOnto, hasNamed bool) *Fragment {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	if isWordOf(t, "ГЕРОЙ", "ГЕРОЯ", "ГЕРОЕВ") {
		if end := c.statePhraseEnd(i + 1); end >= 0 {
			if n := c.fragmentAt(end+1, nil, false); n != nil && n.Kind == FragName {
				r := n.withSpan(i, n.End)
				r.Misc = c.textValue(i, end)
				return r
			}
		}
	}
	if isWordOf(t, "НЕЗАВИСИМОСТЬ", "НЕЗАЛЕЖНІСТЬ") {
		if end := c.statePhraseEnd(i + 1); end >= 0 {
			return &Fragment{Kind: FragName, Begin: i, End: end, Value: t.Term + " " + c.textValue(i+1, end)}
		}
	}
	if t.Kind == token.Referent {
		if special := c.classifySpecial(i, prev); len(special) > 0 {
			if len(special) == 1 || special[0].Kind == FragName {
				return special[0]
			}
			if len(special) == 2 && special[0].Kind == FragNumber && (special[1].Kind == FragName || special[1].Kind == FragStdName) {
				r := special[0].clone()
				r.Next = special[1]
				return r
			}
		}
	}
	if v, end := c.anniversary(i); end >= 0 {
		return &Fragment{Kind: FragAge, Begin: i, End: end, Value: v, IsNumeric: true}
	}
	if t.IsNumber() {
		return c.numberFragment(i, prev)
	}
	if n, ok := c.ordinalWord(t); ok && (prev.isNoun() || c.isStreetNounAt(i+1)) {
		return &Fragment{Kind: FragNumber, Begin: i, End: i, Value: strconv.Itoa(n), IsNumeric: true, Morph: t.Morph}
	}
	if t.Kind == token.Referent && prev.isNoun() && !strings.ContainsAny(t.Source, " .") && t.Chars.IsCapitalUpper &&
		!pluralOnly(prev.Morph) {
		return &Fragment{Kind: FragName, Begin: i, End: i, Value: strings.ToUpper(t.Source), Morph: t.Morph}
	}
	if t.Kind != token.Word {
		return nil
	}
	if t.IsValueOf("ЧАСТЬ", "УГОЛ", "ЧАСТИНА", "РІГ") {
		return nil
	}
	if f := c.adjectiveName(i, prev); f != nil {
		return f
	}
	if f := c.ringName(i); f != nil {
		return f
	}
	if t.IsLetters() && t.Length() == 1 && t.Chars.IsAllLower && t.IsValueOf("М", "M") && c.tok(i+1).IsChar('.') &&
		!prev.isNoun() && !inSearch {
		if m := c.matchStreet(i); m != nil && m.Termin.Canonic == "МИКРОРАЙОН" {
			return &Fragment{Kind: FragNoun, Begin: i, End: m.End, Termin: m.Termin, IsAbridge: true}
		}
		if c.initialEnd(i) < 0 && !c.addressMode() {
			return &Fragment{Kind: FragNoun, Begin: i, End: i + 1, Termin: c.Onto.metro, IsAbridge: true}
		}
	}
	if prev.isNoun("ПРОЕЗД") && t.IsValue("ПР") {
		end := i
		if c.tok(i + 1).IsChar('.') {
			end++
		}
		return &Fragment{Kind: FragName, Begin: i, End: end, Value: "ПРОЕКТИРУЕМЫЙ"}
	}

	var m *ontology.Match
	if !ignoreOnto {
		m = c.filterStreetMatch(i, prev, c.matchStreet(i))
	}
	if m != nil {
		if f, done := c.ontologyFragment(i, m, prev, inSearch); done {
			return f
		}
	}
	return c.fallbackFragment(i, m, prev, inSearch, hasNamed)
}

// statePhraseEnd - "Советского Союза", "России", "Украины" и географический объект-государство.
func (c *Context) statePhraseEnd(i int) int {
	t := c.tok(i)
	switch {
	case t.IsReferent(token.Geo) && (t.Entity.IsState || t.Entity.IsRegion):
		return i
	case isWordOf(t, "СОВЕТСКИЙ", "СОВЕТСКОГО") && isWordOf(c.tok(i+1), "СОЮЗ", "СОЮЗА"):
		return i + 1
	case isWordOf(t, "СОЦИАЛИСТИЧЕСКИЙ", "СОЦИАЛИСТИЧЕСКОГО") && isWordOf(c.tok(i+1), "ТРУД", "ТРУДА"):
		return i + 1
	case isWordOf(t, "РОССИЙСКИЙ", "РОССИЙСКОЙ") && isWordOf(c.tok(i+1), "ФЕДЕРАЦИЯ", "ФЕДЕРАЦИИ"):
		return i + 1
	case t.IsValueOf("РОССИИ", "УКРАИНЫ", "УКРАЇНИ", "БЕЛАРУСИ", "КАЗАХСТАНА", "СССР", "РФ"):
		return i
	}
	return -1
}

// roadAbbreviation - "а/д", "а-м", "авт." перед названием дороги.
func (c *Context) roadAbbreviation(i int, prev *Fragment) *Fragment {
	t := c.tok(i)
	if !t.IsValueOf("А", "АД", "АВТ", "АВТОДОР") {
		return nil
	}
	end := -1
	if t.IsValue("А") {
		j := i + 1
		if c.tok(j).IsCharOf("/\\-") {
			j++
		}
		if c.tok(j).IsValueOf("Д", "М") && j > i+1 {
			end = j
		}
	} else {
		end = i
		if c.tok(i + 1).IsChar('.') {
			end++
		}
	}
	if end < 0 {
		return nil
	}
	res := &Fragment{Kind: FragNoun, Begin: i, End: end, Termin: c.Onto.road, Morph: t.Morph}
	switch {
	case prev != nil && (prev.IsRoadName || prev.isRoad()):
		return res
	case c.tok(i - 1).IsValueOf("КМ", "КИЛОМЕТР"):
		return res
	}
	if next := c.classifyFragment(end+1, res, false, false); next != nil && next.IsRoadName {
		return res
	}
	return nil
}

// federalRoad - "федеральная автодорога", "гос. трасса".
func (c *Context) federalRoad(i int) *Fragment {
	t := c.tok(i)
	if !t.IsLetters() {
		return nil
	}
	if !hasAnyPrefix(t.Term, "ФЕДЕРАЛЬН", "ГОСУДАРСТВЕНН", "АВТОМОБИЛЬН") &&
		!t.IsValueOf("ФЕД", "ФЕДЕРАЛ", "ГОС", "АВТО", "АВТОМОБ") {
		return nil
	}
	j := i + 1
	if c.tok(j).IsChar('.') {
		j++
	}
	m := c.matchStreet(j)
	if m == nil || m.Termin.Canonic != "АВТОДОРОГА" {
		return nil
	}
	return &Fragment{Kind: FragNoun, Begin: i, End: m.End, Termin: m.Termin, Morph: t.Morph}
}

// prefixedNumber - номер с префиксом ("№ 5", "N 12") или кадастровый номер.
func (c *Context) prefixedNumber(i int) (string, int) {
	if v, end := c.cadasterNumber(i); end >= 0 {
		return v, end
	}
	t := c.tok(i)
	if !t.IsValueOf("№", "N", "НОМЕР", "НОМ") && !t.IsChar('№') {
		return "", -1
	}
	j := i + 1
	if c.tok(j).IsChar('.') {
		j++
	}
	n := c.tok(j)
	if !n.IsNumber() || n.IsNewlineBefore() {
		return "", -1
	}
	return n.Number.Value, j
}

// ringName - "Вал", "Поле", "Кольцо" с названием: "Земляной Вал" читается как имя.
func (c *Context) ringName(i int) *Fragment {
	t, n := c.tok(i), c.tok(i+1)
	if !isWordOf(t, "ВАЛ", "ПОЛЕ", "КОЛЬЦО", "КІЛЬЦЕ") || !n.IsLetters() || !(n.Chars.IsCapitalUpper || c.addressMode()) {
		return nil
	}
	s := c.fragmentAt(i+1, nil, false)
	if s == nil || s.Kind != FragName {
		return nil
	}
	norm := c.nounLemma(t)
	r := s.withSpan(i, s.End)
	r.Value = c.valueOf(s) + " " + norm
	if s.AltValue != "" {
		r.AltValue = s.AltValue + " " + norm
	}
	return r
}

// nounLemma - лемма существительного или термин.
func (c *Context) nounLemma(t *token.Token) string {
	for _, f := range t.Forms {
		if f.Morph.IsNoun() && f.Lemma != "" {
			return f.Lemma
		}
	}
	return t.Term
}

// --- ПРИЛАГАТЕЛЬНЫЕ ---

var nameNouns = []string{"ВАЛ", "ПОЛЕ", "МАГИСТРАЛЬ", "СПУСК", "ВЗВОЗ", "РЯД", "СЛОБОДА", "РОЩА", "ПРУД", "СЪЕЗД",
	"КОЛЬЦО", "МАГІСТРАЛЬ", "УЗВІЗ", "ЛІНІЯ", "УЗВІЗ", "ГАЙ", "СТАВОК", "ЗЇЗД", "КІЛЬЦЕ"}

// adjectiveName - название из прилагательного с существительным: "Земляной Вал",
// "Нижняя Красносельская", "Северного бульвара".
func (c *Context) adjectiveName(i int, prev *Fragment) *Fragment {
	t := c.tok(i)
	if !t.IsLetters() || !t.Morph.IsAdjective() {
		return nil
	}
	if !t.Chars.IsCapitalUpper && !c.addressMode() && !(prev != nil && prev.Kind == FragNumber && isWordOf(t, "ТРАНСПОРТНЫЙ")) {
		return nil
	}
	p := c.nounPhrase(i)
	if p != nil && c.ClassifyBare(p.end, nil) != nil {
		p = nil
	}
	tte := i + 1
	if p != nil && p.adjectives == 1 {
		tte = p.end
	}
	if isWordOf(c.tok(tte), nameNouns...) {
		f := &Fragment{Kind: FragName, Begin: i, End: tte, IsInDictionary: true, Morph: t.Morph}
		switch {
		case p == nil || p.adjectives == 0 || p.end != tte:
			f.Value = c.textValue(i, tte)
		case p.isGenitive():
			f.Value = c.textValue(i, tte)
			f.AltValue = c.normalText(p)
		default:
			f.Value = c.normalText(p)
		}
		return f
	}
	if p != nil && p.end > p.begin && p.adjectives <= 1 {
		if m := c.matchStreet(i); m != nil && fragKindOf(m.Termin) == FragNoun {
			p = nil
		}
	}
	if p != nil && c.tok(p.end).IsValue("ВЕРХ") {
		p = nil
	}
	if p != nil {
		if ait := c.ClassifyBare(i, nil); ait != nil && ait.DetailType != DetailUndefined {
			p = nil
		}
	}
	if p == nil || p.end == p.begin || p.adjectives > 1 {
		return nil
	}
	j := p.end + 1
	ok := c.addressMode()
	if c.tok(p.end).IsNewlineAfter() {
		ok = true
	} else if c.tok(j).IsComma() {
		ok = true
		j++
	}
	if n := c.fragmentAt(j, nil, false); n.isNoun() {
		ok = true
	} else if c.tok(j).IsHyphen() && c.tok(j+1).IsNumber() {
		ok = true
	} else if ait := c.ClassifyBare(j, nil); ait != nil {
		if ait.Kind == ItemHouse || ait.Kind == ItemNumber && c.ClassifyBare(p.end, nil) == nil {
			ok = true
		}
	}
	if ok {
		if s := c.fragmentAt(p.end, nil, false); s.isNoun() {
			ok = s.NounDoubtCoef >= 2 && s.canonic() != "КВАРТАЛ"
		} else if m := c.matchStreet(p.end); m != nil {
			switch fragKindOf(m.Termin) {
			case FragNoun, FragStdPartOfName, FragStdAdjective:
				ok = false
			}
		}
	}
	if !ok {
		return nil
	}
	return &Fragment{Kind: FragName, Begin: i, End: p.end, Value: c.textValue(i, p.end), AltValue: c.normalText(p), Morph: t.Morph}
}

func pluralOnly(m analyzer.Morph) bool { return m.Has(analyzer.Plural) && !m.Has(analyzer.Singular) }

// singleGender - род, если он определен однозначно.
func singleGender(m analyzer.Morph) analyzer.Morph {
	g := m.Gender()
	if g == 0 || g&(g-1) != 0 {
		return 0
	}
	return g
}

// --- ЧИСЛА ---

func (c *Context) numberFragment(i int, prev *Fragment) *Fragment {
	t := c.tok(i)
	n := t.Number
	if n.Int == 0 && !prev.isNoun() {
		if next := c.fragmentAt(i+1, nil, false); !next.isNoun() {
			return nil
		}
	}
	res := &Fragment{Kind: FragNumber, Begin: i, End: i, Value: n.Value, Spelling: n.Spelling, IsNumeric: true, Morph: t.Morph}
	if prev.isNoun("РЯД", "ЛИНИЯ") {
		if ait := c.ClassifyBare(i, nil); ait.is(ItemNumber) {
			res.Value = ait.Value
			res.End = ait.End
			return res
		}
	}
	if ms := c.numberWithUnit(i); ms != nil {
		if ms.unit != unitKm {
			if next := c.fragmentAt(i+1, nil, false); !next.isNoun() || next.End <= ms.end {
				return nil
			}
		} else {
			res.IsNumberKm = true
			res.End = ms.end
			res.Value = ms.value
			k := ms.end + 1
			br := false
			for {
				w := c.tok(k)
				if w.IsHyphen() || w.IsChar('+') {
					k++
				} else if w.IsChar('(') {
					br = true
					k++
				} else {
					break
				}
			}
			if m2 := c.numberWithUnit(k); m2 != nil && m2.unit == unitMeter {
				res.End = m2.end
				if br && c.tok(res.End+1).IsChar(')') {
					res.End++
				}
				res.Value += metersFraction(m2.real)
			}
			if ait := c.ClassifyBare(i, nil); ait.is(ItemDetail) {
				return nil
			}
		}
	}
	if !res.IsNumberKm && c.tok(i+1).IsHyphen() && c.tok(i+2).IsNumber() {
		if m2 := c.numberWithUnit(i + 2); m2 != nil {
			if m2.unit != unitKm {
				return nil
			}
			res.IsNumberKm = true
			res.End = m2.end
			res.Value += "-" + m2.value
		}
	}
	if aaa := c.ClassifyBare(i, nil); aaa.is(ItemNumber) && !res.IsNumberKm && c.tok(aaa.End).EndChar > t.EndChar+1 {
		next := c.fragmentAt(res.End+1, nil, false)
		switch {
		case next != nil && (next.Kind == FragName || next.Kind == FragStdName):
		case prev.isNoun() && (c.tok(i+1).IsHyphen() || prev.isNoun("КВАРТАЛ", "ЛИНИЯ", "АЛЛЕЯ", "АВТОДОРОГА")):
			if c.matchStreet(aaa.End) == nil {
				res.End = aaa.End
				res.Value = aaa.Value
				res.Spelling = token.Digit
			}
		default:
			return nil
		}
	}
	if !res.IsNumberKm && prev != nil && isWordOf(c.tok(prev.Begin), "КИЛОМЕТР", "КМ") {
		res.IsNumberKm = true
	} else if prev.isNoun() && !c.tok(res.End).IsWhitespaceAfter() {
	glue:
		for k := res.End + 1; ; k++ {
			w := c.tok(k)
			if w == nil || w.IsWhitespaceBefore() {
				break
			}
			switch {
			case w.IsNumber():
				res.Value += w.Number.Value
			case w.IsHyphen():
				res.Value += "-"
			case w.IsLetters() && w.Length() == 1:
				res.Value += cyrLetter(w.Term)
			default:
				break glue
			}
			res.End = k
		}
	}
	res.Value = strings.TrimSuffix(res.Value, "-")
	if c.tok(res.End + 1).IsValueOf("СЕКТОР", "ЗОНА") {
		w := c.tok(res.End + 2)
		switch {
		case w.IsLetters() && w.Length() == 1:
			res.Value += cyrLetter(w.Term)
			res.End += 2
		case w.IsNumber():
			res.Value += "-" + w.Number.Value
			res.End += 2
		}
	}
	return res
}

// cyrLetter - буква в кириллице, если у нее есть кириллический двойник.
func cyrLetter(s string) string {
	if v := correctWord(s); v != "" {
		return v
	}
	return s
}

// --- СЛОВАРЬ ---

// filterStreetMatch отсеивает совпадения словаря, которые в этой позиции не являются
// частью названия улицы.
func (c *Context) filterStreetMatch(i int, prev *Fragment, m *ontology.Match) *ontology.Match {
	if m == nil {
		return nil
	}
	t := c.tok(i)
	if t.IsValueOf("ДОРОГАЯ", "ДОРОГОЙ") {
		return nil
	}
	if t.IsValue("Б") && c.tok(i-1).IsNumber() && c.tok(i-1).Number.Value == "26" {
		return nil
	}
	if m.Termin.Canonic == "БЛОК" && m.End == i {
		switch {
		case t.Term == "БЛОКА":
			return nil
		case t.Chars.IsAllLower, prev.isNoun("РЯД"):
		default:
			if ait := c.ClassifyBare(i+1, nil); !ait.is(ItemNumber) {
				return nil
			}
		}
	}
	if m.Begin == m.End && fragKindOf(m.Termin) == FragStdAdjective && strings.HasSuffix(t.Term, "О") {
		return nil
	}
	return m
}

// ontologyFragment разбирает совпадение словаря. done=false - словарь не дал ответа,
// разбор продолжается общими правилами.
func (c *Context) ontologyFragment(i int, m *ontology.Match, prev *Fragment, inSearch bool) (*Fragment, bool) {
	t := c.tok(i)
	switch fragKindOf(m.Termin) {
	case FragStdAdjective:
		return c.stdAdjectiveFragment(i, m, prev, inSearch)
	case FragNoun:
		return c.nounFragment(i, m, prev)
	case FragStdName:
		return c.stdNameFragment(i, m, prev), true
	case FragStdPartOfName:
		return c.partOfNameFragment(i, m), true
	case FragFix:
		return &Fragment{Kind: FragFix, Begin: i, End: m.End, Termin: m.Termin, IsInDictionary: true, Morph: t.Morph}, true
	}
	return nil, false
}

func (c *Context) stdAdjectiveFragment(i int, m *ontology.Match, prev *Fragment, inSearch bool) (*Fragment, bool) {
	t := c.tok(i)
	if e := c.initialEnd(i); e >= 0 {
		if next := c.fragmentAt(e, prev, inSearch); next != nil && next.Kind != FragNoun {
			r := next.withSpan(i, next.End)
			if r.Value == "" {
				r.Value = c.textValue(next.Begin, next.End)
			}
			return r, true
		}
	}
	if t.Chars.IsAllLower && prev == nil && !inSearch && !c.addressMode() {
		return nil, true
	}
	abr := true
	res := func() *Fragment {
		f := &Fragment{Kind: FragStdAdjective, Begin: i, End: m.End, Termin: m.Termin, IsAbridge: abr, Morph: t.Morph}
		if all := c.Onto.Streets.MatchAll(c.Doc, i); len(all) > 1 {
			f.AltTermin = all[1].Termin
		}
		return f
	}
	if isWordOf(t, m.Termin.Canonic) {
		abr = false
		return res(), true
	}
	if t.Length() != 1 {
		return res(), true
	}
	if !t.IsWhitespaceBefore() && !c.tok(i-1).IsCharOf(":,.") && c.tok(i-1) != nil {
		return nil, false
	}
	if !c.tok(m.End).IsChar('.') {
		oo2 := false
		if !t.Chars.IsAllUpper && !inSearch {
			if t.IsValueOf("М", "Б") && c.tok(i-1).IsLetters() && c.tok(i-1).Chars.IsCapitalUpper && c.checkHouseAfter(i+1, false, false) {
				oo2 = true
			} else {
				return nil, false
			}
		}
		switch {
		case c.tok(m.End).IsNewlineAfter() && prev != nil && prev.Kind != FragNoun:
			oo2 = true
		case inSearch:
			oo2 = true
		default:
			if n := c.fragmentAt(m.End+1, nil, false); n != nil && (n.Kind == FragName || n.Kind == FragNoun) {
				oo2 = true
			} else if prev != nil && c.checkHouseAfter(m.End+1, false, true) {
				oo2 = true
			}
		}
		if oo2 {
			return res(), true
		}
		return nil, false
	}
	j := m.End + 1
	if c.tok(j).IsHyphen() {
		j++
	}
	if w := c.tok(j); w.IsLetters() {
		if w.Length() == 1 && w.Chars.IsAllUpper {
			return nil, false
		}
		if w.Chars.IsCapitalUpper && (strings.HasSuffix(w.Term, "ОГО") || c.isGenitiveSurname(w)) {
			return nil, false
		}
	}
	return res(), true
}

// isGenitiveSurname - словарная фамилия в родительном падеже.
func (c *Context) isGenitiveSurname(t *token.Token) bool {
	for _, f := range t.Forms {
		if f.InDictionary && f.Morph.IsProperName() && f.Morph.IsGenitive() {
			return true
		}
	}
	return false
}

func (c *Context) nounFragment(i int, m *ontology.Match, prev *Fragment) (*Fragment, bool) {
	t := c.tok(i)
	abr := true
	hyphenated := m.End > m.Begin && (c.tok(m.Begin+1).IsHyphen() || c.tok(m.Begin+1).IsCharOf("/\\"))
	switch {
	case isWordOf(t, m.Termin.Canonic) || c.tok(m.End).IsValue(m.Termin.Canonic) || t.IsValue("УЛ") ||
		m.Termin.Canonic == "НАБЕРЕЖНАЯ" || c.textValue(m.Begin, m.End) == m.Termin.Canonic:
		abr = false
	case hyphenated:
	case !t.Chars.IsAllLower && t.Length() == 1:
		return nil, false
	case t.Length() == 1:
		if !t.IsWhitespaceBefore() && !c.tok(i-1).IsComma() && c.tok(i-1) != nil {
			return nil, true
		}
		switch {
		case c.tok(m.End).IsChar('.'):
		case c.lengthChar(&Fragment{Begin: m.Begin, End: m.End}) > 5:
		case m.Begin == m.End && t.IsValue("Ш") && t.Chars.IsAllLower:
			if prev == nil || (prev.Kind != FragName && prev.Kind != FragStdName && prev.Kind != FragStdPartOfName) {
				sii := c.fragmentAt(i+1, nil, false)
				if sii == nil || (sii.Kind != FragName && sii.Kind != FragStdName && sii.Kind != FragStdPartOfName && sii.Kind != FragAge) {
					return nil, true
				}
			}
		default:
			return nil, true
		}
	case t.Term == "КВ" && !c.tok(m.End).IsValue("Л"):
		if prev != nil && prev.Kind == FragNumber {
			return nil, true
		}
		if ait := c.ClassifyBare(m.End+1, nil); ait.is(ItemNumber) {
			if !c.checkHouseAfter(ait.End+1, false, false) && !c.checkStreetAfter(ait.End+1, false) {
				return nil, true
			}
		} else if c.tok(m.End + 1).IsValue("НЕТ") {
			return nil, true
		}
	}
	if m.Begin == m.End && !t.Chars.IsAllLower && t.Chars.IsCyrillic && t.DictionaryClass().IsProperName() &&
		pluralOnly(t.Morph) && !c.addressMode() {
		return nil, true
	}
	if t.IsValueOf("ДОРОГОЙ", "РЯДОМ") {
		return nil, true
	}
	res := &Fragment{Kind: FragNoun, Begin: m.Begin, End: m.End, Termin: m.Termin, IsAbridge: abr, Morph: t.Morph,
		NounDoubtCoef: doubtCoefOf(m.Termin)}
	if t.IsValue("ПР") {
		res.AltTermin = c.Onto.prospect
	}
	if mc := t.DictionaryClass(); !abr && m.Begin == m.End && t.Chars.IsCapitalUpper && (mc.IsNoun() || mc.IsAdjective()) {
		if t.Morph.IsNominative() && !t.Morph.IsGenitive() {
			res.NounCanBeName = true
		} else if c.tok(i+1).IsHyphen() && c.tok(i+2).IsNumber() {
			res.NounCanBeName = true
		}
	}
	if res.isRoad() {
		if next := c.classifyFragment(res.End+1, nil, false, false); next.isRoad() {
			res.End = next.End
			res.NounDoubtCoef = 0
			res.IsAbridge = false
		}
	}
	return res, true
}

func (c *Context) stdNameFragment(i int, m *ontology.Match, prev *Fragment) *Fragment {
	t := c.tok(i)
	postOff := m.Termin.Canonic == "ПРОЕКТИРУЕМЫЙ"
	if t.Chars.IsAllLower && !postOff && c.tok(m.End).Chars.IsAllLower {
		switch {
		case c.checkKeyword(m.End + 1):
		case prev != nil && (prev.Kind == FragNumber || prev.Kind == FragNoun || prev.Kind == FragAge):
		case c.addressMode():
		default:
			return nil
		}
	}
	res := &Fragment{Kind: FragStdName, Begin: i, End: m.End, Value: m.Termin.Canonic, Termin: m.Termin, Morph: t.Morph}
	if m.End == m.Begin+1 && !postOff {
		b, e := c.tok(m.Begin), c.tok(m.End)
		bc, ec := b.DictionaryClass(), e.DictionaryClass()
		switch {
		case ec.IsNoun() && bc.IsAdjective():
		case (bc.IsProperName() || b.Length() < 4) && e.Length() > 2 && !ec.IsProperName():
			res.AltValue2 = e.Term
		case ec.IsProperName() && b.Morph.IsProperName():
			res.AltValue2 = b.Term
		}
	}
	return res
}

func (c *Context) partOfNameFragment(i int, m *ontology.Match) *Fragment {
	t := c.tok(i)
	end := m.End
	part := m.Termin.Canonic
	if c.tok(end+1).IsNumber() && isWordOf(c.tok(end+2), "РАНГ", "РАНГА") {
		end += 2
	}
	if m2 := c.matchStreet(end + 1); m2 != nil && fragKindOf(m2.Termin) == FragStdPartOfName {
		end = m2.End
		part += " " + m2.Termin.Canonic
	}
	sit := c.fragmentAt(end+1, nil, false)
	if sit != nil && sit.Kind == FragStdAdjective && c.tok(end+1).Length() == 1 {
		sit = c.fragmentAt(sit.End+1, nil, false)
	}
	genPlural := false
	for _, f := range t.Forms {
		if f.Morph.IsPlural() && f.Morph.IsGenitive() {
			genPlural = true
		}
	}
	if sit == nil || c.tok(end).WhitespacesAfter > 3 {
		if genPlural {
			return &Fragment{Kind: FragName, Begin: i, End: end, Value: c.textValue(i, end), Morph: t.Morph}
		}
		return &Fragment{Kind: FragStdPartOfName, Begin: i, End: end, Termin: m.Termin, Misc: part, Morph: t.Morph}
	}
	switch sit.Kind {
	case FragName, FragNoun, FragStdName:
	default:
		return nil
	}
	if sit.Kind == FragNoun {
		res := &Fragment{Kind: FragName, AltKind: FragStdPartOfName, Begin: i, End: end, Termin: m.Termin, Morph: t.Morph}
		if pluralOnly(t.Morph) {
			res.Value = c.textValue(i, end)
		} else {
			res.Misc = part
		}
		return res
	}
	r := sit.withSpan(i, sit.End)
	switch {
	case sit.Value != "":
		r.Misc = part
	case part == "ГЕРОЯ":
		if c.tok(sit.Begin).DictionaryClass().IsProperName() {
			r.Value = c.textValue(sit.Begin, sit.End)
		} else {
			r.Value = "ГЕРОЕВ " + c.textValue(sit.Begin, sit.End)
		}
	default:
		r.Misc = part
		r.Value = c.textValue(sit.Begin, sit.End)
	}
	return r
}

// checkKeyword - с позиции i начинается тип улицы.
func (c *Context) checkKeyword(i int) bool { return c.isStreetNounAt(i) }

// initialEnd - позиция после инициалов ("А.", "А.С.") перед словом с заглавной буквы
// или -1.
func (c *Context) initialEnd(i int) int {
	j := i
	for n := 0; n < 2; n++ {
		t := c.tok(j)
		if !t.IsLetters() || t.Length() != 1 || !t.Chars.IsAllUpper || !c.tok(j+1).IsChar('.') {
			break
		}
		j += 2
	}
	if j == i {
		return -1
	}
	if w := c.tok(j); w.IsLetters() && w.Chars.IsCapitalUpper && w.Length() > 1 && w.WhitespacesBefore <= 2 {
		return j
	}
	return -1
}

// valueOf - значение фрагмента или его текст.
func (c *Context) valueOf(f *Fragment) string {
	if f.Value != "" {
		return f.Value
	}
	return c.textValue(f.Begin, f.End)
}

// addNames добавляет к улице все варианты названия фрагмента.
func (c *Context) addNames(st *Street, f *Fragment) {
	st.AddName(c.valueOf(f))
	st.AddName(f.AltValue)
	st.AddName(f.AltValue2)
}
