package address

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/token"
)

// --- ЦЕПОЧКА ФРАГМЕНТОВ ---

// ClassifyFragments строит цепочку фрагментов названия улицы с позиции i длиной не больше max.
// Nil - с позиции i не начинается ни один фрагмент или после чистки цепочка пуста.
func (c *Context) ClassifyFragments(i, max int) []*Fragment {
	if c.tok(i) == nil || max <= 0 {
		return nil
	}
	if !enter(&c.runLevel, maxRunLevel) {
		return nil
	}
	defer leave(&c.runLevel)
	res := c.fragmentRun(i, max)
	if len(res) > 0 {
		res = c.mergeRun(res)
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func (c *Context) fragmentRun(i, max int) []*Fragment {
	var res []*Fragment
	if first := c.fragmentAt(i, nil, false); first != nil {
		res = append(res, first)
	} else {
		sp := c.classifySpecial(i, nil)
		if len(sp) == 0 {
			return nil
		}
		last := sp[len(sp)-1]
		if !c.fragmentAt(last.End+1, last, false).isNoun() && !c.checkHouseAfter(last.End+1, false, true) {
			return nil
		}
		res = append(res, sp...)
	}
	j := res[len(res)-1].End + 1
	for len(res) < max {
		t := c.tok(j)
		if t == nil {
			break
		}
		last := res[len(res)-1]
		if t.IsNewlineBefore() && !c.continuesAfterNewline(res, j) {
			break
		}

		if t.IsHyphen() {
			if add, ok := c.hyphenContinuation(res, j); ok {
				if len(add) == 0 {
					break
				}
				res = append(res, add...)
				j = add[len(add)-1].End + 1
				continue
			}
		}
		if t.IsChar('.') && last.Kind == FragNoun && t.WhitespacesBefore <= 1 {
			sit := c.dotContinuation(res, j)
			if sit == nil {
				break
			}
			res = append(res, sit)
			j = sit.End + 1
			continue
		}

		sit := c.fragmentAt(j, last, false)
		if sit == nil {
			add, next, more := c.runGap(res, j)
			res = append(res, add...)
			if !more || next <= j {
				break
			}
			j = next
			continue
		}
		if last.isRoad() && sit.IsRoadName {
			// номер трассы подтверждает, что "дорога" - тип улицы
			r := last.clone()
			r.NounDoubtCoef = 0
			r.IsAbridge = false
			res[len(res)-1] = r
		}
		if sit.Kind == FragName && last.isRoad() {
			if k := sit.End + 1; c.tok(k).IsValueOf("Ш", "ШОС", "ШОССЕ") {
				if c.tok(k + 1).IsChar('.') {
					k++
				}
				sit = sit.withSpan(sit.Begin, k)
			}
		}
		res = append(res, sit)
		if n := trailingNames(res); n > maxNameRun {
			res = res[:len(res)-n]
			break
		}
		if sit.End < j {
			break
		}
		j = sit.End + 1
	}
	return res
}

// trailingNames - число имен подряд в конце цепочки.
func trailingNames(res []*Fragment) int {
	n := 0
	for k := len(res) - 1; k >= 0 && res[k].Kind == FragName; k-- {
		n++
	}
	return n
}

// continuesAfterNewline - цепочка может продолжиться токеном j, стоящим с новой строки.
func (c *Context) continuesAfterNewline(res []*Fragment, j int) bool {
	t := c.tok(j)
	if t.NewlinesBefore > 1 {
		return false
	}
	last := res[len(res)-1]
	if last.Kind == FragNoun && t.Chars.IsCapitalUpper && t.WhitespacesBefore < 15 {
		return true
	}
	if len(res) == 1 && last.Kind == FragName {
		if n := c.fragmentAt(j, last, false); n.isNoun() && (c.isNewlineAfter(n) || c.tok(n.End+1) == nil) {
			return true
		}
	}
	return false
}

// hyphenContinuation - продолжение через дефис: "Линия-IV", "Мира-2", "2-я Линия".
// ok=false - дефис не обработан; пустой add при ok - цепочка обрывается.
func (c *Context) hyphenContinuation(res []*Fragment, j int) ([]*Fragment, bool) {
	t := c.tok(j)
	last := res[len(res)-1]
	switch last.Kind {
	case FragName, FragStdName, FragStdAdjective:
		sit := c.fragmentAt(j+1, last, false)
		if sit == nil {
			if r := c.tok(j + 1); r.IsRoman() {
				return []*Fragment{{Kind: FragNumber, Begin: j, End: j + 1, Value: strconv.Itoa(r.Number.Int),
					Spelling: token.Roman, IsNumeric: true, NumberHasPrefix: true}}, true
			}
			return nil, true
		}
		if sit.Kind == FragNumber {
			ok := c.checkHouseAfter(sit.End+1, false, true) || c.tok(sit.End+1).IsHyphen() ||
				len(res) == 2 && res[0].isNoun("МИКРОРАЙОН")
			if !ok {
				return nil, true
			}
			r := sit.withSpan(j, sit.End)
			r.NumberHasPrefix = true
			return []*Fragment{r}, true
		}
		if sit.Kind != FragName && !(sit.Kind == FragNoun && sit.NounCanBeName) {
			return nil, true
		}
		if t.IsWhitespaceBefore() && t.IsWhitespaceAfter() {
			return nil, true
		}
		if d := c.ClassifyBare(res[0].Begin-1, nil); d.is(ItemDetail) && d.DetailType == DetailCross {
			return nil, true
		}
		return []*Fragment{sit}, true
	case FragNumber:
		sit := c.fragmentAt(j+1, last, false)
		if sit == nil {
			return nil, false
		}
		switch sit.Kind {
		case FragStdAdjective, FragStdName, FragName, FragNoun:
			r := last.clone()
			r.NumberHasPrefix = true
			res[len(res)-1] = r
			return []*Fragment{sit}, true
		}
	}
	return nil, false
}

// dotContinuation - продолжение после точки за типом улицы: "ул.Ленина", "пр.2-й Армии".
func (c *Context) dotContinuation(res []*Fragment, j int) *Fragment {
	last := res[len(res)-1]
	sit := c.fragmentAt(j+1, last, false)
	if sit == nil {
		return nil
	}
	switch sit.Kind {
	case FragNumber, FragStdAdjective:
		next := c.fragmentAt(sit.End+1, sit, false)
		if next != nil && (next.Kind == FragStdAdjective || next.Kind == FragStdName || next.Kind == FragName) {
			return sit
		}
		if c.addressMode() {
			if ait := c.ClassifyBare(j+1, nil); ait == nil || ait.Value == "" {
				return sit
			}
		}
		return nil
	case FragName, FragStdName, FragAge:
	default:
		return nil
	}
	// "Дошли до площади. Ленина там нет": точка после полного слова закрывает предложение.
	if prev := c.tok(j - 1); prev.DictionaryClass().IsNoun() && !last.IsAbridge {
		if !sit.IsInDictionary && !c.checkHouseAfter(sit.End+1, false, false) {
			return nil
		}
		if p := c.nounPhrase(j - 1); p != nil && p.end == j-1 && p.begin < last.Begin {
			return nil
		}
	}
	return sit
}

// runGap разбирает токен j, не ставший фрагментом. add - фрагменты для цепочки,
// next - позиция продолжения, more=false - цепочка после add заканчивается.
func (c *Context) runGap(res []*Fragment, j int) (add []*Fragment, next int, more bool) {
	t := c.tok(j)
	last := res[len(res)-1]
	if sp := c.classifySpecial(j, last); len(sp) > 0 {
		return sp, sp[len(sp)-1].End + 1, true
	}
	if t.IsValueOf("ГОДА", "МАЯ", "МАРТА", "СЪЕЗДА") && last.Kind == FragNumber && len(res) > 1 && res[len(res)-2].isNoun() {
		return []*Fragment{{Kind: FragStdName, Begin: j, End: j, Value: t.Term}}, j + 1, true
	}
	if last.isNoun("МИКРОРАЙОН") && t.IsLetters() && t.Length() == 1 {
		end := j
		if c.tok(j+1).IsChar('(') && c.tok(j+3).IsChar(')') && c.tok(j+2).IsLetters() {
			end = j + 3
		}
		if c.checkHouseAfter(end+1, false, false) || c.isNewlineAfter(&Fragment{End: end}) {
			f := &Fragment{Kind: FragName, Begin: j, End: end, Value: t.Term}
			if alt := correctWord(t.Term); alt != "" && alt != t.Term {
				f.AltValue = alt
			}
			return []*Fragment{f}, end + 1, false
		}
	}
	switch {
	case t.IsComma():
		if last.Kind.isNameLike() && len(res) == 1 {
			if n := c.fragmentAt(j+1, nil, false); n.isNoun() &&
				c.ClassifyBare(c.skipComma(n.End+1), nil).is(ItemHouse, ItemCorpus, ItemBuilding) {
				return []*Fragment{n}, n.End + 1, false
			}
		}
		if last.isNoun("КВАРТАЛ", "КАДАСТРОВЫЙ КВАРТАЛ") {
			if _, end := c.cadasterNumber(j + 1); end >= 0 {
				return nil, j + 1, true
			}
		}
		if len(res) == 1 && last.Kind == FragNoun && c.addressMode() {
			if n := c.fragmentAt(j+1, last, false); n != nil && n.Kind.isNameLike() {
				return []*Fragment{n}, n.End + 1, true
			}
		}
	case t.IsChar('('):
		if last.Kind != FragNoun || last.NounDoubtCoef != 0 && c.tok(j+1).IsAllLower() {
			break
		}
		cl := c.Doc.BracketEnd(j, 10)
		if cl < 0 {
			break
		}
		if in := c.fragmentAt(j+1, last, false); in != nil && in.End == cl-1 {
			r := in.withSpan(j, cl)
			r.IsInBrackets = true
			return []*Fragment{r}, cl + 1, true
		}
		if s := c.Doc.Span(j+1, cl-1); cl > j+1 && utf8.RuneCountInString(s) < 50 {
			return []*Fragment{{Kind: FragName, Begin: j, End: cl, Value: c.textValue(j+1, cl-1), IsInBrackets: true}},
				cl + 1, true
		}
	case t.IsHyphen() && c.tok(j+1).IsNumber() &&
		(last.isNoun("КВАРТАЛ", "МИКРОРАЙОН") || strings.HasSuffix(last.canonic(), "ГОРОДОК")):
		n := c.tok(j + 1)
		return []*Fragment{{Kind: FragNumber, Begin: j, End: j + 1, Value: n.Number.Value, Spelling: n.Number.Spelling,
			IsNumeric: true, NumberHasPrefix: true}}, j + 2, true
	}
	if len(res) == 1 && last.Kind == FragNoun && (t.IsChar(':') || t.IsHyphen()) {
		return nil, j + 1, true
	}
	return nil, j, false
}

// --- ЧИСТКА ЦЕПОЧКИ ---

// mergeRun применяет к готовой цепочке склейки и отсев, в фиксированном порядке.
func (c *Context) mergeRun(res []*Fragment) []*Fragment {
	res = c.mergePartsOfName(res)
	res = c.mergeNames(res)
	res = c.mergeAdjectiveNoun(res)
	if c.numberBeforeNounNoise(res) {
		return nil
	}
	res = c.dropTrailingNumber(res)
	res = expandNext(res)
	res = c.nounsAsNames(res)
	res = c.absorbTrailingInitial(res)
	if n := len(res); n > 1 && res[n-1].Kind == FragFix && res[n-1].Org != nil && !(n == 2 && res[0].isNoun()) {
		res = res[:n-1]
	}
	if len(res) > 0 && trailingNames(res) == len(res) && len(res) > maxNameRun {
		return nil
	}
	return res
}

// mergePartsOfName - "Маршала" + "Жукова" -> имя "ЖУКОВА" с уточнением "МАРШАЛА".
func (c *Context) mergePartsOfName(res []*Fragment) []*Fragment {
	for k := 0; k+1 < len(res); k++ {
		a, b := res[k], res[k+1]
		var r *Fragment
		switch {
		case a.Kind == FragStdPartOfName && b.Kind == FragName:
			r = b.withSpan(a.Begin, b.End)
			r.Misc = partName(a)
		case a.Kind == FragName && b.Kind == FragStdPartOfName:
			r = a.withSpan(a.Begin, b.End)
			if r.Value == "" {
				r.Value = c.textValue(a.Begin, a.End)
			}
			r.Misc = partName(b)
		default:
			continue
		}
		res = replaceRange(res, k, k+1, r)
	}
	return res
}

func partName(f *Fragment) string {
	if f.Misc != "" {
		return f.Misc
	}
	return f.canonic()
}

// replaceRange заменяет res[b..e] одним фрагментом.
func replaceRange(res []*Fragment, b, e int, f *Fragment) []*Fragment {
	out := make([]*Fragment, 0, len(res)-(e-b))
	out = append(out, res[:b]...)
	out = append(out, f)
	return append(out, res[e+1:]...)
}

// mergeNames склеивает соседние имена ("Мусы Джалиля", "Бор-Сосновка") и повтор
// одного типа улицы.
func (c *Context) mergeNames(res []*Fragment) []*Fragment {
	for k := 0; k+1 < len(res); k++ {
		a, b := res[k], res[k+1]
		if a.Kind == FragNoun && b.Kind == FragNoun && a.Termin == b.Termin {
			res = replaceRange(res, k, k+1, a.withSpan(a.Begin, b.End))
			k--
			continue
		}
		if a.Kind != FragName || b.Kind != FragName || c.hasNewlineBetween(a.Begin, b.End) {
			continue
		}
		hyphen := c.tok(a.End+1).IsHyphen() && b.Begin == a.End+2
		if !hyphen && b.Begin != a.End+1 {
			continue
		}
		if a.Morph.IsAdjective() && b.Morph.IsAdjective() && !hyphen {
			continue
		}
		r := a.withSpan(a.Begin, b.End)
		switch {
		case hyphen || b.Value == "" && a.Value == "" || c.tok(b.Begin).IsValueOf("БОР", "САД", "ПАРК"):
			r.Value = strings.ReplaceAll(c.textValue(a.Begin, b.End), "-", " ")
			if hyphen {
				r.AltValue = c.textValue(a.Begin, b.End)
			}
		case c.isSurname(b) && !c.isSurname(a):
			r.Value = c.valueOf(b)
			r.Misc = c.valueOf(a)
		default:
			r.Value = c.valueOf(a) + " " + c.valueOf(b)
		}
		r.Misc = strings.TrimSpace(r.Misc + " " + b.Misc)
		res = replaceRange(res, k, k+1, r)
		k--
	}
	return res
}

// mergeAdjectiveNoun - "улица Красная Площадь": прилагательное и полный тип после
// другого типа читаются как название.
func (c *Context) mergeAdjectiveNoun(res []*Fragment) []*Fragment {
	if len(res) != 3 || !res[0].isNoun() {
		return res
	}
	a, b := res[1], res[2]
	if b.Kind != FragNoun || b.IsAbridge || b.isNoun("УЛИЦА") || b.Termin == res[0].Termin {
		return res
	}
	switch a.Kind {
	case FragName, FragStdName, FragStdAdjective:
	default:
		return res
	}
	if !c.tok(a.End).Morph.IsAdjective() && a.Kind != FragStdAdjective {
		return res
	}
	r := &Fragment{Kind: FragStdName, Begin: a.Begin, End: b.End, Termin: a.Termin, AltTermin: b.Termin,
		Value: c.adjectiveValue(a, b) + " " + b.canonic(), Morph: a.Morph}
	return []*Fragment{res[0], r}
}

// adjectiveValue - прилагательное в роде типа улицы: "Красной" + ПЛОЩАДЬ -> "КРАСНАЯ".
func (c *Context) adjectiveValue(a, noun *Fragment) string {
	if a.Kind == FragStdAdjective && a.Termin != nil {
		return c.nominative(a.Termin.Canonic, noun.gender(), false)
	}
	if a.Value != "" {
		return a.Value
	}
	return c.nominative(c.tok(a.End).Term, noun.gender(), false)
}

// numberBeforeNounNoise - "5 домов Ленина": число, тип и посторонний фрагмент вне адресной строки.
func (c *Context) numberBeforeNounNoise(res []*Fragment) bool {
	if len(res) < 3 || c.addressMode() {
		return false
	}
	n := res[0]
	if n.Kind != FragNumber || n.IsNumberKm || !res[1].isNoun() || res[2].Kind == FragStdName || res[2].Kind == FragFix {
		return false
	}
	t := c.tok(n.Begin)
	return t.IsNumber() && t.Number.Spelling == token.Digit && !t.Number.Adjective && t.Morph == 0
}

// dropTrailingNumber отбрасывает число в конце цепочки, если это скорее номер дома:
// "ул. Мира 5". Номер остается за микрорайоном, кварталом, линией и перед домом.
func (c *Context) dropTrailingNumber(res []*Fragment) []*Fragment {
	n := len(res)
	if n < 2 {
		return res
	}
	last := res[n-1]
	if last.Kind != FragNumber || last.NumberHasPrefix || last.IsNumberKm || !c.tok(last.Begin).IsWhitespaceBefore() {
		return res
	}
	prev := res[n-2]
	switch {
	case prev.isNoun("МИКРОРАЙОН", "КВАРТАЛ", "ПОЧТОВОЕ ОТДЕЛЕНИЕ", "ЛИНИЯ", "ЛІНІЯ") ||
		strings.HasSuffix(prev.canonic(), "ГОРОДОК"):
		return res
	case c.tok(last.Begin - 1).IsHyphen():
		return res
	case c.checkHouseAfter(last.End+1, false, true):
		return res
	}
	return res[:n-1]
}

// expandNext разворачивает составные фрагменты ("8 Марта" -> номер и название).
func expandNext(res []*Fragment) []*Fragment {
	var out []*Fragment
	for _, f := range res {
		if f.Next == nil {
			out = append(out, f)
			continue
		}
		r := f.clone()
		r.Next = nil
		out = append(out, r, f.Next)
	}
	return out
}

// nounsAsNames - "пр. Набережная", "ул. Микрорайон": полный тип с заглавной после другого
// типа читается как название.
func (c *Context) nounsAsNames(res []*Fragment) []*Fragment {
	for k := 1; k < len(res); k++ {
		f := res[k]
		if !f.isNoun("НАБЕРЕЖНАЯ", "МИКРОРАЙОН") && !strings.HasSuffix(f.canonic(), "ГОРОДОК") {
			continue
		}
		if f.IsAbridge || !c.tok(f.Begin).Chars.IsCapitalUpper {
			continue
		}
		if p := res[k-1]; p.Kind != FragNoun && p.Kind != FragStdAdjective {
			continue
		}
		r := f.clone()
		r.Kind = FragName
		r.Value = c.textValue(f.Begin, f.End)
		r.Termin = nil
		res[k] = r
	}
	return res
}

// absorbTrailingInitial - "ул. Пушкина А." - инициал после фамилии.
func (c *Context) absorbTrailingInitial(res []*Fragment) []*Fragment {
	for n := 0; n < 2; n++ {
		last := res[len(res)-1]
		if last.Kind != FragName {
			break
		}
		l := c.tok(last.End + 1)
		if !l.IsLetters() || l.Length() != 1 || !l.Chars.IsAllUpper || !c.tok(last.End+2).IsChar('.') {
			break
		}
		if ait := c.ClassifyBare(last.End+1, nil); ait != nil && ait.Value != "" {
			break
		}
		res[len(res)-1] = last.withSpan(last.Begin, last.End+2)
		if last.Value == "" {
			res[len(res)-1].Value = c.textValue(last.Begin, last.End)
		}
	}
	return res
}
