package address

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// --- СБОРКА УЛИЦЫ ---

// AssembleStreet собирает улицу из последовательности фрагментов. ext разрешает
// менее строгие правила (перед улицей уже был тип или адресный префикс),
// forMetro - название станции метро, streetBefore - предыдущий элемент тоже улица.
// cross - первая улица пары "ул. Мира / Ленина": ее типы переходят на вторую.
// Возвращает элемент STREET или nil; входные фрагменты не меняются.
func (c *Context) AssembleStreet(frags []*Fragment, ext, forMetro, streetBefore bool, cross *Street) *Item {
	if len(frags) == 0 {
		return nil
	}
	frags = append([]*Fragment(nil), frags...)
	n := len(frags)

	// "2 ул." - только после населенного пункта.
	if n == 2 && frags[0].Kind == FragNumber && frags[1].Kind == FragNoun && frags[1].IsAbridge {
		if !c.geoBefore(frags[0].Begin) && !(isRegionCanonic(frags[1].canonic()) && c.addressMode()) {
			return nil
		}
	}
	// "кв. 12" перед участком - квартал, иначе квартира.
	if n == 2 && frags[0].Kind == FragNoun && frags[0].NounDoubtCoef > 1 && c.tok(frags[0].Begin).IsValue("КВ") &&
		frags[1].Kind == FragNumber {
		if at := c.ClassifyBare(frags[0].Begin, nil); at != nil && at.Value != "" {
			if next := c.ClassifyBare(c.skipComma(at.End+1), nil); !next.is(ItemPlot) {
				return nil
			}
		}
	}
	// "проезд 3 проезд Северный" - повтор типа.
	if n == 4 && frags[0].Kind == FragNoun && frags[1].Kind == FragNumber && frags[2].Kind == FragNoun &&
		frags[0].Termin == frags[2].Termin && (frags[3].Kind == FragName || frags[3].Kind == FragStdName ||
		frags[3].Kind == FragStdAdjective) {
		frags = []*Fragment{frags[0], frags[1], frags[3]}
		n = 3
	}
	if n == 2 && frags[0].Kind == FragNoun && frags[1].Kind == FragFix {
		return c.fixStreet(frags)
	}
	// "Заря СНТ ул." - улица внутри организации.
	if n == 3 && frags[1].Kind == FragFix && frags[2].Kind == FragNoun && frags[1].Org != nil {
		res := c.AssembleStreet([]*Fragment{frags[0], frags[2]}, ext, forMetro, streetBefore, cross)
		if res == nil {
			return nil
		}
		if terr := c.AssembleStreet(frags[1:2], true, false, false, nil); terr != nil {
			res = res.withSpan(res.Begin, frags[2].End)
			res.Territory = terr
		}
		return res
	}

	head := -1
	for k, f := range frags {
		if k == 0 && (f.Kind == FragFix && (n == 1 || frags[1].Kind != FragNoun || f.Org != nil) || f.IsRailway) {
			return c.fixStreet(frags)
		}
		if f.Kind != FragNoun {
			continue
		}
		if n == 1 && f.NounCanBeName && c.addressMode() {
			continue
		}
		if f.Termin == c.Onto.metro {
			if k+1 < n {
				if r := c.AssembleStreet(frags[k+1:], ext, true, false, nil); r != nil {
					r = r.withSpan(f.Begin, r.End)
					r.Doubt = f.IsAbridge && !frags[k+1].IsInBrackets
					return r
				}
			} else if k == 1 && frags[0].Kind == FragName {
				forMetro = true
				head = k
				break
			}
			if k == 0 {
				forMetro = true
				head = k
				break
			}
			return nil
		}
		if k == 0 && n == 1 && f.isNoun("МИКРОРАЙОН") {
			st := &Street{Kind: StreetArea}
			st.AddType("микрорайон")
			return &Item{Kind: ItemStreet, Begin: f.Begin, End: f.End, Street: st, Doubt: true}
		}
		if f.isNoun("ПЛОЩАДЬ", "ПЛОЩА") {
			// "площадь 50 кв.м" - размер, а не улица.
			k2 := f.End + 1
			if c.tok(k2).IsHyphen() || c.tok(k2).IsChar(':') {
				k2++
			}
			if c.numberWithUnit(k2) != nil {
				return nil
			}
			if k > 0 && frags[k-1].Value == "ПРОЕКТИРУЕМЫЙ" {
				return nil
			}
		}
		head = k
		break
	}
	if head < 0 {
		return c.streetWithoutNoun(frags, ext, forMetro, streetBefore, cross)
	}

	noun := frags[head]
	isMicro := isRegionCanonic(noun.canonic())
	before, after := 0, 0
	for _, f := range frags[:head] {
		switch {
		case f.Kind.isNameLike():
			before++
		case f.Kind == FragNumber:
			if c.isNewlineAfter(f) {
				return nil
			}
			if c.numberCounts(f, isMicro) || c.addressMode() {
				before++
			}
		default:
			before++
		}
	}
	var alt *Fragment
	isProezd := false
count:
	for j := head + 1; j < n; j++ {
		f := frags[j]
		if before > 0 && c.isNewlineBefore(f) {
			break
		}
		switch f.Kind {
		case FragNumber:
			if c.numberCounts(f, isMicro) || ext ||
				n == 2 && frags[0].Kind == FragNoun && j == 1 ||
				n > 2 && frags[0].Kind == FragNoun && frags[1].Kind == FragNoun && j == 2 ||
				n == 3 && frags[0].Kind == FragNoun && frags[2].Kind == FragNoun && j == 1 ||
				j+1 < n && frags[j+1].Kind == FragNoun {
				after++
			}
		case FragNoun:
			reg := isRegionCanonic(f.canonic())
			switch {
			case alt == nil && (j == head+1 || j == n-1) && !reg:
				alt = f
			case alt == nil && !isMicro && (noun.isNoun("ПРОЕЗД") || f.isNoun("ПРОЕЗД", "НАБЕРЕЖНАЯ")):
				alt = f
				isProezd = true
			case j == 1 && n == 3 && frags[2].Kind == FragNumber:
				alt = f
			default:
				break count
			}
		default:
			after++
		}
	}

	var (
		rli               []*Fragment
		name, adj         *Fragment
		number, secNumber string
		age               string
	)
	n0, n1 := 0, -1
	switch {
	case before > after:
		if noun.Termin == c.Onto.metro {
			return nil
		}
		f0 := frags[0]
		if noun.isNoun("КВАРТАЛ") && !ext && !streetBefore && f0.Kind == FragNumber && n == 2 &&
			!c.checkHouseAfter(noun.End+1, false, false) {
			if !c.geoBefore(f0.Begin) || c.prevIsPreposition(f0.Begin) {
				return nil
			}
		}
		if f0.Begin == f0.End && noun.Begin == f0.End+1 && !c.addressMode() {
			t0 := c.tok(f0.Begin)
			if !t0.Morph.IsAdjective() && !t0.IsNumber() && (c.isNewlineBefore(f0) || !c.geoBefore(f0.Begin) ||
				noun.Morph.IsGenitive() || noun.Morph.Has(analyzer.Instrumental)) {
				ok := c.tok(noun.End+1) == nil || c.checkHouseAfter(noun.End+1, false, true) ||
					c.isNewlineAfter(noun) && c.geoBefore(f0.Begin)
				if !ok {
					ch, nch := c.chars(f0), c.chars(noun)
					ok = ch.IsLatin && ch.IsCapitalUpper && nch.IsLatin && nch.IsCapitalUpper
				}
				if !ok {
					return nil
				}
			}
		}
		n0, n1 = 0, head-1
	case head == 1 && frags[0].Kind == FragNumber:
		if !c.tok(frags[0].End).IsWhitespaceAfter() {
			return nil
		}
		number = kmValue(frags[0])
		rli = append(rli, frags[0])
		n0, n1 = head+1, n-1
	case after > before:
		n0, n1 = head+1, n-1
		if alt != nil && alt == frags[head+1] {
			rli = append(rli, alt)
			n0++
		}
	case after == 0:
		if alt == nil || n != 2 {
			return nil
		}
		n0, n1 = 1, 0
	case n > 2 && (frags[0].Kind == FragName || frags[0].Kind == FragStdName || frags[0].Kind == FragStdAdjective) &&
		frags[1].Kind == FragNoun && frags[2].Kind == FragNumber:
		n0, n1 = 0, 0
		f2 := frags[2]
		num := false
		switch {
		case f2.IsNumberKm:
			num = true
		case c.tok(frags[0].Begin - 1).IsValue("КИЛОМЕТР"):
			f2 = f2.clone()
			f2.IsNumberKm = true
			num = true
		case c.tok(f2.Begin - 1).IsComma():
		case f2.Begin != f2.End:
			num = true
		case c.checkHouseAfter(f2.End+1, false, true):
			num = true
		case c.tok(f2.Begin).Morph.IsAdjective() && c.whitespacesBefore(f2) < 2:
			num = c.tok(f2.End+1) == nil || c.isNewlineAfter(f2)
		}
		if num {
			number = kmValue(f2)
			rli = append(rli, f2)
		} else {
			frags = frags[:2]
			n = 2
		}
	case n > 2 && frags[0].Kind == FragStdAdjective && frags[1].Kind == FragNoun && frags[2].Kind == FragStdName:
		adj, name = frags[0], frags[2]
		rli = append(rli, adj, name)
	default:
		return nil
	}

	j := n0
roles:
	for ; j <= n1; j++ {
		f := frags[j]
		switch f.Kind {
		case FragNumber:
			if j > 0 && c.isNewlineBefore(f) {
				break roles
			}
			if number != "" {
				if name != nil && name.Kind == FragStdName || j+1 < n && frags[j+1].Kind == FragStdName {
					secNumber = kmValue(f)
					rli = append(rli, f)
					continue
				}
				break roles
			}
			if f.IsNumeric && f.Spelling == token.Digit && !c.tok(f.Begin).Morph.IsAdjective() &&
				!c.tok(f.End).Morph.IsAdjective() {
				if j > 0 && c.whitespacesBefore(f) > 2 {
					break roles
				}
				if v, err := strconv.Atoi(f.Value); err == nil && v > 20 && j > n0 {
					switch {
					case j+1 < n && (frags[j+1].Kind == FragNoun || frags[j+1].Value == "ГОДА"):
					case j+1 == n && c.tok(f.Begin-1).IsHyphen():
						if !c.ClassifyBare(c.skipComma(f.End+1), nil).is(ItemHouse) && !c.addressMode() {
							break roles
						}
					default:
						break roles
					}
				}
				switch {
				case j == n0 && n0 > 0:
				case j == n0 && c.whitespacesAfter(f) == 1:
				case f.NumberHasPrefix || f.IsNumberKm:
				case j == n1 && n1+1 < n && frags[n1+1].Kind == FragNoun:
				case !c.tok(f.Begin).IsWhitespaceBefore():
				default:
					break roles
				}
			}
			number = kmValue(f)
			rli = append(rli, f)
		case FragAge:
			if age != "" {
				break roles
			}
			age = f.Value
			rli = append(rli, f)
		case FragStdAdjective:
			if adj != nil {
				if j == n-1 && !f.IsAbridge && name == nil {
					name = f
					rli = append(rli, f)
					continue
				}
				return nil
			}
			adj = f
			rli = append(rli, f)
		case FragName, FragStdName, FragFix:
			if name != nil {
				if head < j {
					break roles
				}
				return nil
			}
			name = f
			rli = append(rli, f)
		case FragStdPartOfName:
			if j == n1 {
				if name != nil {
					break roles
				}
				name = f
				rli = append(rli, f)
			}
		case FragNoun:
			switch {
			case frags[0] == noun && noun.isNoun("УЛИЦА", "ВУЛИЦЯ") && j > 0 && name == nil:
				alt = noun
				noun = f
			case f == alt:
			default:
				break roles
			}
		}
	}

	switch {
	case n1 < head && number == "" && head+1 < n && frags[head+1].Kind == FragNumber && frags[head+1].NumberHasPrefix:
		// "Мира ул., 5-я" не бывает, а "ул. Мира-5" - номер улицы.
		number = frags[head+1].Value
		rli = append(rli, frags[head+1])
	case head < n0 && (name != nil || adj != nil) && j < n && frags[j].Kind == FragNoun && noun.isNoun("УЛИЦА", "ВУЛИЦЯ") &&
		(frags[j].isNoun("ПЛОЩАДЬ", "БУЛЬВАР", "ПЛОЩА", "МАЙДАН") || j+1 == n):
		// "улица Красная площадь"
		alt = noun
		noun = frags[j]
	}
	if alt != nil && name == nil && number == "" && age == "" && adj == nil {
		switch {
		case noun.isNoun("УЛИЦА", "ВУЛИЦЯ"):
			name, alt = alt, nil
		case alt.isNoun("УЛИЦА", "ВУЛИЦЯ"):
			name, noun, alt = noun, alt, nil
		case alt.NounCanBeName:
			name, alt = alt, nil
		}
		if name != nil {
			rli = append(rli, name)
		}
	}
	if alt.isNoun("УЛИЦА", "ВУЛИЦЯ") && isRegionCanonic(noun.canonic()) {
		alt = nil
		isMicro = true
	}
	if name == nil {
		if number == "" && age == "" && adj == nil {
			return nil
		}
		if noun.IsAbridge && !c.addressMode() && !isMicro && !noun.isNoun("ПРОЕЗД") && (adj == nil || adj.IsAbridge) {
			return nil
		}
		if adj != nil && adj.IsAbridge && (noun.IsAbridge || !c.addressMode()) && alt == nil {
			return nil
		}
	}
	rli = append(rli, noun)
	if alt != nil {
		rli = append(rli, alt)
	}
	begin, end := spanOf(rli)

	st := &Street{}
	if forMetro {
		st.AddType("метро")
	} else {
		st.AddType(noun.canonic())
		if noun.AltTermin != nil && !(noun.AltTermin.Canonic == "ПРОСПЕКТ" && number != "") {
			st.AddType(noun.AltTermin.Canonic)
		}
	}

	doubt := false
	switch {
	case noun.isNoun("ЛИНИЯ", "ЛІНІЯ"):
		if number == "" && !c.geoBefore(begin) {
			return nil
		}
		doubt = true
	case noun.isNoun("ПУНКТ"):
		if !c.geoBefore(begin) || name == nil || number != "" {
			return nil
		}
	}
	if c.shortNoun(noun) {
		doubt = true
	} else if noun.NounDoubtCoef > 0 && !c.addressMode() {
		doubt = true
		if name != nil && name.End > noun.End && c.chars(noun).IsAllLower && !c.chars(name).IsAllLower &&
			c.tok(name.Begin).Kind != token.Referent {
			switch p := c.nounPhrase(name.Begin); {
			case p != nil && p.end > name.End:
			case c.checkHouseAfter(end+1, false, false):
				doubt = false
			case c.chars(name).IsCapitalUpper && noun.NounDoubtCoef == 1:
				doubt = false
			}
		}
	}

	var base, baseAlt, baseAlt2 string
	var adjGen analyzer.Morph
	if name != nil {
		base, baseAlt, baseAlt2, adjGen = c.nameVariants(st, name, noun, number, isProezd, begin)
	}
	if number != "" {
		st.Number = number
		if secNumber != "" {
			st.Number = secNumber
		}
	}
	if age != "" {
		st.Number = age
	}

	var adjStr, adjStr2 string
	canBeInitial := false
	if adj != nil {
		gen, plural := adjGen, false
		if name != nil {
			if name.Morph.IsPlural() && !name.Morph.Has(analyzer.Singular) {
				plural = true
			} else if gen == 0 {
				gen = singleGender(name.Morph)
			}
		}
		if gen == 0 {
			gen = noun.gender()
		}
		adjStr = c.adjectiveForm(adj.Termin, gen, plural)
		if adj.AltTermin != nil {
			adjStr2 = c.adjectiveForm(adj.AltTermin, gen, plural)
		}
		if name != nil && c.tok(adj.End).IsChar('.') && c.lengthChar(adj) <= 3 && !c.chars(adj).IsAllLower {
			canBeInitial = true
		}
	}

	s1, s2 := strings.TrimSpace(base), strings.TrimSpace(baseAlt)
	switch {
	case utf8.RuneCountInString(s1) < 3 && st.Kind != StreetRoad:
		switch {
		case st.Number != "":
			if adjStr != "" {
				if adj.IsAbridge {
					return nil
				}
				st.AddName(adjStr)
			} else if c.addressMode() && s1 != "" {
				st.AddName(s1)
			}
		case adjStr == "":
			if s1 == "" || !(isMicro || c.addressMode()) {
				return nil
			}
			st.AddName(s1)
			st.AddName(s2)
		default:
			if adj.IsAbridge && !c.addressMode() && alt == nil {
				return nil
			}
			st.AddName(adjStr)
		}
	case canBeInitial:
		// "Б. Хмельницкого" - инициал или "Большая".
		st.AddName(s1)
		st.AddName(c.textValue(adj.Begin, name.End))
		st.AddName(adjStr + " " + s1)
		if adjStr2 != "" {
			st.AddName(adjStr2 + " " + s1)
		}
	case adjStr == "":
		st.AddName(s1)
	default:
		st.AddName(adjStr + " " + s1)
		if adjStr2 != "" {
			st.AddName(adjStr2 + " " + s1)
		}
	}
	for _, v := range []string{s2, strings.TrimSpace(baseAlt2)} {
		if v == "" {
			continue
		}
		if adjStr == "" {
			st.AddName(v)
			continue
		}
		st.AddName(adjStr + " " + v)
		if adjStr2 != "" {
			st.AddName(adjStr2 + " " + v)
		}
	}
	if name != nil {
		st.AddName(name.AltValue2)
	}
	if alt != nil && !forMetro {
		st.AddType(alt.canonic())
		if alt.AltTermin != nil {
			st.AddType(alt.AltTermin.Canonic)
		}
	}

	if noun.isNoun("ПЛОЩАДЬ", "КВАРТАЛ", "ПЛОЩА") {
		doubt = true
		switch {
		case name != nil && name.IsInDictionary:
			doubt = false
		case alt != nil || forMetro || adj != nil:
			doubt = false
		case name != nil && c.stdNameEnd(name.Begin) >= 0:
			doubt = false
		case begin == 0 || c.geoBefore(begin):
			if c.tok(end+1) == nil || c.checkHouseAfter(end+1, false, true) {
				doubt = false
			}
		}
	}
	if name != nil && adj == nil && name.StdAdjVersion != nil {
		v := name.StdAdjVersion
		for _, nm := range append([]string(nil), st.Names...) {
			if strings.Contains(nm, " ") {
				continue
			}
			st.AddName(c.adjectiveForm(v.Termin, noun.gender(), false) + " " + nm)
			if v.AltTermin != nil {
				st.AddName(c.adjectiveForm(v.AltTermin, noun.gender(), false) + " " + nm)
			}
		}
	}

	// "Мира ул. проезд, д. 5" - второй тип перед домом.
	next := c.fragmentAt(c.skipComma(end+1), nil, false)
	if next.isNoun() && len(st.Types) > 0 && c.checkHouseAfter(next.End+1, false, true) {
		names := append([]string(nil), st.Names...)
		for _, typ := range st.Types {
			if typ == "улица" {
				continue
			}
			for _, nm := range names {
				st.AddName(strings.ToUpper(typ) + " " + nm)
			}
		}
		st.AddType(next.canonic())
		end = next.End
		next = nil
	}
	if hasName(st, "ПРОЕКТИРУЕМЫЙ") && st.Number == "" {
		if next != nil && next.Kind == FragNumber {
			st.Number = next.Value
			end = next.End
		}
	}

	if doubt {
		if noun.isRoad() {
			st.Kind = StreetRoad
			if strings.HasSuffix(st.Number, "км") || c.checkKmAfter(end+1) || c.checkKmBefore(begin-1) {
				doubt = false
			}
		} else if noun.isNoun("ПРОЕЗД") && hasName(st, "ПРОЕКТИРУЕМЫЙ") {
			doubt = false
		}
		if streetBefore {
			doubt = false
		}
		if doubt {
			if isProezd || c.checkHouseAfter(end+1, name != nil, false) || c.checkStreetAfter(end+1, false) ||
				c.geoBefore(begin) {
				doubt = false
			}
			if c.hasNewlineBetween(begin, end) {
				doubt = true
			}
		}
	}
	if c.tok(begin-1).IsChar('(') && c.tok(end+1).IsChar(')') {
		doubt = false
	}

	if noun.isNoun("КВАРТАЛ") && st.Number == "" && c.tok(end).WhitespacesAfter < 2 {
		if ait := c.ClassifyBare(end+1, nil); ait.is(ItemNumber) && ait.Value != "" {
			st.Number = ait.Value
			end = ait.End
		}
	}
	if age != "" && len(st.Names) == 0 {
		st.AddName("ЛЕТ")
	}
	if name != nil {
		st.AddMisc(name.Misc)
	}
	if st.Number == "" && (st.Kind == StreetRoad || st.Kind == StreetRailway) {
		if sit := c.fragmentAt(c.skipComma(end+1), nil, false); sit != nil && sit.Kind == FragNumber && sit.IsNumberKm {
			st.Number = sit.Value + "км"
			end = sit.End
		}
	}
	if noun.isRoad() {
		if sp := c.classifySpecial(end+1, noun); len(sp) == 1 && sp[0].IsRoadName {
			c.addNames(st, sp[0])
			end = sp[0].End
		}
	}
	if len(st.Types) == 0 && len(st.Names) == 0 {
		return nil
	}
	res := &Item{Kind: ItemStreet, Begin: begin, End: end, Street: st, Doubt: doubt}
	for _, f := range rli {
		if f.Territory != nil {
			res.Territory = f.Territory
			break
		}
	}
	return res
}

// numberCounts - число в окружении типа улицы относится к названию.
func (c *Context) numberCounts(f *Fragment, isMicro bool) bool {
	return f.IsNumeric && c.tok(f.Begin).Morph.IsAdjective() || isMicro || f.NumberHasPrefix || f.IsNumberKm
}

// shortNoun - тип улицы записан коротким сокращением: "ул", "пр.", "б-р".
func (c *Context) shortNoun(f *Fragment) bool {
	if f == nil || f.Termin == nil || c.lengthChar(f) >= 4 {
		return false
	}
	return f.IsAbridge || c.tok(f.Begin).Term != f.Termin.Canonic
}

// kmValue - значение числового фрагмента с пометкой километра.
func kmValue(f *Fragment) string {
	if f.IsNumberKm {
		return f.Value + "км"
	}
	return f.Value
}

func spanOf(frags []*Fragment) (int, int) {
	begin, end := frags[0].Begin, frags[0].End
	for _, f := range frags[1:] {
		if f.Begin < begin {
			begin = f.Begin
		}
		if f.End > end {
			end = f.End
		}
	}
	return begin, end
}

func hasName(st *Street, name string) bool {
	for _, n := range st.Names {
		if n == name {
			return true
		}
	}
	return false
}

// adjectiveForm - стандартное прилагательное в именительном падеже нужного рода.
func (c *Context) adjectiveForm(t *ontology.Termin, gender analyzer.Morph, plural bool) string {
	if t == nil {
		return ""
	}
	if v := c.nominative(t.Canonic, gender, plural); v != "" {
		return v
	}
	return t.Canonic
}

// nameVariants - основное и альтернативные написания названия улицы.
// adjGen - род, в котором стоит словарное прилагательное названия.
func (c *Context) nameVariants(st *Street, name, noun *Fragment, number string, isProezd bool,
	begin int) (base, alt, alt2 string, adjGen analyzer.Morph) {
	if name.Value != "" {
		alt = name.AltValue
		if alt == name.Value {
			alt = ""
		}
		return name.Value, alt, "", 0
	}
	if name.Termin != nil && number != "" && fragKindOf(name.Termin) == FragNoun {
		// "ул. Линия 5" - второй тип.
		st.AddType(name.canonic())
		return "", "", "", 0
	}
	if name.Termin != nil && name.Kind != FragNoun {
		return name.canonic(), "", "", 0
	}
	te := c.tok(name.End)
	isAdj := false
	lemma := ""
	for _, wf := range te.Forms {
		if !wf.Morph.IsAdjective() {
			if wf.InDictionary {
				break
			}
			continue
		}
		isAdj = true
		if lemma == "" {
			lemma = wf.Lemma
		}
		if wf.InDictionary {
			adjGen = singleGender(wf.Morph)
			break
		}
	}
	if isAdj && te.Kind == token.Word {
		var prefix strings.Builder
		for k := name.Begin; k < name.End; k++ {
			if t := c.tok(k); t.IsLetters() {
				prefix.WriteString(t.Term + " ")
			}
		}
		isPadez := isProezd || c.prevIsPreposition(begin)
		if !noun.IsAbridge && (!noun.Morph.IsUndefinedCase() && !noun.Morph.IsNominative() || noun.isNoun("ШОССЕ", "ШОСЕ")) {
			isPadez = true
		}
		if !isPadez {
			return prefix.String() + te.Term, "", "", adjGen
		}
		var vars []string
		g := noun.gender()
		if v := c.nominative(te.Term, g, pluralOnly(noun.Morph)); v != "" && !(g == analyzer.Masculine && strings.HasSuffix(v, "ОЙ")) {
			vars = append(vars, v)
		}
		if name.Begin > noun.End && (len(vars) == 0 || vars[0] != te.Term) {
			vars = append(vars, te.Term)
		}
		if isProezd && lemma != "" {
			vars = appendUnique(vars, lemma)
		}
		if len(vars) == 0 {
			vars = append(vars, te.Term)
		}
		p := prefix.String()
		base = p + vars[0]
		if len(vars) > 1 {
			alt = p + vars[1]
		}
		if len(vars) > 2 {
			alt2 = p + vars[2]
		}
		return base, alt, alt2, adjGen
	}

	var nits []string
	hasAdj, hasProper := false, false
	for k := name.Begin; k <= name.End; k++ {
		t := c.tok(k)
		if t == nil {
			break
		}
		if t.Morph.IsAdjective() || t.Morph.IsConjunction() {
			hasAdj = true
		}
		switch {
		case t.Kind == token.Referent:
			nits = append(nits, strings.ToUpper(t.Source))
		case t.Kind == token.Word && !t.IsHyphen():
			if !t.Chars.IsLetter && len(nits) > 0 {
				nits[len(nits)-1] += t.Term
				continue
			}
			nits = append(nits, t.Term)
			if k == name.Begin && t.Morph.IsProperName() {
				hasProper = true
			}
		}
	}
	if !hasAdj && !hasProper && !name.IsInDictionary {
		sort.Strings(nits)
	}
	if hasProper && len(nits) == 2 {
		alt = nits[1]
	}
	if name.Org != nil && name.Org.Number != "" && st.Number == "" {
		st.Number = name.Org.Number
	}
	return strings.Join(nits, " "), alt, "", 0
}

// --- УЛИЦА БЕЗ ТИПА ---

// streetWithoutNoun - улица без слова-типа: "Ленина, 5", "3-я Парковая 12".
func (c *Context) streetWithoutNoun(frags []*Fragment, ext, forMetro, streetBefore bool, cross *Street) *Item {
	n := len(frags)
	if n > 1 && frags[n-1].Kind == FragNumber && !frags[n-1].NumberHasPrefix {
		frags = frags[:n-1]
		n--
	}
	f0 := frags[0]
	i1 := 0
	switch {
	case n == 1 && (f0.Kind == FragName || f0.Kind == FragStdName || f0.Kind == FragStdAdjective) && (ext || forMetro):
		if !forMetro && !f0.IsInDictionary {
			j := c.skipComma(f0.End + 1)
			ok := false
			if it := c.ClassifyBare(j, nil); it.is(ItemNumber, ItemHouse) {
				ok = true
			} else if c.addressMode() && (c.tok(f0.End+1) == nil || c.tok(f0.End+1).IsComma() || c.isNewlineAfter(f0)) {
				ok = true
			}
			if !ok {
				return nil
			}
		}
		st := &Street{}
		if forMetro {
			st.AddType("метро")
		} else if cross != nil {
			for _, t := range cross.Types {
				st.AddType(t)
			}
		}
		c.addNames(st, f0)
		st.AddName(c.textValue(f0.Begin, f0.End))
		st.AddMisc(f0.Misc)
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st, Doubt: !f0.IsInBrackets}
	case n == 1 && f0.Kind == FragNumber && f0.IsNumberKm && c.addressMode():
		st := &Street{Number: f0.Value + "км"}
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st, Doubt: true}
	case n == 1 && f0.Kind == FragNumber && f0.IsNumeric && c.tok(f0.Begin).Morph.IsAdjective() && c.addressMode():
		if streetBefore {
			return nil
		}
		st := &Street{Number: f0.Value}
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st, Doubt: true}
	case n == 1 && (f0.Kind.isNameLike() && f0.Kind != FragStdPartOfName && f0.Kind != FragAge || f0.NounCanBeName):
		if !ext {
			if r := c.streetEnumeration(f0); r != nil {
				return r
			}
		}
		if j := c.territoryEnd(f0.End + 1); j >= 0 && c.whitespacesAfter(f0) < 2 {
			st := &Street{Kind: StreetArea}
			st.AddType("территория")
			c.addNames(st, f0)
			return &Item{Kind: ItemStreet, Begin: f0.Begin, End: j, Street: st}
		}
		if !c.addressMode() && !streetBefore && !c.geoBefore(f0.Begin) {
			hit := c.ClassifyBare(c.skipComma(f0.End+1), nil)
			if !hit.is(ItemHouse, ItemBuilding, ItemCorpus) || hit.Value == "" || !isDigitStart(hit.Value) {
				return nil
			}
		}
	case n == 2 && (f0.Kind == FragStdAdjective || f0.Kind == FragNumber || f0.Kind == FragAge) &&
		(frags[1].Kind == FragStdName || frags[1].Kind == FragName):
		if streetBefore {
			if it := c.ClassifyBare(f0.Begin, nil); it != nil && it.Value != "" {
				return nil
			}
		}
		if f0.Kind == FragNumber && frags[1].Kind == FragName && c.ClassifyBare(frags[1].Begin, nil) != nil {
			return nil
		}
		i1 = 1
	case n == 2 && (f0.Kind == FragStdName || f0.Kind == FragName) &&
		(frags[1].Kind == FragNumber || frags[1].Kind == FragStdAdjective):
		if !c.addressMode() {
			return nil
		}
	case n == 3 && (f0.Kind == FragStdName || f0.Kind == FragName) && frags[1].Kind == FragNumber &&
		frags[2].Kind == FragStdName:
	case n == 1 && f0.Kind == FragNumber && f0.IsNumberKm:
		// "ст. Раздолье, 105 км"
		if g := c.geoEntityBefore(f0.Begin); g != nil && g.HasType("станция") {
			st := &Street{Number: f0.Value + "км"}
			return &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st, Doubt: true}
		}
		return nil
	default:
		return nil
	}

	nf := frags[i1]
	val, altVal := nf.Value, nf.AltValue
	if altVal == val {
		altVal = ""
	}
	if val == "" && nf.Termin != nil && nf.Kind == FragNoun {
		val = nf.canonic()
	}
	if val == "" {
		te := c.tok(nf.Begin)
		if nf.Begin == nf.End && te.Morph.IsAdjective() {
			val = c.nominative(te.Term, analyzer.Feminine, false)
		}
		if i1 > 0 && f0.Kind == FragAge {
			val = c.textValue(nf.Begin, nf.End)
		} else {
			altVal = c.textValue(nf.Begin, nf.End)
			if val == "" {
				val, altVal = altVal, ""
			}
		}
	}
	veryDoubt := false
	if val == "" && n == 1 && c.chars(nf).IsCapitalUpper {
		veryDoubt = true
		if c.geoBefore(nf.Begin) {
			val = c.textValue(nf.Begin, nf.End)
		}
	}
	if val == "" {
		return nil
	}
	last := frags[n-1]
	ti := c.skipComma(last.End + 1)
	t := c.tok(ti)
	if t == nil && !c.addressMode() && !c.geoBefore(f0.Begin) {
		return nil
	}

	ok, doubt := false, true
	switch {
	case nf.Kind == FragFix:
		ok, doubt = true, false
	case cross != nil, t == nil, t.IsCharOf("/\\"):
		ok = true
	case c.checkHouseAfter(last.End+1, false, false):
		if p := c.tok(f0.Begin - 1); p.IsValueOf("АРЕНДА", "ПОДРЯД", "СКЛАД", "ГАРАЖ") {
			return nil
		}
		ok = true
	case c.addressMode() && (t.IsNewlineBefore() || t.IsValue("Д")):
		ok = true
	case f0.Kind == FragAge && c.addressMode():
		ok = true
	case t.IsChar('(') && c.tok(ti+1).IsReferent(token.Geo):
		ok = true
	default:
		ait := c.ClassifyBare(ti, nil)
		switch {
		case ait == nil || veryDoubt:
			return nil
		case ait.is(ItemHouse) && ait.Value != "":
			ok = true
		case ait.is(ItemNumber) && t.WhitespacesBefore < 4 && t.Number != nil && t.Number.Spelling == token.Digit &&
			!t.Morph.IsAdjective() && t.Number.Int > 0 && t.Number.Int <= 100:
			if c.tok(ait.End+1).IsAdjective() || c.isStreetNounAt(ait.End+1) {
				return nil
			}
			if c.addressMode() || c.geoBefore(f0.Begin) {
				ok = true
			} else {
				for k, m := f0.Begin-1, 0; k >= 0 && m < 4; k, m = k-1, m+1 {
					if c.tok(k).IsValueOf("АДРЕС", "АДРЕСА", "ПО") {
						ok = true
						break
					}
				}
			}
		}
	}
	if !ok {
		return nil
	}
	if c.tok(f0.Begin).IsReferent(token.Org) && f0.Kind != FragFix {
		return nil
	}

	st := &Street{}
	if cross != nil {
		for _, typ := range cross.Types {
			st.AddType(typ)
		}
	}
	begin, end := f0.Begin, last.End
	switch {
	case i1 > 0 && f0.Kind == FragNumber || f0.Kind == FragAge:
		st.Number = f0.Value
	case i1 > 0 && f0.Kind == FragStdAdjective:
		gen := analyzer.Feminine
		if g := singleGender(nf.Morph); g != 0 {
			gen = g
		}
		adj := c.adjectiveForm(f0.Termin, gen, false)
		val = adj + " " + val
		if altVal != "" {
			altVal = adj + " " + altVal
		}
	}
	if n > 1 && i1 == 0 && frags[1].Kind == FragNumber {
		st.Number = frags[1].Value
	}
	if n == 3 {
		val += " " + c.valueOf(frags[2])
	}
	st.AddName(val)
	st.AddName(altVal)
	if nf.StdAdjVersion != nil {
		for _, nm := range append([]string(nil), st.Names...) {
			st.AddName(c.adjectiveForm(nf.StdAdjVersion.Termin, analyzer.Feminine, false) + " " + nm)
		}
	}
	st.AddMisc(nf.Misc)
	res := &Item{Kind: ItemStreet, Begin: begin, End: end, Street: st, Doubt: doubt}
	if nf.IsInBrackets {
		res.Doubt = false
	}
	// "тер. Заря" - территория перед названием.
	for k := begin - 1; k >= 0 && k >= begin-3; k-- {
		if j := c.territoryEnd(k); j == begin-1 {
			st.AddType("территория")
			st.Kind = StreetArea
			res.Begin = k
			break
		}
	}
	return res
}

// streetEnumeration - перечисление названий перед общим типом:
// "Ленина, Мира и Гагарина улицы" дает улицу для первого названия.
func (c *Context) streetEnumeration(f *Fragment) *Item {
	k := f.End + 1
	for n := 0; n < 5; n++ {
		t := c.tok(k)
		if !t.IsComma() && !t.IsAnd() {
			return nil
		}
		frags := c.ClassifyFragments(k+1, c.opts.MaxStreetItems)
		if len(frags) == 0 {
			return nil
		}
		for _, g := range frags {
			if g.Kind != FragNoun {
				continue
			}
			if g == frags[0] {
				return nil
			}
			res := c.AssembleStreet([]*Fragment{f, g}, true, false, false, nil)
			if res == nil {
				return nil
			}
			return res.withSpan(f.Begin, f.End)
		}
		k = frags[len(frags)-1].End + 1
	}
	return nil
}

func isDigitStart(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// --- УСТОЙЧИВЫЕ СОЧЕТАНИЯ И ОРГАНИЗАЦИИ ---

// fixStreet - улица из устойчивого сочетания, железной дороги, организации
// или населенного пункта при типе улицы.
func (c *Context) fixStreet(frags []*Fragment) *Item {
	n := len(frags)
	f0 := frags[0]
	// "пос. Ясное" внутри адреса - улица-поселок.
	if n == 2 && f0.Kind == FragNoun && frags[1].City != nil {
		st := &Street{}
		st.AddType(f0.canonic())
		if f0.AltTermin != nil {
			st.AddType(f0.AltTermin.Canonic)
		}
		for _, nm := range frags[1].City.Names {
			st.AddName(nm)
		}
		for _, typ := range frags[1].City.Types {
			st.AddMisc(typ)
		}
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: frags[1].End, Street: st}
	}
	if n == 2 && f0.Kind == FragNoun && !f0.isRoad() && frags[1].Org != nil {
		if f0.isNoun("ПЛОЩАДЬ", "ПЛОЩА") && !c.addressMode() {
			return nil
		}
		org := frags[1].Org
		st := &Street{}
		st.AddType(f0.canonic())
		for _, nm := range org.Names {
			st.AddName(nm)
		}
		st.Number = org.Number
		for _, typ := range org.Types {
			if typ == "кадастровый квартал" {
				st.Types = nil
				st.Kind = StreetUndefined
				st.AddType(typ)
			} else {
				st.AddMisc(typ)
			}
		}
		if isRegionCanonic(f0.canonic()) {
			st.Kind = StreetArea
		}
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: frags[1].End, Street: st}
	}
	if f0.Org != nil {
		return c.orgStreet(frags)
	}
	if f0.IsRailway {
		st := &Street{Kind: StreetRailway}
		st.AddType("железная дорога")
		st.AddName(strings.TrimSpace(strings.TrimSuffix(f0.Value, " ЖЕЛЕЗНАЯ ДОРОГА")))
		res := &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st}
		if n > 1 && frags[1].Kind == FragNumber && frags[1].IsNumberKm {
			st.Number = frags[1].Value + "км"
			res.End = frags[1].End
		} else if f0.NounDoubtCoef > 1 {
			return nil
		}
		return res
	}
	if f0.Termin == nil {
		return nil
	}
	if f0.Termin == c.Onto.mkad {
		st := &Street{Kind: StreetRoad}
		st.AddType("автодорога")
		st.AddName("МОСКОВСКАЯ КОЛЬЦЕВАЯ")
		res := &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st}
		if n > 1 && frags[1].Kind == FragNumber {
			f1 := frags[1]
			if p := c.tok(f1.Begin - 1); p.IsValueOf("КИЛОМЕТР", "КМ") {
				st.Number = f1.Value + "км"
				res.End = f1.End
			} else if f1.IsNumberKm {
				st.Number = f1.Value + "км"
				res.End = f1.End
			}
		}
		if st.Number == "" {
			if km := c.fragmentAt(c.skipComma(res.End+1), nil, false); km != nil && km.Kind == FragNumber && km.IsNumberKm {
				st.Number = km.Value + "км"
				res.End = km.End
			}
		}
		return res
	}
	if c.geoBefore(f0.Begin) || c.checkHouseAfter(f0.End+1, false, true) {
		st := &Street{}
		st.AddName(f0.canonic())
		return &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st}
	}
	return nil
}

// orgStreet - территория организации: "СНТ Заря", "ГСК-5", "ДНП Лесное ул.".
func (c *Context) orgStreet(frags []*Fragment) *Item {
	f0 := frags[0]
	org := f0.Org
	st := &Street{}
	st.AddType("территория")
	for _, nm := range org.Names {
		st.AddName(nm)
	}
	st.Number = org.Number
	noOrg := false
	for _, typ := range org.Types {
		switch {
		case typ == "кадастровый квартал":
			st.Types = nil
			st.AddType(typ)
		case strings.Contains(typ, "владение") || strings.Contains(typ, "участок"):
			noOrg = true
			st.AddMisc(typ)
		default:
			st.AddMisc(typ)
		}
	}
	res := &Item{Kind: ItemStreet, Begin: f0.Begin, End: f0.End, Street: st}
	if len(frags) == 2 && frags[1].Kind == FragNoun && !c.checkStreetAfter(frags[1].End+1, false) {
		// "Заря СНТ улица" - тип после названия организации.
		st.Types = nil
		st.Kind = StreetUndefined
		st.AddType(frags[1].canonic())
		if frags[1].AltTermin != nil {
			st.AddType(frags[1].AltTermin.Canonic)
		}
		if len(st.Names) == 0 && st.Number == "" && len(st.Misc) > 0 {
			st.AddName(strings.ToUpper(st.Misc[0]))
		}
		res.End = frags[1].End
		return res
	}
	if noOrg || len(org.Types) == 0 {
		st.Kind = StreetArea
	} else {
		st.Kind = StreetOrg
		st.Org = org
	}
	if !org.IsGsk && !c.addressMode() && !c.checkHouseAfter(res.End+1, false, false) {
		res.Doubt = true
	}
	return res
}

// SecondStreet - вторая улица перекрестка без своего типа: в "ул. Мира и Ленина"
// тип первой улицы (i1) переносится на название с позиции i2.
func (c *Context) SecondStreet(i1, i2 int) *Item {
	frags1 := c.ClassifyFragments(i1, c.opts.MaxStreetItems)
	if len(frags1) == 0 {
		return nil
	}
	var noun *Fragment
	for _, f := range frags1 {
		if f.Kind == FragNoun {
			noun = f
			break
		}
	}
	if noun == nil {
		return nil
	}
	frags2 := c.ClassifyFragments(i2, c.opts.MaxStreetItems)
	if len(frags2) == 0 {
		return nil
	}
	for _, f := range frags2 {
		if f.Kind == FragNoun {
			return nil
		}
	}
	list := append([]*Fragment{noun}, frags2...)
	res := c.AssembleStreet(list, true, false, false, nil)
	if res == nil {
		return nil
	}
	return res.withSpan(frags2[0].Begin, res.End)
}
