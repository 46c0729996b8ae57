package token

import (
	"strings"

	"github.com/steosofficial/steosaddress/analyzer"
)

// --- СЛОВАРИ ---

type keyword struct {
	terms []string // Последовательность терминов ("Р", "-", "Н").
	typ   string
	// single - однобуквенное сокращение, допустимое только с точкой.
	single bool
}

var cityKeywords = []keyword{
	{terms: []string{"ГОРОД"}, typ: "город"}, {terms: []string{"ГОР"}, typ: "город"}, {terms: []string{"Г"}, typ: "город", single: true},
	{terms: []string{"ПОСЕЛОК"}, typ: "поселок"}, {terms: []string{"ПОС"}, typ: "поселок"}, {terms: []string{"П"}, typ: "поселок", single: true},
	{terms: []string{"ПГТ"}, typ: "поселок городского типа"}, {terms: []string{"СМТ"}, typ: "поселок городского типа"},
	{terms: []string{"РП"}, typ: "рабочий поселок"},
	{terms: []string{"СЕЛО"}, typ: "село"}, {terms: []string{"С"}, typ: "село", single: true},
	{terms: []string{"ДЕРЕВНЯ"}, typ: "деревня"}, {terms: []string{"ДЕР"}, typ: "деревня"}, {terms: []string{"Д"}, typ: "деревня", single: true},
	{terms: []string{"СТАНИЦА"}, typ: "станица"}, {terms: []string{"СТ", "-", "ЦА"}, typ: "станица"},
	{terms: []string{"ХУТОР"}, typ: "хутор"}, {terms: []string{"Х"}, typ: "хутор", single: true},
	{terms: []string{"АУЛ"}, typ: "аул"},
}

var regionKeywords = []keyword{
	{terms: []string{"ОБЛАСТЬ"}, typ: "область"}, {terms: []string{"ОБЛАСТИ"}, typ: "область"}, {terms: []string{"ОБЛ"}, typ: "область"},
	{terms: []string{"КРАЙ"}, typ: "край"}, {terms: []string{"КРАЯ"}, typ: "край"},
	{terms: []string{"РЕСПУБЛИКА"}, typ: "республика"}, {terms: []string{"РЕСПУБЛИКИ"}, typ: "республика"}, {terms: []string{"РЕСП"}, typ: "республика"},
	{terms: []string{"РАЙОН"}, typ: "район"}, {terms: []string{"РАЙОНА"}, typ: "район"}, {terms: []string{"Р", "-", "Н"}, typ: "район"},
	{terms: []string{"ОКРУГ"}, typ: "округ"},
}

var orgKeywords = []keyword{
	{terms: []string{"СНТ"}, typ: "снт"}, {terms: []string{"ДНТ"}, typ: "днт"}, {terms: []string{"ДНП"}, typ: "днп"},
	{terms: []string{"СНП"}, typ: "снп"}, {terms: []string{"ТСН"}, typ: "тсн"}, {terms: []string{"ТСЖ"}, typ: "тсж"},
	{terms: []string{"ЖСК"}, typ: "жск"}, {terms: []string{"СПК"}, typ: "спк"}, {terms: []string{"КП"}, typ: "кп"},
	{terms: []string{"СТ"}, typ: "ст"},
	{terms: []string{"ГСК"}, typ: "гск"}, {terms: []string{"ГК"}, typ: "гк"}, {terms: []string{"ПГК"}, typ: "пгк"},
	{terms: []string{"ГСПК"}, typ: "гспк"},
	{terms: []string{"САДОВОЕ", "ТОВАРИЩЕСТВО"}, typ: "снт"},
	{terms: []string{"САДОВОДЧЕСКОЕ", "ТОВАРИЩЕСТВО"}, typ: "снт"},
	{terms: []string{"ГАРАЖНЫЙ", "КООПЕРАТИВ"}, typ: "гк"},
}

var gskTypes = map[string]bool{"гск": true, "гк": true, "пгк": true, "гспк": true}

type knownPlace struct {
	terms []string
	name  string
	state bool
	stem  string
}

var knownPlaces = []knownPlace{
	{terms: []string{"МОСКВА"}}, {terms: []string{"САНКТ", "-", "ПЕТЕРБУРГ"}, name: "САНКТ-ПЕТЕРБУРГ"},
	{terms: []string{"СЕВАСТОПОЛЬ"}}, {terms: []string{"НОВОСИБИРСК"}}, {terms: []string{"ЕКАТЕРИНБУРГ"}},
	{terms: []string{"КАЗАНЬ"}}, {terms: []string{"САМАРА"}}, {terms: []string{"ОМСК"}}, {terms: []string{"ЧЕЛЯБИНСК"}},
	{terms: []string{"УФА"}}, {terms: []string{"ВОЛГОГРАД"}}, {terms: []string{"ПЕРМЬ"}}, {terms: []string{"КРАСНОЯРСК"}},
	{terms: []string{"ВОРОНЕЖ"}}, {terms: []string{"САРАТОВ"}}, {terms: []string{"КРАСНОДАР"}}, {terms: []string{"ТЮМЕНЬ"}},
	{terms: []string{"КИЕВ"}}, {terms: []string{"КИЇВ"}, name: "КИЕВ"}, {terms: []string{"ХАРЬКОВ"}}, {terms: []string{"ОДЕССА"}},
	{terms: []string{"ДНЕПР"}}, {terms: []string{"ЛЬВОВ"}}, {terms: []string{"МИНСК"}},
	{terms: []string{"РОССИЯ"}, state: true}, {terms: []string{"РФ"}, name: "РОССИЯ", state: true},
	{terms: []string{"РОССИЙСКАЯ", "ФЕДЕРАЦИЯ"}, name: "РОССИЯ", state: true},
	{terms: []string{"УКРАИНА"}, state: true}, {terms: []string{"УКРАЇНА"}, name: "УКРАИНА", state: true},
	{terms: []string{"БЕЛАРУСЬ"}, state: true}, {terms: []string{"КАЗАХСТАН"}, state: true},
}

func init() {
	for i := range knownPlaces {
		knownPlaces[i].stem = Stem(knownPlaces[i].terms[0])
	}
}

var months = map[string]int{
	"ЯНВАРЯ": 1, "ФЕВРАЛЯ": 2, "МАРТА": 3, "АПРЕЛЯ": 4, "МАЯ": 5, "ИЮНЯ": 6,
	"ИЮЛЯ": 7, "АВГУСТА": 8, "СЕНТЯБРЯ": 9, "ОКТЯБРЯ": 10, "НОЯБРЯ": 11, "ДЕКАБРЯ": 12,
}

// Слова, которые не могут быть названием населенного пункта после сокращения.
var nameStopStems = map[string]bool{
	"дом": true, "ул": true, "улиц": true, "кв": true, "квартир": true, "корп": true, "корпус": true,
	"стр": true, "строен": true, "пер": true, "переулок": true, "пр": true, "просп": true, "проспект": true,
	"шосс": true, "мкр": true, "микрорайон": true, "площад": true, "пл": true, "офис": true, "этаж": true,
}

// --- ВЫДЕЛЕНИЕ ---

// recognizeEntities заменяет цепочки токенов, образующие сущность, одним токеном-референтом.
func recognizeEntities(doc *Document, morph analyzer.Morphology) {
	out := make([]Token, 0, len(doc.Tokens))
	for i := 0; i < len(doc.Tokens); {
		e, end := tryDate(doc, i)
		if e == nil {
			e, end = tryOrg(doc, i)
		}
		if e == nil {
			e, end = tryGeo(doc, i, morph)
		}
		if e == nil {
			out = append(out, doc.Tokens[i])
			i++
			continue
		}
		out = append(out, referent(doc, i, end, e))
		i = end + 1
	}
	doc.Tokens = out
}

func referent(doc *Document, begin, end int, e *Entity) Token {
	b, last := doc.At(begin), doc.At(end)
	t := Token{
		Kind:              Referent,
		Source:            doc.Text[b.BeginChar:last.EndChar],
		Term:              e.Name(),
		BeginChar:         b.BeginChar,
		EndChar:           last.EndChar,
		WhitespacesBefore: b.WhitespacesBefore,
		NewlinesBefore:    b.NewlinesBefore,
		Chars:             Chars{IsLetter: true, IsCyrillic: true, IsCapitalUpper: true},
		Morph:             analyzer.Noun | analyzer.ProperName,
		Entity:            e,
	}
	if e.Kind == Date {
		t.Morph = analyzer.Noun
	}
	return t
}

// matchKeyword проверяет последовательность терминов с позиции i и необязательную точку после.
// Возвращает индекс последнего токена ключевого слова.
func matchKeyword(doc *Document, i int, kws []keyword) (*keyword, int) {
	for k := range kws {
		kw := &kws[k]
		j, ok := i, true
		for n, term := range kw.terms {
			t := doc.At(j)
			if t == nil || t.Term != term || (n > 0 && t.IsWhitespaceBefore()) {
				ok = false
				break
			}
			j++
		}
		if !ok {
			continue
		}
		end := j - 1
		if doc.At(j).IsChar('.') {
			end = j
		} else if kw.single {
			continue
		}
		return kw, end
	}
	return nil, -1
}

func isNameWord(t *Token) bool {
	if !t.IsLetters() || !t.Chars.IsCyrillic || t.TermLength() < 2 {
		return false
	}
	if !t.Chars.IsCapitalUpper && !t.Chars.IsAllUpper {
		return false
	}
	if t.Morph.IsPreposition() || t.Morph.IsConjunction() || nameStopStems[t.Stem] || nameStopStems[strings.ToLower(t.Term)] {
		return false
	}
	return true
}

// nameSpan - имя собственное с позиции i: слово, дефисные продолжения и
// существительное после прилагательного ("Нижний Новгород").
func nameSpan(doc *Document, i int) (string, int) {
	t := doc.At(i)
	if !isNameWord(t) || t.IsNewlineBefore() {
		return "", -1
	}
	var sb strings.Builder
	sb.WriteString(t.Term)
	end := i
	for {
		h, w := doc.At(end+1), doc.At(end+2)
		if h.IsHyphen() && !h.IsWhitespaceBefore() && !h.IsWhitespaceAfter() && w.IsLetters() {
			sb.WriteString("-")
			sb.WriteString(w.Term)
			end += 2
			continue
		}
		break
	}
	if end == i && t.Morph.IsAdjective() && !t.Morph.IsProperName() {
		if n := doc.At(i + 1); isNameWord(n) && !n.IsNewlineBefore() && n.Morph.IsNoun() && !n.Morph.IsAdjective() {
			sb.WriteString(" ")
			sb.WriteString(n.Term)
			end = i + 1
		}
	}
	return sb.String(), end
}

func tryGeo(doc *Document, i int, morph analyzer.Morphology) (*Entity, int) {
	t := doc.At(i)
	if t == nil || t.Kind != Word {
		return nil, -1
	}
	// "г. Москва", "р-н Ленинский"
	for _, set := range []struct {
		kws    []keyword
		region bool
	}{{cityKeywords, false}, {regionKeywords, true}} {
		kw, kwEnd := matchKeyword(doc, i, set.kws)
		if kw == nil || kw.single && isInitial(doc, i) {
			continue
		}
		name, end := nameSpan(doc, kwEnd+1)
		if end < 0 {
			continue
		}
		e := &Entity{Kind: Geo, Types: []string{kw.typ}, Names: []string{placeName(name)}, IsCity: !set.region, IsRegion: set.region}
		return e, end
	}

	// "Московская обл.", "Ленинского района"
	if isNameWord(t) && t.Morph.IsAdjective() {
		if kw, kwEnd := matchKeyword(doc, i+1, regionKeywords); kw != nil && !doc.At(i+1).IsNewlineBefore() {
			gender := analyzer.Masculine
			if kw.typ == "область" || kw.typ == "республика" {
				gender = analyzer.Feminine
			}
			name := morph.Nominative(t.Term, gender, false)
			return &Entity{Kind: Geo, Types: []string{kw.typ}, Names: []string{name}, IsRegion: true}, kwEnd
		}
	}

	// Известные города и государства.
	if !t.Chars.IsCapitalUpper && !t.Chars.IsAllUpper {
		return nil, -1
	}
	for _, p := range knownPlaces {
		end, ok := i, true
		for n, term := range p.terms {
			w := doc.At(i + n)
			glued := term == "-" || n > 0 && p.terms[n-1] == "-"
			if w == nil || glued && w.IsWhitespaceBefore() {
				ok = false
				break
			}
			if w.Term == term || len(p.terms) == 1 && w.IsLetters() && !w.Morph.IsAdjective() &&
				w.TermLength() >= 4 && w.Stem == p.stem {
				end = i + n
				continue
			}
			ok = false
			break
		}
		if !ok {
			continue
		}
		name := p.name
		if name == "" {
			name = p.terms[0]
		}
		e := &Entity{Kind: Geo, Names: []string{name}}
		if p.state {
			e.Types = []string{"государство"}
			e.IsState = true
		} else {
			e.Types = []string{"город"}
			e.IsCity = true
		}
		return e, end
	}
	return nil, -1
}

// isInitial - перед позицией i стоит инициал ("А.С. Пушкина"), а не сокращение типа пункта.
func isInitial(doc *Document, i int) bool {
	dot, letter := doc.At(i-1), doc.At(i-2)
	return dot.IsChar('.') && !dot.IsWhitespaceAfter() && letter.IsLetters() && letter.TermLength() == 1 && letter.Chars.IsAllUpper
}

// placeName - имя в верхнем регистре без лишних пробелов.
func placeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tryOrg(doc *Document, i int) (*Entity, int) {
	t := doc.At(i)
	if !t.IsLetters() {
		return nil, -1
	}
	kw, kwEnd := matchKeyword(doc, i, orgKeywords)
	if kw == nil {
		return nil, -1
	}
	// "СТ" - только заглавными и перед кавычками: иначе это строение или станция.
	if kw.typ == "ст" && (!t.Chars.IsAllUpper || !IsBracket(doc.At(kwEnd+1), true)) {
		return nil, -1
	}
	if len(kw.terms) == 1 && !t.Chars.IsAllUpper && !t.Chars.IsAllLower {
		return nil, -1
	}
	e := &Entity{Kind: Org, Types: []string{kw.typ}, IsGsk: gskTypes[kw.typ]}
	j := kwEnd + 1
	next := doc.At(j)
	switch {
	case next == nil:
		return nil, -1
	case IsBracket(next, true):
		closing := doc.BracketEnd(j, 8)
		if closing < 0 || closing == j+1 {
			return nil, -1
		}
		e.Names = []string{doc.Terms(j+1, closing-1)}
		if n := doc.At(j + 1); closing == j+2 && n.IsNumber() {
			e.Number = n.Number.Value
		}
		return e, closing
	case next.IsHyphen() || next.IsChar('№') || next.IsValue("N"):
		if n := doc.At(j + 1); n.IsNumber() {
			e.Number = n.Number.Value
			e.Names = []string{n.Number.Value}
			return e, j + 1
		}
	case next.IsNumber():
		e.Number = next.Number.Value
		e.Names = []string{next.Number.Value}
		return e, j
	default:
		if name, end := nameSpan(doc, j); end >= 0 && !next.IsNewlineBefore() {
			e.Names = []string{name}
			return e, end
		}
	}
	return nil, -1
}

func tryDate(doc *Document, i int) (*Entity, int) {
	t := doc.At(i)
	if !t.IsNumber() || t.Number.Adjective || t.Number.Int < 1 || t.Number.Int > 31 {
		return nil, -1
	}
	m := doc.At(i + 1)
	if !m.IsLetters() {
		return nil, -1
	}
	month, ok := months[m.Term]
	if !ok {
		return nil, -1
	}
	e := &Entity{Kind: Date, Day: t.Number.Int, Month: month, Names: []string{t.Number.Value + " " + m.Term}}
	end := i + 1
	if y := doc.At(i + 2); y.IsNumber() && y.Number.Int >= 1000 && y.Number.Int <= 2100 && y.Length() == 4 {
		e.Year = y.Number.Int
		end = i + 2
		if g := doc.At(end + 1); g.IsValueOf("Г", "ГОДА") {
			end++
			if doc.At(end + 1).IsChar('.') {
				end++
			}
		}
	}
	return e, end
}
