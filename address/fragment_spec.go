package address

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/token"
)

// --- ОСОБЫЕ СЛУЧАИ ---

var monthGenitive = [...]string{"", "ЯНВАРЯ", "ФЕВРАЛЯ", "МАРТА", "АПРЕЛЯ", "МАЯ", "ИЮНЯ", "ИЮЛЯ", "АВГУСТА",
	"СЕНТЯБРЯ", "ОКТЯБРЯ", "НОЯБРЯ", "ДЕКАБРЯ"}

// roadNames - собственные имена федеральных трасс: "М-4 Дон", "Р-21 Кола".
var roadNames = map[string]bool{
	"ДОН": true, "КАВКАЗ": true, "УРАЛ": true, "БЕЛАРУСЬ": true, "УКРАИНА": true, "КРЫМ": true, "ВОЛГА": true,
	"ХОЛМОГОРЫ": true, "БАЛТИЯ": true, "РОССИЯ": true, "НЕВА": true, "КОЛА": true, "КАСПИЙ": true,
}

// classifySpecial разбирает то, что не сводится к одному фрагменту: даты ("8 Марта",
// "1905 года"), названия после годовщины и номера трасс ("М-4", "Москва - Рязань").
// Результат - один или два фрагмента; nil - особого случая нет.
func (c *Context) classifySpecial(i int, prev *Fragment) []*Fragment {
	t := c.tok(i)
	if t == nil {
		return nil
	}
	if t.IsReferent(token.Date) {
		return c.dateFragments(i)
	}
	if prev != nil && prev.Kind == FragAge {
		switch {
		case t.IsReferent(token.Geo):
			return []*Fragment{{Kind: FragName, Begin: i, End: i, Value: c.textValue(i, i),
				AltValue: strings.ToUpper(t.Entity.Name())}}
		case isWordOf(t, "ГОРОД", "МІСТО"):
			return []*Fragment{{Kind: FragName, Begin: i, End: i, Value: "ГОРОДА"}}
		}
		return nil
	}
	canBeRoad := prev.isRoad() && c.tok(i).WhitespacesBefore < 3
	if !canBeRoad && prev == nil && c.tok(i+1).IsHyphen() && c.addressMode() {
		for j := i + 2; j < i+7; j++ {
			w := c.tok(j)
			if w == nil || w.IsNumber() || w.IsComma() {
				break
			}
			if m := c.matchStreet(j); m != nil && isRoadCanonic(m.Termin.Canonic) {
				canBeRoad = true
				break
			}
		}
	}
	if !canBeRoad {
		return nil
	}
	if f := c.roadBetweenCities(i); f != nil {
		return []*Fragment{f}
	}
	if f := c.roadNumberName(i); f != nil {
		return []*Fragment{f}
	}
	return nil
}

// dateFragments - дата внутри названия: "ул. 8 Марта" -> номер 8 и "МАРТА".
func (c *Context) dateFragments(i int) []*Fragment {
	t := c.tok(i)
	e := t.Entity
	first, _ := utf8.DecodeRuneInString(t.Source)
	if !unicode.IsDigit(first) {
		return nil
	}
	switch {
	case e.Day > 0 && e.Month > 0 && e.Month < len(monthGenitive) && e.Year == 0:
		return []*Fragment{
			{Kind: FragNumber, Begin: i, End: i, Value: strconv.Itoa(e.Day), IsNumeric: true, NumberHasPrefix: true},
			{Kind: FragStdName, Begin: i, End: i, Value: monthGenitive[e.Month]},
		}
	case e.Year > 0 && e.Month == 0:
		return []*Fragment{
			{Kind: FragNumber, Begin: i, End: i, Value: strconv.Itoa(e.Year), IsNumeric: true},
			{Kind: FragStdName, Begin: i, End: i, Value: "ГОДА"},
		}
	}
	return nil
}

// roadBetweenCities - дорога по конечным пунктам: "Москва - Рязань", "Тюмень-Ханты-Мансийск".
func (c *Context) roadBetweenCities(i int) *Fragment {
	var names []string
	end := -1
	br := false
	j := i
	if c.tok(j).IsChar('(') {
		br = true
		j++
	}
	for len(names) < 4 {
		w := c.tok(j)
		var name string
		switch {
		case w.IsReferent(token.Geo) && w.Entity.IsCity:
			name = strings.ToUpper(w.Entity.Name())
		case w.IsLetters() && w.Chars.IsCapitalUpper && w.Length() > 2 && !c.isStreetNounAt(j):
			name = w.Term
		}
		if name == "" {
			break
		}
		names = append(names, name)
		end = j
		if !c.tok(j + 1).IsHyphen() {
			break
		}
		j += 2
	}
	if len(names) == 0 {
		return nil
	}
	if br {
		if !c.tok(end + 1).IsChar(')') {
			return nil
		}
		end++
	}
	ok := len(names) > 1 || c.geoBefore(i)
	if !ok {
		if n := c.kilometerFragment(end+1, false); n != nil && n.IsNumberKm {
			ok = true
		} else if ms := c.numberWithUnit(end + 1); ms != nil && ms.unit == unitKm {
			ok = true
		}
	}
	if !ok {
		return nil
	}
	res := &Fragment{Kind: FragName, Begin: i, End: end, Value: strings.Join(names, " - "), IsRoadName: true,
		IsInBrackets: br}
	if len(names) == 2 {
		res.AltValue = names[1] + " - " + names[0]
	}
	return res
}

// roadNumberName - номер трассы: "М-4", "Р21", "А-108 (Московское большое кольцо)", "М-4 Дон".
// Значение пишется слитно: "М4".
func (c *Context) roadNumberName(i int) *Fragment {
	v, end := c.roadNumAt(i)
	if end < 0 {
		return nil
	}
	res := &Fragment{Kind: FragName, Begin: i, End: end, Value: v, IsRoadName: true}
	if c.tok(end+1).IsHyphen() && c.tok(end+2).IsNumber() && !c.tok(end+1).IsWhitespaceBefore() {
		res.End = end + 2
	}
	next := c.tok(res.End + 1)
	switch {
	case next.IsChar('('):
		if cl := c.Doc.BracketEnd(res.End+1, 10); cl > 0 {
			if s := c.Doc.Span(res.End+2, cl-1); utf8.RuneCountInString(s) < 15 && s != "" {
				res.AltValue = c.textValue(res.End+2, cl-1)
				res.End = cl
			}
		}
	case next.IsLetters() && roadNames[next.Term]:
		res.AltValue = next.Term
		res.End++
	default:
		if n := c.roadNumberNameAlt(res.End + 1); n != nil {
			res.AltValue = n.Value
			res.AltValue2 = n.AltValue
			res.End = n.End
		}
	}
	return res
}

// roadNumberNameAlt - второе имя трассы после номера: "М-4 Москва - Воронеж".
func (c *Context) roadNumberNameAlt(i int) *Fragment {
	if f := c.roadBetweenCities(i); f != nil && strings.Contains(f.Value, " - ") {
		return f
	}
	return nil
}

// roadNumAt - обозначение трассы: буква (кроме "К" и "Д"), необязательный дефис и номер.
func (c *Context) roadNumAt(i int) (string, int) {
	t := c.tok(i)
	if !t.IsLetters() || t.Length() != 1 || !t.Chars.IsAllUpper || t.IsValueOf("К", "Д", "K") {
		return "", -1
	}
	letter := correctWord(t.Term)
	if letter == "" {
		return "", -1
	}
	j := i + 1
	if c.tok(j).IsHyphen() {
		j++
	}
	n := c.tok(j)
	if !n.IsNumber() || n.IsWhitespaceBefore() && j == i+1 && n.WhitespacesBefore > 1 {
		return "", -1
	}
	return letter + n.Number.Value, j
}
