package address

import (
	"strconv"
	"strings"

	"github.com/steosofficial/steosaddress/token"
)

// --- ЧИСЛА С ЕДИНИЦАМИ ИЗМЕРЕНИЯ ---

type unit uint8

const (
	unitNone unit = iota
	unitKm
	unitMeter
	unitOther
)

// measure - число с единицей измерения: "105 км", "300 м", "5 га".
type measure struct {
	value string
	real  float64
	unit  unit
	end   int
}

// unitAt распознает единицу измерения с позиции i. Возвращает единицу и последний
// индекс (с необязательной точкой).
func (c *Context) unitAt(i int) (unit, int) {
	t := c.tok(i)
	if !t.IsLetters() && !t.IsCharOf("%") {
		return unitNone, -1
	}
	end := i
	var u unit
	switch {
	case t.IsValueOf("КМ", "KM") || strings.HasPrefix(t.Term, "КИЛОМЕТР") || t.IsValue("КІЛОМЕТР"):
		u = unitKm
	case t.IsValueOf("М", "M") || strings.HasPrefix(t.Term, "МЕТР"):
		if t.IsValueOf("М", "M") && c.tok(i+1).IsChar('.') && c.tok(i+2).IsValueOf("КВ", "М") {
			return unitNone, -1
		}
		u = unitMeter
	case t.IsCharOf("%") || t.IsValueOf("ГА", "ГЕКТАР", "ГЕКТАРА", "ГЕКТАРОВ", "РУБ", "РУБЛЕЙ", "ШТ", "СОТ", "СОТОК", "ТЫС", "КГ", "Т", "ЛЕТ"):
		u = unitOther
	case t.IsValue("КВ") && c.tok(i+1).IsChar('.') && c.tok(i+2).IsValueOf("М", "КМ"):
		u, end = unitOther, i+2
	default:
		return unitNone, -1
	}
	if c.tok(end+1).IsChar('.') && !c.tok(end+1).IsWhitespaceBefore() {
		end++
	}
	return u, end
}

// numberWithUnit - число и единица измерения после него. Дробная часть через
// точку или запятую допускается: "1,5 км".
func (c *Context) numberWithUnit(i int) *measure {
	t := c.tok(i)
	if !t.IsNumber() || t.Number.Int < 0 {
		return nil
	}
	value := t.Number.Value
	j := i + 1
	if sep := c.tok(j); sep.IsCharOf(".,") && !sep.IsWhitespaceBefore() && !sep.IsWhitespaceAfter() {
		if frac := c.tok(j + 1); frac.IsNumber() {
			value += "." + frac.Number.Value
			j += 2
		}
	}
	if c.tok(j).IsNewlineBefore() {
		return nil
	}
	u, end := c.unitAt(j)
	if u == unitNone {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &measure{value: value, real: v, unit: u, end: end}
}

// metersFraction - метры как дробная часть километра: 300 -> ".3".
func metersFraction(meters float64) string {
	if meters <= 0 || meters >= 1000 {
		return ""
	}
	s := strconv.FormatFloat(meters/1000, 'f', -1, 64)
	if !strings.HasPrefix(s, "0.") {
		return ""
	}
	return s[1:]
}

// --- ГОДОВЩИНЫ ---

// anniversary - "50 лет", "60-летия", "XX лет". Возвращает число и конец или -1.
func (c *Context) anniversary(i int) (string, int) {
	t := c.tok(i)
	var value string
	switch {
	case t.IsNumber() && !t.Number.Adjective:
		value = t.Number.Value
	case t.IsRoman():
		value = strconv.Itoa(t.Number.Int)
	default:
		return "", -1
	}
	j := i + 1
	if c.tok(j).IsHyphen() {
		j++
	}
	w := c.tok(j)
	if !w.IsLetters() {
		return "", -1
	}
	switch {
	case w.IsValueOf("ЛЕТ", "ЛЕТИЯ", "ЛЕТИЕ", "РОКІВ", "РІЧЧЯ") || strings.HasPrefix(w.Term, "ГОДОВЩИН") || strings.HasPrefix(w.Term, "РІЧНИЦ"):
		if c.tok(j + 1).IsChar('.') {
			j++
		}
		return value, j
	case w.IsValue("ГОД"):
		n := c.tok(j + 1)
		if n.HasLemma("ОКТЯБРЬ") || n.HasLemma("ПОБЕДА") || n.IsValueOf("ОКТЯБРЯ", "ПОБЕДЫ") {
			return value, j
		}
	}
	return "", -1
}

// --- ПОРЯДКОВЫЕ ЧИСЛИТЕЛЬНЫЕ СЛОВАМИ ---

var ordinalWords = map[string]int{
	"ПЕРВЫЙ": 1, "ВТОРОЙ": 2, "ТРЕТИЙ": 3, "ЧЕТВЕРТЫЙ": 4, "ПЯТЫЙ": 5, "ШЕСТОЙ": 6, "СЕДЬМОЙ": 7,
	"ВОСЬМОЙ": 8, "ДЕВЯТЫЙ": 9, "ДЕСЯТЫЙ": 10, "ОДИННАДЦАТЫЙ": 11, "ДВЕНАДЦАТЫЙ": 12,
	"ТРИНАДЦАТЫЙ": 13, "ЧЕТЫРНАДЦАТЫЙ": 14, "ПЯТНАДЦАТЫЙ": 15, "ДВАДЦАТЫЙ": 20,
}

// ordinalWord - порядковое числительное словом ("Первая Линия", "Третий проезд").
func (c *Context) ordinalWord(t *token.Token) (int, bool) {
	if !t.IsLetters() || !t.Chars.IsCyrillic {
		return 0, false
	}
	if n, ok := ordinalWords[t.Term]; ok {
		return n, true
	}
	for _, f := range t.Forms {
		if n, ok := ordinalWords[f.Lemma]; ok && f.Morph.IsAdjective() {
			return n, true
		}
	}
	return 0, false
}

// cadasterNumber - кадастровый номер вида 50:20:0010203.
func (c *Context) cadasterNumber(i int) (string, int) {
	var sb strings.Builder
	parts := 0
	j := i
	for {
		t := c.tok(j)
		if !t.IsNumber() {
			return "", -1
		}
		sb.WriteString(t.Number.Value)
		parts++
		colon := c.tok(j + 1)
		if !colon.IsChar(':') || colon.IsWhitespaceBefore() || colon.IsWhitespaceAfter() {
			break
		}
		sb.WriteByte(':')
		j += 2
	}
	if parts < 3 {
		return "", -1
	}
	return sb.String(), j
}
