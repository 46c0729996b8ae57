package address

import (
	"math"
	"strconv"
	"strings"

	"github.com/steosofficial/steosaddress/token"
)

// --- ПРОВЕРКИ КОНТЕКСТА ---

// skipConnectors пропускает до четырех запятых, точек и предлогов (и дефисов,
// если hyphens) начиная с позиции i.
func (c *Context) skipConnectors(i int, hyphens bool) int {
	for n := 0; n < 4; n++ {
		t := c.tok(i)
		if t == nil {
			break
		}
		if t.IsCharOf(",.") || t.IsPreposition() || hyphens && t.IsHyphen() {
			i++
			continue
		}
		break
	}
	return i
}

// checkHouseAfter - с позиции i (через знаки препинания и предлоги) идет номер дома
// или помещения. leek допускает голое число, pureHouse требует именно дом или участок.
func (c *Context) checkHouseAfter(i int, leek, pureHouse bool) bool {
	j := c.skipConnectors(i, false)
	t := c.tok(j)
	if t == nil || t.IsNewlineBefore() {
		return false
	}
	ait := c.ClassifyBare(j, nil)
	if ait == nil || ait.Value == "" || ait.Value == "0" {
		return false
	}
	if pureHouse {
		return ait.is(ItemHouse, ItemPlot)
	}
	if ait.is(ItemHouse, ItemFloor, ItemOffice, ItemFlat, ItemPlot, ItemRoom, ItemCorpus) {
		// "А-12" - номер трассы или серия, а не дом.
		if t.IsLetters() && t.Chars.IsAllUpper && c.tok(j+1).IsHyphen() && c.tok(j+2).IsNumber() {
			return false
		}
		if t.IsLetters() && ait.End == j+1 && c.tok(j+1).IsHyphen() {
			return false
		}
		return true
	}
	if ait.Kind != ItemNumber {
		return false
	}
	if leek {
		return true
	}
	k := j + 1
	for c.tok(k).IsCharOf(".,") {
		k++
	}
	next := c.ClassifyBare(k, nil)
	return next.is(ItemBuilding, ItemCorpus, ItemFlat, ItemFloor, ItemOffice, ItemRoom)
}

// checkStreetAfter - с позиции i начинается улица. checkMore дополнительно
// проверяет, что разбор с i не уступает разбору со следующего токена.
func (c *Context) checkStreetAfter(i int, checkMore bool) bool {
	j := c.skipConnectors(i, true)
	t := c.tok(j)
	if t == nil {
		return false
	}
	ait := c.ClassifyItem(j, nil)
	if !ait.is(ItemStreet) {
		return false
	}
	if ait.Street != nil && ait.Street.Org != nil && !ait.Street.Org.IsGsk {
		return false
	}
	if !checkMore || c.tok(j+1) == nil || ait.End <= j {
		return true
	}
	if c.ClassifyItem(j+1, nil) == nil {
		return true
	}
	l1, l2 := c.BuildItems(j), c.BuildItems(j+1)
	if len(l1) > 0 && len(l2) > 0 && l2[len(l2)-1].End > l1[len(l1)-1].End {
		return false
	}
	return true
}

// checkKmAfter - с позиции i указан километр: "105 км", "км 105".
func (c *Context) checkKmAfter(i int) bool {
	j := c.skipConnectors(i, false)
	t := c.tok(j)
	if t == nil {
		return false
	}
	if km := c.ClassifyBare(j, nil); km.is(ItemKilometer) {
		return true
	}
	if !t.IsNumber() {
		return false
	}
	return c.tok(j+1).IsValueOf("КИЛОМЕТР", "МЕТР", "КМ")
}

// checkKmBefore - не дальше четырех токенов назад стоит "км" или "метр".
func (c *Context) checkKmBefore(i int) bool {
	for j, n := i, 0; j >= 0 && n < 4; j, n = j-1, n+1 {
		t := c.tok(j)
		if t.IsValueOf("КМ", "КИЛОМЕТР", "МЕТР") {
			return true
		}
	}
	return false
}

// --- БУКВЫ И НОМЕРА ---

// letterChar - буква литеры дома: латинские двойники заменяются кириллицей,
// остальные буквы не допускаются (0).
func letterChar(r rune) rune {
	switch r {
	case 'A', 'А':
		return 'А'
	case 'Б', 'Г':
		return r
	case 'B', 'В':
		return 'В'
	case 'C', 'С':
		return 'С'
	case 'D', 'Д':
		return 'Д'
	case 'E', 'Е':
		return 'Е'
	case 'H', 'Н':
		return 'Н'
	case 'K', 'К':
		return 'К'
	}
	return 0
}

// houseLetter - литера из одной-двух букв ("А", "Б", "AB" -> "АВ") или пустая строка.
func houseLetter(t *token.Token) string {
	if !t.IsLetters() {
		return ""
	}
	runes := []rune(t.Term)
	switch len(runes) {
	case 1:
		if r := letterChar(runes[0]); r != 0 {
			return string(r)
		}
		if t.Chars.IsCyrillic {
			return t.Term
		}
	case 2:
		if t.Chars.IsCyrillic {
			return t.Term
		}
		r1, r2 := letterChar(runes[0]), letterChar(runes[1])
		if r1 != 0 && r2 != 0 {
			return string([]rune{r1, r2})
		}
	}
	return ""
}

// corrNumber исправляет номер, набранный буквами вместо цифр: "ЗО" -> "30", "ЗА" -> "3А".
func corrNumber(s string) string {
	runes := []rune(s)
	if len(runes) == 0 || runes[0] != 'З' {
		return ""
	}
	var b strings.Builder
	b.WriteByte('3')
	i := 1
	for ; i < len(runes); i++ {
		switch runes[i] {
		case 'З':
			b.WriteByte('3')
			continue
		case 'О':
			b.WriteByte('0')
			continue
		}
		break
	}
	if i == len(runes) {
		return b.String()
	}
	if i+1 < len(runes) {
		return ""
	}
	switch runes[i] {
	case 'А', 'Б', 'В':
		b.WriteRune(runes[i])
		return b.String()
	}
	return ""
}

// kmWithMeters - километр с метрами через плюс: 105 и 300 -> "105.3".
func kmWithMeters(km, meters *token.Token) string {
	if km.Number.Int < 0 || meters.Number.Int < 0 {
		return km.Number.Value + "+" + meters.Number.Value
	}
	v := float64(km.Number.Int) + float64(meters.Number.Int)/1000
	v = math.Round(v*1000) / 1000
	return strconv.FormatFloat(v, 'f', -1, 64)
}
