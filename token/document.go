package token

import "strings"

// Document - текст и арена его токенов. Позиции токенов - индексы в Tokens,
// диапазоны задаются парами (begin, end) включительно.
type Document struct {
	Text   string
	Tokens []Token
}

// Len - число токенов.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Tokens)
}

// At возвращает токен по индексу или nil за пределами арены.
func (d *Document) At(i int) *Token {
	if d == nil || i < 0 || i >= len(d.Tokens) {
		return nil
	}
	return &d.Tokens[i]
}

// Span - исходный текст диапазона токенов.
func (d *Document) Span(begin, end int) string {
	b, e := d.At(begin), d.At(end)
	if b == nil || e == nil || e.EndChar < b.BeginChar {
		return ""
	}
	return d.Text[b.BeginChar:e.EndChar]
}

// Terms - термины диапазона через пробел (знаки препинания приклеиваются).
func (d *Document) Terms(begin, end int) string {
	var sb strings.Builder
	for i := begin; i <= end; i++ {
		t := d.At(i)
		if t == nil {
			break
		}
		if sb.Len() > 0 && t.IsWhitespaceBefore() {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Term)
	}
	return sb.String()
}

// HasNewlineInside - есть ли перевод строки между begin и end.
func (d *Document) HasNewlineInside(begin, end int) bool {
	for i := begin + 1; i <= end; i++ {
		t := d.At(i)
		if t == nil {
			return false
		}
		if t.IsNewlineBefore() {
			return true
		}
	}
	return false
}

// NextSkipping возвращает индекс первого токена после i, не являющегося ни одним из chars.
func (d *Document) NextSkipping(i int, chars string) int {
	j := i + 1
	for t := d.At(j); t != nil && t.IsCharOf(chars); t = d.At(j) {
		j++
	}
	return j
}

// BracketEnd ищет закрывающую скобку для открывающей в позиции i, не дальше maxTokens.
// Возвращает -1, если скобка не закрыта.
func (d *Document) BracketEnd(i, maxTokens int) int {
	open := d.At(i)
	if open == nil {
		return -1
	}
	var closing rune
	switch {
	case open.IsChar('('):
		closing = ')'
	case open.IsChar('['):
		closing = ']'
	case open.IsChar('{'):
		closing = '}'
	case open.IsChar('«'):
		closing = '»'
	case open.IsChar('"'):
		closing = '"'
	case open.IsChar('“'):
		closing = '”'
	default:
		return -1
	}
	for j := i + 1; j <= i+maxTokens; j++ {
		t := d.At(j)
		if t == nil {
			return -1
		}
		if j > i+1 && t.IsNewlineBefore() && t.NewlinesBefore > 1 {
			return -1
		}
		if t.IsChar(closing) {
			return j
		}
	}
	return -1
}

// IsBracket - открывающая или закрывающая скобка (или кавычка).
func IsBracket(t *Token, open bool) bool {
	if open {
		return t.IsCharOf("([{«\"“")
	}
	return t.IsCharOf(")]}»\"”")
}
