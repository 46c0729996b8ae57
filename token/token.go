// Пакет token - лексический слой распознавателя: арена токенов документа,
// минимальный токенизатор и предварительное выделение сущностей (география,
// организации, даты), на которые опирается разбор адресов.
package token

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"

	"github.com/steosofficial/steosaddress/analyzer"
)

// Kind - тип токена.
type Kind uint8

const (
	// Word - слово или одиночный знак препинания.
	Word Kind = iota
	// Number - последовательность цифр (возможно, с адъективным окончанием "5-й").
	Number
	// Referent - ранее выделенная сущность, занимающая несколько слов исходного текста.
	Referent
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Referent:
		return "referent"
	default:
		return "word"
	}
}

// Chars - характеристики символов токена.
type Chars struct {
	IsLetter       bool
	IsCyrillic     bool
	IsLatin        bool
	IsAllUpper     bool
	IsAllLower     bool
	IsCapitalUpper bool
}

// Spelling - способ записи числа.
type Spelling uint8

const (
	Digit Spelling = iota
	Roman
)

// NumberValue - числовое значение токена.
type NumberValue struct {
	Value     string   `json:"value"`
	Int       int      `json:"int"`
	Spelling  Spelling `json:"spelling"`
	Adjective bool     `json:"adjective"` // "5-й", "1-я"
}

// Token - элемент арены документа.
type Token struct {
	Index  int
	Kind   Kind
	Source string // Текст как в документе.
	Term   string // Верхний регистр, Ё заменена на Е.
	Stem   string // Основа по snowball, только для слов из букв.

	BeginChar, EndChar int // Байтовые смещения в Document.Text, EndChar не включается.

	WhitespacesBefore int
	WhitespacesAfter  int
	NewlinesBefore    int
	NewlinesAfter     int

	Chars  Chars
	Forms  []analyzer.WordForm
	Morph  analyzer.Morph
	Number *NumberValue
	Entity *Entity
}

// --- ПРОВЕРКИ ---

// IsChar - токен состоит из одного символа r.
func (t *Token) IsChar(r rune) bool {
	if t == nil || t.Kind != Word {
		return false
	}
	c, size := utf8.DecodeRuneInString(t.Source)
	return size == len(t.Source) && c == r
}

// IsCharOf - токен состоит из одного символа, входящего в chars.
func (t *Token) IsCharOf(chars string) bool {
	if t == nil || t.Kind != Word || t.Chars.IsLetter {
		return false
	}
	c, size := utf8.DecodeRuneInString(t.Source)
	return size == len(t.Source) && strings.ContainsRune(chars, c)
}

// IsHyphen - дефис или тире.
func (t *Token) IsHyphen() bool { return t.IsCharOf("-‐‑–—−") }

// IsComma - запятая.
func (t *Token) IsComma() bool { return t.IsChar(',') }

// IsValue - термин токена совпадает с term.
func (t *Token) IsValue(term string) bool {
	return t != nil && t.Kind != Referent && t.Term == term
}

// IsValueOf - термин совпадает с одним из terms.
func (t *Token) IsValueOf(terms ...string) bool {
	if t == nil || t.Kind == Referent {
		return false
	}
	for _, term := range terms {
		if t.Term == term {
			return true
		}
	}
	return false
}

// IsLetters - слово из букв.
func (t *Token) IsLetters() bool { return t != nil && t.Kind == Word && t.Chars.IsLetter }

// IsNumber - число, записанное цифрами.
func (t *Token) IsNumber() bool { return t != nil && t.Kind == Number }

// IsRoman - римское число.
func (t *Token) IsRoman() bool {
	return t != nil && t.Number != nil && t.Number.Spelling == Roman
}

// IntValue - целое значение числового токена.
func (t *Token) IntValue() (int, bool) {
	if t == nil || t.Number == nil {
		return 0, false
	}
	return t.Number.Int, true
}

// IsReferent - токен несет сущность указанного вида.
func (t *Token) IsReferent(kind EntityKind) bool {
	return t != nil && t.Kind == Referent && t.Entity != nil && t.Entity.Kind == kind
}

// IsNewlineBefore - токен начинает строку.
func (t *Token) IsNewlineBefore() bool { return t != nil && t.NewlinesBefore > 0 }

// IsNewlineAfter - токен заканчивает строку.
func (t *Token) IsNewlineAfter() bool { return t != nil && t.NewlinesAfter > 0 }

// IsWhitespaceBefore - перед токеном есть пробел.
func (t *Token) IsWhitespaceBefore() bool { return t != nil && t.WhitespacesBefore > 0 }

// IsWhitespaceAfter - после токена есть пробел.
func (t *Token) IsWhitespaceAfter() bool { return t != nil && t.WhitespacesAfter > 0 }

// Length - длина в символах исходного текста.
func (t *Token) Length() int {
	if t == nil {
		return 0
	}
	return utf8.RuneCountInString(t.Source)
}

// TermLength - длина термина в символах.
func (t *Token) TermLength() int {
	if t == nil {
		return 0
	}
	return utf8.RuneCountInString(t.Term)
}

// HasLemma - один из вариантов разбора имеет лемму lemma.
func (t *Token) HasLemma(lemma string) bool {
	if t == nil {
		return false
	}
	for _, f := range t.Forms {
		if f.Lemma == lemma {
			return true
		}
	}
	return false
}

// DictionaryClass - части речи словарных вариантов разбора.
func (t *Token) DictionaryClass() analyzer.Morph {
	if t == nil {
		return 0
	}
	return analyzer.DictionaryClass(t.Forms)
}

// IsAdjective - токен может быть прилагательным.
func (t *Token) IsAdjective() bool { return t != nil && t.Morph.IsAdjective() }

// IsAllLower - слово целиком в нижнем регистре.
func (t *Token) IsAllLower() bool { return t != nil && t.Chars.IsAllLower }

// IsPreposition - токен может быть предлогом.
func (t *Token) IsPreposition() bool { return t.IsLetters() && t.Morph.IsPreposition() }

// IsAnd - союз "и" (в том числе украинский "та").
func (t *Token) IsAnd() bool { return t.IsValueOf("И", "ТА", "Й") }

// Stem возвращает основу слова (нижний регистр) по алгоритму snowball для русского языка.
func Stem(word string) string {
	lower := strings.ToLower(word)
	s, err := snowball.Stem(lower, "russian", true)
	if err != nil {
		return lower
	}
	return s
}

// ParseRoman разбирает римское число (латиница, верхний регистр).
func ParseRoman(s string) (int, bool) {
	if s == "" || len(s) > 7 {
		return 0, false
	}
	values := map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100}
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := values[s[i]]
		if !ok {
			return 0, false
		}
		if i+1 < len(s) && values[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 || total > 100 {
		return 0, false
	}
	return total, true
}
