// Пакет ontology - словарь терминов с поиском самого длинного совпадения в тексте.
// Термин задается канонической формой, сокращениями и вариантами написания;
// к нему привязываются произвольные теги, которые интерпретирует вызывающий.
//
// Collection после построения только читается и может разделяться между горутинами.
package ontology

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/token"
)

// Lang - язык термина.
type Lang uint8

const (
	Ru Lang = 1 << iota
	Ua
)

// part - одно слово или знак шаблона.
type part struct {
	text     string
	stem     string
	optional bool // Точка в сокращении.
}

// pattern - одна форма термина (каноническая, сокращение, вариант или акроним).
type pattern struct {
	parts   []part
	abridge bool
}

// Termin - запись словаря.
type Termin struct {
	Canonic string
	Tag     any
	Tag2    any
	Gender  analyzer.Morph
	Acronym string
	Lang    Lang

	patterns []pattern
}

// New создает термин с канонической формой и тегом.
func New(canonic string, tag any) *Termin {
	t := &Termin{Canonic: strings.TrimSpace(canonic), Tag: tag, Lang: Ru}
	if t.Canonic != "" {
		t.patterns = append(t.patterns, pattern{parts: splitPattern(t.Canonic, false)})
	}
	return t
}

// WithTag2 задает вторичный тег.
func (t *Termin) WithTag2(tag2 any) *Termin {
	t.Tag2 = tag2
	return t
}

// WithCanonic заменяет каноническую форму, не трогая шаблоны: "ДОРОГА" находится
// по своему написанию, но в результат попадает как "АВТОДОРОГА".
func (t *Termin) WithCanonic(canonic string) *Termin {
	t.Canonic = strings.TrimSpace(canonic)
	return t
}

// WithGender задает грамматический род.
func (t *Termin) WithGender(g analyzer.Morph) *Termin {
	t.Gender = g
	return t
}

// WithLang задает язык.
func (t *Termin) WithLang(l Lang) *Termin {
	t.Lang = l
	return t
}

// WithAcronym задает акроним, он сопоставляется как сокращение.
func (t *Termin) WithAcronym(acr string) *Termin {
	t.Acronym = strings.ToUpper(acr)
	t.AddAbridge(acr)
	return t
}

// AddAbridge добавляет сокращение. Точки в сокращении при сравнении необязательны.
func (t *Termin) AddAbridge(abr string) *Termin {
	if p := splitPattern(abr, true); len(p) > 0 {
		t.patterns = append(t.patterns, pattern{parts: p, abridge: true})
	}
	return t
}

// AddVariant добавляет полный вариант написания.
func (t *Termin) AddVariant(v string) *Termin {
	if p := splitPattern(v, false); len(p) > 0 {
		t.patterns = append(t.patterns, pattern{parts: p})
	}
	return t
}

func (t *Termin) String() string { return t.Canonic }

// splitPattern разбивает строку на части так же, как токенизатор: слова, числа, знаки.
func splitPattern(s string, abridge bool) []part {
	s = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "Ё", "Е")
	var parts []part
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		begin := i
		switch {
		case unicode.IsLetter(r):
			for i < len(s) {
				r2, s2 := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsLetter(r2) {
					break
				}
				i += s2
			}
		case unicode.IsDigit(r):
			for i < len(s) {
				r2, s2 := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsDigit(r2) {
					break
				}
				i += s2
			}
		default:
			i += size
		}
		text := s[begin:i]
		p := part{text: text, optional: abridge && text == "."}
		if !abridge && utf8.RuneCountInString(text) >= 4 {
			p.stem = token.Stem(text)
		}
		parts = append(parts, p)
	}
	// Точка в конце шаблона всегда необязательна: она поглощается, только если есть в тексте.
	if n := len(parts); n > 1 && parts[n-1].text == "." {
		parts[n-1].optional = true
	}
	return parts
}
