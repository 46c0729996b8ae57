// morph.go определяет компактное представление грамматических признаков.
// Строка тегов словаря ("Существительное,Мужской,Единственное число,Родительный")
// превращается в битовое множество Morph, с которым парсер адресов работает
// без строковых сравнений на горячем пути.
package analyzer

import (
	"strings"
)

// Morph - битовое множество граммем: часть речи, падеж, род и число.
type Morph uint32

// --- ЧАСТИ РЕЧИ ---
const (
	Noun Morph = 1 << iota
	Adjective
	Verb
	Adverb
	Preposition
	Conjunction
	Pronoun
	Numeral
	ProperName
	Particle
)

// --- ПАДЕЖИ ---
const (
	Nominative Morph = 1 << (iota + 12)
	Genitive
	Dative
	Accusative
	Instrumental
	Prepositional
)

// --- РОД И ЧИСЛО ---
const (
	Masculine Morph = 1 << (iota + 20)
	Feminine
	Neuter
	Singular
	Plural
)

// Маски категорий.
const (
	ClassMask  = Noun | Adjective | Verb | Adverb | Preposition | Conjunction | Pronoun | Numeral | ProperName | Particle
	CaseMask   = Nominative | Genitive | Dative | Accusative | Instrumental | Prepositional
	GenderMask = Masculine | Feminine | Neuter
	NumberMask = Singular | Plural
	// AllCases - все падежи сразу, для несклоняемых слов.
	AllCases = CaseMask
)

// Has сообщает, пересекается ли множество с маской.
func (m Morph) Has(mask Morph) bool { return m&mask != 0 }

// Class возвращает только биты части речи.
func (m Morph) Class() Morph { return m & ClassMask }

// Case возвращает только падежные биты.
func (m Morph) Case() Morph { return m & CaseMask }

// Gender возвращает только биты рода.
func (m Morph) Gender() Morph { return m & GenderMask }

// Number возвращает только биты числа.
func (m Morph) Number() Morph { return m & NumberMask }

func (m Morph) IsNoun() bool { return m.Has(Noun) }
func (m Morph) IsAdjective() bool { return m.Has(Adjective) }
func (m Morph) IsVerb() bool { return m.Has(Verb) }
func (m Morph) IsPreposition() bool { return m.Has(Preposition) }
func (m Morph) IsConjunction() bool { return m.Has(Conjunction) }
func (m Morph) IsProperName() bool { return m.Has(ProperName) }
func (m Morph) IsNominative() bool { return m.Has(Nominative) }
func (m Morph) IsGenitive() bool { return m.Has(Genitive) }
func (m Morph) IsPlural() bool { return m.Has(Plural) }
func (m Morph) IsUndefinedCase() bool { return m.Case() == 0 }

// Имена граммем в том виде, в котором они хранятся в пуле тегов словаря.
var grammemeBits = map[string]Morph{
	"Существительное": Noun,
	"Прилагательное":  Adjective,
	"Причастие":       Adjective,
	"Глагол":          Verb,
	"Деепричастие":    Verb,
	"Наречие":         Adverb,
	"Местоимение":     Pronoun,
	"Числительное":    Numeral,
	"Предлог":         Preposition,
	"Союз":            Conjunction,
	"Частица":         Particle,

	"Именительный": Nominative,
	"Родительный":  Genitive,
	"Дательный":    Dative,
	"Винительный":  Accusative,
	"Творительный": Instrumental,
	"Предложный":   Prepositional,
	"Местный":      Prepositional,
	"Партитивный":  Genitive,
	"Счетный":      Genitive,
	"Несклоняемый": AllCases,

	"Мужской": Masculine,
	"Женский": Feminine,
	"Средний": Neuter,
	"Общий":   Masculine | Feminine,

	"Единственное число":  Singular,
	"Множественное число": Plural,

	"Имя":      ProperName,
	"Фамилия":  ProperName,
	"Отчество": ProperName,
	"Топоним":  ProperName,
}

// ParseTags преобразует строку тегов словаря в Morph.
// Неизвестные граммемы пропускаются.
func ParseTags(tagString string) Morph {
	var m Morph
	for _, g := range strings.Split(tagString, ",") {
		m |= grammemeBits[strings.TrimSpace(g)]
	}
	return m
}

// String выдает граммемы в порядке "часть речи, род, число, падеж".
func (m Morph) String() string {
	var parts []string
	for _, g := range morphOrder {
		if m&g.bit == g.bit && g.bit != 0 {
			parts = append(parts, g.name)
		}
	}
	return strings.Join(parts, ",")
}

var morphOrder = []struct {
	bit  Morph
	name string
}{
	{Noun, "Существительное"}, {Adjective, "Прилагательное"}, {Verb, "Глагол"},
	{Adverb, "Наречие"}, {Preposition, "Предлог"}, {Conjunction, "Союз"},
	{Pronoun, "Местоимение"}, {Numeral, "Числительное"}, {ProperName, "Имя"},
	{Particle, "Частица"},
	{Masculine, "Мужской"}, {Feminine, "Женский"}, {Neuter, "Средний"},
	{Singular, "Единственное число"}, {Plural, "Множественное число"},
	{Nominative, "Именительный"}, {Genitive, "Родительный"}, {Dative, "Дательный"},
	{Accusative, "Винительный"}, {Instrumental, "Творительный"}, {Prepositional, "Предложный"},
}

// WordForm - один вариант разбора словоформы.
type WordForm struct {
	Lemma        string `json:"lemma"` // Нормальная форма, верхний регистр.
	Morph        Morph  `json:"morph"`
	InDictionary bool   `json:"in_dictionary"` // Слово найдено в словаре, а не угадано.
}

// Union объединяет признаки всех вариантов разбора.
func Union(forms []WordForm) Morph {
	var m Morph
	for _, f := range forms {
		m |= f.Morph
	}
	return m
}

// DictionaryClass - объединение частей речи только словарных вариантов.
func DictionaryClass(forms []WordForm) Morph {
	var m Morph
	for _, f := range forms {
		if f.InDictionary {
			m |= f.Morph.Class()
		}
	}
	return m
}
