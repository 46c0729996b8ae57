// guesser.go - встроенный морфологический угадыватель.
// Работает без словаря: части речи и падежи определяются по окончанию слова,
// служебные слова берутся из закрытых списков, а небольшой лексикон частых
// нарицательных существительных сопоставляется по основе (snowball).
package analyzer

import (
	"strings"

	"github.com/kljensen/snowball"
)

// --- ЗАКРЫТЫЕ КЛАССЫ ---

var closedClasses = func() map[string]Morph {
	m := make(map[string]Morph)
	for _, w := range strings.Fields("В ВО НА ПО У К КО С СО ОТ ДО ЗА ИЗ О ОБ ОБО ПРИ ПРО ДЛЯ БЕЗ НАД НАДО ПОД ПОДО " +
		"ПЕРЕД ПРЕД МЕЖДУ ОКОЛО ВОЗЛЕ НАПРОТИВ ВБЛИЗИ ЧЕРЕЗ ВДОЛЬ ПОСЛЕ СРЕДИ ВНУТРИ ИЗ-ЗА ИЗ-ПОД") {
		m[w] = Preposition
	}
	for _, w := range strings.Fields("И ИЛИ А НО ЛИБО ЧТО ЧТОБЫ ЕСЛИ") {
		m[w] = Conjunction
	}
	for _, w := range strings.Fields("НЕ НИ ЖЕ ЛИ БЫ ВОТ ДАЖЕ ТОЛЬКО") {
		m[w] = Particle
	}
	for _, w := range strings.Fields("Я ТЫ ОН ОНА ОНО МЫ ВЫ ОНИ ЕГО ЕЕ ИХ ЕМУ ЕЙ ИМ ЭТО ЭТОТ ЭТА ЭТИ ТОТ ТА ТЕ ТО") {
		m[w] = Pronoun
	}
	return m
}()

// --- ЛЕКСИКОН ---

// Частые нарицательные существительные, которые встречаются в названиях улиц
// и которые окончание не позволяет отличить от фамилий и прилагательных.
var lexiconEntries = []struct {
	lemma  string
	gender Morph
}{
	{"ДОМ", Masculine}, {"МИР", Masculine}, {"ТРУД", Masculine}, {"СОВЕТ", Masculine},
	{"ПАРК", Masculine}, {"САД", Masculine}, {"ЛЕС", Masculine}, {"МОСТ", Masculine},
	{"ЗАВОД", Masculine}, {"ВОКЗАЛ", Masculine}, {"ГОРОД", Masculine}, {"КОСМОНАВТ", Masculine},
	{"СТРОИТЕЛЬ", Masculine}, {"ГЕРОЙ", Masculine}, {"ОКТЯБРЬ", Masculine}, {"МАЙ", Masculine},
	{"ПРОФСОЮЗ", Masculine}, {"КОМСОМОЛ", Masculine}, {"ПИОНЕР", Masculine}, {"ПАРТИЗАН", Masculine},
	{"ПОБЕДА", Feminine}, {"СВОБОДА", Feminine}, {"ДРУЖБА", Feminine}, {"ГОРА", Feminine},
	{"РЕКА", Feminine}, {"ПЛОЩАДЬ", Feminine}, {"РЕВОЛЮЦИЯ", Feminine}, {"КОММУНА", Feminine},
	{"ЗАРЯ", Feminine}, {"ЛИНИЯ", Feminine}, {"ДОРОГА", Feminine}, {"ШКОЛА", Feminine},
	{"БОЛЬНИЦА", Feminine}, {"ФАБРИКА", Feminine}, {"СТАНЦИЯ", Feminine}, {"РОЩА", Feminine},
	{"ПАМЯТЬ", Feminine}, {"ЧАСТЬ", Feminine},
	{"ПОЛЕ", Neuter}, {"ОЗЕРО", Neuter}, {"ШОССЕ", Neuter},
}

type lexeme struct {
	lemma  string
	gender Morph
}

var lexicon = func() map[string]lexeme {
	m := make(map[string]lexeme, len(lexiconEntries))
	for _, e := range lexiconEntries {
		m[stem(e.lemma)] = lexeme{lemma: e.lemma, gender: e.gender}
	}
	return m
}()

// stem возвращает основу слова по алгоритму Портера для русского языка (нижний регистр).
func stem(word string) string {
	lower := strings.ToLower(word)
	s, err := snowball.Stem(lower, "russian", true)
	if err != nil {
		return lower
	}
	return s
}

// --- ОКОНЧАНИЯ ---

type ending struct {
	suffix string
	morph  []Morph
}

// Окончания прилагательных, от длинных к коротким.
var adjectiveEndings = []ending{
	{"ЫМИ", []Morph{Instrumental | Plural}},
	{"ИМИ", []Morph{Instrumental | Plural}},
	{"ОГО", []Morph{Genitive | Masculine | Singular, Genitive | Neuter | Singular, Accusative | Masculine | Singular}},
	{"ЕГО", []Morph{Genitive | Masculine | Singular, Genitive | Neuter | Singular, Accusative | Masculine | Singular}},
	{"ОМУ", []Morph{Dative | Masculine | Singular, Dative | Neuter | Singular}},
	{"ЕМУ", []Morph{Dative | Masculine | Singular, Dative | Neuter | Singular}},
	{"ЫЙ", []Morph{Nominative | Masculine | Singular, Accusative | Masculine | Singular}},
	{"ИЙ", []Morph{Nominative | Masculine | Singular, Accusative | Masculine | Singular}},
	{"ОЙ", []Morph{Nominative | Masculine | Singular, Genitive | Feminine | Singular, Dative | Feminine | Singular, Instrumental | Feminine | Singular, Prepositional | Feminine | Singular}},
	{"АЯ", []Morph{Nominative | Feminine | Singular}},
	{"ЯЯ", []Morph{Nominative | Feminine | Singular}},
	{"ОЕ", []Morph{Nominative | Neuter | Singular, Accusative | Neuter | Singular}},
	{"ЕЕ", []Morph{Nominative | Neuter | Singular, Accusative | Neuter | Singular}},
	{"ЫЕ", []Morph{Nominative | Plural, Accusative | Plural}},
	{"ИЕ", []Morph{Nominative | Plural, Accusative | Plural}},
	{"ЫМ", []Morph{Instrumental | Masculine | Singular, Instrumental | Neuter | Singular, Dative | Plural}},
	{"ИМ", []Morph{Instrumental | Masculine | Singular, Instrumental | Neuter | Singular, Dative | Plural}},
	{"ОМ", []Morph{Prepositional | Masculine | Singular, Prepositional | Neuter | Singular}},
	{"ЕМ", []Morph{Prepositional | Masculine | Singular, Prepositional | Neuter | Singular}},
	{"УЮ", []Morph{Accusative | Feminine | Singular}},
	{"ЮЮ", []Morph{Accusative | Feminine | Singular}},
	{"ЕЙ", []Morph{Genitive | Feminine | Singular, Dative | Feminine | Singular, Instrumental | Feminine | Singular, Prepositional | Feminine | Singular}},
	{"ЫХ", []Morph{Genitive | Plural, Prepositional | Plural, Accusative | Plural}},
	{"ИХ", []Morph{Genitive | Plural, Prepositional | Plural, Accusative | Plural}},
}

// Окончания существительных, от длинных к коротким. Пустой суффикс - основа на согласный.
var nounEndings = []ending{
	{"АМИ", []Morph{Instrumental | Plural}},
	{"ЯМИ", []Morph{Instrumental | Plural}},
	{"ОЙ", []Morph{Genitive | Feminine | Singular, Instrumental | Feminine | Singular}},
	{"ЕЙ", []Morph{Instrumental | Feminine | Singular, Genitive | Plural}},
	{"ОЮ", []Morph{Instrumental | Feminine | Singular}},
	{"ОМ", []Morph{Instrumental | Masculine | Singular, Instrumental | Neuter | Singular}},
	{"ЕМ", []Morph{Instrumental | Masculine | Singular, Instrumental | Neuter | Singular}},
	{"ОВ", []Morph{Genitive | Plural, Nominative | Masculine | Singular}},
	{"ЕВ", []Morph{Genitive | Plural, Nominative | Masculine | Singular}},
	{"АХ", []Morph{Prepositional | Plural}},
	{"ЯХ", []Morph{Prepositional | Plural}},
	{"АМ", []Morph{Dative | Plural}},
	{"ЯМ", []Morph{Dative | Plural}},
	{"А", []Morph{Nominative | Feminine | Singular, Genitive | Masculine | Singular, Nominative | Plural}},
	{"Я", []Morph{Nominative | Feminine | Singular, Genitive | Masculine | Singular, Nominative | Plural}},
	{"Ь", []Morph{Nominative | Masculine | Singular, Nominative | Feminine | Singular, Accusative | Feminine | Singular}},
	{"О", []Morph{Nominative | Neuter | Singular, Accusative | Neuter | Singular}},
	{"Е", []Morph{Prepositional | Singular, Dative | Feminine | Singular, Nominative | Neuter | Singular}},
	{"Ы", []Morph{Genitive | Feminine | Singular, Nominative | Plural}},
	{"И", []Morph{Genitive | Feminine | Singular, Dative | Feminine | Singular, Prepositional | Feminine | Singular, Nominative | Plural}},
	{"У", []Morph{Dative | Masculine | Singular, Accusative | Feminine | Singular}},
	{"Ю", []Morph{Dative | Masculine | Singular, Accusative | Feminine | Singular}},
	{"Й", []Morph{Nominative | Masculine | Singular}},
	{"", []Morph{Nominative | Masculine | Singular, Accusative | Masculine | Singular}},
}

// Окончания глаголов и причастий, которые не должны приниматься за имена.
var verbEndings = []string{"ТЬСЯ", "ЕТСЯ", "ИТСЯ", "ЮТСЯ", "АЮТ", "ЯЮТ", "АЕТ", "ЯЕТ", "УЕТ",
	"АТЬ", "ЯТЬ", "ЕТЬ", "ИТЬ", "ЫТЬ", "ОТЬ"}

// Суффиксы фамилий: основа + одно из окончаний ниже.
var surnameSuffixes = []string{"ОВ", "ЕВ", "ИН", "ЫН"}

var surnameEndings = []ending{
	{"", []Morph{Nominative | Masculine | Singular}},
	{"А", []Morph{Genitive | Masculine | Singular, Nominative | Feminine | Singular}},
	{"У", []Morph{Dative | Masculine | Singular}},
	{"ЫМ", []Morph{Instrumental | Masculine | Singular}},
	{"ОЙ", []Morph{Genitive | Feminine | Singular}},
	{"ЫХ", []Morph{Genitive | Plural}},
}

const vowels = "АЕЁИОУЫЭЮЯ"

// --- УГАДЫВАНИЕ ---

// guess разбирает слово в верхнем регистре без словаря.
func guess(term string) []WordForm {
	runes := []rune(term)
	if len(runes) == 0 {
		return nil
	}
	if m, ok := closedClasses[term]; ok {
		return []WordForm{{Lemma: term, Morph: m, InDictionary: true}}
	}
	if !isCyrillic(runes) {
		return []WordForm{{Lemma: term, Morph: Noun | AllCases}}
	}
	for _, v := range verbEndings {
		if strings.HasSuffix(term, v) && len(runes)-len([]rune(v)) >= 2 {
			return []WordForm{{Lemma: term, Morph: Verb}}
		}
	}

	var res []WordForm
	if lex, ok := lexicon[stem(term)]; ok {
		for _, m := range nounCases(term) {
			if m.Gender() != 0 && m.Gender()&lex.gender == 0 && !m.IsPlural() {
				continue
			}
			res = append(res, WordForm{Lemma: lex.lemma, Morph: Noun | (m &^ GenderMask) | lex.gender, InDictionary: true})
		}
		if len(res) > 0 {
			return res
		}
	}
	res = append(res, guessSurname(term)...)
	if !isVerbalNoun(runes) {
		res = append(res, guessAdjective(term)...)
	}
	if len(res) == 0 {
		for _, m := range nounCases(term) {
			res = append(res, WordForm{Lemma: nounLemma(term, m), Morph: Noun | m})
		}
	}
	return res
}

func nounCases(term string) []Morph {
	for _, e := range nounEndings {
		if e.suffix == "" {
			if strings.ContainsRune(vowels, lastRune(term)) {
				continue
			}
			return e.morph
		}
		if strings.HasSuffix(term, e.suffix) {
			return e.morph
		}
	}
	return []Morph{AllCases}
}

// nounLemma - грубое восстановление начальной формы существительного.
func nounLemma(term string, m Morph) string {
	if m.IsNominative() {
		return term
	}
	for _, suf := range []string{"АМИ", "ЯМИ", "ОЙ", "ОЮ", "ОМ", "ЕМ", "АХ", "ЯХ", "АМ", "ЯМ", "Ы", "Е", "У", "А"} {
		if strings.HasSuffix(term, suf) && len([]rune(term))-len([]rune(suf)) >= 2 {
			base := strings.TrimSuffix(term, suf)
			if m.Gender() == Feminine || strings.HasPrefix(suf, "О") && m.Has(Feminine) {
				return base + "А"
			}
			return base
		}
	}
	return term
}

func guessSurname(term string) []WordForm {
	var res []WordForm
	for _, e := range surnameEndings {
		if !strings.HasSuffix(term, e.suffix) {
			continue
		}
		base := strings.TrimSuffix(term, e.suffix)
		for _, s := range surnameSuffixes {
			if strings.HasSuffix(base, s) && len([]rune(base)) >= 4 {
				for _, m := range e.morph {
					res = append(res, WordForm{Lemma: base, Morph: Noun | ProperName | m})
				}
				return res
			}
		}
	}
	return nil
}

func guessAdjective(term string) []WordForm {
	for _, e := range adjectiveEndings {
		if !strings.HasSuffix(term, e.suffix) {
			continue
		}
		base := strings.TrimSuffix(term, e.suffix)
		if len([]rune(base)) < 2 {
			return nil
		}
		switch e.suffix {
		case "ОМ", "ЕМ":
			// Предложный падеж прилагательного только после типичных суффиксов.
			if !hasAdjectiveSuffix(base) {
				return nil
			}
		case "ЕЙ":
			last := lastRune(base)
			if last != 'Н' && !strings.ContainsRune("ЖШЩЧ", last) {
				return nil
			}
		}
		if strings.ContainsRune(vowels, lastRune(base)) {
			return nil
		}
		lemmaSuffix := e.suffix
		if lemmaSuffix == "ОЙ" {
			lemmaSuffix = "АЯ"
		}
		lemma := base + adjectiveFormEnding(base, lemmaSuffix, Masculine, false)
		res := make([]WordForm, 0, len(e.morph))
		for _, m := range e.morph {
			res = append(res, WordForm{Lemma: lemma, Morph: Adjective | m})
		}
		return res
	}
	return nil
}

// isVerbalNoun отделяет ЗДАНИЕ, СТРОЕНИЕ, ВЛАДЕНИЙ от прилагательных на -ИЕ/-ИЙ.
func isVerbalNoun(runes []rune) bool {
	n := len(runes)
	if n < 5 || runes[n-2] != 'И' || (runes[n-1] != 'Е' && runes[n-1] != 'Й') {
		return false
	}
	if runes[n-3] != 'Н' && runes[n-3] != 'Т' {
		return false
	}
	return strings.ContainsRune(vowels, runes[n-4])
}

func hasAdjectiveSuffix(base string) bool {
	return strings.HasSuffix(base, "СК") || strings.HasSuffix(base, "ЦК") ||
		strings.HasSuffix(base, "Н") || strings.HasSuffix(base, "В")
}

// --- ПРОЕКЦИЯ В ИМЕНИТЕЛЬНЫЙ ПАДЕЖ ---

// adjectiveFormEnding выбирает окончание именительного падежа по типу основы.
// suffix - окончание, с которым слово пришло (по нему видна мягкость основы).
func adjectiveFormEnding(base, suffix string, gender Morph, plural bool) string {
	last := lastRune(base)
	velar := strings.ContainsRune("КГХ", last)
	sibilant := strings.ContainsRune("ЖШЩЧ", last)
	soft := !velar && !sibilant && suffix != "" && strings.ContainsRune("ИЕЯЮ", []rune(suffix)[0])
	if suffix == "ОЙ" && gender == Masculine && !plural {
		// Ударное окончание (ТВЕРСКОЙ, ЗОЛОТОЙ) совпадает с косвенным женским.
		return "ОЙ"
	}
	switch {
	case plural:
		if soft || velar || sibilant {
			return "ИЕ"
		}
		return "ЫЕ"
	case gender == Feminine:
		if soft {
			return "ЯЯ"
		}
		return "АЯ"
	case gender == Neuter:
		if soft || sibilant {
			return "ЕЕ"
		}
		return "ОЕ"
	default:
		if soft || velar || sibilant {
			return "ИЙ"
		}
		return "ЫЙ"
	}
}

// nominativeGuess проецирует прилагательное в именительный падеж заданного рода и числа.
// Возвращает пустую строку, если слово не похоже на прилагательное.
func nominativeGuess(term string, gender Morph, plural bool) string {
	for _, e := range adjectiveEndings {
		if !strings.HasSuffix(term, e.suffix) {
			continue
		}
		base := strings.TrimSuffix(term, e.suffix)
		if len([]rune(base)) < 2 || strings.ContainsRune(vowels, lastRune(base)) {
			return ""
		}
		suffix := e.suffix
		if suffix == "ОЙ" && !(gender == Masculine && !plural) {
			suffix = "АЯ"
		}
		return base + adjectiveFormEnding(base, suffix, gender, plural)
	}
	return ""
}

// --- ВСПОМОГАТЕЛЬНЫЕ ---

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

func isCyrillic(runes []rune) bool {
	for _, r := range runes {
		if (r < 'А' || r > 'я') && r != 'Ё' && r != 'ё' && r != '-' {
			return false
		}
	}
	return true
}
