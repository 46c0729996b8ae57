package token

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/steosofficial/steosaddress/analyzer"
)

// Окончания порядковых числительных, записанных цифрами ("5-й", "2-я", "10-го").
var numberSuffixes = map[string]analyzer.Morph{
	"Й": analyzer.Masculine | analyzer.Nominative, "ЫЙ": analyzer.Masculine | analyzer.Nominative,
	"ИЙ": analyzer.Masculine | analyzer.Nominative, "ОЙ": analyzer.Masculine | analyzer.Nominative | analyzer.Feminine | analyzer.Genitive,
	"Я": analyzer.Feminine | analyzer.Nominative, "АЯ": analyzer.Feminine | analyzer.Nominative, "ЯЯ": analyzer.Feminine | analyzer.Nominative,
	"Е": analyzer.Neuter | analyzer.Nominative, "ОЕ": analyzer.Neuter | analyzer.Nominative, "ЕЕ": analyzer.Neuter | analyzer.Nominative,
	"ГО": analyzer.Masculine | analyzer.Genitive, "ОГО": analyzer.Masculine | analyzer.Genitive, "ЕГО": analyzer.Masculine | analyzer.Genitive,
	"МУ": analyzer.Masculine | analyzer.Dative, "ОМУ": analyzer.Masculine | analyzer.Dative, "ЕМУ": analyzer.Masculine | analyzer.Dative,
	"Ю": analyzer.Feminine | analyzer.Accusative, "УЮ": analyzer.Feminine | analyzer.Accusative,
	"М": analyzer.Masculine | analyzer.Instrumental, "ЫМ": analyzer.Masculine | analyzer.Instrumental, "ИМ": analyzer.Masculine | analyzer.Instrumental,
	"Х": analyzer.Plural | analyzer.Genitive, "ЫХ": analyzer.Plural | analyzer.Genitive, "ИХ": analyzer.Plural | analyzer.Genitive,
}

// Tokenize разбивает текст на токены, размечает морфологию и выделяет
// географические объекты, организации и даты. morph == nil - анализатор без словаря.
func Tokenize(text string, morph analyzer.Morphology) *Document {
	if morph == nil {
		morph = analyzer.Default()
	}
	text = norm.NFC.String(text)
	doc := &Document{Text: text, Tokens: split(text)}
	mergeNumberAdjectives(doc)
	for i := range doc.Tokens {
		annotate(&doc.Tokens[i], morph)
	}
	finish(doc)
	recognizeEntities(doc, morph)
	finish(doc)
	return doc
}

// split - первичное разбиение на буквенные, цифровые и односимвольные токены.
func split(text string) []Token {
	var tokens []Token
	spaces, newlines := 0, 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\n':
			newlines++
			spaces++
			i += size
			continue
		case r == '\r':
			i += size
			continue
		case unicode.IsSpace(r) || r == '\u200b':
			spaces++
			i += size
			continue
		}

		begin := i
		kind := Word
		switch {
		case isLetter(r):
			i += size
			for i < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[i:])
				if isLetter(r2) || unicode.IsMark(r2) {
					i += s2
					continue
				}
				// Апостроф внутри слова (украинское "п'ять").
				if r2 == '\'' || r2 == '’' || r2 == 'ʼ' {
					if r3, _ := utf8.DecodeRuneInString(text[i+s2:]); isLetter(r3) {
						i += s2
						continue
					}
				}
				break
			}
		case unicode.IsDigit(r):
			kind = Number
			i += size
			for i < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[i:])
				if !unicode.IsDigit(r2) {
					break
				}
				i += s2
			}
		default:
			i += size
		}
		tokens = append(tokens, Token{
			Kind:              kind,
			Source:            text[begin:i],
			BeginChar:         begin,
			EndChar:           i,
			WhitespacesBefore: spaces,
			NewlinesBefore:    newlines,
		})
		spaces, newlines = 0, 0
	}
	return tokens
}

func isLetter(r rune) bool { return unicode.IsLetter(r) }

// mergeNumberAdjectives склеивает "5", "-", "й" в один числовой токен.
func mergeNumberAdjectives(doc *Document) {
	res := doc.Tokens[:0]
	for i := 0; i < len(doc.Tokens); i++ {
		t := doc.Tokens[i]
		if t.Kind == Number && i+2 < len(doc.Tokens) {
			h, s := &doc.Tokens[i+1], &doc.Tokens[i+2]
			if h.Source == "-" && h.WhitespacesBefore == 0 && s.WhitespacesBefore == 0 {
				suffix := normalize(s.Source)
				if _, ok := numberSuffixes[suffix]; ok && isLetter([]rune(s.Source)[0]) {
					t.Source = doc.Text[t.BeginChar:s.EndChar]
					t.EndChar = s.EndChar
					t.Number = &NumberValue{Adjective: true}
					res = append(res, t)
					i += 2
					continue
				}
			}
		}
		res = append(res, t)
	}
	doc.Tokens = res
}

// annotate заполняет термин, характеристики символов, морфологию и число.
func annotate(t *Token, morph analyzer.Morphology) {
	t.Term = normalize(t.Source)
	switch t.Kind {
	case Number:
		digits := t.Source
		if i := strings.IndexByte(digits, '-'); i > 0 {
			digits = digits[:i]
		}
		adj := t.Number != nil && t.Number.Adjective
		n, err := strconv.Atoi(digits)
		if err != nil {
			n = -1
		}
		t.Number = &NumberValue{Value: digits, Int: n, Spelling: Digit, Adjective: adj}
		t.Morph = analyzer.Numeral
		if adj {
			suffix := t.Term[strings.IndexByte(t.Term, '-')+1:]
			t.Morph |= analyzer.Adjective | numberSuffixes[suffix]
		}
	case Word:
		t.Chars = charsOf(t.Source)
		if !t.Chars.IsLetter {
			return
		}
		t.Stem = Stem(t.Term)
		t.Forms = morph.Analyze(t.Term)
		t.Morph = analyzer.Union(t.Forms)
		if t.Chars.IsLatin && t.Chars.IsAllUpper {
			if n, ok := ParseRoman(t.Term); ok {
				t.Number = &NumberValue{Value: t.Term, Int: n, Spelling: Roman}
			}
		}
	}
}

func charsOf(s string) Chars {
	var c Chars
	letters, upper, lower, cyr, lat := 0, 0, 0, 0, 0
	firstUpper := false
	for i, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
			if i == 0 {
				firstUpper = true
			}
		} else if unicode.IsLower(r) {
			lower++
		}
		if unicode.Is(unicode.Cyrillic, r) {
			cyr++
		} else if unicode.Is(unicode.Latin, r) {
			lat++
		}
	}
	if letters == 0 {
		return c
	}
	c.IsLetter = true
	c.IsCyrillic = cyr == letters
	c.IsLatin = lat == letters
	c.IsAllUpper = upper == letters
	c.IsAllLower = lower == letters
	c.IsCapitalUpper = firstUpper && upper == 1
	return c
}

// finish пересчитывает индексы и пробелы после токенов.
func finish(doc *Document) {
	n := len(doc.Tokens)
	for i := range doc.Tokens {
		t := &doc.Tokens[i]
		t.Index = i
		if i == 0 && t.NewlinesBefore == 0 {
			t.NewlinesBefore = 1
		}
		if i+1 < n {
			t.WhitespacesAfter = doc.Tokens[i+1].WhitespacesBefore
			t.NewlinesAfter = doc.Tokens[i+1].NewlinesBefore
		} else {
			t.WhitespacesAfter = 1
			t.NewlinesAfter = 1
		}
	}
}

// normalize - верхний регистр и Ё -> Е.
func normalize(s string) string {
	return strings.ReplaceAll(strings.ToUpper(s), "Ё", "Е")
}
