package address

import (
	"strings"
	"unicode/utf8"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/ontology"
	"github.com/steosofficial/steosaddress/token"
)

// Fragment - классифицированная часть названия улицы. Возвращенный разборщиком
// фрагмент не меняется: объединение и расширение создают копию.
type Fragment struct {
	Kind FragmentKind `json:"kind"`
	// AltKind - второе прочтение ("Маршала" перед типом улицы читается как имя).
	AltKind FragmentKind `json:"alt_kind,omitempty"`
	// Begin, End - индексы токенов документа, включительно.
	Begin int `json:"begin"`
	End   int `json:"end"`

	Value     string `json:"value,omitempty"`
	AltValue  string `json:"alt_value,omitempty"`
	AltValue2 string `json:"alt_value2,omitempty"`
	Misc      string `json:"misc,omitempty"`

	Termin    *ontology.Termin `json:"-"`
	AltTermin *ontology.Termin `json:"-"`
	Morph     analyzer.Morph   `json:"-"`

	// Spelling - запись номера (цифры или римское число), если фрагмент числовой.
	Spelling  token.Spelling `json:"-"`
	IsNumeric bool           `json:"-"`

	NumberHasPrefix bool `json:"number_has_prefix,omitempty"`
	IsNumberKm      bool `json:"is_number_km,omitempty"`
	IsAbridge       bool `json:"is_abridge,omitempty"`
	IsInDictionary  bool `json:"is_in_dictionary,omitempty"`
	IsInBrackets    bool `json:"is_in_brackets,omitempty"`
	HasStdSuffix    bool `json:"-"`
	// NounDoubtCoef - насколько часто слово типа улицы встречается вне адресов.
	NounDoubtCoef int  `json:"noun_doubt_coef,omitempty"`
	NounCanBeName bool `json:"-"`
	IsRoadName    bool `json:"is_road_name,omitempty"`
	IsRailway     bool `json:"is_railway,omitempty"`

	StdAdjVersion *Fragment     `json:"-"`
	Next          *Fragment     `json:"-"`
	Territory     *Item         `json:"-"`
	Org           *token.Entity `json:"-"`
	City          *token.Entity `json:"-"`
}

// clone - неглубокая копия; вложенные фрагменты копируются.
func (f *Fragment) clone() *Fragment {
	if f == nil {
		return nil
	}
	res := *f
	res.StdAdjVersion = f.StdAdjVersion.clone()
	res.Next = f.Next.clone()
	res.Territory = f.Territory.clone()
	return &res
}

// withSpan - копия с другими границами.
func (f *Fragment) withSpan(begin, end int) *Fragment {
	res := f.clone()
	res.Begin, res.End = begin, end
	return res
}

func (f *Fragment) String() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(f.Kind.String())
	if f.Value != "" {
		b.WriteByte(' ')
		b.WriteString(f.Value)
		if f.AltValue != "" {
			b.WriteByte('/')
			b.WriteString(f.AltValue)
		}
		if f.IsNumberKm {
			b.WriteString("км")
		}
	}
	if f.Misc != "" {
		b.WriteString(" <" + f.Misc + ">")
	}
	if f.Termin != nil {
		b.WriteString(" " + f.Termin.Canonic)
		if f.AltTermin != nil {
			b.WriteString("/" + f.AltTermin.Canonic)
		}
	}
	if f.IsAbridge {
		b.WriteString(" (?)")
	}
	if f.Next != nil {
		b.WriteString(" + " + f.Next.String())
	}
	return b.String()
}

// canonic - каноническая форма термина или пустая строка.
func (f *Fragment) canonic() string {
	if f == nil || f.Termin == nil {
		return ""
	}
	return f.Termin.Canonic
}

func (f *Fragment) isNoun(canonic ...string) bool {
	if f == nil || f.Kind != FragNoun {
		return false
	}
	if len(canonic) == 0 {
		return true
	}
	c := f.canonic()
	for _, s := range canonic {
		if c == s {
			return true
		}
	}
	return false
}

// isRoad - тип улицы обозначает автодорогу.
func (f *Fragment) isRoad() bool { return f != nil && f.Termin != nil && isRoadCanonic(f.Termin.Canonic) }

// gender - род термина типа улицы.
func (f *Fragment) gender() analyzer.Morph {
	if f == nil || f.Termin == nil {
		return 0
	}
	return f.Termin.Gender
}

// --- ХАРАКТЕРИСТИКИ ФРАГМЕНТА В ДОКУМЕНТЕ ---

func (c *Context) chars(f *Fragment) token.Chars {
	for i := f.Begin; i <= f.End; i++ {
		if t := c.tok(i); t != nil && (t.Chars.IsLetter || t.Kind == token.Referent) {
			return t.Chars
		}
	}
	if t := c.tok(f.Begin); t != nil {
		return t.Chars
	}
	return token.Chars{}
}

func (c *Context) isNewlineBefore(f *Fragment) bool { return c.tok(f.Begin).IsNewlineBefore() }
func (c *Context) isNewlineAfter(f *Fragment) bool  { return c.tok(f.End).IsNewlineAfter() }

func (c *Context) whitespacesBefore(f *Fragment) int {
	if t := c.tok(f.Begin); t != nil {
		return t.WhitespacesBefore
	}
	return 0
}

func (c *Context) whitespacesAfter(f *Fragment) int {
	if t := c.tok(f.End); t != nil {
		return t.WhitespacesAfter
	}
	return 0
}

// lengthChar - длина фрагмента в символах исходного текста.
func (c *Context) lengthChar(f *Fragment) int {
	return utf8.RuneCountInString(c.Doc.Span(f.Begin, f.End))
}

// textValue - термины фрагмента через пробел без дефисов и точек.
func (c *Context) textValue(begin, end int) string {
	var parts []string
	for i := begin; i <= end; i++ {
		t := c.tok(i)
		if t == nil {
			break
		}
		switch {
		case t.Kind == token.Referent:
			parts = append(parts, strings.ToUpper(t.Source))
		case t.IsLetters() || t.IsNumber():
			if len(parts) > 0 && !t.IsWhitespaceBefore() && c.tok(i-1).IsNumber() != t.IsNumber() {
				parts[len(parts)-1] += t.Term
				continue
			}
			parts = append(parts, t.Term)
		case t.IsHyphen() && len(parts) > 0 && !t.IsWhitespaceBefore() && !t.IsWhitespaceAfter():
			parts[len(parts)-1] += "-"
		}
	}
	s := strings.Join(parts, " ")
	return strings.ReplaceAll(s, "- ", "-")
}

// isSurname - имя похоже на фамилию в родительном падеже ("Пушкина", "Шевченко").
func (c *Context) isSurname(f *Fragment) bool {
	if f == nil || f.Kind != FragName {
		return false
	}
	t := c.tok(f.End)
	if !t.IsLetters() || t.TermLength() <= 4 {
		return false
	}
	nam := t.Term
	if !hasAnySuffix(nam, "А", "Я", "КО", "ЧУКА") || hasAnySuffix(nam, "АЯ", "ЯЯ") {
		return false
	}
	return !t.DictionaryClass().IsNoun()
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// --- СЛОВАРНЫЕ ПРОВЕРКИ ---

// matchStreet - самое длинное совпадение словаря улиц с позиции i.
func (c *Context) matchStreet(i int) *ontology.Match { return c.Onto.Streets.Match(c.Doc, i) }

// isStreetNounAt - с позиции i начинается тип улицы.
func (c *Context) isStreetNounAt(i int) bool {
	m := c.matchStreet(i)
	return m != nil && fragKindOf(m.Termin) == FragNoun
}

// stdNameEnd - конец стандартного названия с позиции i или -1.
func (c *Context) stdNameEnd(i int) int {
	if c.isStdAdjective(c.tok(i)) {
		return i
	}
	m := c.matchStreet(i)
	if m != nil && fragKindOf(m.Termin) == FragStdName {
		return m.End
	}
	return -1
}

// isStdAdjective - прилагательное вроде "Красный", "Советский" в любой форме.
func (c *Context) isStdAdjective(t *token.Token) bool {
	if !t.IsLetters() {
		return false
	}
	if stdAdjectives[t.Term] {
		return true
	}
	for _, f := range t.Forms {
		if f.Morph.IsAdjective() && stdAdjectives[f.Lemma] {
			return true
		}
	}
	return false
}

// nominative - прилагательное в именительном падеже нужного рода.
func (c *Context) nominative(word string, gender analyzer.Morph, plural bool) string {
	return c.Morph.Nominative(word, gender, plural)
}

// correctChar заменяет латинскую букву, похожую на кириллическую, кириллической.
func correctChar(r rune) rune {
	switch r {
	case 'A':
		return 'А'
	case 'B':
		return 'В'
	case 'C':
		return 'С'
	case 'E':
		return 'Е'
	case 'H':
		return 'Н'
	case 'K':
		return 'К'
	case 'M':
		return 'М'
	case 'O':
		return 'О'
	case 'P':
		return 'Р'
	case 'T':
		return 'Т'
	case 'X':
		return 'Х'
	case 'Y':
		return 'У'
	}
	return r
}

// correctWord приводит одно-двухбуквенное обозначение к кириллице: "A" -> "А".
// Пустая строка - в слове есть буква без кириллического двойника.
func correctWord(s string) string {
	var b strings.Builder
	for _, r := range s {
		cr := correctChar(r)
		if cr == r && r < utf8.RuneSelf && (r >= 'A' && r <= 'Z') {
			return ""
		}
		b.WriteRune(cr)
	}
	return b.String()
}
