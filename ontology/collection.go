package ontology

import (
	"errors"
	"fmt"

	"github.com/steosofficial/steosaddress/token"
)

var (
	// ErrEmptyCanonic - термин без канонической формы.
	ErrEmptyCanonic = errors.New("пустая каноническая форма термина")
	// ErrDuplicate - термин с той же канонической формой, тегами и языком уже зарегистрирован.
	ErrDuplicate = errors.New("повторная регистрация термина")
)

// Match - результат сопоставления термина с текстом.
type Match struct {
	Termin *Termin
	Begin  int // Индексы токенов документа, включительно.
	End    int
	// Abridge - совпадение по сокращению или акрониму.
	Abridge bool

	order int // Позиция термина в коллекции.
}

// Length - число токенов совпадения.
func (m *Match) Length() int { return m.End - m.Begin + 1 }

type entry struct {
	termin  *Termin
	pattern int
	order   int
}

// Collection - неизменяемый набор терминов с индексом по первому слову.
type Collection struct {
	termins []*Termin
	byFirst map[string][]entry
	byStem  map[string][]entry
}

type dupKey struct {
	canonic string
	tag     any
	tag2    any
	lang    Lang
}

// Build проверяет термины и строит индекс. Порядок терминов задает приоритет при равной длине.
// Теги должны быть сравнимыми значениями.
func Build(termins ...*Termin) (*Collection, error) {
	c := &Collection{
		termins: make([]*Termin, 0, len(termins)),
		byFirst: make(map[string][]entry),
		byStem:  make(map[string][]entry),
	}
	seen := make(map[dupKey]struct{}, len(termins))
	for i, t := range termins {
		if t == nil || t.Canonic == "" {
			return nil, fmt.Errorf("%w: позиция %d", ErrEmptyCanonic, i)
		}
		key := dupKey{canonic: t.Canonic, tag: t.Tag, tag2: t.Tag2, lang: t.Lang}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q (%v)", ErrDuplicate, t.Canonic, t.Tag)
		}
		seen[key] = struct{}{}
		c.termins = append(c.termins, t)
		for pi, p := range t.patterns {
			e := entry{termin: t, pattern: pi, order: i}
			first := p.parts[0]
			c.byFirst[first.text] = append(c.byFirst[first.text], e)
			if first.stem != "" {
				c.byStem[first.stem] = append(c.byStem[first.stem], e)
			}
		}
	}
	return c, nil
}

// MustBuild - Build, паникующий при ошибке. Используется при старте процесса.
func MustBuild(termins ...*Termin) *Collection {
	c, err := Build(termins...)
	if err != nil {
		panic(err)
	}
	return c
}

// Termins возвращает термины в порядке регистрации.
func (c *Collection) Termins() []*Termin { return c.termins }

// FindByCanonic ищет термины по канонической форме.
func (c *Collection) FindByCanonic(canonic string) []*Termin {
	var res []*Termin
	for _, t := range c.termins {
		if t.Canonic == canonic {
			res = append(res, t)
		}
	}
	return res
}

// Match возвращает самое длинное совпадение с позиции i; при равной длине - термин,
// зарегистрированный раньше.
func (c *Collection) Match(doc *token.Document, i int) *Match {
	all := c.matches(doc, i)
	if len(all) == 0 {
		return nil
	}
	best := all[0]
	for _, m := range all[1:] {
		if m.End > best.End || m.End == best.End && m.order < best.order {
			best = m
		}
	}
	return best
}

// MatchAll возвращает все термины, совпадающие на максимальную длину, в порядке регистрации.
func (c *Collection) MatchAll(doc *token.Document, i int) []*Match {
	all := c.matches(doc, i)
	maxEnd := -1
	for _, m := range all {
		if m.End > maxEnd {
			maxEnd = m.End
		}
	}
	var res []*Match
	for _, m := range all {
		if m.End == maxEnd {
			res = append(res, m)
		}
	}
	sortByOrder(res)
	return res
}

// MatchTermin проверяет совпадение конкретного термина с позиции i.
func (c *Collection) MatchTermin(doc *token.Document, i int, t *Termin) *Match {
	var best *Match
	for pi := range t.patterns {
		if end := matchPattern(doc, i, &t.patterns[pi]); end >= 0 && (best == nil || end > best.End) {
			best = &Match{Termin: t, Begin: i, End: end, Abridge: t.patterns[pi].abridge}
		}
	}
	return best
}

// matches - лучшие совпадения каждого термина-кандидата.
func (c *Collection) matches(doc *token.Document, i int) []*Match {
	t := doc.At(i)
	if t == nil || t.Kind == token.Referent {
		return nil
	}
	var cands []entry
	cands = append(cands, c.byFirst[t.Term]...)
	if t.IsLetters() {
		for _, f := range t.Forms {
			if f.Lemma != t.Term {
				cands = append(cands, c.byFirst[f.Lemma]...)
			}
		}
		if t.Stem != "" && t.TermLength() >= 4 {
			cands = append(cands, c.byStem[t.Stem]...)
		}
	}
	if len(cands) == 0 {
		return nil
	}
	byTermin := make(map[*Termin]*Match, len(cands))
	var res []*Match
	for _, e := range cands {
		p := &e.termin.patterns[e.pattern]
		end := matchPattern(doc, i, p)
		if end < 0 {
			continue
		}
		if m, ok := byTermin[e.termin]; ok {
			if end > m.End || end == m.End && m.Abridge && !p.abridge {
				m.End, m.Abridge = end, p.abridge
			}
			continue
		}
		m := &Match{Termin: e.termin, Begin: i, End: end, Abridge: p.abridge, order: e.order}
		byTermin[e.termin] = m
		res = append(res, m)
	}
	return res
}

// matchPattern возвращает индекс последнего токена совпадения или -1.
func matchPattern(doc *token.Document, i int, p *pattern) int {
	j := i
	for k := range p.parts {
		part := &p.parts[k]
		t := doc.At(j)
		if t == nil || t.Kind == token.Referent || (k > 0 && t.IsNewlineBefore()) {
			if part.optional {
				continue
			}
			return -1
		}
		if partMatches(t, part, p.abridge) {
			j++
			continue
		}
		if part.optional {
			continue
		}
		return -1
	}
	if j == i {
		return -1
	}
	return j - 1
}

func partMatches(t *token.Token, p *part, abridge bool) bool {
	if t.Term == p.text {
		return true
	}
	if abridge || !t.IsLetters() {
		return false
	}
	if t.HasLemma(p.text) {
		return true
	}
	return p.stem != "" && t.TermLength() >= 4 && t.Stem == p.stem
}

func sortByOrder(ms []*Match) {
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && ms[j].order < ms[j-1].order; j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}
