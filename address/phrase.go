package address

import (
	"strings"

	"github.com/steosofficial/steosaddress/analyzer"
	"github.com/steosofficial/steosaddress/token"
)

// phrase - именная группа "прилагательные + существительное" ("Нижняя Красносельская",
// "Северного бульвара"). Согласование проверяется по падежу.
type phrase struct {
	begin, end int
	adjectives int
	// morph - общие падеж, род и число группы.
	morph analyzer.Morph
}

func (p *phrase) isGenitive() bool { return p.morph.IsGenitive() && !p.morph.IsNominative() }

// formsOf - объединение признаков вариантов разбора нужной части речи.
func formsOf(t *token.Token, class analyzer.Morph) analyzer.Morph {
	var m analyzer.Morph
	for _, f := range t.Forms {
		if f.Morph.Has(class) {
			m |= f.Morph
		}
	}
	return m
}

func agreement(m analyzer.Morph) analyzer.Morph {
	res := m & (analyzer.CaseMask | analyzer.GenderMask | analyzer.NumberMask)
	if res.Case() == 0 {
		res |= analyzer.AllCases
	}
	if res.Gender() == 0 {
		res |= analyzer.GenderMask
	}
	if res.Number() == 0 {
		res |= analyzer.NumberMask
	}
	return res
}

// nounPhrase разбирает именную группу с позиции i: не более двух прилагательных и
// существительное в одной строке. Одиночное существительное тоже группа.
func (c *Context) nounPhrase(i int) *phrase {
	t := c.tok(i)
	if !t.IsLetters() {
		return nil
	}
	agree := agreement(0)
	j := i
	adj := 0
	for ; adj < 3; j++ {
		w := c.tok(j)
		if !w.IsLetters() || j > i && (w.IsNewlineBefore() || w.WhitespacesBefore > 2) {
			return nil
		}
		am := formsOf(w, analyzer.Adjective)
		nm := formsOf(w, analyzer.Noun)
		if nm != 0 {
			if a := agree & agreement(nm); a.Case() != 0 {
				next := c.tok(j + 1)
				// Прилагательное-существительное ("Рабочая") продолжает группу, если дальше
				// согласованное существительное.
				if am != 0 && next.IsLetters() && !next.IsNewlineBefore() && formsOf(next, analyzer.Noun)&agree&agreement(am)&analyzer.CaseMask != 0 && adj < 2 {
					agree &= agreement(am)
					adj++
					continue
				}
				return &phrase{begin: i, end: j, adjectives: adj, morph: a}
			}
			return nil
		}
		if am == 0 || w.Morph.IsPreposition() || w.Morph.IsVerb() {
			return nil
		}
		a := agree & agreement(am)
		if a.Case() == 0 {
			return nil
		}
		agree = a
		adj++
	}
	return nil
}

// normalText - группа в именительном падеже: "СЕВЕРНОГО БУЛЬВАРА" -> "СЕВЕРНЫЙ БУЛЬВАР".
func (c *Context) normalText(p *phrase) string {
	noun := c.tok(p.end)
	lemma := noun.Term
	var gender analyzer.Morph
	plural := p.morph.IsPlural() && !p.morph.Has(analyzer.Singular)
	for _, f := range noun.Forms {
		if f.Morph.IsNoun() && f.Morph.Case()&p.morph.Case() != 0 {
			lemma = f.Lemma
			gender = f.Morph.Gender()
			if f.Morph.IsPlural() && !plural {
				lemma = noun.Term
			}
			break
		}
	}
	if gender == 0 || gender&(gender-1) != 0 {
		gender = p.morph.Gender()
		if gender&(gender-1) != 0 {
			gender = 0
		}
	}
	parts := make([]string, 0, p.end-p.begin+1)
	for j := p.begin; j < p.end; j++ {
		parts = append(parts, c.nominative(c.tok(j).Term, gender, plural))
	}
	parts = append(parts, lemma)
	return strings.Join(parts, " ")
}
