// Package hangul assembles discrete consonants and vowels into composed
// Hangul syllable blocks.
package hangul

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Position is the syllable slot the Assembler fills next. Positions cycle
// InitialConsonant -> Vowel -> SomeConsonant -> FinalConsonant -> InitialConsonant.
type Position int

const (
	InitialConsonant Position = iota
	Vowel
	SomeConsonant
	FinalConsonant
)

func (p Position) next() Position {
	return (p + 1) % 4
}

func (p Position) String() string {
	switch p {
	case InitialConsonant:
		return "InitialConsonant"
	case Vowel:
		return "Vowel"
	case SomeConsonant:
		return "SomeConsonant"
	case FinalConsonant:
		return "FinalConsonant"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// onsetPairs lists (held, incoming) consonant pairs for which the held
// consonant opens the next syllable instead of closing the current one.
// Every other pair closes the current syllable.
var onsetPairs = map[[2]Consonant]bool{
	{P, L}: true,
}

// Assembler is a single-use builder. Create one per conversion, feed it
// jamo, then call Finish.
type Assembler struct {
	buf []rune
	pos Position

	// held is a consonant received at SomeConsonant whose role depends on
	// what comes next.
	held    Consonant
	hasHeld bool

	finished bool
}

func NewAssembler() *Assembler {
	return &Assembler{pos: InitialConsonant}
}

// Position returns the slot that will be filled next.
func (a *Assembler) Position() Position {
	return a.pos
}

// IsStartOfWord reports whether nothing has been written since the start or
// the last space.
func (a *Assembler) IsStartOfWord() bool {
	atBoundary := len(a.buf) == 0 || a.buf[len(a.buf)-1] == ' '
	return atBoundary && a.pos == InitialConsonant
}

// PushConsonant adds a consonant. Right after a vowel the consonant is held
// until the next call decides whether it is a coda or an onset.
func (a *Assembler) PushConsonant(c Consonant) {
	a.checkUsable()

	if held, ok := a.takeHeld(); ok {
		role := FinalConsonant
		if onsetPairs[[2]Consonant{held, c}] {
			role = InitialConsonant
		}
		a.place(held, role)
	}

	if a.pos == Vowel {
		a.step(SomeConsonant)
	}

	switch a.pos {
	case InitialConsonant, FinalConsonant:
		a.emitConsonant(c)
	case SomeConsonant:
		a.held = c
		a.hasHeld = true
		a.pos = InitialConsonant
	}
}

// PushVowel adds a vowel, turning a held consonant into its onset and
// supplying a silent ㅇ when no consonant was given.
func (a *Assembler) PushVowel(v Vowel) {
	a.checkUsable()
	if v < 0 || v >= numVowels {
		panic(fmt.Sprintf("hangul: invalid vowel %d", int(v)))
	}

	if held, ok := a.takeHeld(); ok {
		a.place(held, InitialConsonant)
	}

	a.step(Vowel)
	a.buf = append(a.buf, medialJamo[v])
	a.pos = a.pos.next()
}

// AdvanceTo moves to target, filling a skipped initial slot with ㅇ and a
// skipped vowel slot with ㅡ. A held consonant is settled as the coda of the
// current syllable first.
func (a *Assembler) AdvanceTo(target Position) {
	a.checkUsable()
	if held, ok := a.takeHeld(); ok {
		a.place(held, FinalConsonant)
	}
	a.step(target)
}

// PushSpace closes the current syllable and writes a literal space.
func (a *Assembler) PushSpace() {
	a.checkUsable()
	a.closeSyllable()
	a.buf = append(a.buf, ' ')
}

// Finish closes the last syllable and returns the composed text. The
// Assembler cannot be used afterwards.
func (a *Assembler) Finish() string {
	a.checkUsable()
	a.closeSyllable()
	a.finished = true
	return norm.NFC.String(string(a.buf))
}

func (a *Assembler) closeSyllable() {
	if held, ok := a.takeHeld(); ok {
		a.place(held, FinalConsonant)
	}
	a.step(InitialConsonant)
}

func (a *Assembler) takeHeld() (Consonant, bool) {
	if !a.hasHeld {
		return 0, false
	}
	a.hasHeld = false
	return a.held, true
}

// place writes c in the given role. A held consonant always follows a vowel,
// so either role yields a well-formed syllable.
func (a *Assembler) place(c Consonant, role Position) {
	a.pos = role
	a.emitConsonant(c)
}

func (a *Assembler) emitConsonant(c Consonant) {
	if c < 0 || c >= numConsonants {
		panic(fmt.Sprintf("hangul: invalid consonant %d", int(c)))
	}
	switch a.pos {
	case InitialConsonant:
		a.buf = append(a.buf, initialJamo[c])
	case FinalConsonant:
		if !c.HasFinal() {
			panic(fmt.Sprintf("hangul: %s can't be in final consonant position", c))
		}
		a.buf = append(a.buf, finalJamo[c])
	default:
		panic(fmt.Sprintf("hangul: cannot write consonant %s at %s", c, a.pos))
	}
	a.pos = a.pos.next()
}

// step advances mechanically without touching the held consonant.
func (a *Assembler) step(target Position) {
	for a.pos != target {
		switch a.pos {
		case InitialConsonant:
			a.buf = append(a.buf, fillerInitial)
		case Vowel:
			a.buf = append(a.buf, fillerVowel)
		}
		a.pos = a.pos.next()
	}
}

func (a *Assembler) checkUsable() {
	if a.finished {
		panic("hangul: assembler used after Finish")
	}
}
