// Package placement turns a finished placement test's answer sequence
// into a rank (1–10) and sublevel (1–25). The functions are pure so the
// scoring is reproducible: identical input always yields identical
// output.
package placement

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	RankMin = 1
	RankMax = 10

	SublevelMin = 1
	// MaxSublevel is the sentinel meaning full mastery of the rank's
	// lesson range, rendered as "MAX".
	MaxSublevel = 25
)

// rankNames is the fixed display-name table, lowest rank first.
var rankNames = [RankMax]string{
	"Seedling",
	"Sprout",
	"Sapling",
	"Explorer",
	"Adventurer",
	"Challenger",
	"Achiever",
	"Scholar",
	"Sage",
	"Grandmaster",
}

// Answer is one placement-test answer: the difficulty level of the word
// asked (1–15), the ordinal of the lesson it came from, and whether the
// student answered correctly.
type Answer struct {
	WordLevel     int
	LessonOrdinal int
	Correct       bool
}

// Result is the outcome of a placement test.
type Result struct {
	Rank     int
	Sublevel int
}

// Label renders the result for display.
func (r Result) Label() string {
	return FormatRankLabel(r.Rank, r.Sublevel)
}

// WordLevelToRank maps a word difficulty level to a placement rank.
// Levels 1–9 map one-to-one; levels 10 and above all collapse to rank
// 10.
func WordLevelToRank(level int) int {
	if level < RankMin {
		return RankMin
	}
	if level >= RankMax {
		return RankMax
	}
	return level
}

// FormatRankLabel renders "<Name> <rank>-<sublevel>", or
// "<Name> <rank>-MAX" at the max sublevel.
func FormatRankLabel(rank, sublevel int) string {
	if rank < RankMin {
		rank = RankMin
	}
	if rank > RankMax {
		rank = RankMax
	}
	name := rankNames[rank-1]
	if sublevel >= MaxSublevel {
		return fmt.Sprintf("%s %d-MAX", name, rank)
	}
	return fmt.Sprintf("%s %d-%d", name, rank, sublevel)
}

// rankProbes holds the two representative probes kept per rank: the
// answer from the lowest lesson ordinal tested (early) and from the
// highest (late).
type rankProbes struct {
	early *Answer
	late  *Answer
}

// DetermineLevel walks ranks in ascending order and stops after two
// consecutive rank failures. A rank passes when at least one of its
// probes is correct. The final rank is the highest passed rank; its
// sublevel depends on which of its own probes succeeded. Empty input
// yields rank 1, sublevel 1.
func DetermineLevel(answers []Answer) Result {
	probes := groupProbes(answers)

	finalRank := 0
	consecutiveFailures := 0
	for rank := RankMin; rank <= RankMax; rank++ {
		p, tested := probes[rank]
		if tested && (p.early.Correct || p.late.Correct) {
			finalRank = rank
			consecutiveFailures = 0
			continue
		}
		// Untested ranks cannot pass.
		consecutiveFailures++
		if consecutiveFailures >= 2 {
			break
		}
	}

	if finalRank == 0 {
		return Result{Rank: RankMin, Sublevel: SublevelMin}
	}

	p := probes[finalRank]
	return Result{Rank: finalRank, Sublevel: sublevelFor(p)}
}

func groupProbes(answers []Answer) map[int]rankProbes {
	probes := make(map[int]rankProbes)
	for i := range answers {
		a := answers[i]
		rank := WordLevelToRank(a.WordLevel)
		p := probes[rank]
		if p.early == nil || a.LessonOrdinal < p.early.LessonOrdinal {
			p.early = &answers[i]
		}
		if p.late == nil || a.LessonOrdinal > p.late.LessonOrdinal {
			p.late = &answers[i]
		}
		probes[rank] = p
	}
	return probes
}

// sublevelFor maps a passed rank's probe outcomes to a sublevel:
// only the early probe correct → 1, only the late probe → 2, both →
// MAX. (Neither correct cannot reach here for a passed rank, but maps
// to the degenerate sublevel 1.)
func sublevelFor(p rankProbes) int {
	earlyCorrect := p.early != nil && p.early.Correct
	lateCorrect := p.late != nil && p.late.Correct
	switch {
	case earlyCorrect && lateCorrect:
		return MaxSublevel
	case lateCorrect:
		return 2
	default:
		return SublevelMin
	}
}

// LessonOrdinal extracts the trailing number from a lesson label
// ("Lesson 12" → 12) so lessons order correctly. Labels without a
// number sort first.
func LessonOrdinal(label string) int {
	fields := strings.Fields(label)
	for i := len(fields) - 1; i >= 0; i-- {
		if n, err := strconv.Atoi(strings.TrimPrefix(fields[i], "#")); err == nil {
			return n
		}
	}
	return 0
}
