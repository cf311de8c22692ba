package game

import "fmt"

// EvaluateFirstInformative scores a cutoff board from the perspective of the
// player about to move on it. Run lengths are scanned from MaxRunLength down
// to 1 and the first length where either player has a run decides the value:
// the mover's lead if the mover is ahead at that length, otherwise the
// negated opponent count. A board with no runs at all scores 0.
func EvaluateFirstInformative(b *Board) int {
	mover := b.Turn()
	moverRuns := b.RunLengths(mover)
	opponentRuns := b.RunLengths(mover.Opponent())

	for length := MaxRunLength; length > 0; length-- {
		moverScore := countAt(moverRuns, length)
		opponentScore := countAt(opponentRuns, length)
		if moverScore == 0 && opponentScore == 0 {
			continue
		}
		if moverScore > opponentScore {
			return moverScore - opponentScore
		}
		return -opponentScore
	}
	return 0
}

// Weights per run length for EvaluateWeighted, index = length.
var runWeights = [MaxRunLength + 1]int{0, 1, 10, 100, 1000}

// EvaluateWeighted sums every run length up to MaxRunLength, weighted so
// longer runs dominate, as mover minus opponent.
func EvaluateWeighted(b *Board) int {
	mover := b.Turn()
	moverRuns := b.RunLengths(mover)
	opponentRuns := b.RunLengths(mover.Opponent())

	score := 0
	for length := 1; length <= MaxRunLength; length++ {
		score += runWeights[length] * (countAt(moverRuns, length) - countAt(opponentRuns, length))
	}
	return score
}

func countAt(histogram []int, length int) int {
	if length >= len(histogram) {
		return 0
	}
	return histogram[length]
}

// Evaluators maps configuration names to evaluation policies.
var Evaluators = map[string]Evaluate{
	"first-informative": EvaluateFirstInformative,
	"weighted":          EvaluateWeighted,
}

// EvaluatorByName looks up a policy registered in Evaluators.
func EvaluatorByName(name string) (Evaluate, error) {
	evaluate, ok := Evaluators[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEvaluator, name)
	}
	return evaluate, nil
}
