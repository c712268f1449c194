package bracket

// Stage names
const (
	StageWildcard    = "wildcard"
	StageSemiPlayoff = "semi_playoff"
	StageSemifinal   = "semifinal"
	StageFinal       = "final"
)

// Round is one ladder step. The high seed waits for the winner of the
// previous round; the first round pairs seeds 4 and 5.
type Round struct {
	Stage    string
	HighSeed int
	BestOf   int
}

// Rounds is the fixed ladder, first round first.
var Rounds = []Round{
	{Stage: StageWildcard, HighSeed: 4, BestOf: 3},
	{Stage: StageSemiPlayoff, HighSeed: 3, BestOf: 5},
	{Stage: StageSemifinal, HighSeed: 2, BestOf: 5},
	{Stage: StageFinal, HighSeed: 1, BestOf: 7},
}

// lowestSeed is the seed waiting at the bottom of the ladder.
const lowestSeed = 5

// entryRound returns the index of the first round seed plays.
func entryRound(seed int) int {
	if seed == lowestSeed {
		return 0
	}
	for i, r := range Rounds {
		if r.HighSeed == seed {
			return i
		}
	}
	return -1
}

// subBracketSeeds lists, best first, the seeds that can emerge as the low
// side of round i.
func subBracketSeeds(i int) []int {
	if i == 0 {
		return []int{lowestSeed}
	}
	seeds := make([]int, 0, lowestSeed)
	for s := Rounds[i-1].HighSeed; s <= lowestSeed; s++ {
		seeds = append(seeds, s)
	}
	return seeds
}
