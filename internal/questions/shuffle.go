package questions

import (
	"math/rand"

	"wedding-trivia/internal/domain"
)

// ShuffleOptions permutes a question's options in place with Fisher-Yates
// and keeps Correct pointing at the same option text.
func ShuffleOptions(q *domain.Question, rnd *rand.Rand) {
	for i := len(q.Options) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
		switch q.Correct {
		case i:
			q.Correct = j
		case j:
			q.Correct = i
		}
	}
}
