package questions

import (
	"bufio"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"wedding-trivia/internal/domain"
)

// Parse reads tab-separated question rows from r in a single forward pass.
// Each non-blank line needs at least 6 fields: question text, four options,
// and a 1-based correct option index. Malformed rows are skipped with a
// warning rather than failing the whole load.
func Parse(r io.Reader) ([]domain.Question, error) {
	return ParseShuffled(r, nil)
}

// ParseShuffled is Parse with an injectable randomness source for the
// per-question option shuffle. A nil rnd seeds from the clock.
func ParseShuffled(r io.Reader, rnd *rand.Rand) ([]domain.Question, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var parsed []domain.Question
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	id := 1

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < domain.OptionCount+2 {
			log.Printf("questions: line %d: %d fields, want at least %d, skipping", lineNo, len(fields), domain.OptionCount+2)
			continue
		}

		correct, err := strconv.Atoi(strings.TrimSpace(fields[5]))
		if err != nil || correct < 1 || correct > domain.OptionCount {
			log.Printf("questions: line %d: bad correct-option index %q, skipping", lineNo, fields[5])
			continue
		}

		options := make([]string, domain.OptionCount)
		copy(options, fields[1:1+domain.OptionCount])

		q := domain.Question{
			ID:      id,
			Text:    strings.TrimSpace(fields[0]),
			Options: options,
			Correct: correct - 1,
		}
		ShuffleOptions(&q, rnd)
		parsed = append(parsed, q)
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parsed, nil
}
