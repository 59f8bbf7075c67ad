package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"

	"wedding-trivia/internal/domain"
)

// Rank order is the backend's: entries render in the order given, never
// re-sorted here.

const (
	// EmptyMessage is shown instead of a blank table when nobody has played yet.
	EmptyMessage = "No results yet. Be the first to play!"
	// ErrorMessage is shown when standings could not be fetched.
	ErrorMessage = "Leaderboard is unavailable right now."
)

var medals = [...]string{"🥇", "🥈", "🥉"}

// Text writes the standings as a plain-text table. User-supplied names are
// stripped of control characters before rendering.
func Text(w io.Writer, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	for i, e := range entries {
		marker := "  "
		if i < len(medals) {
			marker = medals[i]
		}
		_, err := fmt.Fprintf(w, "%2d. %s %s: %d pts (%d/%d correct)\n",
			i+1, marker, sanitize(e.Name), e.TotalScore, e.CorrectAnswers, e.TotalQuestions)
		if err != nil {
			return err
		}
	}
	return nil
}

// TextError writes the designated fetch-error message.
func TextError(w io.Writer) error {
	_, err := fmt.Fprintln(w, ErrorMessage)
	return err
}

// HTML writes the standings as an HTML table. All user-supplied text is
// escaped before insertion.
func HTML(w io.Writer, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "<p class=\"leaderboard-empty\">%s</p>\n", html.EscapeString(EmptyMessage))
		return err
	}
	var b strings.Builder
	b.WriteString("<table class=\"leaderboard\">\n")
	b.WriteString("<tr><th>#</th><th>Name</th><th>Score</th><th>Correct</th></tr>\n")
	for i, e := range entries {
		marker := ""
		if i < len(medals) {
			marker = medals[i] + " "
		}
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s%s</td><td>%d</td><td>%d/%d</td></tr>\n",
			i+1, marker, html.EscapeString(e.Name), e.TotalScore, e.CorrectAnswers, e.TotalQuestions)
	}
	b.WriteString("</table>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
