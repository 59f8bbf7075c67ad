package questions

import (
	"math/rand"
	"strings"
	"testing"
)

const validRow = "Where did the couple first meet?\tParis\tA bookshop\tWork\tA wedding\t2"

func TestParseValidRow(t *testing.T) {
	qs, err := ParseShuffled(strings.NewReader(validRow), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	q := qs[0]
	if q.ID != 1 {
		t.Fatalf("expected id 1, got %d", q.ID)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectText() != "A bookshop" {
		t.Fatalf("expected correct text to survive shuffling, got %q", q.CorrectText())
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		validRow,
		"too\tfew\tfields",
		"Question\tA\tB\tC\tD\t9", // correct index out of range
		"Question\tA\tB\tC\tD\tx", // correct index not a number
		"",
		"Second question\tW\tX\tY\tZ\t4",
	}, "\n")

	qs, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 valid questions, got %d", len(qs))
	}
	if qs[1].ID != 2 {
		t.Fatalf("expected sequential ids, got %d", qs[1].ID)
	}
	if qs[1].CorrectText() != "Z" {
		t.Fatalf("expected correct text Z, got %q", qs[1].CorrectText())
	}
}

func TestParseExtraFieldsIgnored(t *testing.T) {
	row := "Question\tA\tB\tC\tD\t1\textra\tcolumns"
	qs, err := Parse(strings.NewReader(row))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].CorrectText() != "A" {
		t.Fatalf("expected correct text A, got %q", qs[0].CorrectText())
	}
}

func TestParseAllCorrectIndexes(t *testing.T) {
	rows := []string{
		"Q1\ta\tb\tc\td\t1",
		"Q2\ta\tb\tc\td\t2",
		"Q3\ta\tb\tc\td\t3",
		"Q4\ta\tb\tc\td\t4",
	}
	want := []string{"a", "b", "c", "d"}
	qs, err := ParseShuffled(strings.NewReader(strings.Join(rows, "\n")), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(qs) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.CorrectText() != want[i] {
			t.Fatalf("question %d: expected correct %q, got %q", i, want[i], q.CorrectText())
		}
	}
}
