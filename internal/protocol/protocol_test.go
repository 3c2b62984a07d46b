package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hydrochess/search/internal/chess"
	"github.com/hydrochess/search/internal/engine"
	"github.com/hydrochess/search/internal/rules"
)

func TestParseMoveTokenPlain(t *testing.T) {
	draft, err := parseMoveToken("e2e4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := chess.MoveDraft{From: chess.Coordinate{X: 5, Y: 2}, To: chess.Coordinate{X: 5, Y: 4}}
	if draft != want {
		t.Fatalf("got %+v, want %+v", draft, want)
	}
}

func TestParseMoveTokenPromotion(t *testing.T) {
	draft, err := parseMoveToken("e7e8q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !draft.HasPromotion || draft.Promotion != chess.Queen {
		t.Fatalf("expected a queen promotion, got %+v", draft)
	}
}

func TestParseMoveTokenMultiDigitRank(t *testing.T) {
	// The board is unbounded; ranks beyond the classical 1-9 must parse.
	draft, err := parseMoveToken("a1a42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.To.Y != 42 {
		t.Fatalf("expected rank 42, got %d", draft.To.Y)
	}
}

func TestParseMoveTokenRejectsTooShort(t *testing.T) {
	if _, err := parseMoveToken("e2"); err == nil {
		t.Fatalf("expected an error for a too-short token")
	}
}

func TestDriverPlaysAMoveAndReportsBestMove(t *testing.T) {
	re := rules.NewEngine()
	eng := engine.NewEngine(re, engine.Config{TTSizeMB: 1, SearchTimeoutMS: 200})

	var out bytes.Buffer
	d := New(eng, re, &out)

	in := strings.NewReader("position startpos moves e2e4\ngo\nquit\n")
	d.Run(in)

	output := out.String()
	if !strings.Contains(output, "bestmove") {
		t.Fatalf("expected a bestmove line in output, got %q", output)
	}
}

func TestDriverIllegalMoveDoesNotPanic(t *testing.T) {
	re := rules.NewEngine()
	eng := engine.NewEngine(re, engine.Config{TTSizeMB: 1, SearchTimeoutMS: 200})

	var out bytes.Buffer
	d := New(eng, re, &out)

	in := strings.NewReader("position startpos moves a1a1\nquit\n")
	d.Run(in)
}
