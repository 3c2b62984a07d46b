// Package protocol is a line-oriented stdin/stdout driver for the search
// engine — a deliberately small protocol in the UCI tradition rather than
// UCI itself, since there is no standard protocol for an unbounded board
// with a 22-piece catalogue. Commands are whitespace-separated tokens,
// one per line, mirroring the dispatch loop a UCI handler would use.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/hydrochess/search/internal/chess"
	"github.com/hydrochess/search/internal/engine"
	"github.com/hydrochess/search/internal/rules"
)

// Driver owns the live position and the search engine, and dispatches
// incoming command lines to handlers.
type Driver struct {
	eng   *engine.Engine
	rules *rules.Engine
	pos   *rules.Board

	out io.Writer
}

// New creates a driver with a fresh starting position.
func New(eng *engine.Engine, re *rules.Engine, out io.Writer) *Driver {
	d := &Driver{eng: eng, rules: re, pos: rules.NewStartingBoard(), out: out}
	eng.OnInfo = d.reportInfo
	return d
}

// Run reads commands from r until EOF or a "quit" command.
func (d *Driver) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "hello":
			fmt.Fprintln(d.out, "id name hydrosearch")
			fmt.Fprintln(d.out, "readyok")
		case "isready":
			fmt.Fprintln(d.out, "readyok")
		case "newgame":
			d.pos = rules.NewStartingBoard()
		case "position":
			d.handlePosition(args)
		case "go":
			d.handleGo()
		case "quit":
			return
		default:
			log.Printf("info string unknown command %q", cmd)
		}
	}
}

// handlePosition accepts "position startpos [moves m1 m2 ...]".
func (d *Driver) handlePosition(args []string) {
	if len(args) == 0 || args[0] != "startpos" {
		log.Printf("info string position requires startpos")
		return
	}
	d.pos = rules.NewStartingBoard()

	moveStart := len(args)
	for i, a := range args {
		if a == "moves" {
			moveStart = i + 1
			break
		}
	}
	for _, token := range args[moveStart:] {
		draft, err := parseMoveToken(token)
		if err != nil {
			log.Printf("info string bad move %q: %v", token, err)
			return
		}
		m := d.rules.GenerateMove(d.pos, draft)
		if m == nil {
			log.Printf("info string illegal move %q", token)
			return
		}
		d.rules.Make(d.pos, m)
	}
}

// handleGo runs a search and prints "bestmove <move>".
func (d *Driver) handleGo() {
	best := d.eng.FindBestMove(d.pos)
	if best == nil {
		fmt.Fprintln(d.out, "bestmove 0000")
		return
	}
	fmt.Fprintf(d.out, "bestmove %s\n", best.String())
}

func (d *Driver) reportInfo(info engine.SearchInfo) {
	pvTokens := make([]string, len(info.PV))
	for i, m := range info.PV {
		pvTokens[i] = m.String()
	}
	fmt.Fprintf(d.out, "info depth %d nodes %d score cp %d pv %s\n",
		info.Depth, info.Nodes, info.Score, strings.Join(pvTokens, " "))
}

// parseMoveToken parses coordinate-pair move tokens of the form
// "<file><rank><file><rank>[promo]", e.g. "e2e4" or "e7e8q". File letters
// run a..z (X=1..26); files beyond that aren't expressible
// in this compact notation (the engine itself has no such limit).
func parseMoveToken(token string) (chess.MoveDraft, error) {
	if len(token) < 4 {
		return chess.MoveDraft{}, fmt.Errorf("too short")
	}
	from, rest, err := parseSquare(token)
	if err != nil {
		return chess.MoveDraft{}, err
	}
	to, rest, err := parseSquare(rest)
	if err != nil {
		return chess.MoveDraft{}, err
	}
	draft := chess.MoveDraft{From: from, To: to}
	if len(rest) > 0 {
		pt, ok := promotionFromChar(rest[0])
		if !ok {
			return chess.MoveDraft{}, fmt.Errorf("bad promotion char %q", rest)
		}
		draft.Promotion = pt
		draft.HasPromotion = true
	}
	return draft, nil
}

func parseSquare(s string) (chess.Coordinate, string, error) {
	if len(s) < 2 {
		return chess.Coordinate{}, "", fmt.Errorf("short square")
	}
	file := s[0]
	if file < 'a' || file > 'z' {
		return chess.Coordinate{}, "", fmt.Errorf("bad file %q", file)
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	rank, err := strconv.ParseInt(s[1:i], 10, 64)
	if err != nil {
		return chess.Coordinate{}, "", err
	}
	return chess.Coordinate{X: int64(file-'a') + 1, Y: rank}, s[i:], nil
}

func promotionFromChar(c byte) (chess.PieceType, bool) {
	switch c {
	case 'n':
		return chess.Knight, true
	case 'b':
		return chess.Bishop, true
	case 'r':
		return chess.Rook, true
	case 'q':
		return chess.Queen, true
	}
	return 0, false
}
