// Local-play REPL: drives the same controller the server uses, against an
// in-memory store. Handy for trying rules out and for debugging engines.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	rl "github.com/chzyer/readline"

	"github.com/oddtable/wordtable/game"
	"github.com/oddtable/wordtable/session"
)

func main() {
	completer := rl.NewPrefixCompleter(
		rl.PcItem("new",
			rl.PcItem("duet"),
			rl.PcItem("tiles"),
			rl.PcItem("clover"),
		),
		rl.PcItem("join"),
		rl.PcItem("state"),
		rl.PcItem("moves"),
		rl.PcItem("clue"),
		rl.PcItem("guess"),
		rl.PcItem("end"),
		rl.PcItem("place"),
		rl.PcItem("swap"),
		rl.PcItem("pass"),
		rl.PcItem("clues"),
		rl.PcItem("arrange"),
		rl.PcItem("submit"),
		rl.PcItem("ack"),
		rl.PcItem("quit"),
	)

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "\033[34m»\033[0m ",
		HistoryFile:       "hist.txt",
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	r := &repl{
		ctx:  context.Background(),
		ctrl: session.NewController(session.NewMemoryStore(), session.Options{}),
	}
	r.loop(l)
}

type repl struct {
	ctx    context.Context
	ctrl   *session.Controller
	gameID string
}

func (r *repl) loop(l *rl.Instance) {
	for {
		line, err := l.Readline()
		if err == rl.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "quit", "exit":
			return
		case "new":
			r.doNew(parts[1:])
		case "join":
			r.doJoin(parts[1:])
		case "state":
			r.doState()
		case "moves":
			r.doMoves()
		default:
			r.doMove(parts)
		}
	}
}

func (r *repl) doNew(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: new duet|tiles|clover <creator> [seats]")
		return
	}
	types := map[string]game.Type{
		"duet":   game.TypeDuet,
		"tiles":  game.TypeTiles,
		"clover": game.TypeClover,
	}
	t, ok := types[args[0]]
	if !ok {
		fmt.Println("unknown game type")
		return
	}
	seats := 0
	if len(args) > 2 {
		seats, _ = strconv.Atoi(args[2])
	}
	g, err := r.ctrl.Create(r.ctx, t, session.CreateOptions{Creator: args[1], Seats: seats})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	r.gameID = g.ID
	fmt.Printf("created %s (%s), waiting for players\n", g.ID, g.Type)
}

func (r *repl) doJoin(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: join <name>")
		return
	}
	g, err := r.ctrl.Join(r.ctx, r.gameID, args[0])
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s joined, status %s\n", args[0], g.Status)
}

func (r *repl) doState() {
	g, err := r.ctrl.Get(r.ctx, r.gameID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	doc, _ := json.MarshalIndent(g, "", "  ")
	fmt.Println(string(doc))
}

func (r *repl) doMoves() {
	moves, err := r.ctrl.Moves(r.ctx, r.gameID)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, mv := range moves {
		fmt.Printf("%3d %-12s %s\n", mv.Seq, mv.Player, mv.MoveType)
	}
}

// doMove parses "<verb> <player> args..." into a move envelope.
func (r *repl) doMove(parts []string) {
	if len(parts) < 2 {
		fmt.Println("unknown command")
		return
	}
	verb, player, args := parts[0], parts[1], parts[2:]

	var body map[string]interface{}
	switch verb {
	case "clue":
		if len(args) < 1 {
			fmt.Println("usage: clue <player> <word> [count]")
			return
		}
		count := 1
		if len(args) > 1 {
			count, _ = strconv.Atoi(args[1])
		}
		body = map[string]interface{}{"moveType": "give_clue", "clue": args[0], "count": count}
	case "guess":
		if len(args) != 1 {
			fmt.Println("usage: guess <player> <index>")
			return
		}
		idx, _ := strconv.Atoi(args[0])
		body = map[string]interface{}{"moveType": "guess", "index": idx}
	case "end":
		body = map[string]interface{}{"moveType": "end_turn"}
	case "place":
		placements, err := parsePlacements(args)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		body = map[string]interface{}{"moveType": "place_tiles", "placements": placements}
	case "swap":
		body = map[string]interface{}{"moveType": "exchange", "tiles": args}
	case "pass":
		body = map[string]interface{}{"moveType": "pass"}
	case "clues":
		body = map[string]interface{}{"moveType": "submit_clues", "clues": args}
	case "arrange":
		slots, takeOver, err := parseSlots(args)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		body = map[string]interface{}{"moveType": "update_guess", "slots": slots, "takeOver": takeOver}
	case "submit":
		body = map[string]interface{}{"moveType": "submit_guess"}
	case "ack":
		body = map[string]interface{}{"moveType": "acknowledge"}
	default:
		fmt.Println("unknown command")
		return
	}

	raw, _ := json.Marshal(body)
	var env game.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		fmt.Println("error:", err)
		return
	}

	g, out, err := r.ctrl.Submit(r.ctx, r.gameID, player, env)
	if err != nil {
		fmt.Println("rejected:", err)
		return
	}
	for _, n := range out.News {
		fmt.Println("*", n.What)
	}
	if out.Detail != nil {
		doc, _ := json.Marshal(out.Detail)
		fmt.Println(string(doc))
	}
	if out.Ended {
		fmt.Printf("game over: %s\n", g.Result)
	}
}

// parsePlacements reads r,c,L or r,c,L,blank tokens.
func parsePlacements(args []string) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	for _, a := range args {
		bits := strings.Split(a, ",")
		if len(bits) < 3 {
			return nil, fmt.Errorf("bad placement %q, want row,col,letter", a)
		}
		row, err := strconv.Atoi(bits[0])
		if err != nil {
			return nil, err
		}
		col, err := strconv.Atoi(bits[1])
		if err != nil {
			return nil, err
		}
		p := map[string]interface{}{
			"row": row, "col": col, "letter": strings.ToUpper(bits[2]),
		}
		if len(bits) > 3 && bits[3] == "blank" {
			p["blank"] = true
		}
		out = append(out, p)
	}
	return out, nil
}

// parseSlots reads card:rot tokens, "-" for an empty slot, and an
// optional trailing "take".
func parseSlots(args []string) ([]interface{}, bool, error) {
	takeOver := false
	if len(args) > 0 && args[len(args)-1] == "take" {
		takeOver = true
		args = args[:len(args)-1]
	}
	if len(args) != 4 {
		return nil, false, fmt.Errorf("want 4 slots as card:rotation or -")
	}
	slots := make([]interface{}, 4)
	for i, a := range args {
		if a == "-" {
			continue
		}
		bits := strings.Split(a, ":")
		if len(bits) != 2 {
			return nil, false, fmt.Errorf("bad slot %q", a)
		}
		card, err := strconv.Atoi(bits[0])
		if err != nil {
			return nil, false, err
		}
		rot, err := strconv.Atoi(bits[1])
		if err != nil {
			return nil, false, err
		}
		slots[i] = map[string]interface{}{"card": card, "rotation": rot}
	}
	return slots, takeOver, nil
}
