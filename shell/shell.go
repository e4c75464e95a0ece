// Package shell is the interactive console front end: a human plays columns
// against the engine. It is a thin consumer of the core packages; all rules
// and search logic live below it.
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/config"
	"github.com/fourply/fourply/dotgen"
	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
	"github.com/fourply/fourply/player"
	"github.com/fourply/fourply/search"
)

// ShellController drives the readline loop and owns the current game.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	g        *board.Geometry
	pos      game.Position
	lastMove board.Mask
	over     bool

	proposer  *player.Proposer
	lastStats search.Stats
	printer   *message.Printer

	dotPath string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [rows cols] - start a game; defaults come from config\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "play <col> - drop your man into a column, then the engine replies\n")
	io.WriteString(w, "go - let the engine move for the side to play\n")
	io.WriteString(w, "strength <n> - set engine strength in rounds\n")
	io.WriteString(w, "eval <name> - set evaluator: fixed, random, squareweights, linesofthree\n")
	io.WriteString(w, "autoplay - engine plays itself to the end\n")
	io.WriteString(w, "dot <path> - write the next search as a graphviz file\n")
	io.WriteString(w, "stats - counters from the last search\n")
	io.WriteString(w, "exit\n")
}

// NewShellController builds the controller and starts a default game.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mfourply>\033[0m ",
		HistoryFile:     "/tmp/fourply_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc := &ShellController{
		l:       l,
		cfg:     cfg,
		printer: message.NewPrinter(language.English),
	}
	if err := sc.newGame(cfg.Rows(), cfg.Cols()); err != nil {
		l.Close()
		return nil, err
	}
	return sc, nil
}

// Close releases the readline instance.
func (sc *ShellController) Close() error { return sc.l.Close() }

func (sc *ShellController) newGame(rows, cols int) error {
	g, err := board.NewGeometry(rows, cols)
	if err != nil {
		return err
	}
	eval, err := sc.newEvaluator()
	if err != nil {
		return err
	}
	sc.g = g
	sc.pos = game.NewPosition()
	sc.lastMove = 0
	sc.over = false
	sc.proposer = player.NewProposer(g, eval, sc.cfg.CacheTablePower())
	sc.proposer.SetCachePhaseThreshold(sc.cfg.CachePhaseThreshold())
	return nil
}

func (sc *ShellController) newEvaluator() (equity.Evaluator, error) {
	return equity.ByName(sc.cfg.Evaluator(), sc.cfg.RandomSeed(), equity.LinesOfThreeParams{
		WinningScale: sc.cfg.Lines3WinningScale(),
		ParityFactor: sc.cfg.Lines3ParityFactor(),
		TieBreak:     sc.cfg.Lines3TieBreak(),
	})
}

// Loop reads and executes commands until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.Close()
	showMessage(sc.pos.ToDisplayText(sc.g), sc.l.Stderr())
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			break
		}
		if err := sc.execute(line); err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
}

func (sc *ShellController) execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		usage(sc.l.Stderr())
	case "new":
		return sc.handleNew(args)
	case "show":
		showMessage(sc.pos.ToDisplayText(sc.g), sc.l.Stderr())
	case "play":
		return sc.handlePlay(args)
	case "go":
		return sc.engineMove()
	case "strength":
		return sc.handleStrength(args)
	case "eval":
		return sc.handleEval(args)
	case "autoplay":
		return sc.handleAutoplay()
	case "dot":
		if len(args) != 1 {
			return fmt.Errorf("dot needs a file path")
		}
		sc.dotPath = args[0]
		showMessage("next search will be exported to "+sc.dotPath, sc.l.Stderr())
	case "stats":
		sc.showStats()
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
	return nil
}

func (sc *ShellController) handleNew(args []string) error {
	rows, cols := sc.cfg.Rows(), sc.cfg.Cols()
	if len(args) == 2 {
		var err error
		if rows, err = strconv.Atoi(args[0]); err != nil {
			return err
		}
		if cols, err = strconv.Atoi(args[1]); err != nil {
			return err
		}
	} else if len(args) != 0 {
		return fmt.Errorf("usage: new [rows cols]")
	}
	if err := sc.newGame(rows, cols); err != nil {
		return err
	}
	showMessage(sc.pos.ToDisplayText(sc.g), sc.l.Stderr())
	return nil
}

// handlePlay applies the human move, then lets the engine answer. Bad input
// is reported and the prompt comes back; nothing below the shell validates
// columns for us.
func (sc *ShellController) handlePlay(args []string) error {
	if sc.over {
		return fmt.Errorf("game is over; start a new one")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: play <col>")
	}
	col, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("not a column number: %q", args[0])
	}
	if col < 0 || col >= sc.g.Cols() {
		return fmt.Errorf("column %d out of range 0..%d", col, sc.g.Cols()-1)
	}
	sq, ok := sc.pos.LowestFreeSquareInColumn(sc.g, col)
	if !ok {
		return fmt.Errorf("column %d is full, pick another", col)
	}
	sc.applyMove(board.Mask(1) << uint(sq))
	if sc.over {
		return nil
	}
	return sc.engineMove()
}

func (sc *ShellController) engineMove() error {
	if sc.over {
		return fmt.Errorf("game is over; start a new one")
	}
	if sc.dotPath != "" {
		rec := dotgen.NewRecorder(sc.g)
		sc.proposer.SetObserver(rec)
		defer func() {
			sc.proposer.SetObserver(nil)
			if err := rec.WriteFile(sc.dotPath); err != nil {
				log.Err(err).Str("path", sc.dotPath).Msg("writing-dot-file")
			}
			sc.dotPath = ""
		}()
	}
	prop, err := sc.proposer.ProposeMove(sc.pos, 2*sc.cfg.Strength())
	if err != nil {
		return err
	}
	sc.lastStats = prop.Stats
	showMessage(fmt.Sprintf("engine plays column %d (value %d, depth %d)",
		sc.g.Column(prop.Move), prop.Value, prop.Depth), sc.l.Stderr())
	sc.applyMove(prop.Move)
	return nil
}

func (sc *ShellController) handleStrength(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: strength <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("strength must be a positive integer")
	}
	sc.cfg.Set(config.KeyStrength, n)
	return nil
}

func (sc *ShellController) handleEval(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: eval <name>")
	}
	sc.cfg.Set(config.KeyEvaluator, args[0])
	eval, err := sc.newEvaluator()
	if err != nil {
		return err
	}
	sc.proposer = player.NewProposer(sc.g, eval, sc.cfg.CacheTablePower())
	sc.proposer.SetCachePhaseThreshold(sc.cfg.CachePhaseThreshold())
	return nil
}

func (sc *ShellController) handleAutoplay() error {
	for !sc.over {
		if err := sc.engineMove(); err != nil {
			return err
		}
	}
	return nil
}

func (sc *ShellController) applyMove(m board.Mask) {
	sc.pos = sc.pos.Apply(m)
	sc.lastMove = m
	showMessage(sc.pos.ToDisplayText(sc.g), sc.l.Stderr())
	outcome, lineMask := sc.pos.DetermineState(sc.g, m)
	switch outcome {
	case game.Won:
		cols := lo.Map(lineMask.Squares(), func(sq int, _ int) string {
			return fmt.Sprintf("(%d,%d)", sc.g.RowOfSquare(sq), sc.g.ColOfSquare(sq))
		})
		showMessage(fmt.Sprintf("%s wins on %s", sc.pos.Winner(lineMask), strings.Join(cols, " ")), sc.l.Stderr())
		sc.over = true
	case game.Drawn:
		showMessage("game drawn", sc.l.Stderr())
		sc.over = true
	}
}

func (sc *ShellController) showStats() {
	st := sc.lastStats
	showMessage(sc.printer.Sprintf(
		"nodes %d, cache lookups %d, hits %d, stores %d, cutoffs %d, killer wins %d, forced blocks %d",
		st.Nodes, st.Lookups, st.Hits, st.Stores, st.Cutoffs, st.KillerWins, st.ForcedBlocks),
		sc.l.Stderr())
}
