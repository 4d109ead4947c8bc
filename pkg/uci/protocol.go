package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
)

var errSearchRunning = errors.New("search still run")

type Engine interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams) common.SearchInfo
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	logger       zerolog.Logger
	out          io.Writer
	position     *common.Position
	thinking     bool
	engineOutput chan common.SearchInfo
	cancel       context.CancelFunc
	searchResult common.SearchInfo
}

func New(name, author, version string, engine Engine, options []Option, logger zerolog.Logger) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:     name,
		author:   author,
		version:  version,
		engine:   engine,
		options:  options,
		logger:   logger,
		position: initPosition,
	}
}

// Run serves UCI commands from in until quit, end of input or ctx cancellation.
// A search still running at end of input is allowed to finish and report its bestmove.
func (uci *Protocol) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	uci.out = out
	var done = make(chan struct{})
	defer close(done)

	var commands = make(chan string)
	go func() {
		defer close(commands)
		readCommands(in, commands, done)
	}()

	for {
		select {
		case <-ctx.Done():
			uci.stopSearch()
			return ctx.Err()
		case si, ok := <-uci.engineOutput:
			uci.onEngineOutput(si, ok)
		case commandLine, ok := <-commands:
			if !ok {
				uci.waitSearch()
				return nil
			}
			if commandLine == "quit" {
				uci.stopSearch()
				return nil
			}
			var err = uci.handle(commandLine)
			if err != nil {
				uci.logger.Warn().Err(err).Str("command", commandLine).Msg("uci-command-failed")
			}
		}
	}
}

func readCommands(in io.Reader, commands chan<- string, done <-chan struct{}) {
	var scanner = bufio.NewScanner(in)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "" {
			continue
		}
		select {
		case commands <- commandLine:
		case <-done:
			return
		}
		if commandLine == "quit" {
			return
		}
	}
}

func (uci *Protocol) onEngineOutput(si common.SearchInfo, ok bool) {
	if ok {
		fmt.Fprintln(uci.out, searchInfoToUci(si))
		uci.searchResult = si
		return
	}
	if len(uci.searchResult.MainLine) != 0 {
		fmt.Fprintf(uci.out, "bestmove %v\n", uci.searchResult.MainLine[0])
	} else {
		fmt.Fprintln(uci.out, "bestmove 0000")
	}
	uci.thinking = false
	uci.cancel = nil
	uci.engineOutput = nil
	uci.searchResult = common.SearchInfo{}
}

func (uci *Protocol) waitSearch() {
	for uci.thinking {
		var si, ok = <-uci.engineOutput
		uci.onEngineOutput(si, ok)
	}
}

func (uci *Protocol) stopSearch() {
	if uci.thinking {
		uci.cancel()
		uci.waitSearch()
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if uci.thinking {
		if commandName == "stop" {
			uci.cancel()
			return nil
		}
		if commandName == "isready" {
			return uci.isReadyCommand(fields)
		}
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "isready":
		h = uci.isReadyCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "stop":
		return nil
	}

	if h == nil {
		return errors.New("command not found")
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.out, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.out, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.out, option.UciString())
	}
	fmt.Fprintln(uci.out, "uciok")
	return nil
}

// setoption name <name> value <value>
func (uci *Protocol) setOptionCommand(fields []string) error {
	var nameIndex = lo.IndexOf(fields, "name")
	var valueIndex = lo.IndexOf(fields, "value")
	if nameIndex != 0 || valueIndex < 2 || valueIndex+1 >= len(fields) {
		return errors.New("invalid setoption arguments")
	}
	var name = strings.Join(fields[nameIndex+1:valueIndex], " ")
	var value = strings.Join(fields[valueIndex+1:], " ")
	var option, found = lo.Find(uci.options, func(o Option) bool {
		return strings.EqualFold(o.UciName(), name)
	})
	if !found {
		return fmt.Errorf("unhandled option %q", name)
	}
	if err := option.Set(value); err != nil {
		return fmt.Errorf("option %v: %w", name, err)
	}
	uci.logger.Debug().Str("name", name).Str("value", value).Msg("uci-option-set")
	return nil
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	if !uci.thinking {
		uci.engine.Prepare()
	}
	fmt.Fprintln(uci.out, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("empty position command")
	}
	var token = fields[0]
	var fen string
	var movesIndex = lo.IndexOf(fields, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(fields[1:], " ")
		} else {
			fen = strings.Join(fields[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	if movesIndex >= 0 {
		for _, smove := range fields[movesIndex+1:] {
			if !p.MakeMoveLAN(smove) {
				return fmt.Errorf("parse move failed %v", smove)
			}
		}
	}
	uci.position = p
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var limits, err = parseLimits(fields)
	if err != nil {
		return err
	}
	var ctx, cancel = context.WithCancel(context.Background())
	uci.cancel = cancel
	uci.thinking = true
	var engineOutput = make(chan common.SearchInfo, 3)
	uci.engineOutput = engineOutput
	var position = uci.position
	go func() {
		defer cancel()
		var searchResult = uci.engine.Search(ctx, common.SearchParams{
			Position: position,
			Limits:   limits,
			Progress: func(si common.SearchInfo) {
				select {
				case engineOutput <- si:
				default:
				}
			},
		})
		engineOutput <- searchResult
		close(engineOutput)
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func searchInfoToUci(si common.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Nodes, si.Time, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

func parseLimits(args []string) (result common.LimitsType, err error) {
	var intArg = func(i int, dst *int) {
		if err != nil {
			return
		}
		if i+1 >= len(args) {
			err = fmt.Errorf("missing value for %v", args[i])
			return
		}
		*dst, err = strconv.Atoi(args[i+1])
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			intArg(i, &result.WhiteTime)
			i++
		case "btime":
			intArg(i, &result.BlackTime)
			i++
		case "winc":
			intArg(i, &result.WhiteIncrement)
			i++
		case "binc":
			intArg(i, &result.BlackIncrement)
			i++
		case "movestogo":
			intArg(i, &result.MovesToGo)
			i++
		case "depth":
			intArg(i, &result.Depth)
			i++
		case "nodes":
			intArg(i, &result.Nodes)
			i++
		case "movetime":
			intArg(i, &result.MoveTime)
			i++
		case "infinite":
			result.Infinite = true
		}
	}
	return
}
