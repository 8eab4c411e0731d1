// Package shell is an interactive console for stepping through games,
// inspecting generated moves and saving or loading game records.
package shell

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/game"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

const defaultGenPlays = 15

var (
	errNoData            = errors.New("no data in command")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game loaded; use `new` or `load`")
	errExit              = errors.New("exit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	catalog     *shape.Catalog
	game        *game.Game
	scorerNames [board.NumPlayers]string
	seed        []byte
	curPlays    []*move.Move
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

func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{
		out:     out,
		config:  cfg,
		catalog: shape.Default(),
	}
	copy(sc.scorerNames[:], cfg.GetStringSlice(config.ConfigScorers))
	return sc
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mblockade>\033[0m ",
		HistoryFile:     "/tmp/blockade-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a command line into the command, its positional
// arguments and its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		// negative numbers are arguments, not options
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if _, err := strconv.Atoi(f); err != nil {
				if idx == len(fields)-1 {
					return nil, errWrongOptionSyntax
				}
				options[f[1:]] = fields[idx+1]
				idx++
				continue
			}
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs one command line and returns what it printed.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	return sc.dispatch(cmd)
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "seed":
		return sc.setSeed(cmd)
	case "gen":
		return sc.generate(cmd)
	case "play":
		return sc.play(cmd)
	case "turn":
		return sc.turn(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "show":
		return sc.show(cmd)
	case "export":
		return sc.export(cmd)
	case "load":
		return sc.load(cmd)
	case "script":
		return sc.script(cmd)
	case "gid":
		return sc.gid(cmd)
	case "analyze":
		return sc.analyze(cmd)
	case "seeds":
		return sc.seeds(cmd)
	case "results":
		return sc.results(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
	return nil, errors.New("command " + strconv.Quote(cmd.cmd) + " not found")
}

// Loop reads commands until exit, EOF or an interrupt on an empty line,
// then signals sig.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.Execute(line)
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("Exiting readline loop...")
}
