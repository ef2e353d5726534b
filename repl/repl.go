/*
File    : monkey/repl/repl.go
Package : repl
*/

// Package repl implements the interactive Read-Eval-Print Loop: a readline
// prompt that routes each input line through one of three modes —
// tokenizer, parser, interpreter — sharing a single evaluator environment
// across lines until the user types reset.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/gomix-lang/monkey/builtin"
	"github.com/gomix-lang/monkey/environment"
	"github.com/gomix-lang/monkey/evaluator"
	"github.com/gomix-lang/monkey/lexer"
	"github.com/gomix-lang/monkey/object"
	"github.com/gomix-lang/monkey/parser"
	"github.com/gomix-lang/monkey/token"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const (
	ModeTokenizer   = "tokenizer"
	ModeParser      = "parser"
	ModeInterpreter = "interpreter"
)

var exitWords = map[string]bool{"quit": true, "exit": true, "bye": true}

// Repl holds the cosmetic configuration (banner, prompt, …) plus the mode
// and environment state that persist across input lines.
type Repl struct {
	Banner     string
	Version    string
	Line       string
	Prompt     string
	ShowBanner bool

	mode string
	ev   *evaluator.Evaluator
	env  *environment.Environment
}

// New builds a Repl, applying cfg over built-in defaults; a zero-value cfg
// (no .go-mix.yaml found) leaves every default untouched.
func New(banner, version, line, prompt string, cfg Config) *Repl {
	r := &Repl{
		Banner:     banner,
		Version:    version,
		Line:       line,
		Prompt:     prompt,
		ShowBanner: true,
		mode:       ModeInterpreter,
	}
	if cfg.Prompt != "" {
		r.Prompt = cfg.Prompt
	}
	if cfg.ShowBanner != nil {
		r.ShowBanner = *cfg.ShowBanner
	}
	if cfg.Mode != "" {
		r.mode = cfg.Mode
	}
	return r
}

func (r *Repl) printBanner(w io.Writer) {
	if !r.ShowBanner {
		return
	}
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "Version: %s | Mode: %s\n", r.Version, r.mode)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type Monkey code and press enter.")
	cyanColor.Fprintln(w, "Commands: :mode <tokenizer|parser|interpreter>, reset, quit/exit/bye")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop until an exit word, reading via readline so history
// and line editing work, and writing to w — the same writer handed to the
// evaluator's print builtin so output interleaves in the order it happens.
func (r *Repl) Start(w io.Writer) error {
	r.resetEvaluator(w)
	r.printBanner(w)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt, Stdout: w})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl+D) or readline.ErrInterrupt
			fmt.Fprintln(w, "Good bye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if exitWords[line] {
			fmt.Fprintln(w, "Good bye!")
			return nil
		}
		if line == "reset" {
			r.resetEvaluator(w)
			cyanColor.Fprintln(w, "environment reset")
			continue
		}
		if strings.HasPrefix(line, ":mode") {
			r.handleModeCommand(w, line)
			continue
		}

		r.execute(w, line)
	}
}

func (r *Repl) resetEvaluator(w io.Writer) {
	r.ev = evaluator.New(builtin.New(w))
	r.env = r.ev.NewGlobalEnvironment()
}

func (r *Repl) handleModeCommand(w io.Writer, line string) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		redColor.Fprintln(w, "usage: :mode <tokenizer|parser|interpreter>")
		return
	}
	switch parts[1] {
	case ModeTokenizer, ModeParser, ModeInterpreter:
		r.mode = parts[1]
		cyanColor.Fprintf(w, "mode set to %s\n", r.mode)
	default:
		redColor.Fprintf(w, "unknown mode: %s\n", parts[1])
	}
}

func (r *Repl) execute(w io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(w, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	switch r.mode {
	case ModeTokenizer:
		r.runTokenizer(w, line)
	case ModeParser:
		r.runParser(w, line)
	default:
		r.runInterpreter(w, line)
	}
}

func (r *Repl) runTokenizer(w io.Writer, line string) {
	l := lexer.New(line)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		yellowColor.Fprintf(w, "%+v\n", tok)
	}
}

func (r *Repl) runParser(w io.Writer, line string) {
	p := parser.New(lexer.New(line))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			redColor.Fprintln(w, e)
		}
		return
	}
	yellowColor.Fprintln(w, program.String())
}

func (r *Repl) runInterpreter(w io.Writer, line string) {
	p := parser.New(lexer.New(line))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			redColor.Fprintln(w, e)
		}
		return
	}

	result := r.ev.Eval(program, r.env)
	if result == nil {
		return
	}
	if result.GetType() == object.ERROR {
		redColor.Fprintln(w, result.ToString())
		return
	}
	yellowColor.Fprintln(w, result.ToString())
}
