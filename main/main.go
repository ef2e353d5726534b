/*
File    : monkey/main/main.go
Package : main
*/

// Package main is the command-line entry point: run a source file, or fall
// into the REPL by default. Flags: --help/-h, --version/-v.
package main

import (
	"bytes"
	"os"

	"github.com/fatih/color"
	"github.com/gomix-lang/monkey/builtin"
	"github.com/gomix-lang/monkey/evaluator"
	"github.com/gomix-lang/monkey/lexer"
	"github.com/gomix-lang/monkey/object"
	"github.com/gomix-lang/monkey/parser"
	"github.com/gomix-lang/monkey/repl"
)

var (
	version = "v0.1.0"
	line    = "----------------------------------------------------------------"
	prompt  = "monkey >>> "
	banner  = `
  __  __             _
 |  \/  | ___  _ __ | | _____ _   _
 | |\/| |/ _ \| '_ \| |/ / _ \ | | |
 | |  | | (_) | | | |   <  __/ |_| |
 |_|  |_|\___/|_| |_|_|\_\___|\__, |
                               |___/
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		default:
			runFile(os.Args[1])
			return
		}
	}

	cfg, err := repl.LoadConfig(".go-mix.yaml")
	if err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
		os.Exit(1)
	}
	r := repl.New(banner, version, line, prompt, cfg)
	if err := r.Start(os.Stdout); err != nil {
		redColor.Fprintf(os.Stderr, "[REPL ERROR] %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	cyanColor.Println("monkey - a small interpreted language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  monkey                 start the interactive REPL")
	yellowColor.Println("  monkey <path-to-file>  run a monkey source file")
	yellowColor.Println("  monkey --help          show this message")
	yellowColor.Println("  monkey --version       show version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  :mode <tokenizer|parser|interpreter>   switch REPL mode")
	yellowColor.Println("  reset                                   clear the global environment")
	yellowColor.Println("  quit / exit / bye                       leave the REPL")
}

func showVersion() {
	cyanColor.Println("monkey - a small interpreted language")
	cyanColor.Printf("Version: %s\n", version)
}

// runFile parses and evaluates src, printing the final result's display
// form to stdout unless it is Null, and exiting non-zero on parse or
// evaluation errors.
func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %q: %v\n", path, err)
		os.Exit(1)
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, e := range p.Errors() {
			redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", e)
		}
		os.Exit(1)
	}

	var out bytes.Buffer
	ev := evaluator.New(builtin.New(&out))
	env := ev.NewGlobalEnvironment()
	result := ev.Eval(program, env)
	os.Stdout.Write(out.Bytes())

	if result == nil {
		return
	}
	if result.GetType() == object.ERROR {
		redColor.Fprintln(os.Stderr, result.ToString())
		os.Exit(1)
	}
	if result.GetType() != object.NULL {
		yellowColor.Fprintln(os.Stdout, result.ToString())
	}
}
