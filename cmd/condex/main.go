/*
 * condex
 *
 * Copyright 2026 The condex Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Command condex is the invocation shell around the core: it collects the
--ast/--globals flags, reads standard input line by line, drives the
parser and executor, and prints the optional AST/globals dumps and
diagnostics the core's per-kind semantics produce. None of the
parsing/execution logic lives here; this file is the thin external
collaborator described in spec.md section 1.
*/
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dathos/condex/config"
	"github.com/dathos/condex/interpreter"
	"github.com/dathos/condex/parser"
	"github.com/dathos/condex/scope"
	"github.com/dathos/condex/util"
)

const hrule = "=-=-=-=-=-=-=-=-=-="

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true

	astDump := flags.Bool("ast", false, "pretty-print the AST before execution")
	globalsDump := flags.Bool("globals", false, "print the final global variable table after execution")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	// The mandated §6.2 diagnostic text is printed directly by Diagnostics
	// itself; this logger only collects the interpreter's own operational
	// log messages (severity-routed LogError/LogInfo calls), bounded by
	// config.MemoryLogSize the way the teacher bounds its own in-memory log.
	logger := util.NewMemoryLogger(config.Int(config.MemoryLogSize))
	diags := util.NewDiagnostics(logger)
	p := parser.NewParser(diags)

	for i, line := range lines {
		p.ParseLine(line, i)
		if diags.HasFatal() {
			break
		}
	}

	if *astDump {
		fmt.Println(hrule)
		fmt.Print(p.Tree.PrettyPrint())
		fmt.Println(hrule)
	}

	env := scope.NewEnv()

	if !diags.HasFatal() {
		lineText := func(idx int) string {
			if idx < 0 || idx >= len(lines) {
				return ""
			}
			return lines[idx]
		}

		ex := interpreter.NewExecutor(p.Tree, env, diags, lineText)
		ex.Run()
	}

	if *globalsDump {
		fmt.Println(hrule)
		for _, pair := range env.Globals() {
			fmt.Printf("%s : %s\n", pair.Name, scope.EvalToString(pair.Value))
		}
		fmt.Println(hrule)
	}

	if diags.HasFatal() {
		fmt.Println("Interpreter Terminated")
		return 1
	}
	return 0
}
