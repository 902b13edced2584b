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
Package util contains utility definitions and functions for the condex
interpreter: logging, diagnostics and the fatal-termination signal.
*/
package util

import (
	"fmt"
)

/*
Severity classifies a Diagnostic as recoverable or fatal.
*/
type Severity int

/*
Diagnostic severities.
*/
const (
	Warning Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "Error"
	}
	return "Warning"
}

/*
Diagnostic is a single lexical, structural or semantic finding tied to a
source line. Diagnostics are flat and line-localized: there is no
exception machinery threading a cause chain through component boundaries.
*/
type Diagnostic struct {
	Severity Severity
	Line     int    // zero-based source line index
	Source   string // the offending source line text, as fed to the lexer
	Message  string
}

/*
NewWarning creates a non-fatal Diagnostic.
*/
func NewWarning(line int, source string, message string) *Diagnostic {
	return &Diagnostic{Warning, line, source, message}
}

/*
NewFatal creates a fatal Diagnostic.
*/
func NewFatal(line int, source string, message string) *Diagnostic {
	return &Diagnostic{Fatal, line, source, message}
}

/*
Error returns a human-readable, multi-line representation matching the
mandated diagnostic output format, terminated by a blank line:

	Error|Warning: on Line <N>
	>>> <source line text>
	<message>

*/
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%v: on Line %d\n>>> %s\n%s\n\n", d.Severity, d.Line+1, d.Source, d.Message)
}

/*
IsFatal reports whether this diagnostic should terminate the interpreter.
*/
func (d *Diagnostic) IsFatal() bool {
	return d.Severity == Fatal
}

/*
Diagnostics collects and prints diagnostics in the order they are raised
and remembers whether a fatal one was seen, for the caller to decide on
process exit status per the termination policy.
*/
type Diagnostics struct {
	Logger Logger
	items  []*Diagnostic
	fatal  bool
}

/*
NewDiagnostics returns a new, empty Diagnostics collector. A nil logger
is replaced with a NullLogger.
*/
func NewDiagnostics(logger Logger) *Diagnostics {
	if logger == nil {
		logger = NewNullLogger()
	}
	return &Diagnostics{Logger: logger}
}

/*
Add records a diagnostic, prints it immediately and tracks fatality.
*/
func (d *Diagnostics) Add(diag *Diagnostic) {
	d.items = append(d.items, diag)

	fmt.Print(diag.Error())

	if diag.IsFatal() {
		d.fatal = true
		d.Logger.LogError(diag.Message)
	} else {
		d.Logger.LogInfo(diag.Message)
	}
}

/*
Warnf records a non-fatal diagnostic.
*/
func (d *Diagnostics) Warnf(line int, source string, format string, args ...interface{}) {
	d.Add(NewWarning(line, source, fmt.Sprintf(format, args...)))
}

/*
Fatalf records a fatal diagnostic.
*/
func (d *Diagnostics) Fatalf(line int, source string, format string, args ...interface{}) {
	d.Add(NewFatal(line, source, fmt.Sprintf(format, args...)))
}

/*
HasFatal reports whether a fatal diagnostic has been recorded.
*/
func (d *Diagnostics) HasFatal() bool {
	return d.fatal
}

/*
All returns every diagnostic recorded so far, in order.
*/
func (d *Diagnostics) All() []*Diagnostic {
	return d.items
}
