// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package record

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Parser reads textual layout definitions.
//
// A definition is one field per line, `name offset bits [bitoffset]`, with
// `;` comments and `.equ NAME VALUE` equates. Offsets and widths may be
// plain numbers, equates, predefines, or compile-time `$( ... )` starlark
// expressions over those symbols:
//
//	; interrupt gate
//	.equ BASE 0
//	offset_lo  $(BASE)    16
//	selector   $(BASE+2)  16
//	flags      5          8
//
// Fields split on whitespace, so expressions must not contain spaces.
type Parser struct {
	Verbose bool // Set to enable per-line parse logging.

	equate    map[string]string
	predefine map[string]string
}

// Predefine declares a symbol available to equates and expressions, such
// as a machine define.
func (ps *Parser) Predefine(equ string, value string) {
	if ps.predefine == nil {
		ps.predefine = map[string]string{equ: value}
	} else {
		ps.predefine[equ] = value
	}
}

// valueOf resolves a number, equate, or $(...) expression to an integer.
// Equates may refer to other equates; names already walked fail with
// ErrEquateCycle rather than looping.
func (ps *Parser) valueOf(word string) (value uint64, err error) {
	var seen map[string]bool
	for {
		if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
			return ps.parenEval(word[2 : len(word)-1])
		}

		resolved, ok := ps.equate[word]
		if !ok {
			break
		}
		if seen[word] {
			err = ErrEquateCycle(word)
			return
		}
		if seen == nil {
			seen = map[string]bool{}
		}
		seen[word] = true
		word = resolved
	}

	value, err = strconv.ParseUint(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations.
func (ps *Parser) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ps.equate {
		var v64 uint64
		v64, err = ps.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeUint64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// Parse reads a layout definition and constructs its Layout. Errors carry
// the offending line number and text.
func (ps *Parser) Parse(input io.Reader) (ly *Layout, err error) {
	fields, err := ps.parseFields(input)
	if err != nil {
		return
	}

	ly, err = NewLayout(fields...)
	return
}

func (ps *Parser) parseFields(input io.Reader) (fields []Field, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ps.equate = map[string]string{}
	for attr, val := range ps.predefine {
		ps.equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if ps.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		if len(words) == 0 {
			continue
		}

		// .equ NAME VALUE
		if words[0] == ".equ" {
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			if _, ok := ps.equate[words[1]]; ok {
				err = ErrEquateDuplicate
				return
			}
			ps.equate[words[1]] = words[2]
			continue
		}

		// name offset bits [bitoffset]
		if len(words) < 3 || len(words) > 4 {
			err = ErrFieldSyntax
			return
		}

		fd := Field{Name: words[0]}

		var v64 uint64
		v64, err = ps.valueOf(words[1])
		if err != nil {
			return
		}
		fd.Offset = uint(v64)

		v64, err = ps.valueOf(words[2])
		if err != nil {
			return
		}
		fd.Bits = uint(v64)

		if len(words) == 4 {
			v64, err = ps.valueOf(words[3])
			if err != nil {
				return
			}
			fd.BitOffset = uint(v64)
		}

		fields = append(fields, fd)
	}

	err = scanner.Err()
	return
}
