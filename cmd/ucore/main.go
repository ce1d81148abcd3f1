// Copyright 2026, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ucore/machine"
	"github.com/ezrec/ucore/record"
)

func main() {
	var layout string
	var decode string
	var verbose bool

	flag.StringVar(&layout, "l", "", ".layout file to use (default: descriptor)")
	flag.StringVar(&decode, "d", "", "hex bytes to decode (default: encode field=value args)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	ma, err := machine.NewMachine()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	ly := record.Descriptor()
	if len(layout) != 0 {
		inf, err := os.Open(layout)
		if err != nil {
			log.Fatalf("%v: %v", layout, err)
		}
		defer inf.Close()

		parser := &record.Parser{Verbose: verbose}
		for key, value := range ma.Defines() {
			parser.Predefine(key, value)
		}

		ly, err = parser.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", layout, err)
		}
	}

	if len(decode) != 0 {
		b, err := hex.DecodeString(strings.ReplaceAll(decode, " ", ""))
		if err != nil {
			log.Fatalf("%v: %v", decode, err)
		}

		rec, err := ly.Decode(b)
		if err != nil {
			log.Fatal(err)
		}

		for fd := range ly.Fields() {
			fmt.Printf("%s\t0x%x\n", fd.Name, rec[fd.Name])
		}
		return
	}

	rec := record.Record{}
	for _, arg := range flag.Args() {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("%v: not a field=value pair", arg)
		}
		v64, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			log.Fatalf("%v: %v", arg, err)
		}
		rec[name] = v64
	}

	b, err := ly.Encode(rec)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("% X\n", b)
}
