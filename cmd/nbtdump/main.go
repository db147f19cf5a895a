// Command nbtdump parses a single NBT file and prints its contents.
//
//	nbtdump [-unnamed] path/to/file.nbt
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/go-nbt/nbt"
	"github.com/go-nbt/nbt/mutf8"
)

func main() {
	unnamed := flag.Bool("unnamed", false, "parse the root compound without a leading name field")
	verbose := flag.Bool("v", false, "log parse diagnostics to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nbtdump [-unnamed] [-v] path/to/file.nbt")
		os.Exit(2)
	}

	logger := zerolog.Nop()
	if *verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "nbtdump: %v\n", err)
		os.Exit(1)
	}

	opts := nbt.DefaultOptions()
	opts.Logger = logger
	opts.Unnamed = *unnamed

	doc, err := nbt.ReadOptions(data, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nbtdump: %v\n", err)
		os.Exit(1)
	}

	if doc.IsNone() {
		fmt.Println("(empty document)")
		return
	}

	base := doc.Unwrap()
	fmt.Printf("root %q:\n", base.Name().String())
	dumpCompound(base.Compound(), 1)
}

func dumpCompound(c nbt.Compound, indent int) {
	c.Each(func(name mutf8.Str, tag nbt.Tag) bool {
		printTag(name.String(), tag, indent)
		return true
	})
}

func printTag(name string, tag nbt.Tag, indent int) {
	pad := indentString(indent)
	switch tag.Kind() {
	case 1:
		v, _ := tag.Byte()
		fmt.Printf("%sByte(%q) = %d\n", pad, name, v)
	case 2:
		v, _ := tag.Short()
		fmt.Printf("%sShort(%q) = %d\n", pad, name, v)
	case 3:
		v, _ := tag.Int()
		fmt.Printf("%sInt(%q) = %d\n", pad, name, v)
	case 4:
		v, _ := tag.Long()
		fmt.Printf("%sLong(%q) = %d\n", pad, name, v)
	case 5:
		v, _ := tag.Float()
		fmt.Printf("%sFloat(%q) = %v\n", pad, name, v)
	case 6:
		v, _ := tag.Double()
		fmt.Printf("%sDouble(%q) = %v\n", pad, name, v)
	case 7:
		v, _ := tag.ByteArray()
		fmt.Printf("%sByteArray(%q) = %d bytes\n", pad, name, len(v))
	case 8:
		v, _ := tag.Str()
		fmt.Printf("%sString(%q) = %q\n", pad, name, v.String())
	case 10:
		fmt.Printf("%sCompound(%q):\n", pad, name)
		sub, _ := tag.Compound()
		dumpCompound(sub, indent+1)
	case 11:
		v, _ := tag.IntArray()
		fmt.Printf("%sIntArray(%q) = %d elements\n", pad, name, v.Len())
	case 12:
		v, _ := tag.LongArray()
		fmt.Printf("%sLongArray(%q) = %d elements\n", pad, name, v.Len())
	default:
		if tag.Kind().IsList() {
			l, _ := tag.List()
			fmt.Printf("%sList(%q) = %d elements\n", pad, name, l.Len())
		}
	}
}

func indentString(n int) string {
	b := make([]byte, n*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
