package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	uec "github.com/LettuceAI/Unified-Entity-Cards"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "convert":
		convertCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "lint":
		lintCmd(os.Args[2:])
	case "assets":
		assetsCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uec CLI\n\nUsage:\n  uec validate [-strict] [-version V] FILE\n  uec convert -to V FILE\n  uec diff FILE_A FILE_B\n  uec lint FILE\n  uec assets FILE\n\nNotes:\n  - All commands read UEC JSON documents and print results to stdout.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var strict bool
	var version string
	fs.BoolVar(&strict, "strict", false, "use the strict validation profile")
	fs.StringVar(&version, "version", "", "additionally require this schema version")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	value := loadCard(fs.Arg(0))
	var result uec.ValidationResult
	if version != "" {
		result = uec.ValidateAtVersion(value, version, strict)
	} else {
		result = uec.Validate(value, strict)
	}
	if !result.OK {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
	fmt.Println("ok")
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var to string
	fs.StringVar(&to, "to", uec.SchemaVersionV2, "target schema version")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	card, ok := loadCard(fs.Arg(0)).(map[string]any)
	if !ok {
		fatalf("convert: %s: document is not an object", fs.Arg(0))
	}

	var out map[string]any
	if to == uec.SchemaVersion {
		result, err := uec.Downgrade(card, to, false)
		if err != nil {
			fatalf("convert: %v", err)
		}
		for _, w := range result.Warnings {
			fmt.Fprintln(os.Stderr, "warning: "+w)
		}
		out = result.Card
	} else {
		upgraded, err := uec.Upgrade(card, to)
		if err != nil {
			fatalf("convert: %v", err)
		}
		out = upgraded
	}

	text, err := uec.Stringify(out, 2)
	if err != nil {
		fatalf("convert: %v", err)
	}
	fmt.Println(text)
}

func diffCmd(args []string) {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	entries := uec.Diff(loadCard(args[0]), loadCard(args[1]))
	for _, entry := range entries {
		switch entry.Change {
		case uec.ChangeAdded:
			fmt.Printf("+ %s: %v\n", entry.Path, entry.After)
		case uec.ChangeRemoved:
			fmt.Printf("- %s: %v\n", entry.Path, entry.Before)
		default:
			fmt.Printf("~ %s: %v -> %v\n", entry.Path, entry.Before, entry.After)
		}
	}
	if len(entries) > 0 {
		os.Exit(1)
	}
}

func lintCmd(args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	result := uec.Lint(loadCard(args[0]))
	for _, w := range result.Warnings {
		fmt.Println("warning: " + w)
	}
	if !result.OK {
		os.Exit(1)
	}
	fmt.Println("ok")
}

func assetsCmd(args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	for _, ref := range uec.ExtractAssets(loadCard(args[0])) {
		fmt.Printf("%s\t%s\n", ref.Kind, ref.Path)
	}
}

// loadCard decodes without validating so each subcommand can report its own
// view of a broken document.
func loadCard(path string) any {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading %s: %v", path, err)
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		fatalf("%s: invalid JSON (%v)", path, err)
	}
	return value
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
