// lt - byte stream tokenizer CLI
//
// Usage:
//
//	lt tokens [flags] [file|-]   Print the tokens of a source
//	lt shell [flags]             Tokenize lines interactively
//	lt kinds                     Print the token kind table
//	lt version                   Print version info
//
// Gzip and zstd compressed files are inflated transparently.
// If no file is given, reads from stdin.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/Neumenon/lovetoken/lt"
)

const (
	version     = "0.3.0"
	historyFile = ".lt_history"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "tokens", "tok":
		os.Exit(cmdTokens(args, os.Stdin, os.Stdout, os.Stderr))
	case "shell", "repl":
		os.Exit(cmdShell(args))
	case "kinds":
		cmdKinds(os.Stdout)
	case "version", "-v", "--version":
		fmt.Printf("lt %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, usage)
}

const usage = `lt - byte stream tokenizer

Usage:
  lt tokens [flags] [file|-]   Print the tokens of a source
  lt shell [flags]             Tokenize lines interactively
  lt kinds                     Print the token kind table
  lt version                   Print version info

Flags (tokens and shell):
  -no-escape          Keep backslash escapes in literals verbatim
  -strip              Replace non-printable bytes in token text with spaces
  -from=ENC -to=ENC   Convert token text between encodings (e.g. ISO-8859-1, UTF-8)
  -strings=SET        String literal delimiters (default ")
  -chars=SET          Character literal delimiters (default ')
  -debug              Log engine activity to stderr

Flags (tokens only):
  -json               Print one JSON object per token
  -keep-going         Report assertions and keep tokenizing
  -digest             Print only the token count and SHA-256 digest

Text tokens print their text, other tokens print their kind name.
The first assertion stops tokenizing unless -keep-going is set.

Examples:
  echo 'x >= "a\tb"' | lt tokens
  # Output:
  # x
  # GreaterEqual
  # a	b
  # EndOfStream

  lt tokens -json -strings='"@' src.txt.gz
  lt tokens -digest src.txt
`

// engineFlags registers the flags that configure a session and returns
// a function building the options once fs is parsed.
func engineFlags(fs *flag.FlagSet, stderr io.Writer) func() []lt.Option {
	noEscape := fs.Bool("no-escape", false, "keep backslash escapes verbatim")
	strip := fs.Bool("strip", false, "replace non-printable bytes with spaces")
	from := fs.String("from", "", "source text encoding")
	to := fs.String("to", "", "target text encoding")
	stringSet := fs.String("strings", "", "string literal delimiters")
	charSet := fs.String("chars", "", "character literal delimiters")
	debug := fs.Bool("debug", false, "log engine activity to stderr")

	return func() []lt.Option {
		var opts []lt.Option
		if *noEscape {
			opts = append(opts, lt.WithEscapes(false))
		}
		if *strip {
			opts = append(opts, lt.WithStripInvalid())
		}
		if *from != "" || *to != "" {
			opts = append(opts, lt.WithConversion(*from, *to))
		}
		// Explicitly empty sets disable the literal kind.
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "strings":
				opts = append(opts, lt.WithStringDelimiters(*stringSet))
			case "chars":
				opts = append(opts, lt.WithCharDelimiters(*charSet))
			}
		})
		if *debug {
			h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
			opts = append(opts, lt.WithLogger(slog.New(h)))
		}
		return opts
	}
}

// tokenRecord is the -json output line.
type tokenRecord struct {
	Kind   string  `json:"kind"`
	Text   *string `json:"text,omitempty"`
	Offset int64   `json:"offset"`
}

func cmdTokens(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	options := engineFlags(fs, stderr)
	asJSON := fs.Bool("json", false, "print one JSON object per token")
	keepGoing := fs.Bool("keep-going", false, "keep tokenizing after an assertion")
	digest := fs.Bool("digest", false, "print the token count and digest only")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "lt tokens: at most one file")
		return 2
	}

	s := lt.New(options()...)
	defer s.Teardown()
	if failed, msg := s.Check(); failed {
		fmt.Fprintln(stderr, msg)
		return 1
	}

	var err error
	if name := fs.Arg(0); name != "" && name != "-" {
		err = s.Open(name)
	} else {
		err = s.OpenReader(stdin)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer s.Close()

	enc := json.NewEncoder(stdout)
	sum := lt.NewDigester()
	status := 0
	for {
		tok, err := s.Next()
		if lt.IsFatal(err) {
			fmt.Fprintln(stderr, err)
			return 1
		}

		if *digest {
			sum.Add(tok)
		} else if werr := printToken(stdout, enc, tok, *asJSON); werr != nil {
			fmt.Fprintf(stderr, "lt: write: %v\n", werr)
			return 1
		}

		if err != nil {
			fmt.Fprintln(stderr, err)
			status = 1
			if !*keepGoing {
				break
			}
		}
		if tok.Kind == lt.EndOfStream {
			break
		}
	}

	if *digest {
		fmt.Fprintf(stdout, "%d %s\n", sum.Count(), sum.Sum())
	}
	return status
}

func printToken(w io.Writer, enc *json.Encoder, tok lt.Token, asJSON bool) error {
	if asJSON {
		rec := tokenRecord{Kind: tok.Kind.String(), Offset: tok.Offset}
		if tok.HasText() {
			text := string(tok.Text)
			rec.Text = &text
		}
		return enc.Encode(rec)
	}

	if tok.HasText() {
		_, err := fmt.Fprintf(w, "%s\n", tok.Text)
		return err
	}
	_, err := fmt.Fprintln(w, tok.Kind)
	return err
}

func cmdKinds(w io.Writer) {
	for _, k := range lt.Kinds() {
		text := ""
		if k.HasText() {
			text = "text"
		}
		fmt.Fprintf(w, "%2d  %-20s %s\n", k, k, text)
	}
}

func cmdShell(args []string) int {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	options := engineFlags(fs, os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	opts := options()

	fmt.Printf("lt %s shell. Type :quit to exit, :kinds for the kind table.\n", version)

	histPath := os.Getenv("LT_HISTORY")
	if histPath == "" {
		home, _ := os.UserHomeDir()
		histPath = filepath.Join(home, historyFile)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt("lt> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fatal("prompt: %v", err)
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return 0
		case ":kinds":
			cmdKinds(os.Stdout)
			continue
		}
		ln.AppendHistory(line)

		out, err := tokenizeLine(line, opts)
		fmt.Println(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// tokenizeLine renders every token of line on one line of output.
// It returns the first assertion or fatal error.
func tokenizeLine(line string, opts []lt.Option) (string, error) {
	s := lt.New(opts...)
	defer s.Teardown()
	if err := s.Err(); err != nil {
		return "", err
	}
	if err := s.OpenReader(strings.NewReader(line)); err != nil {
		return "", err
	}

	toks, err := s.Tokenize()
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == lt.EndOfStream {
			continue
		}
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " "), err
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "lt: "+format+"\n", args...)
	os.Exit(1)
}
