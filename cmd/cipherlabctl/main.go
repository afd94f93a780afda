// Command cipherlabctl drives the cipher engine from the command line:
// enumerating algorithms, running transforms, generating key material, and
// managing saved recipes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/RowanDark/cipherlab/internal/cipher"
	"github.com/RowanDark/cipherlab/internal/config"
	"github.com/RowanDark/cipherlab/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	log := logging.New(cfg.Log, stderr)

	opts := cipher.Options{
		Policy:     cfg.AlphabetPolicy(),
		Filler:     cfg.FillerRune(),
		RSAMaxBits: cfg.RSAMaxBits,
	}
	engine, err := cipher.NewDefaultEngine(opts)
	if err != nil {
		fmt.Fprintf(stderr, "build engine: %v\n", err)
		return 1
	}

	app := &app{cfg: cfg, engine: engine, log: log, stdout: stdout, stderr: stderr}

	switch args[0] {
	case "list":
		return app.runList(args[1:])
	case "encrypt":
		return app.runTransform(args[1:], false)
	case "decrypt":
		return app.runTransform(args[1:], true)
	case "keygen":
		return app.runKeygen(args[1:])
	case "recipe":
		return app.runRecipe(args[1:])
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: cipherlabctl <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  list      enumerate available algorithms")
	fmt.Fprintln(w, "  encrypt   run an algorithm's forward transform")
	fmt.Fprintln(w, "  decrypt   run an algorithm's inverse transform")
	fmt.Fprintln(w, "  keygen    generate a one-time pad or RSA keypair")
	fmt.Fprintln(w, "  recipe    save, list, run, and delete cipher pipelines")
}

type app struct {
	cfg    config.Config
	engine *cipher.Engine
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// paramFlags collects repeated -param name=value flags into an engine
// parameter map. Values stay strings; the params layer converts.
func paramFlags(fs *flag.FlagSet) map[string]any {
	params := make(map[string]any)
	fs.Func("param", "key parameter as name=value (repeatable)", func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return fmt.Errorf("want name=value, got %q", s)
		}
		params[name] = value
		return nil
	})
	return params
}

func (a *app) runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	family := fs.String("family", "", "only show one family")
	asJSON := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var metas []cipher.Metadata
	if *family != "" {
		metas = a.engine.Registry().ByFamily(cipher.Family(*family))
	} else {
		metas = a.engine.ListAlgorithms()
	}

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metas); err != nil {
			fmt.Fprintf(a.stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	for _, m := range metas {
		fmt.Fprintf(a.stdout, "%-16s %-16s %s\n", m.ID, m.Family, m.Name)
		fmt.Fprintf(a.stdout, "%-16s %-16s key: %s\n", "", "", m.KeyHint)
	}
	return 0
}

func (a *app) runTransform(args []string, inverse bool) int {
	name := "encrypt"
	if inverse {
		name = "decrypt"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	alg := fs.String("alg", "", "algorithm id (see list)")
	text := fs.String("text", "", "input text")
	stdin := fs.Bool("stdin", false, "read input text from stdin")
	showSteps := fs.Bool("steps", false, "print worked steps when available")
	asJSON := fs.Bool("json", false, "emit the full result as JSON")
	params := paramFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *alg == "" {
		fmt.Fprintln(a.stderr, "-alg is required")
		return 2
	}

	input := *text
	if *stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(a.stderr, "read stdin: %v\n", err)
			return 1
		}
		input = strings.TrimRight(string(data), "\n")
	}

	var res *cipher.Result
	var err error
	if inverse {
		res, err = a.engine.Decrypt(*alg, input, params)
	} else {
		res, err = a.engine.Encrypt(*alg, input, params)
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "%s: %v\n", name, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(a.stderr, "encode: %v\n", err)
			return 1
		}
		return 0
	}

	if *showSteps {
		for _, step := range res.Steps {
			fmt.Fprintf(a.stderr, "  %s\n", step)
		}
	}
	fmt.Fprintln(a.stdout, res.Output)
	return 0
}

func (a *app) runKeygen(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "keygen subcommand required: pad or rsa")
		return 2
	}

	switch args[0] {
	case "pad":
		fs := flag.NewFlagSet("keygen pad", flag.ContinueOnError)
		fs.SetOutput(a.stderr)
		letters := fs.Int("letters", 0, "pad length in letters")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		pad, err := a.engine.GeneratePad(*letters)
		if err != nil {
			fmt.Fprintf(a.stderr, "keygen pad: %v\n", err)
			return 1
		}
		fmt.Fprintln(a.stdout, pad)
		return 0

	case "rsa":
		fs := flag.NewFlagSet("keygen rsa", flag.ContinueOnError)
		fs.SetOutput(a.stderr)
		bits := fs.Int("bits", 2048, "modulus size in bits")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		key, err := a.engine.GenerateRSAKey(*bits)
		if err != nil {
			fmt.Fprintf(a.stderr, "keygen rsa: %v\n", err)
			return 1
		}
		out := map[string]string{
			"n": key.N.String(),
			"e": key.E.String(),
			"d": key.D.String(),
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(a.stderr, "encode: %v\n", err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(a.stderr, "unknown keygen subcommand: %s\n", args[0])
		return 2
	}
}

func (a *app) recipeStore() (*cipher.RecipeStore, error) {
	dir := a.cfg.RecipeDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".cipherlab", "recipes")
	}
	store := cipher.NewRecipeStore(dir, a.log)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *app) runRecipe(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "recipe subcommand required: save, list, run, or delete")
		return 2
	}

	store, err := a.recipeStore()
	if err != nil {
		fmt.Fprintf(a.stderr, "open recipe store: %v\n", err)
		return 1
	}

	switch args[0] {
	case "save":
		fs := flag.NewFlagSet("recipe save", flag.ContinueOnError)
		fs.SetOutput(a.stderr)
		name := fs.String("name", "", "recipe name")
		file := fs.String("file", "", "JSON file describing the pipeline")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if *name == "" || *file == "" {
			fmt.Fprintln(a.stderr, "-name and -file are required")
			return 2
		}
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(a.stderr, "read pipeline: %v\n", err)
			return 1
		}
		recipe := cipher.Recipe{Name: *name}
		if err := json.Unmarshal(data, &recipe.Pipeline); err != nil {
			fmt.Fprintf(a.stderr, "parse pipeline: %v\n", err)
			return 1
		}
		if err := recipe.Pipeline.Validate(a.engine); err != nil {
			fmt.Fprintf(a.stderr, "invalid pipeline: %v\n", err)
			return 1
		}
		if err := store.Save(&recipe); err != nil {
			fmt.Fprintf(a.stderr, "save recipe: %v\n", err)
			return 1
		}
		fmt.Fprintf(a.stdout, "saved recipe %s (%d steps)\n", recipe.Name, len(recipe.Pipeline.Steps))
		return 0

	case "list":
		for _, r := range store.List() {
			steps := make([]string, 0, len(r.Pipeline.Steps))
			for _, s := range r.Pipeline.Steps {
				steps = append(steps, s.Algorithm)
			}
			fmt.Fprintf(a.stdout, "%-24s %s\n", r.Name, strings.Join(steps, " -> "))
		}
		return 0

	case "run":
		fs := flag.NewFlagSet("recipe run", flag.ContinueOnError)
		fs.SetOutput(a.stderr)
		name := fs.String("name", "", "recipe name")
		text := fs.String("text", "", "input text")
		inverse := fs.Bool("decrypt", false, "run the pipeline in reverse")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		recipe, ok := store.Get(*name)
		if !ok {
			fmt.Fprintf(a.stderr, "no recipe named %q\n", *name)
			return 1
		}
		var out string
		if *inverse {
			out, err = recipe.Pipeline.Decrypt(a.engine, *text)
		} else {
			out, err = recipe.Pipeline.Encrypt(a.engine, *text)
		}
		if err != nil {
			fmt.Fprintf(a.stderr, "run recipe: %v\n", err)
			return 1
		}
		fmt.Fprintln(a.stdout, out)
		return 0

	case "delete":
		fs := flag.NewFlagSet("recipe delete", flag.ContinueOnError)
		fs.SetOutput(a.stderr)
		name := fs.String("name", "", "recipe name")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if err := store.Delete(*name); err != nil {
			fmt.Fprintf(a.stderr, "delete recipe: %v\n", err)
			return 1
		}
		fmt.Fprintf(a.stdout, "deleted recipe %s\n", *name)
		return 0

	default:
		fmt.Fprintf(a.stderr, "unknown recipe subcommand: %s\n", args[0])
		return 2
	}
}
