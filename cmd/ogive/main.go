// Command ogive evaluates a nose-cone design file and writes the resulting
// meshes as JSON.
//
//	ogive [-config ogive.gcfg] [-o out.json] design.ogive
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/ogive"
	"github.com/chazu/ogive/pkg/config"
)

func main() {
	var (
		configPath, outPath string
		example             bool
	)
	flag.StringVar(&configPath, "config", "", "generator settings file; defaults apply when empty")
	flag.StringVar(&outPath, "o", "", "output file; stdout when empty")
	flag.BoolVar(&example, "example", false, "print an example settings file and exit")
	flag.Parse()

	if example {
		fmt.Print(config.ExampleFile)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ogive [-config file] [-o out.json] design.ogive")
		os.Exit(2)
	}

	if err := run(configPath, flag.Arg(0), outPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, sourcePath, outPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	g, err := ogive.New(cfg)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}
	result := g.Evaluate(string(source))
	for _, e := range result.Errors {
		log.Printf("%s: %s", location(sourcePath, e), e.Message)
	}

	if err := writeResult(result, outPath); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%s: %d error(s)", sourcePath, len(result.Errors))
	}
	return nil
}

// writeResult encodes result to outPath, or stdout when outPath is empty.
func writeResult(result ogive.EvalResult, outPath string) error {
	if outPath == "" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	return encodeAndClose(f, result)
}

// encodeAndClose reports a failed Close, which is where buffered writes to
// a file surface.
func encodeAndClose(wc io.WriteCloser, result ogive.EvalResult) error {
	if err := json.NewEncoder(wc).Encode(result); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func location(path string, e ogive.EvalErrorData) string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d", path, e.Line)
	case e.Part != "":
		return fmt.Sprintf("%s (%s)", path, e.Part)
	}
	return path
}
