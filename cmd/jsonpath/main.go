// Package main implements a command-line utility that extracts data from
// a JSON (or YAML) body piped into it, according to RFC 9535.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/rfc9535/jsonpath"
)

func main() {
	app := &cli.App{
		Name:      "jsonpath",
		Usage:     "extract data from JSON according to RFC 9535",
		UsageText: "jsonpath [options] QUERY",
		Version:   gitrev(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yaml",
				Aliases: []string{"y"},
				Usage:   "read the input document as YAML",
			},
			&cli.BoolFlag{
				Name:    "located",
				Aliases: []string{"l"},
				Usage:   "emit normalized paths along with values",
			},
		},
		Action: parseAndPrint,
		Args:   true,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// gitrev returns the VCS revision recorded in the build info.
func gitrev() string {
	version := "(git revision unavailable)"

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, kv := range bi.Settings {
			if kv.Key == "vcs.revision" {
				version = kv.Value
			}
		}
	}

	return version
}

// parseAndPrint compiles the query argument, runs it against the document
// on stdin, and prints the result as JSON.
func parseAndPrint(ctx *cli.Context) error {
	q := ctx.Args().First()
	if q == "" {
		cli.ShowAppHelpAndExit(ctx, 1)
	}

	path, err := jsonpath.Parse(q)
	if err != nil {
		return err
	}

	doc, err := decodeInput(os.Stdin, ctx.Bool("yaml"))
	if err != nil {
		return fmt.Errorf("could not read document from stdin: %w", err)
	}

	var result any
	if ctx.Bool("located") {
		result = path.SelectLocated(doc)
	} else {
		result = path.Select(doc)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal results to JSON: %w", err)
	}
	fmt.Printf("%s\n", out)

	return nil
}

// decodeInput decodes the input document read from r as JSON or, when
// asYAML is true, as YAML.
func decodeInput(r io.Reader, asYAML bool) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc any
	if asYAML {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
