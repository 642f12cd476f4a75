package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/overthinkos/sandboxspec"
)

// stringFilter is the CLI's trivial filter language: the raw filter text,
// unparsed. A real job submitter supplies its own FilterParser.
func stringFilter(s string) (string, error) {
	return s, nil
}

// wrapDecodeError appends the failing document's position to a decode
// error, the way the teacher wraps every I/O error with fmt.Errorf + %w.
func wrapDecodeError(path string, err error) error {
	var decodeErr *sandboxspec.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("%s:%d: %w", path, decodeErr.Line, err)
	}
	return fmt.Errorf("%s: %w", path, err)
}

// ParseCmd decodes a single directive document and prints it as JSON.
type ParseCmd struct {
	Path string `arg:"" help:"Path to a single-document directive file"`
}

func (c *ParseCmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Path, err)
	}
	directive, err := sandboxspec.ParseDirective(data, sandboxspec.FilterParser[string](stringFilter))
	if err != nil {
		return wrapDecodeError(c.Path, err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(directive)
}

// ValidateCmd decodes every directive in a file and reports the first
// decode error, if any.
type ValidateCmd struct {
	Path string `arg:"" help:"Path to a directive file"`
}

func (c *ValidateCmd) Run() error {
	_, err := sandboxspec.LoadFile(context.Background(), c.Path, sandboxspec.FilterParser[string](stringFilter))
	if err != nil {
		return wrapDecodeError(c.Path, err)
	}
	fmt.Println("ok")
	return nil
}

// InspectCmd prints the fully-decoded directives in a file as JSON.
type InspectCmd struct {
	Path string `arg:"" help:"Path to a directive file"`
}

func (c *InspectCmd) Run() error {
	directives, err := sandboxspec.LoadFile(context.Background(), c.Path, sandboxspec.FilterParser[string](stringFilter))
	if err != nil {
		return wrapDecodeError(c.Path, err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(directives)
}
