package sandboxspec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// LoadFile reads path and decodes every document in it as a directive.
func LoadFile[F any](ctx context.Context, path string, parse FilterParser[F]) ([]Directive[F], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	directives, err := LoadAll(ctx, data, parse)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return directives, nil
}

// splitDocuments decodes data into the raw yaml.Node of every document it
// contains, without interpreting any of them yet.
func splitDocuments(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalidValueError(err.Error(), nil)
		}
		d := doc
		docs = append(docs, rootContent(&d))
	}
	return docs, nil
}

// LoadAll decodes every document in data as an independent directive
// declaration. Documents have no shared state, so they are decoded
// concurrently; the first error encountered cancels the remaining work and
// is returned. Result order matches document order regardless of
// completion order.
func LoadAll[F any](ctx context.Context, data []byte, parse FilterParser[F]) ([]Directive[F], error) {
	docs, err := splitDocuments(data)
	if err != nil {
		return nil, err
	}

	results := make([]Directive[F], len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			directive, err := DecodeDirective(doc, parse)
			if err != nil {
				return err
			}
			results[i] = directive
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
