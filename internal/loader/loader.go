// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package loader discovers and parses source JSON files. It never invents
// data: a file either parses into a structured document or is skipped with
// a recorded reason.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"reviewmeta/internal/dataset"
)

// DefaultPattern matches the source files produced by the collectors.
const DefaultPattern = "source_*.json"

// Source is one successfully parsed input file.
type Source struct {
	Name     string
	Document dataset.SourceDocument
}

// Skipped records an input file that could not be parsed.
type Skipped struct {
	Name   string
	Reason string
}

// String renders the skip record the way it is echoed into the report
// limitations.
func (s Skipped) String() string {
	return s.Name + ": " + s.Reason
}

// Discover lists input files matching pattern under dir, sorted by name so
// the merge order is stable across runs.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads and parses one source file, repairing the one malformation the
// collectors are known to produce: a document that starts at `"metadata":`
// with the opening brace missing.
func Load(path string) (dataset.SourceDocument, error) {
	var doc dataset.SourceDocument

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return doc, fmt.Errorf("error reading source file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, `"metadata"`) || strings.HasPrefix(text, "'metadata'") {
		text = "{" + text
	}

	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return doc, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc, nil
}

// LoadAll loads every path with a bounded worker pool. Results keep the
// order of paths, which downstream merging depends on. Files that fail to
// parse are skipped, never partially ingested.
func LoadAll(paths []string) ([]Source, []Skipped) {
	type outcome struct {
		doc dataset.SourceDocument
		err error
	}
	outcomes := make([]outcome, len(paths))

	workers := runtime.NumCPU()
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc, err := Load(paths[i])
				outcomes[i] = outcome{doc: doc, err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var sources []Source
	var skipped []Skipped
	for i, path := range paths {
		name := filepath.Base(path)
		if outcomes[i].err != nil {
			skipped = append(skipped, Skipped{Name: name, Reason: outcomes[i].err.Error()})
			continue
		}
		sources = append(sources, Source{Name: name, Document: outcomes[i].doc})
	}
	return sources, skipped
}
