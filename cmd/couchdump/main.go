/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// couchdump streams the documents of a CouchDB database to stdout as NDJSON,
// reading pages through the bookmark-driven batched reader. Connection
// settings come from the environment (optionally a .env file); the dump
// itself is described by a small YAML file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	couchstore "github.com/suparena/couchstore"
	"github.com/suparena/couchstore/slogger"
	"github.com/suparena/couchstore/types"
)

var (
	configFlag  = flag.String("config", "couchdump.yaml", "Path to the dump spec YAML file")
	logFlag     = flag.String("log", "warn", "Log level (debug, info, warn, error)")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

// dumpSpec describes one dump run.
type dumpSpec struct {
	// Database to read from.
	Database string `yaml:"database"`
	// Selector is an optional Mango selector; everything when empty.
	Selector map[string]interface{} `yaml:"selector,omitempty"`
	// BatchSize is the rows requested per page (0: server default).
	BatchSize uint64 `yaml:"batch_size,omitempty"`
	// MaxResults bounds the total rows read (0: unbounded).
	MaxResults uint64 `yaml:"max_results,omitempty"`
	// Buffer is the page channel capacity (default 1).
	Buffer int `yaml:"buffer,omitempty"`
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := couchstore.GetVersionInfo()
		fmt.Printf("couchdump version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "couchdump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is a convenience for local use; absence is fine.
	_ = godotenv.Load()

	spec, err := loadSpec(*configFlag)
	if err != nil {
		return err
	}

	uri := os.Getenv("COUCHSTORE_URI")
	if uri == "" {
		uri = "http://localhost:5984"
	}
	client, err := couchstore.NewClient(uri, os.Getenv("COUCHSTORE_USERNAME"), os.Getenv("COUCHSTORE_PASSWORD"))
	if err != nil {
		return err
	}
	client.SetLogger(slogger.New(slogger.LevelFromString(*logFlag)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := client.Database(ctx, spec.Database)
	if err != nil {
		return err
	}

	query := types.FindAll()
	if len(spec.Selector) > 0 {
		query, err = types.NewFindQuery(spec.Selector)
		if err != nil {
			return err
		}
	}

	buffer := spec.Buffer
	if buffer <= 0 {
		buffer = 1
	}
	pages := make(chan *types.DocumentCollection[types.Document], buffer)

	enc := json.NewEncoder(os.Stdout)
	done := make(chan error, 1)
	go func() {
		for page := range pages {
			for _, doc := range page.Rows {
				if err := enc.Encode(doc); err != nil {
					done <- err
					// keep draining so the producer is never blocked
					for range pages {
					}
					return
				}
			}
		}
		done <- nil
	}()

	total, err := couchstore.FindBatched(ctx, db, *query, pages, spec.BatchSize, spec.MaxResults)
	close(pages)
	if werr := <-done; werr != nil {
		return fmt.Errorf("write output: %w", werr)
	}
	if err != nil {
		return fmt.Errorf("dump %q after %d documents: %w", spec.Database, total, err)
	}
	fmt.Fprintf(os.Stderr, "dumped %d documents from %q\n", total, spec.Database)
	return nil
}

func loadSpec(path string) (*dumpSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump spec: %w", err)
	}
	var spec dumpSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("parse dump spec: %w", err)
	}
	if spec.Database == "" {
		return nil, fmt.Errorf("dump spec: database is required")
	}
	return &spec, nil
}
