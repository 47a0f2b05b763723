/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ion-symtab/go-symtab/symtab"
)

func newRootCmd() *cobra.Command {
	var kind string
	var catalogDir string

	cmd := &cobra.Command{
		Use:   "symtabdump <input.json>",
		Short: "Parse a symbol table struct and print its resolved form",
		Long: "symtabdump reads a symbol table struct (described as JSON, see\n" +
			"docreader.go for the shape) and prints the table symtab.ParseLocalTable\n" +
			"or symtab.ParseSharedTable resolves it to.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogDir)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			doc, err := loadTableDoc(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}

			var table *symtab.Table
			switch kind {
			case "local":
				table, err = symtab.ParseLocalTable(newDocReader(doc.toFields()), cat)
			case "shared":
				table, err = symtab.ParseSharedTable(newDocReader(doc.toFields()))
			default:
				return fmt.Errorf("unknown --kind %q, want \"local\" or \"shared\"", kind)
			}
			if err != nil {
				return fmt.Errorf("parsing %s: %w", doc.describe(), err)
			}

			fmt.Println(table.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "local", `table kind to parse: "local" or "shared"`)
	cmd.Flags().StringVar(&catalogDir, "catalog-dir", "", "directory of *.json shared-table documents to preload into the catalog")

	return cmd
}

func loadTableDoc(path string) (*tableDoc, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc tableDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func loadCatalog(dir string) (symtab.Catalog, error) {
	if dir == "" {
		return symtab.NewCatalog(), nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var tables []*symtab.Table
	for _, path := range matches {
		doc, err := loadTableDoc(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		table, err := symtab.ParseSharedTable(newDocReader(doc.toFields()))
		if err != nil {
			return nil, fmt.Errorf("parsing %s as a shared table: %w", path, err)
		}
		tables = append(tables, table)
	}
	return symtab.NewCatalog(tables...), nil
}
