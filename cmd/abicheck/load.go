package main

import (
	"fmt"

	"github.com/alexhholmes/abilayout/internal/analyzer"
	"github.com/alexhholmes/abilayout/internal/parser"
)

// loadedFile is a parsed source file with every annotated type analyzed
type loadedFile struct {
	file     *parser.File
	registry *analyzer.TypeRegistry
	layouts  []*analyzer.AnalyzedLayout
}

// lookup returns the analyzed layout of the named type
func (l *loadedFile) lookup(name string) (*analyzer.AnalyzedLayout, bool) {
	for _, a := range l.layouts {
		if a.TypeName == name {
			return a, true
		}
	}
	return nil, false
}

// loadFile parses path and analyzes its records in declaration order, so a
// record can embed any record declared above it.
func loadFile(path string) (*loadedFile, error) {
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	reg := analyzer.NewTypeRegistry()
	for alias, underlying := range file.Aliases {
		reg.RegisterAlias(alias, underlying)
	}

	loaded := &loadedFile{file: file, registry: reg}
	for _, typ := range file.Types {
		a, err := analyzer.Analyze(typ, reg)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w %v", path, typ.Name, err, a.Errors)
		}
		reg.RegisterLayout(a)
		loaded.layouts = append(loaded.layouts, a)
	}

	return loaded, nil
}
