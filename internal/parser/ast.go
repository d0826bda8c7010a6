package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strings"
)

// File is a parsed Go source file and the annotated record types it declares
type File struct {
	Package string
	Types   []*TypeLayout
	Aliases map[string]string // defined types over a named type, e.g. Revision → uint8
}

// Lookup returns the annotated type with the given name
func (f *File) Lookup(name string) (*TypeLayout, bool) {
	for _, t := range f.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TypeLayout represents a parsed struct with layout annotation
type TypeLayout struct {
	Name   string
	Anno   *TypeAnnotation
	Fields []Field
}

// Field represents a struct field with layout tag
type Field struct {
	Name    string
	GoType  string
	Private bool // unexported: callers cannot touch it, but it still occupies bytes
	Layout  *FieldLayout
}

// ParseFile parses a Go source file and extracts types with @layout annotations
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is ParseFile for in-memory source. src follows the rules of
// go/parser: string, []byte, io.Reader, or nil to read filename.
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	types, err := extractTypes(file)
	if err != nil {
		return nil, err
	}

	return &File{
		Package: file.Name.Name,
		Types:   types,
		Aliases: extractAliases(file),
	}, nil
}

func extractTypes(file *ast.File) ([]*TypeLayout, error) {
	var (
		types []*TypeLayout
		errs  []error
	)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}

			// Grouped declarations carry the doc on the spec, single ones on the decl
			doc := typeSpec.Doc
			if doc == nil {
				doc = genDecl.Doc
			}

			anno, found, err := extractAnnotation(doc)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", typeSpec.Name.Name, err))
				continue
			}
			if !found {
				continue
			}

			fields, err := extractFields(structType)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", typeSpec.Name.Name, err))
				continue
			}
			if len(fields) == 0 {
				continue
			}

			types = append(types, &TypeLayout{
				Name:   typeSpec.Name.Name,
				Anno:   anno,
				Fields: fields,
			})
		}
	}

	return types, errors.Join(errs...)
}

func extractAliases(file *ast.File) map[string]string {
	aliases := make(map[string]string)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			if ident, ok := typeSpec.Type.(*ast.Ident); ok {
				aliases[typeSpec.Name.Name] = ident.Name
			}
		}
	}

	return aliases
}

func extractAnnotation(doc *ast.CommentGroup) (*TypeAnnotation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}

	return FindAnnotation(lines)
}

func extractFields(structType *ast.StructType) ([]Field, error) {
	var (
		fields []Field
		errs   []error
	)

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 || field.Tag == nil {
			continue // Embedded or untagged
		}

		tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
		layoutTag, ok := tag.Lookup("layout")
		if !ok {
			continue
		}

		layout, err := ParseTag(layoutTag)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", field.Names[0].Name, err))
			continue
		}

		if len(field.Names) > 1 {
			errs = append(errs, fmt.Errorf("field %s: one layout tag cannot place %d fields",
				field.Names[0].Name, len(field.Names)))
			continue
		}

		name := field.Names[0]
		fields = append(fields, Field{
			Name:    name.Name,
			GoType:  typeToString(field.Type),
			Private: !name.IsExported(),
			Layout:  layout,
		})
	}

	return fields, errors.Join(errs...)
}

// typeToString converts AST type expression to string
// Only supports types with defined binary layout
func typeToString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name

	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeToString(t.Elt)
		}
		return fmt.Sprintf("[%s]%s", exprToString(t.Len), typeToString(t.Elt))

	case *ast.StarExpr:
		// Pointers have no portable binary layout; the analyzer rejects them
		return "*" + typeToString(t.X)

	case *ast.SelectorExpr:
		return exprToString(t.X) + "." + t.Sel.Name

	default:
		return "unknown"
	}
}

func exprToString(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return e.Value
	case *ast.Ident:
		return e.Name
	default:
		return "?"
	}
}
