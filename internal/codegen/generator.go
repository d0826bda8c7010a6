package codegen

import (
	"fmt"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/alexhholmes/abilayout/internal/analyzer"
)

// Generator generates marshal/unmarshal code for binary layouts
type Generator struct {
	analyzed *analyzer.AnalyzedLayout
	registry *analyzer.TypeRegistry
	endian   string // "little" or "big"
}

// typeEmitter holds marshal/unmarshal code generators for a type
type typeEmitter struct {
	marshal   func(ctx emitCtx) string
	unmarshal func(ctx emitCtx) string
}

// emitCtx carries context for code emission
type emitCtx struct {
	field      string
	start, end int
	needsCast  bool
	origType   string
}

// NewGenerator creates a new code generator. An empty endian falls back to
// the layout's annotation, then to little endian.
func NewGenerator(analyzed *analyzer.AnalyzedLayout, reg *analyzer.TypeRegistry, endian string) *Generator {
	if endian == "" {
		endian = analyzed.Endian
	}
	if endian == "" {
		endian = "little"
	}
	if reg == nil {
		reg = analyzer.NewTypeRegistry()
	}
	return &Generator{
		analyzed: analyzed,
		registry: reg,
		endian:   endian,
	}
}

// Generate returns the generated code for this type (without package header/imports)
func (g *Generator) Generate() (string, error) {
	marshal, err := g.GenerateMarshal()
	if err != nil {
		return "", err
	}
	unmarshal, err := g.GenerateUnmarshal()
	if err != nil {
		return "", err
	}
	return marshal + "\n" + unmarshal, nil
}

// GenerateMarshal generates the MarshalLayout method
func (g *Generator) GenerateMarshal() (string, error) {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// MarshalLayout encodes %s in its %d-byte revision %d layout.\n",
		g.analyzed.TypeName, g.analyzed.BufferSize, g.analyzed.Revision))
	code.WriteString(fmt.Sprintf("func (p *%s) MarshalLayout() ([]byte, error) {\n", g.analyzed.TypeName))
	code.WriteString(fmt.Sprintf("\tbuf := make([]byte, %d)\n\n", g.analyzed.BufferSize))

	for _, region := range g.analyzed.Regions {
		op, err := g.generateFixedOp(region, "marshal")
		if err != nil {
			return "", err
		}
		code.WriteString(op)
	}

	code.WriteString("\treturn buf, nil\n")
	code.WriteString("}\n")

	return code.String(), nil
}

// GenerateUnmarshal generates the UnmarshalLayout method
func (g *Generator) GenerateUnmarshal() (string, error) {
	var code strings.Builder

	code.WriteString(fmt.Sprintf("// UnmarshalLayout decodes %s from its %d-byte revision %d layout.\n",
		g.analyzed.TypeName, g.analyzed.BufferSize, g.analyzed.Revision))
	code.WriteString(fmt.Sprintf("func (p *%s) UnmarshalLayout(buf []byte) error {\n", g.analyzed.TypeName))

	code.WriteString(fmt.Sprintf("\tif len(buf) != %d {\n", g.analyzed.BufferSize))
	code.WriteString(fmt.Sprintf("\t\treturn fmt.Errorf(\"expected %d bytes, got %%d\", len(buf))\n", g.analyzed.BufferSize))
	code.WriteString("\t}\n\n")

	for _, region := range g.analyzed.Regions {
		op, err := g.generateFixedOp(region, "unmarshal")
		if err != nil {
			return "", err
		}
		code.WriteString(op)
	}

	code.WriteString("\treturn nil\n")
	code.WriteString("}\n")

	return code.String(), nil
}

// GenerateFile renders a complete Go source file holding the codecs of every
// generator. Imports are resolved and the result is gofmt'ed.
func GenerateFile(pkg, source string, gens ...*Generator) ([]byte, error) {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("// Code generated by abicheck gen from %s; DO NOT EDIT.\n\n", source))
	out.WriteString(fmt.Sprintf("package %s\n", pkg))

	for _, g := range gens {
		code, err := g.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.analyzed.TypeName, err)
		}
		out.WriteString("\n")
		out.WriteString(code)
	}

	src, err := imports.Process("", []byte(out.String()), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: false,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// endianPrefix returns "binary.LittleEndian" or "binary.BigEndian"
func (g *Generator) endianPrefix() string {
	if g.endian == "big" {
		return "binary.BigEndian"
	}
	return "binary.LittleEndian"
}

// castPair wraps an expression in a conversion back to the declared type
// when the field is an alias
func castPair(c emitCtx) (string, string) {
	if !c.needsCast {
		return "", ""
	}
	return c.origType + "(", ")"
}

// intEmitter covers the 16/32/64-bit integer types, signed ones going through
// their unsigned twin
func (g *Generator) intEmitter(bits int, signed bool) typeEmitter {
	unsigned := fmt.Sprintf("uint%d", bits)
	return typeEmitter{
		marshal: func(c emitCtx) string {
			fieldExpr := "p." + c.field
			if signed || c.needsCast {
				fieldExpr = unsigned + "(" + fieldExpr + ")"
			}
			return fmt.Sprintf("\t%s.PutUint%d(buf[%d:%d], %s)\n\n",
				g.endianPrefix(), bits, c.start, c.end, fieldExpr)
		},
		unmarshal: func(c emitCtx) string {
			cast, suffix := castPair(c)
			get := fmt.Sprintf("%s.Uint%d(buf[%d:%d])", g.endianPrefix(), bits, c.start, c.end)
			if signed {
				get = fmt.Sprintf("int%d(%s)", bits, get)
			}
			return fmt.Sprintf("\tp.%s = %s%s%s\n\n", c.field, cast, get, suffix)
		},
	}
}

// floatEmitter covers float32 and float64 via their IEEE 754 bits
func (g *Generator) floatEmitter(bits int) typeEmitter {
	return typeEmitter{
		marshal: func(c emitCtx) string {
			fieldExpr := "p." + c.field
			if c.needsCast {
				fieldExpr = fmt.Sprintf("float%d(%s)", bits, fieldExpr)
			}
			return fmt.Sprintf("\t%s.PutUint%d(buf[%d:%d], math.Float%dbits(%s))\n\n",
				g.endianPrefix(), bits, c.start, c.end, bits, fieldExpr)
		},
		unmarshal: func(c emitCtx) string {
			cast, suffix := castPair(c)
			return fmt.Sprintf("\tp.%s = %smath.Float%dfrombits(%s.Uint%d(buf[%d:%d]))%s\n\n",
				c.field, cast, bits, g.endianPrefix(), bits, c.start, c.end, suffix)
		},
	}
}

// emitters returns type-specific code generators
func (g *Generator) emitters() map[string]typeEmitter {
	byteEmitter := typeEmitter{
		marshal: func(c emitCtx) string {
			fieldExpr := "p." + c.field
			if c.needsCast {
				fieldExpr = "byte(" + fieldExpr + ")"
			}
			return fmt.Sprintf("\tbuf[%d] = %s\n\n", c.start, fieldExpr)
		},
		unmarshal: func(c emitCtx) string {
			cast, suffix := castPair(c)
			return fmt.Sprintf("\tp.%s = %sbuf[%d]%s\n\n", c.field, cast, c.start, suffix)
		},
	}

	return map[string]typeEmitter{
		"uint8": byteEmitter,
		"byte":  byteEmitter,
		"int8": {
			marshal: func(c emitCtx) string {
				return fmt.Sprintf("\tbuf[%d] = byte(p.%s)\n\n", c.start, c.field)
			},
			unmarshal: func(c emitCtx) string {
				cast, suffix := castPair(c)
				return fmt.Sprintf("\tp.%s = %sint8(buf[%d])%s\n\n", c.field, cast, c.start, suffix)
			},
		},
		"bool": {
			marshal: func(c emitCtx) string {
				return fmt.Sprintf("\tif p.%s {\n\t\tbuf[%d] = 1\n\t}\n\n", c.field, c.start)
			},
			unmarshal: func(c emitCtx) string {
				cast, suffix := castPair(c)
				return fmt.Sprintf("\tp.%s = %sbuf[%d] != 0%s\n\n", c.field, cast, c.start, suffix)
			},
		},
		"uint16":  g.intEmitter(16, false),
		"int16":   g.intEmitter(16, true),
		"uint32":  g.intEmitter(32, false),
		"int32":   g.intEmitter(32, true),
		"uint64":  g.intEmitter(64, false),
		"int64":   g.intEmitter(64, true),
		"float32": g.floatEmitter(32),
		"float64": g.floatEmitter(64),
	}
}

// generateFixedOp generates marshal/unmarshal code for fixed-size field using emission table
func (g *Generator) generateFixedOp(region analyzer.Region, op string) (string, error) {
	field := region.Field
	resolvedType := g.registry.ResolveType(field.GoType)

	emitter, ok := g.emitters()[resolvedType]
	if !ok {
		return g.generateComplexFixedOp(region, op)
	}

	ctx := emitCtx{
		field:     field.Name,
		start:     region.Start,
		end:       region.Boundary,
		needsCast: resolvedType != field.GoType,
		origType:  field.GoType,
	}

	code := fmt.Sprintf("\t// %s: %s at [%d, %d)\n", field.Name, field.GoType, ctx.start, ctx.end)
	switch op {
	case "marshal":
		code += emitter.marshal(ctx)
	case "unmarshal":
		code += emitter.unmarshal(ctx)
	default:
		return "", fmt.Errorf("unknown op: %s", op)
	}
	return code, nil
}

// generateComplexFixedOp handles byte arrays and nested records
func (g *Generator) generateComplexFixedOp(region analyzer.Region, op string) (string, error) {
	var code strings.Builder
	field := region.Field
	start := region.Start
	end := region.Boundary
	resolvedType := g.registry.ResolveType(field.GoType)

	code.WriteString(fmt.Sprintf("\t// %s: %s at [%d, %d)\n", field.Name, field.GoType, start, end))

	switch {
	case strings.HasPrefix(resolvedType, "[") &&
		(strings.HasSuffix(resolvedType, "]byte") || strings.HasSuffix(resolvedType, "]uint8")):
		if op == "marshal" {
			code.WriteString(fmt.Sprintf("\tcopy(buf[%d:%d], p.%s[:])\n\n", start, end, field.Name))
		} else {
			code.WriteString(fmt.Sprintf("\tcopy(p.%s[:], buf[%d:%d])\n\n", field.Name, start, end))
		}

	case region.Record:
		// Trailing padding of the nested record stays zero
		if n, ok := g.registry.EncodedSize(field.GoType); ok && start+n < end {
			end = start + n
		}
		if op == "marshal" {
			code.WriteString("\t{\n")
			code.WriteString(fmt.Sprintf("\t\telemBuf, err := p.%s.MarshalLayout()\n", field.Name))
			code.WriteString("\t\tif err != nil {\n")
			code.WriteString(fmt.Sprintf("\t\t\treturn nil, fmt.Errorf(\"marshal %s: %%w\", err)\n", field.Name))
			code.WriteString("\t\t}\n")
			code.WriteString(fmt.Sprintf("\t\tcopy(buf[%d:%d], elemBuf)\n", start, end))
			code.WriteString("\t}\n\n")
		} else {
			code.WriteString(fmt.Sprintf("\tif err := p.%s.UnmarshalLayout(buf[%d:%d]); err != nil {\n", field.Name, start, end))
			code.WriteString(fmt.Sprintf("\t\treturn fmt.Errorf(\"unmarshal %s: %%w\", err)\n", field.Name))
			code.WriteString("\t}\n\n")
		}

	default:
		return "", fmt.Errorf("no encoding for %s (%s)", field.Name, field.GoType)
	}

	return code.String(), nil
}
