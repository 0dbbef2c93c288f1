// Package fixture implements a demo ClassLoader (driver.ClassLoader)
// that reads method bodies from a YAML document instead of parsing
// real bytecode — bytecode ingestion is explicitly out of scope
// (spec.md §1's Non-goals). Each fixture method is a flat list of
// blocks and IR-level operations fed straight into cfgbuilder.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ptpure/cfgbuilder"
	"github.com/katalvlaran/ptpure/driver"
	"github.com/katalvlaran/ptpure/ir"
)

// Document is the top-level fixture shape: a flat list of classes,
// each with a flat list of methods.
type Document struct {
	Classes []Class `yaml:"classes"`
}

// Class groups the methods that share a signature prefix.
type Class struct {
	Name    string   `yaml:"name"`
	Methods []Method `yaml:"methods"`
}

// Method describes one method body as blocks of operations.
type Method struct {
	Name        string  `yaml:"name"`
	Static      bool    `yaml:"static"`
	Constructor bool    `yaml:"constructor"`
	ParamArity  int     `yaml:"param_arity"`
	Blocks      []Block `yaml:"blocks"`
}

// Block is one CFG block: a label, its successors by label, and the
// ordered operations cfgbuilder should append to it.
type Block struct {
	Label string   `yaml:"label"`
	Succs []string `yaml:"succs"`
	Ops   []Op     `yaml:"ops"`
}

// Op is one IR-level operation. Only the fields relevant to Kind are
// read; the rest are ignored, matching how the teacher's own
// YAML-driven fixtures tolerate sparsely populated documents.
type Op struct {
	Kind        string   `yaml:"op"`
	Var         string   `yaml:"var"`
	Index       int      `yaml:"index"`
	Label       string   `yaml:"label"`
	Src         string   `yaml:"src"`
	Recv        string   `yaml:"recv"`
	Field       string   `yaml:"field"`
	Value       string   `yaml:"value"`
	Class       string   `yaml:"class"`
	Target      string   `yaml:"target"`
	ResultIsRef bool     `yaml:"result_is_ref"`
	Args        []string `yaml:"args"`
}

// Loader adapts a parsed Document into a driver.ClassLoader.
type Loader struct {
	doc Document
}

// Load reads and parses a fixture document at path.
func Load(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: parsing %s: %w", path, err)
	}
	return &Loader{doc: doc}, nil
}

// Methods builds one driver.Method per fixture method, in document
// order, by replaying its blocks and ops through cfgbuilder.
func (l *Loader) Methods() ([]driver.Method, error) {
	var out []driver.Method
	for _, c := range l.doc.Classes {
		for _, m := range c.Methods {
			cfg, err := build(m)
			if err != nil {
				return nil, fmt.Errorf("fixture: %s#%s: %w", c.Name, m.Name, err)
			}
			out = append(out, driver.Method{
				Signature:     c.Name + "#" + m.Name,
				CFG:           cfg,
				IsStatic:      m.Static,
				IsConstructor: m.Constructor,
			})
		}
	}
	return out, nil
}

func build(m Method) (*ir.CFG, error) {
	opts := []cfgbuilder.Option{cfgbuilder.WithParamArity(m.ParamArity)}
	if m.Static {
		opts = append(opts, cfgbuilder.WithStatic())
	}
	b := cfgbuilder.New(opts...)
	for _, blk := range m.Blocks {
		b.Block(blk.Label)
		for _, op := range blk.Ops {
			applyOp(b, op)
		}
		for _, s := range blk.Succs {
			b.Succ(s)
		}
	}
	return b.Build()
}

func applyOp(b *cfgbuilder.Builder, op Op) {
	switch op.Kind {
	case "identity":
		b.Identity(op.Var)
	case "identity_param":
		b.IdentityParam(op.Var, op.Index)
	case "alloc":
		b.Alloc(op.Var, op.Label)
	case "alloc_array":
		b.AllocArray(op.Var)
	case "copy":
		b.Copy(op.Var, op.Src)
	case "cast":
		b.Cast(op.Var, op.Src)
	case "field_load":
		b.FieldLoad(op.Var, op.Recv, op.Field)
	case "field_store":
		b.FieldStore(op.Recv, op.Field, op.Value)
	case "static_load":
		b.StaticLoad(op.Var, op.Class, op.Field)
	case "static_store":
		b.StaticStore(op.Class, op.Field, op.Value)
	case "array_load":
		b.ArrayLoad(op.Var, op.Recv)
	case "array_store":
		b.ArrayStore(op.Recv, op.Value)
	case "call":
		b.Call(op.Var, op.Recv, op.Target, op.ResultIsRef, op.Args...)
	case "return":
		b.Return()
	case "branch":
		b.Branch()
	case "noop":
		b.Noop()
	}
}
