// Package cfgbuilder provides a fluent, deterministic constructor for
// small ir.CFG fixtures, used by tests and by the demo CLI loader.
// It is not part of the analysis engine: real CFGs are supplied by an
// out-of-scope bytecode loader (spec.md §1); this package exists only
// to make engine tests and examples readable without hand-assembling
// ir.Block/ir.Stmt slices.
//
// Usage:
//
//	cfg, err := cfgbuilder.New(cfgbuilder.WithParamArity(1)).
//	    Block("entry").
//	    Identity("this").
//	    FieldStore("this", "x", "a").
//	    Return().
//	    Build()
package cfgbuilder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ptpure/ir"
)

// Sentinel errors for cfgbuilder construction failures.
var (
	// ErrNoBlocks indicates Build was called before any Block.
	ErrNoBlocks = errors.New("cfgbuilder: no blocks defined")
	// ErrDanglingSucc indicates a branch target names a block never declared.
	ErrDanglingSucc = errors.New("cfgbuilder: branch targets an undeclared block")
	// ErrNoCurrentBlock indicates a statement method was called before Block.
	ErrNoCurrentBlock = errors.New("cfgbuilder: no current block; call Block(label) first")
)

// Option configures a Builder before statement construction begins.
type Option func(*Builder)

// WithParamArity sets the method's declared formal-parameter count.
func WithParamArity(n int) Option {
	return func(b *Builder) { b.cfg.ParamArity = n }
}

// WithStatic marks the method under construction as static.
func WithStatic() Option {
	return func(b *Builder) { b.cfg.IsStatic = true }
}

// Builder accumulates blocks and statements in declaration order and
// assigns deterministic allocation-site indices to StmtAlloc/
// StmtAllocArray statements as they are appended.
type Builder struct {
	cfg       *ir.CFG
	labels    map[string]int // block label -> block ID
	cur       *ir.Block
	nextAlloc int // shared by Alloc/AllocArray and a safe call's fresh return node
	nextLoad  int
	nextLabel int
	pending   map[*ir.Block][]string // successor labels, resolved by Build
	err       error
}

// New starts a Builder, applying opts left to right.
func New(opts ...Option) *Builder {
	b := &Builder{
		cfg:     &ir.CFG{},
		labels:  make(map[string]int),
		pending: make(map[*ir.Block][]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Block starts a new basic block named label and makes it current.
// The first Block call becomes the CFG's entry block.
func (b *Builder) Block(label string) *Builder {
	if b.err != nil {
		return b
	}
	id := b.nextLabel
	b.nextLabel++
	blk := &ir.Block{ID: id}
	b.cfg.Blocks = append(b.cfg.Blocks, blk)
	b.labels[label] = id
	if len(b.cfg.Blocks) == 1 {
		b.cfg.Entry = id
	}
	b.cur = blk
	return b
}

// Succ records an edge from the current block to the block named label.
// Labels are resolved by Build, so label may name a block declared
// later; a label no Block call ever declared makes Build fail with
// ErrDanglingSucc.
func (b *Builder) Succ(label string) *Builder {
	if b.err != nil {
		return b
	}
	if b.cur == nil {
		b.err = ErrNoCurrentBlock
		return b
	}
	b.pending[b.cur] = append(b.pending[b.cur], label)
	return b
}

func (b *Builder) append(s ir.Stmt) *Builder {
	if b.err != nil {
		return b
	}
	if b.cur == nil {
		b.err = ErrNoCurrentBlock
		return b
	}
	b.cur.Stmts = append(b.cur.Stmts, s)
	return b
}

// Identity appends "v := @this" when v == "this" convention is not
// assumed: callers pass the destination local explicitly.
func (b *Builder) Identity(v string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtIdentityThis, LHS: v})
}

// IdentityParam appends "v := @param k".
func (b *Builder) IdentityParam(v string, k int) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtIdentityParam, LHS: v, ParamIndex: k})
}

// Alloc appends "v := new T", assigning the next allocation-site index.
func (b *Builder) Alloc(v, label string) *Builder {
	site := b.nextAlloc
	b.nextAlloc++
	return b.append(ir.Stmt{Kind: ir.StmtAlloc, LHS: v, AllocSite: site, Field: ir.Field{Name: label}})
}

// AllocArray appends "v := new T[n]".
func (b *Builder) AllocArray(v string) *Builder {
	site := b.nextAlloc
	b.nextAlloc++
	return b.append(ir.Stmt{Kind: ir.StmtAllocArray, LHS: v, AllocSite: site, Field: ir.Field{Name: "array"}})
}

// Copy appends "v := u".
func (b *Builder) Copy(v, u string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtCopy, LHS: v, RHS: u})
}

// Cast appends "v := (T) u".
func (b *Builder) Cast(v, u string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtCast, LHS: v, RHS: u})
}

// FieldLoad appends "v := u.f".
func (b *Builder) FieldLoad(v, u, field string) *Builder {
	site := b.nextLoad
	b.nextLoad++
	return b.append(ir.Stmt{Kind: ir.StmtFieldLoad, LHS: v, Receiver: u, Field: ir.Field{Name: field}, LoadSite: site})
}

// FieldStore appends "u.f := x".
func (b *Builder) FieldStore(u, field, x string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtFieldStore, Receiver: u, Field: ir.Field{Name: field}, Args: []string{x}})
}

// StaticLoad appends "v := C.f".
func (b *Builder) StaticLoad(v, class, field string) *Builder {
	site := b.nextLoad
	b.nextLoad++
	return b.append(ir.Stmt{Kind: ir.StmtStaticLoad, LHS: v, Field: ir.Field{Name: field, IsStatic: true, Class: class}, LoadSite: site})
}

// StaticStore appends "C.f := x".
func (b *Builder) StaticStore(class, field, x string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtStaticStore, Field: ir.Field{Name: field, IsStatic: true, Class: class}, Args: []string{x}})
}

// ArrayLoad appends "v := u[_]".
func (b *Builder) ArrayLoad(v, u string) *Builder {
	site := b.nextLoad
	b.nextLoad++
	return b.append(ir.Stmt{Kind: ir.StmtArrayLoad, LHS: v, Receiver: u, LoadSite: site})
}

// ArrayStore appends "u[_] := x".
func (b *Builder) ArrayStore(u, x string) *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtArrayStore, Receiver: u, Args: []string{x}})
}

// Call appends "[v :=] m(a0 .. an)". Pass an empty v for a call with
// no bound result. receiver is stored in Stmt.Receiver, not in Args;
// the call transfer rule treats a non-empty receiver as an extra
// argument, mirroring receiver-as-implicit-argument for virtual dispatch.
func (b *Builder) Call(v, receiver, target string, resultIsRef bool, args ...string) *Builder {
	site := b.nextAlloc
	b.nextAlloc++
	return b.append(ir.Stmt{
		Kind: ir.StmtCall, LHS: v, Receiver: receiver, Target: target,
		Args: args, ResultIsRef: resultIsRef, CallSite: site,
	})
}

// Return appends a return statement.
func (b *Builder) Return() *Builder {
	if b.err != nil {
		return b
	}
	b.append(ir.Stmt{Kind: ir.StmtReturn})
	if b.cur != nil {
		b.cfg.Tails = append(b.cfg.Tails, b.cur.ID)
	}
	return b
}

// Branch appends a branch statement (conditional or unconditional);
// actual control flow is expressed via Succ.
func (b *Builder) Branch() *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtBranch})
}

// Noop appends an explicit no-op.
func (b *Builder) Noop() *Builder {
	return b.append(ir.Stmt{Kind: ir.StmtNoop})
}

// Build finalizes and returns the constructed CFG, or the first error
// recorded during construction.
func (b *Builder) Build() (*ir.CFG, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.cfg.Blocks) == 0 {
		return nil, ErrNoBlocks
	}
	for _, blk := range b.cfg.Blocks {
		for _, label := range b.pending[blk] {
			id, ok := b.labels[label]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrDanglingSucc, label)
			}
			blk.Succs = append(blk.Succs, id)
		}
		delete(b.pending, blk)
	}
	if len(b.cfg.Tails) == 0 {
		// A CFG with no explicit Return is still valid: every block
		// with no successors is a tail.
		for _, blk := range b.cfg.Blocks {
			if len(blk.Succs) == 0 {
				b.cfg.Tails = append(b.cfg.Tails, blk.ID)
			}
		}
	}
	return b.cfg, nil
}
