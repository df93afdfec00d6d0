// Package parserpool provides a pool of gnparser instances for concurrent
// parsing of organism names found in GenBank records.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string with the nomenclatural code
	// of the pool. This method is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name, or an empty
	// string if the name cannot be parsed.
	Canonical(nameString string) string

	// Code returns the nomenclatural code of the pool.
	Code() nomcode.Code

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	code     nomcode.Code
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU(). The code is a
// nomenclatural code name like "bacterial" or "zoological". Unknown names
// give a parser that does not assume any code.
func NewPool(jobsNum int, code string) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	c := nomcode.New(code)
	cfg := gnparser.NewConfig(gnparser.OptCode(c))
	return &PoolImpl{
		ch:       gnparser.NewPool(cfg, poolSize),
		code:     c,
		poolSize: poolSize,
	}
}

// Parse takes a parser from the pool (blocking if all are busy), parses
// the name and returns the parser back.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

// Canonical returns the simple canonical form of a name.
func (p *PoolImpl) Canonical(nameString string) string {
	nameString = strings.TrimSpace(nameString)
	if nameString == "" {
		return ""
	}
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

// Code returns the nomenclatural code of the pool.
func (p *PoolImpl) Code() nomcode.Code {
	return p.code
}

// Close closes the channel and drains any remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
