package internal

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/SRI-AIC/valet-sub001/internal/types"
	"github.com/SRI-AIC/valet-sub001/pattern"
	"github.com/SRI-AIC/valet-sub001/seq"
	"github.com/SRI-AIC/valet-sub001/tokentest"
)

// Engine manages the matching process: a token-test matcher registry compiled
// from rule files, an ignore set, and optionally a watcher that recompiles the
// registry when a rule file changes.
//
// Matching is a pure read over the registry; the mutex only fences registry
// swaps against concurrent readers.
type Engine struct {
	mu           sync.RWMutex
	registry     *pattern.Registry[tokentest.Atom]
	rulePaths    []string
	ignoredRules map[string]bool

	watcher    *fsnotify.Watcher
	isWatching bool
	onReload   func()
	logger     *zap.Logger
}

// SetOnReload registers a callback invoked after a successful watch-triggered
// reload. Set it before StartWatching.
func (e *Engine) SetOnReload(f func()) {
	e.onReload = f
}

// NewEngine compiles the given rule files into a fresh engine. logger may be
// nil.
func NewEngine(rulePaths []string, logger *zap.Logger) (*Engine, error) {
	reg, err := compile(rulePaths)
	if err != nil {
		return nil, err
	}
	return &Engine{
		registry:     reg,
		rulePaths:    rulePaths,
		ignoredRules: make(map[string]bool),
		logger:       logger,
	}, nil
}

// NewEngineFromBlock compiles an in-memory rule block instead of files.
func NewEngineFromBlock(text string) (*Engine, error) {
	reg, err := tokentest.NewRegistry()
	if err != nil {
		return nil, err
	}
	if err := reg.ParseBlock(text); err != nil {
		return nil, err
	}
	return &Engine{registry: reg, ignoredRules: make(map[string]bool)}, nil
}

func compile(rulePaths []string) (*pattern.Registry[tokentest.Atom], error) {
	reg, err := tokentest.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, path := range rulePaths {
		if err := reg.ParseFile(path); err != nil {
			return nil, fmt.Errorf("compiling %s: %w", path, err)
		}
	}
	return reg, nil
}

// Reload recompiles every rule file and swaps the registry in. On failure the
// previous registry stays active.
func (e *Engine) Reload() error {
	reg, err := compile(e.rulePaths)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.registry = reg
	e.mu.Unlock()
	return nil
}

// IgnoreRule excludes a rule name from matching.
func (e *Engine) IgnoreRule(rule string) {
	e.mu.Lock()
	e.ignoredRules[rule] = true
	e.mu.Unlock()
}

// Rules returns the sorted names of all compiled rules.
func (e *Engine) Rules() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.Names()
}

// RuleString renders the compiled tree of one rule for display.
func (e *Engine) RuleString(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	node, ok := e.registry.Lookup(name)
	if !ok {
		return "", false
	}
	return node.String(), true
}

// MatchSequence tests every non-ignored rule against every token position of
// s and returns the match records found, in token order then rule order.
func (e *Engine) MatchSequence(filename string, line int, s *seq.Sequence) []types.Match {
	e.mu.RLock()
	defer e.mu.RUnlock()
	reg := e.registry
	ignored := e.ignoredRules

	var matches []types.Match
	names := reg.Names()
	for i := 0; i < s.Len(); i++ {
		for _, name := range names {
			if ignored[name] {
				continue
			}
			node, _ := reg.Lookup(name)
			if tokentest.Eval(node, s, i, reg) {
				off, length := s.Span(i)
				matches = append(matches, types.Match{
					Rule:       name,
					Filename:   filename,
					Line:       line,
					TokenIndex: i,
					TokenText:  s.TokenText(i),
					Offset:     off,
					Length:     length,
				})
			}
		}
	}
	return matches
}
