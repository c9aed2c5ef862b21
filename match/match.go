// Package match is the public batch-matching surface: configuration, engine
// construction, and file/directory processing.
package match

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/SRI-AIC/valet-sub001/align"
	"github.com/SRI-AIC/valet-sub001/internal"
	"github.com/SRI-AIC/valet-sub001/internal/types"
	"github.com/SRI-AIC/valet-sub001/nlp"
	"github.com/SRI-AIC/valet-sub001/seq"
)

// Config represents the engine configuration read from .valet.yaml.
type Config struct {
	Name     string   `yaml:"name"`
	Rules    []string `yaml:"rules"`    // rule file paths
	Language string   `yaml:"language"` // "ja" enables kagome annotation
}

// ParseConfigFile reads and decodes a yaml configuration file.
func ParseConfigFile(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	return config, nil
}

// Runner pairs a compiled engine with the annotation pipeline the
// configuration selects.
type Runner struct {
	engine    *internal.Engine
	annotator *nlp.Annotator
	language  string
}

// New builds a runner from a configuration file. Extra rule files given on the
// command line are compiled after the configured ones, so later definitions
// win.
func New(configurationPath string, extraRules []string, logger *zap.Logger) (*Runner, error) {
	var config Config
	if configurationPath != "" {
		var err error
		config, err = ParseConfigFile(configurationPath)
		if err != nil {
			return nil, fmt.Errorf("reading configuration: %w", err)
		}
	}
	rulePaths := append(append([]string{}, config.Rules...), extraRules...)
	if len(rulePaths) == 0 {
		return nil, fmt.Errorf("no rule files configured")
	}

	engine, err := internal.NewEngine(rulePaths, logger)
	if err != nil {
		return nil, err
	}

	r := &Runner{engine: engine, language: config.Language}
	if config.Language == "ja" {
		r.annotator, err = nlp.NewAnnotator()
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewFromBlock builds a runner over an in-memory rule block, without
// annotation. Used by the root convenience API and tests.
func NewFromBlock(rules string) (*Runner, error) {
	engine, err := internal.NewEngineFromBlock(rules)
	if err != nil {
		return nil, err
	}
	return &Runner{engine: engine}, nil
}

// Engine exposes the underlying engine (rule listing, ignore set, watching).
func (r *Runner) Engine() *internal.Engine {
	return r.engine
}

// ProcessText matches every rule against every line of text.
func (r *Runner) ProcessText(filename, text string) ([]types.Match, error) {
	var all []types.Match
	for lineNo, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := r.sequenceOf(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNo+1, err)
		}
		all = append(all, r.engine.MatchSequence(filename, lineNo+1, s)...)
	}
	return all, nil
}

// sequenceOf builds the annotated canonical sequence for one line. With an
// annotator configured, the canonical tokens come from kagome's Search-mode
// segmentation and the annotations from its Normal-mode analysis, reconciled
// by the alignment layer; otherwise the line is tokenized by the plain regexp
// tokenizer and left unannotated.
func (r *Runner) sequenceOf(line string) (*seq.Sequence, error) {
	if r.annotator == nil {
		return seq.Tokenize(line), nil
	}
	s, err := r.annotator.Tokenize(line)
	if err != nil {
		return nil, err
	}
	align.Align(s, r.annotator.Annotate(line))
	return s, nil
}

// ProcessFile matches one text file.
func ProcessFile(r *Runner, filePath string) ([]types.Match, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return r.ProcessText(filePath, string(content))
}

// ProcessFiles runs the processor over every given path in order.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	r *Runner,
	paths []string,
	processor func(*Runner, string) ([]types.Match, error),
) ([]types.Match, error) {
	var allMatches []types.Match
	for _, path := range paths {
		matches, err := ProcessPath(ctx, logger, r, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allMatches = append(allMatches, matches...)
	}
	return allMatches, nil
}

// ProcessPath processes one file, or walks a directory and processes its text
// files on a bounded worker pool with a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	r *Runner,
	path string,
	processor func(*Runner, string) ([]types.Match, error),
) ([]types.Match, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	var matches []types.Match
	if info.IsDir() {
		var files []string
		filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fileInfo.IsDir() && hasDesiredExtension(filePath) {
				files = append(files, filePath)
			}
			return nil
		})

		resultChan := make(chan []types.Match, len(files))
		errorChan := make(chan error, len(files))

		maxWorkers := runtime.NumCPU()
		sem := make(chan struct{}, maxWorkers)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
				sem <- struct{}{}
				go func(fp string) {
					defer func() { <-sem }()

					fileMatches, err := processor(r, fp)
					if err != nil {
						if logger != nil {
							logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
						}
						errorChan <- err
						resultChan <- nil
					} else {
						resultChan <- fileMatches
						errorChan <- nil
					}
					bar.Add(1)
				}(filePath)
			}
		}

		for range files {
			if err := <-errorChan; err != nil {
				continue
			}
			if result := <-resultChan; result != nil {
				matches = append(matches, result...)
			}
		}

		fmt.Println()
		return matches, nil
	} else if hasDesiredExtension(path) {
		fileMatches, err := processor(r, path)
		if err != nil {
			return nil, err
		}
		matches = append(matches, fileMatches...)
	}

	return matches, nil
}

var desiredExtensions = map[string]bool{
	".txt":  true,
	".text": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
