// Package nlp adapts the kagome morphological analyzer to the alignment
// layer's external-engine interface. Kagome is consumed as a black box: any
// engine producing tagged spans over the same text is substitutable.
package nlp

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/SRI-AIC/valet-sub001/align"
	"github.com/SRI-AIC/valet-sub001/seq"
)

// Annotator wraps one kagome tokenizer instance. Safe for concurrent use;
// kagome analysis is a pure read over the dictionary.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator loads the IPA dictionary, skipping BOS/EOS pseudo-tokens.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initializing kagome: %w", err)
	}
	return &Annotator{t: t}, nil
}

// Annotate runs Normal-mode analysis and converts the result to an external
// annotation set: one ExtToken per morpheme, tagged with POS (hierarchical
// levels joined with ","), lemma (dictionary base form, falling back to the
// surface form), and reading/pronunciation when present. Kagome produces no
// dependency edges, so Edges stays empty; nothing is fabricated.
func (a *Annotator) Annotate(text string) *align.Annotations {
	ktoks := a.t.Analyze(text, tokenizer.Normal)
	ann := &align.Annotations{Tokens: make([]align.ExtToken, 0, len(ktoks))}
	for _, kt := range ktoks {
		tags := map[string]string{
			seq.POS:   strings.Join(kt.POS(), ","),
			seq.Lemma: lemmaOf(kt),
		}
		if r, ok := kt.Reading(); ok {
			tags["reading"] = r
		}
		if p, ok := kt.Pronunciation(); ok {
			tags["pron"] = p
		}
		ann.Tokens = append(ann.Tokens, align.ExtToken{
			Offset: kt.Start,
			Length: kt.End - kt.Start,
			Tags:   tags,
		})
	}
	return ann
}

// Tokenize runs Search-mode analysis, a finer segmentation than Normal mode,
// and returns it as a canonical sequence with rune offsets. Pairing it with
// Annotate on the same text gives two independent tokenizations of identical
// text, exactly what the alignment layer reconciles.
func (a *Annotator) Tokenize(text string) (*seq.Sequence, error) {
	ktoks := a.t.Analyze(text, tokenizer.Search)
	spans := make([][2]int, 0, len(ktoks))
	for _, kt := range ktoks {
		spans = append(spans, [2]int{kt.Start, kt.End - kt.Start})
	}
	return seq.NewSequence(text, spans)
}

func lemmaOf(kt tokenizer.Token) string {
	if base, ok := kt.BaseForm(); ok && base != "*" {
		return base
	}
	return kt.Surface
}
