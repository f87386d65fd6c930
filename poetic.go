// Package poetic verifies and scores Vietnamese poems against the lục bát
// (6/8) and thất ngôn bát cú (7×8) forms, checks spelling against a word
// list, and masks defective syllables for a downstream rewriter.
package poetic

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Engine bundles the loaded tables with every component built on them.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	tables    *Tables
	analyzer  *Analyzer
	rhymes    *RhymeMatcher
	validator *Validator
	speller   *SpellChecker
	masker    *Masker

	log           *zap.Logger
	passThreshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for stanza failures. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithPassThreshold sets the poem score at or above which Analysis.Passed
// is true.
func WithPassThreshold(score float64) Option {
	return func(e *Engine) { e.passThreshold = score }
}

// NewEngine builds an Engine over already loaded tables.
func NewEngine(t *Tables, opts ...Option) *Engine {
	a := NewAnalyzer(t)
	r := NewRhymeMatcher(t, a)
	e := &Engine{
		tables:        t,
		analyzer:      a,
		rhymes:        r,
		validator:     NewValidator(t, a, r),
		speller:       NewSpellChecker(t),
		masker:        NewMasker(),
		log:           zap.NewNop(),
		passThreshold: DefaultPassThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New loads the tables found in dataDir and returns a ready Engine.
func New(dataDir string, opts ...Option) (*Engine, error) {
	t, err := LoadTablesDir(dataDir)
	if err != nil {
		return nil, err
	}
	return NewEngine(t, opts...), nil
}

// Default returns an Engine over the tables embedded in the package.
func Default(opts ...Option) (*Engine, error) {
	t, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return NewEngine(t, opts...), nil
}

// Tables returns the engine's lookup tables.
func (e *Engine) Tables() *Tables { return e.tables }

// Analyzer returns the syllable analyzer.
func (e *Engine) Analyzer() *Analyzer { return e.analyzer }

// Rhymes returns the rhyme matcher.
func (e *Engine) Rhymes() *RhymeMatcher { return e.rhymes }

// Validator returns the form validator.
func (e *Engine) Validator() *Validator { return e.validator }

// SpellChecker returns the dictionary checker.
func (e *Engine) SpellChecker() *SpellChecker { return e.speller }

// PassThreshold returns the score a poem needs to pass.
func (e *Engine) PassThreshold() float64 { return e.passThreshold }

// StanzaReport is the per-stanza part of an Analysis.
type StanzaReport struct {
	// Index is 1-based.
	Index   int      `json:"index"`
	Status  Status   `json:"status"`
	Lines   int      `json:"lines"`
	Words   int      `json:"words"`
	Counts  Counts   `json:"counts"`
	Score   float64  `json:"score"`
	Defects []Defect `json:"defects"`
}

// Analysis is the full result of checking a poem.
type Analysis struct {
	Form    FormKind       `json:"form"`
	Stanzas []StanzaReport `json:"stanzas"`
	// Defects lists every stanza's defects, stanza numbers filled in.
	Defects []Defect `json:"defects"`
	Counts  Counts   `json:"counts"`
	Score   float64  `json:"score"`
	Passed  bool     `json:"passed"`
}

func checkForm(form FormKind) error {
	if form.Tag() == "" {
		return fmt.Errorf("%w: %d", ErrUnknownForm, int(form))
	}
	return nil
}

// Analyze splits poem on blank lines, validates each stanza against form
// and scores it. The poem score is the mean of the stanza scores.
func (e *Engine) Analyze(poem string, form FormKind) (*Analysis, error) {
	if err := checkForm(form); err != nil {
		return nil, err
	}
	stanzas := splitStanzas(poem)
	if len(stanzas) == 0 {
		return nil, ErrEmptyPoem
	}

	res := &Analysis{Form: form, Stanzas: make([]StanzaReport, len(stanzas)), Defects: []Defect{}}
	scores := make([]float64, len(stanzas))
	for i, st := range stanzas {
		rep := e.analyzeStanza(i+1, st, form)
		res.Stanzas[i] = rep
		res.Defects = append(res.Defects, rep.Defects...)
		scores[i] = rep.Score
	}
	res.Counts = CountDefects(res.Defects)
	score, err := meanScore(scores)
	if err != nil {
		return nil, err
	}
	res.Score = score
	res.Passed = score >= e.passThreshold
	return res, nil
}

// analyzeStanza validates and scores one stanza. A panic inside the pass
// is logged and turns into a failed stanza scoring 0.
func (e *Engine) analyzeStanza(index int, stanza string, form FormKind) (rep StanzaReport) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("stanza validation failed",
				zap.Int("stanza", index),
				zap.Stringer("form", form),
				zap.Any("panic", r),
			)
			rep = StanzaReport{Index: index, Status: StatusFailed, Defects: []Defect{}}
		}
	}()

	res := e.validate(stanza, form)
	for i := range res.Defects {
		res.Defects[i].Stanza = index
	}
	if res.Defects == nil {
		res.Defects = []Defect{}
	}
	rep = StanzaReport{
		Index:   index,
		Status:  res.Status,
		Lines:   res.Lines,
		Words:   res.Words,
		Counts:  CountDefects(res.Defects),
		Score:   StanzaScore(form, res),
		Defects: res.Defects,
	}
	e.log.Debug("stanza checked",
		zap.Int("stanza", index),
		zap.Stringer("status", rep.Status),
		zap.Int("defects", len(rep.Defects)),
		zap.Float64("score", rep.Score),
	)
	return rep
}

// validate is the single dispatch point from form to rule set.
func (e *Engine) validate(stanza string, form FormKind) StanzaResult {
	switch form {
	case Alternating68, Fixed78:
		return e.validator.Validate(stanza, form)
	case SpellingOnly:
		lines := splitLines(stanza)
		res := StanzaResult{Lines: len(lines), Words: countWords(lines)}
		if len(lines) == 0 {
			res.Status = StatusEmpty
			return res
		}
		res.Defects = e.speller.checkLines(lines)
		return res
	}
	return StanzaResult{Status: StatusFailed}
}

// Score returns the poem score for form, in [0, 100].
func (e *Engine) Score(poem string, form FormKind) (float64, error) {
	a, err := e.Analyze(poem, form)
	if err != nil {
		return 0, err
	}
	return a.Score, nil
}

// Mask blanks out the given defects in poem.
func (e *Engine) Mask(poem string, form FormKind, defects []Defect) MaskResult {
	return e.masker.Apply(poem, form, defects)
}

// AnalyzeAndMask analyzes poem and masks every defect found.
func (e *Engine) AnalyzeAndMask(poem string, form FormKind) (*Analysis, MaskResult, error) {
	a, err := e.Analyze(poem, form)
	if err != nil {
		return nil, MaskResult{}, err
	}
	return a, e.Mask(poem, form, a.Defects), nil
}

// Annotate returns poem with inline markers on every checked syllable.
func (e *Engine) Annotate(poem string, form FormKind) (string, error) {
	a, err := e.Analyze(poem, form)
	if err != nil {
		return "", err
	}
	stanzas := splitStanzas(poem)
	out := make([]string, len(stanzas))
	for i, st := range stanzas {
		out[i] = e.validator.annotateStanza(st, form, a.Stanzas[i].Defects)
	}
	return strings.Join(out, "\n\n"), nil
}

// Suggest returns up to n dictionary words close to word.
func (e *Engine) Suggest(word string, n int) []string {
	return e.speller.Suggest(word, n)
}
