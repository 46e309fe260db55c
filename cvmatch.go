// Package cvmatch turns positioned text fragments of a CV into a
// structured, confidence-scored professional profile.
//
// Basic usage:
//
//	result, err := cvmatch.New().Process(fragments)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Quality.GlobalScore)
//
// With options:
//
//	result, err := cvmatch.New().
//	    WithLogger(logger).
//	    WithPhoneRegion("FR").
//	    Process(fragments)
//
// Analysis runs five stages in a fixed order: layout analysis, section
// mapping, component extraction, field normalization, and quality
// scoring. Each stage's package is also usable on its own.
package cvmatch

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Kojynth/cvmatch-sub004/config"
	"github.com/Kojynth/cvmatch-sub004/extract"
	"github.com/Kojynth/cvmatch-sub004/layout"
	"github.com/Kojynth/cvmatch-sub004/model"
	"github.com/Kojynth/cvmatch-sub004/normalize"
	"github.com/Kojynth/cvmatch-sub004/quality"
	"github.com/Kojynth/cvmatch-sub004/section"
)

// Result bundles the terminal output of every stage for one document.
type Result struct {
	Layout     *model.LayoutAnalysis
	Mapping    *model.SectionMapping
	Extracted  *model.ExtractedData
	Normalized *model.NormalizedData
	Quality    *model.GlobalQualityMetrics
}

// Pipeline runs the five analysis stages over one document at a time.
// A Pipeline is safe for concurrent use: all mutable state lives in
// the fragments passed to Process.
type Pipeline struct {
	cfg         *config.Config
	log         *logrus.Logger
	phoneRegion string
	ocrQuality  float64
}

// New creates a Pipeline with the built-in configuration and a
// silent logger.
func New() *Pipeline {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return &Pipeline{
		cfg:         config.Default(),
		log:         silent,
		phoneRegion: "US",
		ocrQuality:  -1,
	}
}

// WithConfig replaces the rule tables and thresholds.
func (p *Pipeline) WithConfig(cfg *config.Config) *Pipeline {
	if cfg != nil {
		p.cfg = cfg
	}
	return p
}

// WithLogger attaches a logger for per-stage debug output.
func (p *Pipeline) WithLogger(log *logrus.Logger) *Pipeline {
	if log != nil {
		p.log = log
	}
	return p
}

// WithPhoneRegion sets the default region for parsing phone numbers
// that carry no international prefix (ISO 3166-1 alpha-2, e.g. "FR").
func (p *Pipeline) WithPhoneRegion(region string) *Pipeline {
	if region != "" {
		p.phoneRegion = region
	}
	return p
}

// WithOCRQuality supplies upstream OCR quality metadata in [0,1]. When
// set, the quality stage reports it as a sub-score.
func (p *Pipeline) WithOCRQuality(q float64) *Pipeline {
	p.ocrQuality = model.ClampScore(q)
	return p
}

// Process analyzes one document. The fragments are annotated in place
// (reading order, column, section) and must not be shared with a
// concurrent Process call. An empty slice yields a well-defined empty
// Result; an error is returned only for structurally invalid input.
func (p *Pipeline) Process(fragments []*model.TextFragment) (*Result, error) {
	for i, f := range fragments {
		if f == nil {
			return nil, fmt.Errorf("cvmatch: fragment %d is nil", i)
		}
		if f.Page < 0 {
			return nil, fmt.Errorf("cvmatch: fragment %d has negative page %d", i, f.Page)
		}
	}

	analyzer := layout.NewAnalyzer(p.cfg)
	la := analyzer.Analyze(fragments)
	p.log.WithFields(logrus.Fields{
		"fragments": len(fragments),
		"columns":   la.ColumnCount,
		"language":  la.Language,
		"rtl":       la.IsRTLLayout,
	}).Debug("layout analyzed")

	mapper := section.NewMapper(p.cfg)
	mapping := mapper.Map(fragments, la)
	p.log.WithFields(logrus.Fields{
		"sections": len(mapping.Sections),
		"unmapped": len(mapping.Unmapped),
		"risks":    len(mapping.Risks),
	}).Debug("sections mapped")

	extractor := extract.NewExtractor(p.cfg)
	data := extractor.Extract(mapping, la)
	if p.ocrQuality >= 0 {
		q := p.ocrQuality
		data.OCRQuality = &q
	}
	p.log.WithFields(logrus.Fields{
		"experiences": len(data.Experiences),
		"education":   len(data.Education),
		"skills":      len(data.Skills),
	}).Debug("components extracted")

	normalizer := normalize.NewNormalizer(p.cfg)
	normalizer.DefaultPhoneRegion = p.phoneRegion
	normalized := normalizer.NormalizeForLanguage(data, la.Language)
	p.log.Debug("fields normalized")

	scorer := quality.NewScorer(p.cfg)
	metrics := scorer.Score(data, la, mapping, normalized)
	p.log.WithFields(logrus.Fields{
		"global_score": metrics.GlobalScore,
		"completeness": metrics.Completeness,
	}).Debug("quality scored")

	return &Result{
		Layout:     la,
		Mapping:    mapping,
		Extracted:  data,
		Normalized: normalized,
		Quality:    metrics,
	}, nil
}
