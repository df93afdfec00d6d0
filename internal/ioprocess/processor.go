// Package ioprocess implements gngb.Processor. It reads GenBank files from
// disk, translates coding features with a pool of workers and keeps
// translations in an optional persistent cache.
package ioprocess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gngb/internal/iocache"
	"github.com/gnames/gngb/internal/iofs"
	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/genbank"
	"github.com/gnames/gngb/pkg/gngb"
	"github.com/gnames/gngb/pkg/parserpool"
	"github.com/gnames/gngb/pkg/report"
	"github.com/gnames/gngb/pkg/translate"
)

type processor struct {
	cfg   *config.Config
	pool  parserpool.Pool
	cache *iocache.Cache
}

// New creates a Processor. If the configuration asks for a cache, the
// cache is opened here and stays open until Close.
func New(cfg *config.Config) (gngb.Processor, error) {
	res := &processor{
		cfg:  cfg,
		pool: parserpool.NewPool(cfg.JobsNumber, cfg.Translate.NomCode),
	}
	slog.Info("Organism name parser is ready",
		"code", res.pool.Code().String())

	if !cfg.Translate.WithCache {
		return res, nil
	}

	cache, err := iocache.New(config.TranslationCacheDir(cfg.HomeDir))
	if err != nil {
		res.pool.Close()
		return nil, err
	}
	if err = cache.Open(); err != nil {
		res.pool.Close()
		return nil, err
	}
	res.cache = cache
	return res, nil
}

// Process implements gngb.Processor.
func (p *processor) Process(
	ctx context.Context,
	path string,
) (*report.Report, error) {
	start := time.Now()
	recs, diags, err := p.read(path)
	if err != nil {
		return nil, err
	}

	res := p.newReport(path, recs, diags)
	jobs := p.jobs(recs)
	slog.Info("Coding features selected",
		"file", path,
		"records", len(recs),
		"features", humanize.Comma(int64(len(jobs))),
	)

	features, err := p.translateAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	for i, j := range jobs {
		f := features[i]
		res.Records[j.recIdx].Features = append(res.Records[j.recIdx].Features, f)
		res.Stats.FeaturesNum++
		if f.Cached {
			res.Stats.CachedNum++
		}
		if f.Error == "" {
			res.Stats.TranslatedNum++
			continue
		}
		res.Stats.UntranslatedNum++
		d := report.Diagnostic{
			Record: j.rec.Name,
			Line:   j.feature.Line,
			Kind:   report.KindTranslation,
			Message: fmt.Sprintf("record %s, line %d: %s feature not translated: %s",
				j.rec.Name, j.feature.Line, j.feature.Kind, f.Error),
		}
		slog.Warn("Feature not translated",
			"record", d.Record, "line", d.Line, "error", f.Error)
		res.Diagnostics = append(res.Diagnostics, d)
	}

	dur := time.Since(start)
	slog.Info("Translation complete",
		"file", path,
		"translated", res.Stats.TranslatedNum,
		"untranslated", res.Stats.UntranslatedNum,
		"cached", res.Stats.CachedNum,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	return res, nil
}

// List implements gngb.Processor.
func (p *processor) List(
	_ context.Context,
	path string,
) (*report.Report, error) {
	recs, diags, err := p.read(path)
	if err != nil {
		return nil, err
	}

	res := p.newReport(path, recs, diags)
	res.ListOnly = true
	for i, rec := range recs {
		for idx, f := range rec.Features {
			feat := newFeature(idx, f)
			feat.Qualifiers = f.Qualifiers.Keys()
			res.Records[i].Features = append(res.Records[i].Features, feat)
		}
		res.Stats.FeaturesNum += len(rec.Features)
	}
	return res, nil
}

// CleanCache implements gngb.Processor.
func (p *processor) CleanCache() error {
	cache := p.cache
	if cache == nil {
		var err error
		cache, err = iocache.New(config.TranslationCacheDir(p.cfg.HomeDir))
		if err != nil {
			return err
		}
	}

	if err := cache.Clean(); err != nil {
		return err
	}

	if p.cache != nil {
		return p.cache.Open()
	}
	return nil
}

// Close implements gngb.Processor.
func (p *processor) Close() error {
	p.pool.Close()
	if p.cache != nil {
		return p.cache.Close()
	}
	return nil
}

func (p *processor) read(
	path string,
) ([]*genbank.Record, []genbank.Diagnostic, error) {
	f, err := iofs.OpenGenBank(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	slog.Info("Reading GenBank file",
		"file", path, "size", humanize.Bytes(uint64(f.Size)))

	recs, diags, err := genbank.Parse(f)
	if errors.Is(err, genbank.ErrFormat) {
		slog.Error("Malformed GenBank file", "file", path, "error", err)
		return nil, nil, GenBankFormatError(path, err)
	}
	if err != nil {
		slog.Error("Cannot read GenBank file", "file", path, "error", err)
		return nil, nil, GenBankReadError(path, err)
	}
	return recs, diags, nil
}

// newReport creates a report with record summaries and parser
// diagnostics. Features are added later.
func (p *processor) newReport(
	path string,
	recs []*genbank.Record,
	diags []genbank.Diagnostic,
) *report.Report {
	style := translate.ThreeLetter
	if p.cfg.Translate.OneLetter {
		style = translate.OneLetter
	}

	res := &report.Report{
		Input:   path,
		Style:   style.String(),
		Records: make([]report.Record, len(recs)),
	}

	for i, rec := range recs {
		res.Records[i] = report.Record{
			ID:                rec.ID(),
			Name:              rec.Name,
			Definition:        rec.Definition,
			Organism:          rec.Organism,
			OrganismCanonical: p.pool.Canonical(rec.Organism),
			Topology:          rec.Topology.String(),
			Length:            rec.Len(),
			FeaturesNum:       len(rec.Features),
			CodingNum:         len(rec.FeaturesOfKind(p.cfg.Translate.FeatureKinds...)),
		}
	}
	res.Stats.RecordsNum = len(recs)

	for _, d := range diags {
		kind := report.KindRecord
		if errors.Is(d.Err, genbank.ErrFeatureLocation) {
			kind = report.KindLocation
			res.Stats.DroppedNum++
		}
		slog.Warn("GenBank data problem",
			"record", d.Record, "line", d.Line, "error", d.Err)
		res.Diagnostics = append(res.Diagnostics, report.Diagnostic{
			Record:  d.Record,
			Line:    d.Line,
			Kind:    kind,
			Message: d.String(),
		})
	}
	return res
}

// job is a coding feature waiting for translation.
type job struct {
	rec     *genbank.Record
	recIdx  int
	index   int
	feature genbank.Feature
}

// jobs collects coding features that pass the selection, in file order.
func (p *processor) jobs(recs []*genbank.Record) []job {
	var res []job
	kinds := p.cfg.Translate.FeatureKinds
	for i, rec := range recs {
		for idx, f := range rec.Features {
			if !slices.Contains(kinds, f.Kind) || !p.selected(f) {
				continue
			}
			res = append(res, job{rec: rec, recIdx: i, index: idx, feature: f})
		}
	}
	return res
}

// selected reports if a feature is among the features asked by the user.
// Everything is selected when the selection is empty.
func (p *processor) selected(f genbank.Feature) bool {
	sel := p.cfg.Translate.Select
	if len(sel) == 0 {
		return true
	}
	for _, key := range []string{"protein_id", "gene", "locus_tag"} {
		for _, v := range f.Qualifiers.Values(key) {
			if slices.Contains(sel, v) {
				return true
			}
		}
	}
	return false
}

func newFeature(idx int, f genbank.Feature) report.Feature {
	strand := "mixed"
	if s := f.Location.Strand(); s != 0 {
		strand = s.String()
	}
	return report.Feature{
		Index:          idx,
		Kind:           f.Kind,
		Location:       f.Location.String(),
		Strand:         strand,
		Partial:        f.Location.IsPartial(),
		Gene:           f.Qualifier("gene"),
		LocusTag:       f.Qualifier("locus_tag"),
		ProteinID:      f.Qualifier("protein_id"),
		Product:        f.Qualifier("product"),
		NucleotidesLen: f.Location.Len(),
	}
}
