package ioprocess

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnuuid"
	"github.com/gnames/gngb/internal/iocache"
	"github.com/gnames/gngb/pkg/report"
	"github.com/gnames/gngb/pkg/translate"
	"golang.org/x/sync/errgroup"
)

// translateAll translates jobs concurrently. Every worker writes only to
// the result slot of its job, so the output keeps the order of jobs.
func (p *processor) translateAll(
	ctx context.Context,
	jobs []job,
) ([]report.Feature, error) {
	res := make([]report.Feature, len(jobs))
	if len(jobs) == 0 {
		return res, nil
	}

	var bar *pb.ProgressBar
	if p.cfg.Translate.WithProgress {
		bar = newProgressBar(len(jobs), "Translating: ")
		defer bar.Finish()
	}

	chIn := make(chan int)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for i := range jobs {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	workerCount := max(1, p.cfg.JobsNumber)
	for range workerCount {
		g.Go(func() error {
			for i := range chIn {
				f, err := p.translateJob(jobs[i])
				if err != nil {
					return err
				}
				res[i] = f
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, TranslateError(err)
	}
	return res, nil
}

// translateJob returns a report feature for one job. Regions that cannot
// be translated give a feature with Error set. Only cache failures are
// returned as errors.
func (p *processor) translateJob(j job) (report.Feature, error) {
	res := newFeature(j.index, j.feature)

	region, err := translate.Resolve(j.rec.Sequence, j.feature.Location)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	if p.cfg.Translate.WithNucleotides {
		res.Nucleotides = string(region)
	}

	pep, cached, err := p.peptide(region)
	if err != nil {
		var tErr *translate.TranslationError
		if errors.As(err, &tErr) {
			res.Error = err.Error()
			return res, nil
		}
		return res, err
	}

	style := translate.ThreeLetter
	if p.cfg.Translate.OneLetter {
		style = translate.OneLetter
	}

	res.Translation = pep.Render(style)
	res.ProteinLen = pep.Len()
	res.Stopped = pep.Stopped
	res.TranslationID = gnuuid.New(string(pep.Residues)).String()
	res.Cached = cached
	return res, nil
}

// peptide translates a region, consulting the cache if there is one.
func (p *processor) peptide(region []byte) (translate.Peptide, bool, error) {
	if p.cache != nil {
		pep, ok, err := p.cache.Get(region)
		if err != nil {
			return pep, false, err
		}
		if ok {
			return pep, true, nil
		}
	}

	pep, err := translate.Region(region)
	if err != nil {
		return pep, false, err
	}

	if p.cache != nil {
		if err = p.cache.Set(region, pep); err != nil {
			return pep, false, err
		}
		slog.Debug("Translation cached", "key", iocache.Key(region).String())
	}
	return pep, false, nil
}
