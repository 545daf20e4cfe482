package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/media"
)

// Failure records one file that could not be ingested.
type Failure struct {
	Name string
	Err  error
}

// Batch is the outcome of IngestAll. Images is the full new collection for
// the slot; Added counts the newly ingested images.
type Batch struct {
	Images   []media.ReferenceImage
	Added    int
	Skipped  []string
	Failures []Failure
}

// Err returns the first per-file failure, if any.
func (b Batch) Err() error {
	if len(b.Failures) == 0 {
		return nil
	}
	return b.Failures[0].Err
}

// IngestAll filters files to images, ingests the survivors in parallel and
// merges them with existing in input order. With multi the new images are
// appended; otherwise they replace existing. A file that fails does not
// stop the others. If no file survives the filter, existing is returned
// unchanged together with an UnsupportedFormat error. If every survivor
// fails, existing is kept as is.
func (in *Ingester) IngestAll(ctx context.Context, files []File, existing []media.ReferenceImage, multi bool) (Batch, error) {
	batch := Batch{Images: append([]media.ReferenceImage(nil), existing...)}

	accepted := make([]File, 0, len(files))
	for _, f := range files {
		if Accepts(f) {
			accepted = append(accepted, f)
			continue
		}
		batch.Skipped = append(batch.Skipped, f.Name)
	}
	if len(accepted) == 0 {
		return batch, apperr.New(apperr.UnsupportedFormat, "ingest.IngestAll", "no image files in selection")
	}

	results := make([]media.ReferenceImage, len(accepted))
	errs := make([]error, len(accepted))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(in.workers)
	for i, f := range accepted {
		eg.Go(func() error {
			results[i], errs[i] = in.Ingest(egCtx, f)
			return nil
		})
	}
	_ = eg.Wait()

	if err := ctx.Err(); err != nil {
		return Batch{Images: batch.Images}, err
	}

	added := make([]media.ReferenceImage, 0, len(accepted))
	for i, f := range accepted {
		if errs[i] != nil {
			batch.Failures = append(batch.Failures, Failure{Name: f.Name, Err: errs[i]})
			continue
		}
		added = append(added, results[i])
	}

	if len(batch.Failures) > 0 {
		in.logger.Warn().
			Int("failed", len(batch.Failures)).
			Int("ingested", len(added)).
			Msg("some files could not be ingested")
	}

	if len(added) == 0 {
		return batch, nil
	}
	batch.Added = len(added)
	if multi {
		batch.Images = append(batch.Images, added...)
	} else {
		batch.Images = added
	}
	return batch, nil
}
