package sentiment

import (
	"context"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"airvoice/internal/models"
)

// AnalyzeBatch analyzes texts concurrently and returns results in input
// order. A panic while analyzing one text yields a neutral placeholder
// for that slot instead of taking down the batch.
func (e *Engine) AnalyzeBatch(ctx context.Context, texts []string) []Result {
	results := make([]Result, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, text := range texts {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("sentiment: recovered panic analyzing batch item %d: %v", i, r)
					results[i] = Result{
						Text:      text,
						Sentiment: models.SentimentNeutral,
						Language:  models.LanguageEN,
						Error:     "analysis failed",
					}
				}
			}()
			results[i] = e.Analyze(ctx, text)
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	return results
}
