package generation

import (
	"context"

	"golang.org/x/sync/errgroup"

	codegen "github.com/haowjy/meridian-codegen"
)

// Job is one Generate call in a batch.
type Job struct {
	Description string
	Kind        string
	Options     codegen.GenerationOptions
}

// GenerateAll runs jobs with at most limit in flight (limit <= 0 means no bound).
// Results are indexed like jobs. The first failure cancels the jobs still running
// and is returned; results of jobs that finished stay in the slice.
func (c *Client) GenerateAll(ctx context.Context, jobs []Job, limit int) ([]*codegen.ResponseEnvelope, error) {
	results := make([]*codegen.ResponseEnvelope, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			resp, err := c.Generate(ctx, job.Description, job.Kind, job.Options)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}

	return results, g.Wait()
}
