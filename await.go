package hypersave

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// Terminal states reported by save and ingest status endpoints.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AwaitInterval bounds the gap between status polls in AwaitSave and
// AwaitIngest.
var AwaitInterval = 2 * time.Second

func pollBackOff() *backoff.ExponentialBackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = AwaitInterval
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	exp.Reset()
	return exp
}

// poll calls check until it reports done or fails. Each check is an ordinary
// call with its own timeout; ctx bounds the whole wait.
func poll(ctx context.Context, check func(context.Context) (bool, error)) error {
	exp := pollBackOff()
	for {
		done, err := check(ctx)
		if err != nil || done {
			return err
		}
		timer := time.NewTimer(exp.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			return hserrors.NewGeneric("wait canceled", 0, ctx.Err())
		case <-timer.C:
		}
	}
}

// AwaitSave polls an asynchronous save until it completes. A save that ends
// in the failed state is returned as a server error.
func (c *Client) AwaitSave(ctx context.Context, saveID string, opts ...CallOption) (*SaveStatusResponse, error) {
	var last *SaveStatusResponse
	err := poll(ctx, func(ctx context.Context) (bool, error) {
		st, err := c.GetSaveStatus(ctx, saveID, opts...)
		if err != nil {
			return false, err
		}
		last = st
		switch st.Status {
		case StatusCompleted:
			return true, nil
		case StatusFailed:
			return false, hserrors.NewServer(firstNonEmpty(st.Error, "save failed"), 0)
		}
		return false, nil
	})
	return last, err
}

// AwaitIngest polls an ingestion job until it completes. A job that ends in
// the failed state is returned as a server error.
func (c *Client) AwaitIngest(ctx context.Context, jobID string, opts ...CallOption) (*IngestStatusResponse, error) {
	var last *IngestStatusResponse
	err := poll(ctx, func(ctx context.Context) (bool, error) {
		st, err := c.GetIngestStatus(ctx, jobID, opts...)
		if err != nil {
			return false, err
		}
		last = st
		switch st.Status {
		case StatusCompleted:
			return true, nil
		case StatusFailed:
			return false, hserrors.NewServer(firstNonEmpty(st.Error, "ingestion failed"), 0)
		}
		return false, nil
	})
	return last, err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
