package client

import (
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/flexliner/subtitles/internal/config"
)

// newRetryPolicy retries transport errors, 429 and 5xx responses with
// exponential backoff. After the last attempt the final response is returned
// as is so the caller can map its status code.
func newRetryPolicy(maxRetries int) retrypolicy.RetryPolicy[*http.Response] {
	return retrypolicy.NewBuilder[*http.Response]().
		HandleIf(shouldRetry).
		WithMaxRetries(maxRetries).
		WithBackoff(100*time.Millisecond, 2*time.Second).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[*http.Response]) {
			logger := config.GetLogger()
			event := logger.Warn().Int("attempt", e.Attempts())
			if err := e.LastError(); err != nil {
				event = event.Err(err)
			}
			if resp := e.LastResult(); resp != nil {
				event = event.Int("status", resp.StatusCode)
			}
			event.Msg("Retrying subtitle fetch")
		}).
		Build()
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
}
