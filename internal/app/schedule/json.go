package schedule

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmingn/dtv-schedule-rss/internal/app/fetch"
)

// fetchJSON fetches url into v. A body that is valid JSON but the wrong
// shape becomes a ParseError carrying a payload preview, logged the same
// way the HTML adapters log their parse failures.
func fetchJSON(ctx context.Context, client *fetch.Client, source, url string, v any) error {
	err := client.FetchJSON(ctx, url, v)

	var decodeErr *fetch.DecodeError
	if errors.As(err, &decodeErr) {
		perr := &ParseError{
			Source:  source,
			Msg:     fmt.Sprintf("unexpected payload shape: %v", decodeErr.Unwrap()),
			Preview: preview(decodeErr.Body),
		}
		zap.L().Error("JSON parse error.",
			zap.String("url", url),
			zap.String("preview", perr.Preview),
			zap.Error(err))
		return perr
	}
	return err
}
