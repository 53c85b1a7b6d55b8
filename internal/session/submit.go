package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/guptabinit/listform/internal/payload"
	"github.com/guptabinit/listform/internal/validate"
	"github.com/samber/lo"
)

// Transport sends the flattened submission. Implementations own multipart
// assembly and report upload progress through the callback.
type Transport interface {
	Send(ctx context.Context, parts []payload.Pair, progress func(loaded, total int64)) error
}

// ValidationError reports the fields that block submission.
type ValidationError struct {
	FieldIDs   []int64
	CommonKeys []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("submission blocked: %d custom fields and %d common fields missing or invalid",
		len(e.FieldIDs), len(e.CommonKeys))
}

// Validate returns a ValidationError when required fields are missing or
// price values do not parse; nil otherwise.
func (s *Session) Validate() error {
	priceErrs := validate.PriceErrors(s.state)
	if len(s.missingFields) == 0 && len(s.missingCommon) == 0 && len(priceErrs) == 0 {
		return nil
	}
	return &ValidationError{
		FieldIDs:   s.missingFields,
		CommonKeys: lo.Union(s.missingCommon, priceErrs),
	}
}

// Submit validates, assembles, encodes and hands the submission to the
// injected transport. The engine performs no retry and holds no submitting
// flag; re-invoking with the same session state is the caller's retry.
func (s *Session) Submit(ctx context.Context, progress func(loaded, total int64)) error {
	if s.transport == nil {
		return errors.New("transport is required")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	parts := payload.Encode(s.BuildPayload())
	if err := s.transport.Send(ctx, parts, progress); err != nil {
		return fmt.Errorf("send submission: %w", err)
	}
	return nil
}
