package snapshot

import (
	"snapcheck/internal/logging"
	"snapcheck/pkg/htmlutil"

	"go.uber.org/zap"
)

// HTML asserts markup (default extension ".html"). Before the text
// comparison the markup is validated, narrowed to Selector matches and
// pretty-printed; the first and last stages can be switched off per call or
// in the config. Stage failures are returned whatever the policy.
func (s *Store) HTML(got string, opts ...Option) error {
	req := s.request(".html", opts)
	log := logging.For(s.logger, logging.CategoryHTML)

	if req.Validate {
		if err := htmlutil.Validate(got); err != nil {
			return err
		}
	}

	if req.Selector != "" {
		selected, err := htmlutil.Select(got, req.Selector)
		if err != nil {
			return err
		}
		log.Debug("selected elements", zap.String("selector", req.Selector), zap.Int("bytes", len(selected)))
		got = selected
	}

	if req.Pretty {
		pretty, err := htmlutil.Pretty(got)
		if err != nil {
			return err
		}
		got = pretty
	}

	return s.text(req, got)
}
