package snapshot

import (
	"fmt"
	"os"
	"snapcheck/internal/config"
	"snapcheck/internal/logging"
	"snapcheck/internal/policy"
	"snapcheck/pkg/diff"
	"sync"

	"go.uber.org/zap"
)

// Store performs snapshot assertions with one configuration and one naming
// registry.
type Store struct {
	cfg      *config.Config
	registry *Registry
	logger   *zap.Logger

	textDiff  diff.TextFunc
	valueDiff diff.ValueFunc

	// testName, when set, replaces the caller's function name in derived
	// snapshot names.
	testName func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithConfig uses cfg instead of the defaults.
func WithConfig(cfg *config.Config) StoreOption {
	return func(s *Store) error {
		if cfg == nil {
			return fmt.Errorf("nil config")
		}
		s.cfg = cfg
		return nil
	}
}

// WithConfigFile loads the configuration from a YAML file.
func WithConfigFile(path string) StoreOption {
	return func(s *Store) error {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		s.cfg = cfg
		return nil
	}
}

// WithRegistry sets the naming registry. Stores share DefaultRegistry
// unless told otherwise.
func WithRegistry(r *Registry) StoreOption {
	return func(s *Store) error {
		s.registry = r
		return nil
	}
}

// WithLogger sets the logger. By default the store logs only in debug mode.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStore creates a Store.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{
		cfg:      config.DefaultConfig(),
		registry: DefaultRegistry,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		logger, err := logging.New(s.cfg.Logging)
		if err != nil {
			return nil, err
		}
		s.logger = logger
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}

	switch s.cfg.Snapshot.Diff {
	case diff.StyleNDiff:
		s.textDiff = diff.NDiff
	default:
		s.textDiff = diff.ForEngine(diff.NewEngine(diff.WithContextLines(s.cfg.Snapshot.ContextLines)))
	}
	s.valueDiff = diff.Pretty(s.textDiff)

	return s, nil
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store behind the package-level functions. It is
// configured from the file named by SNAPCHECK_CONFIG, if any.
func Default() *Store {
	defaultOnce.Do(func() {
		s, err := NewStore(WithConfigFile(os.Getenv(config.EnvConfigPath)))
		if err != nil {
			s, _ = NewStore()
			s.logger.Warn("ignoring invalid snapcheck config", zap.Error(err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Registry returns the store's naming registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

func (s *Store) request(ext string, opts []Option) *Request {
	req := &Request{
		Extension: ext,
		FromFile:  s.cfg.Snapshot.FromFile,
		ToFile:    s.cfg.Snapshot.ToFile,
		Validate:  s.cfg.HTML.Validate,
		Pretty:    s.cfg.HTML.Pretty,
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

func (s *Store) textDiffFor(req *Request) diff.TextFunc {
	if req.TextDiff != nil {
		return req.TextDiff
	}
	return s.textDiff
}

func (s *Store) valueDiffFor(req *Request) diff.ValueFunc {
	if req.ValueDiff != nil {
		return req.ValueDiff
	}
	if req.TextDiff != nil {
		return diff.Pretty(req.TextDiff)
	}
	return s.valueDiff
}

// variant adapts the shared protocol to one content shape.
type variant struct {
	kind    string
	encoded []byte

	// equal compares against the stored bytes. An error means the baseline
	// is unusable and is handled like a missing file.
	equal func(baseline []byte) (bool, error)

	// mismatch builds the error for a baseline that differs.
	mismatch func(baseline []byte, name, path string) error
}

// check loads the baseline, writes the new content when there is none or it
// differs, and then reports according to the policy. Writing always happens
// before reporting.
func (s *Store) check(req *Request, v variant) error {
	path, name, err := s.file(req)
	if err != nil {
		return err
	}
	log := logging.For(s.logger, logging.CategoryStore).With(
		zap.String("kind", v.kind),
		zap.String("path", path),
	)

	baseline, err := os.ReadFile(path)
	equal := false
	if err == nil {
		equal, err = v.equal(baseline)
	}

	if err != nil {
		if werr := write(path, v.encoded); werr != nil {
			return werr
		}
		log.Info("snapshot written", zap.String("reason", "missing"), zap.Error(err))
		if !policy.Strict(s.cfg.Snapshot.StrictEnv) {
			return nil
		}
		return &MissingError{Name: name, Path: path, Err: err}
	}

	if equal {
		log.Debug("snapshot matches")
		return nil
	}

	if err := write(path, v.encoded); err != nil {
		return err
	}
	log.Info("snapshot written", zap.String("reason", "changed"))
	if !policy.Strict(s.cfg.Snapshot.StrictEnv) {
		return nil
	}
	return v.mismatch(baseline, name, path)
}

func write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
