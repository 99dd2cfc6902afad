package puzzle

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/playarcade/internal/shuffle"
)

// maxImageBytes caps how much of a remote picture is read.
const maxImageBytes = 8 << 20

// ImageSource resolves a level's image reference to picture bytes.
type ImageSource interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Resolver reads relative references from a content filesystem and
// http(s) URLs over the network.
type Resolver struct {
	FS     fs.FS
	Client *http.Client
	Logger *zap.Logger
}

// NewResolver returns a resolver over fsys. A nil logger disables logging.
func NewResolver(fsys fs.FS, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		FS:     fsys,
		Client: &http.Client{Timeout: 10 * time.Second},
		Logger: logger,
	}
}

func (r *Resolver) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, ErrNoImage
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return r.fetchURL(ctx, ref)
	}
	if r.FS == nil {
		return nil, fmt.Errorf("no filesystem for %q", ref)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(r.FS, strings.TrimPrefix(ref, "/"))
}

func (r *Resolver) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

// Load resolves ref and builds a shuffled board. A picture that cannot be
// fetched is logged and the chain falls through to abstract tiles.
func (r *Resolver) Load(ctx context.Context, ref string, grid int, opts ...BuildOption) (*Layout, error) {
	src := Source{Ref: ref}
	if ref != "" {
		data, err := r.Fetch(ctx, ref)
		if err != nil {
			r.Logger.Warn("puzzle image unavailable", zap.String("ref", ref), zap.Error(err))
		} else {
			src.Data = data
		}
	}
	var cfg buildConfig
	for _, o := range opts {
		o(&cfg)
	}
	l, err := Build(src, grid, cfg.rnd, cfg.chain...)
	if err != nil {
		return nil, err
	}
	if l.Kind != KindSliced && ref != "" {
		r.Logger.Debug("puzzle fell back", zap.String("ref", ref), zap.Stringer("kind", l.Kind))
	}
	return l, nil
}

// BuildOption tunes Resolver.Load.
type BuildOption func(*buildConfig)

type buildConfig struct {
	rnd   shuffle.Source
	chain []Strategy
}

// WithRand sets the shuffle source.
func WithRand(src shuffle.Source) BuildOption {
	return func(c *buildConfig) { c.rnd = src }
}

// WithChain overrides the fallback chain.
func WithChain(chain ...Strategy) BuildOption {
	return func(c *buildConfig) { c.chain = chain }
}
