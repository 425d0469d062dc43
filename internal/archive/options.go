package archive

import (
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// ProgressFunc is called after each archive entry is written.
type ProgressFunc func(done, total int, entry string)

type options struct {
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
	maxEntrySize  int64
	fileSetAssets bool
	progress      ProgressFunc
}

// Option configures a Reader or Writer.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		logger:       zap.NewNop(),
		now:          time.Now,
		newID:        model.NewID,
		maxEntrySize: DefaultMaxEntrySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger warnings are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the time source for packages without timestamps and for
// generated notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides project and slide id generation.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

// WithMaxEntrySize sets the largest entry that will be read. Values <= 0
// restore the default.
func WithMaxEntrySize(n int64) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxEntrySize
		}
		o.maxEntrySize = n
	}
}

// WithFileSetAssets makes ImportFromFileSet resolve slide references against
// the other files in the set. By default file-set slides carry no assets.
func WithFileSetAssets(enabled bool) Option {
	return func(o *options) { o.fileSetAssets = enabled }
}

// WithProgress registers a callback invoked once per written entry.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}
