package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/charkeep/core"
	"github.com/poiesic/charkeep/storage"
)

const (
	// DefaultPrimaryKey is the key of the character list in the primary store.
	DefaultPrimaryKey = "characters.json"

	// DefaultSecondaryKey is the key of the mirrored list in the secondary store.
	DefaultSecondaryKey = "dnd-saved-characters"
)

// Platform names reported by Info.
const (
	PlatformDesktop = "desktop"
	PlatformWeb     = "web"
)

// Ledger stores the ordered character list.
type Ledger struct {
	primary      storage.Store
	secondary    storage.Store
	primaryKey   string
	secondaryKey string
	matchers     []Matcher
	platform     string
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithSecondary sets the fallback store that mirrors every write.
func WithSecondary(store storage.Store) Option {
	return func(l *Ledger) {
		l.secondary = store
	}
}

// WithPrimaryKey overrides the key used in the primary store.
// Default is DefaultPrimaryKey.
func WithPrimaryKey(key string) Option {
	return func(l *Ledger) {
		if key != "" {
			l.primaryKey = key
		}
	}
}

// WithSecondaryKey overrides the key used in the secondary store.
// Default is DefaultSecondaryKey.
func WithSecondaryKey(key string) Option {
	return func(l *Ledger) {
		if key != "" {
			l.secondaryKey = key
		}
	}
}

// WithMatchers replaces the upsert matcher cascade.
// Default is DefaultMatchers().
func WithMatchers(matchers ...Matcher) Option {
	return func(l *Ledger) {
		l.matchers = append([]Matcher(nil), matchers...)
	}
}

// WithPlatform sets the platform name reported by Info.
func WithPlatform(platform string) Option {
	return func(l *Ledger) {
		l.platform = platform
	}
}

// WithClock sets the time source used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// New creates a Ledger persisting to primary.
func New(primary storage.Store, opts ...Option) (*Ledger, error) {
	if primary == nil {
		return nil, ErrStoreRequired
	}

	l := &Ledger{
		primary:      primary,
		primaryKey:   DefaultPrimaryKey,
		secondaryKey: DefaultSecondaryKey,
		matchers:     DefaultMatchers(),
		platform:     PlatformDesktop,
		now:          time.Now,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// LoadAll returns the stored character list.
//
// A missing list is an empty ledger. When the primary store fails or holds
// malformed data the secondary store is consulted. LoadAll never fails; the
// worst case is an empty list.
func (l *Ledger) LoadAll(ctx context.Context) []core.Document {
	data, err := l.primary.Read(ctx, l.primaryKey)
	if err == nil {
		records, perr := decodeList(data)
		if perr == nil {
			l.logger.Debug("loaded characters", "count", len(records), "key", l.primaryKey)
			return records
		}
		err = perr
	} else if errors.Is(err, storage.ErrNotFound) {
		l.logger.Debug("no saved characters yet", "key", l.primaryKey)
		return []core.Document{}
	}

	l.logger.Warn("error loading characters, falling back to secondary store", "error", err)
	return l.loadSecondary(ctx)
}

func (l *Ledger) loadSecondary(ctx context.Context) []core.Document {
	if l.secondary == nil {
		return []core.Document{}
	}

	data, err := l.secondary.Read(ctx, l.secondaryKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Error("error loading characters from secondary store", "error", err)
		}
		return []core.Document{}
	}

	records, err := decodeList(data)
	if err != nil {
		l.logger.Error("error loading characters from secondary store", "error", err)
		return []core.Document{}
	}
	l.logger.Debug("loaded characters from secondary store", "count", len(records))
	return records
}

// SaveAll writes the full list to the primary store and mirrors it to the
// secondary store. If the primary write fails the secondary write alone
// decides the outcome. Returns an error wrapping ErrSaveFailed only when no
// store accepted the list.
func (l *Ledger) SaveAll(ctx context.Context, records []core.Document) error {
	if records == nil {
		records = []core.Document{}
	}

	primaryErr := l.writePrimary(ctx, records)
	if primaryErr == nil {
		l.logger.Debug("saved characters", "count", len(records), "key", l.primaryKey)
		if err := l.writeSecondary(ctx, records); err != nil {
			l.logger.Warn("error mirroring characters to secondary store", "error", err)
		}
		return nil
	}

	l.logger.Error("error saving characters, falling back to secondary store", "error", primaryErr)
	if l.secondary == nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, primaryErr)
	}
	if err := l.writeSecondary(ctx, records); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, errors.Join(primaryErr, err))
	}
	l.logger.Debug("saved characters to secondary store", "count", len(records))
	return nil
}

func (l *Ledger) writePrimary(ctx context.Context, records []core.Document) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode characters: %w", err)
	}
	return l.primary.Write(ctx, l.primaryKey, data)
}

func (l *Ledger) writeSecondary(ctx context.Context, records []core.Document) error {
	if l.secondary == nil {
		return nil
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode characters: %w", err)
	}
	return l.secondary.Write(ctx, l.secondaryKey, data)
}

// Upsert stores record, replacing the stored character it matches or
// appending it when nothing matches. A replaced slot keeps its stored name.
func (l *Ledger) Upsert(ctx context.Context, record core.Document) error {
	if err := core.ValidateCharacter(record); err != nil {
		return err
	}
	incoming := record.Name()

	records := l.LoadAll(ctx)
	idx, stage := findMatch(l.matchers, records, incoming)
	if idx < 0 {
		l.logger.Debug("adding new character", "name", incoming)
		records = append(records, record)
		return l.SaveAll(ctx, records)
	}

	existing := records[idx].Name()
	updated, err := record.WithName(existing)
	if err != nil {
		return fmt.Errorf("rename %q to %q: %w", incoming, existing, err)
	}
	l.logger.Debug("updating existing character",
		"name", existing,
		"incoming", incoming,
		"matcher", stage,
		"index", idx)
	records[idx] = updated

	return l.SaveAll(ctx, records)
}

// decodeList parses a stored JSON array of records.
func decodeList(data []byte) ([]core.Document, error) {
	var records []core.Document
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrParse, err)
	}
	if records == nil {
		records = []core.Document{}
	}
	return records, nil
}
