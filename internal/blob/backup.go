package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/dshills/helixedit/internal/design"
	"github.com/dshills/helixedit/internal/event"
	"github.com/dshills/helixedit/internal/session"
)

const keyTime = "20060102T150405.000000000Z"

// Backup writes designs to a Store under <prefix>/<name>/<timestamp>.json.
type Backup struct {
	store  Store
	prefix string
	name   string
	every  int

	logger *slog.Logger
	bus    *event.Bus
	now    func() time.Time

	mu      sync.Mutex
	pending int
}

// BackupOption configures a Backup.
type BackupOption func(*Backup)

// WithPrefix sets the key prefix.
func WithPrefix(p string) BackupOption {
	return func(b *Backup) { b.prefix = p }
}

// WithEvery makes OnPush write a backup every n undo steps. Zero disables
// automatic backups.
func WithEvery(n int) BackupOption {
	return func(b *Backup) { b.every = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) BackupOption {
	return func(b *Backup) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithBus publishes a backup.written event for each backup.
func WithBus(bus *event.Bus) BackupOption {
	return func(b *Backup) { b.bus = bus }
}

// NewBackup returns a backup writer for the design called name.
func NewBackup(store Store, name string, opts ...BackupOption) *Backup {
	b := &Backup{
		store:  store,
		name:   name,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backup) dir() string {
	return path.Join(b.prefix, b.name) + "/"
}

// OnPush counts undo steps and writes a backup once enough of them have
// accumulated. A backup is only taken in a stable session state, so that
// half-finished gestures are never saved; it is deferred to a later push
// otherwise. Failures are logged.
func (b *Backup) OnPush(ctx context.Context, d design.Design, st session.State) {
	if b.every <= 0 {
		return
	}
	b.mu.Lock()
	b.pending++
	due := b.pending >= b.every && session.Stable(st)
	if due {
		b.pending = 0
	}
	b.mu.Unlock()

	if !due {
		return
	}
	if _, err := b.Write(ctx, d); err != nil {
		b.logger.Warn("backup failed", "name", b.name, "err", err)
	}
}

// Write stores d now.
func (b *Backup) Write(ctx context.Context, d design.Design) (Info, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return Info{}, err
	}
	key := b.dir() + b.now().UTC().Format(keyTime) + ".json"
	info, err := b.store.Put(ctx, key, data)
	if err != nil {
		return Info{}, err
	}
	b.logger.Info("backup written", "key", key, "size", info.Size, "driver", b.store.Driver())
	if b.bus != nil {
		_ = b.bus.Publish(ctx, event.New(event.TopicBackupWritten, event.BackupWritten{Key: key, Size: int(info.Size)}, "backup"))
	}
	return info, nil
}

// List returns the backups of the design, oldest first.
func (b *Backup) List(ctx context.Context) ([]Info, error) {
	return b.store.List(ctx, b.dir())
}

// Latest returns the newest backup.
func (b *Backup) Latest(ctx context.Context) (design.Design, Info, error) {
	infos, err := b.List(ctx)
	if err != nil {
		return design.Design{}, Info{}, err
	}
	if len(infos) == 0 {
		return design.Design{}, Info{}, fmt.Errorf("%w: no backup of %s", ErrNotFound, b.name)
	}
	last := infos[len(infos)-1]
	data, err := b.store.Get(ctx, last.Key)
	if err != nil {
		return design.Design{}, Info{}, err
	}
	var d design.Design
	if err := json.Unmarshal(data, &d); err != nil {
		return design.Design{}, Info{}, fmt.Errorf("decode %s: %w", last.Key, err)
	}
	return d, last, nil
}

// Prune deletes all but the keep newest backups and returns how many
// were deleted.
func (b *Backup) Prune(ctx context.Context, keep int) (int, error) {
	infos, err := b.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i < len(infos)-keep; i++ {
		if err := b.store.Delete(ctx, infos[i].Key); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
