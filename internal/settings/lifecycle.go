package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/smartseek/internal/storage"
)

// Keys of the lifecycle state kept in the local area.
const (
	LocalVersion   = "version"
	LocalInstallID = "installId"
)

// Reason is the lifecycle transition that ran.
type Reason int

// Lifecycle transitions.
const (
	ReasonNone Reason = iota
	ReasonInstall
	ReasonUpdate
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInstall:
		return "install"
	case ReasonUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Result reports what a lifecycle run did.
type Result struct {
	Reason          Reason
	PreviousVersion string
	Version         string
	InstallID       string
	// Migrated lists fields moved off a legacy default.
	Migrated []string
	// Settings is the sync record after the run.
	Settings storage.Record
}

// Logger is the logging surface the lifecycle needs.
type Logger interface {
	Info(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}

// Lifecycle runs install and update reconciliation against a store.
type Lifecycle struct {
	store      storage.Store
	version    string
	reconciler *Reconciler
	logger     Logger
	newID      func() string
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithReconciler replaces the default reconciler.
func WithReconciler(r *Reconciler) LifecycleOption {
	return func(l *Lifecycle) { l.reconciler = r }
}

// WithLogger sets the lifecycle logger.
func WithLogger(logger Logger) LifecycleOption {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIDGenerator sets the install ID generator.
func WithIDGenerator(fn func() string) LifecycleOption {
	return func(l *Lifecycle) { l.newID = fn }
}

// NewLifecycle creates a Lifecycle for the given release version.
func NewLifecycle(store storage.Store, version string, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		store:      store,
		version:    version,
		reconciler: NewReconciler(),
		logger:     nopLogger{},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Detect decides which transition Run would perform. Without recorded
// lifecycle state an empty sync area means install and a populated one means
// update from a release that predates the state. A recorded version that
// differs from the running one means update.
func (l *Lifecycle) Detect(ctx context.Context) (Reason, error) {
	local, err := l.store.Get(ctx, storage.AreaLocal, nil)
	if err != nil {
		return ReasonNone, fmt.Errorf("reading lifecycle state: %w", err)
	}

	prev, _ := local[LocalVersion].(string)
	if prev == "" {
		synced, err := l.store.Get(ctx, storage.AreaSync, nil)
		if err != nil {
			return ReasonNone, fmt.Errorf("reading settings: %w", err)
		}
		if len(synced) == 0 {
			return ReasonInstall, nil
		}
		return ReasonUpdate, nil
	}
	if prev != l.version {
		return ReasonUpdate, nil
	}
	return ReasonNone, nil
}

// Run detects and performs the pending transition, if any.
func (l *Lifecycle) Run(ctx context.Context) (Result, error) {
	reason, err := l.Detect(ctx)
	if err != nil {
		return Result{}, err
	}

	switch reason {
	case ReasonInstall:
		return l.Install(ctx)
	case ReasonUpdate:
		return l.Update(ctx)
	}

	local, err := l.store.Get(ctx, storage.AreaLocal, nil)
	if err != nil {
		return Result{}, fmt.Errorf("reading lifecycle state: %w", err)
	}
	synced, err := l.store.Get(ctx, storage.AreaSync, nil)
	if err != nil {
		return Result{}, fmt.Errorf("reading settings: %w", err)
	}
	id, _ := local[LocalInstallID].(string)
	return Result{
		Reason:          ReasonNone,
		PreviousVersion: l.version,
		Version:         l.version,
		InstallID:       id,
		Settings:        synced,
	}, nil
}

// Install writes the defaults verbatim and records fresh lifecycle state.
func (l *Lifecycle) Install(ctx context.Context) (Result, error) {
	record := l.reconciler.Install()
	if err := l.store.Set(ctx, storage.AreaSync, record); err != nil {
		return Result{}, fmt.Errorf("writing defaults: %w", err)
	}

	id := l.newID()
	state := storage.Record{LocalVersion: l.version, LocalInstallID: id}
	if err := l.store.Set(ctx, storage.AreaLocal, state); err != nil {
		return Result{}, fmt.Errorf("writing lifecycle state: %w", err)
	}

	l.logger.Info("installed", "version", l.version, "install_id", id)
	return Result{
		Reason:    ReasonInstall,
		Version:   l.version,
		InstallID: id,
		Settings:  record,
	}, nil
}

// Update reconciles the stored settings and records the running version.
func (l *Lifecycle) Update(ctx context.Context) (Result, error) {
	stored, err := l.store.Get(ctx, storage.AreaSync, nil)
	if err != nil {
		return Result{}, fmt.Errorf("reading settings: %w", err)
	}

	migrated := l.reconciler.Migrated(stored)
	record := l.reconciler.Update(stored)
	if err := l.store.Set(ctx, storage.AreaSync, record); err != nil {
		return Result{}, fmt.Errorf("writing settings: %w", err)
	}

	local, err := l.store.Get(ctx, storage.AreaLocal, nil)
	if err != nil {
		return Result{}, fmt.Errorf("reading lifecycle state: %w", err)
	}
	prev, _ := local[LocalVersion].(string)
	id, _ := local[LocalInstallID].(string)
	if id == "" {
		id = l.newID()
	}
	state := storage.Record{LocalVersion: l.version, LocalInstallID: id}
	if err := l.store.Set(ctx, storage.AreaLocal, state); err != nil {
		return Result{}, fmt.Errorf("writing lifecycle state: %w", err)
	}

	keyvals := []any{"from", prev, "to", l.version, "migrated", migrated}
	if direction := versionDirection(prev, l.version); direction != "" {
		keyvals = append(keyvals, "direction", direction)
	}
	l.logger.Info("updated", keyvals...)

	return Result{
		Reason:          ReasonUpdate,
		PreviousVersion: prev,
		Version:         l.version,
		InstallID:       id,
		Migrated:        migrated,
		Settings:        record,
	}, nil
}

func versionDirection(from, to string) string {
	a, err := ParseVersion(from)
	if err != nil {
		return ""
	}
	b, err := ParseVersion(to)
	if err != nil {
		return ""
	}
	switch a.Compare(b) {
	case -1:
		return "upgrade"
	case 1:
		return "downgrade"
	}
	return ""
}
