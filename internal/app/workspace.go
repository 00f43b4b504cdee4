package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/tacogips/tmplstore/internal/config"
	"github.com/tacogips/tmplstore/internal/debug"
	"github.com/tacogips/tmplstore/internal/template/normalize"
	"github.com/tacogips/tmplstore/internal/template/source"
	"github.com/tacogips/tmplstore/internal/template/store"
)

const lockRetryDelay = 50 * time.Millisecond

// Options configures OpenWorkspace.
type Options struct {
	// Config supplies the state file, lock and source settings.
	// Nil uses config.DefaultConfig().
	Config *config.Config
	// StateFile overrides Config.State.File when non-empty.
	StateFile string
	// Normalizer decodes template payloads. Nil uses normalize.New().
	Normalizer normalize.Normalizer
	// Source fetches every location when non-nil instead of choosing a
	// source per location.
	Source source.Source
}

// Workspace is a locked, loaded state file together with the store that
// evolves it. Close must be called to release the lock.
type Workspace struct {
	path       string
	lock       *flock.Flock
	reducer    *store.Reducer
	store      *store.Store
	normalizer normalize.Normalizer
	source     source.Source
	sourceCfg  source.Config
	dirty      bool
}

// OpenWorkspace locks and loads the state file. A missing file starts from
// the default state.
func OpenWorkspace(ctx context.Context, opts Options) (*Workspace, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	path := opts.StateFile
	if path == "" {
		path = cfg.State.File
	}
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, NewStateLoadError("failed to resolve state file path", err)
	}
	if path == "" {
		return nil, NewValidationError("state file path cannot be empty", nil)
	}

	debug.DebugSection("[app] OpenWorkspace")
	debug.DebugValue("[app] State file", path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, NewStateLoadError("failed to create state directory", err)
	}

	lock, err := acquireLock(ctx, path+".lock", time.Duration(cfg.State.LockTimeout)*time.Second)
	if err != nil {
		return nil, err
	}

	var reducerOpts []store.Option
	if cfg.Install.HonorShouldInstall {
		reducerOpts = append(reducerOpts, store.WithExplicitShouldInstall())
	}

	ws := &Workspace{
		path:       path,
		lock:       lock,
		reducer:    store.NewReducer(reducerOpts...),
		normalizer: opts.Normalizer,
		source:     opts.Source,
		sourceCfg: source.Config{
			BaseDir:   cfg.Source.BaseDir,
			Timeout:   time.Duration(cfg.Source.Timeout) * time.Second,
			Token:     cfg.Source.Token,
			UserAgent: cfg.Source.UserAgent,

			GitHubRawURL: cfg.Source.GitHubRawURL,
		},
	}
	if ws.normalizer == nil {
		ws.normalizer = normalize.New()
	}

	initial, err := loadState(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	ws.attach(initial)

	debug.DebugValue("[app] Loaded templates", ws.store.State().Len())
	return ws, nil
}

func acquireLock(ctx context.Context, path string, timeout time.Duration) (*flock.Flock, error) {
	lock := flock.New(path)

	var (
		locked bool
		err    error
	)
	if timeout <= 0 {
		locked, err = lock.TryLock()
	} else {
		lockCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		locked, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, NewStateLoadError("failed to lock state file", err)
	}
	if !locked {
		return nil, NewAppError(StateLocked,
			fmt.Sprintf("state file is locked by another process: %s", path), err)
	}
	debug.DebugValue("[app] Acquired lock", path)
	return lock, nil
}

// loadState returns nil for a missing file.
func loadState(path string) (*store.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Debug("[app] State file does not exist, starting from defaults")
			return nil, nil
		}
		return nil, NewStateLoadError("failed to read state file", err)
	}

	var st store.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, NewStateLoadError(fmt.Sprintf("invalid state file %s", path), err)
	}
	st = st.WithDefaults()
	if err := st.Validate(); err != nil {
		return nil, NewStateLoadError(fmt.Sprintf("inconsistent state file %s", path), err)
	}
	return &st, nil
}

func (w *Workspace) attach(initial *store.State) {
	w.store = store.NewStore(w.reducer, initial)
	w.store.Subscribe(func(store.State) {
		w.dirty = true
	})
}

// Path returns the state file path.
func (w *Workspace) Path() string {
	return w.path
}

// State returns the current snapshot.
func (w *Workspace) State() store.State {
	return w.store.State()
}

// Dirty reports whether the state changed since it was loaded or saved.
func (w *Workspace) Dirty() bool {
	return w.dirty
}

// Dispatch applies action to the workspace store.
func (w *Workspace) Dispatch(action store.Action) store.State {
	return w.store.Dispatch(action)
}

// Reset discards all state and starts from the defaults.
func (w *Workspace) Reset() store.State {
	debug.Debug("[app] Resetting state")
	w.attach(nil)
	w.dirty = true
	return w.store.State()
}

// Save writes the state file atomically.
func (w *Workspace) Save() error {
	data, err := json.MarshalIndent(w.store.State(), "", "  ")
	if err != nil {
		return NewStateSaveError("failed to encode state", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".state-*.json")
	if err != nil {
		return NewStateSaveError("failed to create temporary state file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return NewStateSaveError("failed to write state file", err)
	}
	if err := tmp.Close(); err != nil {
		return NewStateSaveError("failed to write state file", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return NewStateSaveError("failed to replace state file", err)
	}

	w.dirty = false
	debug.DebugValue("[app] Saved state", w.path)
	return nil
}

// Close releases the state lock. Unsaved changes are discarded.
func (w *Workspace) Close() error {
	if w.lock == nil {
		return nil
	}
	err := w.lock.Unlock()
	w.lock = nil
	if err != nil {
		return fmt.Errorf("failed to unlock state file: %w", err)
	}
	return nil
}

func (w *Workspace) fetch(ctx context.Context, location string) ([]byte, error) {
	src := w.source
	if src == nil {
		var err error
		src, err = source.New(location, w.sourceCfg)
		if err != nil {
			return nil, NewValidationError("invalid location", err)
		}
	}

	debug.DebugValue("[app] Fetching", location)
	data, err := src.Fetch(ctx, location)
	if err != nil {
		return nil, NewFetchError(fmt.Sprintf("failed to fetch %s", location), err)
	}
	return data, nil
}
