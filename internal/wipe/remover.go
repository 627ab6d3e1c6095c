package wipe

import (
	"context"

	"repo-sweep/internal/fsops"

	"github.com/prometheus/client_golang/prometheus"
)

// Audit trail actions recorded per observable event
const (
	ActionDelete = "DELETE"
	ActionRetry  = "RETRY"
	ActionWarn   = "WARN"
	ActionSkip   = "SKIP"
	ActionPurge  = "PURGE"
	ActionDryRun = "DRY_RUN"
)

// Walk phases recorded with every audit event
const (
	PhaseWalk     = "walk"
	PhaseFinalize = "finalize"
)

// Recorder persists one row per observable wipe event. Implemented by the
// deletion database; a nil recorder disables the audit trail.
type Recorder interface {
	RecordEvent(action, path, kind, phase, errMsg string) error
}

// Metrics interface for wipe counters
type Metrics interface {
	EntriesDeleted() prometheus.Counter
	Retries() prometheus.Counter
	Warnings() prometheus.Counter
}

// nopMetrics is used until a real implementation is injected, so the core
// stays usable without the metrics subsystem initialized
type nopMetrics struct{}

func (nopMetrics) EntriesDeleted() prometheus.Counter { return nil }
func (nopMetrics) Retries() prometheus.Counter        { return nil }
func (nopMetrics) Warnings() prometheus.Counter       { return nil }

func inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// Remover destroys a directory tree in two phases: an observable per-leaf
// walk (best effort, logged, audited) followed by one unconditional forced
// purge that guarantees the postcondition. Both phases are deliberate; the
// walk alone never removes emptied directory shells.
type Remover struct {
	deleter fsops.Deleter
	sink    Sink
	rec     Recorder
	metrics Metrics
	dryRun  bool
}

// NewRemover creates a Remover writing progress to sink and audit events to
// rec. Nil sink means silent; nil rec disables the audit trail. In dry-run
// mode the tree is walked and logged but no delete syscall is issued and the
// finalizer is skipped.
func NewRemover(sink Sink, dryRun bool, rec Recorder) *Remover {
	if sink == nil {
		sink = NopSink
	}
	return &Remover{
		deleter: fsops.OSDeleter{},
		sink:    sink,
		rec:     rec,
		metrics: nopMetrics{},
		dryRun:  dryRun,
	}
}

// SetDeleter swaps the filesystem delete primitive (tests)
func (r *Remover) SetDeleter(d fsops.Deleter) {
	r.deleter = d
}

// SetMetrics wires wipe counters
func (r *Remover) SetMetrics(m Metrics) {
	if m != nil {
		r.metrics = m
	}
}

// Remove destroys target and everything beneath it. Calling it on an absent
// path is a successful no-op, and the call is idempotent. On success the
// target no longer exists. The only fatal failures are a *ListError on the
// top-level target (the tree shape is unknowable, the finalizer is not
// attempted) and a *PurgeError from the finalizer (the postcondition cannot
// be guaranteed).
//
// ctx is checked between top-level entries only. The underlying syscalls are
// not cancelable mid-flight, so a deadline can stop further work but cannot
// undo partial work; callers needing stronger guarantees must impose them
// externally.
func (r *Remover) Remove(ctx context.Context, target string) error {
	if !Exists(target) {
		r.sink.Info("target absent, nothing to remove", "path", target)
		return nil
	}

	entries, err := List(target)
	if err != nil {
		r.sink.Error("cannot list target", "path", target, "error", err)
		return err
	}

	r.sink.Info("starting wipe", "path", target, "entries", len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.clean(e)
	}

	if r.dryRun {
		r.sink.Info("[DRY RUN] skipping finalizer purge", "path", target)
		return nil
	}
	return r.purge(target)
}

// clean is the recursive walker: directories recurse depth-first, one branch
// at a time; everything else is a leaf handled by removeLeaf. A directory is
// not considered cleaned until every child call has settled, because the
// directory shell itself is left for the finalizer.
func (r *Remover) clean(e Entry) {
	if e.Kind != KindDir {
		r.removeLeaf(e)
		return
	}

	children, err := List(e.Path)
	if err != nil {
		// Mid-recursion listing failure: the subtree is unresolvable from
		// here, record it and let the finalizer take the whole branch
		r.warn(e, err)
		return
	}
	for _, child := range children {
		r.clean(child)
	}
}

// removeLeaf deletes one non-directory entry. Missing leaves are treated as
// already satisfied. A permission-denied unlink escalates exactly once to
// the forced primitive; any other failure is a recorded warning for the
// finalizer to close.
func (r *Remover) removeLeaf(e Entry) {
	if !Exists(e.Path) {
		r.sink.Info("leaf already gone", "path", e.Path, "kind", e.Kind.String())
		r.record(ActionSkip, e.Path, e.Kind.String(), PhaseWalk, "")
		return
	}

	if r.dryRun {
		r.sink.Info("[DRY RUN] would delete", "path", e.Path, "kind", e.Kind.String())
		r.record(ActionDryRun, e.Path, e.Kind.String(), PhaseWalk, "")
		return
	}

	r.sink.Info("deleting", "path", e.Path, "kind", e.Kind.String())
	err := r.deleter.Remove(e.Path)
	switch fsops.Classify(err) {
	case fsops.KindNone:
		r.record(ActionDelete, e.Path, e.Kind.String(), PhaseWalk, "")
		inc(r.metrics.EntriesDeleted())

	case fsops.KindNotFound:
		// Raced with something else removing it; already satisfied
		r.sink.Info("leaf vanished before unlink", "path", e.Path)
		r.record(ActionSkip, e.Path, e.Kind.String(), PhaseWalk, "")

	case fsops.KindPermission:
		r.sink.Info("permission denied, forcing removal", "path", e.Path)
		r.record(ActionRetry, e.Path, e.Kind.String(), PhaseWalk, err.Error())
		inc(r.metrics.Retries())
		if ferr := r.deleter.RemoveAll(e.Path); ferr != nil && fsops.Classify(ferr) != fsops.KindNotFound {
			r.warn(e, ferr)
			return
		}
		r.record(ActionDelete, e.Path, e.Kind.String(), PhaseWalk, "")
		inc(r.metrics.EntriesDeleted())

	default:
		r.warn(e, err)
	}
}

// warn records a non-fatal leaf failure and moves on; the walk never aborts
// because one entry could not be removed
func (r *Remover) warn(e Entry, err error) {
	r.sink.Error("could not remove entry, deferring to finalizer",
		"path", e.Path, "kind", e.Kind.String(), "error", err)
	r.record(ActionWarn, e.Path, e.Kind.String(), PhaseWalk, err.Error())
	inc(r.metrics.Warnings())
}

// purge is the finalizer: one forced recursive removal of the original
// target after the walk has fully settled. "Not found" is success. Runs
// exactly once per Remove call, never interleaved with the walk.
func (r *Remover) purge(target string) error {
	r.sink.Info("finalizing", "path", target)
	if err := r.deleter.RemoveAll(target); err != nil && fsops.Classify(err) != fsops.KindNotFound {
		r.sink.Error("finalizer failed", "path", target, "error", err)
		r.record(ActionWarn, target, KindDir.String(), PhaseFinalize, err.Error())
		return &PurgeError{Path: target, Err: err}
	}
	r.record(ActionPurge, target, KindDir.String(), PhaseFinalize, "")
	return nil
}

func (r *Remover) record(action, path, kind, phase, errMsg string) {
	if r.rec == nil {
		return
	}
	if err := r.rec.RecordEvent(action, path, kind, phase, errMsg); err != nil {
		// The audit trail is best effort; a failed write never fails the wipe
		r.sink.Error("failed to record audit event", "error", err)
	}
}
