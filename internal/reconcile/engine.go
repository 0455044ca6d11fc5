package reconcile

import (
	"context"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure is the desired existence state of a resource.
type Ensure string

const (
	EnsurePresent Ensure = "Present"
	EnsureAbsent  Ensure = "Absent"
)

// Action reports what converging a resource actually did.
type Action string

const (
	ActionNone    Action = "none"
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Adapter executes retrieve/create/update/delete operations against the
// admin gateway for one resource kind. GetCurrent reports found=false for
// a definitive "not found"; any other failure is returned as an error and
// propagated to the caller unmodified — the engine performs no retries.
type Adapter[K comparable, T any] interface {
	GetCurrent(ctx context.Context, key K) (current T, found bool, err error)
	Create(ctx context.Context, desired T) error
	Update(ctx context.Context, key K, desired T) error
	Delete(ctx context.Context, key K) error
}

// State is the outcome of reading a resource's current state.
type State[T any] struct {
	Exists  bool
	Current T
}

// TestResult is the outcome of a compliance check.
type TestResult struct {
	Exists     bool
	Mismatches []string
}

// Compliant reports whether the result satisfies the given ensure state.
func (r TestResult) Compliant(ensure Ensure) bool {
	if ensure == EnsureAbsent {
		return !r.Exists
	}
	return r.Exists && len(r.Mismatches) == 0
}

// Engine orchestrates Get, Test and Set for one resource kind. It holds
// no state between calls; current state is always re-fetched.
type Engine[K comparable, T any] struct {
	Descriptor *Descriptor[T]
	Adapter    Adapter[K, T]
}

// NewEngine builds an engine for one resource kind.
func NewEngine[K comparable, T any](d *Descriptor[T], a Adapter[K, T]) *Engine[K, T] {
	return &Engine[K, T]{Descriptor: d, Adapter: a}
}

// Get reads the current state of the resource identified by key. A
// definitive "not found" is not an error; it yields Exists=false.
func (e *Engine[K, T]) Get(ctx context.Context, key K) (State[T], error) {
	current, found, err := e.Adapter.GetCurrent(ctx, key)
	if err != nil {
		return State[T]{}, err
	}
	return State[T]{Exists: found, Current: current}, nil
}

// Test fetches current state and compares it against the desired state.
// A lookup failure other than "not found" is a hard error, never reported
// as non-compliance.
func (e *Engine[K, T]) Test(ctx context.Context, key K, desired T) (TestResult, error) {
	current, found, err := e.Adapter.GetCurrent(ctx, key)
	if err != nil {
		return TestResult{}, err
	}
	if !found {
		return TestResult{Exists: false}, nil
	}
	return TestResult{
		Exists:     true,
		Mismatches: e.Descriptor.Compare(desired, current),
	}, nil
}

// Set converges the resource toward the desired state and reports the
// action taken. Updates are short-circuited when Test finds the resource
// already compliant, so kinds implemented as whole-collection rewrites
// (SAML endpoints) see no redundant writes. Set is idempotent: a second
// call with identical desired state performs no adapter mutation.
func (e *Engine[K, T]) Set(ctx context.Context, key K, desired T, ensure Ensure) (Action, error) {
	result, err := e.Test(ctx, key, desired)
	if err != nil {
		return ActionNone, err
	}

	if ensure == EnsureAbsent {
		if !result.Exists {
			return ActionNone, nil
		}
		tflog.Debug(ctx, "Removing resource", map[string]interface{}{
			"kind": e.Descriptor.Kind,
		})
		if err := e.Adapter.Delete(ctx, key); err != nil {
			return ActionNone, err
		}
		return ActionDeleted, nil
	}

	if !result.Exists {
		tflog.Debug(ctx, "Creating resource", map[string]interface{}{
			"kind": e.Descriptor.Kind,
		})
		if err := e.Adapter.Create(ctx, desired); err != nil {
			return ActionNone, err
		}
		return ActionCreated, nil
	}

	if len(result.Mismatches) == 0 {
		return ActionNone, nil
	}

	tflog.Debug(ctx, "Updating resource", map[string]interface{}{
		"kind":       e.Descriptor.Kind,
		"mismatches": result.Mismatches,
	})
	if err := e.Adapter.Update(ctx, key, desired); err != nil {
		return ActionNone, err
	}
	return ActionUpdated, nil
}
