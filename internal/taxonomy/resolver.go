package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Stage identifies which mapping in the chain a prompt is filling in.
type Stage int

const (
	StagePreferred Stage = iota
	StageGroup
	StageCode
	StageCategory
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StagePreferred:
		return "preferred tags"
	case StageGroup:
		return "group tag"
	case StageCode:
		return "code"
	case StageCategory:
		return "media category"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ErrDeclined signals that the operator aborted a backfill prompt. Callers
// treat this as "stop the pipeline", not a failure.
var ErrDeclined = errors.New("taxonomy prompt declined")

// Resolution is an operator's answer to a backfill prompt. Save false means
// use the value for this run without persisting it.
type Resolution struct {
	Value string
	Save  bool
}

// Prompter supplies missing taxonomy links. key is the canonical lookup key
// being resolved and options are known values worth reusing (existing
// categories, the raw tags themselves for the preferred stage).
type Prompter interface {
	Pick(ctx context.Context, stage Stage, key string, options []string) (Resolution, error)
}

// Tags is a fully resolved fandom classification.
type Tags struct {
	Preferred []string
	Group     string
	Code      string
	Category  string
}

// Resolver walks raw fandom tags through the four-step mapping chain,
// prompting for any link the database doesn't have yet.
type Resolver struct {
	store    *Store
	prompter Prompter
	logger   *slog.Logger
}

// NewResolver creates a resolver backed by store. prompter may be nil, in
// which case unresolved lookups fail instead of prompting.
func NewResolver(store *Store, prompter Prompter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, prompter: prompter, logger: logger}
}

// Resolve maps a raw tag set to its preferred tags, group tag, short code,
// and media category. Answers are persisted only when the prompter confirms
// saving.
func (r *Resolver) Resolve(ctx context.Context, raw []string) (Tags, error) {
	if len(raw) == 0 {
		return Tags{}, errors.New("no fandom tags to resolve")
	}

	rawKey := CanonicalKey(raw)
	r.logger.Debug("resolving fandom tags", "raw", rawKey)

	preferredKey, err := r.step(ctx, StagePreferred, rawKey, SplitKey(rawKey),
		r.store.PreferredFor, r.store.SavePreferred)
	if err != nil {
		return Tags{}, err
	}
	// Answers arrive in operator order; canonicalize before the next lookup.
	preferredKey = CanonicalKey(SplitKey(preferredKey))

	groupTag, err := r.step(ctx, StageGroup, preferredKey, SplitKey(preferredKey),
		r.store.GroupFor, r.store.SaveGroup)
	if err != nil {
		return Tags{}, err
	}

	code, err := r.step(ctx, StageCode, groupTag, nil,
		r.store.CodeFor, r.store.SaveCode)
	if err != nil {
		return Tags{}, err
	}

	categories, err := r.store.Categories(ctx)
	if err != nil {
		return Tags{}, err
	}
	category, err := r.step(ctx, StageCategory, code, categories,
		r.store.CategoryFor, r.store.SaveCategory)
	if err != nil {
		return Tags{}, err
	}

	return Tags{
		Preferred: SplitKey(preferredKey),
		Group:     groupTag,
		Code:      code,
		Category:  category,
	}, nil
}

func (r *Resolver) step(
	ctx context.Context,
	stage Stage,
	key string,
	options []string,
	lookup func(context.Context, string) (string, bool, error),
	save func(context.Context, string, string) error,
) (string, error) {
	value, found, err := lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if found {
		return value, nil
	}

	if r.prompter == nil {
		return "", fmt.Errorf("no %s mapping for %q and no prompter available", stage, key)
	}

	resolution, err := r.prompter.Pick(ctx, stage, key, options)
	if err != nil {
		return "", fmt.Errorf("resolve %s for %q: %w", stage, key, err)
	}
	if resolution.Value == "" {
		return "", fmt.Errorf("resolve %s for %q: %w", stage, key, ErrDeclined)
	}

	if resolution.Save {
		if err := save(ctx, key, resolution.Value); err != nil {
			return "", err
		}
		r.logger.Info("saved taxonomy mapping", "stage", stage.String(), "key", key, "value", resolution.Value)
	}
	return resolution.Value, nil
}
