package components

import (
	"context"
	"encoding/json"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/alexisbeaulieu97/dagflow/internal/component"
	"github.com/alexisbeaulieu97/dagflow/internal/dagvalue"
)

// gitRevisionConfig configures a GitRevision component.
type gitRevisionConfig struct {
	Repository string `json:"repository"`
	Reference  string `json:"reference"`
}

// gitRevision resolves a branch or tag name in a local git repository to
// its current commit hash. A Text input overrides the configured
// reference for that execution; Null input uses the configured default
// (falling back to the repository's current HEAD when no reference is
// configured at all).
type gitRevision struct {
	repository string
	reference  string
}

// NewGitRevision requires the repository path at configuration time; the
// path is only opened lazily at execute time so the DAG can be built
// against a repository that is cloned later in the pipeline.
func NewGitRevision(raw json.RawMessage) (component.Component, error) {
	var cfg gitRevisionConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("git revision: %w", err)
	}
	if cfg.Repository == "" {
		return nil, fmt.Errorf("git revision: repository is required")
	}
	return gitRevision{repository: cfg.Repository, reference: cfg.Reference}, nil
}

func (g gitRevision) Execute(_ context.Context, input dagvalue.Value) (dagvalue.Value, error) {
	ref := g.reference
	if text, ok := input.AsText(); ok {
		ref = text
	}

	repo, err := git.PlainOpen(g.repository)
	if err != nil {
		return dagvalue.Value{}, fmt.Errorf("git revision: open %s: %w", g.repository, err)
	}

	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return dagvalue.Value{}, fmt.Errorf("git revision: resolve HEAD: %w", err)
		}
		return dagvalue.NewText(head.Hash().String()), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return dagvalue.Value{}, fmt.Errorf("git revision: resolve %q: %w", ref, err)
	}
	return dagvalue.NewText(hash.String()), nil
}

func (g gitRevision) InputType() dagvalue.Type  { return dagvalue.UnionOf(dagvalue.Null, dagvalue.Text) }
func (g gitRevision) OutputType() dagvalue.Type { return dagvalue.Text }
