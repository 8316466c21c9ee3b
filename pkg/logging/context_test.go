package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/goseed/pkg/logging"
)

func TestFromContext(t *testing.T) {
	t.Run("empty context returns default", func(t *testing.T) {
		assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("nil logger stores default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Same(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("fallback is used when the context has no logger", func(t *testing.T) {
		fallback := logging.NewNopLogger()
		assert.Same(t, fallback, logging.FromContextOr(context.Background(), fallback))

		stored := logging.NewNopLogger()
		ctx := logging.WithLogger(context.Background(), stored)
		assert.Same(t, stored, logging.FromContextOr(ctx, fallback))
	})
}

func TestScope(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx, log := logging.Scope(context.Background(), tl.Logger,
		logging.Organization(7),
		logging.Resource("cycle"),
		logging.Operation("get_or_create_cycle"),
		logging.Field{Key: "ids", Value: []int{3, 4}},
		logging.Field{Key: "cause", Value: errors.New("boom")},
	)
	log.Info().Msg("direct")
	logging.FromContext(ctx).Info().Msg("from context")

	assert.Len(t, tl.Entries(), 2)
	for _, e := range tl.Entries() {
		assert.EqualValues(t, 7, e["organization_id"])
		assert.Equal(t, "cycle", e["resource"])
		assert.Equal(t, "get_or_create_cycle", e["operation"])
		assert.Equal(t, []any{3.0, 4.0}, e["ids"])
		assert.Equal(t, "boom", e["cause"])
	}
}

func TestScopeWithoutBase(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	_, log := logging.Scope(ctx, nil, logging.Operation("delete_cycle"))
	log.Debug().Msg("scoped")

	tl.AssertContains(t, `"operation":"delete_cycle"`)
}
