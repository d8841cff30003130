package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dealscope/internal/catalog"
	"dealscope/internal/database"
	"dealscope/internal/database/repository"
)

func newTestService(t *testing.T) (*SuggestionService, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := &SuggestionService{
		DB:          db,
		Deals:       repository.NewDealRepo(db),
		Suggestions: repository.NewSuggestionRepo(db),
	}
	return svc, db
}

func millionsVal(v float64) *int64 {
	n := int64(v * 1_000_000)
	return &n
}

func TestSubmitAndApproveNewDeal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	proposed := catalog.Deal{
		Receiver: "OpenAI", Aggregator: "Vox Media", Year: 2024, Type: "News",
		ValueRaw: "Undisclosed", Codes: []string{"TR", "DS"},
	}
	id, err := svc.Submit(ctx, proposed, nil)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	queue, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, "Vox Media", queue[0].Proposed.Aggregator)
	require.Nil(t, queue[0].Suggestion.DealID)

	require.NoError(t, svc.Approve(ctx, id))

	deals, err := svc.Deals.List(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	require.Equal(t, "Vox Media", deals[0].Aggregator)
	require.Equal(t, []string{"DS", "TR"}, deals[0].Codes)

	// Approving twice fails: the suggestion is no longer pending.
	require.Error(t, svc.Approve(ctx, id))
	queue, err = svc.Pending(ctx)
	require.NoError(t, err)
	require.Empty(t, queue)
}

func TestSubmitEditAndApprove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	dealID, err := svc.Deals.Insert(ctx, catalog.Deal{
		Receiver: "Google", Aggregator: "Reddit", Year: 2024, Type: "UGC", ValueRaw: "Undisclosed",
	})
	require.NoError(t, err)

	edit := catalog.Deal{
		Receiver: "Google", Aggregator: "Reddit", Year: 2024, Type: "UGC",
		ValueRaw: "$60m per year", ValueMin: millionsVal(60), ValueMax: millionsVal(60),
		Codes: []string{"TR", "API"},
	}
	id, err := svc.Submit(ctx, edit, &dealID)
	require.NoError(t, err)

	require.NoError(t, svc.Approve(ctx, id))

	got, err := svc.Deals.Get(ctx, dealID)
	require.NoError(t, err)
	require.Equal(t, "$60m per year", got.ValueRaw)
	require.Equal(t, int64(60_000_000), *got.ValueMin)
}

func TestSubmitRejectsMissingTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	missing := int64(999)
	_, err := svc.Submit(ctx, catalog.Deal{Receiver: "A", Aggregator: "B", Year: 2024, Type: "News", ValueRaw: "Undisclosed"}, &missing)
	require.Error(t, err)

	_, err = svc.Submit(ctx, catalog.Deal{Receiver: "", Aggregator: "B"}, nil)
	require.Error(t, err)
}

func TestRejectLeavesDealsUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	id, err := svc.Submit(ctx, catalog.Deal{Receiver: "Anthropic", Aggregator: "AP", Year: 2025, Type: "News", ValueRaw: "Undisclosed"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, id))

	deals, err := svc.Deals.List(ctx)
	require.NoError(t, err)
	require.Empty(t, deals)

	queue, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Empty(t, queue)
}

func TestPendingFlagsNearDuplicateOrgs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Deals.Insert(ctx, catalog.Deal{Receiver: "OpenAI", Aggregator: "Shutterstock", Year: 2023, Type: "Images", ValueRaw: "Undisclosed"})
	require.NoError(t, err)

	// "OpenAl" is one edit away from the known "OpenAI".
	_, err = svc.Submit(ctx, catalog.Deal{Receiver: "OpenAl", Aggregator: "Shutterstock", Year: 2024, Type: "Images", ValueRaw: "Undisclosed"}, nil)
	require.NoError(t, err)

	queue, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.NotEmpty(t, queue[0].OrgHints)
	require.Equal(t, "OpenAl", queue[0].OrgHints[0].Proposed)
	require.Equal(t, "OpenAI", queue[0].OrgHints[0].Existing)
	require.Equal(t, 1, queue[0].OrgHints[0].Distance)
}

func TestOrgHintsSkipExactMatches(t *testing.T) {
	hints := orgHints("OpenAI", []string{"OpenAI", "OpenAl"})
	require.Empty(t, hints, "a known name is not a duplicate of itself")

	hints = orgHints("Condé Nast", []string{"OpenAI", "Reddit"})
	require.Empty(t, hints, "unrelated names produce no hints")
}
