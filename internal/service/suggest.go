package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"dealscope/internal/catalog"
	"dealscope/internal/database"
	"dealscope/internal/database/repository"
)

// SuggestionService runs the propose/review flow: visitors submit a deal
// (new or an edit of an existing one), a moderator approves or rejects,
// and approvals land in the deal store.
type SuggestionService struct {
	DB          *sql.DB
	Deals       *repository.DealRepo
	Suggestions *repository.SuggestionRepo
}

// PendingSuggestion is a queue entry enriched for moderator review.
type PendingSuggestion struct {
	Suggestion repository.Suggestion
	Proposed   catalog.Deal
	OrgHints   []OrgHint
}

// OrgHint flags a proposed organization name that nearly matches a known
// one. It is a review aid only; stored names are never canonicalized.
type OrgHint struct {
	Proposed string
	Existing string
	Distance int
}

// Submit records a proposed deal. A nil target means a new entry;
// otherwise the suggestion is an edit of that deal.
func (s *SuggestionService) Submit(ctx context.Context, proposed catalog.Deal, target *int64) (string, error) {
	if strings.TrimSpace(proposed.Receiver) == "" || strings.TrimSpace(proposed.Aggregator) == "" {
		return "", fmt.Errorf("both organizations are required")
	}
	if target != nil {
		existing, err := s.Deals.Get(ctx, *target)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", fmt.Errorf("deal %d not found", *target)
		}
	}
	payload, err := json.Marshal(proposed)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	sg := repository.Suggestion{
		ID:        uuid.NewString(),
		DealID:    target,
		Payload:   string(payload),
		Status:    repository.SuggestionPending,
		CreatedAt: database.Now(),
	}
	if err := s.Suggestions.Add(ctx, sg); err != nil {
		return "", err
	}
	return sg.ID, nil
}

// Pending returns the moderation queue with decoded payloads and
// near-duplicate organization hints.
func (s *SuggestionService) Pending(ctx context.Context) ([]PendingSuggestion, error) {
	queue, err := s.Suggestions.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if len(queue) == 0 {
		return nil, nil
	}
	orgs, err := s.Deals.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PendingSuggestion, 0, len(queue))
	for _, sg := range queue {
		var proposed catalog.Deal
		if err := json.Unmarshal([]byte(sg.Payload), &proposed); err != nil {
			return nil, fmt.Errorf("decode suggestion %s: %w", sg.ID, err)
		}
		ps := PendingSuggestion{Suggestion: sg, Proposed: proposed}
		ps.OrgHints = append(ps.OrgHints, orgHints(proposed.Receiver, orgs)...)
		ps.OrgHints = append(ps.OrgHints, orgHints(proposed.Aggregator, orgs)...)
		out = append(out, ps)
	}
	return out, nil
}

// Approve applies a pending suggestion to the deal store: inserts a new
// deal, or overwrites the targeted one, then stamps the suggestion. The
// deal write and the status stamp commit together or not at all, so a
// failed approval stays pending instead of half-applying.
func (s *SuggestionService) Approve(ctx context.Context, id string) error {
	sg, err := s.Suggestions.Get(ctx, id)
	if err != nil {
		return err
	}
	if sg == nil || sg.Status != repository.SuggestionPending {
		return fmt.Errorf("suggestion %s is not pending", id)
	}
	var proposed catalog.Deal
	if err := json.Unmarshal([]byte(sg.Payload), &proposed); err != nil {
		return fmt.Errorf("decode suggestion %s: %w", sg.ID, err)
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		deals := s.Deals.WithTx(tx)
		if sg.DealID == nil {
			if _, err := deals.Insert(ctx, proposed); err != nil {
				return err
			}
		} else {
			proposed.ID = *sg.DealID
			if err := deals.Update(ctx, proposed); err != nil {
				return err
			}
		}
		return s.Suggestions.WithTx(tx).Decide(ctx, id, repository.SuggestionApproved, database.Now())
	})
}

// Reject dismisses a pending suggestion without touching the deal store.
func (s *SuggestionService) Reject(ctx context.Context, id string) error {
	sg, err := s.Suggestions.Get(ctx, id)
	if err != nil {
		return err
	}
	if sg == nil || sg.Status != repository.SuggestionPending {
		return fmt.Errorf("suggestion %s is not pending", id)
	}
	return s.Suggestions.Decide(ctx, id, repository.SuggestionRejected, database.Now())
}

// orgHints flags known organizations whose names nearly match the proposed
// one. An exact match is not a hint; wildly different names aren't either.
func orgHints(proposed string, known []string) []OrgHint {
	name := strings.TrimSpace(proposed)
	if name == "" {
		return nil
	}
	var out []OrgHint
	for _, org := range known {
		if org == name {
			return nil
		}
		dist := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(org))
		longest := len(name)
		if len(org) > longest {
			longest = len(org)
		}
		if dist > 0 && float64(dist)/float64(longest) < 0.3 {
			out = append(out, OrgHint{Proposed: name, Existing: org, Distance: dist})
		}
	}
	return out
}
