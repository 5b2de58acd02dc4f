// Package summaries implements the summary-note operations on top of a
// record store gateway: create, list/filter, update with merge-on-empty,
// and delete with candidate resolution.
//
// All filter and search operations see at most one page of records (the
// most recent ~100 by default), a deliberate scale limitation of the
// original design. Operations are request-scoped with no caching; every
// resolution starts with a fresh fetch.
package summaries

import (
	"context"
	"fmt"

	"github.com/kuitang/crm-notes/internal/errs"
	"github.com/kuitang/crm-notes/internal/notebody"
	"github.com/kuitang/crm-notes/internal/obs"
)

// Service handles summary note CRUD against a Store.
type Service struct {
	store     Store
	pageLimit int
}

// NewService creates a summaries service. pageLimit caps the single-page
// fetch used by filtering and resolution.
func NewService(store Store, pageLimit int) *Service {
	return &Service{store: store, pageLimit: pageLimit}
}

// Create persists a new summary note and returns the assigned identifier.
// All three fields are required; empty would be indistinguishable from
// "unset" under the merge semantics.
func (s *Service) Create(ctx context.Context, params CreateParams) (string, error) {
	var missing []string
	if params.Title == "" {
		missing = append(missing, "title")
	}
	if params.Summary == "" {
		missing = append(missing, "summary")
	}
	if params.Author == "" {
		missing = append(missing, "author")
	}
	if len(missing) > 0 {
		return "", errs.New(errs.InvalidArgument, fmt.Sprintf("missing required fields: %v", missing))
	}

	body := notebody.Encode(notebody.Fields{
		Title:   params.Title,
		Summary: params.Summary,
		Author:  params.Author,
	})
	id, err := s.store.Create(ctx, body)
	if err != nil {
		return "", err
	}
	obs.From(ctx).Debug("summary_created", "id", id)
	return id, nil
}

// List fetches one page of records, filters them by the criteria, and
// returns the survivors newest-first with decoded fields. An absent limit
// means no cap.
func (s *Service) List(ctx context.Context, c Criteria) ([]ListItem, error) {
	filtered, err := s.fetchAndFilter(ctx, c)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(filtered))
	for _, rec := range filtered {
		items = append(items, ListItem{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Fields:    notebody.Decode(rec.Body),
		})
	}
	return items, nil
}

// Update merges the supplied fields into an existing note and persists the
// re-encoded body. The target is the explicit ID when given; otherwise the
// single most recent note whose body matches Query. Returns the identifier
// that was updated.
func (s *Service) Update(ctx context.Context, params UpdateParams) (string, error) {
	var target Record
	switch {
	case params.ID != "":
		rec, err := s.store.GetByID(ctx, params.ID)
		if err != nil {
			return "", err
		}
		target = rec
	case params.Query != "":
		rec, err := s.resolveByQuery(ctx, params.Query)
		if err != nil {
			return "", err
		}
		target = rec
	default:
		return "", errs.New(errs.InvalidArgument, "either id or a non-empty query is required to locate the note to update")
	}

	merged := notebody.Merge(notebody.Decode(target.Body), params.Fields)
	if err := s.store.UpdateBody(ctx, target.ID, notebody.Encode(merged)); err != nil {
		return "", err
	}
	obs.From(ctx).Debug("summary_updated", "id", target.ID)
	return target.ID, nil
}

// Delete removes a note and returns the identifier actually deleted. With
// an explicit ID the criteria are ignored. Otherwise the criteria resolve
// candidates with a default limit of 1; even when a larger limit resolves
// several, only the first (most recent) candidate is deleted — batch delete
// is out of scope.
func (s *Service) Delete(ctx context.Context, id string, c Criteria) (string, error) {
	if id == "" {
		if c.Limit == nil {
			one := 1
			c.Limit = &one
		}
		candidates, err := s.fetchAndFilter(ctx, c)
		if err != nil {
			return "", err
		}
		if len(candidates) == 0 {
			return "", errs.New(errs.NotFound, "no summary notes matched the given filters")
		}
		id = candidates[0].ID
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return "", err
	}
	obs.From(ctx).Debug("summary_deleted", "id", id)
	return id, nil
}

// resolveByQuery finds the single most recent note whose body matches the
// query. Date, day, and time predicates are not accepted on this path.
func (s *Service) resolveByQuery(ctx context.Context, query string) (Record, error) {
	one := 1
	matches, err := s.fetchAndFilter(ctx, Criteria{Query: query, Limit: &one})
	if err != nil {
		return Record{}, err
	}
	if len(matches) == 0 {
		return Record{}, errs.New(errs.NotFound, fmt.Sprintf("no summary note matched query %q", query))
	}
	return matches[0], nil
}

func (s *Service) fetchAndFilter(ctx context.Context, c Criteria) ([]Record, error) {
	page, err := s.store.ListPage(ctx, s.pageLimit)
	if err != nil {
		return nil, err
	}
	return Filter(page, c)
}
