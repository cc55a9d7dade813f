package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
)

// FetchNameSets retrieves every name set row.
func (c *Client) FetchNameSets(ctx context.Context) ([]domain.NameSet, error) {
	query := url.Values{}
	query.Set("select", "id,slug,title,is_free,language,style,description")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("name_sets", query), "", nil)
	if err != nil {
		return nil, err
	}

	var sets []domain.NameSet
	if err := c.doJSON(req, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// FetchNames retrieves all name rows belonging to the given sets.
func (c *Client) FetchNames(ctx context.Context, setIDs []uuid.UUID) ([]domain.ServerName, error) {
	if len(setIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(setIDs))
	for i, id := range setIDs {
		ids[i] = id.String()
	}

	query := url.Values{}
	query.Set("select", "id,name,gender,set_id")
	query.Set("set_id", "in.("+strings.Join(ids, ",")+")")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("names", query), "", nil)
	if err != nil {
		return nil, err
	}

	var names []domain.ServerName
	if err := c.doJSON(req, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// FetchNextNames asks the server for swipe candidates, excluding names the
// household member has already decided on remotely. Fallback path for when
// the local index is exhausted.
func (c *Client) FetchNextNames(ctx context.Context, token string, householdID uuid.UUID, setIDs []uuid.UUID, gender, startsWith string, maxLength, limit int, excludeIDs []uuid.UUID) ([]domain.Card, error) {
	setStrs := make([]string, len(setIDs))
	for i, id := range setIDs {
		setStrs[i] = id.String()
	}
	excludeStrs := make([]string, len(excludeIDs))
	for i, id := range excludeIDs {
		excludeStrs[i] = id.String()
	}

	body := map[string]any{
		"p_household_id":    householdID.String(),
		"p_enabled_set_ids": setStrs,
		"p_gender":          gender,
		"p_starts_with":     startsWith,
		"p_max_length":      maxLength,
		"p_limit":           limit,
		"p_exclude_ids":     excludeStrs,
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.restURL("rpc/get_next_names", nil), token, body)
	if err != nil {
		return nil, err
	}

	var cards []domain.Card
	if err := c.doJSON(req, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// LookupNameID resolves a display name to its server row ID with a
// case-insensitive match. Returns found=false when the server has no such
// name; offline-only names legitimately hit this.
func (c *Client) LookupNameID(ctx context.Context, token, name string) (uuid.UUID, bool, error) {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("name", "ilike."+name)
	query.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("names", query), token, nil)
	if err != nil {
		return uuid.Nil, false, err
	}

	var rows []struct {
		ID uuid.UUID `json:"id"`
	}
	if err := c.doJSON(req, &rows); err != nil {
		return uuid.Nil, false, err
	}
	if len(rows) == 0 {
		return uuid.Nil, false, nil
	}
	return rows[0].ID, true, nil
}
