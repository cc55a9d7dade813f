package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/kinderhq/petnames-core/internal/domain"
)

// InsertSwipe records a swipe decision on the server.
func (c *Client) InsertSwipe(ctx context.Context, token string, record domain.SwipeRecord) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.restURL("swipes", nil), token, record)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// DeleteSwipe removes a user's swipe on a name, for undo.
func (c *Client) DeleteSwipe(ctx context.Context, token string, householdID, userID, nameID uuid.UUID) error {
	query := url.Values{}
	query.Set("household_id", "eq."+householdID.String())
	query.Set("user_id", "eq."+userID.String())
	query.Set("name_id", "eq."+nameID.String())

	req, err := c.newRequest(ctx, http.MethodDelete, c.restURL("swipes", query), token, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// CountOtherLikes counts household members other than userID who liked a
// name. One or more means the user's like completed a match.
func (c *Client) CountOtherLikes(ctx context.Context, token string, householdID, nameID, userID uuid.UUID) (int, error) {
	query := url.Values{}
	query.Set("household_id", "eq."+householdID.String())
	query.Set("name_id", "eq."+nameID.String())
	query.Set("decision", "eq.like")
	query.Set("user_id", "neq."+userID.String())

	return c.doCount(ctx, "swipes", token, query)
}

// CountSwipes counts a user's swipes in a household with the given decision.
func (c *Client) CountSwipes(ctx context.Context, token string, householdID, userID uuid.UUID, decision domain.Decision) (int, error) {
	query := url.Values{}
	query.Set("household_id", "eq."+householdID.String())
	query.Set("user_id", "eq."+userID.String())
	query.Set("decision", "eq."+string(decision))

	return c.doCount(ctx, "swipes", token, query)
}

// serverLikeRow matches the embedded select used by FetchServerLikes.
type serverLikeRow struct {
	NameID uuid.UUID `json:"name_id"`
	Names  struct {
		Name     string        `json:"name"`
		Gender   domain.Gender `json:"gender"`
		NameSets struct {
			Title string `json:"title"`
		} `json:"name_sets"`
	} `json:"names"`
}

// FetchServerLikes retrieves the user's likes in a household with the name
// and set title joined in.
func (c *Client) FetchServerLikes(ctx context.Context, token string, householdID, userID uuid.UUID) ([]domain.LikedName, error) {
	query := url.Values{}
	query.Set("select", "name_id,names!inner(name,gender,name_sets!inner(title))")
	query.Set("household_id", "eq."+householdID.String())
	query.Set("user_id", "eq."+userID.String())
	query.Set("decision", "eq.like")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("swipes", query), token, nil)
	if err != nil {
		return nil, err
	}

	var rows []serverLikeRow
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}

	likes := make([]domain.LikedName, 0, len(rows))
	for _, row := range rows {
		likes = append(likes, domain.LikedName{
			NameID:   row.NameID.String(),
			Name:     row.Names.Name,
			Gender:   row.Names.Gender,
			SetTitle: row.Names.NameSets.Title,
		})
	}
	return likes, nil
}

// matchViewRow matches the household_matches view joined with names.
type matchViewRow struct {
	NameID     uuid.UUID `json:"name_id"`
	LikesCount int       `json:"likes_count"`
	Names      struct {
		Name   string        `json:"name"`
		Gender domain.Gender `json:"gender"`
	} `json:"names"`
}

// FetchMatches retrieves the household's matched names, most liked first.
func (c *Client) FetchMatches(ctx context.Context, token string, householdID uuid.UUID) ([]domain.MatchRow, error) {
	query := url.Values{}
	query.Set("select", "name_id,likes_count,names!inner(name,gender)")
	query.Set("household_id", "eq."+householdID.String())
	query.Set("order", "likes_count.desc")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("household_matches", query), token, nil)
	if err != nil {
		return nil, err
	}

	var rows []matchViewRow
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}

	matches := make([]domain.MatchRow, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, domain.MatchRow{
			NameID:     row.NameID,
			Name:       row.Names.Name,
			Gender:     row.Names.Gender,
			LikesCount: row.LikesCount,
		})
	}
	return matches, nil
}

// FetchLikers returns display labels of household members who liked a name.
func (c *Client) FetchLikers(ctx context.Context, token string, householdID, nameID uuid.UUID) ([]string, error) {
	query := url.Values{}
	query.Set("select", "user_id")
	query.Set("household_id", "eq."+householdID.String())
	query.Set("name_id", "eq."+nameID.String())
	query.Set("decision", "eq.like")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL("swipes", query), token, nil)
	if err != nil {
		return nil, err
	}

	var swipes []struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := c.doJSON(req, &swipes); err != nil {
		return nil, err
	}
	if len(swipes) == 0 {
		return nil, nil
	}

	ids := make([]string, len(swipes))
	for i, s := range swipes {
		ids[i] = s.UserID.String()
	}

	profileQuery := url.Values{}
	profileQuery.Set("select", "id,display_name")
	profileQuery.Set("id", "in.("+strings.Join(ids, ",")+")")

	profileReq, err := c.newRequest(ctx, http.MethodGet, c.restURL("profiles", profileQuery), token, nil)
	if err != nil {
		return nil, err
	}

	var profiles []domain.HouseholdMember
	if err := c.doJSON(profileReq, &profiles); err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(profiles))
	for i := range profiles {
		labels = append(labels, profiles[i].DisplayLabel())
	}
	return labels, nil
}
