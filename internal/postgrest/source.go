package postgrest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/votabienperu/comparador/internal/domain"
	"github.com/votabienperu/comparador/internal/search"
)

// Embeds used by every read. Aliases match the domain json tags.
const (
	legislatorSelect = "*,person:persons(*),party:parties(*),district:districts(*)"
	candidateSelect  = "*,person:persons(*),party:parties(*),district:districts(*),process:electoral_processes(*)"
	membershipSelect = "*,group:parliamentary_groups(*)"

	// search variants inner-join the person so the name filter drops rows
	legislatorSearchSelect = "*,person:persons!inner(*),party:parties(*),district:districts(*)"
	candidateSearchSelect  = "*,person:persons!inner(*),party:parties(*),district:districts(*),process:electoral_processes(*)"
)

func (c *Client) LegislatorsByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Legislator, error) {
	out := []domain.Legislator{}
	if len(ids) == 0 {
		return out, nil
	}
	p := url.Values{}
	p.Set("select", legislatorSelect)
	p.Set("id", inList(ids))
	if f.Chamber != "" {
		p.Set("chamber", "eq."+string(f.Chamber))
	}
	if f.DistrictID != "" {
		p.Set("district_id", "eq."+f.DistrictID)
	}
	if f.PartyID != "" {
		p.Set("party_id", "eq."+f.PartyID)
	}
	if err := c.get(ctx, "legislators", p, &out); err != nil {
		return nil, err
	}
	if err := c.attachCurrentGroups(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CandidatesByIDs(ctx context.Context, ids []string, f domain.Filters) ([]domain.Candidate, error) {
	out := []domain.Candidate{}
	if len(ids) == 0 {
		return out, nil
	}
	p := url.Values{}
	p.Set("select", candidateSelect)
	p.Set("id", inList(ids))
	if f.CandidacyType != "" {
		p.Set("type", "eq."+string(f.CandidacyType))
	}
	if f.DistrictID != "" {
		p.Set("district_id", "eq."+f.DistrictID)
	}
	if f.PartyID != "" {
		p.Set("party_id", "eq."+f.PartyID)
	}
	if f.ProcessID != "" {
		p.Set("process_id", "eq."+f.ProcessID)
	}
	if err := c.get(ctx, "candidates", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LegislatorMetrics(ctx context.Context, ids []string) ([]domain.LegislatorMetrics, error) {
	out := []domain.LegislatorMetrics{}
	if len(ids) == 0 {
		return out, nil
	}
	p := url.Values{}
	p.Set("legislator_id", inList(ids))
	if err := c.get(ctx, "legislator_metrics", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CandidateMetrics(ctx context.Context, ids []string) ([]domain.CandidateMetrics, error) {
	out := []domain.CandidateMetrics{}
	if len(ids) == 0 {
		return out, nil
	}
	p := url.Values{}
	p.Set("candidate_id", inList(ids))
	if err := c.get(ctx, "candidate_metrics", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchLegislators(ctx context.Context, query string, limit int) ([]domain.Legislator, error) {
	out := []domain.Legislator{}
	p := url.Values{}
	p.Set("select", legislatorSearchSelect)
	p.Set("person.search_name", ilikeContains(search.Fold(query)))
	p.Set("order", "active.desc,id.asc")
	if limit > 0 {
		p.Set("limit", strconv.Itoa(limit))
	}
	if err := c.get(ctx, "legislators", p, &out); err != nil {
		return nil, err
	}
	if err := c.attachCurrentGroups(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchCandidates(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	out := []domain.Candidate{}
	p := url.Values{}
	p.Set("select", candidateSearchSelect)
	p.Set("person.search_name", ilikeContains(search.Fold(query)))
	p.Set("order", "elected.desc,id.asc")
	if limit > 0 {
		p.Set("limit", strconv.Itoa(limit))
	}
	if err := c.get(ctx, "candidates", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping issues a one-row read to confirm the API answers.
func (c *Client) Ping(ctx context.Context) error {
	p := url.Values{}
	p.Set("select", "id")
	p.Set("limit", "1")
	var rows []struct {
		ID string `json:"id"`
	}
	return c.get(ctx, "persons", p, &rows)
}

// attachCurrentGroups loads open memberships for ls in one request; the most
// recent start wins when several are open.
func (c *Client) attachCurrentGroups(ctx context.Context, ls []domain.Legislator) error {
	if len(ls) == 0 {
		return nil
	}
	ids := make([]string, len(ls))
	for i := range ls {
		ids[i] = ls[i].ID
	}
	p := url.Values{}
	p.Set("select", membershipSelect)
	p.Set("legislator_id", inList(ids))
	p.Set("end_date", "is.null")
	p.Set("order", "start_date.desc")

	var ms []domain.GroupMembership
	if err := c.get(ctx, "legislator_groups", p, &ms); err != nil {
		return err
	}
	current := make(map[string]*domain.ParliamentaryGroup, len(ms))
	for i := range ms {
		if _, seen := current[ms[i].LegislatorID]; !seen {
			g := ms[i].Group
			current[ms[i].LegislatorID] = &g
		}
	}
	for i := range ls {
		ls[i].CurrentGroup = current[ls[i].ID]
	}
	return nil
}
