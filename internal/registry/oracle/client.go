// Package oracle implements the verifier oracle client. Verifiers are
// external HTTP services; responses about member facts may be cached in
// redis under a short TTL to bound both latency and retention of sensitive
// registry data.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"custos/internal/registry/models"
	"custos/internal/registry/ports"
	id "custos/pkg/domain"
	pkgerrors "custos/pkg/errors"
)

// Client talks to one verifier oracle endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
}

var _ ports.VerifierOracle = (*Client)(nil)

// idResponse is the oracle's answer to an identity lookup. An absent or
// all-zero ID means the oracle does not know the address.
type idResponse struct {
	ID string `json:"id"`
}

type factsResponse struct {
	Permitted bool   `json:"permitted"`
	Rating    uint8  `json:"rating"`
	Country   string `json:"country"`
}

type jointResponse struct {
	A factsResponse `json:"a"`
	B factsResponse `json:"b"`
}

func (c *Client) GetID(ctx context.Context, addr id.Address) (id.MemberID, error) {
	var resp idResponse
	if err := c.get(ctx, "/id/"+url.PathEscape(addr.String()), &resp); err != nil {
		return id.NilMemberID, err
	}
	if resp.ID == "" {
		return id.NilMemberID, nil
	}
	memberID, err := id.ParseMemberID(resp.ID)
	if err != nil {
		// An oracle returning garbage is treated as not knowing the address.
		return id.NilMemberID, nil
	}
	return memberID, nil
}

func (c *Client) GetMember(ctx context.Context, addr id.Address) (*models.MemberFacts, error) {
	if facts, ok := c.cachedFacts(ctx, addr); ok {
		return facts, nil
	}
	var resp factsResponse
	if err := c.get(ctx, "/member/"+url.PathEscape(addr.String()), &resp); err != nil {
		return nil, err
	}
	facts, err := factsFromResponse(resp)
	if err != nil {
		return nil, err
	}
	c.storeFacts(ctx, addr, facts)
	return facts, nil
}

func (c *Client) GetMembers(ctx context.Context, a, b id.Address) (*models.MemberFacts, *models.MemberFacts, error) {
	var resp jointResponse
	path := fmt.Sprintf("/members?a=%s&b=%s", url.QueryEscape(a.String()), url.QueryEscape(b.String()))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, nil, err
	}
	factsA, err := factsFromResponse(resp.A)
	if err != nil {
		return nil, nil, err
	}
	factsB, err := factsFromResponse(resp.B)
	if err != nil {
		return nil, nil, err
	}
	c.storeFacts(ctx, a, factsA)
	c.storeFacts(ctx, b, factsB)
	return factsA, factsB, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "build oracle request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "oracle call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.Newf(pkgerrors.CodeInternal, "oracle %s returned status %d", c.baseURL, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "decode oracle response")
	}
	return nil
}

func factsFromResponse(resp factsResponse) (*models.MemberFacts, error) {
	rating, err := id.ParseRating(resp.Rating)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "oracle reported invalid rating")
	}
	return &models.MemberFacts{
		Permitted: resp.Permitted,
		Rating:    rating,
		Country:   id.CountryCode(resp.Country),
	}, nil
}

func (c *Client) cacheKey(addr id.Address) string {
	return "custos:oracle:" + c.baseURL + ":member:" + addr.String()
}

// cachedFacts returns cached member facts. Cache failures degrade to a
// direct oracle call; they never fail the operation.
func (c *Client) cachedFacts(ctx context.Context, addr id.Address) (*models.MemberFacts, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, c.cacheKey(addr)).Bytes()
	if err != nil {
		return nil, false
	}
	var facts models.MemberFacts
	if err := json.Unmarshal(raw, &facts); err != nil {
		return nil, false
	}
	return &facts, true
}

func (c *Client) storeFacts(ctx context.Context, addr id.Address, facts *models.MemberFacts) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(facts)
	if err != nil {
		return
	}
	// Best effort; the TTL bounds retention of verifier-reported data.
	_ = c.cache.Set(ctx, c.cacheKey(addr), raw, c.cacheTTL).Err()
}
