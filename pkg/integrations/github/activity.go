package github

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/netscore/pkg/integrations"
	"github.com/matzehuels/netscore/pkg/repo"
)

// fetchIssueCounts counts open and closed issues through the search API,
// which excludes pull requests when filtered by type.
func (c *Client) fetchIssueCounts(ctx context.Context, owner, name string) (*repo.IssueCounts, error) {
	count := func(state string) (int, error) {
		q := fmt.Sprintf("repo:%s/%s type:issue state:%s", owner, name, state)
		url := fmt.Sprintf("%s/search/issues?q=%s&per_page=1", c.baseURL, integrations.URLEncode(q))
		var data searchCountResponse
		if err := c.Get(ctx, url, &data); err != nil {
			return 0, err
		}
		return data.TotalCount, nil
	}

	open, err := count("open")
	if err != nil {
		return nil, err
	}
	closed, err := count("closed")
	if err != nil {
		return nil, err
	}
	return &repo.IssueCounts{Open: open, Closed: closed}, nil
}

// fetchIssues lists issues updated since the window start. Anything created
// or closed inside the window was updated inside it as well.
func (c *Client) fetchIssues(ctx context.Context, owner, name string, since time.Time) ([]repo.Issue, error) {
	issues := []repo.Issue{}
	for page := 1; page <= maxPages; page++ {
		var data []issueResponse
		url := fmt.Sprintf("%s/repos/%s/%s/issues?state=all&since=%s&per_page=%d&page=%d",
			c.baseURL, owner, name, since.UTC().Format(time.RFC3339), perPage, page)
		if err := c.Get(ctx, url, &data); err != nil {
			return nil, err
		}
		for _, it := range data {
			if it.PullRequest != nil {
				continue
			}
			issues = append(issues, repo.Issue{
				Number:    it.Number,
				CreatedAt: it.CreatedAt,
				ClosedAt:  it.ClosedAt,
			})
		}
		if len(data) < perPage {
			break
		}
	}
	return issues, nil
}

// fetchPullRequests lists pull requests by most recent update. The first page
// is always kept so that quiet repositories still have merge history; later
// pages are read only while they reach into the window.
func (c *Client) fetchPullRequests(ctx context.Context, owner, name string, since time.Time) ([]repo.PullRequest, error) {
	prs := []repo.PullRequest{}
	for page := 1; page <= maxPages; page++ {
		var data []pullResponse
		url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=all&sort=updated&direction=desc&per_page=%d&page=%d",
			c.baseURL, owner, name, perPage, page)
		if err := c.Get(ctx, url, &data); err != nil {
			return nil, err
		}
		for _, p := range data {
			prs = append(prs, repo.PullRequest{
				Number:    p.Number,
				CreatedAt: p.CreatedAt,
				ClosedAt:  p.ClosedAt,
				MergedAt:  p.MergedAt,
			})
		}
		if len(data) < perPage || data[len(data)-1].UpdatedAt.Before(since) {
			break
		}
	}
	return prs, nil
}

// inspectReviews fills Reviews and Additions for the most recently updated
// merged pull requests. Merged pull requests no longer change, so their
// reviews and details are cached. Pull requests whose reviews cannot be read
// are left uninspected.
func (f fetch) inspectReviews(ctx context.Context, prs []repo.PullRequest) {
	inspected := 0
	for i := range prs {
		if inspected == maxReviewedPRs {
			return
		}
		if !prs[i].Merged() {
			continue
		}
		inspected++

		num := prs[i].Number
		var reviews []reviewResponse
		err := f.Cached(ctx, f.key(fmt.Sprintf("pulls/%d/reviews", num)), f.refresh, &reviews, func() error {
			url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/reviews?per_page=%d", f.baseURL, f.owner, f.name, num, perPage)
			return f.Get(ctx, url, &reviews)
		})
		if err != nil {
			continue
		}
		var detail pullDetailResponse
		err = f.Cached(ctx, f.key(fmt.Sprintf("pulls/%d", num)), f.refresh, &detail, func() error {
			url := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", f.baseURL, f.owner, f.name, num)
			return f.Get(ctx, url, &detail)
		})
		if err == nil {
			prs[i].Additions = detail.Additions
		}
		n := countReviews(reviews)
		prs[i].Reviews = &n
	}
}

// countReviews counts submitted reviews; pending drafts do not count.
func countReviews(reviews []reviewResponse) int {
	n := 0
	for _, r := range reviews {
		if r.State != "PENDING" {
			n++
		}
	}
	return n
}
