package github

import "time"

type repoResponse struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Archived      bool   `json:"archived"`
	License       *struct {
		SPDXID string `json:"spdx_id"`
	} `json:"license"`
}

type contributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}

type searchCountResponse struct {
	TotalCount int `json:"total_count"`
}

type issueResponse struct {
	Number      int        `json:"number"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	PullRequest *struct{}  `json:"pull_request"`
}

type pullResponse struct {
	Number    int        `json:"number"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	MergedAt  *time.Time `json:"merged_at"`
}

type pullDetailResponse struct {
	Additions int `json:"additions"`
}

type reviewResponse struct {
	State string `json:"state"`
}

type contentResponse struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink" or "submodule"
}

type manifestResponse struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	License         any               `json:"license"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}
