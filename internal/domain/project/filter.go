package project

import (
	"sort"
	"strings"
)

// All is the filter sentinel that disables a category or tag predicate.
const All = "All"

// FilterState selects a visible subset of projects.
type FilterState struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// Filter returns the projects that match every active predicate of state,
// in their original order. An empty Category or Tag is treated as All.
func Filter(projects []Project, state FilterState) []Project {
	search := strings.ToLower(state.Search)
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.ProfileOwner), search) {
			continue
		}
		if !isAll(state.Category) && string(p.Category) != state.Category {
			continue
		}
		if !isAll(state.Tag) && !p.HasTag(state.Tag) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AllTags returns every distinct tag across projects, sorted.
func AllTags(projects []Project) []string {
	set := make(map[string]struct{})
	for _, p := range projects {
		for _, tag := range p.Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func isAll(v string) bool {
	return v == "" || v == All
}
