package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/folio/internal/domain/activity"
)

// Enhancement is a generated description and tag suggestion for a project.
type Enhancement struct {
	ProjectID   string   `json:"projectId"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Applied     bool     `json:"applied"`
	Project     *Project `json:"project,omitempty"`
}

type enhancementResponse struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Enhance asks the generator for a better description and tags. The
// suggestion is stored only when apply is set; a failed generation never
// touches the stored project.
func (s *Service) Enhance(ctx context.Context, userID, id string, apply bool) (*Enhancement, error) {
	if s.generator == nil {
		return nil, ErrGeneratorUnavailable
	}

	proj, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var resp enhancementResponse
	if err := s.generator.GenerateStructured(ctx, enhancementPrompt(proj), &resp); err != nil {
		return nil, fmt.Errorf("enhancing project: %w", err)
	}

	description := strings.TrimSpace(resp.Description)
	if description == "" {
		description = proj.Description
	}
	tags := s.ingestTags(append(append([]string{}, proj.Tags...), resp.Tags...))

	out := &Enhancement{
		ProjectID:   proj.ID,
		Description: description,
		Tags:        tags,
	}
	if !apply {
		return out, nil
	}

	proj.Description = description
	proj.Tags = tags
	proj.LastModified = s.now()
	if err := s.save(ctx, userID, proj); err != nil {
		return nil, err
	}
	out.Applied = true
	out.Project = proj

	s.record(ctx, userID, activity.TypeProjectEnhanced, proj.ID, fmt.Sprintf("enhanced project %q", proj.Name), nil)
	return out, nil
}

func enhancementPrompt(p *Project) string {
	var b strings.Builder
	b.WriteString("Improve this portfolio project entry for prospective clients.\n")
	b.WriteString("Return a JSON object with fields \"description\" (2-4 sentences) and \"tags\" (up to 8 short tags).\n\n")
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "Current tags: %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(&b, "Current description: %s\n", p.Description)
	return b.String()
}
