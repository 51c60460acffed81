package match

import (
	"fmt"
	"strings"

	"github.com/rpggio/folio/internal/domain/project"
)

const maxPromptDescription = 400

func recommendationPrompt(requirements, clientName string, projects []project.Project) string {
	var b strings.Builder
	b.WriteString("You match client requirements against a portfolio of past projects.\n")
	b.WriteString("Pick the projects that best demonstrate fit, most relevant first.\n")
	b.WriteString(`Respond with JSON: {"recommendations":[{"projectId":"<id from the list>","reason":"<one or two sentences>"}]}`)
	b.WriteString("\nOnly use ids from the list below.\n\n")

	if clientName != "" {
		fmt.Fprintf(&b, "Client: %s\n", clientName)
	}
	fmt.Fprintf(&b, "Requirements:\n%s\n\nPortfolio:\n", requirements)
	for _, p := range projects {
		fmt.Fprintf(&b, "- id: %s\n  name: %s\n  category: %s\n", p.ID, p.Name, p.Category)
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, "  tags: %s\n", strings.Join(p.Tags, ", "))
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "  description: %s\n", truncate(p.Description, maxPromptDescription))
		}
	}
	return b.String()
}

func proposalPrompt(rec *Record, selected []project.Project) string {
	var b strings.Builder
	b.WriteString("Write a concise outreach proposal in plain text.\n")
	switch rec.SenderType {
	case SenderIndividual:
		fmt.Fprintf(&b, "Write in the first person singular as %s, an independent professional.\n", rec.SenderName)
	default:
		if rec.SenderName != "" {
			fmt.Fprintf(&b, "Write in the first person plural on behalf of the agency %s.\n", rec.SenderName)
		} else {
			b.WriteString("Write in the first person plural on behalf of an agency.\n")
		}
	}
	if rec.ClientName != "" {
		fmt.Fprintf(&b, "Address the client %s.\n", rec.ClientName)
	}
	fmt.Fprintf(&b, "\nClient requirements:\n%s\n\nReference only these projects:\n", rec.Requirements)

	reasons := make(map[string]string, len(rec.Recommendations))
	for _, r := range rec.Recommendations {
		if _, ok := reasons[r.ProjectID]; !ok {
			reasons[r.ProjectID] = r.Reason
		}
	}
	for _, p := range selected {
		fmt.Fprintf(&b, "- %s (%s)", p.Name, p.Category)
		if p.Description != "" {
			fmt.Fprintf(&b, ": %s", truncate(p.Description, maxPromptDescription))
		}
		if reason := reasons[p.ID]; reason != "" {
			fmt.Fprintf(&b, " Relevance: %s", reason)
		}
		for _, l := range p.Links {
			if l.Type == project.LinkLive {
				fmt.Fprintf(&b, " Live: %s", l.URL)
				break
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
