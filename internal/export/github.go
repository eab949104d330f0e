// Package export pushes generated tasks to external trackers. Only
// GitHub issues are supported; teams that plan in GitHub can mirror
// the generated task list there while sync stays in Greenlight.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/greenlight/internal/models"
	"golang.org/x/oauth2"
)

// IssuesService abstracts the go-github issues API, enabling test mocks.
type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// NewIssuesService builds an authenticated go-github issues client.
func NewIssuesService(ctx context.Context, token string) IssuesService {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts)).Issues
}

// Created records one exported task.
type Created struct {
	TaskID      string
	IssueNumber int
	URL         string
}

// Tasks exports open tasks as GitHub issues, one per task, labeled with
// the task's type and priority. Done and cancelled tasks are skipped.
// Export stops at the first API failure so a partial export is visible
// in the returned slice.
func Tasks(ctx context.Context, svc IssuesService, owner, repo string, tasks []models.Task) ([]Created, error) {
	var created []Created
	for _, t := range tasks {
		if t.Status == models.StatusDone || t.Status == models.StatusCancelled {
			continue
		}

		req := &github.IssueRequest{
			Title:  github.String(t.Title),
			Body:   github.String(issueBody(t)),
			Labels: &[]string{t.Type, "priority:" + t.Priority, "greenlight"},
		}

		issue, _, err := svc.Create(ctx, owner, repo, req)
		if err != nil {
			return created, fmt.Errorf("export: create issue for task %s: %w", t.ID, err)
		}
		created = append(created, Created{
			TaskID:      t.ID,
			IssueNumber: issue.GetNumber(),
			URL:         issue.GetHTMLURL(),
		})
	}
	return created, nil
}

// issueBody renders the issue body for a task, including the checklist
// provenance so the issue can be traced back.
func issueBody(t models.Task) string {
	var b strings.Builder
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Greenlight task `%s`", t.ID)
	if t.ChecklistItemID != "" {
		fmt.Fprintf(&b, " (checklist item `%s`, instance `%s`)", t.ChecklistItemID, t.ChecklistInstanceID)
	}
	b.WriteString("\n")
	if t.EstimatedHours > 0 {
		fmt.Fprintf(&b, "Estimated: %dh\n", t.EstimatedHours)
	}
	if t.AssignedTo != "" {
		fmt.Fprintf(&b, "Assignee: %s (%s)\n", t.AssignedTo, t.AssignedType)
	}
	return b.String()
}
