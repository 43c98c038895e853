// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"newsdesk/internal/models"
)

// LogFilter narrows the activity log. An empty Action (or "all") keeps
// every action.
type LogFilter struct {
	Query  string
	Action string
}

// ActionCount is the number of entries for one action.
type ActionCount struct {
	Action models.Action
	Count  int
}

// LogPage is the activity log view.
type LogPage struct {
	Entries []models.ActivityLog
	Counts  []ActionCount
}

// SearchLogs filters the log by a case-insensitive substring of the actor
// name or details and by action. Entries are newest first. Counts cover
// the whole log.
func (s *Service) SearchLogs(ctx context.Context, f LogFilter) (*LogPage, error) {
	logs, err := s.repo.Logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search logs: %w", err)
	}

	page := &LogPage{}
	counts := make(map[models.Action]int)
	for _, e := range logs {
		counts[e.Action]++
	}
	for _, a := range models.Actions {
		if counts[a] > 0 {
			page.Counts = append(page.Counts, ActionCount{Action: a, Count: counts[a]})
		}
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	page.Entries = slices.DeleteFunc(logs, func(e models.ActivityLog) bool {
		if f.Action != "" && f.Action != "all" && string(e.Action) != f.Action {
			return true
		}
		if q == "" {
			return false
		}
		return !strings.Contains(strings.ToLower(e.User.DisplayName), q) &&
			!strings.Contains(strings.ToLower(e.Details), q)
	})
	slices.SortStableFunc(page.Entries, func(a, b models.ActivityLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return page, nil
}
