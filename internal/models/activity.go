// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"
)

// Action is the kind of event an activity log entry records.
type Action string

const (
	ActionCreatePost Action = "create_post"
	ActionEditPost   Action = "edit_post"
	ActionDeletePost Action = "delete_post"
	ActionComment    Action = "comment"
	ActionLogin      Action = "login"
	ActionLogout     Action = "logout"
)

// Actions lists every action for filter dropdowns.
var Actions = []Action{
	ActionCreatePost, ActionEditPost, ActionDeletePost,
	ActionComment, ActionLogin, ActionLogout,
}

// ParseAction converts a stored or submitted string into an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Label returns a human-friendly name for the action.
func (a Action) Label() string {
	switch a {
	case ActionCreatePost:
		return "Created Post"
	case ActionEditPost:
		return "Edited Post"
	case ActionDeletePost:
		return "Deleted Post"
	case ActionComment:
		return "Comment"
	case ActionLogin:
		return "Login"
	case ActionLogout:
		return "Logout"
	}
	return string(a)
}

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	User      Identity  `json:"user"`
	Action    Action    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
