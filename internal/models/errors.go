// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// ErrNotFound is returned by storage mutations that target a missing record.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateLike is returned when a user likes the same article twice.
var ErrDuplicateLike = errors.New("article already liked by this user")
