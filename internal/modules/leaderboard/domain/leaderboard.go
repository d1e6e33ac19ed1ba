package domain

import (
	"sort"
	"strings"
)

const (
	Size          = 10
	UnknownEmail  = "Unknown"
	DefaultAvatar = "🔥"
)

// Contribution is one session in the window joined to its owner's profile.
// Profile fields are zero when the owner has no profile row.
type Contribution struct {
	UserID          string
	DurationMinutes int
	CurrentStreak   int
	DisplayName     string
	Avatar          string
}

type Entry struct {
	Rank          int
	UserID        string
	Email         string
	DisplayName   string
	Avatar        string
	WeeklyMinutes int
	CurrentStreak int
}

// Label is the display name, falling back to the local part of the email.
func (e Entry) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	if e.Email == "" || e.Email == UnknownEmail {
		return UnknownEmail
	}
	local, _, _ := strings.Cut(e.Email, "@")
	return local
}

func (e Entry) AvatarOrDefault() string {
	if e.Avatar == "" {
		return DefaultAvatar
	}
	return e.Avatar
}

// Aggregate sums minutes per user. Users only appear if they contributed at
// least one session.
func Aggregate(contributions []Contribution) []Entry {
	index := map[string]int{}
	var entries []Entry
	for _, c := range contributions {
		i, ok := index[c.UserID]
		if !ok {
			index[c.UserID] = len(entries)
			entries = append(entries, Entry{
				UserID:        c.UserID,
				DisplayName:   c.DisplayName,
				Avatar:        c.Avatar,
				CurrentStreak: c.CurrentStreak,
			})
			i = len(entries) - 1
		}
		entries[i].WeeklyMinutes += c.DurationMinutes
	}
	return entries
}

// Rank orders by weekly minutes descending with ties broken by user id,
// keeps the first size entries and numbers them from 1.
func Rank(entries []Entry, size int) []Entry {
	ranked := append([]Entry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WeeklyMinutes != ranked[j].WeeklyMinutes {
			return ranked[i].WeeklyMinutes > ranked[j].WeeklyMinutes
		}
		return ranked[i].UserID < ranked[j].UserID
	})
	if size >= 0 && len(ranked) > size {
		ranked = ranked[:size]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// MissingEmails lists user ids whose email is still unresolved.
func MissingEmails(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.Email == "" {
			ids = append(ids, e.UserID)
		}
	}
	return ids
}

// ApplyEmails fills unresolved emails from a directory answer.
func ApplyEmails(entries []Entry, emails map[string]string) {
	for i := range entries {
		if entries[i].Email != "" {
			continue
		}
		if email := strings.TrimSpace(emails[entries[i].UserID]); email != "" {
			entries[i].Email = email
		}
	}
}

// MarkUnknown gives every unresolved entry the placeholder email.
func MarkUnknown(entries []Entry) {
	for i := range entries {
		if entries[i].Email == "" {
			entries[i].Email = UnknownEmail
		}
	}
}
