package domain

import "testing"

func TestRankOrdersByWeeklyMinutes(t *testing.T) {
	t.Parallel()
	entries := Aggregate([]Contribution{
		{UserID: "A", DurationMinutes: 60},
		{UserID: "B", DurationMinutes: 45},
		{UserID: "C", DurationMinutes: 200},
		{UserID: "A", DurationMinutes: 60},
	})
	ranked := Rank(entries, Size)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranked))
	}
	want := []struct {
		id      string
		minutes int
	}{{"C", 200}, {"A", 120}, {"B", 45}}
	for i, w := range want {
		if ranked[i].UserID != w.id || ranked[i].WeeklyMinutes != w.minutes || ranked[i].Rank != i+1 {
			t.Fatalf("position %d: expected %s/%d, got %+v", i, w.id, w.minutes, ranked[i])
		}
	}
}

func TestRankTiesAndTruncation(t *testing.T) {
	t.Parallel()
	var contributions []Contribution
	for _, id := range []string{"m", "l", "k", "j", "i", "h", "g", "f", "e", "d", "c", "b"} {
		contributions = append(contributions, Contribution{UserID: id, DurationMinutes: 30})
	}
	contributions = append(contributions, Contribution{UserID: "z", DurationMinutes: 31})
	ranked := Rank(Aggregate(contributions), Size)
	if len(ranked) != Size {
		t.Fatalf("expected top %d, got %d", Size, len(ranked))
	}
	if ranked[0].UserID != "z" || ranked[1].UserID != "b" || ranked[9].UserID != "j" {
		t.Fatalf("unexpected tie order: %s %s %s", ranked[0].UserID, ranked[1].UserID, ranked[9].UserID)
	}
	if ranked[9].Rank != 10 {
		t.Fatalf("expected last rank 10, got %d", ranked[9].Rank)
	}
}

func TestAggregateKeepsProfileFields(t *testing.T) {
	t.Parallel()
	entries := Aggregate([]Contribution{
		{UserID: "A", DurationMinutes: 15, CurrentStreak: 4, DisplayName: "Ada", Avatar: "🚀"},
		{UserID: "A", DurationMinutes: 25, CurrentStreak: 4, DisplayName: "Ada", Avatar: "🚀"},
	})
	if len(entries) != 1 || entries[0].WeeklyMinutes != 40 || entries[0].CurrentStreak != 4 || entries[0].Label() != "Ada" {
		t.Fatalf("unexpected aggregate: %+v", entries)
	}
}

func TestEmailResolution(t *testing.T) {
	t.Parallel()
	entries := []Entry{{UserID: "A"}, {UserID: "B"}, {UserID: "C"}}
	ApplyEmails(entries, map[string]string{"A": "ada@example.com"})
	if got := MissingEmails(entries); len(got) != 2 || got[0] != "B" || got[1] != "C" {
		t.Fatalf("unexpected missing ids: %v", got)
	}
	ApplyEmails(entries, map[string]string{"A": "other@example.com", "B": "bo@example.com"})
	MarkUnknown(entries)
	if entries[0].Email != "ada@example.com" || entries[1].Email != "bo@example.com" || entries[2].Email != UnknownEmail {
		t.Fatalf("unexpected emails: %+v", entries)
	}
	if entries[1].Label() != "bo" || entries[2].Label() != UnknownEmail || entries[2].AvatarOrDefault() != DefaultAvatar {
		t.Fatalf("unexpected fallbacks: %q %q", entries[1].Label(), entries[2].Label())
	}
}
