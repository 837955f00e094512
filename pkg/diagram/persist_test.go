package diagram

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amplistack/amplistack/pkg/catalog"
	"github.com/amplistack/amplistack/pkg/rules"
	"github.com/amplistack/amplistack/pkg/snapshot"
)

func populated(t *testing.T) *State {
	t.Helper()
	s, _ := newState(t)
	kiosk, _ := s.AddCustomEntry(catalog.Experiences, "Kiosk")
	_, _ = s.AddCustomEntry(catalog.Analysis, "Lakehouse")
	mustAdd(t, s, "paid-ads", "website", kiosk.ID, "amplitude-sdk", "amplitude-analytics")
	_, _ = s.MoveToSlot(kiosk.ID, 4)
	_ = s.SetActiveModel(rules.ModelAmplitudeToWarehouse)
	key, err := s.AddCustomConnection("website", "paid-ads")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = s.ToggleDotted(key)
	_ = s.SetAnnotation(key, "retargeting")
	_ = s.Dismiss(rules.RuleKey("paid-ads", "website", rules.GlobalTag(0)))
	_ = s.SetNote("website", "marketing site")
	_, _ = s.ToggleBadge("session-replay")
	_ = s.SetActiveCategory(catalog.Sources)
	s.SetTitle("Q3")
	return s
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	orig := populated(t)
	want := orig.Snapshot()

	restored, _ := newState(t)
	if err := restored.Restore(want); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got := restored.Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch after restore (-want +got):\n%s", diff)
	}
	if !slices.Equal(idsOf(orig), idsOf(restored)) {
		t.Errorf("live order %v, want %v", idsOf(restored), idsOf(orig))
	}
}

func TestSnapshotSurvivesURLCodec(t *testing.T) {
	orig := populated(t)
	encoded, err := snapshot.EncodeURL(orig.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := snapshot.DecodeURL(encoded)
	if err != nil {
		t.Fatal(err)
	}
	restored, _ := newState(t)
	if err := restored.Restore(decoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig.Snapshot(), restored.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreCounterContinues(t *testing.T) {
	s, _ := newState(t)
	snap := snapshot.New()
	snap.CustomEntries[catalog.Sources] = []snapshot.Entry{
		{ID: "custom-sources-3", Name: "Kafka"},
		{ID: "custom-sources-11", Name: "Kinesis"},
		{ID: "pubsub", Name: "Pub/Sub"},
	}
	if err := s.Restore(snap); err != nil {
		t.Fatal(err)
	}
	e, _ := s.AddCustomEntry(catalog.Marketing, "Podcast")
	if e.ID != "custom-marketing-12" {
		t.Errorf("next custom id = %q, want custom-marketing-12", e.ID)
	}
	if n, ok := s.Definition("pubsub"); !ok || n.Icon != CustomIcon || !n.Custom {
		t.Errorf("Definition(pubsub) = %+v, %v", n, ok)
	}
}

func TestRestoreSkipsInvalidData(t *testing.T) {
	s, _ := newState(t)
	snap := snapshot.New()
	snap.ActiveModel = "lakehouse"
	snap.ActiveCategory = "storage"
	snap.LayerOrder[catalog.Experiences] = snapshot.Slots{"", "web-app", "snowflake", "mainframe"}
	snap.AddedItems[catalog.Experiences] = []string{"website", "mainframe"}
	snap.NodeNotes["website"] = "   "
	snap.NodeNotes["email"] = "not live"
	snap.SelectedBadges = []string{"analytics", "bogus"}
	snap.Title = "  "

	if err := s.Restore(snap); err != nil {
		t.Fatal(err)
	}
	if got, want := idsOf(s), []string{"website", "web-app"}; !slices.Equal(got, want) {
		t.Errorf("LiveNodes = %v, want %v", got, want)
	}
	if got, want := s.Slots(catalog.Experiences), []string{"website", "web-app", "", ""}; !slices.Equal(got, want) {
		t.Errorf("slots = %q, want %q", got, want)
	}
	if s.ActiveModel() != "" || s.ActiveCategory() != catalog.Marketing || s.Title() != DefaultTitle {
		t.Errorf("model=%q category=%q title=%q", s.ActiveModel(), s.ActiveCategory(), s.Title())
	}
	if s.Note("website") != "" || s.Note("email") != "" {
		t.Error("restored a blank or orphan note")
	}
	if got := s.Badges(); !slices.Equal(got, []string{"analytics"}) {
		t.Errorf("Badges = %v", got)
	}
}

func TestRestoreRejectsNewerVersion(t *testing.T) {
	s, _ := newState(t)
	snap := snapshot.New()
	snap.Version = snapshot.Version + 1
	if err := s.Restore(snap); err == nil {
		t.Error("Restore accepted a newer snapshot version")
	}
	if err := s.Restore(nil); err == nil {
		t.Error("Restore accepted nil")
	}
}

func TestRestoreDoesNotPersist(t *testing.T) {
	s, rec := newState(t)
	if err := s.Restore(populated(t).Snapshot()); err != nil {
		t.Fatal(err)
	}
	if len(rec.snaps) != 0 {
		t.Errorf("Restore persisted %d snapshots", len(rec.snaps))
	}
}
