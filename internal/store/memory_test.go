package store

import (
	"reflect"
	"testing"
	"time"

	"deckd/internal/models"
)

func strPtr(s string) *string { return &s }

// activeVersions returns every version currently flagged active.
func activeVersions(t *testing.T, s Storage) []models.WebsiteVersion {
	t.Helper()
	all, err := s.GetAllWebsiteVersions()
	if err != nil {
		t.Fatalf("GetAllWebsiteVersions: %v", err)
	}
	var out []models.WebsiteVersion
	for _, v := range all {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out
}

func TestMemoryBootstrapsDefaultVersion(t *testing.T) {
	m := NewMemory()

	active, err := m.GetActiveWebsiteVersion()
	if err != nil {
		t.Fatalf("GetActiveWebsiteVersion: %v", err)
	}
	if active == nil {
		t.Fatal("fresh store has no active version")
	}
	if active.ID != models.DefaultVersionID {
		t.Errorf("id: got %q, want %q", active.ID, models.DefaultVersionID)
	}
	if active.Name != models.DefaultVersionName {
		t.Errorf("name: got %q, want %q", active.Name, models.DefaultVersionName)
	}
	if len(active.ContentData) != 0 {
		t.Errorf("expected empty content map, got %v", active.ContentData)
	}

	all, err := m.GetAllWebsiteVersions()
	if err != nil {
		t.Fatalf("GetAllWebsiteVersions: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected exactly one version, got %d", len(all))
	}
}

func TestMemoryContentRoundTrip(t *testing.T) {
	m := NewMemory()

	value := map[string]any{
		"content": map[string]any{"en": "X", "tr": "Y"},
	}
	if err := m.UpdateContentData("hero_title", value); err != nil {
		t.Fatalf("UpdateContentData: %v", err)
	}

	got, err := m.GetContentData("hero_title")
	if err != nil {
		t.Fatalf("GetContentData: %v", err)
	}
	if !reflect.DeepEqual(got, value) {
		t.Errorf("round trip: got %v, want %v", got, value)
	}
}

func TestMemoryContentSectionIsolation(t *testing.T) {
	m := NewMemory()

	if err := m.UpdateContentData("hero_title", "first"); err != nil {
		t.Fatalf("UpdateContentData hero_title: %v", err)
	}
	if err := m.UpdateContentData("market_size", "second"); err != nil {
		t.Fatalf("UpdateContentData market_size: %v", err)
	}
	// Overwrite one key; the other must be untouched.
	if err := m.UpdateContentData("hero_title", "changed"); err != nil {
		t.Fatalf("UpdateContentData overwrite: %v", err)
	}

	hero, _ := m.GetContentData("hero_title")
	market, _ := m.GetContentData("market_size")
	if hero != "changed" {
		t.Errorf("hero_title: got %v, want %q", hero, "changed")
	}
	if market != "second" {
		t.Errorf("market_size: got %v, want %q", market, "second")
	}
}

func TestMemoryContentUnknownKeyIsNil(t *testing.T) {
	m := NewMemory()

	got, err := m.GetContentData("never_written")
	if err != nil {
		t.Fatalf("GetContentData: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown key, got %v", got)
	}
}

func TestMemoryActivationIsExclusive(t *testing.T) {
	m := NewMemory()

	v2, err := m.CreateWebsiteVersion(&models.WebsiteVersion{Name: "v2"})
	if err != nil {
		t.Fatalf("CreateWebsiteVersion: %v", err)
	}
	if v2.IsActive {
		t.Error("new version must not be active by default")
	}

	if err := m.SetActiveWebsiteVersion(v2.ID); err != nil {
		t.Fatalf("SetActiveWebsiteVersion: %v", err)
	}

	actives := activeVersions(t, m)
	if len(actives) != 1 {
		t.Fatalf("expected exactly one active version, got %d", len(actives))
	}
	if actives[0].ID != v2.ID {
		t.Errorf("active: got %q, want %q", actives[0].ID, v2.ID)
	}

	prev, _ := m.GetWebsiteVersion(models.DefaultVersionID)
	if prev.IsActive {
		t.Error("previous default version should be inactive after activation")
	}
}

func TestMemoryActivateMissingIDLeavesActiveUntouched(t *testing.T) {
	m := NewMemory()

	err := m.SetActiveWebsiteVersion("does-not-exist")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	active, _ := m.GetActiveWebsiteVersion()
	if active == nil || active.ID != models.DefaultVersionID {
		t.Error("previously active version must remain active after a failed activation")
	}
}

func TestMemoryContentWriteWithoutActiveVersion(t *testing.T) {
	m := NewMemory()

	if err := m.DeleteWebsiteVersion(models.DefaultVersionID); err != nil {
		t.Fatalf("DeleteWebsiteVersion: %v", err)
	}

	err := m.UpdateContentData("hero_title", "anything")
	if err != ErrNoActiveVersion {
		t.Fatalf("expected ErrNoActiveVersion, got %v", err)
	}

	// Reads stay tolerant: nil value, empty map, nil active version.
	if v, _ := m.GetContentData("hero_title"); v != nil {
		t.Errorf("expected nil section value, got %v", v)
	}
	all, _ := m.GetAllContentData()
	if len(all) != 0 {
		t.Errorf("expected empty content map, got %v", all)
	}
	if active, _ := m.GetActiveWebsiteVersion(); active != nil {
		t.Errorf("expected no active version, got %v", active)
	}
}

func TestMemoryVersionUpdateKeepsIdentity(t *testing.T) {
	m := NewMemory()

	v, err := m.CreateWebsiteVersion(&models.WebsiteVersion{Name: "before"})
	if err != nil {
		t.Fatalf("CreateWebsiteVersion: %v", err)
	}

	time.Sleep(time.Millisecond) // UpdatedAt must be strictly greater
	updated, err := m.UpdateWebsiteVersion(v.ID, models.WebsiteVersionPatch{
		Name:        strPtr("after"),
		Description: strPtr("new description"),
		HasDesc:     true,
	})
	if err != nil {
		t.Fatalf("UpdateWebsiteVersion: %v", err)
	}

	if updated.ID != v.ID {
		t.Errorf("id changed: %q -> %q", v.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(v.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", v.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(v.UpdatedAt) {
		t.Errorf("updatedAt not bumped: %v -> %v", v.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Name != "after" {
		t.Errorf("name: got %q, want %q", updated.Name, "after")
	}
	if updated.Description == nil || *updated.Description != "new description" {
		t.Errorf("description: got %v", updated.Description)
	}
}

func TestMemoryVersionUpdateMissingID(t *testing.T) {
	m := NewMemory()

	_, err := m.UpdateWebsiteVersion("nope", models.WebsiteVersionPatch{Name: strPtr("x")})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryVersionDeleteIdempotent(t *testing.T) {
	m := NewMemory()

	v, _ := m.CreateWebsiteVersion(&models.WebsiteVersion{Name: "doomed"})
	if err := m.DeleteWebsiteVersion(v.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := m.DeleteWebsiteVersion(v.ID); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}

	all, _ := m.GetAllWebsiteVersions()
	if len(all) != 1 { // only the default remains
		t.Errorf("expected 1 version, got %d", len(all))
	}
}

func TestMemoryChartCRUD(t *testing.T) {
	m := NewMemory()

	created, err := m.CreateChartConfig(&models.ChartConfig{
		Name:      "Revenue 2026",
		ChartType: "revenue",
		Data:      []any{map[string]any{"year": "2026", "value": float64(12)}},
	})
	if err != nil {
		t.Fatalf("CreateChartConfig: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.Styling != nil {
		t.Errorf("expected nil styling, got %v", created.Styling)
	}

	found, err := m.GetChartConfig(created.ID)
	if err != nil {
		t.Fatalf("GetChartConfig: %v", err)
	}
	if found == nil || found.Name != "Revenue 2026" {
		t.Fatalf("lookup: got %v", found)
	}

	time.Sleep(time.Millisecond) // UpdatedAt must be strictly greater
	updated, err := m.UpdateChartConfig(created.ID, models.ChartConfigPatch{
		Name:       strPtr("Revenue 2027"),
		Styling:    map[string]any{"color": "#1e40af"},
		HasStyling: true,
	})
	if err != nil {
		t.Fatalf("UpdateChartConfig: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on update")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed on update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt not bumped")
	}
	if updated.ChartType != "revenue" {
		t.Errorf("untouched field changed: %q", updated.ChartType)
	}

	if err := m.DeleteChartConfig(created.ID); err != nil {
		t.Fatalf("DeleteChartConfig: %v", err)
	}
	if err := m.DeleteChartConfig(created.ID); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
	if gone, _ := m.GetChartConfig(created.ID); gone != nil {
		t.Error("chart still present after delete")
	}
}

func TestMemoryChartUpdateMissingID(t *testing.T) {
	m := NewMemory()

	_, err := m.UpdateChartConfig("nope", models.ChartConfigPatch{Name: strPtr("x")})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryChartsByTypeCreationOrder(t *testing.T) {
	m := NewMemory()

	first, _ := m.CreateChartConfig(&models.ChartConfig{Name: "Q1", ChartType: "revenue", Data: "a"})
	m.CreateChartConfig(&models.ChartConfig{Name: "Market", ChartType: "market", Data: "b"})
	second, _ := m.CreateChartConfig(&models.ChartConfig{Name: "Q2", ChartType: "revenue", Data: "c"})

	charts, err := m.GetChartConfigsByType("revenue")
	if err != nil {
		t.Fatalf("GetChartConfigsByType: %v", err)
	}
	if len(charts) != 2 {
		t.Fatalf("expected 2 revenue charts, got %d", len(charts))
	}
	if charts[0].ID != first.ID || charts[1].ID != second.ID {
		t.Error("charts not in creation order")
	}

	if none, _ := m.GetChartConfigsByType("unknown"); len(none) != 0 {
		t.Errorf("expected empty result for unknown type, got %d", len(none))
	}
}

func TestMemoryCreateVersionWithContent(t *testing.T) {
	m := NewMemory()

	v, err := m.CreateWebsiteVersion(&models.WebsiteVersion{
		Name:         "v2",
		Description:  strPtr("second draft"),
		ChartConfigs: []string{"chart-1"},
		ContentData:  models.JSONMap{"hero_title": "hi"},
	})
	if err != nil {
		t.Fatalf("CreateWebsiteVersion: %v", err)
	}

	if v.Description == nil || *v.Description != "second draft" {
		t.Errorf("description: got %v", v.Description)
	}
	if len(v.ChartConfigs) != 1 || v.ChartConfigs[0] != "chart-1" {
		t.Errorf("chartConfigs: got %v", v.ChartConfigs)
	}
	if v.ContentData["hero_title"] != "hi" {
		t.Errorf("contentData: got %v", v.ContentData)
	}

	// Content reads still target the default active version, not v2.
	if got, _ := m.GetContentData("hero_title"); got != nil {
		t.Errorf("inactive version's content leaked into reads: %v", got)
	}
}

func TestMemoryContentFollowsActiveVersion(t *testing.T) {
	m := NewMemory()

	if err := m.UpdateContentData("hero_title", "default text"); err != nil {
		t.Fatalf("UpdateContentData: %v", err)
	}

	v2, _ := m.CreateWebsiteVersion(&models.WebsiteVersion{Name: "v2"})
	if err := m.SetActiveWebsiteVersion(v2.ID); err != nil {
		t.Fatalf("SetActiveWebsiteVersion: %v", err)
	}

	// v2 has its own (empty) content map.
	if got, _ := m.GetContentData("hero_title"); got != nil {
		t.Errorf("expected nil from freshly activated version, got %v", got)
	}

	if err := m.UpdateContentData("hero_title", "v2 text"); err != nil {
		t.Fatalf("UpdateContentData on v2: %v", err)
	}

	// Flip back: the default version's content is intact.
	if err := m.SetActiveWebsiteVersion(models.DefaultVersionID); err != nil {
		t.Fatalf("SetActiveWebsiteVersion default: %v", err)
	}
	if got, _ := m.GetContentData("hero_title"); got != "default text" {
		t.Errorf("default version content: got %v, want %q", got, "default text")
	}
}

func TestMemoryStoredVersionNotAliased(t *testing.T) {
	m := NewMemory()

	active, _ := m.GetActiveWebsiteVersion()
	active.ContentData["sneaky"] = "mutation"

	if got, _ := m.GetContentData("sneaky"); got != nil {
		t.Error("mutating a returned version changed stored state")
	}
}

func TestMemoryUsers(t *testing.T) {
	m := NewMemory()

	u, err := m.CreateUser("operator", "s3cret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Password == "s3cret" {
		t.Error("password stored in plaintext")
	}
	if !VerifyPassword(u, "s3cret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(u, "wrong") {
		t.Error("wrong password accepted")
	}

	byName, err := m.GetUserByUsername("operator")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byName == nil || byName.ID != u.ID {
		t.Fatalf("lookup by username: got %v", byName)
	}

	byID, _ := m.GetUser(u.ID)
	if byID == nil || byID.Username != "operator" {
		t.Fatalf("lookup by id: got %v", byID)
	}

	if missing, _ := m.GetUserByUsername("ghost"); missing != nil {
		t.Errorf("expected nil for unknown username, got %v", missing)
	}
}
