package database

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleResearch() Research {
	return Research{
		Summary:   "Research summary",
		KeyPoints: []string{"KP1"},
		Angles:    []string{"A1"},
		Sources:   []string{"S1"},
	}
}

func sampleFormats() Formats {
	return Formats{
		XThread:      "1/ First tweet\n\n2/ Second tweet",
		LinkedinPost: "LinkedIn post about AI",
		BlogArticle:  "# Blog Title\n\nBlog content here",
	}
}

func TestCreateDraft(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	draft, err := repo.Create("AI trends 2026", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if draft.ID == "" {
		t.Error("Draft should have an id assigned at creation")
	}
	if draft.Status != StatusDraft {
		t.Errorf("Expected status 'draft', got '%s'", draft.Status)
	}
	if draft.Topic != "AI trends 2026" {
		t.Errorf("Expected topic 'AI trends 2026', got '%s'", draft.Topic)
	}
	if draft.Research.Summary != "Research summary" {
		t.Errorf("Research summary not round-tripped, got '%s'", draft.Research.Summary)
	}
	if len(draft.Research.KeyPoints) != 1 || draft.Research.KeyPoints[0] != "KP1" {
		t.Errorf("Key points not round-tripped, got %v", draft.Research.KeyPoints)
	}
	if draft.Formats.XThread != "1/ First tweet\n\n2/ Second tweet" {
		t.Errorf("xThread not stored exactly, got %q", draft.Formats.XThread)
	}
	if draft.Formats.LinkedinPost != "LinkedIn post about AI" {
		t.Errorf("linkedinPost not stored exactly, got %q", draft.Formats.LinkedinPost)
	}
	if draft.Formats.BlogArticle != "# Blog Title\n\nBlog content here" {
		t.Errorf("blogArticle not stored exactly, got %q", draft.Formats.BlogArticle)
	}
	if draft.CreatedAt.IsZero() || draft.UpdatedAt.IsZero() {
		t.Error("Timestamps should be set at creation")
	}
}

func TestUnknownIDSafety(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	if draft, err := repo.Get("nonexistent"); err != nil || draft != nil {
		t.Errorf("Get of unknown id should return (nil, nil), got (%v, %v)", draft, err)
	}
	if draft, err := repo.Approve("nonexistent"); err != nil || draft != nil {
		t.Errorf("Approve of unknown id should return (nil, nil), got (%v, %v)", draft, err)
	}
	if draft, err := repo.Reject("nonexistent", "x"); err != nil || draft != nil {
		t.Errorf("Reject of unknown id should return (nil, nil), got (%v, %v)", draft, err)
	}
	if draft, err := repo.UpdateContent("nonexistent", FormatXThread, "new"); err != nil || draft != nil {
		t.Errorf("UpdateContent of unknown id should return (nil, nil), got (%v, %v)", draft, err)
	}
	if draft, err := repo.MarkPublished("nonexistent"); err != nil || draft != nil {
		t.Errorf("MarkPublished of unknown id should return (nil, nil), got (%v, %v)", draft, err)
	}
}

func TestIdempotentApprove(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	created, err := repo.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	first, err := repo.Approve(created.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if first.Status != StatusApproved {
		t.Errorf("Expected status 'approved', got '%s'", first.Status)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := repo.Approve(created.ID)
	if err != nil {
		t.Fatalf("Repeated approve failed: %v", err)
	}
	if second.Status != StatusApproved {
		t.Errorf("Repeated approve should keep status 'approved', got '%s'", second.Status)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Error("Repeated approve should still refresh updated_at")
	}
}

func TestRejectThenEditTransition(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	created, err := repo.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	rejected, err := repo.Reject(created.ID, "too generic")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Errorf("Expected status 'rejected', got '%s'", rejected.Status)
	}
	if rejected.Feedback != "too generic" {
		t.Errorf("Expected feedback 'too generic', got '%s'", rejected.Feedback)
	}

	edited, err := repo.UpdateContent(created.ID, FormatXThread, "new")
	if err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	if edited.Status != StatusDraft {
		t.Errorf("Editing a rejected draft should transition back to 'draft', got '%s'", edited.Status)
	}
	if edited.Formats.XThread != "new" {
		t.Errorf("Expected xThread 'new', got %q", edited.Formats.XThread)
	}
	// Feedback stays stored, just no longer authoritative.
	if edited.Feedback != "too generic" {
		t.Errorf("Feedback should be retained after edit, got '%s'", edited.Feedback)
	}
}

func TestUpdateContentDoesNotDemoteApproved(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	created, err := repo.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Approve(created.ID); err != nil {
		t.Fatal(err)
	}

	edited, err := repo.UpdateContent(created.ID, FormatLinkedinPost, "tightened post")
	if err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	if edited.Status != StatusApproved {
		t.Errorf("Editing an approved draft should not change its status, got '%s'", edited.Status)
	}
}

func TestUpdateContentUnknownFormat(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	created, err := repo.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.UpdateContent(created.ID, "instagramReel", "x"); err != ErrUnknownFormat {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestMarkPublished(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	created, err := repo.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	published, err := repo.MarkPublished(created.ID)
	if err != nil {
		t.Fatalf("MarkPublished failed: %v", err)
	}
	if published.Status != StatusPublished {
		t.Errorf("Expected status 'published', got '%s'", published.Status)
	}
}

func TestListNewestFirstAndFiltered(t *testing.T) {
	repo := NewDraftRepository(setupTestDB(t))

	first, err := repo.Create("first", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := repo.Create("second", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Approve(second.ID); err != nil {
		t.Fatal(err)
	}

	all, err := repo.List("")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 drafts, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Error("Unfiltered list should be newest-first")
	}

	approved, err := repo.List(string(StatusApproved))
	if err != nil {
		t.Fatalf("Filtered list failed: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != second.ID {
		t.Errorf("Expected only the approved draft, got %d drafts", len(approved))
	}

	drafts, err := repo.List(string(StatusDraft))
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 1 || drafts[0].ID != first.ID {
		t.Errorf("Expected only the unapproved draft, got %d drafts", len(drafts))
	}
}

func TestPublishRecordLifecycle(t *testing.T) {
	db := setupTestDB(t)
	drafts := NewDraftRepository(db)
	records := NewPublishRecordRepository(db)

	draft, err := drafts.Create("topic", sampleResearch(), sampleFormats())
	if err != nil {
		t.Fatal(err)
	}

	scheduled := time.Now().UTC().Add(time.Hour)
	record, err := records.Create(draft.ID, "post-123", &scheduled)
	if err != nil {
		t.Fatalf("Create record failed: %v", err)
	}
	if record.Status != RecordStatusOpen {
		t.Errorf("New record should be open, got '%s'", record.Status)
	}

	open, err := records.ListOpen()
	if err != nil {
		t.Fatalf("ListOpen failed: %v", err)
	}
	if len(open) != 1 || open[0].PostID != "post-123" {
		t.Fatalf("Expected the open record, got %v", open)
	}

	if err := records.Close(record.ID, RecordStatusPublished, ""); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	open, err = records.ListOpen()
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 0 {
		t.Errorf("Closed record should not be listed as open, got %d", len(open))
	}
}
