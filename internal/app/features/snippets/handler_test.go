package snippets_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codeshare-cloud/codeshare/internal/app/features/snippets"
	"github.com/codeshare-cloud/codeshare/internal/domain/models"
	"github.com/codeshare-cloud/codeshare/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")

	req := testutil.AuthenticatedRequest(t, "POST", "/snippets", map[string]string{
		"title": "hello", "code": "print(1)", "language": "python",
	}, alice)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var sn models.Snippet
	testutil.DecodeJSON(t, rec, &sn)
	if sn.UserID != alice.ID {
		t.Errorf("owner = %s, want the caller", sn.UserID.Hex())
	}
	if sn.Title != "hello" || len(sn.Versions) != 0 {
		t.Errorf("snippet = %+v", sn)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")

	for _, body := range []map[string]string{
		{"code": "print(1)"},
		{"title": "  ", "code": "print(1)"},
		{"title": "hello"},
	} {
		req := testutil.AuthenticatedRequest(t, "POST", "/snippets", body, alice)
		rec := httptest.NewRecorder()
		h.HandleCreate(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestHandleSaveVersion_OwnerOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")
	bob := f.CreateVerifiedUser(ctx, "Bob", "bob@x.com")
	sn := f.CreateSnippet(ctx, alice.ID, "hello", "print(1)", "python")

	// A non-owner cannot edit, and nothing is recorded.
	req := testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/versions", map[string]string{
		"title": "stolen", "code": "x",
	}, bob)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleSaveVersion(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner edit: status = %d, want 403", rec.Code)
	}

	// The owner's edit snapshots the pre-edit state.
	req = testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/versions", map[string]string{
		"title": "hi", "code": "print(2)",
	}, alice)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleSaveVersion(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner edit: status = %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.Snippet
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Title != "hi" || len(updated.Versions) != 1 || updated.Versions[0].Title != "hello" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestHandleSaveVersion_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-a-hex-id"} {
		req := testutil.AuthenticatedRequest(t, "POST", "/snippets/"+id+"/versions", map[string]string{
			"title": "t", "code": "c",
		}, alice)
		req = testutil.WithChiURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		h.HandleSaveVersion(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: status = %d, want 404", id, rec.Code)
		}
	}
}

func TestHandleListVersions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")
	bob := f.CreateVerifiedUser(ctx, "Bob", "bob@x.com")
	sn := f.CreateSnippet(ctx, alice.ID, "hello", "print(1)", "python")

	edits := []map[string]string{
		{"title": "hi", "code": "print(2)"},
		{"title": "hey", "code": "print(3)"},
	}
	for _, e := range edits {
		req := testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/versions", e, alice)
		req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleSaveVersion(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("edit %v: status = %d", e, rec.Code)
		}
	}

	// History reads are open to any signed-in user, not just the owner.
	req := testutil.AuthenticatedRequest(t, "GET", "/snippets/"+sn.ID.Hex()+"/versions", nil, bob)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleListVersions(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var history []models.Version
	testutil.DecodeJSON(t, rec, &history)
	if len(history) != 2 || history[0].Title != "hi" || history[1].Title != "hello" {
		t.Errorf("history = %+v, want newest first", history)
	}
}

func TestHandleAddComment_Sanitizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")
	bob := f.CreateVerifiedUser(ctx, "Bob", "bob@x.com")
	sn := f.CreateSnippet(ctx, alice.ID, "hello", "print(1)", "python")

	req := testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/comments", map[string]string{
		"text": "  nice <script>alert(1)</script> work  ",
	}, bob)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleAddComment(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var updated models.Snippet
	testutil.DecodeJSON(t, rec, &updated)
	if len(updated.Comments) != 1 {
		t.Fatalf("comments = %+v", updated.Comments)
	}
	c := updated.Comments[0]
	if c.UserName != "Bob" || c.UserID != bob.ID {
		t.Errorf("comment author = %q/%s", c.UserName, c.UserID.Hex())
	}
	if c.ID == "" {
		t.Error("comment id missing")
	}
	if c.Text != "nice  work" && c.Text != "nice work" {
		t.Errorf("text = %q, want markup stripped", c.Text)
	}

	// Markup-only text sanitizes to nothing and is rejected.
	req = testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/comments", map[string]string{
		"text": "<b></b>",
	}, bob)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleAddComment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty-after-sanitize: status = %d, want 400", rec.Code)
	}
}

func TestHandleDeleteComment_Authorization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	owner := f.CreateVerifiedUser(ctx, "Owner", "owner@x.com")
	author := f.CreateVerifiedUser(ctx, "Author", "author@x.com")
	other := f.CreateVerifiedUser(ctx, "Other", "other@x.com")
	sn := f.CreateSnippet(ctx, owner.ID, "hello", "print(1)", "python")

	addComment := func(as models.User) string {
		req := testutil.AuthenticatedRequest(t, "POST", "/snippets/"+sn.ID.Hex()+"/comments", map[string]string{
			"text": "a comment",
		}, as)
		req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
		rec := httptest.NewRecorder()
		h.HandleAddComment(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add comment: status = %d", rec.Code)
		}
		var updated models.Snippet
		testutil.DecodeJSON(t, rec, &updated)
		return updated.Comments[len(updated.Comments)-1].ID
	}
	deleteComment := func(as models.User, commentID string) int {
		req := testutil.AuthenticatedRequest(t, "DELETE",
			"/snippets/"+sn.ID.Hex()+"/comments/"+commentID, nil, as)
		req = testutil.WithChiURLParams(req, map[string]string{"id": sn.ID.Hex(), "commentID": commentID})
		rec := httptest.NewRecorder()
		h.HandleDeleteComment(rec, req)
		return rec.Code
	}

	c1 := addComment(author)

	// A bystander can delete neither.
	if code := deleteComment(other, c1); code != http.StatusForbidden {
		t.Errorf("bystander delete: status = %d, want 403", code)
	}
	// The author can delete their own comment.
	if code := deleteComment(author, c1); code != http.StatusNoContent {
		t.Errorf("author delete: status = %d, want 204", code)
	}
	// Deleting it again is an idempotent success.
	if code := deleteComment(author, c1); code != http.StatusNoContent {
		t.Errorf("repeat delete: status = %d, want 204", code)
	}

	// The snippet owner can moderate someone else's comment.
	c2 := addComment(author)
	if code := deleteComment(owner, c2); code != http.StatusNoContent {
		t.Errorf("owner delete: status = %d, want 204", code)
	}
}

func TestHandleDelete_OwnerOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := snippets.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	alice := f.CreateVerifiedUser(ctx, "Alice", "alice@x.com")
	bob := f.CreateVerifiedUser(ctx, "Bob", "bob@x.com")
	sn := f.CreateSnippet(ctx, alice.ID, "hello", "print(1)", "python")

	req := testutil.AuthenticatedRequest(t, "DELETE", "/snippets/"+sn.ID.Hex(), nil, bob)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner delete: status = %d, want 403", rec.Code)
	}

	req = testutil.AuthenticatedRequest(t, "DELETE", "/snippets/"+sn.ID.Hex(), nil, alice)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: status = %d, want 204", rec.Code)
	}

	// Gone means gone.
	req = testutil.AuthenticatedRequest(t, "DELETE", "/snippets/"+sn.ID.Hex(), nil, alice)
	req = testutil.WithChiURLParam(req, "id", sn.ID.Hex())
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rec.Code)
	}
}
