package account

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/callboard/callboard/internal/db/models"
)

func TestSignupAndLogin(t *testing.T) {
	app, _ := newTestService(t)

	resp := performRequest(t, app, http.MethodPost, RouteSignup, "",
		`{"email":"ann@example.com","displayName":"Ann","password":"correct horse"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created userOutput
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode user: %v", err)
	}

	if created.Email != "ann@example.com" || created.ID == 0 {
		t.Fatalf("unexpected signup response: %+v", created)
	}

	// same email again conflicts
	resp = performRequest(t, app, http.MethodPost, RouteSignup, "",
		`{"email":"ann@example.com","displayName":"Ann II","password":"correct horse"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", resp.StatusCode)
	}

	resp = performRequest(t, app, http.MethodPost, RouteLogin, "",
		`{"email":"ann@example.com","password":"correct horse"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = performRequest(t, app, http.MethodPost, RouteLogin, "",
		`{"email":"ann@example.com","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
}

func TestLoginReactivatesWithinGraceWindow(t *testing.T) {
	app, db := newTestService(t)

	u := seedUser(t, db, "back@example.com")
	deletedAt := time.Now().Add(-24 * time.Hour)
	u.DeletedAt = &deletedAt

	if err := db.Save(u).Error; err != nil {
		t.Fatalf("failed to soft delete user: %v", err)
	}

	resp := performRequest(t, app, http.MethodPost, RouteLogin, "",
		`{"email":"back@example.com","password":"secret"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 within the grace window, got %d", resp.StatusCode)
	}

	var reloaded models.User
	if err := db.First(&reloaded, u.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}

	if reloaded.DeletedAt != nil {
		t.Fatal("login within the grace window must clear the soft delete")
	}
}

func TestLoginRefusedAfterGraceWindow(t *testing.T) {
	app, db := newTestService(t)

	u := seedUser(t, db, "late@example.com")
	deletedAt := time.Now().Add(-31 * 24 * time.Hour)
	u.DeletedAt = &deletedAt

	if err := db.Save(u).Error; err != nil {
		t.Fatalf("failed to soft delete user: %v", err)
	}

	resp := performRequest(t, app, http.MethodPost, RouteLogin, "",
		`{"email":"late@example.com","password":"secret"}`)
	if resp.StatusCode != http.StatusGone {
		t.Fatalf("expected 410 after the grace window, got %d", resp.StatusCode)
	}

	var reloaded models.User
	if err := db.First(&reloaded, u.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}

	if reloaded.DeletedAt == nil {
		t.Fatal("refused login must not reactivate the account")
	}
}
