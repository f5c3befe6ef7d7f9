package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studylist/studylist-sync/internal/model"
)

func TestCreateUserSeedsDefaultTopic(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	got, err := svc.CreateUser(context.Background(), &model.User{ExternalID: "uid1", Email: "a@b.c", Name: "A"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got.Bio != model.DefaultBio {
		t.Fatalf("bio not defaulted: %q", got.Bio)
	}
	if len(got.Topics) != 1 || got.Topics[0].Name != model.DefaultTopicName {
		t.Fatalf("default topic not seeded: %+v", got.Topics)
	}
	if got.Topics[0].ID == "" {
		t.Fatal("seeded topic missing id")
	}
	if got.Topics[0].Categories.Webpage == nil || got.Topics[0].Categories.Podcast == nil {
		t.Fatal("seeded topic missing buckets")
	}
}

func TestCreateUserKeepsSuppliedTopics(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs)

	topics := []model.Topic{model.NewTopic("Imported", time.Now().UTC())}
	got, err := svc.CreateUser(context.Background(), &model.User{ExternalID: "uid1", Topics: topics})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if len(got.Topics) != 1 || got.Topics[0].Name != "Imported" {
		t.Fatalf("supplied topics replaced: %+v", got.Topics)
	}
	if got.Topics[0].ID == "" {
		t.Fatal("supplied topic should receive an id")
	}
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs)

	if _, err := svc.CreateUser(context.Background(), &model.User{ExternalID: "uid1"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := svc.CreateUser(context.Background(), &model.User{ExternalID: "uid1"})
	if !errors.Is(err, model.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs)
	if _, err := svc.CreateUser(context.Background(), &model.User{ExternalID: "uid1", Name: "Old"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	got, err := svc.UpdateProfile(context.Background(), "uid1", "New", "hello")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "New" || got.Bio != "hello" {
		t.Fatalf("profile not updated: %+v", got)
	}
}
