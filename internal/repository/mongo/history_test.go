package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"blueprint/internal/domain/models"
)

func historyNamespace(mt *mtest.T) string {
	return mt.DB.Name() + ".test_chat_history"
}

// insertedDocs pulls the documents array out of a captured insert command.
func insertedDocs(mt *mtest.T, command bson.Raw) []bson.Raw {
	mt.Helper()
	values, err := command.Lookup("documents").Array().Values()
	if err != nil {
		mt.Fatalf("reading insert documents: %v", err)
	}
	docs := make([]bson.Raw, 0, len(values))
	for _, v := range values {
		docs = append(docs, v.Document())
	}
	return docs
}

func TestHistoryAppend_SessionKey(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("message is stored under the composite key", func(mt *mtest.T) {
		repo := NewHistoryRepository(testRepoConfig(mt))

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		msg := models.HumanMessage("hello there")
		if err := repo.Append(context.Background(), "owner-1", "conv-2", msg); err != nil {
			mt.Fatalf("Append failed: %v", err)
		}

		events := mt.GetAllStartedEvents()
		if len(events) != 1 || events[0].CommandName != "insert" {
			mt.Fatalf("expected a single insert command, got %d events", len(events))
		}
		docs := insertedDocs(mt, events[0].Command)
		if len(docs) != 1 {
			mt.Fatalf("expected 1 document, got %d", len(docs))
		}
		if got := docs[0].Lookup("session_id").StringValue(); got != "owner-1_conv-2" {
			mt.Errorf("session_id = %q, want %q", got, "owner-1_conv-2")
		}
		if got := docs[0].Lookup("content").StringValue(); got != "hello there" {
			mt.Errorf("content = %q, want %q", got, "hello there")
		}
	})
}

func TestHistoryMessages_OrderedRead(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the session history in append order", func(mt *mtest.T) {
		repo := NewHistoryRepository(testRepoConfig(mt))

		now := time.Now().UTC()
		first := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "session_id", Value: "owner-1_conv-2"},
			{Key: "type", Value: "human"},
			{Key: "content", Value: "hi"},
			{Key: "created_at", Value: now},
		}
		second := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "session_id", Value: "owner-1_conv-2"},
			{Key: "type", Value: "ai"},
			{Key: "content", Value: "hello"},
			{Key: "created_at", Value: now},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, historyNamespace(mt), mtest.FirstBatch, first, second))

		msgs, err := repo.Messages(context.Background(), "owner-1", "conv-2")
		if err != nil {
			mt.Fatalf("Messages failed: %v", err)
		}
		if len(msgs) != 2 {
			mt.Fatalf("expected 2 messages, got %d", len(msgs))
		}
		if msgs[0].Role != models.RoleHuman || msgs[0].Content != "hi" {
			mt.Errorf("unexpected first message: %+v", msgs[0])
		}
		if msgs[1].Role != models.RoleAI || msgs[1].Content != "hello" {
			mt.Errorf("unexpected second message: %+v", msgs[1])
		}
	})
}

func TestHistoryRebuild(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("clears the session then reinserts canonical order", func(mt *mtest.T) {
		repo := NewHistoryRepository(testRepoConfig(mt))

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(),
		)

		msgs := []models.Message{
			models.SystemMessage("instructions"),
			models.HumanMessage("hi"),
			models.AIMessage("hello"),
		}
		if err := repo.Rebuild(context.Background(), "owner-1", "conv-2", msgs); err != nil {
			mt.Fatalf("Rebuild failed: %v", err)
		}

		events := mt.GetAllStartedEvents()
		if len(events) != 2 {
			mt.Fatalf("expected delete then insert, got %d commands", len(events))
		}
		if events[0].CommandName != "delete" || events[1].CommandName != "insert" {
			mt.Fatalf("command order = %s, %s; want delete, insert", events[0].CommandName, events[1].CommandName)
		}

		docs := insertedDocs(mt, events[1].Command)
		if len(docs) != len(msgs) {
			mt.Fatalf("expected %d reinserted documents, got %d", len(msgs), len(docs))
		}
		for i, want := range msgs {
			if got := docs[i].Lookup("type").StringValue(); got != string(want.Role) {
				mt.Errorf("document %d role = %q, want %q", i, got, want.Role)
			}
			if got := docs[i].Lookup("session_id").StringValue(); got != "owner-1_conv-2" {
				mt.Errorf("document %d session_id = %q", i, got)
			}
		}
	})

	mt.Run("empty canonical state only clears", func(mt *mtest.T) {
		repo := NewHistoryRepository(testRepoConfig(mt))

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		if err := repo.Rebuild(context.Background(), "owner-1", "conv-2", nil); err != nil {
			mt.Fatalf("Rebuild failed: %v", err)
		}

		events := mt.GetAllStartedEvents()
		if len(events) != 1 || events[0].CommandName != "delete" {
			mt.Fatalf("expected only a delete command, got %d events", len(events))
		}
	})
}
