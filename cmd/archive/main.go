// archive copies all chatrooms and their messages from Firestore into a
// local Postgres database for offline inspection:
//
//	go run cmd/archive/main.go -project <gcp project> [-dsn <postgres dsn>]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/chatroom/contract"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"google.golang.org/api/iterator"
)

const (
	dbDriver  = "postgres"
	defaultDB = "user=user password=pass dbname=chatroom host=127.0.0.1 port=5432 sslmode=disable"
)

var schema = `
CREATE TABLE IF NOT EXISTS chatroom (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ,
	last_message_at TIMESTAMPTZ,
	last_message_preview TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS message (
	id TEXT PRIMARY KEY,
	chatroom_id TEXT NOT NULL REFERENCES chatroom(id),
	sender_uid TEXT NOT NULL,
	sender_email TEXT NOT NULL,
	content TEXT NOT NULL,
	sent_at TIMESTAMPTZ
);`

type archivedRoom struct {
	ID                 string     `db:"id"`
	CreatedAt          time.Time  `db:"created_at"`
	LastMessageAt      *time.Time `db:"last_message_at"`
	LastMessagePreview string     `db:"last_message_preview"`
}

type archivedMessage struct {
	ID          string    `db:"id"`
	ChatroomID  string    `db:"chatroom_id"`
	SenderUID   string    `db:"sender_uid"`
	SenderEmail string    `db:"sender_email"`
	Content     string    `db:"content"`
	SentAt      time.Time `db:"sent_at"`
}

func main() {
	projectPtr := flag.String("project", "", "GCP project id")
	dsnPtr := flag.String("dsn", defaultDB, "Postgres DSN")
	flag.Parse()

	if *projectPtr == "" {
		log.Fatalf("Please provide a GCP project id using the -project flag")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, *projectPtr)
	if err != nil {
		log.Fatalf("failed to create firestore client: %v", err)
	}
	defer client.Close()

	db, err := sqlx.Connect(dbDriver, *dsnPtr)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()
	db.MustExec(schema)

	rooms, messages, err := export(ctx, client, db)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("archived %d chatrooms and %d messages", rooms, messages)
}

func export(ctx context.Context, client *firestore.Client, db *sqlx.DB) (rooms, messages int, err error) {
	iter := client.Collection(contract.RoomCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return rooms, messages, nil
		}
		if err != nil {
			return rooms, messages, err
		}

		var rm contract.Room
		if err := doc.DataTo(&rm); err != nil {
			log.Printf("skipping malformed chatroom %s: %v", doc.Ref.ID, err)
			continue
		}

		_, err = db.NamedExec(
			`INSERT INTO chatroom (id, created_at, last_message_at, last_message_preview)
			 VALUES (:id, :created_at, :last_message_at, :last_message_preview)
			 ON CONFLICT (id) DO UPDATE SET
				last_message_at = EXCLUDED.last_message_at,
				last_message_preview = EXCLUDED.last_message_preview`,
			archivedRoom{
				ID:                 doc.Ref.ID,
				CreatedAt:          rm.CreatedAt,
				LastMessageAt:      rm.LastMessageAt,
				LastMessagePreview: rm.LastMessagePreview,
			},
		)
		if err != nil {
			return rooms, messages, err
		}
		rooms++

		n, err := exportMessages(ctx, db, doc.Ref)
		if err != nil {
			return rooms, messages, err
		}
		messages += n
	}
}

func exportMessages(ctx context.Context, db *sqlx.DB, roomRef *firestore.DocumentRef) (int, error) {
	count := 0
	iter := roomRef.Collection(contract.MessageCollection).OrderBy("timestamp", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		var m contract.Message
		if err := doc.DataTo(&m); err != nil {
			log.Printf("skipping malformed message %s: %v", doc.Ref.ID, err)
			continue
		}

		_, err = db.NamedExec(
			`INSERT INTO message (id, chatroom_id, sender_uid, sender_email, content, sent_at)
			 VALUES (:id, :chatroom_id, :sender_uid, :sender_email, :content, :sent_at)
			 ON CONFLICT (id) DO NOTHING`,
			archivedMessage{
				ID:          doc.Ref.ID,
				ChatroomID:  roomRef.ID,
				SenderUID:   m.SenderUID,
				SenderEmail: m.SenderEmail,
				Content:     m.Content,
				SentAt:      m.Timestamp,
			},
		)
		if err != nil {
			return count, err
		}
		count++
	}
}
