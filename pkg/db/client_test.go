package db

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestClient(t *testing.T) *Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := conn.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`).Error; err != nil {
		t.Fatalf("creating table: %v", err)
	}
	client := NewWithConn(conn)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func countItems(t *testing.T, client *Client) int64 {
	t.Helper()
	var count int64
	if err := client.DB().Table("items").Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	return count
}

func TestWithTxCommits(t *testing.T) {
	client := openTestClient(t)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO items (name) VALUES ('widget')`).Error
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := countItems(t, client); got != 1 {
		t.Fatalf("expected 1 row after commit, got %d", got)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := openTestClient(t)

	wantErr := fmt.Errorf("abort")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO items (name) VALUES ('widget')`).Error; err != nil {
			return err
		}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected abort error, got %v", err)
	}

	if got := countItems(t, client); got != 0 {
		t.Fatalf("expected rollback to discard the insert, got %d rows", got)
	}
}

func TestPing(t *testing.T) {
	client := openTestClient(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
