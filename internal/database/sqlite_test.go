package database

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	conn, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "routes.db")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	m := NewMigrationManager(conn)
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	// second run is a no-op
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if !applied[1] || len(applied) != 1 {
		t.Errorf("applied = %v, want only version 1", applied)
	}

	for _, table := range []string{"trips", "track_points", "planned_waypoints"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
