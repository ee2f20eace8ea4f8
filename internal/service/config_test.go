package service_test

import (
	"testing"
	"time"

	"github.com/omriBer/diet/internal/service"
)

func TestConfigSetGet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, ok, err := service.GetConfig(db, service.ConfigTimezone); err != nil || ok {
		t.Fatalf("expected unset timezone, got ok=%v err=%v", ok, err)
	}
	if err := service.SetConfig(db, " Greeting ", " shalom "); err != nil {
		t.Fatalf("set config: %v", err)
	}
	v, ok, err := service.GetConfig(db, "greeting")
	if err != nil || !ok || v != "shalom" {
		t.Fatalf("expected normalized key and trimmed value, got %q ok=%v err=%v", v, ok, err)
	}
	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if all["greeting"] != "shalom" {
		t.Fatalf("unexpected config list: %+v", all)
	}
	if err := service.SetConfig(db, "  ", "x"); err == nil {
		t.Fatalf("expected empty key error")
	}
}

func TestTimezoneConfig(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	loc, err := service.Location(db)
	if err != nil {
		t.Fatalf("default location: %v", err)
	}
	if loc != time.Local {
		t.Fatalf("expected local time by default, got %v", loc)
	}

	if err := service.SetTimezone(db, "Not/AZone"); err == nil {
		t.Fatalf("expected invalid timezone error")
	}
	if err := service.SetTimezone(db, "UTC"); err != nil {
		t.Fatalf("set timezone: %v", err)
	}
	loc, err = service.Location(db)
	if err != nil {
		t.Fatalf("configured location: %v", err)
	}
	if loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
