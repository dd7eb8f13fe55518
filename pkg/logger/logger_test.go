package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewDefaultsToInfoLevel(t *testing.T) {
	log := New(LoggingConfig{Level: "nonsense"})
	if log.Logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level fallback, got %v", log.Logger.GetLevel())
	}
}

func TestJSONFormatCarriesFields(t *testing.T) {
	log := New(LoggingConfig{Format: "json"})
	var buf bytes.Buffer
	log.Logger.SetOutput(&buf)

	log.WithField("service", "meetings").WithField("meeting_id", 7).Info("meeting created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["service"] != "meetings" {
		t.Fatalf("expected service field, got %v", entry)
	}
	if entry["msg"] != "meeting created" {
		t.Fatalf("expected message, got %v", entry)
	}
}

func TestNewDefaultTagsComponent(t *testing.T) {
	log := NewDefault("mesh")
	if log.Entry.Data["component"] != "mesh" {
		t.Fatalf("expected component field, got %v", log.Entry.Data)
	}
}
