package core

import (
	"strings"
	"testing"
	"time"
)

func TestGetRecordSetsTime(t *testing.T) {
	before := time.Now()
	r := GetRecord()
	after := time.Now()

	if r.Time.Before(before) || r.Time.After(after) {
		t.Errorf("GetRecord time %v outside [%v, %v]", r.Time, before, after)
	}
	PutRecord(r)
}

func TestPutRecordClearsFields(t *testing.T) {
	r := GetRecord()
	r.InstanceID = "instance"
	r.ThreadName = "worker"
	r.Message = "hello"
	r.Origin = Origin{File: "a.go", Line: 1, Defined: true}
	PutRecord(r)

	// The pool may hand back the same object; whatever comes out must
	// be clean.
	r2 := GetRecord()
	defer PutRecord(r2)
	if r2.InstanceID != "" || r2.ThreadName != "" || r2.Message != "" || r2.Origin.Defined {
		t.Errorf("pooled record not cleared: %+v", r2)
	}
}

func TestPutRecordNil(t *testing.T) {
	// Must not panic
	PutRecord(nil)
}

func TestCaptureOrigin(t *testing.T) {
	origin := CaptureOrigin(1)
	if !origin.Defined {
		t.Fatal("CaptureOrigin(1) not defined")
	}
	if !strings.HasSuffix(origin.File, "record_test.go") {
		t.Errorf("origin file = %q, want this test file", origin.File)
	}
	if origin.Line <= 0 {
		t.Errorf("origin line = %d, want positive", origin.Line)
	}
}

func TestCaptureOriginTooDeep(t *testing.T) {
	origin := CaptureOrigin(10_000)
	if origin.Defined {
		t.Errorf("expected undefined origin for absurd skip, got %+v", origin)
	}
}
