package core

import (
	"runtime"
	"sync"
	"time"
)

// Record represents a single log event with all its metadata.
type Record struct {
	Time       time.Time
	InstanceID string
	ThreadName string
	Severity   Severity
	Origin     Origin
	Message    string
}

// Origin describes the call site that produced a record.
type Origin struct {
	File    string
	Line    int
	Defined bool
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{}
	},
}

// GetRecord retrieves a Record from the pool with its Time set to now.
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	return r
}

// PutRecord returns a Record to the pool.
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	r.InstanceID = ""
	r.ThreadName = ""
	r.Message = ""
	r.Origin = Origin{}
	recordPool.Put(r)
}

// CaptureOrigin retrieves the call site skip frames up the stack.
// It returns a zero Origin (Defined false) when the runtime cannot
// resolve the caller.
func CaptureOrigin(skip int) Origin {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Origin{}
	}
	return Origin{File: file, Line: line, Defined: true}
}
