// Package testutil provides fakes shared across package tests.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Call records a single request issued through the StubGateway.
type Call struct {
	Method string
	Path   string
	Body   any
}

// Response is a scripted reply for a method+path pair. Out is JSON-encoded
// into the caller's out value when both are non-nil.
type Response struct {
	Out any
	Err error
}

// StubGateway replays scripted responses and records every call. Paths with
// no scripted response succeed with an empty body, so tests only script the
// requests they care about.
type StubGateway struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

func NewStubGateway() *StubGateway {
	return &StubGateway{responses: make(map[string]Response)}
}

// Respond scripts the reply for the given method and path.
func (g *StubGateway) Respond(method, path string, out any, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[method+" "+path] = Response{Out: out, Err: err}
}

// Calls returns a copy of the recorded calls in order.
func (g *StubGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// CallCount returns the number of recorded calls for the method and path.
func (g *StubGateway) CallCount(method, path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	count := 0
	for _, c := range g.calls {
		if c.Method == method && c.Path == path {
			count++
		}
	}
	return count
}

func (g *StubGateway) do(method, path string, body, out any) error {
	g.mu.Lock()
	g.calls = append(g.calls, Call{Method: method, Path: path, Body: body})
	resp, ok := g.responses[method+" "+path]
	g.mu.Unlock()

	if !ok {
		return nil
	}
	if resp.Err != nil {
		return resp.Err
	}
	if resp.Out == nil || out == nil {
		return nil
	}

	data, err := json.Marshal(resp.Out)
	if err != nil {
		return fmt.Errorf("encoding scripted response for %s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding scripted response for %s %s: %w", method, path, err)
	}
	return nil
}

func (g *StubGateway) Get(ctx context.Context, path string, out any) error {
	return g.do("GET", path, nil, out)
}

func (g *StubGateway) Post(ctx context.Context, path string, body, out any) error {
	return g.do("POST", path, body, out)
}

func (g *StubGateway) Put(ctx context.Context, path string, body, out any) error {
	return g.do("PUT", path, body, out)
}

func (g *StubGateway) Delete(ctx context.Context, path string, out any) error {
	return g.do("DELETE", path, nil, out)
}

// StubClock returns a fixed time, advanced explicitly by tests.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
