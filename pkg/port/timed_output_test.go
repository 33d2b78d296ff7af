package port

import (
	"sync"
	"testing"
	"time"

	"github.com/flowrun/flow/pkg/engine"
)

func TestTimedOutput_CoalescesBurstsToLatest(t *testing.T) {
	e := engine.New(engine.Config{})

	out := NewTimedOutput[int](e, 30*time.Millisecond)

	var mu sync.Mutex
	var received []int
	Connect[int](out, NewDirectInput[int](func(v int) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	}))

	go e.Run(1)
	defer e.Stop()

	for i := 1; i <= 5; i++ {
		out.Write(i)
	}
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(received) == 0 {
		t.Fatalf("no broadcast happened")
	}
	for _, v := range received {
		if v != 5 {
			t.Errorf("broadcast value %d, want only the latest write (5)", v)
		}
	}
}

func TestTimedOutput_NoBroadcastWithoutAWrite(t *testing.T) {
	e := engine.New(engine.Config{})

	out := NewTimedOutput[int](e, 20*time.Millisecond)

	var mu sync.Mutex
	var received []int
	Connect[int](out, NewDirectInput[int](func(v int) {
		mu.Lock()
		received = append(received, v)
		mu.Unlock()
	}))

	go e.Run(1)
	defer e.Stop()

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 0 {
		t.Errorf("received %v, want no broadcasts with no write", received)
	}
}
