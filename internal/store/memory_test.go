package store

import (
	"sync"
	"testing"
	"time"
)

func TestNewMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if store == nil {
		t.Fatal("NewMemoryStore() = nil")
	}

	if len(store.GetAll()) != 0 {
		t.Errorf("GetAll() = %v items, want 0", len(store.GetAll()))
	}
	if len(store.Definitions()) != 0 {
		t.Errorf("Definitions() = %v items, want 0", len(store.Definitions()))
	}
}

func TestMemoryStore_Write(t *testing.T) {
	store := NewMemoryStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	store.Write("current_temperature", 12.5, true)

	got, ok := store.Get("current_temperature")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	want := State{Name: "current_temperature", Value: 12.5, Ack: true, UpdatedAt: fixed}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestMemoryStore_WriteNil(t *testing.T) {
	store := NewMemoryStore()

	store.Write("error", nil, true)

	got, ok := store.Get("error")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Value != nil {
		t.Errorf("Value = %v, want nil", got.Value)
	}
}

func TestMemoryStore_WriteOverwrites(t *testing.T) {
	store := NewMemoryStore()

	store.Write("error", "invalid key", true)
	store.Write("error", nil, true)

	all := store.GetAll()
	if len(all) != 1 {
		t.Fatalf("GetAll() = %v items, want 1", len(all))
	}
	if all[0].Value != nil {
		t.Errorf("GetAll()[0].Value = %v, want nil", all[0].Value)
	}
}

func TestMemoryStore_GetAllSorted(t *testing.T) {
	store := NewMemoryStore()

	store.Write("day_temp_max", 20.0, true)
	store.Write("current_temperature", 12.0, true)
	store.Write("error", nil, true)

	all := store.GetAll()
	if len(all) != 3 {
		t.Fatalf("GetAll() = %v items, want 3", len(all))
	}
	want := []string{"current_temperature", "day_temp_max", "error"}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("GetAll()[%d].Name = %v, want %v", i, all[i].Name, name)
		}
	}
}

func TestMemoryStore_Define(t *testing.T) {
	store := NewMemoryStore()

	store.Define(
		Definition{Name: "error", Type: "string", Role: "value"},
		Definition{Name: "current_humidity", Type: "number", Role: "value", Unit: "%"},
	)
	store.Define(Definition{Name: "current_humidity", Type: "number", Role: "value", Unit: "percent"})

	defs := store.Definitions()
	if len(defs) != 2 {
		t.Fatalf("Definitions() = %v items, want 2", len(defs))
	}
	if defs[0].Name != "current_humidity" || defs[0].Unit != "percent" {
		t.Errorf("Definitions()[0] = %+v, want redefined current_humidity", defs[0])
	}
	if defs[1].Name != "error" {
		t.Errorf("Definitions()[1].Name = %v, want error", defs[1].Name)
	}
}

func TestMemoryStore_Subscribe(t *testing.T) {
	store := NewMemoryStore()

	ch := store.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe() = nil")
	}

	go func() {
		store.Write("current_temperature", 3.0, true)
	}()

	select {
	case state := <-ch:
		if state.Name != "current_temperature" {
			t.Errorf("received Name = %v, want %v", state.Name, "current_temperature")
		}
	case <-time.After(1 * time.Second):
		t.Error("Subscribe() channel did not receive update")
	}
}

func TestMemoryStore_MultipleSubscribers(t *testing.T) {
	store := NewMemoryStore()

	ch1 := store.Subscribe()
	ch2 := store.Subscribe()
	ch3 := store.Subscribe()

	// write should fanout to all subscribers
	go func() {
		store.Write("error", nil, true)
	}()

	received := 0
	timeout := time.After(1 * time.Second)

	for received < 3 {
		select {
		case <-ch1:
			received++
		case <-ch2:
			received++
		case <-ch3:
			received++
		case <-timeout:
			t.Fatalf("Only received %d/3 updates", received)
		}
	}
}

func TestMemoryStore_Unsubscribe(t *testing.T) {
	store := NewMemoryStore()

	ch := store.Subscribe()
	store.Unsubscribe(ch)
	store.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Unsubscribe() channel should be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Unsubscribe() channel should be closed immediately")
	}
}

func TestMemoryStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewMemoryStore()

	// create a subscriber but don't read from it
	_ = store.Subscribe()

	ch2 := store.Subscribe()

	done := make(chan bool)

	go func() {
		// more writes than one tick produces, past the buffer size
		for i := 0; i < 2*subscriberBuffer; i++ {
			store.Write("current_temperature", float64(i), true)
		}
		done <- true
	}()

	go func() {
		for range ch2 {
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Write() blocked on slow subscriber")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	numGoroutines := 10
	numWrites := 100

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numWrites; j++ {
				store.Write("current_temperature", float64(j), true)
				store.Define(Definition{Name: "current_temperature", Type: "number"})
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numWrites; j++ {
				_ = store.GetAll()
				_, _ = store.Get("current_temperature")
				_ = store.Definitions()
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := store.Subscribe()
			time.Sleep(10 * time.Millisecond)
			store.Unsubscribe(ch)
		}()
	}

	wg.Wait()
}
