package callback

import (
	"testing"
	"time"
)

// dispatcher is a receiver whose handler drives the registry it lives
// in, for reentrancy tests.
type dispatcher struct {
	registry *Registry
	run      func(*dispatcher, string)
}

func dispatch(d *dispatcher, param string) {
	d.run(d, param)
}

func TestRunWhenUnlockedOutsideDispatchRunsImmediately(t *testing.T) {
	reg := NewRegistry()

	ran := false
	reg.RunWhenUnlocked(func() { ran = true })
	if !ran {
		t.Error("continuation did not run before RunWhenUnlocked returned")
	}
}

func TestRunWhenUnlockedInsideHandlerDefers(t *testing.T) {
	reg := NewRegistry()

	var order []string
	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() {
			order = append(order, "continuation")
		})
		order = append(order, "handler")
	}
	ref := Register(reg, d, dispatch).ToRefThreadBound()

	ref.Call("event")

	if len(order) != 2 || order[0] != "handler" || order[1] != "continuation" {
		t.Fatalf("order = %v, want [handler continuation]", order)
	}
}

func TestDeferredContinuationsRunInFIFOOrder(t *testing.T) {
	reg := NewRegistry()

	var order []int
	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		for i := 1; i <= 4; i++ {
			i := i
			d.registry.RunWhenUnlocked(func() {
				order = append(order, i)
			})
		}
	}
	ref := Register(reg, d, dispatch).ToRefThreadBound()

	ref.Call("event")

	if len(order) != 4 {
		t.Fatalf("ran %d continuations, want 4", len(order))
	}
	for i, got := range order {
		if got != i+1 {
			t.Fatalf("order = %v, want [1 2 3 4]", order)
		}
	}
}

func TestContinuationMayMutateRegistry(t *testing.T) {
	reg := NewRegistry()
	rcv := &receiver{}

	// A third live registration, disposed from inside another handler's
	// deferred continuation.
	third := Register(reg, rcv, handleString)
	thirdRef := third.ToRefThreadBound()

	disposedDuringInvoke := false
	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() {
			third.Dispose()
		})
		// The disposal must not have happened yet.
		disposedDuringInvoke = d.registry.Len() == 1
	}
	ref := Register(reg, d, dispatch).ToRefThreadBound()

	ref.Call("event")

	if disposedDuringInvoke {
		t.Error("continuation ran while the outer invoke was still dispatching")
	}
	thirdRef.Call("click")
	if rcv.calls != 0 {
		t.Error("disposed registration still invocable")
	}
	if got := reg.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestHandlerPanicDiscardsContinuationsAndPropagates(t *testing.T) {
	reg := NewRegistry()

	ran := false
	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() { ran = true })
		panic("handler failure")
	}
	ref := Register(reg, d, dispatch).ToRefThreadBound()

	func() {
		defer func() {
			rec := recover()
			if rec == nil {
				t.Fatal("handler panic not observed by caller")
			}
			if rec != "handler failure" {
				t.Fatalf("panic value = %v, want unchanged %q", rec, "handler failure")
			}
		}()
		ref.Call("event")
	}()

	if ran {
		t.Error("continuation ran despite handler panic")
	}

	// The registry must stay usable afterwards.
	reg.RunWhenUnlocked(func() { ran = true })
	if !ran {
		t.Error("registry left in dispatching state after panic")
	}
}

func TestNestedInvokeSharesOuterQueue(t *testing.T) {
	reg := NewRegistry()

	var order []string
	inner := &dispatcher{registry: reg}
	inner.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() {
			order = append(order, "inner continuation")
		})
		order = append(order, "inner handler")
	}
	innerRef := Register(reg, inner, dispatch).ToRefThreadBound()

	outer := &dispatcher{registry: reg}
	outer.run = func(d *dispatcher, _ string) {
		innerRef.Call("nested")
		order = append(order, "outer handler")
	}
	outerRef := Register(reg, outer, dispatch).ToRefThreadBound()

	outerRef.Call("event")

	want := []string{"inner handler", "outer handler", "inner continuation"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestNestedInvokeNotBlockedByPendingWriter(t *testing.T) {
	reg := NewRegistry()

	innerRan := false
	inner := &dispatcher{registry: reg}
	inner.run = func(*dispatcher, string) { innerRan = true }
	innerRef := Register(reg, inner, dispatch).ToRefThreadBound()

	// The outer handler queues a writer on another goroutine while it
	// holds the shared lock, gives it time to start waiting, then makes
	// a nested call on its own goroutine. The nested call must not
	// queue up behind that writer.
	registered := make(chan struct{})
	outer := &dispatcher{registry: reg}
	outer.run = func(d *dispatcher, _ string) {
		go func() {
			Register(d.registry, &receiver{}, handleString)
			close(registered)
		}()
		time.Sleep(100 * time.Millisecond)
		innerRef.Call("nested")
	}
	outerRef := Register(reg, outer, dispatch).ToRefThreadBound()

	done := make(chan struct{})
	go func() {
		outerRef.Call("event")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("nested invoke blocked behind a pending writer")
	}
	if !innerRan {
		t.Error("nested handler did not run")
	}

	select {
	case <-registered:
	case <-time.After(3 * time.Second):
		t.Fatal("pending registration never completed")
	}
	if got := reg.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestContinuationPanicMidDrainDropsTrailing(t *testing.T) {
	reg := NewRegistry()

	var ran []string
	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() { ran = append(ran, "first") })
		d.registry.RunWhenUnlocked(func() { panic("continuation failure") })
		d.registry.RunWhenUnlocked(func() { ran = append(ran, "trailing") })
	}
	ref := Register(reg, d, dispatch).ToRefThreadBound()

	func() {
		defer func() {
			rec := recover()
			if rec == nil {
				t.Fatal("continuation panic not observed by caller")
			}
			if rec != "continuation failure" {
				t.Fatalf("panic value = %v, want unchanged %q", rec, "continuation failure")
			}
		}()
		ref.Call("event")
	}()

	if len(ran) != 1 || ran[0] != "first" {
		t.Fatalf("ran = %v, want [first]", ran)
	}

	// The goroutine must be idle again: continuations run immediately.
	immediate := false
	reg.RunWhenUnlocked(func() { immediate = true })
	if !immediate {
		t.Error("registry left in dispatching state after continuation panic")
	}
}

// The worked teardown scenario: A and B registered, A disposed,
// invoking A is silent, invoking B runs once, and B's handler defers
// the disposal of a third live registration to after the invoke.
func TestTeardownScenario(t *testing.T) {
	reg := NewRegistry()

	a := &receiver{}
	b := &dispatcher{registry: reg}
	c := &receiver{}

	regA := Register(reg, a, handleString)
	refA := regA.ToRefThreadBound()

	regC := Register(reg, c, handleString)

	bCalls := 0
	var lenDuringB int
	b.run = func(d *dispatcher, param string) {
		bCalls++
		if param != "click" {
			t.Errorf("B received %q, want %q", param, "click")
		}
		d.registry.RunWhenUnlocked(func() {
			regC.Dispose()
		})
		lenDuringB = d.registry.Len()
	}
	refB := Register(reg, b, dispatch).ToRefThreadBound()

	regA.Dispose()

	refA.Call("click")
	if a.calls != 0 {
		t.Error("disposed A's handler was called")
	}

	refB.Call("click")
	if bCalls != 1 {
		t.Fatalf("B's handler called %d times, want 1", bCalls)
	}
	if lenDuringB != 2 {
		t.Errorf("C disposed before the outer invoke returned (live = %d, want 2)", lenDuringB)
	}
	if got := reg.Len(); got != 1 {
		t.Errorf("Len() after scenario = %d, want 1", got)
	}
}

func TestConcurrentInvokesDoNotSerialize(t *testing.T) {
	reg := NewRegistry()

	// Each handler signals that it started and waits for the other; if
	// invokes excluded each other this would time out.
	started := make(chan int, 2)
	release := make(chan struct{})

	type meeting struct{ id int }
	handler := func(m *meeting, _ string) {
		started <- m.id
		<-release
	}

	refs := []Ref[string]{
		Register(reg, &meeting{id: 1}, handler).ToRefThreadBound(),
		Register(reg, &meeting{id: 2}, handler).ToRefThreadBound(),
	}

	done := make(chan struct{}, 2)
	for _, ref := range refs {
		ref := ref
		go func() {
			ref.Call("event")
			done <- struct{}{}
		}()
	}

	deadline := time.After(5 * time.Second)
	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-deadline:
			t.Fatal("concurrent invokes blocked each other")
		}
	}
	close(release)
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-deadline:
			t.Fatal("invoke did not complete")
		}
	}
}

func TestConcurrentRegistrationChurn(t *testing.T) {
	reg := NewRegistry()
	rcv := &receiver{}
	stable := Register(reg, &dispatcher{registry: reg, run: func(*dispatcher, string) {}}, dispatch).ToRefThreadBound()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			Register(reg, rcv, handleString).Dispose()
		}
	}()

	for i := 0; i < 1000; i++ {
		stable.Call("event")
	}
	<-done

	if got := reg.Len(); got != 1 {
		t.Errorf("Len() after churn = %d, want 1", got)
	}
}
