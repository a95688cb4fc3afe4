package model_test

import (
	"sync"
	"testing"

	"github.com/ezoic/evalharness/core/model"
)

func TestStateManagerLifecycle(t *testing.T) {
	sm := model.NewStateManager()

	if sm.IsFitted() {
		t.Error("new StateManager must not be fitted")
	}
	if err := sm.RequireFitted(); err == nil {
		t.Error("RequireFitted must fail before fitting")
	}

	sm.SetFitted()
	sm.SetDimensions(3, 100)

	if !sm.IsFitted() {
		t.Error("expected fitted state")
	}
	if err := sm.RequireFitted(); err != nil {
		t.Errorf("RequireFitted failed after fitting: %v", err)
	}
	if f, s := sm.GetDimensions(); f != 3 || s != 100 {
		t.Errorf("expected dimensions (3, 100), got (%d, %d)", f, s)
	}

	sm.Reset()
	if sm.IsFitted() {
		t.Error("Reset must clear fitted state")
	}
	if f, s := sm.GetDimensions(); f != 0 || s != 0 {
		t.Errorf("Reset must clear dimensions, got (%d, %d)", f, s)
	}
}

func TestStateManagerConcurrentAccess(t *testing.T) {
	sm := model.NewStateManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sm.SetFitted()
		}()
		go func() {
			defer wg.Done()
			_ = sm.IsFitted()
		}()
	}
	wg.Wait()

	if !sm.IsFitted() {
		t.Error("expected fitted state after concurrent writes")
	}
}
