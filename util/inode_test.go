package util

import (
	"sync"
	"testing"
)

func TestGetNewInode_Increments(t *testing.T) {
	first := GetNewInode()
	second := GetNewInode()
	if second != first+1 {
		t.Errorf("Second inode should be first+1: got %d, want %d", second, first+1)
	}
}

func TestGetNewInode_Concurrent(t *testing.T) {
	numGoroutines := 50
	inodesPerGoroutine := 100
	results := make(chan uint64, numGoroutines*inodesPerGoroutine)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range inodesPerGoroutine {
				results <- GetNewInode()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool)
	for inode := range results {
		if seen[inode] {
			t.Errorf("Duplicate inode found: %d", inode)
		}
		seen[inode] = true
	}
}

func TestSetInode(t *testing.T) {
	current := GetNewInode()
	SetInode(current + 1000)
	if next := GetNewInode(); next != current+1001 {
		t.Errorf("after SetInode(%d), GetNewInode() = %d, want %d", current+1000, next, current+1001)
	}
	SetInode(1)
	if next := GetNewInode(); next != current+1002 {
		t.Errorf("SetInode with a lower value should be ignored, got %d", next)
	}
}
