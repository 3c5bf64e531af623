package util

import "sync/atomic"

var highestInode atomic.Uint64

// GetNewInode returns the next process-unique inode number.
func GetNewInode() uint64 {
	return highestInode.Add(1)
}

// SetInode raises the inode counter to at least inode.
func SetInode(inode uint64) {
	for {
		cur := highestInode.Load()
		if inode <= cur || highestInode.CompareAndSwap(cur, inode) {
			return
		}
	}
}
