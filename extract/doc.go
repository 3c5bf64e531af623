// Package extract copies archive members into a flat staging directory in
// the background.
//
// A preview build hands the file entries of one archive to a Scheduler, which
// wraps them in a single Task and queues it on a shared Pool. The caller gets
// a task ID back immediately and never waits. Each Task writes its members
// under their synthesized keys, logs and skips members that fail, then closes
// the archive and deletes the source file.
//
// Keys are unique within one archive but not across archives. Two tasks that
// stage the same key overwrite each other; whichever finishes last wins.
package extract
