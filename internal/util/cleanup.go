package util

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// PartialSuffix marks files still being written.
const PartialSuffix = ".part"

// SetupInterruptHandler cancels the returned context on SIGINT/SIGTERM and
// removes unfinished downloads from downloadsDir before exiting.
func SetupInterruptHandler(parent context.Context, downloadsDir string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
		case <-ctx.Done():
			signal.Stop(sig)
			return
		}

		fmt.Println("\nInterrupt received. Cleaning up...")
		cancel()

		removed, err := CleanupPartialFiles(downloadsDir)
		for _, p := range removed {
			fmt.Printf("Removed %s\n", p)
		}
		if err != nil {
			fmt.Printf("Error cleaning up: %v\n", err)
		}
		if RemoveIfEmpty(downloadsDir) {
			fmt.Printf("Removed empty folder: %s\n", downloadsDir)
		}
		fmt.Println("Exiting due to interrupt.")

		os.Exit(1)
	}()

	return ctx, func() {
		signal.Stop(sig)
		cancel()
	}
}

// CleanupPartialFiles deletes unfinished downloads in dir and returns the
// removed paths.
func CleanupPartialFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+PartialSuffix))
	if err != nil {
		return nil, err
	}

	var removed []string
	var errs []error
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, m)
	}

	return removed, errors.Join(errs...)
}

// RemoveIfEmpty deletes dir when it has no entries.
func RemoveIfEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return false
	}

	return os.Remove(dir) == nil
}
