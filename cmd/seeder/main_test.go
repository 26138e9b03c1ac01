package main

import (
	"testing"

	seeduc "github.com/kailas-cloud/peoplefinder/internal/usecase/seed"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"-f", "people.json", "--reset", "--batch-size", "50"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	file, _ := cmd.Flags().GetString("file")
	reset, _ := cmd.Flags().GetBool("reset")
	size, _ := cmd.Flags().GetInt("batch-size")
	if file != "people.json" || !reset || size != 50 {
		t.Errorf("unexpected flags: file=%q reset=%v batch=%d", file, reset, size)
	}
}

func TestRootCmd_Defaults(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	size, _ := cmd.Flags().GetInt("batch-size")
	if size != seeduc.DefaultBatchSize {
		t.Errorf("expected default batch size %d, got %d", seeduc.DefaultBatchSize, size)
	}
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		t.Error("reset must default to false")
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("expected positional arguments to be rejected")
	}
}
