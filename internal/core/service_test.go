package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/streamgraph/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxFileSize:   1 << 20,
			MaxConcurrent: 2,
			MaxWaitTime:   time.Second,
			Timeout:       5 * time.Second,
		},
		Chart: config.ChartConfig{
			Entities: []string{
				"LLaMA-3.1=#ff7f00", "Claude=#984ea3", "PaLM-2=#4daf4a", "Gemini=#377eb8", "GPT-4=#e41a1c",
			},
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(testConfig())
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestNewService_InvalidEntities(t *testing.T) {
	cfg := testConfig()
	cfg.Chart.Entities = []string{"GPT-4=red"}
	if _, err := NewService(cfg); err == nil {
		t.Error("expected error for invalid entity color")
	}
}

func TestService_UploadReplacesDataset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Dataset("s1"); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("expected ErrNoDataset before upload, got %v", err)
	}

	first, err := svc.Upload(ctx, "s1", "a.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	second, err := svc.Upload(ctx, "s1", "b.csv", strings.NewReader("Date,GPT-4\n1/1/24,1\n"))
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}
	if first.ID == second.ID {
		t.Error("each upload should produce a new dataset ID")
	}

	got, err := svc.Dataset("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FileName != "b.csv" || got.Len() != 1 {
		t.Errorf("current dataset = %q with %d rows, want b.csv with 1", got.FileName, got.Len())
	}
	if svc.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d, want 1", svc.SessionCount())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestService_FailedUploadKeepsPrevious(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "s1", "good.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Upload(ctx, "s1", "bad.csv", failingReader{}); err == nil {
		t.Fatal("expected read error")
	}

	got, err := svc.Dataset("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FileName != "good.csv" {
		t.Errorf("dataset = %q, want good.csv", got.FileName)
	}
}

// blockingReader serves a header and then blocks until released.
type blockingReader struct {
	header  io.Reader
	release chan struct{}
	rest    io.Reader
}

func (b *blockingReader) Read(p []byte) (int, error) {
	if n, err := b.header.Read(p); n > 0 || err != io.EOF {
		return n, err
	}
	<-b.release
	return b.rest.Read(p)
}

func TestService_NewerUploadSupersedesSlowOne(t *testing.T) {
	ContextCheckInterval = 1
	defer func() { ContextCheckInterval = 100 }()

	svc := newTestService(t)
	ctx := context.Background()

	slow := &blockingReader{
		header:  strings.NewReader("Date,GPT-4\n"),
		release: make(chan struct{}),
		rest:    strings.NewReader("1/1/24,1\n2/1/24,2\n"),
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Upload(ctx, "s1", "slow.csv", slow)
		errCh <- err
	}()

	// Give the slow read time to start and block.
	time.Sleep(50 * time.Millisecond)

	if _, err := svc.Upload(ctx, "s1", "fast.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("fast Upload: %v", err)
	}
	close(slow.release)

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrStaleUpload) {
			t.Errorf("slow upload error = %v, want ErrStaleUpload", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("slow upload never returned")
	}

	got, _ := svc.Dataset("s1")
	if got.FileName != "fast.csv" {
		t.Errorf("dataset = %q, want fast.csv", got.FileName)
	}
}

func TestService_RunSweep(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Upload(context.Background(), "s1", "a.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}

	svc.runSweep(time.Hour)
	if svc.SessionCount() != 1 {
		t.Fatalf("fresh session evicted")
	}

	svc.sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	svc.runSweep(time.Hour)
	if svc.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0 after sweep", svc.SessionCount())
	}
}

func TestService_WaitForReadsIdle(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.WaitForReads(ctx); err != nil {
		t.Errorf("WaitForReads on idle service: %v", err)
	}
	if got := svc.ReadStatus().MaxConcurrent; got != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", got)
	}
}
