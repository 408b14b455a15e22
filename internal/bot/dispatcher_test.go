package bot_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"subburn/internal/bot"
	"subburn/internal/logging"
	"subburn/internal/services/telegram"
	"subburn/internal/workflow"
)

type fakeAPI struct {
	mu       sync.Mutex
	batches  [][]telegram.Update
	offsets  []int64
	sent     []string
	files    map[string]string
	payloads map[string][]byte
	onDrain  func()
}

func (f *fakeAPI) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	var batch []telegram.Update
	if len(f.batches) > 0 {
		batch = f.batches[0]
		f.batches = f.batches[1:]
	}
	drained := len(f.batches) == 0
	onDrain := f.onDrain
	f.mu.Unlock()
	if batch == nil {
		if drained && onDrain != nil {
			onDrain()
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return batch, nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeAPI) GetFile(ctx context.Context, fileID string) (telegram.File, error) {
	path, ok := f.files[fileID]
	if !ok {
		return telegram.File{}, errors.New("unknown file id")
	}
	return telegram.File{FileID: fileID, FilePath: path}, nil
}

func (f *fakeAPI) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	data, ok := f.payloads[filePath]
	if !ok {
		return nil, errors.New("unknown file path")
	}
	return data, nil
}

func (f *fakeAPI) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeSubmitter struct {
	mu       sync.Mutex
	requests []workflow.Request
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, req workflow.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "job-1", nil
}

func (f *fakeSubmitter) submitted() []workflow.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]workflow.Request(nil), f.requests...)
}

func videoUpdate(updateID, chatID int64, fileID, fileName string) telegram.Update {
	return telegram.Update{
		UpdateID: updateID,
		Message: &telegram.Message{
			Chat:  telegram.Chat{ID: chatID},
			Video: &telegram.Video{FileID: fileID, FileName: fileName},
		},
	}
}

func runDispatcher(t *testing.T, api *fakeAPI, submitter *fakeSubmitter) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	api.onDrain = cancel
	dispatcher := bot.NewDispatcher(api, submitter, 1, logging.NewNop())

	done := make(chan error, 1)
	go func() { done <- dispatcher.Run(ctx) }()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestDispatcherRepliesToStart(t *testing.T) {
	api := &fakeAPI{
		batches: [][]telegram.Update{{
			{UpdateID: 1, Message: &telegram.Message{Chat: telegram.Chat{ID: 5}, Text: "/start"}},
		}},
	}
	submitter := &fakeSubmitter{}
	runDispatcher(t, api, submitter)

	sent := api.sentMessages()
	if len(sent) != 1 {
		t.Fatalf("got %d replies, want 1", len(sent))
	}
	if len(submitter.submitted()) != 0 {
		t.Fatal("start command must not submit a job")
	}
}

func TestDispatcherSubmitsVideo(t *testing.T) {
	api := &fakeAPI{
		batches:  [][]telegram.Update{{videoUpdate(10, 5, "file-1", "holiday.mp4")}},
		files:    map[string]string{"file-1": "videos/holiday.mp4"},
		payloads: map[string][]byte{"videos/holiday.mp4": []byte("media")},
	}
	submitter := &fakeSubmitter{}
	runDispatcher(t, api, submitter)

	requests := submitter.submitted()
	if len(requests) != 1 {
		t.Fatalf("got %d submissions, want 1", len(requests))
	}
	req := requests[0]
	if req.ChatID != 5 || req.Filename != "holiday.mp4" {
		t.Fatalf("request = %+v", req)
	}
	if req.Fetch == nil {
		t.Fatal("request missing fetch hook")
	}
	data, err := req.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "media" {
		t.Fatalf("fetched %q", data)
	}
}

func TestDispatcherSendsBusyNotice(t *testing.T) {
	api := &fakeAPI{
		batches: [][]telegram.Update{{videoUpdate(10, 5, "file-1", "clip.mp4")}},
	}
	submitter := &fakeSubmitter{err: workflow.ErrBusy}
	runDispatcher(t, api, submitter)

	sent := api.sentMessages()
	if len(sent) != 1 || sent[0] != workflow.BusyNotice {
		t.Fatalf("sent = %v, want busy notice", sent)
	}
}

func TestDispatcherAdvancesOffset(t *testing.T) {
	api := &fakeAPI{
		batches: [][]telegram.Update{
			{{UpdateID: 7, Message: &telegram.Message{Chat: telegram.Chat{ID: 1}, Text: "hi"}}},
			{{UpdateID: 9, Message: &telegram.Message{Chat: telegram.Chat{ID: 1}, Text: "hi"}}},
		},
	}
	runDispatcher(t, api, &fakeSubmitter{})

	if len(api.offsets) < 3 {
		t.Fatalf("offsets = %v", api.offsets)
	}
	if api.offsets[1] != 8 || api.offsets[2] != 10 {
		t.Fatalf("offsets = %v, want confirmation after each batch", api.offsets)
	}
}
