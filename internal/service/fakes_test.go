package service

import (
	"context"
	"errors"

	"landing-gen-go/internal/fetcher"
)

type fakeScraper struct {
	resp  fetcher.ProviderResponse
	err   error
	calls []string
}

func (f *fakeScraper) Scrape(ctx context.Context, url string) (fetcher.ProviderResponse, error) {
	f.calls = append(f.calls, url)
	return f.resp, f.err
}

type searchCall struct {
	query string
	limit int
}

type fakeSearcher struct {
	resp  fetcher.ProviderResponse
	err   error
	calls []searchCall
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) (fetcher.ProviderResponse, error) {
	f.calls = append(f.calls, searchCall{query, limit})
	return f.resp, f.err
}

type fakeLLM struct {
	out  string
	err  error
	reqs []fetcher.CompletionRequest
}

func (f *fakeLLM) Complete(ctx context.Context, req fetcher.CompletionRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.out, f.err
}

type recordedStep struct {
	progress int
	action   string
}

type recordingProgress struct {
	steps []recordedStep
}

func (r *recordingProgress) SetAction(progress int, action string) error {
	r.steps = append(r.steps, recordedStep{progress, action})
	return nil
}

type failingProgress struct {
	calls int
}

func (f *failingProgress) SetAction(int, string) error {
	f.calls++
	return errors.New("broken pipe")
}
