package pager

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDocumentAppendAndBlocks(t *testing.T) {
	var doc Document
	doc.Append([]string{"h1", "h2"})
	doc.Append([]string{"a"})
	doc.Append([]string{"b1", "b2", "b3"})

	if doc.Len() != 3 {
		t.Fatalf("expected 3 blocks, got %d", doc.Len())
	}
	if doc.LineCount() != 6 {
		t.Fatalf("expected 6 lines, got %d", doc.LineCount())
	}
	if got := doc.Block(2); len(got) != 3 || got[0] != "b1" {
		t.Fatalf("unexpected last block: %q", got)
	}
	if got := doc.Block(1); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected middle block: %q", got)
	}
	if doc.String() != "h1\nh2\na\nb1\nb2\nb3" {
		t.Fatalf("unexpected content: %q", doc.String())
	}
}

func TestDocumentSearchIgnoresStyles(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	var doc Document
	doc.Append([]string{"│1       │" + red.Render("read1") + " Length: 4", "│        │ACGT"})
	doc.Append([]string{"│2       │" + red.Render("Read2") + " Length: 4", "│        │TTGA"})

	cases := []struct {
		query    string
		from     int
		backward bool
		want     int
		found    bool
	}{
		{"read1", 0, false, 0, true},
		{"read2", 0, false, 2, true},
		{"Read2", 0, false, 2, true},
		{"READ1", 0, false, -1, false},
		{"length", 1, false, 2, true},
		{"length", 1, true, 0, true},
		{"ACGT", 2, false, -1, false},
		{"TTGA", 99, true, 3, true},
		{"", 0, false, -1, false},
	}
	for _, tc := range cases {
		got, ok := doc.Search(tc.query, tc.from, tc.backward)
		if got != tc.want || ok != tc.found {
			t.Fatalf("Search(%q, %d, %v) = %d, %v; want %d, %v", tc.query, tc.from, tc.backward, got, ok, tc.want, tc.found)
		}
	}
}

func TestFeedPreservesOrderUnderConcurrentReader(t *testing.T) {
	const total = 500
	feed := NewFeed(4)
	ctx := context.Background()

	go func() {
		for i := 0; i < total; i++ {
			if err := feed.Append(ctx, []string{strconv.Itoa(i)}); err != nil {
				t.Errorf("append %d: %v", i, err)
				return
			}
		}
		feed.Close()
	}()

	var doc Document
	for block := range feed.Blocks() {
		doc.Append(block)
		// Every prefix observed by the reader must be complete and ordered.
		last := doc.Len() - 1
		if got := doc.Block(last)[0]; got != strconv.Itoa(last) {
			t.Fatalf("block %d out of order: %s", last, got)
		}
	}
	if doc.Len() != total {
		t.Fatalf("expected %d blocks, got %d", total, doc.Len())
	}
}

func TestFeedAppendAfterDetachIsInert(t *testing.T) {
	feed := NewFeed(0)
	feed.Detach()
	feed.Detach()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			if err := feed.Append(context.Background(), []string{"x"}); err != nil {
				t.Errorf("expected inert append, got %v", err)
			}
		}
	}()
	wg.Wait()
	feed.Close()
	feed.Close()
}

func TestFeedAppendHonorsContext(t *testing.T) {
	feed := NewFeed(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := feed.Append(ctx, []string{"x"}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
