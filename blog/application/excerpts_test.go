package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/graker/blogarchive/blog/domain"
)

type stubRenderer struct {
	failOn string
}

func (r *stubRenderer) Render(source string) (string, error) {
	if source == r.failOn {
		return "", errors.New("render failed")
	}
	if strings.HasPrefix(source, "<p>") {
		return source, nil
	}
	return "<p>" + source + "</p>", nil
}

func TestExcerptService_UpdateAll(t *testing.T) {
	repo := &fakePostRepo{posts: []*domain.Post{
		{ID: 1, Title: "One", Excerpt: "plain"},
		{ID: 2, Title: "Two", Excerpt: "<p>already rendered</p>"},
		{ID: 3, Title: "Three", Excerpt: "broken"},
		{ID: 4, Title: "Four", Excerpt: ""},
	}}

	s := NewExcerptService(repo, &stubRenderer{failOn: "broken"})

	updated, err := s.UpdateAll(context.Background())
	if err != nil {
		t.Fatalf("UpdateAll failed: %v", err)
	}

	// Post 1 changes, post 2 is unchanged, post 3 fails to render and is
	// skipped, post 4 has no excerpt at all
	if updated != 1 {
		t.Errorf("updated = %d, want 1", updated)
	}
	if got := repo.updatedExcerpts[1]; got != "<p>plain</p>" {
		t.Errorf("post 1 excerpt = %q, want rendered HTML", got)
	}
	if _, ok := repo.updatedExcerpts[2]; ok {
		t.Error("unchanged excerpt should not be re-saved")
	}
	if _, ok := repo.updatedExcerpts[3]; ok {
		t.Error("failed render should not be saved")
	}
}

func TestExcerptRenderer_Render(t *testing.T) {
	r := NewExcerptRenderer()

	got, err := r.Render("Some **bold** text")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "<p>Some <strong>bold</strong> text</p>" {
		t.Errorf("Render = %q", got)
	}

	// Raw HTML passes through untouched
	got, err = r.Render(`<a href="/x">link</a> text`)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<a href="/x">link</a>`) {
		t.Errorf("Render = %q, want raw HTML preserved", got)
	}
}
