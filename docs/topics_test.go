package docs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// The documentation must stay in sync with itself: every .md file is a
	// loadable topic, and every topic is mentioned in readme.md.

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var want []string
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), ".md")
		if base != "readme" {
			want = append(want, base)
		}
	}
	slices.Sort(want)

	got, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("GetAllTopics() = %v, want %v", got, want)
	}

	readme, err := GetTopic("readme")
	if err != nil {
		t.Fatalf("failed to get readme: %v", err)
	}

	for _, topic := range want {
		t.Run("load_"+topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("failed to get topic %q: %v", topic, err)
			}
			if !strings.HasPrefix(content, "# ") {
				t.Errorf("topic %q does not start with a title", topic)
			}
			if !strings.Contains(readme, topic) {
				t.Errorf("topic %q is not mentioned in readme.md", topic)
			}
		})
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("want an error for an unknown topic, got none")
	}
}

func TestGetTopicsStar(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*): %v", err)
	}
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics: %v", err)
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q): %v", topic, err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("GetTopics(*) does not contain topic %q", topic)
		}
	}
}

// TestWellFormed parses every topic and checks the basic markdown structure:
// a single top-level title, and every fenced code block closed.
func TestWellFormed(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("failed to read %s: %v", file, err)
			}

			root := goldmark.DefaultParser().Parse(text.NewReader(content))

			titles := 0
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
					titles++
				}
				if fcb, ok := n.(*ast.FencedCodeBlock); ok && fcb.Lines().Len() == 0 {
					t.Errorf("%s: empty fenced code block", file)
				}
				return ast.WalkContinue, nil
			})

			if titles != 1 {
				t.Errorf("%s: want exactly one top-level title, got %d", file, titles)
			}
		})
	}
}
