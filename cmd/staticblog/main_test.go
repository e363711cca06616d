package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eringen/staticblog/frontmatter"
	"github.com/eringen/staticblog/postindex"
)

const testIndex = `[
  {"file": "rust.md", "title": "Learning Rust", "date": "2024-01-15", "tags": ["rust"]},
  {"file": "curry.md", "title": "Weeknight Curry", "date": "2024-02-01", "tags": ["cooking"]}
]`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("staticblog %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func setupSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	site := filepath.Join(dir, "public")
	if err := os.MkdirAll(filepath.Join(site, "pages"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(site, "posts.json"), []byte(testIndex), 0o644); err != nil {
		t.Fatalf("write posts.json: %v", err)
	}
	post := "---\ntitle: Learning Rust\n---\nBorrow *checker*.\n"
	if err := os.WriteFile(filepath.Join(site, "pages", "rust.md"), []byte(post), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}
	t.Setenv("STATICBLOG_SITE_DIR", site)
	t.Setenv("STATICBLOG_STORAGE_PATH", filepath.Join(dir, "data", "storage.db"))
	t.Setenv("STATICBLOG_NAME", "CLI Blog")
	return dir
}

func TestVersion(t *testing.T) {
	if got := execute(t, "version"); got != "staticblog dev\n" {
		t.Fatalf("version = %q", got)
	}
}

func TestThemeCommand(t *testing.T) {
	setupSite(t)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "light (system)\n"},
		{[]string{"theme", "set", "dark"}, "dark (saved)\n"},
		{[]string{"theme", "get"}, "dark (saved)\n"},
		{[]string{"theme", "toggle"}, "light (saved)\n"},
		{[]string{"theme", "reset", "--dark"}, "dark (system)\n"},
	}
	for _, s := range steps {
		if got := execute(t, s.args...); got != s.want {
			t.Fatalf("%v = %q, want %q", s.args, got, s.want)
		}
	}
	themeDark = false
}

func TestRenderCommands(t *testing.T) {
	setupSite(t)

	out := execute(t, "render", "index", "--tag", "rust")
	if !strings.Contains(out, "Learning Rust") || strings.Contains(out, "Weeknight Curry") {
		t.Fatalf("render index --tag rust:\n%s", out)
	}
	renderTag = ""

	out = execute(t, "render", "post", "rust.md")
	for _, want := range []string{"<title>Learning Rust - CLI Blog</title>", "<em>checker</em>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render post missing %q:\n%s", want, out)
		}
	}
}

func TestRunNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")
	now := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	newCmd.SetOut(&buf)
	if err := runNew(newCmd, dir, now); err != nil {
		t.Fatalf("runNew: %v", err)
	}

	for _, name := range []string{"staticblog.yaml", "public/index.html", "public/post.html", "public/posts.json", "public/pages/hello-world.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(dir, "public", "posts.json"))
	if err != nil {
		t.Fatalf("read posts.json: %v", err)
	}
	posts, err := postindex.Decode(index)
	if err != nil {
		t.Fatalf("scaffolded posts.json: %v", err)
	}
	if len(posts) != 1 || posts[0].Date != "2025-03-04" || posts[0].Excerpt != "The first post of My Blog." {
		t.Fatalf("posts = %+v", posts)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "public", "pages", "hello-world.md"))
	if err != nil {
		t.Fatalf("read first post: %v", err)
	}
	doc := frontmatter.Parse(string(raw))
	if doc.Metadata.String("title") != "Hello, World" {
		t.Fatalf("title = %q", doc.Metadata.String("title"))
	}
	if tags, ok := doc.Metadata.Strings("tags"); !ok || len(tags) != 1 || tags[0] != "welcome" {
		t.Fatalf("tags = %v", tags)
	}

	shell, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	if err != nil {
		t.Fatalf("read index.html: %v", err)
	}
	if !strings.Contains(string(shell), "<title>My Blog</title>") || !strings.Contains(string(shell), `id="posts-list"`) {
		t.Fatalf("index.html:\n%s", shell)
	}

	if err := runNew(newCmd, dir, now); err == nil {
		t.Fatal("expected an error for an existing directory")
	}
}

func TestHelpers(t *testing.T) {
	titles := map[string]string{"my-blog": "My Blog", "myblog": "Myblog"}
	for in, want := range titles {
		if got := toTitle(in); got != want {
			t.Errorf("toTitle(%q) = %q, want %q", in, got, want)
		}
	}

	origins := map[string]string{
		"https://example.com/blog/": "https://example.com",
		"http://localhost:3000":     "http://localhost:3000",
	}
	for in, want := range origins {
		if got := originOf(in); got != want {
			t.Errorf("originOf(%q) = %q, want %q", in, got, want)
		}
	}
}
