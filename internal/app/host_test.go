package app

import (
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/ropen/internal/state"
)

func TestTerminalHostProjects(t *testing.T) {
	host := NewTerminalHost(HostConfig{Projects: []string{"/w/a/", "", "/w/a", "/w/b"}})

	if got, want := host.ProjectDirectories(), []string{"/w/a", "/w/b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ProjectDirectories = %v, want %v", got, want)
	}

	host.AddProjectDirectory("/w/c/")
	host.AddProjectDirectory("/w/b")
	if got, want := host.ProjectDirectories(), []string{"/w/a", "/w/b", "/w/c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("after add = %v, want %v", got, want)
	}

	dirs := host.ProjectDirectories()
	dirs[0] = "mutated"
	if host.ProjectDirectories()[0] != "/w/a" {
		t.Fatalf("ProjectDirectories must return a copy")
	}
}

func TestTerminalHostOpenPath(t *testing.T) {
	noEditor := NewTerminalHost(HostConfig{})
	if err := noEditor.OpenPath("/w/a.txt", statepkg.SplitNone); !errors.Is(err, errNoEditor) {
		t.Fatalf("expected errNoEditor, got %v", err)
	}
	if len(noEditor.Opened()) != 0 {
		t.Fatalf("failed open must not be queued")
	}

	printer := NewTerminalHost(HostConfig{PrintOnly: true})
	if err := printer.OpenPath("/w/a.txt", statepkg.SplitRight); err != nil {
		t.Fatalf("print mode open failed: %v", err)
	}
	want := []OpenRequest{{Path: "/w/a.txt", Split: statepkg.SplitRight}}
	if got := printer.Opened(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Opened = %v, want %v", got, want)
	}
}

func TestTerminalHostNotices(t *testing.T) {
	host := NewTerminalHost(HostConfig{})
	if !host.Notice().IsZero() {
		t.Fatalf("new host should have no notice")
	}

	host.NotifyError("Could not open file", "boom")
	if n := host.Notice(); !n.Error || n.Title != "Could not open file" || n.Detail != "boom" {
		t.Fatalf("unexpected notice %+v", n)
	}

	host.NotifySuccess("Copied path", "/w")
	if n := host.Notice(); n.Error || n.Title != "Copied path" {
		t.Fatalf("success should replace error, got %+v", n)
	}

	host.ClearNotice()
	if !host.Notice().IsZero() {
		t.Fatalf("ClearNotice should drop the notice")
	}
}

func TestTerminalHostBeepAndClipboard(t *testing.T) {
	host := NewTerminalHost(HostConfig{})
	host.Beep() // no screen yet

	beeps := 0
	host.beep = func() { beeps++ }
	host.Beep()
	if beeps != 1 {
		t.Fatalf("expected one beep, got %d", beeps)
	}

	var copied string
	host.copyText = func(text string) error {
		copied = text
		return nil
	}
	if err := host.CopyToClipboard("/w/a.txt"); err != nil || copied != "/w/a.txt" {
		t.Fatalf("copy = (%q, %v)", copied, err)
	}
}

func TestTerminalHostLaunchEditor(t *testing.T) {
	host := NewTerminalHost(HostConfig{
		ActiveFile: "/w/main.go",
		Editor:     []string{"/usr/bin/vim"},
	})
	var args []string
	host.runEditor = func(cmd *exec.Cmd) error {
		args = cmd.Args
		return nil
	}

	if err := host.LaunchEditor(OpenRequest{Path: "/w/new.go", Split: statepkg.SplitLeft}); err != nil {
		t.Fatalf("LaunchEditor returned error: %v", err)
	}
	want := []string{"/usr/bin/vim", "-O", "/w/new.go", "/w/main.go"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("editor args = %v, want %v", args, want)
	}

	host.runEditor = func(*exec.Cmd) error { return errors.New("exit status 1") }
	err := host.LaunchEditor(OpenRequest{Path: "/w/new.go"})
	if err == nil || !strings.Contains(err.Error(), "run editor vim") {
		t.Fatalf("expected wrapped editor error, got %v", err)
	}
}
