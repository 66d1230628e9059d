package generator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/artpar/reacthub/adapters/clock"
	rexec "github.com/artpar/reacthub/adapters/exec"
	rfs "github.com/artpar/reacthub/adapters/fs"
	"github.com/artpar/reacthub/core/color"
	"github.com/artpar/reacthub/core/events"
	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/requirement"
	"github.com/artpar/reacthub/core/templates"
	"github.com/artpar/reacthub/ports"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

type fakeMetrics struct {
	mu       sync.Mutex
	files    int
	commands map[string]int
	missing  map[string]int
	steps    []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{commands: map[string]int{}, missing: map[string]int{}}
}

func (m *fakeMetrics) FileRendered(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files++
}

func (m *fakeMetrics) CommandRun(name string, _ bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[name]++
}

func (m *fakeMetrics) BindingUnresolved(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[op]++
}

func (m *fakeMetrics) StepCompleted(step string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, step)
}

type fixture struct {
	g       *Generator
	ws      *rfs.Memory
	runner  *rexec.Recorder
	metrics *fakeMetrics
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	r, err := templates.New(templates.Embedded(), templates.Helpers())
	if err != nil {
		t.Fatalf("templates.New error: %v", err)
	}
	f := fixture{ws: rfs.NewMemory(), runner: rexec.NewRecorder(), metrics: newFakeMetrics()}
	f.g = New(f.ws, f.runner, r, f.metrics, clock.NewStepping(time.Unix(0, 0), time.Millisecond), zerolog.Nop(), opts)
	return f
}

func (f fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := f.ws.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", path, err)
	}
	return string(data)
}

func commit(msg string) []string {
	return []string{"git add .", "git commit -m " + msg + " --no-verify"}
}

func TestApp_Commands(t *testing.T) {
	f := newFixture(t, Options{})

	proj, err := f.g.App(context.Background(), requirement.App{Name: "gym"})
	if err != nil {
		t.Fatalf("App error: %v", err)
	}

	want := []string{
		"npm create vite@latest gym -- --template react-ts",
		"npm install --save " + strings.Join(RuntimeDependencies, " "),
		"npm install --save-dev " + strings.Join(DevDependencies, " "),
		"git init",
		"git checkout -b main",
		"npx husky init",
	}
	want = append(want, commit(commitInitial)...)
	want = append(want,
		"npm install --save-dev tailwindcss @tailwindcss/vite",
		"npx shadcn@latest init -d",
	)
	want = append(want, commit(commitTheme)...)
	want = append(want, commit(commitShell)...)

	if diff := cmp.Diff(want, f.runner.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	calls := f.runner.Calls()
	if calls[0].Dir != "" || calls[1].Dir != "gym" {
		t.Errorf("dirs = %q, %q, want \"\" then gym", calls[0].Dir, calls[1].Dir)
	}
	if proj.Workspace().Root() != "/gym" {
		t.Errorf("project root = %q, want /gym", proj.Workspace().Root())
	}

	for _, p := range []string{
		"gym/vite.config.ts", "gym/package.json", "gym/.gitignore", "gym/.husky/pre-commit",
		"gym/src/index.css", "gym/src/main.tsx", "gym/src/App.tsx", "gym/src/routes/index.tsx",
	} {
		if ok, _ := f.ws.Exists(p); !ok {
			t.Errorf("missing %s", p)
		}
	}
	for _, dir := range ProjectDirectories {
		if ok, _ := f.ws.Exists("gym/" + dir); !ok {
			t.Errorf("missing directory %s", dir)
		}
	}
	if css := f.read(t, "gym/src/index.css"); !strings.Contains(css, render.DefaultPalette.Primary) {
		t.Errorf("index.css without default primary:\n%s", css)
	}
	if diff := cmp.Diff([]string{"app"}, f.metrics.steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_SkipInstall(t *testing.T) {
	f := newFixture(t, Options{Toolchain: Toolchain{NPM: "pnpm", NPX: "npx", Git: "git", SkipInstall: true}})

	if _, err := f.g.App(context.Background(), requirement.App{Name: "gym"}); err != nil {
		t.Fatalf("App error: %v", err)
	}
	for _, line := range f.runner.Lines() {
		if strings.Contains(line, " install ") {
			t.Errorf("install ran with SkipInstall: %s", line)
		}
	}
	if first := f.runner.Lines()[0]; !strings.HasPrefix(first, "pnpm create") {
		t.Errorf("first command = %q, want configured npm binary", first)
	}
}

func TestApp_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		app  requirement.App
		want error
	}{
		{"empty name", requirement.App{}, ErrInvalidProjectName},
		{"nested name", requirement.App{Name: "a/b"}, ErrInvalidProjectName},
		{"parent name", requirement.App{Name: ".."}, ErrInvalidProjectName},
		{"bad color", requirement.App{Name: "gym", Branding: requirement.Branding{PrimaryColor: "#12"}}, color.ErrInvalidColorFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{})
			_, err := f.g.App(context.Background(), tt.app)
			if !errors.Is(err, tt.want) {
				t.Errorf("App error = %v, want %v", err, tt.want)
			}
			if n := len(f.runner.Calls()); n != 0 {
				t.Errorf("%d commands ran, want none", n)
			}
		})
	}
}

func TestApp_CommandFails(t *testing.T) {
	f := newFixture(t, Options{})
	f.runner.Results["npm create"] = ports.CmdResult{ExitCode: 1, Stderr: "npm ERR!\nnetwork down\n"}

	_, err := f.g.App(context.Background(), requirement.App{Name: "gym"})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("App error = %v, want ErrCommandFailed", err)
	}
	if !strings.Contains(err.Error(), "network down") || !strings.HasPrefix(err.Error(), "app: ") {
		t.Errorf("error = %q, want step name and stderr tail", err)
	}
	if n := len(f.runner.Calls()); n != 1 {
		t.Errorf("%d commands ran, want 1", n)
	}
}

func TestApp_MergesExistingPackageJSON(t *testing.T) {
	f := newFixture(t, Options{})
	f.ws.WriteFile("gym/package.json", []byte(`{"name":"gym","scripts":{"dev":"vite","test":"old"}}`), 0o644)

	if _, err := f.g.App(context.Background(), requirement.App{Name: "gym"}); err != nil {
		t.Fatalf("App error: %v", err)
	}

	var pkg struct {
		Name    string            `json:"name"`
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(f.read(t, "gym/package.json")), &pkg); err != nil {
		t.Fatalf("package.json is not JSON: %v", err)
	}
	if pkg.Name != "gym" || pkg.Scripts["dev"] != "vite" {
		t.Errorf("existing fields lost: %+v", pkg)
	}
	if pkg.Scripts["test"] != "vitest" || pkg.Scripts["compile"] != "graphql-codegen" {
		t.Errorf("generated scripts missing: %+v", pkg.Scripts)
	}
}

func TestMergePackageJSON(t *testing.T) {
	got := MergePackageJSON(map[string]any{"private": true})

	if got["private"] != true {
		t.Error("unrelated key dropped")
	}
	scripts := got["scripts"].(map[string]any)
	if scripts["prepare"] != "husky" || scripts["watch"] != "graphql-codegen -w" {
		t.Errorf("scripts = %v", scripts)
	}
	cfg := got["config"].(map[string]any)
	if cfg["commitizen"].(map[string]any)["path"] != "./node_modules/cz-customizable" {
		t.Errorf("config = %v", cfg)
	}
	if _, ok := got["lint-staged"].(map[string]any)["src/**/*.{js,jsx,ts,tsx}"]; !ok {
		t.Errorf("lint-staged = %v", got["lint-staged"])
	}
}

func TestRoutes(t *testing.T) {
	f := newFixture(t, Options{APIEndpoint: "http://api.internal"})
	f.ws.WriteFile("src/components/ui/avatar.tsx", []byte("x"), 0o644)

	routes := []render.Route{
		{Path: "/login", Type: string(requirement.FlowEmailPassword)},
		{Path: "/trainers", IsPrivate: true, Type: requirement.KindListing},
	}
	if err := f.g.Routes(context.Background(), routes, "", "/logo.svg"); err != nil {
		t.Fatalf("Routes error: %v", err)
	}

	want := append([]string{"npx shadcn@latest add sidebar dialog dropdown-menu"}, commit(commitRoutes)...)
	if diff := cmp.Diff(want, f.runner.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if env := f.read(t, ".env"); env != "VITE_API_ENDPOINT=http://api.internal\n" {
		t.Errorf(".env = %q", env)
	}
	for _, p := range []string{"src/pages/login/index.tsx", "src/pages/trainers/index.tsx", "src/routes/routePaths.ts"} {
		if ok, _ := f.ws.Exists(p); !ok {
			t.Errorf("missing %s", p)
		}
	}
}

func TestRoutes_PublishesEvents(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	var got []string
	files := 0
	bus.Subscribe("*", func(e events.Event) error {
		if e.Project != "gym" {
			t.Errorf("%s project = %q, want gym", e.Name, e.Project)
		}
		switch e.Name {
		case events.FileWritten:
			files++
		case events.CommandRun:
			got = append(got, e.Name+" "+e.Command)
		default:
			got = append(got, e.Name+" "+e.Step)
		}
		return nil
	})

	f := newFixture(t, Options{Events: bus})
	f.runner.Results["git commit"] = ports.CmdResult{ExitCode: 1, Stderr: "nothing to commit"}

	err := f.g.In("gym").Routes(context.Background(), []render.Route{{Path: "/trainers", IsPrivate: true, Type: requirement.KindListing}}, "", "")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("Routes error = %v, want ErrCommandFailed", err)
	}

	want := []string{
		"step.started routes",
		"command.run npx shadcn@latest add sidebar dialog avatar dropdown-menu",
		"command.run git add .",
		"command.run git commit -m " + commitRoutes + " --no-verify",
		"step.failed routes",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if files == 0 {
		t.Error("no file.written events")
	}
}

func TestRoutes_Empty(t *testing.T) {
	f := newFixture(t, Options{})
	if err := f.g.Routes(context.Background(), nil, "", ""); !errors.Is(err, render.ErrNoRoutes) {
		t.Errorf("Routes(nil) error = %v, want ErrNoRoutes", err)
	}
}

func TestLogin_CompileFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, Options{})
	f.runner.Results["npm run compile"] = ports.CmdResult{ExitCode: 2, Stderr: "schema unreachable"}

	page := requirement.AuthPage{
		PageMeta: requirement.PageMeta{Name: LoginPageName, Route: "/login"},
		Flow:     requirement.FlowPhone,
		API:      []requirement.API{{Type: requirement.APILogin, GraphqlHook: "useLoginMutation"}},
	}
	if err := f.g.Login(context.Background(), requirement.Module{Name: "auth"}, page); err != nil {
		t.Fatalf("Login error: %v", err)
	}

	want := append([]string{"npx shadcn@latest add button input label", "npm run compile"}, commit(commitLogin)...)
	if diff := cmp.Diff(want, f.runner.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(f.read(t, "src/pages/login/index.tsx"), "useLoginMutation") {
		t.Error("login page without login hook")
	}
	if f.metrics.missing["currentUser"] != 1 {
		t.Errorf("unresolved = %v, want currentUser counted", f.metrics.missing)
	}
}

func TestCRUD_SharedModule(t *testing.T) {
	f := newFixture(t, Options{})

	mod := requirement.Module{
		Name:             "Member",
		SharedComponents: true,
		Pages: requirement.Pages{requirement.ListingPage{
			PageMeta:   requirement.PageMeta{Name: "MemberList", Route: "/members", IsPrivate: true},
			Collection: requirement.Collection{Columns: []requirement.Column{{Field: "fullName", Label: "Name"}}},
		}},
	}
	if err := f.g.CRUD(context.Background(), mod); err != nil {
		t.Fatalf("CRUD error: %v", err)
	}

	for _, p := range []string{
		"src/components/ui/table.tsx", "src/components/tableLoader.tsx",
		"src/pages/members/index.tsx", "src/pages/members/graphql/index.ts", "src/pages/members/types.ts",
	} {
		if ok, _ := f.ws.Exists(p); !ok {
			t.Errorf("missing %s", p)
		}
	}
	if diff := cmp.Diff([]string{"npx shadcn@latest add drawer select input textarea label"}, f.runner.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if f.metrics.missing["list"] != 1 {
		t.Errorf("unresolved = %v, want list counted", f.metrics.missing)
	}
}

func TestCRUD_PlainModule(t *testing.T) {
	f := newFixture(t, Options{})

	mod := requirement.Module{Name: "Trainer", Pages: requirement.Pages{requirement.DetailPage{
		PageMeta: requirement.PageMeta{Name: "TrainerDetail", Route: "/trainers/:id"},
	}}}
	if err := f.g.CRUD(context.Background(), mod); err != nil {
		t.Fatalf("CRUD error: %v", err)
	}

	if diff := cmp.Diff([]string{"src/pages/trainersDetail/graphql/index.ts"}, f.ws.Files()); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if n := len(f.runner.Calls()); n != 0 {
		t.Errorf("%d commands ran, want none", n)
	}
}

func TestGenerate(t *testing.T) {
	req, err := requirement.ParseFile("../requirement/testdata/gym.json")
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	f := newFixture(t, Options{})

	if err := f.g.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	var commits []string
	for _, c := range f.runner.Calls() {
		if len(c.Args) > 2 && c.Args[0] == "commit" {
			commits = append(commits, c.Args[2])
		}
		if c.Dir != "" && c.Dir != "gym-admin" {
			t.Errorf("command %q ran in %q", c, c.Dir)
		}
	}
	want := []string{commitInitial, commitTheme, commitShell, commitRoutes, commitLogin}
	if diff := cmp.Diff(want, commits); diff != "" {
		t.Errorf("commits mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"app", "routes", "login", "crud", "crud"}, f.metrics.steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}

	for _, p := range []string{
		"gym-admin/src/pages/trainers/index.tsx",
		"gym-admin/src/pages/trainersDetail/graphql/index.ts",
		"gym-admin/src/pages/members/index.tsx",
		"gym-admin/src/pages/login/graphql/index.ts",
		"gym-admin/src/components/ui/table.tsx",
	} {
		if ok, _ := f.ws.Exists(p); !ok {
			t.Errorf("missing %s", p)
		}
	}
	if env := f.read(t, "gym-admin/.env"); env != "VITE_API_ENDPOINT=https://api.example.com/graphql\n" {
		t.Errorf(".env = %q", env)
	}
	if f.metrics.missing["update"] != 2 {
		t.Errorf("unresolved update = %d, want 2 (Trainer and Member)", f.metrics.missing["update"])
	}
}

func TestRenderOnly(t *testing.T) {
	req, err := requirement.ParseFile("../requirement/testdata/gym.json")
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	f := newFixture(t, Options{})

	bundles, err := f.g.RenderOnly(req)
	if err != nil {
		t.Fatalf("RenderOnly error: %v", err)
	}

	if n := len(f.runner.Calls()); n != 0 {
		t.Errorf("%d commands ran, want none", n)
	}

	var kinds []string
	files := 0
	for _, b := range bundles {
		kinds = append(kinds, b.Kind)
		files += len(b.Files)
	}
	want := []string{"App", "Routes", "EmailPassword", "SharedComponents", "Listing", "Detail", "Listing"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("bundle kinds mismatch (-want +got):\n%s", diff)
	}
	if f.metrics.files != files {
		t.Errorf("rendered %d files, bundles hold %d", f.metrics.files, files)
	}
	if ok, _ := f.ws.Exists("src/pages/trainers/index.tsx"); !ok {
		t.Error("RenderOnly wrote no listing page")
	}
}

func TestMissingUIComponents(t *testing.T) {
	f := newFixture(t, Options{})
	f.ws.WriteFile("src/components/ui/input.tsx", nil, 0o644)

	got, err := f.g.MissingUIComponents([]string{"button", "input", "label"})
	if err != nil {
		t.Fatalf("MissingUIComponents error: %v", err)
	}
	if diff := cmp.Diff([]string{"button", "label"}, got); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginPage(t *testing.T) {
	req := requirement.Requirement{Modules: []requirement.Module{
		{Name: "auth", Pages: requirement.Pages{
			requirement.AuthPage{PageMeta: requirement.PageMeta{Name: "ForgotPage"}, Flow: requirement.FlowForgotPassword},
			requirement.AuthPage{PageMeta: requirement.PageMeta{Name: LoginPageName}, Flow: requirement.FlowEmailPassword},
		}},
	}}

	_, page, ok := LoginPage(req)
	if !ok || page.Name != LoginPageName {
		t.Errorf("LoginPage = %v, %v", page.Name, ok)
	}
	if _, _, ok := LoginPage(requirement.Requirement{}); ok {
		t.Error("LoginPage without auth module reported ok")
	}
}
