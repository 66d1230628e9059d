package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/requirement"
)

// ErrInvalidProjectName is returned for empty names or names that are not a
// single path segment.
var ErrInvalidProjectName = errors.New("invalid project name")

// RuntimeDependencies are installed with --save into every new project.
var RuntimeDependencies = []string{
	"@apollo/client",
	"graphql",
	"react-hook-form",
	"@hookform/resolvers",
	"dayjs",
	"lodash",
	"zod",
	"react-router-dom",
	"sonner",
	"ldrs",
}

// DevDependencies are installed with --save-dev into every new project.
var DevDependencies = []string{
	"@vitejs/plugin-react-swc",
	"@commitlint/cli",
	"@commitlint/config-conventional",
	"@testing-library/jest-dom",
	"@typescript-eslint/eslint-plugin",
	"@typescript-eslint/parser",
	"@vitest/coverage-v8",
	"@types/lodash",
	"@vitest/ui",
	"commitizen",
	"commitlint-config-gitmoji",
	"cz-customizable",
	"eslint",
	"eslint-config-prettier",
	"eslint-import-resolver-typescript",
	"eslint-plugin-import",
	"eslint-plugin-prettier",
	"eslint-plugin-react",
	"eslint-plugin-react-hooks",
	"eslint-plugin-react-refresh",
	"jsdom",
	"prettier",
	"vitest",
	"husky",
	"lint-staged",
	"@types/node",
	"@graphql-codegen/cli",
	"@graphql-codegen/client-preset",
	"@graphql-codegen/typescript",
	"@graphql-codegen/typescript-operations",
	"@graphql-codegen/typescript-react-apollo",
}

// TailwindDependencies are installed with --save-dev before shadcn init.
var TailwindDependencies = []string{"tailwindcss", "@tailwindcss/vite"}

// ProjectDirectories are created in every new project.
var ProjectDirectories = []string{
	"src/assets",
	"src/common",
	"src/components",
	"src/config/apollo",
	"src/helpers",
	"src/layout",
	"src/pages/home",
	"src/routes",
	"src/utils",
	"src/types",
	"src/lib",
	"src/vars",
	"tests",
}

// Commit messages at the app checkpoints.
const (
	commitInitial = "initial commit"
	commitTheme   = "WIP: Adding Shadcn UI and Tailwind CSS"
	commitShell   = "Adding routes and apollo configuration"
)

// App creates the project app.Name below the workspace and returns a
// generator rooted in it.
func (g *Generator) App(ctx context.Context, app requirement.App) (*Generator, error) {
	name := app.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	}

	theme, err := render.Theme(app.Branding, g.opts.Palette)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	var proj *Generator
	err = g.step("app", func() error {
		g.logger.Info().Str("name", name).Msg("creating vite project")
		if err := g.run(ctx, g.opts.Toolchain.NPM, "create", "vite@latest", name, "--", "--template", "react-ts"); err != nil {
			return err
		}
		proj = g.In(name)
		return proj.scaffold(ctx, theme)
	})
	if err != nil {
		return nil, err
	}
	return proj, nil
}

func (g *Generator) scaffold(ctx context.Context, theme render.File) error {
	g.logger.Info().Msg("installing dependencies")
	if err := g.install(ctx, false, RuntimeDependencies); err != nil {
		return err
	}
	if err := g.install(ctx, true, DevDependencies); err != nil {
		return err
	}

	for _, dir := range ProjectDirectories {
		if err := g.ws.MkdirAll(dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	g.logger.Info().Msg("updating configuration")
	if err := g.write([]render.File{render.ViteConfig()}); err != nil {
		return err
	}
	if err := g.updatePackageJSON(); err != nil {
		return err
	}

	if err := g.run(ctx, g.opts.Toolchain.Git, "init"); err != nil {
		return err
	}
	if err := g.run(ctx, g.opts.Toolchain.Git, "checkout", "-b", "main"); err != nil {
		return err
	}
	if err := g.run(ctx, g.opts.Toolchain.NPX, "husky", "init"); err != nil {
		return err
	}
	if err := g.write(render.Tooling()); err != nil {
		return err
	}
	if err := g.commit(ctx, commitInitial); err != nil {
		return err
	}

	g.logger.Info().Msg("configuring tailwind and shadcn")
	if err := g.install(ctx, true, TailwindDependencies); err != nil {
		return err
	}
	if err := g.run(ctx, g.opts.Toolchain.NPX, "shadcn@latest", "init", "-d"); err != nil {
		return err
	}
	if err := g.write([]render.File{theme}); err != nil {
		return err
	}
	if err := g.commit(ctx, commitTheme); err != nil {
		return err
	}

	g.logger.Info().Msg("configuring apollo and routes")
	if err := g.write(render.Shell()); err != nil {
		return err
	}
	return g.commit(ctx, commitShell)
}

func (g *Generator) updatePackageJSON() error {
	pkg := map[string]any{}

	data, err := g.ws.ReadFile("package.json")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		g.logger.Warn().Msg("package.json not found, writing a new one")
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(data, &pkg); err != nil {
			return fmt.Errorf("parse package.json: %w", err)
		}
	}

	out, err := json.MarshalIndent(MergePackageJSON(pkg), "", "  ")
	if err != nil {
		return err
	}
	return g.ws.WriteFile("package.json", append(out, '\n'), 0o644)
}

// MergePackageJSON adds the generated scripts, commitizen config and
// lint-staged rules to pkg and returns it. Existing scripts are kept unless
// a generated script has the same name.
func MergePackageJSON(pkg map[string]any) map[string]any {
	scripts, _ := pkg["scripts"].(map[string]any)
	if scripts == nil {
		scripts = map[string]any{}
	}
	for k, v := range map[string]string{
		"prepare":       "husky",
		"commit":        "git-cz",
		"test":          "vitest",
		"test:coverage": "vitest run --coverage",
		"test:ui":       "vitest --ui",
		"compile":       "graphql-codegen",
		"watch":         "graphql-codegen -w",
	} {
		scripts[k] = v
	}
	pkg["scripts"] = scripts

	pkg["config"] = map[string]any{
		"commitizen":      map[string]any{"path": "./node_modules/cz-customizable"},
		"cz-customizable": map[string]any{"config": "./.cz-config.cjs"},
	}
	pkg["lint-staged"] = map[string]any{
		"src/**/*.{js,jsx,ts,tsx}": []any{"eslint src/**/*.{js,jsx,ts,tsx} --fix-dry-run", "prettier --write"},
	}
	return pkg
}
