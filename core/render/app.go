package render

import (
	"fmt"

	"github.com/artpar/reacthub/core/color"
	"github.com/artpar/reacthub/core/requirement"
)

// Palette holds the theme tokens used when branding declares no color.
type Palette struct {
	Primary   string
	Secondary string
}

// DefaultPalette is the built-in fallback palette.
var DefaultPalette = Palette{
	Primary:   "oklch(31.19% 0.0952 259.33)",
	Secondary: "oklch(0.967 0.001 286.375)",
}

// ViteConfig builds the vite config that replaces the one vite creates.
func ViteConfig() File {
	return File{Template: TmplViteConfig, Path: "vite.config.ts"}
}

// Tooling builds the repository tooling files: ignore list, formatter and
// commit lint configs, compiler configs, node version and git hooks.
func Tooling() []File {
	return []File{
		{Template: TmplGitignore, Path: ".gitignore"},
		{Template: TmplTsconfig, Path: "tsconfig.json"},
		{Template: TmplTsconfigApp, Path: "tsconfig.app.json"},
		{Template: TmplPrettier, Path: ".prettierrc.cjs"},
		{Template: TmplCommitlint, Path: "commitlint.config.cjs"},
		{Template: TmplCzConfig, Path: ".cz-config.cjs"},
		{Template: TmplNvmrc, Path: ".nvmrc"},
		{Template: TmplCommitMsg, Path: ".husky/commit-msg", Executable: true},
		{Template: TmplPreCommit, Path: ".husky/pre-commit", Executable: true},
	}
}

// Shell builds the entry point, apollo client and the unauthenticated route
// tree with its home page.
func Shell() []File {
	return []File{
		{Template: TmplApollo, Path: "src/config/apollo/apolloConfig.ts"},
		{Template: TmplErrorHandling, Path: "src/config/apollo/errorHandling.ts"},
		{Template: TmplMain, Path: "src/main.tsx"},
		{Template: TmplAppRoot, Path: "src/App.tsx", Context: map[string]any{"isAuthenticated": false}},
		{Template: TmplBasicRoutes, Path: "src/routes/index.tsx"},
		{Template: TmplHome, Path: "src/pages/home/index.tsx"},
	}
}

// Scaffold builds every file the app step writes, theme included.
func Scaffold(app requirement.App, fallback Palette) (Bundle, error) {
	theme, err := Theme(app.Branding, fallback)
	if err != nil {
		return Bundle{}, err
	}

	files := []File{ViteConfig()}
	files = append(files, Tooling()...)
	files = append(files, theme)
	files = append(files, Shell()...)

	return Bundle{Page: app.Name, Kind: "App", Files: files}, nil
}

// Theme builds the theme stylesheet from brand colors. Colors missing from
// branding come from fallback; a malformed color is an error.
func Theme(b requirement.Branding, fallback Palette) (File, error) {
	primary, err := themeToken(b.PrimaryColor, fallback.Primary)
	if err != nil {
		return File{}, fmt.Errorf("primary color: %w", err)
	}
	secondary, err := themeToken(b.SecondaryColor, fallback.Secondary)
	if err != nil {
		return File{}, fmt.Errorf("secondary color: %w", err)
	}

	return File{
		Template: TmplThemeCSS,
		Path:     "src/index.css",
		Context: map[string]any{
			"primaryColor":   primary,
			"secondaryColor": secondary,
		},
	}, nil
}

func themeToken(hex, fallback string) (string, error) {
	if hex == "" {
		return fallback, nil
	}
	tok, err := color.HexToThemeToken(hex)
	if err != nil {
		return "", err
	}
	return tok.String(), nil
}
