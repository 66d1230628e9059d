// Package render builds the template contexts of a requirement.
//
// Every builder is pure: it reads the requirement tree and returns a Bundle
// of files to render. Nothing here touches the filesystem or the templates
// themselves; core/templates executes the bundles and core/generator writes
// them.
package render

import (
	"fmt"

	"github.com/artpar/reacthub/core/requirement"
)

// Template names. Each must exist in the template set.
const (
	TmplCrudGraphql   = "crud/graphql.ts.tmpl"
	TmplCrudIndex     = "crud/index.tsx.tmpl"
	TmplCrudDrawer    = "crud/drawer.tsx.tmpl"
	TmplCrudTypes     = "crud/types.ts.tmpl"
	TmplLoginIndex    = "login/index.tsx.tmpl"
	TmplLoginGraphql  = "login/graphql.ts.tmpl"
	TmplLoginForm     = "components/login-form.tsx.tmpl"
	TmplButton        = "components/ui/button.tsx.tmpl"
	TmplTable         = "components/ui/table.tsx.tmpl"
	TmplTableHeader   = "components/ui/table-header.tsx.tmpl"
	TmplPagination    = "components/ui/pagination.tsx.tmpl"
	TmplTableLoader   = "components/tableLoader.tsx.tmpl"
	TmplHeader        = "components/header.tsx.tmpl"
	TmplPageLoader    = "components/pageLoader.tsx.tmpl"
	TmplPrivateLayout = "layout/privateLayout.tsx.tmpl"
	TmplAuthVars      = "vars/auth.ts.tmpl"
	TmplSidebar       = "components/app-sidebar.tsx.tmpl"
	TmplRoutePaths    = "routes/routePaths.ts.tmpl"
	TmplRoutesIndex   = "routes/index.tsx.tmpl"
	TmplRoutesPrivate = "routes/private.tsx.tmpl"
	TmplRoutesPublic  = "routes/public.tsx.tmpl"
	TmplPageStub      = "pages/stub.tsx.tmpl"
	TmplAppRoot       = "app/App.tsx.tmpl"
	TmplMain          = "app/main.tsx.tmpl"
	TmplViteConfig    = "config/vite.config.ts.tmpl"
	TmplGitignore     = "config/gitignore.tmpl"
	TmplApollo        = "config/apolloConfig.ts.tmpl"
	TmplEnv           = "config/env.tmpl"
	TmplCodegen       = "config/codegen.ts.tmpl"
	TmplThemeCSS      = "styles/index.css.tmpl"
	TmplPrettier      = "config/prettierrc.cjs.tmpl"
	TmplCommitlint    = "config/commitlint.config.cjs.tmpl"
	TmplNvmrc         = "config/nvmrc.tmpl"
	TmplPreCommit     = "config/husky/pre-commit.tmpl"
	TmplCommitMsg     = "config/husky/commit-msg.tmpl"
	TmplBasicRoutes   = "routes/basic.tsx.tmpl"
	TmplHome          = "pages/home.tsx.tmpl"
	TmplTsconfig      = "config/tsconfig.json.tmpl"
	TmplTsconfigApp   = "config/tsconfig.app.json.tmpl"
	TmplCzConfig      = "config/cz-config.cjs.tmpl"
	TmplErrorHandling = "config/errorHandling.ts.tmpl"
	TmplCodegenLoader = "config/codegen-loader.ts.tmpl"
	TmplUserDetails   = "vars/userDetails.ts.tmpl"
	TmplNotify        = "components/notify.tsx.tmpl"
	TmplCurrentUser   = "hooks/useCurrentUser.tsx.tmpl"
)

// File is one output file: the template to execute, where to write the
// result relative to the project root, and the data to execute it with.
type File struct {
	Template string         `json:"template" yaml:"template"`
	Path     string         `json:"path" yaml:"path"`
	Context  map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// Executable files are written with mode 0755.
	Executable bool `json:"executable,omitempty" yaml:"executable,omitempty"`
}

// UnresolvedBinding records an expected API operation with no binding.
// It is a warning, not an error; the related hook is nil in the context.
type UnresolvedBinding struct {
	Module    string              `json:"module" yaml:"module"`
	Page      string              `json:"page" yaml:"page"`
	Operation requirement.APIType `json:"operation" yaml:"operation"`
}

func (u UnresolvedBinding) String() string {
	return fmt.Sprintf("module %q page %q: no %q binding", u.Module, u.Page, u.Operation)
}

// Bundle is everything one generation step renders.
type Bundle struct {
	Module   string              `json:"module,omitempty" yaml:"module,omitempty"`
	Page     string              `json:"page" yaml:"page"`
	Kind     string              `json:"kind" yaml:"kind"`
	Files    []File              `json:"files" yaml:"files"`
	Warnings []UnresolvedBinding `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// UIComponents are the shadcn components the rendered files import.
	UIComponents []string `json:"uiComponents,omitempty" yaml:"uiComponents,omitempty"`
}

// ForPage builds the bundle of a page owned by mod.
func ForPage(mod requirement.Module, page requirement.Page) (Bundle, error) {
	switch p := page.(type) {
	case requirement.ListingPage:
		return Listing(mod, p)
	case requirement.DetailPage:
		return Detail(mod, p)
	case requirement.AuthPage:
		return Auth(mod, p)
	default:
		return Bundle{}, fmt.Errorf("unknown page type %T", page)
	}
}

// All builds the bundles of every page in req, in document order.
func All(req requirement.Requirement) ([]Bundle, error) {
	var bundles []Bundle
	for _, mod := range req.Modules {
		for _, page := range mod.Pages {
			b, err := ForPage(mod, page)
			if err != nil {
				return nil, fmt.Errorf("module %q page %q: %w", mod.Name, page.Meta().Name, err)
			}
			bundles = append(bundles, b)
		}
	}
	return bundles, nil
}

// hook returns the graphql hook of the first binding of type t, or nil.
func hook(apis []requirement.API, t requirement.APIType) any {
	if a, ok := requirement.FindAPI(apis, t); ok {
		return a.GraphqlHook
	}
	return nil
}

// query returns the query string of the first binding of type t, or nil.
func query(apis []requirement.API, t requirement.APIType) any {
	if a, ok := requirement.FindAPI(apis, t); ok {
		return a.QueryString
	}
	return nil
}
