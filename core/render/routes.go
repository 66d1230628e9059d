package render

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/artpar/reacthub/core/naming"
	"github.com/artpar/reacthub/core/requirement"
)

// ErrNoRoutes is returned when a routes bundle is built from no routes.
var ErrNoRoutes = errors.New("no routes")

// DefaultAPIEndpoint is used when the app declares no endpoint.
const DefaultAPIEndpoint = "http://localhost:4001"

// RouteUIComponents are the shadcn components the layout imports.
var RouteUIComponents = []string{"sidebar", "dialog", "avatar", "dropdown-menu"}

// Route is a routed page: its path, visibility and page kind.
type Route struct {
	Path      string
	IsPrivate bool
	Type      string
}

// RouteDefinition is a route with its derived name.
type RouteDefinition struct {
	Path      string `json:"path" yaml:"path"`
	IsPrivate bool   `json:"isPrivate" yaml:"isPrivate"`
	Name      string `json:"name" yaml:"name"`
}

// RoutePath is one entry of the generated route path table.
type RoutePath struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// RoutesOf collects the routed pages of req in document order.
func RoutesOf(req requirement.Requirement) []Route {
	var routes []Route
	for _, mod := range req.Modules {
		for _, page := range mod.Pages {
			meta := page.Meta()
			if meta.Route == "" {
				continue
			}
			routes = append(routes, Route{Path: meta.Route, IsPrivate: meta.IsPrivate, Type: page.Kind()})
		}
	}
	return routes
}

// ParseRoutes splits a comma separated list into public page routes.
func ParseRoutes(list string) []Route {
	var routes []Route
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		routes = append(routes, Route{Path: p, Type: "page"})
	}
	return routes
}

// Definitions names each route.
func Definitions(routes []Route) ([]RouteDefinition, error) {
	defs := make([]RouteDefinition, 0, len(routes))
	for _, r := range routes {
		name, err := naming.EntityRouteName(r.Path, r.Type == requirement.KindDetail)
		if err != nil {
			return nil, err
		}
		defs = append(defs, RouteDefinition{Path: r.Path, IsPrivate: r.IsPrivate, Name: name})
	}
	return defs, nil
}

// RoutePaths builds the route path table. The catch-all comes first; a
// repeated name keeps its first position and takes the latest path.
func RoutePaths(defs []RouteDefinition) []RoutePath {
	paths := []RoutePath{{Name: "invalidPath", Path: "*"}}
	index := map[string]int{"invalidPath": 0}

	for _, d := range defs {
		if i, ok := index[d.Name]; ok {
			paths[i].Path = d.Path
			continue
		}
		index[d.Name] = len(paths)
		paths = append(paths, RoutePath{Name: d.Name, Path: d.Path})
	}
	return paths
}

// SidebarItems are the names of private non-detail routes.
func SidebarItems(routes []Route) ([]string, error) {
	items := []string{}
	for _, r := range routes {
		if !r.IsPrivate || r.Type == requirement.KindDetail {
			continue
		}
		name, err := naming.EntityRouteName(r.Path, false)
		if err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	return items, nil
}

// Routes builds the router, route stubs, sidebar, header and env files.
func Routes(routes []Route, apiEndpoint, logo string) (Bundle, error) {
	if len(routes) == 0 {
		return Bundle{}, ErrNoRoutes
	}

	defs, err := Definitions(routes)
	if err != nil {
		return Bundle{}, fmt.Errorf("route definitions: %w", err)
	}
	items, err := SidebarItems(routes)
	if err != nil {
		return Bundle{}, fmt.Errorf("sidebar items: %w", err)
	}

	var private, public []RouteDefinition
	for _, d := range defs {
		if d.IsPrivate {
			private = append(private, d)
		} else {
			public = append(public, d)
		}
	}
	initial := defs[0].Name

	files := append(Env(apiEndpoint),
		File{Template: TmplAuthVars, Path: "src/vars/auth.ts"},
		File{Template: TmplUserDetails, Path: "src/vars/userDetails.ts"},
		File{Template: TmplPageLoader, Path: "src/components/pageLoader.tsx"},
		File{Template: TmplNotify, Path: "src/components/notify.tsx"},
		File{Template: TmplAppRoot, Path: "src/App.tsx", Context: map[string]any{"isAuthenticated": true}},
		File{Template: TmplCurrentUser, Path: "src/hooks/useCurrentUser.tsx"},
		File{Template: TmplPrivateLayout, Path: "src/layout/privateLayout.tsx"},
		File{Template: TmplRoutePaths, Path: "src/routes/routePaths.ts", Context: map[string]any{"routePaths": RoutePaths(defs)}},
		File{
			Template: TmplRoutesIndex,
			Path:     "src/routes/index.tsx",
			Context: map[string]any{
				"routeDefinitions": defs,
				"privateRoutes":    private,
				"publicRoutes":     public,
				"initialRoute":     initial,
			},
		},
		File{Template: TmplRoutesPrivate, Path: "src/routes/private.tsx"},
		File{Template: TmplRoutesPublic, Path: "src/routes/public.tsx", Context: map[string]any{"initialRoute": initial}},
	)

	for _, d := range defs {
		files = append(files, File{
			Template: TmplPageStub,
			Path:     path.Join("src/pages", d.Name, "index.tsx"),
			Context:  map[string]any{"componentName": naming.UpperFirst(d.Name)},
		})
	}

	files = append(files,
		Header(logo),
		File{Template: TmplSidebar, Path: "src/components/app-sidebar.tsx", Context: map[string]any{"items": items}},
	)

	return Bundle{
		Page:         "routes",
		Kind:         "Routes",
		Files:        files,
		UIComponents: append([]string(nil), RouteUIComponents...),
	}, nil
}

// Env builds the env, codegen and codegen loader files. An empty endpoint uses
// DefaultAPIEndpoint.
func Env(apiEndpoint string) []File {
	if apiEndpoint == "" {
		apiEndpoint = DefaultAPIEndpoint
	}
	ctx := map[string]any{"apiEndpoint": apiEndpoint}
	return []File{
		{Template: TmplEnv, Path: ".env", Context: ctx},
		{Template: TmplCodegen, Path: "codegen.ts", Context: ctx},
		{Template: TmplCodegenLoader, Path: "codegen-loader.ts", Context: ctx},
	}
}

// Header builds the header component.
func Header(logo string) File {
	return File{Template: TmplHeader, Path: "src/components/header.tsx", Context: map[string]any{"logo": logo}}
}
