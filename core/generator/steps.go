package generator

import (
	"context"
	"fmt"

	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/requirement"
)

// LoginPageName is the auth page generated by Login during a full run.
const LoginPageName = "LoginPage"

const (
	commitRoutes = "WIP: Adding routes, common components and sidemenu / header"
	commitLogin  = "WIP: Adding Login pages and integrating the APIs"
)

// Routes writes the router, route stubs, sidebar, header and env files and
// commits them. An empty apiEndpoint uses the configured fallback.
func (g *Generator) Routes(ctx context.Context, routes []render.Route, apiEndpoint, logo string) error {
	if apiEndpoint == "" {
		apiEndpoint = g.opts.APIEndpoint
	}
	return g.step("routes", func() error {
		b, err := render.Routes(routes, apiEndpoint, logo)
		if err != nil {
			return err
		}
		g.logger.Info().Int("routes", len(routes)).Msg("creating routes")

		g.addUIComponents(ctx, b.UIComponents)
		if err := g.emit(b); err != nil {
			return err
		}
		return g.commit(ctx, commitRoutes)
	})
}

// Login writes the login page of an auth page, compiles the graphql
// documents and commits. A failed compile is logged, not returned.
func (g *Generator) Login(ctx context.Context, mod requirement.Module, page requirement.AuthPage) error {
	return g.step("login", func() error {
		if flow, fellBack := render.ResolveFlow(page.Flow); fellBack {
			g.logger.Warn().Str("page", page.Name).Str("flow", string(page.Flow)).
				Str("using", string(flow)).Msg("auth flow not implemented, falling back")
		}

		b, err := render.Auth(mod, page)
		if err != nil {
			return err
		}

		g.addUIComponents(ctx, b.UIComponents)
		if err := g.emit(b); err != nil {
			return err
		}

		if err := g.run(ctx, g.opts.Toolchain.NPM, "run", "compile"); err != nil {
			g.logger.Error().Err(err).Msg("codegen compile failed, run npm run compile manually")
		}
		return g.commit(ctx, commitLogin)
	})
}

// CRUD writes the pages of a feature module. A module flagged with
// SharedComponents first gets the shared table components.
func (g *Generator) CRUD(ctx context.Context, mod requirement.Module) error {
	return g.step("crud", func() error {
		if mod.SharedComponents {
			g.logger.Info().Str("module", mod.Name).Msg("creating shared table components")
			shared := render.SharedComponents()
			if err := g.write(shared.Files); err != nil {
				return err
			}
			g.addUIComponents(ctx, shared.UIComponents)
		}

		for _, page := range mod.Pages {
			b, err := render.ForPage(mod, page)
			if err != nil {
				return fmt.Errorf("module %q page %q: %w", mod.Name, page.Meta().Name, err)
			}
			g.logger.Info().Str("module", mod.Name).Str("page", b.Page).Str("kind", b.Kind).Msg("creating page")

			g.addUIComponents(ctx, b.UIComponents)
			if err := g.emit(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// Generate creates the app, then its routes, its login page and every
// feature module, in that order.
func (g *Generator) Generate(ctx context.Context, req requirement.Requirement) error {
	if m, ok := req.SharedModule(); ok {
		g.logger.Info().Str("module", m.Name).Msg("shared components assigned")
	}

	proj, err := g.App(ctx, req.App)
	if err != nil {
		return err
	}

	if routes := render.RoutesOf(req); len(routes) > 0 {
		if err := proj.Routes(ctx, routes, req.App.APIEndpoint, req.App.Branding.Logo); err != nil {
			return err
		}
	}

	if mod, page, ok := LoginPage(req); ok {
		if err := proj.Login(ctx, mod, page); err != nil {
			return err
		}
	}

	for _, mod := range req.FeatureModules() {
		if err := proj.CRUD(ctx, mod); err != nil {
			return err
		}
	}

	proj.logger.Info().Str("root", proj.ws.Root()).Msg("project generated")
	return nil
}

// LoginPage returns the auth module and its LoginPage, if both exist.
func LoginPage(req requirement.Requirement) (requirement.Module, requirement.AuthPage, bool) {
	mod, ok := req.AuthModule()
	if !ok {
		return requirement.Module{}, requirement.AuthPage{}, false
	}
	for _, p := range mod.Pages {
		if ap, ok := p.(requirement.AuthPage); ok && ap.Name == LoginPageName {
			return mod, ap, true
		}
	}
	return requirement.Module{}, requirement.AuthPage{}, false
}

// Plan returns every bundle a full run of req writes, in write order,
// without touching the workspace.
func (g *Generator) Plan(req requirement.Requirement) ([]render.Bundle, error) {
	app, err := render.Scaffold(req.App, g.opts.Palette)
	if err != nil {
		return nil, err
	}
	bundles := []render.Bundle{app}

	if routes := render.RoutesOf(req); len(routes) > 0 {
		endpoint := req.App.APIEndpoint
		if endpoint == "" {
			endpoint = g.opts.APIEndpoint
		}
		b, err := render.Routes(routes, endpoint, req.App.Branding.Logo)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}

	if mod, page, ok := LoginPage(req); ok {
		b, err := render.Auth(mod, page)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}

	for _, mod := range req.FeatureModules() {
		if mod.SharedComponents {
			shared := render.SharedComponents()
			shared.Module = mod.Name
			bundles = append(bundles, shared)
		}
		for _, page := range mod.Pages {
			b, err := render.ForPage(mod, page)
			if err != nil {
				return nil, fmt.Errorf("module %q page %q: %w", mod.Name, page.Meta().Name, err)
			}
			bundles = append(bundles, b)
		}
	}
	return bundles, nil
}

// RenderOnly writes every planned bundle into the workspace without running
// any toolchain command. It returns the bundles it wrote.
func (g *Generator) RenderOnly(req requirement.Requirement) ([]render.Bundle, error) {
	var bundles []render.Bundle
	err := g.step("render", func() error {
		var err error
		if bundles, err = g.Plan(req); err != nil {
			return err
		}
		for _, b := range bundles {
			if err := g.emit(b); err != nil {
				return err
			}
		}
		return nil
	})
	return bundles, err
}
